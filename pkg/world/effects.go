package world

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// UseEffects is an ordered collection of use-effects. Effects are applied
// in document order, so decoding preserves the order in which authors
// wrote them, whether the document uses the array form
//
//	[{"kind": "set_flag", "params": {...}}, ...]
//
// or the object form
//
//	{"set_flag": {...}, "consume": {...}}
type UseEffects []UseEffect

// UnmarshalJSON accepts both the array and the object form. Object keys
// are read with a token decoder so their document order survives.
func (e *UseEffects) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if len(trimmed) == 0 || string(trimmed) == "null" {
		*e = nil
		return nil
	}

	if trimmed[0] == '[' {
		var effects []UseEffect
		if err := json.Unmarshal(data, &effects); err != nil {
			return err
		}
		*e = effects
		return nil
	}

	if trimmed[0] != '{' {
		return fmt.Errorf("use_effects must be an object or array")
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	if _, err := dec.Token(); err != nil { // opening brace
		return err
	}

	var effects UseEffects
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		kind, ok := tok.(string)
		if !ok {
			return fmt.Errorf("use_effects key must be a string, got %v", tok)
		}
		var params map[string]any
		if err := dec.Decode(&params); err != nil {
			return fmt.Errorf("use_effects %q: %w", kind, err)
		}
		effects = append(effects, UseEffect{Kind: kind, Params: params})
	}
	*e = effects
	return nil
}

// UnmarshalYAML accepts the same two forms from YAML scenario files.
// yaml.v3 mapping nodes keep key order in Content.
func (e *UseEffects) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.SequenceNode:
		var effects []UseEffect
		if err := node.Decode(&effects); err != nil {
			return err
		}
		*e = effects
		return nil
	case yaml.MappingNode:
		var effects UseEffects
		for i := 0; i+1 < len(node.Content); i += 2 {
			kind := node.Content[i].Value
			var params map[string]any
			if err := node.Content[i+1].Decode(&params); err != nil {
				return fmt.Errorf("use_effects %q: %w", kind, err)
			}
			effects = append(effects, UseEffect{Kind: kind, Params: params})
		}
		*e = effects
		return nil
	default:
		return fmt.Errorf("use_effects must be a mapping or sequence")
	}
}
