package main

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/jwebster45206/state-of-play/pkg/scenario"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "Usage: %s <scenario.json|scenario.yaml> [...]\n", os.Args[0])
		os.Exit(1)
	}

	failed := false
	for _, filename := range os.Args[1:] {
		if err := validateFile(filename); err != nil {
			fmt.Fprintf(os.Stderr, "Validation failed: %v\n", err)
			failed = true
			continue
		}
		fmt.Printf("%s is valid\n", filename)
	}
	if failed {
		os.Exit(1)
	}
}

var scenarioFilenameRe = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

func validateFile(filename string) error {
	fmt.Printf("Validating %s...\n", filename)

	baseName := filepath.Base(filename)
	ext := strings.ToLower(filepath.Ext(baseName))
	switch ext {
	case ".json", ".yaml", ".yml":
	default:
		return fmt.Errorf("scenario file must have a .json, .yaml or .yml extension: %s", baseName)
	}

	nameWithoutExt := strings.TrimSuffix(baseName, ext)
	if !scenarioFilenameRe.MatchString(nameWithoutExt) {
		return fmt.Errorf("scenario filename %q must be lowercase snake_case (e.g. my_scenario.json)", baseName)
	}

	s, err := scenario.Load(filename)
	if err != nil {
		return err
	}

	return lint(s, filename)
}

// lint reports authoring problems that Validate tolerates: unreachable
// rooms, items placed nowhere, one-way connections.
func lint(s *scenario.Scenario, filename string) error {
	var warnings []string

	placed := make(map[string]bool)
	for _, room := range s.Rooms {
		for _, id := range room.Items {
			placed[id] = true
		}
	}
	for _, item := range s.Items {
		if !placed[item.ID] && item.Location == "" {
			warnings = append(warnings, fmt.Sprintf("item %q is not placed in any room and has no location", item.ID))
		}
	}

	reachable := map[string]bool{s.DefaultStartRoom(): true}
	frontier := []string{s.DefaultStartRoom()}
	targets := make(map[string]map[string]string, len(s.Rooms))
	for _, room := range s.Rooms {
		targets[room.ID] = room.Connections
	}
	for len(frontier) > 0 {
		current := frontier[0]
		frontier = frontier[1:]
		for _, next := range targets[current] {
			if !reachable[next] {
				reachable[next] = true
				frontier = append(frontier, next)
			}
		}
	}
	for _, room := range s.Rooms {
		if !reachable[room.ID] {
			warnings = append(warnings, fmt.Sprintf("room %q is unreachable from the start room", room.ID))
		}
	}

	if len(warnings) > 0 {
		fmt.Printf("Warnings in %s:\n", filename)
		for _, w := range warnings {
			fmt.Printf("  - %s\n", w)
		}
	}
	return nil
}
