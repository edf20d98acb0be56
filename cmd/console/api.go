package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

type createGameRequest struct {
	Scenario   string `json:"scenario"`
	PlayerName string `json:"player_name,omitempty"`
}

type createGameResponse struct {
	GameID string `json:"game_id"`
}

type actionRequest struct {
	Action    string `json:"action"`
	Direction string `json:"direction,omitempty"`
	Item      string `json:"item,omitempty"`
	NPC       string `json:"npc,omitempty"`
	Target    string `json:"target,omitempty"`
	Message   string `json:"message,omitempty"`
	Outcome   string `json:"outcome,omitempty"`
}

type actionResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type inventoryItem struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Useable     bool   `json:"useable"`
}

type gameSummary struct {
	Title          string   `json:"title"`
	Outcome        string   `json:"outcome"`
	TotalTurns     int      `json:"total_turns"`
	Duration       string   `json:"duration"`
	ItemsCollected int      `json:"items_collected"`
	MajorEvents    []string `json:"major_events"`
}

type actionResponse struct {
	Result      *actionResult   `json:"result,omitempty"`
	Description string          `json:"description,omitempty"`
	Inventory   []inventoryItem `json:"inventory,omitempty"`
	Actions     []string        `json:"actions,omitempty"`
	Summary     *gameSummary    `json:"summary,omitempty"`
}

type apiClient struct {
	client  *http.Client
	baseURL string
}

func newAPIClient(client *http.Client, baseURL string) *apiClient {
	return &apiClient{client: client, baseURL: baseURL}
}

func (a *apiClient) healthy() bool {
	resp, err := a.client.Get(a.baseURL + "/health")
	if err != nil {
		return false
	}
	defer func() {
		_ = resp.Body.Close() // Ignore error in defer
	}()
	return resp.StatusCode == http.StatusOK
}

func (a *apiClient) listScenarios() (map[string]string, error) {
	resp, err := a.client.Get(a.baseURL + "/v1/scenarios")
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = resp.Body.Close() // Ignore error in defer
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("API returned status %d", resp.StatusCode)
	}

	var scenarios map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&scenarios); err != nil {
		return nil, err
	}
	return scenarios, nil
}

func (a *apiClient) createGame(scenarioFile, playerName string) (string, error) {
	payload, err := json.Marshal(createGameRequest{
		Scenario:   scenarioFile,
		PlayerName: playerName,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	resp, err := a.client.Post(a.baseURL+"/v1/games", "application/json", bytes.NewBuffer(payload))
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close() // Ignore error in defer
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusCreated {
		var errorResp ErrorResponse
		if err := json.Unmarshal(body, &errorResp); err != nil {
			return "", fmt.Errorf("API returned status %d: %s", resp.StatusCode, string(body))
		}
		return "", fmt.Errorf("failed to create game: %s", errorResp.Error)
	}

	var created createGameResponse
	if err := json.Unmarshal(body, &created); err != nil {
		return "", fmt.Errorf("failed to parse response: %w", err)
	}
	return created.GameID, nil
}

func (a *apiClient) doAction(gameID string, req actionRequest) (*actionResponse, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/v1/games/%s/actions", a.baseURL, gameID)
	resp, err := a.client.Post(url, "application/json", bytes.NewBuffer(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close() // Ignore error in defer
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var errorResp ErrorResponse
		if err := json.Unmarshal(body, &errorResp); err != nil {
			return nil, fmt.Errorf("API returned status %d: %s", resp.StatusCode, string(body))
		}
		return nil, fmt.Errorf("%s", errorResp.Error)
	}

	var response actionResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	return &response, nil
}
