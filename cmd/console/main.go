package main

import (
	"fmt"
	"net/http"
	"os"
	"sort"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

type ConsoleConfig struct {
	APIBaseURL string
	Timeout    time.Duration
}

func main() {
	cfg := &ConsoleConfig{
		APIBaseURL: getEnv("API_BASE_URL", "http://localhost:8080"),
		Timeout:    30 * time.Second,
	}

	client := &http.Client{
		Timeout: cfg.Timeout,
	}

	api := newAPIClient(client, cfg.APIBaseURL)

	if !api.healthy() {
		fmt.Fprintf(os.Stderr, "Could not connect to API. Please ensure the API is running.\nTry: go run ./cmd/api\n")
		os.Exit(1)
	}

	scenarioMap, err := api.listScenarios()
	if err != nil || len(scenarioMap) == 0 {
		fmt.Fprintf(os.Stderr, "Failed to list scenarios: %v\n", err)
		os.Exit(1)
	}

	var titles []string
	for title := range scenarioMap {
		titles = append(titles, title)
	}
	sort.Strings(titles)

	fmt.Println("Available Scenarios:")
	for i, title := range titles {
		fmt.Printf("  %d - %s (%s)\n", i+1, title, scenarioMap[title])
	}
	fmt.Print("\nSelect a scenario by number: ")

	var choice int
	if _, err := fmt.Scanf("%d", &choice); err != nil || choice < 1 || choice > len(titles) {
		fmt.Fprintf(os.Stderr, "Invalid selection\n")
		os.Exit(1)
	}

	fmt.Print("Player name (blank for default): ")
	var playerName string
	_, _ = fmt.Scanln(&playerName)

	gameID, err := api.createGame(scenarioMap[titles[choice-1]], playerName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create game: %v\n", err)
		os.Exit(1)
	}

	p := tea.NewProgram(NewConsoleUI(api, gameID), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running program: %v\n", err)
		os.Exit(1)
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
