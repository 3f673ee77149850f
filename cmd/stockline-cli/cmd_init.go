package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/stockline/stockline/client"
)

func newInitCmd() *cobra.Command {
	var (
		initURL    string
		initAPIKey string
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Set up Stockline CLI configuration",
		Long:  "Interactive setup that writes ~/.stockline/config.yaml",
		RunE: func(cmd *cobra.Command, args []string) error {
			nonInteractive := initURL != "" || initAPIKey != ""
			return runInit(initURL, initAPIKey, nonInteractive)
		},
	}

	cmd.Flags().StringVar(&initURL, "url", "", "Server URL (non-interactive mode)")
	cmd.Flags().StringVar(&initAPIKey, "api-key", "", "API key or JWT (non-interactive mode)")
	return cmd
}

func runInit(url, apiKey string, nonInteractive bool) error {
	if !nonInteractive {
		reader := bufio.NewReader(os.Stdin)

		fmt.Printf("\n  Stockline setup\n\n  Server URL [%s]: ", defaultURL)
		line, _ := reader.ReadString('\n')
		if line = strings.TrimSpace(line); line != "" {
			url = line
		}

		fmt.Print("  API key: ")
		keyLine, _ := reader.ReadString('\n')
		apiKey = strings.TrimSpace(keyLine)
	}

	if url == "" {
		url = defaultURL
	}
	if apiKey == "" {
		return fmt.Errorf("API key is required")
	}

	ver, err := checkCredentials(url, apiKey)
	if err != nil {
		return fmt.Errorf("connection failed: %w", err)
	}

	cfgPath, err := writeConfig(url, apiKey)
	if err != nil {
		return fmt.Errorf("write config: %w", err)
	}

	fmt.Printf("Connected to %s (v%s). Config saved to %s\n", url, ver, cfgPath)
	if !nonInteractive {
		fmt.Println("Try: stockline ask \"how many pending orders do we have?\" --format table")
	}
	return nil
}

// checkCredentials confirms the server is up and accepts the key, returning
// the server version.
func checkCredentials(url, apiKey string) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	c := client.New(url, client.WithAPIKey(apiKey))
	health, err := c.Health(ctx)
	if err != nil {
		return "", err
	}
	if _, err := c.Stats(ctx); err != nil {
		return "", err
	}

	if health.Version == "" {
		return "unknown", nil
	}
	return health.Version, nil
}

func writeConfig(url, apiKey string) (string, error) {
	cfgPath, err := configPath()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(cfgPath), 0o700); err != nil {
		return "", err
	}

	cfg := configFile{
		Profiles: map[string]profileConfig{
			"default": {URL: url, APIKey: apiKey},
		},
		ActiveProfile: "default",
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return "", err
	}

	if err := os.WriteFile(cfgPath, data, 0o600); err != nil {
		return "", err
	}

	return cfgPath, nil
}
