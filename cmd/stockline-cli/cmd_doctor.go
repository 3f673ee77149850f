package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/stockline/stockline/client"
)

func newDoctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Diagnose configuration and connectivity",
		Long:  "Run diagnostic checks against config, server, model, and auth",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDoctor()
		},
	}
}

type checkResult struct {
	Name   string
	Passed bool
	Detail string
	Hint   string
}

func (r checkResult) print() {
	mark := "ok  "
	if !r.Passed {
		mark = "FAIL"
	}
	line := fmt.Sprintf("[%s] %s", mark, r.Name)
	if r.Detail != "" {
		line += ": " + r.Detail
	}
	fmt.Println(line)
	if !r.Passed && r.Hint != "" {
		fmt.Printf("       hint: %s\n", r.Hint)
	}
}

func runDoctor() error {
	var results []checkResult

	cfgPath, _ := configPath()
	if _, err := loadConfigFile(); err != nil {
		results = append(results, checkResult{Name: "Config file", Detail: cfgPath, Hint: "Run: stockline init"})
	} else {
		results = append(results, checkResult{Name: "Config file", Passed: true, Detail: cfgPath})
	}

	resolveConfig()
	results = append(results, checkResult{Name: "Server URL", Passed: true, Detail: flagURL})
	if flagKey == "" {
		results = append(results, checkResult{
			Name: "API key",
			Hint: "Set --api-key, STOCKLINE_API_KEY, or run stockline init",
		})
	} else {
		results = append(results, checkResult{Name: "API key", Passed: true, Detail: "configured"})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	c := client.New(flagURL, client.WithAPIKey(flagKey))
	health, err := c.Health(ctx)
	switch {
	case err != nil:
		results = append(results, checkResult{
			Name:   "Server reachable",
			Detail: flagURL,
			Hint:   fmt.Sprintf("Is the Stockline server running? Error: %v", err),
		})
	default:
		results = append(results,
			checkResult{Name: "Server reachable", Passed: true, Detail: "v" + health.Version},
			checkResult{
				Name:   "Database",
				Passed: health.Database == "connected",
				Detail: fmt.Sprintf("%s (schema %d)", health.Database, health.SchemaVersion),
				Hint:   "Check DATABASE_URL on the server and run: stockline-server migrate",
			},
			checkResult{
				Name:   "Model provider",
				Passed: health.ModelProvider != "",
				Detail: health.ModelProvider + "/" + health.Model,
				Hint:   "Set LLM_PROVIDER and LLM_API_KEY on the server",
			},
		)
	}

	if flagKey != "" && err == nil {
		if _, err := c.Stats(ctx); err != nil {
			hint := fmt.Sprintf("Check your API key. Error: %v", err)
			if client.IsRateLimited(err) {
				hint = "Too many attempts; wait a minute and retry"
			}
			results = append(results, checkResult{Name: "Authentication", Hint: hint})
		} else {
			results = append(results, checkResult{Name: "Authentication", Passed: true, Detail: "valid"})
		}
	}

	allPassed := true
	for _, r := range results {
		r.print()
		allPassed = allPassed && r.Passed
	}

	if !allPassed {
		fmt.Fprintln(os.Stderr, "Some checks failed.")
		return fmt.Errorf("doctor found issues")
	}
	fmt.Println("All checks passed.")
	return nil
}
