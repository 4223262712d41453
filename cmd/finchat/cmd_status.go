package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// statusCmd probes the backend health endpoint.
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Check backend health",
	RunE: func(cmd *cobra.Command, args []string) error {
		client := newClient()
		health, err := client.Health(cmd.Context())
		if err != nil {
			return fmt.Errorf("backend unreachable: %w", err)
		}

		fmt.Printf("Backend: %s\n", cfg.Server.BaseURL)
		fmt.Printf("Status:  %s\n", health.Status)
		if health.Message != "" {
			fmt.Printf("Message: %s\n", health.Message)
		}
		return nil
	},
}
