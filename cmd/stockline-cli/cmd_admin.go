package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/stockline/stockline/client"
)

func newHealthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check server health",
		Run: func(cmd *cobra.Command, args []string) {
			resp, err := apiClient.Health(context.Background())
			if err != nil {
				fatal("health", err)
			}
			if flagFmt == "table" {
				formatTable(
					[]string{"CHECK", "VALUE"},
					[][]string{
						{"Status", resp.Status},
						{"Version", resp.Version},
						{"Database", resp.Database},
						{"Schema", fmt.Sprintf("%d", resp.SchemaVersion)},
						{"Model", resp.ModelProvider + "/" + resp.Model},
					},
				)
				return
			}
			output(resp, resp.Status)
		},
	}
}

func newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show record counts for your tenant",
		Run: func(cmd *cobra.Command, args []string) {
			resp, err := apiClient.Stats(context.Background())
			if err != nil {
				fatal("stats", err)
			}
			if flagFmt == "table" {
				formatTable(
					[]string{"METRIC", "VALUE"},
					[][]string{
						{"Customers", fmt.Sprintf("%d", resp.Customers)},
						{"Products", fmt.Sprintf("%d", resp.Products)},
						{"Orders", fmt.Sprintf("%d", resp.Orders)},
						{"Pending Orders", fmt.Sprintf("%d", resp.PendingOrders)},
						{"Low Stock Items", fmt.Sprintf("%d", resp.LowStockItems)},
						{"Revenue", fmt.Sprintf("%.2f", resp.Revenue)},
					},
				)
				return
			}
			output(resp, "")
		},
	}
}

func newAuditCmd() *cobra.Command {
	var tenantID, userID, action string
	var since time.Duration
	var limit, offset int
	cmd := &cobra.Command{
		Use:   "audit",
		Short: "Query the executed-query audit log",
		Run: func(cmd *cobra.Command, args []string) {
			opts := &client.AuditQueryOptions{
				TenantID: tenantID,
				UserID:   userID,
				Action:   action,
				Limit:    limit,
				Offset:   offset,
			}
			if since > 0 {
				t := time.Now().Add(-since)
				opts.Since = &t
			}
			entries, _, err := apiClient.Audit.Query(context.Background(), opts)
			if err != nil {
				fatal("audit query", err)
			}
			if flagFmt == "table" {
				headers := []string{"ID", "TENANT", "USER", "DESCRIPTION", "CREATED_AT"}
				var rows [][]string
				for _, e := range entries {
					rows = append(rows, []string{fmt.Sprintf("%d", e.ID), e.TenantID, e.UserID, e.Description, e.CreatedAt.Format("2006-01-02 15:04:05")})
				}
				formatTable(headers, rows)
				return
			}
			output(entries, "")
		},
	}
	cmd.Flags().StringVar(&tenantID, "tenant", "", "Tenant to inspect (super-admin only)")
	cmd.Flags().StringVar(&userID, "user", "", "Filter by user ID")
	cmd.Flags().StringVar(&action, "action", "", "Filter by action")
	cmd.Flags().DurationVar(&since, "since", 0, "Only entries newer than this, e.g. 24h")
	cmd.Flags().IntVar(&limit, "limit", 0, "Max results")
	cmd.Flags().IntVar(&offset, "offset", 0, "Skip this many results")

	return cmd
}

