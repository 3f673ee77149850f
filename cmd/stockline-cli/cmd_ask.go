package main

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/stockline/stockline/client"
)

func newAskCmd() *cobra.Command {
	var (
		customerID string
		channel    string
		phone      string
		showSQL    bool
	)
	cmd := &cobra.Command{
		Use:   "ask <message>",
		Short: "Ask the assistant a question",
		Long:  "Send a message to the assistant. Staff questions may be answered with data from the tenant's records; pass --customer to chat as a customer instead.",
		Args:  cobra.MinimumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			req := client.ChatRequest{
				Message:     strings.Join(args, " "),
				UserType:    client.UserTypeInternal,
				Channel:     channel,
				PhoneNumber: phone,
			}
			if customerID != "" {
				req.UserType = client.UserTypeCustomer
				req.CustomerID = customerID
			}

			resp, err := apiClient.Chat(context.Background(), req)
			if err != nil {
				fatal("ask", err)
			}

			if flagFmt == "table" {
				printAnswer(resp, showSQL)
				return
			}
			output(resp, resp.Content)
		},
	}
	cmd.Flags().StringVar(&customerID, "customer", "", "Chat as this customer id")
	cmd.Flags().StringVar(&channel, "channel", "", "Originating channel, e.g. whatsapp")
	cmd.Flags().StringVar(&phone, "phone", "", "Customer phone number")
	cmd.Flags().BoolVar(&showSQL, "show-sql", false, "Print the executed query (table format)")
	return cmd
}

func printAnswer(resp *client.ChatResponse, showSQL bool) {
	fmt.Println(resp.Content)
	if resp.Type != client.ResponseData {
		return
	}
	if showSQL && resp.RawSQLQuery != "" {
		fmt.Printf("\n-- %s\n\n", resp.RawSQLQuery)
	}
	headers, rows := tabulate(resp.Data)
	if len(headers) > 0 {
		formatTable(headers, rows)
	}
}

// tabulate flattens result rows into a header set sorted by column name.
func tabulate(data []map[string]any) ([]string, [][]string) {
	seen := map[string]bool{}
	var headers []string
	for _, row := range data {
		for k := range row {
			if !seen[k] {
				seen[k] = true
				headers = append(headers, k)
			}
		}
	}
	sort.Strings(headers)

	rows := make([][]string, 0, len(data))
	for _, row := range data {
		cells := make([]string, len(headers))
		for i, h := range headers {
			if v, ok := row[h]; ok && v != nil {
				cells[i] = fmt.Sprint(v)
			}
		}
		rows = append(rows, cells)
	}
	return headers, rows
}
