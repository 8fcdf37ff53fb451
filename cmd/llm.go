package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cedarpro/cybermentor/internal/store"
)

var llmCmd = &cobra.Command{
	Use:   "llm",
	Short: "Inspect LLM request/response events",
}

var llmListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent LLM events",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		purpose, _ := cmd.Flags().GetString("purpose")

		dbPath, err := resolveDBPath(cmd, os.Getenv("CYBERMENTOR_DB"))
		if err != nil {
			return fmt.Errorf("resolve database path: %w", err)
		}

		s, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer s.Close()

		events, err := s.ListLLMEvents(context.Background(), purpose, limit)
		if err != nil {
			return fmt.Errorf("query events: %w", err)
		}

		if len(events) == 0 {
			fmt.Println("No LLM events found.")
			return nil
		}

		// Header.
		fmt.Printf("%-5s  %-19s  %-12s  %-28s  %-6s  %-6s  %-7s  %s\n",
			"ID", "Timestamp", "Purpose", "Model", "In", "Out", "Ms", "OK")
		fmt.Println(strings.Repeat("─", 96))

		for _, e := range events {
			fmt.Println(formatLLMEventRow(e))
		}
		return nil
	},
}

func formatLLMEventRow(e store.LLMEvent) string {
	ok := "✓"
	if !e.Success {
		ok = "✗"
	}
	model := e.Model
	if len(model) > 28 {
		model = model[:28]
	}
	return fmt.Sprintf("%-5d  %-19s  %-12s  %-28s  %-6d  %-6d  %-7d  %s",
		e.ID,
		e.CreatedAt.Local().Format("2006-01-02 15:04:05"),
		e.Purpose,
		model,
		e.InputTokens,
		e.OutputTokens,
		e.LatencyMs,
		ok,
	)
}

func init() {
	llmListCmd.Flags().IntP("limit", "n", 20, "Number of events to show")
	llmListCmd.Flags().StringP("purpose", "p", "", "Filter by purpose (chat, practice, assessment)")

	llmCmd.AddCommand(llmListCmd)
}
