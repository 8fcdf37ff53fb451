package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cedarpro/cybermentor/internal/store"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show learning statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		dbPath, err := resolveDBPath(cmd, os.Getenv("CYBERMENTOR_DB"))
		if err != nil {
			return fmt.Errorf("resolve database path: %w", err)
		}

		s, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer s.Close()

		stats := s.Stats()
		fmt.Printf("Concepts completed:  %d\n", stats.TotalConceptsCompleted)
		fmt.Printf("Average progress:    %d%%\n", stats.AverageProgress)
		fmt.Printf("Active roles:        %d\n", stats.ActiveRoles)
		fmt.Printf("Assessments taken:   %d\n", stats.TotalAssessments)
		fmt.Printf("Chat messages:       %d\n", stats.TotalChatMessages)

		prefs := s.Preferences()
		if prefs.SelectedRole != "" {
			fmt.Printf("Selected role:       %s\n", prefs.SelectedRole)
		}
		return nil
	},
}
