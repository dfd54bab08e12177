package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/practicekit/internal/curriculum"
)

var topicsCmd = &cobra.Command{
	Use:   "topics",
	Short: "List grades and their topics",
	RunE: func(cmd *cobra.Command, args []string) error {
		grade, _ := cmd.Flags().GetString("grade")

		grades := curriculum.Grades()
		if grade != "" {
			g, ok := curriculum.Lookup(grade)
			if !ok {
				return fmt.Errorf("unknown grade %q", grade)
			}
			grades = []curriculum.Grade{g}
		}

		for i, g := range grades {
			if i > 0 {
				fmt.Println()
			}
			fmt.Printf("%s (%s)\n", g.Title, g.ID)
			for _, t := range g.Topics {
				fmt.Printf("  %s\n", t.Name)
			}
		}
		return nil
	},
}

func init() {
	topicsCmd.Flags().StringP("grade", "g", "", "Only list this grade")
}
