package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/practicekit/internal/llm"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show practice statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		grade, _ := cmd.Flags().GetString("grade")
		limit, _ := cmd.Flags().GetInt("sessions")
		showLLM, _ := cmd.Flags().GetBool("llm")

		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		ctx := cmd.Context()
		repo := st.EventRepo()

		topics, err := repo.TopicStats(ctx, grade)
		if err != nil {
			return fmt.Errorf("query topic stats: %w", err)
		}
		if len(topics) == 0 {
			fmt.Println("No answers recorded yet.")
		} else {
			fmt.Printf("%-5s  %-36s  %8s  %7s  %8s  %s\n",
				"Grade", "Topic", "Answered", "Correct", "Accuracy", "Last")
			fmt.Println(strings.Repeat("─", 92))
			for _, t := range topics {
				fmt.Printf("%-5s  %-36s  %8d  %7d  %7.0f%%  %s\n",
					t.Grade,
					truncate(t.Topic, 36),
					t.Attempted,
					t.Correct,
					t.Accuracy()*100,
					t.LastAnswered.Local().Format("2006-01-02"),
				)
			}
		}

		sessions, err := repo.RecentSessions(ctx, limit)
		if err != nil {
			return fmt.Errorf("query sessions: %w", err)
		}
		if len(sessions) > 0 {
			fmt.Printf("\nRecent sessions\n")
			for _, s := range sessions {
				fmt.Printf("  %s  grade %-3s  %-20s  %d/%d correct  %s\n",
					s.Timestamp.Local().Format("2006-01-02 15:04"),
					s.Grade,
					truncate(s.PaperName, 20),
					s.CorrectAnswers,
					s.QuestionsServed,
					time.Duration(s.DurationSecs)*time.Second,
				)
			}
		}

		if !showLLM {
			return nil
		}
		usage, err := repo.LLMUsage(ctx)
		if err != nil {
			return fmt.Errorf("query LLM usage: %w", err)
		}
		if len(usage) == 0 {
			fmt.Println("\nNo LLM requests recorded.")
			return nil
		}
		fmt.Printf("\n%-14s  %-28s  %5s  %5s  %8s  %8s  %7s  %s\n",
			"Purpose", "Model", "Reqs", "Fail", "In", "Out", "Avg ms", "Cost")
		fmt.Println(strings.Repeat("─", 100))
		var total float64
		for _, u := range usage {
			cost := "-"
			if mc := llm.LookupCost(u.Model); mc != nil {
				usd := mc.Cost(u.InputTokens, u.OutputTokens)
				total += usd
				cost = formatCost(usd)
			}
			fmt.Printf("%-14s  %-28s  %5d  %5d  %8d  %8d  %7.0f  %s\n",
				u.Purpose,
				truncate(u.Model, 28),
				u.Requests,
				u.Failures,
				u.InputTokens,
				u.OutputTokens,
				u.AvgLatencyMs,
				cost,
			)
		}
		fmt.Printf("Estimated total: %s\n", formatCost(total))
		return nil
	},
}

func init() {
	statsCmd.Flags().StringP("grade", "g", "", "Only show topics of this grade")
	statsCmd.Flags().IntP("sessions", "n", 5, "Number of recent sessions to show")
	statsCmd.Flags().Bool("llm", false, "Also show LLM usage and estimated cost")
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}

func formatCost(usd float64) string {
	if usd < 0.01 {
		return fmt.Sprintf("$%.4f", usd)
	}
	return fmt.Sprintf("$%.2f", usd)
}
