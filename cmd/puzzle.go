package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/practicekit/internal/paper"
)

var puzzleCmd = &cobra.Command{
	Use:   "puzzle",
	Short: "Print the puzzle of the day",
	RunE: func(cmd *cobra.Command, args []string) error {
		grade, _ := cmd.Flags().GetString("grade")
		dateStr, _ := cmd.Flags().GetString("date")
		answers, _ := cmd.Flags().GetBool("answer")

		date := time.Now()
		if dateStr != "" {
			d, err := time.ParseInLocation(time.DateOnly, dateStr, time.Local)
			if err != nil {
				return fmt.Errorf("invalid date %q: want YYYY-MM-DD", dateStr)
			}
			date = d
		}

		q, err := paper.PuzzleOfTheDay(grade, date)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Puzzle of the day, %s (grade %s): %s\n\n", date.Format(time.DateOnly), grade, q.Topic)
		printQuestion(out, q, answers)
		return nil
	},
}

func init() {
	puzzleCmd.Flags().StringP("grade", "g", "3", "Grade: 1-5 or sat")
	puzzleCmd.Flags().String("date", "", "Day as YYYY-MM-DD (default today)")
	puzzleCmd.Flags().Bool("answer", false, "Also print the answer")
}
