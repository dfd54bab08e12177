package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/practicekit/internal/curriculum"
	"github.com/abhisek/practicekit/internal/question"
)

var paperCmd = &cobra.Command{
	Use:   "paper",
	Short: "Inspect and print question papers",
}

var paperListCmd = &cobra.Command{
	Use:   "list",
	Short: "List available paper blueprints",
	RunE: func(cmd *cobra.Command, args []string) error {
		lib, err := loadLibrary()
		if err != nil {
			return err
		}
		fmt.Printf("%-20s  %-5s  %9s  %-8s  %s\n", "Name", "Grade", "Questions", "Limit", "Title")
		fmt.Println(strings.Repeat("─", 72))
		for _, bp := range lib.List() {
			limit := "-"
			if bp.TimeLimit > 0 {
				limit = bp.TimeLimit.String()
			}
			fmt.Printf("%-20s  %-5s  %9d  %-8s  %s\n",
				bp.Name, bp.Grade, len(bp.Expand()), limit, bp.Title)
		}
		return nil
	},
}

var paperShowCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Assemble a paper and print it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		grade, _ := cmd.Flags().GetString("grade")
		answers, _ := cmd.Flags().GetBool("answers")
		seed, _ := cmd.Flags().GetUint64("seed")

		lib, err := loadLibrary()
		if err != nil {
			return err
		}
		bp, ok := lib.Get(args[0])
		if !ok {
			return fmt.Errorf("unknown paper %q", args[0])
		}
		if bp.Grade != "" {
			grade = bp.Grade
		}

		rnd := practiceOptions{Seed: seed}.rand()
		reg, err := curriculum.Registry(grade, rnd)
		if err != nil {
			return err
		}
		p, err := bp.Assemble(reg)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s (grade %s)\n", p.Title, p.Grade)
		if p.TimeLimit > 0 {
			fmt.Fprintf(out, "Time limit: %s\n", p.TimeLimit)
		}
		if len(p.Unmatched) > 0 {
			fmt.Fprintf(out, "Fallback topics used for: %s\n", strings.Join(p.Unmatched, ", "))
		}
		for i, q := range p.Questions {
			fmt.Fprintf(out, "\n%d. [%s]\n", i+1, q.Topic)
			printQuestion(out, q, answers)
		}
		return nil
	},
}

func init() {
	paperShowCmd.Flags().StringP("grade", "g", "3", "Grade for papers that do not name one")
	paperShowCmd.Flags().Bool("answers", false, "Print answers and explanations")
	paperShowCmd.Flags().Uint64("seed", 0, "Random seed (0 is random)")

	paperCmd.AddCommand(paperListCmd)
	paperCmd.AddCommand(paperShowCmd)
}

func printQuestion(w io.Writer, q *question.Question, answers bool) {
	fmt.Fprintln(w, q.Prompt)
	for j, o := range q.Options {
		fmt.Fprintf(w, "   %c) %s\n", 'a'+j, o.Label)
	}
	for _, r := range q.Rows {
		fmt.Fprintf(w, "   %s → ____\n", r.Label)
	}
	if !answers {
		return
	}
	fmt.Fprintf(w, "   Answer: %s\n", q.Answer.String())
	if q.Explanation != "" {
		fmt.Fprintf(w, "   %s\n", q.Explanation)
	}
}
