package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/practicekit/internal/answer"
	"github.com/abhisek/practicekit/internal/question"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check an answer against a canonical answer",
	Long: `Compare a learner answer with a canonical answer using the validation
rules of a variant: default, fraction, coordinate or table.

  practicekit check --answer 0.5 --canonical 1/2 --variant fraction`,
	RunE: func(cmd *cobra.Command, args []string) error {
		user, _ := cmd.Flags().GetString("answer")
		canonical, _ := cmd.Flags().GetString("canonical")
		variant, _ := cmd.Flags().GetString("variant")

		v, err := parseVariant(variant)
		if err != nil {
			return err
		}
		if answer.IsCorrect(user, canonical, v) {
			fmt.Println("correct")
			return nil
		}
		fmt.Println("incorrect")
		return nil
	},
}

func init() {
	checkCmd.Flags().String("answer", "", "Learner answer")
	checkCmd.Flags().String("canonical", "", "Canonical answer")
	checkCmd.Flags().String("variant", "default", "Validation variant")
	_ = checkCmd.MarkFlagRequired("answer")
	_ = checkCmd.MarkFlagRequired("canonical")
}

// parseVariant accepts only the known variant names, unlike
// question.ParseVariant which maps anything unknown to the default.
func parseVariant(s string) (question.Variant, error) {
	switch v := question.Variant(strings.ToLower(strings.TrimSpace(s))); v {
	case question.VariantDefault, question.VariantFraction, question.VariantCoordinate, question.VariantTable:
		return v, nil
	}
	return "", fmt.Errorf("unknown variant %q: want default, fraction, coordinate or table", s)
}
