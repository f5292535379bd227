package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/okian/teammate/internal/domain/classifier"
	"github.com/okian/teammate/internal/domain/validation"
)

func newClassifyCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "classify <q1> <q2> <q3> <q4> <q5>",
		Short: "Score five survey answers (1-5) and print the personality type",
		Args:  cobra.ExactArgs(classifier.QuestionCount),
		RunE: func(cmd *cobra.Command, args []string) error {
			var answers [classifier.QuestionCount]int
			for i, a := range args {
				v, err := strconv.Atoi(a)
				if err != nil || !validation.IsValidAnswer(v) {
					return fmt.Errorf("%w: q%d=%q, want %d..%d",
						ErrInvalidAnswer, i+1, a, classifier.MinAnswer, classifier.MaxAnswer)
				}
				answers[i] = v
			}
			score, category := classifier.FromAnswers(answers)
			fmt.Fprintf(cmd.OutOrStdout(), "You are classified as: %s (%d)\n", category, score)
			return nil
		},
	}
}
