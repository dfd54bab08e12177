package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/practicekit/internal/curriculum"
	"github.com/abhisek/practicekit/internal/question"
	"github.com/abhisek/practicekit/internal/session"
	"github.com/abhisek/practicekit/internal/store"
)

var quizCmd = &cobra.Command{
	Use:   "quiz",
	Short: "Answer a quiz line by line on stdin",
	Long: `Run a practice paper without the full-screen UI. Each question is
printed and answered on standard input; an empty line skips it.
Answers are recorded like any other session.`,
	RunE: runQuiz,
}

func init() {
	addPaperFlags(quizCmd)
	quizCmd.Flags().Bool("no-record", false, "Do not record the quiz in the database")
}

func runQuiz(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	opts := readPracticeFlags(cmd)
	rnd := opts.rand()

	p, err := buildPaper(ctx, opts, rnd)
	if err != nil {
		return err
	}
	sessOpts := session.Options{TimeLimit: sessionTimeLimit(opts, p)}
	if noRecord, _ := cmd.Flags().GetBool("no-record"); !noRecord {
		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()
		sessOpts.Recorder = store.NewRecorder(st.EventRepo(), log)
	}
	if sessOpts.Registry, err = curriculum.Registry(p.Grade, rnd); err != nil {
		return err
	}
	sess, err := session.New(ctx, p, sessOpts)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s (grade %s, %d questions", p.Title, p.Grade, len(p.Questions))
	if sess.Timed() {
		fmt.Fprintf(out, ", %s", sess.Remaining().Round(time.Second))
	}
	fmt.Fprint(out, ")\n\n")

	in := bufio.NewScanner(cmd.InOrStdin())
quiz:
	for i := range sess.Len() {
		e, _ := sess.Entry(i)
		_ = sess.Goto(i)
		q := e.Question

		fmt.Fprintf(out, "── Question %d/%d · %s ──\n", i+1, sess.Len(), e.Topic)
		fmt.Fprintln(out, q.Prompt)

		resp, ok := readResponse(in, out, q)
		if !ok {
			fmt.Fprintln(out, "\n(input closed)")
			break
		}
		if resp == nil {
			fmt.Fprint(out, "(skipped)\n\n")
			continue
		}

		res, err := sess.Answer(ctx, i, *resp)
		switch {
		case errors.Is(err, session.ErrExpired):
			fmt.Fprintln(out, "Time is up!")
			break quiz
		case err != nil:
			return err
		}
		if res.Correct {
			fmt.Fprintln(out, "\033[32m✓ Correct!\033[0m")
		} else {
			fmt.Fprintf(out, "\033[31m✗ Not quite.\033[0m Answer: %s\n", res.Expected)
		}
		if q.Explanation != "" {
			fmt.Fprintf(out, "Explanation: %s\n", q.Explanation)
		}
		fmt.Fprintln(out)
	}

	printSummary(out, sess.Finish(ctx))
	return nil
}

// readResponse prompts for one answer. It returns nil for a skipped
// question and false when input is exhausted.
func readResponse(in *bufio.Scanner, out io.Writer, q *question.Question) (*question.Response, bool) {
	switch q.Type {
	case question.TypeMultipleChoice:
		for j, o := range q.Options {
			fmt.Fprintf(out, "  %d) %s\n", j+1, o.Label)
		}
	case question.TypeTable:
		cells := make(map[int]string, len(q.Rows))
		for j, row := range q.Rows {
			fmt.Fprintf(out, "  %s → ", row.Label)
			if !in.Scan() {
				return nil, false
			}
			v := strings.TrimSpace(in.Text())
			if v == "" {
				return nil, true
			}
			cells[j] = v
		}
		return &question.Response{Cells: cells}, true
	}

	fmt.Fprint(out, "\nYour answer: ")
	if !in.Scan() {
		return nil, false
	}
	v := strings.TrimSpace(in.Text())
	if v == "" {
		return nil, true
	}
	return &question.Response{Value: v}, true
}

