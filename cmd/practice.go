package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/abhisek/practicekit/internal/client"
	"github.com/abhisek/practicekit/internal/curriculum"
	"github.com/abhisek/practicekit/internal/generator"
	"github.com/abhisek/practicekit/internal/paper"
	"github.com/abhisek/practicekit/internal/session"
	"github.com/abhisek/practicekit/internal/store"
	"github.com/abhisek/practicekit/internal/tui"
)

const (
	defaultBackendTimeout = 10 * time.Second

	// keepSnapshots bounds the resumable history kept in the database.
	keepSnapshots = 50
)

var practiceCmd = &cobra.Command{
	Use:   "practice",
	Short: "Practice in the terminal UI",
	Long: `Start an interactive practice session. Questions come from a named
paper (--paper), from the practice API when a backend is configured, or
are generated locally.`,
	RunE: runPractice,
}

func init() {
	addPracticeFlags(practiceCmd)
}

func addPracticeFlags(cmd *cobra.Command) {
	addPaperFlags(cmd)
	cmd.Flags().Bool("resume", false, "Resume the most recent unfinished session")
}

// addPaperFlags registers the flags that select questions.
func addPaperFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringP("grade", "g", "3", "Grade: 1-5 or sat")
	f.StringP("category", "c", "", "Topic to practice; empty mixes topics")
	f.IntP("count", "n", 10, "Number of questions")
	f.StringP("paper", "p", "", "Practice a named paper instead of a topic")
	f.Duration("time-limit", 0, "Time limit, e.g. 15m (0 uses the paper's or quiz.default_time_limit)")
	f.Uint64("seed", 0, "Random seed for reproducible questions (0 is random)")
	f.String("backend", "", "Practice API base URL (overrides backend.url)")
	f.Bool("ai", false, "Ask the backend for AI-generated questions")
}

// practiceOptions are the flag values shared by practice and quiz.
type practiceOptions struct {
	Grade     string
	Category  string
	Count     int
	Paper     string
	TimeLimit time.Duration
	Seed      uint64
	Backend   string
	AI        bool
}

func readPracticeFlags(cmd *cobra.Command) practiceOptions {
	f := cmd.Flags()
	var o practiceOptions
	o.Grade, _ = f.GetString("grade")
	o.Category, _ = f.GetString("category")
	o.Count, _ = f.GetInt("count")
	o.Paper, _ = f.GetString("paper")
	o.TimeLimit, _ = f.GetDuration("time-limit")
	o.Seed, _ = f.GetUint64("seed")
	o.Backend, _ = f.GetString("backend")
	o.AI, _ = f.GetBool("ai")
	if o.Backend == "" {
		o.Backend = cfg.Backend.URL
	}
	return o
}

func (o practiceOptions) rand() generator.Rand {
	if o.Seed != 0 {
		return generator.NewSeeded(o.Seed)
	}
	return generator.NewRand()
}

func backendTimeout() time.Duration {
	if cfg != nil && cfg.Backend.Timeout > 0 {
		return cfg.Backend.Timeout
	}
	return defaultBackendTimeout
}

func runPractice(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	opts := readPracticeFlags(cmd)

	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	rnd := opts.rand()
	sessOpts := session.Options{Recorder: store.NewRecorder(st.EventRepo(), log)}

	var sess *session.Session
	if resume, _ := cmd.Flags().GetBool("resume"); resume {
		sess, err = resumeSession(ctx, st, sessOpts, rnd)
		if err != nil {
			return err
		}
	}
	if sess == nil {
		p, err := buildPaper(ctx, opts, rnd)
		if err != nil {
			return err
		}
		if sessOpts.Registry, err = curriculum.Registry(p.Grade, rnd); err != nil {
			return err
		}
		sessOpts.TimeLimit = sessionTimeLimit(opts, p)
		if sess, err = session.New(ctx, p, sessOpts); err != nil {
			return err
		}
	}

	sum, err := tui.Run(ctx, tui.Options{Session: sess, Snapshots: st.SnapshotRepo(), Log: log})
	if err != nil {
		return err
	}
	if err := st.SnapshotRepo().Prune(ctx, keepSnapshots); err != nil {
		log.WithError(err).Warn("prune snapshots")
	}
	if sum == nil {
		fmt.Println("Session saved. Resume it with --resume.")
		return nil
	}
	printSummary(os.Stdout, sum)
	printHistory(ctx, os.Stdout, st.EventRepo(), sum)
	return nil
}

// printHistory shows the all-time accuracy of the session's topics.
func printHistory(ctx context.Context, w io.Writer, repo store.EventRepo, sum *session.Summary) {
	var lines []string
	for _, t := range sum.Topics {
		acc, n, err := repo.TopicAccuracy(ctx, sum.Grade, t.Topic)
		if err != nil {
			log.WithError(err).WithField("topic", t.Topic).Debug("topic accuracy")
			continue
		}
		if n > t.Attempted {
			lines = append(lines, fmt.Sprintf("  %-36s %3.0f%% over %d answers", truncate(t.Topic, 36), acc*100, n))
		}
	}
	if len(lines) == 0 {
		return
	}
	fmt.Fprintln(w, "\nAll-time")
	for _, l := range lines {
		fmt.Fprintln(w, l)
	}
}

func resumeSession(ctx context.Context, st *store.Store, opts session.Options, rnd generator.Rand) (*session.Session, error) {
	snap, err := st.SnapshotRepo().Latest(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("load snapshot: %w", err)
	}
	if snap == nil {
		fmt.Println("No saved session; starting a new one.")
		return nil, nil
	}
	var state session.State
	if err := json.Unmarshal(snap.Data, &state); err != nil {
		return nil, fmt.Errorf("decode snapshot %s: %w", snap.SessionID, err)
	}
	if state.Finished {
		fmt.Println("Last session already finished; starting a new one.")
		return nil, nil
	}
	if reg, err := curriculum.Registry(state.Grade, rnd); err == nil {
		opts.Registry = reg
	}
	return session.Restore(state, opts)
}

// buildPaper assembles a named paper, or fetches practice questions from
// the backend with local generation as the fallback.
func buildPaper(ctx context.Context, o practiceOptions, rnd generator.Rand) (*paper.Paper, error) {
	if o.Paper != "" {
		lib, err := loadLibrary()
		if err != nil {
			return nil, err
		}
		bp, ok := lib.Get(o.Paper)
		if !ok {
			return nil, fmt.Errorf("unknown paper %q (see: practicekit paper list)", o.Paper)
		}
		grade := bp.Grade
		if grade == "" {
			grade = o.Grade
		}
		reg, err := curriculum.Registry(grade, rnd)
		if err != nil {
			return nil, err
		}
		p, err := bp.Assemble(reg)
		if err != nil {
			return nil, err
		}
		for _, name := range p.Unmatched {
			log.WithField("slot", name).Warn("no matching topic; used a fallback generator")
		}
		return p, nil
	}

	c := client.New(client.Options{
		BaseURL: o.Backend,
		Timeout: backendTimeout(),
		Rand:    rnd,
		Log:     log,
	})
	batch, err := c.Generate(ctx, client.Request{
		Grade:    o.Grade,
		Category: o.Category,
		Count:    o.Count,
		AI:       o.AI,
	})
	if err != nil {
		return nil, err
	}
	if batch.Fallback != nil {
		fmt.Fprintln(os.Stderr, "Backend unavailable; using locally generated questions.")
	}

	title := o.Category
	if title == "" {
		title = "Mixed practice"
	}
	return &paper.Paper{
		ID:        uuid.NewString(),
		Name:      "practice",
		Title:     title,
		Grade:     o.Grade,
		Questions: batch.Questions,
	}, nil
}

func sessionTimeLimit(o practiceOptions, p *paper.Paper) time.Duration {
	if o.TimeLimit > 0 {
		return o.TimeLimit
	}
	if p.TimeLimit == 0 {
		return cfg.Quiz.DefaultTimeLimit
	}
	return 0
}

func printSummary(w io.Writer, sum *session.Summary) {
	if sum.Expired {
		fmt.Fprintln(w, "Time is up!")
	}
	fmt.Fprintf(w, "Grade %s  %s\n", sum.Grade, sum.Duration.Round(time.Second))
	fmt.Fprintf(w, "Answered %d of %d, %d correct\n", sum.Answered, sum.TotalQuestions, sum.TotalCorrect)
	fmt.Fprintf(w, "Accuracy %.0f%%  Score %.0f%%\n", sum.Accuracy*100, sum.Score()*100)
	if len(sum.Topics) > 1 {
		fmt.Fprintln(w)
		for _, t := range sum.Topics {
			fmt.Fprintf(w, "  %-36s %d/%d\n", truncate(t.Topic, 36), t.Correct, t.Attempted)
		}
	}
}
