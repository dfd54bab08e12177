package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/practicekit/internal/aigen"
	"github.com/abhisek/practicekit/internal/llm"
	"github.com/abhisek/practicekit/internal/paper"
	"github.com/abhisek/practicekit/internal/server"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the practice JSON API",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (overrides server.addr)")
	serveCmd.Flags().Bool("no-record", false, "Do not record answers or LLM requests in the database")
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := server.Options{
		Config:  cfg.Server,
		Log:     log,
		Version: version,
	}
	if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
		opts.Config.Addr = addr
	}

	lib, err := loadLibrary()
	if err != nil {
		return err
	}
	opts.Library = lib

	var sink llm.EventSink
	if noRecord, _ := cmd.Flags().GetBool("no-record"); !noRecord {
		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()
		opts.Events = st.EventRepo()
		sink = st.EventRepo()
	}

	if cfg.LLM.Enabled() {
		provider, err := llm.New(ctx, cfg.LLM, sink, log)
		if err != nil {
			return fmt.Errorf("LLM provider: %w", err)
		}
		opts.AI = aigen.New(provider, aigen.DefaultConfig())
		log.WithField("provider", provider.Name()).Info("AI question source enabled")
	}

	srv, err := server.New(opts)
	if err != nil {
		return err
	}

	errc := make(chan error, 1)
	go func() {
		log.WithField("addr", opts.Config.Addr).Info("listening")
		errc <- srv.Listen(opts.Config.Addr)
	}()

	select {
	case err := <-errc:
		return fmt.Errorf("listen: %w", err)
	case <-ctx.Done():
	}

	log.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("server shutdown")
	}
	return nil
}

// loadLibrary returns the built-in blueprints plus any in papers.dir.
func loadLibrary() (*paper.Library, error) {
	lib, err := paper.NewLibrary()
	if err != nil {
		return nil, err
	}
	if cfg.Papers.Dir != "" {
		n, err := lib.LoadDir(cfg.Papers.Dir)
		if err != nil {
			return nil, err
		}
		log.WithField("count", n).Debug("loaded paper blueprints")
	}
	return lib, nil
}

