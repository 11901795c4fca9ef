package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/randalmurphal/seqfilter/config"
	"github.com/randalmurphal/seqfilter/metrics"
	"github.com/randalmurphal/seqfilter/pipeline"
	"github.com/randalmurphal/seqfilter/segment"
	"github.com/randalmurphal/seqfilter/watch"
)

// newRootCmd returns the seqfilter command tree.
func newRootCmd() *cobra.Command {
	flags := &cliFlags{}

	rootCmd := &cobra.Command{
		Use:   "seqfilter",
		Short: "Filter Seq2Seq data to a word budget per side",
		Long: `seqfilter trims delimited (source, target) training pairs so that each side
fits a word budget. Whole sentences are kept: the last ones of the source and
the first ones of the target.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// A missing .env is not an error.
			_ = godotenv.Load()
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(flags, cmd)
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return run(ctx, cfg, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	flags.register(rootCmd.Flags())

	rootCmd.AddCommand(newSchemaCmd())
	rootCmd.AddCommand(newLanguagesCmd())

	return rootCmd
}

// loadConfig merges defaults, config file, environment and flags.
func loadConfig(flags *cliFlags, cmd *cobra.Command) (config.Config, error) {
	cfg := config.Default()
	if flags.configFile != "" {
		if err := cfg.LoadFile(flags.configFile); err != nil {
			return cfg, fmt.Errorf("%w: %w", config.ErrInvalid, err)
		}
	}
	if err := cfg.LoadFromEnv(); err != nil {
		return cfg, err
	}
	flags.apply(cmd.Flags(), &cfg)
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// run builds the segmenter once and filters the input, repeatedly when
// watching.
func run(ctx context.Context, cfg config.Config, stdout, stderr io.Writer) error {
	logger := newLogger(cfg.Log, stderr)
	runID := uuid.NewString()
	log := logger.WithField("run_id", runID)

	log.WithFields(configFields(cfg)).Info("arguments")

	delim, err := cfg.DelimiterRune()
	if err != nil {
		return err
	}

	start := time.Now()
	seg, err := segment.New(cfg.Language, segment.Options{FixUnicode: cfg.FixUnicode})
	if err != nil {
		return err
	}
	log.WithFields(logrus.Fields{
		"language": cfg.Language,
		"elapsed":  time.Since(start).String(),
	}).Debug("segmenter loaded")

	p, err := pipeline.New(seg, pipeline.Options{
		Delimiter:  delim,
		MaxWords:   cfg.MaxWords,
		HasHeader:  cfg.HasHeader,
		Workers:    cfg.Workers,
		CRLF:       cfg.CRLF,
		LazyQuotes: cfg.LazyQuotes,
	})
	if err != nil {
		return err
	}
	p.WithLogger(log)

	var collector *metrics.Collector
	if cfg.MetricsFile != "" {
		collector = metrics.New()
		collector.SetRunInfo(runID, cfg.Language, cfg.MaxWords)
		p.WithRecorder(collector)
	}

	once := func(ctx context.Context) error {
		return runOnce(ctx, p, cfg, collector, log, stdout)
	}

	if !cfg.Watch {
		return once(ctx)
	}

	log.WithField("path", cfg.Input).Info("watching input for changes")
	err = watch.New(cfg.Input).WithLogger(log).Run(ctx, once)
	if errors.Is(err, context.Canceled) {
		log.Info("watch stopped")
		return nil
	}
	return err
}

func runOnce(ctx context.Context, p *pipeline.Pipeline, cfg config.Config, collector *metrics.Collector, log logrus.FieldLogger, stdout io.Writer) error {
	start := time.Now()
	log.WithField("input", cfg.Input).Info("processing input")

	stats, err := p.RunFiles(ctx, cfg.Input, cfg.Output)

	fields := logrus.Fields{
		"rows":      stats.Rows,
		"header":    stats.Header,
		"oversized": stats.Oversized,
		"elapsed":   time.Since(start).String(),
	}
	if collector != nil {
		collector.SetRunDuration(time.Since(start).Seconds())
		if werr := collector.WriteTextfile(cfg.MetricsFile); werr != nil {
			log.WithError(werr).Error("metrics not written")
			if err == nil {
				err = werr
			}
		}
	}
	if err != nil {
		log.WithFields(fields).WithError(err).Error("filtering failed")
		return err
	}

	log.WithFields(fields).Info("filtering complete")
	fmt.Fprintf(stdout, "Done. Wrote %d rows to %s\n", stats.Rows, cfg.Output)
	return nil
}

func newSchemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON Schema of the config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := config.Schema()
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(b))
			return err
		},
	}
}

func newLanguagesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "languages",
		Short: "List supported language codes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, lang := range segment.Available() {
				fmt.Fprintln(cmd.OutOrStdout(), lang)
			}
			return nil
		},
	}
}
