// Package cmd wires the cagra-build command line surface: a single
// command taking one positional config-file argument, grounded on
// junjiewwang-perf-analysis's cobra root command shape (verbose flag,
// PersistentPreRunE logger setup) generalized to this builder's single
// operation (SPEC_FULL.md S6.2).
package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cagraph/cagra/cagra"
	"github.com/cagraph/cagra/config"
	"github.com/cagraph/cagra/graphstore"
	"github.com/cagraph/cagra/logx"
	"github.com/cagraph/cagra/metrics"
)

var (
	verbose     bool
	format      string
	metricsAddr string

	logger logx.Logger = logx.Null{}
)

var rootCmd = &cobra.Command{
	Use:   "cagra-build <config-path>",
	Short: "Build a fixed-degree proximity graph from a precomputed KNNG",
	Long: `cagra-build loads a KNNG (efanna or fbin format) and a build
configuration, runs the reorder -> reverse -> merge pipeline, and saves
the result as either the KNNG or NSG on-disk format.`,
	Args: cobra.ExactArgs(1),
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level := logx.LevelInfo
		if verbose {
			level = logx.LevelDebug
		}
		logger = logx.New(level, os.Stdout)
		return nil
	},
	RunE: runBuild,
}

// Execute runs the root command, exiting nonzero on any failure -- a
// missing argument, unreadable file, unknown format, or precondition
// violation (spec.md S6's CLI surface contract).
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging and the dedup-edge diagnostic scan")
	rootCmd.Flags().StringVar(&format, "format", "nsg", `output format: "knng" or "nsg"`)
	rootCmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "if set, serve Prometheus metrics for this run at this address")
}

func runBuild(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(args[0])
	if err != nil {
		return err
	}

	var recorder metrics.Recorder = metrics.NopRecorder{}
	if metricsAddr != "" {
		m := metrics.New()
		srv := m.Serve(metricsAddr)
		defer srv.Close()
		recorder = m
	}

	logger.Info("loading KNNG from %s (format %s)", cfg.KnngPath, cfg.KnngFormat)
	knng, err := loadKNNG(cfg)
	if err != nil {
		return err
	}

	info := graphstore.GraphInfo{
		N:     knng.N(),
		R:     cfg.R,
		RInit: cfg.RInit,
		RKNNG: knng.K(),
	}

	builder := cagra.New(info, cagra.WithLogger(logger), cagra.WithMetrics(recorder))

	final, err := builder.Build(context.Background(), knng)
	if err != nil {
		return err
	}

	if verbose {
		edges, dedup, ratio := cagra.DedupStats(final)
		logger.Debug("dedup scan: total=%d dedup=%d ratio=%.4f", edges, dedup, ratio)
	}

	logger.Info("saving result to %s (format %s)", cfg.SavePath, format)
	switch format {
	case "knng":
		return final.SaveKNNG(cfg.SavePath)
	case "nsg":
		return final.SaveNSG(cfg.SavePath)
	default:
		return &graphstore.FormatError{Msg: fmt.Sprintf("unknown --format %q (want knng or nsg)", format)}
	}
}

func loadKNNG(cfg *config.Config) (*graphstore.FixedDegreeGraph, error) {
	switch cfg.KnngFormat {
	case config.FormatEfanna:
		return graphstore.LoadKNNG(cfg.KnngPath)
	case config.FormatFbin:
		return graphstore.LoadKNNGFbin(cfg.KnngPath)
	default:
		return nil, &graphstore.FormatError{Msg: fmt.Sprintf("unknown knng_format %q", cfg.KnngFormat)}
	}
}
