package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/c0deZ3R0/go-conflict-kit/config"
	"github.com/c0deZ3R0/go-conflict-kit/conflictkit"
	"github.com/c0deZ3R0/go-conflict-kit/harness"
	"github.com/c0deZ3R0/go-conflict-kit/logging"
	"github.com/c0deZ3R0/go-conflict-kit/report"
	"github.com/c0deZ3R0/go-conflict-kit/scenarios"
	"github.com/c0deZ3R0/go-conflict-kit/storage/sqlite"
)

func newRootCmd() *cobra.Command {
	var logLevel, logFormat string

	root := &cobra.Command{
		Use:           "conflictkit",
		Short:         "Deterministic conflict resolution strategies and their test harness",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cfg := logging.FromEnv()
			if logLevel != "" {
				cfg.Level = logLevel
			}
			if logFormat != "" {
				cfg.Format = logFormat
			}
			logging.Init(cfg)
		},
	}

	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
	root.PersistentFlags().StringVar(&logFormat, "log-format", "", "log format (text, json)")

	root.AddCommand(newRunCmd())
	root.AddCommand(newResolveCmd())
	root.AddCommand(newHistoryCmd())
	return root
}

func newRunCmd() *cobra.Command {
	var scenariosPath, historyPath string
	var quiet bool

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run all scenario suites and report aggregate results",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			opts := scenarios.Options{Out: cmd.OutOrStdout()}
			if quiet {
				opts.Out = io.Discard
			}

			if scenariosPath != "" {
				f, err := config.Load(scenariosPath)
				if err != nil {
					return err
				}
				extra, err := f.BuildSuites(harness.WithOutput(opts.Out))
				if err != nil {
					return err
				}
				opts.Extra = extra
			}

			agg := scenarios.RunAll(ctx, opts)
			if quiet {
				fmt.Fprintln(cmd.OutOrStdout(), report.RenderAggregate(agg.Suites))
			}

			if historyPath != "" {
				if err := saveHistory(cmd, historyPath, agg); err != nil {
					return err
				}
			}

			if !agg.OK() {
				return fmt.Errorf("%d of %d fixtures failed", agg.Failed, agg.Total)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&scenariosPath, "scenarios", "", "YAML or JSON file with additional scenario suites")
	cmd.Flags().StringVar(&historyPath, "history", "", "SQLite database path for recording run history")
	cmd.Flags().BoolVar(&quiet, "quiet", false, "suppress per-case output, print only the aggregate")
	return cmd
}

func saveHistory(cmd *cobra.Command, path string, agg scenarios.Aggregate) error {
	store, err := sqlite.NewWithDataSource(path)
	if err != nil {
		return err
	}
	defer store.Close()

	run := sqlite.Run{
		ID:        agg.RunID,
		StartedAt: agg.StartedAt,
		Duration:  agg.Duration,
		Total:     agg.Total,
		Passed:    agg.Passed,
		Failed:    agg.Failed,
	}
	for _, s := range agg.Suites {
		run.Suites = append(run.Suites, sqlite.SuiteResult{
			Suite:    s.Suite,
			Total:    s.Total,
			Passed:   s.Passed,
			Failed:   s.Failed,
			Duration: s.Duration,
		})
	}
	return store.SaveRun(cmd.Context(), run)
}

func newResolveCmd() *cobra.Command {
	var strategyName string

	cmd := &cobra.Command{
		Use:   "resolve <local.json> <remote.json>",
		Short: "Resolve two record files with a named strategy",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			strategy, err := config.StrategyByName(strategyName)
			if err != nil {
				return err
			}

			local, err := readRecord(args[0])
			if err != nil {
				return err
			}
			remote, err := readRecord(args[1])
			if err != nil {
				return err
			}

			resolved := strategy.Resolve(local, remote)
			out, err := json.MarshalIndent(resolved, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return nil
		},
	}

	cmd.Flags().StringVar(&strategyName, "strategy", "router",
		"strategy: last-write-wins, version-based, field-merge, semantic-merge, delete-update, router")
	return cmd
}

func readRecord(path string) (conflictkit.Record, error) {
	var r conflictkit.Record
	data, err := os.ReadFile(path)
	if err != nil {
		return r, err
	}
	if err := json.Unmarshal(data, &r); err != nil {
		return r, fmt.Errorf("parsing %s: %w", path, err)
	}
	return r, nil
}

func newHistoryCmd() *cobra.Command {
	var historyPath string
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded harness runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := sqlite.NewWithDataSource(historyPath)
			if err != nil {
				return err
			}
			defer store.Close()

			runs, err := store.ListRuns(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if len(runs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no runs recorded")
				return nil
			}

			for _, r := range runs {
				fmt.Fprintf(cmd.OutOrStdout(), "%s  %s  total=%d passed=%d failed=%d (%s)\n",
					r.StartedAt.Format("2006-01-02 15:04:05"), r.ID, r.Total, r.Passed, r.Failed, r.Duration)
				for _, s := range r.Suites {
					fmt.Fprintf(cmd.OutOrStdout(), "    %-24s total=%d passed=%d failed=%d\n",
						s.Suite, s.Total, s.Passed, s.Failed)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&historyPath, "history", "conflictkit-history.db", "SQLite database path")
	cmd.Flags().IntVar(&limit, "limit", 10, "maximum number of runs to list (0 = all)")
	return cmd
}
