package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/syssam/veloxdb"
	"github.com/syssam/veloxdb/cascade"
	"github.com/syssam/veloxdb/dialect"
	"github.com/syssam/veloxdb/dialect/sql"
	"github.com/syssam/veloxdb/schema"
	"github.com/syssam/veloxdb/store"
)

// app holds the global flags and the resources opened for a command.
type app struct {
	configPath string
	flags      Config

	log    *slog.Logger
	stats  *sql.StatsDriver
	client *store.Client
}

func newRootCmd() *cobra.Command {
	return newRoot(&app{})
}

func newRoot(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "veloxdb",
		Short:         "Plan and run cascading deletes",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	f := root.PersistentFlags()
	f.StringVar(&a.configPath, "config", "", "path of the YAML config file")
	f.StringVar(&a.flags.DSN, "dsn", "", "data source name")
	f.StringVar(&a.flags.Dialect, "dialect", "", "database dialect (postgres, mysql, sqlite)")
	f.StringVar(&a.flags.Schema, "schema", "", "path of the YAML schema document")
	f.BoolVar(&a.flags.Debug, "debug", false, "log every statement")
	f.StringVar(&a.flags.LogLevel, "log-level", "", "log level (debug, info, warn, error)")

	root.AddCommand(newPlanCmd(a), newDeleteCmd(a))
	return root
}

func newPlanCmd(a *app) *cobra.Command {
	var soft bool
	cmd := &cobra.Command{
		Use:     "plan <type> <id>",
		Short:   "Print the batches a delete would run, in execution order",
		Args:    cobra.ExactArgs(2),
		PreRunE: a.preRun,
		RunE: a.run(func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			row, err := a.row(ctx, args[0], args[1])
			if err != nil {
				return err
			}
			plan, err := a.client.Plan(ctx, row, kindOf(soft))
			if err != nil {
				return err
			}
			return printPlan(cmd.OutOrStdout(), plan)
		}),
	}
	cmd.Flags().BoolVar(&soft, "soft", false, "soft-delete the entity")
	return cmd
}

func newDeleteCmd(a *app) *cobra.Command {
	var soft bool
	cmd := &cobra.Command{
		Use:     "delete <type> <id>",
		Short:   "Delete an entity with its cascade",
		Args:    cobra.ExactArgs(2),
		PreRunE: a.preRun,
		RunE: a.run(func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			row, err := a.row(ctx, args[0], args[1])
			if err != nil {
				return err
			}
			var affected bool
			if soft {
				affected, err = a.client.SoftDelete(ctx, row)
			} else {
				affected, err = a.client.Delete(ctx, row)
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s: affected=%t\n", kindOf(soft), row, affected)
			return nil
		}),
	}
	cmd.Flags().BoolVar(&soft, "soft", false, "soft-delete the entity")
	return cmd
}

func (a *app) preRun(cmd *cobra.Command, _ []string) error {
	return a.open(cmd)
}

// run wraps a command body so the resources opened by preRun are released
// whether or not the body fails. Both errors are reported.
func (a *app) run(fn func(*cobra.Command, []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) (err error) {
		defer func() {
			err = veloxdb.NewAggregateError(err, a.close(cmd.Context()))
		}()
		return fn(cmd, args)
	}
}

func kindOf(soft bool) cascade.DeleteKind {
	if soft {
		return cascade.Soft
	}
	return cascade.Regular
}

// open loads the config, applies the flags set on the command line and
// connects to the database.
func (a *app) open(cmd *cobra.Command) error {
	cfg, err := loadConfig(a.configPath)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("dsn") {
		cfg.DSN = a.flags.DSN
	}
	if flags.Changed("dialect") {
		cfg.Dialect = a.flags.Dialect
	}
	if flags.Changed("schema") {
		cfg.Schema = a.flags.Schema
	}
	if flags.Changed("debug") {
		cfg.Debug = a.flags.Debug
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = a.flags.LogLevel
	}
	if err := cfg.validate(); err != nil {
		return err
	}
	a.log = newLogger(cmd.ErrOrStderr(), cfg)

	reg, err := schema.LoadFile(cfg.Schema)
	if err != nil {
		return err
	}
	drv, err := sql.Open(cfg.Dialect, cfg.DSN)
	if err != nil {
		return fmt.Errorf("open %s: %w", cfg.Dialect, err)
	}
	a.stats = sql.NewStatsDriver(drv,
		sql.WithSlowThreshold(cfg.SlowThreshold),
		sql.WithSlowQueryLog(a.log),
	)
	var d dialect.Driver = a.stats
	if cfg.Debug {
		d = sql.NewDebugDriver(d, a.log)
	}
	a.client = store.NewClient(d, reg, store.WithLogger(a.log))
	return nil
}

func (a *app) close(ctx context.Context) error {
	if a.client == nil {
		return nil
	}
	a.log.DebugContext(ctx, "statement stats", "stats", a.stats.QueryStats().Stats().String())
	err := a.client.Close()
	a.client = nil
	if err != nil {
		return fmt.Errorf("close %s: %w", a.stats.Dialect(), err)
	}
	return nil
}

// row loads the entity named by the command arguments. Soft-deleted rows
// are included so they can be restamped or hard-deleted.
func (a *app) row(ctx context.Context, typ, rawID string) (*store.Row, error) {
	d, ok := a.client.Registry().Descriptor(typ)
	if !ok {
		return nil, fmt.Errorf("unknown entity type %q", typ)
	}
	id, err := schema.NormalizeID(d.IDType(), rawID)
	if err != nil {
		return nil, fmt.Errorf("invalid %s id %q: %w", typ, rawID, err)
	}
	return a.client.Get(ctx, typ, id, store.WithDeleted())
}

func newLogger(w io.Writer, cfg Config) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		level = slog.LevelInfo
	}
	if cfg.Debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// printPlan writes one line per batch in execution order.
func printPlan(w io.Writer, p *cascade.Plan) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "STEP\tKIND\tTYPE\tIDS")
	step := 0
	line := func(kind cascade.DeleteKind, s cascade.Step) {
		step++
		ids := make([]string, len(s.IDs))
		for i, id := range s.IDs {
			ids[i] = fmt.Sprint(id)
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", step, kind, s.Type.Name(), strings.Join(ids, ","))
	}
	for _, s := range p.Soft {
		line(cascade.Soft, s)
	}
	for _, s := range p.Regular {
		line(cascade.Regular, s)
	}
	return tw.Flush()
}
