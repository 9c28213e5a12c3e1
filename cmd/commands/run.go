// Copyright 2021 Silvio Böhler
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package commands

import (
	"bufio"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sboehler/networth/cmd/flags"
	"github.com/sboehler/networth/lib/common/date"
	"github.com/sboehler/networth/lib/holding"
	"github.com/sboehler/networth/lib/ledger"
	"github.com/sboehler/networth/lib/networth"
	"github.com/sboehler/networth/lib/report"
	"github.com/sboehler/networth/lib/valuation"
)

// CreateRunCommand creates the command.
func CreateRunCommand(global *flags.GlobalFlags) *cobra.Command {
	r := runRunner{global: global}
	cmd := &cobra.Command{
		Use:   "run",
		Short: "compute the net worth and record it",
		Long: `Value all records below the data directory, print a summary and merge the
result into the net worth history. Running again on the same day replaces
the entry of that day.`,

		Args: cobra.NoArgs,

		Run: r.run,
	}
	r.setupFlags(cmd)
	return cmd
}

type runRunner struct {
	global *flags.GlobalFlags

	dataDir, ledgerFile string
	date                flags.DateFlag
	concurrency         int
	dryRun              bool
	details             bool
	progress            bool
	output              outputFlags
}

func (r *runRunner) setupFlags(c *cobra.Command) {
	c.Flags().StringVar(&r.dataDir, "data", "", "directory containing the records")
	c.Flags().StringVar(&r.ledgerFile, "ledger", "", "net worth history file")
	c.Flags().Var(&r.date, "date", "date of the snapshot (default today)")
	c.Flags().IntVar(&r.concurrency, "concurrency", 0, "number of records valued in parallel")
	c.Flags().BoolVar(&r.dryRun, "dry-run", false, "do not write the history")
	c.Flags().BoolVarP(&r.details, "details", "d", false, "show every holding")
	c.Flags().BoolVar(&r.progress, "progress", false, "show a progress bar")
	r.output.setup(c)
}

func (r *runRunner) run(cmd *cobra.Command, args []string) {
	if err := r.execute(cmd, args); err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), err)
		os.Exit(1)
	}
}

func (r *runRunner) execute(cmd *cobra.Command, args []string) error {
	cfg, err := r.global.Config()
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("data") {
		cfg.DataDir = r.dataDir
	}
	if cmd.Flags().Changed("ledger") {
		cfg.LedgerFile = r.ledgerFile
	}
	if cmd.Flags().Changed("concurrency") {
		cfg.Concurrency = r.concurrency
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	log := r.global.Logger(cmd)
	defer log.Sync()

	e := &networth.Engine{
		Loader:      holding.Loader{Encoding: cfg.Encoding},
		DataDir:     cfg.DataDir,
		Prices:      newOracle(cfg, log).Price,
		Ledger:      ledger.File{Path: cfg.LedgerFile},
		Concurrency: cfg.Concurrency,
		DryRun:      r.dryRun,
		Logger:      log,
		Report: func(res valuation.Result) {
			log.Info("valued source",
				zap.String("source", res.Source),
				zap.Stringer("kind", res.Kind),
				zap.Stringer("subtotal", res.Subtotal))
		},
	}
	if r.progress {
		e.Progress = cmd.ErrOrStderr()
	}
	out, err := e.Run(cmd.Context(), r.date.ValueOr(date.Today()))
	if err != nil {
		return err
	}

	w := bufio.NewWriter(cmd.OutOrStdout())
	defer w.Flush()
	tbl := report.Renderer{Details: r.details}.Summary(out.Summary)
	if err := r.output.renderer().Render(tbl, w); err != nil {
		return err
	}
	if out.NewHigh && !r.output.csv {
		color.NoColor = !r.output.color
		banner := color.New(color.FgGreen, color.Bold)
		if _, err := banner.Fprintf(w, "New all-time high: %s\n", out.Summary.Snapshot.NetWorth.StringFixed(2)); err != nil {
			return err
		}
	}
	return nil
}
