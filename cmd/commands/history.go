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

	"github.com/spf13/cobra"

	"github.com/sboehler/networth/cmd/flags"
	"github.com/sboehler/networth/lib/ledger"
	"github.com/sboehler/networth/lib/report"
)

// CreateHistoryCommand creates the command.
func CreateHistoryCommand(global *flags.GlobalFlags) *cobra.Command {
	r := historyRunner{global: global}
	cmd := &cobra.Command{
		Use:   "history",
		Short: "print the net worth history",
		Long:  `Print the net worth history. Sources without a value on a day are left blank.`,

		Args: cobra.NoArgs,

		Run: r.run,
	}
	r.setupFlags(cmd)
	return cmd
}

type historyRunner struct {
	global *flags.GlobalFlags

	ledgerFile string
	period     flags.PeriodFlags
	output     outputFlags
}

func (r *historyRunner) setupFlags(c *cobra.Command) {
	c.Flags().StringVar(&r.ledgerFile, "ledger", "", "net worth history file")
	r.period.Setup(c)
	r.output.setup(c)
}

func (r *historyRunner) run(cmd *cobra.Command, args []string) {
	if err := r.execute(cmd, args); err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), err)
		os.Exit(1)
	}
}

func (r *historyRunner) execute(cmd *cobra.Command, args []string) error {
	cfg, err := r.global.Config()
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("ledger") {
		cfg.LedgerFile = r.ledgerFile
	}
	t, err := ledger.File{Path: cfg.LedgerFile}.Load()
	if err != nil {
		return err
	}
	w := bufio.NewWriter(cmd.OutOrStdout())
	defer w.Flush()
	return r.output.renderer().Render(report.History(t, r.period.Value()), w)
}
