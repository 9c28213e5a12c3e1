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
	"go.uber.org/multierr"

	"github.com/sboehler/networth/cmd/flags"
	"github.com/sboehler/networth/lib/common/table"
)

// CreatePriceCommand creates the command.
func CreatePriceCommand(global *flags.GlobalFlags) *cobra.Command {
	r := priceRunner{global: global}
	cmd := &cobra.Command{
		Use:   "price SYMBOL...",
		Short: "look up current prices",
		Long:  `Look up the current prices of the given symbols from Yahoo! Finance.`,

		Args: cobra.MinimumNArgs(1),

		Run: r.run,
	}
	r.output.setup(cmd)
	return cmd
}

type priceRunner struct {
	global *flags.GlobalFlags
	output outputFlags
}

func (r *priceRunner) run(cmd *cobra.Command, args []string) {
	if err := r.execute(cmd, args); err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), err)
		os.Exit(1)
	}
}

func (r *priceRunner) execute(cmd *cobra.Command, args []string) (errs error) {
	cfg, err := r.global.Config()
	if err != nil {
		return err
	}
	log := r.global.Logger(cmd)
	defer log.Sync()
	o := newOracle(cfg, log)

	tbl := table.New(1, 1)
	tbl.AddSeparatorRow()
	tbl.AddRow().AddText("Symbol", table.Center).AddText("Price", table.Center)
	tbl.AddSeparatorRow()
	for _, sym := range args {
		p, err := o.Lookup(cmd.Context(), sym)
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		tbl.AddRow().AddText(sym, table.Left).AddText(p.String(), table.Right)
	}
	tbl.AddSeparatorRow()

	w := bufio.NewWriter(cmd.OutOrStdout())
	defer w.Flush()
	return multierr.Append(errs, r.output.renderer().Render(tbl, w))
}
