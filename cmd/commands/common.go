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

// Package commands contains the subcommands of networth.
package commands

import (
	"io"
	"net/http"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sboehler/networth/lib/common/table"
	"github.com/sboehler/networth/lib/config"
	"github.com/sboehler/networth/lib/price"
	"github.com/sboehler/networth/lib/quotes/yahoo"
)

func newOracle(cfg config.Config, log *zap.Logger) *price.Oracle {
	client := yahoo.New()
	if cfg.Quotes.URL != "" {
		client = yahoo.NewWithURL(cfg.Quotes.URL, http.DefaultClient)
	}
	policy := price.DefaultPolicy()
	policy.Attempts = cfg.Quotes.Attempts
	policy.Timeout = cfg.Quotes.Timeout
	policy.Backoff = cfg.Quotes.Backoff
	return price.New(price.SourceFunc(client.LastPrice), price.WithPolicy(policy), price.WithLogger(log))
}

type renderer interface {
	Render(*table.Table, io.Writer) error
}

// outputFlags select how tables are rendered.
type outputFlags struct {
	csv, color, thousands bool
}

func (o *outputFlags) setup(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&o.csv, "csv", false, "render as CSV")
	cmd.Flags().BoolVar(&o.color, "color", true, "print output in color")
	cmd.Flags().BoolVarP(&o.thousands, "thousands", "k", false, "show numbers in thousands")
}

func (o outputFlags) renderer() renderer {
	if o.csv {
		return new(table.CSVRenderer)
	}
	return &table.TextRenderer{Color: o.color, Thousands: o.thousands, Round: 2}
}
