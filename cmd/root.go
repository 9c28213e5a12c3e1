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

// Package cmd is the main command file for Cobra
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/sboehler/networth/cmd/commands"
	"github.com/sboehler/networth/cmd/completion"
	"github.com/sboehler/networth/cmd/flags"
)

// CreateCmd creates the root command.
func CreateCmd(version string) *cobra.Command {
	var global flags.GlobalFlags
	c := &cobra.Command{
		Use:     "networth",
		Short:   "networth tracks your net worth over time",
		Long:    `networth values the holdings of all your accounts and wallets and keeps a daily history of your net worth.`,
		Version: version,
	}
	global.Setup(c)
	c.AddCommand(commands.CreateRunCommand(&global))
	c.AddCommand(commands.CreateHistoryCommand(&global))
	c.AddCommand(commands.CreatePriceCommand(&global))
	c.AddCommand(completion.CreateCmd(c))
	return c
}

// Execute runs the root command until it completes or the process is
// interrupted. This is called by main.main().
func Execute(version string) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	c := CreateCmd(version)
	if err := c.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(c.ErrOrStderr(), err)
		stop()
		os.Exit(1)
	}
}
