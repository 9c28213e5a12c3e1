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

package flags

import (
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/sboehler/networth/lib/common/date"
	"github.com/sboehler/networth/lib/common/logging"
	"github.com/sboehler/networth/lib/config"
)

// DateFlag manages a flag to determine a date.
type DateFlag time.Time

var _ pflag.Value = (*DateFlag)(nil)

func (tf DateFlag) String() string {
	if tf.Value().IsZero() {
		return ""
	}
	return date.Format(tf.Value())
}

// Set implements pflag.Value.
func (tf *DateFlag) Set(v string) error {
	t, err := date.Parse(v)
	if err != nil {
		return err
	}
	*tf = (DateFlag)(t)
	return nil
}

// Type implements pflag.Value.
func (tf DateFlag) Type() string {
	return "YYYY-MM-DD"
}

// Value returns the flag value.
func (tf DateFlag) Value() time.Time {
	return time.Time(tf)
}

// ValueOr returns the flag value, or t if the flag is not set.
func (tf DateFlag) ValueOr(t time.Time) time.Time {
	v := tf.Value()
	if v.IsZero() {
		return t
	}
	return v
}

// GlobalFlags are the flags shared by all commands.
type GlobalFlags struct {
	ConfigFile string
	EnvFile    string
	Verbose    bool
}

// Setup registers the flags as persistent flags of cmd.
func (g *GlobalFlags) Setup(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVar(&g.ConfigFile, "config", "", "configuration file (YAML)")
	cmd.PersistentFlags().StringVar(&g.EnvFile, "env-file", ".env", "file with environment variables")
	cmd.PersistentFlags().BoolVarP(&g.Verbose, "verbose", "v", false, "log debug messages")
}

// Config loads the environment file and the configuration.
func (g *GlobalFlags) Config() (config.Config, error) {
	if err := config.LoadEnv(g.EnvFile); err != nil {
		return config.Config{}, err
	}
	return config.Load(g.ConfigFile)
}

// Logger creates a logger writing to the error stream of cmd.
func (g *GlobalFlags) Logger(cmd *cobra.Command) *zap.Logger {
	return logging.NewTo(cmd.ErrOrStderr(), g.Verbose)
}
