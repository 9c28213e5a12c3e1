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

// Package config holds the settings of networth. Settings are read from
// an optional YAML file and overridden by environment variables, which
// may in turn be set in a .env file.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"

	"github.com/sboehler/networth/lib/holding"
)

// Environment variables overriding the configuration file.
const (
	EnvDataDir     = "NETWORTH_DATA_DIR"
	EnvLedgerFile  = "NETWORTH_LEDGER_FILE"
	EnvConcurrency = "NETWORTH_CONCURRENCY"
)

// Quotes configures market data lookups.
type Quotes struct {
	URL      string        `yaml:"url"`
	Timeout  time.Duration `yaml:"timeout"`
	Attempts int           `yaml:"attempts"`
	Backoff  time.Duration `yaml:"backoff"`
}

// Config is the configuration of a run.
type Config struct {
	DataDir     string `yaml:"data_dir"`
	LedgerFile  string `yaml:"ledger_file"`
	Encoding    string `yaml:"encoding"`
	Concurrency int    `yaml:"concurrency"`
	Quotes      Quotes `yaml:"quotes"`
}

// Default returns the default configuration.
func Default() Config {
	return Config{
		DataDir:     "data/money",
		LedgerFile:  "data/net_worth_history/net_worth_history.csv",
		Encoding:    "utf-8",
		Concurrency: 4,
		Quotes: Quotes{
			Timeout:  10 * time.Second,
			Attempts: 3,
			Backoff:  250 * time.Millisecond,
		},
	}
}

// Read decodes a configuration strictly. Settings which are absent keep
// their default values.
func Read(r io.Reader) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(r)
	dec.SetStrict(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, err
	}
	return cfg, nil
}

// Load reads the configuration file at path, applies the environment and
// validates the result. An empty path selects the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return Config{}, err
		}
		defer f.Close()
		if cfg, err = Read(f); err != nil {
			return Config{}, fmt.Errorf("%s: %w", path, err)
		}
	}
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadEnv loads .env files into the environment, without overriding
// variables which are already set. Missing files are ignored.
func LoadEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%s: %w", f, err)
		}
	}
	return nil
}

// ApplyEnv overrides settings with the environment variables found by
// lookup.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvDataDir); ok && v != "" {
		c.DataDir = v
	}
	if v, ok := lookup(EnvLedgerFile); ok && v != "" {
		c.LedgerFile = v
	}
	if v, ok := lookup(EnvConcurrency); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvConcurrency, err)
		}
		c.Concurrency = n
	}
	return nil
}

// Validate checks the configuration.
func (c Config) Validate() error {
	switch {
	case c.DataDir == "":
		return errors.New("data_dir must not be empty")
	case c.LedgerFile == "":
		return errors.New("ledger_file must not be empty")
	case c.Concurrency < 1:
		return fmt.Errorf("concurrency must be at least 1, got %d", c.Concurrency)
	case c.Quotes.Attempts < 1:
		return fmt.Errorf("quotes.attempts must be at least 1, got %d", c.Quotes.Attempts)
	case c.Quotes.Timeout < 0 || c.Quotes.Backoff < 0:
		return errors.New("quotes.timeout and quotes.backoff must not be negative")
	}
	return holding.CheckEncoding(c.Encoding)
}
