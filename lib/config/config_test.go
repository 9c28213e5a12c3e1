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

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestRead(t *testing.T) {
	input := strings.Join([]string{
		"data_dir: /srv/money",
		"encoding: windows-1252",
		"quotes:",
		"  url: http://localhost:8080/chart",
		"  timeout: 2s",
		"  attempts: 5",
	}, "\n")

	got, err := Read(strings.NewReader(input))

	if err != nil {
		t.Fatalf("Read(): unexpected error %v", err)
	}
	want := Default()
	want.DataDir = "/srv/money"
	want.Encoding = "windows-1252"
	want.Quotes = Quotes{
		URL:      "http://localhost:8080/chart",
		Timeout:  2 * time.Second,
		Attempts: 5,
		Backoff:  250 * time.Millisecond,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Read() returned unexpected diff (-want, +got):\n%s", diff)
	}
}

func TestReadEmpty(t *testing.T) {
	got, err := Read(strings.NewReader(""))

	if err != nil {
		t.Fatalf("Read(): unexpected error %v", err)
	}
	if diff := cmp.Diff(Default(), got); diff != "" {
		t.Errorf("Read() returned unexpected diff (-want, +got):\n%s", diff)
	}
}

func TestReadStrict(t *testing.T) {
	if _, err := Read(strings.NewReader("data_directory: /srv/money\n")); err == nil {
		t.Error("Read(): expected an error for an unknown key")
	}
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		EnvDataDir:     "/srv/money",
		EnvLedgerFile:  "",
		EnvConcurrency: "8",
	}
	lookup := func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}
	cfg := Default()

	if err := cfg.ApplyEnv(lookup); err != nil {
		t.Fatalf("ApplyEnv(): unexpected error %v", err)
	}

	want := Default()
	want.DataDir = "/srv/money"
	want.Concurrency = 8
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("ApplyEnv() returned unexpected diff (-want, +got):\n%s", diff)
	}

	env[EnvConcurrency] = "many"
	if err := cfg.ApplyEnv(lookup); err == nil {
		t.Error("ApplyEnv(): expected an error for a non-numeric concurrency")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		desc   string
		modify func(*Config)
	}{
		{"empty data dir", func(c *Config) { c.DataDir = "" }},
		{"empty ledger file", func(c *Config) { c.LedgerFile = "" }},
		{"zero concurrency", func(c *Config) { c.Concurrency = 0 }},
		{"zero attempts", func(c *Config) { c.Quotes.Attempts = 0 }},
		{"negative backoff", func(c *Config) { c.Quotes.Backoff = -time.Second }},
		{"unknown encoding", func(c *Config) { c.Encoding = "ebcdic" }},
	}
	if err := Default().Validate(); err != nil {
		t.Fatalf("Validate(): unexpected error %v for the defaults", err)
	}
	for _, test := range tests {
		test := test
		t.Run(test.desc, func(t *testing.T) {
			cfg := Default()
			test.modify(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("Validate(): expected an error")
			}
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "networth.yaml")
	if err := os.WriteFile(path, []byte("ledger_file: history.csv\nconcurrency: 2\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv(EnvConcurrency, "3")

	got, err := Load(path)

	if err != nil {
		t.Fatalf("Load(): unexpected error %v", err)
	}
	if got.LedgerFile != "history.csv" || got.Concurrency != 3 {
		t.Errorf("Load() = %+v, want ledger file history.csv and concurrency 3", got)
	}
}

func TestLoadEnv(t *testing.T) {
	var (
		dir  = t.TempDir()
		path = filepath.Join(dir, ".env")
	)
	if err := os.WriteFile(path, []byte(EnvDataDir+"=/from/dotenv\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv(EnvDataDir, "")
	os.Unsetenv(EnvDataDir)

	if err := LoadEnv(path, filepath.Join(dir, "missing.env")); err != nil {
		t.Fatalf("LoadEnv(): unexpected error %v", err)
	}

	if got := os.Getenv(EnvDataDir); got != "/from/dotenv" {
		t.Errorf("%s = %q, want /from/dotenv", EnvDataDir, got)
	}
}
