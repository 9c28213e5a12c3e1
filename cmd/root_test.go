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

package cmd

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/sboehler/networth/lib/config"
)

type env struct {
	dir    string
	config string
}

func setup(t *testing.T) env {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v8/finance/chart/BTC-USD" {
			http.NotFound(w, r)
			return
		}
		fmt.Fprint(w, `{"chart":{"result":[{"meta":{"currency":"USD","symbol":"BTC-USD","regularMarketPrice":50000.25}}],"error":null}}`)
	}))
	t.Cleanup(srv.Close)
	for _, k := range []string{config.EnvDataDir, config.EnvLedgerFile, config.EnvConcurrency} {
		t.Setenv(k, "")
	}

	dir := t.TempDir()
	files := map[string]string{
		"money/bank.csv":   "type,cash\n2,500\n",
		"money/wallet.csv": "type,BTC-USD\n1,0.5\n",
		"networth.yaml": fmt.Sprintf("data_dir: %s\nledger_file: %s\nquotes:\n  url: %s/v8/finance/chart\n  attempts: 1\n",
			filepath.Join(dir, "money"), filepath.Join(dir, "history.csv"), srv.URL),
	}
	for name, content := range files {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return env{dir: dir, config: filepath.Join(dir, "networth.yaml")}
}

func (e env) execute(t *testing.T, args ...string) string {
	t.Helper()
	var out, errs bytes.Buffer
	c := CreateCmd("test")
	c.SetArgs(append(args, "--config", e.config, "--env-file", filepath.Join(e.dir, "missing.env")))
	c.SetOut(&out)
	c.SetErr(&errs)
	if err := c.Execute(); err != nil {
		t.Fatalf("Execute(%v): unexpected error %v\n%s", args, err, errs.String())
	}
	return out.String()
}

func TestRunAndHistory(t *testing.T) {
	e := setup(t)

	got := e.execute(t, "run", "--date", "2024-01-01", "--csv")

	want := "Source,Quantity,Price,Value\n" +
		"bank,,,500\n" +
		"wallet,,,25000.13\n" +
		"Holdings,,,\n" +
		"cash,500,,500\n" +
		"BTC-USD,0.5,,25000.13\n" +
		"Net worth,,,25500.13\n"
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("run: unexpected diff (-want, +got):\n%s", diff)
	}

	got = e.execute(t, "history", "--csv")

	want = "Date,Net worth,bank,wallet\n" +
		"2024-01-01,25500.13,500,25000.13\n"
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("history: unexpected diff (-want, +got):\n%s", diff)
	}
}

func TestRunDryRun(t *testing.T) {
	e := setup(t)

	e.execute(t, "run", "--dry-run", "--csv")

	if _, err := os.Stat(filepath.Join(e.dir, "history.csv")); !os.IsNotExist(err) {
		t.Errorf("history file: got %v, want it not to exist", err)
	}
}

func TestPrice(t *testing.T) {
	e := setup(t)

	got := e.execute(t, "price", "--csv", "BTC-USD")

	if diff := cmp.Diff("Symbol,Price\nBTC-USD,50000.25\n", got); diff != "" {
		t.Errorf("price: unexpected diff (-want, +got):\n%s", diff)
	}
}
