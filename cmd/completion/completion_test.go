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

package completion

import (
	"bytes"
	"strings"
	"testing"

	"github.com/spf13/cobra"
)

func TestGenerate(t *testing.T) {
	root := &cobra.Command{Use: "networth"}
	root.AddCommand(&cobra.Command{Use: "history", Run: func(*cobra.Command, []string) {}})

	for _, shell := range []string{"bash", "zsh", "fish"} {
		var buf bytes.Buffer
		if err := generate(root, shell, &buf); err != nil {
			t.Fatalf("generate(%s): unexpected error %v", shell, err)
		}
		if !strings.Contains(buf.String(), "networth") {
			t.Errorf("generate(%s): output does not mention the command", shell)
		}
	}
	if err := generate(root, "tcsh", new(bytes.Buffer)); err == nil {
		t.Error("generate(tcsh): expected an error")
	}
}
