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

package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/sboehler/networth/cmd"
)

// main prints the help of every command as Markdown.
func main() {
	var b strings.Builder
	b.WriteString("# networth\n")
	for _, args := range [][]string{
		{"--help"},
		{"run", "--help"},
		{"history", "--help"},
		{"price", "--help"},
	} {
		fmt.Fprintf(&b, "\n```\n%s```\n", run(args))
	}
	if _, err := os.Stdout.WriteString(b.String()); err != nil {
		panic(err)
	}
}

func run(args []string) string {
	var c = cmd.CreateCmd("development")
	c.SetArgs(args)
	var b strings.Builder
	b.WriteString("$ networth")
	for _, a := range args {
		b.WriteRune(' ')
		b.WriteString(a)
	}
	b.WriteRune('\n')
	c.SetOut(&b)
	c.Execute()
	return b.String()
}
