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
	"github.com/spf13/cobra"

	"github.com/sboehler/networth/lib/common/date"
)

// PeriodFlags manages the flags to determine a period.
type PeriodFlags struct {
	from, to DateFlag
}

// Setup configures the flags.
func (pf *PeriodFlags) Setup(cmd *cobra.Command) {
	cmd.Flags().Var(&pf.from, "from", "from date")
	cmd.Flags().Var(&pf.to, "to", "to date")
}

// Value returns the period. Bounds which are not set are open.
func (pf PeriodFlags) Value() date.Period {
	return date.Period{Start: pf.from.Value(), End: pf.to.Value()}
}
