// Copyright 2021-2023
// SPDX-License-Identifier: Apache-2.0
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package cmd

import (
	"context"
	"fmt"

	"github.com/penny-vault/pmatrix/performance"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(returnsCmd)
}

var returnsCmd = &cobra.Command{
	Use:   "returns <values.csv> [values.csv ...]",
	Short: "derive the forward period returns of net value series",
	Long: `Derive forward period returns from net value series. Row t holds the return from
row t to row t+1, which is the layout the value command consumes; the last row is NaN.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		values, err := loadDataFrame(context.Background(), args)
		if err != nil {
			return err
		}

		fmt.Println(performance.ForwardReturns(values).Table())
		return nil
	},
}
