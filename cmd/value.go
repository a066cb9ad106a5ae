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

	"github.com/penny-vault/pmatrix/dataframe"
	"github.com/penny-vault/pmatrix/performance"
	"github.com/spf13/cobra"
)

var (
	initCash   float64
	initValues []float64
)

func init() {
	rootCmd.AddCommand(valueCmd)

	valueCmd.Flags().Float64Var(&initCash, "init-cash", 1.0, "Value of every series on the first date")
	valueCmd.Flags().Float64SliceVar(&initValues, "init-values", nil, "Per-column values on the first date, in column order; overrides --init-cash")
}

var valueCmd = &cobra.Command{
	Use:   "value <returns.csv> [returns.csv ...]",
	Short: "compound period returns into net value series",
	Long: `Compound period returns into net value series. Row t-1 of the input holds the
return realized going into row t; the last row of the input is not used.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		returns, err := loadDataFrame(context.Background(), args)
		if err != nil {
			return err
		}

		var values *dataframe.DataFrame
		if len(initValues) > 0 {
			values, err = performance.ReconstructValueFrom(returns, initValues)
		} else {
			values, err = performance.ReconstructValue(returns, initCash)
		}
		if err != nil {
			return err
		}

		fmt.Println(values.Table())
		return nil
	},
}
