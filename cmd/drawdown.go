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
	"github.com/penny-vault/pmatrix/report"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var drawDownCurve bool

func init() {
	rootCmd.AddCommand(drawDownCmd)

	drawDownCmd.Flags().BoolVar(&drawDownCurve, "curve", false, "Print the full drawdown curve")
}

var drawDownCmd = &cobra.Command{
	Use:   "drawdown <values.csv> [values.csv ...]",
	Short: "locate the max drawdown, its peak and its recovery for each series",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		df, err := loadDataFrame(context.Background(), args)
		if err != nil {
			return err
		}

		if drawDownCurve {
			curve, err := performance.DrawDownCurve(df)
			if err != nil {
				return err
			}
			fmt.Println(curve.Table())
		}

		drawDowns, err := performance.MaxDrawDowns(df)
		if err != nil {
			log.Error().Err(err).Msg("could not compute drawdowns")
			return err
		}

		log.Info().Int("NumDrawDowns", len(drawDowns)).Send()
		for _, drawDown := range drawDowns {
			log.Info().Object("drawDown", drawDown).Send()
		}

		fmt.Println(report.DrawDownTable(drawDowns))
		return nil
	},
}
