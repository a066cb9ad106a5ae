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
	"bytes"
	"context"
	"os"

	"github.com/penny-vault/pmatrix/common"
	"github.com/penny-vault/pmatrix/performance"
	"github.com/penny-vault/pmatrix/report"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	matrixBegin    string
	matrixEnd      string
	matrixFormat   string
	matrixOutput   string
	matrixResample bool
)

func init() {
	rootCmd.AddCommand(matrixCmd)

	matrixCmd.Flags().StringVar(&matrixBegin, "begin", "", "First date (inclusive) to include, YYYY-MM-DD; defaults to the first row")
	matrixCmd.Flags().StringVar(&matrixEnd, "end", "", "Last date (inclusive) to include, YYYY-MM-DD; defaults to the last row")
	matrixCmd.Flags().StringVar(&matrixFormat, "format", "table", "Output format: table, json or xlsx")
	matrixCmd.Flags().StringVarP(&matrixOutput, "output", "o", "", "Write output to file instead of stdout; a .lz4 suffix compresses the file")
	matrixCmd.Flags().BoolVar(&matrixResample, "resample", false, "Keep only the last observation of each period of --frequency before computing")
}

var matrixCmd = &cobra.Command{
	Use:   "matrix <values.csv> [values.csv ...]",
	Short: "compute the performance matrix of net value series",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		frequency, calendar, err := calcSettings()
		if err != nil {
			return err
		}

		format, err := report.ParseFormat(matrixFormat)
		if err != nil {
			return err
		}

		df, err := loadDataFrame(ctx, args)
		if err != nil {
			return err
		}

		if matrixResample {
			df = df.Frequency(frequency)
		}

		begin, err := parseDate(matrixBegin, df.Start())
		if err != nil {
			return err
		}

		end, err := parseDate(matrixEnd, df.End())
		if err != nil {
			return err
		}

		matrix, err := performance.NewMatrix(df, frequency, begin, end, calendar)
		if err != nil {
			log.Error().Err(err).Msg("could not compute performance matrix")
			return err
		}

		for _, row := range matrix.Rows {
			log.Info().Object("Row", row).Send()
		}

		buf := &bytes.Buffer{}
		if err := report.Write(buf, matrix, format); err != nil {
			return err
		}

		if matrixOutput == "" {
			_, err = os.Stdout.Write(buf.Bytes())
			return err
		}

		out := buf.Bytes()
		if common.IsCompressed(matrixOutput) {
			out, err = common.Compress(out)
			if err != nil {
				return err
			}
		}

		log.Info().Str("FileName", matrixOutput).Int("Bytes", len(out)).Msg("writing performance matrix")
		return os.WriteFile(matrixOutput, out, 0644)
	},
}
