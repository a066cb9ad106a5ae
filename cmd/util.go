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
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/penny-vault/pmatrix/common"
	"github.com/penny-vault/pmatrix/dataframe"
	"github.com/penny-vault/pmatrix/dfextras"
	"github.com/penny-vault/pmatrix/performance"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

// loadDataFrame reads every csv file (optionally lz4 compressed) and merges them, in argument order,
// into a single dataframe covering the dates common to all files
func loadDataFrame(ctx context.Context, fns []string) (*dataframe.DataFrame, error) {
	dropNA := viper.GetBool("calc.drop_na")
	dfMap := make(dataframe.Map, len(fns))
	for _, fn := range fns {
		subLog := log.With().Str("FileName", fn).Logger()

		raw, err := os.ReadFile(fn)
		if err != nil {
			subLog.Error().Err(err).Msg("could not read file")
			return nil, err
		}

		if common.IsCompressed(fn) {
			raw, err = common.Decompress(bytes.NewReader(raw))
			if err != nil {
				subLog.Error().Err(err).Msg("could not decompress file")
				return nil, fmt.Errorf("%s: %w", filepath.Base(fn), err)
			}
		}

		df, err := dfextras.ReadCSV(ctx, bytes.NewReader(raw), dropNA)
		if err != nil {
			subLog.Error().Err(err).Msg("could not read csv")
			return nil, fmt.Errorf("%s: %w", filepath.Base(fn), err)
		}

		subLog.Debug().Int("NumRows", df.Len()).Strs("Columns", df.ColNames).Msg("loaded csv")
		dfMap[fn] = df
	}

	return dfMap.DataFrame(fns...)
}

// calcSettings reads frequency and calendar from the configuration
func calcSettings() (dataframe.Frequency, performance.Calendar, error) {
	frequency, err := dataframe.ParseFrequency(viper.GetString("calc.frequency"))
	if err != nil {
		return "", "", err
	}

	calendar, err := performance.ParseCalendar(viper.GetString("calc.calendar"))
	if err != nil {
		return "", "", err
	}

	return frequency, calendar, nil
}

// parseDate parses a YYYY-MM-DD date, returning def if s is empty
func parseDate(s string, def time.Time) (time.Time, error) {
	if s == "" {
		return def, nil
	}
	return time.Parse(common.DateFormat, s)
}
