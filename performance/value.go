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

package performance

import (
	"fmt"
	"math"
	"time"

	"github.com/penny-vault/pmatrix/common"
	"github.com/penny-vault/pmatrix/dataframe"
)

// ReconstructValue compounds a table of period returns into a value table where every
// column starts at initCash. See ReconstructValueFrom.
func ReconstructValue(returns *dataframe.DataFrame, initCash float64) (*dataframe.DataFrame, error) {
	initial := make([]float64, len(returns.Vals))
	for idx := range initial {
		initial[idx] = initCash
	}
	return ReconstructValueFrom(returns, initial)
}

// ReconstructValueFrom compounds a table of period returns into a value table whose first row
// is initial, one starting value per column. Row t-1 of returns is the return realized going
// into row t:
//
//	value[0] = initial
//	value[t] = value[t-1] * (1 + returns[t-1])
//
// The final row of returns is never read. The output shares the dates and column names of
// returns; ReconstructValueFrom(ForwardReturns(df), firstRow) recovers df.
func ReconstructValueFrom(returns *dataframe.DataFrame, initial []float64) (*dataframe.DataFrame, error) {
	if returns.Len() == 0 {
		return nil, fmt.Errorf("%w: return table is empty", ErrInsufficientData)
	}

	if len(initial) != len(returns.Vals) {
		return nil, fmt.Errorf("%w: %d starting values for %d columns", dataframe.ErrColumnLength, len(initial), len(returns.Vals))
	}

	vals := make([][]float64, len(returns.Vals))
	for colIdx, col := range returns.Vals {
		start := initial[colIdx]
		if math.IsNaN(start) || math.IsInf(start, 0) || start <= 0 {
			return nil, fmt.Errorf("%w: column %q starting value must be positive, got %v", dataframe.ErrInvalidValue,
				returns.ColNames[colIdx], start)
		}

		value := make([]float64, len(col))
		value[0] = start
		for rowIdx := 1; rowIdx < len(col); rowIdx++ {
			r := col[rowIdx-1]
			if math.IsNaN(r) || math.IsInf(r, 0) {
				return nil, fmt.Errorf("%w: column %q return on %s is %v", dataframe.ErrInvalidValue, returns.ColNames[colIdx],
					returns.Dates[rowIdx-1].Format(common.DateFormat), r)
			}
			value[rowIdx] = value[rowIdx-1] * (1.0 + r)
		}
		vals[colIdx] = value
	}

	dates := make([]time.Time, len(returns.Dates))
	copy(dates, returns.Dates)
	colNames := make([]string, len(returns.ColNames))
	copy(colNames, returns.ColNames)

	return &dataframe.DataFrame{
		Dates:    dates,
		ColNames: colNames,
		Vals:     vals,
	}, nil
}

// ForwardReturns converts a value table into the return table consumed by ReconstructValueFrom:
// row t holds the return from row t to row t+1 and the final row is NaN.
func ForwardReturns(values *dataframe.DataFrame) *dataframe.DataFrame {
	return values.PctChange().Lead(1)
}
