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
	"github.com/rs/zerolog/log"
	"gonum.org/v1/gonum/floats"
)

// DrawDown is the largest peak-to-trough decline of a series. Begin is the peak that
// preceded the decline, End is the date of the deepest loss and Recovery is the date with the
// smallest drawdown on or after End. If the series never regains its peak then Recovery is
// the best point reached since the trough rather than a full recovery.
type DrawDown struct {
	Asset       string    `json:"asset"`
	Begin       time.Time `json:"begin"`
	End         time.Time `json:"end"`
	Recovery    time.Time `json:"recovery"`
	LossPercent float64   `json:"lossPercent"`
}

// DrawDownCurve computes 1 - value / running max for every column of df
func DrawDownCurve(df *dataframe.DataFrame) (*dataframe.DataFrame, error) {
	if err := checkValues(df); err != nil {
		return nil, err
	}

	peaks := df.CumMax()
	for colIdx, col := range peaks.Vals {
		for rowIdx, peak := range col {
			if peak == 0 {
				return nil, fmt.Errorf("%w: column %q has no positive value through %s", ErrZeroValue,
					df.ColNames[colIdx], df.Dates[rowIdx].Format(common.DateFormat))
			}
		}
	}

	return df.Div(peaks).MulScalar(-1).AddScalar(1), nil
}

// MaxDrawDowns locates the maximum drawdown of each column in df. The trough is the first
// date achieving the largest drawdown, the peak is the last date before the trough with the
// smallest drawdown, and recovery is the first date on or after the trough with the smallest
// drawdown. Results are returned in column order.
func MaxDrawDowns(df *dataframe.DataFrame) ([]*DrawDown, error) {
	if df.Len() < 2 {
		return nil, fmt.Errorf("%w: drawdown analysis needs at least 2 observations, have %d", ErrInsufficientData, df.Len())
	}

	curve, err := DrawDownCurve(df)
	if err != nil {
		return nil, err
	}

	res := make([]*DrawDown, len(curve.ColNames))
	for colIdx, col := range curve.Vals {
		endIdx := floats.MaxIdx(col)

		// a series that never declines peaks on the same day as its "trough"
		beginIdx := endIdx
		if endIdx > 0 {
			beginIdx = lastMinIdx(col[:endIdx])
		}

		recoveryIdx := endIdx + floats.MinIdx(col[endIdx:])

		res[colIdx] = &DrawDown{
			Asset:       curve.ColNames[colIdx],
			Begin:       common.DateOnly(curve.Dates[beginIdx]),
			End:         common.DateOnly(curve.Dates[endIdx]),
			Recovery:    common.DateOnly(curve.Dates[recoveryIdx]),
			LossPercent: col[endIdx],
		}

		log.Debug().Object("DrawDown", res[colIdx]).Msg("max drawdown")
	}

	return res, nil
}

// checkValues verifies that every value in df is finite and non-negative
func checkValues(df *dataframe.DataFrame) error {
	for colIdx, col := range df.Vals {
		for rowIdx, val := range col {
			switch {
			case math.IsNaN(val) || math.IsInf(val, 0):
				return fmt.Errorf("%w: column %q on %s is %v", dataframe.ErrInvalidValue, df.ColNames[colIdx],
					df.Dates[rowIdx].Format(common.DateFormat), val)
			case val < 0:
				return fmt.Errorf("%w: column %q on %s is %v", ErrNegativeValue, df.ColNames[colIdx],
					df.Dates[rowIdx].Format(common.DateFormat), val)
			}
		}
	}
	return nil
}

// lastMinIdx returns the index of the last occurrence of the minimum value in s
func lastMinIdx(s []float64) int {
	idx := 0
	for ii, v := range s {
		if v <= s[idx] {
			idx = ii
		}
	}
	return idx
}
