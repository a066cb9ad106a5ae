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
	"gonum.org/v1/gonum/stat"
)

// DownsideThreshold is the return below which an observation counts towards downside
// deviation. It is slightly below zero so that flat periods are not counted as losses.
const DownsideThreshold = -1e-11

// Row holds the performance statistics of a single series
type Row struct {
	Asset                string    `json:"asset"`
	TotalReturn          float64   `json:"totalReturn"`
	AnnualizedReturn     float64   `json:"annualizedReturn"`
	AnnualizedVolatility float64   `json:"annualizedVolatility"`
	SharpeRatio          float64   `json:"sharpeRatio"`
	SortinoRatio         float64   `json:"sortinoRatio"`
	MaxDrawDown          float64   `json:"maxDrawDown"`
	CalmarRatio          float64   `json:"calmarRatio"`
	MaxDrawDownDate      time.Time `json:"maxDrawDownDate"`
	MaxDrawDownStart     time.Time `json:"maxDrawDownStart"`
	MaxDrawDownRecover   time.Time `json:"maxDrawDownRecover"`
}

// Matrix is the performance summary of every series in a value table, one row per column in
// the order of the input table
type Matrix struct {
	Begin          time.Time           `json:"begin"`
	End            time.Time           `json:"end"`
	Frequency      dataframe.Frequency `json:"frequency"`
	Calendar       Calendar            `json:"calendar"`
	PeriodsPerYear int                 `json:"periodsPerYear"`
	Rows           []*Row              `json:"rows"`
}

// NewMatrix computes the performance matrix of the value table df over [begin, end]. Returns
// are annualized with the number of periods per year implied by frequency and calendar.
//
// Ratios are not risk-free adjusted: Sharpe, Sortino and Calmar divide the annualized return
// by annualized volatility, annualized downside deviation and max drawdown respectively.
// Degenerate inputs return an error rather than NaN or Inf.
//
// Volatility and downside deviation are sample standard deviations, so every column needs at
// least 2 returns in the window and at least 2 of them below DownsideThreshold. A series with a
// single losing period, such as daily values 100, 110, 99, 105, 120, fails with
// ErrNoDownsideObservations even though its drawdown is well defined; use MaxDrawDowns for such
// series.
func NewMatrix(df *dataframe.DataFrame, frequency dataframe.Frequency, begin, end time.Time, calendar Calendar) (*Matrix, error) {
	trimmed := df.Trim(begin, end)
	if trimmed.Len() < 2 {
		log.Debug().Time("Begin", begin).Time("End", end).Int("NumRows", trimmed.Len()).Msg("not enough rows in requested range")
		return nil, fmt.Errorf("%w: [%s, %s] has %d rows", ErrEmptyRange, begin.Format(common.DateFormat),
			end.Format(common.DateFormat), trimmed.Len())
	}

	n, err := PeriodsPerYear(frequency, calendar)
	if err != nil {
		return nil, err
	}

	if err := checkValues(trimmed); err != nil {
		return nil, err
	}

	returns := trimmed.PctChange()

	drawDowns, err := MaxDrawDowns(trimmed)
	if err != nil {
		return nil, err
	}

	matrix := &Matrix{
		Begin:          trimmed.Start(),
		End:            trimmed.End(),
		Frequency:      frequency,
		Calendar:       calendar,
		PeriodsPerYear: n,
		Rows:           make([]*Row, 0, trimmed.ColCount()),
	}

	for colIdx, colName := range trimmed.ColNames {
		// row 0 of the return table has no prior value
		row, err := newRow(trimmed.Vals[colIdx], returns.Vals[colIdx][1:], n, drawDowns[colIdx])
		if err != nil {
			log.Warn().Err(err).Str("Asset", colName).Msg("could not compute performance")
			return nil, fmt.Errorf("column %q: %w", colName, err)
		}
		row.Asset = colName
		matrix.Rows = append(matrix.Rows, row)
	}

	log.Debug().Object("Matrix", matrix).Msg("computed performance matrix")

	return matrix, nil
}

func newRow(vals, returns []float64, periodsPerYear int, drawDown *DrawDown) (*Row, error) {
	for _, val := range vals[:len(vals)-1] {
		if val == 0 {
			return nil, fmt.Errorf("%w: period return is undefined after a zero value", ErrZeroValue)
		}
	}

	if len(returns) < 2 {
		return nil, fmt.Errorf("%w: volatility needs at least 2 returns, have %d", ErrInsufficientData, len(returns))
	}

	n := float64(periodsPerYear)
	row := &Row{}

	row.TotalReturn = vals[len(vals)-1]/vals[0] - 1.0
	// geometric annualization over the number of observations in the window
	row.AnnualizedReturn = math.Pow(1.0+row.TotalReturn, n/float64(len(vals))) - 1.0

	row.AnnualizedVolatility = stat.StdDev(returns, nil) * math.Sqrt(n)
	if row.AnnualizedVolatility == 0 {
		return nil, fmt.Errorf("%w: annualized volatility is zero", ErrUndefinedRatio)
	}
	row.SharpeRatio = row.AnnualizedReturn / row.AnnualizedVolatility

	downside := make([]float64, 0, len(returns))
	for _, r := range returns {
		if r < DownsideThreshold {
			downside = append(downside, r)
		}
	}

	if len(downside) < 2 {
		return nil, fmt.Errorf("%w: downside deviation needs at least 2 returns below %g, have %d",
			ErrNoDownsideObservations, DownsideThreshold, len(downside))
	}

	downsideDeviation := stat.StdDev(downside, nil) * math.Sqrt(n)
	if downsideDeviation == 0 {
		return nil, fmt.Errorf("%w: downside deviation is zero", ErrUndefinedRatio)
	}
	row.SortinoRatio = row.AnnualizedReturn / downsideDeviation

	row.MaxDrawDown = drawDown.LossPercent
	if row.MaxDrawDown == 0 {
		return nil, fmt.Errorf("%w: max drawdown is zero", ErrUndefinedRatio)
	}
	row.CalmarRatio = row.AnnualizedReturn / row.MaxDrawDown

	row.MaxDrawDownDate = drawDown.End
	row.MaxDrawDownStart = drawDown.Begin
	row.MaxDrawDownRecover = drawDown.Recovery

	return row, nil
}
