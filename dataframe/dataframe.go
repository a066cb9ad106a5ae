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

package dataframe

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/rs/zerolog/log"
)

// New creates a dataframe after checking that dates are strictly increasing, that every
// column has one finite value per date and that column names are unique. The slices are
// used as-is and not copied.
func New(dates []time.Time, colNames []string, vals [][]float64) (*DataFrame, error) {
	if len(colNames) == 0 {
		return nil, ErrNoColumns
	}

	if len(colNames) != len(vals) {
		return nil, fmt.Errorf("%w: %d column names for %d columns", ErrColumnLength, len(colNames), len(vals))
	}

	for idx := 1; idx < len(dates); idx++ {
		if !dates[idx-1].Before(dates[idx]) {
			log.Debug().Time("Prev", dates[idx-1]).Time("Next", dates[idx]).Int("Row", idx).Msg("date index is not strictly increasing")
			return nil, fmt.Errorf("%w: row %d (%s) does not follow %s", ErrDatesNotIncreasing, idx,
				dates[idx].Format("2006-01-02"), dates[idx-1].Format("2006-01-02"))
		}
	}

	seen := make(map[string]bool, len(colNames))
	for colIdx, colName := range colNames {
		if seen[colName] {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateColumn, colName)
		}
		seen[colName] = true

		if len(vals[colIdx]) != len(dates) {
			return nil, fmt.Errorf("%w: column %q has %d values for %d dates", ErrColumnLength, colName, len(vals[colIdx]), len(dates))
		}

		for rowIdx, val := range vals[colIdx] {
			if math.IsNaN(val) || math.IsInf(val, 0) {
				return nil, fmt.Errorf("%w: column %q row %d is %v", ErrInvalidValue, colName, rowIdx, val)
			}
		}
	}

	return &DataFrame{
		Dates:    dates,
		ColNames: colNames,
		Vals:     vals,
	}, nil
}

// ColIndex returns the index of the specified column; returns -1 if column doesn't exist
func (df *DataFrame) ColIndex(colName string) int {
	for idx, val := range df.ColNames {
		if colName == val {
			return idx
		}
	}

	return -1
}

// ColCount returns the number of columns in the dataframe
func (df *DataFrame) ColCount() int {
	return len(df.ColNames)
}

// Copy creates a deep copy of the dataframe
func (df *DataFrame) Copy() *DataFrame {
	df2 := &DataFrame{
		ColNames: make([]string, len(df.ColNames)),
		Dates:    make([]time.Time, len(df.Dates)),
		Vals:     make([][]float64, len(df.Vals)),
	}

	copy(df2.ColNames, df.ColNames)
	copy(df2.Dates, df.Dates)

	for idx := range df2.Vals {
		df2.Vals[idx] = make([]float64, len(df.Vals[idx]))
		copy(df2.Vals[idx], df.Vals[idx])
	}

	return df2
}

// End returns the last date in the DataFrame
func (df *DataFrame) End() time.Time {
	if len(df.Dates) == 0 {
		return time.Time{}
	}
	return df.Dates[len(df.Dates)-1]
}

// Frequency returns a dataframe holding the last observation of each period; note this is
// not an in-place function but creates a copy of the data. Daily returns a plain copy.
func (df *DataFrame) Frequency(frequency Frequency) *DataFrame {
	var samePeriod func(a, b time.Time) bool

	switch frequency {
	case Daily:
		return df.Copy()
	case Monthly:
		samePeriod = func(a, b time.Time) bool {
			return a.Year() == b.Year() && a.Month() == b.Month()
		}
	case Yearly:
		samePeriod = func(a, b time.Time) bool {
			return a.Year() == b.Year()
		}
	default:
		log.Panic().Str("Frequency", string(frequency)).Msg("unknown frequency provided to dataframe frequency function")
	}

	newDates := make([]time.Time, 0, len(df.Dates))
	newVals := make([][]float64, len(df.ColNames))
	for rowIdx, dt := range df.Dates {
		// keep the row if it is the final row of its period
		if rowIdx+1 < len(df.Dates) && samePeriod(dt, df.Dates[rowIdx+1]) {
			continue
		}
		newDates = append(newDates, dt)
		for colIdx := range newVals {
			newVals[colIdx] = append(newVals[colIdx], df.Vals[colIdx][rowIdx])
		}
	}

	colNames := make([]string, len(df.ColNames))
	copy(colNames, df.ColNames)

	return &DataFrame{
		Dates:    newDates,
		ColNames: colNames,
		Vals:     newVals,
	}
}

// Lead shifts the dataframe up by the specified number of rows, filling the vacated tail with
// math.NaN() and returns a new dataframe
func (df *DataFrame) Lead(n int) *DataFrame {
	df = df.Copy()
	n = minInt(n, df.Len())
	for idx := range df.Vals {
		l := len(df.Vals[idx])
		shifted := make([]float64, l)
		copy(shifted, df.Vals[idx][n:])
		for ii := l - n; ii < l; ii++ {
			shifted[ii] = math.NaN()
		}
		df.Vals[idx] = shifted
	}
	return df
}

// Len returns the number of rows in the dataframe
func (df *DataFrame) Len() int {
	return len(df.Dates)
}

// Select returns a new dataframe with the requested columns in the requested order. Columns
// that do not exist are skipped.
func (df *DataFrame) Select(columns ...string) *DataFrame {
	res := &DataFrame{
		Dates:    df.Dates,
		ColNames: make([]string, 0, len(columns)),
		Vals:     make([][]float64, 0, len(columns)),
	}

	for _, col := range columns {
		colIdx := df.ColIndex(col)
		if colIdx == -1 {
			log.Warn().Str("Column", col).Msg("column does not exist in dataframe; skipping")
			continue
		}
		res.ColNames = append(res.ColNames, col)
		res.Vals = append(res.Vals, df.Vals[colIdx])
	}

	return res
}

// Start returns the first date of the dataframe
func (df *DataFrame) Start() time.Time {
	if len(df.Dates) == 0 {
		return time.Time{}
	}
	return df.Dates[0]
}

// Table prints an ASCII formatted table to a string
func (df *DataFrame) Table() string {
	if len(df.Dates) == 0 {
		return "<NO DATA>" // nothing to do as there is no data available in the dataframe
	}

	// construct table header
	tableCols := append([]string{"Date"}, df.ColNames...)

	// initialize table
	s := &strings.Builder{}
	table := tablewriter.NewWriter(s)
	table.SetHeader(tableCols)
	footer := make([]string, len(tableCols))
	footer[0] = "Num Rows"
	if len(footer) > 1 {
		footer[1] = fmt.Sprintf("%d", df.Len())
	}
	table.SetFooter(footer)
	table.SetBorder(false) // Set Border to false

	for rowIdx, date := range df.Dates {
		row := make([]string, 0, len(df.Vals)+1)
		row = append(row, date.Format("2006-01-02"))
		for _, col := range df.Vals {
			row = append(row, fmt.Sprintf("%.4f", col[rowIdx]))
		}
		table.Append(row)
	}

	table.Render()
	return s.String()
}

// Trim the dataframe to the specified date range (inclusive). The returned dataframe shares
// its backing arrays with df.
func (df *DataFrame) Trim(begin, end time.Time) *DataFrame {
	df2 := &DataFrame{
		ColNames: df.ColNames,
		Dates:    []time.Time{},
		Vals:     make([][]float64, len(df.Vals)),
	}

	for colIdx := range df2.Vals {
		df2.Vals[colIdx] = []float64{}
	}

	// special case 0: requested range is invalid
	if end.Before(begin) {
		return df2
	}

	// special case 1: data frame is empty
	if df.Len() == 0 {
		return df2
	}

	// Use binary search to find the first date >= begin and the first date > end
	beginIdx := sort.Search(len(df.Dates), func(i int) bool {
		return !df.Dates[i].Before(begin)
	})

	endIdx := sort.Search(len(df.Dates), func(i int) bool {
		return df.Dates[i].After(end)
	})

	if beginIdx >= endIdx {
		return df2
	}

	df2.Dates = df.Dates[beginIdx:endIdx]
	for colIdx, col := range df.Vals {
		df2.Vals[colIdx] = col[beginIdx:endIdx]
	}

	return df2
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
