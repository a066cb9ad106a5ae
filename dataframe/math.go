// Copyright 2021-2022
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
	"math"

	"gonum.org/v1/gonum/floats"
)

// AddScalar adds the scalar value to all columns in dataframe df and returns a new dataframe
func (df *DataFrame) AddScalar(scalar float64) *DataFrame {
	df = df.Copy()

	for colIdx := range df.ColNames {
		floats.AddConst(scalar, df.Vals[colIdx])
	}
	return df
}

// CumMax computes the running maximum of each column and returns a new dataframe
func (df *DataFrame) CumMax() *DataFrame {
	df = df.Copy()

	for colIdx := range df.ColNames {
		col := df.Vals[colIdx]
		for rowIdx := 1; rowIdx < len(col); rowIdx++ {
			col[rowIdx] = math.Max(col[rowIdx], col[rowIdx-1])
		}
	}
	return df
}

// Div divides all columns in `df` by the corresponding column in `other` and returns a new dataframe.
// Panics if rows are not equal.
func (df *DataFrame) Div(other *DataFrame) *DataFrame {
	df = df.Copy()

	otherMap := make(map[string]int, len(other.ColNames))
	for idx, val := range other.ColNames {
		otherMap[val] = idx
	}

	for idx, colName := range df.ColNames {
		if otherIdx, ok := otherMap[colName]; ok {
			floats.Div(df.Vals[idx], other.Vals[otherIdx])
		}
	}
	return df
}

// MulScalar multiplies all columns in dataframe df by the scalar and returns a new dataframe
func (df *DataFrame) MulScalar(scalar float64) *DataFrame {
	df = df.Copy()

	for colIdx := range df.ColNames {
		floats.Scale(scalar, df.Vals[colIdx])
	}
	return df
}

// PctChange computes the period over period percent change of every column and returns a
// new dataframe; row 0 has no prior value and is NaN
func (df *DataFrame) PctChange() *DataFrame {
	df2 := df.Copy()

	for colIdx, col := range df.Vals {
		if len(col) == 0 {
			continue
		}
		res := df2.Vals[colIdx]
		res[0] = math.NaN()
		for rowIdx := 1; rowIdx < len(col); rowIdx++ {
			res[rowIdx] = col[rowIdx]/col[rowIdx-1] - 1.0
		}
	}
	return df2
}
