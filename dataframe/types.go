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
	"errors"
	"fmt"
	"strings"
	"time"
)

// DataFrame stores a table of values organized by date
// the vals array is column major - e.g.,
// VFINX  PRIDX
// 1      4
// 2      5
// 3      6
//
// Vals[0][0] = 1
// Vals[0][1] = 2
// Vals[1][0] = 4
//
// Dates are strictly increasing; use New to construct a validated dataframe.
type DataFrame struct {
	Dates    []time.Time
	ColNames []string
	Vals     [][]float64
}

// Frequency defines the sampling period of a dataframe
type Frequency string

const (
	Daily    Frequency = "Daily"
	Monthly  Frequency = "Monthly"
	Yearly   Frequency = "Yearly"
	Annually Frequency = "Yearly"
)

var (
	ErrDateIndexNotAligned = errors.New("date index does not align")
	ErrDatesNotIncreasing  = errors.New("dates must be strictly increasing")
	ErrColumnLength        = errors.New("column length does not match date index")
	ErrDuplicateColumn     = errors.New("duplicate column name")
	ErrNoColumns           = errors.New("dataframe must have at least one column")
	ErrInvalidValue        = errors.New("value must be finite")
	ErrUnknownFrequency    = errors.New("unknown frequency")
	ErrUnknownKey          = errors.New("key is not in map")
)

// ParseFrequency converts a frequency tag (Y, M, D or the full name) to a Frequency
func ParseFrequency(s string) (Frequency, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "d", "daily":
		return Daily, nil
	case "m", "monthly":
		return Monthly, nil
	case "y", "yearly", "annually":
		return Yearly, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFrequency, s)
	}
}
