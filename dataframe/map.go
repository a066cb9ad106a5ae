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
	"fmt"
	"sort"
	"time"

	"github.com/penny-vault/pmatrix/common"
	"github.com/rs/zerolog/log"
)

// Map is a collection of dataframes keyed by name (typically the file they were loaded from)
type Map map[string]*DataFrame

// Align finds the maximum start and minimum end across all dataframes and trims them to match
func (dfMap Map) Align() Map {
	// find max start and min end
	var start time.Time
	var end time.Time

	// initialize end time with a value from dfMap
	for _, df := range dfMap {
		end = df.End()
		break
	}

	for _, df := range dfMap {
		start = common.MaxTime(start, df.Start())
		end = common.MinTime(end, df.End())
	}

	// trim df's to expected time range
	dfMapTrimmed := make(Map, len(dfMap))
	for k, df := range dfMap {
		dfMapTrimmed[k] = df.Trim(start, end)
	}

	return dfMapTrimmed
}

// DataFrame merges every dataframe in the map into a single dataframe. Dataframes are trimmed to
// the max start and min end and then concatenated column-wise; after trimming every dataframe
// must share an identical date index. Columns follow the keys listed in order, which must name
// every entry of the map exactly once; with no order the keys are merged in sorted order.
func (dfMap Map) DataFrame(order ...string) (*DataFrame, error) {
	keys := order
	if len(keys) == 0 {
		keys = make([]string, 0, len(dfMap))
		for k := range dfMap {
			keys = append(keys, k)
		}
		sort.Strings(keys)
	}

	if len(keys) != len(dfMap) {
		return nil, fmt.Errorf("%w: %d keys requested for %d dataframes", ErrUnknownKey, len(keys), len(dfMap))
	}
	for _, k := range keys {
		if _, ok := dfMap[k]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownKey, k)
		}
	}

	aligned := dfMap.Align()
	df := &DataFrame{}
	for idx, k := range keys {
		v := aligned[k]
		if idx == 0 {
			df.Dates = v.Dates
			df.ColNames = append(df.ColNames, v.ColNames...)
			df.Vals = append(df.Vals, v.Vals...)
			continue
		}

		if !sameDates(df.Dates, v.Dates) {
			log.Error().Str("Key", k).Time("df1.Start", df.Start()).Time("df1.End", df.End()).Time("df2.Start", v.Start()).Time("df2.End", v.End()).
				Int("df1.Len", df.Len()).Int("df2.Len", v.Len()).Msg("date indexes do not match - cannot merge into single dataframe")
			return nil, fmt.Errorf("%w: %s", ErrDateIndexNotAligned, k)
		}

		df.ColNames = append(df.ColNames, v.ColNames...)
		df.Vals = append(df.Vals, v.Vals...)
	}

	return New(df.Dates, df.ColNames, df.Vals)
}

func sameDates(a, b []time.Time) bool {
	if len(a) != len(b) {
		return false
	}
	for idx := range a {
		if !a[idx].Equal(b[idx]) {
			return false
		}
	}
	return true
}
