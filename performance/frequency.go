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
	"strings"

	"github.com/penny-vault/pmatrix/dataframe"
)

// Calendar identifies the exchange calendar used to count trading days per year
type Calendar string

const (
	Domestic Calendar = "domestic"
	Foreign  Calendar = "foreign"
)

const (
	// DomesticTradingDays is the number of trading days per year on the domestic exchange.
	// Some references use 250; this package uses 252.
	DomesticTradingDays = 252

	// ForeignTradingDays is the number of trading days per year on the foreign exchange
	ForeignTradingDays = 254
)

type periodKey struct {
	frequency dataframe.Frequency
	calendar  Calendar
}

var periodsPerYear = map[periodKey]int{
	{dataframe.Yearly, Domestic}:  1,
	{dataframe.Yearly, Foreign}:   1,
	{dataframe.Monthly, Domestic}: 12,
	{dataframe.Monthly, Foreign}:  12,
	{dataframe.Daily, Domestic}:   DomesticTradingDays,
	{dataframe.Daily, Foreign}:    ForeignTradingDays,
}

// PeriodsPerYear returns the number of observations per year for the frequency when traded on
// the given calendar
func PeriodsPerYear(frequency dataframe.Frequency, calendar Calendar) (int, error) {
	n, ok := periodsPerYear[periodKey{frequency, calendar}]
	if !ok {
		return 0, fmt.Errorf("%w: (%s, %s)", ErrUnsupportedFrequency, frequency, calendar)
	}
	return n, nil
}

// ParseCalendar converts a calendar tag to a Calendar. The exchange codes CN and US are
// accepted as aliases for Domestic and Foreign.
func ParseCalendar(s string) (Calendar, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "domestic", "cn":
		return Domestic, nil
	case "foreign", "us":
		return Foreign, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownCalendar, s)
	}
}
