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

import "errors"

var (
	ErrInsufficientData       = errors.New("not enough observations")
	ErrEmptyRange             = errors.New("date range contains fewer than 2 rows")
	ErrUnsupportedFrequency   = errors.New("unsupported frequency and calendar combination")
	ErrUnknownCalendar        = errors.New("unknown calendar")
	ErrNoDownsideObservations = errors.New("not enough returns below the downside threshold")
	ErrUndefinedRatio         = errors.New("ratio denominator is zero")
	ErrZeroValue              = errors.New("value series contains a zero where a divisor is required")
	ErrNegativeValue          = errors.New("value series contains a negative value")
)
