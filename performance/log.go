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

import "github.com/rs/zerolog"

func (o *DrawDown) MarshalZerologObject(e *zerolog.Event) {
	e.Str("Asset", o.Asset).Time("Begin", o.Begin).Time("End", o.End).Time("RecoveryDate", o.Recovery).Float64("LossPercent", o.LossPercent)
}

func (o *Row) MarshalZerologObject(e *zerolog.Event) {
	e.Str("Asset", o.Asset)
	e.Float64("TotalReturn", o.TotalReturn)
	e.Float64("AnnualizedReturn", o.AnnualizedReturn)
	e.Float64("AnnualizedVolatility", o.AnnualizedVolatility)
	e.Float64("SharpeRatio", o.SharpeRatio)
	e.Float64("SortinoRatio", o.SortinoRatio)
	e.Float64("MaxDrawDown", o.MaxDrawDown)
	e.Float64("CalmarRatio", o.CalmarRatio)
	e.Time("MaxDrawDownDate", o.MaxDrawDownDate)
	e.Time("MaxDrawDownStart", o.MaxDrawDownStart)
	e.Time("MaxDrawDownRecover", o.MaxDrawDownRecover)
}

func (m *Matrix) MarshalZerologObject(e *zerolog.Event) {
	e.Time("Begin", m.Begin).Time("End", m.End).Str("Frequency", string(m.Frequency)).
		Str("Calendar", string(m.Calendar)).Int("PeriodsPerYear", m.PeriodsPerYear).Int("NumRows", len(m.Rows))
}
