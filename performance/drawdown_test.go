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

package performance_test

import (
	"math"
	"math/rand"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/penny-vault/pmatrix/dataframe"
	"github.com/penny-vault/pmatrix/performance"
)

var _ = Describe("DrawDown", func() {
	var (
		day func(int) time.Time
	)

	BeforeEach(func() {
		day = func(offset int) time.Time {
			return time.Date(2021, 1, 4+offset, 0, 0, 0, 0, time.UTC)
		}
	})

	Context("with a series that falls and recovers", func() {
		var (
			df *dataframe.DataFrame
		)

		BeforeEach(func() {
			df = newFrame([]string{"SPY"}, []float64{100, 110, 99, 105, 120})
		})

		It("computes the drawdown curve", func() {
			curve, err := performance.DrawDownCurve(df)
			Expect(err).To(BeNil())
			Expect(curve.ColNames).To(Equal([]string{"SPY"}))
			Expect(curve.Dates).To(Equal(df.Dates))
			Expect(curve.Vals[0][0]).To(BeNumerically("==", 0))
			Expect(curve.Vals[0][1]).To(BeNumerically("==", 0))
			Expect(curve.Vals[0][2]).To(BeNumerically("~", 1-99.0/110.0, 1e-12))
			Expect(curve.Vals[0][3]).To(BeNumerically("~", 1-105.0/110.0, 1e-12))
			Expect(curve.Vals[0][4]).To(BeNumerically("==", 0))
		})

		It("does not modify the input", func() {
			_, err := performance.DrawDownCurve(df)
			Expect(err).To(BeNil())
			Expect(df.Vals[0]).To(Equal([]float64{100, 110, 99, 105, 120}))
		})

		It("locates the peak, trough and recovery", func() {
			drawDowns, err := performance.MaxDrawDowns(df)
			Expect(err).To(BeNil())
			Expect(drawDowns).To(HaveLen(1))

			dd := drawDowns[0]
			Expect(dd.Asset).To(Equal("SPY"))
			Expect(dd.LossPercent).To(BeNumerically("~", 0.1, 1e-12))
			Expect(dd.Begin).To(Equal(day(1)), "peak is the day valued 110")
			Expect(dd.End).To(Equal(day(2)), "trough is the day valued 99")
			Expect(dd.Recovery).To(Equal(day(4)), "recovery is the day valued 120")
		})
	})

	Context("with repeated drawdowns of equal depth", func() {
		It("picks the first trough and the first recovery after it", func() {
			df := newFrame([]string{"A"}, []float64{100, 90, 100, 90, 100})
			drawDowns, err := performance.MaxDrawDowns(df)
			Expect(err).To(BeNil())
			Expect(drawDowns[0].Begin).To(Equal(day(0)))
			Expect(drawDowns[0].End).To(Equal(day(1)))
			Expect(drawDowns[0].Recovery).To(Equal(day(2)))
		})

		It("picks the last peak before the trough", func() {
			df := newFrame([]string{"A"}, []float64{100, 100, 100, 90, 95})
			drawDowns, err := performance.MaxDrawDowns(df)
			Expect(err).To(BeNil())
			Expect(drawDowns[0].Begin).To(Equal(day(2)))
			Expect(drawDowns[0].End).To(Equal(day(3)))
		})
	})

	Context("with a series that never regains its peak", func() {
		It("reports the best point since the trough as recovery", func() {
			df := newFrame([]string{"A"}, []float64{100, 80, 90, 85, 95, 92})
			drawDowns, err := performance.MaxDrawDowns(df)
			Expect(err).To(BeNil())
			Expect(drawDowns[0].Begin).To(Equal(day(0)))
			Expect(drawDowns[0].End).To(Equal(day(1)))
			Expect(drawDowns[0].Recovery).To(Equal(day(4)))
			Expect(drawDowns[0].LossPercent).To(BeNumerically("~", 0.2, 1e-12))
		})
	})

	Context("with a series that never declines", func() {
		It("reports a zero drawdown on the first date", func() {
			df := newFrame([]string{"A"}, []float64{1, 2, 3})
			drawDowns, err := performance.MaxDrawDowns(df)
			Expect(err).To(BeNil())
			Expect(drawDowns[0].LossPercent).To(BeNumerically("==", 0))
			Expect(drawDowns[0].Begin).To(Equal(day(0)))
			Expect(drawDowns[0].End).To(Equal(day(0)))
			Expect(drawDowns[0].Recovery).To(Equal(day(0)))
		})
	})

	Context("with multiple columns", func() {
		It("analyzes each column independently and in order", func() {
			df := newFrame([]string{"B", "A"},
				[]float64{100, 95, 97, 90, 92, 110},
				[]float64{100, 110, 99, 105, 120, 118},
			)
			drawDowns, err := performance.MaxDrawDowns(df)
			Expect(err).To(BeNil())
			Expect(drawDowns).To(HaveLen(2))
			Expect(drawDowns[0].Asset).To(Equal("B"))
			Expect(drawDowns[0].End).To(Equal(day(3)))
			Expect(drawDowns[0].Begin).To(Equal(day(0)))
			Expect(drawDowns[0].Recovery).To(Equal(day(5)))
			Expect(drawDowns[1].Asset).To(Equal("A"))
			Expect(drawDowns[1].End).To(Equal(day(2)))
		})
	})

	Context("with intraday timestamps", func() {
		It("returns calendar dates", func() {
			tz, err := time.LoadLocation("America/New_York")
			Expect(err).To(BeNil())
			dates := []time.Time{
				time.Date(2021, 1, 4, 16, 0, 0, 0, tz),
				time.Date(2021, 1, 5, 16, 0, 0, 0, tz),
				time.Date(2021, 1, 6, 16, 0, 0, 0, tz),
			}
			df, err := dataframe.New(dates, []string{"A"}, [][]float64{{10, 8, 11}})
			Expect(err).To(BeNil())

			drawDowns, err := performance.MaxDrawDowns(df)
			Expect(err).To(BeNil())
			Expect(drawDowns[0].Begin).To(Equal(time.Date(2021, 1, 4, 0, 0, 0, 0, tz)))
			Expect(drawDowns[0].End).To(Equal(time.Date(2021, 1, 5, 0, 0, 0, 0, tz)))
			Expect(drawDowns[0].Recovery).To(Equal(time.Date(2021, 1, 6, 0, 0, 0, 0, tz)))
		})
	})

	Context("with degenerate input", func() {
		It("fails for a single observation", func() {
			df := newFrame([]string{"A"}, []float64{100})
			_, err := performance.MaxDrawDowns(df)
			Expect(err).To(MatchError(performance.ErrInsufficientData))
		})

		It("fails when the running max is zero", func() {
			df := newFrame([]string{"A"}, []float64{0, 0, 1})
			_, err := performance.MaxDrawDowns(df)
			Expect(err).To(MatchError(performance.ErrZeroValue))
		})

		It("fails for negative values", func() {
			df := newFrame([]string{"A"}, []float64{1, -1, 1})
			_, err := performance.DrawDownCurve(df)
			Expect(err).To(MatchError(performance.ErrNegativeValue))
		})

		It("fails for NaN values", func() {
			df := &dataframe.DataFrame{
				Dates:    dailyDates(time.Date(2021, 1, 4, 0, 0, 0, 0, time.UTC), 3),
				ColNames: []string{"A"},
				Vals:     [][]float64{{1, math.NaN(), 1}},
			}
			_, err := performance.DrawDownCurve(df)
			Expect(err).To(MatchError(dataframe.ErrInvalidValue))
		})
	})

	Context("with random walks", func() {
		var (
			df *dataframe.DataFrame
		)

		BeforeEach(func() {
			rng := rand.New(rand.NewSource(42))
			nCols := 25
			nRows := 250
			colNames := make([]string, nCols)
			vals := make([][]float64, nCols)
			for colIdx := range vals {
				colNames[colIdx] = string(rune('A'+colIdx%26)) + string(rune('a'+colIdx/26))
				vals[colIdx] = make([]float64, nRows)
				v := 1.0
				for rowIdx := range vals[colIdx] {
					vals[colIdx][rowIdx] = v
					v *= 1 + rng.NormFloat64()*0.02
				}
			}
			df = newFrame(colNames, vals...)
		})

		It("keeps the drawdown within [0, 1) and zero at each running max", func() {
			curve, err := performance.DrawDownCurve(df)
			Expect(err).To(BeNil())
			for colIdx, col := range curve.Vals {
				peak := 0.0
				for rowIdx, dd := range col {
					Expect(dd).To(BeNumerically(">=", 0))
					Expect(dd).To(BeNumerically("<", 1))
					if v := df.Vals[colIdx][rowIdx]; v >= peak {
						peak = v
						Expect(dd).To(BeNumerically("==", 0))
					}
				}
			}
		})

		It("orders peak, trough and recovery", func() {
			drawDowns, err := performance.MaxDrawDowns(df)
			Expect(err).To(BeNil())
			Expect(drawDowns).To(HaveLen(df.ColCount()))
			for _, dd := range drawDowns {
				Expect(dd.Begin.After(dd.End)).To(BeFalse(), dd.Asset)
				Expect(dd.End.After(dd.Recovery)).To(BeFalse(), dd.Asset)
			}
		})
	})
})
