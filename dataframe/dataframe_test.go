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

package dataframe_test

import (
	"math"
	"strings"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/penny-vault/pmatrix/dataframe"
)

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

var _ = Describe("DataFrame", func() {
	Describe("when constructing", func() {
		var (
			dates []time.Time
		)

		BeforeEach(func() {
			dates = []time.Time{day(2021, 1, 4), day(2021, 1, 5), day(2021, 1, 6)}
		})

		It("accepts a valid table", func() {
			df, err := dataframe.New(dates, []string{"A", "B"}, [][]float64{{1, 2, 3}, {-0.1, 0, 0.2}})
			Expect(err).To(BeNil())
			Expect(df.Len()).To(Equal(3))
			Expect(df.ColCount()).To(Equal(2))
			Expect(df.Start()).To(Equal(day(2021, 1, 4)))
			Expect(df.End()).To(Equal(day(2021, 1, 6)))
		})

		It("accepts a table with no rows", func() {
			df, err := dataframe.New([]time.Time{}, []string{"A"}, [][]float64{{}})
			Expect(err).To(BeNil())
			Expect(df.Len()).To(Equal(0))
			Expect(df.Start()).To(Equal(time.Time{}))
		})

		It("requires at least one column", func() {
			_, err := dataframe.New(dates, []string{}, [][]float64{})
			Expect(err).To(MatchError(dataframe.ErrNoColumns))
		})

		It("requires a name for every column", func() {
			_, err := dataframe.New(dates, []string{"A"}, [][]float64{{1, 2, 3}, {1, 2, 3}})
			Expect(err).To(MatchError(dataframe.ErrColumnLength))
		})

		It("requires one value per date", func() {
			_, err := dataframe.New(dates, []string{"A"}, [][]float64{{1, 2}})
			Expect(err).To(MatchError(dataframe.ErrColumnLength))
		})

		It("rejects duplicate column names", func() {
			_, err := dataframe.New(dates, []string{"A", "A"}, [][]float64{{1, 2, 3}, {1, 2, 3}})
			Expect(err).To(MatchError(dataframe.ErrDuplicateColumn))
		})

		It("rejects repeated dates", func() {
			dates[2] = dates[1]
			_, err := dataframe.New(dates, []string{"A"}, [][]float64{{1, 2, 3}})
			Expect(err).To(MatchError(dataframe.ErrDatesNotIncreasing))
		})

		It("rejects dates out of order", func() {
			dates[0], dates[2] = dates[2], dates[0]
			_, err := dataframe.New(dates, []string{"A"}, [][]float64{{1, 2, 3}})
			Expect(err).To(MatchError(dataframe.ErrDatesNotIncreasing))
		})

		DescribeTable("rejects values that are not finite", func(val float64) {
			_, err := dataframe.New(dates, []string{"A"}, [][]float64{{1, val, 3}})
			Expect(err).To(MatchError(dataframe.ErrInvalidValue))
		},
			Entry("NaN", math.NaN()),
			Entry("+Inf", math.Inf(1)),
			Entry("-Inf", math.Inf(-1)),
		)
	})

	Context("with no values", func() {
		var (
			df *dataframe.DataFrame
		)

		BeforeEach(func() {
			df = &dataframe.DataFrame{}
		})

		It("has zero length", func() {
			Expect(df.Len()).To(Equal(0))
		})

		It("has zero columns", func() {
			Expect(df.ColCount()).To(Equal(0))
		})

		It("does not error on trim", func() {
			df = df.Trim(day(2021, 1, 1), day(2022, 1, 1))
			Expect(df.Len()).To(Equal(0))
		})

		It("does not error on frequency", func() {
			df = df.Frequency(dataframe.Monthly)
			Expect(df.Len()).To(Equal(0))
		})

		It("prints a placeholder table", func() {
			Expect(df.Table()).To(Equal("<NO DATA>"))
		})
	})

	Context("with 2 years of values and a single column", func() {
		var (
			df *dataframe.DataFrame
		)

		BeforeEach(func() {
			dates := make([]time.Time, 730)
			vals := make([]float64, 730)
			dt := day(2020, 1, 1)
			for idx := range dates {
				dates[idx] = dt
				dt = dt.AddDate(0, 0, 1)
				vals[idx] = float64(idx)
			}

			var err error
			df, err = dataframe.New(dates, []string{"Col1"}, [][]float64{vals})
			Expect(err).To(BeNil())
		})

		It("has length", func() {
			Expect(df.Len()).To(Equal(730))
		})

		It("has 1 column", func() {
			Expect(df.ColCount()).To(Equal(1))
		})

		DescribeTable("trims values by date range", func(a, b time.Time, expectedLen int, expectedA, expectedB time.Time) {
			df = df.Trim(a, b)
			Expect(df.Len()).To(Equal(expectedLen))
			Expect(df.Vals[0]).To(HaveLen(expectedLen))
			if expectedLen > 0 {
				Expect(df.Dates[0]).To(Equal(expectedA), "expected begin date")
				Expect(df.Dates[len(df.Dates)-1]).To(Equal(expectedB), "expected end date")
			}
		},
			Entry("whole range", day(2020, 1, 1), day(2021, 12, 30), 730, day(2020, 1, 1), day(2021, 12, 30)),
			Entry("range that does not exist in dataframe (left)", day(2018, 1, 1), day(2019, 12, 30), 0, day(2018, 1, 1), day(2019, 12, 30)),
			Entry("range that does not exist in dataframe (right)", day(2022, 1, 1), day(2023, 12, 30), 0, day(2022, 1, 1), day(2023, 12, 30)),
			Entry("range that touches start but not end", day(2020, 1, 1), day(2020, 1, 5), 5, day(2020, 1, 1), day(2020, 1, 5)),
			Entry("range that touches end but not start", day(2021, 12, 27), day(2021, 12, 30), 4, day(2021, 12, 27), day(2021, 12, 30)),
			Entry("range that starts before begin", day(2019, 1, 1), day(2020, 1, 5), 5, day(2020, 1, 1), day(2020, 1, 5)),
			Entry("range that extends beyond the end", day(2021, 12, 27), day(2021, 12, 31), 4, day(2021, 12, 27), day(2021, 12, 30)),
			Entry("range in the middle of dataframe", day(2020, 6, 1), day(2020, 6, 5), 5, day(2020, 6, 1), day(2020, 6, 5)),
			Entry("single date", day(2020, 1, 1), day(2020, 1, 1), 1, day(2020, 1, 1), day(2020, 1, 1)),
			Entry("inverted range", day(2021, 1, 1), day(2020, 1, 1), 0, day(2020, 1, 1), day(2020, 1, 1)),
			Entry("end on start", day(2019, 1, 1), day(2020, 1, 1), 1, day(2020, 1, 1), day(2020, 1, 1)),
			Entry("start on end", day(2021, 12, 30), day(2024, 1, 1), 1, day(2021, 12, 30), day(2021, 12, 30)),
		)

		It("trims to the values inside the range", func() {
			trimmed := df.Trim(day(2020, 1, 3), day(2020, 1, 5))
			Expect(trimmed.Vals[0]).To(Equal([]float64{2, 3, 4}))
		})

		DescribeTable("test frequency filter", func(frequency dataframe.Frequency, expectedCnt int, expectedStart, expectedEnd time.Time) {
			df = df.Frequency(frequency)
			Expect(df.Len()).To(Equal(expectedCnt), "expected count")
			Expect(df.Vals[0]).To(HaveLen(expectedCnt))
			Expect(df.Dates[0]).To(Equal(expectedStart), "expected start")
			Expect(df.Dates[len(df.Dates)-1]).To(Equal(expectedEnd), "expected end")
		},
			Entry("daily", dataframe.Daily, 730, day(2020, 1, 1), day(2021, 12, 30)),
			Entry("monthly", dataframe.Monthly, 24, day(2020, 1, 31), day(2021, 12, 30)),
			Entry("yearly", dataframe.Yearly, 2, day(2020, 12, 31), day(2021, 12, 30)),
			Entry("annually", dataframe.Annually, 2, day(2020, 12, 31), day(2021, 12, 30)),
		)

		It("keeps the last observation of each month", func() {
			monthly := df.Frequency(dataframe.Monthly)
			Expect(monthly.Vals[0][0]).To(Equal(30.0))
			Expect(monthly.Vals[0][1]).To(Equal(59.0))
			Expect(monthly.Vals[0][23]).To(Equal(729.0))
		})

		It("does not modify the original when resampling", func() {
			monthly := df.Frequency(dataframe.Monthly)
			monthly.Vals[0][0] = -1
			Expect(df.Vals[0][30]).To(Equal(30.0))
			Expect(df.Len()).To(Equal(730))
		})
	})

	Context("with sparse dates", func() {
		var (
			df *dataframe.DataFrame
		)

		BeforeEach(func() {
			var err error
			df, err = dataframe.New(
				[]time.Time{day(2021, 1, 4), day(2021, 1, 8), day(2021, 1, 15), day(2021, 2, 1)},
				[]string{"Col1"},
				[][]float64{{1, 2, 3, 4}},
			)
			Expect(err).To(BeNil())
		})

		It("trims with bounds that fall between dates", func() {
			trimmed := df.Trim(day(2021, 1, 5), day(2021, 1, 20))
			Expect(trimmed.Dates).To(Equal([]time.Time{day(2021, 1, 8), day(2021, 1, 15)}))
			Expect(trimmed.Vals[0]).To(Equal([]float64{2, 3}))
		})

		It("returns nothing when no date falls inside the range", func() {
			trimmed := df.Trim(day(2021, 1, 16), day(2021, 1, 31))
			Expect(trimmed.Len()).To(Equal(0))
			Expect(trimmed.ColNames).To(Equal([]string{"Col1"}))
		})
	})

	Context("multi-column", func() {
		var (
			df *dataframe.DataFrame
		)

		BeforeEach(func() {
			dates := make([]time.Time, 5)
			dt := day(2020, 1, 1)
			for idx := range dates {
				dates[idx] = dt
				dt = dt.AddDate(0, 0, 1)
			}

			var err error
			df, err = dataframe.New(dates, []string{"Col1", "Col2", "Col3"}, [][]float64{
				{1, 2, 3, 4, 5},
				{1, 3, 2, 4, 6},
				{5, 4, 3, 2, 1},
			})
			Expect(err).To(BeNil())
		})

		It("finds columns by name", func() {
			Expect(df.ColIndex("Col2")).To(Equal(1))
			Expect(df.ColIndex("Missing")).To(Equal(-1))
		})

		It("selects columns in the requested order", func() {
			selected := df.Select("Col3", "Col1")
			Expect(selected.ColNames).To(Equal([]string{"Col3", "Col1"}))
			Expect(selected.Vals[0]).To(Equal([]float64{5, 4, 3, 2, 1}))
			Expect(selected.Vals[1]).To(Equal([]float64{1, 2, 3, 4, 5}))
			Expect(selected.Dates).To(Equal(df.Dates))
		})

		It("skips missing columns when selecting", func() {
			selected := df.Select("Col2", "Missing")
			Expect(selected.ColNames).To(Equal([]string{"Col2"}))
			Expect(selected.Vals).To(HaveLen(1))
		})

		It("makes a deep copy", func() {
			df2 := df.Copy()
			df2.Vals[0][0] = 100
			df2.ColNames[0] = "Changed"
			df2.Dates[0] = day(1999, 1, 1)
			Expect(df.Vals[0][0]).To(Equal(1.0))
			Expect(df.ColNames[0]).To(Equal("Col1"))
			Expect(df.Dates[0]).To(Equal(day(2020, 1, 1)))
		})

		It("prints a table with every column", func() {
			table := df.Table()
			Expect(table).To(ContainSubstring("2020-01-01"))
			Expect(table).To(ContainSubstring("6.0000"))
			Expect(strings.ToUpper(table)).To(ContainSubstring("COL3"))
		})
	})

	DescribeTable("parses frequencies", func(input string, expected dataframe.Frequency) {
		frequency, err := dataframe.ParseFrequency(input)
		Expect(err).To(BeNil())
		Expect(frequency).To(Equal(expected))
	},
		Entry("D", "D", dataframe.Daily),
		Entry("daily", "daily", dataframe.Daily),
		Entry("M", "M", dataframe.Monthly),
		Entry("Monthly", "Monthly", dataframe.Monthly),
		Entry("Y", "Y", dataframe.Yearly),
		Entry("annually", "annually", dataframe.Annually),
	)

	It("rejects unknown frequencies", func() {
		_, err := dataframe.ParseFrequency("W")
		Expect(err).To(MatchError(dataframe.ErrUnknownFrequency))
	})
})
