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

// Package report renders performance matrices and drawdowns as text tables, json or excel
// workbooks.
package report

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/goccy/go-json"
	"github.com/olekukonko/tablewriter"
	"github.com/penny-vault/pmatrix/common"
	"github.com/penny-vault/pmatrix/performance"
	"github.com/xuri/excelize/v2"
)

// Format of a rendered report
type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatExcel Format = "xlsx"
)

var (
	ErrUnknownFormat = errors.New("unknown report format")
)

// SheetName is the worksheet the performance matrix is written to
const SheetName = "Performance"

// Header lists the performance matrix columns in display order
var Header = []string{
	"Asset",
	"Total Return",
	"Annualized Return",
	"Annualized Volatility",
	"Sharpe Ratio",
	"Sortino Ratio",
	"Max Drawdown",
	"Calmar Ratio",
	"Max Drawdown Date",
	"Max Drawdown Start",
	"Max Drawdown Recover",
}

// ParseFormat converts a format name to a Format
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(s)) {
	case FormatTable:
		return FormatTable, nil
	case FormatJSON:
		return FormatJSON, nil
	case FormatExcel, "excel":
		return FormatExcel, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

// Write renders the matrix in the requested format to w
func Write(w io.Writer, matrix *performance.Matrix, format Format) error {
	switch format {
	case FormatTable:
		_, err := io.WriteString(w, Table(matrix))
		return err
	case FormatJSON:
		return JSON(w, matrix)
	case FormatExcel:
		return Excel(w, matrix)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// Table formats the matrix as an ASCII table, one row per asset
func Table(matrix *performance.Matrix) string {
	s := &strings.Builder{}
	table := tablewriter.NewWriter(s)
	table.SetHeader(Header)
	table.SetBorder(false)

	for _, row := range matrix.Rows {
		table.Append(formatRow(row))
	}

	table.Render()
	return s.String()
}

// DrawDownTable formats the drawdowns as an ASCII table
func DrawDownTable(drawDowns []*performance.DrawDown) string {
	s := &strings.Builder{}
	table := tablewriter.NewWriter(s)
	table.SetHeader([]string{"Asset", "Max Drawdown", "Peak", "Trough", "Recovery"})
	table.SetBorder(false)

	for _, dd := range drawDowns {
		table.Append([]string{
			dd.Asset,
			fmt.Sprintf("%.4f", dd.LossPercent),
			dd.Begin.Format(common.DateFormat),
			dd.End.Format(common.DateFormat),
			dd.Recovery.Format(common.DateFormat),
		})
	}

	table.Render()
	return s.String()
}

// JSON writes the matrix as an indented json document
func JSON(w io.Writer, matrix *performance.Matrix) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(matrix)
}

// Excel writes the matrix to an xlsx workbook with a single sheet
func Excel(w io.Writer, matrix *performance.Matrix) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return err
	}

	for colIdx, name := range Header {
		cell, err := excelize.CoordinatesToCellName(colIdx+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(SheetName, cell, name); err != nil {
			return err
		}
	}

	for rowIdx, row := range matrix.Rows {
		vals := []interface{}{
			row.Asset,
			row.TotalReturn,
			row.AnnualizedReturn,
			row.AnnualizedVolatility,
			row.SharpeRatio,
			row.SortinoRatio,
			row.MaxDrawDown,
			row.CalmarRatio,
			row.MaxDrawDownDate.Format(common.DateFormat),
			row.MaxDrawDownStart.Format(common.DateFormat),
			row.MaxDrawDownRecover.Format(common.DateFormat),
		}
		for colIdx, val := range vals {
			cell, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(SheetName, cell, val); err != nil {
				return err
			}
		}
	}

	return f.Write(w)
}

func formatRow(row *performance.Row) []string {
	return []string{
		row.Asset,
		fmt.Sprintf("%.4f", row.TotalReturn),
		fmt.Sprintf("%.4f", row.AnnualizedReturn),
		fmt.Sprintf("%.4f", row.AnnualizedVolatility),
		fmt.Sprintf("%.4f", row.SharpeRatio),
		fmt.Sprintf("%.4f", row.SortinoRatio),
		fmt.Sprintf("%.4f", row.MaxDrawDown),
		fmt.Sprintf("%.4f", row.CalmarRatio),
		row.MaxDrawDownDate.Format(common.DateFormat),
		row.MaxDrawDownStart.Format(common.DateFormat),
		row.MaxDrawDownRecover.Format(common.DateFormat),
	}
}
