// Package dfextras converts between rocketlaunchr dataframes and the date-indexed
// dataframes used for performance calculations.
package dfextras

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/penny-vault/pmatrix/common"
	"github.com/penny-vault/pmatrix/dataframe"
	rdf "github.com/rocketlaunchr/dataframe-go"
	"github.com/rocketlaunchr/dataframe-go/imports"
	"github.com/rs/zerolog/log"
)

var (
	ErrMissingDateColumn = errors.New("csv has no date column")
	ErrNoValueColumns    = errors.New("csv has no value columns")
	ErrParseValue        = errors.New("could not parse value")
	ErrMissingValue      = errors.New("missing value")
)

// ReadCSV loads a csv of the form `date,<col1>,<col2>,...` with dates formatted as 2006-01-02.
// The date column is the column named date (case-insensitive) or, failing that, the first column.
// If dropNA is set then rows with empty cells are discarded, otherwise an empty cell is an error.
func ReadCSV(ctx context.Context, r io.ReadSeeker, dropNA bool) (*dataframe.DataFrame, error) {
	empty := ""
	raw, err := imports.LoadFromCSV(ctx, r, imports.CSVLoadOptions{
		TrimLeadingSpace: true,
		NilValue:         &empty,
	})
	if err != nil {
		log.Error().Err(err).Msg("could not load csv")
		return nil, err
	}

	if dropNA {
		raw, err = DropNA(ctx, raw)
		if err != nil {
			return nil, err
		}
	}

	return Convert(ctx, raw)
}

// DropNA removes rows in the dataframe that have nil or NaN values
func DropNA(ctx context.Context, df *rdf.DataFrame, opts ...rdf.FilterOptions) (*rdf.DataFrame, error) {
	filterFn := rdf.FilterDataFrameFn(func(vals map[interface{}]interface{}, row, nRows int) (rdf.FilterAction, error) {
		for _, val := range vals {
			if val == nil {
				return rdf.DROP, nil
			}
			if v, ok := val.(float64); ok {
				if math.IsNaN(v) {
					return rdf.DROP, nil
				}
			}
		}
		return rdf.KEEP, nil
	})

	res, err := rdf.Filter(ctx, df, filterFn, opts...)
	if err != nil {
		return nil, err
	}

	// an in-place filter returns nil
	if res == nil {
		return df, nil
	}

	return res.(*rdf.DataFrame), nil
}

// Convert builds a validated date-indexed dataframe from a rocketlaunchr dataframe. Series may
// hold strings (as loaded from csv), float64 or time.Time values.
func Convert(ctx context.Context, df *rdf.DataFrame) (*dataframe.DataFrame, error) {
	names := df.Names()
	if len(names) == 0 {
		return nil, ErrMissingDateColumn
	}

	dateName := names[0]
	for _, name := range names {
		if strings.EqualFold(name, common.DateIdx) {
			dateName = name
			break
		}
	}

	colNames := make([]string, 0, len(names)-1)
	for _, name := range names {
		if name != dateName {
			colNames = append(colNames, name)
		}
	}

	if len(colNames) == 0 {
		return nil, ErrNoValueColumns
	}

	nRows := df.NRows()
	dates := make([]time.Time, 0, nRows)
	vals := make([][]float64, len(colNames))
	for idx := range vals {
		vals[idx] = make([]float64, 0, nRows)
	}

	df.Lock()
	defer df.Unlock()

	iterator := df.ValuesIterator(rdf.ValuesOptions{InitialRow: 0, Step: 1, DontReadLock: true})
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		row, rowVals, _ := iterator(rdf.SeriesName)
		if row == nil {
			break
		}

		dt, err := parseDate(rowVals[dateName])
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", *row+1, err)
		}
		dates = append(dates, dt)

		for colIdx, colName := range colNames {
			v, err := parseFloat(rowVals[colName])
			if err != nil {
				return nil, fmt.Errorf("row %d column %q: %w", *row+1, colName, err)
			}
			vals[colIdx] = append(vals[colIdx], v)
		}
	}

	log.Debug().Int("NumRows", len(dates)).Strs("Columns", colNames).Msg("converted csv to dataframe")

	return dataframe.New(dates, colNames, vals)
}

func parseDate(val interface{}) (time.Time, error) {
	switch v := val.(type) {
	case nil:
		return time.Time{}, fmt.Errorf("%w: date", ErrMissingValue)
	case time.Time:
		return v, nil
	case string:
		v = strings.TrimSpace(v)
		if dt, err := time.Parse(common.DateFormat, v); err == nil {
			return dt, nil
		}
		dt, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return time.Time{}, fmt.Errorf("%w: %q is not a date", ErrParseValue, v)
		}
		return dt, nil
	default:
		return time.Time{}, fmt.Errorf("%w: unexpected date type %T", ErrParseValue, val)
	}
}

func parseFloat(val interface{}) (float64, error) {
	switch v := val.(type) {
	case nil:
		return 0, ErrMissingValue
	case float64:
		return v, nil
	case int64:
		return float64(v), nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrParseValue, v)
		}
		return f, nil
	default:
		return 0, fmt.Errorf("%w: unexpected type %T", ErrParseValue, val)
	}
}
