package timeseries

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"time"
)

// CSVOptions holds options for forecast CSV loading.
type CSVOptions struct {
	DateColumn     string // Column name for dates (default: "ds")
	ObservedColumn string // Column name for observations (default: "y")
	MeanColumn     string // Column name for the predicted mean (default: "yhat")
	SpreadColumn   string // Column name for the predicted spread (default: "yhat_std", optional)
	SkewColumn     string // Column name for the predicted skew (default: "skew", optional)
	DateFormat     string // Date format tried first (default: "2006-01-02")
	Delimiter      rune   // Field delimiter (default: ',')
	SkipRows       int    // Number of rows to skip before the header
}

// DefaultCSVOptions returns default options for CSV loading.
func DefaultCSVOptions() *CSVOptions {
	return &CSVOptions{
		DateColumn:     "ds",
		ObservedColumn: "y",
		MeanColumn:     "yhat",
		SpreadColumn:   "yhat_std",
		SkewColumn:     "skew",
		DateFormat:     "2006-01-02",
		Delimiter:      ',',
	}
}

var dateFormats = []string{
	"2006-01-02",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006/01/02",
	"01/02/2006",
	"02-Jan-2006",
	"2006-01",
}

// LoadCSV loads a forecast frame from a CSV file.
func LoadCSV(filename string, opts *CSVOptions) (*Forecast, error) {
	if opts == nil {
		opts = DefaultCSVOptions()
	}

	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	f, err := LoadCSVFromReader(file, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return f, nil
}

// LoadCSVFromReader loads a forecast frame from an io.Reader.
// Rows with a missing value (empty, NA, NaN, null) in any loaded column are
// skipped. A row with an unparseable date is an error since every row must
// carry a calendar month.
func LoadCSVFromReader(r io.Reader, opts *CSVOptions) (*Forecast, error) {
	if opts == nil {
		opts = DefaultCSVOptions()
	}

	reader := csv.NewReader(r)
	if opts.Delimiter != 0 {
		reader.Comma = opts.Delimiter
	}
	reader.TrimLeadingSpace = true

	for i := 0; i < opts.SkipRows; i++ {
		if _, err := reader.Read(); err != nil {
			return nil, err
		}
	}

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	dateIdx, obsIdx, meanIdx, spreadIdx, skewIdx := -1, -1, -1, -1, -1
	for i, h := range header {
		switch clean(h) {
		case opts.DateColumn:
			dateIdx = i
		case opts.ObservedColumn:
			obsIdx = i
		case opts.MeanColumn:
			meanIdx = i
		case opts.SpreadColumn:
			if opts.SpreadColumn != "" {
				spreadIdx = i
			}
		case opts.SkewColumn:
			if opts.SkewColumn != "" {
				skewIdx = i
			}
		}
	}

	switch {
	case dateIdx < 0:
		return nil, fmt.Errorf("date column %q not found", opts.DateColumn)
	case obsIdx < 0:
		return nil, fmt.Errorf("observed column %q not found", opts.ObservedColumn)
	case meanIdx < 0:
		return nil, fmt.Errorf("mean column %q not found", opts.MeanColumn)
	}

	f := &Forecast{}
	if spreadIdx >= 0 {
		f.Spread = []float64{}
	}
	if skewIdx >= 0 {
		f.Skew = []float64{}
	}

	line := 1 + opts.SkipRows
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		line++

		obs, ok := parseValue(record, obsIdx)
		if !ok {
			continue
		}
		mean, ok := parseValue(record, meanIdx)
		if !ok {
			continue
		}

		var spread, skew float64
		if spreadIdx >= 0 {
			if spread, ok = parseValue(record, spreadIdx); !ok {
				continue
			}
		}
		if skewIdx >= 0 {
			if skew, ok = parseValue(record, skewIdx); !ok {
				continue
			}
		}

		ts, err := parseDate(record[dateIdx], opts.DateFormat)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		f.Timestamps = append(f.Timestamps, ts)
		f.Observed = append(f.Observed, obs)
		f.Mean = append(f.Mean, mean)
		if spreadIdx >= 0 {
			f.Spread = append(f.Spread, spread)
		}
		if skewIdx >= 0 {
			f.Skew = append(f.Skew, skew)
		}
	}

	if f.Len() == 0 {
		return nil, errors.New("no valid data found in CSV")
	}
	return f, nil
}

// SaveCSV writes a forecast frame in the layout LoadCSVFromReader reads with
// DefaultCSVOptions.
func SaveCSV(f *Forecast, w io.Writer) error {
	if err := f.Validate(); err != nil {
		return err
	}

	opts := DefaultCSVOptions()
	writer := csv.NewWriter(w)

	cols := []string{opts.DateColumn, opts.ObservedColumn, opts.MeanColumn}
	if f.HasSpread() {
		cols = append(cols, opts.SpreadColumn)
	}
	if f.HasSkew() {
		cols = append(cols, opts.SkewColumn)
	}
	if err := writer.Write(cols); err != nil {
		return err
	}

	format := func(v float64) string {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	for i := range f.Observed {
		row := []string{f.Timestamps[i].Format(opts.DateFormat), format(f.Observed[i]), format(f.Mean[i])}
		if f.HasSpread() {
			row = append(row, format(f.Spread[i]))
		}
		if f.HasSkew() {
			row = append(row, format(f.Skew[i]))
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

func clean(s string) string {
	return strings.TrimSpace(strings.Trim(s, "\""))
}

func parseValue(record []string, idx int) (float64, bool) {
	if idx < 0 || idx >= len(record) {
		return math.NaN(), false
	}
	s := clean(record[idx])
	if s == "" || s == "NA" || s == "NaN" || s == "null" {
		return math.NaN(), false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return math.NaN(), false
	}
	return v, true
}

func parseDate(raw, preferred string) (time.Time, error) {
	s := clean(raw)
	if preferred != "" {
		if ts, err := time.Parse(preferred, s); err == nil {
			return ts, nil
		}
	}
	for _, layout := range dateFormats {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised date %q", s)
}
