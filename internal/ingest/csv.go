package ingest

import (
	"bufio"
	"bytes"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"golang.org/x/text/encoding/charmap"

	"github.com/lox/inmetdash/internal/metrics"
	"github.com/lox/inmetdash/internal/models"
)

const (
	delimiter = ';'

	// dateTimeLayout matches "dd/mm/yyyy HHMM" after the hour is zero-padded.
	dateTimeLayout = "2/1/2006 1504"
)

// Encoding selects how the raw file bytes are decoded.
type Encoding string

const (
	EncodingAuto   Encoding = "auto"
	EncodingUTF8   Encoding = "utf-8"
	EncodingLatin1 Encoding = "latin1"
)

type Options struct {
	// SkipRows lines are discarded before the header line.
	SkipRows int
	Encoding Encoding
	Logger   *slog.Logger
}

// Dataset is the cleaned contents of one station export.
type Dataset struct {
	// Columns is the trimmed CSV header in file order.
	Columns      []string
	Observations []models.Observation
	Stats        LoadStats
}

type LoadStats struct {
	Rows    int            `json:"rows"`
	Kept    int            `json:"kept"`
	Dropped int            `json:"dropped"`
	Flags   map[string]int `json:"flags,omitempty"`
}

// ParseError reports a cell that could not be normalized. Line is the
// 1-based line number in the original file.
type ParseError struct {
	Line   int
	Column string
	Value  string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: column %q: value %q: %v", e.Line, e.Column, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

var (
	ErrMissingColumn = errors.New("missing required column")
	ErrNotNumeric    = errors.New("not a number")
	ErrBadTimestamp  = errors.New("does not match dd/mm/yyyy HHMM")
)

// LoadFile opens path and loads it with Load.
func LoadFile(path string, opts Options) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	ds, err := Load(f, opts)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return ds, nil
}

// Load parses a semicolon-delimited INMET export. Malformed timestamps or
// measurements abort the load; rows lacking wind speed or direction are
// dropped.
func Load(r io.Reader, opts Options) (*Dataset, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}
	text, err := decode(raw, opts.Encoding)
	if err != nil {
		return nil, err
	}
	body, err := skipLines(text, opts.SkipRows)
	if err != nil {
		return nil, err
	}

	df := dataframe.ReadCSV(bytes.NewReader(body),
		dataframe.WithDelimiter(delimiter),
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
	)
	if df.Err != nil {
		return nil, fmt.Errorf("parse csv: %w", df.Err)
	}

	columns := make([]string, 0, df.Ncol())
	for _, name := range df.Names() {
		columns = append(columns, strings.TrimSpace(name))
	}
	if err := df.SetNames(columns...); err != nil {
		return nil, fmt.Errorf("rename columns: %w", err)
	}

	cells := make(map[string][]string, len(columns))
	for _, name := range columns {
		cells[name] = df.Col(name).Records()
	}
	required := []string{models.ColumnDate, models.ColumnTime}
	for _, m := range models.Measures {
		required = append(required, m.Column())
	}
	for _, name := range required {
		if _, ok := cells[name]; !ok {
			return nil, fmt.Errorf("%w: %q", ErrMissingColumn, name)
		}
	}

	// header line plus skipped preamble
	firstLine := opts.SkipRows + 2

	ds := &Dataset{
		Columns: columns,
		Stats:   LoadStats{Rows: df.Nrow(), Flags: make(map[string]int)},
	}
	for i := 0; i < df.Nrow(); i++ {
		line := firstLine + i
		obs := models.Observation{Raw: make(map[string]string, len(columns))}
		for _, name := range columns {
			obs.Raw[name] = strings.TrimSpace(cells[name][i])
		}

		ts, err := parseTimestamp(obs.Raw[models.ColumnDate], obs.Raw[models.ColumnTime])
		if err != nil {
			return nil, &ParseError{
				Line:   line,
				Column: models.ColumnDate + " " + models.ColumnTime,
				Value:  obs.Raw[models.ColumnDate] + " " + obs.Raw[models.ColumnTime],
				Err:    err,
			}
		}
		obs.ObservedAt = ts
		obs.Month = int(ts.Month())
		obs.MonthName, _ = models.MonthName(obs.Month)

		complete := true
		for _, m := range models.Measures {
			v, err := parseDecimal(obs.Raw[m.Column()])
			if err != nil {
				return nil, &ParseError{Line: line, Column: m.Column(), Value: obs.Raw[m.Column()], Err: err}
			}
			if !v.Valid && (m == models.WindSpeed || m == models.WindDir) {
				complete = false
			}
			obs.SetValue(m, v)
		}
		if !complete {
			ds.Stats.Dropped++
			continue
		}

		for _, flag := range ValidateObservation(&obs) {
			ds.Stats.Flags[flag]++
		}
		ds.Observations = append(ds.Observations, obs)
	}
	ds.Stats.Kept = len(ds.Observations)

	metrics.ObservationsLoaded.Set(float64(ds.Stats.Kept))
	metrics.RowsDropped.Add(float64(ds.Stats.Dropped))
	for flag, n := range ds.Stats.Flags {
		metrics.QualityFlags.WithLabelValues(flag).Add(float64(n))
		logger.Warn("quality check flagged rows", "flag", flag, "rows", n)
	}
	logger.Info("observations loaded",
		"rows", ds.Stats.Rows,
		"kept", ds.Stats.Kept,
		"dropped", ds.Stats.Dropped,
	)
	return ds, nil
}

// parseTimestamp combines the date and the zero-padded HHMM hour.
func parseTimestamp(date, hour string) (time.Time, error) {
	hour = strings.TrimSpace(hour)
	if len(hour) < 4 {
		hour = strings.Repeat("0", 4-len(hour)) + hour
	}
	ts, err := time.ParseInLocation(dateTimeLayout, strings.TrimSpace(date)+" "+hour, time.UTC)
	if err != nil {
		return time.Time{}, ErrBadTimestamp
	}
	return ts, nil
}

// parseDecimal converts a decimal-comma cell. Empty and NA markers are
// missing values, not errors.
func parseDecimal(s string) (sql.NullFloat64, error) {
	s = strings.TrimSpace(s)
	switch strings.ToLower(s) {
	case "", "nan", "na", "<nil>":
		return sql.NullFloat64{}, nil
	}
	f, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64)
	if err != nil {
		return sql.NullFloat64{}, ErrNotNumeric
	}
	return sql.NullFloat64{Float64: f, Valid: true}, nil
}

func decode(raw []byte, enc Encoding) ([]byte, error) {
	raw = bytes.TrimPrefix(raw, []byte("\xef\xbb\xbf"))
	switch enc {
	case "", EncodingAuto:
		if utf8.Valid(raw) {
			return raw, nil
		}
		return latin1(raw)
	case EncodingUTF8:
		return raw, nil
	case EncodingLatin1:
		return latin1(raw)
	default:
		return nil, fmt.Errorf("unknown encoding %q", enc)
	}
}

func latin1(raw []byte) ([]byte, error) {
	out, err := charmap.ISO8859_1.NewDecoder().Bytes(raw)
	if err != nil {
		return nil, fmt.Errorf("decode latin1: %w", err)
	}
	return out, nil
}

func skipLines(b []byte, n int) ([]byte, error) {
	if n <= 0 {
		return b, nil
	}
	br := bufio.NewReader(bytes.NewReader(b))
	for i := 0; i < n; i++ {
		if _, err := br.ReadString('\n'); err != nil {
			return nil, fmt.Errorf("skip %d rows: file has only %d lines", n, i)
		}
	}
	rest, err := io.ReadAll(br)
	if err != nil {
		return nil, err
	}
	return rest, nil
}
