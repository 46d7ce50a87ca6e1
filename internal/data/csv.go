package data

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"electricity-cost/internal/model"
)

// ParseError describes one rejected CSV row. Rejected rows never reach the
// billing engine; the engine only sees validated readings.
type ParseError struct {
	Line    int
	Column  string
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d (%s): %s", e.Line, e.Column, e.Message)
}

// ParseResult is the outcome of ingesting one usage CSV.
type ParseResult struct {
	Readings []model.Reading

	// What the sniffer decided, for display back to the user.
	DatetimeColumn string
	UsageColumn    string
	Delimiter      rune
	HasHeader      bool

	// Rows rejected during parsing. Present readings are still usable.
	RowErrors []ParseError
}

// Timestamp layouts tried in order. Best effort: ambiguous day/month input
// resolves to whichever layout matches first.
var timestampLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"2006-01-02T15:04",
	"2006/01/02 15:04",
	"02.01.2006 15:04",
	"02.01.2006 15:04:05",
	"01/02/2006 15:04",
	"01/02/2006 15:04:05",
}

var datetimeKeywords = []string{"datetime", "date", "time", "timestamp"}
var usageKeywords = []string{"kwh", "usage", "consumption", "power"}

// LoadUsageCSV reads and parses an hourly usage CSV from disk.
func LoadUsageCSV(path string) (*ParseResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ParseUsageCSV(f)
}

// ParseUsageCSV ingests a best-effort usage CSV: sniffs the delimiter,
// identifies the datetime and usage columns from header keywords (falling
// back to the first two columns), and validates every row. Malformed rows
// are collected as RowErrors rather than aborting the whole file; readings
// that survive are guaranteed to have a valid timestamp and usage >= 0.
func ParseUsageCSV(r io.Reader) (*ParseResult, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	text := strings.TrimPrefix(string(raw), "\ufeff")
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("CSV file is empty")
	}

	delim := sniffDelimiter(text)

	cr := csv.NewReader(strings.NewReader(text))
	cr.Comma = delim
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("CSV file is empty")
	}
	if len(records[0]) < 2 {
		return nil, fmt.Errorf("CSV must have at least 2 columns (datetime and kWh), got %d", len(records[0]))
	}

	res := &ParseResult{Delimiter: delim}
	dtIdx, usageIdx := identifyColumns(records[0], res)

	start := 0
	if res.HasHeader {
		start = 1
	}

	for i := start; i < len(records); i++ {
		rec := records[i]
		line := i + 1
		if len(rec) <= dtIdx || len(rec) <= usageIdx {
			res.RowErrors = append(res.RowErrors, ParseError{
				Line: line, Column: res.DatetimeColumn,
				Message: fmt.Sprintf("expected at least %d columns, got %d", max(dtIdx, usageIdx)+1, len(rec)),
			})
			continue
		}

		ts, err := parseTimestamp(rec[dtIdx])
		if err != nil {
			res.RowErrors = append(res.RowErrors, ParseError{
				Line: line, Column: res.DatetimeColumn, Message: err.Error(),
			})
			continue
		}
		usage, err := parseUsage(rec[usageIdx])
		if err != nil {
			res.RowErrors = append(res.RowErrors, ParseError{
				Line: line, Column: res.UsageColumn, Message: err.Error(),
			})
			continue
		}

		res.Readings = append(res.Readings, model.Reading{Timestamp: ts, UsageKwh: usage})
	}

	if len(res.Readings) == 0 {
		return nil, fmt.Errorf("no valid readings in CSV (%d rows rejected)", len(res.RowErrors))
	}
	return res, nil
}

// sniffDelimiter picks the candidate that occurs most often in the first
// line. Semicolon wins ties with comma so that semicolon-delimited files
// with decimal commas are not split on the decimal separator.
func sniffDelimiter(text string) rune {
	firstLine := text
	if idx := strings.IndexByte(text, '\n'); idx >= 0 {
		firstLine = text[:idx]
	}

	best := ','
	bestCount := strings.Count(firstLine, ",")
	for _, cand := range []rune{';', '\t'} {
		if n := strings.Count(firstLine, string(cand)); n >= bestCount && n > 0 {
			best = cand
			bestCount = n
		}
	}
	return best
}

// identifyColumns finds the datetime and usage columns. If the first row
// contains a recognizable header it is consumed as one; otherwise the first
// two columns are used positionally.
func identifyColumns(first []string, res *ParseResult) (dtIdx, usageIdx int) {
	dtIdx, usageIdx = -1, -1
	for i, name := range first {
		lower := strings.ToLower(strings.TrimSpace(name))
		if dtIdx < 0 && containsAny(lower, datetimeKeywords) {
			dtIdx = i
			continue
		}
		if usageIdx < 0 && containsAny(lower, usageKeywords) {
			usageIdx = i
		}
	}

	headerByKeyword := dtIdx >= 0 || usageIdx >= 0
	// A first row that parses as data means there is no header at all.
	_, tsErr := parseTimestamp(first[0])
	res.HasHeader = headerByKeyword || tsErr != nil

	if dtIdx < 0 {
		dtIdx = 0
	}
	if usageIdx < 0 {
		usageIdx = 1
		if usageIdx == dtIdx {
			usageIdx = 0
		}
	}

	if res.HasHeader {
		res.DatetimeColumn = strings.TrimSpace(first[dtIdx])
		res.UsageColumn = strings.TrimSpace(first[usageIdx])
	} else {
		res.DatetimeColumn = fmt.Sprintf("column %d", dtIdx+1)
		res.UsageColumn = fmt.Sprintf("column %d", usageIdx+1)
	}
	return dtIdx, usageIdx
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}

func parseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty timestamp")
	}
	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, fmt.Errorf("could not parse timestamp %q", s)
}

func parseUsage(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty usage value")
	}
	// Locale tolerance: "1,234" with no dot is a decimal comma.
	if strings.Contains(s, ",") && !strings.Contains(s, ".") {
		s = strings.ReplaceAll(s, ",", ".")
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("non-numeric usage value %q", s)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("usage value %q is not finite", s)
	}
	if v < 0 {
		return 0, fmt.Errorf("negative usage value %v", v)
	}
	return v, nil
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
