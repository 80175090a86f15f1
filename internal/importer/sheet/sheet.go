package sheet

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/sprasadik2010/vantage-system-sub000/internal/batch"
	"github.com/sprasadik2010/vantage-system-sub000/internal/commission"
	enc "github.com/sprasadik2010/vantage-system-sub000/internal/encoding"
)

// Parser reads back-office commission spreadsheets (CSV exports) and produces
// batch row params. The column layout is auto-detected by matching headers
// against known profiles; preamble and footer lines around the table are
// tolerated. Rows with recognizable content but invalid data come back with
// ParseError set so the batch can count them as error rows instead of
// silently dropping them.
type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

func (p *Parser) Parse(r io.Reader) ([]batch.RowParams, error) {
	utf8r, err := enc.NewUTF8Reader(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	data, err := io.ReadAll(utf8r)
	if err != nil {
		return nil, fmt.Errorf("read spreadsheet: %w", err)
	}

	// Exports arrive comma- or semicolon-delimited depending on the
	// operator's locale; try both before giving up.
	for _, comma := range []rune{',', ';'} {
		reader := csv.NewReader(bytes.NewReader(data))
		reader.Comma = comma
		reader.FieldsPerRecord = -1
		reader.LazyQuotes = true

		rows, err := reader.ReadAll()
		if err != nil {
			continue
		}

		profile, cols, headerIdx := detectProfile(rows)
		if profile == nil {
			continue
		}

		return parseRows(profile, cols, rows[headerIdx+1:]), nil
	}

	return nil, fmt.Errorf("no matching spreadsheet format: expected account and amount columns")
}

// colIndex maps column names to their index in the row.
type colIndex map[string]int

// detectProfile scans rows for a header matching a known profile. Returns the
// matched profile, column index map, and header row index.
func detectProfile(rows [][]string) (*Profile, colIndex, int) {
	for rowIdx, row := range rows {
		cols := make(colIndex)

		for i, cell := range row {
			name := strings.TrimSpace(cell)
			if name != "" {
				cols[name] = i
			}
		}

		for i := range profiles {
			if matchesProfile(&profiles[i], cols) {
				return &profiles[i], cols, rowIdx
			}
		}
	}

	return nil, nil, 0
}

func matchesProfile(p *Profile, cols colIndex) bool {
	for _, name := range p.requiredCols() {
		if _, ok := cols[name]; !ok {
			return false
		}
	}

	return true
}

// parseRows extracts batch rows from the data rows below the header. Row
// indices are assigned sequentially over produced rows, so they stay stable
// no matter how much preamble the file carried.
func parseRows(p *Profile, cols colIndex, rows [][]string) []batch.RowParams {
	keyIdx := cols[p.KeyCol]
	amountIdx := cols[p.AmountCol]

	typeIdx := -1
	if idx, ok := cols[p.TypeCol]; ok && p.TypeCol != "" {
		typeIdx = idx
	}

	var params []batch.RowParams

	for _, row := range rows {
		key := cellValue(row, keyIdx)
		amountStr := cellValue(row, amountIdx)

		// Blank on both key and amount is a footer or spacer line, not data.
		if key == "" && amountStr == "" {
			continue
		}

		// A row too short to even have the amount cell is structural junk
		// (totals line, report footer), not a data row worth an error.
		if amountStr == "" && len(row) <= amountIdx {
			continue
		}

		rp := batch.RowParams{Index: len(params), BusinessKey: key}

		switch {
		case key == "":
			rp.ParseError = "missing business key"
		case amountStr == "":
			rp.ParseError = "missing amount"
		default:
			rp.Amount, rp.IncomeType, rp.ParseError = parseValues(p, row, amountStr, typeIdx)
		}

		params = append(params, rp)
	}

	return params
}

func parseValues(p *Profile, row []string, amountStr string, typeIdx int) (int64, commission.IncomeType, string) {
	amount, err := parseAmount(amountStr)
	if err != nil {
		return 0, "", fmt.Sprintf("invalid amount %q", amountStr)
	}

	if amount <= 0 {
		return 0, "", "amount must be positive"
	}

	incomeType := p.DefaultType
	if typeIdx >= 0 {
		if s := cellValue(row, typeIdx); s != "" {
			incomeType = commission.IncomeType(strings.ToLower(s))
		}
	}

	if !incomeType.Valid() {
		return 0, "", fmt.Sprintf("unsupported income type %q", incomeType)
	}

	return amount, incomeType, ""
}

// cellValue safely gets a trimmed cell value from a row.
func cellValue(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[idx])
}
