package sheet

import (
	"strings"

	"github.com/shopspring/decimal"
)

// parseAmount parses a spreadsheet amount cell into cents. Both plain
// ("1234.56", "1,234.56") and European ("1.234,56") formats occur in the
// exports, so the rightmost separator decides which one a cell uses.
func parseAmount(s string) (int64, error) {
	clean := strings.ReplaceAll(strings.TrimSpace(s), " ", "")

	if i := strings.LastIndexAny(clean, ",."); i >= 0 && clean[i] == ',' {
		clean = strings.ReplaceAll(clean, ".", "")
		clean = strings.Replace(clean, ",", ".", 1)
	} else {
		clean = strings.ReplaceAll(clean, ",", "")
	}

	d, err := decimal.NewFromString(clean)
	if err != nil {
		return 0, err
	}

	return d.Mul(decimal.NewFromInt(100)).Round(0).IntPart(), nil
}
