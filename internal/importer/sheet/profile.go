package sheet

import "github.com/sprasadik2010/vantage-system-sub000/internal/commission"

// Profile describes the column layout of one back-office export format.
// Supporting a new export is adding a Profile here.
type Profile struct {
	Name string

	KeyCol    string
	AmountCol string

	// TypeCol is optional; when the column is absent or a cell is blank,
	// DefaultType applies.
	TypeCol     string
	DefaultType commission.IncomeType
}

// requiredCols returns the columns that must all be present for this profile
// to match a header row.
func (p Profile) requiredCols() []string {
	return []string{p.KeyCol, p.AmountCol}
}

// profiles is the ordered list of export formats to try during detection.
// More specific layouts come first to avoid false matches.
var profiles = []Profile{
	{
		Name:        "mt5 commission",
		KeyCol:      "MT5 Account",
		AmountCol:   "Commission",
		TypeCol:     "Income Type",
		DefaultType: commission.IncomeTrade,
	},
	{
		Name:        "generic",
		KeyCol:      "Account",
		AmountCol:   "Amount",
		TypeCol:     "Type",
		DefaultType: commission.IncomeTrade,
	},
}
