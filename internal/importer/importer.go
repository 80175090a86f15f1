package importer

import (
	"io"

	"github.com/sprasadik2010/vantage-system-sub000/internal/batch"
)

// Format identifies which back-office export layout a spreadsheet uses.
type Format string

const (
	// FormatVantage is the broker back-office commission export.
	FormatVantage Format = "vantage"
)

type Parser interface {
	Parse(r io.Reader) ([]batch.RowParams, error)
}
