package importer

import (
	"fmt"
	"io"

	"github.com/sprasadik2010/vantage-system-sub000/internal/batch"
	"github.com/sprasadik2010/vantage-system-sub000/internal/importer/sheet"
)

type Service struct {
	vantageParser Parser
}

func NewService() *Service {
	return &Service{
		vantageParser: sheet.NewParser(),
	}
}

func (s *Service) Parse(format Format, r io.Reader) ([]batch.RowParams, error) {
	var parser Parser

	switch format {
	case FormatVantage:
		parser = s.vantageParser
	default:
		return nil, fmt.Errorf("unknown spreadsheet format: %s", format)
	}

	return parser.Parse(r)
}
