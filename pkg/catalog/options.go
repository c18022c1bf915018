// Package catalog converts spreadsheet catalogs into a JSON document keyed by sheet name.
package catalog

import (
	"fmt"
	"log/slog"

	"github.com/ukaji3/catalogjson-go/pkg/catalog/parser"
)

// Strategy selects how header and data rows are located in a sheet.
type Strategy string

const (
	// StrategyOffset uses the fixed layout: row 1 decorative, row 2 header, data from row 3.
	StrategyOffset Strategy = "offset"
	// StrategySkip skips SkipRows leading rows; the next row is the header and data follows it directly.
	StrategySkip Strategy = "skip"
	// StrategyManual uses the explicit HeaderRow and DataStartRow.
	StrategyManual Strategy = "manual"
)

// Defaults for the configuration surface. Row numbers are 1-based as seen in a spreadsheet.
const (
	DefaultHeaderRow    = 2
	DefaultDataStartRow = 3
	DefaultSkipRows     = 2
	DefaultOutputPath   = "products_data.json"
)

// Options configures extraction behavior.
type Options struct {
	// Strategy specifies the row layout strategy (offset, skip, manual).
	Strategy Strategy
	// HeaderRow is the 1-based header row. Used by StrategyManual only.
	HeaderRow int
	// DataStartRow is the 1-based first data row. Used by StrategyManual only.
	DataStartRow int
	// SkipRows is the number of leading rows to discard. Used by StrategySkip only.
	SkipRows int
	// SourceRowNumbers makes _excel_row the physical worksheet row, counting
	// dropped blank rows. By default it counts kept rows from the first data row.
	SourceRowNumbers bool
	// Logger receives progress and diagnostics. Nil discards them.
	Logger *slog.Logger
}

// DefaultOptions returns default extraction options.
func DefaultOptions() Options {
	return Options{
		Strategy:     StrategyOffset,
		HeaderRow:    DefaultHeaderRow,
		DataStartRow: DefaultDataStartRow,
		SkipRows:     DefaultSkipRows,
	}
}

// ParseStrategy converts a strategy name into a Strategy.
func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(s) {
	case StrategyOffset, StrategySkip, StrategyManual:
		return Strategy(s), nil
	case "":
		return StrategyOffset, nil
	}
	return "", fmt.Errorf("%w: unknown strategy %q (must be offset, skip, or manual)", ErrInvalidOptions, s)
}

// Layout resolves the options into 0-based header and data row indices.
func (o Options) Layout() (parser.Layout, error) {
	switch o.Strategy {
	case StrategyOffset, "":
		return parser.DefaultLayout(), nil
	case StrategySkip:
		if o.SkipRows < 0 {
			return parser.Layout{}, fmt.Errorf("%w: skip rows must not be negative, got %d", ErrInvalidOptions, o.SkipRows)
		}
		return parser.Layout{HeaderRow: o.SkipRows, DataStartRow: o.SkipRows + 1}, nil
	case StrategyManual:
		if o.HeaderRow < 1 {
			return parser.Layout{}, fmt.Errorf("%w: header row must be >= 1, got %d", ErrInvalidOptions, o.HeaderRow)
		}
		if o.DataStartRow <= o.HeaderRow {
			return parser.Layout{}, fmt.Errorf("%w: data start row %d must come after header row %d",
				ErrInvalidOptions, o.DataStartRow, o.HeaderRow)
		}
		return parser.Layout{HeaderRow: o.HeaderRow - 1, DataStartRow: o.DataStartRow - 1}, nil
	}
	return parser.Layout{}, fmt.Errorf("%w: unknown strategy %q", ErrInvalidOptions, o.Strategy)
}

func (o Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.New(slog.DiscardHandler)
}
