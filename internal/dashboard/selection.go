package dashboard

import (
	"errors"
	"fmt"

	"StockDashboard/internal/model"

	"github.com/shopspring/decimal"
)

// ErrInvalidSelection is returned for user input the pipeline cannot run on.
var ErrInvalidSelection = errors.New("invalid selection")

// Prepare returns a cleaned copy of sel: symbols are upper-cased, blanks and
// duplicates dropped (first occurrence wins) and the share and threshold
// maps re-keyed accordingly. Two map keys naming the same symbol, such as
// "aapl" and "AAPL", are rejected. The caller's maps are not modified.
func Prepare(sel model.Selection) (model.Selection, error) {
	out := model.Selection{
		Start:      sel.Start,
		End:        sel.End,
		Shares:     make(map[model.Symbol]int64, len(sel.Shares)),
		Thresholds: make(map[model.Symbol]decimal.Decimal, len(sel.Thresholds)),
	}
	seen := make(map[model.Symbol]bool, len(sel.Symbols))
	for _, s := range sel.Symbols {
		sym := model.NewSymbol(string(s))
		if sym == "" || seen[sym] {
			continue
		}
		seen[sym] = true
		out.Symbols = append(out.Symbols, sym)
	}
	for s, n := range sel.Shares {
		if n < 0 {
			return model.Selection{}, fmt.Errorf("%w: negative shares for %s", ErrInvalidSelection, s)
		}
		sym := model.NewSymbol(string(s))
		if _, dup := out.Shares[sym]; dup {
			return model.Selection{}, fmt.Errorf("%w: shares given twice for %s", ErrInvalidSelection, sym)
		}
		out.Shares[sym] = n
	}
	for s, th := range sel.Thresholds {
		if th.IsNegative() {
			return model.Selection{}, fmt.Errorf("%w: negative alert threshold for %s", ErrInvalidSelection, s)
		}
		sym := model.NewSymbol(string(s))
		if _, dup := out.Thresholds[sym]; dup {
			return model.Selection{}, fmt.Errorf("%w: alert threshold given twice for %s", ErrInvalidSelection, sym)
		}
		out.Thresholds[sym] = th
	}

	if out.IsEmpty() {
		return out, nil
	}
	if out.Start.IsZero() || out.End.IsZero() {
		return model.Selection{}, fmt.Errorf("%w: start and end dates are required", ErrInvalidSelection)
	}
	if out.End.Before(out.Start) {
		return model.Selection{}, fmt.Errorf("%w: end %s before start %s", ErrInvalidSelection,
			out.End.Format("2006-01-02"), out.Start.Format("2006-01-02"))
	}
	return out, nil
}
