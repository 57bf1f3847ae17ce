package collector

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"

	"StockDashboard/internal/model"
)

// ErrProviderUnavailable reports a gateway call that did not complete in time.
var ErrProviderUnavailable = errors.New("market data provider unavailable")

// errNoData marks a symbol the provider does not know or has no rows for.
var errNoData = errors.New("no data")

// ProviderError is a failed gateway call. It aborts the current pass.
type ProviderError struct {
	Op      string
	Symbols []model.Symbol
	Err     error
}

func (e *ProviderError) Error() string {
	names := make([]string, len(e.Symbols))
	for i, s := range e.Symbols {
		names[i] = string(s)
	}
	return fmt.Sprintf("%s [%s]: %v", e.Op, strings.Join(names, ","), e.Err)
}

func (e *ProviderError) Unwrap() error { return e.Err }

// NewProviderError wraps err for the given operation. Timeouts are reported
// as ErrProviderUnavailable. An error that already is a ProviderError is
// returned unchanged.
func NewProviderError(op string, symbols []model.Symbol, err error) *ProviderError {
	var pe *ProviderError
	if errors.As(err, &pe) {
		return pe
	}
	if isTimeout(err) && !errors.Is(err, ErrProviderUnavailable) {
		err = fmt.Errorf("%w: %w", ErrProviderUnavailable, err)
	}
	return &ProviderError{Op: op, Symbols: symbols, Err: err}
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}
