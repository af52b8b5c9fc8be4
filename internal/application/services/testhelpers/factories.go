package testhelpers

import (
	"io"
	"log/slog"
	"time"

	"github.com/DanielPopoola/payments-gateway/internal/application/services"
)

// FixedClock always reports the same instant.
type FixedClock struct {
	At time.Time
}

func (c FixedClock) Now() time.Time {
	return c.At
}

var DefaultNow = time.Date(2025, 7, 22, 12, 0, 0, 0, time.UTC)

func DiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// DefaultAuthorizeCommand returns a valid command whose card expires the month after now.
// The card number ends in an odd digit.
func DefaultAuthorizeCommand(now time.Time) services.AuthorizeCommand {
	next := now.AddDate(0, 1, 0)
	return services.AuthorizeCommand{
		CardNumber:  "123456789101213",
		ExpiryMonth: int(next.Month()),
		ExpiryYear:  next.Year() + 1,
		Currency:    "GBP",
		Amount:      1000,
		CVV:         "192",
	}
}
