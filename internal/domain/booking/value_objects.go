package booking

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"localscout-booking/internal/pkg/errs"
)

const (
	MaxNoteLength   = 1000
	MaxReasonLength = 500
)

var (
	ErrNegativeAmount = errs.New("amount cannot be negative")
	ErrInvalidAmount  = errs.New("invalid amount")
	ErrNoteTooLong    = errs.New("note is too long")
	ErrReasonTooLong  = errs.New("reason is too long")
)

// Money is an amount in minor units (paisa, cents) of the marketplace currency.
type Money struct {
	minor int64
}

func NewMoney(minor int64) (Money, error) {
	if minor < 0 {
		return Money{}, ErrNegativeAmount
	}
	return Money{minor: minor}, nil
}

// ParseMoney accepts decimal strings like "450", "450.5" or "450.00".
func ParseMoney(s string) (Money, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Money{}, ErrInvalidAmount
	}
	if strings.HasPrefix(s, "-") {
		return Money{}, ErrNegativeAmount
	}

	whole, frac, hasFrac := strings.Cut(s, ".")
	if whole == "" || (hasFrac && (frac == "" || len(frac) > 2)) {
		return Money{}, errs.Mark(errs.Newf("amount %q", s), ErrInvalidAmount)
	}
	if !isDigits(whole) || !isDigits(frac) {
		return Money{}, errs.Mark(errs.Newf("amount %q", s), ErrInvalidAmount)
	}

	units, err := strconv.ParseInt(whole, 10, 64)
	if err != nil || units >= math.MaxInt64/100 {
		return Money{}, errs.Mark(errs.Newf("amount %q out of range", s), ErrInvalidAmount)
	}

	var cents int64
	if frac != "" {
		if len(frac) == 1 {
			frac += "0"
		}
		cents, _ = strconv.ParseInt(frac, 10, 64)
	}
	return Money{minor: units*100 + cents}, nil
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func (m Money) Minor() int64 {
	return m.minor
}

func (m Money) IsZero() bool {
	return m.minor == 0
}

func (m Money) IsPositive() bool {
	return m.minor > 0
}

func (m Money) Float64() float64 {
	return float64(m.minor) / 100.0
}

// String always renders two decimals, which is what payment gateways expect.
func (m Money) String() string {
	return fmt.Sprintf("%d.%02d", m.minor/100, m.minor%100)
}

type Note struct {
	value string
}

func NewNote(s string) (Note, error) {
	s = strings.TrimSpace(s)
	if utf8.RuneCountInString(s) > MaxNoteLength {
		return Note{}, ErrNoteTooLong
	}
	return Note{value: s}, nil
}

func (n Note) String() string {
	return n.value
}

func (n Note) IsEmpty() bool {
	return n.value == ""
}

func normalizeReason(s string) (string, error) {
	s = strings.TrimSpace(s)
	if utf8.RuneCountInString(s) > MaxReasonLength {
		return "", ErrReasonTooLong
	}
	return s, nil
}
