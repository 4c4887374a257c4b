package tz

import (
	"log/slog"
	"strings"
	"time"
	_ "time/tzdata"

	"localscout-booking/internal/pkg/errs"
)

const DefaultZone = "Asia/Dhaka"

var ErrInvalidLocalTime = errs.New("invalid local date time")

// Layouts accepted for wall-clock input that carries no zone information.
var localLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
}

// Converter normalizes booking times between the marketplace zone and UTC.
type Converter struct {
	loc *time.Location
}

// NewConverter falls back to UTC when the zone id cannot be loaded.
func NewConverter(zoneID string) *Converter {
	if zoneID == "" {
		zoneID = DefaultZone
	}
	loc, err := time.LoadLocation(zoneID)
	if err != nil {
		slog.Warn("time zone not found, falling back to UTC", "zone", zoneID, "error", err.Error())
		loc = time.UTC
	}
	return &Converter{loc: loc}
}

func (c *Converter) Location() *time.Location {
	return c.loc
}

// ParseLocal parses user input and returns the instant in UTC.
// Input with an explicit offset or Z is taken as given.
func (c *Converter) ParseLocal(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, ErrInvalidLocalTime
	}

	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t.UTC(), nil
	}

	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, s, c.loc); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, errs.Mark(errs.Newf("unrecognized date time %q", s), ErrInvalidLocalTime)
}

func (c *Converter) ToUTC(t time.Time) time.Time {
	return t.UTC()
}

func (c *Converter) ToLocal(t time.Time) time.Time {
	return t.In(c.loc)
}

// FormatLocal renders t as wall-clock time in the configured zone, with offset.
func (c *Converter) FormatLocal(t time.Time) string {
	return t.In(c.loc).Format(time.RFC3339)
}
