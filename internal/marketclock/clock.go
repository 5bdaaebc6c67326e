package marketclock

import (
	"fmt"
	"time"
)

// US equity regular session, Eastern Time
const (
	openHour    = 9
	openMinute  = 30
	closeHour   = 16
	closeMinute = 0
)

const dateLayout = "2006-01-02"

// Clock answers market-session questions for US equities. The time source
// is injected so nothing downstream reads wall-clock time directly.
type Clock struct {
	now func() time.Time
	loc *time.Location
}

// New creates a clock on the real system time in US Eastern
func New() (*Clock, error) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		return nil, fmt.Errorf("load market timezone: %w", err)
	}
	return &Clock{now: time.Now, loc: loc}, nil
}

// NewWithNow creates a clock on a fixed time source, for tests and replays
func NewWithNow(now func() time.Time, loc *time.Location) *Clock {
	return &Clock{now: now, loc: loc}
}

// IsOpen reports whether the regular session is in progress.
// TODO: holiday calendar; full-day market holidays currently count as open
// when they fall on a weekday.
func (c *Clock) IsOpen() bool {
	t := c.now().In(c.loc)
	if t.Weekday() == time.Saturday || t.Weekday() == time.Sunday {
		return false
	}

	open := time.Date(t.Year(), t.Month(), t.Day(), openHour, openMinute, 0, 0, c.loc)
	close := time.Date(t.Year(), t.Month(), t.Day(), closeHour, closeMinute, 0, 0, c.loc)
	return !t.Before(open) && t.Before(close)
}

// AnalysisDate returns the trading date the analysis should run against:
// today while the market is open or after today's close, otherwise the most
// recent prior trading day.
func (c *Clock) AnalysisDate() string {
	t := c.now().In(c.loc)

	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, c.loc)

	// Before the open, today's session has not happened yet.
	open := day.Add(time.Duration(openHour)*time.Hour + time.Duration(openMinute)*time.Minute)
	if t.Before(open) {
		day = day.AddDate(0, 0, -1)
	}

	for day.Weekday() == time.Saturday || day.Weekday() == time.Sunday {
		day = day.AddDate(0, 0, -1)
	}

	return day.Format(dateLayout)
}

// Now returns the current time in the market timezone
func (c *Clock) Now() time.Time {
	return c.now().In(c.loc)
}
