package rotation

import "time"

// DefaultEpoch is the Sunday that marks week offset zero: 11 April 2021.
var DefaultEpoch = time.Date(2021, time.April, 11, 0, 0, 0, 0, time.UTC)

// Calculator converts calendar dates to week offsets from a fixed epoch and
// back. The epoch must be a Sunday; week boundaries fall on Sundays.
//
// All arithmetic happens on midnight-UTC calendar dates, so DST transitions
// in the caller's timezone never skew the day counts.
type Calculator struct {
	epoch time.Time
	now   func() time.Time
}

// NewCalculator creates a Calculator for the given epoch. now supplies the
// current time for CurrentOffset; pass nil to use time.Now.
func NewCalculator(epoch time.Time, now func() time.Time) *Calculator {
	if now == nil {
		now = time.Now
	}
	return &Calculator{epoch: midnightUTC(epoch), now: now}
}

// Epoch returns the calculator's epoch at midnight UTC.
func (c *Calculator) Epoch() time.Time {
	return c.epoch
}

// WeekBoundary rounds date forward to its week's Sunday boundary. A date
// already on a Sunday is its own boundary. The result is midnight UTC of the
// boundary's calendar date; the input is never modified.
func (c *Calculator) WeekBoundary(date time.Time) time.Time {
	d := midnightUTC(date)
	days := (7 - int(d.Weekday())) % 7
	return d.AddDate(0, 0, days)
}

// DateToOffset returns the number of whole weeks between date's week
// boundary and the epoch. Every date in the same week maps to the same
// offset. Dates on or before the epoch's own boundary clamp to 0.
func (c *Calculator) DateToOffset(date time.Time) int {
	days := int(c.WeekBoundary(date).Sub(c.epoch).Hours()) / 24
	if days <= 0 {
		return 0
	}
	return days / 7
}

// CurrentOffset returns DateToOffset of the injected clock's current time.
// This is the only impure operation in the package.
func (c *Calculator) CurrentOffset() int {
	return c.DateToOffset(c.now())
}

// EndOfWeek returns the Sunday closing week offset: the epoch advanced by
// 7*offset days. Not a true inverse of DateToOffset, since a whole week of
// dates maps to one offset.
func (c *Calculator) EndOfWeek(offset int) time.Time {
	return c.epoch.AddDate(0, 0, 7*offset)
}

func midnightUTC(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
