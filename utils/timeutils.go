package utils

import (
	"fmt"
	"strings"
	"time"
)

// UTC offsets for the Finnish timezone (EET/EEST) in milliseconds.
const (
	FinlandWinterOffsetMS int64 = 2 * 60 * 60 * 1000
	FinlandSummerOffsetMS int64 = 3 * 60 * 60 * 1000
)

// dstTransitionHourUTC is the UTC hour at which European DST transitions
// take effect on the last Sunday of March and October.
const dstTransitionHourUTC = 1

// UTCOffsetFor returns the UTC offset in milliseconds in effect at t for a
// zone following the European daylight-saving rule: summer time starts on
// the last Sunday of March and ends on the last Sunday of October, both at
// 01:00 UTC. The boundary is inclusive on the new side: at the spring
// instant the summer offset already applies (>=), at the autumn instant the
// winter offset applies (<).
func UTCOffsetFor(t time.Time, winterOffsetMS, summerOffsetMS int64) int64 {
	ut := t.UTC()
	summerStart := lastSundayUTC(ut.Year(), time.March).Add(dstTransitionHourUTC * time.Hour)
	summerEnd := lastSundayUTC(ut.Year(), time.October).Add(dstTransitionHourUTC * time.Hour)
	if !ut.Before(summerStart) && ut.Before(summerEnd) {
		return summerOffsetMS
	}
	return winterOffsetMS
}

// FinlandUTCOffsetFor is UTCOffsetFor bound to the EET/EEST offsets.
func FinlandUTCOffsetFor(t time.Time) int64 {
	return UTCOffsetFor(t, FinlandWinterOffsetMS, FinlandSummerOffsetMS)
}

// lastSundayUTC returns midnight UTC of the last Sunday of the given month.
func lastSundayUTC(year int, month time.Month) time.Time {
	d := time.Date(year, month+1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, -1)
	for d.Weekday() != time.Sunday {
		d = d.AddDate(0, 0, -1)
	}
	return d
}

// LocalWallClockToEpochMS converts a wall-clock reading (interpreted in a
// zone with the given offsets) to epoch milliseconds. The offset in effect
// depends on the UTC instant, which in turn depends on the offset, so the
// winter offset is applied first and the rule re-evaluated at that guess.
func LocalWallClockToEpochMS(wall time.Time, winterOffsetMS, summerOffsetMS int64) int64 {
	guess := wall.UnixMilli() - winterOffsetMS
	offset := UTCOffsetFor(time.UnixMilli(guess), winterOffsetMS, summerOffsetMS)
	return wall.UnixMilli() - offset
}

// ParseCompactLocal parses a "YYYYMMDD HHMM" wall-clock string, as emitted
// by legacy journey planner APIs, into a time.Time carrying the wall-clock
// fields in UTC.
func ParseCompactLocal(s string) (time.Time, error) {
	wall, err := time.Parse("20060102 1504", strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("malformed local time %q: %w", s, err)
	}
	return wall, nil
}

// FinlandLocalToEpochMS parses a "YYYYMMDD HHMM" Finnish wall-clock string
// and converts it to epoch milliseconds.
func FinlandLocalToEpochMS(s string) (int64, error) {
	wall, err := ParseCompactLocal(s)
	if err != nil {
		return 0, err
	}
	return LocalWallClockToEpochMS(wall, FinlandWinterOffsetMS, FinlandSummerOffsetMS), nil
}

// EpochMSFromISO8601 parses an RFC3339 timestamp (with offset) into epoch
// milliseconds.
func EpochMSFromISO8601(s string) (int64, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return 0, fmt.Errorf("malformed timestamp %q: %w", s, err)
	}
	return t.UnixMilli(), nil
}

// Iso8601FromEpochMS formats an epoch-ms timestamp as RFC3339 UTC. Used for
// log fields and the health endpoint.
func Iso8601FromEpochMS(ms int64) string {
	return time.UnixMilli(ms).UTC().Format(time.RFC3339)
}
