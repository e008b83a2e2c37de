// SPDX-License-Identifier: ISC
// Copyright (c) 2017-2020 tomtau
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package transactionrecord

import (
	"math"
	"time"

	"github.com/tomtau/corda/fault"
)

// sentinel bounds of a half open window
const (
	openFrom  = int64(math.MinInt64)
	openUntil = int64(math.MaxInt64)
)

// TimeWindowBetween - window covering [from, until)
func TimeWindowBetween(from time.Time, until time.Time) (*TimeWindow, error) {
	if from.After(until) {
		return nil, fault.ErrInvalidTimeWindow
	}
	return &TimeWindow{
		From:  from.UnixNano(),
		Until: until.UnixNano(),
	}, nil
}

// TimeWindowFrom - window with no upper bound
func TimeWindowFrom(from time.Time) *TimeWindow {
	return &TimeWindow{
		From:  from.UnixNano(),
		Until: openUntil,
	}
}

// TimeWindowUntil - window with no lower bound
func TimeWindowUntil(until time.Time) *TimeWindow {
	return &TimeWindow{
		From:  openFrom,
		Until: until.UnixNano(),
	}
}

// TimeWindowAround - window centred on an instant
func TimeWindowAround(instant time.Time, tolerance time.Duration) (*TimeWindow, error) {
	if tolerance < 0 {
		return nil, fault.ErrInvalidTimeWindow
	}
	return TimeWindowBetween(instant.Add(-tolerance), instant.Add(tolerance))
}

// HasFrom - true if the window has a lower bound
func (timeWindow *TimeWindow) HasFrom() bool {
	return openFrom != timeWindow.From
}

// HasUntil - true if the window has an upper bound
func (timeWindow *TimeWindow) HasUntil() bool {
	return openUntil != timeWindow.Until
}

// Contains - true if the instant falls inside the window
func (timeWindow *TimeWindow) Contains(instant time.Time) bool {
	t := instant.UnixNano()
	return t >= timeWindow.From && t < timeWindow.Until
}

// Midpoint - centre instant of a fully bounded window
func (timeWindow *TimeWindow) Midpoint() (time.Time, error) {
	if !timeWindow.HasFrom() || !timeWindow.HasUntil() {
		return time.Time{}, fault.ErrInvalidTimeWindow
	}
	mid := timeWindow.From + (timeWindow.Until-timeWindow.From)/2
	return time.Unix(0, mid).UTC(), nil
}
