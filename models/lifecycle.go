package models

import "time"

// ClassifyElection maps an election's voting window and the current time to
// a lifecycle state. The window is inclusive on both ends: a cast at exactly
// start_date or exactly end_date is within the active window.
func ClassifyElection(now, start, end time.Time) string {
	if now.Before(start) {
		return StatusUpcoming
	}
	if now.After(end) {
		return StatusClosed
	}
	return StatusActive
}

// Status returns the election's lifecycle state at the given time.
func (e Election) Status(now time.Time) string {
	return ClassifyElection(now, e.StartDate, e.EndDate)
}
