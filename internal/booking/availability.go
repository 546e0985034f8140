package booking

import "time"

// Overlaps reports whether the half-open intervals [aStart, aEnd) and
// [bStart, bEnd) intersect: intervals that merely touch do not overlap.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && aEnd.After(bStart)
}

// HasConflict reports whether [start, end) overlaps any booking in the given
// set that still holds its slot (WAITING or APPROVED). Rejected and canceled
// bookings never block.
func HasConflict(bookings []*Booking, start, end time.Time) bool {
	for _, b := range bookings {
		if !b.Status.blocking() {
			continue
		}
		if Overlaps(start, end, b.Start, b.End) {
			return true
		}
	}
	return false
}
