package booking

import (
	"testing"
	"time"
)

func TestOverlaps(t *testing.T) {
	base := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	at := func(h int) time.Time { return base.Add(time.Duration(h) * time.Hour) }

	tests := []struct {
		name                       string
		aStart, aEnd, bStart, bEnd time.Time
		want                       bool
	}{
		{"identical intervals", at(10), at(12), at(10), at(12), true},
		{"partial overlap at start", at(9), at(11), at(10), at(12), true},
		{"partial overlap at end", at(11), at(13), at(10), at(12), true},
		{"a contains b", at(9), at(13), at(10), at(12), true},
		{"b contains a", at(10), at(12), at(9), at(13), true},
		{"touching: a ends where b starts", at(8), at(10), at(10), at(12), false},
		{"touching: b ends where a starts", at(12), at(14), at(10), at(12), false},
		{"disjoint before", at(6), at(8), at(10), at(12), false},
		{"disjoint after", at(14), at(16), at(10), at(12), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Overlaps(tt.aStart, tt.aEnd, tt.bStart, tt.bEnd); got != tt.want {
				t.Errorf("Overlaps() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestHasConflict(t *testing.T) {
	base := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	at := func(h int) time.Time { return base.Add(time.Duration(h) * time.Hour) }

	existing := []*Booking{
		{Start: at(10), End: at(12), Status: StatusApproved},
		{Start: at(14), End: at(16), Status: StatusWaiting},
		{Start: at(18), End: at(20), Status: StatusRejected},
		{Start: at(22), End: at(23), Status: StatusCanceled},
	}

	tests := []struct {
		name       string
		start, end time.Time
		want       bool
	}{
		{"overlaps approved", at(11), at(13), true},
		{"overlaps waiting", at(13), at(15), true},
		{"overlaps rejected only", at(18), at(20), false},
		{"overlaps canceled only", at(22), at(23), false},
		{"fits between approved and waiting", at(12), at(14), false},
		{"fully free slot", at(6), at(8), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HasConflict(existing, tt.start, tt.end); got != tt.want {
				t.Errorf("HasConflict() = %v, want %v", got, tt.want)
			}
		})
	}
}
