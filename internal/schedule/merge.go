package schedule

import (
	"github.com/Tiliavir/campus-timetable/internal/model"
)

// MergeOptions configures a batch merge.
type MergeOptions struct {
	// CrossCheck also tests each candidate against candidates accepted
	// earlier in the same batch. Off by default: rows are only checked
	// against the schedule as it stood before the batch.
	CrossCheck bool
	// DryRun computes the result without touching the schedule.
	DryRun bool
}

// Rejection is a candidate that was skipped because of a conflict.
type Rejection struct {
	Entry model.Entry
	With  string
}

// MergeResult reports what a batch merge did.
type MergeResult struct {
	Added    []model.Entry
	Rejected []Rejection
}

// Merge checks every candidate independently and appends the ones that do
// not conflict. Without CrossCheck, two candidates that overlap each other
// are both accepted as long as neither overlaps a pre-existing entry.
func Merge(s *Schedule, candidates []model.Entry, opts MergeOptions) MergeResult {
	base := s.Snapshot()
	result := MergeResult{Added: []model.Entry{}, Rejected: []Rejection{}}

	for _, c := range candidates {
		against := base
		if opts.CrossCheck {
			against = append(base[:len(base):len(base)], result.Added...)
		}
		if name, ok := HasConflict(c, against); ok {
			result.Rejected = append(result.Rejected, Rejection{Entry: c, With: name})
			continue
		}
		result.Added = append(result.Added, c)
	}

	if !opts.DryRun {
		for _, e := range result.Added {
			s.Append(e)
		}
	}
	return result
}
