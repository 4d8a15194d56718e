package recomputequeue

import (
	"github.com/riverqueue/river"
	"github.com/riverqueue/river/rivertype"

	sharedtypes "github.com/Fifty-Move-Club/podium/app/shared/types"
)

// QueueRecompute is the dedicated River queue for recompute jobs.
const QueueRecompute = "recompute"

// Reasons recorded on scheduled recompute jobs.
const (
	ReasonRosterUpdated = "roster_updated"
	ReasonRulesUpdated  = "rules_updated"
)

// RecomputeArgs asks the worker to rebuild both allocation reports for one
// tournament and warm the result caches. Only the tournament participates in
// uniqueness, so a burst of roster and rule edits inside the debounce window
// collapses into a single scheduled job.
type RecomputeArgs struct {
	TournamentID sharedtypes.TournamentID `json:"tournament_id" river:"unique"`
	Reason       string                   `json:"reason"`
}

// Kind returns the job type identifier for River.
func (RecomputeArgs) Kind() string { return "prize_recompute" }

// InsertOpts routes recompute jobs to their queue and keeps them unique per
// tournament across non-terminal states. Completed jobs fall out of the
// uniqueness set, so the next edit after a run schedules a fresh job.
func (RecomputeArgs) InsertOpts() river.InsertOpts {
	return river.InsertOpts{
		Queue: QueueRecompute,
		UniqueOpts: river.UniqueOpts{
			ByArgs: true,
			ByState: []rivertype.JobState{
				rivertype.JobStateAvailable,
				rivertype.JobStatePending,
				rivertype.JobStateRetryable,
				rivertype.JobStateRunning,
				rivertype.JobStateScheduled,
			},
		},
	}
}
