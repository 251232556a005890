package domain

import "strings"

// normalization buckets, checked in priority order. Substring matching keeps
// the closed taxonomy stable across upstream vocabulary drift.
var statusBuckets = []struct {
	status ActionStatus
	hints  []string
}{
	{ActionConfirmed, []string{"confirm", "mined", "completed", "success"}},
	{ActionFailed, []string{"fail", "error", "revert", "cancel"}},
	{ActionSubmitted, []string{"submit", "sent", "broadcast"}},
	{ActionRequesting, []string{"request"}},
}

// NormalizeActionStatus maps an arbitrary upstream status string onto the
// canonical taxonomy. Unknown vocabulary lands in QUEUED.
func NormalizeActionStatus(raw string) ActionStatus {
	switch ActionStatus(raw) {
	case ActionRequesting, ActionQueued, ActionSubmitted, ActionConfirmed, ActionFailed:
		return ActionStatus(raw)
	}

	lowered := strings.ToLower(raw)
	for _, bucket := range statusBuckets {
		for _, hint := range bucket.hints {
			if strings.Contains(lowered, hint) {
				return bucket.status
			}
		}
	}

	return ActionQueued
}
