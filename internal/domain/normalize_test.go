package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeActionStatus(t *testing.T) {
	cases := []struct {
		raw  string
		want ActionStatus
	}{
		{"CONFIRMED", ActionConfirmed},
		{"QUEUED", ActionQueued},
		{"MINED", ActionConfirmed},
		{"tx_mined_ok", ActionConfirmed},
		{"Completed", ActionConfirmed},
		{"success", ActionConfirmed},
		{"tx_reverted", ActionFailed},
		{"FAILED", ActionFailed},
		{"internal error", ActionFailed},
		{"user_cancelled", ActionFailed},
		{"broadcasted", ActionSubmitted},
		{"sent_to_pool", ActionSubmitted},
		{"submitting", ActionSubmitted},
		{"requesting_signature", ActionRequesting},
		{"unknown_garbage", ActionQueued},
		{"", ActionQueued},
	}

	for _, tc := range cases {
		t.Run(tc.raw, func(t *testing.T) {
			assert.Equal(t, tc.want, NormalizeActionStatus(tc.raw))
		})
	}
}

func TestNormalizeActionStatusPriority(t *testing.T) {
	// A string matching two buckets resolves by priority: confirmation hints
	// beat failure hints.
	assert.Equal(t, ActionConfirmed, NormalizeActionStatus("confirm_after_error"))
}

func TestActionStatusTerminal(t *testing.T) {
	assert.True(t, ActionConfirmed.Terminal())
	assert.True(t, ActionFailed.Terminal())
	assert.False(t, ActionQueued.Terminal())
	assert.False(t, ActionSubmitted.Terminal())
	assert.False(t, ActionRequesting.Terminal())
}
