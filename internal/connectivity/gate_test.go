package connectivity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nabha-learn/nabha-shell/internal/logging"
)

type recorder struct {
	changes []StatusChange
}

func (r *recorder) StatusChanged(c StatusChange) {
	r.changes = append(r.changes, c)
}

func (r *recorder) warnings() int {
	n := 0
	for _, c := range r.changes {
		if c.Warning != nil {
			n++
		}
	}
	return n
}

func newTestGate(online bool) (*Gate, *recorder) {
	gate := NewGate(NewState(online), logging.Discard())
	rec := &recorder{}
	gate.Observe(rec)
	return gate, rec
}

func TestCanPlayTruthTable(t *testing.T) {
	cases := []struct {
		name       string
		online     bool
		downloaded bool
		want       bool
	}{
		{"online downloaded", true, true, true},
		{"online streaming", true, false, true},
		{"offline downloaded", false, true, true},
		{"offline not downloaded", false, false, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			gate, _ := newTestGate(tc.online)
			assert.Equal(t, tc.want, gate.CanPlay(Item{ID: "lesson", Downloaded: tc.downloaded}))
		})
	}
}

func TestOfflineThenOnlineTransitionSequence(t *testing.T) {
	gate, rec := newTestGate(true)
	require.True(t, gate.IsOnline())

	gate.HandleEvent(NewEvent(false, "test"))
	assert.False(t, gate.IsOnline())
	require.Len(t, rec.changes, 1)
	require.NotNil(t, rec.changes[0].Warning)
	assert.Equal(t, OfflineWarning, rec.changes[0].Warning.Message)
	assert.Equal(t, LevelWarning, rec.changes[0].Warning.Level)

	gate.HandleEvent(NewEvent(true, "test"))
	assert.True(t, gate.IsOnline())
	require.Len(t, rec.changes, 2)
	assert.Nil(t, rec.changes[1].Warning)
	assert.Equal(t, 1, rec.warnings())
}

func TestRepeatedSignalIsIgnored(t *testing.T) {
	gate, rec := newTestGate(true)
	gate.HandleEvent(NewEvent(false, "test"))
	gate.HandleEvent(NewEvent(false, "test"))
	gate.HandleEvent(NewEvent(true, "test"))
	gate.HandleEvent(NewEvent(true, "test"))

	assert.Len(t, rec.changes, 2)
	assert.Equal(t, 1, rec.warnings())
}

func TestDenialDoesNotNotify(t *testing.T) {
	gate, rec := newTestGate(false)
	assert.False(t, gate.CanPlay(Item{ID: "x"}))
	assert.Empty(t, rec.changes)
}

func TestIndicatorFollowsGate(t *testing.T) {
	state := NewState(true)
	gate := NewGate(state, nil)
	indicator := NewIndicator(state)
	gate.Observe(indicator)

	gate.HandleEvent(NewEvent(false, "test"))
	snap := indicator.Snapshot()
	assert.False(t, snap.Online)
	require.Len(t, snap.Notifications, 1)
	assert.Equal(t, OfflineWarning, snap.Notifications[0].Message)

	gate.HandleEvent(NewEvent(true, "test"))
	snap = indicator.Snapshot()
	assert.True(t, snap.Online)
	assert.Len(t, snap.Notifications, 1)
}

func TestIndicatorFeedIsBounded(t *testing.T) {
	indicator := NewIndicator(NewState(true))
	for i := 0; i < defaultFeedSize+5; i++ {
		indicator.Notify(LevelInfo, "tick")
	}
	assert.Len(t, indicator.Snapshot().Notifications, defaultFeedSize)
}

func TestParseKind(t *testing.T) {
	kind, err := ParseKind(" Offline ")
	require.NoError(t, err)
	assert.Equal(t, WentOffline, kind)

	_, err = ParseKind("flaky")
	assert.Error(t, err)
}
