package connectivity

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nabha-learn/nabha-shell/internal/logging"
)

func TestDispatcherForwardsInOrder(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	d := NewDispatcher(logging.Discard(), 4)
	got := make(chan Kind, 4)
	d.Subscribe(ListenerFunc(func(ev Event) { got <- ev.Kind }))
	go d.Run(ctx)

	require.NoError(t, d.Publish(ctx, NewEvent(false, "test")))
	require.NoError(t, d.Publish(ctx, NewEvent(true, "test")))

	for _, want := range []Kind{WentOffline, CameOnline} {
		select {
		case kind := <-got:
			assert.Equal(t, want, kind)
		case <-time.After(time.Second):
			t.Fatalf("timed out waiting for %s", want)
		}
	}
}

func TestDispatcherDrivesGate(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	state := NewState(true)
	gate := NewGate(state, nil)
	changed := make(chan StatusChange, 1)
	gate.Observe(StatusObserverFunc(func(c StatusChange) { changed <- c }))

	d := NewDispatcher(nil, 1)
	d.Subscribe(gate)
	go d.Run(ctx)

	require.NoError(t, d.Publish(ctx, NewEvent(false, "test")))
	select {
	case c := <-changed:
		assert.False(t, c.Online)
	case <-time.After(time.Second):
		t.Fatal("gate did not observe the offline signal")
	}
	assert.False(t, gate.IsOnline())
}

func TestPublishAfterStopFails(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	d := NewDispatcher(nil, 0)
	go d.Run(ctx)
	cancel()
	<-d.Done()

	err := d.Publish(context.Background(), NewEvent(true, "test"))
	assert.ErrorIs(t, err, ErrDispatcherStopped)
}

func TestProbe(t *testing.T) {
	origin := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	assert.True(t, Probe(context.Background(), origin.Client(), origin.URL))
	origin.Close()
	assert.False(t, Probe(context.Background(), http.DefaultClient, origin.URL))
}
