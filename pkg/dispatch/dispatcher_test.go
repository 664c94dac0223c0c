package dispatch_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oekaki/charabot/pkg/conversation"
	"github.com/oekaki/charabot/pkg/dispatch"
	"github.com/oekaki/charabot/pkg/messenger"
	"github.com/oekaki/charabot/pkg/session"
)

type recordingMessenger struct {
	mu    sync.Mutex
	sends map[string][][]messenger.Message
}

func newRecordingMessenger() *recordingMessenger {
	return &recordingMessenger{sends: make(map[string][][]messenger.Message)}
}

func (r *recordingMessenger) Send(ctx context.Context, userID string, msgs []messenger.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sends[userID] = append(r.sends[userID], msgs)
	return nil
}

func (r *recordingMessenger) batches(userID string) [][]messenger.Message {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sends[userID]
}

type scriptedEngine struct {
	mu      sync.Mutex
	calls   int
	replies []messenger.Message
	err     error
	panics  bool
}

func (s *scriptedEngine) Advance(ctx context.Context, sess *session.Session, ev conversation.Event) ([]messenger.Message, error) {
	s.mu.Lock()
	s.calls++
	s.mu.Unlock()
	if s.panics {
		panic("engine exploded")
	}
	return s.replies, s.err
}

func newStore(t *testing.T) *session.MemoryStore {
	t.Helper()
	store := session.NewMemoryStore(session.Config{})
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func textEvent(s string) conversation.Event {
	return conversation.Event{Type: conversation.EventText, Text: s}
}

func TestDispatcher_DeliversReplies(t *testing.T) {
	out := newRecordingMessenger()
	engine := &scriptedEngine{replies: []messenger.Message{messenger.Text("ok")}}
	d := dispatch.New(newStore(t), engine, out)

	d.Dispatch(context.Background(), "U1", textEvent("hello"))

	batches := out.batches("U1")
	require.Len(t, batches, 1)
	assert.Equal(t, "ok", batches[0][0].Text)
}

func TestDispatcher_PanicBecomesFallback(t *testing.T) {
	out := newRecordingMessenger()
	engine := &scriptedEngine{panics: true}
	d := dispatch.New(newStore(t), engine, out)

	d.Dispatch(context.Background(), "U1", textEvent("boom"))

	batches := out.batches("U1")
	require.Len(t, batches, 1)
	assert.Equal(t, dispatch.MsgInternalError, batches[0][0].Text)
}

func TestDispatcher_EngineErrorBecomesFallback(t *testing.T) {
	out := newRecordingMessenger()
	engine := &scriptedEngine{err: errors.New("store corrupted")}
	d := dispatch.New(newStore(t), engine, out)

	d.Dispatch(context.Background(), "U1", textEvent("x"))

	batches := out.batches("U1")
	require.Len(t, batches, 1)
	assert.Equal(t, dispatch.MsgInternalError, batches[0][0].Text)
}

func TestDispatcher_OneUsersFailureDoesNotAffectOthers(t *testing.T) {
	out := newRecordingMessenger()
	engine := &scriptedEngine{panics: true}
	d := dispatch.New(newStore(t), engine, out)

	d.Dispatch(context.Background(), "U1", textEvent("boom"))

	engine.panics = false
	engine.replies = []messenger.Message{messenger.Text("fine")}
	d.Dispatch(context.Background(), "U2", textEvent("hello"))

	require.Len(t, out.batches("U2"), 1)
	assert.Equal(t, "fine", out.batches("U2")[0][0].Text)
}

func TestDispatcher_DropsEmptyUserID(t *testing.T) {
	out := newRecordingMessenger()
	engine := &scriptedEngine{replies: []messenger.Message{messenger.Text("ok")}}
	d := dispatch.New(newStore(t), engine, out)

	d.Dispatch(context.Background(), "", textEvent("x"))

	assert.Zero(t, engine.calls)
	assert.Empty(t, out.batches(""))
}

func TestDispatcher_ConcurrentUsers(t *testing.T) {
	out := newRecordingMessenger()
	engine := &scriptedEngine{replies: []messenger.Message{messenger.Text("ok")}}
	d := dispatch.New(newStore(t), engine, out)

	var wg sync.WaitGroup
	users := []string{"U1", "U2", "U3", "U4"}
	for _, u := range users {
		for i := 0; i < 5; i++ {
			wg.Add(1)
			go func(userID string) {
				defer wg.Done()
				d.Dispatch(context.Background(), userID, textEvent("x"))
			}(u)
		}
	}
	wg.Wait()

	for _, u := range users {
		assert.Len(t, out.batches(u), 5)
	}
}

func TestDispatcher_Metrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := dispatch.NewMetrics(reg)

	out := newRecordingMessenger()
	engine := &scriptedEngine{replies: []messenger.Message{messenger.Text("a"), messenger.Text("b")}}
	d := dispatch.New(newStore(t), engine, out, dispatch.WithMetrics(metrics))

	d.Dispatch(context.Background(), "U1", textEvent("x"))

	families, err := reg.Gather()
	require.NoError(t, err)

	got := make(map[string]float64)
	for _, fam := range families {
		for _, m := range fam.GetMetric() {
			got[fam.GetName()] += m.GetCounter().GetValue()
		}
	}
	assert.Equal(t, 1.0, got["charabot_events_total"])
	assert.Equal(t, 2.0, got["charabot_outbound_messages_total"])
	assert.Zero(t, got["charabot_dispatch_failures_total"])
}
