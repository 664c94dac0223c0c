package dispatch

import (
	"context"
	"log/slog"
	"sync"

	"github.com/oekaki/charabot/pkg/conversation"
	"github.com/oekaki/charabot/pkg/logger"
	"github.com/oekaki/charabot/pkg/messenger"
	"github.com/oekaki/charabot/pkg/session"
)

// MsgInternalError is the generic fallback sent when handling an event
// fails in a way the conversation engine has no message for.
const MsgInternalError = "エラーが発生しました。しばらくしてからもう一度お試しください。"

// Advancer is the conversation engine surface the dispatcher needs.
type Advancer interface {
	Advance(ctx context.Context, sess *session.Session, ev conversation.Event) ([]messenger.Message, error)
}

// Dispatcher routes inbound events through the engine, one at a time per
// user. Events for distinct users run concurrently.
type Dispatcher struct {
	sessions session.Store
	engine   Advancer
	out      messenger.Messenger
	log      *slog.Logger
	metrics  *Metrics
	locks    sync.Map // userID -> *sync.Mutex
}

// Option configures the dispatcher.
type Option func(*Dispatcher)

// WithLogger supplies a logger. Defaults to a discard logger.
func WithLogger(l *slog.Logger) Option {
	return func(d *Dispatcher) {
		if l != nil {
			d.log = l
		}
	}
}

// WithMetrics attaches prometheus counters.
func WithMetrics(m *Metrics) Option {
	return func(d *Dispatcher) {
		d.metrics = m
	}
}

// New creates a dispatcher.
func New(sessions session.Store, engine Advancer, out messenger.Messenger, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		sessions: sessions,
		engine:   engine,
		out:      out,
		log:      slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Dispatch handles one inbound event to completion: session lookup, engine
// advance, message delivery. The per-user lock is held for the whole pass,
// so duplicate deliveries for the same user are serialized rather than
// racing on the session.
func (d *Dispatcher) Dispatch(ctx context.Context, userID string, ev conversation.Event) {
	if userID == "" {
		d.log.WarnContext(ctx, "dropping event without user id")
		return
	}

	d.metrics.countEvent(string(ev.Type))

	mu := d.userLock(userID)
	mu.Lock()
	defer mu.Unlock()

	msgs := d.advance(ctx, userID, ev)
	if len(msgs) == 0 {
		return
	}

	d.metrics.countOutbound(len(msgs))

	// Delivery is fire-and-forget: a failed send is logged, never fed back
	// into session state.
	if err := d.out.Send(ctx, userID, msgs); err != nil {
		d.log.ErrorContext(ctx, "failed to deliver messages", logger.UserID(userID), logger.Error(err))
	}
}

// advance runs the engine with panic containment. Any unexpected failure
// becomes the generic fallback message for the originating user.
func (d *Dispatcher) advance(ctx context.Context, userID string, ev conversation.Event) (msgs []messenger.Message) {
	defer func() {
		if r := recover(); r != nil {
			d.metrics.countFailure()
			d.log.ErrorContext(ctx, "panic while handling event",
				logger.UserID(userID), slog.Any("panic", r))
			msgs = []messenger.Message{messenger.Text(MsgInternalError)}
		}
	}()

	sess, err := d.sessions.Get(ctx, userID)
	if err != nil {
		d.metrics.countFailure()
		d.log.ErrorContext(ctx, "session lookup failed", logger.UserID(userID), logger.Error(err))
		return []messenger.Message{messenger.Text(MsgInternalError)}
	}

	msgs, err = d.engine.Advance(ctx, sess, ev)
	if err != nil {
		d.metrics.countFailure()
		d.log.ErrorContext(ctx, "advancing conversation failed",
			logger.UserID(userID), logger.State(string(sess.State)), logger.Error(err))
		return []messenger.Message{messenger.Text(MsgInternalError)}
	}
	return msgs
}

func (d *Dispatcher) userLock(userID string) *sync.Mutex {
	locked, _ := d.locks.LoadOrStore(userID, &sync.Mutex{})
	return locked.(*sync.Mutex)
}
