package conversation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/oekaki/charabot/pkg/charstats"
	"github.com/oekaki/charabot/pkg/gateway"
	"github.com/oekaki/charabot/pkg/logger"
	"github.com/oekaki/charabot/pkg/messenger"
	"github.com/oekaki/charabot/pkg/session"
)

var (
	yesTokens = map[string]bool{"はい": true, "yes": true}
	noTokens  = map[string]bool{"いいえ": true, "no": true}
)

// statStep wires a collection state to its field, its attribute slot and the
// state that follows. The order is fixed; luck is last and triggers the
// budget check before moving on to the description.
type statStep struct {
	field  charstats.Field
	assign func(*session.Attributes, int)
	next   session.State
}

var statSteps = map[session.State]statStep{
	session.StateWaitingForHP: {
		field:  charstats.FieldHP,
		assign: func(a *session.Attributes, v int) { a.HP = v },
		next:   session.StateWaitingForAttack,
	},
	session.StateWaitingForAttack: {
		field:  charstats.FieldAttack,
		assign: func(a *session.Attributes, v int) { a.Attack = v },
		next:   session.StateWaitingForDefense,
	},
	session.StateWaitingForDefense: {
		field:  charstats.FieldDefense,
		assign: func(a *session.Attributes, v int) { a.Defense = v },
		next:   session.StateWaitingForSpeed,
	},
	session.StateWaitingForSpeed: {
		field:  charstats.FieldSpeed,
		assign: func(a *session.Attributes, v int) { a.Speed = v },
		next:   session.StateWaitingForMagic,
	},
	session.StateWaitingForMagic: {
		field:  charstats.FieldMagic,
		assign: func(a *session.Attributes, v int) { a.Magic = v },
		next:   session.StateWaitingForLuck,
	},
	session.StateWaitingForLuck: {
		field:  charstats.FieldLuck,
		assign: func(a *session.Attributes, v int) { a.Luck = v },
		next:   session.StateWaitingForDescription,
	},
}

// nextPromptFor maps a stat state to the prompt sent after it is satisfied.
func nextPromptFor(next session.State) messenger.Message {
	if step, ok := statSteps[next]; ok {
		return messenger.Text(PromptFor(step.field))
	}
	return messenger.Text(MsgAskDescription)
}

// Engine drives the registration conversation. It owns the only call sites
// for the image ingestor and the registration gateway.
type Engine struct {
	sessions session.Store
	ingest   Ingestor
	gateway  gateway.Gateway
	log      *slog.Logger
}

// Option configures the engine.
type Option func(*Engine)

// WithLogger supplies a logger. Defaults to a discard logger.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.log = l
		}
	}
}

// NewEngine creates a conversation engine.
func NewEngine(sessions session.Store, ingest Ingestor, gw gateway.Gateway, opts ...Option) *Engine {
	e := &Engine{
		sessions: sessions,
		ingest:   ingest,
		gateway:  gw,
		log:      slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Advance feeds one inbound event through the state machine. It mutates the
// session, returns the outbound messages for the originating user, and emits
// at most one gateway call (on a terminal transition). A non-nil error means
// an unexpected internal failure; defined failure modes (validation, ingest,
// budget, commit rejection) are already converted to messages.
func (e *Engine) Advance(ctx context.Context, sess *session.Session, ev Event) ([]messenger.Message, error) {
	sess.Touch()

	switch sess.State {
	case session.StateAwaitingImage:
		return e.acceptImage(ctx, sess, ev)
	case session.StateAskingInputMode:
		return e.chooseMode(ctx, sess, ev)
	case session.StateWaitingForName:
		return e.collectName(sess, ev)
	case session.StateWaitingForHP,
		session.StateWaitingForAttack,
		session.StateWaitingForDefense,
		session.StateWaitingForSpeed,
		session.StateWaitingForMagic,
		session.StateWaitingForLuck:
		return e.collectStat(ctx, sess, ev)
	case session.StateWaitingForDescription:
		return e.collectDescription(ctx, sess, ev)
	default:
		// Undefined state. Do not touch the session; just point the user
		// at the entry of the flow.
		e.log.WarnContext(ctx, "event in undefined state",
			logger.UserID(sess.UserID), logger.State(string(sess.State)))
		return []messenger.Message{messenger.Text(MsgSendImage)}, nil
	}
}

func (e *Engine) acceptImage(ctx context.Context, sess *session.Session, ev Event) ([]messenger.Message, error) {
	if ev.Type != EventImage {
		return []messenger.Message{messenger.Text(MsgSendImage)}, nil
	}

	ref, err := e.ingest.Ingest(ctx, ev.Image, ev.MIMEType)
	if err != nil {
		e.log.ErrorContext(ctx, "image ingest failed", logger.UserID(sess.UserID), logger.Error(err))
		if clearErr := e.sessions.Clear(ctx, sess.UserID); clearErr != nil {
			return nil, fmt.Errorf("clearing session after ingest failure: %w", clearErr)
		}
		return []messenger.Message{messenger.Text(MsgIngestFailed)}, nil
	}

	sess.Image = ref
	sess.State = session.StateAskingInputMode
	return []messenger.Message{messenger.Text(MsgAskMode)}, nil
}

func (e *Engine) chooseMode(ctx context.Context, sess *session.Session, ev Event) ([]messenger.Message, error) {
	if ev.Type != EventText {
		return []messenger.Message{messenger.Text(MsgSendImage)}, nil
	}

	answer := strings.ToLower(strings.TrimSpace(ev.Text))
	switch {
	case yesTokens[answer]:
		sess.Mode = session.ModeManual
		sess.State = session.StateWaitingForName
		return []messenger.Message{messenger.Text(MsgAskName)}, nil
	case noTokens[answer]:
		sess.Mode = session.ModeAutomatic
		return e.commit(ctx, sess, gateway.Request{
			Mode:  gateway.ModeAutomatic,
			Image: gateway.Image{ExternalID: sess.Image.ExternalID, URL: sess.Image.URL},
		}, messenger.Text(MsgAutoRegistered))
	default:
		return []messenger.Message{messenger.Text(MsgAskModeRetry)}, nil
	}
}

func (e *Engine) collectName(sess *session.Session, ev Event) ([]messenger.Message, error) {
	if ev.Type != EventText {
		return []messenger.Message{messenger.Text(MsgSendImage)}, nil
	}

	name, err := charstats.ValidateName(ev.Text)
	if err != nil {
		var tooLong *charstats.NameTooLongError
		if errors.As(err, &tooLong) {
			return []messenger.Message{messenger.Text(MsgNameTooLong)}, nil
		}
		return []messenger.Message{messenger.Text(MsgNameEmpty)}, nil
	}

	sess.Attrs.Name = name
	sess.State = session.StateWaitingForHP
	return []messenger.Message{messenger.Text(PromptFor(charstats.FieldHP))}, nil
}

func (e *Engine) collectStat(ctx context.Context, sess *session.Session, ev Event) ([]messenger.Message, error) {
	if ev.Type != EventText {
		return []messenger.Message{messenger.Text(MsgSendImage)}, nil
	}

	step := statSteps[sess.State]

	value, err := charstats.ParseStat(step.field, ev.Text)
	switch {
	case charstats.IsNotANumber(err):
		return []messenger.Message{messenger.Text(MsgNotANumber(step.field))}, nil
	case charstats.IsOutOfRange(err):
		return []messenger.Message{messenger.Text(MsgOutOfRange(step.field))}, nil
	case err != nil:
		return nil, fmt.Errorf("parsing %s: %w", step.field, err)
	}

	step.assign(&sess.Attrs, value)

	// The budget is checked once, after the last numeric field.
	if step.field == charstats.FieldLuck {
		if err := charstats.CheckBudget(sess.Attrs.StatTotal()); err != nil {
			var exceeded *charstats.BudgetExceededError
			if !errors.As(err, &exceeded) {
				return nil, fmt.Errorf("checking budget: %w", err)
			}
			if clearErr := e.sessions.Clear(ctx, sess.UserID); clearErr != nil {
				return nil, fmt.Errorf("clearing session after budget failure: %w", clearErr)
			}
			return []messenger.Message{messenger.Text(MsgBudgetExceeded(exceeded.Total))}, nil
		}
	}

	sess.State = step.next
	return []messenger.Message{nextPromptFor(step.next)}, nil
}

func (e *Engine) collectDescription(ctx context.Context, sess *session.Session, ev Event) ([]messenger.Message, error) {
	if ev.Type != EventText {
		return []messenger.Message{messenger.Text(MsgSendImage)}, nil
	}

	// Accepted verbatim, no validation.
	sess.Attrs.Description = ev.Text

	attrs := sess.Attrs
	return e.commit(ctx, sess, gateway.Request{
		Mode:  gateway.ModeManual,
		Image: gateway.Image{ExternalID: sess.Image.ExternalID, URL: sess.Image.URL},
		Attributes: &gateway.Attributes{
			Name:        attrs.Name,
			HP:          attrs.HP,
			Attack:      attrs.Attack,
			Defense:     attrs.Defense,
			Speed:       attrs.Speed,
			Magic:       attrs.Magic,
			Luck:        attrs.Luck,
			Description: attrs.Description,
		},
	}, messenger.Text(MsgRegistered(attrs.Name)))
}

// commit performs a terminal transition: the session is cleared first, then
// the single gateway call happens. A rejected or undeliverable commit is
// reported to the user; there is no automatic retry.
func (e *Engine) commit(ctx context.Context, sess *session.Session, req gateway.Request, ok messenger.Message) ([]messenger.Message, error) {
	if err := e.sessions.Clear(ctx, sess.UserID); err != nil {
		return nil, fmt.Errorf("clearing session at terminal transition: %w", err)
	}

	if _, err := e.gateway.Commit(ctx, req); err != nil {
		e.log.ErrorContext(ctx, "registration commit failed",
			logger.UserID(sess.UserID), slog.String("mode", string(req.Mode)), logger.Error(err))
		return []messenger.Message{messenger.Text(MsgCommitFailed)}, nil
	}

	e.log.InfoContext(ctx, "character registered",
		logger.UserID(sess.UserID), slog.String("mode", string(req.Mode)))
	return []messenger.Message{ok}, nil
}
