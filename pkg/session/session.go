package session

import "time"

// State identifies the active step of the registration conversation.
type State string

const (
	StateAwaitingImage         State = "awaiting_image"
	StateAskingInputMode       State = "asking_input_mode"
	StateWaitingForName        State = "waiting_for_name"
	StateWaitingForHP          State = "waiting_for_hp"
	StateWaitingForAttack      State = "waiting_for_attack"
	StateWaitingForDefense     State = "waiting_for_defense"
	StateWaitingForSpeed       State = "waiting_for_speed"
	StateWaitingForMagic       State = "waiting_for_magic"
	StateWaitingForLuck        State = "waiting_for_luck"
	StateWaitingForDescription State = "waiting_for_description"
)

// InputMode records how character attributes are produced.
type InputMode string

const (
	ModeUnset     InputMode = ""
	ModeManual    InputMode = "manual"
	ModeAutomatic InputMode = "automatic"
)

// ImageRef is the opaque handle to an accepted, already-uploaded image.
type ImageRef struct {
	ExternalID string
	URL        string
}

// IsZero reports whether no image has been accepted yet.
func (r ImageRef) IsZero() bool {
	return r.ExternalID == "" && r.URL == ""
}

// Attributes is the partial character record filled in field by field.
// Fields are only written in the order defined by the state sequence, so a
// field is meaningful exactly when the session has advanced past its step.
type Attributes struct {
	Name        string
	HP          int
	Attack      int
	Defense     int
	Speed       int
	Magic       int
	Luck        int
	Description string
}

// StatTotal returns the sum of the six numeric attributes.
func (a Attributes) StatTotal() int {
	return a.HP + a.Attack + a.Defense + a.Speed + a.Magic + a.Luck
}

// Session is the in-progress registration form for a single user.
type Session struct {
	UserID         string
	State          State
	Mode           InputMode
	Image          ImageRef
	Attrs          Attributes
	CreatedAt      time.Time
	LastActivityAt time.Time
}

// New creates a fresh session in the initial state.
func New(userID string) *Session {
	now := time.Now()
	return &Session{
		UserID:         userID,
		State:          StateAwaitingImage,
		CreatedAt:      now,
		LastActivityAt: now,
	}
}

// Touch records activity, deferring idle eviction.
func (s *Session) Touch() {
	s.LastActivityAt = time.Now()
}

// IdleSince reports whether the session has seen no activity for at least ttl.
func (s *Session) IdleSince(now time.Time, ttl time.Duration) bool {
	return ttl > 0 && now.Sub(s.LastActivityAt) >= ttl
}
