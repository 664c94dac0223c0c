// Package dispatch connects decoded inbound events to the conversation
// engine. The dispatcher looks up (or creates) the originating user's
// session, serializes events per user key so a session is never advanced
// concurrently, feeds the event through the engine and delivers the
// resulting messages.
//
// Failures are contained here: a panic or unexpected error while handling
// one user's event is converted into a single generic failure message for
// that user and never disturbs processing for other users.
package dispatch
