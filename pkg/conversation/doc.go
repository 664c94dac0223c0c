// Package conversation implements the guided registration flow: a state
// machine that walks a user from an initial image upload through input-mode
// selection and per-field attribute collection to a terminal commit against
// the registration gateway.
//
// The engine is deterministic: given a session and an inbound event it
// mutates the session, returns the outbound messages, and performs external
// I/O only at two well-defined points — the image ingest when an image is
// accepted, and exactly one gateway commit at a terminal transition. Every
// failure path produces exactly one outbound message.
//
// State order:
//
//	awaiting_image
//	  → asking_input_mode          (image accepted)
//	  → waiting_for_name           ("はい": manual entry)
//	  → auto commit, terminal      ("いいえ": generated stats)
//	waiting_for_name → hp → attack → defense → speed → magic → luck
//	  → waiting_for_description → manual commit, terminal
//
// The aggregate stat budget is checked once, after luck; exceeding it resets
// the session and the only way forward is resending an image.
package conversation
