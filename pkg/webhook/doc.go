// Package webhook exposes the inbound HTTP endpoint for already-verified
// chat events. The handler decodes the JSON envelope the upstream relay
// produces (a batch of events carrying a user id and either text or base64
// image bytes) and hands each event to the dispatcher. Signature
// verification happens upstream; this handler trusts what it is given.
package webhook
