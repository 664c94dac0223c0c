// Package gateway commits completed character registrations to the external
// datastore. The Gateway interface is the conversation engine's only outbound
// write; Client implements it over HTTP, posting a JSON payload to the
// configured endpoint with a shared-secret header and a deterministic
// idempotency key so that duplicate webhook deliveries cannot double-register.
//
// The caller must not retry a failed commit: a failure is reported to the
// user and the only recovery path is restarting the flow.
package gateway
