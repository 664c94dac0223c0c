// Package messenger delivers outbound chat messages to users. From the
// dispatcher's point of view delivery is fire-and-forget: a failed send is
// logged by the implementation and never fed back into session state.
//
// PushClient posts messages to the chat platform's push endpoint with a
// bearer token; LogMessenger writes them to the log and is meant for
// development.
package messenger
