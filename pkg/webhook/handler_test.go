package webhook_test

import (
	"context"
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oekaki/charabot/pkg/conversation"
	"github.com/oekaki/charabot/pkg/webhook"
)

type capturedEvent struct {
	userID string
	event  conversation.Event
}

type fakeDispatcher struct {
	events []capturedEvent
}

func (f *fakeDispatcher) Dispatch(ctx context.Context, userID string, ev conversation.Event) {
	f.events = append(f.events, capturedEvent{userID: userID, event: ev})
}

func post(t *testing.T, h http.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	h.ServeHTTP(rec, req)
	return rec
}

func TestHandler_TextEvent(t *testing.T) {
	d := &fakeDispatcher{}
	rec := post(t, webhook.NewHandler(d).Handle(), `{"events":[{"userId":"U1","type":"text","text":"はい"}]}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())

	require.Len(t, d.events, 1)
	assert.Equal(t, "U1", d.events[0].userID)
	assert.Equal(t, conversation.EventText, d.events[0].event.Type)
	assert.Equal(t, "はい", d.events[0].event.Text)
}

func TestHandler_ImageEvent(t *testing.T) {
	d := &fakeDispatcher{}
	encoded := base64.StdEncoding.EncodeToString([]byte{0xff, 0xd8, 0xff})

	rec := post(t, webhook.NewHandler(d).Handle(),
		`{"events":[{"userId":"U1","type":"image","image":"`+encoded+`","mimeType":"image/jpeg"}]}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, d.events, 1)
	assert.Equal(t, conversation.EventImage, d.events[0].event.Type)
	assert.Equal(t, []byte{0xff, 0xd8, 0xff}, d.events[0].event.Image)
	assert.Equal(t, "image/jpeg", d.events[0].event.MIMEType)
}

func TestHandler_ImageEventDefaultsMIMEType(t *testing.T) {
	d := &fakeDispatcher{}
	encoded := base64.StdEncoding.EncodeToString([]byte{1})

	post(t, webhook.NewHandler(d).Handle(),
		`{"events":[{"userId":"U1","type":"image","image":"`+encoded+`"}]}`)

	require.Len(t, d.events, 1)
	assert.Equal(t, "image/jpeg", d.events[0].event.MIMEType)
}

func TestHandler_BatchPreservesOrder(t *testing.T) {
	d := &fakeDispatcher{}
	post(t, webhook.NewHandler(d).Handle(), `{"events":[
		{"userId":"U1","type":"text","text":"50"},
		{"userId":"U2","type":"text","text":"hello"},
		{"userId":"U1","type":"text","text":"40"}
	]}`)

	require.Len(t, d.events, 3)
	assert.Equal(t, "50", d.events[0].event.Text)
	assert.Equal(t, "U2", d.events[1].userID)
	assert.Equal(t, "40", d.events[2].event.Text)
}

func TestHandler_SkipsInvalidEvents(t *testing.T) {
	d := &fakeDispatcher{}
	rec := post(t, webhook.NewHandler(d).Handle(), `{"events":[
		{"type":"text","text":"no user"},
		{"userId":"U1","type":"video"},
		{"userId":"U2","type":"image","image":"%%%not-base64%%%"},
		{"userId":"U3","type":"text","text":"kept"}
	]}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, d.events, 1)
	assert.Equal(t, "U3", d.events[0].userID)
}

func TestHandler_MalformedBody(t *testing.T) {
	d := &fakeDispatcher{}
	rec := post(t, webhook.NewHandler(d).Handle(), `{"events":`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, d.events)
}

func TestHandler_EmptyBatch(t *testing.T) {
	d := &fakeDispatcher{}
	rec := post(t, webhook.NewHandler(d).Handle(), `{"events":[]}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, d.events)
}
