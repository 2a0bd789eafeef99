package worker

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSender struct {
	mu   sync.Mutex
	sent []EmailJobPayload
	err  error
}

func (f *fakeSender) Send(to, subject, body string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, EmailJobPayload{ToEmail: to, Subject: subject, Body: body})
	return nil
}

func TestEmailWorker_Process(t *testing.T) {
	s := &fakeSender{}
	w := NewEmailWorker(s)

	raw, _ := json.Marshal(EmailJobPayload{ToEmail: "ana@gucci.cl", Subject: "Hola", Body: "cuerpo"})
	require.NoError(t, w.Process(context.Background(), raw))
	require.Len(t, s.sent, 1)
	assert.Equal(t, "ana@gucci.cl", s.sent[0].ToEmail)

	// malformed and empty payloads are dropped, not retried
	assert.NoError(t, w.Process(context.Background(), json.RawMessage(`{bad`)))
	assert.NoError(t, w.Process(context.Background(), json.RawMessage(`{"to_email":""}`)))
	assert.Len(t, s.sent, 1)
}

func TestEmailWorker_SendErrorIsReturned(t *testing.T) {
	w := NewEmailWorker(&fakeSender{err: errors.New("smtp down")})
	raw, _ := json.Marshal(EmailJobPayload{ToEmail: "ana@gucci.cl"})
	assert.Error(t, w.Process(context.Background(), raw))
}

func TestDispatcher_InlineWithoutRedis(t *testing.T) {
	s := &fakeSender{}
	d := NewDispatcher(nil, map[string]Handler{JobEmail: NewEmailWorker(s)})

	require.NoError(t, d.EnqueueEmail(context.Background(), EmailJobPayload{ToEmail: "a@b.cl", Subject: "s"}))
	d.Wait()

	s.mu.Lock()
	defer s.mu.Unlock()
	require.Len(t, s.sent, 1)
	assert.Equal(t, "a@b.cl", s.sent[0].ToEmail)
}

func TestDispatcher_InlineUnknownType(t *testing.T) {
	d := NewDispatcher(nil, map[string]Handler{})
	assert.Error(t, d.EnqueueEmail(context.Background(), EmailJobPayload{ToEmail: "a@b.cl"}))
}
