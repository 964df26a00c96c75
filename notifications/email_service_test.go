package notifications

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestBrevoSend(t *testing.T) {
	var got brevoPayload
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "key", r.Header.Get("api-key"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	m := NewMailer("key", "noreply@study.io", "Study", zap.NewNop()).(*BrevoService)
	m.URL = srv.URL

	require.NoError(t, m.Send(context.Background(), "", "jane@x.io", "Hi", "<p>hi</p>"))
	assert.Equal(t, "Hi", got.Subject)
	assert.Equal(t, "jane", got.To[0]["name"])
	assert.Equal(t, "noreply@study.io", got.Sender["email"])
}

func TestBrevoRejects(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	m := NewMailer("key", "noreply@study.io", "Study", zap.NewNop()).(*BrevoService)
	m.URL = srv.URL

	assert.Error(t, m.Send(context.Background(), "Jane", "not-an-email", "Hi", ""))
	assert.Error(t, m.Send(context.Background(), "Jane", "jane@x.io", "Hi", ""))
}

func TestNewMailerWithoutKey(t *testing.T) {
	m := NewMailer("", "", "", zap.NewNop())
	assert.IsType(t, Nop{}, m)
	assert.NoError(t, m.Send(context.Background(), "", "a@x.io", "s", "b"))
}
