package services

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/guilhermetechmakers/autopilot-studio/internal/models"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testAlert(channels ...string) models.Alert {
	return models.Alert{
		ID:                   "a1",
		UserID:               7,
		AlertName:            "High Error Rate",
		Description:          "Error rate above 5%",
		Severity:             "critical",
		Status:               "active",
		ThresholdValue:       5,
		CurrentValue:         7.2,
		TriggeredAt:          time.Now().UTC(),
		NotificationChannels: pq.StringArray(channels),
	}
}

func TestDispatch_Discord(t *testing.T) {
	var payload DiscordWebhookRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
	}))
	defer server.Close()

	notifier := NewNotifier(zap.NewNop())
	notifier.dispatch(testAlert("discord:"+server.URL), true)

	assert.Equal(t, Username, payload.Username)
	require.Len(t, payload.Embeds, 1)
	assert.Equal(t, ColorRed, payload.Embeds[0].Color)
}

func TestDispatch_Slack(t *testing.T) {
	var payload SlackWebhookRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
	}))
	defer server.Close()

	notifier := NewNotifier(zap.NewNop())
	notifier.dispatch(testAlert("slack:"+server.URL), false)

	assert.Equal(t, Username, payload.Username)
	require.Len(t, payload.Attachments, 1)
	assert.Equal(t, "good", payload.Attachments[0].Color)
}

func TestDispatch_SkipsUnknownChannels(t *testing.T) {
	var calls int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
	}))
	defer server.Close()

	notifier := NewNotifier(zap.NewNop())
	notifier.dispatch(testAlert("email:"+server.URL, "sms:"+server.URL), true)

	assert.Zero(t, atomic.LoadInt32(&calls))
}

func TestNotifyAlertTriggered_DoesNotBlockCaller(t *testing.T) {
	delivered := make(chan struct{})

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
		close(delivered)
	}))
	defer server.Close()

	notifier := NewNotifier(zap.NewNop())

	start := time.Now()
	notifier.NotifyAlertTriggered(testAlert("discord:" + server.URL))
	elapsed := time.Since(start)

	assert.Less(t, elapsed, 100*time.Millisecond, "notification must not run on the caller's goroutine")

	select {
	case <-delivered:
	case <-time.After(3 * time.Second):
		t.Fatal("webhook was never delivered")
	}
}
