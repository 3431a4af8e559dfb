package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/mcdev12/rosterdesk/go/internal/outbox"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startHub(t *testing.T) (*Hub, *httptest.Server) {
	t.Helper()
	hub := NewHub(DefaultConfig())
	ctx, cancel := context.WithCancel(context.Background())
	go hub.Run(ctx)

	mux := http.NewServeMux()
	NewHandler(hub).RegisterRoutes(mux)
	srv := httptest.NewServer(mux)
	t.Cleanup(func() {
		srv.Close()
		cancel()
	})
	return hub, srv
}

func dial(t *testing.T, srv *httptest.Server, query string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/roster?" + query
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	resp.Body.Close()
	t.Cleanup(func() { conn.Close() })
	return conn
}

func envelope(t *testing.T, teamID int64, typ outbox.EventType) []byte {
	t.Helper()
	data, err := json.Marshal(outbox.Envelope{
		EventID:   "e-1",
		EventType: typ,
		TeamID:    teamID,
		Timestamp: time.Date(2026, 3, 14, 15, 0, 0, 0, time.UTC),
		Payload:   json.RawMessage(`{"user_id":10}`),
	})
	require.NoError(t, err)
	return data
}

func TestDispatchReachesOnlyTheTeamsSockets(t *testing.T) {
	hub, srv := startHub(t)
	hornets := dial(t, srv, "team_id=1")
	comets := dial(t, srv, "team_id=2")

	require.Eventually(t, func() bool {
		return hub.Count(1) == 1 && hub.Count(2) == 1
	}, time.Second, 10*time.Millisecond)

	consumer := &Consumer{hub: hub}
	require.NoError(t, consumer.Dispatch(envelope(t, 1, outbox.EventPlayerAdded)))

	require.NoError(t, hornets.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, msg, err := hornets.ReadMessage()
	require.NoError(t, err)

	var got outbox.Envelope
	require.NoError(t, json.Unmarshal(msg, &got))
	assert.Equal(t, outbox.EventPlayerAdded, got.EventType)
	assert.Equal(t, int64(1), got.TeamID)
	assert.JSONEq(t, `{"user_id":10}`, string(got.Payload))

	require.NoError(t, comets.SetReadDeadline(time.Now().Add(100*time.Millisecond)))
	_, _, err = comets.ReadMessage()
	assert.Error(t, err)
}

func TestDispatchRejectsBadEnvelopes(t *testing.T) {
	consumer := &Consumer{hub: NewHub(DefaultConfig())}

	assert.Error(t, consumer.Dispatch([]byte("not json")))
	assert.ErrorIs(t, consumer.Dispatch([]byte(`{"eventType":"player_added"}`)), errNoTeam)
}

func TestHandleRosterRequiresTeamID(t *testing.T) {
	_, srv := startHub(t)

	for _, query := range []string{"", "team_id=abc", "team_id=-3"} {
		resp, err := http.Get(srv.URL + "/ws/roster?" + query)
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, query)
	}
}

func TestDisconnectUnregisters(t *testing.T) {
	hub, srv := startHub(t)
	conn := dial(t, srv, "team_id=4")
	require.Eventually(t, func() bool { return hub.Count(4) == 1 }, time.Second, 10*time.Millisecond)

	require.NoError(t, conn.Close())
	require.Eventually(t, func() bool { return hub.Count(4) == 0 }, 2*time.Second, 10*time.Millisecond)
}

func TestStats(t *testing.T) {
	hub, srv := startHub(t)
	dial(t, srv, "team_id=1")
	dial(t, srv, "team_id=1")
	require.Eventually(t, func() bool { return hub.Count(1) == 2 }, time.Second, 10*time.Millisecond)

	resp, err := http.Get(srv.URL + "/ws/stats")
	require.NoError(t, err)
	defer resp.Body.Close()

	var stats struct {
		Total  int            `json:"total_connections"`
		Active int            `json:"active_teams"`
		Teams  map[string]int `json:"team_connections"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&stats))
	assert.Equal(t, 2, stats.Total)
	assert.Equal(t, 1, stats.Active)
	assert.Equal(t, map[string]int{"1": 2}, stats.Teams)
}

func TestDeliverWhileClientsDisconnect(t *testing.T) {
	hub, srv := startHub(t)

	const clients = 20
	conns := make([]*websocket.Conn, clients)
	for i := range conns {
		conns[i] = dial(t, srv, "team_id=7")
	}
	require.Eventually(t, func() bool { return hub.Count(7) == clients }, 2*time.Second, 10*time.Millisecond)

	data := envelope(t, 7, outbox.EventPlayerRemoved)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 2000; i++ {
			hub.deliver(broadcast{teamID: 7, data: data})
		}
	}()

	for _, c := range conns {
		require.NoError(t, c.Close())
	}

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("deliver did not finish")
	}
	require.Eventually(t, func() bool { return hub.Count(7) == 0 }, 2*time.Second, 10*time.Millisecond)
}
