package live

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleWSRequiresSessionParam(t *testing.T) {
	hub := NewHub()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ws", nil)
	hub.HandleWS(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestBroadcastReachesJoinedMonitor(t *testing.T) {
	hub := NewHub()
	srv := httptest.NewServer(http.HandlerFunc(hub.HandleWS))
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws?session=booth-1"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()

	// 등록은 handshake 직후 서버 goroutine에서 일어난다
	require.Eventually(t, func() bool {
		hub.mutex.RLock()
		defer hub.mutex.RUnlock()
		s, ok := hub.sessions["booth-1"]
		if !ok {
			return false
		}
		s.mutex.RLock()
		defer s.mutex.RUnlock()
		return len(s.clients) == 1
	}, time.Second, 10*time.Millisecond)

	hub.Broadcast("booth-1", map[string]string{"type": "generation_update", "stage": "selected"})

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, message, err := conn.ReadMessage()
	require.NoError(t, err)

	var event map[string]string
	require.NoError(t, json.Unmarshal(message, &event))
	assert.Equal(t, "generation_update", event["type"])
	assert.Equal(t, "selected", event["stage"])
}

func TestBroadcastToUnknownBoothIsNoop(t *testing.T) {
	hub := NewHub()

	// 세션이 없어도 panic 없이 조용히 넘어가야 한다
	hub.Broadcast("nobody-home", map[string]string{"stage": "completed"})
}
