package live

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// WebSocket upgrader
var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		// booth 모니터는 별도 origin에서 붙는다
		return true
	},
}

// Client - 연결된 booth 모니터
type client struct {
	conn    *websocket.Conn
	boothID string
	send    chan []byte
}

// session - booth 하나에 붙은 모니터들
type session struct {
	id           string
	clients      map[*client]bool
	mutex        sync.RWMutex
	lastActivity time.Time
}

// Hub - booth 세션 관리 + 생성 진행 상황 fan-out
// 상태는 프로세스 수명 동안만 유지된다
type Hub struct {
	sessions map[string]*session
	mutex    sync.RWMutex
}

func NewHub() *Hub {
	hub := &Hub{
		sessions: make(map[string]*session),
	}
	go hub.cleanupLoop()
	return hub
}

// HandleWS - GET /ws?session=<boothId>
func (h *Hub) HandleWS(w http.ResponseWriter, r *http.Request) {
	boothID := r.URL.Query().Get("session")
	if boothID == "" {
		http.Error(w, "Missing session parameter", http.StatusBadRequest)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("❌ [Live] WebSocket upgrade failed: %v", err)
		return
	}

	c := &client{
		conn:    conn,
		boothID: boothID,
		send:    make(chan []byte, 64),
	}

	s := h.getOrCreateSession(boothID)
	s.addClient(c)
	log.Printf("👤 [Live] Monitor joined booth %s", boothID)

	go c.writePump()
	go c.readPump(s)
}

// Broadcast - booth 세션의 모든 모니터에게 이벤트 전송
func (h *Hub) Broadcast(boothID string, event interface{}) {
	h.mutex.RLock()
	s, exists := h.sessions[boothID]
	h.mutex.RUnlock()
	if !exists {
		return
	}

	messageBytes, err := json.Marshal(event)
	if err != nil {
		log.Printf("❌ [Live] Failed to marshal event: %v", err)
		return
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.lastActivity = time.Now()

	for c := range s.clients {
		select {
		case c.send <- messageBytes:
		default:
			close(c.send)
			delete(s.clients, c)
		}
	}
}

func (h *Hub) getOrCreateSession(boothID string) *session {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	s, exists := h.sessions[boothID]
	if !exists {
		s = &session{
			id:           boothID,
			clients:      make(map[*client]bool),
			lastActivity: time.Now(),
		}
		h.sessions[boothID] = s
		log.Printf("✅ [Live] Created booth session: %s", boothID)
	}
	return s
}

// cleanupLoop - 빈/오래된 세션 정리 (5분 주기)
func (h *Hub) cleanupLoop() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		h.mutex.Lock()
		for id, s := range h.sessions {
			s.mutex.RLock()
			isEmpty := len(s.clients) == 0
			isStale := time.Since(s.lastActivity) > 2*time.Hour
			s.mutex.RUnlock()

			if isEmpty || isStale {
				delete(h.sessions, id)
				log.Printf("🧹 [Live] Cleaned up booth session: %s", id)
			}
		}
		h.mutex.Unlock()
	}
}

func (s *session) addClient(c *client) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.clients[c] = true
	s.lastActivity = time.Now()
}

func (s *session) removeClient(c *client) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if _, exists := s.clients[c]; exists {
		close(c.send)
		delete(s.clients, c)
		log.Printf("👋 [Live] Monitor left booth %s (remaining: %d)", s.id, len(s.clients))
	}
}

// readPump - 모니터는 구독만 하므로 읽기는 연결 유지 용도
func (c *client) readPump(s *session) {
	defer func() {
		s.removeClient(c)
		c.conn.Close()
	}()

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("❌ [Live] WebSocket error: %v", err)
			}
			break
		}
	}
}

func (c *client) writePump() {
	defer c.conn.Close()

	for message := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
			log.Printf("❌ [Live] WebSocket write error: %v", err)
			return
		}
	}
	c.conn.WriteMessage(websocket.CloseMessage, []byte{})
}
