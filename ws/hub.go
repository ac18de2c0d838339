package ws

import (
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/podhost/podhost-backend/models"
)

type Client struct {
	Conn *websocket.Conn
	Send chan []byte
}

// Hub tracks websocket clients per episode room. Clients in a room receive
// comment events for that episode.
type Hub struct {
	Rooms map[string]map[*websocket.Conn]*Client
	Mutex sync.RWMutex
}

var H = Hub{
	Rooms: make(map[string]map[*websocket.Conn]*Client),
}

// Register adds a connection to an episode room and starts its pumps.
func (h *Hub) Register(episodeID string, conn *websocket.Conn) {
	h.Mutex.Lock()
	defer h.Mutex.Unlock()

	if _, ok := h.Rooms[episodeID]; !ok {
		h.Rooms[episodeID] = make(map[*websocket.Conn]*Client)
	}
	client := &Client{
		Conn: conn,
		Send: make(chan []byte, 256),
	}
	h.Rooms[episodeID][conn] = client

	go h.readPump(episodeID, conn)
	go h.writePump(client)
}

// Unregister removes a connection from its room.
func (h *Hub) Unregister(episodeID string, conn *websocket.Conn) {
	h.Mutex.Lock()
	defer h.Mutex.Unlock()

	if clients, ok := h.Rooms[episodeID]; ok {
		if client, ok := clients[conn]; ok {
			close(client.Send)
			delete(clients, conn)
		}
		if len(clients) == 0 {
			delete(h.Rooms, episodeID)
		}
	}
}

// Broadcast sends data to every client in an episode room. Slow clients are
// skipped rather than blocking the sender.
func (h *Hub) Broadcast(episodeID string, data []byte) {
	h.Mutex.RLock()
	defer h.Mutex.RUnlock()

	for _, client := range h.Rooms[episodeID] {
		select {
		case client.Send <- data:
		default:
		}
	}
}

// GetStats reports room and client counts for the health endpoint.
func (h *Hub) GetStats() map[string]int {
	h.Mutex.RLock()
	defer h.Mutex.RUnlock()

	clients := 0
	for _, room := range h.Rooms {
		clients += len(room)
	}
	return map[string]int{
		"rooms":   len(h.Rooms),
		"clients": clients,
	}
}

// BroadcastNewComment pushes a freshly posted comment to everyone watching
// the episode.
func BroadcastNewComment(comment models.Comment) {
	payload := map[string]interface{}{
		"type":       "new_comment",
		"episode_id": comment.EpisodeID,
		"comment":    comment,
	}
	data, err := json.Marshal(payload)
	if err != nil {
		slog.Warn("encode comment broadcast", "error", err)
		return
	}
	H.Broadcast(comment.EpisodeID, data)
}

func (h *Hub) readPump(episodeID string, conn *websocket.Conn) {
	defer h.Unregister(episodeID, conn)
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
}

func (h *Hub) writePump(client *Client) {
	defer func() {
		client.Conn.WriteMessage(websocket.CloseMessage, []byte{})
		client.Conn.Close()
	}()
	for msg := range client.Send {
		if err := client.Conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			break
		}
	}
}
