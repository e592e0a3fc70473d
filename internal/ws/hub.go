/**
* Name: 			hub.go
* Description: 		웹 UI용 이벤트 브로드캐스트 허브
* Workflow: 		클라이언트 등록/해제, 분석 라이프사이클 이벤트 전송
 */
package ws

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"SAFE_AISafetySuite/internal/models"

	"github.com/gorilla/websocket"
)

type Hub struct {
	clients    map[*Client]bool
	broadcast  chan []byte
	register   chan *Client
	unregister chan *Client
	mu         sync.RWMutex
}

type Client struct {
	hub      *Hub
	conn     *websocket.Conn
	send     chan []byte
	username string
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan []byte, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()
			log.Printf("Hub.Run(): client connected: %s", client.username)

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			h.mu.Unlock()
			log.Printf("Hub.Run(): client disconnected: %s", client.username)

		case message := <-h.broadcast:
			h.mu.RLock()
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					// 송신 버퍼가 가득 찬 클라이언트는 건너뜀
					log.Printf("Hub.Run(): send buffer full, dropping message for %s", client.username)
				}
			}
			h.mu.RUnlock()
		}
	}
}

// 이벤트를 모든 연결된 클라이언트로 전송
func (h *Hub) Broadcast(event models.Event) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	jsonData, err := json.Marshal(event)
	if err != nil {
		log.Printf("Hub.Broadcast(): failed to marshal event: %v", err)
		return
	}

	select {
	case h.broadcast <- jsonData:
	default:
		log.Println("Hub.Broadcast(): broadcast channel full, skipping message")
	}
}

// 연결된 클라이언트 수 (테스트용)
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// 업그레이드된 연결을 허브에 붙임
func (h *Hub) Attach(conn *websocket.Conn, username string) {
	client := &Client{
		hub:      h,
		conn:     conn,
		send:     make(chan []byte, 256),
		username: username,
	}

	h.register <- client

	go client.writePump()
	go client.readPump()
}

func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	for {
		_, _, err := c.conn.ReadMessage()
		if err != nil {
			break
		}
	}
}

func (c *Client) writePump() {
	defer c.conn.Close()

	for message := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
			return
		}
	}
	c.conn.WriteMessage(websocket.CloseMessage, []byte{})
}
