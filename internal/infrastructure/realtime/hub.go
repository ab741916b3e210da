// Package realtime distribui eventos de páginas de votação para clientes
// conectados via WebSocket.
package realtime

import (
	"errors"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/rafabene/votex-backend/internal/domain/ports"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

// ErrHubClosed é retornado ao assinar um hub já encerrado
var ErrHubClosed = errors.New("realtime hub closed")

// Subscriber recebe os eventos de uma página
type Subscriber struct {
	votePageID string
	send       chan ports.Event
}

// Events retorna o canal de eventos. É fechado quando a assinatura termina.
func (s *Subscriber) Events() <-chan ports.Event {
	return s.send
}

// Hub implementa ports.EventPublisher fazendo fan-out por página.
// Assinantes lentos (buffer cheio) são desconectados.
type Hub struct {
	mu          sync.Mutex
	subscribers map[string]map[*Subscriber]struct{}
	bufferSize  int
	closed      bool
	logger      ports.Logger
}

// NewHub cria um novo Hub
func NewHub(bufferSize int, logger ports.Logger) *Hub {
	if bufferSize < 1 {
		bufferSize = 16
	}
	return &Hub{
		subscribers: make(map[string]map[*Subscriber]struct{}),
		bufferSize:  bufferSize,
		logger:      logger,
	}
}

// Subscribe registra um assinante para a página
func (h *Hub) Subscribe(votePageID string) (*Subscriber, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return nil, ErrHubClosed
	}

	sub := &Subscriber{
		votePageID: votePageID,
		send:       make(chan ports.Event, h.bufferSize),
	}
	if h.subscribers[votePageID] == nil {
		h.subscribers[votePageID] = make(map[*Subscriber]struct{})
	}
	h.subscribers[votePageID][sub] = struct{}{}

	return sub, nil
}

// Unsubscribe remove o assinante e fecha seu canal. Pode ser chamado mais de uma vez.
func (h *Hub) Unsubscribe(sub *Subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.remove(sub)
}

// remove exige h.mu
func (h *Hub) remove(sub *Subscriber) {
	subs, ok := h.subscribers[sub.votePageID]
	if !ok {
		return
	}
	if _, ok := subs[sub]; !ok {
		return
	}

	delete(subs, sub)
	close(sub.send)
	if len(subs) == 0 {
		delete(h.subscribers, sub.votePageID)
	}
}

// Publish entrega o evento sem bloquear
func (h *Hub) Publish(event ports.Event) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for sub := range h.subscribers[event.VotePageID] {
		select {
		case sub.send <- event:
		default:
			h.logger.Warn("dropping slow live subscriber", "vote_page_id", event.VotePageID)
			h.remove(sub)
		}
	}
}

// SubscriberCount retorna quantos clientes acompanham a página
func (h *Hub) SubscriberCount(votePageID string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subscribers[votePageID])
}

// Close desconecta todos os assinantes
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return
	}
	h.closed = true

	for _, subs := range h.subscribers {
		for sub := range subs {
			h.remove(sub)
		}
	}
}

// Serve acompanha a página pela conexão até o cliente sair, o assinante ser
// descartado ou o hub fechar. Fecha a conexão ao retornar.
func (h *Hub) Serve(conn *websocket.Conn, votePageID string) {
	defer conn.Close()

	sub, err := h.Subscribe(votePageID)
	if err != nil {
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
			time.Now().Add(writeWait))
		return
	}
	defer h.Unsubscribe(sub)

	// Leitura só para processar pong/close; mensagens do cliente são ignoradas
	go func() {
		defer h.Unsubscribe(sub)
		conn.SetReadLimit(512)
		_ = conn.SetReadDeadline(time.Now().Add(pongWait))
		conn.SetPongHandler(func(string) error {
			return conn.SetReadDeadline(time.Now().Add(pongWait))
		})
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case event, ok := <-sub.Events():
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = conn.WriteMessage(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return
			}
			if err := conn.WriteJSON(event); err != nil {
				h.logger.Debug("live write failed", "vote_page_id", votePageID, "error", err)
				return
			}

		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
