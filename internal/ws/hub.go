package ws

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/ignatzorin/gig-marketplace/internal/goroutine"
	"github.com/ignatzorin/gig-marketplace/internal/models"
)

// Имена событий фида каталога.
const (
	EventCatalogSnapshot = "catalog.snapshot"
	EventCatalogUpdated  = "catalog.updated"
)

// CatalogLoader возвращает актуальный список категорий для рассылки.
type CatalogLoader interface {
	ListCatalog(ctx context.Context) ([]models.Category, error)
}

// Hub рассылает события каталога всем подключённым WebSocket клиентам.
// Заменяет live-query подписку исходной системы: клиент получает снимок
// при подключении и событие catalog.updated после каждого изменения.
type Hub struct {
	mu         sync.RWMutex
	clients    map[*Client]struct{}
	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte
	loader     CatalogLoader
	ctx        context.Context
}

// NewHub создаёт новый хаб.
func NewHub(ctx context.Context) *Hub {
	return &Hub{
		clients:    make(map[*Client]struct{}),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan []byte, 32),
		ctx:        ctx,
	}
}

// SetCatalogLoader устанавливает источник снимков каталога.
func (h *Hub) SetCatalogLoader(loader CatalogLoader) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.loader = loader
}

// Run запускает главный цикл хаба.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.addClient(client)
		case client := <-h.unregister:
			h.removeClient(client)
		case payload := <-h.broadcast:
			h.send(payload)
		}
	}
}

// Register добавляет клиента.
func (h *Hub) Register(client *Client) {
	h.register <- client
}

// Unregister удаляет клиента.
func (h *Hub) Unregister(client *Client) {
	h.unregister <- client
}

// CatalogUpdated перечитывает каталог и рассылает его всем подписчикам.
// Реализует service.CatalogNotifier.
func (h *Hub) CatalogUpdated(ctx context.Context) {
	h.mu.RLock()
	loader := h.loader
	h.mu.RUnlock()

	if loader == nil {
		return
	}

	categories, err := loader.ListCatalog(ctx)
	if err != nil {
		fmt.Printf("ws: не удалось загрузить каталог для рассылки: %v\n", err)
		return
	}

	payload, err := encodeEvent(EventCatalogUpdated, categories)
	if err != nil {
		fmt.Printf("ws: %v\n", err)
		return
	}

	h.broadcast <- payload
}

// encodeEvent сериализует событие по контракту WebSocket API: поле "type"
// содержит имя события, "data" — полезную нагрузку.
func encodeEvent(event string, data any) ([]byte, error) {
	raw, err := json.Marshal(map[string]any{
		"type": event,
		"data": data,
	})
	if err != nil {
		return nil, fmt.Errorf("не удалось сериализовать сообщение %s: %w", event, err)
	}
	return raw, nil
}

func (h *Hub) addClient(client *Client) {
	h.mu.Lock()
	h.clients[client] = struct{}{}
	loader := h.loader
	ctx := h.ctx
	h.mu.Unlock()

	if loader == nil {
		return
	}

	// Снимок отправляем асинхронно, чтобы не блокировать цикл хаба.
	goroutine.SafeGo(func() {
		categories, err := loader.ListCatalog(ctx)
		if err != nil {
			fmt.Printf("ws: не удалось загрузить снимок каталога: %v\n", err)
			return
		}

		payload, err := encodeEvent(EventCatalogSnapshot, categories)
		if err != nil {
			fmt.Printf("ws: %v\n", err)
			return
		}

		select {
		case client.send <- payload:
		default:
		}
	})
}

func (h *Hub) removeClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	delete(h.clients, client)
}

func (h *Hub) send(payload []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for client := range h.clients {
		select {
		case client.send <- payload:
		default:
			// Медленного клиента отключаем, не блокируя рассылку.
			c := client
			goroutine.SafeGo(c.Close)
		}
	}
}
