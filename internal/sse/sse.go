package sse

import "sync"

// Hub — рассылка сообщений SSE по runID.
// Медленный подписчик теряет сообщения, публикация не блокируется.
type Hub struct {
	mu    sync.Mutex
	conns map[string][]chan string
}

func NewHub() *Hub {
	return &Hub{conns: map[string][]chan string{}}
}

// общий hub сервера
var defaultHub = NewHub()

// Subscribe подписывает клиента на id, возвращает канал и функцию-unsubscribe
func (h *Hub) Subscribe(id string) (<-chan string, func()) {
	ch := make(chan string, 64)

	h.mu.Lock()
	h.conns[id] = append(h.conns[id], ch)
	h.mu.Unlock()

	cancel := func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		list := h.conns[id]
		for i, c := range list {
			if c == ch {
				h.conns[id] = append(list[:i], list[i+1:]...)
				break
			}
		}
		if len(h.conns[id]) == 0 {
			delete(h.conns, id)
		}
	}

	return ch, cancel
}

// Publish отсылает сообщение всем подписчикам runID
func (h *Hub) Publish(id, msg string) {
	h.mu.Lock()
	list := append([]chan string(nil), h.conns[id]...)
	h.mu.Unlock()

	for _, ch := range list {
		select {
		case ch <- msg:
		default:
			// игнорируем, если канал забит
		}
	}
}

// Subscribers — число подписчиков runID
func (h *Hub) Subscribers(id string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.conns[id])
}

func Subscribe(id string) (<-chan string, func()) { return defaultHub.Subscribe(id) }

func Publish(id, msg string) { defaultHub.Publish(id, msg) }
