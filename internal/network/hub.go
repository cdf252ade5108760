package network

import (
	"arpg-server/pkg/api"
	"arpg-server/pkg/logger"
	"sync"

	"github.com/sirupsen/logrus"
)

const subscriberBuffer = 256

// Broadcaster занимается только рассылкой сообщений подписчикам
type Broadcaster struct {
	mu sync.RWMutex
	// Мапа: SessionID -> Личный канал
	subscribers map[string]chan api.ServerMessage
}

func NewBroadcaster() *Broadcaster {
	return &Broadcaster{
		subscribers: make(map[string]chan api.ServerMessage),
	}
}

// Register создает личный канал для сессии
func (b *Broadcaster) Register(sessionID string) <-chan api.ServerMessage {
	b.mu.Lock()
	defer b.mu.Unlock()

	// Если канал был, закрываем
	if old, ok := b.subscribers[sessionID]; ok {
		close(old)
	}

	ch := make(chan api.ServerMessage, subscriberBuffer)
	b.subscribers[sessionID] = ch
	return ch
}

// Unregister удаляет подписчика и закрывает его канал
func (b *Broadcaster) Unregister(sessionID string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if ch, ok := b.subscribers[sessionID]; ok {
		close(ch)
		delete(b.subscribers, sessionID)
	}
}

// SendTo отправляет сообщение конкретной сессии (Unicast).
// Возвращает false, если подписчика нет или его буфер переполнен.
func (b *Broadcaster) SendTo(sessionID string, msg api.ServerMessage) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()

	ch, ok := b.subscribers[sessionID]
	if !ok {
		return false
	}
	select {
	case ch <- msg:
		return true
	default:
		logger.Component("hub").WithFields(logrus.Fields{
			"session_id": sessionID,
			"type":       msg.Type,
		}).Warn("Channel full, message dropped")
		return false
	}
}

// Broadcast отправляет всем и возвращает число сессий, которым сообщение
// не влезло в буфер.
func (b *Broadcaster) Broadcast(msg api.ServerMessage) int {
	b.mu.RLock()
	defer b.mu.RUnlock()

	dropped := 0
	for id, ch := range b.subscribers {
		select {
		case ch <- msg:
		default:
			dropped++
			logger.Component("hub").WithFields(logrus.Fields{
				"session_id": id,
				"type":       msg.Type,
			}).Warn("Channel full, broadcast dropped")
		}
	}
	return dropped
}

func (b *Broadcaster) HasSubscriber(sessionID string) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	_, ok := b.subscribers[sessionID]
	return ok
}

// SubscriberCount возвращает количество активных подписчиков.
func (b *Broadcaster) SubscriberCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subscribers)
}
