package services

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Feed event types broadcast to connected clients.
const (
	EventDiaryCreated   = "diary.created"
	EventCommentCreated = "comment.created"
)

// feedChannel is the Redis Pub/Sub channel carrying feed events, so every
// instance fans out events produced on any instance.
const feedChannel = "girok:events"

// FeedEvent is the payload broadcast over Redis and WebSocket. Private
// diaries never produce events.
type FeedEvent struct {
	Type           string    `json:"type"`
	DiaryID        string    `json:"diary_id,omitempty"`
	WriterNickname string    `json:"writer_nickname,omitempty"`
	Mood           string    `json:"mood,omitempty"`
	Timestamp      time.Time `json:"timestamp,omitempty"`
}

// EventPublisher publishes feed events to Redis. Publishing is best-effort:
// a nil publisher or a Redis error never fails the triggering request.
type EventPublisher struct {
	rdb *redis.Client
}

func NewEventPublisher(rdb *redis.Client) *EventPublisher {
	return &EventPublisher{rdb: rdb}
}

func (p *EventPublisher) Publish(ctx context.Context, event FeedEvent) {
	if p == nil || p.rdb == nil {
		return
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}
	data, err := json.Marshal(event)
	if err != nil {
		return
	}
	if err := p.rdb.Publish(ctx, feedChannel, data).Err(); err != nil {
		log.Printf("failed to publish feed event: %v", err)
	}
}

// FeedConn is the minimal interface a WebSocket connection must satisfy.
type FeedConn interface {
	WriteJSON(v interface{}) error
	Close() error
}

// feedClient wraps a connection with a write lock: the websocket allows
// only one concurrent writer per connection.
type feedClient struct {
	mu   sync.Mutex
	conn FeedConn
}

func (c *feedClient) send(event FeedEvent) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.conn.WriteJSON(event); err != nil {
		log.Printf("error writing feed event to websocket: %v", err)
	}
}

// FeedHub is the registry of connected feed listeners on this instance.
type FeedHub struct {
	mu      sync.RWMutex
	clients map[string]*feedClient
}

var (
	feedHub        = &FeedHub{clients: make(map[string]*feedClient)}
	subscriberOnce sync.Once
)

// RegisterFeedConnection adds a connection and returns its id for removal.
func RegisterFeedConnection(conn FeedConn) string {
	id := uuid.NewString()
	feedHub.mu.Lock()
	feedHub.clients[id] = &feedClient{conn: conn}
	feedHub.mu.Unlock()
	return id
}

func UnregisterFeedConnection(id string) {
	feedHub.mu.Lock()
	delete(feedHub.clients, id)
	feedHub.mu.Unlock()
}

// fanOutFeedEvent sends an event to every local connection, best-effort.
// Delivery to each client is serialized on the client's write lock so back
// to back events never write to the same connection concurrently.
func fanOutFeedEvent(event FeedEvent) {
	feedHub.mu.RLock()
	clients := make([]*feedClient, 0, len(feedHub.clients))
	for _, c := range feedHub.clients {
		clients = append(clients, c)
	}
	feedHub.mu.RUnlock()

	for _, c := range clients {
		go c.send(event)
	}
}

// StartFeedSubscriber ensures a single shared Redis listener per instance.
func StartFeedSubscriber(ctx context.Context, rdb *redis.Client) {
	subscriberOnce.Do(func() {
		go runFeedSubscriber(ctx, rdb)
	})
}

func runFeedSubscriber(ctx context.Context, rdb *redis.Client) {
	if rdb == nil {
		log.Println("Redis client not initialized; feed subscriber not started")
		return
	}

	backoff := time.Second

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		func() {
			pubsub := rdb.Subscribe(ctx, feedChannel)
			defer pubsub.Close()

			for {
				msg, err := pubsub.ReceiveMessage(ctx)
				if err != nil {
					log.Printf("feed subscriber error: %v", err)
					time.Sleep(backoff)
					backoff *= 2
					if backoff > 30*time.Second {
						backoff = 30 * time.Second
					}
					return
				}

				backoff = time.Second

				var event FeedEvent
				if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
					log.Printf("failed to unmarshal feed event: %v", err)
					continue
				}
				fanOutFeedEvent(event)
			}
		}()
	}
}
