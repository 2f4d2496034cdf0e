package services

import (
	"context"
	"strconv"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// slowFeedConn records delivered events and whether two writes ever ran at
// the same time on this connection.
type slowFeedConn struct {
	delay time.Duration

	mu      sync.Mutex
	events  []FeedEvent
	writers int32
	overlap bool
}

func (c *slowFeedConn) WriteJSON(v interface{}) error {
	if atomic.AddInt32(&c.writers, 1) > 1 {
		c.mu.Lock()
		c.overlap = true
		c.mu.Unlock()
	}
	time.Sleep(c.delay)
	if event, ok := v.(FeedEvent); ok {
		c.mu.Lock()
		c.events = append(c.events, event)
		c.mu.Unlock()
	}
	atomic.AddInt32(&c.writers, -1)
	return nil
}

func (c *slowFeedConn) Close() error { return nil }

func (c *slowFeedConn) delivered() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.events)
}

func (c *slowFeedConn) overlapped() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.overlap
}

func TestFanOutFeedEvent_SerializesWritesPerConnection(t *testing.T) {
	conn := &slowFeedConn{delay: 5 * time.Millisecond}
	id := RegisterFeedConnection(conn)
	defer UnregisterFeedConnection(id)

	// Back-to-back events while the first write is still flushing.
	const events = 8
	for i := 0; i < events; i++ {
		fanOutFeedEvent(FeedEvent{Type: EventDiaryCreated, DiaryID: strconv.Itoa(i)})
	}

	require.Eventually(t, func() bool { return conn.delivered() == events },
		2*time.Second, 5*time.Millisecond)
	assert.False(t, conn.overlapped(), "concurrent writes on one connection")
}

func TestUnregisterFeedConnection_StopsDelivery(t *testing.T) {
	conn := &slowFeedConn{}
	id := RegisterFeedConnection(conn)
	UnregisterFeedConnection(id)

	fanOutFeedEvent(FeedEvent{Type: EventCommentCreated, DiaryID: "d1"})

	time.Sleep(20 * time.Millisecond)
	assert.Zero(t, conn.delivered())
}

func TestEventPublisher_NilSafe(t *testing.T) {
	var p *EventPublisher
	// Must not panic; publishing is best-effort.
	p.Publish(context.Background(), FeedEvent{Type: EventDiaryCreated})
	NewEventPublisher(nil).Publish(context.Background(), FeedEvent{Type: EventDiaryCreated})
}
