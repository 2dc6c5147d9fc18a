package websocket

import (
	"encoding/json"
	"log/slog"
	"sync"
	"testing"
	"time"
)

// mockClient creates a Client with a send channel but no real connection.
func mockClient(hub *Hub, landlordID string) *Client {
	return &Client{
		hub:        hub,
		conn:       nil,
		landlordID: landlordID,
		send:       make(chan []byte, sendBufferSize),
	}
}

func TestRegisterUnregister(t *testing.T) {
	hub := NewHub(slog.Default())

	c1 := mockClient(hub, "ll-1")
	c2 := mockClient(hub, "ll-1")

	hub.Register(c1)
	hub.Register(c2)

	if got := hub.ClientCount(); got != 2 {
		t.Fatalf("expected 2 clients, got %d", got)
	}

	hub.Unregister(c1)

	if got := hub.ClientCount(); got != 1 {
		t.Fatalf("expected 1 client after unregister, got %d", got)
	}

	hub.Unregister(c2)

	if got := hub.ClientCount(); got != 0 {
		t.Fatalf("expected 0 clients, got %d", got)
	}
}

func TestDoubleUnregister(t *testing.T) {
	hub := NewHub(slog.Default())
	c := mockClient(hub, "ll-1")
	hub.Register(c)
	hub.Unregister(c)
	// Should not panic
	hub.Unregister(c)

	if got := hub.ClientCount(); got != 0 {
		t.Fatalf("expected 0 clients, got %d", got)
	}
}

func TestBroadcastScopedToLandlord(t *testing.T) {
	hub := NewHub(slog.Default())

	watcher := mockClient(hub, "ll-1")
	other := mockClient(hub, "ll-2")
	hub.Register(watcher)
	hub.Register(other)

	msg := NewMessage("payment", "created", "pay-42", map[string]any{"month_key": "2026-08"})
	hub.Broadcast("ll-1", msg)

	select {
	case data := <-watcher.send:
		var got Message
		if err := json.Unmarshal(data, &got); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if got.Type != "payment_created" {
			t.Errorf("expected type payment_created, got %s", got.Type)
		}
		if got.ID != "pay-42" {
			t.Errorf("expected id pay-42, got %s", got.ID)
		}
	case <-time.After(100 * time.Millisecond):
		t.Fatal("timeout waiting for message")
	}

	select {
	case <-other.send:
		t.Fatal("client of another landlord should not receive the message")
	default:
	}

	hub.Unregister(watcher)
	hub.Unregister(other)
}

func TestBroadcastEmptyHub(t *testing.T) {
	hub := NewHub(slog.Default())
	// Should not panic
	msg := NewMessage("notice", "resolved", "n-1", nil)
	hub.Broadcast("ll-1", msg)
}

func TestBroadcastFullBuffer(t *testing.T) {
	hub := NewHub(slog.Default())

	c := mockClient(hub, "ll-1")
	hub.Register(c)

	// Fill the send buffer
	for i := 0; i < sendBufferSize; i++ {
		hub.Broadcast("ll-1", NewMessage("test", "fill", "x", nil))
	}

	// This should drop the message, not panic or block
	hub.Broadcast("ll-1", NewMessage("test", "dropped", "y", nil))

	// Drain to verify buffer was full
	count := 0
	for {
		select {
		case <-c.send:
			count++
		default:
			goto done
		}
	}
done:
	if count != sendBufferSize {
		t.Errorf("expected %d messages, got %d", sendBufferSize, count)
	}

	hub.Unregister(c)
}

func TestNewMessage(t *testing.T) {
	msg := NewMessage("tenant", "assigned", "t-5", nil)
	if msg.Type != "tenant_assigned" {
		t.Errorf("expected type tenant_assigned, got %s", msg.Type)
	}
	if msg.Entity != "tenant" {
		t.Errorf("expected entity tenant, got %s", msg.Entity)
	}
	if msg.Action != "assigned" {
		t.Errorf("expected action assigned, got %s", msg.Action)
	}
	if msg.ID != "t-5" {
		t.Errorf("expected id t-5, got %s", msg.ID)
	}
}

func TestConcurrentAccess(t *testing.T) {
	hub := NewHub(slog.Default())
	var wg sync.WaitGroup

	// Spawn goroutines that register, broadcast, and unregister concurrently
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c := mockClient(hub, "ll-1")
			hub.Register(c)
			hub.Broadcast("ll-1", NewMessage("test", "concurrent", "", nil))
			// Drain any messages
			for {
				select {
				case <-c.send:
				default:
					hub.Unregister(c)
					return
				}
			}
		}()
	}

	wg.Wait()

	if got := hub.ClientCount(); got != 0 {
		t.Errorf("expected 0 clients after concurrent test, got %d", got)
	}
}
