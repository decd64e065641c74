package doorbell

import (
	"testing"
	"time"

	"github.com/jcaldw/trickortreth/internal/model"
	"github.com/jcaldw/trickortreth/internal/testutil"
)

func TestFormatSSEMessage(t *testing.T) {
	tests := []struct {
		name      string
		eventName string
		data      string
		expected  string
	}{
		{
			name:      "single line data",
			eventName: "visit_created",
			data:      `{"visit_id":"abc"}`,
			expected:  "event: visit_created\ndata: {\"visit_id\":\"abc\"}\n\n",
		},
		{
			name:      "multi-line data",
			eventName: "test",
			data:      "line1\nline2",
			expected:  "event: test\ndata: line1\ndata: line2\n\n",
		},
		{
			name:      "empty data",
			eventName: "ping",
			data:      "",
			expected:  "event: ping\ndata: \n\n",
		},
		{
			name:      "data with carriage returns",
			eventName: "test",
			data:      "line1\r\nline2",
			expected:  "event: test\ndata: line1\ndata: line2\n\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := formatSSEMessage(tt.eventName, tt.data)
			if string(result) != tt.expected {
				t.Errorf("formatSSEMessage(%q, %q)\ngot:  %q\nwant: %q",
					tt.eventName, tt.data, string(result), tt.expected)
			}
		})
	}
}

func TestHub_RegisterAndBroadcast(t *testing.T) {
	hub := NewHub(3, testutil.NopLogger())
	go hub.Run()
	defer hub.Close()

	client := NewClient(hub)
	hub.Register(client)

	// Give the hub time to process registration
	time.Sleep(10 * time.Millisecond)

	if hub.ClientCount() != 1 {
		t.Errorf("ClientCount() = %d, want 1", hub.ClientCount())
	}

	hub.BroadcastEvent("visit_created", `{"visit_id":"abc"}`)

	select {
	case msg := <-client.send:
		expected := "event: visit_created\ndata: {\"visit_id\":\"abc\"}\n\n"
		if string(msg) != expected {
			t.Errorf("client received %q, want %q", string(msg), expected)
		}
	case <-time.After(100 * time.Millisecond):
		t.Error("client did not receive message")
	}
}

func TestHub_Unregister(t *testing.T) {
	hub := NewHub(3, testutil.NopLogger())
	go hub.Run()
	defer hub.Close()

	client := NewClient(hub)
	hub.Register(client)
	time.Sleep(10 * time.Millisecond)

	hub.Unregister(client)
	time.Sleep(10 * time.Millisecond)

	if hub.ClientCount() != 0 {
		t.Errorf("ClientCount() = %d after unregister, want 0", hub.ClientCount())
	}
}

func TestRegistry_GetOrCreateHub(t *testing.T) {
	registry := NewRegistry(testutil.NopLogger())

	hub1 := registry.GetOrCreateHub(3)
	if hub1 == nil {
		t.Fatal("GetOrCreateHub returned nil")
	}

	hub2 := registry.GetOrCreateHub(3)
	if hub1 != hub2 {
		t.Error("GetOrCreateHub returned different hub for same homeowner")
	}

	hub3 := registry.GetOrCreateHub(4)
	if hub3 == hub1 {
		t.Error("GetOrCreateHub returned same hub for different homeowner")
	}

	registry.RemoveHub(3)
	registry.RemoveHub(4)
}

func TestRegistry_NotifyVisitCreated(t *testing.T) {
	registry := NewRegistry(testutil.NopLogger())
	defer registry.RemoveHub(3)

	hub := registry.GetOrCreateHub(3)
	client := NewClient(hub)
	hub.Register(client)
	time.Sleep(10 * time.Millisecond)

	registry.NotifyVisitCreated(&model.Visit{
		ID:           "abc",
		VisitorFID:   7,
		HomeownerFID: 3,
	})

	select {
	case msg := <-client.send:
		expected := "event: visit_created\ndata: {\"visit_id\":\"abc\",\"visitor_fid\":7}\n\n"
		if string(msg) != expected {
			t.Errorf("client received %q, want %q", string(msg), expected)
		}
	case <-time.After(100 * time.Millisecond):
		t.Error("client did not receive doorbell event")
	}
}

func TestRegistry_NotifyWithoutHubIsNoop(t *testing.T) {
	registry := NewRegistry(testutil.NopLogger())

	// No hub for this homeowner; must not panic or create one
	registry.NotifyVisitCreated(&model.Visit{ID: "abc", HomeownerFID: 99})

	if registry.GetHub(99) != nil {
		t.Error("NotifyVisitCreated created a hub")
	}
}

func TestRegistry_CleanupEmptyHubs(t *testing.T) {
	registry := NewRegistry(testutil.NopLogger())

	registry.GetOrCreateHub(1)

	active := registry.GetOrCreateHub(2)
	client := NewClient(active)
	active.Register(client)
	time.Sleep(10 * time.Millisecond)

	registry.CleanupEmptyHubs()

	if registry.GetHub(1) != nil {
		t.Error("empty hub still exists after cleanup")
	}
	if registry.GetHub(2) == nil {
		t.Error("active hub was removed during cleanup")
	}

	registry.RemoveHub(2)
}
