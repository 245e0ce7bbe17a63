package notify

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

const (
	zombies     = "ExtraHardMode.Zombies"
	slowPlayers = "ExtraHardMode.Zombies.Slow Players"
	reanimate   = "ExtraHardMode.Zombies.Reanimate Percent"
	creepers    = "ExtraHardMode.Creepers.Drop Tnt On Death.Percent"
)

func updated(node, scope string, v any) Event {
	return Event{Kind: Updated, Node: node, Scope: scope, New: v}
}

func TestKind_String(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{Updated, "set"},
		{Removed, "delete"},
		{Reloaded, "reload"},
		{Kind(0), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("Kind(%d).String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}

func TestFilter_Match(t *testing.T) {
	reload := Event{Kind: Reloaded, Cycle: "c1"}
	tests := []struct {
		name   string
		filter Filter
		event  Event
		want   bool
	}{
		{"zero selects all", Filter{}, updated(creepers, "world", 1), true},
		{"exact node", Filter{Node: slowPlayers}, updated(slowPlayers, "world", true), true},
		{"section prefix", Filter{Node: zombies}, updated(reanimate, "world", 1.0), true},
		{"other section", Filter{Node: zombies}, updated(creepers, "world", 1), false},
		{"name prefix is not a section", Filter{Node: "ExtraHardMode.Zomb"}, updated(slowPlayers, "world", true), false},
		{"same scope", Filter{Scope: "world"}, updated(slowPlayers, "world", true), true},
		{"wildcard reaches scope", Filter{Scope: "world"}, updated(slowPlayers, "*", true), true},
		{"other scope", Filter{Scope: "world"}, updated(slowPlayers, "world_nether", true), false},
		{"node and scope", Filter{Node: zombies, Scope: "world"}, updated(creepers, "world", 1), false},
		{"reload reaches node filter", Filter{Node: slowPlayers}, reload, true},
		{"reload reaches scope filter", Filter{Scope: "world"}, reload, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.filter.Match(tt.event); got != tt.want {
				t.Errorf("Match() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestUnder(t *testing.T) {
	tests := []struct {
		section, node string
		want          bool
	}{
		{"ExtraHardMode", "ExtraHardMode.Zombies", true},
		{"ExtraHardMode.Zombies", "ExtraHardMode.Zombies.Slow Players", true},
		{"ExtraHardMode.Zombies", "ExtraHardMode.Zombies", false},
		{"ExtraHardMode.Zombie", "ExtraHardMode.Zombies", false},
		{"", "ExtraHardMode", true},
		{"", "", false},
	}

	for _, tt := range tests {
		if got := under(tt.section, tt.node); got != tt.want {
			t.Errorf("under(%q, %q) = %v, want %v", tt.section, tt.node, got, tt.want)
		}
	}
}

func TestHub_Subscribe(t *testing.T) {
	h := NewHub()
	defer h.Close()

	var count atomic.Int32
	sub := h.Subscribe(Filter{}, func(Event) { count.Add(1) })
	if h.Len() != 1 {
		t.Errorf("Len() = %d, want 1", h.Len())
	}

	h.Publish(updated(slowPlayers, "world", true))
	if count.Load() != 1 {
		t.Errorf("delivered %d events, want 1", count.Load())
	}

	sub.Cancel()
	sub.Cancel()
	if h.Len() != 0 {
		t.Errorf("Len() after Cancel = %d, want 0", h.Len())
	}
	h.Publish(updated(slowPlayers, "world", false))
	if count.Load() != 1 {
		t.Error("cancelled subscription still received events")
	}
}

func TestHub_DeliveryOrder(t *testing.T) {
	h := NewHub()
	defer h.Close()

	var order []string
	h.Subscribe(Filter{}, func(e Event) { order = append(order, "first:"+e.Scope) })
	h.Subscribe(Filter{Scope: "world"}, func(e Event) { order = append(order, "second:"+e.Scope) })

	h.Publish(updated(slowPlayers, "world", true), updated(slowPlayers, "world_nether", true))

	want := []string{"first:world", "second:world", "first:world_nether"}
	if diff := cmp.Diff(want, order); diff != "" {
		t.Errorf("delivery order mismatch (-want +got):\n%s", diff)
	}
}

func TestHub_HandlerMaySubscribe(t *testing.T) {
	h := NewHub()
	defer h.Close()

	h.Subscribe(Filter{}, func(Event) {
		h.Subscribe(Filter{}, func(Event) {})
	})
	h.Publish(updated(slowPlayers, "world", true))
	if h.Len() != 2 {
		t.Errorf("Len() = %d, want 2", h.Len())
	}
}

func TestHub_Queue(t *testing.T) {
	h := NewHub(WithQueue(16))

	var mu sync.Mutex
	var got []string
	h.Subscribe(Filter{}, func(e Event) {
		mu.Lock()
		got = append(got, e.Scope)
		mu.Unlock()
	})

	h.Publish(updated(slowPlayers, "a", 1), updated(slowPlayers, "b", 2), updated(slowPlayers, "c", 3))
	h.Close()

	mu.Lock()
	defer mu.Unlock()
	if diff := cmp.Diff([]string{"a", "b", "c"}, got); diff != "" {
		t.Errorf("queued delivery mismatch (-want +got):\n%s", diff)
	}
}

func TestHub_QueueDeliversInBackground(t *testing.T) {
	h := NewHub(WithQueue(4))
	defer h.Close()

	done := make(chan struct{})
	h.Subscribe(Filter{}, func(Event) { close(done) })
	h.Publish(updated(slowPlayers, "world", true))

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("queued event not delivered")
	}
}

func TestHub_PublishAfterClose(t *testing.T) {
	h := NewHub()
	var count atomic.Int32
	h.Subscribe(Filter{}, func(Event) { count.Add(1) })

	h.Close()
	h.Close()
	h.Publish(updated(slowPlayers, "world", true))
	if count.Load() != 0 {
		t.Errorf("delivered %d events after Close", count.Load())
	}
}

func TestDiff_Events(t *testing.T) {
	d := NewDiff("/srv/plugins/ExtraHardMode", "c1")
	d.Updated(slowPlayers, "world", nil, true)
	d.Removed(creepers, "world_nether", 10)
	if d.Len() != 2 {
		t.Errorf("Len() = %d, want 2", d.Len())
	}

	want := []Event{
		{Kind: Updated, Node: slowPlayers, Scope: "world", New: true, Dir: "/srv/plugins/ExtraHardMode", Cycle: "c1"},
		{Kind: Removed, Node: creepers, Scope: "world_nether", Old: 10, Dir: "/srv/plugins/ExtraHardMode", Cycle: "c1"},
		{Kind: Reloaded, Dir: "/srv/plugins/ExtraHardMode", Cycle: "c1"},
	}
	if diff := cmp.Diff(want, d.Events()); diff != "" {
		t.Errorf("Events() mismatch (-want +got):\n%s", diff)
	}
	if d.Len() != 2 {
		t.Error("Events() must not add to the diff")
	}
}

func TestHub_ConcurrentAccess(t *testing.T) {
	h := NewHub()
	defer h.Close()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				h.Subscribe(Filter{Scope: "world"}, func(Event) {}).Cancel()
			}
		}()
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				h.Publish(updated(slowPlayers, "world", j))
			}
		}()
	}
	wg.Wait()

	if h.Len() != 0 {
		t.Errorf("Len() = %d, want 0", h.Len())
	}
}
