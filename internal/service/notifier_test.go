package service

import (
	"testing"
	"time"
)

func recv(t *testing.T, ch <-chan Event) (Event, bool) {
	t.Helper()
	select {
	case ev, ok := <-ch:
		return ev, ok
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
		return Event{}, false
	}
}

func TestNotifierFanOut(t *testing.T) {
	n := NewNotifier()
	a, cancelA := n.Subscribe(4)
	b, cancelB := n.Subscribe(4)
	defer cancelA()
	defer cancelB()

	n.Publish(Event{Type: EventHalfway, TimerID: "1"})

	for _, ch := range []<-chan Event{a, b} {
		ev, ok := recv(t, ch)
		if !ok || ev.TimerID != "1" {
			t.Fatalf("got %+v ok=%v", ev, ok)
		}
	}
}

func TestNotifierDropsWhenSubscriberIsFull(t *testing.T) {
	n := NewNotifier()
	ch, cancel := n.Subscribe(1)
	defer cancel()

	n.Publish(Event{TimerID: "first"})
	n.Publish(Event{TimerID: "second"}) // must not block

	ev, _ := recv(t, ch)
	if ev.TimerID != "first" {
		t.Fatalf("got %q, want first", ev.TimerID)
	}
	select {
	case ev := <-ch:
		t.Fatalf("unexpected event %+v", ev)
	default:
	}
}

func TestNotifierCancelClosesChannel(t *testing.T) {
	n := NewNotifier()
	ch, cancel := n.Subscribe(1)
	cancel()
	cancel()

	if _, ok := <-ch; ok {
		t.Fatal("channel still open after cancel")
	}
	n.Publish(Event{}) // no subscribers left
}

func TestNotifierClose(t *testing.T) {
	n := NewNotifier()
	ch, cancel := n.Subscribe(1)
	n.Close()
	n.Close()
	cancel()

	if _, ok := <-ch; ok {
		t.Fatal("channel still open after Close")
	}
	late, _ := n.Subscribe(1)
	if _, ok := <-late; ok {
		t.Fatal("subscription after Close should be closed")
	}
}
