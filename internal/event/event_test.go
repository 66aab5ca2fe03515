package event

import "testing"

type counter struct{ n int }

func (c *counter) OnEvent(Event) { c.n++ }

func TestDispatchAndUnsubscribe(t *testing.T) {
	d := NewDispatcher()
	c := &counter{}
	var got []EventType
	d.Subscribe(PiecePlaced, c)
	d.Subscribe(PiecePlaced, ListenerFunc(func(e Event) { got = append(got, e.Type) }))

	d.Dispatch(Event{Type: PiecePlaced})
	d.Dispatch(Event{Type: PieceSold})
	if c.n != 1 || len(got) != 1 {
		t.Fatalf("expected one delivery per listener, got %d and %d", c.n, len(got))
	}

	d.Unsubscribe(PiecePlaced, c)
	d.Dispatch(Event{Type: PiecePlaced})
	if c.n != 1 {
		t.Errorf("unsubscribed listener still receives events")
	}
	if len(got) != 2 {
		t.Errorf("remaining listener should keep receiving events")
	}
}

func TestDispatchOnNilDispatcher(t *testing.T) {
	var d *Dispatcher
	d.Dispatch(Event{Type: GameOver})
}
