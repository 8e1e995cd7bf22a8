package cart

import "github.com/shopspring/decimal"

type EventType int

const (
	// EventOpened fires on every addition; the cart view should become visible.
	EventOpened EventType = iota + 1
	// EventChanged fires on every other mutation.
	EventChanged
)

func (t EventType) String() string {
	switch t {
	case EventOpened:
		return "opened"
	case EventChanged:
		return "changed"
	}
	return "unknown"
}

type Event struct {
	Type      EventType
	ItemCount int
	Total     decimal.Decimal
}

type Observer func(Event)

func (c *Cart) open() {
	c.visible = true
	c.emit(EventOpened)
}

func (c *Cart) changed() {
	c.emit(EventChanged)
}

func (c *Cart) emit(t EventType) {
	if len(c.observers) == 0 {
		return
	}
	ev := Event{Type: t, ItemCount: c.ItemCount(), Total: c.Total()}
	for _, o := range c.observers {
		o(ev)
	}
}
