// Package table derives the floor board: which tables are occupied by an
// active dine-in order and what staff can do with each of them.
package table

import (
	"fmt"
	"time"

	"github.com/fekuna/omnipos-order-service/internal/model"
	"github.com/shopspring/decimal"
)

const (
	DefaultTables = 10
	// OverdueAfter is how long an order may stay open before it is flagged.
	OverdueAfter = 10 * time.Minute
)

type Action string

const (
	ActionNewOrder Action = "new_order"
	ActionAddItems Action = "add_items"
	ActionSettle   Action = "settle"
	ActionCancel   Action = "cancel"
)

type Table struct {
	Number   int               `json:"number"`
	Occupied bool              `json:"occupied"`
	OrderID  string            `json:"order_id,omitempty"`
	Status   model.OrderStatus `json:"status,omitempty"`
	Total    decimal.Decimal   `json:"total"`
	Elapsed  time.Duration     `json:"elapsed"`
	Overdue  bool              `json:"overdue"`
	Actions  []Action          `json:"actions"`
}

// ElapsedLabel renders the time the table has been occupied as mm:ss.
func (t Table) ElapsedLabel() string {
	if !t.Occupied {
		return ""
	}
	return FormatElapsed(t.Elapsed)
}

// Conflict reports a table claimed by more than one active order. The
// board shows Winner; Shadowed lists the other order ids.
type Conflict struct {
	Table    int      `json:"table"`
	Winner   string   `json:"winner"`
	Shadowed []string `json:"shadowed"`
}

type Board struct {
	Tables    []Table    `json:"tables"`
	Conflicts []Conflict `json:"conflicts,omitempty"`
}

func (b Board) Free() int {
	free := 0
	for _, t := range b.Tables {
		if !t.Occupied {
			free++
		}
	}
	return free
}

// Project builds the board for tables 1..n from the given orders. Only
// non-terminal in-store orders occupy a table; when two claim the same
// table the later one in orders wins.
func Project(orders []model.Order, n int, now time.Time) Board {
	if n <= 0 {
		n = DefaultTables
	}
	board := Board{Tables: make([]Table, n)}
	for i := range board.Tables {
		board.Tables[i] = Table{
			Number:  i + 1,
			Total:   decimal.Zero,
			Actions: []Action{ActionNewOrder},
		}
	}

	claims := make(map[int][]string)
	for i := range orders {
		o := &orders[i]
		if !o.IsDineIn() || o.Status.IsTerminal() {
			continue
		}
		number := o.Table()
		if number < 1 || number > n {
			continue
		}
		claims[number] = append(claims[number], o.ID)
		board.Tables[number-1] = occupied(o, now)
	}

	for number := 1; number <= n; number++ {
		ids := claims[number]
		if len(ids) < 2 {
			continue
		}
		board.Conflicts = append(board.Conflicts, Conflict{
			Table:    number,
			Winner:   ids[len(ids)-1],
			Shadowed: ids[:len(ids)-1],
		})
	}
	return board
}

func occupied(o *model.Order, now time.Time) Table {
	elapsed := now.Sub(o.CreatedAt)
	if elapsed < 0 {
		elapsed = 0
	}
	actions := []Action{ActionAddItems}
	if o.Status == model.OrderStatusReady {
		actions = append(actions, ActionSettle)
	}
	actions = append(actions, ActionCancel)

	return Table{
		Number:   o.Table(),
		Occupied: true,
		OrderID:  o.ID,
		Status:   o.Status,
		Total:    o.Total,
		Elapsed:  elapsed,
		Overdue:  elapsed > OverdueAfter,
		Actions:  actions,
	}
}

// FormatElapsed renders d as zero-padded minutes and seconds; minutes keep
// counting past an hour.
func FormatElapsed(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	secs := int64(d / time.Second)
	return fmt.Sprintf("%02d:%02d", secs/60, secs%60)
}
