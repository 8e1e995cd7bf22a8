package order

import (
	"time"

	"github.com/fekuna/omnipos-order-service/internal/model"
)

// Action is a staff operation offered for an order.
type Action string

const (
	ActionStartPreparing Action = "start_preparing"
	ActionMarkReady      Action = "mark_ready"
	ActionComplete       Action = "complete"
	ActionCancel         Action = "cancel"
)

var forward = map[model.OrderStatus]model.OrderStatus{
	model.OrderStatusPending:   model.OrderStatusPreparing,
	model.OrderStatusPreparing: model.OrderStatusReady,
	model.OrderStatusReady:     model.OrderStatusCompleted,
}

var advanceAction = map[model.OrderStatus]Action{
	model.OrderStatusPending:   ActionStartPreparing,
	model.OrderStatusPreparing: ActionMarkReady,
	model.OrderStatusReady:     ActionComplete,
}

// Next returns the single forward step from s.
func Next(s model.OrderStatus) (model.OrderStatus, bool) {
	next, ok := forward[s]
	return next, ok
}

// CanTransition checks a move without applying it.
func CanTransition(o *model.Order, to model.OrderStatus) error {
	from := o.Status
	if from.IsTerminal() || !to.Valid() {
		return &TransitionError{From: from, To: to}
	}
	if next, ok := forward[from]; ok && next == to {
		return nil
	}
	if to == model.OrderStatusCancelled && o.IsDineIn() {
		return nil
	}
	return &TransitionError{From: from, To: to}
}

// Transition applies a legal move. Terminal statuses stamp CompletedAt.
func Transition(o *model.Order, to model.OrderStatus, now time.Time) error {
	if err := CanTransition(o, to); err != nil {
		return err
	}
	o.Status = to
	o.UpdatedAt = now
	if to.IsTerminal() {
		t := now
		o.CompletedAt = &t
	}
	return nil
}

// Advance moves the order one step forward.
func Advance(o *model.Order, now time.Time) error {
	next, ok := forward[o.Status]
	if !ok {
		return &TransitionError{From: o.Status, To: o.Status}
	}
	return Transition(o, next, now)
}

// Actions lists what staff may do with the order in its current status.
func Actions(o *model.Order) []Action {
	if o.Status.IsTerminal() {
		return nil
	}
	var actions []Action
	if a, ok := advanceAction[o.Status]; ok {
		actions = append(actions, a)
	}
	if o.IsDineIn() {
		actions = append(actions, ActionCancel)
	}
	return actions
}

// TargetStatus maps an action to the status it moves to.
func TargetStatus(a Action) (model.OrderStatus, bool) {
	switch a {
	case ActionStartPreparing:
		return model.OrderStatusPreparing, true
	case ActionMarkReady:
		return model.OrderStatusReady, true
	case ActionComplete:
		return model.OrderStatusCompleted, true
	case ActionCancel:
		return model.OrderStatusCancelled, true
	}
	return "", false
}
