package custody

import (
	"sync"
)

// Event is a notification emitted after a successful state change. Events
// are emitted exactly once per successful operation and never when an
// operation fails.
type Event interface {
	// EventName returns a short, stable name of the event kind.
	EventName() string
	// Keyvals returns the event attributes as logger key value pairs.
	Keyvals() []interface{}
}

// DepositEvent is emitted when value is deposited into the custody pool.
type DepositEvent struct {
	Sender  Address
	Amount  uint64
	Balance uint64
}

func (DepositEvent) EventName() string { return "deposit" }

func (e DepositEvent) Keyvals() []interface{} {
	return []interface{}{"sender", e.Sender, "amount", e.Amount, "balance", e.Balance}
}

// SubmitEvent is emitted when an owner proposes a new transaction.
type SubmitEvent struct {
	Caller Address
	Index  uint64
	To     Address
	Value  uint64
	Data   []byte
}

func (SubmitEvent) EventName() string { return "submit" }

func (e SubmitEvent) Keyvals() []interface{} {
	return []interface{}{"caller", e.Caller, "index", e.Index, "to", e.To, "value", e.Value, "data", len(e.Data)}
}

// ConfirmEvent is emitted when an owner confirms a transaction.
type ConfirmEvent struct {
	Caller Address
	Index  uint64
}

func (ConfirmEvent) EventName() string { return "confirm" }

func (e ConfirmEvent) Keyvals() []interface{} {
	return []interface{}{"caller", e.Caller, "index", e.Index}
}

// RevokeEvent is emitted when an owner withdraws a confirmation.
type RevokeEvent struct {
	Caller Address
	Index  uint64
}

func (RevokeEvent) EventName() string { return "revoke" }

func (e RevokeEvent) Keyvals() []interface{} {
	return []interface{}{"caller", e.Caller, "index", e.Index}
}

// ExecuteEvent is emitted when a transaction was executed successfully.
type ExecuteEvent struct {
	Caller Address
	Index  uint64
}

func (ExecuteEvent) EventName() string { return "execute" }

func (e ExecuteEvent) Keyvals() []interface{} {
	return []interface{}{"caller", e.Caller, "index", e.Index}
}

// EventSink receives emitted events.
type EventSink interface {
	Emit(ctx Context, e Event)
}

// NopSink drops all events.
type NopSink struct{}

var _ EventSink = NopSink{}

func (NopSink) Emit(Context, Event) {}

// EventLog records all events in the order they were emitted. It is safe for
// concurrent use.
type EventLog struct {
	mu     sync.Mutex
	events []Event
}

var _ EventSink = (*EventLog)(nil)

// NewEventLog returns an empty event log.
func NewEventLog() *EventLog {
	return &EventLog{}
}

// Emit appends the event to the log.
func (l *EventLog) Emit(_ Context, e Event) {
	l.mu.Lock()
	l.events = append(l.events, e)
	l.mu.Unlock()
}

// Events returns a copy of all recorded events.
func (l *EventLog) Events() []Event {
	l.mu.Lock()
	defer l.mu.Unlock()
	res := make([]Event, len(l.events))
	copy(res, l.events)
	return res
}

// LogSink writes every event to the context logger.
type LogSink struct{}

var _ EventSink = LogSink{}

func (LogSink) Emit(ctx Context, e Event) {
	GetLogger(ctx).Info("event", append([]interface{}{"name", e.EventName()}, e.Keyvals()...)...)
}

// MultiSink passes every event to all sinks, in order.
type MultiSink []EventSink

var _ EventSink = MultiSink(nil)

func (m MultiSink) Emit(ctx Context, e Event) {
	for _, s := range m {
		s.Emit(ctx, e)
	}
}
