package domain

import "time"

const DefaultMaxRecentTurns = 10

// Exchange is one user utterance and the assistant reply it produced.
type Exchange struct {
	User      string
	Assistant string
	At        time.Time
}

// TurnLog is a fixed-capacity ring buffer of exchanges. When full, the oldest
// exchange is evicted first.
type TurnLog struct {
	items []Exchange
	head  int
	size  int
}

func NewTurnLog(capacity int) *TurnLog {
	if capacity <= 0 {
		capacity = DefaultMaxRecentTurns
	}
	return &TurnLog{items: make([]Exchange, capacity)}
}

func (l *TurnLog) Capacity() int {
	return len(l.items)
}

func (l *TurnLog) Len() int {
	return l.size
}

func (l *TurnLog) Append(e Exchange) {
	if l.size < len(l.items) {
		l.items[(l.head+l.size)%len(l.items)] = e
		l.size++
		return
	}
	l.items[l.head] = e
	l.head = (l.head + 1) % len(l.items)
}

// Items returns the exchanges oldest first.
func (l *TurnLog) Items() []Exchange {
	out := make([]Exchange, 0, l.size)
	for i := 0; i < l.size; i++ {
		out = append(out, l.items[(l.head+i)%len(l.items)])
	}
	return out
}

// Last returns up to n most recent exchanges, oldest first.
func (l *TurnLog) Last(n int) []Exchange {
	items := l.Items()
	if n >= len(items) || n < 0 {
		return items
	}
	return items[len(items)-n:]
}

func (l *TurnLog) Clone() *TurnLog {
	if l == nil {
		return nil
	}
	out := &TurnLog{items: make([]Exchange, len(l.items)), head: l.head, size: l.size}
	copy(out.items, l.items)
	return out
}

// RestoreTurnLog rebuilds a log from persisted exchanges, keeping the newest when
// there are more than capacity.
func RestoreTurnLog(capacity int, exchanges []Exchange) *TurnLog {
	log := NewTurnLog(capacity)
	for _, e := range exchanges {
		log.Append(e)
	}
	return log
}
