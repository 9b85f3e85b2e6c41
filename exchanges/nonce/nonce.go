package nonce

import (
	"strconv"
	"sync"
	"time"
)

// Nonce issues strictly increasing values seeded from the wall clock. It is
// safe for concurrent use; the zero value is ready to use.
type Nonce struct {
	n   int64
	m   sync.Mutex
	now func() time.Time
}

// New returns a Nonce that reads time from the supplied clock. A nil clock
// uses time.Now.
func New(clock func() time.Time) *Nonce {
	return &Nonce{now: clock}
}

// GetValue returns the current unix nanosecond time, or the previous value
// plus one when the clock has not moved past it
func (n *Nonce) GetValue() Value {
	n.m.Lock()
	defer n.m.Unlock()
	now := n.clock()().UnixNano()
	if now <= n.n {
		now = n.n + 1
	}
	n.n = now
	return Value(n.n)
}

// Get retrieves the last issued nonce value
func (n *Nonce) Get() Value {
	n.m.Lock()
	defer n.m.Unlock()
	return Value(n.n)
}

// Set sets the nonce value
func (n *Nonce) Set(val int64) {
	n.m.Lock()
	n.n = val
	n.m.Unlock()
}

// String returns a string version of the last issued nonce
func (n *Nonce) String() string {
	return n.Get().String()
}

func (n *Nonce) clock() func() time.Time {
	if n.now == nil {
		return time.Now
	}
	return n.now
}

// Value is a return type for GetValue
type Value int64

// String is a Value method that changes format to a string
func (v Value) String() string {
	return strconv.FormatInt(int64(v), 10)
}
