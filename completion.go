package ioloop

// State is the lifecycle state of a Completion. State transitions are driven
// exclusively by the Loop, on its owning goroutine.
type State uint8

const (
	// StateDead means the Completion is owned by no internal structure and
	// is safe for the caller to reuse or mutate.
	StateDead State = iota
	// StateAdding means the Completion is in the submissions FIFO, waiting
	// for the next Tick to route it.
	StateAdding
	// StateDeleting is reserved for a Completion observed mid-removal from
	// the submissions FIFO. It is part of the lifecycle's state space but,
	// like Result's TriggerRequest, is never assigned by this
	// implementation: a cancelled submission transitions straight from
	// adding to dead (see Loop.stop).
	StateDeleting
	// StateActive means the Completion is parked in the batch, the timer
	// heap, or the async waiter list, and so keeps Loop.Done false.
	StateActive
	// StateInProgress is a transient state: the Completion has just been
	// taken out of the batch (its result demultiplexed from the host), the
	// timer heap, or the async waiter list for dispatch. For I/O, its
	// blocking completion (perform) runs in this state; the state holds
	// until the callback returns.
	StateInProgress
)

// String implements fmt.Stringer.
func (s State) String() string {
	switch s {
	case StateDead:
		return "dead"
	case StateAdding:
		return "adding"
	case StateDeleting:
		return "deleting"
	case StateActive:
		return "active"
	case StateInProgress:
		return "in_progress"
	default:
		return "unknown"
	}
}

// Action is returned by a Callback to decide a Completion's fate.
type Action uint8

const (
	// Disarm retires the Completion: it becomes dead and is referenced by
	// no internal structure.
	Disarm Action = iota
	// Rearm resubmits the Completion for another round, extending the
	// loop's loan on it.
	Rearm
)

// Callback is invoked once a Completion's operation has produced a Result.
// It runs synchronously, inline, on the loop's goroutine.
type Callback func(userData any, l *Loop, c *Completion, res Result) Action

// Completion is the fundamental unit of submission: one operation, its
// callback, and the loop-private linkage needed to track it through the
// submission -> active -> dispatched lifecycle. The caller owns a
// Completion's storage; the loop holds it by reference from Add until the
// terminal callback invocation returns Disarm. A Completion must not be
// moved or mutated by the caller while its State is not StateDead.
type Completion struct {
	// Op is the operation this Completion performs.
	Op Operation
	// UserData is opaque to the loop; it is passed untouched to Callback.
	UserData any
	// Callback is invoked with the Completion's result.
	Callback Callback

	state State

	// next is the intrusive singly-linked FIFO pointer. A Completion is on
	// at most one FIFO at a time (submissions or async waiters).
	next *Completion

	// batchIndex is this Completion's slot in the Loop's Batch; zero means
	// "not in the batch" (slot 0 is reserved for the tick's clock
	// subscription).
	batchIndex int

	// inHeap and heapIndex track the Completion's position in the timer
	// heap, so Loop.stop can remove it in O(log n) without a linear scan.
	inHeap    bool
	heapIndex int

	// asyncWoken is the per-waiter wakeup flag set by AsyncNotify.
	asyncWoken asyncFlag
}

// State returns the Completion's current lifecycle state.
func (c *Completion) State() State { return c.state }

// BatchIndex returns the Completion's slot in the Loop's Batch, or zero if it
// is not currently occupying one.
func (c *Completion) BatchIndex() int { return c.batchIndex }
