package ioloop

// fifo is an intrusive singly-linked queue of Completions, ordered
// oldest-first. It allocates nothing beyond the Completion.next pointer
// already embedded in every Completion.
type fifo struct {
	head *Completion
	tail *Completion
}

// empty reports whether the queue has no elements.
func (q *fifo) empty() bool { return q.head == nil }

// push appends c to the tail of the queue. c.next must be nil; the caller is
// responsible for not pushing a Completion already linked elsewhere.
func (q *fifo) push(c *Completion) {
	c.next = nil
	if q.tail == nil {
		q.head = c
		q.tail = c
		return
	}
	q.tail.next = c
	q.tail = c
}

// pop removes and returns the head of the queue, or nil if empty.
func (q *fifo) pop() *Completion {
	c := q.head
	if c == nil {
		return nil
	}
	q.head = c.next
	if q.head == nil {
		q.tail = nil
	}
	c.next = nil
	return c
}

// drain detaches the entire queue and returns its head, leaving the queue
// empty. Useful for taking a consistent snapshot of pending work before
// processing it, since processing may itself push new entries.
func (q *fifo) drain() *Completion {
	head := q.head
	q.head = nil
	q.tail = nil
	return head
}
