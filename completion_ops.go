package ioloop

import "unsafe"

// userdataOf encodes a Completion's address as the opaque uint64 handle
// carried by its Subscription, so the matching Event can be demultiplexed
// back to it in O(1) without a lookup table. completionFromUserdata reverses
// this. The Completion is never moved by this package while it might be
// batched, so the round trip is sound.
func userdataOf(c *Completion) uint64 {
	return uint64(uintptr(unsafe.Pointer(c)))
}

// completionFromUserdata reverses userdataOf.
func completionFromUserdata(u uint64) *Completion {
	if u == 0 {
		return nil
	}
	return (*Completion)(unsafe.Pointer(uintptr(u)))
}

// subscriptionFor builds the batch Subscription for a Completion whose
// Operation requires fd readiness: read-readiness for accept/read/recv,
// write-readiness for write/send.
func subscriptionFor(c *Completion) Subscription {
	kind := SubRead
	switch c.Op.Kind {
	case OpWrite, OpSend:
		kind = SubWrite
	}
	return Subscription{UserData: userdataOf(c), FD: c.Op.FD, Kind: kind}
}

// perform executes the blocking syscall for a ready accept/read/write/recv/
// send Completion and builds its Result. waitErr is whatever error the Host
// reported for this Completion's Subscription from Wait itself; when
// non-nil, it is surfaced directly as Result.Err and the syscall is skipped.
func (c *Completion) perform(host Host, waitErr error) Result {
	res := Result{Kind: c.Op.Kind}
	if waitErr != nil {
		res.Err = waitErr
		return res
	}
	switch c.Op.Kind {
	case OpAccept:
		fd, err := host.Accept(c.Op.FD)
		res.AcceptFD = fd
		res.Err = err

	case OpRead:
		n, err := host.Read(c.Op.FD, c.Op.Buffer.Bytes())
		res.N = n
		res.Err = err
		c.Op.Buffer.Truncate(n)
		if err == nil && n == 0 {
			res.Err = ErrEOF
		}

	case OpRecv:
		n, err := host.Recv(c.Op.FD, c.Op.Buffer.Bytes())
		res.N = n
		res.Err = err
		c.Op.Buffer.Truncate(n)
		if err == nil && n == 0 {
			res.Err = ErrEOF
		}

	case OpWrite:
		n, err := host.Write(c.Op.FD, c.Op.Buffer.Bytes())
		res.N = n
		res.Err = err

	case OpSend:
		n, err := host.Send(c.Op.FD, c.Op.Buffer.Bytes())
		res.N = n
		res.Err = err
	}
	return res
}
