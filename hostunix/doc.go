// Package hostunix implements ioloop.Host on top of poll(2), as exposed by
// golang.org/x/sys/unix. poll(2) takes its whole descriptor array on every
// call and returns readiness for all of it in one pass, which maps directly
// onto ioloop's own "submit the whole batch, get one round of events back"
// wait shape; an incremental API like epoll_ctl/kqueue would need a shadow
// registration table serving no purpose ioloop itself doesn't already track
// in its Batch.
package hostunix
