package listing

import (
	"context"
	"sync"
)

// TicketStatus is the outcome of a filter update.
type TicketStatus int

const (
	TicketPending TicketStatus = iota
	// TicketDone means the update was committed and the grid re-rendered.
	TicketDone
	// TicketCanceled means a newer search keystroke superseded the update.
	TicketCanceled
	// TicketIgnored means the update had nowhere to go: unknown field,
	// missing control or engine not initialized.
	TicketIgnored
)

func (s TicketStatus) String() string {
	switch s {
	case TicketDone:
		return "done"
	case TicketCanceled:
		return "canceled"
	case TicketIgnored:
		return "ignored"
	default:
		return "pending"
	}
}

// Ticket resolves once a filter update ran or was superseded.
type Ticket struct {
	mu     sync.Mutex
	status TicketStatus
	done   chan struct{}
}

func newTicket() *Ticket {
	return &Ticket{done: make(chan struct{})}
}

func resolvedTicket(status TicketStatus) *Ticket {
	t := newTicket()
	t.resolve(status)
	return t
}

// Done is closed when the ticket resolves.
func (t *Ticket) Done() <-chan struct{} {
	return t.done
}

// Status returns the current status without blocking.
func (t *Ticket) Status() TicketStatus {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.status
}

// Wait blocks until the ticket resolves or ctx is done.
func (t *Ticket) Wait(ctx context.Context) (TicketStatus, error) {
	select {
	case <-t.done:
		return t.Status(), nil
	case <-ctx.Done():
		return TicketPending, ctx.Err()
	}
}

// resolve sets the final status once; later calls are ignored.
func (t *Ticket) resolve(status TicketStatus) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.status != TicketPending {
		return
	}
	t.status = status
	close(t.done)
}
