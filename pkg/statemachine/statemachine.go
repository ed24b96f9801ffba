// Package statemachine is a small finite state machine with guarded
// transitions and actions.
//
// Machines are cheap to build, so flows whose state lives outside the
// process (a cookie, a document) construct one per request starting at the
// restored state:
//
//	sm, err := statemachine.New(current,
//		statemachine.WithTransition(Cart, Paid, Pay,
//			statemachine.WithGuard(hasItems),
//			statemachine.WithAction(charge),
//		),
//	)
//	err = sm.Fire(ctx, Pay, order)
package statemachine

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// State is a node of the machine.
type State interface {
	Name() string
}

// Event triggers a transition.
type Event interface {
	Name() string
}

// StringState is a State named by its value.
type StringState string

func (s StringState) Name() string { return string(s) }

// StringEvent is an Event named by its value.
type StringEvent string

func (e StringEvent) Name() string { return string(e) }

// Guard decides whether a transition may run for data.
type Guard func(ctx context.Context, from State, event Event, data any) bool

// Action runs before the state changes. An error aborts the transition.
type Action func(ctx context.Context, from, to State, event Event, data any) error

var (
	ErrInvalidTransition = errors.New("statemachine: from, to and event are required")
	ErrInvalidEvent      = errors.New("statemachine: event is required")
	ErrNoTransition      = errors.New("statemachine: no transition for event")
	ErrRejected          = errors.New("statemachine: transition rejected by guards")
)

type transition struct {
	to      State
	guards  []Guard
	actions []Action
}

// Machine holds the current state and the transition table keyed by
// state name and event name. It is safe for concurrent use.
type Machine struct {
	mu          sync.RWMutex
	initial     State
	current     State
	transitions map[string]map[string][]transition
}

// Option configures a Machine.
type Option func(*Machine) error

// TransitionOption configures one transition.
type TransitionOption func(*transition)

// New returns a machine in state initial.
func New(initial State, opts ...Option) (*Machine, error) {
	if initial == nil {
		return nil, fmt.Errorf("%w: initial state is nil", ErrInvalidTransition)
	}
	m := &Machine{
		initial:     initial,
		current:     initial,
		transitions: make(map[string]map[string][]transition),
	}
	for _, opt := range opts {
		if err := opt(m); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// MustNew is New that panics on error. Meant for package-level tables.
func MustNew(initial State, opts ...Option) *Machine {
	m, err := New(initial, opts...)
	if err != nil {
		panic(err)
	}
	return m
}

// WithTransition adds from -> to on event. Several transitions may share
// from and event; the first whose guards pass wins.
func WithTransition(from, to State, event Event, opts ...TransitionOption) Option {
	return func(m *Machine) error {
		if from == nil || to == nil || event == nil {
			return ErrInvalidTransition
		}
		t := transition{to: to}
		for _, opt := range opts {
			opt(&t)
		}
		byEvent, ok := m.transitions[from.Name()]
		if !ok {
			byEvent = make(map[string][]transition)
			m.transitions[from.Name()] = byEvent
		}
		byEvent[event.Name()] = append(byEvent[event.Name()], t)
		return nil
	}
}

// WithGuard appends a guard. Nil guards are ignored.
func WithGuard(g Guard) TransitionOption {
	return func(t *transition) {
		if g != nil {
			t.guards = append(t.guards, g)
		}
	}
}

// WithAction appends an action. Nil actions are ignored.
func WithAction(a Action) TransitionOption {
	return func(t *transition) {
		if a != nil {
			t.actions = append(t.actions, a)
		}
	}
}

// Current returns the current state.
func (m *Machine) Current() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

// Fire runs the first transition for event whose guards pass, executes its
// actions in order and moves to its target. Errors from actions are
// returned wrapped and leave the state unchanged.
func (m *Machine) Fire(ctx context.Context, event Event, data any) error {
	if event == nil {
		return ErrInvalidEvent
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	t, err := m.pick(ctx, event, data)
	if err != nil {
		return err
	}
	for _, action := range t.actions {
		if err := action(ctx, m.current, t.to, event, data); err != nil {
			return fmt.Errorf("statemachine: %s on %s: %w", m.current.Name(), event.Name(), err)
		}
	}
	m.current = t.to
	return nil
}

// CanFire reports whether Fire would find a transition. Actions are not run.
func (m *Machine) CanFire(ctx context.Context, event Event, data any) bool {
	if event == nil {
		return false
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, err := m.pick(ctx, event, data)
	return err == nil
}

// Reset returns to the initial state.
func (m *Machine) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.current = m.initial
}

func (m *Machine) pick(ctx context.Context, event Event, data any) (transition, error) {
	candidates := m.transitions[m.current.Name()][event.Name()]
	if len(candidates) == 0 {
		return transition{}, fmt.Errorf("%w: %s on %s", ErrNoTransition, m.current.Name(), event.Name())
	}
	for _, t := range candidates {
		if passes(ctx, t.guards, m.current, event, data) {
			return t, nil
		}
	}
	return transition{}, fmt.Errorf("%w: %s on %s", ErrRejected, m.current.Name(), event.Name())
}

func passes(ctx context.Context, guards []Guard, from State, event Event, data any) bool {
	for _, g := range guards {
		if !g(ctx, from, event, data) {
			return false
		}
	}
	return true
}
