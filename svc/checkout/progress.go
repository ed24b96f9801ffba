package checkout

import (
	"context"
	"errors"

	"github.com/dmitrymomot/storefront/pkg/statemachine"
)

// Progress is how far a visitor got through checkout and what they entered.
type Progress struct {
	// Reached is the furthest step unlocked. Earlier steps can be revisited.
	Reached  Step      `json:"step"`
	Customer *Customer `json:"customer,omitempty"`
	Address  *Address  `json:"address,omitempty"`
	Payment  *Payment  `json:"payment,omitempty"`
}

// NewProgress starts checkout at step one.
func NewProgress() Progress {
	return Progress{Reached: StepCustomer}
}

// CanVisit reports whether step is unlocked.
func (p Progress) CanVisit(step Step) bool {
	return step >= StepCustomer && step <= p.Reached
}

// Complete reports whether the review step is unlocked with every step's
// data present.
func (p Progress) Complete() bool {
	return p.Reached == StepReview && p.Customer != nil && p.Address != nil && p.Payment != nil
}

// submitStep is the only event of the checkout flow.
const submitStep = statemachine.StringEvent("submit")

// Name makes Step a statemachine.State.
func (s Step) Name() string { return s.String() }

type submission struct {
	progress *Progress
	form     StepForm
}

// unlocked rejects steps past the furthest reached one.
func unlocked(_ context.Context, from statemachine.State, _ statemachine.Event, data any) bool {
	sub := data.(*submission)
	return sub.progress.CanVisit(from.(Step))
}

// keep validates the step's form and keeps the result on the progress.
func keep(save func(p *Progress, f StepForm) error) statemachine.Action {
	return func(_ context.Context, _, _ statemachine.State, _ statemachine.Event, data any) error {
		sub := data.(*submission)
		if err := save(sub.progress, sub.form); err != nil {
			return errors.Join(ErrInvalidStep, err)
		}
		return nil
	}
}

func saveCustomer(p *Progress, f StepForm) error {
	c, err := f.Customer()
	if err == nil {
		p.Customer = &c
	}
	return err
}

func saveAddress(p *Progress, f StepForm) error {
	a, err := f.Address()
	if err == nil {
		p.Address = &a
	}
	return err
}

func savePayment(p *Progress, f StepForm) error {
	pay, err := f.Payment()
	if err == nil {
		p.Payment = &pay
	}
	return err
}

// flow builds the checkout machine positioned at step. The review step has
// no form and therefore no transition.
func flow(step Step) (*statemachine.Machine, error) {
	return statemachine.New(step,
		statemachine.WithTransition(StepCustomer, StepShipping, submitStep,
			statemachine.WithGuard(unlocked), statemachine.WithAction(keep(saveCustomer))),
		statemachine.WithTransition(StepShipping, StepPayment, submitStep,
			statemachine.WithGuard(unlocked), statemachine.WithAction(keep(saveAddress))),
		statemachine.WithTransition(StepPayment, StepReview, submitStep,
			statemachine.WithGuard(unlocked), statemachine.WithAction(keep(savePayment))),
	)
}

// Submit validates the form of step and unlocks the following step. Steps
// without a form return ErrUnknownStep, locked steps ErrStepLocked and
// invalid data ErrInvalidStep joined with the validator errors. On error p
// is returned unchanged.
func (p Progress) Submit(ctx context.Context, step Step, f StepForm) (Progress, error) {
	sm, err := flow(step)
	if err != nil {
		return p, err
	}

	next := p
	err = sm.Fire(ctx, submitStep, &submission{progress: &next, form: f})
	switch {
	case errors.Is(err, statemachine.ErrNoTransition):
		return p, errors.Join(ErrUnknownStep, err)
	case errors.Is(err, statemachine.ErrRejected):
		return p, errors.Join(ErrStepLocked, err)
	case err != nil:
		return p, err
	}

	if to := sm.Current().(Step); to > next.Reached {
		next.Reached = to
	}
	return next, nil
}

// Form returns the stored values as a form for revisiting a step. Card
// details are never stored, so only the holder and expiry come back.
func (p Progress) Form() StepForm {
	var f StepForm
	if c := p.Customer; c != nil {
		f.FirstName, f.LastName, f.Email, f.Phone = c.FirstName, c.LastName, c.Email, c.Phone
	}
	if a := p.Address; a != nil {
		f.Country, f.City, f.PostalCode, f.Street = a.Country, a.City, a.PostalCode, a.Street
	}
	if pay := p.Payment; pay != nil {
		f.CardHolder, f.CardExpiry = pay.Holder, pay.Expiry
	}
	return f
}
