// Package listing implements the catalog filter engine behind the storefront
// product grid.
//
// An Engine is built once per browsing session. Initialize parses the rendered
// grid markup, extracts an immutable snapshot of catalog entries and registers
// one presentation element per entry in a Registry. Filter updates recompute a
// derived view with the pure Recompute function and render it back into the
// registry: every element is hidden, then the matching ones are revealed in
// order with a staggered delay. The search field is debounced.
//
// All deferred work goes through a Scheduler. Production code uses
// NewTimerScheduler; tests drive a ManualScheduler so debounce and reveal
// timing are deterministic.
//
//	eng := listing.New(listing.WithLogger(log))
//	if err := eng.Initialize(bytes.NewReader(markup)); err != nil {
//	    return err
//	}
//	ticket := eng.UpdateFilter(listing.FieldSearch, "zelda")
//	if status, _ := ticket.Wait(ctx); status == listing.TicketDone {
//	    view := eng.View()
//	    // render view.Results
//	}
package listing
