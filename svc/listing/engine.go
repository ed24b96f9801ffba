package listing

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"sync"
	"time"

	"golang.org/x/net/html"

	"github.com/dmitrymomot/storefront/pkg/logger"
)

// Counter styles.
const (
	CounterClassAll      = "text-gray-600 text-sm mb-4"
	CounterClassFiltered = "text-blue-600 font-semibold text-sm mb-4"
)

// Engine keeps the product grid in sync with the filter controls. All
// methods serialize on one mutex; scheduled tasks take the same mutex when
// they fire.
type Engine struct {
	mu sync.Mutex

	searchDelay time.Duration
	revealStep  time.Duration
	sched       Scheduler
	log         *slog.Logger
	registry    *Registry

	initialized bool
	closed      bool
	snapshot    []Entry
	results     []Entry
	filters     FilterState
	diagnostics []Diagnostic

	generation uint64
	reveals    []Task
	searchSeq  uint64
	pending    *pendingSearch
	recomputes int
}

type pendingSearch struct {
	token  uint64
	task   Task
	ticket *Ticket
}

// New creates an engine. It does nothing until Initialize is called.
func New(opts ...Option) *Engine {
	e := defaultEngine()
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Initialize reads the rendered grid, looks up the filter controls, extracts
// the entry snapshot and shows every entry sorted by name. Missing controls
// and unreadable cards are recorded as diagnostics and never fail the call.
func (e *Engine) Initialize(markup io.Reader) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.initialized {
		return ErrAlreadyInitialized
	}

	doc, err := html.Parse(markup)
	if err != nil {
		return errors.Join(ErrParseMarkup, err)
	}

	for _, w := range RequiredWidgets {
		if findByID(doc, string(w)) == nil {
			d := Diagnostic{Index: -1, Field: string(w), Reason: "handle not found"}
			e.diagnostics = append(e.diagnostics, d)
			e.log.Warn("listing handle not found",
				logger.Component("listing"),
				slog.String("handle", string(w)),
			)
			continue
		}
		e.registry.AttachWidget(w)
	}

	entries, diags := ExtractNodes(doc)
	for i := range entries {
		entries[i].Handle = e.registry.Register(entries[i].ID)
	}
	for _, d := range diags {
		e.log.Warn("listing entry degraded",
			logger.Component("listing"),
			slog.Int("index", d.Index),
			slog.String("field", d.Field),
			slog.String("reason", d.Reason),
		)
	}
	e.diagnostics = append(e.diagnostics, diags...)

	e.snapshot = entries
	e.initialized = true
	e.syncWidgets()
	e.recompute(false)

	e.log.Debug("listing initialized",
		logger.Component("listing"),
		logger.Count(len(entries)),
	)
	return nil
}

// UpdateFilter changes one filter control. Search updates are debounced: a
// newer search cancels the pending one and only the last value is applied
// once input pauses. Other fields are applied before UpdateFilter returns.
// Updates for a control missing from the page are ignored.
func (e *Engine) UpdateFilter(field Field, value string) *Ticket {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.initialized || e.closed {
		return resolvedTicket(TicketIgnored)
	}
	widget, ok := fieldWidgets[field]
	if !ok {
		e.log.Warn("listing unknown filter field",
			logger.Component("listing"),
			slog.String("field", string(field)),
		)
		return resolvedTicket(TicketIgnored)
	}
	if !e.registry.HasWidget(widget) {
		return resolvedTicket(TicketIgnored)
	}
	e.registry.SetWidgetValue(widget, value)

	if field != FieldSearch {
		e.filters = e.filters.With(field, value)
		e.recompute(true)
		return resolvedTicket(TicketDone)
	}

	e.cancelPending()
	e.searchSeq++
	token := e.searchSeq
	ticket := newTicket()
	task := e.sched.Schedule(e.searchDelay, func() { e.commitSearch(token, value) })
	e.pending = &pendingSearch{token: token, task: task, ticket: ticket}
	return ticket
}

func (e *Engine) commitSearch(token uint64, value string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed || e.pending == nil || e.pending.token != token {
		return
	}
	p := e.pending
	e.pending = nil

	e.filters = e.filters.With(FieldSearch, value)
	e.recompute(true)
	p.ticket.resolve(TicketDone)
}

// cancelPending drops a scheduled search. Its ticket resolves as canceled
// even when the timer already fired and is waiting on the lock.
func (e *Engine) cancelPending() {
	if e.pending == nil {
		return
	}
	e.pending.task.Cancel()
	e.pending.ticket.resolve(TicketCanceled)
	e.pending = nil
}

func (e *Engine) recompute(stagger bool) {
	e.results = Recompute(e.snapshot, e.filters)
	e.recomputes++
	e.render(e.results, stagger)
}

// Render shows result on the grid with a staggered reveal.
func (e *Engine) Render(result []Entry) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.initialized || e.closed {
		return
	}
	e.results = slices.Clone(result)
	e.render(e.results, true)
}

// render hides every card and reveals the members of result in order. Reveal
// tasks carry the render generation; a task from an older render is a no-op,
// so the visible set always matches the latest call.
func (e *Engine) render(result []Entry, stagger bool) {
	e.generation++
	gen := e.generation
	e.reveals = e.reveals[:0]

	e.registry.hideAll()
	for i, entry := range result {
		h := entry.Handle
		if !stagger {
			e.registry.setStyle(h, visibleStyle)
			continue
		}
		e.reveals = append(e.reveals, e.sched.Schedule(time.Duration(i)*e.revealStep, func() {
			e.reveal(gen, h)
		}))
	}

	if e.registry.HasWidget(WidgetGrid) {
		e.registry.setCounter(counterFor(len(result), len(e.snapshot)))
		e.registry.setEmptyState(len(result) == 0)
	}
}

func (e *Engine) reveal(gen uint64, h Handle) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed || gen != e.generation {
		return
	}
	e.registry.setStyle(h, visibleStyle)
}

func counterFor(count, total int) Counter {
	if count == total {
		return Counter{Text: fmt.Sprintf("Showing all %d products", total), Class: CounterClassAll}
	}
	return Counter{Text: fmt.Sprintf("%d of %d products found", count, total), Class: CounterClassFiltered}
}

// ResetFilters restores the default filters, clears the controls and shows
// the whole snapshot sorted by name. A pending search is canceled.
func (e *Engine) ResetFilters() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.initialized || e.closed {
		return
	}
	e.cancelPending()
	e.filters = DefaultFilters()
	e.syncWidgets()
	e.recompute(false)
}

func (e *Engine) syncWidgets() {
	e.registry.SetWidgetValue(WidgetSearch, e.filters.Search)
	e.registry.SetWidgetValue(WidgetCategory, e.filters.Category)
	e.registry.SetWidgetValue(WidgetPrice, e.filters.PriceRange)
	e.registry.SetWidgetValue(WidgetSort, e.filters.SortBy)
}

// Close cancels scheduled work. Later updates are ignored.
func (e *Engine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return
	}
	e.closed = true
	e.cancelPending()
	for _, t := range e.reveals {
		t.Cancel()
	}
	e.reveals = nil
}

// Registry returns the presentation state the engine renders into.
func (e *Engine) Registry() *Registry {
	return e.registry
}

// Snapshot returns a copy of the extracted entries in document order.
func (e *Engine) Snapshot() []Entry {
	e.mu.Lock()
	defer e.mu.Unlock()
	return slices.Clone(e.snapshot)
}

// Diagnostics returns everything recorded during Initialize.
func (e *Engine) Diagnostics() []Diagnostic {
	e.mu.Lock()
	defer e.mu.Unlock()
	return slices.Clone(e.diagnostics)
}

// View is what the grid should show for the current filters.
type View struct {
	Filters    FilterState   `json:"filters"`
	Results    []Entry       `json:"results"`
	Total      int           `json:"total"`
	Counter    Counter       `json:"counter"`
	Empty      bool          `json:"empty"`
	RevealStep time.Duration `json:"revealStep"`
	Generation uint64        `json:"generation"`
}

func (e *Engine) View() View {
	e.mu.Lock()
	defer e.mu.Unlock()

	return View{
		Filters:    e.filters,
		Results:    slices.Clone(e.results),
		Total:      len(e.snapshot),
		Counter:    counterFor(len(e.results), len(e.snapshot)),
		Empty:      len(e.results) == 0,
		RevealStep: e.revealStep,
		Generation: e.generation,
	}
}
