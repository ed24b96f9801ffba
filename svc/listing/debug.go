package listing

import (
	"log/slog"
	"slices"

	"github.com/dmitrymomot/storefront/pkg/logger"
)

// DebugState is the engine state exposed for manual inspection.
type DebugState struct {
	Filters        FilterState  `json:"filters"`
	Total          int          `json:"totalProducts"`
	Filtered       int          `json:"filteredProducts"`
	Entries        []Entry      `json:"allProducts"`
	Recomputations int          `json:"recomputations"`
	Generation     uint64       `json:"generation"`
	SearchPending  bool         `json:"searchPending"`
	Diagnostics    []Diagnostic `json:"diagnostics,omitempty"`
}

func (e *Engine) State() DebugState {
	e.mu.Lock()
	defer e.mu.Unlock()

	return DebugState{
		Filters:        e.filters,
		Total:          len(e.snapshot),
		Filtered:       len(e.results),
		Entries:        slices.Clone(e.snapshot),
		Recomputations: e.recomputes,
		Generation:     e.generation,
		SearchPending:  e.pending != nil,
		Diagnostics:    slices.Clone(e.diagnostics),
	}
}

// ForceSearch applies term right away, skipping the debounce. It is a no-op
// when the page has no search box.
func (e *Engine) ForceSearch(term string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.initialized || e.closed || !e.registry.HasWidget(WidgetSearch) {
		return
	}
	e.cancelPending()
	e.registry.SetWidgetValue(WidgetSearch, term)
	e.filters = e.filters.With(FieldSearch, term)
	e.recompute(true)
}

// ShowAll clears every filter.
func (e *Engine) ShowAll() {
	e.ResetFilters()
}

// ElementReport is the rendered state of one card.
type ElementReport struct {
	Index   int    `json:"index"`
	Title   string `json:"title"`
	Display string `json:"display"`
	Opacity string `json:"opacity"`
}

// Diagnose reports and logs the visibility of every card in document order.
func (e *Engine) Diagnose() []ElementReport {
	e.mu.Lock()
	defer e.mu.Unlock()

	reports := make([]ElementReport, 0, len(e.snapshot))
	for _, entry := range e.snapshot {
		el, ok := e.registry.Element(entry.Handle)
		if !ok {
			continue
		}
		r := ElementReport{
			Index:   entry.Index,
			Title:   entry.Title,
			Display: el.Style.Display,
			Opacity: el.Style.Opacity,
		}
		reports = append(reports, r)
		e.log.Info("listing element",
			logger.Component("listing"),
			slog.Int("index", r.Index),
			slog.String("title", r.Title),
			slog.String("display", r.Display),
			slog.String("opacity", r.Opacity),
		)
	}
	return reports
}
