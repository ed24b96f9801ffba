package listing

import "sync"

// Handle indexes an element in a Registry.
type Handle int

// Widget identifies a page control by its element id.
type Widget string

const (
	WidgetSearch   Widget = "search-input"
	WidgetCategory Widget = "category-filter"
	WidgetPrice    Widget = "price-filter"
	WidgetSort     Widget = "sort-filter"
	WidgetGrid     Widget = "products-grid"
)

// RequiredWidgets lists the controls Initialize looks up.
var RequiredWidgets = []Widget{WidgetSearch, WidgetCategory, WidgetPrice, WidgetSort, WidgetGrid}

var fieldWidgets = map[Field]Widget{
	FieldSearch:     WidgetSearch,
	FieldCategory:   WidgetCategory,
	FieldPriceRange: WidgetPrice,
	FieldSortBy:     WidgetSort,
}

// Style is the inline styling toggled on a product card.
type Style struct {
	Display    string `json:"display"`
	Opacity    string `json:"opacity"`
	Transform  string `json:"transform,omitempty"`
	Transition string `json:"transition,omitempty"`
}

var (
	hiddenStyle  = Style{Display: "none", Opacity: "0"}
	visibleStyle = Style{Display: "block", Opacity: "1", Transform: "scale(1)", Transition: "all 0.3s ease"}
)

// Visible reports whether the card is shown.
func (s Style) Visible() bool {
	return s.Display != "none"
}

// Element is the presentation state of one product card.
type Element struct {
	ID    string `json:"id"`
	Style Style  `json:"style"`
}

// Counter is the result counter above the grid.
type Counter struct {
	Text  string `json:"text"`
	Class string `json:"class"`
}

// Registry owns the presentation state of the grid: card elements, the
// counter, the empty-state panel and the filter control values. It is safe
// for concurrent use.
type Registry struct {
	mu       sync.RWMutex
	elements []Element
	widgets  map[Widget]string
	counter  *Counter
	empty    bool
}

func NewRegistry() *Registry {
	return &Registry{widgets: make(map[Widget]string)}
}

// Register adds a card element and returns its handle.
func (r *Registry) Register(id string) Handle {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.elements = append(r.elements, Element{ID: id, Style: visibleStyle})
	return Handle(len(r.elements) - 1)
}

// AttachWidget marks a control as present on the page.
func (r *Registry) AttachWidget(w Widget) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.widgets[w]; !ok {
		r.widgets[w] = ""
	}
}

// HasWidget reports whether the control was found on the page.
func (r *Registry) HasWidget(w Widget) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.widgets[w]
	return ok
}

// SetWidgetValue updates an attached control. Missing controls are ignored.
func (r *Registry) SetWidgetValue(w Widget, value string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.widgets[w]; ok {
		r.widgets[w] = value
	}
}

func (r *Registry) WidgetValue(w Widget) string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.widgets[w]
}

// Element returns the element behind h.
func (r *Registry) Element(h Handle) (Element, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if h < 0 || int(h) >= len(r.elements) {
		return Element{}, false
	}
	return r.elements[h], true
}

// Elements returns a copy of all card elements in registration order.
func (r *Registry) Elements() []Element {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Element, len(r.elements))
	copy(out, r.elements)
	return out
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.elements)
}

func (r *Registry) setStyle(h Handle, s Style) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if h >= 0 && int(h) < len(r.elements) {
		r.elements[h].Style = s
	}
}

func (r *Registry) hideAll() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.elements {
		r.elements[i].Style = hiddenStyle
	}
}

// Counter returns the result counter. It is nil until the first render on
// a page that has a grid.
func (r *Registry) Counter() *Counter {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.counter == nil {
		return nil
	}
	c := *r.counter
	return &c
}

func (r *Registry) setCounter(c Counter) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.counter = &c
}

// EmptyStateVisible reports whether the no-results panel is shown.
func (r *Registry) EmptyStateVisible() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.empty
}

func (r *Registry) setEmptyState(visible bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.empty = visible
}
