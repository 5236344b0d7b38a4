package ui

import (
	"strings"
	"sync"
)

// ElementID names an element of the page markup. The IDs are the contract
// with the surrounding page.
type ElementID string

// Page elements read or written by the controller.
const (
	ScrapeForm     ElementID = "scrapeForm"
	ResultsSection ElementID = "resultsSection"
	Loading        ElementID = "loading"
	ErrorBanner    ElementID = "error"
	ErrorMessage   ElementID = "errorMessage"
	ReviewsList    ElementID = "reviewsList"
	ReviewCount    ElementID = "reviewCount"
	ExportButton   ElementID = "exportBtn"
	WebsiteSelect  ElementID = "websiteSelect"
	ProductURL     ElementID = "productUrl"
	MaxReviews     ElementID = "maxReviews"
)

// AllElements lists every element a Page carries.
var AllElements = []ElementID{
	ScrapeForm, ResultsSection, Loading, ErrorBanner, ErrorMessage,
	ReviewsList, ReviewCount, ExportButton, WebsiteSelect, ProductURL, MaxReviews,
}

// Element is a snapshot of one element's state.
type Element struct {
	ID       ElementID
	Visible  bool
	Disabled bool
	Text     string // text content, never interpreted as markup
	HTML     string // inner markup, already escaped by the renderer
	Value    string // form control value
}

// Page is the in-memory document the controller renders into.
// It is safe for concurrent use.
type Page struct {
	mu    sync.RWMutex
	elems map[ElementID]*Element
}

// NewPage returns a page in its initial state: every element visible except
// the loading indicator, the error banner and the results section.
func NewPage() *Page {
	p := &Page{elems: make(map[ElementID]*Element, len(AllElements))}
	for _, id := range AllElements {
		p.elems[id] = &Element{ID: id, Visible: true}
	}
	p.elems[Loading].Visible = false
	p.elems[ErrorBanner].Visible = false
	p.elems[ResultsSection].Visible = false
	return p
}

// Show makes id visible.
func (p *Page) Show(id ElementID) { p.update(id, func(e *Element) { e.Visible = true }) }

// Hide hides id.
func (p *Page) Hide(id ElementID) { p.update(id, func(e *Element) { e.Visible = false }) }

// SetDisabled enables or disables a form control.
func (p *Page) SetDisabled(id ElementID, disabled bool) {
	p.update(id, func(e *Element) { e.Disabled = disabled })
}

// SetText replaces the text content of id.
func (p *Page) SetText(id ElementID, text string) {
	p.update(id, func(e *Element) { e.Text = text; e.HTML = "" })
}

// SetValue sets the value of a form control.
func (p *Page) SetValue(id ElementID, value string) {
	p.update(id, func(e *Element) { e.Value = value })
}

// ClearChildren removes the inner markup of id.
func (p *Page) ClearChildren(id ElementID) {
	p.update(id, func(e *Element) { e.HTML = ""; e.Text = "" })
}

// AppendHTML appends pre-escaped markup to id.
func (p *Page) AppendHTML(id ElementID, markup string) {
	p.update(id, func(e *Element) { e.HTML += markup })
}

// Value returns the value of a form control.
func (p *Page) Value(id ElementID) string {
	return p.Get(id).Value
}

// Visible reports whether id is shown.
func (p *Page) Visible(id ElementID) bool {
	return p.Get(id).Visible
}

// Get returns a copy of the element's state.
func (p *Page) Get(id ElementID) Element {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if e, ok := p.elems[id]; ok {
		return *e
	}
	return Element{ID: id}
}

// Snapshot returns a consistent copy of every element.
func (p *Page) Snapshot() map[ElementID]Element {
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := make(map[ElementID]Element, len(p.elems))
	for id, e := range p.elems {
		out[id] = *e
	}
	return out
}

// RowCount returns the number of <tr> rows rendered into the reviews list.
func (p *Page) RowCount() int {
	return strings.Count(p.Get(ReviewsList).HTML, "<tr>")
}

func (p *Page) update(id ElementID, fn func(*Element)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	e, ok := p.elems[id]
	if !ok {
		e = &Element{ID: id, Visible: true}
		p.elems[id] = e
	}
	fn(e)
}
