package authoring

import "strings"

// PickerState distinguishes an empty candidate list from an empty filter
// result, so the picker can show "no data" versus "no results" correctly.
type PickerState int

const (
	PickerHasItems PickerState = iota
	PickerNoData               // nothing was loaded at all
	PickerNoResults            // candidates exist, the query matched none
)

// Picker is a searchable single-select list over Refs, used for the
// subject, grade level, and exam type fields.
type Picker struct {
	candidates []Ref
	query      string
}

// NewPicker creates a picker over a candidate list.
func NewPicker(candidates []Ref) *Picker {
	return &Picker{candidates: candidates}
}

// SetQuery updates the free-text filter.
func (p *Picker) SetQuery(query string) {
	p.query = query
}

// Visible returns the candidates matching the current query, case
// insensitively against name and code. An empty query returns everything.
func (p *Picker) Visible() []Ref {
	if p.query == "" {
		return p.candidates
	}
	needle := strings.ToLower(p.query)
	var out []Ref
	for _, ref := range p.candidates {
		if strings.Contains(strings.ToLower(ref.Name), needle) ||
			(ref.Code != "" && strings.Contains(strings.ToLower(ref.Code), needle)) {
			out = append(out, ref)
		}
	}
	return out
}

// State reports what the picker should render for the current query.
func (p *Picker) State() PickerState {
	if len(p.candidates) == 0 {
		return PickerNoData
	}
	if len(p.Visible()) == 0 {
		return PickerNoResults
	}
	return PickerHasItems
}

// Find returns the candidate with the given ID, if present.
func (p *Picker) Find(id string) (Ref, bool) {
	for _, ref := range p.candidates {
		if ref.ID == id {
			return ref, true
		}
	}
	return Ref{}, false
}
