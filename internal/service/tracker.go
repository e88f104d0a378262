package service

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"sahaya/internal/model"
)

// StageView is a timeline stage annotated with its visual state.
type StageView struct {
	Name    string           `json:"name"`
	Date    string           `json:"date,omitempty"`
	Remarks string           `json:"remarks,omitempty"`
	State   model.StageState `json:"state"`
}

// ApplicationView is the tracker result for one application.
type ApplicationView struct {
	ID          string       `json:"id"`
	Service     string       `json:"service"`
	Title       string       `json:"title"`
	Status      model.Status `json:"status"`
	StatusLabel string       `json:"statusLabel"`
	Stages      []StageView  `json:"stages"`
}

// TrackerService resolves application ids against the static dataset.
type TrackerService interface {
	Track(rawID string) (*ApplicationView, error)
	Summary() map[model.Status]int
}

// Tracker is a pure lookup over an immutable application dataset.
type Tracker struct {
	apps []model.Application
}

var _ TrackerService = (*Tracker)(nil)

func NewTracker(apps []model.Application) *Tracker {
	cp := make([]model.Application, len(apps))
	copy(cp, apps)
	return &Tracker{apps: cp}
}

// Track matches the trimmed id case-insensitively and exactly.
func (t *Tracker) Track(rawID string) (*ApplicationView, error) {
	id := strings.TrimSpace(rawID)
	if id == "" {
		return nil, ErrEmptyInput
	}

	for _, app := range t.apps {
		if !strings.EqualFold(app.ID, id) {
			continue
		}
		stages := make([]StageView, len(app.Stages))
		for i, st := range app.Stages {
			stages[i] = StageView{
				Name:    st.Name,
				Date:    st.Date,
				Remarks: st.Remarks,
				State:   st.State(),
			}
		}
		return &ApplicationView{
			ID:          app.ID,
			Service:     app.Service,
			Title:       app.Service + " - " + app.ID,
			Status:      app.Status,
			StatusLabel: capitalize(string(app.Status)),
			Stages:      stages,
		}, nil
	}
	return nil, ErrNotFound
}

// Summary counts applications per status.
func (t *Tracker) Summary() map[model.Status]int {
	out := make(map[model.Status]int)
	for _, app := range t.apps {
		out[app.Status]++
	}
	return out
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
