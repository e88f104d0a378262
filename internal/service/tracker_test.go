package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sahaya/internal/model"
)

func TestTracker_Track(t *testing.T) {
	tr := NewTracker(testCatalog(t).Applications())

	tests := []struct {
		name    string
		input   string
		wantID  string
		wantErr error
	}{
		{name: "exact", input: "APP001", wantID: "APP001"},
		{name: "lower case", input: "app001", wantID: "APP001"},
		{name: "padded", input: "  App003\t", wantID: "APP003"},
		{name: "blank", input: "   ", wantErr: ErrEmptyInput},
		{name: "empty", input: "", wantErr: ErrEmptyInput},
		{name: "unknown", input: "ZZZ999", wantErr: ErrNotFound},
		{name: "prefix only", input: "APP", wantErr: ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			view, err := tr.Track(tt.input)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, view)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantID, view.ID)
		})
	}
}

func TestTracker_Track_CaseInsensitiveIdentical(t *testing.T) {
	tr := NewTracker(testCatalog(t).Applications())

	upper, err := tr.Track("APP001")
	require.NoError(t, err)
	lower, err := tr.Track("app001")
	require.NoError(t, err)

	assert.Equal(t, upper, lower)
	assert.Equal(t, "Approved", upper.StatusLabel)
	assert.Equal(t, upper.Service+" - APP001", upper.Title)
	for _, st := range upper.Stages {
		assert.Equal(t, model.StageCompleted, st.State)
	}
}

func TestTracker_Track_PendingTimeline(t *testing.T) {
	tr := NewTracker(testCatalog(t).Applications())

	view, err := tr.Track("APP002")
	require.NoError(t, err)

	assert.Equal(t, model.StatusPending, view.Status)
	assert.Equal(t, "Pending", view.StatusLabel)

	current := -1
	for i, st := range view.Stages {
		if st.State == model.StageCurrent {
			require.Equal(t, -1, current, "more than one current stage")
			current = i
		}
	}
	require.Equal(t, 2, current)
	assert.Equal(t, "Income Assessment", view.Stages[current].Name)

	for _, st := range view.Stages[:current] {
		assert.Equal(t, model.StageCompleted, st.State)
	}
	for _, st := range view.Stages[current+1:] {
		assert.Equal(t, model.StagePending, st.State)
	}
}

func TestTracker_Summary(t *testing.T) {
	tr := NewTracker(testCatalog(t).Applications())

	summary := tr.Summary()

	assert.Equal(t, 2, summary[model.StatusApproved])
	assert.Equal(t, 2, summary[model.StatusPending])
	assert.Equal(t, 1, summary[model.StatusRejected])
}

func TestCapitalize(t *testing.T) {
	assert.Equal(t, "Rejected", capitalize("rejected"))
	assert.Equal(t, "", capitalize(""))
	assert.Equal(t, "Élan", capitalize("élan"))
}
