package viewmodel

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dkolesnikov/tasklist/internal/server/flash"
	"github.com/dkolesnikov/tasklist/internal/server/forms"
	"github.com/dkolesnikov/tasklist/internal/server/listing"
	"github.com/dkolesnikov/tasklist/internal/server/models"
)

func taskRows() []listing.TaskRow {
	return []listing.TaskRow{
		{ID: 1, Title: "T1"},
		{ID: 2, Title: "T2"},
		{ID: 3, Title: "T3"},
	}
}

func processedToggleForm(t *testing.T, rowID int64, submittedRow int64) *forms.Form {
	t.Helper()
	h := forms.NewHandler(forms.TaskToggleKind)
	req := forms.Request{
		FormName: forms.IndexedName(forms.TaskToggleLabel, submittedRow),
		Values:   url.Values{},
	}
	require.NoError(t, h.Process(req, forms.Options{Model: &models.Task{}, RowID: rowID}))
	return h.Form()
}

func TestAssembleTaskList_FreshFormsPerRow(t *testing.T) {
	view := AssembleTaskList(taskRows(), "", nil, nil)

	require.Len(t, view.ToggleForms, 3)
	require.Len(t, view.DeleteForms, 3)
	for _, id := range []int64{1, 2, 3} {
		require.False(t, view.ToggleForms[id].Submitted)
		require.Equal(t, forms.IndexedName(forms.TaskToggleLabel, id), view.ToggleForms[id].Name)
	}
}

func TestAssembleTaskList_SubmittedRowKeepsLiveState(t *testing.T) {
	// row 2 was toggled in this request
	live := processedToggleForm(t, 2, 2)
	view := AssembleTaskList(taskRows(), "", live, nil)

	require.True(t, view.ToggleForms[2].Submitted)
	require.False(t, view.ToggleForms[1].Submitted)
	require.False(t, view.ToggleForms[3].Submitted)
	// delete forms are untouched by a toggle submission
	require.False(t, view.DeleteForms[2].Submitted)
}

func TestAssembleTaskList_UnsubmittedFormIgnored(t *testing.T) {
	// built for row 2 but the request submitted a different row
	notSubmitted := processedToggleForm(t, 2, 9)
	view := AssembleTaskList(taskRows(), "", notSubmitted, nil)
	require.False(t, view.ToggleForms[2].Submitted)
}

func TestAssembleTaskList_SubmittedRowMissingFromList(t *testing.T) {
	// the acted-on row may have been deleted meanwhile; no phantom entry
	live := processedToggleForm(t, 99, 99)
	view := AssembleTaskList(taskRows(), "", live, nil)
	require.NotContains(t, view.ToggleForms, int64(99))
}

func TestAssembleTaskList_CarriesFilterAndFlashes(t *testing.T) {
	bag := flash.NewBag()
	bag.Success("task updated")

	view := AssembleTaskList(taskRows(), listing.StatusDone, nil, bag)
	require.Equal(t, listing.StatusDone, view.Filter)
	require.Len(t, view.Flashes, 1)
	require.Equal(t, flash.LevelSuccess, view.Flashes[0].Level)
}

func TestAssembleUserList_SubmittedDeleteRow(t *testing.T) {
	h := forms.NewHandler(forms.UserDeleteKind)
	req := forms.Request{FormName: forms.IndexedName(forms.UserDeleteLabel, 2), Values: url.Values{}}
	require.NoError(t, h.Process(req, forms.Options{Model: &models.User{}, RowID: 2}))

	rows := []listing.UserRow{{ID: 1, Username: "alice"}, {ID: 2, Username: "bob"}}
	view := AssembleUserList(rows, h.Form(), nil)

	require.True(t, view.DeleteForms[2].Submitted)
	require.False(t, view.DeleteForms[1].Submitted)
}

func TestAssembleTaskForm_SnapshotsErrors(t *testing.T) {
	h := forms.NewHandler(forms.TaskKind)
	req := forms.Request{
		FormName: forms.TaskFormName,
		Values:   url.Values{"task[title]": {""}, "task[content]": {"C1"}},
	}
	require.NoError(t, h.Process(req, forms.Options{Model: &models.Task{}}))

	view := AssembleTaskForm(h.Form(), 7, nil)
	require.Equal(t, int64(7), view.TaskID)
	require.True(t, view.Form.Submitted)
	require.Contains(t, view.Form.Errors, "title")
	require.Equal(t, "C1", view.Form.Values["content"])
}
