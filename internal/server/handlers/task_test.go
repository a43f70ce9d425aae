package handlers

import (
	"context"
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dkolesnikov/tasklist/internal/server/flash"
	"github.com/dkolesnikov/tasklist/internal/server/forms"
	"github.com/dkolesnikov/tasklist/internal/server/models"
)

type fakeTaskManager struct {
	fail bool

	created *models.Task
	updated *models.Task
	toggled *models.Task
	deleted *models.Task

	calls int
}

func (f *fakeTaskManager) Create(_ context.Context, task *models.Task) bool {
	f.calls++
	if f.fail {
		return false
	}
	task.ID = 42
	f.created = task
	return true
}

func (f *fakeTaskManager) Update(_ context.Context, task *models.Task) bool {
	f.calls++
	if f.fail {
		return false
	}
	f.updated = task
	return true
}

func (f *fakeTaskManager) Toggle(_ context.Context, task *models.Task) bool {
	f.calls++
	if f.fail {
		return false
	}
	f.toggled = task
	return true
}

func (f *fakeTaskManager) Delete(_ context.Context, task *models.Task) bool {
	f.calls++
	if f.fail {
		return false
	}
	f.deleted = task
	return true
}

func taskFormRequest(title, content string) forms.Request {
	return forms.Request{
		FormName: forms.TaskFormName,
		Values: url.Values{
			"task[title]":   {title},
			"task[content]": {content},
		},
	}
}

func actorWithID(id int64) *models.User {
	u := models.NewUser("alice", "alice@example.com")
	u.ID = id
	return u
}

func levels(bag *flash.Bag) []flash.Level {
	msgs := bag.Messages()
	out := make([]flash.Level, len(msgs))
	for i, m := range msgs {
		out[i] = m.Level
	}
	return out
}

func TestTaskCreate_SetsAuthor(t *testing.T) {
	m := &fakeTaskManager{}
	h := NewTaskHandler(m)
	bag := flash.NewBag()

	_, ok, err := h.Create(context.Background(), taskFormRequest("T1", "C1"), bag, actorWithID(1))
	require.NoError(t, err)
	require.True(t, ok)

	require.NotNil(t, m.created)
	require.Equal(t, int64(1), m.created.Author.ID)
	require.Nil(t, m.created.LastEditor)
	require.False(t, m.created.IsDone)
	require.True(t, m.created.CreatedAt.Equal(m.created.UpdatedAt))
	require.Equal(t, []flash.Level{flash.LevelSuccess}, levels(bag))
}

func TestTaskCreate_AnonymousActor(t *testing.T) {
	m := &fakeTaskManager{}
	h := NewTaskHandler(m)

	_, ok, err := h.Create(context.Background(), taskFormRequest("T1", "C1"), flash.NewBag(), nil)
	require.NoError(t, err)
	require.True(t, ok)
	require.Nil(t, m.created.Author)
}

func TestTaskCreate_InvalidForm(t *testing.T) {
	m := &fakeTaskManager{}
	h := NewTaskHandler(m)
	bag := flash.NewBag()

	fh, ok, err := h.Create(context.Background(), taskFormRequest("", ""), bag, actorWithID(1))
	require.NoError(t, err)
	require.False(t, ok)
	require.Zero(t, m.calls, "invalid form must not reach the manager")
	require.Contains(t, fh.Form().Errors, "title")
	require.Equal(t, []flash.Level{flash.LevelWarning}, levels(bag))
}

func TestTaskCreate_StorageFailure(t *testing.T) {
	m := &fakeTaskManager{fail: true}
	h := NewTaskHandler(m)
	bag := flash.NewBag()

	_, ok, err := h.Create(context.Background(), taskFormRequest("T1", "C1"), bag, actorWithID(1))
	require.NoError(t, err)
	require.False(t, ok)
	require.Equal(t, []flash.Level{flash.LevelError}, levels(bag))
}

func storedTask(t *testing.T) *models.Task {
	t.Helper()
	task := models.NewTask("T1", "C1")
	task.ID = 7
	require.NoError(t, task.SetAuthor(&models.UserRef{ID: 1, Username: "alice"}))
	return task
}

func TestTaskEdit_ChangedContent(t *testing.T) {
	m := &fakeTaskManager{}
	h := NewTaskHandler(m)
	bag := flash.NewBag()

	task := storedTask(t)
	editor := actorWithID(2)
	editor.Username = "bob"

	_, ok, err := h.Edit(context.Background(), taskFormRequest("T1", "C2"), bag, task, editor)
	require.NoError(t, err)
	require.True(t, ok)

	require.NotNil(t, m.updated)
	require.Equal(t, "C2", m.updated.Content)
	require.Equal(t, int64(2), m.updated.LastEditor.ID)
	require.Equal(t, int64(1), m.updated.Author.ID, "author never changes on edit")
	require.Equal(t, []flash.Level{flash.LevelSuccess}, levels(bag))
}

func TestTaskEdit_NoOp(t *testing.T) {
	m := &fakeTaskManager{}
	h := NewTaskHandler(m)
	bag := flash.NewBag()

	task := storedTask(t)
	before := task.UpdatedAt

	_, ok, err := h.Edit(context.Background(), taskFormRequest("T1", "C1"), bag, task, actorWithID(2))
	require.NoError(t, err)
	require.False(t, ok)
	require.Zero(t, m.calls, "no-op edit must not reach the manager")
	require.True(t, task.UpdatedAt.Equal(before))
	require.Nil(t, task.LastEditor, "no-op edit must not stamp an editor")
	require.Equal(t, []flash.Level{flash.LevelInfo}, levels(bag))
}

func TestTaskEdit_InvalidForm(t *testing.T) {
	m := &fakeTaskManager{}
	h := NewTaskHandler(m)
	bag := flash.NewBag()

	task := storedTask(t)
	_, ok, err := h.Edit(context.Background(), taskFormRequest("", "C2"), bag, task, actorWithID(2))
	require.NoError(t, err)
	require.False(t, ok)
	require.Zero(t, m.calls)
	require.Equal(t, []flash.Level{flash.LevelWarning}, levels(bag))
}

func TestTaskEdit_StorageFailure(t *testing.T) {
	m := &fakeTaskManager{fail: true}
	h := NewTaskHandler(m)
	bag := flash.NewBag()

	_, ok, err := h.Edit(context.Background(), taskFormRequest("T1", "C2"), bag, storedTask(t), actorWithID(2))
	require.NoError(t, err)
	require.False(t, ok)
	require.Equal(t, []flash.Level{flash.LevelError}, levels(bag))
}

func toggleRequest(id int64) forms.Request {
	return forms.Request{
		FormName: forms.IndexedName(forms.TaskToggleLabel, id),
		Values:   url.Values{},
	}
}

func TestTaskToggle_FlipsAndStampsEditor(t *testing.T) {
	m := &fakeTaskManager{}
	h := NewTaskHandler(m)
	bag := flash.NewBag()

	task := storedTask(t)
	_, ok, err := h.Toggle(context.Background(), toggleRequest(7), bag, task, actorWithID(2))
	require.NoError(t, err)
	require.True(t, ok)
	require.True(t, m.toggled.IsDone)
	require.Equal(t, int64(2), m.toggled.LastEditor.ID)
	require.Equal(t, []flash.Level{flash.LevelSuccess}, levels(bag))
}

func TestTaskToggle_WrongRowNotSubmitted(t *testing.T) {
	m := &fakeTaskManager{}
	h := NewTaskHandler(m)

	task := storedTask(t) // id 7
	_, ok, err := h.Toggle(context.Background(), toggleRequest(8), flash.NewBag(), task, actorWithID(2))
	require.NoError(t, err)
	require.False(t, ok)
	require.False(t, task.IsDone, "non-matching row must stay untouched")
	require.Zero(t, m.calls)
}

func TestTaskToggle_StorageFailureRestoresFlag(t *testing.T) {
	m := &fakeTaskManager{fail: true}
	h := NewTaskHandler(m)
	bag := flash.NewBag()

	task := storedTask(t)
	_, ok, err := h.Toggle(context.Background(), toggleRequest(7), bag, task, actorWithID(2))
	require.NoError(t, err)
	require.False(t, ok)
	require.False(t, task.IsDone)
	require.Equal(t, []flash.Level{flash.LevelError}, levels(bag))
}

func TestTaskDelete(t *testing.T) {
	m := &fakeTaskManager{}
	h := NewTaskHandler(m)
	bag := flash.NewBag()

	task := storedTask(t)
	req := forms.Request{FormName: forms.IndexedName(forms.TaskDeleteLabel, 7), Values: url.Values{}}

	_, ok, err := h.Delete(context.Background(), req, bag, task)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, int64(7), m.deleted.ID)
	require.Equal(t, []flash.Level{flash.LevelSuccess}, levels(bag))
}
