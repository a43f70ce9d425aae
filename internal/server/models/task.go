package models

import "time"

// UserRef is the minimal user reference carried by a task. Tasks keep a
// reference, not the full account, so author rows can be listed without
// loading credentials.
type UserRef struct {
	ID       int64
	Username string
}

// Task is a single to-do item. Author is nil for anonymous (historical)
// tasks; LastEditor is nil until the first edit.
type Task struct {
	ID         int64
	CreatedAt  time.Time
	UpdatedAt  time.Time
	Title      string
	Content    string
	IsDone     bool
	Author     *UserRef
	LastEditor *UserRef
}

// NewTask returns an unsaved task with creation and update timestamps set
// to the same instant and IsDone false.
func NewTask(title, content string) *Task {
	now := time.Now().UTC()
	return &Task{
		CreatedAt: now,
		UpdatedAt: now,
		Title:     title,
		Content:   content,
	}
}

// SetUpdatedAt moves the update timestamp. A task edit can never predate
// the task's creation; equal timestamps are allowed (fresh tasks start with
// CreatedAt == UpdatedAt).
func (t *Task) SetUpdatedAt(ts time.Time) error {
	if ts.Before(t.CreatedAt) {
		return ErrInvalidOrdering
	}
	t.UpdatedAt = ts
	return nil
}

// SetAuthor assigns ownership. Assignment is one-shot: once a task has an
// author it keeps it for life, whoever asks.
func (t *Task) SetAuthor(u *UserRef) error {
	if t.Author != nil {
		return ErrOwnershipAlreadySet
	}
	t.Author = u
	return nil
}

// SetLastEditor records who touched the task last. Unlike the author this
// may change on every edit.
func (t *Task) SetLastEditor(u *UserRef) {
	t.LastEditor = u
}

// Toggle flips the done flag. It deliberately does not touch UpdatedAt;
// stamping the edit time is the persistence manager's job.
func (t *Task) Toggle() {
	t.IsDone = !t.IsDone
}

// SetDone sets the done flag to an explicit value.
func (t *Task) SetDone(done bool) {
	t.IsDone = done
}

// Clone returns a deep copy, used to snapshot a task before binding an edit
// form so the change detector can compare before and after.
func (t *Task) Clone() *Task {
	c := *t
	if t.Author != nil {
		a := *t.Author
		c.Author = &a
	}
	if t.LastEditor != nil {
		e := *t.LastEditor
		c.LastEditor = &e
	}
	return &c
}

// Equal reports full value equality, including timestamps and both user
// references.
func (t *Task) Equal(o *Task) bool {
	if t == nil || o == nil {
		return t == o
	}
	if t.ID != o.ID ||
		!t.CreatedAt.Equal(o.CreatedAt) ||
		!t.UpdatedAt.Equal(o.UpdatedAt) ||
		t.Title != o.Title ||
		t.Content != o.Content ||
		t.IsDone != o.IsDone {
		return false
	}
	return refEqual(t.Author, o.Author) && refEqual(t.LastEditor, o.LastEditor)
}

func refEqual(a, b *UserRef) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.ID == b.ID && a.Username == b.Username
}
