// Package authz holds the task-deletion voter: a pure decision over
// (actor, task, permission) with no side effects. The web layer consults it
// before the delete handler ever runs.
package authz

import "github.com/dkolesnikov/tasklist/internal/server/models"

type Permission string

const (
	// TaskDeleteAsAuthor allows an authenticated user to delete their own task.
	TaskDeleteAsAuthor Permission = "TASK_DELETE_AS_AUTHOR"
	// TaskDeleteWithoutAuthor allows an admin to delete an anonymous task.
	TaskDeleteWithoutAuthor Permission = "TASK_DELETE_WITHOUT_AUTHOR"
)

type Decision int

const (
	// Abstain means the permission is not this voter's concern.
	Abstain Decision = iota
	Granted
	Denied
)

// Vote decides whether actor may delete task under the given permission.
// A nil actor (unauthenticated request) is denied for both known
// permissions; unknown permissions yield Abstain so another voter can rule.
func Vote(actor *models.User, task *models.Task, permission Permission) Decision {
	switch permission {
	case TaskDeleteAsAuthor, TaskDeleteWithoutAuthor:
	default:
		return Abstain
	}

	if actor == nil {
		return Denied
	}

	switch permission {
	case TaskDeleteAsAuthor:
		if task.Author != nil && task.Author.ID == actor.ID {
			return Granted
		}
	case TaskDeleteWithoutAuthor:
		if task.Author == nil && actor.IsAdmin() {
			return Granted
		}
	}
	return Denied
}
