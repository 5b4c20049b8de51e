package model

import "time"

// Task is a single to-do item tracked in the local task file.
type Task struct {
	// Title is the user-supplied text of the task. It is not validated.
	Title string `json:"title"`

	// Completed reports whether the task has been marked done.
	// It only ever moves from false to true.
	Completed bool `json:"completed"`

	// CreatedAt is set once, in UTC, when the task is constructed.
	CreatedAt time.Time `json:"created_at"`
}

// NewTask returns an open task with the given title, created now.
func NewTask(title string) Task {
	return Task{
		Title:     title,
		Completed: false,
		CreatedAt: time.Now().UTC(),
	}
}
