package tasks

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrIndexOutOfRange is returned when an index does not address a task.
	ErrIndexOutOfRange = errors.New("task index out of range")
	// ErrEmptyTitle is returned when a title is blank after trimming.
	ErrEmptyTitle = errors.New("task title is empty")
	// ErrUnknownPriority is returned for a priority name that is not recognized.
	ErrUnknownPriority = errors.New("unknown priority")
)

// Priority ranks a task.
type Priority string

const (
	PriorityLow    Priority = "Low"
	PriorityMedium Priority = "Medium"
	PriorityHigh   Priority = "High"
)

// Priorities lists every priority from lowest to highest.
func Priorities() []Priority {
	return []Priority{PriorityLow, PriorityMedium, PriorityHigh}
}

// ParsePriority matches a priority name case-insensitively.
func ParsePriority(name string) (Priority, error) {
	for _, priority := range Priorities() {
		if strings.EqualFold(strings.TrimSpace(name), string(priority)) {
			return priority, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownPriority, name)
}

// Next returns the following priority, wrapping from High to Low.
func (priority Priority) Next() Priority {
	switch priority {
	case PriorityLow:
		return PriorityMedium
	case PriorityMedium:
		return PriorityHigh
	default:
		return PriorityLow
	}
}

func (priority Priority) valid() bool {
	switch priority {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Task is a single to-do entry.
type Task struct {
	Title       string   `json:"title"`
	Priority    Priority `json:"priority"`
	IsCompleted bool     `json:"isCompleted"`
}

// Store is the persistence the task list needs: one value per key.
type Store interface {
	Get(key string) ([]byte, bool, error)
	Set(key string, value []byte) error
}
