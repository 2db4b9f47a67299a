package tasks

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"sync"
)

// StoreKey is the key the serialized list is kept under.
const StoreKey = "tasks"

// List is an ordered task list persisted to a Store after every mutation.
// Each mutation starts from the stored list, so writers sharing a Store do
// not overwrite each other's changes.
type List struct {
	mu       sync.Mutex
	store    Store
	logger   *slog.Logger
	tasks    []Task
	onChange []func()
}

// NewList loads the list from store. Any load failure yields an empty list.
func NewList(store Store, logger *slog.Logger) *List {
	if logger == nil {
		logger = slog.Default()
	}
	list := &List{store: store, logger: logger}
	list.tasks = list.load()
	return list
}

// OnChange registers fn to run after each successful mutation or reload.
func (list *List) OnChange(fn func()) {
	list.mu.Lock()
	defer list.mu.Unlock()
	list.onChange = append(list.onChange, fn)
}

// Tasks returns a copy of the current tasks.
func (list *List) Tasks() []Task {
	list.mu.Lock()
	defer list.mu.Unlock()
	out := make([]Task, len(list.tasks))
	copy(out, list.tasks)
	return out
}

func (list *List) Len() int {
	list.mu.Lock()
	defer list.mu.Unlock()
	return len(list.tasks)
}

// Add appends an incomplete task.
func (list *List) Add(title string, priority Priority) error {
	title, err := normalize(title, priority)
	if err != nil {
		return err
	}
	return list.mutate(func(tasks []Task) ([]Task, error) {
		return append(tasks, Task{Title: title, Priority: priority}), nil
	})
}

// ToggleComplete flips the completion flag of the task at index.
func (list *List) ToggleComplete(index int) error {
	return list.mutate(func(tasks []Task) ([]Task, error) {
		if err := checkIndex(index, len(tasks)); err != nil {
			return nil, err
		}
		tasks[index].IsCompleted = !tasks[index].IsCompleted
		return tasks, nil
	})
}

// Delete removes the task at index.
func (list *List) Delete(index int) error {
	return list.mutate(func(tasks []Task) ([]Task, error) {
		if err := checkIndex(index, len(tasks)); err != nil {
			return nil, err
		}
		return append(tasks[:index], tasks[index+1:]...), nil
	})
}

// Edit replaces the title and priority of the task at index. The completion
// flag is kept.
func (list *List) Edit(index int, title string, priority Priority) error {
	title, err := normalize(title, priority)
	if err != nil {
		return err
	}
	return list.mutate(func(tasks []Task) ([]Task, error) {
		if err := checkIndex(index, len(tasks)); err != nil {
			return nil, err
		}
		tasks[index].Title = title
		tasks[index].Priority = priority
		return tasks, nil
	})
}

// Reload discards in-memory state and reads the list from the store again.
func (list *List) Reload() {
	list.mu.Lock()
	list.tasks = list.load()
	callbacks := append([]func(){}, list.onChange...)
	list.mu.Unlock()

	for _, fn := range callbacks {
		fn()
	}
}

func (list *List) mutate(change func([]Task) ([]Task, error)) error {
	list.mu.Lock()
	working, err := list.read()
	if err != nil {
		list.logger.Warn("refresh tasks before change", "error", err)
		working = make([]Task, len(list.tasks))
		copy(working, list.tasks)
	}

	updated, err := change(working)
	if err != nil {
		list.mu.Unlock()
		return err
	}
	if err := list.save(updated); err != nil {
		list.mu.Unlock()
		return err
	}
	list.tasks = updated
	callbacks := append([]func(){}, list.onChange...)
	list.mu.Unlock()

	for _, fn := range callbacks {
		fn()
	}
	return nil
}

func (list *List) load() []Task {
	loaded, err := list.read()
	if err != nil {
		list.logger.Warn("load tasks", "error", err)
		return nil
	}
	return loaded
}

func (list *List) read() ([]Task, error) {
	raw, ok, err := list.store.Get(StoreKey)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}

	var loaded []Task
	if err := json.Unmarshal(raw, &loaded); err != nil {
		return nil, fmt.Errorf("decode tasks: %w", err)
	}
	for _, task := range loaded {
		if !task.Priority.valid() {
			return nil, fmt.Errorf("decode tasks: %w: %q", ErrUnknownPriority, task.Priority)
		}
	}
	return loaded, nil
}

func (list *List) save(tasks []Task) error {
	if tasks == nil {
		tasks = []Task{}
	}
	raw, err := json.Marshal(tasks)
	if err != nil {
		return fmt.Errorf("encode tasks: %w", err)
	}
	if err := list.store.Set(StoreKey, raw); err != nil {
		return fmt.Errorf("save tasks: %w", err)
	}
	return nil
}

func normalize(title string, priority Priority) (string, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", ErrEmptyTitle
	}
	if !priority.valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownPriority, priority)
	}
	return title, nil
}

func checkIndex(index, length int) error {
	if index < 0 || index >= length {
		return fmt.Errorf("%w: %d (have %d)", ErrIndexOutOfRange, index, length)
	}
	return nil
}
