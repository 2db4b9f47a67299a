package taskview

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"pomodoro/internal/tasks"
)

// View lists tasks with completion, edit and delete controls and an add
// form. Methods must run on the fyne goroutine.
type View struct {
	list   *tasks.List
	window fyne.Window
	rows   []tasks.Task

	entries  *widget.List
	title    *widget.Entry
	priority *widget.Select
	content  fyne.CanvasObject
}

// New builds a task view over list. window parents edit and error dialogs.
func New(list *tasks.List, window fyne.Window) *View {
	view := &View{
		list:     list,
		window:   window,
		rows:     list.Tasks(),
		title:    widget.NewEntry(),
		priority: widget.NewSelect(priorityNames(), nil),
	}
	view.title.SetPlaceHolder("New task")
	view.title.OnSubmitted = func(string) { view.add() }
	view.priority.SetSelected(string(tasks.PriorityMedium))

	view.entries = widget.NewList(
		func() int { return len(view.rows) },
		newRow,
		func(id widget.ListItemID, item fyne.CanvasObject) { view.bindRow(id, item) },
	)

	addButton := widget.NewButtonWithIcon("Add", theme.ContentAddIcon(), view.add)
	form := container.NewBorder(nil, nil, nil, container.NewHBox(view.priority, addButton), view.title)
	view.content = container.NewBorder(nil, form, nil, nil, view.entries)

	list.OnChange(func() {
		fyne.Do(view.Refresh)
	})
	return view
}

// Content returns the root canvas object.
func (view *View) Content() fyne.CanvasObject {
	return view.content
}

// Refresh reloads rows from the task list.
func (view *View) Refresh() {
	view.rows = view.list.Tasks()
	view.entries.Refresh()
}

func (view *View) add() {
	priority, err := tasks.ParsePriority(view.priority.Selected)
	if err == nil {
		err = view.list.Add(view.title.Text, priority)
	}
	if err != nil {
		view.showError(err)
		return
	}
	view.title.SetText("")
}

func (view *View) edit(index int) {
	if index < 0 || index >= len(view.rows) {
		return
	}
	current := view.rows[index]

	title := widget.NewEntry()
	title.SetText(current.Title)
	priority := widget.NewSelect(priorityNames(), nil)
	priority.SetSelected(string(current.Priority))

	items := []*widget.FormItem{
		widget.NewFormItem("Title", title),
		widget.NewFormItem("Priority", priority),
	}
	dialog.ShowForm("Edit task", "Save", "Cancel", items, func(confirmed bool) {
		if !confirmed {
			return
		}
		parsed, err := tasks.ParsePriority(priority.Selected)
		if err == nil {
			err = view.list.Edit(index, title.Text, parsed)
		}
		if err != nil {
			view.showError(err)
		}
	}, view.window)
}

func (view *View) showError(err error) {
	if view.window == nil {
		return
	}
	dialog.ShowError(err, view.window)
}

type row struct {
	*fyne.Container
	done     *widget.Check
	title    *widget.Label
	priority *widget.Label
	edit     *widget.Button
	remove   *widget.Button
}

func newRow() fyne.CanvasObject {
	item := &row{
		done:     widget.NewCheck("", nil),
		title:    widget.NewLabel(""),
		priority: widget.NewLabel(""),
		edit:     widget.NewButtonWithIcon("", theme.DocumentCreateIcon(), nil),
		remove:   widget.NewButtonWithIcon("", theme.DeleteIcon(), nil),
	}
	item.title.Truncation = fyne.TextTruncateEllipsis
	item.Container = container.NewBorder(nil, nil, item.done,
		container.NewHBox(item.priority, item.edit, item.remove), item.title)
	return item
}

func (view *View) bindRow(id widget.ListItemID, object fyne.CanvasObject) {
	item, ok := object.(*row)
	if !ok || id >= len(view.rows) {
		return
	}
	task := view.rows[id]

	item.done.OnChanged = nil
	item.done.SetChecked(task.IsCompleted)
	item.done.OnChanged = func(bool) {
		if err := view.list.ToggleComplete(id); err != nil {
			view.showError(err)
		}
	}

	item.title.SetText(task.Title)
	item.title.TextStyle = fyne.TextStyle{Italic: task.IsCompleted}
	item.title.Refresh()
	item.priority.SetText(string(task.Priority))
	item.edit.OnTapped = func() { view.edit(id) }
	item.remove.OnTapped = func() {
		if err := view.list.Delete(id); err != nil {
			view.showError(err)
		}
	}
}

func priorityNames() []string {
	priorities := tasks.Priorities()
	names := make([]string, len(priorities))
	for i, priority := range priorities {
		names[i] = string(priority)
	}
	return names
}
