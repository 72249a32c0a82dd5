package models

// Task is a one-off goal that is either done or not
type Task struct {
	Meta
	Completed bool `json:"completed"`
}

func (t Task) Info() Meta { return t.Meta }
func (Task) Kind() Kind   { return KindTask }
func (Task) sealed()      {}

// NewTask creates an incomplete task.
func NewTask(name, description string) (Task, error) {
	meta, err := newMeta(name, description)
	if err != nil {
		return Task{}, err
	}
	return Task{Meta: meta}, nil
}

// ToggleTask flips the completion flag of the matching task.
func ToggleTask(tasks []Task, id string) ([]Task, bool) {
	return replaceByID(tasks, id, func(t Task) Task {
		t.Completed = !t.Completed
		return t
	})
}

// EditTask applies the descriptive fields of e.
func EditTask(tasks []Task, id string, e Edit) ([]Task, bool) {
	return replaceByID(tasks, id, func(t Task) Task {
		t.Meta = t.Meta.apply(e)
		return t
	})
}

// DeleteTask removes the task with the given id.
func DeleteTask(tasks []Task, id string) ([]Task, bool) {
	return removeByID(tasks, id)
}

// FindTask looks a task up by id.
func FindTask(tasks []Task, id string) (Task, bool) {
	return findByID(tasks, id)
}

// FindTaskByName looks a task up by case-insensitive name.
func FindTaskByName(tasks []Task, name string) (Task, bool) {
	return findByName(tasks, name)
}
