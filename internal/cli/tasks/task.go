package tasks

import (
	"github.com/rathiarpitaoffice-hue/Growth-update/internal/cli"
	"github.com/rathiarpitaoffice-hue/Growth-update/internal/models"
	"github.com/rathiarpitaoffice-hue/Growth-update/internal/stats"
)

type TaskCmd struct {
	Add    TaskAddCmd    `cmd:"" help:"Add a new task."`
	List   TaskListCmd   `cmd:"" help:"List tasks."`
	Toggle TaskToggleCmd `cmd:"" help:"Mark a task done or not done."`
	Edit   TaskEditCmd   `cmd:"" help:"Edit a task's name or description."`
	Delete TaskDeleteCmd `cmd:"" help:"Delete a task."`
}

type TaskAddCmd struct {
	Name        string `arg:"" optional:"" help:"Task name. Prompted for when omitted."`
	Description string `help:"Optional description." short:"d"`
}

func (c *TaskAddCmd) Run(ctx *cli.Context) error {
	d := models.Draft{Name: c.Name, Description: c.Description}
	if err := ctx.FillDraft(models.KindTask, &d); err != nil {
		return err
	}
	task, err := ctx.Store.AddTask(d.Name, d.Description)
	if err != nil {
		return err
	}
	ctx.Printf("Added task: %s (ID: %s)\n", task.Name, task.ID)
	return nil
}

type TaskListCmd struct {
	Pending bool `help:"Show only tasks that are not done."`
	ShowIDs bool `help:"Show full task IDs." name:"show-ids"`
}

func (c *TaskListCmd) Run(ctx *cli.Context) error {
	tasks := ctx.Store.Tasks()
	if len(tasks) == 0 {
		ctx.Println("No tasks found")
		return nil
	}

	summary := stats.Tasks(tasks)
	ctx.Printf("Tasks (%d/%d done, %d%%):\n", summary.Completed, summary.Total, summary.Percent())
	for _, task := range tasks {
		if c.Pending && task.Completed {
			continue
		}
		mark := "[ ]"
		name := task.Name
		if task.Completed {
			mark = cli.DoneStyle.Render("[x]")
			name = cli.MutedStyle.Render(name)
		}
		id := cli.ShortID(task.ID)
		if c.ShowIDs {
			id = task.ID
		}
		ctx.Printf("  %s %s %s\n", mark, name, cli.MutedStyle.Render("("+id+")"))
		if task.Description != "" {
			ctx.Printf("      %s\n", task.Description)
		}
	}
	return nil
}

type TaskToggleCmd struct {
	Task string `arg:"" help:"Task name or ID."`
}

func (c *TaskToggleCmd) Run(ctx *cli.Context) error {
	g, err := ctx.Resolve(models.KindTask, c.Task)
	if err != nil {
		return err
	}
	task, err := ctx.Store.ToggleTask(g.Info().ID)
	if err != nil {
		return err
	}
	if task.Completed {
		ctx.Printf("Completed task: %s\n", task.Name)
	} else {
		ctx.Printf("Reopened task: %s\n", task.Name)
	}
	return nil
}

type TaskEditCmd struct {
	Task string `arg:"" help:"Task name or ID."`
	cli.EditFlags
}

func (c *TaskEditCmd) Run(ctx *cli.Context) error {
	return ctx.Edit(models.KindTask, c.Task, models.Edit{Name: c.Name, Description: c.Description})
}

type TaskDeleteCmd struct {
	Task string `arg:"" help:"Task name or ID."`
	Yes  bool   `help:"Skip the confirmation prompt." short:"y"`
}

func (c *TaskDeleteCmd) Run(ctx *cli.Context) error {
	return ctx.Delete(models.KindTask, c.Task, c.Yes)
}
