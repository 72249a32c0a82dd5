package habits

import (
	"fmt"
	"strings"

	"github.com/rathiarpitaoffice-hue/Growth-update/internal/cli"
	"github.com/rathiarpitaoffice-hue/Growth-update/internal/datekey"
	"github.com/rathiarpitaoffice-hue/Growth-update/internal/models"
	"github.com/rathiarpitaoffice-hue/Growth-update/internal/stats"
)

type HabitCmd struct {
	Add    HabitAddCmd    `cmd:"" help:"Add a new habit."`
	List   HabitListCmd   `cmd:"" help:"List habits with this month's completion."`
	Toggle HabitToggleCmd `cmd:"" help:"Mark or unmark a habit for a day."`
	Show   HabitShowCmd   `cmd:"" help:"Show a habit's month calendar."`
	Edit   HabitEditCmd   `cmd:"" help:"Edit a habit's name or description."`
	Delete HabitDeleteCmd `cmd:"" help:"Delete a habit."`
}

type HabitAddCmd struct {
	Name        string `arg:"" optional:"" help:"Habit name. Prompted for when omitted."`
	Description string `help:"Optional description." short:"d"`
}

func (c *HabitAddCmd) Run(ctx *cli.Context) error {
	d := models.Draft{Name: c.Name, Description: c.Description}
	if err := ctx.FillDraft(models.KindHabit, &d); err != nil {
		return err
	}
	habit, err := ctx.Store.AddHabit(d.Name, d.Description)
	if err != nil {
		return err
	}
	ctx.Printf("Added habit: %s (ID: %s)\n", habit.Name, habit.ID)
	return nil
}

type HabitListCmd struct {
	Month   string `help:"Month to summarize: YYYY-MM, prev or next (default: current)." short:"m"`
	ShowIDs bool   `help:"Show full habit IDs." name:"show-ids"`
}

func (c *HabitListCmd) Run(ctx *cli.Context) error {
	ym, err := cli.ParseMonth(c.Month, ctx.Today())
	if err != nil {
		return err
	}

	habits := ctx.Store.Habits()
	if len(habits) == 0 {
		ctx.Println("No habits found.")
		return nil
	}

	ctx.Println(cli.TitleStyle.Render("Habits for " + ym.Title()))
	for _, h := range habits {
		ms := stats.HabitMonth(h, ym)
		id := cli.ShortID(h.ID)
		if c.ShowIDs {
			id = h.ID
		}
		line := fmt.Sprintf("  %-24s %2d/%-2d %3d%%  streak %d  %s",
			h.Name, ms.Completed, ms.Total, ms.Percent(), stats.Streak(h, ctx.Today()), cli.MutedStyle.Render(id))
		ctx.Println(line)
	}
	return nil
}

type HabitToggleCmd struct {
	Habit string `arg:"" help:"Habit name or ID."`
	Date  string `help:"Date in YYYY-MM-DD format (default: today)."`
}

func (c *HabitToggleCmd) Run(ctx *cli.Context) error {
	day, err := cli.ParseDay(c.Date, ctx.Today())
	if err != nil {
		return err
	}
	g, err := ctx.Resolve(models.KindHabit, c.Habit)
	if err != nil {
		return err
	}

	habit, err := ctx.Store.ToggleHabitDay(g.Info().ID, day)
	if err != nil {
		return err
	}

	key := datekey.Key(day)
	if habit.CompletedDates.Has(key) {
		ctx.Printf("Marked habit %q for %s\n", habit.Name, key)
	} else {
		ctx.Printf("Unmarked habit %q for %s\n", habit.Name, key)
	}
	return nil
}

type HabitShowCmd struct {
	Habit string `arg:"" help:"Habit name or ID."`
	Month string `help:"Month to show: YYYY-MM, prev or next (default: current)." short:"m"`
}

func (c *HabitShowCmd) Run(ctx *cli.Context) error {
	ym, err := cli.ParseMonth(c.Month, ctx.Today())
	if err != nil {
		return err
	}
	g, err := ctx.Resolve(models.KindHabit, c.Habit)
	if err != nil {
		return err
	}
	habit := g.(models.Habit)

	ctx.Println(cli.TitleStyle.Render(habit.Name))
	if habit.Description != "" {
		ctx.Println(cli.MutedStyle.Render(habit.Description))
	}
	ctx.Println()
	ctx.Print(Calendar(habit, ym, datekey.Key(ctx.Today())))

	ms, err := ctx.Store.HabitMonth(habit.ID, ym)
	if err != nil {
		return err
	}
	ctx.Printf("\n%d/%d days (%d%%)  streak %d\n", ms.Completed, ms.Total, ms.Percent(), stats.Streak(habit, ctx.Today()))
	return nil
}

// Calendar renders ym as a Sunday-first grid. Completed days are marked and
// the day whose key equals today is highlighted.
func Calendar(h models.Habit, ym datekey.YearMonth, today string) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("%20s\n", ym.Title()))
	b.WriteString(" Su  Mo  Tu  We  Th  Fr  Sa\n")
	for _, week := range stats.Weeks(stats.MonthGrid(ym)) {
		for _, cell := range week {
			if cell.Blank {
				b.WriteString("    ")
				continue
			}
			key := datekey.Key(ym.Day(cell.Day))
			text := fmt.Sprintf("%3d", cell.Day)
			style := cli.MutedStyle
			if h.CompletedDates.Has(key) {
				text = fmt.Sprintf("%2d✓", cell.Day)
				style = cli.DoneStyle
			}
			if key == today {
				style = cli.TodayStyle
			}
			b.WriteString(style.Render(text) + " ")
		}
		b.WriteString("\n")
	}
	return b.String()
}

type HabitEditCmd struct {
	Habit string `arg:"" help:"Habit name or ID."`
	cli.EditFlags
}

func (c *HabitEditCmd) Run(ctx *cli.Context) error {
	return ctx.Edit(models.KindHabit, c.Habit, models.Edit{Name: c.Name, Description: c.Description})
}

type HabitDeleteCmd struct {
	Habit string `arg:"" help:"Habit name or ID."`
	Yes   bool   `help:"Skip the confirmation prompt." short:"y"`
}

func (c *HabitDeleteCmd) Run(ctx *cli.Context) error {
	return ctx.Delete(models.KindHabit, c.Habit, c.Yes)
}
