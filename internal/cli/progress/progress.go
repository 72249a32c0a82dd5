package progress

import (
	"fmt"
	"math"

	"github.com/rathiarpitaoffice-hue/Growth-update/internal/cli"
	"github.com/rathiarpitaoffice-hue/Growth-update/internal/models"
	"github.com/rathiarpitaoffice-hue/Growth-update/internal/stats"
)

const barWidth = 20

type ProgressCmd struct {
	Add    ProgressAddCmd    `cmd:"" help:"Add a new progress goal."`
	List   ProgressListCmd   `cmd:"" help:"List progress goals."`
	Set    ProgressSetCmd    `cmd:"" help:"Set the current value of a goal."`
	Inc    ProgressIncCmd    `cmd:"" help:"Add one to a goal, up to its target."`
	Edit   ProgressEditCmd   `cmd:"" help:"Edit a goal's name, description, target or unit."`
	Delete ProgressDeleteCmd `cmd:"" help:"Delete a progress goal."`
}

type ProgressAddCmd struct {
	Name        string `arg:"" optional:"" help:"Goal name. Prompted for when omitted."`
	Description string `help:"Optional description." short:"d"`
	Current     string `help:"Starting value (default 0)."`
	Target      string `help:"Target value, must be positive (default 100)."`
	Unit        string `help:"Unit label, e.g. km or pages." short:"u"`
}

func (c *ProgressAddCmd) Run(ctx *cli.Context) error {
	d := models.Draft{Name: c.Name, Description: c.Description, Current: c.Current, Target: c.Target, Unit: c.Unit}
	if err := ctx.FillDraft(models.KindProgress, &d); err != nil {
		return err
	}
	goal, err := ctx.Store.AddProgress(d.Name, d.Description, d.Current, d.Target, d.Unit)
	if err != nil {
		return err
	}
	ctx.Printf("Added progress goal: %s (%s) (ID: %s)\n", goal.Name, Amount(goal), goal.ID)
	return nil
}

type ProgressListCmd struct {
	ShowIDs bool `help:"Show full goal IDs." name:"show-ids"`
}

func (c *ProgressListCmd) Run(ctx *cli.Context) error {
	list := ctx.Store.Progress()
	if len(list) == 0 {
		ctx.Println("No progress goals found.")
		return nil
	}

	ctx.Printf("Progress goals (average %d%%):\n", stats.DashboardAverage(list))
	for _, g := range list {
		id := cli.ShortID(g.ID)
		if c.ShowIDs {
			id = g.ID
		}
		ctx.Printf("  %-24s %s %4.0f%%  %s  %s\n",
			g.Name, cli.Bar(stats.ProgressBar(g), barWidth), roundPercent(g), Amount(g), cli.MutedStyle.Render(id))
	}
	return nil
}

func roundPercent(g models.ProgressGoal) float64 {
	return math.Round(stats.ProgressPercent(g))
}

// Amount formats current/target with the unit, e.g. "25/50 km".
func Amount(g models.ProgressGoal) string {
	s := fmt.Sprintf("%s/%s", cli.FormatAmount(g.Current), cli.FormatAmount(g.Target))
	if g.Unit != "" {
		s += " " + g.Unit
	}
	return s
}

type ProgressSetCmd struct {
	Goal  string `arg:"" help:"Goal name or ID."`
	Value string `arg:"" help:"New current value."`
}

func (c *ProgressSetCmd) Run(ctx *cli.Context) error {
	g, err := ctx.Resolve(models.KindProgress, c.Goal)
	if err != nil {
		return err
	}
	goal, err := ctx.Store.UpdateProgress(g.Info().ID, c.Value)
	if err != nil {
		return err
	}
	ctx.Printf("Updated %s: %s (%.0f%%)\n", goal.Name, Amount(goal), roundPercent(goal))
	return nil
}

type ProgressIncCmd struct {
	Goal string `arg:"" help:"Goal name or ID."`
}

func (c *ProgressIncCmd) Run(ctx *cli.Context) error {
	g, err := ctx.Resolve(models.KindProgress, c.Goal)
	if err != nil {
		return err
	}
	goal, err := ctx.Store.IncrementProgress(g.Info().ID)
	if err != nil {
		return err
	}
	ctx.Printf("Updated %s: %s (%.0f%%)\n", goal.Name, Amount(goal), roundPercent(goal))
	return nil
}

type ProgressEditCmd struct {
	Goal string `arg:"" help:"Goal name or ID."`
	cli.EditFlags
	Target *string `help:"New target value."`
	Unit   *string `help:"New unit label." short:"u"`
}

func (c *ProgressEditCmd) Run(ctx *cli.Context) error {
	return ctx.Edit(models.KindProgress, c.Goal, models.Edit{
		Name:        c.Name,
		Description: c.Description,
		Target:      c.Target,
		Unit:        c.Unit,
	})
}

type ProgressDeleteCmd struct {
	Goal string `arg:"" help:"Goal name or ID."`
	Yes  bool   `help:"Skip the confirmation prompt." short:"y"`
}

func (c *ProgressDeleteCmd) Run(ctx *cli.Context) error {
	return ctx.Delete(models.KindProgress, c.Goal, c.Yes)
}
