package dashboard

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/rathiarpitaoffice-hue/Growth-update/internal/cli"
)

type DashboardCmd struct {
	Month string `help:"Month to summarize: YYYY-MM, prev or next (default: current)." short:"m"`
}

func (c *DashboardCmd) Run(ctx *cli.Context) error {
	ym, err := cli.ParseMonth(c.Month, ctx.Today())
	if err != nil {
		return err
	}
	s := ctx.Store.Dashboard(ym)

	habits := card("Habits",
		fmt.Sprintf("%d", s.HabitCount),
		fmt.Sprintf("%d check-ins this month", s.HabitCompletions))
	tasks := card("Tasks",
		fmt.Sprintf("%d/%d", s.Tasks.Completed, s.Tasks.Total),
		fmt.Sprintf("%d%% complete", s.Tasks.Percent()))
	progress := card("Progress",
		fmt.Sprintf("%d%%", s.ProgressAverage),
		fmt.Sprintf("average of %d goals", s.ProgressCount))

	ctx.Println(cli.TitleStyle.Render(ym.Title()))
	ctx.Println(lipgloss.JoinHorizontal(lipgloss.Top, habits, " ", tasks, " ", progress))
	return nil
}

func card(title, value, caption string) string {
	body := lipgloss.JoinVertical(lipgloss.Left,
		cli.MutedStyle.Render(title),
		cli.TitleStyle.Render(value),
		caption,
	)
	return cli.CardStyle.Render(body)
}
