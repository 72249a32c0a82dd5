package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/rathiarpitaoffice-hue/Growth-update/internal/models"
)

var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)

	DoneStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	TodayStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Background(lipgloss.Color("236")).
			Bold(true)

	MutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	DangerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	WarningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Italic(true)

	CardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Padding(0, 1)
)

// Confirm shows a yes/no prompt on the terminal.
func Confirm(title, description string) (bool, error) {
	var ok bool
	err := huh.NewConfirm().
		Title(title).
		Description(description).
		Affirmative("Yes").
		Negative("No").
		Value(&ok).
		Run()
	if err != nil {
		return false, err
	}
	return ok, nil
}

// DraftForm asks for the fields of a new goal. Values already in d are the
// defaults. Progress goals also get current, target and unit inputs.
func DraftForm(kind models.Kind, d *models.Draft) error {
	fields := []huh.Field{
		huh.NewInput().
			Title("Name").
			Value(&d.Name).
			Validate(func(s string) error {
				if strings.TrimSpace(s) == "" {
					return models.ErrEmptyName
				}
				return nil
			}),
		huh.NewInput().
			Title("Description").
			Value(&d.Description),
	}
	if kind == models.KindProgress {
		fields = append(fields,
			huh.NewInput().
				Title("Current").
				Placeholder("0").
				Value(&d.Current),
			huh.NewInput().
				Title("Target").
				Placeholder("100").
				Value(&d.Target).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return nil
					}
					if v, ok := models.ParseAmount(s); !ok || v <= 0 {
						return fmt.Errorf("target must be a positive number")
					}
					return nil
				}),
			huh.NewInput().
				Title("Unit").
				Placeholder("km, pages, ...").
				Value(&d.Unit),
		)
	}
	return huh.NewForm(huh.NewGroup(fields...).Title(fmt.Sprintf("New %s", kind))).Run()
}
