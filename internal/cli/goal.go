package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/rathiarpitaoffice-hue/Growth-update/internal/datekey"
	"github.com/rathiarpitaoffice-hue/Growth-update/internal/models"
	"github.com/rathiarpitaoffice-hue/Growth-update/internal/store"
)

// EditFlags are the descriptive fields shared by every edit command.
type EditFlags struct {
	Name        *string `help:"New name."`
	Description *string `help:"New description." short:"d"`
}

// FillDraft readies d for an add command. An empty name opens the form, and
// an existing goal with the same name is pointed out without blocking the add.
func (c *Context) FillDraft(kind models.Kind, d *models.Draft) error {
	if strings.TrimSpace(d.Name) == "" {
		if err := c.Form(kind, d); err != nil {
			return err
		}
	}
	if g, ok := c.Store.FindByName(kind, strings.TrimSpace(d.Name)); ok {
		meta := g.Info()
		c.Println(WarningStyle.Render(fmt.Sprintf("Note: a %s named %q already exists (ID: %s)", kind, meta.Name, ShortID(meta.ID))))
	}
	return nil
}

// Edit applies e to the goal ref points at and prints the result.
func (c *Context) Edit(kind models.Kind, ref string, e models.Edit) error {
	g, err := c.Resolve(kind, ref)
	if err != nil {
		return err
	}
	if e.Name != nil && strings.TrimSpace(*e.Name) == "" {
		return models.ErrEmptyName
	}
	updated, err := c.Store.Edit(kind, g.Info().ID, e)
	if err != nil {
		return fmt.Errorf("failed to edit %s: %w", kind, err)
	}
	if updated == nil {
		return fmt.Errorf("%w: %s %q", store.ErrNotFound, kind, ref)
	}
	c.Printf("Updated %s: %s\n", kind, updated.Info().Name)
	return nil
}

// Delete removes the goal ref points at after asking for confirmation,
// unless yes is set. A backup is taken first.
func (c *Context) Delete(kind models.Kind, ref string, yes bool) error {
	g, err := c.Resolve(kind, ref)
	if err != nil {
		return err
	}
	meta := g.Info()

	if !yes {
		ok, err := c.Confirm(
			fmt.Sprintf("Delete %s %q?", kind, meta.Name),
			"This cannot be undone, but a backup is taken first.",
		)
		if err != nil {
			return err
		}
		if !ok {
			c.Println("Delete cancelled.")
			return nil
		}
	}

	c.PerformAutomaticBackup()
	if err := c.Store.Delete(kind, meta.ID); err != nil {
		return fmt.Errorf("failed to delete %s: %w", kind, err)
	}
	c.Printf("Deleted %s: %s (ID: %s)\n", kind, meta.Name, meta.ID)
	return nil
}

// ParseMonth resolves a month selector relative to now: "" is the current
// month, "prev" and "next" step one month, anything else must be YYYY-MM.
func ParseMonth(s string, now time.Time) (datekey.YearMonth, error) {
	current := datekey.Of(now)
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "current", "this":
		return current, nil
	case "prev", "previous", "last":
		return current.Prev(), nil
	case "next":
		return current.Next(), nil
	}
	return datekey.ParseYearMonth(s)
}

// ParseDay resolves a --date flag: empty means today.
func ParseDay(s string, now time.Time) (time.Time, error) {
	if s == "" {
		return now, nil
	}
	return datekey.Parse(s)
}

// Bar draws a progress bar of width cells for a percentage in [0, 100].
func Bar(percent, width int) string {
	filled := percent * width / 100
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	return DoneStyle.Render(strings.Repeat("█", filled)) + MutedStyle.Render(strings.Repeat("░", width-filled))
}

// ShortID returns the first block of a uuid for compact listings.
func ShortID(id string) string {
	if i := strings.IndexByte(id, '-'); i > 0 {
		return id[:i]
	}
	return id
}

// FormatAmount prints whole numbers without a decimal part.
func FormatAmount(v float64) string {
	return fmt.Sprintf("%g", v)
}
