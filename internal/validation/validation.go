package validation

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/rathiarpitaoffice-hue/Growth-update/internal/constants"
	"github.com/rathiarpitaoffice-hue/Growth-update/internal/datekey"
	"github.com/rathiarpitaoffice-hue/Growth-update/internal/models"
)

// ConflictType represents the type of validation conflict
type ConflictType string

const (
	ConflictEmptyName        ConflictType = "empty_name"
	ConflictMissingID        ConflictType = "missing_id"
	ConflictDuplicateID      ConflictType = "duplicate_id"
	ConflictInvalidDateKey   ConflictType = "invalid_date_key"
	ConflictInvalidTarget    ConflictType = "invalid_target"
	ConflictInvalidCurrent   ConflictType = "invalid_current"
	ConflictDuplicateName    ConflictType = "duplicate_name"
	ConflictMissingCreatedAt ConflictType = "missing_created_at"
)

// Severity separates data problems from things worth pointing out.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Conflict represents a problem found in a collection
type Conflict struct {
	Type        ConflictType
	Severity    Severity
	Kind        models.Kind
	Description string
	IDs         []string
}

// ValidationResult contains all detected conflicts
type ValidationResult struct {
	Conflicts []Conflict
}

// FixAction represents an action taken during auto-fix
type FixAction struct {
	Action         string
	SourceConflict Conflict
}

// HasConflicts returns true if there are any conflicts
func (vr *ValidationResult) HasConflicts() bool {
	return len(vr.Conflicts) > 0
}

// HasErrors is true when at least one conflict is an error rather than a warning.
func (vr *ValidationResult) HasErrors() bool {
	for _, c := range vr.Conflicts {
		if c.Severity == SeverityError {
			return true
		}
	}
	return false
}

// FormatReport returns a human-readable report of all conflicts
func (vr *ValidationResult) FormatReport() string {
	if !vr.HasConflicts() {
		return "No conflicts detected."
	}

	var b strings.Builder
	b.WriteString("Conflicts detected:\n")
	for _, c := range vr.Conflicts {
		fmt.Fprintf(&b, "- [%s] %s\n", c.Severity, c.Description)
	}
	return b.String()
}

// Validator checks goal collections for data problems
type Validator struct{}

// New creates a new Validator
func New() *Validator {
	return &Validator{}
}

// Validate checks all three collections.
func (v *Validator) Validate(c models.Collections) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}
	for _, kind := range models.Kinds {
		result.Conflicts = append(result.Conflicts, v.validateGoals(kind, c.Goals(kind))...)
	}
	for _, h := range c.Habits {
		for key := range h.CompletedDates {
			if !datekey.Valid(key) {
				result.Conflicts = append(result.Conflicts, Conflict{
					Type:        ConflictInvalidDateKey,
					Severity:    SeverityError,
					Kind:        models.KindHabit,
					Description: fmt.Sprintf("Habit %q has an invalid completion date: %q", h.Name, key),
					IDs:         []string{h.ID},
				})
			}
		}
	}
	for _, p := range c.Progress {
		if math.IsNaN(p.Target) || math.IsInf(p.Target, 0) || p.Target <= 0 {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictInvalidTarget,
				Severity:    SeverityError,
				Kind:        models.KindProgress,
				Description: fmt.Sprintf("Progress goal %q has an invalid target: %v", p.Name, p.Target),
				IDs:         []string{p.ID},
			})
		}
		if math.IsNaN(p.Current) || math.IsInf(p.Current, 0) {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictInvalidCurrent,
				Severity:    SeverityError,
				Kind:        models.KindProgress,
				Description: fmt.Sprintf("Progress goal %q has a non-finite current value", p.Name),
				IDs:         []string{p.ID},
			})
		}
	}
	return result
}

func (v *Validator) validateGoals(kind models.Kind, goals []models.Goal) []Conflict {
	var conflicts []Conflict

	idCount := make(map[string]int)
	nameIDs := make(map[string][]string)
	var names []string
	for _, g := range goals {
		m := g.Info()
		if m.ID == "" {
			conflicts = append(conflicts, Conflict{
				Type:        ConflictMissingID,
				Severity:    SeverityError,
				Kind:        kind,
				Description: fmt.Sprintf("A %s named %q has no id", kind, m.Name),
			})
		} else {
			idCount[m.ID]++
		}
		if strings.TrimSpace(m.Name) == "" {
			conflicts = append(conflicts, Conflict{
				Type:        ConflictEmptyName,
				Severity:    SeverityError,
				Kind:        kind,
				Description: fmt.Sprintf("The %s %s has an empty name", kind, m.ID),
				IDs:         []string{m.ID},
			})
			continue
		}
		if m.CreatedAt.IsZero() {
			conflicts = append(conflicts, Conflict{
				Type:        ConflictMissingCreatedAt,
				Severity:    SeverityWarning,
				Kind:        kind,
				Description: fmt.Sprintf("The %s %q has no creation time", kind, m.Name),
				IDs:         []string{m.ID},
			})
		}
		key := strings.ToLower(m.Name)
		if _, seen := nameIDs[key]; !seen {
			names = append(names, key)
		}
		nameIDs[key] = append(nameIDs[key], m.ID)
	}

	ids := make([]string, 0, len(idCount))
	for id, n := range idCount {
		if n > 1 {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	for _, id := range ids {
		conflicts = append(conflicts, Conflict{
			Type:        ConflictDuplicateID,
			Severity:    SeverityError,
			Kind:        kind,
			Description: fmt.Sprintf("%d %s goals share the id %s", idCount[id], kind, id),
			IDs:         []string{id},
		})
	}

	// Names may repeat; it only makes addressing by name ambiguous.
	for _, name := range names {
		if ids := nameIDs[name]; len(ids) > 1 {
			conflicts = append(conflicts, Conflict{
				Type:        ConflictDuplicateName,
				Severity:    SeverityWarning,
				Kind:        kind,
				Description: fmt.Sprintf("Duplicate %s name: %q (IDs: %v)", kind, name, ids),
				IDs:         ids,
			})
		}
	}
	return conflicts
}

// Repair returns a copy of c with every fixable error corrected: later
// entries with a repeated id are dropped, invalid completion dates removed,
// bad targets reset to the default and non-finite current values reset to
// zero. Warnings are left alone.
func Repair(c models.Collections) (models.Collections, []FixAction) {
	var actions []FixAction
	out := models.Collections{}

	out.Habits, actions = dedupe(models.KindHabit, c.Habits, actions)
	out.Tasks, actions = dedupe(models.KindTask, c.Tasks, actions)
	out.Progress, actions = dedupe(models.KindProgress, c.Progress, actions)

	for i, h := range out.Habits {
		var bad []string
		for key := range h.CompletedDates {
			if !datekey.Valid(key) {
				bad = append(bad, key)
			}
		}
		if len(bad) == 0 {
			continue
		}
		sort.Strings(bad)
		h.CompletedDates = models.NewDateSet(h.CompletedDates.Keys()...)
		out.Habits[i] = h
		actions = append(actions, FixAction{
			Action: fmt.Sprintf("Removed invalid dates %v from habit %q", bad, h.Name),
			SourceConflict: Conflict{
				Type: ConflictInvalidDateKey, Severity: SeverityError, Kind: models.KindHabit, IDs: []string{h.ID},
			},
		})
	}

	for i, p := range out.Progress {
		if math.IsNaN(p.Target) || math.IsInf(p.Target, 0) || p.Target <= 0 {
			actions = append(actions, FixAction{
				Action: fmt.Sprintf("Reset target of %q from %v to %v", p.Name, p.Target, constants.DefaultProgressTarget),
				SourceConflict: Conflict{
					Type: ConflictInvalidTarget, Severity: SeverityError, Kind: models.KindProgress, IDs: []string{p.ID},
				},
			})
			p.Target = constants.DefaultProgressTarget
		}
		if math.IsNaN(p.Current) || math.IsInf(p.Current, 0) {
			actions = append(actions, FixAction{
				Action: fmt.Sprintf("Reset current value of %q to %v", p.Name, constants.DefaultProgressCurrent),
				SourceConflict: Conflict{
					Type: ConflictInvalidCurrent, Severity: SeverityError, Kind: models.KindProgress, IDs: []string{p.ID},
				},
			})
			p.Current = constants.DefaultProgressCurrent
		}
		out.Progress[i] = p
	}
	return out, actions
}

func dedupe[T interface{ Info() models.Meta }](kind models.Kind, list []T, actions []FixAction) ([]T, []FixAction) {
	out := make([]T, 0, len(list))
	seen := make(map[string]bool)
	for _, item := range list {
		id := item.Info().ID
		if id != "" && seen[id] {
			actions = append(actions, FixAction{
				Action: fmt.Sprintf("Removed duplicate %s %q with id %s", kind, item.Info().Name, id),
				SourceConflict: Conflict{
					Type: ConflictDuplicateID, Severity: SeverityError, Kind: kind, IDs: []string{id},
				},
			})
			continue
		}
		seen[id] = true
		out = append(out, item)
	}
	return out, actions
}
