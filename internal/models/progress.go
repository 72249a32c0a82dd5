package models

import (
	"math"
	"strconv"
	"strings"

	"github.com/rathiarpitaoffice-hue/Growth-update/internal/constants"
)

// ProgressGoal tracks a numeric current value against a target.
//
// Current is not kept within [0, Target]: values entered directly are stored
// as given so over-achievement and corrections are representable. Only
// IncrementProgress clamps, to Target.
type ProgressGoal struct {
	Meta
	Current float64 `json:"current"`
	Target  float64 `json:"target"`
	Unit    string  `json:"unit"`
}

func (p ProgressGoal) Info() Meta { return p.Meta }
func (ProgressGoal) Kind() Kind   { return KindProgress }
func (ProgressGoal) sealed()      {}

// ParseAmount parses user numeric input. Only finite numbers are accepted.
func ParseAmount(s string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// ParseTarget parses a target, falling back to the default for anything
// unparseable or not positive.
func ParseTarget(s string) float64 {
	v, ok := ParseAmount(s)
	if !ok || v <= 0 {
		return constants.DefaultProgressTarget
	}
	return v
}

// WithValidTarget returns p with its target replaced by the default when it
// is not a positive finite number.
func (p ProgressGoal) WithValidTarget() ProgressGoal {
	if math.IsNaN(p.Target) || math.IsInf(p.Target, 0) || p.Target <= 0 {
		p.Target = constants.DefaultProgressTarget
	}
	return p
}

// NewProgressGoal creates a progress goal from raw input. An unparseable
// current becomes 0; see ParseTarget for the target rule.
func NewProgressGoal(name, description, current, target, unit string) (ProgressGoal, error) {
	meta, err := newMeta(name, description)
	if err != nil {
		return ProgressGoal{}, err
	}
	cur, ok := ParseAmount(current)
	if !ok {
		cur = constants.DefaultProgressCurrent
	}
	return ProgressGoal{
		Meta:    meta,
		Current: cur,
		Target:  ParseTarget(target),
		Unit:    strings.TrimSpace(unit),
	}, nil
}

// UpdateProgressCurrent sets Current from raw input. Input that does not
// parse to a finite number leaves the list unchanged.
func UpdateProgressCurrent(list []ProgressGoal, id, newCurrent string) ([]ProgressGoal, bool) {
	v, ok := ParseAmount(newCurrent)
	if !ok {
		return list, false
	}
	return SetProgressCurrent(list, id, v)
}

// SetProgressCurrent sets Current without clamping.
func SetProgressCurrent(list []ProgressGoal, id string, v float64) ([]ProgressGoal, bool) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return list, false
	}
	return replaceByID(list, id, func(p ProgressGoal) ProgressGoal {
		p.Current = v
		return p
	})
}

// IncrementProgress adds one unit to Current, never going past Target.
func IncrementProgress(list []ProgressGoal, id string) ([]ProgressGoal, bool) {
	return replaceByID(list, id, func(p ProgressGoal) ProgressGoal {
		p.Current = math.Min(p.Current+constants.ProgressIncrement, p.Target)
		return p
	})
}

// EditProgress applies e, including Target and Unit.
func EditProgress(list []ProgressGoal, id string, e Edit) ([]ProgressGoal, bool) {
	return replaceByID(list, id, func(p ProgressGoal) ProgressGoal {
		p.Meta = p.Meta.apply(e)
		if e.Target != nil {
			p.Target = ParseTarget(*e.Target)
		}
		if e.Unit != nil {
			p.Unit = strings.TrimSpace(*e.Unit)
		}
		return p
	})
}

// DeleteProgress removes the progress goal with the given id.
func DeleteProgress(list []ProgressGoal, id string) ([]ProgressGoal, bool) {
	return removeByID(list, id)
}

// FindProgress looks a progress goal up by id.
func FindProgress(list []ProgressGoal, id string) (ProgressGoal, bool) {
	return findByID(list, id)
}

// FindProgressByName looks a progress goal up by case-insensitive name.
func FindProgressByName(list []ProgressGoal, name string) (ProgressGoal, bool) {
	return findByName(list, name)
}
