// Package domain contains core business entities and interfaces.
package domain

import (
	"math"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultCategory is assigned to tasks created without a category.
const DefaultCategory = "General"

// DefaultDurationHours is the estimate assigned to tasks created without one.
const DefaultDurationHours = 1.0

// Task represents a unit of work tracked by g2g.
// Fields are ordered to minimize memory padding.
type Task struct {
	Created       time.Time `json:"created" yaml:"created"`
	CompletedAt   time.Time `json:"completedAt,omitempty" yaml:"completed_at,omitempty"`
	Title         string    `json:"title" yaml:"title"`
	Description   string    `json:"description,omitempty" yaml:"description,omitempty"`
	Category      string    `json:"category,omitempty" yaml:"category,omitempty"`
	Tags          []string  `json:"tags,omitempty" yaml:"tags,omitempty"`
	DurationHours float64   `json:"durationHours" yaml:"duration_hours"`
	ID            int       `json:"-" yaml:"id"` // stores keep it beside the value
	Completed     bool      `json:"completed" yaml:"completed"`
}

// CanSchedule returns true if the task's estimate yields a non-empty focus plan.
func (t *Task) CanSchedule() bool {
	return ValidDuration(t.DurationHours)
}

// Ref returns the reference held by the scheduler while the task is in focus.
func (t *Task) Ref() TaskRef {
	return TaskRef{
		ID:            t.ID,
		Title:         t.Title,
		DurationHours: t.DurationHours,
	}
}

// HasTag reports whether the task carries the given tag (case-insensitive).
func (t *Task) HasTag(tag string) bool {
	for _, have := range t.Tags {
		if strings.EqualFold(have, tag) {
			return true
		}
	}
	return false
}

// MarkCompleted flags the task as done at the given time.
func (t *Task) MarkCompleted(at time.Time) {
	t.Completed = true
	t.CompletedAt = at
}

// ToYAML renders the task for display and export.
func (t *Task) ToYAML() (string, error) {
	out, err := yaml.Marshal(t)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// TaskRef identifies the task a focus plan belongs to.
// Quick timers are not backed by a stored task and have ID 0.
type TaskRef struct {
	Title         string  `json:"title"`
	DurationHours float64 `json:"durationHours"`
	ID            int     `json:"id"`
	Quick         bool    `json:"quick,omitempty"`
}

// MaxDurationHours is the largest estimate that can be planned.
const MaxDurationHours = 1000.0

// ValidDuration reports whether hours is a usable task estimate.
func ValidDuration(hours float64) bool {
	return hours > 0 && hours <= MaxDurationHours && !math.IsNaN(hours)
}

// NormalizeTags trims, drops empties and de-duplicates tags while keeping order.
func NormalizeTags(tags []string) []string {
	if len(tags) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(tags))
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		key := strings.ToLower(tag)
		if tag == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, tag)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
