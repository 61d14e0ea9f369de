package domain

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestValidDuration(t *testing.T) {
	tests := []struct {
		name  string
		hours float64
		want  bool
	}{
		{"positive", 1.5, true},
		{"tiny", 0.001, true},
		{"zero", 0, false},
		{"negative", -1, false},
		{"NaN", math.NaN(), false},
		{"+Inf", math.Inf(1), false},
		{"at limit", MaxDurationHours, true},
		{"above limit", MaxDurationHours + 0.01, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidDuration(tt.hours))
		})
	}
}

func TestNormalizeTags(t *testing.T) {
	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{"nil", nil, nil},
		{"only blanks", []string{" ", ""}, nil},
		{"trims", []string{" writing ", "q3"}, []string{"writing", "q3"}},
		{"dedupes case-insensitively keeping first", []string{"Deep", "deep", "ops", "DEEP"}, []string{"Deep", "ops"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeTags(tt.in))
		})
	}
}

func TestTask_Ref(t *testing.T) {
	task := &Task{ID: 4, Title: "Review", DurationHours: 0.75, Category: "Work"}
	assert.Equal(t, TaskRef{ID: 4, Title: "Review", DurationHours: 0.75}, task.Ref())
}

func TestTask_CanSchedule(t *testing.T) {
	assert.True(t, (&Task{DurationHours: 1}).CanSchedule())
	assert.False(t, (&Task{DurationHours: 0}).CanSchedule())
}

func TestTask_HasTag(t *testing.T) {
	task := &Task{Tags: []string{"Writing", "q3"}}
	assert.True(t, task.HasTag("writing"))
	assert.True(t, task.HasTag("Q3"))
	assert.False(t, task.HasTag("ops"))
}

func TestTask_MarkCompleted(t *testing.T) {
	at := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	task := &Task{Title: "x"}
	task.MarkCompleted(at)
	assert.True(t, task.Completed)
	assert.Equal(t, at, task.CompletedAt)
}

func TestTask_ToYAML(t *testing.T) {
	task := &Task{
		ID:            2,
		Title:         "Write report",
		Category:      "Work",
		Tags:          []string{"writing"},
		DurationHours: 2.5,
		Created:       time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC),
	}

	out, err := task.ToYAML()
	require.NoError(t, err)
	assert.Contains(t, out, "title: Write report")
	assert.Contains(t, out, "duration_hours: 2.5")
	assert.NotContains(t, out, "description:")

	var decoded Task
	require.NoError(t, yaml.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, *task, decoded)
}

func TestTaskFilter_Match(t *testing.T) {
	open := &Task{Title: "a", Category: "Work", Tags: []string{"deep", "q3"}}
	done := &Task{Title: "b", Category: "Home", Completed: true}

	tests := []struct {
		name   string
		filter TaskFilter
		task   *Task
		want   bool
	}{
		{"default shows open", TaskFilter{}, open, true},
		{"default hides completed", TaskFilter{}, done, false},
		{"include completed", TaskFilter{IncludeCompleted: true}, done, true},
		{"category match", TaskFilter{Category: "Work"}, open, true},
		{"category mismatch", TaskFilter{Category: "Home"}, open, false},
		{"all tags required", TaskFilter{Tags: []string{"deep", "q3"}}, open, true},
		{"missing tag", TaskFilter{Tags: []string{"deep", "ops"}}, open, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.filter.Match(tt.task))
		})
	}
}
