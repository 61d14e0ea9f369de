package domain

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// TaskDraft represents a task to be created from file input.
// Fields are ordered to minimize memory padding.
type TaskDraft struct {
	Title         string
	Description   string
	Category      string
	Tags          []string
	DurationHours float64 // 0 = use the configured default
}

// draftFrontmatter is the YAML header of one task block.
type draftFrontmatter struct {
	Title    string   `yaml:"title"`
	Category string   `yaml:"category"`
	Tags     tagsList `yaml:"tags"`
	Duration float64  `yaml:"duration"`
}

// tagsList accepts both a YAML sequence and a comma-separated scalar.
type tagsList []string

// UnmarshalYAML implements yaml.Unmarshaler.
func (t *tagsList) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.SequenceNode:
		var items []string
		if err := node.Decode(&items); err != nil {
			return err
		}
		*t = items
	case yaml.ScalarNode:
		*t = strings.Split(node.Value, ",")
	default:
		return fmt.Errorf("tags: unsupported YAML node kind %d", node.Kind)
	}
	return nil
}

// ParseTaskDrafts parses a markdown file containing one or more task definitions.
// Each task starts with a YAML frontmatter block delimited by "---".
//
// Format:
//
//	---
//	title: Write report
//	category: Work
//	tags: [writing, q3]
//	duration: 2.5
//	---
//	Task description here.
//
//	---
//	title: Second Task
//	---
//	Second task description.
func ParseTaskDrafts(content string) ([]TaskDraft, error) {
	if strings.TrimSpace(content) == "" {
		return nil, ErrEmptyFile
	}

	blocks := splitTaskBlocks(content)
	if len(blocks) == 0 {
		return nil, ErrNoTasksInFile
	}

	drafts := make([]TaskDraft, 0, len(blocks))
	for i, block := range blocks {
		draft, err := parseTaskBlock(block)
		if err != nil {
			return nil, fmt.Errorf("task %d: %w", i+1, err)
		}
		drafts = append(drafts, draft)
	}
	return drafts, nil
}

// taskBlock is a frontmatter/body pair.
type taskBlock struct {
	header string
	body   string
}

// splitTaskBlocks splits content into task blocks. A "---" line inside a body
// only starts a new block when the next line looks like a frontmatter key.
func splitTaskBlocks(content string) []taskBlock {
	lines := strings.Split(strings.ReplaceAll(content, "\r\n", "\n"), "\n")

	var (
		blocks   []taskBlock
		header   []string
		body     []string
		inHeader bool
		started  bool
	)
	flush := func() {
		if started {
			blocks = append(blocks, taskBlock{
				header: strings.Join(header, "\n"),
				body:   strings.Join(body, "\n"),
			})
		}
	}

	for i, line := range lines {
		if strings.TrimRight(line, " \t") != "---" {
			switch {
			case inHeader:
				header = append(header, line)
			case started:
				body = append(body, line)
			}
			continue
		}

		switch {
		case inHeader:
			inHeader = false
		case !started || (i+1 < len(lines) && isFrontmatterKey(lines[i+1])):
			flush()
			header, body = nil, nil
			started, inHeader = true, true
		default:
			body = append(body, line)
		}
	}
	flush()
	return blocks
}

// isFrontmatterKey checks if a line looks like a frontmatter key.
func isFrontmatterKey(line string) bool {
	for _, key := range []string{"title:", "category:", "tags:", "duration:"} {
		if strings.HasPrefix(line, key) {
			return true
		}
	}
	return false
}

func parseTaskBlock(block taskBlock) (TaskDraft, error) {
	var fm draftFrontmatter
	if err := yaml.Unmarshal([]byte(block.header), &fm); err != nil {
		return TaskDraft{}, fmt.Errorf("parse frontmatter: %w", err)
	}

	title := strings.TrimSpace(fm.Title)
	if title == "" {
		return TaskDraft{}, ErrEmptyTitle
	}
	if fm.Duration < 0 || (fm.Duration != 0 && !ValidDuration(fm.Duration)) {
		return TaskDraft{}, ErrInvalidDuration
	}

	return TaskDraft{
		Title:         title,
		Description:   strings.Trim(block.body, "\n"),
		Category:      strings.TrimSpace(fm.Category),
		Tags:          NormalizeTags(fm.Tags),
		DurationHours: fm.Duration,
	}, nil
}
