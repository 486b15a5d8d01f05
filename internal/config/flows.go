package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	MediaTypePDF  = "application/pdf"
	MediaTypeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

// FlowsConfig holds one FlowConfig per generation entry point.
type FlowsConfig struct {
	Parameters FlowConfig `yaml:"parameters"`
	Resume     FlowConfig `yaml:"resume"`
}

// FlowConfig carries the counts and defaults that differ between the
// job-parameter flow and the résumé flow.
type FlowConfig struct {
	Name       string `yaml:"name"`
	Collection string `yaml:"collection"`

	MCQCount int `yaml:"mcq_count"`

	// OpenEndedCount is used when the request does not carry its own amount.
	OpenEndedCount   int `yaml:"open_ended_count"`
	MaxQuestionCount int `yaml:"max_question_count"`

	DefaultRole  string `yaml:"default_role"`
	DefaultType  string `yaml:"default_type"`
	DefaultLevel string `yaml:"default_level"`

	AcceptedMediaTypes []string `yaml:"accepted_media_types"`
	MaxResumeChars     int      `yaml:"max_resume_chars"`
}

func DefaultFlows() FlowsConfig {
	return FlowsConfig{
		Parameters: FlowConfig{
			Name:             "parameters",
			Collection:       "interviews",
			MCQCount:         25,
			OpenEndedCount:   5,
			MaxQuestionCount: 20,
		},
		Resume: FlowConfig{
			Name:               "resume",
			Collection:         "resume_interviews",
			MCQCount:           10,
			OpenEndedCount:     5,
			MaxQuestionCount:   20,
			DefaultRole:        "Resume-Based Interview",
			DefaultType:        "technical",
			DefaultLevel:       "unknown",
			AcceptedMediaTypes: []string{MediaTypePDF},
			MaxResumeChars:     20000,
		},
	}
}

// LoadFlows overlays the YAML file at path on top of DefaultFlows.
// An empty path returns the defaults.
func LoadFlows(path string) (FlowsConfig, error) {
	flows := DefaultFlows()
	if path == "" {
		return flows, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return FlowsConfig{}, fmt.Errorf("failed to read flows file %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &flows); err != nil {
		return FlowsConfig{}, fmt.Errorf("failed to parse flows file %s: %w", path, err)
	}

	if err := flows.Validate(); err != nil {
		return FlowsConfig{}, err
	}

	return flows, nil
}

func (f FlowsConfig) Validate() error {
	for _, flow := range []FlowConfig{f.Parameters, f.Resume} {
		if err := flow.Validate(); err != nil {
			return err
		}
	}

	if len(f.Resume.AcceptedMediaTypes) == 0 {
		return fmt.Errorf("flow %q: accepted_media_types must not be empty", f.Resume.Name)
	}

	return nil
}

func (f FlowConfig) Validate() error {
	if f.Name == "" {
		return fmt.Errorf("flow name is required")
	}
	if f.Collection == "" {
		return fmt.Errorf("flow %q: collection is required", f.Name)
	}
	if f.MCQCount <= 0 {
		return fmt.Errorf("flow %q: mcq_count must be positive, got %d", f.Name, f.MCQCount)
	}
	if f.OpenEndedCount <= 0 {
		return fmt.Errorf("flow %q: open_ended_count must be positive, got %d", f.Name, f.OpenEndedCount)
	}
	if f.MaxQuestionCount < f.OpenEndedCount {
		return fmt.Errorf("flow %q: max_question_count (%d) is below open_ended_count (%d)",
			f.Name, f.MaxQuestionCount, f.OpenEndedCount)
	}
	return nil
}

// Accepts reports whether the flow takes documents of the given media type.
func (f FlowConfig) Accepts(mediaType string) bool {
	for _, accepted := range f.AcceptedMediaTypes {
		if accepted == mediaType {
			return true
		}
	}
	return false
}

// Collections lists every collection an interview may live in, parameter flow first.
func (f FlowsConfig) Collections() []string {
	if f.Parameters.Collection == f.Resume.Collection {
		return []string{f.Parameters.Collection}
	}
	return []string{f.Parameters.Collection, f.Resume.Collection}
}
