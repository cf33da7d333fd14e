// Package validate schema-checks candidate records against their label's
// fixed JSON Schema and decodes survivors into typed records.
package validate

import (
	"embed"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/xeipuuv/gojsonschema"

	"ActivityPublisher/internal/domain"
	"ActivityPublisher/internal/ports"
)

//go:embed schemas/*.json
var schemaFS embed.FS

var schemaFiles = map[domain.Label]string{
	domain.LabelBlog:           "schemas/blog.json",
	domain.LabelWorkExperience: "schemas/work-experience.json",
	domain.LabelEducation:      "schemas/education.json",
	domain.LabelAchievement:    "schemas/achievement.json",
	domain.LabelSkill:          "schemas/skill.json",
}

// Validator holds the compiled per-label schemas.
type Validator struct {
	schemas map[domain.Label]*gojsonschema.Schema
}

var _ ports.Validator = (*Validator)(nil)

// NewValidator compiles all embedded schemas once.
func NewValidator() (*Validator, error) {
	schemas := make(map[domain.Label]*gojsonschema.Schema, len(schemaFiles))
	for label, path := range schemaFiles {
		raw, err := schemaFS.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read schema for %s: %w", label, err)
		}
		compiled, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(raw))
		if err != nil {
			return nil, fmt.Errorf("compile schema for %s: %w", label, err)
		}
		schemas[label] = compiled
	}
	return &Validator{schemas: schemas}, nil
}

// Validate checks the candidate against its label schema. On success it
// decodes into the label's typed record; otherwise it returns a structured
// rejection listing every violated constraint.
func (v *Validator) Validate(label domain.Label, candidate domain.Candidate) (domain.Record, error) {
	schema, ok := v.schemas[label]
	if !ok {
		return nil, fmt.Errorf("no schema for label %s", label)
	}

	result, err := schema.Validate(gojsonschema.NewGoLoader(map[string]any(candidate)))
	if err != nil {
		return nil, fmt.Errorf("validate %s candidate: %w", label, err)
	}
	if !result.Valid() {
		parts := make([]string, 0, len(result.Errors()))
		for _, desc := range result.Errors() {
			parts = append(parts, fmt.Sprintf("%s: %s", desc.Field(), desc.Description()))
		}
		return nil, fmt.Errorf("schema violation: %s", strings.Join(parts, "; "))
	}

	return decode(label, candidate)
}

func decode(label domain.Label, candidate domain.Candidate) (domain.Record, error) {
	raw, err := json.Marshal(candidate)
	if err != nil {
		return nil, fmt.Errorf("encode %s candidate: %w", label, err)
	}

	switch label {
	case domain.LabelBlog:
		var rec domain.BlogPost
		if err := json.Unmarshal(raw, &rec); err != nil {
			return nil, fmt.Errorf("decode blog record: %w", err)
		}
		if _, err := time.Parse("2006-01-02", rec.Date); err != nil {
			return nil, fmt.Errorf("date: %q is not a calendar date", rec.Date)
		}
		if rec.CoverImage == "" {
			rec.CoverImage = "/default-cover.jpg"
		}
		return rec, nil
	case domain.LabelWorkExperience:
		var rec domain.WorkExperience
		if err := json.Unmarshal(raw, &rec); err != nil {
			return nil, fmt.Errorf("decode work-experience record: %w", err)
		}
		return rec, nil
	case domain.LabelEducation:
		var rec domain.Education
		if err := json.Unmarshal(raw, &rec); err != nil {
			return nil, fmt.Errorf("decode education record: %w", err)
		}
		return rec, nil
	case domain.LabelAchievement:
		var rec domain.Achievement
		if err := json.Unmarshal(raw, &rec); err != nil {
			return nil, fmt.Errorf("decode achievement record: %w", err)
		}
		return rec, nil
	case domain.LabelSkill:
		var rec domain.SkillCategory
		if err := json.Unmarshal(raw, &rec); err != nil {
			return nil, fmt.Errorf("decode skill record: %w", err)
		}
		return rec, nil
	}
	return nil, fmt.Errorf("unknown label %s", label)
}
