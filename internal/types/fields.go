// Package types provides type definitions for structured data used throughout resume-studio.
package types

import (
	"fmt"
	"strings"
)

// Field identifies one editable text input of a session.
type Field string

// Editable fields. Each one owns an independent undo/redo history.
const (
	FieldResume         Field = "resume"
	FieldJobDescription Field = "job_description"
	FieldBulletPoint    Field = "bullet_point"
	FieldKeywords       Field = "keywords"
)

// AllFields returns every editable field in display order.
func AllFields() []Field {
	return []Field{FieldResume, FieldJobDescription, FieldBulletPoint, FieldKeywords}
}

// ParseField converts a path segment or JSON value to a Field.
func ParseField(s string) (Field, error) {
	f := Field(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range AllFields() {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown field %q", s)
}

// Label returns the human-readable name of the field.
func (f Field) Label() string {
	switch f {
	case FieldResume:
		return "Resume"
	case FieldJobDescription:
		return "Job Description"
	case FieldBulletPoint:
		return "Bullet Point to Rewrite"
	case FieldKeywords:
		return "Keywords to Include"
	default:
		return string(f)
	}
}
