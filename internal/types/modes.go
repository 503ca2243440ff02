package types

import (
	"fmt"
	"strings"
)

// Mode is a feature the user can run against the session inputs.
type Mode string

// Modes selectable from the workbench tabs, plus the ATS audit follow-up.
const (
	ModeAnalysis  Mode = "analysis"
	ModeMatch     Mode = "match"
	ModeRewrite   Mode = "rewrite"
	ModeCover     Mode = "cover"
	ModeATS       Mode = "ats"
	ModeInterview Mode = "interview"

	// ModeATSAudit audits a previous ATS parse. It is not a tab; it runs
	// through Session.Audit.
	ModeATSAudit Mode = "ats_audit"
)

// Requirement describes which fields a mode needs and what to tell the user
// when they are blank.
type Requirement struct {
	Fields  []Field `json:"fields"`
	Message string  `json:"message"`
}

// AllModes returns the tab modes in display order.
func AllModes() []Mode {
	return []Mode{ModeAnalysis, ModeMatch, ModeRewrite, ModeCover, ModeATS, ModeInterview}
}

// ParseMode converts a string to a tab Mode. ModeATSAudit is rejected.
func ParseMode(s string) (Mode, error) {
	m := Mode(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range AllModes() {
		if m == known {
			return m, nil
		}
	}
	return "", fmt.Errorf("unknown mode %q", s)
}

// Requirements returns the inputs a mode cannot run without.
func (m Mode) Requirements() Requirement {
	switch m {
	case ModeAnalysis, ModeATS:
		return Requirement{
			Fields:  []Field{FieldResume},
			Message: "Please enter your resume text before analyzing.",
		}
	case ModeMatch, ModeCover, ModeInterview:
		return Requirement{
			Fields:  []Field{FieldResume, FieldJobDescription},
			Message: "Please provide both a resume and a job description.",
		}
	case ModeRewrite:
		return Requirement{
			Fields:  []Field{FieldBulletPoint},
			Message: "Please enter a bullet point to rewrite.",
		}
	default:
		return Requirement{}
	}
}

// Inputs returns every field a mode sends, required or optional.
func (m Mode) Inputs() []Field {
	switch m {
	case ModeRewrite:
		return []Field{FieldBulletPoint, FieldKeywords}
	default:
		return m.Requirements().Fields
	}
}

// ActionLabel is the text of the button that runs the mode.
func (m Mode) ActionLabel() string {
	switch m {
	case ModeAnalysis:
		return "Analyze Resume"
	case ModeMatch:
		return "Analyze Match"
	case ModeCover:
		return "Generate Cover Letter"
	case ModeATS:
		return "Parse for ATS"
	case ModeInterview:
		return "Generate Questions"
	case ModeRewrite:
		return "Rewrite Bullet Point"
	case ModeATSAudit:
		return "Audit ATS Parse"
	default:
		return "Analyze"
	}
}

// FailurePrefix is prepended to error messages shown for a failed run.
func (m Mode) FailurePrefix() string {
	switch m {
	case ModeRewrite:
		return "Rewrite failed"
	case ModeATSAudit:
		return "Audit failed"
	default:
		return "Analysis failed"
	}
}

// Structured reports whether the mode expects a JSON reply.
func (m Mode) Structured() bool {
	return m != ModeCover
}
