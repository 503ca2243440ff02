package types

import (
	"github.com/go-playground/validator/v10"
)

// MaxFieldLength caps the length of a single field value in characters.
const MaxFieldLength = 200000

var validate = validator.New()

// SetFieldRequest commits a new value to a field history.
type SetFieldRequest struct {
	Value string `json:"value" validate:"max=200000"`
}

// SetModeRequest switches the active mode.
type SetModeRequest struct {
	Mode string `json:"mode" validate:"required,oneof=analysis match rewrite cover ats interview"`
}

// FieldState is the observable state of one field history.
type FieldState struct {
	Field   Field  `json:"field"`
	Value   string `json:"value"`
	CanUndo bool   `json:"can_undo"`
	CanRedo bool   `json:"can_redo"`
	Depth   int    `json:"depth"`
	Cursor  int    `json:"cursor"`
}

// ModeInfo describes a mode for clients building tabs and buttons.
type ModeInfo struct {
	Mode        Mode        `json:"mode"`
	ActionLabel string      `json:"action_label"`
	Requires    Requirement `json:"requires"`
	Inputs      []Field     `json:"inputs"`
	Structured  bool        `json:"structured"`
}

// Validate validates the SetFieldRequest using the validator.
func (r *SetFieldRequest) Validate() error {
	return validate.Struct(r)
}

// Validate validates the SetModeRequest using the validator.
func (r *SetModeRequest) Validate() error {
	return validate.Struct(r)
}

// Catalog lists every tab mode with its requirements.
func Catalog() []ModeInfo {
	modes := AllModes()
	out := make([]ModeInfo, 0, len(modes))
	for _, m := range modes {
		out = append(out, ModeInfo{
			Mode:        m,
			ActionLabel: m.ActionLabel(),
			Requires:    m.Requirements(),
			Inputs:      m.Inputs(),
			Structured:  m.Structured(),
		})
	}
	return out
}
