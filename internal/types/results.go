package types

import "encoding/json"

// AnalysisResult is the general resume review.
type AnalysisResult struct {
	OverallScore        int      `json:"overallScore"`
	Summary             string   `json:"summary"`
	Strengths           []string `json:"strengths"`
	AreasForImprovement []string `json:"areasForImprovement"`
	SuggestedKeywords   []string `json:"suggestedKeywords"`
	FormattingFeedback  string   `json:"formattingFeedback"`
}

// MatchResult scores a resume against a job description.
type MatchResult struct {
	MatchScore      int      `json:"match_score"`
	MatchSummary    string   `json:"match_summary"`
	KeywordsFound   []string `json:"keywords_found"`
	KeywordsMissing []string `json:"keywords_missing"`
	ExperienceGap   string   `json:"experience_gap"`
}

// RewriteResult holds alternative phrasings of a bullet point.
type RewriteResult []string

// CoverLetterResult is a plain-text cover letter.
type CoverLetterResult string

// ATSResult is the structured resume an applicant tracking system would
// extract. Its shape is open-ended, so it is kept as raw JSON.
type ATSResult json.RawMessage

// MarshalJSON emits the raw document.
func (r ATSResult) MarshalJSON() ([]byte, error) {
	if len(r) == 0 {
		return []byte("null"), nil
	}
	return r, nil
}

// UnmarshalJSON stores a copy of the raw document.
func (r *ATSResult) UnmarshalJSON(data []byte) error {
	*r = append((*r)[:0], data...)
	return nil
}

// InterviewQuestionsResult groups likely interview questions by kind.
type InterviewQuestionsResult struct {
	BehavioralQuestions  []string `json:"behavioral_questions"`
	SkillGapQuestions    []string `json:"skill_gap_questions"`
	SituationalQuestions []string `json:"situational_questions"`
}

// ParseQuality grades how well an ATS parse captured the resume.
type ParseQuality string

// Parse quality grades.
const (
	ParseQualityExcellent ParseQuality = "Excellent"
	ParseQualityGood      ParseQuality = "Good"
	ParseQualityPoor      ParseQuality = "Poor"
)

// CriticalError is a field the ATS parse got wrong.
type CriticalError struct {
	Field string `json:"field"`
	Issue string `json:"issue"`
}

// ATSAuditResult reviews a previous ATSResult.
type ATSAuditResult struct {
	ParseQuality         ParseQuality    `json:"parse_quality"`
	SummaryFeedback      string          `json:"summary_feedback"`
	CriticalErrors       []CriticalError `json:"critical_errors"`
	ActionRecommendation string          `json:"action_recommendation"`
}

// NewResult returns a pointer to the zero result value for a mode, ready to
// be decoded into.
func NewResult(m Mode) any {
	switch m {
	case ModeAnalysis:
		return &AnalysisResult{}
	case ModeMatch:
		return &MatchResult{}
	case ModeRewrite:
		return &RewriteResult{}
	case ModeCover:
		return new(CoverLetterResult)
	case ModeATS:
		return &ATSResult{}
	case ModeInterview:
		return &InterviewQuestionsResult{}
	case ModeATSAudit:
		return &ATSAuditResult{}
	default:
		return nil
	}
}
