package observability

import (
	"bytes"
	"strings"
	"testing"

	"github.com/jonathan/resume-studio/internal/types"
	"github.com/stretchr/testify/assert"
)

func TestPrintAnalysis(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintAnalysis(&types.AnalysisResult{
		OverallScore:        82,
		Summary:             "Solid backend profile.",
		Strengths:           []string{"Go", "Distributed systems"},
		AreasForImprovement: []string{"Quantify impact"},
		SuggestedKeywords:   []string{"Kubernetes"},
		FormattingFeedback:  "Clean layout.",
	})
	output := buf.String()

	assert.Contains(t, output, "RESUME ANALYSIS")
	assert.Contains(t, output, "82/100")
	assert.Contains(t, output, "Distributed systems")
	assert.Contains(t, output, "Quantify impact")
	assert.Contains(t, output, "Clean layout.")
}

func TestPrintAnalysis_Nil(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintAnalysis(nil)

	assert.Empty(t, buf.String())
}

func TestPrintMatch_TruncatesLongLists(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintMatch(&types.MatchResult{
		MatchScore:      64,
		MatchSummary:    "Partial fit.",
		KeywordsFound:   []string{"a", "b", "c", "d", "e", "f", "g"},
		KeywordsMissing: []string{"Terraform"},
	})
	output := buf.String()

	assert.Contains(t, output, "JOB MATCH")
	assert.Contains(t, output, "64%")
	assert.Contains(t, output, "... and 2 more")
	assert.Contains(t, output, "Terraform")
	assert.NotContains(t, output, "Experience Gap")
}

func TestPrintRewrite(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	r := types.RewriteResult{"Led migration", "Drove migration"}
	p.PrintRewrite(&r)
	output := buf.String()

	assert.Contains(t, output, "2 options")
	assert.Contains(t, output, "1. Led migration")
	assert.Contains(t, output, "2. Drove migration")
}

func TestPrintCoverLetter_NotTruncated(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	letter := types.CoverLetterResult("Dear Hiring Manager, " + strings.Repeat("I am excited. ", 10))
	p.PrintCoverLetter(&letter)

	assert.Contains(t, buf.String(), string(letter))
}

func TestPrintATS(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	r := types.ATSResult(`{"contact": {"name": "Ada", "email": "ada@example.com"}, "skills": ["Go", "SQL", "Rust"], "summary": "Engineer"}`)
	p.PrintATS(&r)
	output := buf.String()

	assert.Contains(t, output, "ATS PARSE")
	assert.Contains(t, output, "Extracted 3 sections")
	assert.Contains(t, output, "contact: 2 fields")
	assert.Contains(t, output, "skills: 3 items")
	assert.Contains(t, output, "summary: Engineer")

	// Sections are listed in name order
	assert.Less(t, strings.Index(output, "contact"), strings.Index(output, "skills"))
}

func TestPrintATS_NotAnObject(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	r := types.ATSResult(`["Go","SQL"]`)
	p.PrintATS(&r)

	assert.Contains(t, buf.String(), `"Go"`)
}

func TestPrintInterviewQuestions(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintInterviewQuestions(&types.InterviewQuestionsResult{
		BehavioralQuestions:  []string{"Tell me about a conflict."},
		SkillGapQuestions:    []string{"How would you learn Rust?"},
		SituationalQuestions: []string{"What if prod is down?"},
	})
	output := buf.String()

	assert.Contains(t, output, "INTERVIEW QUESTIONS")
	assert.Contains(t, output, "Behavioral")
	assert.Contains(t, output, "How would you learn Rust?")
	assert.Contains(t, output, "What if prod is down?")
}

func TestPrintInterviewQuestions_Empty(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintInterviewQuestions(&types.InterviewQuestionsResult{})

	assert.Contains(t, buf.String(), "No questions generated")
}

func TestPrintAudit(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintAudit(&types.ATSAuditResult{
		ParseQuality:    types.ParseQualityPoor,
		SummaryFeedback: "Dates were lost.",
		CriticalErrors: []types.CriticalError{
			{Field: "experience.dates", Issue: "missing end date"},
		},
		ActionRecommendation: "Use MM/YYYY dates.",
	})
	output := buf.String()

	assert.Contains(t, output, "ATS PARSE AUDIT")
	assert.Contains(t, output, "⚠ Poor")
	assert.Contains(t, output, "Found 1 critical errors")
	assert.Contains(t, output, "experience.dates")
	assert.Contains(t, output, "Use MM/YYYY dates.")
}

func TestPrintResult_Dispatch(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintResult(&types.MatchResult{MatchScore: 10})
	assert.Contains(t, buf.String(), "JOB MATCH")

	buf.Reset()
	p.PrintResult(map[string]int{"x": 1})
	assert.Contains(t, buf.String(), "RESULT")
	assert.Contains(t, buf.String(), `"x": 1`)

	buf.Reset()
	p.PrintResult(nil)
	assert.Empty(t, buf.String())
}

func TestPrintBox_TruncatesLongLines(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.printBox("TITLE", strings.Repeat("x", 100))

	for _, line := range strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n") {
		assert.Equal(t, boxWidth, len([]rune(line)), "line %q", line)
	}
	assert.Contains(t, buf.String(), "...")
}
