// Package observability provides formatted output of generation results for
// the CLI.
package observability

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/jonathan/resume-studio/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output of results
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// truncate shortens s to at most n runes, marking the cut with "...".
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-3]) + "..."
}

// writeList writes up to limit items as bullets under a heading.
func writeList(sb *strings.Builder, heading string, items []string, limit int) {
	if len(items) == 0 {
		return
	}
	sb.WriteString(heading + ":\n")
	count := min(len(items), limit)
	for i := 0; i < count; i++ {
		sb.WriteString(fmt.Sprintf("  • %s\n", items[i]))
	}
	if len(items) > limit {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(items)-limit))
	}
	sb.WriteString("\n")
}

// PrintResult dispatches to the printer for the result's type. Unknown
// values are printed as indented JSON.
func (p *Printer) PrintResult(result any) {
	switch r := result.(type) {
	case *types.AnalysisResult:
		p.PrintAnalysis(r)
	case *types.MatchResult:
		p.PrintMatch(r)
	case *types.RewriteResult:
		p.PrintRewrite(r)
	case *types.CoverLetterResult:
		p.PrintCoverLetter(r)
	case *types.ATSResult:
		p.PrintATS(r)
	case *types.InterviewQuestionsResult:
		p.PrintInterviewQuestions(r)
	case *types.ATSAuditResult:
		p.PrintAudit(r)
	case nil:
		return
	default:
		data, err := json.MarshalIndent(r, "", "  ")
		if err != nil {
			p.printBox("RESULT", fmt.Sprintf("%v", r))
			return
		}
		p.printBox("RESULT", string(data))
	}
}

// PrintAnalysis outputs the general resume review.
func (p *Printer) PrintAnalysis(r *types.AnalysisResult) {
	if r == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Score:    %d/100\n", r.OverallScore))
	sb.WriteString(fmt.Sprintf("Summary:  %s\n\n", r.Summary))
	writeList(&sb, "Strengths", r.Strengths, maxItemsToShow)
	writeList(&sb, "Areas for Improvement", r.AreasForImprovement, maxItemsToShow)
	writeList(&sb, "Suggested Keywords", r.SuggestedKeywords, maxItemsToShow)
	if r.FormattingFeedback != "" {
		sb.WriteString(fmt.Sprintf("Formatting: %s\n", r.FormattingFeedback))
	}

	p.printBox("RESUME ANALYSIS", strings.TrimRight(sb.String(), "\n"))
}

// PrintMatch outputs the resume/job match report.
func (p *Printer) PrintMatch(r *types.MatchResult) {
	if r == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Match:    %d%%\n", r.MatchScore))
	sb.WriteString(fmt.Sprintf("Summary:  %s\n\n", r.MatchSummary))
	writeList(&sb, "Keywords Found", r.KeywordsFound, maxItemsToShow)
	writeList(&sb, "Keywords Missing", r.KeywordsMissing, maxItemsToShow)
	if r.ExperienceGap != "" {
		sb.WriteString(fmt.Sprintf("Experience Gap: %s\n", r.ExperienceGap))
	}

	p.printBox("JOB MATCH", strings.TrimRight(sb.String(), "\n"))
}

// PrintRewrite outputs the rewritten bullet options.
func (p *Printer) PrintRewrite(r *types.RewriteResult) {
	if r == nil || len(*r) == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d options:\n\n", len(*r)))
	for i, option := range *r {
		sb.WriteString(fmt.Sprintf("%d. %s\n", i+1, option))
	}

	p.printBox("BULLET REWRITES", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintCoverLetter prints the letter unboxed; it is meant to be copied.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintCoverLetter(r *types.CoverLetterResult) {
	if r == nil || *r == "" {
		return
	}
	fmt.Fprintln(p.out, "COVER LETTER")
	fmt.Fprintln(p.out, strings.Repeat("─", boxWidth))
	fmt.Fprintln(p.out, string(*r))
}

// PrintATS outputs the top-level sections of an ATS parse.
func (p *Printer) PrintATS(r *types.ATSResult) {
	if r == nil || len(*r) == 0 {
		return
	}

	var sections map[string]json.RawMessage
	if err := json.Unmarshal(*r, &sections); err != nil {
		var indented bytes.Buffer
		if json.Indent(&indented, *r, "", "  ") != nil {
			indented.Reset()
			indented.Write(*r)
		}
		p.printBox("ATS PARSE", indented.String())
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Extracted %d sections:\n\n", len(sections)))
	for _, name := range sortedKeys(sections) {
		sb.WriteString(fmt.Sprintf("• %s: %s\n", name, describeJSON(sections[name])))
	}

	p.printBox("ATS PARSE", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintInterviewQuestions outputs the likely questions by kind.
func (p *Printer) PrintInterviewQuestions(r *types.InterviewQuestionsResult) {
	if r == nil {
		return
	}

	var sb strings.Builder
	writeList(&sb, "Behavioral", r.BehavioralQuestions, 3)
	writeList(&sb, "Skill Gaps", r.SkillGapQuestions, 3)
	writeList(&sb, "Situational", r.SituationalQuestions, 3)
	if sb.Len() == 0 {
		sb.WriteString("No questions generated")
	}

	p.printBox("INTERVIEW QUESTIONS", strings.TrimRight(sb.String(), "\n"))
}

// PrintAudit outputs the review of an ATS parse.
func (p *Printer) PrintAudit(r *types.ATSAuditResult) {
	if r == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Quality:  %s %s\n", qualityIcon(r.ParseQuality), r.ParseQuality))
	sb.WriteString(fmt.Sprintf("Summary:  %s\n\n", r.SummaryFeedback))

	if len(r.CriticalErrors) > 0 {
		sb.WriteString(fmt.Sprintf("Found %d critical errors:\n", len(r.CriticalErrors)))
		for _, e := range r.CriticalErrors {
			sb.WriteString(fmt.Sprintf("⚠ %s\n", e.Field))
			sb.WriteString(fmt.Sprintf("  %s\n", e.Issue))
		}
		sb.WriteString("\n")
	}
	sb.WriteString(fmt.Sprintf("Next step: %s\n", r.ActionRecommendation))

	p.printBox("ATS PARSE AUDIT", strings.TrimSuffix(sb.String(), "\n"))
}

func qualityIcon(q types.ParseQuality) string {
	switch q {
	case types.ParseQualityExcellent:
		return "✅"
	case types.ParseQualityGood:
		return "✓"
	default:
		return "⚠"
	}
}

// describeJSON summarises a value in a few words.
func describeJSON(raw json.RawMessage) string {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return "invalid"
	}
	switch val := v.(type) {
	case []any:
		return fmt.Sprintf("%d items", len(val))
	case map[string]any:
		return fmt.Sprintf("%d fields", len(val))
	case string:
		return val
	case nil:
		return "empty"
	default:
		return fmt.Sprintf("%v", val)
	}
}

func sortedKeys(m map[string]json.RawMessage) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
