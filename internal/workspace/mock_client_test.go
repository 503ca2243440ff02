package workspace

import (
	"context"

	"github.com/jonathan/resume-studio/internal/llm"
	"github.com/stretchr/testify/mock"
)

// mockClient implements llm.Client for testing.
type mockClient struct {
	mock.Mock
}

func (m *mockClient) Generate(ctx context.Context, req llm.Request) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}

func (m *mockClient) Close() error {
	return nil
}

func forFeature(mode string) any {
	return mock.MatchedBy(func(req llm.Request) bool {
		return string(req.Feature) == mode
	})
}

const (
	validAnalysis = `{"overallScore": 82, "summary": "Solid backend profile.", "strengths": ["Go"], "areasForImprovement": ["Quantify impact"], "suggestedKeywords": ["Kubernetes"], "formattingFeedback": "Clean."}`
	validATS      = `{"contact": {"name": "Ada Lovelace"}, "skills": ["Go", "SQL"]}`
	validAudit    = `{"parse_quality": "Good", "summary_feedback": "Mostly captured.", "critical_errors": [{"field": "dates", "issue": "missing end date"}], "action_recommendation": "Use MM/YYYY dates."}`
)
