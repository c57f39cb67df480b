package hermes

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/MikeSquared-Agency/Verdict/internal/saw"
)

type MockClient struct {
	mock.Mock
}

func (m *MockClient) Publish(ctx context.Context, subject string, data interface{}) error {
	args := m.Called(ctx, subject, data)
	return args.Error(0)
}

func (m *MockClient) Close() { m.Called() }

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestNotifierComputed(t *testing.T) {
	mc := new(MockClient)
	n := NewNotifier(mc, discardLogger())

	ev := &saw.Evaluation{
		Results: []saw.ResultItem{
			{AlternativeID: "a", AlternativeName: "A", PreferenceScore: 0.92, Rank: 1},
			{AlternativeID: "b", AlternativeName: "B", PreferenceScore: 0.7, Rank: 2},
		},
	}

	mc.On("Publish", mock.Anything, "verdict.evaluation.e1.computed", mock.MatchedBy(func(e EvaluationComputedEvent) bool {
		return e.EvaluationID == "e1" && e.WinnerID == "a" && e.TopScore == 0.92 &&
			e.Alternatives == 2 && e.Criteria == 3 && e.Source == SourceCompute
	})).Return(nil).Once()

	n.Evaluated(context.Background(), "e1", SourceCompute, 3, ev, nil)
	mc.AssertExpectations(t)
}

func TestNotifierRejected(t *testing.T) {
	mc := new(MockClient)
	n := NewNotifier(mc, discardLogger())

	err := &saw.MissingValueError{AlternativeName: "B", CriterionName: "Quality"}
	mc.On("Publish", mock.Anything, "verdict.evaluation.e2.rejected", mock.MatchedBy(func(e EvaluationRejectedEvent) bool {
		return e.Kind == "missing_value" && e.Error == err.Error() && e.Source == SourceWorkspace
	})).Return(errors.New("nats down")).Once()

	// A publish failure is logged, not surfaced.
	n.Evaluated(context.Background(), "e2", SourceWorkspace, 2, nil, err)
	mc.AssertExpectations(t)
}

func TestNotifierWorkspaceChanged(t *testing.T) {
	mc := new(MockClient)
	n := NewNotifier(mc, discardLogger())

	mc.On("Publish", mock.Anything, SubjectWorkspaceReset(), mock.MatchedBy(func(e WorkspaceEvent) bool {
		return e.Criteria == 0 && e.Actor == "ops"
	})).Return(nil).Once()

	n.WorkspaceChanged(context.Background(), SubjectWorkspaceReset(), 0, 0, "ops")
	mc.AssertExpectations(t)
}

func TestNilNotifierIsNoop(t *testing.T) {
	var n *Notifier
	assert.NotPanics(t, func() {
		n.Evaluated(context.Background(), "x", SourceCompute, 1, &saw.Evaluation{}, nil)
		n.WorkspaceChanged(context.Background(), SubjectWorkspaceReset(), 0, 0, "")
	})

	n = NewNotifier(nil, discardLogger())
	assert.NotPanics(t, func() {
		n.Evaluated(context.Background(), "x", SourceCompute, 1, nil, saw.ErrNoCriteria)
	})
}

func TestNewComputedEventEmpty(t *testing.T) {
	e := NewComputedEvent("id", SourceCompute, 1, &saw.Evaluation{})
	assert.Empty(t, e.WinnerID)
	assert.Zero(t, e.Alternatives)
}

func TestSubjects(t *testing.T) {
	require.Equal(t, "verdict.evaluation.abc.computed", SubjectEvaluationComputed("abc"))
	require.Equal(t, "verdict.evaluation.abc.rejected", SubjectEvaluationRejected("abc"))
	assert.Equal(t, "verdict.workspace.imported", SubjectWorkspaceImported())
}
