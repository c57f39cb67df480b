package hermes

const (
	// SubjectEvaluationAll matches every evaluation event.
	SubjectEvaluationAll = "verdict.evaluation.>"
	SubjectWorkspaceAll  = "verdict.workspace.>"

	StreamName   = "VERDICT_EVENTS"
	StreamMaxAge = "168h" // 7 days
)

func SubjectEvaluationComputed(evaluationID string) string {
	return "verdict.evaluation." + evaluationID + ".computed"
}

func SubjectEvaluationRejected(evaluationID string) string {
	return "verdict.evaluation." + evaluationID + ".rejected"
}

func SubjectWorkspaceReset() string    { return "verdict.workspace.reset" }
func SubjectWorkspaceImported() string { return "verdict.workspace.imported" }
