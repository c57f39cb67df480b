package hermes

import (
	"context"
	"log/slog"
	"time"

	"github.com/MikeSquared-Agency/Verdict/internal/saw"
)

const publishTimeout = 2 * time.Second

// Notifier turns evaluation outcomes into events. A nil *Notifier, or one
// without a client, publishes nothing.
type Notifier struct {
	client Client
	logger *slog.Logger
}

func NewNotifier(c Client, logger *slog.Logger) *Notifier {
	return &Notifier{client: c, logger: logger}
}

// Evaluated publishes a computed or rejected event for one evaluation.
// Publish failures are logged, never returned.
func (n *Notifier) Evaluated(ctx context.Context, id, source string, criteria int, ev *saw.Evaluation, err error) {
	if n == nil || n.client == nil {
		return
	}
	if err != nil {
		n.publish(ctx, SubjectEvaluationRejected(id), NewRejectedEvent(id, source, err))
		return
	}
	n.publish(ctx, SubjectEvaluationComputed(id), NewComputedEvent(id, source, criteria, ev))
}

// WorkspaceChanged publishes a reset or import notice.
func (n *Notifier) WorkspaceChanged(ctx context.Context, subject string, criteria, alternatives int, actor string) {
	if n == nil || n.client == nil {
		return
	}
	n.publish(ctx, subject, WorkspaceEvent{
		Criteria:     criteria,
		Alternatives: alternatives,
		Actor:        actor,
		Timestamp:    time.Now().UTC(),
	})
}

func (n *Notifier) publish(ctx context.Context, subject string, data interface{}) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()
	if err := n.client.Publish(ctx, subject, data); err != nil {
		n.logger.Warn("failed to publish event", "subject", subject, "error", err)
	}
}
