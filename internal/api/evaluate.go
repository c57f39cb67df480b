package api

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/MikeSquared-Agency/Verdict/internal/hermes"
	"github.com/MikeSquared-Agency/Verdict/internal/metrics"
	"github.com/MikeSquared-Agency/Verdict/internal/saw"
)

// evaluator wraps every engine run with an id, metrics, an event and a log
// line.
type evaluator struct {
	notifier *hermes.Notifier
	metrics  *metrics.Metrics
	logger   *slog.Logger
}

// evaluation is one engine run together with the number of criteria it
// actually evaluated.
type evaluation struct {
	criteria int
	ev       *saw.Evaluation
	err      error
}

func (e *evaluator) run(ctx context.Context, source string, compute func() evaluation) (string, *saw.Evaluation, error) {
	id := uuid.NewString()
	start := time.Now()
	res := compute()
	criteria, ev, err := res.criteria, res.ev, res.err
	elapsed := time.Since(start)

	e.metrics.ObserveEvaluation(source, elapsed, ev, err)
	e.notifier.Evaluated(ctx, id, source, criteria, ev, err)

	if err != nil {
		e.logger.Info("evaluation rejected",
			"evaluation_id", id,
			"source", source,
			"kind", saw.ErrorKind(err),
			"error", err,
		)
		return id, nil, err
	}

	for _, d := range ev.Diagnostics {
		e.logger.Warn("evaluation diagnostic",
			"evaluation_id", id,
			"kind", d.Kind,
			"message", d.Message,
		)
	}
	attrs := []any{
		"evaluation_id", id,
		"source", source,
		"criteria", criteria,
		"alternatives", len(ev.Results),
		"duration_us", elapsed.Microseconds(),
	}
	if winner, ok := ev.Winner(); ok {
		attrs = append(attrs, "winner", winner.AlternativeName, "score", winner.PreferenceScore)
	}
	e.logger.Info("evaluation computed", attrs...)
	return id, ev, nil
}
