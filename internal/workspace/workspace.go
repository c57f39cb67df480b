// Package workspace holds the single in-memory decision matrix edited
// through the API. It keeps the matrix shape consistent as criteria and
// alternatives come and go, and hands consistent snapshots to the engine.
package workspace

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/MikeSquared-Agency/Verdict/internal/saw"
)

var (
	ErrCriterionNotFound   = errors.New("criterion not found")
	ErrAlternativeNotFound = errors.New("alternative not found")
	ErrInvalidName         = errors.New("name must not be empty")
	ErrInvalidType         = errors.New("criterion type must be benefit or cost")
	ErrInvalidWeight       = errors.New("criterion weight must be a finite number")
)

// Outcome is the retained result of the most recent Calculate call.
type Outcome struct {
	Evaluation *saw.Evaluation
	Err        error
	// Criteria is the number of criteria that were evaluated.
	Criteria int
}

// Workspace is safe for concurrent use. Criteria and alternatives keep
// their insertion order.
type Workspace struct {
	mu           sync.RWMutex
	criteria     []saw.Criterion
	alternatives []saw.Alternative
	last         *Outcome

	opts   []saw.Option
	logger *slog.Logger
}

// New creates an empty workspace. opts are passed to every saw.Compute call.
func New(logger *slog.Logger, opts ...saw.Option) *Workspace {
	return &Workspace{opts: opts, logger: logger}
}

// AddCriterion appends a criterion and inserts an absent score for it into
// every alternative.
func (w *Workspace) AddCriterion(name string, weight float64, typ saw.CriterionType) (saw.Criterion, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return saw.Criterion{}, ErrInvalidName
	}
	if !typ.Valid() {
		return saw.Criterion{}, ErrInvalidType
	}
	if math.IsNaN(weight) || math.IsInf(weight, 0) {
		return saw.Criterion{}, ErrInvalidWeight
	}

	c := saw.Criterion{ID: uuid.NewString(), Name: name, Weight: weight, Type: typ}

	w.mu.Lock()
	defer w.mu.Unlock()
	w.criteria = append(w.criteria, c)
	for i := range w.alternatives {
		w.alternatives[i].Scores[c.ID] = saw.Absent()
	}
	w.logger.Debug("criterion added", "criterion_id", c.ID, "name", c.Name, "type", c.Type, "weight", c.Weight)
	return c, nil
}

// RemoveCriterion deletes a criterion and purges its score from every
// alternative.
func (w *Workspace) RemoveCriterion(id string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	idx := w.criterionIndex(id)
	if idx < 0 {
		return fmt.Errorf("%w: %s", ErrCriterionNotFound, id)
	}
	w.criteria = append(w.criteria[:idx], w.criteria[idx+1:]...)
	for i := range w.alternatives {
		delete(w.alternatives[i].Scores, id)
	}
	w.logger.Debug("criterion removed", "criterion_id", id)
	return nil
}

// AddAlternative appends an alternative with an absent score for every
// known criterion.
func (w *Workspace) AddAlternative(name string) (saw.Alternative, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return saw.Alternative{}, ErrInvalidName
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	a := saw.Alternative{
		ID:     uuid.NewString(),
		Name:   name,
		Scores: make(map[string]saw.Value, len(w.criteria)),
	}
	for _, c := range w.criteria {
		a.Scores[c.ID] = saw.Absent()
	}
	w.alternatives = append(w.alternatives, a)
	w.logger.Debug("alternative added", "alternative_id", a.ID, "name", a.Name)
	return copyAlternative(a), nil
}

// RemoveAlternative deletes an alternative.
func (w *Workspace) RemoveAlternative(id string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	idx := w.alternativeIndex(id)
	if idx < 0 {
		return fmt.Errorf("%w: %s", ErrAlternativeNotFound, id)
	}
	w.alternatives = append(w.alternatives[:idx], w.alternatives[idx+1:]...)
	w.logger.Debug("alternative removed", "alternative_id", id)
	return nil
}

// SetScore stores a raw score. Passing saw.Absent() clears the cell.
func (w *Workspace) SetScore(alternativeID, criterionID string, v saw.Value) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	ai := w.alternativeIndex(alternativeID)
	if ai < 0 {
		return fmt.Errorf("%w: %s", ErrAlternativeNotFound, alternativeID)
	}
	if w.criterionIndex(criterionID) < 0 {
		return fmt.Errorf("%w: %s", ErrCriterionNotFound, criterionID)
	}
	w.alternatives[ai].Scores[criterionID] = v
	return nil
}

// Criteria returns a copy of the criteria in insertion order.
func (w *Workspace) Criteria() []saw.Criterion {
	w.mu.RLock()
	defer w.mu.RUnlock()
	out := make([]saw.Criterion, len(w.criteria))
	copy(out, w.criteria)
	return out
}

// Alternatives returns a deep copy of the alternatives in insertion order.
func (w *Workspace) Alternatives() []saw.Alternative {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.alternativesLocked()
}

// Replace swaps the whole matrix for the given one, as when importing a
// matrix document. Alternatives get an absent entry for any criterion they
// do not score, and scores for unknown criteria are dropped.
func (w *Workspace) Replace(criteria []saw.Criterion, alternatives []saw.Alternative) {
	cs := make([]saw.Criterion, len(criteria))
	copy(cs, criteria)

	as := make([]saw.Alternative, len(alternatives))
	for i, a := range alternatives {
		scores := make(map[string]saw.Value, len(cs))
		for _, c := range cs {
			scores[c.ID] = a.Scores[c.ID]
		}
		as[i] = saw.Alternative{ID: a.ID, Name: a.Name, Scores: scores}
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	w.criteria = cs
	w.alternatives = as
	w.last = nil
	w.logger.Info("workspace replaced", "criteria", len(cs), "alternatives", len(as))
}

// Reset clears every criterion, alternative and the retained outcome.
func (w *Workspace) Reset() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.criteria = nil
	w.alternatives = nil
	w.last = nil
	w.logger.Info("workspace reset")
}

// Size returns the number of criteria and alternatives.
func (w *Workspace) Size() (criteria, alternatives int) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return len(w.criteria), len(w.alternatives)
}

// Calculate evaluates the matrix and retains the outcome, replacing the
// previous one wholesale.
func (w *Workspace) Calculate() (*saw.Evaluation, error) {
	o := w.Evaluate()
	return o.Evaluation, o.Err
}

// Evaluate is Calculate returning the whole retained Outcome. The write
// lock is held from snapshot to store, so a concurrent Reset or Replace
// either precedes the evaluation or clears its outcome.
func (w *Workspace) Evaluate() Outcome {
	w.mu.Lock()
	defer w.mu.Unlock()

	criteria := make([]saw.Criterion, len(w.criteria))
	copy(criteria, w.criteria)
	ev, err := saw.Compute(criteria, w.alternativesLocked(), w.opts...)

	w.last = &Outcome{Evaluation: ev, Err: err, Criteria: len(criteria)}
	return *w.last
}

// Last returns the outcome of the most recent Calculate, or nil if the
// matrix has not been calculated since it was created, reset or replaced.
func (w *Workspace) Last() *Outcome {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.last
}

func (w *Workspace) alternativesLocked() []saw.Alternative {
	out := make([]saw.Alternative, len(w.alternatives))
	for i, a := range w.alternatives {
		out[i] = copyAlternative(a)
	}
	return out
}

func (w *Workspace) criterionIndex(id string) int {
	for i, c := range w.criteria {
		if c.ID == id {
			return i
		}
	}
	return -1
}

func (w *Workspace) alternativeIndex(id string) int {
	for i, a := range w.alternatives {
		if a.ID == id {
			return i
		}
	}
	return -1
}

func copyAlternative(a saw.Alternative) saw.Alternative {
	scores := make(map[string]saw.Value, len(a.Scores))
	for k, v := range a.Scores {
		scores[k] = v
	}
	return saw.Alternative{ID: a.ID, Name: a.Name, Scores: scores}
}
