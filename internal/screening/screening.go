package screening

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/serenity-hq/screener/internal/matching"
)

// Filter represents a single pre-screen step applied to programs before the
// matcher ranks them.
type Filter interface {
	Name() string
	Disable(reason string)
	IsEnabled() bool

	Apply(ctx context.Context, deps Deps, programs []*matching.Program) ([]*matching.Program, Step, error)
}

// Deps aggregates dependencies shared across all pre-screen steps.
type Deps struct {
	Logger *zap.Logger
	// AppliedProgramIDs holds the program ids the candidate already has an
	// application for.
	AppliedProgramIDs map[string]bool
}

// Step describes the result of executing a pre-screen step.
type Step struct {
	Initial int
	Dropped int
	Left    int
}

// Status represents runtime information about a filter.
type Status struct {
	Name    string
	Enabled bool
	Reason  string
}

// statusProvider is implemented by filters that can supply detailed status information.
type statusProvider interface {
	Status() Status
}

// DisableByName marks a filter with the provided name as disabled while keeping it in the list.
func DisableByName(steps []Filter, name, reason string) {
	for _, step := range steps {
		if step.Name() == name {
			step.Disable(reason)
		}
	}
}

// DefaultSteps returns the pre-screen pipeline auto-match runs: live programs
// only, known program types only, and no duplicate applications.
func DefaultSteps() []Filter {
	return []Filter{
		NewLive(),
		NewKnownType(),
		NewAppliedHistory(),
	}
}

// Run executes the supplied filters sequentially, returning the programs that
// survive every enabled step.
func Run(ctx context.Context, deps Deps, steps []Filter, programs []*matching.Program) ([]*matching.Program, error) {
	for _, step := range steps {
		if !step.IsEnabled() {
			if deps.Logger != nil {
				deps.Logger.Info("pre-screen step disabled", zap.String("name", step.Name()))
			}
			continue
		}

		next, info, err := step.Apply(ctx, deps, programs)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", step.Name(), err)
		}

		if deps.Logger != nil {
			deps.Logger.Debug("pre-screen step",
				zap.String("name", step.Name()),
				zap.Int("initial", info.Initial),
				zap.Int("dropped", info.Dropped),
				zap.Int("left", info.Left),
			)
		}

		programs = next
	}

	return programs, nil
}

// Describe returns status entries for the provided filters.
func Describe(steps []Filter) []Status {
	statuses := make([]Status, 0, len(steps))
	for _, step := range steps {
		if reporter, ok := step.(statusProvider); ok {
			statuses = append(statuses, reporter.Status())
			continue
		}

		statuses = append(statuses, Status{
			Name:    step.Name(),
			Enabled: step.IsEnabled(),
		})
	}
	return statuses
}
