package screening

import (
	"context"

	"go.uber.org/zap"

	"github.com/serenity-hq/screener/internal/matching"
)

type liveFilter struct{}

// NewLive creates a filter that drops programs that are not accepting
// candidates.
func NewLive() Filter {
	return &liveFilter{}
}

func (f *liveFilter) Name() string { return "live" }

func (f *liveFilter) Disable(string) {}

func (f *liveFilter) IsEnabled() bool { return true }

func (f *liveFilter) Apply(_ context.Context, deps Deps, programs []*matching.Program) ([]*matching.Program, Step, error) {
	initial := len(programs)
	kept := make([]*matching.Program, 0, initial)
	var dropped []string
	for _, p := range programs {
		if p.Status != matching.ProgramLive {
			dropped = append(dropped, p.ID)
			continue
		}
		kept = append(kept, p)
	}

	if deps.Logger != nil && len(dropped) > 0 {
		deps.Logger.Debug("excluding programs that are not live",
			zap.Strings("excluded_programs", dropped),
			zap.Int("programs_left", len(kept)),
		)
	}

	return kept, Step{Initial: initial, Dropped: len(dropped), Left: len(kept)}, nil
}

type knownTypeFilter struct{}

// NewKnownType creates a filter that drops programs whose type has no static
// definition. Such programs cannot be ranked meaningfully.
func NewKnownType() Filter {
	return &knownTypeFilter{}
}

func (f *knownTypeFilter) Name() string { return "known_type" }

func (f *knownTypeFilter) Disable(string) {}

func (f *knownTypeFilter) IsEnabled() bool { return true }

func (f *knownTypeFilter) Apply(_ context.Context, deps Deps, programs []*matching.Program) ([]*matching.Program, Step, error) {
	initial := len(programs)
	kept := make([]*matching.Program, 0, initial)
	var dropped []string
	for _, p := range programs {
		if _, ok := matching.Definitions[p.Type]; !ok {
			dropped = append(dropped, p.ID)
			continue
		}
		kept = append(kept, p)
	}

	if deps.Logger != nil && len(dropped) > 0 {
		deps.Logger.Warn("excluding programs with unknown type",
			zap.Strings("excluded_programs", dropped),
			zap.Int("programs_left", len(kept)),
		)
	}

	return kept, Step{Initial: initial, Dropped: len(dropped), Left: len(kept)}, nil
}

type appliedHistoryFilter struct {
	ignore bool
	reason string
}

// NewAppliedHistory creates a filter that drops programs the candidate
// already has an application for.
func NewAppliedHistory() Filter {
	return &appliedHistoryFilter{}
}

func (f *appliedHistoryFilter) Name() string { return "applied_history" }

func (f *appliedHistoryFilter) Disable(reason string) {
	f.ignore = true
	f.reason = reason
}

func (f *appliedHistoryFilter) IsEnabled() bool { return !f.ignore }

func (f *appliedHistoryFilter) Apply(_ context.Context, deps Deps, programs []*matching.Program) ([]*matching.Program, Step, error) {
	initial := len(programs)
	if len(deps.AppliedProgramIDs) == 0 {
		return programs, Step{Initial: initial, Dropped: 0, Left: initial}, nil
	}

	kept := make([]*matching.Program, 0, initial)
	var dropped []string
	for _, p := range programs {
		if deps.AppliedProgramIDs[p.ID] {
			dropped = append(dropped, p.ID)
			continue
		}
		kept = append(kept, p)
	}

	if deps.Logger != nil && len(dropped) > 0 {
		deps.Logger.Debug("excluding programs with existing applications",
			zap.Strings("excluded_programs", dropped),
			zap.Int("programs_left", len(kept)),
		)
	}

	return kept, Step{Initial: initial, Dropped: len(dropped), Left: len(kept)}, nil
}

func (f *appliedHistoryFilter) Status() Status {
	return Status{Name: f.Name(), Enabled: f.IsEnabled(), Reason: f.reason}
}
