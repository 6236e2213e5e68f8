package pipeline

import (
	"context"
	"encoding/json"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/CursiveCrow/cadence/pkg/cache"
	"github.com/CursiveCrow/cadence/pkg/engine"
	"github.com/CursiveCrow/cadence/pkg/engine/layout"
	"github.com/CursiveCrow/cadence/pkg/engine/timing"
	"github.com/CursiveCrow/cadence/pkg/errors"
	"github.com/CursiveCrow/cadence/pkg/observability"
	"github.com/CursiveCrow/cadence/pkg/plan"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API can use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete validate → schedule → layout pipeline with
// caching. The plan is validated on every call; only the computed schedule
// is cached, so a poisoned cache entry can never bypass the gates.
func (r *Runner) Execute(ctx context.Context, p *plan.Plan, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidOptions, err, "invalid options")
	}
	logger := r.logger(opts)

	result := &Result{}
	result.Stats.TaskCount = len(p.Tasks)
	result.Stats.DepCount = len(p.Dependencies)

	// Stage 1: Validate
	validateStart := time.Now()
	err := r.Validate(ctx, p)
	result.Stats.ValidateTime = time.Since(validateStart)
	if err != nil {
		return nil, err
	}

	logger.Info("validated plan",
		"tasks", len(p.Tasks),
		"dependencies", len(p.Dependencies),
		"duration", result.Stats.ValidateTime)

	result.PlanHash = p.Hash()
	cacheKey := r.Keyer.ScheduleKey(result.PlanHash, opts.KeyOpts())

	// An unnamed custom constraint has no cache key identity, so its
	// schedule can neither be served from cache nor stored.
	cacheable := opts.cacheable()

	// Try cache first (unless refresh requested)
	if cacheable && !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			var cached Schedule
			if err := json.Unmarshal(data, &cached); err == nil {
				observability.Cache().OnCacheHit(ctx, "schedule")
				result.Schedule = cached
				result.CacheInfo.ScheduleHit = true
				logger.Info("schedule from cache", "key", cacheKey)
				return result, nil
			}
			// Undecodable entry: recompute and overwrite.
		}
		observability.Cache().OnCacheMiss(ctx, "schedule")
	}

	// Stage 2: Schedule
	scheduleStart := time.Now()
	order, analysis, leveled := r.ComputeSchedule(ctx, p, opts)
	result.Order = order
	result.Timing = analysis
	result.Leveled = leveled
	result.Stats.ScheduleTime = time.Since(scheduleStart)

	logger.Info("computed schedule",
		"project_duration", analysis.ProjectDuration,
		"leveled", opts.ShouldLevel(),
		"duration", result.Stats.ScheduleTime)

	// Stage 3: Layout
	layoutStart := time.Now()
	lanes, rows := r.ComputeLayout(ctx, p, opts)
	result.Lanes = lanes
	result.Rows = rows
	result.Stats.LayoutTime = time.Since(layoutStart)

	logger.Info("computed layout",
		"lanes", lanes.LaneCount,
		"duration", result.Stats.LayoutTime)

	// Cache the schedule
	if cacheable {
		if data, err := json.Marshal(result.Schedule); err == nil {
			if err := r.Cache.Set(ctx, cacheKey, data, cache.DefaultTTL); err == nil {
				observability.Cache().OnCacheSet(ctx, "schedule", len(data))
			}
		}
	}

	return result, nil
}

// Validate runs both validation gates: referential integrity on the plan,
// then cycle detection over the dependency graph.
func (r *Runner) Validate(ctx context.Context, p *plan.Plan) error {
	observability.Engine().OnValidateStart(ctx, len(p.Tasks), len(p.Dependencies))
	start := time.Now()

	var err error
	if verr := p.Validate(); verr != nil {
		err = verr
	} else if cerr := engine.Validate(p); cerr != nil {
		err = errors.Wrap(errors.ErrCodeInvalidGraph, cerr, "cycle detection")
	}

	observability.Engine().OnValidateComplete(ctx, time.Since(start), err)
	return err
}

// ComputeSchedule runs topological ordering, critical path analysis, and
// optional resource leveling. The plan must already be validated.
func (r *Runner) ComputeSchedule(ctx context.Context, p *plan.Plan, opts Options) ([]string, *timing.Analysis, []timing.Placement) {
	observability.Engine().OnScheduleStart(ctx, len(p.Tasks))
	start := time.Now()

	order := engine.TopoSort(p)

	var analysis *timing.Analysis
	if opts.Constraint != nil {
		analysis = timing.AnalyzeWithConstraint(p, opts.Constraint)
	} else {
		analysis = timing.Analyze(p)
	}

	var leveled []timing.Placement
	if opts.ShouldLevel() {
		leveled = timing.Level(p.Tasks, opts.MaxParallel)
	}

	observability.Engine().OnScheduleComplete(ctx, time.Since(start), nil)
	return order, analysis, leveled
}

// ComputeLayout runs lane assignment and optional row assignment.
// The plan must already be validated.
func (r *Runner) ComputeLayout(ctx context.Context, p *plan.Plan, opts Options) (*layout.LaneAssignment, *layout.RowAssignment) {
	observability.Engine().OnLayoutStart(ctx, len(p.Tasks))
	start := time.Now()

	lanes := layout.AssignLanes(p)

	var rows *layout.RowAssignment
	if opts.ShouldAssignRows() {
		rows = layout.AssignRows(groupTasks(p, opts.Groups), opts.RowCount)
	}

	observability.Engine().OnLayoutComplete(ctx, lanes.LaneCount, time.Since(start), nil)
	return lanes, rows
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// logger returns the per-run logger, falling back to the runner's, then to
// a discard logger so a zero-value Runner stays usable.
func (r *Runner) logger(opts Options) *log.Logger {
	if opts.Logger != nil {
		return opts.Logger
	}
	if r.Logger != nil {
		return r.Logger
	}
	return log.New(io.Discard)
}

// groupTasks partitions tasks into row groups. Tasks without an explicit
// group share the empty group name.
func groupTasks(p *plan.Plan, groups map[string]string) map[string][]plan.Task {
	byGroup := make(map[string][]plan.Task)
	for _, t := range p.Tasks {
		g := groups[t.ID]
		byGroup[g] = append(byGroup[g], t)
	}
	return byGroup
}
