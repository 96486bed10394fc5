package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/poisepms/poise/internal/metrics"
	"github.com/poisepms/poise/internal/models"
)

// Statement is a single write inside a plan. Queries use '?' placeholders.
type Statement struct {
	Label string
	Query string
	Args  []any
	// MustAffect fails the statement when it changes no rows
	MustAffect bool
}

// WritePlan is an ordered list of statements executed as one atomic unit,
// plus the in-memory mutation to apply once they have been committed.
type WritePlan struct {
	Label      string
	Statements []Statement
	// Apply runs only after a successful commit. It must not fail.
	Apply func()
}

// Stage names the point of a plan's execution where a failure happened
type Stage string

const (
	StageBegin     Stage = "begin"
	StageSavepoint Stage = "savepoint"
	StageStatement Stage = "statement"
	StageRelease   Stage = "release"
	StageCommit    Stage = "commit"
)

// WriteError reports a failed write plan. It unwraps to ErrWriteRejected or
// ErrStoreUnavailable and to the underlying driver error.
type WriteError struct {
	Plan      string
	PlanID    string
	Stage     Stage
	Index     int // 1-based position of the failing statement, 0 outside StageStatement
	Statement string
	Reason    Reason
	Err       error
}

func (e *WriteError) Error() string {
	if e.Stage == StageStatement {
		return fmt.Sprintf("%s: plan %s: statement %d (%s) failed [%s]: %v",
			e.kind(), e.Plan, e.Index, e.Statement, e.Reason, e.Err)
	}
	return fmt.Sprintf("%s: plan %s: %s failed: %v", e.kind(), e.Plan, e.Stage, e.Err)
}

// Unwrap exposes both the taxonomy sentinel and the cause
func (e *WriteError) Unwrap() []error {
	return []error{e.kind(), e.Err}
}

func (e *WriteError) kind() error {
	if e.Stage != StageStatement || e.Reason.unavailable() {
		return models.ErrStoreUnavailable
	}
	return models.ErrWriteRejected
}

var (
	errEmptyPlan      = errors.New("write plan has no statements")
	errNoRowsAffected = errors.New("statement affected no rows")
)

// Engine executes write plans against one store connection
type Engine struct {
	db      *sql.DB
	dialect Dialect
	timeout time.Duration
	logger  *slog.Logger
	metrics *metrics.Recorder
}

// EngineOption configures an Engine
type EngineOption func(*Engine)

// WithTimeout bounds every plan's execution. Zero disables the bound.
func WithTimeout(d time.Duration) EngineOption {
	return func(e *Engine) {
		e.timeout = d
	}
}

// WithLogger sets the engine's logger
func WithLogger(logger *slog.Logger) EngineOption {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithMetrics records plan outcomes in m
func WithMetrics(m *metrics.Recorder) EngineOption {
	return func(e *Engine) {
		e.metrics = m
	}
}

// NewEngine creates a write engine over db
func NewEngine(db *sql.DB, dialect Dialect, opts ...EngineOption) *Engine {
	e := &Engine{
		db:      db,
		dialect: dialect,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// DB returns the underlying connection
func (e *Engine) DB() *sql.DB { return e.db }

// Dialect returns the store dialect
func (e *Engine) Dialect() Dialect { return e.dialect }

// Execute runs every statement of plan inside a transaction guarded by a
// savepoint. If all statements succeed the transaction commits and
// plan.Apply runs. Otherwise the store is rolled back to the savepoint, the
// transaction is abandoned and Apply never runs.
func (e *Engine) Execute(ctx context.Context, plan WritePlan) error {
	planID := uuid.NewString()
	if len(plan.Statements) == 0 {
		return &WriteError{Plan: plan.Label, PlanID: planID, Stage: StageStatement, Reason: ReasonOther, Err: errEmptyPlan}
	}

	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	e.logger.Debug("executing write plan", "plan", plan.Label, "plan_id", planID, "statements", len(plan.Statements))

	start := time.Now()
	if err := e.run(ctx, plan, planID); err != nil {
		var we *WriteError
		reason := string(ReasonOther)
		if errors.As(err, &we) {
			reason = string(we.Reason)
			e.logger.Warn("write plan rolled back",
				"plan", plan.Label,
				"plan_id", planID,
				"stage", we.Stage,
				"index", we.Index,
				"statement", we.Statement,
				"reason", we.Reason,
				"error", we.Err,
			)
		}
		e.metrics.ObserveRollback(plan.Label, reason, time.Since(start))
		return err
	}
	e.metrics.ObserveCommit(plan.Label, time.Since(start))

	if plan.Apply != nil {
		plan.Apply()
	}
	return nil
}

// run is the transactional part of Execute
func (e *Engine) run(ctx context.Context, plan WritePlan, planID string) error {
	fail := func(stage Stage, err error) error {
		reason := classify(err)
		if stage != StageStatement && !reason.unavailable() {
			reason = ReasonConnection
		}
		return &WriteError{Plan: plan.Label, PlanID: planID, Stage: stage, Reason: reason, Err: err}
	}

	tx, err := e.db.BeginTx(ctx, nil)
	if err != nil {
		return fail(StageBegin, err)
	}
	defer func() {
		if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
			e.logger.Error("failed to rollback transaction", "plan", plan.Label, "plan_id", planID, "error", err)
		}
	}()

	savepoint := "wp_" + strings.ReplaceAll(planID, "-", "")
	if _, err := tx.ExecContext(ctx, "SAVEPOINT "+savepoint); err != nil {
		return fail(StageSavepoint, err)
	}

	for i, stmt := range plan.Statements {
		if err := e.exec(ctx, tx, stmt); err != nil {
			// the plan's context may already be done; the rollback must still run
			rbCtx := context.WithoutCancel(ctx)
			if _, rbErr := tx.ExecContext(rbCtx, "ROLLBACK TO SAVEPOINT "+savepoint); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
				e.logger.Error("failed to roll back to savepoint", "plan", plan.Label, "plan_id", planID, "error", rbErr)
			}
			we := fail(StageStatement, err).(*WriteError)
			we.Index = i + 1
			we.Statement = stmt.Label
			return we
		}
	}

	if _, err := tx.ExecContext(ctx, "RELEASE SAVEPOINT "+savepoint); err != nil {
		return fail(StageRelease, err)
	}
	if err := tx.Commit(); err != nil {
		return fail(StageCommit, err)
	}
	return nil
}

func (e *Engine) exec(ctx context.Context, tx *sql.Tx, stmt Statement) error {
	res, err := tx.ExecContext(ctx, e.dialect.Rebind(stmt.Query), stmt.Args...)
	if err != nil {
		return err
	}
	if !stmt.MustAffect {
		return nil
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return errNoRowsAffected
	}
	return nil
}
