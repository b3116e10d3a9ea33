package calc

import (
	"context"
	stderrors "errors"
	"math"
	"strconv"
	"strings"
	"sync"
	"time"

	cplxerror "github.com/msto63/cplx/foundation/core/error"
	"github.com/msto63/cplx/foundation/core/errors"
	cplxlog "github.com/msto63/cplx/foundation/core/log"
	"github.com/msto63/cplx/foundation/core/validation"
	"github.com/msto63/cplx/foundation/utils/assertx"
	"github.com/msto63/cplx/foundation/utils/complexx"
	"github.com/msto63/cplx/pkg/core/cache"
	"github.com/msto63/cplx/pkg/core/config"
)

// Evaluation is one finished call, as passed to a Recorder
type Evaluation struct {
	SessionID string
	RequestID string
	Function  string
	Args      []complexx.Complex
	Result    Result
	Err       error
	Duration  time.Duration
	Timestamp time.Time
}

// Recorder stores evaluations, e.g. in the history database
type Recorder interface {
	RecordEvaluation(ctx context.Context, ev Evaluation) error
}

// Options configures an Evaluator
type Options struct {
	// Strict validates operands with assertx and rejects degenerate results
	Strict bool
	// MaxMagnitude bounds operand magnitudes in strict mode; 0 disables it
	MaxMagnitude float64
	// CacheSize of 0 disables the result cache
	CacheSize int
	CacheTTL  time.Duration
	// Timeout of 0 means no limit beyond the caller's context
	Timeout  time.Duration
	Logger   *cplxlog.Logger
	Recorder Recorder
}

// OptionsFromSettings maps the [eval] section onto Options
func OptionsFromSettings(s config.EvalConfig) Options {
	return Options{
		Strict:       s.Strict,
		MaxMagnitude: s.MaxMagnitude,
		CacheSize:    s.CacheSize,
		CacheTTL:     s.CacheTTL,
		Timeout:      s.Timeout,
	}
}

// Evaluator resolves function names and applies them to arguments
type Evaluator struct {
	registry *Registry
	cache    *cache.Cache
	logger   *cplxlog.Logger

	mu       sync.RWMutex
	opts     Options
	operands *validation.ValidatorChain
}

// NewEvaluator creates an evaluator over registry. A nil registry uses
// the default kernel registry.
func NewEvaluator(registry *Registry, opts Options) *Evaluator {
	if opts.Logger == nil {
		opts.Logger = cplxlog.GetDefault()
	}
	if registry == nil {
		registry = NewDefaultRegistry(opts.Logger)
	}

	e := &Evaluator{
		registry: registry,
		opts:     opts,
		operands: assertx.Operands(opts.MaxMagnitude),
		logger:   opts.Logger.WithField("component", "calc"),
	}
	if opts.CacheSize > 0 {
		e.cache = cache.New(cache.Config{MaxItems: opts.CacheSize, TTL: opts.CacheTTL})
	}
	return e
}

// Registry returns the function registry
func (e *Evaluator) Registry() *Registry {
	return e.registry
}

// SetRecorder replaces the recorder; nil disables recording
func (e *Evaluator) SetRecorder(r Recorder) {
	e.mu.Lock()
	e.opts.Recorder = r
	e.mu.Unlock()
}

// Strict reports whether operands and results are validated
func (e *Evaluator) Strict() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.opts.Strict
}

// Reconfigure applies the strict mode, magnitude bound and timeout of opts
// to subsequent evaluations. The cache, logger and recorder are fixed at
// construction and left untouched.
func (e *Evaluator) Reconfigure(opts Options) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if opts.MaxMagnitude != e.opts.MaxMagnitude {
		e.operands = assertx.Operands(opts.MaxMagnitude)
	}
	e.opts.Strict = opts.Strict
	e.opts.MaxMagnitude = opts.MaxMagnitude
	e.opts.Timeout = opts.Timeout
}

// current returns the reconfigurable state for one evaluation
func (e *Evaluator) current() (Options, *validation.ValidatorChain) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.opts, e.operands
}

// CacheStats returns the result cache counters; zero when caching is off
func (e *Evaluator) CacheStats() cache.Stats {
	if e.cache == nil {
		return cache.Stats{}
	}
	return e.cache.Stats()
}

// Close releases the result cache
func (e *Evaluator) Close() {
	if e.cache != nil {
		e.cache.Close()
	}
}

// EvaluateLine parses and evaluates one input line
func (e *Evaluator) EvaluateLine(ctx context.Context, line string) (Call, Result, error) {
	call, err := ParseLine(line)
	if err != nil {
		return call, Result{}, err
	}
	res, err := e.Evaluate(ctx, call.Function, call.Args...)
	return call, res, err
}

// Evaluate applies the named function to args.
//
// Errors: UNKNOWN_FUNCTION for names not in the registry, ARITY_MISMATCH
// for a wrong argument count, INVALID_INPUT for complex values passed as
// real or integer parameters. In strict mode operands must be finite and
// within MaxMagnitude, and a NaN or infinite result is DEGENERATE_VALUE.
// Outside strict mode degenerate values are returned as they are.
func (e *Evaluator) Evaluate(ctx context.Context, name string, args ...complexx.Complex) (Result, error) {
	start := time.Now()
	timer := e.logger.StartTimer("evaluate").
		WithField("function", name).
		WithField("args", len(args))

	res, err := e.evaluate(ctx, name, args)

	switch {
	case err == nil:
		timer.StopWithResult(true, res.String())
	case cplxerror.HasCode(err, cplxerror.CodeInternal):
		timer.StopWithError(err)
	default:
		timer.StopWithResult(false, string(cplxerror.GetCode(err)))
	}

	e.record(ctx, Evaluation{
		SessionID: validation.SessionID(ctx),
		RequestID: validation.RequestID(ctx),
		Function:  strings.ToLower(strings.TrimSpace(name)),
		Args:      args,
		Result:    res,
		Err:       err,
		Duration:  time.Since(start),
		Timestamp: start,
	})
	return res, err
}

func (e *Evaluator) evaluate(ctx context.Context, name string, args []complexx.Complex) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, contextError(err)
	}

	fn, err := e.registry.Lookup(name)
	if err != nil {
		return Result{}, err
	}
	if len(args) != fn.Arity() {
		return Result{}, errors.CalcArityMismatch(fn.Name, fn.Arity(), len(args))
	}

	opts, operands := e.current()
	if opts.Strict {
		if err := assertx.Check(operands.Name(), operands, args...); err != nil {
			return Result{}, err
		}
	}

	compute := func() (Result, error) { return callWithTimeout(ctx, fn, args, opts.Timeout) }
	var res Result
	if e.cache != nil {
		v, err := e.cache.GetOrSet(cacheKey(fn.Name, args), func() (interface{}, error) {
			return compute()
		})
		if err != nil {
			return Result{}, err
		}
		res = v.(Result)
	} else if res, err = compute(); err != nil {
		return Result{}, err
	}

	if opts.Strict && res.IsDegenerate() {
		return Result{}, assertx.RequireResult(fn.Name, res.Complex())
	}
	return res, nil
}

// callWithTimeout runs fn under timeout. Kernel functions do not
// block, so the goroutine always finishes.
func callWithTimeout(ctx context.Context, fn *Function, args []complexx.Complex, timeout time.Duration) (Result, error) {
	if timeout <= 0 {
		return fn.Call(args...)
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	type outcome struct {
		res Result
		err error
	}
	done := make(chan outcome, 1)
	go func() {
		res, err := fn.Call(args...)
		done <- outcome{res, err}
	}()

	select {
	case o := <-done:
		return o.res, o.err
	case <-ctx.Done():
		return Result{}, contextError(ctx.Err())
	}
}

func (e *Evaluator) record(ctx context.Context, ev Evaluation) {
	e.mu.RLock()
	recorder := e.opts.Recorder
	e.mu.RUnlock()
	if recorder == nil {
		return
	}
	if err := recorder.RecordEvaluation(context.WithoutCancel(ctx), ev); err != nil {
		e.logger.WarnWithErr("failed to record evaluation", err, cplxlog.Fields{"function": ev.Function})
	}
}

func contextError(err error) error {
	code := cplxerror.CodeCanceled
	if stderrors.Is(err, context.DeadlineExceeded) {
		code = cplxerror.CodeTimeout
	}
	return errors.NewErrorBuilder(errors.ModuleCalc).
		Operation("evaluate").
		Message("evaluation interrupted").
		Cause(err).
		Code(code).
		Build()
}

// cacheKey identifies a call by function name and the exact bit patterns
// of its arguments, so -0 and 0 are cached separately
func cacheKey(name string, args []complexx.Complex) string {
	var b strings.Builder
	b.WriteString(name)
	for _, z := range args {
		b.WriteByte('/')
		b.WriteString(strconv.FormatUint(math.Float64bits(z.Real), 16))
		b.WriteByte(',')
		b.WriteString(strconv.FormatUint(math.Float64bits(z.Imag), 16))
	}
	return b.String()
}
