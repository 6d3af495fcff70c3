package service

import (
	"context"
	"fmt"
	"runtime/debug"
	"time"

	"golang.org/x/sync/errgroup"

	mdwerror "github.com/msto63/euler/foundation/core/error"
	"github.com/msto63/euler/internal/euler/format"
	"github.com/msto63/euler/internal/euler/kernel"
	"github.com/msto63/euler/internal/euler/params"
	"github.com/msto63/euler/pkg/core/cache"
	"github.com/msto63/euler/pkg/core/logging"
)

// ErrorKey is the only key of a failed result
const ErrorKey = "error"

// InvalidTaskMessage is returned for task ids outside 1..8
const InvalidTaskMessage = "Invalid task number"

// DefaultMaxBatch limits concurrently solved requests of one batch
const DefaultMaxBatch = 16

// Request is one solve call
type Request struct {
	TaskID int        `json:"task_id" yaml:"task_id"`
	Params params.Set `json:"params" yaml:"params"`
}

// Solver is the dispatcher contract shared by the local service and the
// gRPC client
type Solver interface {
	Solve(ctx context.Context, taskID int, p params.Set) (map[string]interface{}, error)
	ListTasks(ctx context.Context) ([]kernel.Task, error)
}

// Config holds service configuration
type Config struct {
	// Renderer draws charts; nil disables them
	Renderer kernel.Renderer
	// Cache stores formatted results; nil disables caching
	Cache *cache.Cache
	// MaxBatch limits the concurrency of SolveBatch
	MaxBatch int
}

// Service is the euler dispatcher
type Service struct {
	logger   *logging.Logger
	renderer kernel.Renderer
	cache    *cache.Cache
	maxBatch int
	tasks    map[int]kernel.Task
}

// NewService creates a new euler service
func NewService(cfg Config) (*Service, error) {
	s := &Service{
		logger:   logging.New("euler"),
		renderer: cfg.Renderer,
		cache:    cfg.Cache,
		maxBatch: cfg.MaxBatch,
		tasks:    make(map[int]kernel.Task),
	}
	if s.maxBatch <= 0 {
		s.maxBatch = DefaultMaxBatch
	}
	for _, t := range kernel.Tasks() {
		if _, dup := s.tasks[t.ID]; dup {
			return nil, fmt.Errorf("duplicate task id %d", t.ID)
		}
		s.tasks[t.ID] = t
	}
	return s, nil
}

// Tasks returns the task catalogue
func (s *Service) Tasks() []kernel.Task {
	return kernel.Tasks()
}

// ListTasks implements Solver
func (s *Service) ListTasks(ctx context.Context) ([]kernel.Task, error) {
	return s.Tasks(), nil
}

// Solve runs task taskID with p and returns the formatted result. Unknown
// tasks and invalid input give a result holding only ErrorKey. A non-nil
// error means the service itself failed.
func (s *Service) Solve(ctx context.Context, taskID int, p params.Set) (map[string]interface{}, error) {
	if err := ctx.Err(); err != nil {
		return nil, kernel.ContextError(err)
	}

	task, ok := s.tasks[taskID]
	if !ok {
		s.logger.Warn("Unknown task", "task_id", taskID)
		return ErrorResult(InvalidTaskMessage), nil
	}
	if p == nil {
		p = params.Set{}
	}

	key, keyErr := cache.ResultKey(taskID, p)
	if s.cache != nil && keyErr == nil {
		if v, hit := s.cache.Get(key); hit {
			s.logger.Debug("Cache hit", "task_id", taskID)
			return format.Map(v.(map[string]interface{})), nil
		}
	}

	start := time.Now()
	raw, err := s.run(ctx, task, p)
	duration := time.Since(start)

	if err != nil {
		if mdwerror.GetCode(err).IsDomain() {
			s.logger.Info("Task rejected", "task_id", taskID, "code", mdwerror.GetCode(err), "error", err.Error())
			return ErrorResult(err.Error()), nil
		}
		s.logger.Error("Task failed", "task_id", taskID, "duration", duration, "error", err)
		return nil, mdwerror.Wrap(err, fmt.Sprintf("task %d failed", taskID)).WithOperation("euler.Solve")
	}

	res := format.Map(raw)
	if s.cache != nil && keyErr == nil {
		s.cache.Set(key, format.Map(res))
	}

	s.logger.Info("Task solved", "task_id", taskID, "task", task.Name, "duration", duration)
	return res, nil
}

// run invokes the kernel, turning a panic into an internal error
func (s *Service) run(ctx context.Context, task kernel.Task, p params.Set) (res kernel.Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("Kernel panic recovered", "task_id", task.ID, "panic", r, "stack", string(debug.Stack()))
			res = nil
			err = mdwerror.Newf("kernel %s panicked: %v", task.Name, r).WithCode(mdwerror.CodeInternal)
		}
	}()
	return task.Run(ctx, p, s.renderer)
}

// SolveBatch solves independent requests concurrently. Results keep the
// order of reqs. The first service failure cancels the batch.
func (s *Service) SolveBatch(ctx context.Context, reqs []Request) ([]map[string]interface{}, error) {
	results := make([]map[string]interface{}, len(reqs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.maxBatch)
	for i, req := range reqs {
		i, req := i, req
		g.Go(func() error {
			res, err := s.Solve(gctx, req.TaskID, req.Params)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// ErrorResult builds the result of a rejected call
func ErrorResult(msg string) map[string]interface{} {
	return map[string]interface{}{ErrorKey: msg}
}

// ErrorMessage returns the message of a rejected result
func ErrorMessage(res map[string]interface{}) (string, bool) {
	msg, ok := res[ErrorKey].(string)
	return msg, ok
}
