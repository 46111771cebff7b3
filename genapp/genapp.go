// Package genapp turns natural-language descriptions into generated source
// files: it plans the files with a hosted model, writes them through a
// storage backend, and keeps a bounded undo log of every mutation.
package genapp

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"

	"github.com/sokinpui/genapp/cli"
	"github.com/sokinpui/genapp/internal/analyzer"
	"github.com/sokinpui/genapp/internal/completion"
	"github.com/sokinpui/genapp/internal/config"
	"github.com/sokinpui/genapp/internal/history"
	"github.com/sokinpui/genapp/internal/mutator"
	"github.com/sokinpui/genapp/internal/planner"
	"github.com/sokinpui/genapp/internal/source"
	"github.com/sokinpui/genapp/internal/storage"
	"github.com/sokinpui/genapp/model"
)

// ProgressUpdate is a callback function to report generation progress.
type ProgressUpdate func(current, total int)

// DetailedError enhances a standard error with a stack trace.
type DetailedError struct {
	Err   error
	Stack []byte
}

func (e *DetailedError) Error() string {
	return e.Err.Error()
}

func (e *DetailedError) Unwrap() error {
	return e.Err
}

// App wires the collaborators together: planner, mutator, undo log, and the
// storage backend they share. Collaborators are constructed explicitly and
// passed by reference; there is no ambient global state.
type App struct {
	cfg            *cli.Config
	backend        storage.Backend
	log            *history.Log
	mutator        *mutator.Mutator
	planner        *planner.Planner
	sourceProvider *source.Provider
	closer         func()
}

// Option overrides a collaborator, mainly for tests and embedding.
type Option func(*App)

// WithCompletionClient replaces the default OpenAI-backed client.
func WithCompletionClient(c completion.Client) Option {
	return func(a *App) {
		a.planner = planner.New(c, a.cfg.MaxTokens)
	}
}

// WithBackend replaces the storage backend selected from the flags.
func WithBackend(b storage.Backend) Option {
	return func(a *App) {
		a.backend = b
	}
}

// New creates a new App instance from the parsed flags.
func New(cfg *cli.Config, opts ...Option) (*App, error) {
	settings := config.Load()
	if cfg.Model != "" {
		settings.Model = cfg.Model
	}
	if cfg.MaxTokens > 0 {
		settings.MaxTokens = cfg.MaxTokens
	}
	cfg.MaxTokens = settings.MaxTokens

	a := &App{
		cfg:            cfg,
		log:            history.New(history.DefaultCapacity),
		sourceProvider: source.New(cfg.Args),
		planner:        planner.New(completion.NewOpenAI(settings), settings.MaxTokens),
	}

	if cfg.Nvim {
		backend, err := storage.NewNvim(cfg.Dir)
		if err != nil {
			return nil, fmt.Errorf("failed to connect storage to nvim: %w", err)
		}
		a.backend = backend
		a.closer = backend.Close
	} else {
		backend, err := storage.NewDir(cfg.Dir)
		if err != nil {
			return nil, fmt.Errorf("failed to open project root: %w", err)
		}
		a.backend = backend
	}

	for _, opt := range opts {
		opt(a)
	}
	a.mutator = mutator.New(a.backend, a.log)
	return a, nil
}

// Close releases the storage backend, if it holds a connection.
func (a *App) Close() {
	if a.closer != nil {
		a.closer()
	}
}

// SetProgressCallback sets a function to be called for progress updates
// during chunked generation.
func (a *App) SetProgressCallback(cb ProgressUpdate) {
	a.planner.SetProgress(planner.Progress(cb))
}

// Execute runs the use case selected by the flags.
func (a *App) Execute(ctx context.Context) (summary model.Summary, err error) {
	// Centralized panic recovery.
	defer func() {
		if r := recover(); r != nil {
			err = &DetailedError{
				Err:   fmt.Errorf("internal panic: %v", r),
				Stack: debug.Stack(),
			}
		}
	}()

	switch {
	case a.cfg.Undo:
		return a.UndoLast()
	case a.cfg.Update:
		return a.runWithDescription(ctx, a.UpdateApp)
	case a.cfg.Component:
		return a.runSnippet(ctx, func(ctx context.Context, desc string) (string, error) {
			return a.GenerateComponent(ctx, desc, a.cfg.Framework)
		})
	case a.cfg.Function:
		return a.runSnippet(ctx, func(ctx context.Context, desc string) (string, error) {
			return a.GenerateFunction(ctx, desc, a.cfg.Language)
		})
	default:
		return a.runWithDescription(ctx, func(ctx context.Context, desc string) (model.Summary, error) {
			return a.CreateApp(ctx, desc, a.cfg.Framework)
		})
	}
}

func (a *App) runWithDescription(ctx context.Context, run func(context.Context, string) (model.Summary, error)) (model.Summary, error) {
	description, err := a.sourceProvider.GetDescription()
	if err != nil {
		return model.Summary{}, err
	}
	if description == "" {
		return model.Summary{Message: "Description is empty. Nothing to generate."}, nil
	}
	return run(ctx, description)
}

func (a *App) runSnippet(ctx context.Context, generate func(context.Context, string) (string, error)) (model.Summary, error) {
	description, err := a.sourceProvider.GetDescription()
	if err != nil {
		return model.Summary{}, err
	}
	if description == "" {
		return model.Summary{Message: "Description is empty. Nothing to generate."}, nil
	}
	code, err := generate(ctx, description)
	if err != nil {
		return model.Summary{}, err
	}
	return model.Summary{Code: code}, nil
}

// CreateApp plans a new application and creates every planned file. The
// first failing file aborts the run; files already written stay on disk,
// each independently undoable.
func (a *App) CreateApp(ctx context.Context, description, framework string) (model.Summary, error) {
	plan, err := a.planner.PlanApp(ctx, description, framework)
	if err != nil {
		return model.Summary{}, fmt.Errorf("failed to plan application: %w", err)
	}

	summary := model.Summary{Degraded: plan.Degraded}
	for _, file := range plan.Files {
		if err := a.mutator.Create(file.Path, file.Content); err != nil {
			return summary, fmt.Errorf("failed to create %s: %w", file.Path, err)
		}
		summary.Created = append(summary.Created, file.Path)
	}
	summary.Message = fmt.Sprintf("Generated %d file(s).", len(summary.Created))
	return summary, nil
}

// UpdateApp analyzes the existing project, plans the changes, and applies
// them.
func (a *App) UpdateApp(ctx context.Context, description string) (model.Summary, error) {
	projectSummary, err := analyzer.Analyze(a.cfg.Dir)
	if err != nil {
		return model.Summary{}, fmt.Errorf("failed to analyze project: %w", err)
	}

	changes, err := a.planner.PlanUpdate(ctx, description, projectSummary)
	if err != nil {
		return model.Summary{}, fmt.Errorf("failed to plan update: %w", err)
	}

	var summary model.Summary
	for _, change := range changes {
		switch change.Action {
		case model.ActionCreate:
			err = a.mutator.Create(change.Path, change.Content)
			if err == nil {
				summary.Created = append(summary.Created, change.Path)
			}
		case model.ActionUpdate:
			err = a.mutator.Update(change.Path, change.Content)
			if err == nil {
				summary.Updated = append(summary.Updated, change.Path)
			}
		case model.ActionDelete:
			err = a.mutator.Delete(change.Path)
			if err == nil {
				summary.Deleted = append(summary.Deleted, change.Path)
			}
		}
		if err != nil {
			return summary, fmt.Errorf("failed to apply %s of %s: %w", change.Action, change.Path, err)
		}
	}
	summary.Message = fmt.Sprintf("Applied %d change(s).", summary.Files())
	return summary, nil
}

// GenerateComponent returns a single generated component as literal code.
func (a *App) GenerateComponent(ctx context.Context, description, framework string) (string, error) {
	code, err := a.planner.GenerateComponent(ctx, description, framework)
	if err != nil {
		return "", fmt.Errorf("failed to generate component: %w", err)
	}
	return code, nil
}

// GenerateFunction returns a single generated function as literal code.
func (a *App) GenerateFunction(ctx context.Context, description, language string) (string, error) {
	code, err := a.planner.GenerateFunction(ctx, description, language)
	if err != nil {
		return "", fmt.Errorf("failed to generate function: %w", err)
	}
	return code, nil
}

// UndoLast reverses the most recent file operation of this session.
func (a *App) UndoLast() (model.Summary, error) {
	op, err := a.log.UndoLast(a.backend)
	if err != nil {
		if errors.Is(err, history.ErrNothingToUndo) {
			return model.Summary{Message: "No operation to undo."}, nil
		}
		return model.Summary{}, err
	}
	return model.Summary{
		Message: fmt.Sprintf("Undid %s of %s.", op.Kind, op.Path),
	}, nil
}

// History returns the undo log, for callers embedding the App that need to
// inspect or drain it.
func (a *App) History() *history.Log {
	return a.log
}
