// Package planner converts a free-text description into a concrete
// generation plan, splitting large requests into a structure phase and
// per-file content phases to keep each completion under the model's output
// budget.
package planner

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/sokinpui/genapp/internal/analyzer"
	"github.com/sokinpui/genapp/internal/completion"
	"github.com/sokinpui/genapp/model"
)

// ErrMalformedResponse reports a response that could not be parsed into the
// expected shape.
var ErrMalformedResponse = errors.New("malformed model response")

// ErrPlanningFailed reports a structure-phase response with no usable file
// list.
var ErrPlanningFailed = errors.New("planning failed")

const (
	// fixedOverhead models the prompt scaffolding around the description.
	fixedOverhead = 1000
	// chunkThreshold selects the chunked strategy at or above this estimate.
	chunkThreshold = 2000
	// tokenDivisor is the coarse characters-per-token proxy.
	tokenDivisor = 4
)

// Progress is called after each per-file content call in the chunked
// strategy, with the number of files done and the total.
type Progress func(done, total int)

// Plan is the outcome of planning an application: the files to write, which
// strategy produced them, and which files degraded to a placeholder.
type Plan struct {
	Files    []model.GeneratedFile
	Chunked  bool
	Degraded []string
}

// Planner issues completion calls and parses their output into plans.
type Planner struct {
	client    completion.Client
	maxTokens int
	progress  Progress
}

// New creates a planner. maxTokens is passed through to every completion
// call unchanged.
func New(client completion.Client, maxTokens int) *Planner {
	return &Planner{client: client, maxTokens: maxTokens}
}

// SetProgress sets a callback for chunked-generation progress.
func (p *Planner) SetProgress(fn Progress) { p.progress = fn }

// Estimate returns the coarse token estimate for a description.
func Estimate(description string) int {
	return len(description)/tokenDivisor + fixedOverhead
}

// PlanApp produces a generation plan for a new application, choosing the
// flat or chunked strategy by the estimated size of the request.
func (p *Planner) PlanApp(ctx context.Context, description, framework string) (*Plan, error) {
	if Estimate(description) < chunkThreshold {
		return p.planFlat(ctx, description, framework)
	}
	return p.planChunked(ctx, description, framework)
}

// planFlat asks for the whole project in one completion.
func (p *Planner) planFlat(ctx context.Context, description, framework string) (*Plan, error) {
	resp, err := p.client.Complete(ctx, flatPrompt(description, framework), p.maxTokens)
	if err != nil {
		return nil, err
	}

	var doc struct {
		Files []model.GeneratedFile `json:"files"`
	}
	raw := extractJSON(resp)
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedResponse, err)
	}
	if len(doc.Files) == 0 {
		return nil, fmt.Errorf("%w: no files in response", ErrMalformedResponse)
	}
	for i := range doc.Files {
		cleaned, err := cleanPath(doc.Files[i].Path)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrMalformedResponse, err)
		}
		doc.Files[i].Path = cleaned
	}
	return &Plan{Files: doc.Files}, nil
}

// planChunked first asks only for the file paths, then generates each file's
// content with an independent call. The per-file calls are sequential so the
// completion API's rate limits are respected and any placeholder is
// attributable to a specific path.
func (p *Planner) planChunked(ctx context.Context, description, framework string) (*Plan, error) {
	resp, err := p.client.Complete(ctx, pathsPrompt(description, framework), p.maxTokens)
	if err != nil {
		return nil, err
	}

	raw := extractArray(resp)
	if raw == "" {
		return nil, fmt.Errorf("%w: no file-path array in response", ErrPlanningFailed)
	}
	var paths []string
	if err := json.Unmarshal([]byte(raw), &paths); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPlanningFailed, err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("%w: empty file list", ErrPlanningFailed)
	}

	plan := &Plan{Chunked: true}
	for i, rawPath := range paths {
		filePath, err := cleanPath(rawPath)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrPlanningFailed, err)
		}

		content, err := p.client.Complete(ctx, filePrompt(filePath, description, framework), p.maxTokens)
		if err != nil {
			// A single failed file does not abort the batch; the
			// placeholder keeps the plan complete and names the cause.
			plan.Files = append(plan.Files, model.GeneratedFile{
				Path:    filePath,
				Content: placeholder(filePath, err),
			})
			plan.Degraded = append(plan.Degraded, filePath)
		} else {
			plan.Files = append(plan.Files, model.GeneratedFile{
				Path:    filePath,
				Content: extractCode(content),
			})
		}
		if p.progress != nil {
			p.progress(i+1, len(paths))
		}
	}
	return plan, nil
}

// PlanUpdate produces an update plan for an existing project from its
// analyzer summary.
func (p *Planner) PlanUpdate(ctx context.Context, description string, summary *analyzer.Summary) ([]model.UpdateChange, error) {
	resp, err := p.client.Complete(ctx, updatePrompt(description, summary), p.maxTokens)
	if err != nil {
		return nil, err
	}

	var doc struct {
		Changes []model.UpdateChange `json:"changes"`
	}
	raw := extractJSON(resp)
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedResponse, err)
	}
	if len(doc.Changes) == 0 {
		return nil, fmt.Errorf("%w: no changes in response", ErrMalformedResponse)
	}

	for i := range doc.Changes {
		c := &doc.Changes[i]
		cleaned, err := cleanPath(c.Path)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrMalformedResponse, err)
		}
		c.Path = cleaned

		switch c.Action {
		case model.ActionCreate, model.ActionUpdate:
			if c.Content == "" {
				return nil, fmt.Errorf("%w: %s of %s has no content", ErrMalformedResponse, c.Action, c.Path)
			}
		case model.ActionDelete:
			c.Content = ""
		default:
			return nil, fmt.Errorf("%w: unknown action %q for %s", ErrMalformedResponse, c.Action, c.Path)
		}
	}
	return doc.Changes, nil
}

// GenerateComponent returns a single component as literal code.
func (p *Planner) GenerateComponent(ctx context.Context, description, framework string) (string, error) {
	resp, err := p.client.Complete(ctx, componentPrompt(description, framework), p.maxTokens)
	if err != nil {
		return "", err
	}
	return extractCode(resp), nil
}

// GenerateFunction returns a single function as literal code.
func (p *Planner) GenerateFunction(ctx context.Context, description, language string) (string, error) {
	resp, err := p.client.Complete(ctx, functionPrompt(description, language), p.maxTokens)
	if err != nil {
		return "", err
	}
	return extractCode(resp), nil
}

// cleanPath normalizes a model-produced path to a non-empty project-relative
// one.
func cleanPath(raw string) (string, error) {
	cleaned := path.Clean(strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(raw), "/")))
	if cleaned == "" || cleaned == "." || cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return "", fmt.Errorf("invalid file path %q", raw)
	}
	return cleaned, nil
}

func placeholder(filePath string, err error) string {
	return fmt.Sprintf("// generation failed for %s: %v\n", filePath, err)
}
