package onboarding

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/roster/internal/employees"
	"github.com/JaimeStill/roster/pkg/convert"
	"github.com/JaimeStill/roster/pkg/render"
	"github.com/JaimeStill/roster/pkg/storage"
)

const outcomeError Outcome = "error"

type pipeline struct {
	registry  employees.System
	renderer  render.Renderer
	converter convert.Converter
	store     storage.System
	metrics   *Metrics
	logger    *slog.Logger
}

// New creates the onboarding pipeline over its collaborators. metrics may be nil.
func New(
	registry employees.System,
	renderer render.Renderer,
	converter convert.Converter,
	store storage.System,
	metrics *Metrics,
	logger *slog.Logger,
) System {
	return &pipeline{
		registry:  registry,
		renderer:  renderer,
		converter: converter,
		store:     store,
		metrics:   metrics,
		logger:    logger.With("system", "onboarding"),
	}
}

func (p *pipeline) Handler(maxBodySize int64) *Handler {
	return NewHandler(p, p.logger, maxBodySize)
}

func (p *pipeline) Register(ctx context.Context, raw employees.RawRegistration) (*Result, error) {
	logger := p.logger.With("run", uuid.NewString(), "operation", "register")

	result, err := p.register(ctx, logger, raw)
	p.finish(logger, "register", result, err)
	return result, err
}

func (p *pipeline) Regenerate(ctx context.Context, codename string) (*Result, error) {
	logger := p.logger.With("run", uuid.NewString(), "operation", "regenerate")

	result, err := p.regenerate(ctx, logger, codename)
	p.finish(logger, "regenerate", result, err)
	return result, err
}

func (p *pipeline) register(ctx context.Context, logger *slog.Logger, raw employees.RawRegistration) (*Result, error) {
	var record employees.Employee
	p.stage(StageNormalize, func() error {
		record = employees.Normalize(raw)
		return nil
	})

	if strings.TrimSpace(record.Codename) == "" {
		return nil, ErrInvalidIdentity
	}
	logger = logger.With("codename", record.Codename)

	var existing *employees.Employee
	err := p.stage(StageCheck, func() error {
		var err error
		existing, err = p.registry.FindByIdentity(ctx, record.Codename)
		if errors.Is(err, employees.ErrNotFound) {
			return nil
		}
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("check registry: %w", err)
	}
	if existing != nil {
		return &Result{Outcome: OutcomeDuplicate, Employee: existing}, nil
	}

	var stored *employees.Employee
	err = p.stage(StageWrite, func() error {
		var err error
		stored, err = p.registry.InsertIfAbsent(ctx, record)
		if errors.Is(err, employees.ErrDuplicate) {
			return nil
		}
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("write record: %w", err)
	}

	if stored == nil {
		logger.Info("concurrent registration won the write")
		winner, err := p.registry.FindByIdentity(ctx, record.Codename)
		if err != nil {
			return nil, fmt.Errorf("read concurrent record: %w", err)
		}
		return &Result{Outcome: OutcomeDuplicate, Employee: winner}, nil
	}

	return p.publish(ctx, logger, stored)
}

func (p *pipeline) regenerate(ctx context.Context, logger *slog.Logger, codename string) (*Result, error) {
	codename = employees.NormalizeIdentity(codename)
	if strings.TrimSpace(codename) == "" {
		return nil, ErrInvalidIdentity
	}
	logger = logger.With("codename", codename)

	var record *employees.Employee
	err := p.stage(StageCheck, func() error {
		var err error
		record, err = p.registry.FindByIdentity(ctx, codename)
		return err
	})
	if err != nil {
		return nil, err
	}

	return p.publish(ctx, logger, record)
}

// publish runs render, convert and store for a committed record. A store
// failure is reported as OutcomeDegraded, never as an error.
func (p *pipeline) publish(ctx context.Context, logger *slog.Logger, record *employees.Employee) (*Result, error) {
	var markup []byte
	err := p.stage(StageRender, func() error {
		var err error
		markup, err = p.renderer.Render(ctx, record.TemplateData())
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("render document: %w", err)
	}

	var artifact *convert.Artifact
	err = p.stage(StageConvert, func() error {
		var err error
		artifact, err = p.converter.Convert(ctx, markup)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("convert document: %w", err)
	}

	key := record.Codename
	err = p.stage(StageStore, func() error {
		return p.store.Upload(ctx, key, bytes.NewReader(artifact.Data), ContentType)
	})
	if err != nil {
		logger.Warn("artifact upload failed after record commit", "key", key, "error", err)
		return &Result{
			Outcome:  OutcomeDegraded,
			Employee: record,
			Err:      fmt.Errorf("%w: %w", ErrUpload, err),
		}, nil
	}

	p.metrics.ObservePages(artifact.Pages)

	return &Result{
		Outcome:  OutcomeCreated,
		Employee: record,
		Artifact: &Artifact{
			Codename: record.Codename,
			URL:      p.store.URL(key),
			Size:     artifact.Size(),
			Pages:    artifact.Pages,
		},
	}, nil
}

func (p *pipeline) stage(name string, fn func() error) error {
	start := time.Now()
	err := fn()
	p.metrics.ObserveStage(name, time.Since(start), err)
	return err
}

func (p *pipeline) finish(logger *slog.Logger, operation string, result *Result, err error) {
	if err != nil {
		p.metrics.IncrementOutcome(operation, outcomeError)
		logger.Error("pipeline failed", "error", err)
		return
	}

	p.metrics.IncrementOutcome(operation, result.Outcome)

	switch result.Outcome {
	case OutcomeCreated:
		logger.Info("artifact published",
			"codename", result.Artifact.Codename,
			"url", result.Artifact.URL,
			"pages", result.Artifact.Pages,
		)
	case OutcomeDuplicate:
		logger.Info("registration rejected as duplicate", "codename", result.Employee.Codename)
	case OutcomeDegraded:
		logger.Warn("record committed without artifact", "codename", result.Employee.Codename, "error", result.Err)
	}
}
