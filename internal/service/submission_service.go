package service

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/noah-isme/submission-gateway/internal/dto"
	"github.com/noah-isme/submission-gateway/internal/observability"
	"github.com/noah-isme/submission-gateway/internal/repository"
)

// SubmissionService orchestrates the list and save workflows.
type SubmissionService interface {
	List(ctx context.Context) ([]dto.SubmissionResponse, error)
	Create(ctx context.Context, payload *dto.SubmissionRequest) error
}

type submissionService struct {
	submissions repository.SubmissionRepository
	validator   *validator.Validate
	events      SubmissionPublisher
	logger      zerolog.Logger
	tracer      trace.Tracer
}

// NewSubmissionService constructs a SubmissionService instance. A nil publisher disables events.
func NewSubmissionService(repo repository.SubmissionRepository, validate *validator.Validate, events SubmissionPublisher, logger zerolog.Logger) SubmissionService {
	if events == nil {
		events = NopPublisher{}
	}

	return &submissionService{
		submissions: repo,
		validator:   validate,
		events:      events,
		logger:      logger.With().Str("component", "submission_service").Logger(),
		tracer:      otel.Tracer("github.com/noah-isme/submission-gateway/internal/service/submission"),
	}
}

func (s *submissionService) List(ctx context.Context) ([]dto.SubmissionResponse, error) {
	spanCtx, span := s.tracer.Start(ctx, "submissions.list")
	defer span.End()

	rows, err := s.submissions.List(spanCtx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "store select failed")
		observability.StoreOperations().WithLabelValues(OpRetrieve, "error").Inc()
		return nil, &StoreError{Op: OpRetrieve, Err: err}
	}

	observability.StoreOperations().WithLabelValues(OpRetrieve, "ok").Inc()
	span.SetAttributes(attribute.Int("submissions.count", len(rows)))

	return dto.NewSubmissionResponseSlice(rows), nil
}

func (s *submissionService) Create(ctx context.Context, payload *dto.SubmissionRequest) error {
	if payload == nil {
		return ErrInvalidSubmission
	}
	if err := s.validator.Struct(payload); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSubmission, err)
	}

	spanCtx, span := s.tracer.Start(ctx, "submissions.create", trace.WithAttributes(
		attribute.String("submission.id", payload.ID),
	))
	defer span.End()

	row := payload.ToModel()
	if err := s.submissions.Create(spanCtx, &row); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "store insert failed")
		observability.StoreOperations().WithLabelValues(OpSave, "error").Inc()
		return &StoreError{Op: OpSave, Err: err}
	}

	observability.StoreOperations().WithLabelValues(OpSave, "ok").Inc()
	s.logger.Info().Str("submission_id", row.ID).Str("risk_level", row.RiskLevelName).Msg("submission saved")

	if err := s.events.Publish(spanCtx, dto.NewSubmissionResponse(row)); err != nil {
		s.logger.Warn().Err(err).Str("submission_id", row.ID).Msg("failed to publish submission event")
	}

	return nil
}
