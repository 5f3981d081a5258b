package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/noah-isme/submission-gateway/internal/dto"
	"github.com/noah-isme/submission-gateway/internal/observability"
)

// SubmissionPublisher announces saved submissions to interested consumers.
type SubmissionPublisher interface {
	Publish(ctx context.Context, submission dto.SubmissionResponse) error
}

// NopPublisher drops every event.
type NopPublisher struct{}

// Publish implements SubmissionPublisher.
func (NopPublisher) Publish(context.Context, dto.SubmissionResponse) error { return nil }

// SubmissionEvent is the payload sent on the redis channel and nats subject.
type SubmissionEvent struct {
	Source     string                 `json:"source"`
	Submission dto.SubmissionResponse `json:"submission"`
	SavedAt    time.Time              `json:"savedAt"`
}

type brokerPublisher struct {
	redis        *redis.Client
	redisChannel string
	nats         *nats.Conn
	natsSubject  string
	nodeID       string
	logger       zerolog.Logger
	now          func() time.Time
}

// NewSubmissionPublisher fans events out to redis pub/sub and nats. Either broker may be nil.
func NewSubmissionPublisher(redisClient *redis.Client, natsConn *nats.Conn, channelBase string, logger zerolog.Logger) SubmissionPublisher {
	if redisClient == nil && natsConn == nil {
		return NopPublisher{}
	}

	channelBase = strings.TrimSpace(channelBase)
	if channelBase == "" {
		channelBase = "gateway"
	}

	return &brokerPublisher{
		redis:        redisClient,
		redisChannel: SubmissionsChannel(channelBase),
		nats:         natsConn,
		natsSubject:  SubmissionsSubject(channelBase),
		nodeID:       uuid.NewString(),
		logger:       logger.With().Str("component", "submission_events").Logger(),
		now:          time.Now,
	}
}

// SubmissionsChannel is the redis channel used for the given base name.
func SubmissionsChannel(base string) string {
	return base + ":submissions"
}

// SubmissionsSubject is the nats subject used for the given base name.
func SubmissionsSubject(base string) string {
	return strings.ReplaceAll(base, ":", ".") + ".submissions"
}

func (p *brokerPublisher) Publish(ctx context.Context, submission dto.SubmissionResponse) error {
	payload, err := json.Marshal(SubmissionEvent{
		Source:     p.nodeID,
		Submission: submission,
		SavedAt:    p.now().UTC(),
	})
	if err != nil {
		return err
	}

	var errs []error

	if p.redis != nil {
		if err := p.redis.Publish(ctx, p.redisChannel, payload).Err(); err != nil {
			observability.EventsPublished().WithLabelValues("redis", "error").Inc()
			errs = append(errs, err)
		} else {
			observability.EventsPublished().WithLabelValues("redis", "ok").Inc()
		}
	}

	if p.nats != nil {
		if err := p.nats.Publish(p.natsSubject, payload); err != nil {
			observability.EventsPublished().WithLabelValues("nats", "error").Inc()
			errs = append(errs, err)
		} else {
			observability.EventsPublished().WithLabelValues("nats", "ok").Inc()
		}
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	p.logger.Debug().Str("submission_id", submission.ID).Msg("submission event published")
	return nil
}
