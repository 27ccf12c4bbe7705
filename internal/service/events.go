package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/rrhh-digital/legajo-api/internal/models"
	"github.com/rrhh-digital/legajo-api/pkg/jobs"
)

// JobTypePersonaMutated marks a background recalculation request for one persona.
const JobTypePersonaMutated = "persona.mutated"

// legajoNotifier is implemented by components that react to persona mutations.
// Recalculation is asynchronous and best-effort: a failed notification never
// fails the mutation that triggered it.
type legajoNotifier interface {
	PersonaMutated(personaID string)
}

// RecalcDispatcher publishes persona mutation events onto the background queue.
type RecalcDispatcher struct {
	queue  *jobs.Queue
	logger *zap.Logger
}

// NewRecalcDispatcher constructs a dispatcher over the provided queue.
func NewRecalcDispatcher(queue *jobs.Queue, logger *zap.Logger) *RecalcDispatcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RecalcDispatcher{queue: queue, logger: logger}
}

// PersonaMutated enqueues a recalculation job for the persona.
func (d *RecalcDispatcher) PersonaMutated(personaID string) {
	if d == nil || d.queue == nil {
		return
	}
	err := d.queue.Enqueue(jobs.Job{
		ID:      uuid.NewString(),
		Type:    JobTypePersonaMutated,
		Payload: personaID,
	})
	if err != nil {
		d.logger.Warn("failed to enqueue legajo recalculation", zap.String("persona_id", personaID), zap.Error(err))
	}
}

type legajoRecalculator interface {
	Recalcular(ctx context.Context, personaID string) (*models.LegajoEstadoView, error)
}

// RecalcHandler adapts the legajo service into a queue job handler.
func RecalcHandler(legajos legajoRecalculator, metrics *MetricsService) jobs.Handler {
	return func(ctx context.Context, job jobs.Job) error {
		personaID, ok := job.Payload.(string)
		if !ok || personaID == "" {
			return fmt.Errorf("invalid payload for %s job", job.Type)
		}
		start := time.Now()
		_, err := legajos.Recalcular(ctx, personaID)
		metrics.ObserveRecalc(err == nil, time.Since(start))
		return err
	}
}
