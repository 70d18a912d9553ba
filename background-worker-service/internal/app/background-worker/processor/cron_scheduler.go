package processor

import (
	"context"

	"biashara/background-worker-service/internal/app/background-worker/service"
	"biashara/pkg/metrics"

	"github.com/robfig/cron/v3"
	"biashara/pkg/logger"
)

// CronScheduler периодически запускает полную сверку рейтингов
type CronScheduler struct {
	cron      *cron.Cron
	ratingSvc service.RatingRecalculationServiceInterface
}

// NewCronScheduler создает новый планировщик
func NewCronScheduler(ratingSvc service.RatingRecalculationServiceInterface) *CronScheduler {
	return &CronScheduler{
		cron:      cron.New(),
		ratingSvc: ratingSvc,
	}
}

// Start регистрирует задачу сверки и запускает планировщик.
// Сразу после запуска выполняется первичная сверка, чтобы не ждать
// первого срабатывания расписания.
func (s *CronScheduler) Start(ctx context.Context, schedule string) error {
	logger.Info().Str("schedule", schedule).Msg("Starting cron scheduler")

	_, err := s.cron.AddFunc(schedule, func() {
		logger.Info().Msg("Cron job triggered: reconciling entity ratings")
		metrics.RecordRatingRecompute(serviceName, "cron")

		if err := s.ratingSvc.RecalculateAll(ctx); err != nil {
			logger.Error().Err(err).Msg("Scheduled rating reconciliation failed")
		} else {
			logger.Info().Msg("Cron job completed: entity ratings reconciled")
		}
	})
	if err != nil {
		return err
	}

	s.cron.Start()
	logger.Info().Msg("Cron scheduler started")

	logger.Info().Msg("Performing initial rating reconciliation")
	if err := s.ratingSvc.RecalculateAll(ctx); err != nil {
		logger.Warn().Err(err).Msg("Initial rating reconciliation failed")
	} else {
		logger.Info().Msg("Initial rating reconciliation completed")
	}

	return nil
}

// Stop останавливает планировщик и дожидается завершения текущих задач
func (s *CronScheduler) Stop() {
	logger.Info().Msg("Stopping cron scheduler")
	ctx := s.cron.Stop()
	<-ctx.Done()
	logger.Info().Msg("Cron scheduler stopped")
}

// GetEntries возвращает зарегистрированные задачи
func (s *CronScheduler) GetEntries() []cron.Entry {
	return s.cron.Entries()
}
