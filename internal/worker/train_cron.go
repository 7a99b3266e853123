package worker

// train_cron.go
// Background goroutine that retrains the forecasting model: once shortly
// after startup, then on a fixed interval. Training is heavyweight relative
// to the write path, so it never runs inline with a request; readers keep
// using the previous model snapshot while a retrain is in progress.

import (
	"context"
	"errors"
	"time"

	"github.com/LeZelote01/stock-manager/internal/forecast"

	"github.com/rs/zerolog/log"
)

// Trainer is the slice of the forecast service the cron needs.
type Trainer interface {
	Retrain(ctx context.Context) error
}

// StartTrainCron launches the retraining goroutine. It respects the context
// for graceful shutdown; an insufficient-data outcome is logged at debug
// level since it is the expected state on a fresh deployment.
func StartTrainCron(ctx context.Context, trainer Trainer, interval time.Duration) {
	go func() {
		log.Info().Dur("interval", interval).Msg("train_cron: started")

		runTraining(ctx, trainer)

		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				log.Info().Msg("train_cron: shutting down")
				return
			case <-ticker.C:
				runTraining(ctx, trainer)
			}
		}
	}()
}

func runTraining(ctx context.Context, trainer Trainer) {
	start := time.Now()
	err := trainer.Retrain(ctx)
	switch {
	case err == nil:
		log.Info().Dur("took", time.Since(start)).Msg("train_cron: model retrained")
	case errors.Is(err, forecast.ErrInsufficientData):
		log.Debug().Msg("train_cron: not enough history to train yet")
	default:
		log.Error().Err(err).Msg("train_cron: training failed, previous model kept")
	}
}
