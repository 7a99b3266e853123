package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/LeZelote01/stock-manager/internal/forecast"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Health reports DB and Redis connectivity plus the state of the forecasting
// model. An untrained model is reported but does not degrade the status: the
// service is fully usable before the first successful training.
func Health(db *gorm.DB, rdb *redis.Client, engine *forecast.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		dbStatus := "connected"
		sqlDB, err := db.DB()
		if err != nil || sqlDB.PingContext(ctx) != nil {
			dbStatus = "error"
		}

		redisStatus := "connected"
		if rdb.Ping(ctx).Err() != nil {
			redisStatus = "error"
		}

		model := gin.H{"trained": false}
		if trainedAt, ok := engine.TrainedAt(); ok {
			model = gin.H{"trained": true, "trained_at": trainedAt.UTC().Format(time.RFC3339)}
		}

		status := http.StatusOK
		if dbStatus != "connected" || redisStatus != "connected" {
			status = http.StatusServiceUnavailable
		}

		c.JSON(status, gin.H{
			"ok":    status == http.StatusOK,
			"db":    dbStatus,
			"redis": redisStatus,
			"model": model,
		})
	}
}
