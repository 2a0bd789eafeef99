package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/glYohanny/Gucci/internal/worker"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// MailerState reports the circuit state of the outgoing mail transport.
type MailerState interface {
	Enabled() bool
	StateName() string
}

// Health returns a JSON health check response.
// Redis is optional: a nil client reports "disabled" and does not degrade the
// check. Never exposes credentials or internals.
func Health(db *gorm.DB, rdb *redis.Client, mailer MailerState) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		dbStatus := "connected"
		sqlDB, err := db.DB()
		if err != nil || sqlDB.PingContext(ctx) != nil {
			dbStatus = "error"
		}

		redisStatus := "disabled"
		var dlq int64
		if rdb != nil {
			redisStatus = "connected"
			if rdb.Ping(ctx).Err() != nil {
				redisStatus = "error"
			} else {
				dlq, _ = worker.DLQLength(ctx, rdb, worker.QueueEmail)
			}
		}

		mailStatus := "disabled"
		if mailer != nil && mailer.Enabled() {
			mailStatus = mailer.StateName()
		}

		status := http.StatusOK
		if dbStatus != "connected" || redisStatus == "error" {
			status = http.StatusServiceUnavailable
		}

		c.JSON(status, gin.H{
			"ok":        status == http.StatusOK,
			"db":        dbStatus,
			"redis":     redisStatus,
			"mailer":    mailStatus,
			"email_dlq": dlq,
		})
	}
}
