package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Health reports liveness of the service and its backing stores.
func Health(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		status := http.StatusOK
		resp := gin.H{"status": "ok", "time": time.Now().UTC().Format(time.RFC3339)}

		if sqlDB, err := db.DB(); err != nil || sqlDB.PingContext(ctx) != nil {
			resp["postgres"] = "down"
			resp["status"] = "degraded"
			status = http.StatusServiceUnavailable
		} else {
			resp["postgres"] = "up"
		}

		if err := rdb.Ping(ctx).Err(); err != nil {
			resp["redis"] = "down"
			resp["status"] = "degraded"
			status = http.StatusServiceUnavailable
		} else {
			resp["redis"] = "up"
		}

		c.JSON(status, resp)
	}
}
