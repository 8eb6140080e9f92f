package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

func pingDB(ctx context.Context, db *gorm.DB) bool {
	sqlDB, err := db.DB()
	return err == nil && sqlDB.PingContext(ctx) == nil
}

// Health reports DB and Redis connectivity. 503 when either backend is down,
// so the orchestrator can pull the instance out of rotation.
func Health(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		dbOK := pingDB(ctx, db)
		redisOK := rdb.Ping(ctx).Err() == nil

		status := http.StatusOK
		if !dbOK || !redisOK {
			status = http.StatusServiceUnavailable
		}
		c.JSON(status, gin.H{
			"ok":    dbOK && redisOK,
			"db":    estadoSalud(dbOK),
			"redis": estadoSalud(redisOK),
		})
	}
}

func estadoSalud(ok bool) string {
	if ok {
		return "connected"
	}
	return "error"
}
