package middleware

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/ulule/limiter/v3"
	ginlimiter "github.com/ulule/limiter/v3/drivers/middleware/gin"
	memory "github.com/ulule/limiter/v3/drivers/store/memory"
	sredis "github.com/ulule/limiter/v3/drivers/store/redis"
)

// RateLimiter limits requests per client IP. With a redis client the
// counters are shared between instances, otherwise they live in process.
func RateLimiter(rdb *redis.Client, perMinute int64) gin.HandlerFunc {
	if perMinute <= 0 {
		perMinute = 100
	}
	rate := limiter.Rate{
		Period: 1 * time.Minute,
		Limit:  perMinute,
	}

	// 📊 Limiter instance
	instance := limiter.New(newLimiterStore(rdb), rate)

	// 🚦 Gin-compatible middleware
	return ginlimiter.NewMiddleware(instance)
}

func newLimiterStore(rdb *redis.Client) limiter.Store {
	if rdb == nil {
		return memory.NewStore()
	}
	store, err := sredis.NewStoreWithOptions(rdb, limiter.StoreOptions{
		Prefix:   "campus_events_limiter",
		MaxRetry: 3,
	})
	if err != nil {
		log.Printf("⚠️ redis rate limit store unavailable, using memory: %v", err)
		return memory.NewStore()
	}
	return store
}
