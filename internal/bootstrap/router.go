package bootstrap

import (
	"time"

	httpapi "github.com/ai-search-engine/search-backend/internal/api/http"
	"github.com/ai-search-engine/search-backend/internal/api/http/middleware"
	"github.com/ai-search-engine/search-backend/internal/ratelimit"
	searchhttp "github.com/ai-search-engine/search-backend/internal/search/http"

	"github.com/apex/log"
	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

const RateLimitWindow = time.Minute

type RouterDeps struct {
	ServiceName    string
	Version        string
	Production     bool
	AllowedOrigins []string
	TrustedProxies []string // nil trusts no forwarding headers
	RateLimit      int // requests per minute per client IP, 0 disables
	Search         searchhttp.Searcher
	DB             *pgxpool.Pool
	Redis          *redis.Client
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	r := gin.New()
	if err := r.SetTrustedProxies(dep.TrustedProxies); err != nil {
		log.WithError(err).Warn("invalid trusted proxies, forwarding headers ignored")
		_ = r.SetTrustedProxies(nil)
	}
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(cors.New(CORSConfig(dep.Production, dep.AllowedOrigins)))
	r.Use(gzip.Gzip(gzip.DefaultCompression))

	healthHandler := httpapi.NewHealthHandler(dep.ServiceName, dep.Version, dep.DB, dep.Redis)
	healthHandler.RegisterRoutes(r)

	var limit []gin.HandlerFunc
	if dep.RateLimit > 0 {
		limit = append(limit, middleware.RateLimitMiddleware(newLimiter(dep), RateLimitWindow))
	}

	searchhttp.New(dep.Search).Register(r, limit...)

	return r
}

// CORSConfig allows any origin in development and only allowed in production.
func CORSConfig(production bool, allowed []string) cors.Config {
	cfg := cors.DefaultConfig()
	cfg.AllowHeaders = append(cfg.AllowHeaders, "Authorization", "Accept", middleware.HeaderRequestID)
	cfg.ExposeHeaders = []string{middleware.HeaderRequestID}
	cfg.MaxAge = 12 * time.Hour

	if production {
		cfg.AllowOrigins = allowed
	} else {
		cfg.AllowAllOrigins = true
	}
	return cfg
}

func newLimiter(dep RouterDeps) ratelimit.Limiter {
	if dep.Redis != nil {
		return ratelimit.NewRedisLimiter(dep.Redis, dep.RateLimit, RateLimitWindow)
	}
	return ratelimit.NewMemoryLimiter(dep.RateLimit, RateLimitWindow)
}
