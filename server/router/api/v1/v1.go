package v1

import (
	"log/slog"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/hrygo/datetimex/internal/profile"
	apierrors "github.com/hrygo/datetimex/server/internal/errors"
	ratelimit "github.com/hrygo/datetimex/server/middleware"
)

type APIV1Service struct {
	Profile         *profile.Profile
	DatetimeService *DatetimeService

	limiter *ratelimit.RateLimiter
}

func NewAPIV1Service(profile *profile.Profile, logger *slog.Logger) *APIV1Service {
	return &APIV1Service{
		Profile:         profile,
		DatetimeService: NewDatetimeService(profile, logger),
		limiter:         ratelimit.NewRateLimiter(profile.RateLimit, profile.RateBurst),
	}
}

// RegisterRoutes registers the datetime API with the given Echo instance.
// Recognition endpoints are rate limited per client; listing endpoints are not.
func (s *APIV1Service) RegisterRoutes(echoServer *echo.Echo) {
	group := echoServer.Group("/api/v1/datetime")
	group.Use(middleware.CORS())

	limited := s.limiter.Middleware(func(c echo.Context) error {
		return writeError(c, apierrors.RateLimitExceeded("too many requests"))
	})
	group.POST("/recognize", s.DatetimeService.Recognize, limited)
	// The colon is escaped so echo does not read ":batch" as a path parameter.
	group.POST("/recognize\\:batch", s.DatetimeService.RecognizeBatch, limited)
	group.GET("/cultures", s.DatetimeService.ListCultures)
	group.GET("/metrics", s.DatetimeService.GetMetrics)
}
