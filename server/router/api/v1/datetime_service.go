package v1

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/labstack/echo/v4"
	"golang.org/x/sync/errgroup"

	"github.com/hrygo/datetimex/internal/profile"
	"github.com/hrygo/datetimex/plugin/datetime"
	"github.com/hrygo/datetimex/plugin/datetime/recognizer"
	"github.com/hrygo/datetimex/plugin/datetime/timeout"
	"github.com/hrygo/datetimex/server/internal/cache"
	apierrors "github.com/hrygo/datetimex/server/internal/errors"
	"github.com/hrygo/datetimex/server/internal/observability"
	"github.com/hrygo/datetimex/server/timezone"
)

// RecognizeRequest is one recognition query. ReferenceTime is RFC 3339 or
// "YYYY-MM-DD[ HH:MM[:SS]]"; empty means now.
type RecognizeRequest struct {
	Text          string `json:"text"`
	Culture       string `json:"culture,omitempty"`
	ReferenceTime string `json:"reference_time,omitempty"`
	Timezone      string `json:"timezone,omitempty"`
}

// RecognizeResponse holds the entities found in one query.
type RecognizeResponse struct {
	Culture       string                 `json:"culture"`
	ReferenceTime string                 `json:"reference_time"`
	Results       []datetime.ModelResult `json:"results"`
}

// BatchRecognizeRequest carries up to timeout.MaxBatchSize queries.
type BatchRecognizeRequest struct {
	Queries []RecognizeRequest `json:"queries"`
}

// BatchItem is the outcome of one query of a batch. Exactly one of the
// fields is set.
type BatchItem struct {
	*RecognizeResponse
	Error *ErrorResponse `json:"error,omitempty"`
}

// BatchRecognizeResponse keeps the order of the request's queries.
type BatchRecognizeResponse struct {
	Responses []BatchItem `json:"responses"`
}

// CulturesResponse lists the supported cultures.
type CulturesResponse struct {
	Cultures []string `json:"cultures"`
	Default  string   `json:"default"`
}

// ErrorResponse is the JSON body of every failed request.
type ErrorResponse struct {
	Code    apierrors.ErrorCode `json:"code"`
	Message string              `json:"message"`
}

// DatetimeService serves temporal expression recognition over HTTP.
type DatetimeService struct {
	Profile *profile.Profile
	Models  *recognizer.Cache
	Metrics *observability.Metrics
	Logger  *slog.Logger

	// nil when the profile disables result caching
	results *cache.LRU[[]datetime.ModelResult]
}

// resultTTL bounds how long a cached result is served.
const resultTTL = 10 * time.Minute

// NewDatetimeService creates the service with an empty model cache.
func NewDatetimeService(p *profile.Profile, logger *slog.Logger) *DatetimeService {
	if logger == nil {
		logger = slog.Default()
	}
	s := &DatetimeService{
		Profile: p,
		Models:  recognizer.NewCache(),
		Metrics: observability.NewMetrics(0),
		Logger:  logger,
	}
	if p.ResultCacheSize > 0 {
		s.results = cache.NewLRU[[]datetime.ModelResult](p.ResultCacheSize, resultTTL)
	}
	return s
}

// Recognize handles POST /api/v1/datetime/recognize.
func (s *DatetimeService) Recognize(c echo.Context) error {
	var req RecognizeRequest
	if err := c.Bind(&req); err != nil {
		return writeError(c, apierrors.InvalidArgument("malformed request body"))
	}

	reqCtx := s.requestContext(c, "recognize", req.Culture)
	ctx, cancel := context.WithTimeout(c.Request().Context(), timeout.RecognizeTimeout)
	defer cancel()

	resp, err := s.recognize(ctx, reqCtx, req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, resp)
}

// RecognizeBatch handles POST /api/v1/datetime/recognize:batch. A failing
// query does not fail the batch; its error is reported in place.
func (s *DatetimeService) RecognizeBatch(c echo.Context) error {
	var req BatchRecognizeRequest
	if err := c.Bind(&req); err != nil {
		return writeError(c, apierrors.InvalidArgument("malformed request body"))
	}
	if len(req.Queries) == 0 {
		return writeError(c, apierrors.InvalidArgument("queries must not be empty"))
	}
	if len(req.Queries) > timeout.MaxBatchSize {
		return writeError(c, apierrors.InvalidArgument("too many queries").
			WithContext("max_batch_size", timeout.MaxBatchSize))
	}

	reqCtx := s.requestContext(c, "recognize_batch", "")
	reqCtx.Info("batch started", slog.Int(observability.LogFieldBatchSize, len(req.Queries)))

	ctx, cancel := context.WithTimeout(c.Request().Context(), timeout.BatchTimeout)
	defer cancel()

	items := make([]BatchItem, len(req.Queries))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.Profile.BatchConcurrency)
	for i, q := range req.Queries {
		g.Go(func() error {
			itemCtx, itemCancel := context.WithTimeout(gctx, timeout.RecognizeTimeout)
			defer itemCancel()
			resp, err := s.recognize(itemCtx, reqCtx, q)
			if err != nil {
				items[i] = BatchItem{Error: errorBody(err)}
				return nil
			}
			items[i] = BatchItem{RecognizeResponse: resp}
			return nil
		})
	}
	_ = g.Wait()

	reqCtx.Info("batch finished", slog.Int64(observability.LogFieldDuration, reqCtx.DurationMs()))
	return c.JSON(http.StatusOK, BatchRecognizeResponse{Responses: items})
}

// ListCultures handles GET /api/v1/datetime/cultures.
func (s *DatetimeService) ListCultures(c echo.Context) error {
	return c.JSON(http.StatusOK, CulturesResponse{
		Cultures: recognizer.Cultures(),
		Default:  s.Profile.Culture,
	})
}

// GetMetrics handles GET /api/v1/datetime/metrics.
func (s *DatetimeService) GetMetrics(c echo.Context) error {
	return c.JSON(http.StatusOK, s.Metrics.Snapshot())
}

func (s *DatetimeService) requestContext(c echo.Context, operation, culture string) *observability.RequestContext {
	id := c.Request().Header.Get(echo.HeaderXRequestID)
	reqCtx := observability.NewRequestContextWithID(s.Logger, id, operation, culture)
	c.Response().Header().Set(echo.HeaderXRequestID, reqCtx.RequestID)
	return reqCtx
}

// recognize validates q and runs the model under ctx. The model cannot be
// interrupted, so a timed-out parse finishes in the background and its
// result is dropped.
func (s *DatetimeService) recognize(ctx context.Context, reqCtx *observability.RequestContext, q RecognizeRequest) (*RecognizeResponse, error) {
	if strings.TrimSpace(q.Text) == "" {
		return nil, apierrors.InvalidArgument("text must not be empty")
	}
	textLen := utf8.RuneCountInString(q.Text)
	if textLen > timeout.MaxTextLength {
		return nil, apierrors.InvalidArgument("text too long").
			WithContext("max_text_length", timeout.MaxTextLength)
	}

	culture := q.Culture
	if culture == "" {
		culture = s.Profile.Culture
	}
	model, err := s.Models.Get(culture, s.Profile.Options(s.Logger))
	if err != nil {
		s.Metrics.RecordFailure(culture)
		return nil, apierrors.UnsupportedCulture(culture, err)
	}
	culture = model.Culture()

	tz := q.Timezone
	if tz == "" {
		tz = s.Profile.Timezone
	}
	loc, err := timezone.ParseTimezone(tz)
	if err != nil {
		s.Metrics.RecordFailure(culture)
		return nil, apierrors.Wrap(err, apierrors.ErrCodeInvalidArgument, "invalid timezone")
	}
	ref, err := timezone.ParseReference(q.ReferenceTime, loc)
	if err != nil {
		s.Metrics.RecordFailure(culture)
		return nil, apierrors.Wrap(err, apierrors.ErrCodeInvalidArgument, "invalid reference_time")
	}

	start := time.Now()
	done := make(chan []datetime.ModelResult, 1)
	// Without an explicit reference the result depends on the clock.
	var key string
	if s.results != nil && q.ReferenceTime != "" {
		key = culture + "|" + ref.Format(time.RFC3339Nano) + "|" + q.Text
	}
	if cached, ok := s.lookup(key); ok {
		done <- cached
	} else {
		go func() {
			results := model.Parse(q.Text, ref)
			if key != "" {
				s.results.Set(key, results)
			}
			done <- results
		}()
	}

	select {
	case results := <-done:
		s.Metrics.RecordRequest(culture, len(results))
		s.Metrics.RecordDuration(culture, time.Since(start))
		reqCtx.Debug("recognized",
			slog.String(observability.LogFieldCulture, culture),
			slog.Int(observability.LogFieldTextLen, textLen),
			slog.Int(observability.LogFieldResultCount, len(results)),
			slog.Int64(observability.LogFieldDuration, time.Since(start).Milliseconds()))
		if results == nil {
			results = []datetime.ModelResult{}
		}
		return &RecognizeResponse{
			Culture:       culture,
			ReferenceTime: ref.Format(time.RFC3339),
			Results:       results,
		}, nil
	case <-ctx.Done():
		s.Metrics.RecordFailure(culture)
		if ctx.Err() == context.DeadlineExceeded {
			reqCtx.Warn("recognition timed out",
				slog.Int(observability.LogFieldTextLen, textLen),
				slog.String(observability.LogFieldErrorCode, string(apierrors.ErrCodeTimeout)))
			return nil, apierrors.Timeout("recognition timed out")
		}
		return nil, apierrors.ContextCanceled(ctx.Err())
	}
}

func (s *DatetimeService) lookup(key string) ([]datetime.ModelResult, bool) {
	if key == "" {
		return nil, false
	}
	return s.results.Get(key)
}

func errorBody(err error) *ErrorResponse {
	code := apierrors.GetCodeFromError(err, apierrors.ErrCodeInternal)
	msg := "internal error"
	if apiErr, ok := err.(*apierrors.APIError); ok {
		msg = apiErr.Message
	}
	return &ErrorResponse{Code: code, Message: msg}
}

func writeError(c echo.Context, err error) error {
	status := http.StatusInternalServerError
	if apiErr, ok := err.(*apierrors.APIError); ok {
		status = apiErr.HTTPStatus()
	}
	return c.JSON(status, errorBody(err))
}
