package v1

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hrygo/datetimex/internal/profile"
	apierrors "github.com/hrygo/datetimex/server/internal/errors"
)

type resultJSON struct {
	Start      int    `json:"start"`
	End        int    `json:"end"`
	Text       string `json:"text"`
	TypeName   string `json:"typeName"`
	Resolution struct {
		Values []map[string]string `json:"values"`
	} `json:"resolution"`
}

type responseJSON struct {
	Culture       string         `json:"culture"`
	ReferenceTime string         `json:"reference_time"`
	Results       []resultJSON   `json:"results"`
	Error         *ErrorResponse `json:"error"`
}

func testProfile(t *testing.T) *profile.Profile {
	t.Helper()
	p := &profile.Profile{
		Mode:             "dev",
		Port:             8081,
		Culture:          "en-us",
		Timezone:         "UTC",
		FilterAmbiguity:  true,
		RateLimit:        1000,
		RateBurst:        1000,
		BatchConcurrency: 4,
		ResultCacheSize:  16,
		LogLevel:         "info",
	}
	require.NoError(t, p.Validate())
	return p
}

func newTestServer(t *testing.T, p *profile.Profile) (*echo.Echo, *APIV1Service) {
	t.Helper()
	e := echo.New()
	s := NewAPIV1Service(p, nil)
	s.RegisterRoutes(e)
	return e, s
}

func do(e *echo.Echo, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestRecognize(t *testing.T) {
	e, _ := newTestServer(t, testProfile(t))

	rec := do(e, http.MethodPost, "/api/v1/datetime/recognize",
		`{"text":"call me 3 days ago","reference_time":"2024-01-15T10:00:00Z"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get(echo.HeaderXRequestID))

	resp := decode[responseJSON](t, rec)
	assert.Equal(t, "en-us", resp.Culture)
	assert.Equal(t, "2024-01-15T10:00:00Z", resp.ReferenceTime)
	require.Len(t, resp.Results, 1)

	r := resp.Results[0]
	assert.Equal(t, "3 days ago", r.Text)
	assert.Equal(t, 8, r.Start)
	assert.Equal(t, 17, r.End)
	assert.Equal(t, "datetimeV2.date", r.TypeName)
	require.Len(t, r.Resolution.Values, 1)
	assert.Equal(t, "2024-01-12", r.Resolution.Values[0]["value"])
}

func TestRecognize_ReferenceInTimezone(t *testing.T) {
	e, _ := newTestServer(t, testProfile(t))

	rec := do(e, http.MethodPost, "/api/v1/datetime/recognize",
		`{"text":"tomorrow","culture":"en-GB","reference_time":"2024-01-15 23:30","timezone":"Asia/Shanghai"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	resp := decode[responseJSON](t, rec)
	assert.Equal(t, "en-us", resp.Culture)
	assert.Equal(t, "2024-01-15T23:30:00+08:00", resp.ReferenceTime)
	require.Len(t, resp.Results, 1)
	assert.Equal(t, "2024-01-16", resp.Results[0].Resolution.Values[0]["value"])
}

func TestRecognize_NoEntities(t *testing.T) {
	e, _ := newTestServer(t, testProfile(t))

	rec := do(e, http.MethodPost, "/api/v1/datetime/recognize", `{"text":"nothing to see here"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"results":[]`)
}

func TestRecognize_RequestID(t *testing.T) {
	e, _ := newTestServer(t, testProfile(t))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/datetime/recognize", strings.NewReader(`{"text":"today"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req.Header.Set(echo.HeaderXRequestID, "req-42")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, "req-42", rec.Header().Get(echo.HeaderXRequestID))
}

func TestRecognize_Errors(t *testing.T) {
	e, _ := newTestServer(t, testProfile(t))

	tests := []struct {
		name   string
		body   string
		status int
		code   apierrors.ErrorCode
	}{
		{"malformed body", `{"text":`, http.StatusBadRequest, apierrors.ErrCodeInvalidArgument},
		{"empty text", `{"text":"   "}`, http.StatusBadRequest, apierrors.ErrCodeInvalidArgument},
		{"text too long", `{"text":"` + strings.Repeat("a", 4097) + `"}`, http.StatusBadRequest, apierrors.ErrCodeInvalidArgument},
		{"unsupported culture", `{"text":"today","culture":"fr-fr"}`, http.StatusBadRequest, apierrors.ErrCodeUnsupportedCulture},
		{"invalid timezone", `{"text":"today","timezone":"Mars/Olympus"}`, http.StatusBadRequest, apierrors.ErrCodeInvalidArgument},
		{"invalid reference", `{"text":"today","reference_time":"yesterday-ish"}`, http.StatusBadRequest, apierrors.ErrCodeInvalidArgument},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(e, http.MethodPost, "/api/v1/datetime/recognize", tt.body)
			assert.Equal(t, tt.status, rec.Code)
			body := decode[ErrorResponse](t, rec)
			assert.Equal(t, tt.code, body.Code)
			assert.NotEmpty(t, body.Message)
		})
	}
}

func TestRecognize_ResultCache(t *testing.T) {
	e, s := newTestServer(t, testProfile(t))
	svc := s.DatetimeService

	body := `{"text":"tomorrow","reference_time":"2024-01-15T10:00:00Z"}`
	first := do(e, http.MethodPost, "/api/v1/datetime/recognize", body)
	second := do(e, http.MethodPost, "/api/v1/datetime/recognize", body)
	require.Equal(t, http.StatusOK, second.Code)
	assert.JSONEq(t, first.Body.String(), second.Body.String())

	// no reference time: never cached
	do(e, http.MethodPost, "/api/v1/datetime/recognize", `{"text":"tomorrow"}`)

	hits, _ := svc.results.Stats()
	assert.Equal(t, int64(1), hits)
	assert.Equal(t, 1, svc.results.Len())
	assert.Equal(t, int64(3), svc.Metrics.GetRequestTotal())

	p := testProfile(t)
	p.ResultCacheSize = 0
	assert.Nil(t, NewDatetimeService(p, nil).results)
}

func TestRecognizeBatch(t *testing.T) {
	e, _ := newTestServer(t, testProfile(t))

	rec := do(e, http.MethodPost, "/api/v1/datetime/recognize:batch", `{"queries":[
		{"text":"3 days ago","reference_time":"2024-01-15T10:00:00Z"},
		{"text":"today","culture":"zh-cn"},
		{"text":"from 2pm to 4pm","reference_time":"2024-01-15T10:00:00Z"}
	]}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	resp := decode[struct {
		Responses []responseJSON `json:"responses"`
	}](t, rec)
	require.Len(t, resp.Responses, 3)

	require.Len(t, resp.Responses[0].Results, 1)
	assert.Equal(t, "2024-01-12", resp.Responses[0].Results[0].Resolution.Values[0]["value"])
	assert.Nil(t, resp.Responses[0].Error)

	require.NotNil(t, resp.Responses[1].Error)
	assert.Equal(t, apierrors.ErrCodeUnsupportedCulture, resp.Responses[1].Error.Code)
	assert.Empty(t, resp.Responses[1].Results)

	require.Len(t, resp.Responses[2].Results, 1)
	assert.Equal(t, "datetimeV2.timerange", resp.Responses[2].Results[0].TypeName)
}

func TestRecognizeBatch_Limits(t *testing.T) {
	e, _ := newTestServer(t, testProfile(t))

	rec := do(e, http.MethodPost, "/api/v1/datetime/recognize:batch", `{"queries":[]}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	queries := make([]string, 101)
	for i := range queries {
		queries[i] = `{"text":"today"}`
	}
	rec = do(e, http.MethodPost, "/api/v1/datetime/recognize:batch", `{"queries":[`+strings.Join(queries, ",")+`]}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, apierrors.ErrCodeInvalidArgument, decode[ErrorResponse](t, rec).Code)
}

func TestListCultures(t *testing.T) {
	e, _ := newTestServer(t, testProfile(t))

	rec := do(e, http.MethodGet, "/api/v1/datetime/cultures", "")
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decode[CulturesResponse](t, rec)
	assert.Equal(t, []string{"en-us"}, resp.Cultures)
	assert.Equal(t, "en-us", resp.Default)
}

func TestGetMetrics(t *testing.T) {
	e, s := newTestServer(t, testProfile(t))

	do(e, http.MethodPost, "/api/v1/datetime/recognize", `{"text":"3 days ago"}`)
	do(e, http.MethodPost, "/api/v1/datetime/recognize", `{"text":"today","culture":"de-de"}`)
	assert.Equal(t, int64(1), s.DatetimeService.Metrics.GetRequestTotal())
	assert.Equal(t, int64(1), s.DatetimeService.Metrics.GetRequestFailed())

	rec := do(e, http.MethodGet, "/api/v1/datetime/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)

	snap := decode[map[string]any](t, rec)
	assert.EqualValues(t, 1, snap["request_total"])
	assert.EqualValues(t, 1, snap["request_failed"])
	assert.EqualValues(t, 1, snap["entities_found"])
}

func TestRateLimit(t *testing.T) {
	p := testProfile(t)
	p.RateLimit = 0.001
	p.RateBurst = 1
	e, _ := newTestServer(t, p)

	rec := do(e, http.MethodPost, "/api/v1/datetime/recognize", `{"text":"today"}`)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = do(e, http.MethodPost, "/api/v1/datetime/recognize", `{"text":"today"}`)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, apierrors.ErrCodeRateLimitExceeded, decode[ErrorResponse](t, rec).Code)

	// listing is not limited
	rec = do(e, http.MethodGet, "/api/v1/datetime/cultures", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}
