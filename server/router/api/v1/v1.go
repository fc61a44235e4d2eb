// Package v1 is the thin HTTP layer over the scheduling engine. Handlers
// translate JSON requests into service calls and service errors into the
// stable status-code contract.
package v1

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/studyloop/studyloop/internal/profile"
	svcerrors "github.com/studyloop/studyloop/server/internal/errors"
	"github.com/studyloop/studyloop/server/internal/observability"
	"github.com/studyloop/studyloop/server/middleware"
	"github.com/studyloop/studyloop/server/service/course"
	"github.com/studyloop/studyloop/server/service/review"
	"github.com/studyloop/studyloop/store"
)

type APIV1Service struct {
	Secret  string
	Profile *profile.Profile
	Store   *store.Store

	ReviewService review.Service
	CourseService course.Service

	logger      *slog.Logger
	validate    *validator.Validate
	rateLimiter *middleware.RateLimiter
}

// NewAPIV1Service wires the service layer for the HTTP routes.
func NewAPIV1Service(secret string, prof *profile.Profile, st *store.Store, logger *slog.Logger) (*APIV1Service, error) {
	reviewService, err := review.NewService(st, logger)
	if err != nil {
		return nil, err
	}
	return &APIV1Service{
		Secret:        secret,
		Profile:       prof,
		Store:         st,
		ReviewService: reviewService,
		CourseService: course.NewService(st, logger),
		logger:        logger,
		validate:      validator.New(),
		rateLimiter:   middleware.NewRateLimiter(10, 20),
	}, nil
}

// requestTimeout bounds every store-backed request so a stalled database
// surfaces as STORE_UNAVAILABLE instead of a hung connection.
const requestTimeout = 15 * time.Second

// RegisterRoutes attaches the API routes to the echo instance.
func (s *APIV1Service) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api/v1", s.authMiddleware, s.rateLimitMiddleware, timeoutMiddleware, s.requestLoggerMiddleware)
	g.GET("/due-cards", s.GetDueCards)
	g.POST("/submit-review", s.SubmitReview)
	g.POST("/generate-cards", s.GenerateCards)
}

// requestLoggerMiddleware attaches a request-scoped logging context and
// records one completion line per request.
func (s *APIV1Service) requestLoggerMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		reqCtx := observability.NewRequestContext(s.logger, c.Request().Method+" "+c.Path(), currentUserID(c))
		c.SetRequest(c.Request().WithContext(
			observability.WithRequestContext(c.Request().Context(), reqCtx)))

		err := next(c)

		reqCtx.Info("request completed",
			slog.Int("status", c.Response().Status),
			slog.Int64(observability.LogFieldDuration, reqCtx.DurationMs()))
		return err
	}
}

func timeoutMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx, cancel := context.WithTimeout(c.Request().Context(), requestTimeout)
		defer cancel()
		c.SetRequest(c.Request().WithContext(ctx))
		return next(c)
	}
}

func (s *APIV1Service) rateLimitMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if !s.rateLimiter.Allow(c.Request().Header.Get("Authorization")) {
			return c.JSON(http.StatusTooManyRequests, errorBody(svcerrors.RateLimitExceeded("too many requests")))
		}
		return next(c)
	}
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func errorBody(err *svcerrors.ServiceError) errorResponse {
	return errorResponse{Code: string(err.Code), Message: err.Message}
}

// errorJSON maps a service error onto the HTTP status contract.
func (s *APIV1Service) errorJSON(c echo.Context, err error) error {
	svcErr, ok := err.(*svcerrors.ServiceError)
	if !ok {
		svcErr = svcerrors.Internal("internal error", err)
	}

	status := http.StatusInternalServerError
	switch svcErr.Code {
	case svcerrors.ErrCodeInvalidArgument:
		status = http.StatusBadRequest
	case svcerrors.ErrCodeUnauthorized:
		status = http.StatusUnauthorized
	case svcerrors.ErrCodeNotFound:
		status = http.StatusNotFound
	case svcerrors.ErrCodeConflict:
		status = http.StatusConflict
	case svcerrors.ErrCodeRateLimitExceeded:
		status = http.StatusTooManyRequests
	case svcerrors.ErrCodeStoreUnavailable:
		status = http.StatusServiceUnavailable
	}

	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed",
			slog.String("path", c.Path()),
			slog.String("error_code", string(svcErr.Code)),
			slog.String("error", svcErr.Error()))
	}
	return c.JSON(status, errorBody(svcErr))
}
