package v1

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/studyloop/studyloop/internal/fsrs"
	svcerrors "github.com/studyloop/studyloop/server/internal/errors"
	"github.com/studyloop/studyloop/server/middleware"
	"github.com/studyloop/studyloop/server/service/course"
	"github.com/studyloop/studyloop/server/service/review"
	"github.com/studyloop/studyloop/store"
)

const testSecret = "test-secret"

type stubReviewService struct {
	selection *review.DueSelection
	selectErr error

	result    *review.ReviewResult
	submitErr error

	gotUserID int32
}

func (s *stubReviewService) SelectDue(_ context.Context, userID int32, _ time.Time) (*review.DueSelection, error) {
	s.gotUserID = userID
	if s.selectErr != nil {
		return nil, s.selectErr
	}
	return s.selection, nil
}

func (s *stubReviewService) SubmitReview(_ context.Context, userID int32, _ *review.SubmitReviewRequest) (*review.ReviewResult, error) {
	s.gotUserID = userID
	if s.submitErr != nil {
		return nil, s.submitErr
	}
	return s.result, nil
}

type stubCourseService struct {
	result *course.GenerateResult
	err    error
}

func (s *stubCourseService) GenerateCards(context.Context, int32, int32) (*course.GenerateResult, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.result, nil
}

func newTestServer(rs review.Service, cs course.Service) *echo.Echo {
	e := echo.New()
	s := &APIV1Service{
		Secret:        testSecret,
		ReviewService: rs,
		CourseService: cs,
		logger:        slog.New(slog.NewTextHandler(io.Discard, nil)),
		validate:      validator.New(),
		rateLimiter:   middleware.NewRateLimiter(1000, 1000),
	}
	s.RegisterRoutes(e)
	return e
}

func bearerToken(t *testing.T, userID string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &jwt.RegisteredClaims{
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	signed, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)
	return "Bearer " + signed
}

func doRequest(e *echo.Echo, method, path, auth, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if auth != "" {
		req.Header.Set(echo.HeaderAuthorization, auth)
	}
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestAuthMissingToken(t *testing.T) {
	e := newTestServer(&stubReviewService{}, &stubCourseService{})
	rec := doRequest(e, http.MethodGet, "/api/v1/due-cards", "", "")
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthInvalidToken(t *testing.T) {
	e := newTestServer(&stubReviewService{}, &stubCourseService{})
	rec := doRequest(e, http.MethodGet, "/api/v1/due-cards", "Bearer not-a-jwt", "")
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthWrongSigningKey(t *testing.T) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &jwt.RegisteredClaims{Subject: "1"})
	signed, err := token.SignedString([]byte("other-secret"))
	require.NoError(t, err)

	e := newTestServer(&stubReviewService{}, &stubCourseService{})
	rec := doRequest(e, http.MethodGet, "/api/v1/due-cards", "Bearer "+signed, "")
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestGetDueCards(t *testing.T) {
	lastReview := time.Now().Add(-24 * time.Hour).Unix()
	dueCard := &store.Card{
		ID: 2, UID: "card-2", UserID: 7, CourseID: 1, LessonIndex: 0,
		Question: "Q2", Answer: "A2", State: fsrs.StateReview,
		DueTs: time.Now().Unix() - 60, LastReviewTs: &lastReview,
	}
	newCard := &store.Card{
		ID: 1, UID: "card-1", UserID: 7, CourseID: 1, LessonIndex: 0,
		Question: "Q1", Answer: "A1", State: fsrs.StateNew, DueTs: time.Now().Unix(),
	}
	rs := &stubReviewService{selection: &review.DueSelection{
		NewCards: []*store.Card{newCard},
		DueCards: []*store.Card{dueCard},
		Ordered:  []*store.Card{newCard, dueCard},
	}}

	e := newTestServer(rs, &stubCourseService{})
	rec := doRequest(e, http.MethodGet, "/api/v1/due-cards", bearerToken(t, "7"), "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, int32(7), rs.gotUserID)

	var resp DueCardsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, 2, resp.CardsDue)
	require.Equal(t, 1, resp.NewCards)
	require.Equal(t, 1, resp.ReviewCards)
	require.Len(t, resp.Cards, 2)
	require.Equal(t, "new", resp.Cards[0].State)
	require.Equal(t, "review", resp.Cards[1].State)
}

func TestGetDueCardsStoreUnavailable(t *testing.T) {
	rs := &stubReviewService{selectErr: svcerrors.StoreUnavailable("db down", nil)}
	e := newTestServer(rs, &stubCourseService{})
	rec := doRequest(e, http.MethodGet, "/api/v1/due-cards", bearerToken(t, "1"), "")
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestSubmitReview(t *testing.T) {
	next := time.Date(2024, 3, 20, 10, 0, 0, 0, time.UTC)
	rs := &stubReviewService{result: &review.ReviewResult{
		NextDue:       next,
		ScheduledDays: 5,
		State:         fsrs.StateReview,
	}}

	e := newTestServer(rs, &stubCourseService{})
	rec := doRequest(e, http.MethodPost, "/api/v1/submit-review", bearerToken(t, "1"),
		`{"cardId": 2, "rating": 3, "durationMs": 4200}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp SubmitReviewResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.True(t, resp.Success)
	require.Equal(t, "2024-03-20T10:00:00Z", resp.NextDue)
	require.Equal(t, 5.0, resp.ScheduledDays)
	require.Equal(t, "review", resp.NewState)
}

func TestSubmitReviewValidation(t *testing.T) {
	e := newTestServer(&stubReviewService{}, &stubCourseService{})

	for _, body := range []string{
		`{"rating": 3}`,                // missing card id
		`{"cardId": 1}`,                // missing rating
		`{"cardId": 1, "rating": 9}`,   // rating out of range
		`{"cardId": 1, "rating": 0}`,   // rating out of range
		`{"cardId": -4, "rating": 2}`,  // negative card id
		`{"cardId": "one", "rating"}`,  // malformed json
	} {
		rec := doRequest(e, http.MethodPost, "/api/v1/submit-review", bearerToken(t, "1"), body)
		require.Equal(t, http.StatusBadRequest, rec.Code, "body: %s", body)

		var resp errorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.Equal(t, string(svcerrors.ErrCodeInvalidArgument), resp.Code)
	}
}

func TestSubmitReviewNotFound(t *testing.T) {
	rs := &stubReviewService{submitErr: svcerrors.NotFound("card not found")}
	e := newTestServer(rs, &stubCourseService{})
	rec := doRequest(e, http.MethodPost, "/api/v1/submit-review", bearerToken(t, "1"),
		`{"cardId": 99, "rating": 3}`)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSubmitReviewConflict(t *testing.T) {
	rs := &stubReviewService{submitErr: svcerrors.Conflict("card changed concurrently", nil)}
	e := newTestServer(rs, &stubCourseService{})
	rec := doRequest(e, http.MethodPost, "/api/v1/submit-review", bearerToken(t, "1"),
		`{"cardId": 2, "rating": 3}`)
	require.Equal(t, http.StatusConflict, rec.Code)
}

func TestGenerateCards(t *testing.T) {
	cs := &stubCourseService{result: &course.GenerateResult{Created: 12, Skipped: 3}}
	e := newTestServer(&stubReviewService{}, cs)
	rec := doRequest(e, http.MethodPost, "/api/v1/generate-cards", bearerToken(t, "1"),
		`{"courseId": 5}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp GenerateCardsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, 12, resp.Created)
	require.Equal(t, 3, resp.Skipped)
}

func TestGenerateCardsNotFound(t *testing.T) {
	cs := &stubCourseService{err: svcerrors.NotFound("course not found")}
	e := newTestServer(&stubReviewService{}, cs)
	rec := doRequest(e, http.MethodPost, "/api/v1/generate-cards", bearerToken(t, "1"),
		`{"courseId": 5}`)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestInternalErrorIsMasked(t *testing.T) {
	rs := &stubReviewService{selectErr: svcerrors.Internal("invariant violated", nil)}
	e := newTestServer(rs, &stubCourseService{})
	rec := doRequest(e, http.MethodGet, "/api/v1/due-cards", bearerToken(t, "1"), "")
	require.Equal(t, http.StatusInternalServerError, rec.Code)

	var resp errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, string(svcerrors.ErrCodeInternal), resp.Code)
}
