package v1

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/studyloop/studyloop/internal/fsrs"
	svcerrors "github.com/studyloop/studyloop/server/internal/errors"
	"github.com/studyloop/studyloop/server/service/review"
)

// CardResponse is the wire shape of one card in the session pool.
type CardResponse struct {
	ID          int32    `json:"id"`
	UID         string   `json:"uid"`
	CourseID    int32    `json:"courseId"`
	LessonIndex int32    `json:"lessonIndex"`
	Question    string   `json:"question"`
	Answer      string   `json:"answer"`
	Concepts    []string `json:"concepts,omitempty"`
	State       string   `json:"state"`
	Due         string   `json:"due"`
}

// DueCardsResponse is the response of GET /api/v1/due-cards.
type DueCardsResponse struct {
	CardsDue    int            `json:"cardsDue"`
	NewCards    int            `json:"newCards"`
	ReviewCards int            `json:"reviewCards"`
	Cards       []CardResponse `json:"cards"`
}

// GetDueCards returns the interleaved session pool for the current user.
// GET /api/v1/due-cards
func (s *APIV1Service) GetDueCards(c echo.Context) error {
	userID := currentUserID(c)

	selection, err := s.ReviewService.SelectDue(c.Request().Context(), userID, time.Now())
	if err != nil {
		return s.errorJSON(c, err)
	}

	stats := selection.Stats()
	resp := DueCardsResponse{
		CardsDue:    stats.CardsDue,
		NewCards:    stats.NewCards,
		ReviewCards: stats.ReviewCards,
		Cards:       make([]CardResponse, 0, len(selection.Ordered)),
	}
	for _, card := range selection.Ordered {
		resp.Cards = append(resp.Cards, CardResponse{
			ID:          card.ID,
			UID:         card.UID,
			CourseID:    card.CourseID,
			LessonIndex: card.LessonIndex,
			Question:    card.Question,
			Answer:      card.Answer,
			Concepts:    card.Concepts,
			State:       card.State.String(),
			Due:         card.DueTime().UTC().Format(time.RFC3339),
		})
	}
	return c.JSON(http.StatusOK, resp)
}

// SubmitReviewRequest is the body of POST /api/v1/submit-review.
type SubmitReviewRequest struct {
	CardID     int32 `json:"cardId" validate:"required,gt=0"`
	Rating     int   `json:"rating" validate:"required,min=1,max=4"`
	DurationMs int32 `json:"durationMs" validate:"gte=0"`
}

// SubmitReviewResponse is the response of POST /api/v1/submit-review.
type SubmitReviewResponse struct {
	Success       bool    `json:"success"`
	NextDue       string  `json:"nextDue"`
	ScheduledDays float64 `json:"scheduledDays"`
	NewState      string  `json:"newState"`
}

// SubmitReview grades one card for the current user.
// POST /api/v1/submit-review
func (s *APIV1Service) SubmitReview(c echo.Context) error {
	var req SubmitReviewRequest
	if err := c.Bind(&req); err != nil {
		return s.errorJSON(c, svcerrors.InvalidArgument("malformed request body"))
	}
	if err := s.validate.Struct(&req); err != nil {
		return s.errorJSON(c, svcerrors.InvalidArgument(err.Error()))
	}

	result, err := s.ReviewService.SubmitReview(c.Request().Context(), currentUserID(c), &review.SubmitReviewRequest{
		CardID:     req.CardID,
		Rating:     fsrs.Rating(req.Rating),
		DurationMs: req.DurationMs,
	})
	if err != nil {
		return s.errorJSON(c, err)
	}

	return c.JSON(http.StatusOK, SubmitReviewResponse{
		Success:       true,
		NextDue:       result.NextDue.UTC().Format(time.RFC3339),
		ScheduledDays: result.ScheduledDays,
		NewState:      result.State.String(),
	})
}
