package v1

import (
	"net/http"

	"github.com/labstack/echo/v4"

	svcerrors "github.com/studyloop/studyloop/server/internal/errors"
)

// GenerateCardsRequest is the body of POST /api/v1/generate-cards.
type GenerateCardsRequest struct {
	CourseID int32 `json:"courseId" validate:"required,gt=0"`
}

// GenerateCardsResponse is the response of POST /api/v1/generate-cards.
type GenerateCardsResponse struct {
	Created int `json:"created"`
	Skipped int `json:"skipped"`
}

// GenerateCards creates cards from the course's lesson content.
// POST /api/v1/generate-cards
func (s *APIV1Service) GenerateCards(c echo.Context) error {
	var req GenerateCardsRequest
	if err := c.Bind(&req); err != nil {
		return s.errorJSON(c, svcerrors.InvalidArgument("malformed request body"))
	}
	if err := s.validate.Struct(&req); err != nil {
		return s.errorJSON(c, svcerrors.InvalidArgument(err.Error()))
	}

	result, err := s.CourseService.GenerateCards(c.Request().Context(), currentUserID(c), req.CourseID)
	if err != nil {
		return s.errorJSON(c, err)
	}

	return c.JSON(http.StatusOK, GenerateCardsResponse{
		Created: result.Created,
		Skipped: result.Skipped,
	})
}
