package v1

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	svcerrors "github.com/studyloop/studyloop/server/internal/errors"
)

const userIDContextKey = "user-id"

// authMiddleware verifies the bearer token (HS256, subject = user id) and
// stores the user id on the request context. Every /api/v1 route requires it.
func (s *APIV1Service) authMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get("Authorization")
		token, ok := strings.CutPrefix(authHeader, "Bearer ")
		if !ok || token == "" {
			return c.JSON(http.StatusUnauthorized, errorBody(svcerrors.Unauthorized("missing bearer token")))
		}

		userID, err := s.verifyToken(token)
		if err != nil {
			return c.JSON(http.StatusUnauthorized, errorBody(svcerrors.Unauthorized("invalid token")))
		}

		c.Set(userIDContextKey, userID)
		return next(c)
	}
}

func (s *APIV1Service) verifyToken(tokenString string) (int32, error) {
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (any, error) {
			return []byte(s.Secret), nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
	)
	if err != nil {
		return 0, err
	}

	userID, err := strconv.ParseInt(claims.Subject, 10, 32)
	if err != nil {
		return 0, err
	}
	return int32(userID), nil
}

func currentUserID(c echo.Context) int32 {
	userID, _ := c.Get(userIDContextKey).(int32)
	return userID
}
