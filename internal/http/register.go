package http

import (
	"errors"
	"net/http"

	echo "github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"

	"github.com/ufosc/minihack-registration/internal/model"
	"github.com/ufosc/minihack-registration/internal/service/registration"
)

func registerHandler(svc *registration.Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req model.Submission
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad request"})
		}

		id, err := svc.Submit(c.Request().Context(), registration.SubmitInput{
			Payload:   req,
			IP:        c.RealIP(),
			UserAgent: c.Request().UserAgent(),
		})
		if err != nil {
			if errors.Is(err, registration.ErrRateLimited) {
				return c.JSON(http.StatusTooManyRequests, map[string]string{
					"error": "Too many registration attempts. Please try again later.",
				})
			}
			var ve *registration.ValidationError
			if errors.As(err, &ve) {
				return c.JSON(http.StatusBadRequest, map[string]string{"error": ve.Reason})
			}
			if errors.Is(err, registration.ErrDuplicateEmail) {
				return c.JSON(http.StatusConflict, map[string]string{
					"error": "An account with this email already exists.",
				})
			}

			log.Errorf("registration insert failed: %v", err)

			return c.JSON(http.StatusInternalServerError, map[string]string{
				"error": "Registration failed. Please try again.",
			})
		}

		return c.JSON(http.StatusOK, map[string]any{
			"success": true,
			"message": "Registration submitted successfully!",
			"id":      id,
		})
	}
}
