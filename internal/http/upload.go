package http

import (
	"net/http"
	"strings"
	"time"

	echo "github.com/labstack/echo/v4"

	"github.com/ufosc/minihack-registration/internal/metrics"
	"github.com/ufosc/minihack-registration/internal/storage"
)

// uploadResumeHandler stores a PDF résumé ahead of the registration call and
// returns the public URL the client embeds in its submission payload. A
// failure here aborts the whole registration attempt on the client side, so a
// stored record never silently lacks a résumé the applicant tried to attach.
func uploadResumeHandler(store storage.ObjectStorage, maxBytes int64) echo.HandlerFunc {
	return func(c echo.Context) error {
		email := strings.TrimSpace(c.FormValue("email"))
		if email == "" {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "email is required"})
		}

		fh, err := c.FormFile("resume")
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "resume file is required"})
		}

		contentType := fh.Header.Get("Content-Type")
		if !strings.Contains(strings.ToLower(contentType), "pdf") {
			metrics.ResumeUploadsTotal.WithLabelValues("rejected").Inc()
			return c.JSON(http.StatusUnsupportedMediaType, map[string]string{"error": "resume must be a PDF"})
		}
		if fh.Size > maxBytes {
			metrics.ResumeUploadsTotal.WithLabelValues("rejected").Inc()
			return c.JSON(http.StatusRequestEntityTooLarge, map[string]string{"error": "resume exceeds the size limit"})
		}

		f, err := fh.Open()
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "unreadable upload"})
		}
		defer func() { _ = f.Close() }()

		key := storage.ResumeKey(time.Now().UTC(), email)
		if err := store.Put(c.Request().Context(), key, f, fh.Size, "application/pdf"); err != nil {
			c.Logger().Errorf("resume upload failed: %v", err)
			metrics.ResumeUploadsTotal.WithLabelValues("error").Inc()

			return c.JSON(http.StatusBadGateway, map[string]string{"error": "upload failed"})
		}

		metrics.ResumeUploadsTotal.WithLabelValues("success").Inc()
		return c.JSON(http.StatusOK, map[string]string{"url": store.PublicURL(key)})
	}
}
