package http

import (
	"bytes"
	"net/http"

	echo "github.com/labstack/echo/v4"

	"github.com/ufosc/minihack-registration/internal/export"
	"github.com/ufosc/minihack-registration/internal/model"
	"github.com/ufosc/minihack-registration/internal/repository"
)

// listRegistrationsHandler returns the full recordset, newest first, as JSON
// or (?format=csv) as a CSV attachment. There is no pagination; organizer
// search and sorting happen client-side.
func listRegistrationsHandler(regs repository.RegistrationsRepository) echo.HandlerFunc {
	return func(c echo.Context) error {
		rows, err := regs.ListAll(c.Request().Context())
		if err != nil {
			c.Logger().Errorf("list registrations failed: %v", err)

			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "query failed"})
		}
		if rows == nil {
			rows = []model.Registration{}
		}

		if c.QueryParam("format") == "csv" {
			var buf bytes.Buffer
			if err := export.WriteCSV(&buf, rows); err != nil {
				c.Logger().Errorf("csv export failed: %v", err)

				return c.JSON(http.StatusInternalServerError, map[string]string{"error": "export failed"})
			}
			c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="registrations.csv"`)
			return c.Blob(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
		}

		return c.JSON(http.StatusOK, map[string]any{"registrations": rows})
	}
}
