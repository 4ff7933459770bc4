package echomw

import (
	"net/http"

	"github.com/labstack/echo/v4"
	goshape "github.com/reoring/goshape"
	"github.com/reoring/goshape/middleware"
)

// ResultFunc observes every validation outcome; err is nil on success.
type ResultFunc func(c echo.Context, s *goshape.Shape, err error)

// ValidateJSON validates the request body against s, stores the Record in
// context on success, or answers 422 (400 for unreadable bodies) with the
// detail payload. Duplicate keys under Warn are logged through the echo
// logger and echoed in the Warning-Issue header.
func ValidateJSON(s *goshape.Shape, opt goshape.ParseOpt, observers ...ResultFunc) echo.MiddlewareFunc {
	if middleware.IsZeroOpt(opt) {
		opt = middleware.DefaultParseOpt()
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			warn := func(it goshape.Issue) {
				c.Logger().Warnf("%s: %s", s.Name(), middleware.WarningValue(it))
				c.Response().Header().Add(middleware.WarningHeader, middleware.WarningValue(it))
			}
			rec, err := goshape.ValidateReader(c.Request().Body, s, opt, warn)
			for _, fn := range observers {
				fn(c, s, err)
			}
			if err != nil {
				if iss, ok := goshape.AsIssues(err); ok {
					status := http.StatusUnprocessableEntity
					if middleware.IsParseFailure(iss) {
						status = http.StatusBadRequest
					}
					return c.JSON(status, middleware.ErrorPayload(iss))
				}
				return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
			}
			ctx := middleware.ContextWithRecord(c.Request().Context(), rec)
			c.SetRequest(c.Request().WithContext(ctx))
			return next(c)
		}
	}
}

// GetRecord fetches the Record from echo.Context.
func GetRecord(c echo.Context) (*goshape.Record, bool) {
	return middleware.RecordFromContext(c.Request().Context())
}
