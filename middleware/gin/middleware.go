package ginmw

import (
	"net/http"

	"github.com/gin-gonic/gin"
	goshape "github.com/reoring/goshape"
	"github.com/reoring/goshape/middleware"
)

// Option customizes ValidateJSON and ValidateJSONList.
type Option func(*options)

type options struct {
	onResult func(c *gin.Context, s *goshape.Shape, err error)
}

// OnResult registers fn to observe every validation outcome, including
// rejected bodies. err is nil on success.
func OnResult(fn func(c *gin.Context, s *goshape.Shape, err error)) Option {
	return func(o *options) { o.onResult = fn }
}

func buildOptions(opts []Option) options {
	var o options
	for _, fn := range opts {
		fn(&o)
	}
	if o.onResult == nil {
		o.onResult = func(*gin.Context, *goshape.Shape, error) {}
	}
	return o
}

// ValidateJSON validates the request body against s with opt (or
// DefaultParseOpt when zero value) and stores the Record in the request
// context. Validation failures answer 422 with the detail payload; unreadable
// bodies answer 400. Duplicate keys under Warn are attached to the context
// errors and echoed in the Warning-Issue header.
func ValidateJSON(s *goshape.Shape, opt goshape.ParseOpt, opts ...Option) gin.HandlerFunc {
	if middleware.IsZeroOpt(opt) {
		opt = middleware.DefaultParseOpt()
	}
	o := buildOptions(opts)
	return func(c *gin.Context) {
		rec, err := goshape.ValidateReader(c.Request.Body, s, opt, warn(c))
		o.onResult(c, s, err)
		if err != nil {
			abort(c, err)
			return
		}
		c.Request = c.Request.WithContext(middleware.ContextWithRecord(c.Request.Context(), rec))
		c.Next()
	}
}

// ValidateJSONList is ValidateJSON for bodies that are arrays of s.
func ValidateJSONList(s *goshape.Shape, opt goshape.ParseOpt, opts ...Option) gin.HandlerFunc {
	if middleware.IsZeroOpt(opt) {
		opt = middleware.DefaultParseOpt()
	}
	o := buildOptions(opts)
	return func(c *gin.Context) {
		v, err := goshape.ReadJSON(c.Request.Body, opt, warn(c))
		if err != nil {
			o.onResult(c, s, err)
			abort(c, err)
			return
		}
		recs, err := goshape.ValidateList(v, s, opt)
		o.onResult(c, s, err)
		if err != nil {
			abort(c, err)
			return
		}
		c.Request = c.Request.WithContext(middleware.ContextWithRecords(c.Request.Context(), recs))
		c.Next()
	}
}

func warn(c *gin.Context) func(goshape.Issue) {
	return func(it goshape.Issue) {
		_ = c.Error(goshape.Issues{it}).SetType(gin.ErrorTypePrivate)
		c.Writer.Header().Add(middleware.WarningHeader, middleware.WarningValue(it))
	}
}

func abort(c *gin.Context, err error) {
	iss, ok := goshape.AsIssues(err)
	if !ok {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	status := http.StatusUnprocessableEntity
	if middleware.IsParseFailure(iss) {
		status = http.StatusBadRequest
	}
	_ = c.Error(err)
	c.AbortWithStatusJSON(status, middleware.ErrorPayload(iss))
}

// GetRecord fetches the Record stored by ValidateJSON.
func GetRecord(c *gin.Context) (*goshape.Record, bool) {
	return middleware.RecordFromContext(c.Request.Context())
}

// GetRecords fetches the Records stored by ValidateJSONList.
func GetRecords(c *gin.Context) ([]*goshape.Record, bool) {
	return middleware.RecordsFromContext(c.Request.Context())
}
