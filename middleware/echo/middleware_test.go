package echomw_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	goshape "github.com/reoring/goshape"
	g "github.com/reoring/goshape/dsl"
	echomw "github.com/reoring/goshape/middleware/echo"
)

func TestValidateJSON(t *testing.T) {
	in := g.Object("UserIn").
		Field("username", g.String()).
		Field("password", g.String()).
		Field("email", g.String()).
		Field("full_name", g.Optional(g.String())).
		MustBuild()
	out := g.Extend("UserOut", in, "password").MustBuild()

	e := echo.New()
	e.POST("/user/", func(c echo.Context) error {
		rec, ok := echomw.GetRecord(c)
		if !ok {
			return c.NoContent(http.StatusInternalServerError)
		}
		pub, err := goshape.Project(rec, out)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, goshape.Serialize(pub, goshape.EncodeOpt{}))
	}, echomw.ValidateJSON(in, goshape.ParseOpt{}))

	post := func(body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/user/", strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		w := httptest.NewRecorder()
		e.ServeHTTP(w, req)
		return w
	}

	w := post(`{"username":"al","password":"x","email":"a@b.com"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"username":"al","email":"a@b.com","full_name":null}`, w.Body.String())

	w = post(`{"username":"al"}`)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "missing_required")
}

func TestValidateJSON_DuplicateKeyWarning(t *testing.T) {
	s := g.Object("Tag").Field("label", g.String()).MustBuild()
	opt := goshape.ParseOpt{Strictness: goshape.Strictness{OnDuplicateKey: goshape.Warn}}

	var outcomes []error
	observe := func(_ echo.Context, _ *goshape.Shape, err error) { outcomes = append(outcomes, err) }

	e := echo.New()
	e.POST("/tag", func(c echo.Context) error {
		rec, _ := echomw.GetRecord(c)
		return c.JSON(http.StatusOK, goshape.SerializeWithUnsetOmission(rec))
	}, echomw.ValidateJSON(s, opt, observe))

	post := func(body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/tag", strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		w := httptest.NewRecorder()
		e.ServeHTTP(w, req)
		return w
	}

	w := post(`{"label":"a","label":"b"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"label":"b"}`, w.Body.String())
	assert.Equal(t, "duplicate_key at label", w.Header().Get("Warning-Issue"))

	w = post(`{}`)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Empty(t, w.Header().Get("Warning-Issue"))

	require.Len(t, outcomes, 2)
	assert.NoError(t, outcomes[0])
	assert.True(t, goshape.IsMissingRequired(outcomes[1]))
}
