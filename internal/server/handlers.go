package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	goshape "github.com/reoring/goshape"
	ginmw "github.com/reoring/goshape/middleware/gin"
	"github.com/reoring/goshape/middleware"
)

const longDescription = "This is an amazing item that has a long description"

type handler struct {
	d Deps
}

// validate runs the mapper and records the outcome.
func (h *handler) validate(raw map[string]any, s *goshape.Shape) (*goshape.Record, error) {
	rec, err := h.d.Mapper.Validate(raw, s)
	h.d.Metrics.ObserveValidation(s.Name(), err)
	return rec, err
}

func (h *handler) project(r *goshape.Record, target *goshape.Shape) (*goshape.Record, error) {
	out, err := h.d.Mapper.Project(r, target)
	h.d.Metrics.ObserveProjection(r.Shape().Name(), target.Name(), err)
	return out, err
}

// reject answers 422 for Issues and 500 for anything else.
func (h *handler) reject(c *gin.Context, loc string, err error) {
	if iss, ok := goshape.AsIssues(err); ok {
		c.JSON(http.StatusUnprocessableEntity, middleware.ErrorPayloadAt(loc, iss))
		return
	}
	h.d.Logger.Error().Err(err).Str("path", c.Request.URL.Path).Msg("unexpected error")
	c.JSON(http.StatusInternalServerError, gin.H{"detail": "Internal Server Error"})
}

// body fetches the Record stored by the validation middleware.
func (h *handler) body(c *gin.Context) (*goshape.Record, bool) {
	rec, ok := ginmw.GetRecord(c)
	if !ok {
		h.reject(c, "body", errMissingBody)
		return nil, false
	}
	return rec, true
}

type constError string

func (e constError) Error() string { return string(e) }

const errMissingBody = constError("validated body missing from request context")

// GET /items?item_id=&q=&short=
func (h *handler) readItemQuery(c *gin.Context) {
	raw := map[string]any{}
	query := c.Request.URL.Query()
	for _, name := range h.d.Shapes.ItemQuery.Names() {
		if vs, ok := query[name]; ok && len(vs) > 0 {
			raw[name] = vs[0]
		}
	}
	rec, err := h.validate(raw, h.d.Shapes.ItemQuery)
	if err != nil {
		h.reject(c, "query", err)
		return
	}
	id, _ := rec.Get("item_id")
	out := goshape.NewOrderedMap()
	out.Set("item_id", id)
	if q, _ := rec.Get("q"); q != nil && q != "" {
		out.Set("q", q)
	}
	if short, _ := rec.Get("short"); short != true {
		out.Set("description", longDescription)
	}
	c.JSON(http.StatusOK, out)
}

// GET /items/:item_id
func (h *handler) readItem(c *gin.Context) {
	raw, ok := h.d.Store.Get(c.Param("item_id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Item not found"})
		return
	}
	rec, err := h.validate(raw, h.d.Shapes.Item)
	if err != nil {
		// stored data is trusted; a failure here is a server fault
		h.d.Logger.Error().Err(err).Str("item_id", c.Param("item_id")).Msg("stored item does not conform")
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Internal Server Error"})
		return
	}
	c.JSON(http.StatusOK, h.d.Mapper.SerializeWithUnsetOmission(rec))
}

// PUT /items/:item_id
func (h *handler) updateItem(c *gin.Context) {
	path, err := h.validate(map[string]any{"item_id": c.Param("item_id")}, h.d.Shapes.ItemPath)
	if err != nil {
		h.reject(c, "path", err)
		return
	}
	item, ok := h.body(c)
	if !ok {
		return
	}
	id, _ := path.Get("item_id")
	out := goshape.NewOrderedMap()
	out.Set("item_id", id)
	out.Set("item", goshape.Serialize(item, goshape.EncodeOpt{}))
	c.JSON(http.StatusOK, out)
}

// POST /offer
func (h *handler) createOffer(c *gin.Context) {
	offer, ok := h.body(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, goshape.Serialize(offer, goshape.EncodeOpt{}))
}

// POST /images/multiple/
func (h *handler) createImages(c *gin.Context) {
	images, ok := ginmw.GetRecords(c)
	if !ok {
		h.reject(c, "body", errMissingBody)
		return
	}
	c.JSON(http.StatusOK, goshape.SerializeList(images, goshape.EncodeOpt{}))
}

// POST /user/
func (h *handler) createUser(c *gin.Context) {
	user, ok := h.body(c)
	if !ok {
		return
	}
	pub, err := h.project(user, h.d.Shapes.UserOut)
	if err != nil {
		h.reject(c, "body", err)
		return
	}
	c.JSON(http.StatusOK, goshape.Serialize(pub, goshape.EncodeOpt{}))
}

// GET /schemas
func (h *handler) listSchemas(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"shapes": h.d.Catalog.Names()})
}

// GET /schemas/:name
func (h *handler) getSchema(c *gin.Context) {
	s, ok := h.d.Catalog.Get(c.Param("name"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Shape not found"})
		return
	}
	c.JSON(http.StatusOK, s.JSONSchema())
}
