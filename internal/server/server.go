// Package server exposes the tutorial API over gin.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	goshape "github.com/reoring/goshape"
	ginmw "github.com/reoring/goshape/middleware/gin"
	"github.com/reoring/goshape/internal/logging"
	"github.com/reoring/goshape/internal/metrics"
	"github.com/reoring/goshape/internal/shapes"
	"github.com/reoring/goshape/internal/store"
)

// Deps are the collaborators the routes consume.
type Deps struct {
	Mapper  goshape.Mapper
	Shapes  *shapes.Set
	Catalog *shapes.Catalog
	Store   store.Store
	Metrics *metrics.Metrics
	Logger  zerolog.Logger
	Opt     goshape.ParseOpt
}

// Server owns the gin engine and its http.Server.
type Server struct {
	engine *gin.Engine
	http   *http.Server
	log    zerolog.Logger
}

// New wires the routes. mode is a gin mode (debug, release, test).
func New(addr, mode string, d Deps) *Server {
	gin.SetMode(mode)
	if d.Shapes == nil {
		d.Shapes = shapes.Tutorial()
	}
	if d.Catalog == nil {
		d.Catalog = shapes.NewCatalog(d.Shapes)
	}
	if d.Mapper == nil {
		d.Mapper = goshape.NewMapper(d.Opt)
	}
	if d.Store == nil {
		d.Store = store.NewStatic(nil)
	}
	if d.Metrics == nil {
		d.Metrics = metrics.New()
	}

	r := gin.New()
	r.Use(gin.Recovery(), logging.RequestLogger(d.Logger), d.Metrics.Middleware())
	SetupRoutes(r, d)

	return &Server{
		engine: r,
		http: &http.Server{
			Addr:              addr,
			Handler:           r,
			ReadHeaderTimeout: 10 * time.Second,
		},
		log: d.Logger,
	}
}

// SetupRoutes registers every route on r.
func SetupRoutes(r *gin.Engine, d Deps) {
	h := &handler{d: d}
	observe := ginmw.OnResult(func(_ *gin.Context, s *goshape.Shape, err error) {
		d.Metrics.ObserveValidation(s.Name(), err)
	})

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Not Found"})
	})

	r.GET("/items", h.readItemQuery)
	r.GET("/items/:item_id", h.readItem)
	r.PUT("/items/:item_id", ginmw.ValidateJSON(d.Shapes.Item, d.Opt, observe), h.updateItem)
	r.POST("/offer", ginmw.ValidateJSON(d.Shapes.Offer, d.Opt, observe), h.createOffer)
	r.POST("/images/multiple/", ginmw.ValidateJSONList(d.Shapes.Image, d.Opt, observe), h.createImages)
	r.POST("/user/", ginmw.ValidateJSON(d.Shapes.UserIn, d.Opt, observe), h.createUser)

	r.GET("/schemas", h.listSchemas)
	r.GET("/schemas/:name", h.getSchema)
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(d.Metrics.Handler()))
}

// Handler returns the root http.Handler.
func (s *Server) Handler() http.Handler { return s.engine }

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errc := make(chan error, 1)
	go func() {
		s.log.Info().Str("address", s.http.Addr).Msg("listening")
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
		close(errc)
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	s.log.Info().Msg("shutting down")
	if err := s.http.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errc
}
