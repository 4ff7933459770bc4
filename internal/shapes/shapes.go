// Package shapes declares the shapes of the tutorial API.
package shapes

import (
	"sort"

	goshape "github.com/reoring/goshape"
	g "github.com/reoring/goshape/dsl"
)

// Set holds every shape the server validates against.
type Set struct {
	Image     *goshape.Shape
	Item      *goshape.Shape
	Offer     *goshape.Shape
	UserIn    *goshape.Shape
	UserOut   *goshape.Shape
	ItemQuery *goshape.Shape
	ItemPath  *goshape.Shape
}

// Tutorial builds the shapes.
func Tutorial() *Set {
	image := g.Object("Image").
		Field("url", g.URL()).
		Field("name", g.String()).
		MustBuild()

	item := g.Object("Item").
		Field("name", g.String()).
		Field("description", g.Optional(g.String())).
		Field("price", g.Number()).
		Field("tax", g.Number()).Default(10.5).
		Field("tags", g.ArrayOf(g.String())).Default([]any{}).
		Field("image", g.Optional(g.ArrayOf(g.ShapeOf(image)))).
		MustBuild()

	offer := g.Object("Offer").
		Field("name", g.String()).
		Field("description", g.String()).
		Field("price", g.Int()).
		Field("items", g.ArrayOf(g.ShapeOf(item))).
		MustBuild()

	userIn := g.Object("UserIn").
		Field("username", g.String()).
		Field("password", g.String()).
		Field("email", g.String()).
		Field("full_name", g.Optional(g.String())).
		MustBuild()

	return &Set{
		Image:   image,
		Item:    item,
		Offer:   offer,
		UserIn:  userIn,
		UserOut: g.Extend("UserOut", userIn, "password").MustBuild(),
		ItemQuery: g.Object("ItemQuery").
			Field("item_id", g.String()).
			Field("q", g.Optional(g.String())).
			Field("short", g.Bool()).Default(false).
			MustBuild(),
		ItemPath: g.Object("ItemPath").
			Field("item_id", g.Int()).
			MustBuild(),
	}
}

// All returns the shapes by name.
func (s *Set) All() map[string]*goshape.Shape {
	out := map[string]*goshape.Shape{}
	for _, sh := range []*goshape.Shape{s.Image, s.Item, s.Offer, s.UserIn, s.UserOut, s.ItemQuery, s.ItemPath} {
		out[sh.Name()] = sh
	}
	return out
}

// Catalog resolves shapes by name for /schemas and the CLI.
type Catalog struct {
	byName map[string]*goshape.Shape
}

// Source is anything that lists named shapes (a shapefile.Registry).
type Source interface {
	Get(name string) (*goshape.Shape, bool)
	Names() []string
}

// NewCatalog indexes the built-in shapes, then every extra source in order.
// Later sources override earlier names.
func NewCatalog(builtin *Set, extra ...Source) *Catalog {
	c := &Catalog{byName: builtin.All()}
	for _, src := range extra {
		if src == nil {
			continue
		}
		for _, n := range src.Names() {
			if sh, ok := src.Get(n); ok {
				c.byName[n] = sh
			}
		}
	}
	return c
}

// Get returns the shape named name.
func (c *Catalog) Get(name string) (*goshape.Shape, bool) {
	s, ok := c.byName[name]
	return s, ok
}

// Names lists shape names in sorted order.
func (c *Catalog) Names() []string {
	out := make([]string, 0, len(c.byName))
	for n := range c.byName {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}
