// Package router wires HTTP routes to their handlers.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/fyyur/internal/handler"
	"github.com/iliyamo/fyyur/internal/render"
)

// RegisterRoutes registers every page, form and health route. submit guards
// the routes that write; pass nil to leave them unguarded.
func RegisterRoutes(e *echo.Echo, h *handler.Handler, submit echo.MiddlewareFunc) {
	var guard []echo.MiddlewareFunc
	if submit != nil {
		guard = append(guard, submit)
	}

	e.GET("/", h.Index)
	e.GET("/healthz", h.Health)
	e.StaticFS("/static", render.Static())

	registerVenues(e, h, guard)
	registerArtists(e, h, guard)
	registerShows(e, h, guard)
}

func registerVenues(e *echo.Echo, h *handler.Handler, guard []echo.MiddlewareFunc) {
	g := e.Group("/venues")
	g.GET("", h.ListVenues)
	g.POST("/search", h.SearchVenues)
	g.GET("/create", h.CreateVenueForm)
	g.POST("/create", h.CreateVenue, guard...)
	g.GET("/:id", h.ShowVenue)
	g.GET("/:id/edit", h.EditVenueForm)
	g.POST("/:id/edit", h.EditVenue, guard...)
	g.DELETE("/:id", h.DeleteVenue, guard...)

	// Legacy form target used by the venue page's delete button.
	e.POST("/:id/delete/", h.DeleteVenue, guard...)
}

func registerArtists(e *echo.Echo, h *handler.Handler, guard []echo.MiddlewareFunc) {
	g := e.Group("/artists")
	g.GET("", h.ListArtists)
	g.POST("/search", h.SearchArtists)
	g.GET("/create", h.CreateArtistForm)
	g.POST("/create", h.CreateArtist, guard...)
	g.GET("/:id", h.ShowArtist)
	g.GET("/:id/edit", h.EditArtistForm)
	g.POST("/:id/edit", h.EditArtist, guard...)
}

func registerShows(e *echo.Echo, h *handler.Handler, guard []echo.MiddlewareFunc) {
	g := e.Group("/shows")
	g.GET("", h.ListShows)
	g.GET("/create", h.CreateShowForm)
	g.POST("/create", h.CreateShow, guard...)
}
