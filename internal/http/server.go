// README: API gateway; registers HTTP routes and delegates to module services.
package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"pulse/internal/almanac"
	"pulse/internal/http/handlers"
	"pulse/internal/http/middleware"
	"pulse/internal/infra"
	"pulse/internal/modules/favorites"
	"pulse/internal/modules/picker"
	"pulse/internal/modules/profile"
	"pulse/internal/modules/pulse"
)

type ServerDeps struct {
	Profile   *profile.Service
	Favorites *favorites.Service
	Picker    *picker.Manager
	Pulse     *pulse.Service
	Almanac   *almanac.Service
	Verifier  infra.TokenVerifier
}

type Server struct {
	deps ServerDeps
}

func NewServer(deps ServerDeps) *Server {
	return &Server{deps: deps}
}

func (s *Server) Routes() http.Handler {
	r := gin.New()
	r.Use(middleware.Logging(), middleware.Recovery())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	profileH := handlers.NewProfileHandler(s.deps.Profile)
	favoritesH := handlers.NewFavoritesHandler(s.deps.Favorites)
	pickerH := handlers.NewPickerHandler(s.deps.Picker, s.deps.Profile)
	pulseH := handlers.NewPulseHandler(s.deps.Pulse)
	almanacH := handlers.NewAlmanacHandler(s.deps.Almanac, s.deps.Profile)

	api := r.Group("/api", middleware.Auth(s.deps.Verifier))

	api.GET("/profile", profileH.Get)
	api.PUT("/profile/username", profileH.SetUsername)

	api.GET("/favorites", favoritesH.List)
	api.PATCH("/favorites", favoritesH.Rename)
	api.DELETE("/favorites", favoritesH.Delete)

	api.POST("/picker/open", pickerH.Open)
	api.GET("/picker", pickerH.State)
	api.DELETE("/picker", pickerH.Close)
	api.POST("/picker/query", pickerH.Query)
	api.POST("/picker/map", pickerH.Map)
	api.POST("/picker/back", pickerH.Back)
	api.POST("/picker/region", pickerH.Region)
	api.POST("/picker/confirm", pickerH.Confirm)
	api.POST("/picker/select", pickerH.Select)
	api.POST("/picker/precise", pickerH.Precise)
	api.POST("/picker/favorites/select", pickerH.SelectFavorite)
	api.POST("/picker/favorites/delete", pickerH.FavoriteDelete)
	api.POST("/picker/save/begin", pickerH.SaveBegin)
	api.POST("/picker/save/submit", pickerH.SaveSubmit)
	api.POST("/picker/edit/begin", pickerH.EditBegin)
	api.POST("/picker/edit/submit", pickerH.EditSubmit)
	api.POST("/picker/modal/cancel", pickerH.ModalCancel)

	api.POST("/pulses", pulseH.Create)
	api.GET("/pulses/nearby", pulseH.ListNearby)

	api.GET("/almanac", almanacH.Snapshot)

	return r
}
