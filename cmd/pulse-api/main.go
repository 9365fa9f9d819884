// README: Entry point; loads config, wires services, starts the HTTP server.
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"pulse/internal/almanac"
	"pulse/internal/config"
	"pulse/internal/geo"
	httptransport "pulse/internal/http"
	"pulse/internal/infra"
	"pulse/internal/modules/favorites"
	"pulse/internal/modules/picker"
	"pulse/internal/modules/profile"
	"pulse/internal/modules/pulse"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Firebase.ProjectID == "" {
		log.Fatal("PULSE_FIREBASE_PROJECT_ID is required")
	}
	verifier, err := infra.NewFirebaseVerifier(ctx, cfg.Firebase.ProjectID, cfg.Firebase.CredentialsFile)
	if err != nil {
		log.Fatalf("firebase init: %v", err)
	}

	dbPool, err := infra.NewDB(ctx, cfg.DB.DSN)
	if err != nil {
		log.Fatal(err)
	}

	redisClient := infra.NewRedis(cfg.Redis.Addr)

	geoClient, err := geo.NewClient(cfg.Maps.APIKey)
	if err != nil {
		log.Fatalf("maps init: %v", err)
	}

	profileSvc := profile.NewService(profile.NewStore(dbPool))
	favoritesSvc := favorites.NewService(favorites.NewStore(redisClient))
	pickerManager := picker.NewManager(geoClient, favoritesSvc, cfg.Picker.Debounce)
	pulseSvc := pulse.NewService(pulse.NewStore(dbPool))
	almanacSvc := almanac.NewService(
		almanac.NewMeteoClient(cfg.Meteo.WeatherURL, cfg.Meteo.AirQualityURL),
		almanac.NewHistoryClient(cfg.History.WikiURL, cfg.History.ImageURL, cfg.History.ImageKey),
	)

	handler := httptransport.NewServer(httptransport.ServerDeps{
		Profile:   profileSvc,
		Favorites: favoritesSvc,
		Picker:    pickerManager,
		Pulse:     pulseSvc,
		Almanac:   almanacSvc,
		Verifier:  verifier,
	})

	server := &http.Server{Addr: cfg.HTTP.Addr, Handler: handler.Routes()}

	go func() {
		<-ctx.Done()
		_ = server.Shutdown(context.Background())
	}()

	log.Printf("pulse-api listening on %s", cfg.HTTP.Addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal(err)
	}
}
