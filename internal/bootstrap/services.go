package bootstrap

import (
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"
	"github.com/stylehaus/ui-api/config"
	"github.com/stylehaus/ui-api/internal/data"
	"github.com/stylehaus/ui-api/internal/service"
	"github.com/stylehaus/ui-api/internal/viewas"
)

// ServiceContainer holds all application services.
type ServiceContainer struct {
	Sessions   *service.SessionService
	Spotlights *service.SpotlightService
	Overrides  *viewas.Store
}

// ServiceDeps groups dependencies for service initialization.
type ServiceDeps struct {
	Config      *config.AppConfig
	DB          *sql.DB
	RedisClient redis.UniversalClient
	Logger      *slog.Logger
}

// BuildServices wires repositories and adapters into the application
// services.
func BuildServices(deps *ServiceDeps) (ServiceContainer, error) {
	sessions, err := BuildSessionService(AuthDeps{
		Auth:        deps.Config.Auth,
		DB:          deps.DB,
		RedisClient: deps.RedisClient,
	})
	if err != nil {
		return ServiceContainer{}, fmt.Errorf("build services: %w", err)
	}

	spotlights := service.NewSpotlightService(service.SpotlightServiceOptions{
		Spotlights: data.NewSpotlightRepo(deps.DB),
	})

	return ServiceContainer{
		Sessions:   sessions,
		Spotlights: spotlights,
		Overrides:  viewas.NewStore(),
	}, nil
}
