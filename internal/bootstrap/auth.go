package bootstrap

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/stylehaus/ui-api/config"
	"github.com/stylehaus/ui-api/internal/adapters/oidc"
	redisadapter "github.com/stylehaus/ui-api/internal/adapters/redis"
	"github.com/stylehaus/ui-api/internal/adapters/sessiontoken"
	"github.com/stylehaus/ui-api/internal/adapters/staticauth"
	"github.com/stylehaus/ui-api/internal/data"
	"github.com/stylehaus/ui-api/internal/ports"
	"github.com/stylehaus/ui-api/internal/service"
)

// AuthDeps contains dependencies for building the session service.
type AuthDeps struct {
	Auth        config.AuthConfig
	DB          *sql.DB
	RedisClient redis.UniversalClient
}

// BuildSessionService wires the identity-assertion verifier, session
// artifact codec, Redis session store, and user claim store into a
// session service per the configured auth mode.
func BuildSessionService(deps AuthDeps) (*service.SessionService, error) {
	if deps.RedisClient == nil {
		return nil, errors.New("build session service: redis client is required")
	}
	if deps.DB == nil {
		return nil, errors.New("build session service: database is required")
	}

	verifier, err := buildTokenVerifier(deps.Auth)
	if err != nil {
		return nil, err
	}

	codec, err := sessiontoken.NewCodec(deps.Auth.SessionSigningKey)
	if err != nil {
		return nil, fmt.Errorf("build session service: %w", err)
	}

	return service.NewSessionService(service.SessionServiceOptions{
		Verifier:         verifier,
		Sessions:         redisadapter.NewSessionStore(deps.RedisClient),
		Codec:            codec,
		Claims:           data.NewUserRepo(deps.DB),
		SessionTTL:       deps.Auth.SessionTTL,
		FreshLoginWindow: deps.Auth.FreshLoginWindow,
		VerifyTimeout:    deps.Auth.VerifyTimeout,
	})
}

//nolint:ireturn // the verifier implementation is chosen by auth mode at runtime.
func buildTokenVerifier(cfg config.AuthConfig) (ports.TokenVerifier, error) {
	switch cfg.Mode {
	case config.AuthModeStatic:
		verifier, err := staticauth.NewVerifier(staticauth.Config{
			Token:   cfg.StaticAuth.Token,
			Subject: cfg.StaticAuth.Subject,
			Email:   cfg.StaticAuth.Email,
			Role:    cfg.StaticAuth.Role,
		})
		if err != nil {
			return nil, fmt.Errorf("build static verifier: %w", err)
		}
		return verifier, nil

	case config.AuthModeOIDC:
		verifier, err := oidc.NewVerifier(oidc.VerifierConfig{
			ClientID:     cfg.OIDC.ClientID,
			IssuerURL:    cfg.OIDC.IssuerURL,
			DiscoveryURL: cfg.OIDC.DiscoveryURL,
		})
		if err != nil {
			return nil, fmt.Errorf("build oidc verifier: %w", err)
		}
		return verifier, nil

	default:
		return nil, fmt.Errorf("unknown auth mode: %q", cfg.Mode)
	}
}
