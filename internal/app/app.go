package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/newsdeck/newsdeck/internal/command"
	"github.com/newsdeck/newsdeck/internal/datasources"
	"github.com/newsdeck/newsdeck/internal/datasources/memcache"
	"github.com/newsdeck/newsdeck/internal/datasources/mysql"
	"github.com/newsdeck/newsdeck/internal/datasources/rediscache"
	"github.com/newsdeck/newsdeck/internal/transport/web/router"
	"github.com/newsdeck/newsdeck/internal/transport/web/server"
)

type Component interface {
	Run(ctx context.Context) error
}

func Setup(ctx context.Context) ([]Component, error) {
	repo, err := SetupRepository(ctx)
	if err != nil {
		return nil, fmt.Errorf("setting up repository: %w", err)
	}

	authMiddleware := setupAuthMiddleware(ctx, repo)

	httpRouter, err := router.MakeRouter(
		router.Dependencies{
			SearchArticles:    command.NewSearchArticles(repo, repo),
			GetPreferences:    &command.GetPreferences{Fetcher: repo},
			UpdatePreferences: &command.UpdatePreferences{Replacer: repo},
			RegisterUser:      command.NewRegisterUser(repo, repo),
			LoginUser:         command.NewLoginUser(repo, repo),
			LogoutUser:        &command.LogoutUser{Revoker: repo},
			RefreshToken:      command.NewRefreshToken(repo, repo),
			SourceLister:      repo,
			CategoryLister:    repo,
			LatestArticles:    repo,
		},
		MustGetEnvAsString(ctx, "RSS_FEED_BASE_URL"),
		MustGetEnvAsString(ctx, "RSS_FEED_AUTHOR_NAME"),
		MustGetEnvAsString(ctx, "RSS_FEED_AUTHOR_EMAIL"),
		MustGetEnvAsDuration(ctx, "ARTICLES_CACHE_MAX_AGE"),
		authMiddleware,
	)
	if err != nil {
		return nil, fmt.Errorf("unable to create HTTP router: %w", err)
	}

	return []Component{
		&server.Server{
			TLSDisabled:      MustGetEnvAsBoolean(ctx, "HTTP_TLS_DISABLED"),
			TLSDisabledPort:  MustGetEnvAsInt(ctx, "PORT"),
			AutocertHostname: GetEnvAsStringWithDefault("HTTP_AUTOCERT_HOSTNAME", ""),
			Router:           httpRouter,
		},
	}, nil
}

func SetupRepository(ctx context.Context) (*mysql.Repository, error) {
	db, err := mysql.Connect(ctx, MustGetEnvAsString(ctx, "MYSQL_URI"))
	if err != nil {
		return nil, fmt.Errorf("connecting to MySQL: %w", err)
	}
	return mysql.New(db), nil
}

// SetupCache picks the cache backend from CACHE_DRIVER. The in-memory cache
// is per-process; fetch jobs spread across hosts need redis so rate-limit
// counters are shared.
func SetupCache(ctx context.Context) (datasources.Cache, error) {
	switch driver := GetEnvAsStringWithDefault("CACHE_DRIVER", "memory"); driver {
	case "memory":
		return memcache.New(), nil
	case "redis":
		cache, err := rediscache.Connect(ctx, MustGetEnvAsString(ctx, "REDIS_ADDR"))
		if err != nil {
			return nil, fmt.Errorf("connecting to redis: %w", err)
		}
		return cache, nil
	default:
		return nil, fmt.Errorf("unknown cache driver [%s]", driver)
	}
}

func setupAuthMiddleware(
	ctx context.Context, repo datasources.AuthRepository,
) func(http.Handler) http.Handler {
	return router.NewAuthMiddleware([]router.AuthValidator{
		router.NewBearerTokenValidator(ctx, repo, repo),
	})
}
