package router

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/newsdeck/newsdeck/internal/command"
	"github.com/newsdeck/newsdeck/internal/datasources"
	"github.com/newsdeck/newsdeck/internal/transport/web/controller"
)

type Dependencies struct {
	SearchArticles    *command.SearchArticles
	GetPreferences    *command.GetPreferences
	UpdatePreferences *command.UpdatePreferences
	RegisterUser      *command.RegisterUser
	LoginUser         *command.LoginUser
	LogoutUser        *command.LogoutUser
	RefreshToken      *command.RefreshToken

	SourceLister   datasources.ActiveSourceLister
	CategoryLister datasources.CategoryLister
	LatestArticles datasources.LatestArticleLister
}

func MakeRouter(
	deps Dependencies,
	rssFeedBaseURL, rssFeedAuthorName, rssFeedAuthorEmail string,
	latestCacheMaxAge time.Duration,
	authMiddleware func(http.Handler) http.Handler,
) (http.Handler, error) {
	r := mux.NewRouter()
	r.Use(corsMiddleware)
	r.Use(authMiddleware)

	r.Handle("/api/v1/articles", controller.ArticlesSearch{
		Search:      deps.SearchArticles,
		CacheMaxAge: latestCacheMaxAge,
	}).Methods(http.MethodGet, http.MethodOptions)

	r.Handle("/api/v1/sources", controller.SourcesList{
		Lister: deps.SourceLister,
	}).Methods(http.MethodGet, http.MethodOptions)

	r.Handle("/api/v1/categories", controller.CategoriesList{
		Lister: deps.CategoryLister,
	}).Methods(http.MethodGet, http.MethodOptions)

	r.Handle("/api/v1/auth/register", controller.Register{
		Command: deps.RegisterUser,
	}).Methods(http.MethodPost, http.MethodOptions)

	r.Handle("/api/v1/auth/login", controller.Login{
		Command: deps.LoginUser,
	}).Methods(http.MethodPost, http.MethodOptions)

	r.Handle("/api/v1/auth/logout", requireAuthMiddleware(controller.Logout{
		Command: deps.LogoutUser,
	})).Methods(http.MethodPost, http.MethodOptions)

	r.Handle("/api/v1/auth/refresh", requireAuthMiddleware(controller.TokenRefresh{
		Command: deps.RefreshToken,
	})).Methods(http.MethodPost, http.MethodOptions)

	r.Handle("/api/v1/preferences", requireAuthMiddleware(controller.PreferencesGet{
		Command: deps.GetPreferences,
	})).Methods(http.MethodGet, http.MethodOptions)

	r.Handle("/api/v1/preferences", requireAuthMiddleware(controller.PreferencesUpdate{
		Command: deps.UpdatePreferences,
	})).Methods(http.MethodPut, http.MethodOptions)

	r.Handle("/rss", controller.RSS{
		FeedHostname:    rssFeedBaseURL,
		FeedPath:        "/rss",
		FeedAuthorName:  rssFeedAuthorName,
		FeedAuthorEmail: rssFeedAuthorEmail,
		Lister:          deps.LatestArticles,
		CacheMaxAge:     latestCacheMaxAge,
	}).Methods(http.MethodGet, http.MethodOptions)

	return r, nil
}
