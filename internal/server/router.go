package server

import (
	"context"
	"net/http"

	"cocktaildb/internal/handlers"
	applog "cocktaildb/internal/log"
)

type route struct {
	pattern   string
	handler   http.HandlerFunc
	protected bool
}

// routes lists exact paths before the prefix patterns that would otherwise shadow them.
var routes = []route{
	{pattern: "/healthz", handler: handlers.Health},
	{pattern: "/login", handler: handlers.Login},
	{pattern: "/logout", handler: handlers.Logout},
	{pattern: "/preferences/theme", handler: handlers.UpdatePreferences},
	{pattern: "/cocktails", handler: handlers.Cocktails},
	{pattern: "/cocktails/search", handler: handlers.CocktailSearch},
	{pattern: "/cocktails/filter", handler: handlers.CocktailFilter},
	{pattern: "/cocktails/new", handler: handlers.NewCocktail, protected: true},
	{pattern: "/cocktails/form", handler: handlers.CocktailComposer, protected: true},
	{pattern: "/cocktails/", handler: handlers.CocktailResource},
	{pattern: "/ingredients", handler: handlers.Ingredients},
	{pattern: "/ingredients/new", handler: handlers.NewIngredient, protected: true},
	{pattern: "/ingredients/", handler: handlers.IngredientResource},
	{pattern: "/", handler: handlers.Home},
}

func newRouter() http.Handler {
	mux := http.NewServeMux()
	applog.Debug(context.Background(), "registering http routes")
	for _, rt := range routes {
		var handler http.Handler = rt.handler
		if rt.protected {
			handler = handlers.RequireAuthentication(handler)
		}
		mux.Handle(rt.pattern, handler)
		applog.Debug(context.Background(), "route registered", "path", rt.pattern, "protected", rt.protected)
	}
	return mux
}
