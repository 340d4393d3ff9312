// File: cmd/server/wire.go
//go:build wireinject
// +build wireinject

package main

import (
	"giraffeql_web/internal/app"
	"giraffeql_web/internal/config"
	"giraffeql_web/internal/entry"
	"giraffeql_web/internal/jobs"
	"giraffeql_web/internal/profile"
	"giraffeql_web/internal/session"
	"giraffeql_web/internal/settings"

	"github.com/google/wire"
)

// initializeServer is the main Wire injector.
func initializeServer(cfg *config.Config) (*app.Server, func(), error) {
	wire.Build(
		// Platform Layer
		provideLogger,
		provideDatabase,

		// Session mirror
		provideSessionStore,
		provideProfileClient,
		wire.Bind(new(profile.Client), new(*profile.HTTPClient)),
		wire.Bind(new(session.Fetcher), new(*profile.HTTPClient)),
		session.NewHTTPResolver,
		wire.Bind(new(session.Resolver), new(*session.HTTPResolver)),

		// Views
		provideChecker,
		wire.Bind(new(entry.Checker), new(*entry.PostgresChecker)),
		entry.NewHandler,
		settings.NewHandler,
		jobs.NewSessionSweepJob,

		// Application Layer
		app.NewServer,
	)
	return nil, nil, nil
}
