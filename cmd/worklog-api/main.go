// @title         Worklog API
// @version       0.1.0
// @description   Command surface for recording tracking sessions, managing users, and reading compliance reports

package main

import (
	"context"

	"worklog/internal/platform/config"
	"worklog/internal/platform/logger"
	phttp "worklog/internal/platform/net/http"
	"worklog/internal/platform/store"

	"worklog/internal/services/api"
)

func main() {
	root := config.New()
	apiCfg := root.Prefix("WORKLOG_API_")
	dbCfg := root.Prefix("WORKLOG_PGSQL_")

	l := logger.Get()

	dsn := dbCfg.MayString("DBURL", "")
	if dsn == "" {
		panic("missing WORKLOG_PGSQL_DBURL")
	}
	st, err := store.Open(
		context.Background(),
		store.Config{
			PG: store.PGConfig{
				Enabled:     true,
				URL:         dsn,
				MaxConns:    int32(dbCfg.MayInt("MAX_CONNS", 4)),
				SlowQueryMs: dbCfg.MayInt("SLOW_MS", 500),
				LogSQL:      dbCfg.MayBool("LOG_SQL", true),
			},
		},
		store.WithLogger(*logger.Get()),
	)
	if err != nil {
		l.Panic().Err(err).Msg("store.Open failed")
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()

	srv := phttp.NewServer(apiCfg)

	api.Mount(
		srv.Router(),
		api.Options{
			Config:         apiCfg,
			Store:          st,
			Logger:         l,
			EnableSwagger:  apiCfg.MayBool("SWAGGER", true),
			EnableProfiler: apiCfg.MayBool("PROFILER", false),
		},
	)

	if err := srv.Run(context.Background()); err != nil {
		l.Panic().Err(err).Msg("http server stopped")
	}
}
