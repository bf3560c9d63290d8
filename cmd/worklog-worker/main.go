package main

import (
	"context"
	"sync"

	"worklog/internal/modkit"
	"worklog/internal/modkit/module"
	"worklog/internal/platform/config"
	"worklog/internal/platform/logger"
	"worklog/internal/platform/store"

	autoshutdownmod "worklog/internal/services/autoshutdown/module"
	credentialsmod "worklog/internal/services/credentials/module"
	forgotshutdownmod "worklog/internal/services/forgotshutdown/module"
	holidaysmod "worklog/internal/services/holidays/module"
	"worklog/internal/services/notify/logsink"
	remindermod "worklog/internal/services/reminder/module"
)

func main() {
	root := config.New()
	dbCfg := root.Prefix("WORKLOG_PGSQL_")

	l := logger.Get()

	st, err := store.Open(context.Background(), store.Config{
		PG: store.PGConfig{
			Enabled:     true,
			URL:         dbCfg.MustString("DBURL"),
			MaxConns:    int32(dbCfg.MayInt("MAX_CONNS", 4)),
			SlowQueryMs: dbCfg.MayInt("SLOW_MS", 500),
			LogSQL:      dbCfg.MayBool("LOG_SQL", false),
		},
	}, store.WithLogger(*l))
	if err != nil {
		l.Panic().Err(err).Msg("store.Open failed")
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()

	deps := modkit.Deps{
		Cfg: root,
		PG:  st.PG,
		Log: *l,
	}

	sink := logsink.New()

	holidays := holidaysmod.New(deps)
	holidaysPorts := module.MustPortsOf[holidaysmod.Ports](holidays)

	credentials := credentialsmod.New(deps, credentialsmod.Options{})
	credPorts := module.MustPortsOf[credentialsmod.Ports](credentials)

	autoshutdown := autoshutdownmod.New(deps, sink, autoshutdownmod.Options{})
	forgotshutdown := forgotshutdownmod.New(deps, sink, forgotshutdownmod.Options{})
	reminder := remindermod.New(deps, holidaysPorts.Service, sink, remindermod.Options{})

	module.Register(holidays.Name(), holidays.Ports())
	module.Register(credentials.Name(), credentials.Ports())
	module.Register(autoshutdown.Name(), autoshutdown.Ports())
	module.Register(forgotshutdown.Name(), forgotshutdown.Ports())
	module.Register(reminder.Name(), reminder.Ports())

	autoshutdownPorts := module.MustPortsOf[autoshutdownmod.Ports](autoshutdown)
	forgotshutdownPorts := module.MustPortsOf[forgotshutdownmod.Ports](forgotshutdown)
	reminderPorts := module.MustPortsOf[remindermod.Ports](reminder)

	ctx := context.Background()
	var wg sync.WaitGroup

	run := func(name string, fn func(context.Context) error) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := fn(ctx); err != nil {
				l.Error().Err(err).Str("supervisor", name).Msg("supervisor stopped")
			}
		}()
	}

	run("auto-shutdown", autoshutdownPorts.Worker.Run)
	run("forgot-shutdown", forgotshutdownPorts.Worker.Run)
	run("reminder", reminderPorts.Worker.Run)
	run("credential-reaper", credPorts.Worker.Run)

	wg.Wait()
}
