package main

import (
	"context"
	"fmt"

	"github.com/jonboulle/clockwork"
	"github.com/mcdev12/weblurk/go/internal/admins"
	"github.com/mcdev12/weblurk/go/internal/agenda"
	"github.com/mcdev12/weblurk/go/internal/config"
	"github.com/mcdev12/weblurk/go/internal/db"
	"github.com/mcdev12/weblurk/go/internal/events"
	"github.com/mcdev12/weblurk/go/internal/lurk"
	"github.com/mcdev12/weblurk/go/internal/ranking"
	"github.com/mcdev12/weblurk/go/internal/store/memory"
	"github.com/mcdev12/weblurk/go/internal/viewers"
	"github.com/rs/zerolog/log"
)

// Stores holds one repository per domain, backed by Postgres or memory
type Stores struct {
	Lurk    lurk.LurkRepository
	Accruer lurk.Accruer
	Viewers viewers.ViewersRepository
	Ranking ranking.RankingRepository
	Agenda  agenda.AgendaRepository
	Admins  admins.AdminsRepository

	Ping  func(ctx context.Context) error
	Close func() error
}

func setupStores(ctx context.Context, cfg *config.Config) (*Stores, error) {
	if cfg.Store.Driver == config.StoreDriverMemory {
		log.Warn().Msg("using in-memory store, data is lost on restart")
		store := memory.New()
		return &Stores{
			Lurk:    store,
			Accruer: store,
			Viewers: store,
			Ranking: store,
			Agenda:  store,
			Admins:  store,
			Ping:    store.Ping,
			Close:   func() error { return nil },
		}, nil
	}

	database, err := setupDatabase(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}

	// Database layer → Repository layer
	queries := db.New(database)
	lurkRepo := lurk.NewRepository(database)
	return &Stores{
		Lurk:    lurkRepo,
		Accruer: lurkRepo,
		Viewers: viewers.NewRepository(queries),
		Ranking: ranking.NewRepository(queries),
		Agenda:  agenda.NewRepository(database),
		Admins:  admins.NewRepository(queries),
		Ping:    database.PingContext,
		Close:   database.Close,
	}, nil
}

type Services struct {
	Lurk    *lurk.Service
	Viewers *viewers.Service
	Ranking *ranking.Service
	Agenda  *agenda.Service
	Admins  *admins.Service

	AdminsApp *admins.App
	LurkApp   *lurk.App
	Scheduler *lurk.Scheduler
}

func setupServices(cfg *config.Config, stores *Stores, publisher events.Publisher) (*Services, error) {
	// Repository layer → App layer → Service layer
	clock := clockwork.NewRealClock()

	location, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	scheduler := lurk.NewScheduler(stores.Accruer,
		lurk.WithClock(clock),
		lurk.WithInterval(cfg.Lurk.Interval),
		lurk.WithCreditTimeout(cfg.Lurk.CreditTimeout),
		lurk.WithIdleTickLimit(cfg.Lurk.IdleTickLimit),
		lurk.WithPublisher(publisher),
	)

	lurkApp := lurk.NewApp(stores.Lurk, scheduler, clock, publisher)
	viewersApp := viewers.NewApp(stores.Viewers, clock)
	rankingApp := ranking.NewApp(stores.Ranking)
	agendaApp := agenda.NewApp(stores.Agenda, clock, location)
	adminsApp := admins.NewApp(stores.Admins, clock)

	return &Services{
		Lurk:      lurk.NewService(lurkApp),
		Viewers:   viewers.NewService(viewersApp),
		Ranking:   ranking.NewService(rankingApp),
		Agenda:    agenda.NewService(agendaApp),
		Admins:    admins.NewService(adminsApp),
		AdminsApp: adminsApp,
		LurkApp:   lurkApp,
		Scheduler: scheduler,
	}, nil
}

// startup bootstraps the creator administrator and resumes accrual for
// viewers that were lurking when the process last stopped
func startup(ctx context.Context, cfg *config.Config, services *Services) error {
	if cfg.Admin.BootstrapPassword == config.Default().Admin.BootstrapPassword {
		log.Warn().Str("login", cfg.Admin.BootstrapLogin).Msg("bootstrap administrator uses the default password")
	}
	if _, err := services.AdminsApp.Bootstrap(ctx, cfg.Admin.BootstrapLogin, cfg.Admin.BootstrapPassword); err != nil {
		return fmt.Errorf("failed to bootstrap administrator: %w", err)
	}

	if _, err := services.LurkApp.Resume(ctx); err != nil {
		return fmt.Errorf("failed to resume lurk timers: %w", err)
	}
	return nil
}
