package app

import (
	"context"

	cascadeAPI "genesis_reels/internal/api/cascade"
	"genesis_reels/internal/config"
	"genesis_reels/internal/config/env"
	"genesis_reels/internal/logger"
	"genesis_reels/internal/middleware"
	"genesis_reels/internal/repository"
	"genesis_reels/internal/repository/session_repo"
	"genesis_reels/internal/repository/stats_repo"
	"genesis_reels/internal/service"
	"genesis_reels/internal/service/cascade"

	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/avito-tech/go-transaction-manager/trm/v2"
	"github.com/avito-tech/go-transaction-manager/trm/v2/manager"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type ServiceProvider struct {
	//TXManager
	txManager trm.Manager

	// Database
	pgConfig config.PGConfig
	dbClient *pgxpool.Pool

	// Logging
	logCfg config.LogConfig
	log    *zap.Logger

	// Cascade bits
	cascadeCfg       config.CascadeConfig
	sessionRepo      repository.SessionRepository
	cascadeStatsRepo repository.StatsRepository
	cascadeServ      service.CascadeService
	cascadeHand      *cascadeAPI.Handler

	// Router and HTTP config
	httpCfg config.HTTPConfig
	router  chi.Router
}

func newServiceProvider() *ServiceProvider {
	return &ServiceProvider{}
}

func (sp *ServiceProvider) LogCfg() config.LogConfig {
	if sp.logCfg == nil {
		cfg, err := env.NewLogConfig()
		if err != nil {
			panic("failed to get log config: " + err.Error())
		}
		sp.logCfg = cfg
	}
	return sp.logCfg
}

func (sp *ServiceProvider) Logger() *zap.Logger {
	if sp.log == nil {
		sp.log = logger.Must(sp.LogCfg())
	}
	return sp.log
}

func (sp *ServiceProvider) PgConfig() config.PGConfig {
	if sp.pgConfig == nil {
		cfg, err := env.NewPGConfig()
		if err != nil {
			panic("failed to get database config: " + err.Error())
		}
		sp.pgConfig = cfg
	}
	return sp.pgConfig
}

func (sp *ServiceProvider) DBClient(ctx context.Context) *pgxpool.Pool {
	if sp.dbClient == nil {
		pgCfg := sp.PgConfig()
		poolCfg, err := pgxpool.ParseConfig(pgCfg.DSN())
		if err != nil {
			panic("failed to parse db dsn: " + err.Error())
		}
		if pgCfg.MaxConns() > 0 {
			poolCfg.MaxConns = pgCfg.MaxConns()
		}
		poolCfg.ConnConfig.ConnectTimeout = pgCfg.ConnectTimeout()

		dbc, err := pgxpool.NewWithConfig(ctx, poolCfg)
		if err != nil {
			panic("failed to create db pool: " + err.Error())
		}
		err = dbc.Ping(ctx)
		if err != nil {
			panic("failed to ping db: " + err.Error())
		}
		sp.dbClient = dbc
	}
	return sp.dbClient
}

func (sp *ServiceProvider) TXManager(ctx context.Context) trm.Manager {
	if sp.txManager == nil {
		m, err := manager.New(trmpgx.NewDefaultFactory(sp.DBClient(ctx)))
		if err != nil {
			panic("failed to create tx manager: " + err.Error())
		}

		sp.txManager = m
	}

	return sp.txManager
}

func (sp *ServiceProvider) CascadeCfg() config.CascadeConfig {
	if sp.cascadeCfg == nil {
		cfg, err := env.NewCascadeConfigFromYAML(env.CascadeConfigPath())
		if err != nil {
			panic("failed to get cascade config: " + err.Error())
		}
		sp.cascadeCfg = cfg
	}
	return sp.cascadeCfg
}

func (sp *ServiceProvider) SessionRepository(ctx context.Context) repository.SessionRepository {
	if sp.sessionRepo == nil {
		sp.sessionRepo = session_repo.NewSessionRepository(sp.DBClient(ctx))
	}
	return sp.sessionRepo
}

func (sp *ServiceProvider) CascadeStatsRepository() repository.StatsRepository {
	if sp.cascadeStatsRepo == nil {
		sp.cascadeStatsRepo = stats_repo.NewStatsRepository(0)
	}
	return sp.cascadeStatsRepo
}

func (sp *ServiceProvider) CascadeService(ctx context.Context) service.CascadeService {
	if sp.cascadeServ == nil {
		sp.cascadeServ = cascade.NewCascadeService(
			sp.CascadeCfg(),
			sp.TXManager(ctx),
			sp.SessionRepository(ctx),
			sp.CascadeStatsRepository(),
			sp.Logger(),
		)
	}
	return sp.cascadeServ
}

func (sp *ServiceProvider) CascadeHandler(ctx context.Context) *cascadeAPI.Handler {
	if sp.cascadeHand == nil {
		sp.cascadeHand = cascadeAPI.NewHandler(cascadeAPI.HandlerDeps{
			Serv: sp.CascadeService(ctx),
			Game: sp.CascadeCfg().Game(),
			Log:  sp.Logger(),
		})
	}
	return sp.cascadeHand
}

func (sp *ServiceProvider) HTTPCfg() config.HTTPConfig {
	if sp.httpCfg == nil {
		cfg, err := env.NewHTTPConfig()
		if err != nil {
			panic("failed to get http config: " + err.Error())
		}
		sp.httpCfg = cfg
	}

	return sp.httpCfg
}

func (sp *ServiceProvider) Router(ctx context.Context) chi.Router {
	if sp.router == nil {
		sp.router = newRouter(sp.CascadeHandler(ctx))
	}

	return sp.router
}

func newRouter(cascadeHandler *cascadeAPI.Handler) chi.Router {
	r := chi.NewRouter()

	// CORS middleware
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", middleware.PlayerHeader},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           60 * 15,
	}))

	// Cascade endpoints
	r.Route("/cascade", func(rr chi.Router) {
		rr.Get("/stats", cascadeHandler.Stats)
		rr.Group(func(pr chi.Router) {
			pr.Use(middleware.Player)
			pr.Post("/spin", cascadeHandler.Spin)
			pr.Post("/buy-bonus", cascadeHandler.BuyBonus)
			pr.Get("/state", cascadeHandler.State)
		})
	})

	// Engine endpoints
	r.Post("/engine/spin", cascadeHandler.Replay)

	return r
}
