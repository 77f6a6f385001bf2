package application

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/hibiken/asynq"
	"golang.org/x/sync/errgroup"

	"dealdrop/internal/config"
	"dealdrop/internal/domain/entity"
	"dealdrop/internal/domain/service/affiliate"
	dealservice "dealdrop/internal/domain/service/deal"
	"dealdrop/internal/domain/service/unlock"
	"dealdrop/internal/infrastructure/catalog"
	"dealdrop/internal/infrastructure/checkout"
	"dealdrop/internal/infrastructure/notifier"
	"dealdrop/internal/infrastructure/payment"
	"dealdrop/internal/infrastructure/persistence"
	"dealdrop/internal/server"
	"dealdrop/internal/worker"
	"dealdrop/pkg/application/connectors"
	"dealdrop/pkg/application/modules"
	"dealdrop/pkg/httpx"
	"dealdrop/pkg/logx"
	"dealdrop/pkg/middlewarex"
)

const hotDealsBufferSize = 100

func Run(ctx context.Context) error { //nolint:funlen
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config.Load: %w", err)
	}

	pg := &connectors.Postgres{
		DSN:             cfg.Postgres.DSN,
		MaxOpenConns:    cfg.Postgres.MaxOpenConns,
		MaxIdleConns:    cfg.Postgres.MaxIdleConns,
		ConnMaxLifetime: cfg.Postgres.ConnMaxLifetime,
	}
	defer pg.Close(ctx)

	rd := &connectors.Redis{
		Address:            cfg.Redis.Address,
		Username:           cfg.Redis.Username,
		Password:           cfg.Redis.Password,
		DatabaseNumber:     cfg.Redis.DatabaseNumber,
		PoolSize:           cfg.Redis.PoolSize,
		MinIdleConnections: cfg.Redis.MinIdleConnections,
		MaxIdleConnections: cfg.Redis.MaxIdleConnections,
	}
	defer rd.Close(ctx)

	redisClient := rd.Client(ctx)

	dealRepo := persistence.NewDealRepository(pg.Client(ctx))
	clickRepo := persistence.NewClickRepository(pg.Client(ctx))

	dealService := dealservice.NewService(dealRepo)
	transformer := affiliate.NewTransformer()

	masker := logx.NewSensitiveDataMasker()

	paymentClient := payment.NewClient(cfg.Razorpay.BackendURL, &http.Client{
		Transport: paymentTransport(cfg.Razorpay, masker, cfg.HTTP.LogFieldMaxLen),
	})

	presenter := checkout.NewCallbackPresenter()
	widget := checkout.NewWidget(
		cfg.Razorpay.Key,
		checkout.NewHTTPScriptLoader(cfg.Razorpay.ScriptURL, nil),
		presenter,
	)

	asynqClient := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     cfg.Redis.Address,
		Username: cfg.Redis.Username,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DatabaseNumber,
	})
	defer asynqClient.Close()

	unlockService := unlock.NewService(dealService, paymentClient, widget, transformer, notifier.NewLogNotifier()).
		WithClickRecorder(worker.NewClickQueue(asynqClient))

	g, ctx := errgroup.WithContext(ctx)

	var hotDeals chan entity.Deal

	if cfg.Bot.Enabled() {
		alertBot, err := notifier.NewTelegramBot(cfg.Bot.Token, cfg.Bot.ChatID)
		if err != nil {
			return fmt.Errorf("notifier.NewTelegramBot: %w", err)
		}

		hotDeals = make(chan entity.Deal, hotDealsBufferSize)

		g.Go(func() error {
			if err := alertBot.Run(ctx, hotDeals); err != nil && ctx.Err() == nil {
				return fmt.Errorf("alertBot.Run: %w", err)
			}

			return nil
		})
	}

	refresher := worker.NewCatalogRefresher(dealSource(cfg.Catalog), dealService, hotDeals).
		WithRefreshInterval(cfg.Catalog.RefreshInterval).
		WithHotDealThreshold(cfg.Catalog.HotDealThreshold)

	g.Go(func() error {
		if err := refresher.Run(ctx); err != nil && ctx.Err() == nil {
			return fmt.Errorf("refresher.Run: %w", err)
		}

		return nil
	})

	modules.AsynqServer{
		RedisUsername: cfg.Redis.Username,
		RedisPassword: cfg.Redis.Password,
		RedisAddress:  cfg.Redis.Address,
		RedisDB:       cfg.Redis.DatabaseNumber,
	}.Run(ctx, g,
		modules.AsynqQueues{worker.QueueClicks: 1, "default": 1},
		modules.AsynqHandler{
			Pattern: worker.TaskTypeRecordClick,
			Handle:  worker.NewClickHandler(clickRepo, redisClient).Handle,
		},
	)

	restServer := server.NewServer(
		server.NewDealServer(dealService, unlockService, transformer),
		server.NewCheckoutServer(presenter, cfg.Razorpay.ScriptURL),
	)

	modules.HTTPServer{ShutdownTimeout: cfg.HTTP.ShutdownTimeout}.Run(ctx, g, &http.Server{
		Addr:    cfg.HTTP.ListenAddress,
		Handler: router(cfg, masker, restServer),
	})

	modules.ProbeServer{
		Name:          cfg.App.Name,
		Version:       cfg.App.Version,
		ListenAddress: cfg.HTTP.ProbeListenAddress,
	}.Run(ctx, g)

	modules.MetricServer{
		ListenAddress: cfg.HTTP.MetricsListenAddress,
	}.Run(ctx, g)

	if err := g.Wait(); err != nil {
		return fmt.Errorf("g.Wait: %w", err)
	}

	return nil
}

func router(cfg config.Config, masker logx.SensitiveDataMasker, restServer server.Server) chi.Router {
	r := chi.NewRouter()

	r.Use(
		middlewarex.TraceID,
		middlewarex.Logger,
		middlewarex.Recovery,
		middlewarex.RequestLogging(masker, cfg.HTTP.LogFieldMaxLen),
		middlewarex.ResponseLogging(masker, cfg.HTTP.LogFieldMaxLen),
	)

	restServer.RegisterRoutes(r)

	return r
}

func dealSource(cfg config.Catalog) worker.DealSource {
	static := catalog.NewStaticSource()

	if cfg.FeedURL == "" {
		return static
	}

	return catalog.NewFallbackSource(catalog.NewHTTPSource(cfg.FeedURL, nil), static)
}

func paymentTransport(cfg config.Razorpay, masker logx.SensitiveDataMasker, logFieldMaxLen int) http.RoundTripper {
	var transport http.RoundTripper = httpx.NewLoggingRoundTripper(
		http.DefaultTransport,
		httpx.WithSensitiveDataMasker(masker),
		httpx.WithLogFieldMaxLen(logFieldMaxLen),
	)

	if cfg.BackendToken != "" {
		transport = httpx.NewAuthBearerRoundTripper(transport, payment.StaticToken(cfg.BackendToken))
	}

	return transport
}
