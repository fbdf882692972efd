package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/smartlearn/platform-api/internal/application/auth"
	"github.com/smartlearn/platform-api/internal/application/chat"
	"github.com/smartlearn/platform-api/internal/application/contact"
	"github.com/smartlearn/platform-api/internal/config"
	"github.com/smartlearn/platform-api/internal/infrastructure/db/postgres"
	"github.com/smartlearn/platform-api/internal/infrastructure/gemini"
	"github.com/smartlearn/platform-api/internal/infrastructure/memory"
	rabbitmq_pub "github.com/smartlearn/platform-api/internal/infrastructure/messaging/rabbitmq"
	"github.com/smartlearn/platform-api/internal/infrastructure/redis"
	"github.com/smartlearn/platform-api/internal/infrastructure/security"
	"github.com/smartlearn/platform-api/internal/logger"
	"github.com/smartlearn/platform-api/internal/transport/http/handlers"
	"github.com/smartlearn/platform-api/internal/transport/http/middleware"
	"github.com/smartlearn/platform-api/internal/transport/http/response"
	"github.com/smartlearn/platform-api/internal/transport/http/router"
)

/*
========================
 Public entry (prod)
========================
*/

func NewServer() (*http.Server, func(), error) {
	return newServer(defaultDeps())
}

// NewServerWithDeps allows injecting dependencies for testing.
func NewServerWithDeps(deps Deps) (*http.Server, func(), error) {
	return newServer(deps)
}

/*
========================
 Dependency injection
========================
*/

type Deps struct {
	LoadConfig func() (*config.Config, error)

	NewDB func(addr string, debug bool) (DBCloser, error)

	NewRedis func(addr, password string, db int) RedisClient

	NewPublisher func(rabbitURL string) (Publisher, error)

	NewUpstream func(apiKey, model string) chat.Upstream

	NewRouter func(router.Deps) (http.Handler, error)
}

type DBCloser interface {
	Close() error
}

type RedisClient interface {
	Ping(ctx context.Context) error
	Close() error
}

type Publisher interface{}

/*
========================
 Core bootstrap logic
========================
*/

func newServer(deps Deps) (*http.Server, func(), error) {
	// 0) config
	cfg, err := deps.LoadConfig()
	if err != nil {
		return nil, nil, err
	}

	// 1) db
	db, err := deps.NewDB(cfg.DBAddr, cfg.DBDebug)
	if err != nil {
		return nil, nil, err
	}

	cleanupFns := []func(){
		func() { _ = db.Close() },
	}

	sqlDB, ok := db.(*sql.DB)
	if !ok {
		runCleanup(cleanupFns)
		return nil, nil, errors.New("bootstrap: NewDB did not return *sql.DB")
	}

	if err := postgres.EnsureSchema(context.Background(), sqlDB); err != nil {
		runCleanup(cleanupFns)
		return nil, nil, err
	}

	userRepo := postgres.NewUserRepo(sqlDB)
	contactRepo := postgres.NewContactRepo(sqlDB)

	// 2) redis (best-effort; dev degrades to in-memory stores)
	var redisCli RedisClient
	if deps.NewRedis != nil && cfg.RedisAddr != "" {
		c := deps.NewRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()

		if err := c.Ping(ctx); err != nil {
			logger.Logger.Warn().Err(err).Msg("redis unavailable; using in-memory reset codes, rate limiting off")
			_ = c.Close()
		} else {
			logger.Logger.Info().Msg("redis connected")
			redisCli = c
			cleanupFns = append(cleanupFns, func() { _ = c.Close() })
		}
	}

	var resetStore auth.ResetCodeStore
	var fwLimiter *redis.FixedWindowLimiter
	if redisCli != nil {
		rc := redisCli.(*redis.Client)
		resetStore = redis.NewResetCodeStore(rc)
		fwLimiter = redis.NewFixedWindowLimiter(rc)
	} else {
		resetStore = memory.NewResetCodeStore()
	}

	// 3) publisher
	pub, err := deps.NewPublisher(cfg.RabbitURL)
	if err != nil {
		if cfg.Env == "dev" {
			logger.Logger.Warn().Err(err).Msg("rabbitmq unavailable; using noop publisher")
			pub = memory.NewNoopPublisher()
		} else {
			runCleanup(cleanupFns)
			return nil, nil, err
		}
	} else {
		if p, ok := pub.(interface{ SetExchange(string) }); ok {
			p.SetExchange(cfg.RabbitExchange)
		}
	}

	if c, ok := pub.(interface{ Close() error }); ok {
		cleanupFns = append(cleanupFns, func() { _ = c.Close() })
	}

	// 4) security
	hasher := security.NewBcryptHasher(12)
	signer := security.NewJWTSigner(cfg.JWTSecret, cfg.JWTIssuer)

	// 5) tutor upstream; nil disables /api/chat and /api/models
	var upstream chat.Upstream
	if cfg.GeminiAPIKey != "" {
		upstream = deps.NewUpstream(cfg.GeminiAPIKey, cfg.GeminiModel)
		logger.Logger.Info().Str("model", cfg.GeminiModel).Msg("ai tutor enabled")
	} else {
		logger.Logger.Warn().Msg("GEMINI_API_KEY not set; ai tutor disabled")
	}

	// 6) services
	authSvc := auth.NewService(
		userRepo,
		hasher,
		signer,
		resetStore,
		pub.(auth.EventPublisher),
		auth.Config{
			AccessTTL:    cfg.AccessTokenTTL,
			ResetCodeTTL: cfg.ResetCodeTTL,
		},
	)
	chatSvc := chat.NewService(upstream)
	contactSvc := contact.NewService(contactRepo, pub.(contact.EventPublisher))

	// 7) handlers + middleware
	authH := handlers.NewAuthHandler(authSvc)
	chatH := handlers.NewChatHandler(chatSvc)
	contactH := handlers.NewContactHandler(contactSvc)
	healthH := handlers.NewHealthHandler(sqlDB)

	authMW := middleware.Auth(signer, response.WriteError)

	rl := func(key string, limit int, window time.Duration) func(http.Handler) http.Handler {
		if fwLimiter == nil {
			return nil
		}
		return middleware.RateLimitFixedWindow(
			fwLimiter,
			middleware.FixedWindowConfig{
				RouteKey: key,
				Limit:    limit,
				Window:   window,
			},
			response.WriteError,
		)
	}

	// 8) router
	mux, err := deps.NewRouter(router.Deps{
		Health:  healthH,
		Auth:    authH,
		Chat:    chatH,
		Contact: contactH,

		AuthMW:    authMW,
		CORSMW:    middleware.CORS(cfg.AllowedOrigins),
		RequestID: middleware.RequestID,
		Metrics:   middleware.Metrics,

		SignupRL: rl("auth.signup", 3, time.Minute),
		LoginRL:  rl("auth.login", 5, time.Minute),
		ResetRL:  rl("auth.reset", 3, 10*time.Minute),
		ChatRL:   rl("chat", 20, time.Minute),
	})
	if err != nil {
		runCleanup(cleanupFns)
		return nil, nil, err
	}

	// 9) server
	srv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      mux,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	cleanup := func() {
		runCleanup(cleanupFns)
	}

	return srv, cleanup, nil
}

func runCleanup(fns []func()) {
	// Reverse order, like deferred calls.
	for i := len(fns) - 1; i >= 0; i-- {
		fns[i]()
	}
}

/*
========================
 Default deps (prod)
========================
*/

func defaultDeps() Deps {
	return Deps{
		LoadConfig: config.Load,
		NewDB: func(addr string, debug bool) (DBCloser, error) {
			return config.NewDB(addr, debug)
		},
		NewRedis: func(addr, password string, db int) RedisClient {
			return redis.New(addr, password, db)
		},
		NewPublisher: func(url string) (Publisher, error) {
			if url == "" {
				return nil, errors.New("RABBIT_URL not set")
			}
			return rabbitmq_pub.NewPublisher(url)
		},
		NewUpstream: func(apiKey, model string) chat.Upstream {
			return gemini.NewClient(apiKey, model)
		},
		NewRouter: router.New,
	}
}
