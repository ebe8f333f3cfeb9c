package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	gormlogger "gorm.io/gorm/logger"

	"swipehub/session-api/internal/config"
	deckdomain "swipehub/session-api/internal/domain/deck"
	mediadomain "swipehub/session-api/internal/domain/media"
	sessiondomain "swipehub/session-api/internal/domain/session"
	"swipehub/session-api/internal/infrastructure/auth"
	"swipehub/session-api/internal/infrastructure/cache"
	"swipehub/session-api/internal/infrastructure/database"
	"swipehub/session-api/internal/infrastructure/logger"
	"swipehub/session-api/internal/infrastructure/notify"
	mediarepo "swipehub/session-api/internal/infrastructure/repository/media"
	principalrepo "swipehub/session-api/internal/infrastructure/repository/principal"
	sessionrepo "swipehub/session-api/internal/infrastructure/repository/session"
	"swipehub/session-api/internal/infrastructure/tmdb"
	"swipehub/session-api/internal/interfaces/httpserver"
	"swipehub/session-api/internal/utils/httpclients"
)

type Application struct {
	httpServer *httpserver.HttpServer
	log        zerolog.Logger
}

func NewApplication(httpServer *httpserver.HttpServer, log zerolog.Logger) *Application {
	return &Application{
		httpServer: httpServer,
		log:        log,
	}
}

func (a *Application) Start(ctx context.Context) error {
	return a.httpServer.Run(ctx)
}

func main() {
	loadEnvFiles()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		panic(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	redisClient, locks, err := cache.NewRedis(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("connect redis")
	}

	db, err := database.Connect(database.Config{
		DSN:             cfg.DBPostgresqlDSN,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		MaxOpenConns:    cfg.DBMaxOpenConns,
		ConnMaxLifetime: cfg.DBConnLifetime,
		LogLevel:        gormlogger.Warn,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("connect database")
	}

	if err := database.AutoMigrate(ctx, db, log); err != nil {
		log.Fatal().Err(err).Msg("migrate database")
	}

	notifier := notify.NewTelegram(
		httpclients.NewClient("telegram", cfg.TelegramTimeout),
		cfg.TelegramAPIURL, cfg.TelegramBotToken, cfg.TelegramChatID, log)

	provider := tmdb.NewClient(httpclients.NewClient("tmdb", cfg.TMDBTimeout), cfg.TMDBBaseURL, cfg.TMDBAPIKey)
	mediaService := mediadomain.NewService(provider, mediarepo.NewRepository(db), log)
	deckExtender := deckdomain.NewExtender(mediaService, log)

	principals := principalrepo.NewRepository(redisClient, cfg.TokenTTL)
	issuer := auth.NewIssuer(cfg.JWTSecret, cfg.TokenTTL, principals, log)

	sessionStore := sessionrepo.NewRepository(redisClient, locks, cfg.SessionTTL, cfg.SessionLockExpiry)
	sessionService := sessiondomain.NewService(sessionStore, issuer, deckExtender, notifier, cfg.SeedTimeout, log)

	httpServer := httpserver.New(cfg, log, sessionService, issuer, notifier, notifier)
	app := NewApplication(httpServer, log)

	if err := app.Start(ctx); err != nil {
		log.Fatal().Err(err).Msg("application stopped with error")
	}

	log.Info().Msg("application exited cleanly")
}

func loadEnvFiles() {
	paths := []string{".env", "../.env"}
	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Overload(path); err != nil {
				fmt.Fprintf(os.Stderr, "warning: failed to load %s: %v\n", path, err)
			}
		}
	}
}
