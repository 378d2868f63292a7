package protocal

import (
	"flag"
	"log"
	"os"
	"os/signal"
	"time"

	"broadcast-service/configs"
	httpAdapter "broadcast-service/internal/adapters/input/http"
	"broadcast-service/internal/adapters/output/googletrans"
	"broadcast-service/internal/adapters/output/memory"
	"broadcast-service/internal/adapters/output/openai"
	"broadcast-service/internal/adapters/output/postgres"
	"broadcast-service/internal/application"
	"broadcast-service/internal/ports/output"
	gormDriver "broadcast-service/pkg/database_driver/gorm"

	swagger "github.com/arsmn/fiber-swagger/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type config struct {
	ENV string `mapstructure:"env"`
}

// Defaults applied when the config layer reports zero values
const (
	defaultHistoryCap     = 100
	defaultSessionTimeout = 15 * time.Minute
	defaultCacheCapacity  = 500
	defaultCacheTTL       = 30 * time.Minute
	defaultHeartbeat      = 30 * time.Second
	janitorInterval       = 30 * time.Second
)

// ServeHTTP func
func ServeHTTP() error {
	app := fiber.New()
	var cfg config
	flag.StringVar(&cfg.ENV, "env", "", "the environment to use")
	flag.Parse()
	configs.InitViper("./configs", cfg.ENV)
	logrus.Info(configs.GetViper().Env)
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept,Authorization",
	}))

	// Optional durable caption store. The live pipeline is fully
	// in-memory; storage unavailability costs durability, not
	// correctness.
	var (
		db           *gorm.DB
		captionStore output.CaptionStore
	)
	dbConGorm, err := gormDriver.ConnectToPostgreSQL(
		configs.GetViper().Postgres.Host,
		configs.GetViper().Postgres.Port,
		configs.GetViper().Postgres.Username,
		configs.GetViper().Postgres.Password,
		configs.GetViper().Postgres.DbName,
		configs.GetViper().Postgres.SSLMode,
	)
	if err != nil {
		logrus.Warnf("Durable caption store unavailable, continuing in-memory only: %v", err)
	} else {
		db = dbConGorm.Postgres
		captionStore, err = postgres.NewCaptionStore(db)
		if err != nil {
			logrus.Warnf("Caption store migration failed, continuing in-memory only: %v", err)
			captionStore = nil
		}
	}

	broadcastCfg := configs.GetViper().Broadcast
	historyCap := broadcastCfg.HistoryCap
	if historyCap <= 0 {
		historyCap = defaultHistoryCap
	}
	sessionTimeout := time.Duration(broadcastCfg.SessionTimeout) * time.Minute
	if broadcastCfg.SessionTimeout <= 0 {
		sessionTimeout = defaultSessionTimeout
	}
	cacheCapacity := broadcastCfg.CacheCapacity
	if cacheCapacity <= 0 {
		cacheCapacity = defaultCacheCapacity
	}
	cacheTTL := time.Duration(broadcastCfg.CacheTTL) * time.Minute
	if broadcastCfg.CacheTTL <= 0 {
		cacheTTL = defaultCacheTTL
	}
	heartbeat := time.Duration(broadcastCfg.Heartbeat) * time.Second
	if broadcastCfg.Heartbeat <= 0 {
		heartbeat = defaultHeartbeat
	}

	// Wire up the hexagonal architecture layers
	// Output adapters
	registry := memory.NewSessionRegistry(historyCap, sessionTimeout)
	stopJanitor := registry.StartJanitor(janitorInterval)
	bus := memory.NewEventBus()
	cache := memory.NewTranslationCache(cacheCapacity, cacheTTL)
	fastClient := googletrans.NewClient(configs.GetViper().Translate)
	qualityClient := openai.NewClient(configs.GetViper().OpenAI)

	// Application service (use case)
	srv := application.NewBroadcastService(
		fastClient,
		qualityClient,
		cache,
		registry,
		bus,
		captionStore,
		broadcastCfg.SourceLanguage,
		broadcastCfg.TargetLanguages,
	)

	// Input adapters (HTTP handlers)
	hdl := httpAdapter.New(srv, db)
	streamHdl := httpAdapter.NewStreamHandler(srv, bus, heartbeat)

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt)
	go func() {
		for range c {
			log.Println("Graceful shut down ...")
			stopJanitor()
			if db != nil {
				gormDriver.DisconnectPostgres(db)
			}
			err := app.Shutdown()
			if err != nil {
				log.Println("Error when shutdown server: ", err)
			}
		}
	}()

	app.Get("/swagger/*", swagger.HandlerDefault) // default
	app.Get("/health", hdl.HealthCheck)

	magnolia := app.Group("/v1/api")
	{
		magnolia.Post("/broadcast", hdl.HandleBroadcast)
		magnolia.Get("/broadcast/history", hdl.HandleHistory)
		magnolia.Get("/broadcast/stream", streamHdl.HandleStream)
	}

	err = app.Listen(":" + configs.GetViper().App.Port)
	if err != nil {
		return err
	}

	logrus.Println("Listening on port: ", configs.GetViper().App.Port)
	return nil
}
