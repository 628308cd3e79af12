// main.go
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ariebrainware/biosecure-portal/config"
	"github.com/ariebrainware/biosecure-portal/endpoint"
	"github.com/ariebrainware/biosecure-portal/identity"
	"github.com/ariebrainware/biosecure-portal/middleware"
	"github.com/ariebrainware/biosecure-portal/predict"
	"github.com/ariebrainware/biosecure-portal/session"
	"github.com/ariebrainware/biosecure-portal/store"
	"github.com/ariebrainware/biosecure-portal/translate"
	"github.com/ariebrainware/biosecure-portal/util"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/rs/zerolog/log"
)

// @title           Biosecurity Portal API
// @version         1.0
// @description     Vet shops and vet doctors for pig and poultry farms: registration, farmers, disease prediction and district browsing.
// @BasePath        /
// @securityDefinitions.apikey SessionToken
// @in              header
// @name            session-token
func main() {
	// Load the configuration
	cfg := config.LoadConfig()
	util.InitLogger(cfg.AppEnv, cfg.LogFormat)

	if cfg.JWTSecret != "" {
		util.SetJWTSecret(cfg.JWTSecret)
	}
	if generated, err := util.EnsureJWTSecret(); err != nil {
		log.Fatal().Err(err).Msg("failed to prepare session signing secret")
	} else if generated {
		log.Warn().Msg("JWT_SECRET not set, generated an ephemeral one; sessions will not survive a restart")
	}

	ctx := context.Background()

	st, err := openStore(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.StoreDriver).Msg("error connecting to the record store")
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := st.Close(closeCtx); err != nil {
			log.Warn().Err(err).Msg("error closing the record store")
		}
	}()
	util.SetActivityRecorder(st)

	if err := util.InitGeoIP(cfg.GeoIPDBPath); err != nil {
		log.Warn().Err(err).Msg("GeoIP database not loaded, activity logs will have no location")
	}
	defer util.CloseGeoIP()

	var sessionStore session.Store = session.NewMemoryStore()
	if rdb, err := config.ConnectRedis(); err != nil {
		log.Warn().Err(err).Msg("redis unavailable, keeping sessions in memory")
	} else if rdb != nil {
		sessionStore = session.NewRedisStore(rdb)
	}

	var gateway identity.Gateway = identity.Disabled{}
	if fb, err := identity.NewFirebase(ctx, cfg.FirebaseCredFile, cfg.IdentityCountryCode); err != nil {
		log.Warn().Err(err).Msg("identity provider not configured, running in demo mode")
	} else {
		gateway = fb
	}

	var predictor predict.Predictor
	if m, err := predict.Load(cfg.ModelDir); err != nil {
		log.Error().Err(err).Str("dir", cfg.ModelDir).Msg("prediction model not loaded")
		predictor = predict.Unavailable{Err: err}
	} else {
		log.Info().Strs("outputs", m.OutputFields()).Msg("prediction model loaded")
		predictor = m
	}

	// Set Gin mode from config
	gin.SetMode(cfg.GinMode)
	binding.EnableDecoderDisallowUnknownFields = true

	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.Inject(middleware.Dependencies{
		Store:      st,
		Sessions:   session.NewManager(sessionStore),
		Predictor:  predictor,
		Identity:   gateway,
		Translator: translate.NewService(translate.NewGoogle(cfg.TranslateURL)),
	}))
	router.Use(middleware.EndpointCallLogger())
	router.Use(middleware.SessionMiddleware())

	endpoint.RegisterRoutes(router, endpoint.Limiters{
		Session: middleware.RateLimiter(middleware.RateLimitConfig{Limit: 30, Window: 15 * time.Minute}),
		Auth:    middleware.RateLimiter(middleware.RateLimitConfig{}),
	})

	// Start server on specified port
	address := fmt.Sprintf(":%d", cfg.AppPort)
	go func() {
		log.Info().Str("address", address).Str("app", cfg.AppName).Msg("starting server")
		if err := router.Run(address); err != nil {
			log.Fatal().Err(err).Msg("error starting server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down")
}

// openStore connects the record store selected by STORE_DRIVER.
func openStore(ctx context.Context, cfg *config.Config) (store.Store, error) {
	switch cfg.StoreDriver {
	case config.StoreDriverMySQL:
		db, err := config.ConnectMySQL()
		if err != nil {
			return nil, err
		}
		st := store.NewGorm(db)
		if err := st.Migrate(); err != nil {
			return nil, fmt.Errorf("auto migrate: %w", err)
		}
		return st, nil
	case config.StoreDriverMongo:
		client, db, err := config.ConnectMongo(ctx)
		if err != nil {
			return nil, err
		}
		st := store.NewMongo(client, db)
		indexCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()
		if err := st.EnsureIndexes(indexCtx); err != nil {
			_ = st.Close(ctx)
			return nil, fmt.Errorf("ensure indexes: %w", err)
		}
		return st, nil
	}
	return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
}
