package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"

	appanalytics "github.com/jhoicas/b2b-portal-api/internal/application/analytics"
	"github.com/jhoicas/b2b-portal-api/internal/application/auth"
	"github.com/jhoicas/b2b-portal-api/internal/application/usecase"
	"github.com/jhoicas/b2b-portal-api/internal/infrastructure/redis"
	httpRouter "github.com/jhoicas/b2b-portal-api/internal/interfaces/http"
	"github.com/jhoicas/b2b-portal-api/pkg/config"
	"github.com/jhoicas/b2b-portal-api/pkg/jwt"
	"github.com/jhoicas/b2b-portal-api/pkg/logger"
)

const swaggerFile = "./docs/swagger.json"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("store", cfg.Store.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()
	st, err := openStores(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Str("store", cfg.Store.Driver).Msg("conexión al almacenamiento")
	}
	defer st.close()

	// Una clave mal configurada es fatal: nunca se arranca sin poder firmar.
	tokens, err := jwt.NewService(cfg.JWT.Keys(), cfg.JWT.Issuer)
	if err != nil {
		log.Fatal().Err(err).Msg("servicio de tokens")
	}

	authOpts := []auth.Option{auth.WithDefaultCompany(cfg.Auth.DefaultCompanyName)}
	if cfg.Redis.Enabled() {
		rdb, err := redis.NewClient(ctx, cfg.Redis)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a Redis")
		}
		defer rdb.Close()
		window := time.Duration(cfg.Auth.LoginWindowMinutes) * time.Minute
		authOpts = append(authOpts, auth.WithLimiter(redis.NewLoginLimiter(rdb, cfg.Auth.LoginMaxAttempts, window)))
		log.Named("login_limiter").Info().Int("max_attempts", cfg.Auth.LoginMaxAttempts).Dur("window", window).Msg("limitador de login activo")
	}

	creds := auth.NewCredentialStore(st.users)
	authUC := auth.NewAuthUseCase(creds, st.companies, tokens, authOpts...)
	authn := auth.NewAuthenticator(tokens, st.users)
	dashboardUC := appanalytics.NewDashboardUseCase(st.stats)
	userUC := usecase.NewUserUseCase(st.users)
	orderUC := usecase.NewOrderUseCase(st.orders)

	httpLog := log.Named("http")
	app := httpRouter.NewApp(cfg.App.Name, httpLog)

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    "B2B Portal API",
		}))
	} else {
		log.Warn().Str("file", swaggerFile).Msg("documentación OpenAPI no encontrada, /docs desactivado")
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:        authUC,
		Authenticator: authn,
		DashboardUC:   dashboardUC,
		UserUC:        userUC,
		OrderUC:       orderUC,
		Log:           httpLog,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
