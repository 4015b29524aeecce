package router

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/vendor-vault/internal/application"
	"github.com/oksasatya/vendor-vault/internal/container"
	"github.com/oksasatya/vendor-vault/internal/infrastructure/cache"
	"github.com/oksasatya/vendor-vault/internal/infrastructure/messaging"
	"github.com/oksasatya/vendor-vault/internal/infrastructure/metrics"
	pginfra "github.com/oksasatya/vendor-vault/internal/infrastructure/postgres"
	"github.com/oksasatya/vendor-vault/internal/infrastructure/search"
	handlers "github.com/oksasatya/vendor-vault/internal/interface/http"
	"github.com/oksasatya/vendor-vault/internal/router/modules"
	"github.com/oksasatya/vendor-vault/pkg/helpers"
)

// Deps are the constructed services the HTTP modules need.
type Deps struct {
	Controller *application.AccessController
	Auth       *application.AuthService
	Cookies    *helpers.Manager
	Redis      *redis.Client
	Logger     *logrus.Logger
	// Metrics is served at /metrics when non-nil.
	Metrics http.Handler
}

// BuildDeps wires repositories and services from the container singletons.
func BuildDeps() Deps {
	cfg := container.GetConfig()
	logger := container.GetLogger()
	pool := container.GetPGPool()

	var indexer application.AccountIndexer
	if es := container.GetES(); es != nil {
		indexer = search.NewAccountIndexer(es, cfg.ESAccountsIndex)
	}
	var events application.AccountEvents
	if pub := container.GetRabbitPub(); pub != nil {
		events = messaging.NewAccountNotifier(pub, cfg.Brand())
	}
	var observer application.AccessObserver
	var metricsHandler http.Handler
	if cfg.MetricsEnabled {
		observer = metrics.New(nil)
		metricsHandler = promhttp.Handler()
	}
	var sessions application.SessionStore
	if rdb := container.GetRedis(); rdb != nil {
		sessions = cache.NewSessionStore(rdb)
	}

	accounts := application.NewAccountService(pginfra.NewAccountRepository(pool), indexer, events, logger, cfg.BcryptCost)
	records := application.NewRecordService(pginfra.NewRecordRepository(pool), container.GetRecordTypes(), logger)

	return Deps{
		Controller: application.NewAccessController(accounts, records, observer),
		Auth:       application.NewAuthService(accounts, container.GetJWT(), sessions, cfg.RefreshTTL, logger),
		Cookies:    helpers.NewCookie(cfg.CookieDomain, cfg.CookieSecure),
		Redis:      container.GetRedis(),
		Logger:     logger,
		Metrics:    metricsHandler,
	}
}

// InitModules registers every feature module with the registry.
// This function should be called once during application startup.
func InitModules(r *Registry, d Deps) {
	r.Add(modules.NewAuthModule(handlers.NewAuthHandler(d.Auth, d.Logger, d.Cookies), d.Auth, d.Redis))
	r.Add(modules.NewAdminModule(handlers.NewAdminHandler(d.Controller, d.Logger), d.Auth, d.Redis))
	r.Add(modules.NewVendorModule(handlers.NewVendorHandler(d.Controller, d.Logger), d.Auth, d.Redis))
	if d.Metrics != nil {
		r.AddRoot(modules.NewMetricsModule(d.Metrics, d.Redis))
	}
}
