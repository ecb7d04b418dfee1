package main

import (
  "context"
  "net/http"
  "os"
  "os/signal"
  "syscall"
  "time"

  "github.com/redis/go-redis/v9"
  "github.com/sirupsen/logrus"

  "regadmin/dashboard/internal/apiclient"
  "regadmin/dashboard/internal/cms"
  "regadmin/dashboard/internal/config"
  "regadmin/dashboard/internal/docstore"
  internalhttp "regadmin/dashboard/internal/http"
  "regadmin/dashboard/internal/identity"
  "regadmin/dashboard/internal/jobs"
  "regadmin/dashboard/internal/logging"
  "regadmin/dashboard/internal/metrics"
  "regadmin/dashboard/internal/model"
  "regadmin/dashboard/internal/service"
  "regadmin/dashboard/internal/session"
  "regadmin/dashboard/internal/upstream"
)

func main() {
  cfg := config.Load()
  log := logging.New("regadmin-dashboard", cfg.LogLevel)

  ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
  defer stop()

  checks := map[string]func(context.Context) error{}

  sessionTier := session.NewMemoryKV()
  sweepers := []jobs.Sweeper{sessionTier}
  var durableTier session.KV
  if cfg.RedisAddr != "" {
    redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword})
    pingCtx, cancel := context.WithTimeout(ctx, cfg.PingTimeout)
    err := redisClient.Ping(pingCtx).Err()
    cancel()
    if err != nil {
      log.WithError(err).Fatal("redis ping failed")
    }
    defer func() {
      if err := redisClient.Close(); err != nil {
        log.WithError(err).Warn("redis close error")
      }
    }()
    durableTier = session.NewRedisKV(redisClient, "regadmin:")
    checks["redis"] = func(ctx context.Context) error { return redisClient.Ping(ctx).Err() }
  } else {
    memoryDurable := session.NewMemoryKV()
    durableTier = memoryDurable
    sweepers = append(sweepers, memoryDurable)
    log.Warn("REDIS_ADDR not set, remembered sessions will not survive a restart")
  }
  tokens := session.NewStore(durableTier, sessionTier, cfg.DurableTokenTTL, cfg.SessionTokenTTL, log)

  store, err := openDocStore(ctx, cfg)
  if err != nil {
    log.WithError(err).Fatal("document store unavailable")
  }
  defer store.Close(context.Background())
  checks["docstore"] = store.Ping

  client := apiclient.New(
    apiclient.Config{BaseURL: cfg.ProxyBaseURL, Timeout: cfg.APIClientTimeout},
    tokens,
    apiclient.WithClearHook(func(_ context.Context, err error) {
      metrics.TokenCleared()
      if err != nil {
        log.WithError(err).Warn("credential clear after 401 was incomplete")
      }
    }),
  )

  if _, err := jobs.StartSessionSweepJob(ctx, cfg.SessionSweepSchedule, log, sweepers...); err != nil {
    log.WithError(err).Fatal("invalid SESSION_SWEEP_SCHEDULE")
  }

  server := internalhttp.NewServer(cfg, internalhttp.Deps{
    Log:           log,
    Source:        newSource(cfg, log),
    Tokens:        tokens,
    Proxy:         client,
    Identity:      identity.NewService(newProvider(cfg, log), log),
    Jobs:          service.NewJobs(client, tokens, cfg.StationJobsTimeout, log),
    Registrations: service.NewRegistrations(client, tokens, 0, log),
    Permits:       service.NewPermits(client, tokens, 0, log),
    Plates:        service.NewPlates(client, tokens, 0, log),
    CMS:           cms.NewServices(store),
    Checks:        checks,
  })

  httpServer := &http.Server{
    Addr:              cfg.HTTPAddr,
    Handler:           server.Router(),
    ReadHeaderTimeout: 5 * time.Second,
  }

  go func() {
    log.WithFields(logrus.Fields{
      "addr":          cfg.HTTPAddr,
      "upstream_mode": cfg.UpstreamMode,
      "docstore":      cfg.DocStoreDriver,
    }).Info("dashboard listening")
    if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
      log.WithError(err).Fatal("http server error")
    }
  }()

  <-ctx.Done()

  shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
  defer cancel()

  if err := httpServer.Shutdown(shutdownCtx); err != nil {
    log.WithError(err).Error("shutdown error")
  }
}

// newSource picks the data source behind the proxy routes. Live mode still
// answers from fixtures when the upstream cannot be reached. Logout goes to
// the upstream in both modes.
func newSource(cfg config.Config, log logrus.FieldLogger) upstream.Source {
  fixture := upstream.NewFixture(cfg.JWTSecret, cfg.JWTIssuer, cfg.FixtureTokenTTL)
  live := upstream.NewLive(cfg.UpstreamBaseURL, cfg.UpstreamTimeout, cfg.LogoutTimeout)
  if cfg.UpstreamMode != config.UpstreamModeLive {
    return upstream.WithLiveLogout(fixture, live)
  }
  return upstream.WithFallback(live, fixture, log)
}

func newProvider(cfg config.Config, log logrus.FieldLogger) identity.Provider {
  if cfg.IdentityProvider == config.IdentityProviderFirebase {
    return identity.NewFirebase(cfg.FirebaseAuthURL, cfg.FirebaseAPIKey, cfg.IdentityTimeout)
  }
  if cfg.LocalAdminPasswordHash == "" {
    log.Warn("LOCAL_ADMIN_PASSWORD_HASH not set, dashboard logins will fail")
  }
  return identity.NewLocal(model.User{
    ID:          "usr_admin_001",
    Email:       cfg.LocalAdminEmail,
    DisplayName: "Station Administrator",
    Role:        "admin",
  }, cfg.LocalAdminPasswordHash)
}

func openDocStore(ctx context.Context, cfg config.Config) (docstore.Store, error) {
  switch cfg.DocStoreDriver {
  case config.DocStoreMongo:
    connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
    defer cancel()
    return docstore.ConnectMongo(connectCtx, cfg.MongoURI, cfg.MongoDatabase)
  case config.DocStorePostgres:
    pool, err := docstore.NewPool(ctx, cfg.DatabaseURL)
    if err != nil {
      return nil, err
    }
    store := docstore.NewPostgresStore(pool)
    if err := store.EnsureSchema(ctx); err != nil {
      pool.Close()
      return nil, err
    }
    return store, nil
  default:
    return docstore.NewMemoryStore(), nil
  }
}
