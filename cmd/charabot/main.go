package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/oekaki/charabot/pkg/config"
	"github.com/oekaki/charabot/pkg/conversation"
	"github.com/oekaki/charabot/pkg/dispatch"
	"github.com/oekaki/charabot/pkg/gateway"
	"github.com/oekaki/charabot/pkg/httpserver"
	"github.com/oekaki/charabot/pkg/imagestore"
	"github.com/oekaki/charabot/pkg/logger"
	"github.com/oekaki/charabot/pkg/messenger"
	"github.com/oekaki/charabot/pkg/session"
	"github.com/oekaki/charabot/pkg/webhook"
)

// storeIngestor adapts an image store to the conversation engine's ingest
// interface.
type storeIngestor struct {
	store imagestore.Store
}

func (s storeIngestor) Ingest(ctx context.Context, data []byte, mimeType string) (session.ImageRef, error) {
	stored, err := s.store.Put(ctx, imagestore.Object{Data: data, MIMEType: mimeType})
	if err != nil {
		return session.ImageRef{}, err
	}
	return session.ImageRef{ExternalID: stored.Key, URL: stored.URL}, nil
}

func main() {
	ctx := context.Background()

	var logCfg logger.Config
	config.MustLoad(&logCfg)
	log := logger.NewFromConfig(logCfg, logger.WithAttr(slog.String("service", "charabot")))
	logger.SetAsDefault(log)

	if err := run(ctx, log); err != nil {
		log.Error("charabot exited", logger.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, log *slog.Logger) error {
	var (
		httpCfg  httpserver.Config
		sessCfg  session.Config
		gwCfg    gateway.Config
		pushCfg  messenger.Config
		s3Cfg    imagestore.S3Config
		localCfg imagestore.LocalConfig
	)
	config.MustLoad(&httpCfg)
	config.MustLoad(&sessCfg)
	config.MustLoad(&gwCfg)
	config.MustLoad(&pushCfg)
	config.MustLoad(&s3Cfg)
	config.MustLoad(&localCfg)

	sessions := session.NewMemoryStore(sessCfg)
	defer sessions.Close()

	images, err := newImageStore(ctx, s3Cfg, localCfg, log)
	if err != nil {
		return err
	}

	gw, err := gateway.NewClient(gwCfg)
	if err != nil {
		return err
	}

	out, err := newMessenger(pushCfg, log)
	if err != nil {
		return err
	}

	engine := conversation.NewEngine(sessions, storeIngestor{store: images}, gw,
		conversation.WithLogger(log))

	metrics := dispatch.NewMetrics(prometheus.DefaultRegisterer)
	prometheus.MustRegister(prometheus.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: "charabot_sessions_active",
			Help: "Sessions currently resident in memory.",
		},
		func() float64 {
			n, err := sessions.Len(context.Background())
			if err != nil {
				return 0
			}
			return float64(n)
		},
	))

	dispatcher := dispatch.New(sessions, engine, out,
		dispatch.WithLogger(log),
		dispatch.WithMetrics(metrics))

	r := chi.NewRouter()
	r.Mount("/webhook", webhook.NewHandler(dispatcher, webhook.WithLogger(log)).Handle())
	r.Get("/healthz", httpserver.HealthCheckHandler(ctx, log))
	r.Handle("/metrics", promhttp.Handler())

	srv := httpserver.NewFromConfig(httpCfg, httpserver.WithLogger(log))
	return srv.Run(ctx, r)
}

// newImageStore picks S3 when a bucket is configured, otherwise falls back
// to the local filesystem store for development.
func newImageStore(ctx context.Context, s3Cfg imagestore.S3Config, localCfg imagestore.LocalConfig, log *slog.Logger) (imagestore.Store, error) {
	if s3Cfg.Bucket != "" {
		log.Info("using S3 image store", slog.String("bucket", s3Cfg.Bucket))
		return imagestore.NewS3Store(ctx, s3Cfg)
	}
	log.Info("using local image store", slog.String("dir", localCfg.Dir))
	return imagestore.NewLocalStore(localCfg)
}

// newMessenger pushes over HTTP when an endpoint is configured, otherwise
// logs outbound messages.
func newMessenger(cfg messenger.Config, log *slog.Logger) (messenger.Messenger, error) {
	if cfg.Endpoint != "" {
		return messenger.NewPushClient(cfg)
	}
	log.Info("no push endpoint configured, outbound messages go to the log")
	return messenger.NewLogMessenger(log), nil
}
