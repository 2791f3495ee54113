package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/sessamekesh/waygate/internal"
	"github.com/sessamekesh/waygate/internal/config"
	"github.com/sessamekesh/waygate/internal/obs"
	"github.com/sessamekesh/waygate/pkg/connection"
	"github.com/sessamekesh/waygate/pkg/gateway"
	"github.com/sessamekesh/waygate/pkg/identity"
	"github.com/sessamekesh/waygate/pkg/push"
	"github.com/sessamekesh/waygate/pkg/rpc"
	"github.com/sessamekesh/waygate/pkg/session"
	"github.com/sessamekesh/waygate/pkg/store"
	"github.com/sessamekesh/waygate/pkg/transport"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func serveCmd(configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the game server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath, cmd.Flags())
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}

			logger := obs.NewLogger(cfg.Debug)
			defer logger.Sync()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runServer(ctx, cfg, logger)
		},
	}

	flags := cmd.Flags()
	flags.String("bind", "", "Address the game WebSocket server listens on")
	flags.String("endpoint", "", "HTTP path that accepts game connections")
	flags.String("metrics-bind", "", "Address for /metrics, /healthz and /readyz")
	flags.Bool("debug", false, "Enable debug logging")
	flags.Int("max-connections", 0, "Maximum concurrent game connections (0 is unlimited)")

	return cmd
}

func runServer(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	keys, err := cfg.BootstrapKeys()
	if err != nil {
		return err
	}

	st, err := store.NewStore(ctx, cfg.StoreConfig())
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	identityCfg := cfg.IdentityConfig()
	identityCfg.Logger = logger
	verifier, err := identity.New(identityCfg)
	if err != nil {
		return err
	}

	announcements, err := config.LoadAnnouncements(cfg.AnnouncementsFile)
	if err != nil {
		return err
	}

	registry := push.NewRegistry(push.RegistryParams{Logger: logger})
	connections := internal.CreateConnectionStore(cfg.MaxConnections)

	gw := gateway.CreateGateway(gateway.GatewayParams{
		Verifier:    verifier,
		Bans:        st,
		Keys:        keys,
		Registry:    registry,
		Sessions:    session.NewService(session.ServiceParams{Store: st, Logger: logger}),
		Handler:     rpc.CreateHandler(rpc.HandlerParams{Store: st, Announcements: announcements, Logger: logger}),
		Connections: connections,
		Logger:      logger,
	})

	wsServer := transport.CreateWebsocketServer(gw, transport.WebsocketServerParams{
		ListenAddress:      cfg.Bind,
		ListenEndpoint:     cfg.Endpoint,
		AllowAllHosts:      cfg.Origins.AllowAll,
		AllowlistedHosts:   cfg.Origins.Allowlist,
		DenylistedHosts:    cfg.Origins.Denylist,
		MaxReadMessageSize: cfg.MaxMessageSize,
		Connections:        connections,
		Logger:             logger,
	})

	wg := sync.WaitGroup{}

	if rs, ok := st.(*store.RedisStore); ok {
		relay := push.NewRelay(registry, rs.Client(), push.RelayParams{Logger: logger})
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := relay.Run(ctx); err != nil {
				logger.Error("Push relay stopped", zap.Error(err))
			}
		}()
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		startMetricsServer(ctx, cfg.MetricsBind, metricsRouter(st, connections), logger)
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		watchStalledHandshakes(ctx, connections, logger)
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		wsServer.Start(ctx)
	}()

	wg.Wait()
	logger.Info("All servers stopped. Exiting gracefully!")
	return nil
}

// watchStalledHandshakes reports connections that stay unauthenticated
// well past the handshake stage timeouts.
func watchStalledHandshakes(ctx context.Context, connections *internal.ConnectionStore, logger *zap.Logger) {
	const grace = 4 * connection.DefaultStageTimeout

	ticker := time.NewTicker(grace)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			if stale := connections.GetHandshakeTimeoutList(now.Add(-grace)); len(stale) > 0 {
				logger.Warn("Connections stuck before authentication", zap.Int("count", len(stale)), zap.Uint32s("connectionIds", stale))
			}
		}
	}
}
