package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/strike5/internal/platform/tui"
	"github.com/vovakirdan/strike5/internal/platform/web"
	"github.com/vovakirdan/strike5/internal/storage"
)

var (
	flagSSHAddr     string
	flagHTTPAddr    string
	flagHostKey     string
	flagIdleTimeout int
	flagNoSSH       bool
	flagNoHTTP      bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start SSH and HTTP servers for remote play",
	Long: `Start an SSH server for terminal play and an HTTP server with a JSON
and websocket API. Both share one scores database.

Each SSH connection gets its own session with a variant picker menu.
HTTP sessions are created with POST /api/v1/games and are dropped after
the configured idle timeout; their scores are recorded when they end.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.strike5/host_key

Examples:
  strike5 serve                          # SSH on :2222, HTTP on :8080
  strike5 serve --ssh :2323 --http :9090
  strike5 serve --no-ssh                 # HTTP API only
  strike5 serve --host-key ./my_host_key

Users can connect with:
  ssh localhost -p 2222
  curl -X POST localhost:8080/api/v1/games`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", "", "SSH server address (default $STRIKE5_SSH_ADDR or :2222)")
	serveCmd.Flags().StringVar(&flagHTTPAddr, "http", "", "HTTP server address (default $STRIKE5_HTTP_ADDR or :8080)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "SSH idle timeout in minutes before disconnecting")
	serveCmd.Flags().BoolVar(&flagNoSSH, "no-ssh", false, "Do not start the SSH server")
	serveCmd.Flags().BoolVar(&flagNoHTTP, "no-http", false, "Do not start the HTTP server")
}

// service is a server that runs until its context is cancelled.
type service interface {
	Run(ctx context.Context) error
}

func runServe(_ *cobra.Command, _ []string) error {
	if flagNoSSH && flagNoHTTP {
		return errors.New("nothing to serve: both --no-ssh and --no-http given")
	}
	if flagSSHAddr == "" {
		flagSSHAddr = env.SSHAddr
	}
	if flagHTTPAddr == "" {
		flagHTTPAddr = env.HTTPAddr
	}

	logger := newLogger("strike5")

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening scores database: %w", err)
	}
	defer store.Close()

	var services []service
	if !flagNoSSH {
		sshCfg := tui.DefaultSSHServerConfig()
		sshCfg.Address = flagSSHAddr
		sshCfg.HostKeyPath = flagHostKey
		sshCfg.IdleTimeout = time.Duration(flagIdleTimeout) * time.Minute
		sshCfg.TickRate = flagFPS
		sshCfg.Logger = logger.WithPrefix("ssh")

		sshServer, err := tui.NewSSHServer(sshCfg, store)
		if err != nil {
			return err
		}
		services = append(services, sshServer)
	}
	if !flagNoHTTP {
		services = append(services, web.NewServer(web.Options{
			Addr:         flagHTTPAddr,
			Scores:       store,
			MaxSessions:  settings.Server.MaxSessions,
			IdleTimeout:  settings.Server.IdleTimeout,
			ReapInterval: settings.Server.ReapInterval,
			CORSOrigins:  settings.Server.CORSOrigins,
			Logger:       logger.WithPrefix("http"),
		}))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Println("Press Ctrl+C to stop")

	// The first failure stops the other servers.
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	errs := make(chan error, len(services))
	var wg sync.WaitGroup
	for _, svc := range services {
		svc := svc
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := svc.Run(ctx); err != nil {
				errs <- err
				cancel()
			}
		}()
	}
	wg.Wait()
	close(errs)

	var all []error
	for err := range errs {
		all = append(all, err)
	}
	if len(all) == 0 {
		logger.Info("servers stopped")
	}
	return errors.Join(all...)
}
