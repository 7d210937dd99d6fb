package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/vovakirdan/tui-match3/internal/platform/tui"
	"github.com/vovakirdan/tui-match3/internal/transport/websocket"
)

var (
	flagSSHAddr     string
	flagWSAddr      string
	flagHostKey     string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve games over SSH and WebSocket",
	Long: `Start an SSH server and a WebSocket endpoint for remote play.

Each SSH connection gets its own session with a variant menu. Each
WebSocket connection plays one game through JSON messages at /ws.
Scores are stored per-server (all players share the same leaderboard).

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.match3/host_key

Examples:
  match3 serve                           # SSH on :23234, WebSocket on :8080
  match3 serve --ssh :2222 --ws ""       # SSH only, on port 2222
  match3 serve --ssh "" --ws :9000       # WebSocket only
  match3 serve --host-key ./my_host_key  # Use specific host key

Players can connect with:
  ssh localhost -p 23234
  ws://localhost:8080/ws?variant=match3&seed=42`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (empty to disable)")
	serveCmd.Flags().StringVar(&flagWSAddr, "ws", ":8080", "WebSocket server address (empty to disable)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
}

func runServe(_ *cobra.Command, _ []string) error {
	if flagSSHAddr == "" && flagWSAddr == "" {
		return errors.New("nothing to serve: both --ssh and --ws are empty")
	}

	rec := openRecorder()
	defer closeRecorder(rec)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	if flagSSHAddr != "" {
		cfg := tui.DefaultSSHServerConfig()
		cfg.Address = flagSSHAddr
		cfg.HostKeyPath = flagHostKey
		cfg.IdleTimeout = time.Duration(flagIdleTimeout) * time.Minute
		cfg.TickRate = flagFPS

		server, err := tui.NewSSHServer(cfg, rec, logger.WithPrefix("match3-ssh"))
		if err != nil {
			return err
		}
		g.Go(func() error { return server.Serve(ctx) })
	}

	if flagWSAddr != "" {
		wsLogger := logger.WithPrefix("match3-ws")
		ws := websocket.NewServer(rec, wsLogger)
		httpServer := &http.Server{
			Addr:              flagWSAddr,
			Handler:           ws.Handler(),
			ReadHeaderTimeout: 10 * time.Second,
		}

		g.Go(func() error {
			wsLogger.Info("starting WebSocket server", "address", flagWSAddr)
			if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("websocket: %w", err)
			}
			return nil
		})
		g.Go(func() error {
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			ws.CloseAll()
			return httpServer.Shutdown(shutdownCtx)
		})
	}

	return g.Wait()
}
