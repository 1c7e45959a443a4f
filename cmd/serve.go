package cmd

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/killallgit/scribe-api/api"
	"github.com/killallgit/scribe-api/pkg/config"
)

var (
	serverHost string
	serverPort int
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the API server",
	Long: `Start the Scribe API server with the configured settings.

The server exposes POST /api/transcribe and POST /api/translate, plus
health, version, history and API documentation routes.

Example:
  scribe-api serve
  scribe-api serve --port 9090
  scribe-api serve --host 0.0.0.0 --port 8080`,
	RunE: runServer,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	// Server flags
	serveCmd.Flags().StringVar(&serverHost, "host", "", "server host (overrides config)")
	serveCmd.Flags().IntVar(&serverPort, "port", 0, "server port (overrides config)")
}

func runServer(cmd *cobra.Command, args []string) error {
	cfg, err := config.GetConfig()
	if err != nil {
		return err
	}

	// Use config values if flags not provided
	if serverHost != "" {
		cfg.Server.Host = serverHost
	}
	if serverPort != 0 {
		cfg.Server.Port = serverPort
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	if profile, err := cfg.Transcription.ActiveProfile(); err == nil &&
		cfg.Server.WriteTimeout > 0 && cfg.Server.WriteTimeout < profile.Budget() {
		log.Printf("[WARN] server.write_timeout %s is shorter than the transcription poll budget %s",
			cfg.Server.WriteTimeout, profile.Budget())
	}

	a, err := buildApp(cfg, wireOptions{withHistory: true})
	if err != nil {
		return fmt.Errorf("failed to initialize services: %w", err)
	}
	defer a.Close()

	server := api.NewServer(cfg)
	server.SetDependencies(a.deps)
	if err := server.Initialize(); err != nil {
		return fmt.Errorf("failed to initialize server: %w", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return serveUntilDone(ctx, server, cfg.Server.ShutdownTimeout)
}

// httpServer is the part of api.Server the run loop drives
type httpServer interface {
	Start() error
	Shutdown(ctx context.Context) error
	Addr() string
}

// serveUntilDone runs srv until ctx is cancelled or the listener fails
func serveUntilDone(ctx context.Context, srv httpServer, shutdownTimeout time.Duration) error {
	serverErr := make(chan error, 1)

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- fmt.Errorf("server error: %w", err)
		}
		close(serverErr)
	}()

	log.Printf("[INFO] Server is ready to handle requests at %s", srv.Addr())

	var runErr error
	select {
	case <-ctx.Done():
		log.Printf("[INFO] Shutting down server...")
	case err, ok := <-serverErr:
		if ok {
			runErr = err
			log.Printf("[ERROR] %v", err)
		}
	}

	if shutdownTimeout <= 0 {
		shutdownTimeout = 30 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("[ERROR] Server forced to shutdown: %v", err)
		return errors.Join(runErr, err)
	}

	log.Printf("[INFO] Server gracefully stopped")
	return runErr
}
