package cmd

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

	"github.com/ziadkadry99/techtree/internal/db"
	"github.com/ziadkadry99/techtree/internal/server"
)

var (
	serverPort int
	serverSite string
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the tech tree viewer server",
	Long: `Starts the viewer server: a REST API over the dataset, a WebSocket
endpoint driving one interactive session per client, stored viewer
preferences and Prometheus metrics. An exported static site can be served
alongside it.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		port := cfg.Port
		if cmd.Flags().Changed("port") {
			port = serverPort
		}

		database, err := db.Open(cfg.DBPath)
		if err != nil {
			return fmt.Errorf("opening database: %w", err)
		}
		defer database.Close()

		registry := newRegistry(cfg)
		if err := registry.Reload(); err != nil {
			return err
		}
		locales, err := registry.Locales()
		if err != nil {
			return err
		}
		if len(locales) == 0 {
			return fmt.Errorf("no locale string tables found in %s", cfg.DataDir)
		}

		srv := server.New(server.Config{
			Port:     port,
			SiteDir:  serverSite,
			AllowAll: cfg.AllowAllOrigins,
		}, database, registry)

		// Warm the default locale so the first request does not pay for it.
		if _, err := registry.Get(cfg.Locale); err != nil {
			return err
		}

		// Graceful shutdown.
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		go func() {
			<-ctx.Done()
			fmt.Fprintln(os.Stderr, "\nShutting down server...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			srv.Shutdown(shutdownCtx)
		}()

		fmt.Fprintf(os.Stderr, "techtree server %s starting on port %d\n", Version, port)
		fmt.Fprintf(os.Stderr, "  Database: %s\n", database.Path())
		fmt.Fprintf(os.Stderr, "  Data: %s (%d locales)\n", cfg.DataDir, len(locales))
		if serverSite != "" {
			fmt.Fprintf(os.Stderr, "  Site: %s\n", serverSite)
		}

		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	},
}

func init() {
	serverCmd.Flags().IntVar(&serverPort, "port", 8080, "port to listen on (overrides config)")
	serverCmd.Flags().StringVar(&serverSite, "site", "", "exported site directory to serve at /")
	rootCmd.AddCommand(serverCmd)
}
