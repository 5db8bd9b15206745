package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/techtree/internal/db"
	"github.com/ziadkadry99/techtree/internal/progress"
	"github.com/ziadkadry99/techtree/internal/server"
	"github.com/ziadkadry99/techtree/internal/site"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export a static HTML reference site",
	Long: `Generates a self-contained static HTML site with one page per faction and
per node, for every locale in the data directory, with search and
navigation.`,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().String("output", "", "override output directory (defaults to output_dir from config)")
	exportCmd.Flags().StringSlice("locales", nil, "only export these locale codes")
	exportCmd.Flags().Bool("serve", false, "start the viewer server on the exported site after generating")
	exportCmd.Flags().Int("port", 0, "port for --serve (defaults to port from config)")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	outputDir, _ := cmd.Flags().GetString("output")
	if outputDir == "" {
		outputDir = cfg.OutputDir
	}
	locales, _ := cmd.Flags().GetStringSlice("locales")

	registry := newRegistry(cfg)
	generator := site.NewSiteGenerator(registry, outputDir)
	generator.Locales = locales
	generator.NewReporter = progress.NewReporter

	pageCount, err := generator.Generate()
	if err != nil {
		return fmt.Errorf("generating site: %w", err)
	}
	fmt.Printf("Static site generated: %s (%d pages)\n", outputDir, pageCount)

	serve, _ := cmd.Flags().GetBool("serve")
	if !serve {
		return nil
	}

	port, _ := cmd.Flags().GetInt("port")
	if port == 0 {
		port = cfg.Port
	}

	// Preferences do not outlive a preview.
	database, err := db.OpenMemory()
	if err != nil {
		return err
	}
	defer database.Close()

	srv := server.New(server.Config{Port: port, SiteDir: outputDir, AllowAll: true}, database, registry)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		srv.Shutdown(context.Background())
	}()

	fmt.Printf("Serving at http://localhost:%d - press Ctrl+C to stop\n", port)
	if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serving site: %w", err)
	}
	return nil
}
