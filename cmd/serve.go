package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/OscarLawrence/UCP/internal/server"
)

var (
	servePort     int
	serveAllowAll bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long:  `Starts the REST API server exposing the analysis pipeline, the pattern library, and the autonomous loop.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		port := servePort
		if port <= 0 {
			port = cfg.Port
		}

		database, eng, err := openEngine(cfg)
		if err != nil {
			return err
		}
		defer database.Close()

		srv := server.New(server.Config{
			Port:     port,
			DataDir:  cfg.DataDir,
			AllowAll: serveAllowAll || cfg.AllowAll,
		}, database, eng)

		// Graceful shutdown.
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		go func() {
			<-ctx.Done()
			fmt.Fprintln(os.Stderr, "\nShutting down server...")
			srv.Shutdown(context.Background())
		}()

		fmt.Fprintf(os.Stderr, "ucp server v%s starting on port %d\n", Version, port)
		fmt.Fprintf(os.Stderr, "  Database: %s\n", filepath.Join(cfg.DataDir, "ucp.db"))

		return srv.Start()
	},
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "port to listen on (0 = config default)")
	serveCmd.Flags().BoolVar(&serveAllowAll, "allow-all", false, "allow all CORS origins")
	rootCmd.AddCommand(serveCmd)
}
