package main

import (
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Preview rendered artifacts over HTTP",
	Long:  `Serves the artifact output directory locally so the maps and tables can be previewed in a browser.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		dir := cfg.Render.OutputDir
		if d, _ := cmd.Flags().GetString("dir"); d != "" {
			dir = d
		}
		port := cfg.Serve.Port
		if p, _ := cmd.Flags().GetInt("port"); p != 0 {
			port = p
		}

		r := chi.NewRouter()
		r.Use(middleware.Logger)
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: []string{"*"},
			AllowedMethods: []string{http.MethodGet, http.MethodHead},
		}))
		r.Handle("/*", http.FileServer(http.Dir(dir)))

		srv := &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           r,
			ReadHeaderTimeout: 5 * time.Second,
		}

		errCh := make(chan error, 1)
		go func() {
			zap.L().Info("artifact preview server listening",
				zap.Int("port", port), zap.String("dir", dir))
			errCh <- srv.ListenAndServe()
		}()

		select {
		case <-ctx.Done():
			shutdownCtx, cancel := timeoutContext(5 * time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		case err := <-errCh:
			if err != nil && err != http.ErrServerClosed {
				return eris.Wrap(err, "serve")
			}
			return nil
		}
	},
}

func init() {
	serveCmd.Flags().String("dir", "", "artifact directory (default: render.output_dir)")
	serveCmd.Flags().Int("port", 0, "listen port (default: serve.port)")
	rootCmd.AddCommand(serveCmd)
}
