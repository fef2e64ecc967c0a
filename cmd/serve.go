package cmd

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/ranykadour/AIDomainComplianceChecker/config"
	"github.com/ranykadour/AIDomainComplianceChecker/internal/analyzer"
	"github.com/ranykadour/AIDomainComplianceChecker/internal/api"
	"github.com/ranykadour/AIDomainComplianceChecker/internal/scan"
)

// serveCmd is the cobra command that starts the compliance API server
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "start the compliance scanning api server",
	Run: func(cmd *cobra.Command, _ []string) {
		err := serve(cmd.Context())
		cobra.CheckErr(err)
	},
}

// init registers the serve command on the root command
func init() {
	rootCmd.AddCommand(serveCmd)
}

// serve initializes dependencies and starts the API server
func serve(ctx context.Context) error {
	cfg := config.New()

	scanner, err := setupScanner(cfg)
	if err != nil {
		return fmt.Errorf("setting up scanner: %w", err)
	}

	srv := &http.Server{
		Addr:         net.JoinHostPort("", cfg.Port),
		Handler:      api.NewRouter(scanner),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("server shutdown error")
		}
	}()

	log.Info().Str("port", cfg.Port).Msg("starting compliance scanning service")

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("listen: %w", err)
	}

	return nil
}

// setupScanner initializes the domain scanner from config
func setupScanner(cfg *config.Config) (*scan.Scanner, error) {
	var opts []scan.Option

	script, err := cfg.Script()
	if err != nil {
		return nil, err
	}

	if script != nil {
		opts = append(opts, scan.WithPreservedScript(script))
	}

	if cfg.GroqAPIKey != "" {
		var groqOpts []analyzer.GroqOption
		if cfg.GroqModel != "" {
			groqOpts = append(groqOpts, analyzer.WithModel(cfg.GroqModel))
		}

		groq, err := analyzer.NewGroqClient(cfg.GroqAPIKey, groqOpts...)
		if err != nil {
			return nil, fmt.Errorf("initializing model analyzer: %w", err)
		}

		opts = append(opts, scan.WithAnalyzer(groq))
	} else {
		log.Warn().Msg("GROQ_API_KEY not set, scans will use the heuristic analyzer")
	}

	return scan.New(opts...)
}
