package cmd

import (
	"context"
	"errors"
	"log"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/serenity-hq/screener/internal/api"
	"github.com/serenity-hq/screener/internal/catalog"
	"github.com/serenity-hq/screener/internal/interview"
	"github.com/serenity-hq/screener/internal/logger"
	"github.com/serenity-hq/screener/internal/matching"
	"github.com/serenity-hq/screener/internal/scoring"
	"github.com/serenity-hq/screener/internal/secrets"
	"github.com/serenity-hq/screener/internal/store"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the screening API over HTTP",
	Run: func(cmd *cobra.Command, _ []string) {
		serve(cmd)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringP("listen", "l", "", "listen address (default :8080)")
	serveCmd.Flags().String("data-dir", "", "sqlite data directory (default ./data)")

	viper.BindPFlag("listen", serveCmd.Flags().Lookup("listen"))
	viper.BindPFlag("data-dir", serveCmd.Flags().Lookup("data-dir"))
}

func serve(_ *cobra.Command) {
	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	logger.Info("starting the screener api", zap.String("version", resolveVersion()))

	token, err := resolveToken(config)
	if err != nil {
		logger.Fatal(
			"loading api token",
			zap.Error(err),
			zap.String("hint", "set SCREENER_TOKEN, SCREENER_TOKEN_FILE or the 'token-file' key in the configuration file, or leave all empty to disable auth"),
		)
	}
	if token == "" {
		logger.Warn("no api token configured, serving without authentication")
	}

	st, err := store.Open(config.DataDir)
	if err != nil {
		logger.Fatal("opening the database", zap.Error(err))
	}
	defer st.Close()

	seed := config.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	evaluator, err := scoring.NewEvaluator(config.scoringConfig(), logger)
	if err != nil {
		logger.Fatal("building the evaluator", zap.Error(err))
	}

	matcher := matching.New(config.matchingConfig(), logger)

	handler := api.NewHandler(api.Deps{
		Store:      st,
		Service:    store.NewService(st, matcher, logger),
		Controller: interview.NewController(catalog.Default(logger), config.interviewConfig(), rng, logger),
		Evaluator:  evaluator,
		Matcher:    matcher,
		Logger:     logger,
		Token:      token,
	})

	srv := &http.Server{
		Addr:              config.Listen,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", zap.String("addr", config.Listen))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed", zap.Error(err))
		}
	case <-ctx.Done():
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Warn("graceful shutdown failed", zap.Error(err))
		}
	}
}

// resolveToken loads the API bearer token from the configured file or the
// SCREENER_TOKEN environment variable. An unconfigured token is not an
// error; it disables auth.
func resolveToken(config *Config) (string, error) {
	tokenFile := strings.TrimSpace(config.TokenFile)
	if tokenFile == "" {
		tokenFile = strings.TrimSpace(viper.GetString("token-file"))
	}

	token, err := secrets.Load(secrets.Source{
		Name: "api token",
		File: tokenFile,
		Env:  "SCREENER_TOKEN",
	})
	if errors.Is(err, secrets.ErrNotConfigured) {
		return "", nil
	}
	return token, err
}
