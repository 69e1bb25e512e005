package cmd

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/authorityshow/editor-api/api"
	"github.com/authorityshow/editor-api/api/types"
	"github.com/authorityshow/editor-api/internal/database"
	"github.com/authorityshow/editor-api/internal/models"
	"github.com/authorityshow/editor-api/internal/pipeline"
	"github.com/authorityshow/editor-api/internal/services/aicut"
	"github.com/authorityshow/editor-api/internal/services/artifacts"
	"github.com/authorityshow/editor-api/internal/services/cleanup"
	"github.com/authorityshow/editor-api/internal/services/credits"
	"github.com/authorityshow/editor-api/internal/services/edits"
	"github.com/authorityshow/editor-api/internal/services/segments"
	"github.com/authorityshow/editor-api/internal/services/sfx"
	"github.com/authorityshow/editor-api/internal/services/soundgen"
	"github.com/authorityshow/editor-api/internal/services/textgen"
	"github.com/authorityshow/editor-api/internal/services/transcriber"
	"github.com/authorityshow/editor-api/pkg/config"
	"github.com/authorityshow/editor-api/pkg/ffmpeg"
)

var (
	serverHost string
	serverPort int
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the API server",
	Long: `Start the Podcast Editor API server with the configured settings.

The server accepts pipeline requests, runs the requested editing steps
against the uploaded audio, and serves the credit and edit-history surfaces.

Example:
  editor-api serve
  editor-api serve --port 9090
  editor-api serve --host 0.0.0.0 --port 8080`,
	RunE: runServer,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serverHost, "host", "", "server host (overrides config)")
	serveCmd.Flags().IntVar(&serverPort, "port", 0, "server port (overrides config)")
}

func runServer(cmd *cobra.Command, args []string) error {
	cfg, err := config.GetConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if serverHost == "" {
		serverHost = cfg.Server.Host
	}
	if serverPort == 0 {
		serverPort = cfg.Server.Port
	}

	db, err := database.Initialize(cfg.Database.Path, cfg.Database.LogQueries)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	if err := db.AutoMigrate(&models.CreditAccount{}, &models.EditRecord{}, &models.PipelineRun{}); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	deps, err := buildDependencies(cfg, db)
	if err != nil {
		return err
	}

	// Sweep scratch directories left behind by killed runs
	sweeper := cleanup.NewSweeper(cfg.Processing.TempDir, cfg.Storage.MaxTempAge, cfg.Storage.CleanupInterval)
	sweeper.Start(context.Background())
	defer sweeper.Stop()

	server := api.NewServer(fmt.Sprintf("%s:%d", serverHost, serverPort), cfg.Server.MaxUploadBytes)
	server.SetDependencies(deps)
	server.SetDatabase(db)
	if err := server.Initialize(); err != nil {
		return fmt.Errorf("failed to initialize server: %w", err)
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.Start(); err != nil && err != http.ErrServerClosed {
			serverErr <- fmt.Errorf("server error: %w", err)
		}
	}()

	log.Printf("[INFO] Server is ready to handle requests at %s:%d", serverHost, serverPort)

	select {
	case <-stop:
		log.Println("[INFO] Shutting down server...")
	case err := <-serverErr:
		log.Printf("[ERROR] %v", err)
		log.Println("[INFO] Shutting down server...")
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Println("[INFO] Server gracefully stopped")
	return nil
}

// buildDependencies wires the provider clients, audio tooling, and services
// into the handler dependency set
func buildDependencies(cfg *config.Config, db *database.DB) (*types.Dependencies, error) {
	ff := ffmpeg.New(cfg.Processing.FFmpegPath, cfg.Processing.FFprobePath, cfg.Processing.FFmpegTimeout)
	if err := ff.ValidateBinaries(); err != nil {
		// Audio steps will fail at run time; the text-only surfaces still work
		log.Printf("[WARN] %v", err)
	}

	backend, err := artifacts.NewFilesystemStorage(cfg.Storage.BasePath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize artifact storage: %w", err)
	}
	store := artifacts.NewService(backend, cfg.Storage.PublicBaseURL)

	ledger := credits.NewService(credits.NewRepository(db))
	editLog := edits.NewService(edits.NewRepository(db))

	whisper := transcriber.NewOpenAITranscriber(transcriber.Config{
		APIKey:  cfg.OpenAI.APIKey,
		BaseURL: cfg.OpenAI.BaseURL,
		Model:   cfg.OpenAI.TranscriptionModel,
	})
	textClient := textgen.NewClient(textgen.Config{
		APIKey:        cfg.OpenAI.APIKey,
		BaseURL:       cfg.OpenAI.BaseURL,
		TextModel:     cfg.OpenAI.TextModel,
		FallbackModel: cfg.OpenAI.FallbackTextModel,
		ImageModel:    cfg.OpenAI.ImageModel,
		SpeechModel:   cfg.OpenAI.SpeechModel,
	})
	soundClient := soundgen.NewClient(soundgen.Config{
		APIKey:  cfg.SoundGen.APIKey,
		BaseURL: cfg.SoundGen.BaseURL,
		Timeout: cfg.SoundGen.Timeout,
	})

	orchestrator := pipeline.New(pipeline.Deps{
		Ledger:      ledger,
		Artifacts:   store,
		EditLog:     editLog,
		Runs:        pipeline.NewGormRunRecorder(db),
		Transcriber: whisper,
		TextGen:     textClient,
		Images:      textClient,
		Speech:      textClient,
		SoundGen:    soundClient,
		Enhancer:    ff,
		Extractor:   segments.NewFFmpegExtractor(ff),
		Cuts:        aicut.NewEngine(whisper, textClient, ff, ff, store),
		Planner:     sfx.NewPlanner(textClient),
		Mixer:       sfx.NewMixer(soundClient, ff, store),
	}, cfg.Processing.TempDir)

	return &types.Dependencies{
		DB:       db,
		Pipeline: orchestrator,
		Credits:  ledger,
		Edits:    editLog,
	}, nil
}
