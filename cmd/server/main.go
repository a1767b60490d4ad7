// cmd/server/main.go
package main

import (
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"

	"github.com/sandeshai/marcom-backend/internal/config"
	"github.com/sandeshai/marcom-backend/internal/controller"
	"github.com/sandeshai/marcom-backend/internal/db"
	"github.com/sandeshai/marcom-backend/internal/events"
	"github.com/sandeshai/marcom-backend/internal/export"
	"github.com/sandeshai/marcom-backend/internal/generate"
	"github.com/sandeshai/marcom-backend/internal/queue"
	"github.com/sandeshai/marcom-backend/internal/repository"
	"github.com/sandeshai/marcom-backend/internal/service"
)

func main() {
	// Load .env
	if err := godotenv.Load(); err != nil {
		log.Warn("⚠️ No .env file found, relying on OS environment variables")
	}

	cfg := config.FromEnv()

	pipeline, err := config.LoadPipeline(os.Getenv("PIPELINE_CONFIG"))
	if err != nil {
		log.Fatalf("failed to load pipeline config: %v", err)
	}

	calendar := events.Default()
	if pipeline.CalendarFile != "" {
		calendar, err = events.Load(pipeline.CalendarFile)
		if err != nil {
			log.Fatalf("failed to load calendar: %v", err)
		}
	}

	// Init DB
	db.Init()

	recordRepo := &repository.RecordRepository{DB: db.DB}
	campaignRepo := &repository.GeneratedCampaignRepository{DB: db.DB}

	client := generate.NewClient(generate.Config{
		Endpoint:   cfg.OpenAIEndpoint,
		APIKey:     cfg.OpenAIAPIKey,
		Deployment: cfg.OpenAIDeployment,
		APIVersion: cfg.OpenAIAPIVersion,
		Timeout:    cfg.OpenAITimeout,
	})

	pipelineService := &service.PipelineService{
		Pipeline:     pipeline,
		Generator:    client,
		Calendar:     calendar,
		RecordRepo:   recordRepo,
		CampaignRepo: campaignRepo,
		Writer:       export.NewWriter(pipeline.OutputDir),
	}

	// Provider calls are not retried.
	q := queue.NewInMemoryQueue(0)
	queue.StartGenerationSubscriber(q, pipelineService.Generate)

	marcomController := &controller.MarcomController{
		Service: pipelineService,
		AMQPURL: cfg.AMQPURL,
		Queue:   q,
	}

	r := chi.NewRouter()

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Post("/ingest", marcomController.Ingest)
	r.Get("/profiles", marcomController.GetProfiles)
	r.Get("/profiles/{vertical}", marcomController.GetProfile)
	r.Get("/tonalities", marcomController.GetTonalities)
	r.Get("/events", marcomController.GetEvents)
	r.Post("/campaigns/generate", marcomController.GenerateCampaign)
	r.Post("/campaigns/generate-batch", marcomController.GenerateBatch)
	r.Get("/campaigns", marcomController.ListCampaigns)
	r.Get("/campaigns/{id}/preview", marcomController.PreviewCampaign)

	log.Infof("🚀 Server running on %s", cfg.HTTPAddr)
	log.Fatal(http.ListenAndServe(cfg.HTTPAddr, r))
}
