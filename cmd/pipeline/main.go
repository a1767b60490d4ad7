// cmd/pipeline/main.go
package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"

	"github.com/sandeshai/marcom-backend/internal/config"
	"github.com/sandeshai/marcom-backend/internal/events"
	"github.com/sandeshai/marcom-backend/internal/export"
	"github.com/sandeshai/marcom-backend/internal/generate"
	"github.com/sandeshai/marcom-backend/internal/service"
)

func main() {
	configPath := flag.String("config", "", "path to pipeline YAML config")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Warn("⚠️ No .env file found, relying on OS environment variables")
	}

	cfg := config.FromEnv()
	pipeline, err := config.LoadPipeline(*configPath)
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

	client := generate.NewClient(generate.Config{
		Endpoint:   cfg.OpenAIEndpoint,
		APIKey:     cfg.OpenAIAPIKey,
		Deployment: cfg.OpenAIDeployment,
		APIVersion: cfg.OpenAIAPIVersion,
		Timeout:    cfg.OpenAITimeout,
	})

	svc := &service.PipelineService{
		Pipeline:  pipeline,
		Generator: client,
		Calendar:  calendar,
		Writer:    export.NewWriter(pipeline.OutputDir),
	}

	summary, err := svc.Run(context.Background())
	if err != nil {
		log.Fatalf("pipeline failed: %v", err)
	}

	fmt.Println("======================================")
	fmt.Println("  Pipeline run complete")
	fmt.Println("======================================")
	fmt.Printf("Run ID:      %s\n", summary.RunID)
	fmt.Printf("Retained:    %d records\n", summary.Retained)
	for _, stat := range summary.Sources {
		if stat.Skipped {
			fmt.Printf("  %-40s skipped (%s)\n", stat.Source, stat.Reason)
			continue
		}
		fmt.Printf("  %-40s rows=%d retained=%d\n", stat.Source, stat.Rows, stat.Retained)
	}
	fmt.Printf("Verticals:   %v\n", summary.Verticals)
	fmt.Printf("Events:      %d upcoming in window\n", len(summary.Events))
	if summary.Tonalities > 0 {
		fmt.Printf("Tonalities:  %d buckets from sample pushes\n", summary.Tonalities)
	}
	fmt.Printf("Generated:   %d campaigns (%d failed)\n", summary.Generated, summary.Failed)
	fmt.Printf("Artifacts:   %s/\n", pipeline.OutputDir)
}
