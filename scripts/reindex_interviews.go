package main

import (
	"context"
	"flag"
	"log"
	"time"

	"alfredoptarigan/interview-prep/internal/config"
	"alfredoptarigan/interview-prep/internal/repositories"
	"alfredoptarigan/interview-prep/internal/services"
)

// Rebuilds the similar-interview index from every stored interview.
func main() {
	delay := flag.Duration("delay", 200*time.Millisecond, "pause between embedding calls")
	flag.Parse()

	log.Println("🚀 Starting interview reindex...")

	cfg := config.Load()
	if cfg.Qdrant.URL == "" {
		log.Fatal("❌ QDRANT_URL is required")
	}

	db, err := config.InitDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to initialize database: %v", err)
	}
	interviewRepo := repositories.NewInterviewRepository(db, cfg.Flows.Collections(), cfg.Database.Timeout)

	geminiService, err := services.NewGeminiService(cfg.LLM.GeminiAPIKey, cfg.LLM.GeminiModel, cfg.LLM.EmbedModel, cfg.LLM.Temperature, cfg.LLM.Timeout)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Gemini: %v", err)
	}

	index, err := services.NewQdrantService(cfg.Qdrant.URL, cfg.Qdrant.APIKey, cfg.Qdrant.Collection)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Qdrant: %v", err)
	}

	ctx := context.Background()
	if err := index.InitCollection(ctx); err != nil {
		log.Fatalf("❌ Failed to initialize collection: %v", err)
	}

	similarity := services.NewSimilarityService(geminiService, index, interviewRepo, services.NewPromptBuilder())

	interviews, err := interviewRepo.FindAll(ctx)
	if err != nil {
		log.Fatalf("❌ Failed to load interviews: %v", err)
	}
	log.Printf("📋 Found %d interviews", len(interviews))

	indexed := 0
	for i := range interviews {
		interview := &interviews[i]
		if err := similarity.Index(ctx, interview); err != nil {
			log.Printf("⚠️ Failed to index %s: %v", interview.ID, err)
			continue
		}
		indexed++
		log.Printf("✅ Indexed %s (%s, %s)", interview.ID, interview.Role, interview.Level)
		time.Sleep(*delay)
	}

	log.Printf("🎉 Reindex completed: %d/%d interviews indexed", indexed, len(interviews))
}
