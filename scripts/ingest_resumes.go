package main

import (
	"context"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"alfredoptarigan/resume-screener/internal/config"
	"alfredoptarigan/resume-screener/internal/services"
)

// Seeds the Qdrant collection with résumés so the first screenings already
// have similar résumés to draw on.
//
//	go run ./scripts [dir]
func main() {
	log.Println("🚀 Starting resume ingestion...")

	dir := "./reference_resumes"
	if len(os.Args) > 1 {
		dir = os.Args[1]
	}

	// Load configuration
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("❌ Invalid configuration: %v", err)
	}

	ctx := context.Background()

	// Initialize services
	llm, err := services.NewLLMService(ctx, cfg)
	if err != nil {
		log.Fatalf("❌ Failed to initialize %s provider: %v", cfg.LLM.Provider, err)
	}

	store, err := services.NewQdrantStore(ctx, cfg.Qdrant.URL, cfg.Qdrant.APIKey, cfg.Qdrant.Collection)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Qdrant: %v", err)
	}
	log.Printf("✅ Collection %s holds %d resumes", cfg.Qdrant.Collection, store.Count())

	pdfParser := services.NewPDFParserService()

	paths, err := filepath.Glob(filepath.Join(dir, "*.pdf"))
	if err != nil {
		log.Fatalf("❌ Invalid resume directory %s: %v", dir, err)
	}
	sort.Strings(paths)

	if len(paths) == 0 {
		log.Printf("⚠️  No PDF files found in %s", dir)
		return
	}

	successCount := 0
	failCount := 0

	for _, path := range paths {
		log.Printf("\n📄 Processing: %s", filepath.Base(path))

		// Extract text from PDF
		content, err := pdfParser.ExtractTextFromFile(path)
		if err != nil {
			log.Printf("   ❌ Failed to extract text: %v", err)
			failCount++
			continue
		}
		log.Printf("   ✅ Extracted %d pages, %d characters", content.PageCount, len(content.Text))

		// Generate embedding
		embedding, err := llm.GenerateEmbedding(ctx, content.Text)
		if err != nil {
			log.Printf("   ❌ Failed to generate embedding: %v", err)
			failCount++
			continue
		}

		// Store in Qdrant
		id, err := store.Add(ctx, embedding, content.Text)
		if err != nil {
			log.Printf("   ❌ Failed to store resume: %v", err)
			failCount++
			continue
		}

		log.Printf("   ✅ Stored as record #%d", id)
		successCount++
	}

	// Summary
	log.Println("\n" + strings.Repeat("=", 60))
	log.Printf("📊 Ingestion Summary:")
	log.Printf("   ✅ Successful: %d resumes", successCount)
	log.Printf("   ❌ Failed: %d resumes", failCount)
	log.Println(strings.Repeat("=", 60))

	if failCount > 0 {
		log.Println("⚠️  Some resumes failed to ingest. Please check the logs above.")
		os.Exit(1)
	}

	log.Println("✅ All resumes ingested successfully!")
}
