package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/joho/godotenv"

	"robot/config"
	"robot/conversation"
	"robot/db"
	"robot/engine"
	"robot/handlers"
	"robot/llm"
	"robot/memory"
	"robot/middleware"
	"robot/retrieval"
	"robot/router"
	"robot/telemetry"
	"robot/world"
)

func main() {
	// Load .env file
	err := godotenv.Load()
	if err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	ctx := context.Background()

	// Ground-truth simulation the robot senses against
	house, err := world.Load(config.GetScenarioPath())
	if err != nil {
		log.Fatal("Failed to load scenario:", err)
	}
	log.Println(house.Summary())

	// Inference service
	generator, err := llm.NewGemini(ctx)
	if err != nil {
		log.Fatal("Failed to create inference client:", err)
	}

	mem := memory.New()
	bus := telemetry.NewBus()
	taskEngine := engine.New(mem, house, nil, bus)

	assistant := &handlers.Assistant{
		Router: router.New(generator, router.DefaultKeywords()),
		Engine: taskEngine,
		Chat:   conversation.NewAgent(generator),
	}

	// MongoDB backs sighting history and the knowledge base. Optional: the
	// robot runs on in-process memory alone when it is not configured.
	var sightings *db.SightingRepository
	if config.GetMongoDBURI() != "" {
		if err := db.InitMongoDB(); err != nil {
			log.Fatal("Failed to connect to MongoDB:", err)
		}
		defer db.Close()
		db.CreateSightingIndexes()
		db.CreateKnowledgeIndexes()

		sightings = db.NewSightingRepository()
		mem.SetSightingSink(sightings)
		assistant.Federator = retrieval.NewFederator(db.NewDocumentStore())
	} else {
		log.Println("Warning: MONGODB_URI not set, running without persistence and knowledge base")
		assistant.Federator = retrieval.NewFederator(retrieval.EmptySearcher{})
	}

	// Set up HTTP handlers
	http.HandleFunc("/utterance", middleware.EnableCORS(assistant.UtteranceHandler))
	http.HandleFunc("/people", middleware.EnableCORS(handlers.PeopleHandler(mem)))
	if sightings != nil {
		http.HandleFunc("/sightings", middleware.EnableCORS(handlers.SightingsHandler(sightings)))
	}

	addr := config.GetListenAddr()
	fmt.Printf("Robot assistant running on http://localhost%s\n", addr)
	log.Fatal(http.ListenAndServe(addr, nil))
}
