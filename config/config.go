package config

import (
	"os"
)

// GetGeminiModel returns the Gemini model to use from environment variable
// Defaults to "gemini-2.5-flash" if not set
func GetGeminiModel() string {
	model := os.Getenv("GEMINI_MODEL")
	if model == "" {
		// Default to flash model if not specified
		return "gemini-2.5-flash"
	}
	return model
}

// GetGeminiAPIKey returns the Gemini API key from environment variable
func GetGeminiAPIKey() string {
	return os.Getenv("GEMINI_API_KEY")
}

// GetMongoDBURI returns the MongoDB connection URI from environment variable
func GetMongoDBURI() string {
	return os.Getenv("MONGODB_URI")
}

// GetScenarioPath returns the path of the simulated-house scenario file
// Defaults to "scenarios/baseline_house_1.json" if not set
func GetScenarioPath() string {
	path := os.Getenv("SCENARIO_PATH")
	if path == "" {
		return "scenarios/baseline_house_1.json"
	}
	return path
}

// GetListenAddr returns the HTTP listen address, defaulting to ":8080"
func GetListenAddr() string {
	addr := os.Getenv("LISTEN_ADDR")
	if addr == "" {
		return ":8080"
	}
	return addr
}

// GetAllowedOrigins returns the allowed CORS origins from environment variable
func GetAllowedOrigins() string {
	return os.Getenv("ALLOWED_ORIGINS")
}
