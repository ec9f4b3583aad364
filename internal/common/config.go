package common

import (
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration.
type Config struct {
	LLM      LLMConfig
	OCR      OCRConfig
	Store    StoreConfig
	Profiles ProfilesConfig
	Output   OutputConfig
}

// LLMConfig holds generative-model configuration.
type LLMConfig struct {
	APIKey      string
	Model       string
	BaseURL     string
	Timeout     time.Duration
	MaxChars    int           // prompt character ceiling for document text
	BackoffBase time.Duration // linear backoff base between retries
}

// OCRConfig holds text-extraction configuration.
type OCRConfig struct {
	Pdftoppm  string
	Tesseract string
	Language  string // tesseract language pack(s), e.g. "nld+eng"
	DPI       int
	MaxPages  int
}

// StoreConfig holds the extraction store configuration.
type StoreConfig struct {
	Path string // sqlite file path; ":memory:" for tests
}

// ProfilesConfig holds client-profile configuration.
type ProfilesConfig struct {
	Dir    string
	Client string
}

// OutputConfig holds output sink configuration.
type OutputConfig struct {
	Dir string
}

// LoadConfig loads configuration from environment variables.
func LoadConfig() *Config {
	return &Config{
		LLM: LLMConfig{
			APIKey:      getEnv("GOOGLE_API_KEY", ""),
			Model:       getEnv("GEMINI_MODEL", "gemini-1.5-flash-8b"),
			BaseURL:     getEnv("GEMINI_BASE_URL", ""),
			Timeout:     getEnvAsDuration("LLM_TIMEOUT", 60*time.Second),
			MaxChars:    getEnvAsInt("LLM_MAX_CHARS", 20000),
			BackoffBase: getEnvAsDuration("LLM_BACKOFF_BASE", 1500*time.Millisecond),
		},
		OCR: OCRConfig{
			Pdftoppm:  getEnv("OCR_PDFTOPPM", "pdftoppm"),
			Tesseract: getEnv("OCR_TESSERACT", "tesseract"),
			Language:  getEnv("OCR_LANG", "nld+eng"),
			DPI:       getEnvAsInt("OCR_DPI", 350),
			MaxPages:  getEnvAsInt("OCR_MAX_PAGES", 0),
		},
		Store: StoreConfig{
			Path: getEnv("DB_PATH", "drawings.db"),
		},
		Profiles: ProfilesConfig{
			Dir:    getEnv("PROFILE_DIR", "profiles"),
			Client: getEnv("CLIENT", ""),
		},
		Output: OutputConfig{
			Dir: getEnv("OUTPUT_DIR", "outputs"),
		},
	}
}

// Validate validates the loaded configuration.
func (c *Config) Validate() error {
	if c.LLM.APIKey == "" {
		return NewAppError("CONFIG_ERROR", "GOOGLE_API_KEY is required", ErrInvalidInput)
	}
	if c.LLM.MaxChars <= 0 {
		return NewAppError("CONFIG_ERROR", "LLM_MAX_CHARS must be positive", ErrInvalidInput)
	}
	return nil
}

// Helper functions for environment variable parsing

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
