package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	SMTP     SMTPConfig
	Keys     APIKeys
	Storage  StorageConfig
	Ai       AIConfig
	OAuth    OAuthConfig
	Midtrans MidtransConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	ClientURL          string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
	MaxUploadSize      int // bytes; uploads larger than this are rejected with 413
}

type DatabaseConfig struct {
	Connection string
}

type SMTPConfig struct {
	Host       string
	Port       int
	Email      string
	Password   string
	SenderName string
}

type APIKeys struct {
	OpenAI       string
	PdfCo        string
	PdfCoBaseURL string
	EmbedTopic   string // page embedding topic name
}

type StorageConfig struct {
	AccessKey string
	SecretKey string
	Region    string
	Bucket    string
}

type AIConfig struct {
	CompletionModel string
	ChatTokenBudget int // per-batch token budget for the ingestion path
	ParagraphMaxLen int // max chunk length for quiz/flashcard material
	QuizQuestions   int
}

type OAuthConfig struct {
	GoogleClientID     string
	GoogleClientSecret string
	GoogleRedirectURL  string
}

type MidtransConfig struct {
	ServerKey   string
	Environment string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, using system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:3000"),
			ClientURL:          getEnv("CLIENT_URL", "http://localhost:5173"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
			MaxUploadSize:      getEnvAsInt("MAX_UPLOAD_SIZE", 25*1024*1024),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		SMTP: SMTPConfig{
			Host:       getEnv("SMTP_HOST", ""),
			Port:       getEnvAsInt("SMTP_PORT", 587),
			Email:      getEnv("SMTP_EMAIL", ""),
			Password:   getEnv("SMTP_PASSWORD", ""),
			SenderName: getEnv("SMTP_SENDER_NAME", "GammaNotes"),
		},
		Keys: APIKeys{
			OpenAI:       getEnv("OPENAI_API_KEY", ""),
			PdfCo:        getEnv("PDFCO_API_KEY", ""),
			PdfCoBaseURL: getEnv("PDFCO_BASE_URL", ""),
			EmbedTopic:   getEnv("EMBED_PAGE_CONTENT_TOPIC_NAME", "EMBED_PAGE_CONTENT"),
		},
		Storage: StorageConfig{
			AccessKey: getEnv("AWS_ACCESS_KEY_ID", ""),
			SecretKey: getEnv("AWS_SECRET_ACCESS_KEY", ""),
			Region:    getEnv("AWS_REGION", "us-east-1"),
			Bucket:    getEnv("S3_BUCKET_NAME", ""),
		},
		Ai: AIConfig{
			CompletionModel: getEnv("COMPLETION_MODEL", "gpt-4o-mini"),
			ChatTokenBudget: getEnvAsInt("CHAT_TOKEN_BUDGET", 3000),
			ParagraphMaxLen: getEnvAsInt("PARAGRAPH_MAX_LEN", 12000),
			QuizQuestions:   getEnvAsInt("QUIZ_NUM_QUESTIONS", 10),
		},
		OAuth: OAuthConfig{
			GoogleClientID:     getEnv("GOOGLE_CLIENT_ID", ""),
			GoogleClientSecret: getEnv("GOOGLE_CLIENT_SECRET", ""),
			GoogleRedirectURL:  getEnv("GOOGLE_REDIRECT_URL", ""),
		},
		Midtrans: MidtransConfig{
			ServerKey:   getEnv("MIDTRANS_SERVER_KEY", ""),
			Environment: getEnv("MIDTRANS_ENV", "sandbox"),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}
