package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config 구조체 - 모든 환경변수를 담음
type Config struct {
	// Gemini API (booth 클라이언트에 노출되는 API_KEY와 동일한 키)
	GeminiAPIKey     string
	GeminiFlashModel string
	GeminiProModel   string

	// OpenAI
	OpenAIAPIKey string

	// GCP / Vertex AI (Veo)
	GCPProjectID   string
	GCPLocation    string
	GCPClientEmail string
	GCPPrivateKey  string
	VeoModel       string

	// Redis (선택 - subject count 캐시)
	RedisHost     string
	RedisPort     string
	RedisUsername string
	RedisPassword string
	RedisUseTLS   bool

	// Server
	Port string
}

var globalConfig *Config

// LoadConfig - 환경변수 로드
func LoadConfig() (*Config, error) {
	// .env 파일 로드 (있으면)
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  .env file not found, using environment variables")
	}

	// Redis UseTLS 파싱
	useTLS := true // 기본값
	if tlsStr := os.Getenv("REDIS_USE_TLS"); tlsStr != "" {
		if parsed, err := strconv.ParseBool(tlsStr); err == nil {
			useTLS = parsed
		}
	}

	globalConfig = &Config{
		// Gemini
		GeminiAPIKey:     firstEnv("GEMINI_API_KEY", "API_KEY"),
		GeminiFlashModel: getEnv("GEMINI_FLASH_MODEL", "gemini-2.5-flash-image"),
		GeminiProModel:   getEnv("GEMINI_PRO_MODEL", "gemini-2.5-pro-image"),

		// OpenAI
		OpenAIAPIKey: getEnv("OPENAI_API_KEY", ""),

		// GCP (Veo)
		GCPProjectID:   getEnv("GCP_PROJECT_ID", ""),
		GCPLocation:    getEnv("GCP_LOCATION", "us-central1"),
		GCPClientEmail: getEnv("GCP_CLIENT_EMAIL", ""),
		GCPPrivateKey:  normalizePrivateKey(getEnv("GCP_PRIVATE_KEY", "")),
		VeoModel:       getEnv("VEO_MODEL", "veo-2.0-generate-001"),

		// Redis
		RedisHost:     getEnv("REDIS_HOST", ""),
		RedisPort:     getEnv("REDIS_PORT", "6379"),
		RedisUsername: getEnv("REDIS_USERNAME", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisUseTLS:   useTLS,

		// Server
		Port: getEnv("PORT", "8080"),
	}

	// 필수 환경변수 검증
	if err := globalConfig.validate(); err != nil {
		return nil, err
	}

	log.Println("✅ Configuration loaded successfully")
	log.Printf("   Gemini: flash=%s, pro=%s", globalConfig.GeminiFlashModel, globalConfig.GeminiProModel)
	log.Printf("   Veo: %s (project=%s, location=%s)", globalConfig.VeoModel, globalConfig.GCPProjectID, globalConfig.GCPLocation)
	log.Printf("   OpenAI key configured: %v", globalConfig.OpenAIAPIKey != "")
	log.Printf("   Redis cache: %v", globalConfig.RedisHost != "")

	return globalConfig, nil
}

// GetConfig - 로드된 설정 가져오기
func GetConfig() *Config {
	if globalConfig == nil {
		log.Fatal("❌ Config not loaded. Call LoadConfig() first.")
	}
	return globalConfig
}

// validate - 필수 환경변수 검증
// OpenAI/GCP 키는 해당 엔드포인트 호출 시점에 검사한다 (booth별로 일부 provider만 쓰는 배포가 있음)
func (c *Config) validate() error {
	if c.GeminiAPIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY is required")
	}
	return nil
}

// HasVeoCredentials - Veo 호출에 필요한 서비스 계정 정보가 전부 있는지
func (c *Config) HasVeoCredentials() bool {
	return c.GCPProjectID != "" && c.GCPClientEmail != "" && c.GCPPrivateKey != ""
}

// GetRedisAddr - Redis 연결 문자열 생성
func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", c.RedisHost, c.RedisPort)
}

// getEnv - 환경변수 가져오기 (기본값 지원)
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// firstEnv - 여러 키 중 먼저 설정된 값을 사용
func firstEnv(keys ...string) string {
	for _, key := range keys {
		if value := os.Getenv(key); value != "" {
			return value
		}
	}
	return ""
}

// normalizePrivateKey - 환경변수로 전달된 PEM의 escaped newline 복원
func normalizePrivateKey(key string) string {
	return strings.ReplaceAll(key, `\n`, "\n")
}
