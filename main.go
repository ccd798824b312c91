package main

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"

	"photobooth-ai-server/modules/common/config"
	commonredis "photobooth-ai-server/modules/common/redis"
	"photobooth-ai-server/modules/generate"
	"photobooth-ai-server/modules/gemini"
	"photobooth-ai-server/modules/live"
	"photobooth-ai-server/modules/openaiedit"
	"photobooth-ai-server/modules/veo"
)

// 서버 메트릭
type ServerMetrics struct {
	TotalRequests   int            `json:"totalRequests"`
	RequestsByRoute map[string]int `json:"requestsByRoute"`
	StartTime       time.Time      `json:"startTime"`
	mutex           sync.RWMutex
}

var metrics = &ServerMetrics{
	RequestsByRoute: make(map[string]int),
	StartTime:       time.Now(),
}

// CORS 헤더 추가
func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// 요청 카운트 미들웨어
func countRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		metrics.mutex.Lock()
		metrics.TotalRequests++
		metrics.RequestsByRoute[r.URL.Path]++
		metrics.mutex.Unlock()

		next.ServeHTTP(w, r)
	})
}

// 헬스 체크 엔드포인트
func healthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{
		"status":  "healthy",
		"service": "photobooth-ai-server",
	})
}

// 서버 메트릭 조회 엔드포인트
func getMetrics(w http.ResponseWriter, r *http.Request) {
	metrics.mutex.RLock()
	byRoute := make(map[string]int, len(metrics.RequestsByRoute))
	for route, count := range metrics.RequestsByRoute {
		byRoute[route] = count
	}
	total := metrics.TotalRequests
	start := metrics.StartTime
	metrics.mutex.RUnlock()

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"uptime":          time.Since(start).String(),
		"startTime":       start,
		"totalRequests":   total,
		"requestsByRoute": byRoute,
	})
}

func main() {
	// 환경변수 로드
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("❌ Failed to load config: %v", err)
	}

	// Redis (선택) - subject-count 캐시
	rdb := commonredis.Connect(cfg)

	// Live hub (booth 모니터용)
	hub := live.NewHub()

	// Provider 서비스 초기화
	geminiService := gemini.NewService()
	if geminiService == nil {
		log.Fatal("❌ Failed to initialize Gemini service")
	}

	var openaiEditor generate.OpenAIEditor
	if s := openaiedit.NewService(); s != nil {
		openaiEditor = s
	}

	// Orchestrator 조립
	selector := generate.NewSelector(geminiService, rdb)
	generateService := generate.NewService(selector, geminiService, openaiEditor, hub)

	generateHandler := generate.NewHandler(generateService)
	openaiHandler := openaiedit.NewHandler()
	veoHandler := veo.NewHandler()

	// 라우터 설정
	r := mux.NewRouter()
	r.Use(enableCORS)
	r.Use(countRequests)

	r.HandleFunc("/", healthCheck).Methods("GET")
	r.HandleFunc("/health", healthCheck).Methods("GET")
	r.HandleFunc("/metrics", getMetrics).Methods("GET")
	r.HandleFunc("/ws", hub.HandleWS)

	r.HandleFunc("/api/generate", generateHandler.HandleGenerate).Methods("POST", "OPTIONS")
	r.HandleFunc("/generate-image-openai", openaiHandler.HandleEdit).Methods("POST", "OPTIONS")
	r.HandleFunc("/generate-video", veoHandler.HandleGenerateVideo).Methods("POST", "OPTIONS")

	log.Printf("🚀 Photobooth AI Server starting on port %s", cfg.Port)
	log.Printf("❤️  Health check: http://localhost:%s/health", cfg.Port)
	log.Printf("📊 Metrics: http://localhost:%s/metrics", cfg.Port)
	log.Printf("📡 Booth monitor WS: ws://localhost:%s/ws", cfg.Port)

	// 서버 시작
	if err := http.ListenAndServe(":"+cfg.Port, r); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}
