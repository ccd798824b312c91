package generate

import "encoding/json"

// Provider - 생성 back-end 선택지
type Provider string

const (
	ProviderGeminiFlash Provider = "gemini-flash"
	ProviderGeminiPro   Provider = "gemini-pro"
	ProviderOpenAIEdit  Provider = "openai-edit"
	ProviderAutoDetect  Provider = "auto-detect"
)

// validAspectRatios - booth가 지원하는 고정 비율 4종
var validAspectRatios = map[string]bool{
	"1:1":  true,
	"16:9": true,
	"9:16": true,
	"3:4":  true,
}

// GenerateRequest - 촬영 1건에 대한 생성 요청
type GenerateRequest struct {
	Image       string          `json:"image"` // base64 원본 사진
	Prompt      string          `json:"prompt"`
	AspectRatio string          `json:"aspectRatio,omitempty"`
	BoothID     string          `json:"boothId,omitempty"`  // live hub 세션
	Settings    json.RawMessage `json:"settings,omitempty"` // pb_settings JSON 그대로
}

// GenerateResponse - 최종 결과. provider는 실제로 이미지를 만든 back-end
type GenerateResponse struct {
	Image     string   `json:"image"` // data URI
	Provider  Provider `json:"provider"`
	RequestID string   `json:"requestId"`
}

// GenerationEvent - live hub로 나가는 진행 상황 이벤트
type GenerationEvent struct {
	Type          string   `json:"type"` // "generation_update"
	RequestID     string   `json:"requestId"`
	Stage         string   `json:"stage"` // "selected" | "fallback" | "completed" | "failed"
	Provider      Provider `json:"provider,omitempty"`
	PreviewBase64 string   `json:"previewBase64,omitempty"` // WebP 미리보기
}
