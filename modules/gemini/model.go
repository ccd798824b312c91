package gemini

// Tier - 같은 provider 안의 모델 등급
type Tier string

const (
	TierFlash Tier = "flash"
	TierPro   Tier = "pro"
)

// EditRequest - 촬영 원본 + 프롬프트 기반 이미지 편집 요청
type EditRequest struct {
	ImageBase64 string `json:"imageBase64"`
	Prompt      string `json:"prompt"`
	AspectRatio string `json:"aspectRatio"`
}

// EditResult - 편집 결과 (raw base64 PNG)
type EditResult struct {
	ImageBase64 string `json:"imageBase64"`
	Model       string `json:"model"`
}
