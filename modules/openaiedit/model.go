package openaiedit

// EditRequest - booth 클라이언트가 보내는 이미지 편집 요청
// 이미지는 서버에서 정사각으로 pad되고, 마스크가 없으면 전체 투명 (전체 편집)
type EditRequest struct {
	Prompt      string `json:"prompt"`
	ImageBase64 string `json:"imageBase64"`
	MaskBase64  string `json:"maskBase64,omitempty"`
	Size        string `json:"size,omitempty"` // "1024x1024" 등, 검증 없이 passthrough
}

// EditResponse - 편집 결과 data URI
type EditResponse struct {
	ImageBase64 string `json:"imageBase64"`
}

const defaultSize = "1024x1024"

// promptSuffix - 모든 편집 요청에 붙는 고정 스타일 지시
const promptSuffix = ", photorealistic, highly detailed, preserve identity"
