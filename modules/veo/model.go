package veo

import "encoding/json"

// VideoRequest - booth 클라이언트가 보내는 영상 생성 요청
type VideoRequest struct {
	Image       string `json:"image"` // base64 원본 사진
	Prompt      string `json:"prompt"`
	AspectRatio string `json:"aspectRatio"` // "16:9" | "9:16"
}

// VideoResponse - 영상 결과 data URI
type VideoResponse struct {
	Video string `json:"video"`
}

// predictRequest - Vertex AI :predict 요청 본문 (단일 instance)
type predictRequest struct {
	Instances  []predictInstance `json:"instances"`
	Parameters predictParameters `json:"parameters"`
}

type predictInstance struct {
	Prompt string       `json:"prompt"`
	Image  *inlineImage `json:"image,omitempty"`
}

type inlineImage struct {
	BytesBase64Encoded string `json:"bytesBase64Encoded"`
	MimeType           string `json:"mimeType"`
}

type predictParameters struct {
	AspectRatio string `json:"aspectRatio"`
	SampleCount int    `json:"sampleCount"`
}

// predictResponse - prediction별 모양이 제각각이라 RawMessage로 받아 순서대로 시도한다
type predictResponse struct {
	Predictions []json.RawMessage `json:"predictions"`
	Error       *predictError     `json:"error,omitempty"`
}

type predictError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
