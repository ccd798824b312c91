package veo

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"photobooth-ai-server/modules/common/config"
	"photobooth-ai-server/modules/common/gcpauth"
	"photobooth-ai-server/modules/common/payload"
)

type Service struct {
	tokenSource gcpauth.TokenSource
	client      *http.Client
	baseURL     string
}

func NewService() *Service {
	cfg := config.GetConfig()

	if !cfg.HasVeoCredentials() {
		log.Println("⚠️ [Veo] GCP service account credentials not configured")
		return nil
	}

	tokenSource, err := gcpauth.NewServiceAccountTokenSource(cfg.GCPClientEmail, cfg.GCPPrivateKey)
	if err != nil {
		log.Printf("❌ [Veo] Failed to create token source: %v", err)
		return nil
	}

	log.Println("✅ [Veo] Service initialized")
	return &Service{
		tokenSource: tokenSource,
		// 호스팅 플랫폼 실행 상한이 60초라 클라이언트도 동일하게 맞춘다
		client:  &http.Client{Timeout: 60 * time.Second},
		baseURL: fmt.Sprintf("https://%s-aiplatform.googleapis.com", cfg.GCPLocation),
	}
}

// endpointURL - Vertex AI publisher 모델 :predict 엔드포인트
func (s *Service) endpointURL(cfg *config.Config) string {
	return fmt.Sprintf("%s/v1/projects/%s/locations/%s/publishers/google/models/%s:predict",
		s.baseURL, cfg.GCPProjectID, cfg.GCPLocation, cfg.VeoModel)
}

// GenerateVideo - 원본 사진 + 프롬프트로 영상 생성, raw base64 반환
func (s *Service) GenerateVideo(ctx context.Context, req *VideoRequest) (string, error) {
	cfg := config.GetConfig()

	token, err := s.tokenSource.Token(ctx)
	if err != nil {
		return "", err
	}

	aspectRatio := req.AspectRatio
	if aspectRatio == "" {
		aspectRatio = "16:9"
	}

	log.Printf("🎬 [Veo] Generating video - model: %s, ratio: %s, prompt: %s",
		cfg.VeoModel, aspectRatio, truncateString(req.Prompt, 50))

	predictReq := predictRequest{
		Instances: []predictInstance{{
			Prompt: req.Prompt,
			Image: &inlineImage{
				BytesBase64Encoded: req.Image,
				MimeType:           "image/png",
			},
		}},
		Parameters: predictParameters{
			AspectRatio: aspectRatio,
			SampleCount: 1,
		},
	}

	jsonBody, err := json.Marshal(predictReq)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", s.endpointURL(cfg), bytes.NewReader(jsonBody))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+token)

	resp, err := s.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("Veo API call failed: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		log.Printf("❌ [Veo] API error: status=%d, body=%s", resp.StatusCode, truncateString(string(bodyBytes), 300))
		return "", fmt.Errorf("Veo API error (status %d): %s", resp.StatusCode, string(bodyBytes))
	}

	var predictResp predictResponse
	if err := json.Unmarshal(bodyBytes, &predictResp); err != nil {
		return "", fmt.Errorf("failed to parse response: %w", err)
	}
	if predictResp.Error != nil {
		return "", fmt.Errorf("Veo API error: %s", predictResp.Error.Message)
	}

	// prediction 모양 세 가지를 순서대로 시도
	videoBase64, err := payload.ExtractBase64(predictResp.Predictions, payload.VideoExtractors)
	if err != nil {
		return "", err
	}

	log.Printf("✅ [Veo] Received video: %d chars", len(videoBase64))
	return videoBase64, nil
}

func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
