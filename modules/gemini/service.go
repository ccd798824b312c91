package gemini

import (
	"context"
	"encoding/base64"
	"fmt"
	"log"
	"strconv"
	"strings"

	"google.golang.org/genai"

	"photobooth-ai-server/modules/common/config"
)

type Service struct {
	genaiClient *genai.Client
}

func NewService() *Service {
	cfg := config.GetConfig()

	// Genai 클라이언트 초기화
	ctx := context.Background()
	genaiClient, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		log.Printf("❌ [Gemini] Failed to create Genai client: %v", err)
		return nil
	}

	log.Println("✅ [Gemini] Service initialized")
	return &Service{
		genaiClient: genaiClient,
	}
}

// modelForTier - tier에 해당하는 모델명
func modelForTier(tier Tier) string {
	cfg := config.GetConfig()
	if tier == TierPro {
		return cfg.GeminiProModel
	}
	return cfg.GeminiFlashModel
}

// EditImage - 지정 tier 모델로 촬영 사진 편집
// tier 간 fallback은 orchestrator가 결정한다. 여기서는 한 모델만 호출
func (s *Service) EditImage(ctx context.Context, req *EditRequest, tier Tier) (*EditResult, error) {
	model := modelForTier(tier)

	aspectRatio := req.AspectRatio
	if aspectRatio == "" {
		aspectRatio = "1:1"
	}

	log.Printf("🎨 [Gemini] Editing image - model: %s, ratio: %s, prompt: %s",
		model, aspectRatio, truncateString(req.Prompt, 50))

	// Base64 디코딩
	imageData, err := base64.StdEncoding.DecodeString(req.ImageBase64)
	if err != nil {
		return nil, fmt.Errorf("failed to decode base64 image: %w", err)
	}

	// Content 생성 - 지시 프롬프트 + 원본 이미지
	content := &genai.Content{
		Parts: []*genai.Part{
			genai.NewPartFromText(buildEditPrompt(req.Prompt)),
			genai.NewPartFromBytes(imageData, "image/png"),
		},
	}

	result, err := s.genaiClient.Models.GenerateContent(
		ctx,
		model,
		[]*genai.Content{content},
		&genai.GenerateContentConfig{
			ImageConfig: &genai.ImageConfig{
				AspectRatio: aspectRatio,
			},
			Temperature: floatPtr(0.45),
		},
	)
	if err != nil {
		return nil, fmt.Errorf("Gemini API call failed (%s): %w", model, err)
	}

	// 응답 처리 - 첫 candidate의 첫 inline image part
	if len(result.Candidates) == 0 {
		return nil, fmt.Errorf("no candidates in response")
	}

	for _, candidate := range result.Candidates {
		if candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part.InlineData != nil && len(part.InlineData.Data) > 0 {
				log.Printf("✅ [Gemini] Received image from %s: %d bytes", model, len(part.InlineData.Data))
				return &EditResult{
					ImageBase64: base64.StdEncoding.EncodeToString(part.InlineData.Data),
					Model:       model,
				}, nil
			}
		}
	}

	return nil, fmt.Errorf("no image data in response")
}

// CountSubjects - 사진 속 인원 수를 vision 모델로 분류 (정수 하나만 받도록 제약)
func (s *Service) CountSubjects(ctx context.Context, imageBase64 string) (int, error) {
	cfg := config.GetConfig()

	imageData, err := base64.StdEncoding.DecodeString(imageBase64)
	if err != nil {
		return 0, fmt.Errorf("failed to decode base64 image: %w", err)
	}

	content := &genai.Content{
		Parts: []*genai.Part{
			genai.NewPartFromText("How many people are clearly visible in this photo? Respond with ONLY a single integer, nothing else."),
			genai.NewPartFromBytes(imageData, "image/png"),
		},
	}

	result, err := s.genaiClient.Models.GenerateContent(
		ctx,
		cfg.GeminiFlashModel,
		[]*genai.Content{content},
		&genai.GenerateContentConfig{
			Temperature: floatPtr(0),
		},
	)
	if err != nil {
		return 0, fmt.Errorf("subject count call failed: %w", err)
	}

	for _, candidate := range result.Candidates {
		if candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part.Text == "" {
				continue
			}
			count, err := parseSubjectCount(part.Text)
			if err != nil {
				return 0, err
			}
			log.Printf("🔍 [Gemini] Detected %d subject(s)", count)
			return count, nil
		}
	}

	return 0, fmt.Errorf("no text in subject count response")
}

// parseSubjectCount - 모델 답변에서 정수 추출
func parseSubjectCount(text string) (int, error) {
	cleaned := strings.TrimSpace(text)

	// 모델이 지시를 어기고 문장을 붙이는 경우가 있어 첫 숫자 덩어리만 취한다
	start := -1
	for i, r := range cleaned {
		if r >= '0' && r <= '9' {
			start = i
			break
		}
	}
	if start < 0 {
		return 0, fmt.Errorf("no integer in response: %q", text)
	}

	end := start
	for end < len(cleaned) && cleaned[end] >= '0' && cleaned[end] <= '9' {
		end++
	}

	count, err := strconv.Atoi(cleaned[start:end])
	if err != nil {
		return 0, fmt.Errorf("failed to parse subject count %q: %w", text, err)
	}
	return count, nil
}

// Helper functions
func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}

func floatPtr(f float64) *float32 {
	f32 := float32(f)
	return &f32
}
