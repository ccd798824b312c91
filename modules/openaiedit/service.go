package openaiedit

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"photobooth-ai-server/modules/common/config"
	"photobooth-ai-server/modules/common/imaging"
)

// imageEditClient - openai-go Images 서비스 경계
type imageEditClient interface {
	Edit(ctx context.Context, body openai.ImageEditParams, opts ...option.RequestOption) (*openai.ImagesResponse, error)
}

type Service struct {
	images imageEditClient
}

func NewService() *Service {
	cfg := config.GetConfig()

	if cfg.OpenAIAPIKey == "" {
		log.Println("⚠️ [OpenAI] OPENAI_API_KEY not configured")
		return nil
	}

	client := openai.NewClient(option.WithAPIKey(cfg.OpenAIAPIKey))

	log.Println("✅ [OpenAI] Service initialized")
	return &Service{
		images: &client.Images,
	}
}

// Edit - 이미지 편집 호출. raw base64 PNG 반환
func (s *Service) Edit(ctx context.Context, req *EditRequest) (string, error) {
	size := req.Size
	if size == "" {
		size = defaultSize
	}

	log.Printf("🎨 [OpenAI] Editing image - size: %s, prompt: %s", size, truncateString(req.Prompt, 50))

	imageData, err := base64.StdEncoding.DecodeString(req.ImageBase64)
	if err != nil {
		return "", fmt.Errorf("failed to decode base64 image: %w", err)
	}

	// edit API는 정사각 입력을 기대하므로 투명 캔버스에 pad
	dim := sizeToDim(size)
	imageData, err = imaging.PadToSquare(imageData, dim)
	if err != nil {
		return "", fmt.Errorf("failed to pad image: %w", err)
	}

	// 마스크가 없으면 전체 투명 마스크 생성 (이미지 전체 편집)
	var maskData []byte
	if req.MaskBase64 != "" {
		maskData, err = base64.StdEncoding.DecodeString(req.MaskBase64)
		if err != nil {
			return "", fmt.Errorf("failed to decode base64 mask: %w", err)
		}
	} else {
		maskData, err = imaging.TransparentMask(dim)
		if err != nil {
			return "", fmt.Errorf("failed to build mask: %w", err)
		}
		log.Printf("🖼️  [OpenAI] Generated transparent mask (%s)", size)
	}

	params := openai.ImageEditParams{
		Image: openai.ImageEditParamsImageUnion{
			OfFile: openai.File(bytes.NewReader(imageData), "image.png", "image/png"),
		},
		Mask:           openai.File(bytes.NewReader(maskData), "mask.png", "image/png"),
		Prompt:         req.Prompt + promptSuffix,
		N:              openai.Int(1),
		Size:           openai.ImageEditParamsSize(size), // 비표준 size도 그대로 전달
		ResponseFormat: openai.ImageEditParamsResponseFormatB64JSON,
	}

	resp, err := s.images.Edit(ctx, params)
	if err != nil {
		return "", fmt.Errorf("OpenAI image edit failed: %w", err)
	}

	if len(resp.Data) == 0 || resp.Data[0].B64JSON == "" {
		return "", fmt.Errorf("no image data in response")
	}

	log.Printf("✅ [OpenAI] Received edited image: %d chars", len(resp.Data[0].B64JSON))
	return resp.Data[0].B64JSON, nil
}

// sizeToDim - "1024x1024" 형태에서 한 변 길이 추출, 실패 시 1024
func sizeToDim(size string) int {
	parts := strings.SplitN(size, "x", 2)
	if dim, err := strconv.Atoi(parts[0]); err == nil && dim > 0 {
		return dim
	}
	return 1024
}

func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
