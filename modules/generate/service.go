package generate

import (
	"context"
	"encoding/base64"
	"log"

	"github.com/google/uuid"

	"photobooth-ai-server/modules/common/imaging"
	"photobooth-ai-server/modules/common/payload"
	"photobooth-ai-server/modules/gemini"
	"photobooth-ai-server/modules/openaiedit"
)

// ImageEditor - Gemini adapter 경계 (tier 지정 호출)
type ImageEditor interface {
	EditImage(ctx context.Context, req *gemini.EditRequest, tier gemini.Tier) (*gemini.EditResult, error)
}

// OpenAIEditor - OpenAI adapter 경계
type OpenAIEditor interface {
	Edit(ctx context.Context, req *openaiedit.EditRequest) (string, error)
}

// EventPublisher - booth 모니터로 진행 상황 broadcast
type EventPublisher interface {
	Broadcast(sessionID string, event interface{})
}

// Service - provider 선택과 fallback chain을 담당하는 orchestrator
// 실패 시 허용되는 경로는 두 가지뿐:
//
//	openai-edit 실패 → gemini-flash 재시도
//	gemini-pro  실패 → gemini-flash 재시도
//
// gemini-flash 실패는 그대로 전파된다
type Service struct {
	selector *Selector
	gemini   ImageEditor
	openai   OpenAIEditor
	hub      EventPublisher
}

func NewService(selector *Selector, geminiEditor ImageEditor, openaiEditor OpenAIEditor, hub EventPublisher) *Service {
	return &Service{
		selector: selector,
		gemini:   geminiEditor,
		openai:   openaiEditor,
		hub:      hub,
	}
}

// Generate - 요청 1건 처리. 한 provider만 호출하고, 실패 시에만 fallback
func (s *Service) Generate(ctx context.Context, req *GenerateRequest) (*GenerateResponse, error) {
	requestID := uuid.New().String()
	settings := ParseSettings(req.Settings)

	choice := s.selector.Resolve(ctx, req.Image, settings)
	s.publish(req.BoothID, GenerationEvent{
		Type: "generation_update", RequestID: requestID, Stage: "selected", Provider: choice,
	})

	switch choice {
	case ProviderOpenAIEdit:
		if s.openai != nil {
			imageBase64, err := s.openai.Edit(ctx, &openaiedit.EditRequest{
				Prompt:      req.Prompt,
				ImageBase64: req.Image,
				Size:        settings.OpenAISize,
			})
			if err == nil {
				return s.complete(req, requestID, ProviderOpenAIEdit, imageBase64), nil
			}
			// OpenAI 실패는 삼키고 Gemini flash로 넘어간다
			log.Printf("⚠️ [Generate] OpenAI edit failed, falling back to %s: %v", ProviderGeminiFlash, err)
		} else {
			log.Printf("⚠️ [Generate] OpenAI not configured, falling back to %s", ProviderGeminiFlash)
		}
		s.publish(req.BoothID, GenerationEvent{
			Type: "generation_update", RequestID: requestID, Stage: "fallback", Provider: ProviderGeminiFlash,
		})
		return s.editWithFlash(ctx, req, requestID)

	case ProviderGeminiPro:
		result, err := s.gemini.EditImage(ctx, s.geminiRequest(req), gemini.TierPro)
		if err == nil {
			return s.complete(req, requestID, ProviderGeminiPro, result.ImageBase64), nil
		}
		log.Printf("⚠️ [Generate] Gemini pro failed, falling back to %s: %v", ProviderGeminiFlash, err)
		s.publish(req.BoothID, GenerationEvent{
			Type: "generation_update", RequestID: requestID, Stage: "fallback", Provider: ProviderGeminiFlash,
		})
		return s.editWithFlash(ctx, req, requestID)

	default:
		return s.editWithFlash(ctx, req, requestID)
	}
}

// editWithFlash - 최종 단계. 여기서의 에러는 호출자로 그대로 전파
func (s *Service) editWithFlash(ctx context.Context, req *GenerateRequest, requestID string) (*GenerateResponse, error) {
	result, err := s.gemini.EditImage(ctx, s.geminiRequest(req), gemini.TierFlash)
	if err != nil {
		s.publish(req.BoothID, GenerationEvent{
			Type: "generation_update", RequestID: requestID, Stage: "failed", Provider: ProviderGeminiFlash,
		})
		return nil, err
	}
	return s.complete(req, requestID, ProviderGeminiFlash, result.ImageBase64), nil
}

func (s *Service) geminiRequest(req *GenerateRequest) *gemini.EditRequest {
	return &gemini.EditRequest{
		ImageBase64: req.Image,
		Prompt:      req.Prompt,
		AspectRatio: req.AspectRatio,
	}
}

// complete - 결과 조립 + booth 모니터에 미리보기 broadcast
func (s *Service) complete(req *GenerateRequest, requestID string, provider Provider, imageBase64 string) *GenerateResponse {
	// 받을 모니터가 없으면 미리보기 인코딩 자체를 건너뛴다
	if s.hub != nil && req.BoothID != "" {
		event := GenerationEvent{
			Type: "generation_update", RequestID: requestID, Stage: "completed", Provider: provider,
		}

		// 미리보기는 best-effort - 실패해도 결과에는 영향 없음
		if pngData, err := base64.StdEncoding.DecodeString(imageBase64); err == nil {
			if preview, err := imaging.CompressPreview(pngData, 60.0); err == nil {
				event.PreviewBase64 = base64.StdEncoding.EncodeToString(preview)
			} else {
				log.Printf("⚠️ [Generate] Preview compression failed: %v", err)
			}
		}
		s.hub.Broadcast(req.BoothID, event)
	}

	return &GenerateResponse{
		Image:     payload.DataURI("image/png", imageBase64),
		Provider:  provider,
		RequestID: requestID,
	}
}

func (s *Service) publish(boothID string, event GenerationEvent) {
	if s.hub == nil || boothID == "" {
		return
	}
	s.hub.Broadcast(boothID, event)
}
