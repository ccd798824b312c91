package openaiedit

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"photobooth-ai-server/modules/common/config"
	"photobooth-ai-server/modules/common/httpx"
	"photobooth-ai-server/modules/common/payload"
)

type Handler struct {
	service *Service
}

func NewHandler() *Handler {
	return &Handler{
		service: NewService(),
	}
}

// HandleEdit - POST /generate-image-openai
func (h *Handler) HandleEdit(w http.ResponseWriter, r *http.Request) {
	if httpx.HandlePreflight(w, r) {
		return
	}

	if r.Method != http.MethodPost {
		httpx.RespondError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	// Request 파싱
	var req EditRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("❌ [OpenAI] Invalid request: %v", err)
		httpx.RespondError(w, http.StatusBadRequest, "Invalid request format")
		return
	}

	// 요청 검증
	if strings.TrimSpace(req.Prompt) == "" {
		httpx.RespondError(w, http.StatusBadRequest, "prompt is required")
		return
	}
	if req.ImageBase64 == "" {
		httpx.RespondError(w, http.StatusBadRequest, "imageBase64 is required")
		return
	}

	// 자격 증명 확인 - 없으면 외부 호출 없이 즉시 실패
	if config.GetConfig().OpenAIAPIKey == "" || h.service == nil {
		log.Println("❌ [OpenAI] OPENAI_API_KEY not configured")
		httpx.RespondError(w, http.StatusInternalServerError, "OPENAI_API_KEY is not configured on the server")
		return
	}

	imageBase64, err := h.service.Edit(r.Context(), &req)
	if err != nil {
		log.Printf("❌ [OpenAI] Edit failed: %v", err)
		httpx.RespondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	httpx.RespondJSON(w, http.StatusOK, EditResponse{
		ImageBase64: payload.DataURI("image/png", imageBase64),
	})
}
