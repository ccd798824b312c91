package generate

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"photobooth-ai-server/modules/common/httpx"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{
		service: service,
	}
}

// HandleGenerate - POST /api/generate
// provider 선택 + fallback chain 전체 플로우
func (h *Handler) HandleGenerate(w http.ResponseWriter, r *http.Request) {
	if httpx.HandlePreflight(w, r) {
		return
	}

	if r.Method != http.MethodPost {
		httpx.RespondError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("❌ [Generate] Invalid request: %v", err)
		httpx.RespondError(w, http.StatusBadRequest, "Invalid request format")
		return
	}

	// 요청 검증
	if req.Image == "" {
		httpx.RespondError(w, http.StatusBadRequest, "image is required")
		return
	}
	if strings.TrimSpace(req.Prompt) == "" {
		httpx.RespondError(w, http.StatusBadRequest, "prompt is required")
		return
	}
	if req.AspectRatio != "" && !validAspectRatios[req.AspectRatio] {
		httpx.RespondError(w, http.StatusBadRequest, "aspectRatio must be one of 1:1, 16:9, 9:16, 3:4")
		return
	}

	response, err := h.service.Generate(r.Context(), &req)
	if err != nil {
		log.Printf("❌ [Generate] Generation failed: %v", err)
		httpx.RespondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	log.Printf("✅ [Generate] Request %s completed via %s", response.RequestID, response.Provider)
	httpx.RespondJSON(w, http.StatusOK, response)
}
