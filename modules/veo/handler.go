package veo

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

// HandleGenerateVideo - POST /generate-video
func (h *Handler) HandleGenerateVideo(w http.ResponseWriter, r *http.Request) {
	if httpx.HandlePreflight(w, r) {
		return
	}

	if r.Method != http.MethodPost {
		httpx.RespondError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	// Request 파싱
	var req VideoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("❌ [Veo] Invalid request: %v", err)
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
	if req.AspectRatio != "" && req.AspectRatio != "16:9" && req.AspectRatio != "9:16" {
		httpx.RespondError(w, http.StatusBadRequest, "aspectRatio must be 16:9 or 9:16")
		return
	}

	// 자격 증명 확인 - 없으면 외부 호출 없이 즉시 실패
	if !config.GetConfig().HasVeoCredentials() || h.service == nil {
		log.Println("❌ [Veo] GCP service account credentials not configured")
		httpx.RespondError(w, http.StatusInternalServerError,
			"GCP_PROJECT_ID, GCP_CLIENT_EMAIL and GCP_PRIVATE_KEY must be configured on the server")
		return
	}

	videoBase64, err := h.service.GenerateVideo(r.Context(), &req)
	if err != nil {
		log.Printf("❌ [Veo] Generation failed: %v", err)
		httpx.RespondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	httpx.RespondJSON(w, http.StatusOK, VideoResponse{
		Video: payload.DataURI("video/mp4", videoBase64),
	})
}
