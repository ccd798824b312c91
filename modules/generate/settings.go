package generate

import (
	"encoding/json"
	"strings"
)

// Settings - booth 로컬에 저장되는 pb_settings의 서버 측 대응
// 클라이언트가 요청마다 그대로 실어 보내고, 서버는 읽기만 한다
type Settings struct {
	SelectedModel Provider // 명시적 provider id 또는 auto-detect
	OpenAISize    string   // OpenAI 렌더 크기, 검증 없이 passthrough
}

// DefaultSettings - settings 블록이 없거나 깨진 경우의 기본값
func DefaultSettings() Settings {
	return Settings{
		SelectedModel: ProviderAutoDetect,
		OpenAISize:    "1024x1024",
	}
}

// ParseSettings - pb_settings JSON을 관대하게 파싱
// booth 버전마다 키 모양이 조금씩 달라 map으로 받아 safe 헬퍼로 복원한다
func ParseSettings(raw json.RawMessage) Settings {
	settings := DefaultSettings()

	if len(raw) == 0 {
		return settings
	}

	var m map[string]interface{}
	if err := json.Unmarshal(raw, &m); err != nil {
		return settings
	}

	model := safeString(m["selectedModel"], safeString(m["model"], string(ProviderAutoDetect)))
	switch Provider(model) {
	case ProviderGeminiFlash, ProviderGeminiPro, ProviderOpenAIEdit, ProviderAutoDetect:
		settings.SelectedModel = Provider(model)
	}

	settings.OpenAISize = safeString(m["openaiSize"], safeString(m["openAISize"], settings.OpenAISize))

	return settings
}

// safeString - 값이 비어있지 않은 문자열이면 사용, 아니면 fallback
func safeString(value interface{}, fallback string) string {
	if s, ok := value.(string); ok {
		s = strings.TrimSpace(s)
		if s != "" {
			return s
		}
	}
	return fallback
}
