package payload

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrNoData - 응답은 성공했지만 알려진 위치 어디에도 payload가 없는 경우
var ErrNoData = errors.New("no data returned")

// Extractor - prediction 한 건에서 base64 payload를 시도 추출
// provider마다 응답 모양이 다르므로 순서대로 시도하고 첫 성공을 쓴다
type Extractor func(pred json.RawMessage) (string, bool)

// BareString - prediction 자체가 base64 문자열인 경우
func BareString(pred json.RawMessage) (string, bool) {
	var s string
	if err := json.Unmarshal(pred, &s); err != nil || s == "" {
		return "", false
	}
	return s, true
}

// TopLevelBytes - {"bytesBase64Encoded": "..."} 형태
func TopLevelBytes(pred json.RawMessage) (string, bool) {
	var v struct {
		BytesBase64Encoded string `json:"bytesBase64Encoded"`
	}
	if err := json.Unmarshal(pred, &v); err != nil || v.BytesBase64Encoded == "" {
		return "", false
	}
	return v.BytesBase64Encoded, true
}

// NestedVideoBytes - {"video": {"bytesBase64Encoded": "..."}} 형태
func NestedVideoBytes(pred json.RawMessage) (string, bool) {
	var v struct {
		Video struct {
			BytesBase64Encoded string `json:"bytesBase64Encoded"`
		} `json:"video"`
	}
	if err := json.Unmarshal(pred, &v); err != nil || v.Video.BytesBase64Encoded == "" {
		return "", false
	}
	return v.Video.BytesBase64Encoded, true
}

// VideoExtractors - Veo 응답에서 확인해야 하는 세 가지 모양 (순서 고정)
var VideoExtractors = []Extractor{BareString, TopLevelBytes, NestedVideoBytes}

// ExtractBase64 - predictions 배열에서 첫 번째로 매칭되는 payload 추출
func ExtractBase64(predictions []json.RawMessage, extractors []Extractor) (string, error) {
	for _, pred := range predictions {
		for _, extract := range extractors {
			if b64, ok := extract(pred); ok {
				return b64, nil
			}
		}
	}
	return "", ErrNoData
}

// DataURI - base64 payload를 data URI로 감싼다
func DataURI(mimeType, b64 string) string {
	return fmt.Sprintf("data:%s;base64,%s", mimeType, b64)
}

// DecodeDataURI - data URI를 mime type과 바이너리로 되돌린다
// (원본 클라이언트가 blob으로 materialize하던 동작의 서버 측 대응)
func DecodeDataURI(uri string) (string, []byte, error) {
	if !strings.HasPrefix(uri, "data:") {
		return "", nil, fmt.Errorf("not a data URI")
	}

	rest := strings.TrimPrefix(uri, "data:")
	sep := strings.Index(rest, ";base64,")
	if sep < 0 {
		return "", nil, fmt.Errorf("not a base64 data URI")
	}

	mimeType := rest[:sep]
	data, err := base64.StdEncoding.DecodeString(rest[sep+len(";base64,"):])
	if err != nil {
		return "", nil, fmt.Errorf("failed to decode data URI payload: %w", err)
	}
	return mimeType, data, nil
}
