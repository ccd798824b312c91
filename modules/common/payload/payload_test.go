package payload

import (
	"encoding/base64"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractBase64AllKnownShapes(t *testing.T) {
	tests := []struct {
		name string
		pred string
	}{
		{"bare string", `"dmlkZW8="`},
		{"top-level bytes", `{"bytesBase64Encoded":"dmlkZW8="}`},
		{"nested video bytes", `{"video":{"bytesBase64Encoded":"dmlkZW8="}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b64, err := ExtractBase64([]json.RawMessage{json.RawMessage(tt.pred)}, VideoExtractors)
			require.NoError(t, err)
			assert.Equal(t, "dmlkZW8=", b64)
		})
	}
}

func TestExtractBase64FirstPredictionWins(t *testing.T) {
	preds := []json.RawMessage{
		json.RawMessage(`{"unrelated":true}`),
		json.RawMessage(`{"bytesBase64Encoded":"first"}`),
		json.RawMessage(`"second"`),
	}

	b64, err := ExtractBase64(preds, VideoExtractors)
	require.NoError(t, err)
	assert.Equal(t, "first", b64)
}

func TestExtractBase64NoData(t *testing.T) {
	preds := []json.RawMessage{
		json.RawMessage(`{"something":"else"}`),
		json.RawMessage(`42`),
		json.RawMessage(`""`),
	}

	_, err := ExtractBase64(preds, VideoExtractors)
	assert.ErrorIs(t, err, ErrNoData)

	_, err = ExtractBase64(nil, VideoExtractors)
	assert.ErrorIs(t, err, ErrNoData)
}

func TestDataURIRoundTrip(t *testing.T) {
	original := []byte("fake mp4 bytes")
	uri := DataURI("video/mp4", base64.StdEncoding.EncodeToString(original))

	assert.Equal(t, "data:video/mp4;base64,ZmFrZSBtcDQgYnl0ZXM=", uri)

	mimeType, data, err := DecodeDataURI(uri)
	require.NoError(t, err)
	assert.Equal(t, "video/mp4", mimeType)
	assert.Equal(t, original, data)
}

func TestDecodeDataURIErrors(t *testing.T) {
	_, _, err := DecodeDataURI("https://example.com/video.mp4")
	assert.Error(t, err)

	_, _, err = DecodeDataURI("data:video/mp4,rawpayload")
	assert.Error(t, err)

	_, _, err = DecodeDataURI("data:video/mp4;base64,!!!not-base64!!!")
	assert.Error(t, err)
}
