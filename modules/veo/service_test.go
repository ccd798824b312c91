package veo

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"photobooth-ai-server/modules/common/config"
	"photobooth-ai-server/modules/common/payload"
)

// stubTokenSource - 토큰 교환 없이 고정 토큰 반환
type stubTokenSource struct {
	token string
}

func (s *stubTokenSource) Token(ctx context.Context) (string, error) {
	return s.token, nil
}

func loadVeoConfig(t *testing.T) {
	t.Helper()
	t.Setenv("GEMINI_API_KEY", "test-key")
	t.Setenv("GCP_PROJECT_ID", "test-project")
	t.Setenv("GCP_CLIENT_EMAIL", "svc@test-project.iam.gserviceaccount.com")
	t.Setenv("GCP_PRIVATE_KEY", "pem")
	_, err := config.LoadConfig()
	require.NoError(t, err)
}

// newStubService - httptest 서버를 predict 백엔드로 쓰는 서비스
func newStubService(srv *httptest.Server) *Service {
	return &Service{
		tokenSource: &stubTokenSource{token: "test-token"},
		client:      srv.Client(),
		baseURL:     srv.URL,
	}
}

func TestGenerateVideoKnownResponseShapes(t *testing.T) {
	loadVeoConfig(t)

	tests := []struct {
		name string
		body string
	}{
		{"bare string prediction", `{"predictions":["dmlkZW8="]}`},
		{"top-level bytes", `{"predictions":[{"bytesBase64Encoded":"dmlkZW8="}]}`},
		{"nested video bytes", `{"predictions":[{"video":{"bytesBase64Encoded":"dmlkZW8="}}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			videoBase64, err := newStubService(srv).GenerateVideo(context.Background(), &VideoRequest{
				Image:  "aGk=",
				Prompt: "wave at the camera",
			})
			require.NoError(t, err)
			assert.Equal(t, "dmlkZW8=", videoBase64)
		})
	}
}

func TestGenerateVideoRequestShape(t *testing.T) {
	loadVeoConfig(t)

	var gotAuth, gotPath string
	var gotBody predictRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Write([]byte(`{"predictions":["dmlkZW8="]}`))
	}))
	defer srv.Close()

	_, err := newStubService(srv).GenerateVideo(context.Background(), &VideoRequest{
		Image:       "aGk=",
		Prompt:      "wave",
		AspectRatio: "9:16",
	})
	require.NoError(t, err)

	assert.Equal(t, "Bearer test-token", gotAuth)
	assert.Equal(t,
		"/v1/projects/test-project/locations/us-central1/publishers/google/models/veo-2.0-generate-001:predict",
		gotPath)

	require.Len(t, gotBody.Instances, 1)
	assert.Equal(t, "wave", gotBody.Instances[0].Prompt)
	require.NotNil(t, gotBody.Instances[0].Image)
	assert.Equal(t, "aGk=", gotBody.Instances[0].Image.BytesBase64Encoded)
	assert.Equal(t, "image/png", gotBody.Instances[0].Image.MimeType)
	assert.Equal(t, "9:16", gotBody.Parameters.AspectRatio)
	assert.Equal(t, 1, gotBody.Parameters.SampleCount)
}

func TestGenerateVideoDefaultsAspectRatio(t *testing.T) {
	loadVeoConfig(t)

	var gotBody predictRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Write([]byte(`{"predictions":["dmlkZW8="]}`))
	}))
	defer srv.Close()

	_, err := newStubService(srv).GenerateVideo(context.Background(), &VideoRequest{
		Image:  "aGk=",
		Prompt: "wave",
	})
	require.NoError(t, err)
	assert.Equal(t, "16:9", gotBody.Parameters.AspectRatio)
}

func TestGenerateVideoUpstreamErrorStatus(t *testing.T) {
	loadVeoConfig(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte("quota exhausted"))
	}))
	defer srv.Close()

	_, err := newStubService(srv).GenerateVideo(context.Background(), &VideoRequest{
		Image:  "aGk=",
		Prompt: "wave",
	})
	require.Error(t, err)

	// upstream 메시지가 그대로 실려 올라와야 한다
	assert.Contains(t, err.Error(), "status 429")
	assert.Contains(t, err.Error(), "quota exhausted")
}

func TestGenerateVideoEmbeddedErrorBody(t *testing.T) {
	loadVeoConfig(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"error":{"code":3,"message":"image too large"}}`))
	}))
	defer srv.Close()

	_, err := newStubService(srv).GenerateVideo(context.Background(), &VideoRequest{
		Image:  "aGk=",
		Prompt: "wave",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "image too large")
}

func TestGenerateVideoUnrecognizedShape(t *testing.T) {
	loadVeoConfig(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"predictions":[{"gcsUri":"gs://bucket/video.mp4"}]}`))
	}))
	defer srv.Close()

	_, err := newStubService(srv).GenerateVideo(context.Background(), &VideoRequest{
		Image:  "aGk=",
		Prompt: "wave",
	})
	assert.ErrorIs(t, err, payload.ErrNoData)
}
