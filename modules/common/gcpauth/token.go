package gcpauth

import (
	"context"
	"fmt"
	"log"

	"golang.org/x/oauth2/google"
	"golang.org/x/oauth2/jwt"
)

const cloudPlatformScope = "https://www.googleapis.com/auth/cloud-platform"

// TokenSource - Vertex AI 호출용 bearer token 발급 인터페이스
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// ServiceAccountTokenSource - 서비스 계정 (client email + private key) 기반 토큰 교환
type ServiceAccountTokenSource struct {
	conf *jwt.Config
}

// NewServiceAccountTokenSource - 환경변수로 전달된 서비스 계정 정보로 생성
func NewServiceAccountTokenSource(clientEmail, privateKey string) (*ServiceAccountTokenSource, error) {
	if clientEmail == "" || privateKey == "" {
		return nil, fmt.Errorf("missing service account credentials")
	}

	conf := &jwt.Config{
		Email:      clientEmail,
		PrivateKey: []byte(privateKey),
		Scopes:     []string{cloudPlatformScope},
		TokenURL:   google.JWTTokenURL,
	}

	log.Printf("✅ [GCPAuth] Token source initialized for %s", clientEmail)
	return &ServiceAccountTokenSource{conf: conf}, nil
}

// Token - JWT를 OAuth2 access token으로 교환
func (s *ServiceAccountTokenSource) Token(ctx context.Context) (string, error) {
	tok, err := s.conf.TokenSource(ctx).Token()
	if err != nil {
		return "", fmt.Errorf("failed to exchange service account credentials: %w", err)
	}
	if !tok.Valid() {
		return "", fmt.Errorf("received invalid access token")
	}
	return tok.AccessToken, nil
}
