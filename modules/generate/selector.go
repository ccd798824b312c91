package generate

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"log"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// SubjectCounter - 사진 속 인원 수 분류기 (Gemini vision 호출 1회)
type SubjectCounter interface {
	CountSubjects(ctx context.Context, imageBase64 string) (int, error)
}

const subjectCacheTTL = 10 * time.Minute

// Selector - 저장된 설정 또는 subject-count 휴리스틱으로 provider 결정
type Selector struct {
	counter SubjectCounter
	cache   *redis.Client // nil이면 캐시 없이 동작
}

func NewSelector(counter SubjectCounter, cache *redis.Client) *Selector {
	return &Selector{
		counter: counter,
		cache:   cache,
	}
}

// Resolve - auto-detect를 구체적인 provider로 해석
// 명시적 선택은 그대로 통과시킨다
func (s *Selector) Resolve(ctx context.Context, imageBase64 string, settings Settings) Provider {
	if settings.SelectedModel != ProviderAutoDetect {
		log.Printf("🎯 [Selector] Explicit provider: %s", settings.SelectedModel)
		return settings.SelectedModel
	}

	count := s.subjectCount(ctx, imageBase64)
	if count > 1 {
		log.Printf("🎯 [Selector] %d subjects → %s", count, ProviderGeminiPro)
		return ProviderGeminiPro
	}

	log.Printf("🎯 [Selector] %d subject → %s", count, ProviderGeminiFlash)
	return ProviderGeminiFlash
}

// subjectCount - 인원 수 조회. detector 실패는 1명으로 fail-open (저가 tier 쪽으로)
func (s *Selector) subjectCount(ctx context.Context, imageBase64 string) int {
	cacheKey := "subjects:" + imageDigest(imageBase64)

	// 캐시 조회 (에러는 무시)
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, cacheKey).Result(); err == nil {
			if count, err := strconv.Atoi(cached); err == nil {
				log.Printf("⚡ [Selector] Subject count cache hit: %d", count)
				return count
			}
		}
	}

	count, err := s.counter.CountSubjects(ctx, imageBase64)
	if err != nil {
		log.Printf("⚠️ [Selector] Subject detector failed, defaulting to 1: %v", err)
		return 1
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, cacheKey, strconv.Itoa(count), subjectCacheTTL).Err(); err != nil {
			log.Printf("⚠️ [Selector] Failed to cache subject count: %v", err)
		}
	}

	return count
}

// imageDigest - 이미지 base64의 SHA-256 (캐시 키용)
func imageDigest(imageBase64 string) string {
	sum := sha256.Sum256([]byte(imageBase64))
	return hex.EncodeToString(sum[:])
}
