package redis

import (
	"context"
	"crypto/tls"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"photobooth-ai-server/modules/common/config"
)

// 캐시 조회가 생성 요청을 붙잡으면 안 되므로 타임아웃을 짧게 잡는다
const (
	dialTimeout = 5 * time.Second
	opTimeout   = 2 * time.Second
)

// Connect - subject-count 캐시용 Redis 연결 (미설정/연결 실패 시 nil)
// nil이어도 selector는 캐시 없이 동작한다
func Connect(cfg *config.Config) *redis.Client {
	if cfg.RedisHost == "" {
		log.Println("⚠️  [Cache] Redis not configured, subject counts will not be cached")
		return nil
	}

	log.Printf("🔌 [Cache] Connecting subject-count cache: %s", cfg.GetRedisAddr())

	var tlsConfig *tls.Config
	if cfg.RedisUseTLS {
		tlsConfig = &tls.Config{
			MinVersion:         tls.VersionTLS12,
			InsecureSkipVerify: true, // 관리형 Redis의 인증서 체인 문제 회피
		}
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:         cfg.GetRedisAddr(),
		Username:     cfg.RedisUsername,
		Password:     cfg.RedisPassword,
		TLSConfig:    tlsConfig,
		DB:           0,
		DialTimeout:  dialTimeout,
		ReadTimeout:  opTimeout,
		WriteTimeout: opTimeout,
	})

	ctx, cancel := context.WithTimeout(context.Background(), dialTimeout)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Printf("⚠️  [Cache] Redis unreachable, continuing without cache: %v", err)
		return nil
	}

	log.Println("✅ [Cache] Subject-count cache ready")
	return rdb
}
