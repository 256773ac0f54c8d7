package services

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"gestionale/server/internal/utils"
)

// NumberingService generates human-readable identifiers (offer numbers,
// order production numbers). Values are unique at the moment of
// generation on a best-effort basis; callers still validate against the
// store, whose unique index is the real guard.
type NumberingService interface {
	// GenerateNext returns the next number for kind ("order" or
	// "offer"). subVersion and suffix are optional decorations.
	GenerateNext(kind, subVersion, suffix string) (string, error)
}

var numberingPrefixes = map[string]string{
	"order": "ORD",
	"offer": "OFF",
}

var digitsRe = regexp.MustCompile(`\d+`)

// RedisNumberingService issues sequential numbers from per-kind-per-year
// Redis counters (ORD-2026-000123). When Redis is unavailable it falls
// back to the digits of a fresh UUID, which stays collision-free enough
// for the store-side validation to catch the rest.
type RedisNumberingService struct {
	cache *utils.RedisClient
}

func NewRedisNumberingService(cache *utils.RedisClient) *RedisNumberingService {
	return &RedisNumberingService{cache: cache}
}

func (s *RedisNumberingService) GenerateNext(kind, subVersion, suffix string) (string, error) {
	prefix, ok := numberingPrefixes[kind]
	if !ok {
		return "", fmt.Errorf("unknown numbering kind: %s", kind)
	}
	if subVersion != "" {
		prefix = prefix + "-" + subVersion
	}

	year := time.Now().UTC().Year()

	var body string
	seq, err := s.cache.Increment(fmt.Sprintf("numbering:%s:%d", kind, year))
	if err == nil {
		body = fmt.Sprintf("%s-%d-%06d", prefix, year, seq)
	} else {
		// Fallback: last six digits of a fresh UUID.
		digits := strings.Join(digitsRe.FindAllString(uuid.New().String(), -1), "")
		if len(digits) > 6 {
			digits = digits[len(digits)-6:]
		}
		body = fmt.Sprintf("%s-%d-%s", prefix, year, digits)
	}

	if suffix != "" {
		body = body + "-" + suffix
	}
	return body, nil
}
