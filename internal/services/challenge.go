package services

import (
	"crypto/rand"
	"math/big"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// challengeAlphabet excludes visually ambiguous characters (I, O, 0, 1).
const challengeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

type challengeEntry struct {
	Text      string
	ExpiresAt time.Time
}

// ChallengeService issues and verifies single-use login captcha codes.
type ChallengeService struct {
	mu      sync.Mutex
	entries map[string]challengeEntry
	length  int
	ttl     time.Duration
}

func NewChallengeService(length int, ttl time.Duration) *ChallengeService {
	if length <= 0 {
		length = 6
	}
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &ChallengeService{
		entries: make(map[string]challengeEntry),
		length:  length,
		ttl:     ttl,
	}
}

type ChallengeResponse struct {
	ChallengeID string `json:"challenge_id"`
	Text        string `json:"text"`
}

// Issue generates a fresh challenge and returns its ID and text.
func (s *ChallengeService) Issue() (*ChallengeResponse, error) {
	text, err := randomChallengeText(s.length)
	if err != nil {
		return nil, err
	}

	id := uuid.New().String()

	s.mu.Lock()
	s.entries[id] = challengeEntry{Text: text, ExpiresAt: time.Now().Add(s.ttl)}
	s.mu.Unlock()

	return &ChallengeResponse{ChallengeID: id, Text: text}, nil
}

// Verify consumes the challenge. A challenge is valid exactly once;
// both success and failure remove it so answers cannot be brute-forced
// against the same code. Matching is case-insensitive.
func (s *ChallengeService) Verify(id, answer string) bool {
	s.mu.Lock()
	entry, ok := s.entries[id]
	if ok {
		delete(s.entries, id)
	}
	s.mu.Unlock()

	if !ok || time.Now().After(entry.ExpiresAt) {
		return false
	}
	return strings.EqualFold(entry.Text, answer)
}

// PurgeExpired drops expired challenges, called periodically by the scheduler.
func (s *ChallengeService) PurgeExpired() int {
	now := time.Now()
	removed := 0

	s.mu.Lock()
	for id, entry := range s.entries {
		if now.After(entry.ExpiresAt) {
			delete(s.entries, id)
			removed++
		}
	}
	s.mu.Unlock()

	return removed
}

func randomChallengeText(length int) (string, error) {
	var b strings.Builder
	max := big.NewInt(int64(len(challengeAlphabet)))
	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		b.WriteByte(challengeAlphabet[n.Int64()])
	}
	return b.String(), nil
}
