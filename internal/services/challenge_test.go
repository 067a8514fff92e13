package services

import (
	"strings"
	"testing"
	"time"
)

func TestChallengeIssue(t *testing.T) {
	svc := NewChallengeService(6, time.Minute)

	resp, err := svc.Issue()
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}
	if resp.ChallengeID == "" {
		t.Error("challenge ID should not be empty")
	}
	if len(resp.Text) != 6 {
		t.Errorf("challenge text length = %d, expected 6", len(resp.Text))
	}
	for _, c := range resp.Text {
		if !strings.ContainsRune(challengeAlphabet, c) {
			t.Errorf("challenge contains char %q outside alphabet", c)
		}
	}
}

func TestChallengeVerify(t *testing.T) {
	svc := NewChallengeService(6, time.Minute)
	resp, _ := svc.Issue()

	if !svc.Verify(resp.ChallengeID, resp.Text) {
		t.Error("correct answer should verify")
	}
	if svc.Verify(resp.ChallengeID, resp.Text) {
		t.Error("challenge must be single-use")
	}
}

func TestChallengeVerify_CaseInsensitive(t *testing.T) {
	svc := NewChallengeService(6, time.Minute)
	resp, _ := svc.Issue()

	if !svc.Verify(resp.ChallengeID, strings.ToLower(resp.Text)) {
		t.Error("verification should be case-insensitive")
	}
}

func TestChallengeVerify_WrongAnswerConsumes(t *testing.T) {
	svc := NewChallengeService(6, time.Minute)
	resp, _ := svc.Issue()

	if svc.Verify(resp.ChallengeID, "WRONG!") {
		t.Error("wrong answer should not verify")
	}
	// the failed attempt burned the challenge
	if svc.Verify(resp.ChallengeID, resp.Text) {
		t.Error("challenge should be consumed after a failed attempt")
	}
}

func TestChallengeVerify_Unknown(t *testing.T) {
	svc := NewChallengeService(6, time.Minute)
	if svc.Verify("no-such-id", "ABCDEF") {
		t.Error("unknown challenge ID should not verify")
	}
}

func TestChallengeExpiry(t *testing.T) {
	svc := NewChallengeService(6, -time.Second)
	resp, _ := svc.Issue()

	if svc.Verify(resp.ChallengeID, resp.Text) {
		t.Error("expired challenge should not verify")
	}
}

func TestChallengePurgeExpired(t *testing.T) {
	svc := NewChallengeService(6, -time.Second)
	svc.Issue()
	svc.Issue()

	removed := svc.PurgeExpired()
	if removed != 2 {
		t.Errorf("PurgeExpired() = %d, expected 2", removed)
	}
	if again := svc.PurgeExpired(); again != 0 {
		t.Errorf("second purge removed %d, expected 0", again)
	}
}
