package cache_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Chris-topher0910/quiz-code-scanner-score/internal/cache"
	"github.com/Chris-topher0910/quiz-code-scanner-score/internal/domain"
	"github.com/Chris-topher0910/quiz-code-scanner-score/internal/infra/memory"
)

func TestPersistKeepsEverySession(t *testing.T) {
	ctx := context.Background()
	kv := memory.NewKVStore()
	results := cache.New(kv)

	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	first := record("alice@example.com", base, 5)
	second := record("alice@example.com", base.Add(time.Hour), 15)
	other := record("bob@example.com", base.Add(30*time.Minute), 10)

	for _, r := range []domain.SessionRecord{first, second, other} {
		if err := results.Persist(ctx, r); err != nil {
			t.Fatalf("persist: %v", err)
		}
	}

	all := results.ListAll(ctx)
	if len(all) != 3 {
		t.Fatalf("expected 3 records, got %d", len(all))
	}
	// Most recent first.
	if all[0].TotalScore != 15 || all[1].User.Email != "bob@example.com" || all[2].TotalScore != 5 {
		t.Fatalf("unexpected order: %+v", all)
	}
}

func TestPersistRecomputesTotal(t *testing.T) {
	ctx := context.Background()
	kv := memory.NewKVStore()
	results := cache.New(kv)

	r := record("alice@example.com", time.Now(), 5)
	r.TotalScore = 999 // drifted counter must be ignored
	if err := results.Persist(ctx, r); err != nil {
		t.Fatalf("persist: %v", err)
	}

	all := results.ListAll(ctx)
	if len(all) != 1 || all[0].TotalScore != 5 {
		t.Fatalf("expected recomputed total 5, got %+v", all)
	}
}

func TestListAllSkipsCorruptEntries(t *testing.T) {
	ctx := context.Background()
	kv := memory.NewKVStore()
	results := cache.New(kv)

	if err := results.Persist(ctx, record("alice@example.com", time.Now(), 5)); err != nil {
		t.Fatalf("persist: %v", err)
	}
	if err := kv.Set(ctx, "userScore_corrupt_123", "{not json"); err != nil {
		t.Fatalf("seed corrupt: %v", err)
	}

	all := results.ListAll(ctx)
	if len(all) != 1 {
		t.Fatalf("expected corrupt entry skipped, got %d records", len(all))
	}
}

func TestLatestScoreFor(t *testing.T) {
	ctx := context.Background()
	kv := memory.NewKVStore()
	results := cache.New(kv)

	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	if err := results.Persist(ctx, record("alice@example.com", base, 5)); err != nil {
		t.Fatalf("persist: %v", err)
	}
	if err := results.Persist(ctx, record("alice@example.com", base.Add(time.Hour), 20)); err != nil {
		t.Fatalf("persist: %v", err)
	}

	latest, ok := results.LatestScoreFor(ctx, "alice@example.com")
	if !ok || latest.TotalScore != 20 {
		t.Fatalf("expected latest score 20, got %+v ok=%v", latest, ok)
	}

	if _, ok := results.LatestScoreFor(ctx, "nobody@example.com"); ok {
		t.Fatalf("expected no record for unknown email")
	}
}

func TestReadFailureDegradesToEmpty(t *testing.T) {
	results := cache.New(failingKV{})
	if all := results.ListAll(context.Background()); len(all) != 0 {
		t.Fatalf("expected empty listing on storage failure, got %d", len(all))
	}
	if _, ok := results.LatestScoreFor(context.Background(), "alice@example.com"); ok {
		t.Fatalf("expected no latest score on storage failure")
	}
}

type failingKV struct{}

func (failingKV) Get(context.Context, string) (string, error) {
	return "", errors.New("storage unavailable")
}

func (failingKV) Set(context.Context, string, string) error {
	return errors.New("quota exceeded")
}

func (failingKV) Keys(context.Context, string) ([]string, error) {
	return nil, errors.New("storage unavailable")
}

func record(email string, ts time.Time, points int) domain.SessionRecord {
	return domain.SessionRecord{
		User: domain.User{Name: "Test", Email: email},
		Results: []domain.AnswerResult{
			{QuestionID: "q1", UserAnswer: 1, CorrectAnswer: 1, Points: points, Correct: true},
		},
		Timestamp: ts,
	}
}
