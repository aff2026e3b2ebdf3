package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/bhaviksharmawork/Quizzer/internal/domain"
)

func TestQuizStoreGetAndUpsert(t *testing.T) {
	ctx := context.Background()
	store := NewQuizStore(nil)

	if _, err := store.Get(ctx, "111111"); !errors.Is(err, domain.ErrQuizNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	if err := store.Upsert(ctx, domain.Quiz{ID: "111111", Title: "Capitals"}); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	quiz, err := store.Get(ctx, "111111")
	if err != nil || quiz.Title != "Capitals" {
		t.Fatalf("expected stored quiz, got %+v err=%v", quiz, err)
	}

	if err := store.Upsert(ctx, domain.Quiz{ID: "111111", Title: "Updated"}); err != nil {
		t.Fatalf("upsert overwrite: %v", err)
	}
	quiz, _ = store.Get(ctx, "111111")
	if quiz.Title != "Updated" {
		t.Fatalf("expected overwrite, got %+v", quiz)
	}
}

func TestQuizStoreGetAllSortedByID(t *testing.T) {
	store := NewQuizStore(map[string]domain.Quiz{
		"333333": {ID: "333333"},
		"111111": {ID: "111111"},
		"222222": {ID: "222222"},
	})

	quizzes, err := store.GetAll(context.Background())
	if err != nil {
		t.Fatalf("get all: %v", err)
	}
	if len(quizzes) != 3 || quizzes[0].ID != "111111" || quizzes[2].ID != "333333" {
		t.Fatalf("expected id-sorted dump, got %+v", quizzes)
	}
}
