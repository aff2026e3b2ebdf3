package app_test

import (
	"testing"

	"github.com/bhaviksharmawork/Quizzer/internal/app"
	"github.com/bhaviksharmawork/Quizzer/internal/domain"
)

func TestValidateDraft(t *testing.T) {
	valid := domain.QuizDraft{
		Title: "Capitals",
		Questions: []domain.QuestionDraft{
			{Question: "Capital of France?", Answers: []string{"Paris", "London"}, CorrectIndex: 0},
		},
	}
	if err := app.ValidateDraft(valid); err != nil {
		t.Fatalf("expected valid draft, got %v", err)
	}

	cases := []struct {
		name  string
		draft domain.QuizDraft
	}{
		{"missing title", domain.QuizDraft{Questions: valid.Questions}},
		{"no questions", domain.QuizDraft{Title: "Capitals"}},
		{"blank question", domain.QuizDraft{Title: "Capitals", Questions: []domain.QuestionDraft{
			{Question: "  ", Answers: []string{"a", "b"}},
		}}},
		{"blank answer", domain.QuizDraft{Title: "Capitals", Questions: []domain.QuestionDraft{
			{Question: "Q?", Answers: []string{"a", ""}},
		}}},
		{"single answer", domain.QuizDraft{Title: "Capitals", Questions: []domain.QuestionDraft{
			{Question: "Q?", Answers: []string{"a"}},
		}}},
		{"correct index out of range", domain.QuizDraft{Title: "Capitals", Questions: []domain.QuestionDraft{
			{Question: "Q?", Answers: []string{"a", "b"}, CorrectIndex: 2},
		}}},
	}
	for _, tc := range cases {
		if err := app.ValidateDraft(tc.draft); err == nil {
			t.Errorf("%s: expected validation error", tc.name)
		}
	}
}

func TestCanonicalQuizAssignsLabels(t *testing.T) {
	quiz := app.CanonicalQuiz("111111", domain.QuizDraft{
		Title:     "Capitals",
		TimeLimit: 20,
		Questions: []domain.QuestionDraft{
			{Question: "Capital of France?", Answers: []string{"Paris", "London", "Rome", "Berlin"}, CorrectIndex: 0},
			{Question: "Capital of Italy?", Answers: []string{"Madrid", "Rome"}, CorrectIndex: 1, TimeLimit: 30},
		},
	})

	if quiz.ID != "111111" {
		t.Fatalf("expected quiz id to match room id, got %s", quiz.ID)
	}
	q1 := quiz.Questions[0]
	if q1.ID != "1" || q1.Options[0].ID != "A" || q1.Options[3].ID != "D" {
		t.Fatalf("unexpected labels: %+v", q1)
	}
	if q1.Options[0].Text != "Paris" || q1.CorrectAnswer != "A" {
		t.Fatalf("expected Paris labelled A as correct, got %+v", q1)
	}
	if q1.TimeLimit != 20 {
		t.Fatalf("expected quiz default time limit 20, got %d", q1.TimeLimit)
	}

	q2 := quiz.Questions[1]
	if q2.ID != "2" || q2.CorrectAnswer != "B" || q2.TimeLimit != 30 {
		t.Fatalf("unexpected second question: %+v", q2)
	}
}
