package app

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/bhaviksharmawork/Quizzer/internal/domain"
)

// ValidateDraft checks the structural shape of an authored quiz before it is
// persisted: a title, at least one question, and no blank prompts or answers.
func ValidateDraft(draft domain.QuizDraft) *domain.ValidationError {
	if strings.TrimSpace(draft.Title) == "" {
		return &domain.ValidationError{Message: "quiz title is required"}
	}
	if len(draft.Questions) == 0 {
		return &domain.ValidationError{Message: "quiz must have at least one question"}
	}
	for i, q := range draft.Questions {
		if strings.TrimSpace(q.Question) == "" {
			return &domain.ValidationError{Message: fmt.Sprintf("question %d is empty", i+1)}
		}
		if len(q.Answers) < 2 {
			return &domain.ValidationError{Message: fmt.Sprintf("question %d needs at least two answers", i+1)}
		}
		for j, a := range q.Answers {
			if strings.TrimSpace(a) == "" {
				return &domain.ValidationError{Message: fmt.Sprintf("answer %d in question %d is empty", j+1, i+1)}
			}
		}
		if q.CorrectIndex < 0 || q.CorrectIndex >= len(q.Answers) {
			return &domain.ValidationError{Message: fmt.Sprintf("question %d has no valid correct answer", i+1)}
		}
	}
	return nil
}

// CanonicalQuiz transforms a validated draft into the persisted quiz shape:
// question ids are 1-based positions, options get letter labels by position,
// and the chosen index maps to its label.
func CanonicalQuiz(roomID string, draft domain.QuizDraft) domain.Quiz {
	questions := make([]domain.Question, len(draft.Questions))
	for i, q := range draft.Questions {
		options := make([]domain.Option, len(q.Answers))
		for j, a := range q.Answers {
			options[j] = domain.Option{ID: optionLabel(j), Text: a}
		}
		timeLimit := q.TimeLimit
		if timeLimit == 0 {
			timeLimit = draft.TimeLimit
		}
		questions[i] = domain.Question{
			ID:            strconv.Itoa(i + 1),
			Text:          q.Question,
			Options:       options,
			CorrectAnswer: optionLabel(q.CorrectIndex),
			TimeLimit:     timeLimit,
		}
	}
	return domain.Quiz{
		ID:         roomID,
		Title:      draft.Title,
		Category:   draft.Category,
		Difficulty: draft.Difficulty,
		TimeLimit:  draft.TimeLimit,
		Questions:  questions,
	}
}

// optionLabel yields "A".."Z", then "AA", "AB", ... for larger option sets.
func optionLabel(index int) string {
	label := ""
	for index >= 0 {
		label = string(rune('A'+index%26)) + label
		index = index/26 - 1
	}
	return label
}
