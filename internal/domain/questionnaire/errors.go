package questionnaire

import "errors"

var (
	ErrNotFound     = errors.New("questionnaire not found")
	ErrDuplicateSet = errors.New("questionnaire with the same question set already exists")
	ErrNoQuestions  = errors.New("questionnaire requires at least one question")
)
