package util

import "errors"

var (
	ErrInvalidOptionCount   = errors.New("number of options must be between 1 and 8")
	ErrChapterExists        = errors.New("chapter already exists")
	ErrChapterNotFound      = errors.New("chapter not found")
	ErrSubjectExists        = errors.New("subject already exists")
	ErrSubjectNotFound      = errors.New("subject not found")
	ErrAttemptNotFound      = errors.New("attempt not found")
	ErrStudentNameRequired  = errors.New("student name is required")
	ErrIncompleteSubmission = errors.New("please answer all questions before submitting")
	ErrAnswerCountMismatch  = errors.New("number of submitted answers must match total questions")
	ErrEmailRegistered      = errors.New("email already registered")
	ErrInvalidCredentials   = errors.New("invalid credentials")
)
