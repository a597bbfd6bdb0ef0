package dto

import (
	"errors"
	"strings"
)

// Validation errors
var (
	ErrEmptyQuestion   = errors.New("question cannot be empty")
	ErrQuestionTooLong = errors.New("question exceeds maximum length (2048)")
)

// MaxQuestionLength bounds question size to prevent abuse
const MaxQuestionLength = 2048

// AnswerRequest represents a request to resolve a question
type AnswerRequest struct {
	Question string `json:"question" binding:"required"`
}

// Validate performs validation on AnswerRequest
func (r *AnswerRequest) Validate() error {
	if strings.TrimSpace(r.Question) == "" {
		return ErrEmptyQuestion
	}
	if len(r.Question) > MaxQuestionLength {
		return ErrQuestionTooLong
	}
	return nil
}

// AnswerResponse represents a resolved question
type AnswerResponse struct {
	Answer    string   `json:"answer"`
	Intent    string   `json:"intent"`
	Source    string   `json:"source"`
	Empty     bool     `json:"empty"`
	Degraded  bool     `json:"degraded"`
	Warnings  []string `json:"warnings,omitempty"`
	RequestID string   `json:"request_id,omitempty"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Code    int    `json:"code,omitempty"`
}
