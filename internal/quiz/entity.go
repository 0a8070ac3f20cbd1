package quiz

import (
	"errors"
	"fmt"

	"github.com/saulo-duarte/quizgate-lambda/internal/assembly"
	"github.com/saulo-duarte/quizgate-lambda/internal/question"
	"github.com/saulo-duarte/quizgate-lambda/internal/session"
)

var (
	ErrSessionNotFound = session.ErrSessionNotFound
	ErrSessionExpired  = session.ErrSessionExpired
	ErrStoreFailure    = session.ErrStoreFailure
	ErrInvalidParams   = session.ErrInvalidParams
	ErrAssemblyFailed  = errors.New("quiz assembly failed")
)

// AssemblyFailedError wraps the assembler's insufficient-questions error.
type AssemblyFailedError struct {
	Found    int
	Required int
	Err      error
}

func (e *AssemblyFailedError) Error() string {
	return fmt.Sprintf("quiz assembly failed: found %d, required %d", e.Found, e.Required)
}

func (e *AssemblyFailedError) Is(target error) bool {
	return target == ErrAssemblyFailed
}

func (e *AssemblyFailedError) Unwrap() error {
	return e.Err
}

func newAssemblyFailed(ie *assembly.InsufficientQuestionsError) *AssemblyFailedError {
	return &AssemblyFailedError{Found: ie.Found, Required: ie.Required, Err: ie}
}

// ResolvedQuiz is a redeemed session: the questions plus the parameters the
// session was started with.
type ResolvedQuiz struct {
	Questions []question.Question `json:"questions"`
	Context   session.Params      `json:"context"`
}
