package assembly

import (
	"errors"
	"fmt"
)

var ErrInsufficientQuestions = errors.New("insufficient questions")

// InsufficientQuestionsError reports a composite quiz that could not be
// filled. No partial list is ever returned alongside it.
type InsufficientQuestionsError struct {
	Found    int
	Required int
}

func (e *InsufficientQuestionsError) Error() string {
	return fmt.Sprintf("insufficient questions: found %d, required %d", e.Found, e.Required)
}

func (e *InsufficientQuestionsError) Is(target error) bool {
	return target == ErrInsufficientQuestions
}
