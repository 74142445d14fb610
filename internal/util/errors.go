package util

import "errors"

// 领域错误。不存在/越界一律用显式错误表示，禁止以成功路径的字符串代替。
var (
	ErrCourseNotFound     = errors.New("course does not exist")
	ErrCourseNameRequired = errors.New("course name is required")
	ErrPageNotFound       = errors.New("page does not exist")
	ErrPageNumOutOfRange  = errors.New("page number out of range")
	ErrQuizNotFound       = errors.New("quiz does not exist")
	ErrQuizExists         = errors.New("page already has a quiz")
	ErrQuestionNotFound   = errors.New("question does not exist")
	ErrAttemptNotFound    = errors.New("attempt not found")

	ErrUserNotFound        = errors.New("用户不存在")
	ErrUsernameTaken       = errors.New("Username already taken. Please try another.")
	ErrInvalidUserLevel    = errors.New("Invalid user level specified")
	ErrInvalidUserType     = errors.New("Invalid user type provided")
	ErrInvalidPageType     = errors.New("invalid page type")
	ErrInvalidQuestionType = errors.New("invalid question type")
)

// IsNotFound reports whether err is one of the domain not-found errors.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrCourseNotFound) ||
		errors.Is(err, ErrPageNotFound) ||
		errors.Is(err, ErrQuizNotFound) ||
		errors.Is(err, ErrQuestionNotFound) ||
		errors.Is(err, ErrAttemptNotFound) ||
		errors.Is(err, ErrUserNotFound)
}
