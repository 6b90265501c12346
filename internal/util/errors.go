package util

import (
	"errors"
	"sort"
	"strings"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUsernameTaken      = errors.New("username already exists, please choose a different one")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrPermissionDenied   = errors.New("permission denied")
	ErrNoSearchResults    = errors.New("no users found matching your search")
	ErrInvalidToken       = errors.New("token is not valid")
	ErrTokenRevoked       = errors.New("token has been revoked")

	ErrSelfTarget       = errors.New("you cannot send a dating request to yourself")
	ErrRequestNotFound  = errors.New("dating request not found")
	ErrDuplicatePending = errors.New("a pending request already exists with this user")
	ErrAlreadyMatched   = errors.New("you are already matched with this user")
	ErrInvalidState     = errors.New("this request is no longer pending")
	ErrNoActiveMatch    = errors.New("no active match found with this user")
	ErrNotMatched       = errors.New("you are not matched with this user")

	ErrEmptyText       = errors.New("message text cannot be empty")
	ErrMessageNotFound = errors.New("message not found")
	ErrAlreadyRead     = errors.New("message already marked as read")

	ErrNoFile          = errors.New("no image file uploaded")
	ErrFileTooLarge    = errors.New("image file is too large")
	ErrUnsupportedType = errors.New("invalid file type, only image files are allowed")
	ErrUpstream        = errors.New("image upload failed")
)

// ValidationError 写入前的字段校验错误，Fields 为 字段名 -> 错误信息
type ValidationError struct {
	Fields map[string]string
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: message}}
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	msgs := make([]string, 0, len(keys))
	for _, k := range keys {
		msgs = append(msgs, e.Fields[k])
	}
	return strings.Join(msgs, ", ")
}
