package repository

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

var (
	// ErrDuplicateUsername 用户名唯一索引冲突
	ErrDuplicateUsername = errors.New("duplicate username")
	// ErrActiveRequestExists pair_key 唯一索引冲突，该对用户已有活跃请求
	ErrActiveRequestExists = errors.New("active request already exists for pair")
)

// isDuplicateKey 兼容 TranslateError 与未翻译的驱动错误
func isDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "Duplicate entry") ||
		strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key value")
}

// IsNotFound 记录不存在
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
