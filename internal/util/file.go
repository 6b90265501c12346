package util

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"
)

// SniffMimeType 读取前 512 字节检测 MIME 类型，返回的 reader 仍包含完整内容
func SniffMimeType(reader io.Reader) (string, io.Reader, error) {
	br := bufio.NewReaderSize(reader, 512)
	head, err := br.Peek(512)
	if err != nil && err != io.EOF && !errors.Is(err, bufio.ErrBufferFull) {
		return "", nil, err
	}
	return http.DetectContentType(head), br, nil
}

// ValidateMimeType 深度校验文件 MIME 类型，类型不符时返回 ErrUnsupportedType，
// 其余错误来自读取
// allowedTypes: 允许的 MIME 前缀或完整类型，如 "image/"
func ValidateMimeType(reader io.Reader, allowedTypes []string) (string, io.Reader, error) {
	mimeType, rest, err := SniffMimeType(reader)
	if err != nil {
		return "", nil, err
	}

	for _, allowed := range allowedTypes {
		if strings.HasPrefix(mimeType, allowed) || mimeType == allowed {
			return mimeType, rest, nil
		}
	}
	return mimeType, rest, fmt.Errorf("%w: %s", ErrUnsupportedType, mimeType)
}

// IsImage 检测是否为图片
func IsImage(mimeType string) bool {
	return strings.HasPrefix(mimeType, MimeImage)
}

// ImageExtension 返回安全的文件扩展名，未知扩展名按 MIME 推断
func ImageExtension(filename, mimeType string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	for _, allowed := range AllowedImageExtensions {
		if ext == allowed {
			return ext
		}
	}
	switch mimeType {
	case "image/png":
		return ".png"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	case "image/bmp":
		return ".bmp"
	default:
		return ".jpg"
	}
}
