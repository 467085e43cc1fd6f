package util

import (
	"time"
)

// DayString 返回日期键，格式 20060102，用于每日限额记录
func DayString(t time.Time) string {
	return t.Format("20060102")
}

// TruncatePreview 按字符截断消息预览，避免超出会话表预览列宽
func TruncatePreview(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}

// PtrUint64 用于将 uint64 转换为 *uint64
func PtrUint64(i uint64) *uint64 {
	return &i
}
