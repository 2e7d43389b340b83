package participle

import (
	"regexp"
	"unicode/utf8"
)

// specialChars 标点符号、符号与分隔符
var specialChars = regexp.MustCompile(`^[\p{P}\p{S}\p{Z}\s]+$`)

// IsSpecialChar 判断字符串是否全部由特殊符号组成
func IsSpecialChar(s string) bool {
	// 检查是否为空字符串
	if s == "" {
		return false
	}
	return specialChars.MatchString(s)
}

// isLearnable 判断分词结果能否作为新词: 至少两个字符且不全是特殊符号
func isLearnable(s string) bool {
	return utf8.RuneCountInString(s) > 1 && !IsSpecialChar(s)
}
