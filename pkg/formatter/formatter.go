// Package formatter 按动作模板格式化字符串
//
// 模板中 %name:arg1:arg2% 调用名为 name 的动作, 动作名可使用缩写.
package formatter

import (
	"errors"
	"fmt"
	"strings"

	"github.com/miajio/abbrev/pkg/prefixmap"
)

var (
	// ErrUnterminatedAction 动作缺少结束符
	ErrUnterminatedAction = errors.New("unterminated action")
	// ErrUnterminatedEscape 转义符位于末尾
	ErrUnterminatedEscape = errors.New("unterminated escape sequence")
)

// InvalidActionError 动作名未找到或有歧义
type InvalidActionError struct {
	Name string
}

func (e *InvalidActionError) Error() string { return "invalid action: " + e.Name }

// InvalidEscapeError 未知转义字符
type InvalidEscapeError struct {
	Char rune
}

func (e *InvalidEscapeError) Error() string {
	return fmt.Sprintf("invalid escape sequence: %q", e.Char)
}

// Action 格式化动作
type Action interface {
	Apply(args []string) (string, error)
}

// ActionFunc 函数形式的动作
type ActionFunc func(args []string) (string, error)

func (f ActionFunc) Apply(args []string) (string, error) { return f(args) }

// Static 忽略参数返回固定文本的动作
func Static(s string) Action {
	return ActionFunc(func([]string) (string, error) { return s, nil })
}

// DefaultEscapes 默认转义表
func DefaultEscapes() map[rune]string {
	return map[rune]string{
		'a': "\a", 'b': "\b", 'f': "\f", 'n': "\n",
		'r': "\r", 't': "\t", '\\': "\\",
	}
}

// Formatter 字符串格式化器
type Formatter struct {
	actions           prefixmap.Map[Action]
	argumentChar      rune
	argumentSeparator rune
	escapeChar        rune
	escapes           map[rune]string
}

// Option 格式化器选项
type Option func(*Formatter)

// WithArgumentChar 设置动作界定符, 默认 %
func WithArgumentChar(c rune) Option { return func(f *Formatter) { f.argumentChar = c } }

// WithArgumentSeparator 设置参数分隔符, 默认 :
func WithArgumentSeparator(c rune) Option { return func(f *Formatter) { f.argumentSeparator = c } }

// WithEscapeChar 设置转义符, 默认 \
func WithEscapeChar(c rune) Option { return func(f *Formatter) { f.escapeChar = c } }

// WithEscapes 替换转义表
func WithEscapes(escapes map[rune]string) Option { return func(f *Formatter) { f.escapes = escapes } }

// New 创建格式化器
func New(actions prefixmap.Map[Action], opts ...Option) *Formatter {
	f := &Formatter{
		actions:           actions,
		argumentChar:      '%',
		argumentSeparator: ':',
		escapeChar:        '\\',
		escapes:           DefaultEscapes(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Format 格式化模板
func (f *Formatter) Format(input string) (string, error) {
	var sb strings.Builder
	runes := []rune(input)

	for i := 0; i < len(runes); i++ {
		switch c := runes[i]; c {
		case f.argumentChar:
			end := indexRune(runes, i+1, f.argumentChar)
			if end < 0 {
				return "", ErrUnterminatedAction
			}
			if end == i+1 {
				sb.WriteRune(f.argumentChar)
			} else {
				out, err := f.apply(string(runes[i+1 : end]))
				if err != nil {
					return "", err
				}
				sb.WriteString(out)
			}
			i = end
		case f.escapeChar:
			i++
			if i == len(runes) {
				return "", ErrUnterminatedEscape
			}
			s, ok := f.escapes[runes[i]]
			if !ok {
				return "", &InvalidEscapeError{Char: runes[i]}
			}
			sb.WriteString(s)
		default:
			sb.WriteRune(c)
		}
	}
	return sb.String(), nil
}

// apply 解析 name:arg1:arg2 并调用动作
func (f *Formatter) apply(body string) (string, error) {
	parts := strings.Split(body, string(f.argumentSeparator))
	name, args := parts[0], parts[1:]

	it := f.actions.Find(name)
	if !it.Valid() {
		return "", &InvalidActionError{Name: name}
	}
	out, err := it.Value().Apply(args)
	if err != nil {
		return "", fmt.Errorf("action %s: %w", it.Key(), err)
	}
	return out, nil
}

func indexRune(runes []rune, from int, c rune) int {
	for i := from; i < len(runes); i++ {
		if runes[i] == c {
			return i
		}
	}
	return -1
}
