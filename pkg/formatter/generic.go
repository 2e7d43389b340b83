package formatter

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/miajio/abbrev/pkg/enum"
)

// Alignment 文本对齐方式
type Alignment int

const (
	AlignLeft Alignment = iota
	AlignRight
	AlignCenter
)

// NewAlignments 创建对齐方式枚举表
func NewAlignments() (*enum.Enum[Alignment], error) {
	return enum.New("text alignment",
		enum.Value[Alignment]{Name: "left", Value: AlignLeft},
		enum.Value[Alignment]{Name: "right", Value: AlignRight},
		enum.Value[Alignment]{Name: "center", Value: AlignCenter},
	)
}

// Defaults 通用格式化动作的默认参数
type Defaults struct {
	Alignment     Alignment
	Padding       rune
	MinimumLength int
}

// DefaultDefaults 右对齐, 空格填充, 无最小长度
func DefaultDefaults() Defaults {
	return Defaults{Alignment: AlignRight, Padding: ' '}
}

// GenericFormat 返回输出 value 的动作
// 参数依次为: 最小长度, 填充字符, 对齐方式 (可缩写); 空参数使用默认值.
func GenericFormat(value any, alignments *enum.Enum[Alignment], defaults Defaults) Action {
	return ActionFunc(func(args []string) (string, error) {
		opts := defaults
		if len(args) > 0 && args[0] != "" {
			n, err := strconv.Atoi(args[0])
			if err != nil || n < 0 {
				return "", fmt.Errorf("invalid minimum length %q", args[0])
			}
			opts.MinimumLength = n
		}
		if len(args) > 1 && args[1] != "" {
			if utf8.RuneCountInString(args[1]) != 1 {
				return "", fmt.Errorf("invalid padding %q", args[1])
			}
			opts.Padding, _ = utf8.DecodeRuneInString(args[1])
		}
		if len(args) > 2 && args[2] != "" {
			a, err := alignments.Parse(args[2])
			if err != nil {
				return "", err
			}
			opts.Alignment = a
		}
		return Pad(fmt.Sprint(value), opts), nil
	})
}

// Pad 按对齐方式填充到最小长度, 居中时多出的一个填充字符放在右侧
func Pad(s string, opts Defaults) string {
	length := utf8.RuneCountInString(s)
	if length >= opts.MinimumLength {
		return s
	}
	diff := opts.MinimumLength - length
	var before, after int
	switch opts.Alignment {
	case AlignLeft:
		after = diff
	case AlignCenter:
		before = diff / 2
		after = diff/2 + diff%2
	default:
		before = diff
	}
	pad := string(opts.Padding)
	return strings.Repeat(pad, before) + s + strings.Repeat(pad, after)
}
