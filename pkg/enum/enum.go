// Package enum 提供按名称缩写解析的枚举注册表
//
// 注册表在启动时显式构建一次, 再传给需要解析枚举名的组件.
package enum

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/miajio/abbrev/pkg/prefixmap"
	"github.com/spf13/pflag"
)

// ErrDuplicateName 枚举名重复
var ErrDuplicateName = prefixmap.ErrDuplicateValue

// ErrDuplicateEnumValue 同一个枚举值注册了多个名称
var ErrDuplicateEnumValue = errors.New("duplicate enum value")

// Value 枚举名与值
type Value[T comparable] struct {
	Name  string
	Value T
}

// Enum 枚举注册表
type Enum[T comparable] struct {
	name   string
	values []Value[T]
	names  map[T]string
	lookup *prefixmap.Trie[T]
}

// New 创建枚举注册表, name 用于错误信息与命令行参数类型
func New[T comparable](name string, values ...Value[T]) (*Enum[T], error) {
	e := &Enum[T]{
		name:   name,
		values: append([]Value[T](nil), values...),
		names:  make(map[T]string, len(values)),
		lookup: prefixmap.NewTrie[T](),
	}
	for _, v := range values {
		if _, ok := e.names[v.Value]; ok {
			return nil, fmt.Errorf("%s %q: %w", name, v.Name, ErrDuplicateEnumValue)
		}
		if err := e.lookup.Insert(v.Name, v.Value); err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		e.names[v.Value] = v.Name
	}
	return e, nil
}

// Must 同 New, 出错时 panic, 用于静态枚举表
func Must[T comparable](e *Enum[T], err error) *Enum[T] {
	if err != nil {
		panic(err)
	}
	return e
}

// TypeName 枚举类型名称
func (e *Enum[T]) TypeName() string { return e.name }

// Parse 按名称或名称缩写解析枚举值
func (e *Enum[T]) Parse(s string) (T, error) {
	v, err := e.lookup.At(s)
	if err != nil {
		return v, fmt.Errorf("invalid %s %q: %w", e.name, s, err)
	}
	return v, nil
}

// Scan 从输入读取一个以空白分隔的单词并解析
// 单词后的空白字符留在 r 中, 可以继续读取下一个单词.
func (e *Enum[T]) Scan(r io.RuneScanner) (T, error) {
	var zero T
	word, err := readWord(r)
	if err != nil {
		return zero, err
	}
	return e.Parse(word)
}

// readWord 跳过前导空白后读取一个单词
func readWord(r io.RuneScanner) (string, error) {
	var sb strings.Builder
	for {
		c, _, err := r.ReadRune()
		if errors.Is(err, io.EOF) {
			if sb.Len() == 0 {
				return "", io.ErrUnexpectedEOF
			}
			return sb.String(), nil
		}
		if err != nil {
			return "", err
		}
		if unicode.IsSpace(c) {
			if sb.Len() == 0 {
				continue
			}
			return sb.String(), r.UnreadRune()
		}
		sb.WriteRune(c)
	}
}

// Name 返回枚举值的名称
func (e *Enum[T]) Name(v T) (string, bool) {
	name, ok := e.names[v]
	return name, ok
}

// Format 返回枚举值的名称, 未注册的值格式化为 name(v)
func (e *Enum[T]) Format(v T) string {
	if name, ok := e.names[v]; ok {
		return name
	}
	return fmt.Sprintf("%s(%v)", e.name, v)
}

// Names 全部名称, 按字典序
func (e *Enum[T]) Names() []string { return e.lookup.Keys() }

// Values 全部枚举值, 按注册顺序
func (e *Enum[T]) Values() []T {
	out := make([]T, len(e.values))
	for i, v := range e.values {
		out[i] = v.Value
	}
	return out
}

// Var 返回绑定到 p 的命令行参数, 参数值可使用缩写
func (e *Enum[T]) Var(p *T) pflag.Value {
	return &flagValue[T]{enum: e, p: p}
}

type flagValue[T comparable] struct {
	enum *Enum[T]
	p    *T
}

func (f *flagValue[T]) String() string {
	if f.p == nil {
		return ""
	}
	return f.enum.Format(*f.p)
}

func (f *flagValue[T]) Set(s string) error {
	v, err := f.enum.Parse(s)
	if err != nil {
		return err
	}
	*f.p = v
	return nil
}

func (f *flagValue[T]) Type() string { return f.enum.name }
