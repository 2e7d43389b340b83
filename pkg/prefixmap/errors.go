package prefixmap

import (
	"errors"
	"fmt"
)

var (
	// ErrValueNotFound 查询串不是任何已存键的前缀
	ErrValueNotFound = errors.New("value not found")
	// ErrAmbiguousValue 查询串是两个及以上已存键的公共前缀
	ErrAmbiguousValue = errors.New("ambiguous value")
	// ErrDuplicateValue 插入的键已存在
	ErrDuplicateValue = errors.New("duplicate value")
)

// Error 前缀表操作错误
// Err 始终为上面三个哨兵错误之一
type Error struct {
	Op  string // insert 或 at
	Key string // 插入的键或查询串
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("prefixmap: %s %q: %v", e.Op, e.Key, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

func notFound(query string) error {
	return &Error{Op: "at", Key: query, Err: ErrValueNotFound}
}

func ambiguous(query string) error {
	return &Error{Op: "at", Key: query, Err: ErrAmbiguousValue}
}

func duplicate(key string) error {
	return &Error{Op: "insert", Key: key, Err: ErrDuplicateValue}
}

// IsNotFound 判断是否为未找到错误
func IsNotFound(err error) bool { return errors.Is(err, ErrValueNotFound) }

// IsAmbiguous 判断是否为歧义错误
func IsAmbiguous(err error) bool { return errors.Is(err, ErrAmbiguousValue) }

// IsDuplicate 判断是否为重复插入错误
func IsDuplicate(err error) bool { return errors.Is(err, ErrDuplicateValue) }
