package badger

import (
	"bytes"
	"encoding/gob"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/dgraph-io/badger/v4"
	"github.com/miajio/abbrev/pkg/prefixmap"
)

// 键布局: 命名空间 + 分隔符 + 字典键
const nsSeparator = "\x00"

// ErrKeyNotFound 键不存在
var ErrKeyNotFound = badger.ErrKeyNotFound

// errStopScan 提前结束遍历
var errStopScan = errors.New("stop scan")

// BadgerTX 事务函数
type BadgerTX func(tx *badger.Txn) error

// TxSet 事务设置参数操作
func (e *Engine) TxSet(tx BadgerTX) error {
	return e.db.Update(tx)
}

// TxGet 事务获取参数操作
func (e *Engine) TxGet(tx BadgerTX) error {
	return e.db.View(tx)
}

// nsKey 生成命名空间下的存储键
func nsKey(ns, key string) []byte {
	return []byte(ns + nsSeparator + key)
}

// nsPrefix 命名空间前缀
func nsPrefix(ns string) []byte {
	return []byte(ns + nsSeparator)
}

// Put 写入命名空间下的键值
func (e *Engine) Put(ns, key string, value []byte) error {
	return e.TxSet(func(tx *badger.Txn) error {
		return tx.Set(nsKey(ns, key), value)
	})
}

// Get 读取命名空间下的键值, 不存在时返回 ErrKeyNotFound
func (e *Engine) Get(ns, key string) ([]byte, error) {
	var value []byte
	err := e.TxGet(func(tx *badger.Txn) error {
		item, err := tx.Get(nsKey(ns, key))
		if err != nil {
			return err
		}
		value, err = item.ValueCopy(nil)
		return err
	})
	return value, err
}

// Del 删除命名空间下的键
func (e *Engine) Del(ns, key string) error {
	return e.TxSet(func(tx *badger.Txn) error {
		return tx.Delete(nsKey(ns, key))
	})
}

// Exists 判断key是否存在
func (e *Engine) Exists(ns, key string) (bool, error) {
	var exists bool
	err := e.TxGet(func(tx *badger.Txn) error {
		_, err := tx.Get(nsKey(ns, key))
		if err == nil {
			exists = true
			return nil
		}
		if errors.Is(err, badger.ErrKeyNotFound) {
			exists = false
			return nil
		}
		return err
	})
	return exists, err
}

// Keys 获取命名空间下以 prefix 开头的全部键, 按字典序
func (e *Engine) Keys(ns, prefix string) ([]string, error) {
	var keys []string

	err := e.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false // 只获取键，不获取值

		it := txn.NewIterator(opts)
		defer it.Close()

		base := len(nsPrefix(ns))
		seek := nsKey(ns, prefix)
		for it.Seek(seek); it.ValidForPrefix(seek); it.Next() {
			keys = append(keys, string(it.Item().Key()[base:]))
		}
		return nil
	})

	return keys, err
}

// ScanFunc 遍历回调, value 仅在回调内有效
type ScanFunc func(key string, value []byte) error

// Scan 按字典序遍历命名空间下全部键值
func (e *Engine) Scan(ns string, fn ScanFunc) error {
	return e.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = true
		opts.Prefix = nsPrefix(ns)

		it := txn.NewIterator(opts)
		defer it.Close()

		base := len(opts.Prefix)
		for it.Rewind(); it.Valid(); it.Next() {
			item := it.Item()
			key := string(item.Key()[base:])
			if err := item.Value(func(val []byte) error {
				return fn(key, val)
			}); err != nil {
				return err
			}
		}
		return nil
	})
}

// Namespaces 获取全部命名空间
func (e *Engine) Namespaces() ([]string, error) {
	var names []string
	err := e.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); {
			key := string(it.Item().Key())
			ns, _, ok := strings.Cut(key, nsSeparator)
			if !ok {
				it.Next()
				continue
			}
			names = append(names, ns)
			// 跳过该命名空间的其余键
			it.Seek([]byte(ns + "\x01"))
		}
		return nil
	})
	return names, err
}

// BadgerBatch 批量操作
type BadgerBatch func(*badger.WriteBatch) error

// Batch 批量操作, bb 成功后提交
func (e *Engine) Batch(bb BadgerBatch) error {
	wb := e.db.NewWriteBatch()
	defer wb.Cancel()
	if err := bb(wb); err != nil {
		return err
	}
	return wb.Flush()
}

// Backup 备份数据库
func (e *Engine) Backup(filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()
	if _, err = e.db.Backup(f, 0); err != nil {
		return err
	}
	return nil
}

// LoadMessage 加载消息
type LoadMessage func(err error)

// Load 加载备份数据
// 该函数为异步函数, 加载结果通过 lm 通知
func (e *Engine) Load(filename string, lm LoadMessage) {
	go func() {
		err := func() error {
			f, err := os.Open(filename)
			if err != nil {
				return err
			}
			defer f.Close()
			return e.db.Load(f, 256)
		}()
		if lm != nil {
			lm(err)
		}
	}()
}

// PutValue gob 编码后写入
func PutValue[V any](e *Engine, ns, key string, value V) error {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(value); err != nil {
		return err
	}
	return e.Put(ns, key, buf.Bytes())
}

// GetValue 读取并 gob 解码
func GetValue[V any](e *Engine, ns, key string) (V, error) {
	var v V
	raw, err := e.Get(ns, key)
	if err != nil {
		return v, err
	}
	err = gob.NewDecoder(bytes.NewReader(raw)).Decode(&v)
	return v, err
}

// SaveMap 将前缀表全部写入命名空间
func SaveMap[V any](e *Engine, ns string, m prefixmap.Map[V]) error {
	return e.Batch(func(wb *badger.WriteBatch) error {
		for key, value := range m.All() {
			var buf bytes.Buffer
			if err := gob.NewEncoder(&buf).Encode(value); err != nil {
				return fmt.Errorf("encode %s/%s: %w", ns, key, err)
			}
			if err := wb.Set(nsKey(ns, key), buf.Bytes()); err != nil {
				return err
			}
		}
		return nil
	})
}

// LoadMap 读取命名空间并构建前缀表
func LoadMap[V any](e *Engine, ns string, kind prefixmap.Kind) (prefixmap.Map[V], error) {
	var scanErr error
	seq := func(yield func(string, V) bool) {
		scanErr = e.Scan(ns, func(key string, raw []byte) error {
			var v V
			if err := gob.NewDecoder(bytes.NewReader(raw)).Decode(&v); err != nil {
				return fmt.Errorf("decode %s/%s: %w", ns, key, err)
			}
			if !yield(key, v) {
				return errStopScan
			}
			return nil
		})
		if errors.Is(scanErr, errStopScan) {
			scanErr = nil
		}
	}

	m, err := prefixmap.FromSeq(kind, seq)
	if scanErr != nil {
		return nil, scanErr
	}
	if err != nil {
		return nil, err
	}
	return m, nil
}
