package badger

import (
	"errors"
	"sync"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/rs/zerolog/log"
)

// ErrCloseTimeout 关闭超时
var ErrCloseTimeout = errors.New("badger engine close timeout")

// Options 引擎参数
type Options struct {
	Path           string        // 数据目录
	InMemory       bool          // 纯内存模式, 忽略 Path
	GCInterval     time.Duration // value log GC 间隔
	GCDiscardRatio float64       // value log GC 回收比例
}

// Engine badger引擎
type Engine struct {
	db *badger.DB // badgerDB

	gcInterval     time.Duration      // GC间隔时间
	gcDiscardRatio float64            // GC回收比例
	gcUpdateChan   chan time.Duration // GC更新间隔时间信号

	done      chan struct{} // 退出信号
	closed    chan struct{} // 退出成功信号
	closeOnce sync.Once
	err       error // 关闭错误
}

// New 创建一个badger引擎
func New(opt badger.Options) (*Engine, error) {
	return open(opt, Options{})
}

// Default 创建一个默认的badger引擎
func Default(path string) (*Engine, error) {
	return Open(Options{Path: path})
}

// InMemory 创建一个纯内存的badger引擎
func InMemory() (*Engine, error) {
	return Open(Options{InMemory: true})
}

// Open 按参数创建badger引擎
func Open(o Options) (*Engine, error) {
	opt := badger.DefaultOptions(o.Path)
	if o.InMemory {
		opt = badger.DefaultOptions("").WithInMemory(true)
	}
	return open(opt.WithLogger(newLogger()), o)
}

// open 创建一个badger引擎
func open(opt badger.Options, o Options) (*Engine, error) {
	db, err := badger.Open(opt)
	if err != nil {
		return nil, err
	}
	if o.GCInterval <= 0 {
		o.GCInterval = time.Minute * 5
	}
	if o.GCDiscardRatio <= 0 || o.GCDiscardRatio >= 1 {
		o.GCDiscardRatio = 0.5
	}
	be := &Engine{
		db: db,

		gcInterval:     o.GCInterval,
		gcDiscardRatio: o.GCDiscardRatio,
		gcUpdateChan:   make(chan time.Duration),

		done:   make(chan struct{}),
		closed: make(chan struct{}),
	}
	go be.listener()
	return be, nil
}

// DB 获取badger数据库
func (e *Engine) DB() *badger.DB { return e.db }

// listener 监听GC与关闭信号
func (e *Engine) listener() {
	ticker := time.NewTicker(e.gcInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			e.runGC()
		case interval := <-e.gcUpdateChan:
			e.gcInterval = interval
			ticker.Reset(interval)
		case <-e.done:
			e.err = e.db.Close()
			close(e.closed)
			return
		}
	}
}

// runGC 反复回收直到没有可回收的 value log
func (e *Engine) runGC() {
	if e.db.Opts().InMemory {
		return
	}
	for {
		err := e.db.RunValueLogGC(e.gcDiscardRatio)
		if err == nil {
			continue
		}
		if !errors.Is(err, badger.ErrNoRewrite) {
			log.Warn().Err(err).Msg("badger value log gc failed")
		}
		return
	}
}

// Close 关闭badger引擎, 可重复调用
func (e *Engine) Close() error {
	e.closeOnce.Do(func() { close(e.done) })
	select {
	case <-e.closed:
		return e.err
	case <-time.After(time.Second * 5):
		return ErrCloseTimeout
	}
}

// SetGCInterval 设置GC间隔
func (e *Engine) SetGCInterval(interval time.Duration) {
	if 0 >= interval {
		return
	}
	select {
	case e.gcUpdateChan <- interval:
	case <-e.closed:
	}
}
