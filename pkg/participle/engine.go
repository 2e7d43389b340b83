package participle

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/go-ego/gse"
	"github.com/miajio/abbrev/pkg/badger"
	"github.com/miajio/abbrev/pkg/prefixmap"
	"github.com/rs/zerolog/log"
)

// Options 分词引擎参数
type Options struct {
	Namespace      string         // 词条在数据库中的命名空间
	Kind           prefixmap.Kind // 词表前缀表实现
	DictFiles      []string       // gse 词典文件, 为空时加载 gse 默认词典
	HMM            bool           // 分词时启用 HMM
	LearnFrequency float64        // 新词默认词频
	LearnPos       string         // 新词默认词性
}

// DefaultOptions 默认参数
func DefaultOptions() Options {
	return Options{
		Namespace:      "dict",
		Kind:           prefixmap.KindTrie,
		HMM:            true,
		LearnFrequency: 1000.0,
		LearnPos:       "nz", // 其他专名
	}
}

// Engine 分词引擎
// 词表保存在前缀表中, 支持按缩写查询词条.
type Engine struct {
	mu        sync.RWMutex
	dbEngine  *badger.Engine           // 数据库
	segmenter gse.Segmenter            // 分词器
	words     prefixmap.Map[DictEntry] // 词表
	opts      Options
}

// New 创建分词引擎
func New(dbEngine *badger.Engine, opts Options) (*Engine, error) {
	// 从数据库加载已有词典到前缀表
	words, err := LoadWords(dbEngine, opts.Namespace, opts.Kind)
	if err != nil {
		return nil, fmt.Errorf("read db load dict fail: %w", err)
	}

	// 初始化GSE分词器
	seg, err := newSegmenter(opts.DictFiles)
	if err != nil {
		return nil, fmt.Errorf("init gse segmenter fail: %w", err)
	}

	// 从前缀表加载词典到GSE
	if err := loadDictionaryFromMap(words, &seg); err != nil {
		return nil, fmt.Errorf("load dict into gse fail: %w", err)
	}

	log.Debug().Str("namespace", opts.Namespace).Int("words", words.Len()).Msg("dictionary loaded")

	return &Engine{
		segmenter: seg,
		dbEngine:  dbEngine,
		words:     words,
		opts:      opts,
	}, nil
}

// newSegmenter 创建分词器并依次加载词典文件
func newSegmenter(files []string) (gse.Segmenter, error) {
	if len(files) == 0 {
		return gse.New()
	}
	seg, err := gse.New(files[0])
	if err != nil {
		return seg, err
	}
	for _, file := range files[1:] {
		if err := seg.LoadDict(file); err != nil {
			return seg, err
		}
	}
	return seg, nil
}

// LoadWords 从数据库读取命名空间下的词条到前缀表, 不加载分词器
func LoadWords(db *badger.Engine, ns string, kind prefixmap.Kind) (prefixmap.Map[DictEntry], error) {
	var entries []prefixmap.Entry[DictEntry]

	err := db.Scan(ns, func(key string, val []byte) error {
		var entry DictEntry
		if err := json.Unmarshal(val, &entry); err != nil {
			return fmt.Errorf("decode %q: %w", key, err)
		}
		entries = append(entries, prefixmap.Entry[DictEntry]{Key: key, Value: entry})
		return nil
	})
	if err != nil {
		return nil, err
	}

	return prefixmap.From(kind, entries...)
}

// 从前缀表加载词典到GSE
func loadDictionaryFromMap(words prefixmap.Map[DictEntry], seg *gse.Segmenter) error {
	if words.Len() == 0 {
		return nil
	}

	contents := make([]string, 0, words.Len())
	for _, entry := range words.All() {
		contents = append(contents, entry.dictLine())
	}
	return seg.LoadDictStr(strings.Join(contents, "\n"))
}

// addWord 将词条插入前缀表并保存到数据库, 调用方持有写锁
func (d *Engine) addWord(entry DictEntry) error {
	if _, ok := d.words.Get(entry.Content); ok {
		return &prefixmap.Error{Op: "insert", Key: entry.Content, Err: prefixmap.ErrDuplicateValue}
	}

	// 保存到数据库
	data, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	if err := d.dbEngine.Put(d.opts.Namespace, entry.Content, data); err != nil {
		return fmt.Errorf("save content to db fail: %w", err)
	}

	// 添加到前缀表
	if err := d.words.Insert(entry.Content, entry); err != nil {
		return err
	}

	// 更新GSE分词器
	d.segmenter.AddToken(entry.Content, entry.Frequency, entry.Pos)
	return nil
}

// AddWord 添加一个新词到词典, 词已存在时返回 prefixmap.ErrDuplicateValue
func (d *Engine) AddWord(content string, frequency float64, pos string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.addWord(DictEntry{
		Content:   content,
		Frequency: frequency,
		Pos:       pos,
	})
}

// LearnFromText 从文本中学习新词汇, 返回新学到的词
func (d *Engine) LearnFromText(text string) ([]string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	// 分词
	contents := d.segmenter.Cut(text, d.opts.HMM)

	var learned []string
	for _, content := range contents {
		// 跳过特殊符号和单字词
		if !isLearnable(content) {
			continue
		}
		if _, ok := d.words.Get(content); ok {
			continue
		}

		entry := DictEntry{Content: content, Frequency: d.opts.LearnFrequency, Pos: d.opts.LearnPos}
		if err := d.addWord(entry); err != nil {
			return learned, fmt.Errorf("add new word %q fail: %w", content, err)
		}
		learned = append(learned, content)
		log.Info().Str("word", content).Msg("learned new word")
	}

	return learned, nil
}

// Resolve 按缩写查询词条, 区分未找到与歧义
func (d *Engine) Resolve(abbrev string) (DictEntry, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.words.At(abbrev)
}

// Lookup 按缩写查询词条, 未找到或有歧义时返回 false
func (d *Engine) Lookup(abbrev string) (DictEntry, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	it := d.words.Find(abbrev)
	if !it.Valid() {
		return DictEntry{}, false
	}
	return it.Value(), true
}

// Complete 以 prefix 开头的全部词, 按字典序
func (d *Engine) Complete(prefix string) []string {
	d.mu.RLock()
	defer d.mu.RUnlock()

	var out []string
	for word := range d.words.PrefixedBy(prefix) {
		out = append(out, word)
	}
	return out
}

// Words 词典中的全部词, 按字典序
func (d *Engine) Words() []string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.words.Keys()
}

// Len 词条数量
func (d *Engine) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.words.Len()
}

// Segment 对文本进行分词
func (d *Engine) Segment(text string) []string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.segmenter.Cut(text, d.opts.HMM)
}

// Close 关闭词典
func (d *Engine) Close() error {
	return d.dbEngine.Close()
}
