package participle

import "fmt"

// DictEntry 字典词条
type DictEntry struct {
	Content   string  `json:"content"`   // 词条内容
	Frequency float64 `json:"frequency"` // 词频
	Pos       string  `json:"pos"`       // 词性
}

// String 词条 词频 词性
func (e DictEntry) String() string {
	return fmt.Sprintf("%s %g %s", e.Content, e.Frequency, e.Pos)
}

// dictLine gse 词典行格式
func (e DictEntry) dictLine() string {
	return fmt.Sprintf("%s %f %s", e.Content, e.Frequency, e.Pos)
}
