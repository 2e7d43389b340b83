package main

import (
	"errors"
	"fmt"

	"github.com/miajio/abbrev/pkg/badger"
	"github.com/miajio/abbrev/pkg/formatter"
	"github.com/miajio/abbrev/pkg/participle"
	"github.com/miajio/abbrev/pkg/prefixmap"
	"github.com/spf13/cobra"
)

// errNoMatch 宽松查询未命中
var errNoMatch = errors.New("no unique match")

// errDictionaryNamespace 词典命名空间只能通过 learn 写入
var errDictionaryNamespace = errors.New("namespace holds dictionary words, add them with learn")

// isDictionary 判断是否为分词词典的命名空间
func (a *app) isDictionary(ns string) bool {
	return ns == a.cfg.Store.Namespace
}

// loadMap 读取命名空间下的前缀表
// 词典命名空间按 JSON 词条读取, 值为词条的文本形式.
func (a *app) loadMap(store *badger.Engine, ns string) (prefixmap.Map[string], error) {
	if !a.isDictionary(ns) {
		return badger.LoadMap[string](store, ns, a.kind)
	}

	words, err := participle.LoadWords(store, ns, a.kind)
	if err != nil {
		return nil, err
	}
	return prefixmap.FromSeq(a.kind, func(yield func(string, string) bool) {
		for word, entry := range words.All() {
			if !yield(word, entry.String()) {
				return
			}
		}
	})
}

// withMap 读取命名空间下的前缀表后执行 fn
func (a *app) withMap(ns string, fn func(store *badger.Engine, m prefixmap.Map[string]) error) error {
	store, err := a.openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	m, err := a.loadMap(store, ns)
	if err != nil {
		return fmt.Errorf("load %s: %w", ns, err)
	}
	return fn(store, m)
}

// putValue 先写入数据库再插入前缀表, 写入失败时两者均不变
func putValue(store *badger.Engine, m prefixmap.Map[string], ns, key, value string) error {
	if _, ok := m.Get(key); ok {
		return &prefixmap.Error{Op: "insert", Key: key, Err: prefixmap.ErrDuplicateValue}
	}
	if err := badger.PutValue(store, ns, key, value); err != nil {
		return fmt.Errorf("save %s/%s: %w", ns, key, err)
	}
	return m.Insert(key, value)
}

func (a *app) putCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "put <namespace> <key> <value>",
		Short: "Add a key to a namespace, rejecting duplicates",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			ns, key, value := args[0], args[1], args[2]
			if a.isDictionary(ns) {
				return fmt.Errorf("%s: %w", ns, errDictionaryNamespace)
			}
			return a.withMap(ns, func(store *badger.Engine, m prefixmap.Map[string]) error {
				return putValue(store, m, ns, key, value)
			})
		},
	}
}

func (a *app) getCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <namespace> <abbreviation>",
		Short: "Print the value whose key is uniquely identified by the abbreviation",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withMap(args[0], func(_ *badger.Engine, m prefixmap.Map[string]) error {
				value, err := m.At(args[1])
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), value)
				return nil
			})
		},
	}
}

func (a *app) findCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "find <namespace> <abbreviation>",
		Short: "Print the matching key and value, or fail without saying why",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withMap(args[0], func(_ *badger.Engine, m prefixmap.Map[string]) error {
				it := m.Find(args[1])
				if !it.Valid() {
					return fmt.Errorf("%q: %w", args[1], errNoMatch)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", it.Key(), it.Value())
				return nil
			})
		},
	}
}

func (a *app) listCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "list <namespace>",
		Short: "Print every entry of a namespace in key order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withMap(args[0], func(_ *badger.Engine, m prefixmap.Map[string]) error {
				var cur prefixmap.Entry[string]
				f, err := a.entryFormatter(&cur)
				if err != nil {
					return err
				}
				for key, value := range m.All() {
					cur = prefixmap.Entry[string]{Key: key, Value: value}
					line, err := f.Format(format)
					if err != nil {
						return err
					}
					fmt.Fprintln(cmd.OutOrStdout(), line)
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", `%key%\t%value%`, "line format, actions: key, value (args: min length, padding, alignment)")
	return cmd
}

// entryFormatter 输出当前条目的格式化器
func (a *app) entryFormatter(cur *prefixmap.Entry[string]) (*formatter.Formatter, error) {
	alignments, err := formatter.NewAlignments()
	if err != nil {
		return nil, err
	}
	defaults := formatter.DefaultDefaults()
	defaults.Alignment = formatter.AlignLeft

	actions, err := prefixmap.From(a.kind,
		prefixmap.Entry[formatter.Action]{Key: "key", Value: formatter.ActionFunc(func(args []string) (string, error) {
			return formatter.GenericFormat(cur.Key, alignments, defaults).Apply(args)
		})},
		prefixmap.Entry[formatter.Action]{Key: "value", Value: formatter.ActionFunc(func(args []string) (string, error) {
			return formatter.GenericFormat(cur.Value, alignments, defaults).Apply(args)
		})},
	)
	if err != nil {
		return nil, err
	}
	return formatter.New(actions), nil
}

func (a *app) completeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "complete <namespace> [prefix]",
		Short: "Print every key starting with the prefix",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			prefix := ""
			if len(args) == 2 {
				prefix = args[1]
			}
			return a.withMap(args[0], func(_ *badger.Engine, m prefixmap.Map[string]) error {
				for key := range m.PrefixedBy(prefix) {
					fmt.Fprintln(cmd.OutOrStdout(), key)
				}
				return nil
			})
		},
	}
}
