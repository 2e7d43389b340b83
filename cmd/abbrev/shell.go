package main

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/chzyer/readline"
	"github.com/miajio/abbrev/pkg/badger"
	"github.com/miajio/abbrev/pkg/prefixmap"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// shellCommand 交互命令
type shellCommand struct {
	usage string
	args  int
	run   func(s *shell, args []string) error
}

// shell 交互会话, 命令与键都可缩写
type shell struct {
	ns       string
	store    *badger.Engine
	words    prefixmap.Map[string]
	commands *prefixmap.Trie[shellCommand]
	readOnly bool // 词典命名空间不允许 put
	out      io.Writer
	quit     bool
}

// newShellCommands 交互命令表
func newShellCommands() *prefixmap.Trie[shellCommand] {
	commands, err := prefixmap.TrieFrom(
		prefixmap.Entry[shellCommand]{Key: "get", Value: shellCommand{"get <abbreviation>", 1, (*shell).get}},
		prefixmap.Entry[shellCommand]{Key: "find", Value: shellCommand{"find <abbreviation>", 1, (*shell).find}},
		prefixmap.Entry[shellCommand]{Key: "put", Value: shellCommand{"put <key> <value>", 2, (*shell).put}},
		prefixmap.Entry[shellCommand]{Key: "list", Value: shellCommand{"list", 0, (*shell).list}},
		prefixmap.Entry[shellCommand]{Key: "complete", Value: shellCommand{"complete <prefix>", 1, (*shell).complete}},
		prefixmap.Entry[shellCommand]{Key: "help", Value: shellCommand{"help", 0, (*shell).help}},
		prefixmap.Entry[shellCommand]{Key: "quit", Value: shellCommand{"quit", 0, (*shell).exit}},
	)
	if err != nil {
		panic(err)
	}
	return commands
}

// newShell 创建交互会话
func newShell(ns string, store *badger.Engine, words prefixmap.Map[string], readOnly bool, out io.Writer) *shell {
	return &shell{
		ns:       ns,
		store:    store,
		words:    words,
		commands: newShellCommands(),
		readOnly: readOnly,
		out:      out,
	}
}

// exec 执行一行输入
func (s *shell) exec(line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}
	cmd, err := s.commands.At(fields[0])
	if err != nil {
		return err
	}
	args := fields[1:]
	if cmd.args == 2 && len(args) > 2 {
		// 值允许包含空格
		args = []string{args[0], strings.Join(args[1:], " ")}
	}
	if len(args) != cmd.args {
		return fmt.Errorf("usage: %s", cmd.usage)
	}
	return cmd.run(s, args)
}

func (s *shell) get(args []string) error {
	value, err := s.words.At(args[0])
	if err != nil {
		return err
	}
	fmt.Fprintln(s.out, value)
	return nil
}

func (s *shell) find(args []string) error {
	it := s.words.Find(args[0])
	if !it.Valid() {
		return fmt.Errorf("%q: %w", args[0], errNoMatch)
	}
	fmt.Fprintf(s.out, "%s\t%s\n", it.Key(), it.Value())
	return nil
}

func (s *shell) put(args []string) error {
	if s.readOnly {
		return fmt.Errorf("%s: %w", s.ns, errDictionaryNamespace)
	}
	return putValue(s.store, s.words, s.ns, args[0], args[1])
}

func (s *shell) list([]string) error {
	for key, value := range s.words.All() {
		fmt.Fprintf(s.out, "%s\t%s\n", key, value)
	}
	return nil
}

func (s *shell) complete(args []string) error {
	for key := range s.words.PrefixedBy(args[0]) {
		fmt.Fprintln(s.out, key)
	}
	return nil
}

func (s *shell) help([]string) error {
	for _, cmd := range s.commands.All() {
		fmt.Fprintln(s.out, cmd.usage)
	}
	return nil
}

func (s *shell) exit([]string) error {
	s.quit = true
	return nil
}

// Do 实现 readline.AutoCompleter: 首个词补全命令, 其余补全键
func (s *shell) Do(line []rune, pos int) ([][]rune, int) {
	head := string(line[:pos])
	start := strings.LastIndexAny(head, " \t") + 1
	word := head[start:]

	if strings.TrimSpace(head[:start]) == "" {
		return suffixes(s.commands, word), utf8.RuneCountInString(word)
	}
	return suffixes(s.words, word), utf8.RuneCountInString(word)
}

// suffixes 以 word 开头的键去掉 word 后的部分
func suffixes[V any](m prefixmap.Map[V], word string) [][]rune {
	var out [][]rune
	for key := range m.PrefixedBy(word) {
		out = append(out, []rune(key[len(word):]+" "))
	}
	return out
}

// run 读取并执行输入直到退出
func (s *shell) run(rl *readline.Instance) error {
	for !s.quit {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			if line == "" {
				return nil
			}
			continue
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		if err := s.exec(line); err != nil {
			log.Debug().Err(err).Str("line", line).Msg("shell command failed")
			fmt.Fprintln(s.out, "error:", err)
		}
	}
	return nil
}

func (a *app) shellCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "shell <namespace>",
		Short: "Interactive session over a namespace with tab completion",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ns := args[0]
			return a.withMap(ns, func(store *badger.Engine, m prefixmap.Map[string]) error {
				s := newShell(ns, store, m, a.isDictionary(ns), cmd.OutOrStdout())

				rl, err := readline.NewEx(&readline.Config{
					Prompt:          ns + "> ",
					AutoComplete:    s,
					InterruptPrompt: "^C",
					EOFPrompt:       "quit",
				})
				if err != nil {
					return err
				}
				defer rl.Close()

				s.out = rl.Stdout()
				return s.run(rl)
			})
		},
	}
}
