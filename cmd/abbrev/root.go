package main

import (
	"github.com/miajio/abbrev/pkg/badger"
	"github.com/miajio/abbrev/pkg/config"
	"github.com/miajio/abbrev/pkg/logger"
	"github.com/miajio/abbrev/pkg/participle"
	"github.com/miajio/abbrev/pkg/prefixmap"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// app 命令行共享状态
type app struct {
	configPath string
	logLevel   string
	engine     prefixmap.Kind

	cfg  *config.Config
	kind prefixmap.Kind
}

// newRootCmd 根命令
func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:          "abbrev",
		Short:        "Store dictionaries and look them up by unique abbreviation",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&a.configPath, "config", "c", "", "config file (yaml, json or toml)")
	flags.StringVar(&a.logLevel, "log-level", "", "log level, overrides the config file")
	flags.Var(config.Engines().Var(&a.engine), "engine", "lookup engine: trie or sorted, may be abbreviated")

	root.AddCommand(
		a.putCmd(),
		a.getCmd(),
		a.findCmd(),
		a.listCmd(),
		a.completeCmd(),
		a.learnCmd(),
		a.segmentCmd(),
		a.shellCmd(),
	)
	return root
}

// setup 加载配置并初始化日志
func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.LoadConfig(a.configPath)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.Log.Level = a.logLevel
	}
	if cmd.Flags().Changed("engine") {
		cfg.Lookup.Engine = a.engine.String()
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := logger.Setup(cfg.Log); err != nil {
		return err
	}

	kind, err := cfg.EngineKind()
	if err != nil {
		return err
	}
	a.cfg, a.kind = cfg, kind
	log.Debug().Str("engine", kind.String()).Str("path", cfg.Store.Path).Msg("config loaded")
	return nil
}

// openStore 打开数据库
func (a *app) openStore() (*badger.Engine, error) {
	return badger.Open(badger.Options{
		Path:           a.cfg.Store.Path,
		InMemory:       a.cfg.Store.InMemory,
		GCInterval:     a.cfg.Store.GCInterval,
		GCDiscardRatio: a.cfg.Store.GCDiscardRatio,
	})
}

// openDictionary 打开分词词典
func (a *app) openDictionary() (*participle.Engine, error) {
	store, err := a.openStore()
	if err != nil {
		return nil, err
	}

	dict, err := participle.New(store, participle.Options{
		Namespace:      a.cfg.Store.Namespace,
		Kind:           a.kind,
		DictFiles:      a.cfg.Segmenter.DictFiles,
		HMM:            a.cfg.Segmenter.HMM,
		LearnFrequency: a.cfg.Segmenter.LearnFrequency,
		LearnPos:       a.cfg.Segmenter.LearnPos,
	})
	if err != nil {
		_ = store.Close()
		return nil, err
	}
	return dict, nil
}
