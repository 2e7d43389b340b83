package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/miajio/abbrev/pkg/enum"
	"github.com/miajio/abbrev/pkg/prefixmap"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

// Config 应用配置
type Config struct {
	Store     StoreConfig     `mapstructure:"store"`
	Lookup    LookupConfig    `mapstructure:"lookup"`
	Segmenter SegmenterConfig `mapstructure:"segmenter"`
	Log       LogConfig       `mapstructure:"log"`
}

// StoreConfig badger 存储配置
type StoreConfig struct {
	Path           string        `mapstructure:"path"`
	InMemory       bool          `mapstructure:"in_memory"`
	Namespace      string        `mapstructure:"namespace"`
	GCInterval     time.Duration `mapstructure:"gc_interval"`
	GCDiscardRatio float64       `mapstructure:"gc_discard_ratio"`
}

// LookupConfig 前缀表实现, 名称可缩写
type LookupConfig struct {
	Engine string `mapstructure:"engine"`
}

// SegmenterConfig gse 分词配置
type SegmenterConfig struct {
	DictFiles      []string `mapstructure:"dict_files"`
	HMM            bool     `mapstructure:"hmm"`
	LearnFrequency float64  `mapstructure:"learn_frequency"`
	LearnPos       string   `mapstructure:"learn_pos"`
}

// LogConfig 日志配置
type LogConfig struct {
	Level   string `mapstructure:"level"`
	Console bool   `mapstructure:"console"`
}

// Engines 前缀表实现名称枚举
func Engines() *enum.Enum[prefixmap.Kind] {
	return enum.Must(enum.New("engine",
		enum.Value[prefixmap.Kind]{Name: prefixmap.KindTrie.String(), Value: prefixmap.KindTrie},
		enum.Value[prefixmap.Kind]{Name: prefixmap.KindSorted.String(), Value: prefixmap.KindSorted},
	))
}

// LoadConfig 从配置文件与环境变量加载配置
func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetEnvPrefix("ABBREV")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// setDefaults 默认配置
func setDefaults(v *viper.Viper) {
	v.SetDefault("store.path", "abbrev_db")
	v.SetDefault("store.in_memory", false)
	v.SetDefault("store.namespace", "dict")
	v.SetDefault("store.gc_interval", "5m")
	v.SetDefault("store.gc_discard_ratio", 0.5)

	v.SetDefault("lookup.engine", "trie")

	v.SetDefault("segmenter.dict_files", []string{})
	v.SetDefault("segmenter.hmm", true)
	v.SetDefault("segmenter.learn_frequency", 1000.0)
	v.SetDefault("segmenter.learn_pos", "nz")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.console", true)
}

// EngineKind 解析配置的前缀表实现
func (c *Config) EngineKind() (prefixmap.Kind, error) {
	return Engines().Parse(c.Lookup.Engine)
}

// Validate 校验配置
func (c *Config) Validate() error {
	if !c.Store.InMemory && c.Store.Path == "" {
		return fmt.Errorf("store path is required")
	}
	if c.Store.Namespace == "" {
		return fmt.Errorf("store namespace cannot be empty")
	}
	if c.Store.GCDiscardRatio <= 0 || c.Store.GCDiscardRatio >= 1 {
		return fmt.Errorf("invalid gc discard ratio: %v", c.Store.GCDiscardRatio)
	}
	if _, err := c.EngineKind(); err != nil {
		return err
	}
	if _, err := zerolog.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}
	return nil
}
