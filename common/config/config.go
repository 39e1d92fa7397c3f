package config

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

var Conf *Config

type Config struct {
	AppName      string       `mapstructure:"appName"`
	Log          LogConf      `mapstructure:"log"`
	HttpPort     int          `mapstructure:"httpPort"`
	MetricPort   int          `mapstructure:"metricPort"`
	JwtConf      JwtConf      `mapstructure:"jwt"`
	StatsConf    StatsConf    `mapstructure:"stats"`
	QuizConf     QuizConf     `mapstructure:"quiz"`
	EngineConf   EngineConf   `mapstructure:"engine"`
	DatabaseConf DatabaseConf `mapstructure:"database"`
}

type LogConf struct {
	Level string `mapstructure:"level"`
	Path  string `mapstructure:"path"`
}

type JwtConf struct {
	Secret string `mapstructure:"secret"`
	Expire int    `mapstructure:"expire"` // 秒
}

// StatsConf 练习记录存储，driver: file | sqlite | redis | mongo。path 用于 file 和 sqlite
type StatsConf struct {
	Driver string `mapstructure:"driver"`
	Path   string `mapstructure:"path"`
}

type QuizConf struct {
	TTL     time.Duration `mapstructure:"ttl"`
	MaxCost int64         `mapstructure:"maxCost"`
	Seed    int64         `mapstructure:"seed"` // 0 表示按时间取随机种子
}

// EngineConf agariCacheSize 是和牌缓存最多保留的条目数
type EngineConf struct {
	AgariCacheSize int64 `mapstructure:"agariCacheSize"`
}

type DatabaseConf struct {
	MongoConf MongoConf `mapstructure:"mongo"`
	RedisConf RedisConf `mapstructure:"redis"`
}

type MongoConf struct {
	Url         string `mapstructure:"url"`
	Db          string `mapstructure:"db"`
	Username    string `mapstructure:"username"`
	Password    string `mapstructure:"password"`
	MinPoolSize int    `mapstructure:"minPoolSize"`
	MaxPoolSize int    `mapstructure:"maxPoolSize"`
}

type RedisConf struct {
	Addr         string   `mapstructure:"addr"`
	ClusterAddrs []string `mapstructure:"clusterAddrs"`
	Password     string   `mapstructure:"password"`
	PoolSize     int      `mapstructure:"poolSize"`
	MinIdleConns int      `mapstructure:"minIdleConns"`
	Host         string   `mapstructure:"host"`
	Port         int      `mapstructure:"port"`
}

func (c JwtConf) ExpireDuration() time.Duration {
	return time.Duration(c.Expire) * time.Second
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("appName", "tingtrainer")
	v.SetDefault("log.level", "info")
	v.SetDefault("httpPort", 8080)
	v.SetDefault("metricPort", 0)
	v.SetDefault("jwt.secret", "tingtrainer-dev-secret")
	v.SetDefault("jwt.expire", 7*24*3600)
	v.SetDefault("stats.driver", "file")
	v.SetDefault("stats.path", "training_log.csv")
	v.SetDefault("quiz.ttl", "30m")
	v.SetDefault("quiz.maxCost", 1<<20)
	v.SetDefault("engine.agariCacheSize", 1<<16)
	v.SetDefault("database.mongo.db", "tingtrainer")
	v.SetDefault("database.mongo.minPoolSize", 1)
	v.SetDefault("database.mongo.maxPoolSize", 10)
	v.SetDefault("database.redis.poolSize", 10)
}

var (
	mu     sync.Mutex
	loaded *viper.Viper
)

// Load 读取配置文件，configFile 为空时只用默认值和环境变量。成功后同时更新 Conf。
// 工作目录下的 .env 会先载入环境变量，已存在的变量不会被覆盖
func Load(configFile string) (*Config, error) {
	_ = godotenv.Load()
	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("读取配置文件出错: %w", err)
		}
	}

	cfg := new(Config)
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("解析配置文件出错: %w", err)
	}

	mu.Lock()
	loaded = v
	Conf = cfg
	mu.Unlock()
	return cfg, nil
}

// Watch 配置文件变化时重新解析并回调，解析失败保留旧配置
func Watch(onChange func(*Config, error)) {
	mu.Lock()
	v := loaded
	mu.Unlock()
	if v == nil || v.ConfigFileUsed() == "" {
		return
	}
	v.OnConfigChange(func(in fsnotify.Event) {
		cfg := new(Config)
		if err := v.Unmarshal(cfg); err != nil {
			onChange(nil, fmt.Errorf("重新解析配置 %s 出错: %w", in.Name, err))
			return
		}
		mu.Lock()
		Conf = cfg
		mu.Unlock()
		onChange(cfg, nil)
	})
	v.WatchConfig()
}
