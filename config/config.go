// Package config 应用配置，yaml 文件 + 环境变量覆盖
package config

import (
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

var (
	Conf *AppConfig
	once sync.Once
	k    *koanf.Koanf
)

// 存储驱动
const (
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// AppConfig 应用配置结构
type AppConfig struct {
	Server   ServerConfig   `koanf:"server"`
	Store    StoreConfig    `koanf:"store"`
	Database DatabaseConfig `koanf:"database"`
	Redis    RedisConfig    `koanf:"redis"`
	Identity IdentityConfig `koanf:"identity"`
	Log      LogConfig      `koanf:"log"`
	JWT      JWTConfig      `koanf:"jwt"`
	Metrics  MetricsConfig  `koanf:"metrics"`
	CORS     CORSConfig     `koanf:"cors"`
}

type ServerConfig struct {
	Host         string        `koanf:"host"`
	Port         int           `koanf:"port"`
	Mode         string        `koanf:"mode"` // debug, release, test
	ReadTimeout  time.Duration `koanf:"read_timeout"`
	WriteTimeout time.Duration `koanf:"write_timeout"`
}

// Addr 监听地址
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

type StoreConfig struct {
	Driver string `koanf:"driver"` // postgres, memory
}

type DatabaseConfig struct {
	Host         string `koanf:"host"`
	Port         int    `koanf:"port"`
	Username     string `koanf:"username"`
	Password     string `koanf:"password"`
	Database     string `koanf:"database"`
	SSLMode      bool   `koanf:"sslmode"`
	LogLevel     string `koanf:"log_level"` // 数据库日志级别
	MaxOpenConns int    `koanf:"max_open_conns"`
	MaxIdleConns int    `koanf:"max_idle_conns"`
	MaxLifetime  int    `koanf:"max_lifetime"` // 秒
}

type RedisConfig struct {
	Enabled  bool   `koanf:"enabled"`
	Host     string `koanf:"host"`
	Port     int    `koanf:"port"`
	Password string `koanf:"password"`
	DB       int    `koanf:"db"`
	PoolSize int    `koanf:"pool_size"`
}

// IdentityConfig 员工身份缓存
type IdentityConfig struct {
	CacheTTL time.Duration `koanf:"cache_ttl"` // 秒
}

type LogConfig struct {
	Level  string `koanf:"level"`  // debug, info, warn, error
	Format string `koanf:"format"` // json, text
	Output string `koanf:"output"` // stdout, file
	Path   string `koanf:"path"`   // 日志文件路径
}

type JWTConfig struct {
	Secret string `koanf:"secret"`
	Issuer string `koanf:"issuer"`
}

type MetricsConfig struct {
	Enabled bool   `koanf:"enabled"`
	Path    string `koanf:"path"`
}

type CORSConfig struct {
	AllowOrigins []string `koanf:"allow_origins"`
}

// Default 默认配置，内存存储，不连接 redis
func Default() *AppConfig {
	return &AppConfig{
		Server: ServerConfig{
			Host:         "0.0.0.0",
			Port:         8080,
			Mode:         "debug",
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
		},
		Store: StoreConfig{Driver: DriverMemory},
		Database: DatabaseConfig{
			Host:     "localhost",
			Port:     5432,
			Username: "postgres",
			Database: "editorial",
			LogLevel: "warn",
		},
		Redis: RedisConfig{
			Host:     "localhost",
			Port:     6379,
			PoolSize: 10,
		},
		Identity: IdentityConfig{CacheTTL: 5 * time.Minute},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
			Output: "stdout",
		},
		JWT:     JWTConfig{Secret: "change-me", Issuer: "editorial"},
		Metrics: MetricsConfig{Enabled: true, Path: "/metrics"},
		CORS:    CORSConfig{AllowOrigins: []string{"http://localhost:3000"}},
	}
}

// Load 加载配置文件
func Load(configPath string) error {
	var err error
	once.Do(func() {
		// 首先加载 .env 文件到环境变量
		if envErr := godotenv.Load(); envErr != nil {
			log.Printf("警告: 无法加载 .env 文件: %v", envErr)
		}

		Conf, err = parse(configPath)
	})
	return err
}

// MustLoad 加载配置，失败则 panic
func MustLoad(configPath string) {
	if err := Load(configPath); err != nil {
		log.Fatalf("配置加载失败: %v", err)
	}
}

// Reload 重新加载配置
func Reload(configPath string) error {
	if k == nil {
		return fmt.Errorf("配置未初始化")
	}
	c, err := parse(configPath)
	if err != nil {
		return err
	}
	Conf = c
	return nil
}

// parse 读取 yaml 并叠加环境变量，未配置的字段保留 Default 的值
func parse(configPath string) (*AppConfig, error) {
	k = koanf.New(".")

	if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("加载配置文件失败: %w", err)
	}

	// 环境变量覆盖配置文件，DATABASE_HOST -> database.host
	if err := k.Load(env.Provider("", ".", func(s string) string {
		return strings.Replace(strings.ToLower(s), "_", ".", 1)
	}), nil); err != nil {
		log.Printf("加载环境变量失败: %v", err)
	}

	c := Default()
	if err := k.Unmarshal("", c); err != nil {
		return nil, fmt.Errorf("解析配置失败: %w", err)
	}

	// 转换时间单位，yaml 中以秒填写
	c.Server.ReadTimeout = normalizeSeconds(c.Server.ReadTimeout)
	c.Server.WriteTimeout = normalizeSeconds(c.Server.WriteTimeout)
	c.Identity.CacheTTL = normalizeSeconds(c.Identity.CacheTTL)

	if c.Store.Driver != DriverPostgres && c.Store.Driver != DriverMemory {
		return nil, fmt.Errorf("未知的存储驱动: %s", c.Store.Driver)
	}
	return c, nil
}

// normalizeSeconds 纯数字按秒处理，已带单位（如 "5m"）的保持不变
func normalizeSeconds(d time.Duration) time.Duration {
	if d > 0 && d < time.Millisecond {
		return d * time.Second
	}
	return d
}
