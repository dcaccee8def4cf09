// Package config 读取 mim 的运行设置（日志、存储后端、HTTP）。
// 订阅列表本身由 store 包管理，不在这里。
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	// DirName 是 ~/.config 下的配置目录名。
	DirName = "atelier"

	DriverFile   = "file"
	DriverSQLite = "sqlite"
)

// Config 是 mim 的顶层设置。
type Config struct {
	Log   LogConfig   `yaml:"log"`
	Store StoreConfig `yaml:"store"`
	HTTP  HTTPConfig  `yaml:"http"`
}

// LogConfig 日志配置。
type LogConfig struct {
	Level      string `yaml:"level"`
	File       string `yaml:"file"`
	MaxSize    int    `yaml:"max_size"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAge     int    `yaml:"max_age"`
}

// StoreConfig 订阅列表的存储位置。
type StoreConfig struct {
	// Driver 为 file（YAML 文件，默认）或 sqlite。
	Driver string `yaml:"driver"`
	// Path 为空时使用配置目录下的 mim（file）或 mim.db（sqlite）。
	Path string `yaml:"path"`
}

// HTTPConfig 出站请求配置。不提供超时设置：请求会一直等待到结束。
type HTTPConfig struct {
	UserAgent string `yaml:"user_agent"`
}

// Dir 返回配置目录 ~/.config/atelier。
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("无法获取用户主目录: %w", err)
	}
	return filepath.Join(home, ".config", DirName), nil
}

// DefaultPath 返回默认设置文件路径。
func DefaultPath() string {
	dir, err := Dir()
	if err != nil {
		return "mim.yaml"
	}
	return filepath.Join(dir, "mim.yaml")
}

// Load 读取 YAML 设置文件，文件不存在时使用默认值。
// 支持 ${VAR_NAME} 形式的环境变量展开。
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("读取设置文件 %s 失败: %w", path, err)
	default:
		expanded := os.Expand(string(data), os.Getenv)
		if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
			return nil, fmt.Errorf("解析设置文件 %s 失败: %w", path, err)
		}
	}

	if err := setDefaults(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// setDefaults 为未设置的配置项填充默认值并做校验。
func setDefaults(cfg *Config) error {
	if cfg.Log.Level == "" {
		cfg.Log.Level = "warn"
	}
	cfg.Log.File = expandHome(cfg.Log.File)

	cfg.Store.Driver = strings.ToLower(strings.TrimSpace(cfg.Store.Driver))
	if cfg.Store.Driver == "" {
		cfg.Store.Driver = DriverFile
	}
	if cfg.Store.Driver != DriverFile && cfg.Store.Driver != DriverSQLite {
		return fmt.Errorf("不支持的存储后端: %s", cfg.Store.Driver)
	}

	if cfg.Store.Path == "" {
		dir, err := Dir()
		if err != nil {
			return err
		}
		name := "mim"
		if cfg.Store.Driver == DriverSQLite {
			name = "mim.db"
		}
		cfg.Store.Path = filepath.Join(dir, name)
	} else {
		cfg.Store.Path = expandHome(cfg.Store.Path)
	}

	cfg.HTTP.UserAgent = strings.TrimSpace(cfg.HTTP.UserAgent)
	return nil
}

// expandHome 把 ~/ 前缀替换为用户主目录。
func expandHome(p string) string {
	if !strings.HasPrefix(p, "~/") {
		return p
	}
	home, _ := os.UserHomeDir()
	if home == "" {
		return p
	}
	return filepath.Join(home, p[2:])
}
