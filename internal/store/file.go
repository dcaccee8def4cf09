package store

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/natefinch/atomic"
	"gopkg.in/yaml.v3"
)

// FileStore 以 YAML 格式把 Mim 保存在单个文件中。
type FileStore struct {
	path string
}

// NewFileStore 创建文件存储。
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path 返回配置文件路径。
func (s *FileStore) Path() string { return s.path }

func (s *FileStore) Load() (*Mim, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Mim{}, nil
		}
		return nil, fmt.Errorf("读取配置文件 %s 失败: %w", s.path, err)
	}

	m := &Mim{}
	if err := yaml.Unmarshal(data, m); err != nil {
		return nil, fmt.Errorf("解析配置文件 %s 失败: %w", s.path, err)
	}
	return m, nil
}

// Save 先写临时文件再重命名，不会留下写了一半的配置。
func (s *FileStore) Save(m *Mim) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("创建配置目录失败: %w", err)
	}

	data, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("序列化配置失败: %w", err)
	}
	if err := atomic.WriteFile(s.path, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("写入配置文件 %s 失败: %w", s.path, err)
	}
	return nil
}
