// Package store 管理订阅列表（Mim）的加载与保存。
//
// 一次命令行调用只加载一次、保存一次，整体读写，不做加锁：
// 假定同一配置路径只有一个进程在使用。
package store

import (
	"errors"
	"fmt"

	"github.com/iabetor/mim/internal/config"
	"github.com/iabetor/mim/internal/feed"
)

// ErrUnsupported 表示尚未支持的操作（编辑、删除订阅）。
// 以 id 还是 (id, source) 作为键尚未确定，因此暂不实现。
var ErrUnsupported = errors.New("操作尚未支持")

// Mim 是持久化的根配置，保存有序的订阅列表。
type Mim struct {
	Feeds []feed.Feed `yaml:"feeds"`
}

// Store 整体读写 Mim。
type Store interface {
	// Load 读取配置；配置不存在时返回空的 Mim。
	Load() (*Mim, error)
	// Save 整体写入配置。
	Save(m *Mim) error
}

// Open 根据设置选择存储后端。
func Open(cfg config.StoreConfig) (Store, error) {
	switch cfg.Driver {
	case config.DriverFile, "":
		return NewFileStore(cfg.Path), nil
	case config.DriverSQLite:
		return NewSQLiteStore(cfg.Path), nil
	default:
		return nil, fmt.Errorf("不支持的存储后端: %s", cfg.Driver)
	}
}

// AddFeed 追加订阅。不检查重复。
func (m *Mim) AddFeed(f feed.Feed) {
	m.Feeds = append(m.Feeds, f)
}

// RemoveFeed 尚未支持。
func (m *Mim) RemoveFeed(id string) error {
	return fmt.Errorf("删除订阅 %s: %w", id, ErrUnsupported)
}

// EditFeed 尚未支持。
func (m *Mim) EditFeed(id string, _ feed.Feed) error {
	return fmt.Errorf("编辑订阅 %s: %w", id, ErrUnsupported)
}

// FeedsByCategory 按原有顺序返回指定分类的订阅。
func (m *Mim) FeedsByCategory(c feed.Category) []feed.Feed {
	var out []feed.Feed
	for _, f := range m.Feeds {
		if f.Category == c {
			out = append(out, f)
		}
	}
	return out
}
