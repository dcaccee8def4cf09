// Package feed 提供订阅源模型、订阅地址解析和 Atom 条目解析。
package feed

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	// ErrUnknownSource 表示无法识别的来源标识。
	ErrUnknownSource = errors.New("未知的来源")
	// ErrUnknownCategory 表示无法识别的分类标识。
	ErrUnknownCategory = errors.New("未知的分类")
)

// Source 决定订阅地址的解析方式。
type Source int

const (
	SourceRSS Source = iota
	SourceYoutube
)

var sourceTokens = map[Source]string{
	SourceRSS:     "rss",
	SourceYoutube: "youtube",
}

// ParseSource 把小写标识（rss / youtube）转换为 Source。
func ParseSource(token string) (Source, error) {
	lower := strings.ToLower(strings.TrimSpace(token))
	for s, tok := range sourceTokens {
		if tok == lower {
			return s, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownSource, token)
}

// Token 返回用于配置文件和命令行的小写标识。
func (s Source) Token() string { return sourceTokens[s] }

func (s Source) String() string {
	switch s {
	case SourceRSS:
		return "RSS"
	case SourceYoutube:
		return "Youtube"
	default:
		return fmt.Sprintf("Source(%d)", int(s))
	}
}

func (s Source) MarshalText() ([]byte, error) {
	tok, ok := sourceTokens[s]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownSource, int(s))
	}
	return []byte(tok), nil
}

func (s *Source) UnmarshalText(b []byte) error {
	v, err := ParseSource(string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// Category 是面向用户的分类，不影响解析逻辑。
type Category int

const (
	CategoryEntertainment Category = iota
	CategoryMusic
	CategoryTechnology
)

var categoryTokens = map[Category]string{
	CategoryEntertainment: "entertainment",
	CategoryMusic:         "music",
	CategoryTechnology:    "technology",
}

// ParseCategory 把小写标识（entertainment / music / technology）转换为 Category。
func ParseCategory(token string) (Category, error) {
	lower := strings.ToLower(strings.TrimSpace(token))
	for c, tok := range categoryTokens {
		if tok == lower {
			return c, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownCategory, token)
}

// Token 返回用于配置文件和命令行的小写标识。
func (c Category) Token() string { return categoryTokens[c] }

func (c Category) String() string {
	switch c {
	case CategoryEntertainment:
		return "Entertainment"
	case CategoryMusic:
		return "Music"
	case CategoryTechnology:
		return "Technology"
	default:
		return fmt.Sprintf("Category(%d)", int(c))
	}
}

func (c Category) MarshalText() ([]byte, error) {
	tok, ok := categoryTokens[c]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownCategory, int(c))
	}
	return []byte(tok), nil
}

func (c *Category) UnmarshalText(b []byte) error {
	v, err := ParseCategory(string(b))
	if err != nil {
		return err
	}
	*c = v
	return nil
}

// Feed 用户配置的一个订阅。
// URL 非空时直接使用，不再访问频道页面。
type Feed struct {
	ID       string   `yaml:"id" json:"id"`
	Source   Source   `yaml:"source" json:"source"`
	Category Category `yaml:"category" json:"category"`
	URL      string   `yaml:"url,omitempty" json:"url,omitempty"`
}

// Entry 订阅文档中的一个条目。每次抓取时重新生成，不做持久化。
type Entry struct {
	ID        string
	Title     string
	Link      string
	Published *time.Time // 缺失或无法解析时为 nil
	Thumbnail string     // 为空表示没有缩略图
}
