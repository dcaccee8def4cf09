package feed

import (
	"bytes"
	"context"

	"github.com/PuerkitoBio/goquery"
	"github.com/iabetor/mim/internal/logger"
)

const (
	// DefaultYoutubeBase 频道页面地址前缀，频道标识直接拼接在后面。
	DefaultYoutubeBase = "https://www.youtube.com/"

	rssLinkSelector = "link[title=RSS]"
)

// Resolver 把没有显式 URL 的订阅解析为订阅文档地址。
// 每种 Source 各有一个实现；返回 false 表示本次无法解析。
type Resolver interface {
	Resolve(ctx context.Context, f Feed) (string, bool)
}

// youtubeResolver 抓取频道页面，取第一个 title="RSS" 的 link 元素的 href。
type youtubeResolver struct {
	fetcher *fetcher
	base    string
}

func (r *youtubeResolver) Resolve(ctx context.Context, f Feed) (string, bool) {
	channelURL := r.base + f.ID

	body, err := r.fetcher.get(ctx, channelURL)
	if err != nil {
		logger.Warnf("[feed] 获取频道页面 %s 失败: %v", channelURL, err)
		return "", false
	}

	href, ok := findRSSLink(body)
	if !ok {
		logger.Warnf("[feed] 频道页面 %s 中没有 RSS 链接", channelURL)
		return "", false
	}
	return href, true
}

// findRSSLink 在 HTML 中查找第一个 link[title=RSS] 的 href。
func findRSSLink(page []byte) (string, bool) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(page))
	if err != nil {
		return "", false
	}
	href, ok := doc.Find(rssLinkSelector).First().Attr("href")
	if !ok || href == "" {
		return "", false
	}
	return href, true
}

// rssResolver 尚未实现：没有显式 URL 的 RSS 订阅无法解析。
type rssResolver struct{}

func (rssResolver) Resolve(_ context.Context, f Feed) (string, bool) {
	logger.Warnf("[feed] RSS 订阅 %s 未配置 URL，自动解析尚未实现", f.ID)
	return "", false
}
