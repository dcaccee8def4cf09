package feed

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/iabetor/mim/internal/logger"
	"github.com/mmcdole/gofeed"
)

const (
	defaultUserAgent = "mim/1.0 feed reader"
	maxBodySize      = 10 << 20 // 10 MiB
)

// Options 客户端可选项，零值即可使用。
type Options struct {
	HTTPClient  *http.Client
	UserAgent   string
	YoutubeBase string // 测试时指向本地服务器
}

// Client 负责解析订阅地址、抓取并解析订阅文档。
// 每次调用只请求一次，不重试，也不缓存。
type Client struct {
	fetcher   *fetcher
	resolvers map[Source]Resolver
	parser    *gofeed.Parser
}

// NewClient 创建客户端并注册各来源的解析器。
func NewClient(opts Options) *Client {
	hc := opts.HTTPClient
	if hc == nil {
		hc = &http.Client{}
	}
	ua := opts.UserAgent
	if ua == "" {
		ua = defaultUserAgent
	}
	base := opts.YoutubeBase
	if base == "" {
		base = DefaultYoutubeBase
	}

	f := &fetcher{client: hc, userAgent: ua}
	return &Client{
		fetcher: f,
		resolvers: map[Source]Resolver{
			SourceRSS:     rssResolver{},
			SourceYoutube: &youtubeResolver{fetcher: f, base: base},
		},
		parser: gofeed.NewParser(),
	}
}

// ResolveURL 返回订阅文档地址。显式 URL 优先且不发起任何请求。
func (c *Client) ResolveURL(ctx context.Context, f Feed) (string, bool) {
	if f.URL != "" {
		return f.URL, true
	}
	r, ok := c.resolvers[f.Source]
	if !ok {
		logger.Warnf("[feed] 来源 %s 没有可用的解析器", f.Source)
		return "", false
	}
	return r.Resolve(ctx, f)
}

// GetEntries 解析地址、抓取文档并返回条目。
// 任何一步失败都返回空结果，不会中断后续订阅的处理。
func (c *Client) GetEntries(ctx context.Context, f Feed) []Entry {
	url, ok := c.ResolveURL(ctx, f)
	if !ok {
		return nil
	}

	body, err := c.fetcher.get(ctx, url)
	if err != nil {
		logger.Warnf("[feed] 抓取 %s 失败: %v", url, err)
		return nil
	}

	entries := ParseEntries(body)
	logger.Debugf("[feed] %s 解析到 %d 个条目", f.ID, len(entries))
	return entries
}

// Probe 抓取并用 gofeed 校验订阅文档，返回文档标题。
// 与 GetEntries 不同，失败时返回错误，供添加订阅时检查使用。
func (c *Client) Probe(ctx context.Context, url string) (string, error) {
	body, err := c.fetcher.get(ctx, url)
	if err != nil {
		return "", err
	}
	parsed, err := c.parser.Parse(bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("无法解析订阅文档 %s: %w", url, err)
	}
	title := parsed.Title
	if title == "" {
		title = url
	}
	return title, nil
}

// fetcher 执行单次 GET 请求。
type fetcher struct {
	client    *http.Client
	userAgent string
}

func (f *fetcher) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("HTTP %d", resp.StatusCode)
	}

	return io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
}
