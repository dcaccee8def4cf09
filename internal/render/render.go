// Package render 在终端输出订阅和条目。
package render

import (
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"
	"github.com/iabetor/mim/internal/feed"
)

const timeLayout = "2006-01-02 15:04 -07:00"

// Printer 输出带颜色的文本；输出目标不是终端时 fatih/color 会自动关闭颜色。
type Printer struct {
	out io.Writer

	header *color.Color
	title  *color.Color
	link   *color.Color
	muted  *color.Color
}

// NewPrinter 创建输出器。
func NewPrinter(out io.Writer) *Printer {
	return &Printer{
		out:    out,
		header: color.New(color.FgCyan, color.Bold),
		title:  color.New(color.Bold),
		link:   color.New(color.FgBlue),
		muted:  color.New(color.Faint),
	}
}

// FeedHeader 输出 "<来源> <分类> <标识>"。
func (p *Printer) FeedHeader(f feed.Feed) {
	p.header.Fprintf(p.out, "%s %s %s\n", f.Source, f.Category, f.ID)
}

// Entries 输出条目列表，没有条目时给出提示。
func (p *Printer) Entries(entries []feed.Entry) {
	if len(entries) == 0 {
		p.muted.Fprintln(p.out, "  （没有可用的条目）")
		return
	}
	for _, e := range entries {
		p.title.Fprintf(p.out, "  %s\n", orDash(e.Title))
		p.link.Fprintf(p.out, "    %s\n", orDash(e.Link))
		p.muted.Fprintf(p.out, "    发布: %s\n", formatPublished(e.Published))
		if e.Thumbnail != "" {
			p.muted.Fprintf(p.out, "    缩略图: %s\n", e.Thumbnail)
		}
	}
}

// Feeds 输出订阅列表，不访问网络。
func (p *Printer) Feeds(feeds []feed.Feed) {
	if len(feeds) == 0 {
		fmt.Fprintln(p.out, "当前没有订阅。")
		return
	}
	for i, f := range feeds {
		p.header.Fprintf(p.out, "%d. %s", i+1, f.ID)
		fmt.Fprintf(p.out, "  %s / %s", f.Source, f.Category)
		if f.URL != "" {
			p.link.Fprintf(p.out, "  %s", f.URL)
		}
		fmt.Fprintln(p.out)
	}
}

func formatPublished(t *time.Time) string {
	if t == nil {
		return "未知"
	}
	return t.Format(timeLayout)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
