package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/iabetor/mim/internal/feed"
	"github.com/iabetor/mim/internal/store"
)

// command 在配置加载之后执行。返回 nil 时配置会被保存。
type command func(ctx context.Context, a *app) error

// parseCommand 校验命令和参数，不做任何 I/O。
func parseCommand(name string, args []string, stderr io.Writer) (command, error) {
	switch name {
	case "list":
		return parseList(args, stderr)
	case "feeds":
		return cmdFeeds, nil
	case "add-feed":
		return parseAddFeed(args, stderr)
	case "remove-feed", "edit-feed":
		return nil, fmt.Errorf("%s: %w", name, store.ErrUnsupported)
	default:
		return nil, fmt.Errorf("未知命令: %s", name)
	}
}

func parseList(args []string, stderr io.Writer) (command, error) {
	fs := flag.NewFlagSet("list", flag.ContinueOnError)
	fs.SetOutput(stderr)
	categoryToken := fs.String("category", "", "只列出该分类的订阅")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	filter := false
	var category feed.Category
	if *categoryToken != "" {
		c, err := feed.ParseCategory(*categoryToken)
		if err != nil {
			return nil, err
		}
		filter, category = true, c
	}

	return func(ctx context.Context, a *app) error {
		feeds := a.mim.Feeds
		if filter {
			feeds = a.mim.FeedsByCategory(category)
		}
		// 逐个处理，前一个订阅完成后才开始下一个
		for _, f := range feeds {
			a.out.FeedHeader(f)
			a.out.Entries(a.client.GetEntries(ctx, f))
		}
		return nil
	}, nil
}

func cmdFeeds(_ context.Context, a *app) error {
	a.out.Feeds(a.mim.Feeds)
	return nil
}

func parseAddFeed(args []string, stderr io.Writer) (command, error) {
	fs := flag.NewFlagSet("add-feed", flag.ContinueOnError)
	fs.SetOutput(stderr)
	sourceToken := fs.String("source", "", "来源: rss, youtube")
	categoryToken := fs.String("category", "", "分类: entertainment, music, technology")
	url := fs.String("url", "", "订阅文档地址（可选，设置后不再解析频道页面）")
	check := fs.Bool("check", false, "添加前抓取并校验订阅文档")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if *sourceToken == "" || *categoryToken == "" {
		return nil, errors.New("add-feed 需要 --source 和 --category")
	}
	source, err := feed.ParseSource(*sourceToken)
	if err != nil {
		return nil, err
	}
	category, err := feed.ParseCategory(*categoryToken)
	if err != nil {
		return nil, err
	}
	id := strings.TrimSpace(fs.Arg(0))
	if id == "" {
		return nil, errors.New("add-feed 需要订阅标识")
	}
	if fs.NArg() > 1 {
		return nil, fmt.Errorf("多余的参数: %s", strings.Join(fs.Args()[1:], " "))
	}

	f := feed.Feed{
		ID:       id,
		Source:   source,
		Category: category,
		URL:      strings.TrimSpace(*url),
	}

	return func(ctx context.Context, a *app) error {
		if *check {
			resolved, ok := a.client.ResolveURL(ctx, f)
			if !ok {
				return fmt.Errorf("无法解析 %s 的订阅地址", f.ID)
			}
			title, err := a.client.Probe(ctx, resolved)
			if err != nil {
				return err
			}
			fmt.Fprintf(a.stdout, "校验通过: %s (%s)\n", title, resolved)
		}

		a.mim.AddFeed(f)
		fmt.Fprintf(a.stdout, "已添加订阅: %s %s %s\n", f.Source, f.Category, f.ID)
		return nil
	}, nil
}
