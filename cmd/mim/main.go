package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/iabetor/mim/internal/config"
	"github.com/iabetor/mim/internal/feed"
	"github.com/iabetor/mim/internal/logger"
	"github.com/iabetor/mim/internal/render"
	"github.com/iabetor/mim/internal/store"
	"github.com/joho/godotenv"
)

func main() {
	// .env 不存在时忽略
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// app 是单次命令执行期间共享的状态。
type app struct {
	mim    *store.Mim
	client *feed.Client
	out    *render.Printer
	stdout io.Writer
}

// run 解析参数并执行命令，返回进程退出码。
// 参数错误在读取配置之前就会返回，不会改动配置文件。
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("mim", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", config.DefaultPath(), "设置文件路径")
	fs.Usage = func() { printUsage(stderr) }
	if err := fs.Parse(args); err != nil {
		return 1
	}

	rest := fs.Args()
	if len(rest) == 0 {
		printUsage(stderr)
		return 1
	}

	cmd, err := parseCommand(rest[0], rest[1:], stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 1
		}
		fmt.Fprintf(stderr, "错误: %v\n", err)
		if !errors.Is(err, store.ErrUnsupported) {
			printUsage(stderr)
		}
		return 1
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(stderr, "加载设置失败: %v\n", err)
		return 1
	}
	if err := logger.Init(logger.Config{
		Level:      cfg.Log.Level,
		File:       cfg.Log.File,
		MaxSize:    cfg.Log.MaxSize,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAge:     cfg.Log.MaxAge,
	}); err != nil {
		fmt.Fprintf(stderr, "初始化日志失败: %v\n", err)
		return 1
	}
	defer logger.Sync()
	logger.WithRun(uuid.NewString())
	logger.Infof("[main] 执行命令 %s (store=%s:%s)", rest[0], cfg.Store.Driver, cfg.Store.Path)

	st, err := store.Open(cfg.Store)
	if err != nil {
		fmt.Fprintf(stderr, "打开订阅存储失败: %v\n", err)
		return 1
	}
	m, err := st.Load()
	if err != nil {
		fmt.Fprintf(stderr, "加载订阅失败: %v\n", err)
		return 1
	}

	a := &app{
		mim:    m,
		client: feed.NewClient(feed.Options{UserAgent: cfg.HTTP.UserAgent}),
		out:    render.NewPrinter(stdout),
		stdout: stdout,
	}
	if err := cmd(ctx, a); err != nil {
		fmt.Fprintf(stderr, "错误: %v\n", err)
		return 1
	}

	if err := st.Save(a.mim); err != nil {
		fmt.Fprintf(stderr, "保存订阅失败: %v\n", err)
		return 1
	}
	return 0
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "mim 订阅源阅读工具")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "用法: mim [-config <path>] <command> [args]")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "命令:")
	fmt.Fprintln(w, "  list [--category <分类>]                  抓取并列出所有订阅的条目")
	fmt.Fprintln(w, "  feeds                                    列出已配置的订阅（不联网）")
	fmt.Fprintln(w, "  add-feed --source <来源> --category <分类> [--url <地址>] [--check] <标识>")
	fmt.Fprintln(w, "                                           添加订阅")
	fmt.Fprintln(w, "  remove-feed, edit-feed                   尚未支持")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "来源: rss, youtube    分类: entertainment, music, technology")
}
