// aim-tui 终端版打靶游戏
//
// 用法：
//
//	go run ./cmd/aim-tui [--config game.yaml] [--verbose]
//
// 鼠标点击靶子得分，s/r 开始或重新开始，e 提前结束本局，q/Esc 退出。
// 终端独占标准输出，--verbose 时日志写入 aim-tui.log。
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"

	"github.com/gdamore/tcell/v2"

	"github.com/shubham-gund/shooter-game/data"
	"github.com/shubham-gund/shooter-game/internal/terminal"
	"github.com/shubham-gund/shooter-game/pkg/config"
	"github.com/shubham-gund/shooter-game/pkg/embedded"
	"github.com/shubham-gund/shooter-game/pkg/game"
)

var (
	// 命令行参数
	verbose    = flag.Bool("verbose", false, "将详细日志写入 aim-tui.log")
	configPath = flag.String("config", "", "游戏配置文件路径（默认使用内置的 data/config/game.yaml）")
)

func main() {
	flag.Parse()

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "aim-tui: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	logFile, err := setupLogging(*verbose)
	if err != nil {
		return err
	}
	if logFile != nil {
		defer logFile.Close()
	}

	embedded.Init(data.FS)
	cfg, err := config.LoadGameConfigOrDefault(*configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to init screen: %w", err)
	}
	defer screen.Fini()
	screen.EnableMouse()
	screen.HideCursor()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	controller := terminal.NewController(screen, cfg)
	runner := game.NewSessionRunner(game.NewGameSession(cfg),
		game.WithSnapshotListener(controller.Publish))

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	runnerErr := make(chan error, 1)
	go func() { runnerErr <- runner.Run(runCtx) }()

	err = controller.Run(runCtx, runner)
	cancel()
	<-runnerErr

	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// setupLogging 终端模式下日志不能写到屏幕上
func setupLogging(enabled bool) (*os.File, error) {
	if !enabled {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
		return nil, nil
	}

	f, err := os.OpenFile("aim-tui.log", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	log.SetOutput(f)
	return f, nil
}
