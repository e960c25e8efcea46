package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/shubham-gund/shooter-game/data"
	"github.com/shubham-gund/shooter-game/pkg/app"
	"github.com/shubham-gund/shooter-game/pkg/embedded"
)

var (
	// 命令行参数
	verbose    = flag.Bool("verbose", false, "显示详细调试信息")
	configPath = flag.String("config", "", "游戏配置文件路径（默认使用内置配置）")
)

func main() {
	flag.Parse()

	// 初始化嵌入资源
	embedded.Init(data.FS)

	gameApp, err := app.NewApp(app.Config{
		Verbose:    *verbose,
		ConfigPath: *configPath,
	})
	if err != nil {
		log.Fatalf("游戏初始化失败: %v", err)
	}
	defer gameApp.Close()

	w, h := gameApp.WindowSize()
	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowTitle("Shooter Game")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	gameApp.ApplyWindowSettings()

	if err := ebiten.RunGame(gameApp); err != nil {
		log.Fatal(err)
	}
}
