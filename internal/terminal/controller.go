package terminal

import (
	"context"
	"log"

	"github.com/gdamore/tcell/v2"

	"github.com/shubham-gund/shooter-game/pkg/config"
	"github.com/shubham-gund/shooter-game/pkg/game"
)

// Commander 接收会话命令，由 game.SessionRunner 实现
type Commander interface {
	Submit(ctx context.Context, cmd game.Command) error
	Snapshot(ctx context.Context) (game.Snapshot, error)
}

// Controller 终端事件循环：读取键盘和鼠标事件，转发为会话命令，
// 并在收到新快照时重新绘制
type Controller struct {
	screen    tcell.Screen
	renderer  *Renderer
	snapshots chan game.Snapshot

	// 上一个鼠标事件的按键状态，用于识别按下的瞬间
	buttons tcell.ButtonMask
}

// NewController 创建控制器
func NewController(screen tcell.Screen, cfg *config.GameConfig) *Controller {
	return &Controller{
		screen:    screen,
		renderer:  NewRenderer(screen, cfg),
		snapshots: make(chan game.Snapshot, 1),
	}
}

// Publish 接收新快照，可作为 game.SnapshotListener 使用
// 只保留最新的一个，不会阻塞调用方
func (c *Controller) Publish(snap game.Snapshot) {
	for {
		select {
		case c.snapshots <- snap:
			return
		default:
		}
		// 丢弃尚未绘制的旧快照
		select {
		case <-c.snapshots:
		default:
		}
	}
}

// Renderer 返回控制器使用的渲染器
func (c *Controller) Renderer() *Renderer {
	return c.renderer
}

// Run 运行事件循环，直到用户退出或 ctx 被取消
func (c *Controller) Run(ctx context.Context, commands Commander) error {
	snap, err := commands.Snapshot(ctx)
	if err != nil {
		return err
	}
	c.renderer.Draw(snap)

	events := make(chan tcell.Event, 16)
	go func() {
		for {
			ev := c.screen.PollEvent()
			if ev == nil {
				// 屏幕已经 Fini
				return
			}
			select {
			case events <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case snap := <-c.snapshots:
			c.renderer.Draw(snap)

		case ev := <-events:
			quit, err := c.HandleEvent(ctx, commands, ev)
			if err != nil {
				return err
			}
			if quit {
				log.Printf("[Terminal] Quit requested")
				return nil
			}
		}
	}
}

// HandleEvent 处理一个终端事件，返回是否退出
func (c *Controller) HandleEvent(ctx context.Context, commands Commander, ev tcell.Event) (bool, error) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return true, nil
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q', 'Q':
				return true, nil
			case 's', 'S', 'r', 'R':
				return false, commands.Submit(ctx, game.StartCommand())
			case 'e', 'E':
				return false, commands.Submit(ctx, game.EndCommand())
			}
		}

	case *tcell.EventMouse:
		pressed := ev.Buttons()&tcell.Button1 != 0 && c.buttons&tcell.Button1 == 0
		c.buttons = ev.Buttons()
		if pressed {
			col, row := ev.Position()
			return false, c.click(ctx, commands, col, row)
		}

	case *tcell.EventResize:
		c.screen.Sync()
		c.renderer.Redraw()
	}

	return false, nil
}

// click 把字符格上的点击转换为会话命令
// 游戏区域之外（HUD 文本处）的点击被忽略
func (c *Controller) click(ctx context.Context, commands Commander, col, row int) error {
	if c.renderer.OnStartButton(col, row) {
		return commands.Submit(ctx, game.StartCommand())
	}
	if !c.renderer.InPlayArea(col, row) {
		return nil
	}
	if id, ok := c.renderer.TargetAt(col, row); ok {
		return commands.Submit(ctx, game.HitCommand(id))
	}
	return commands.Submit(ctx, game.MissCommand())
}
