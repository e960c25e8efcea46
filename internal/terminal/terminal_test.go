package terminal

import (
	"context"
	"math/rand/v2"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/shubham-gund/shooter-game/pkg/config"
	"github.com/shubham-gund/shooter-game/pkg/game"
)

// newTestScreen 创建 80x22 的模拟屏幕（游戏区域 20 行）
func newTestScreen(t *testing.T) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("screen.Init() error: %v", err)
	}
	screen.SetSize(80, 22)
	t.Cleanup(screen.Fini)
	return screen
}

// directCommander 在当前 goroutine 上直接执行命令
type directCommander struct {
	session *game.GameSession
	submits int
}

func (d *directCommander) Submit(_ context.Context, cmd game.Command) error {
	d.submits++
	cmd(d.session)
	return nil
}

func (d *directCommander) Snapshot(context.Context) (game.Snapshot, error) {
	return d.session.Snapshot(), nil
}

func newCommander() *directCommander {
	return &directCommander{
		session: game.NewGameSession(config.DefaultGameConfig(),
			game.WithRandomSource(rand.New(rand.NewPCG(3, 4)))),
	}
}

func runeAt(screen tcell.Screen, col, row int) rune {
	mainc, _, _, _ := screen.GetContent(col, row)
	return mainc
}

func TestRenderer_TargetCells(t *testing.T) {
	screen := newTestScreen(t)
	r := NewRenderer(screen, config.DefaultGameConfig())

	snap := game.Snapshot{
		Phase: game.PhaseRunning,
		Targets: []game.Target{
			{ID: 1, X: 0, Y: 0},     // 中心 (10, 10) → 第 1 列，区域第 0 行
			{ID: 2, X: 780, Y: 380}, // 中心 (790, 390) → 第 79 列，区域第 19 行
			{ID: 3, X: 2, Y: 2},     // 与 1 同一格，后绘制
		},
	}
	r.Draw(snap)

	if got := runeAt(screen, 1, HUDRows); got != TargetRune {
		t.Errorf("cell (1, %d) = %q, want target", HUDRows, got)
	}
	if got := runeAt(screen, 79, HUDRows+19); got != TargetRune {
		t.Errorf("cell (79, %d) = %q, want target", HUDRows+19, got)
	}

	if id, ok := r.TargetAt(1, HUDRows); !ok || id != 3 {
		t.Errorf("TargetAt(1, %d) = (%d, %v), want topmost target 3", HUDRows, id, ok)
	}
	if id, ok := r.TargetAt(79, HUDRows+19); !ok || id != 2 {
		t.Errorf("TargetAt(79, %d) = (%d, %v), want 2", HUDRows+19, id, ok)
	}
	if _, ok := r.TargetAt(40, 10); ok {
		t.Error("TargetAt(40, 10) should be empty")
	}
}

func TestRenderer_RedrawClearsOldTargets(t *testing.T) {
	screen := newTestScreen(t)
	r := NewRenderer(screen, config.DefaultGameConfig())

	r.Draw(game.Snapshot{Phase: game.PhaseRunning, Targets: []game.Target{{ID: 1, X: 0, Y: 0}}})
	r.Draw(game.Snapshot{Phase: game.PhaseOver})

	if _, ok := r.TargetAt(1, HUDRows); ok {
		t.Error("targets from previous snapshot should be forgotten")
	}
	if got := runeAt(screen, 1, HUDRows); got == TargetRune {
		t.Error("target glyph should be cleared")
	}
}

func TestRenderer_Regions(t *testing.T) {
	screen := newTestScreen(t)
	r := NewRenderer(screen, config.DefaultGameConfig())

	tests := []struct {
		name         string
		col, row     int
		wantArea     bool
		wantStartBtn bool
	}{
		{"开始按钮", 0, 0, false, true},
		{"按钮右侧状态栏", len(StartLabel), 0, false, false},
		{"帮助行", 5, 1, false, false},
		{"游戏区域", 10, HUDRows, true, false},
		{"屏幕外", 10, 22, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.InPlayArea(tt.col, tt.row); got != tt.wantArea {
				t.Errorf("InPlayArea(%d, %d) = %v, want %v", tt.col, tt.row, got, tt.wantArea)
			}
			if got := r.OnStartButton(tt.col, tt.row); got != tt.wantStartBtn {
				t.Errorf("OnStartButton(%d, %d) = %v, want %v", tt.col, tt.row, got, tt.wantStartBtn)
			}
		})
	}
}

func TestController_Keys(t *testing.T) {
	screen := newTestScreen(t)
	c := NewController(screen, config.DefaultGameConfig())
	cmd := newCommander()
	ctx := context.Background()

	quit, err := c.HandleEvent(ctx, cmd, tcell.NewEventKey(tcell.KeyRune, 's', tcell.ModNone))
	if err != nil || quit {
		t.Fatalf("HandleEvent('s') = (%v, %v)", quit, err)
	}
	if cmd.session.Phase() != game.PhaseRunning {
		t.Errorf("phase = %v, want Running", cmd.session.Phase())
	}

	// e 提前结束本局
	if quit, err := c.HandleEvent(ctx, cmd, tcell.NewEventKey(tcell.KeyRune, 'e', tcell.ModNone)); err != nil || quit {
		t.Fatalf("HandleEvent('e') = (%v, %v)", quit, err)
	}
	if cmd.session.Phase() != game.PhaseOver || len(cmd.session.Snapshot().Targets) != 0 {
		t.Errorf("after e: phase=%v targets=%d, want Over 0", cmd.session.Phase(), len(cmd.session.Snapshot().Targets))
	}

	quitKeys := []*tcell.EventKey{
		tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone),
		tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone),
		tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl),
	}
	for _, ev := range quitKeys {
		if quit, _ := c.HandleEvent(ctx, cmd, ev); !quit {
			t.Errorf("key %v should quit", ev.Name())
		}
	}
}

func TestController_ClickTargetAndMiss(t *testing.T) {
	screen := newTestScreen(t)
	c := NewController(screen, config.DefaultGameConfig())
	cmd := newCommander()
	ctx := context.Background()

	cmd.session.Start()
	c.Renderer().Draw(cmd.session.Snapshot())

	// 找到一个有靶子的格子和一个空格子
	hitCol, hitRow, missCol, missRow := -1, -1, -1, -1
	for row := HUDRows; row < 22; row++ {
		for col := 0; col < 80; col++ {
			_, ok := c.Renderer().TargetAt(col, row)
			if ok && hitCol < 0 {
				hitCol, hitRow = col, row
			}
			if !ok && missCol < 0 {
				missCol, missRow = col, row
			}
		}
	}
	if hitCol < 0 || missCol < 0 {
		t.Fatal("could not find target and empty cells")
	}

	click := func(col, row int) {
		t.Helper()
		if _, err := c.HandleEvent(ctx, cmd, tcell.NewEventMouse(col, row, tcell.Button1, tcell.ModNone)); err != nil {
			t.Fatalf("HandleEvent(press) error: %v", err)
		}
		if _, err := c.HandleEvent(ctx, cmd, tcell.NewEventMouse(col, row, tcell.ButtonNone, tcell.ModNone)); err != nil {
			t.Fatalf("HandleEvent(release) error: %v", err)
		}
	}

	click(hitCol, hitRow)
	if cmd.session.Score() != 1 || cmd.session.TotalClicks() != 1 {
		t.Errorf("after hit: score=%d clicks=%d, want 1 1", cmd.session.Score(), cmd.session.TotalClicks())
	}

	click(missCol, missRow)
	if cmd.session.MissedClicks() != 1 || cmd.session.TotalClicks() != 2 {
		t.Errorf("after miss: missed=%d clicks=%d, want 1 2", cmd.session.MissedClicks(), cmd.session.TotalClicks())
	}

	// HUD 帮助行上的点击被忽略
	click(5, 1)
	if cmd.session.TotalClicks() != 2 {
		t.Errorf("HUD click counted: clicks=%d", cmd.session.TotalClicks())
	}
}

// TestController_DragIsSingleClick 按住拖动只算一次点击
func TestController_DragIsSingleClick(t *testing.T) {
	screen := newTestScreen(t)
	c := NewController(screen, config.DefaultGameConfig())
	cmd := newCommander()
	ctx := context.Background()

	cmd.session.Start()
	c.Renderer().Draw(game.Snapshot{Phase: game.PhaseRunning})

	for col := 10; col < 15; col++ {
		if _, err := c.HandleEvent(ctx, cmd, tcell.NewEventMouse(col, 10, tcell.Button1, tcell.ModNone)); err != nil {
			t.Fatalf("HandleEvent error: %v", err)
		}
	}

	if cmd.submits != 1 {
		t.Errorf("submits = %d, want 1", cmd.submits)
	}
}

func TestController_StartButtonClick(t *testing.T) {
	screen := newTestScreen(t)
	c := NewController(screen, config.DefaultGameConfig())
	cmd := newCommander()

	if _, err := c.HandleEvent(context.Background(), cmd, tcell.NewEventMouse(2, 0, tcell.Button1, tcell.ModNone)); err != nil {
		t.Fatalf("HandleEvent error: %v", err)
	}
	if cmd.session.Phase() != game.PhaseRunning {
		t.Errorf("phase = %v, want Running", cmd.session.Phase())
	}
}

// TestController_PublishKeepsLatest 未绘制的快照只保留最新一个
func TestController_PublishKeepsLatest(t *testing.T) {
	screen := newTestScreen(t)
	c := NewController(screen, config.DefaultGameConfig())

	c.Publish(game.Snapshot{Score: 1})
	c.Publish(game.Snapshot{Score: 2})

	select {
	case snap := <-c.snapshots:
		if snap.Score != 2 {
			t.Errorf("Score = %d, want 2", snap.Score)
		}
	default:
		t.Fatal("no snapshot published")
	}
}
