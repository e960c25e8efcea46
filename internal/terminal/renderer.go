// Package terminal 终端版打靶游戏的渲染和输入处理
//
// 游戏区域按比例缩放到终端网格：每个靶子占据其中心点所在的一个字符格，
// 点击某个字符格等价于点击该格中最上层的靶子。
package terminal

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/shubham-gund/shooter-game/pkg/config"
	"github.com/shubham-gund/shooter-game/pkg/ecs"
	"github.com/shubham-gund/shooter-game/pkg/game"
)

// HUDRows 顶部信息栏占用的行数
const HUDRows = 2

// TargetRune 靶子字符
const TargetRune = '●'

// StartLabel HUD 中的开始按钮
const StartLabel = "[ Start ]"

var (
	styleHUD    = tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorNavy)
	styleButton = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorGreen)
	styleHelp   = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleArea   = tcell.StyleDefault.Background(tcell.ColorBlack)
	styleTarget = tcell.StyleDefault.Foreground(tcell.ColorRed).Background(tcell.ColorBlack)
	styleBanner = tcell.StyleDefault.Foreground(tcell.ColorYellow).Background(tcell.ColorBlack).Bold(true)
)

type cell struct {
	col, row int
}

// Renderer 把会话快照绘制到 tcell 屏幕上
// 同时记录每个字符格对应的靶子，供点击检测使用
type Renderer struct {
	screen tcell.Screen
	cfg    *config.GameConfig

	cells map[cell]ecs.EntityID
	last  game.Snapshot
}

// NewRenderer 创建渲染器
func NewRenderer(screen tcell.Screen, cfg *config.GameConfig) *Renderer {
	return &Renderer{
		screen: screen,
		cfg:    cfg,
		cells:  make(map[cell]ecs.EntityID),
	}
}

// Draw 绘制快照并刷新屏幕
func (r *Renderer) Draw(snap game.Snapshot) {
	r.last = snap
	r.screen.Clear()

	cols, rows := r.screen.Size()
	r.drawHUD(snap, cols)

	clear(r.cells)
	if rows > HUDRows {
		r.fill(0, HUDRows, cols, rows-HUDRows, styleArea)

		// 按生成顺序绘制，后绘制的靶子覆盖同一格中先绘制的
		for _, t := range snap.Targets {
			c := r.targetCell(t, cols, rows)
			r.cells[c] = t.ID
			r.screen.SetContent(c.col, c.row, TargetRune, nil, styleTarget)
		}

		switch snap.Phase {
		case game.PhaseIdle:
			r.drawBanner(cols, rows, "Press s or click [ Start ] to begin")
		case game.PhaseOver:
			r.drawBanner(cols, rows,
				"GAME OVER",
				fmt.Sprintf("Score: %d  Clicks: %d  Missed: %d", snap.Score, snap.TotalClicks, snap.MissedClicks),
				fmt.Sprintf("Accuracy: %.2f%%", snap.Accuracy),
				"Press r to play again",
			)
		}
	}

	r.screen.Show()
}

// Redraw 重新绘制最近一次的快照（终端尺寸变化时使用）
func (r *Renderer) Redraw() {
	r.Draw(r.last)
}

// TargetAt 返回字符格中显示的靶子
func (r *Renderer) TargetAt(col, row int) (ecs.EntityID, bool) {
	id, ok := r.cells[cell{col, row}]
	return id, ok
}

// InPlayArea 检查字符格是否位于游戏区域内
func (r *Renderer) InPlayArea(col, row int) bool {
	cols, rows := r.screen.Size()
	return col >= 0 && col < cols && row >= HUDRows && row < rows
}

// OnStartButton 检查字符格是否位于开始按钮上
func (r *Renderer) OnStartButton(col, row int) bool {
	return row == 0 && col >= 0 && col < len(StartLabel)
}

// targetCell 计算靶子中心点所在的字符格
func (r *Renderer) targetCell(t game.Target, cols, rows int) cell {
	areaRows := rows - HUDRows
	half := r.cfg.TargetSize / 2

	col := int((t.X + half) / r.cfg.Area.Width * float64(cols))
	row := int((t.Y + half) / r.cfg.Area.Height * float64(areaRows))

	return cell{
		col: clampInt(col, 0, cols-1),
		row: HUDRows + clampInt(row, 0, areaRows-1),
	}
}

func (r *Renderer) drawHUD(snap game.Snapshot, cols int) {
	r.fill(0, 0, cols, 1, styleHUD)

	label := StartLabel
	if snap.Phase != game.PhaseIdle {
		label = "[Restart]"
	}
	r.print(0, 0, label, styleButton)

	status := fmt.Sprintf(" Time: %2ds  Score: %d  Accuracy: %.2f%%", snap.TimeRemaining, snap.Score, snap.Accuracy)
	r.print(len(label), 0, status, styleHUD)

	r.print(0, 1, "click targets | s/r: start  e: end round  q/Esc: quit", styleHelp)
}

// drawBanner 在游戏区域中央绘制多行文字
func (r *Renderer) drawBanner(cols, rows int, lines ...string) {
	areaRows := rows - HUDRows
	top := HUDRows + (areaRows-len(lines))/2
	for i, line := range lines {
		x := (cols - len([]rune(line))) / 2
		r.print(max(x, 0), top+i, line, styleBanner)
	}
}

func (r *Renderer) fill(x, y, w, h int, style tcell.Style) {
	for row := y; row < y+h; row++ {
		for col := x; col < x+w; col++ {
			r.screen.SetContent(col, row, ' ', nil, style)
		}
	}
}

func (r *Renderer) print(x, y int, s string, style tcell.Style) {
	for _, ch := range s {
		r.screen.SetContent(x, y, ch, nil, style)
		x++
	}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
