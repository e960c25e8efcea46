package components

// ClickableComponent 标记实体可以被鼠标点击
// 定义了可点击区域的尺寸和是否启用点击
// 可点击区域从 PositionComponent 的 (X, Y) 向右下方延伸
type ClickableComponent struct {
	Width     float64 // 可点击区域的宽度(像素)
	Height    float64 // 可点击区域的高度(像素)
	IsEnabled bool    // 是否可以被点击
}

// Contains 检查点 (x, y) 是否落在以 (originX, originY) 为左上角的可点击区域内
// 左上边界包含，右下边界不包含，相邻靶子不会同时命中边界点
func (c *ClickableComponent) Contains(originX, originY, x, y float64) bool {
	if !c.IsEnabled {
		return false
	}
	return x >= originX && x < originX+c.Width &&
		y >= originY && y < originY+c.Height
}
