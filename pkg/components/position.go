package components

// PositionComponent 存储实体在游戏区域内的位置
// 坐标原点为游戏区域左上角，X 向右、Y 向下（像素）
// 对靶子而言 (X, Y) 是其包围方块的左上角
type PositionComponent struct {
	X float64
	Y float64
}
