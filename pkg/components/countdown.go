package components

import "math"

// maxDueTicks 单次 Advance 最多报告的 tick 数
// 调用方只需要把剩余秒数消耗完，更大的值没有意义
const maxDueTicks = math.MaxInt32

// CountdownComponent 倒计时组件
// 将逐帧的 deltaTime 累积为整秒的 tick，由 GameSession 持有
//
// 生命周期：
//   - 开局时 Arm：清空累积时间并开始计时
//   - 结束时 Disarm：停止计时，之后 Advance 永远返回 0
//
// 这样无论以何种方式离开 Running 阶段，都不会有过期的 tick 被投递
type CountdownComponent struct {
	// IntervalSec tick 间隔（秒），默认 1.0
	IntervalSec float64

	// AccumulatedSec 当前未满一个间隔的累积时间（秒）
	AccumulatedSec float64

	// IsArmed 是否正在计时
	IsArmed bool
}

// Arm 启动（或重新启动）倒计时，丢弃之前累积的不足一秒的时间
func (c *CountdownComponent) Arm() {
	if c.IntervalSec <= 0 {
		c.IntervalSec = 1.0
	}
	c.AccumulatedSec = 0
	c.IsArmed = true
}

// Disarm 停止倒计时
func (c *CountdownComponent) Disarm() {
	c.AccumulatedSec = 0
	c.IsArmed = false
}

// Advance 累积 deltaTime，返回本次到期的 tick 数
// 未启动、deltaTime 非正或不是有限值（NaN、±Inf）时返回 0，累积时间不变
// 一次长时间卡顿直接按整除计算到期数，不逐秒循环
func (c *CountdownComponent) Advance(deltaTime float64) int {
	if !c.IsArmed || deltaTime <= 0 || math.IsNaN(deltaTime) || math.IsInf(deltaTime, 0) {
		return 0
	}

	c.AccumulatedSec += deltaTime
	periods := math.Floor(c.AccumulatedSec / c.IntervalSec)
	if periods < 1 {
		return 0
	}
	if periods > maxDueTicks {
		c.AccumulatedSec = 0
		return maxDueTicks
	}

	c.AccumulatedSec -= periods * c.IntervalSec
	if c.AccumulatedSec < 0 {
		c.AccumulatedSec = 0
	}
	return int(periods)
}
