package components

// TargetOrigin 靶子的生成来源
type TargetOrigin int

const (
	// TargetFromBatch 开局批量生成
	TargetFromBatch TargetOrigin = iota
	// TargetFromReplacement 点击后补充生成（无论命中与否）
	TargetFromReplacement
)

// String 返回来源名称，用于日志
func (o TargetOrigin) String() string {
	switch o {
	case TargetFromBatch:
		return "batch"
	case TargetFromReplacement:
		return "replacement"
	default:
		return "unknown"
	}
}

// TargetComponent 标记实体为可射击的靶子
type TargetComponent struct {
	Origin TargetOrigin // 生成来源
	// SpawnedAtSecond 生成时的剩余秒数，便于调试统计反应时间
	SpawnedAtSecond int
}
