package game

import (
	"log"
	"math/rand/v2"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/shubham-gund/shooter-game/pkg/components"
	"github.com/shubham-gund/shooter-game/pkg/config"
	"github.com/shubham-gund/shooter-game/pkg/ecs"
	"github.com/shubham-gund/shooter-game/pkg/entities"
)

// Phase 表示一局游戏的生命周期阶段
// 用单一枚举代替 "已开始/已结束" 两个布尔值，避免出现两者同时为真的无意义组合
type Phase int

const (
	// PhaseIdle 初始状态，尚未开始过
	PhaseIdle Phase = iota
	// PhaseRunning 倒计时进行中，靶子存活
	PhaseRunning
	// PhaseOver 倒计时归零，等待重新开始
	PhaseOver
)

// String 返回阶段名称
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "Idle"
	case PhaseRunning:
		return "Running"
	case PhaseOver:
		return "Over"
	default:
		return "Unknown"
	}
}

// Target 靶子的只读快照
type Target struct {
	ID ecs.EntityID
	X  float64
	Y  float64
}

// Snapshot 会话状态的只读投影，每次变更后供表现层重新渲染
// 所有字段都是值拷贝，可以安全地跨 goroutine 传递
type Snapshot struct {
	RoundID       string
	Phase         Phase
	Targets       []Target
	Score         int
	TotalClicks   int
	MissedClicks  int
	Accuracy      float64
	TimeRemaining int
}

// SessionOption 会话构造选项
type SessionOption func(*GameSession)

// WithRandomSource 指定靶子位置的随机数来源（测试中用于固定随机序列）
func WithRandomSource(rng entities.RandomSource) SessionOption {
	return func(s *GameSession) {
		s.rng = rng
	}
}

// WithRoundIDGenerator 指定每局ID的生成函数，默认使用 UUID
func WithRoundIDGenerator(fn func() string) SessionOption {
	return func(s *GameSession) {
		s.newRoundID = fn
	}
}

// GameSession 一局打靶游戏的全部状态
//
// 状态机：Idle → Running → Over，Start 可以从任何阶段进入 Running。
// 非 Running 阶段调用 HitTarget / RegisterBackgroundMiss / Tick 均为空操作。
//
// GameSession 不是并发安全的：所有方法必须在同一个 goroutine 上调用。
// ebiten 的 Update 循环天然满足这一点，多线程宿主请使用 SessionRunner。
type GameSession struct {
	cfg           *config.GameConfig
	entityManager *ecs.EntityManager
	rng           entities.RandomSource
	newRoundID    func() string

	// 倒计时资源：只在 Start 中启动，在 End 中释放
	countdown components.CountdownComponent

	phase   Phase
	roundID string
	// rounds 调用 Start 的次数，每次开局都不同（roundID 可能由外部生成而重复）
	rounds int

	score         int
	totalClicks   int
	missedClicks  int
	accuracy      float64
	timeRemaining int
}

// NewGameSession 创建一个处于 Idle 阶段的会话
// cfg 为 nil 时使用默认配置
func NewGameSession(cfg *config.GameConfig, opts ...SessionOption) *GameSession {
	if cfg == nil {
		cfg = config.DefaultGameConfig()
	}

	s := &GameSession{
		cfg:           cfg,
		entityManager: ecs.NewEntityManager(),
		rng:           rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 1)),
		newRoundID:    uuid.NewString,
		countdown:     components.CountdownComponent{IntervalSec: 1.0},
		phase:         PhaseIdle,
		accuracy:      100,
		timeRemaining: cfg.RoundSeconds,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start 开始（或重新开始）一局游戏
// 任何阶段都可以调用：重置计数、生成开局靶子、重新启动倒计时
func (s *GameSession) Start() {
	previous := s.phase

	// 清除上一局残留的靶子（重新开始时）
	s.clearTargets()

	s.roundID = s.newRoundID()
	s.rounds++
	s.score = 0
	s.totalClicks = 0
	s.missedClicks = 0
	s.timeRemaining = s.cfg.RoundSeconds
	s.recalculateAccuracy()

	for i := 0; i < s.cfg.InitialTargets; i++ {
		s.spawnTarget(components.TargetFromBatch)
	}

	s.phase = PhaseRunning
	s.countdown.Arm()

	log.Printf("[GameSession] Round %s started (previous phase: %s, targets: %d, time: %ds)",
		s.roundID, previous, s.TargetCount(), s.timeRemaining)
}

// Tick 倒计时前进一秒，仅在 Running 阶段有效
// 剩余时间降到 0 时结束本局，显示值不会小于 0
func (s *GameSession) Tick() {
	if s.phase != PhaseRunning {
		return
	}

	s.timeRemaining--
	if s.timeRemaining <= 0 {
		s.timeRemaining = 0
		s.End()
	}
}

// End 结束本局：清空靶子、停止倒计时
// 得分和命中率保持不变，供结算界面显示
func (s *GameSession) End() {
	if s.phase != PhaseRunning {
		return
	}

	s.phase = PhaseOver
	s.countdown.Disarm()
	s.clearTargets()

	log.Printf("[GameSession] Round %s over: score=%d clicks=%d missed=%d accuracy=%.2f%%",
		s.roundID, s.score, s.totalClicks, s.missedClicks, s.accuracy)
}

// HitTarget 处理一次对靶子的点击，仅在 Running 阶段有效
//
// 无论目标是否仍然存在，都会补充生成一个新靶子：
//   - 目标存在：得分 +1，移除该靶子
//   - 目标不存在（ID 已失效，例如重复点击）：记为未命中
func (s *GameSession) HitTarget(id ecs.EntityID) {
	if s.phase != PhaseRunning {
		return
	}

	s.totalClicks++

	if target, ok := s.liveTarget(id); ok {
		s.score++
		s.entityManager.DestroyEntity(id)
		s.entityManager.RemoveMarkedEntities()
		log.Printf("[GameSession] ✓ Hit %s target %d after %ds (score=%d)",
			target.Origin, id, target.SpawnedAtSecond-s.timeRemaining, s.score)
	} else {
		s.missedClicks++
		log.Printf("[GameSession] Stale target id %d counted as miss (replacement still spawned)", id)
	}

	s.spawnTarget(components.TargetFromReplacement)
	s.recalculateAccuracy()
}

// HitTargetKey 与 HitTarget 相同，但接受外部传入的文本形式ID
// 无法解析的 key 视为已失效的ID（记为未命中），不会报错
func (s *GameSession) HitTargetKey(key string) {
	id, err := strconv.ParseUint(strings.TrimSpace(key), 10, 64)
	if err != nil {
		s.HitTarget(ecs.InvalidEntity)
		return
	}
	s.HitTarget(ecs.EntityID(id))
}

// RegisterBackgroundMiss 处理一次点击空白区域，仅在 Running 阶段有效
// 不改变靶子
func (s *GameSession) RegisterBackgroundMiss() {
	if s.phase != PhaseRunning {
		return
	}

	s.totalClicks++
	s.missedClicks++
	s.recalculateAccuracy()
}

// Update 按帧推进倒计时
// deltaTime 为距上一帧经过的秒数，累积满一秒触发一次 Tick
// 长时间卡顿最多补发到剩余时间归零所需的 Tick 数
func (s *GameSession) Update(deltaTime float64) {
	due := min(s.countdown.Advance(deltaTime), s.timeRemaining)
	for i := 0; i < due && s.phase == PhaseRunning; i++ {
		s.Tick()
	}
}

// Close 释放会话持有的倒计时和全部实体
// 进行中的一局会被直接结束
func (s *GameSession) Close() {
	s.End()
	s.countdown.Disarm()

	released := s.entityManager.EntityCount()
	s.entityManager.DestroyAll()
	s.entityManager.RemoveMarkedEntities()
	log.Printf("[GameSession] Closed (released %d entities)", released)
}

// Snapshot 返回当前状态的只读拷贝
// 靶子按生成顺序排列（实体ID单调递增）
func (s *GameSession) Snapshot() Snapshot {
	ids := ecs.GetEntitiesWith2[*components.PositionComponent, *components.TargetComponent](s.entityManager)

	targets := make([]Target, 0, len(ids))
	for _, id := range ids {
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)
		targets = append(targets, Target{ID: id, X: pos.X, Y: pos.Y})
	}

	return Snapshot{
		RoundID:       s.roundID,
		Phase:         s.phase,
		Targets:       targets,
		Score:         s.score,
		TotalClicks:   s.totalClicks,
		MissedClicks:  s.missedClicks,
		Accuracy:      s.accuracy,
		TimeRemaining: s.timeRemaining,
	}
}

// Phase 返回当前阶段
func (s *GameSession) Phase() Phase { return s.phase }

// RoundID 返回当前（或最近一局）的ID，Idle 阶段为空字符串
func (s *GameSession) RoundID() string { return s.roundID }

// Rounds 返回已经开始过的局数
func (s *GameSession) Rounds() int { return s.rounds }

// Score 返回命中数
func (s *GameSession) Score() int { return s.score }

// TotalClicks 返回总点击数
func (s *GameSession) TotalClicks() int { return s.totalClicks }

// MissedClicks 返回未命中数
func (s *GameSession) MissedClicks() int { return s.missedClicks }

// Accuracy 返回命中率（百分比）
func (s *GameSession) Accuracy() float64 { return s.accuracy }

// TimeRemaining 返回剩余秒数
func (s *GameSession) TimeRemaining() int { return s.timeRemaining }

// TargetCount 返回存活靶子数量
func (s *GameSession) TargetCount() int {
	return len(ecs.GetEntitiesWith1[*components.TargetComponent](s.entityManager))
}

// Config 返回会话使用的配置
func (s *GameSession) Config() *config.GameConfig { return s.cfg }

// liveTarget 返回ID对应的存活靶子
func (s *GameSession) liveTarget(id ecs.EntityID) (*components.TargetComponent, bool) {
	if id == ecs.InvalidEntity {
		return nil, false
	}
	return ecs.GetComponent[*components.TargetComponent](s.entityManager, id)
}

// spawnTarget 在随机位置生成一个新靶子
func (s *GameSession) spawnTarget(origin components.TargetOrigin) ecs.EntityID {
	return entities.NewTargetEntity(s.entityManager, s.rng, s.cfg, origin, s.timeRemaining)
}

// clearTargets 移除所有靶子
// 实体ID计数器不重置，新一局的靶子ID不会与旧ID冲突
func (s *GameSession) clearTargets() {
	for _, id := range ecs.GetEntitiesWith1[*components.TargetComponent](s.entityManager) {
		s.entityManager.DestroyEntity(id)
	}
	s.entityManager.RemoveMarkedEntities()
}

// recalculateAccuracy 根据会话自身持有的最新计数重新计算命中率
func (s *GameSession) recalculateAccuracy() {
	s.accuracy = CalculateAccuracy(s.totalClicks, s.missedClicks)
}

// CalculateAccuracy 计算命中率百分比
// 总点击数为 0 时定义为 100
func CalculateAccuracy(totalClicks, missedClicks int) float64 {
	if totalClicks <= 0 {
		return 100
	}
	return float64(totalClicks-missedClicks) / float64(totalClicks) * 100
}
