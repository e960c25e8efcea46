package game

import (
	"context"
	"errors"
	"log"
	"sync/atomic"
	"time"

	"github.com/shubham-gund/shooter-game/pkg/ecs"
)

// DefaultFrameInterval SessionRunner 默认帧间隔（60 FPS）
const DefaultFrameInterval = time.Second / 60

var (
	// ErrRunnerStopped Run 已经返回，无法再提交命令
	ErrRunnerStopped = errors.New("session runner stopped")
	// ErrRunnerAlreadyRunning Run 被重复调用
	ErrRunnerAlreadyRunning = errors.New("session runner already running")
)

// Command 在会话所属的 goroutine 上执行的操作
type Command func(s *GameSession)

// StartCommand 开始或重新开始
func StartCommand() Command {
	return func(s *GameSession) { s.Start() }
}

// HitCommand 点击指定ID的靶子
func HitCommand(id ecs.EntityID) Command {
	return func(s *GameSession) { s.HitTarget(id) }
}

// HitKeyCommand 点击文本形式ID的靶子
func HitKeyCommand(key string) Command {
	return func(s *GameSession) { s.HitTargetKey(key) }
}

// MissCommand 点击空白区域
func MissCommand() Command {
	return func(s *GameSession) { s.RegisterBackgroundMiss() }
}

// EndCommand 提前结束本局
func EndCommand() Command {
	return func(s *GameSession) { s.End() }
}

// SnapshotListener 状态变化回调，在 runner 的 goroutine 上调用，不能阻塞
type SnapshotListener func(Snapshot)

// request 发往 runner 的请求
// readOnly 请求只读取快照，不执行命令也不触发回调
type request struct {
	cmd      Command
	readOnly bool
	reply    chan Snapshot
}

// SessionRunner 在单独的 goroutine 上独占一个 GameSession
//
// 所有命令通过 channel 串行执行；帧定时器只在 Running 阶段存在，
// 按 TimeProvider 给出的真实间隔推进倒计时。
type SessionRunner struct {
	session       *GameSession
	clock         TimeProvider
	frameInterval time.Duration
	listener      SnapshotListener

	incoming chan request
	done     chan struct{}
	running  atomic.Bool
}

// RunnerOption SessionRunner 构造选项
type RunnerOption func(*SessionRunner)

// WithTimeProvider 指定时间来源
func WithTimeProvider(clock TimeProvider) RunnerOption {
	return func(r *SessionRunner) {
		r.clock = clock
	}
}

// WithFrameInterval 指定帧间隔
func WithFrameInterval(d time.Duration) RunnerOption {
	return func(r *SessionRunner) {
		if d > 0 {
			r.frameInterval = d
		}
	}
}

// WithSnapshotListener 指定状态变化回调
func WithSnapshotListener(fn SnapshotListener) RunnerOption {
	return func(r *SessionRunner) {
		r.listener = fn
	}
}

// NewSessionRunner 创建 runner，session 的所有权转移给 runner
func NewSessionRunner(session *GameSession, opts ...RunnerOption) *SessionRunner {
	r := &SessionRunner{
		session:       session,
		clock:         NewMonotonicTimeProvider(),
		frameInterval: DefaultFrameInterval,
		incoming:      make(chan request),
		done:          make(chan struct{}),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run 运行事件循环，直到 ctx 被取消
// 退出时释放帧定时器并关闭会话
func (r *SessionRunner) Run(ctx context.Context) error {
	if !r.running.CompareAndSwap(false, true) {
		return ErrRunnerAlreadyRunning
	}

	var (
		ticker *time.Ticker
		frames <-chan time.Time
		last   time.Time
		rounds int
	)

	stopTicker := func() {
		if ticker != nil {
			ticker.Stop()
			ticker = nil
			frames = nil
		}
	}

	// syncTicker 根据阶段创建或释放帧定时器
	// 每次 Start 之后都重置计时基准
	syncTicker := func() {
		if r.session.Phase() != PhaseRunning {
			stopTicker()
			return
		}
		if ticker == nil {
			ticker = time.NewTicker(r.frameInterval)
			frames = ticker.C
		}
		if r.session.Rounds() != rounds {
			rounds = r.session.Rounds()
			last = r.clock.Now()
		}
	}

	defer func() {
		stopTicker()
		r.session.Close()
		close(r.done)
		log.Printf("[SessionRunner] Stopped")
	}()

	log.Printf("[SessionRunner] Started (frame interval %v)", r.frameInterval)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case req := <-r.incoming:
			if !req.readOnly && req.cmd != nil {
				req.cmd(r.session)
				syncTicker()
				r.publish()
			}
			req.reply <- r.session.Snapshot()

		case <-frames:
			now := r.clock.Now()
			dt := now.Sub(last).Seconds()
			last = now

			before := r.session.TimeRemaining()
			r.session.Update(dt)
			changed := r.session.TimeRemaining() != before || r.session.Phase() != PhaseRunning

			syncTicker()
			if changed {
				r.publish()
			}
		}
	}
}

// Submit 提交命令并等待其执行完毕
func (r *SessionRunner) Submit(ctx context.Context, cmd Command) error {
	_, err := r.roundTrip(ctx, request{cmd: cmd})
	return err
}

// Snapshot 读取当前状态
func (r *SessionRunner) Snapshot(ctx context.Context) (Snapshot, error) {
	return r.roundTrip(ctx, request{readOnly: true})
}

// Done 返回在 Run 退出后关闭的 channel
func (r *SessionRunner) Done() <-chan struct{} {
	return r.done
}

func (r *SessionRunner) roundTrip(ctx context.Context, req request) (Snapshot, error) {
	req.reply = make(chan Snapshot, 1)

	select {
	case r.incoming <- req:
	case <-r.done:
		return Snapshot{}, ErrRunnerStopped
	case <-ctx.Done():
		return Snapshot{}, ctx.Err()
	}

	// 请求已被接收，runner 一定会回复
	return <-req.reply, nil
}

func (r *SessionRunner) publish() {
	if r.listener != nil {
		r.listener(r.session.Snapshot())
	}
}
