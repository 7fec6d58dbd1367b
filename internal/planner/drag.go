package planner

import (
	"fmt"
	"math"

	"slot-planner/internal/model"
)

// minPreviewHeight 拖拽预览框最小高度（像素）
const minPreviewHeight = 6

// Proposal 拖拽得到的候选区间，已限制在图表窗口内
type Proposal struct {
	Start model.Clock `json:"start"`
	End   model.Clock `json:"end"`
}

// ProposeInterval 将一次拖拽的起止像素转换为候选区间。
// 像素先夹取到图表列内再量跨度；跨度小于 MinDragMinutes 对应的像素数时不产生候选（ok=false），
// 恰好等于阈值时产生。
func ProposeInterval(startPx, endPx float64) (Proposal, bool) {
	startPx, endPx = ClampChartY(startPx), ClampChartY(endPx)
	top := math.Min(startPx, endPx)
	bottom := math.Max(startPx, endPx)
	if bottom-top < MinDragMinutes*PxPerMinute {
		return Proposal{}, false
	}
	return Proposal{
		Start: model.Clock(YToMinutes(top)),
		End:   model.Clock(YToMinutes(bottom)),
	}, true
}

// Within 候选区间必须完全落在 [gapStart, gapEnd] 内，越界返回 ErrOutsideRange（不做夹取）
func (p Proposal) Within(gapStart, gapEnd model.Clock) error {
	if p.Start >= gapStart && p.End <= gapEnd {
		return nil
	}
	return fmt.Errorf("%w: %s–%s 不在 %s–%s 内", ErrOutsideRange, p.Start, p.End, gapStart, gapEnd)
}

// ── 拖拽手势状态机 ──────────────────────────────────────────
//
//   Idle ──Press──▶ Dragging ──Release(<阈值)──▶ Idle
//                            └─Release(≥阈值)──▶ ProposalReady ──Take/Cancel──▶ Idle
//
// Move 只更新预览，从不修改 Store。
// ─────────────────────────────────────────────────────────────

// GestureState 手势状态
type GestureState int

const (
	GestureIdle GestureState = iota
	GestureDragging
	GestureProposalReady
)

func (s GestureState) String() string {
	switch s {
	case GestureIdle:
		return "idle"
	case GestureDragging:
		return "dragging"
	case GestureProposalReady:
		return "proposal_ready"
	default:
		return fmt.Sprintf("GestureState(%d)", int(s))
	}
}

// Preview 拖拽中的预览矩形
type Preview struct {
	Top    float64
	Height float64
}

// DragGesture 单列（某一天）上的一次拖拽交互
type DragGesture struct {
	Day      string
	state    GestureState
	startY   float64
	lastY    float64
	proposal Proposal
}

// NewDragGesture 创建空闲状态的手势
func NewDragGesture(day string) *DragGesture {
	return &DragGesture{Day: day}
}

// State 当前状态
func (g *DragGesture) State() GestureState { return g.state }

// Press 按下：Idle → Dragging
func (g *DragGesture) Press(y float64) error {
	if g.state != GestureIdle {
		return fmt.Errorf("%w: press in %s", ErrGestureState, g.state)
	}
	g.startY = ClampChartY(y)
	g.lastY = g.startY
	g.state = GestureDragging
	return nil
}

// Move 移动：仅返回预览矩形
func (g *DragGesture) Move(y float64) (Preview, error) {
	if g.state != GestureDragging {
		return Preview{}, fmt.Errorf("%w: move in %s", ErrGestureState, g.state)
	}
	cur := ClampChartY(y)
	g.lastY = cur
	height := math.Max(minPreviewHeight, math.Abs(cur-g.startY))
	return Preview{
		Top:    math.Min(g.startY, cur),
		Height: math.Min(height, ChartHeight),
	}, nil
}

// Release 松开：低于阈值回到 Idle（ok=false），否则进入 ProposalReady。
// y 非有限值时退回最近一次 Move 的坐标。
func (g *DragGesture) Release(y float64) (Proposal, bool, error) {
	if g.state != GestureDragging {
		return Proposal{}, false, fmt.Errorf("%w: release in %s", ErrGestureState, g.state)
	}
	end := g.lastY
	if !math.IsNaN(y) && !math.IsInf(y, 0) {
		end = ClampChartY(y)
	}

	p, ok := ProposeInterval(g.startY, end)
	if !ok {
		g.reset()
		return Proposal{}, false, nil
	}
	g.proposal = p
	g.state = GestureProposalReady
	return p, true, nil
}

// Take 取走候选区间交给创建流程：ProposalReady → Idle
func (g *DragGesture) Take() (Proposal, error) {
	if g.state != GestureProposalReady {
		return Proposal{}, fmt.Errorf("%w: take in %s", ErrGestureState, g.state)
	}
	p := g.proposal
	g.reset()
	return p, nil
}

// Cancel 放弃当前拖拽或候选区间，任何状态下都回到 Idle
func (g *DragGesture) Cancel() {
	g.reset()
}

func (g *DragGesture) reset() {
	g.state = GestureIdle
	g.startY, g.lastY = 0, 0
	g.proposal = Proposal{}
}
