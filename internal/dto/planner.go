package dto

// ── 空闲区间 / 周视图 / 拖拽 DTO ──

// GapQuery 空闲区间查询参数
type GapQuery struct {
	Day   string `form:"day"   binding:"required"`
	Month string `form:"month" binding:"required"`
}

// WeekQuery 周视图查询参数
type WeekQuery struct {
	Month string `form:"month" binding:"required"`
}

// GapResponse 空闲区间
type GapResponse struct {
	Start   string `json:"start"`
	End     string `json:"end"`
	Minutes int    `json:"minutes"`
	Label   string `json:"label"` // "09:00 – 10:30"
}

// DayViewResponse 单日渲染数据
type DayViewResponse struct {
	Day           string         `json:"day"`
	Slots         []SlotResponse `json:"slots"`
	Gaps          []GapResponse  `json:"gaps"`
	BookedMinutes int            `json:"booked_minutes"`
	FreeMinutes   int            `json:"free_minutes"`
}

// ChartResponse 图表窗口参数，供前端按相同比例绘制
type ChartResponse struct {
	Start       string   `json:"start"`
	End         string   `json:"end"`
	PxPerMinute int      `json:"px_per_minute"`
	Height      int      `json:"height"`
	Marks       []string `json:"marks"`
}

// WeekViewResponse 周视图（Monday→Sunday）
type WeekViewResponse struct {
	MemberID string            `json:"member_id"`
	Month    string            `json:"month"`
	Chart    ChartResponse     `json:"chart"`
	Days     []DayViewResponse `json:"days"`
}

// DragProposalRequest 拖拽转候选区间请求
// gap_start / gap_end 均提供时，候选区间必须完全落在该空闲区间内，
// 且该区间须仍是 month 分区（为空时取当月）中的空闲时间
type DragProposalRequest struct {
	MemberID string  `json:"member_id" binding:"required"`
	Day      string  `json:"day"`
	Month    string  `json:"month"`
	StartPx  float64 `json:"start_px"`
	EndPx    float64 `json:"end_px"`
	GapStart string  `json:"gap_start"`
	GapEnd   string  `json:"gap_end"`
}

// DragProposalResponse 拖拽结果；低于最小拖拽阈值时 Accepted=false
type DragProposalResponse struct {
	Accepted bool   `json:"accepted"`
	Start    string `json:"start,omitempty"`
	End      string `json:"end,omitempty"`
}

// CommitProposalRequest 确认候选区间并创建时间段
type CommitProposalRequest struct {
	CreateSlotRequest
	GapStart string `json:"gap_start"`
	GapEnd   string `json:"gap_end"`
}
