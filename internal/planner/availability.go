package planner

import (
	"fmt"

	"slot-planner/internal/model"
)

// Gap 图表窗口内未被任何时间段覆盖的最大空闲区间 [Start, End)
type Gap struct {
	Start model.Clock `json:"start"`
	End   model.Clock `json:"end"`
}

// Minutes 空闲时长
func (g Gap) Minutes() int { return int(g.End - g.Start) }

// Label 形如 "09:00 – 10:30"
func (g Gap) Label() string {
	return fmt.Sprintf("%s – %s", g.Start, g.End)
}

// ComputeGaps 计算单个分区的空闲区间。
//
// 前置条件：sorted 为同一分区的时间段，已按开始时间升序且互不重叠
// （即 Store.ListSlots 对单一 day/month 的输出）。本函数不再排序或检查重叠，
// 单次线性扫描；零长度区间不会输出；无时间段时整个窗口为一个空闲区间。
func ComputeGaps(sorted []model.TimeSlot) []Gap {
	var gaps []Gap
	cursor := ChartStart
	for _, slot := range sorted {
		start := ClampToWindow(int(slot.Start))
		end := ClampToWindow(int(slot.End))
		if start > cursor {
			gaps = append(gaps, Gap{Start: model.Clock(cursor), End: model.Clock(start)})
		}
		cursor = max(cursor, end)
	}
	if cursor < ChartEnd {
		gaps = append(gaps, Gap{Start: model.Clock(cursor), End: ChartEnd})
	}
	return gaps
}

// Gaps 查询某成员某天某月的空闲区间
func (s *Store) Gaps(memberID, day, month string) []Gap {
	return ComputeGaps(s.ListSlots(memberID, day, month))
}

// DayView 单日渲染数据：有序时间段与有序空闲区间
type DayView struct {
	Day           string
	Slots         []model.TimeSlot
	Gaps          []Gap
	BookedMinutes int
	FreeMinutes   int
}

// WeekView 按日历顺序（Monday→Sunday）生成一周七天的渲染数据
func (s *Store) WeekView(memberID, month string) []DayView {
	week := make([]DayView, 0, len(Weekdays))
	for _, day := range Weekdays {
		slots := s.ListSlots(memberID, day, month)
		gaps := ComputeGaps(slots)

		free := 0
		for _, g := range gaps {
			free += g.Minutes()
		}
		week = append(week, DayView{
			Day:           day,
			Slots:         slots,
			Gaps:          gaps,
			BookedMinutes: ChartRange - free,
			FreeMinutes:   free,
		})
	}
	return week
}
