package planner

import (
	"fmt"
	"math"

	"slot-planner/internal/model"
	"slot-planner/pkg/timeutil"
)

// ── 图表窗口 ──

const (
	ChartStart     = 9 * 60     // 09:00
	ChartEnd       = 18*60 + 15 // 18:15
	ChartRange     = ChartEnd - ChartStart
	PxPerMinute    = 1
	ChartHeight    = ChartRange * PxPerMinute
	MinDragMinutes = 5
)

// Weekdays 七个星期标签（日历顺序，用于周视图）
var Weekdays = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// IsWeekday 判断是否为合法星期标签
func IsWeekday(day string) bool {
	for _, d := range Weekdays {
		if d == day {
			return true
		}
	}
	return false
}

// ParseClock 解析 "HH:MM"，失败时返回 ErrValidation 分类错误
func ParseClock(text string) (model.Clock, error) {
	if text == "" {
		return 0, ErrTimeRequired
	}
	m, err := timeutil.TimeToMinutes(text)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrValidation, err)
	}
	return model.Clock(m), nil
}

// ClampToWindow 将分钟数限制在 [ChartStart, ChartEnd]
func ClampToWindow(minutes int) int {
	return max(ChartStart, min(ChartEnd, minutes))
}

// ClampChartY 将像素坐标限制在 [0, ChartHeight]
func ClampChartY(px float64) float64 {
	return math.Max(0, math.Min(ChartHeight, px))
}

// MinutesToY 分钟数 → 图表内像素偏移
func MinutesToY(minutes int) float64 {
	return float64(minutes-ChartStart) * PxPerMinute
}

// YToMinutes 像素偏移 → 分钟数。先夹取像素，结果恒在图表窗口内。
func YToMinutes(px float64) int {
	return ChartStart + int(math.Round(ClampChartY(px)/PxPerMinute))
}

// TimelineMarks 时间轴刻度：从 ChartStart 起每小时一格，末尾总包含 ChartEnd
func TimelineMarks() []int {
	var marks []int
	for m := ChartStart; m <= ChartEnd; m += 60 {
		marks = append(marks, m)
	}
	if marks[len(marks)-1] != ChartEnd {
		marks = append(marks, ChartEnd)
	}
	return marks
}
