package planner

import (
	"errors"
	"testing"

	"slot-planner/pkg/timeutil"
)

func TestYToMinutes_RoundTrip(t *testing.T) {
	for m := ChartStart; m <= ChartEnd; m++ {
		if got := YToMinutes(MinutesToY(m)); got != m {
			t.Fatalf("YToMinutes(MinutesToY(%d)) = %d", m, got)
		}
	}
}

func TestYToMinutes_Clamped(t *testing.T) {
	tests := []struct {
		px   float64
		want int
	}{
		{-100, ChartStart},
		{0, ChartStart},
		{60, 600},
		{60.4, 600},
		{60.6, 601},
		{ChartHeight, ChartEnd},
		{10000, ChartEnd},
	}

	for _, tt := range tests {
		if got := YToMinutes(tt.px); got != tt.want {
			t.Errorf("YToMinutes(%v) = %d, 期望 %d", tt.px, got, tt.want)
		}
	}
}

func TestClampToWindow(t *testing.T) {
	if ClampToWindow(0) != ChartStart || ClampToWindow(2000) != ChartEnd || ClampToWindow(700) != 700 {
		t.Error("ClampToWindow 结果错误")
	}
}

func TestParseClock(t *testing.T) {
	c, err := ParseClock("09:30")
	if err != nil || c != 570 {
		t.Fatalf("ParseClock(09:30) = %d, %v", c, err)
	}

	_, err = ParseClock("9h30")
	if !errors.Is(err, ErrValidation) || !errors.Is(err, timeutil.ErrInvalidClock) {
		t.Errorf("格式错误应同时属于 ErrValidation 与 ErrInvalidClock，实际: %v", err)
	}

	if _, err := ParseClock(""); !errors.Is(err, ErrTimeRequired) {
		t.Errorf("空字符串应返回 ErrTimeRequired，实际: %v", err)
	}
}

func TestTimelineMarks(t *testing.T) {
	marks := TimelineMarks()
	if marks[0] != ChartStart || marks[len(marks)-1] != ChartEnd {
		t.Errorf("刻度首尾错误: %v", marks)
	}
	if len(marks) != 11 { // 09:00..18:00 共 10 个整点 + 18:15
		t.Errorf("期望 11 个刻度，实际 %d", len(marks))
	}
}
