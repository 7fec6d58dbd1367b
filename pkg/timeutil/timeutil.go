package timeutil

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidClock 时间字符串不是合法的 HH:MM
var ErrInvalidClock = errors.New("时间格式无效，应为 HH:MM")

// MinutesPerDay 一天的分钟数
const MinutesPerDay = 24 * 60

// TimeToMinutes 将 "HH:MM" 解析为当天零点起的分钟数。
// 仅接受两位小时、两位分钟；解析失败属于输入错误，调用方必须在使用前拒绝。
func TimeToMinutes(text string) (int, error) {
	if len(text) != 5 || text[2] != ':' {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, text)
	}
	h, ok1 := twoDigits(text[0], text[1])
	m, ok2 := twoDigits(text[3], text[4])
	if !ok1 || !ok2 || h > 23 || m > 59 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, text)
	}
	return h*60 + m, nil
}

// MustMinutes 同 TimeToMinutes，解析失败直接 panic（仅用于常量与测试）
func MustMinutes(text string) int {
	m, err := TimeToMinutes(text)
	if err != nil {
		panic(err)
	}
	return m
}

// MinutesToTime 将分钟数格式化为补零的 "HH:MM"。
// 先对总分钟数四舍五入，避免出现 "09:60"。
func MinutesToTime(minutes float64) string {
	total := int(math.Round(minutes))
	if total < 0 {
		total = 0
	}
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}

func twoDigits(a, b byte) (int, bool) {
	if a < '0' || a > '9' || b < '0' || b > '9' {
		return 0, false
	}
	return int(a-'0')*10 + int(b-'0'), true
}
