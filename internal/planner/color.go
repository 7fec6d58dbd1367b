package planner

import (
	"fmt"
	"unicode/utf16"
)

// ColorForKey 由字符串确定性地生成浅色 HSL 颜色（通常 key = project + day）。
// 哈希按 UTF-16 码元计算 hash*31 + 码元，32 位截断，与前端页面一致。
func ColorForKey(key string) string {
	var hash int32
	for _, u := range utf16.Encode([]rune(key)) {
		hash = (hash << 5) - hash + int32(u)
	}
	hue := int(hash) % 360
	if hue < 0 {
		hue = -hue
	}
	return fmt.Sprintf("hsl(%d, 70%%, 78%%)", hue)
}
