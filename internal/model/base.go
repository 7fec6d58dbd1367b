package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"slot-planner/pkg/timeutil"
)

// ── 分钟时刻自定义类型 ──

// Clock 当天零点起的分钟数。
// 数据库中以 SMALLINT 存储，JSON 中以 "HH:MM" 表示（与 data.json 格式一致）。
type Clock int

// String 返回 "HH:MM"
func (c Clock) String() string {
	return timeutil.MinutesToTime(float64(c))
}

// MarshalJSON 序列化为 "HH:MM"
func (c Clock) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

// UnmarshalJSON 解析 "HH:MM"，格式错误时返回 timeutil.ErrInvalidClock
func (c *Clock) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("Clock.UnmarshalJSON: %w", timeutil.ErrInvalidClock)
	}
	m, err := timeutil.TimeToMinutes(s)
	if err != nil {
		return err
	}
	*c = Clock(m)
	return nil
}

// Scan 读取数据库中的整数分钟
func (c *Clock) Scan(src interface{}) error {
	switch v := src.(type) {
	case int64:
		*c = Clock(v)
	case int32:
		*c = Clock(v)
	case []byte:
		var n int
		if _, err := fmt.Sscan(string(v), &n); err != nil {
			return fmt.Errorf("Clock.Scan: invalid value %q: %w", v, err)
		}
		*c = Clock(n)
	default:
		return fmt.Errorf("Clock.Scan: unsupported type %T", src)
	}
	return nil
}

// Value 以整数分钟写入数据库
func (c Clock) Value() (driver.Value, error) {
	return int64(c), nil
}

// AuditModel 持久化审计字段（不进入导出文档）
type AuditModel struct {
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"-"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"-"`
}
