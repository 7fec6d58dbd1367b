package model

// TimeSlot 成员时间段，对应 time_slots 表
// 同一 (MemberID, Day, Month) 分区内的时间段两两不重叠。
type TimeSlot struct {
	ID       string `gorm:"type:varchar(64);primaryKey"  json:"id"`
	MemberID string `gorm:"type:varchar(64);not null;index:idx_slot_partition" json:"memberId"`
	Project  string `gorm:"type:varchar(100);not null"   json:"project"`
	Day      string `gorm:"type:varchar(10);not null;index:idx_slot_partition" json:"day"`
	Start    Clock  `gorm:"column:start_minute;type:smallint;not null" json:"start"`
	End      Clock  `gorm:"column:end_minute;type:smallint;not null"   json:"end"`
	Month    string `gorm:"type:varchar(7);not null;index:idx_slot_partition"  json:"month"` // 月份桶，如 2024-05
	AuditModel
}

// TableName 指定表名
func (TimeSlot) TableName() string { return "time_slots" }

// SamePartition 是否与另一个时间段处于同一重叠检查分区
func (s *TimeSlot) SamePartition(memberID, day, month string) bool {
	return s.MemberID == memberID && s.Day == day && s.Month == month
}
