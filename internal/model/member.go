package model

// 成员级别枚举
const (
	LevelUnspecified  = "Unspecified"
	LevelIntern       = "Intern"
	LevelJunior       = "Junior"
	LevelIntermediate = "Intermediate"
	LevelSenior       = "Senior"
	LevelLead         = "Lead"
)

// MemberLevels 全部合法级别（按资历排序）
var MemberLevels = []string{
	LevelUnspecified, LevelIntern, LevelJunior, LevelIntermediate, LevelSenior, LevelLead,
}

// IsValidLevel 判断级别是否在枚举内
func IsValidLevel(level string) bool {
	for _, l := range MemberLevels {
		if l == level {
			return true
		}
	}
	return false
}

// Member 成员表，对应 members 表
type Member struct {
	ID    string `gorm:"type:varchar(64);primaryKey"                     json:"id"`
	Name  string `gorm:"type:varchar(100);not null"                      json:"name"`
	Role  string `gorm:"type:varchar(100);not null;default:''"           json:"role"`
	Level string `gorm:"type:varchar(20);not null;default:'Unspecified'" json:"level"`
	// 文档中的顺序，仅数据库使用；整体替换后 created_at 相同，靠它保持列表顺序
	Position int `gorm:"not null;default:0" json:"-"`
	AuditModel
}

// TableName 指定表名
func (Member) TableName() string { return "members" }
