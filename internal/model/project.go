package model

// Project 项目目录，对应 projects 表
type Project struct {
	ID   string `gorm:"type:varchar(64);primaryKey"          json:"id"`
	Name string `gorm:"type:varchar(100);not null;uniqueIndex" json:"name"`
	AuditModel
}

// TableName 指定表名
func (Project) TableName() string { return "projects" }
