package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"slot-planner/internal/model"
)

// ── PostgreSQL 文档存储 ──

type gormDocumentRepo struct {
	db *gorm.DB
}

// NewGormDocumentRepo 基于 members / projects / time_slots 三张表的文档存储
func NewGormDocumentRepo(db *gorm.DB) DocumentRepository {
	return &gormDocumentRepo{db: db}
}

func (r *gormDocumentRepo) Load(ctx context.Context) (*model.Document, error) {
	doc := emptyDocument()

	members, err := NewMemberRepo(r.db).List(ctx)
	if err != nil {
		return nil, fmt.Errorf("读取成员失败: %w", err)
	}
	projects, err := NewProjectRepo(r.db).List(ctx)
	if err != nil {
		return nil, fmt.Errorf("读取项目失败: %w", err)
	}
	slots, err := NewTimeSlotRepo(r.db).List(ctx)
	if err != nil {
		return nil, fmt.Errorf("读取时间段失败: %w", err)
	}

	doc.Members = append(doc.Members, members...)
	doc.Projects = append(doc.Projects, projects...)
	doc.Slots = append(doc.Slots, slots...)
	return doc, nil
}

// Save 在单个事务内整体替换三张表
func (r *gormDocumentRepo) Save(ctx context.Context, doc *model.Document) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := NewMemberRepo(tx).ReplaceAll(ctx, doc.Members); err != nil {
			return fmt.Errorf("写入成员失败: %w", err)
		}
		if err := NewProjectRepo(tx).ReplaceAll(ctx, doc.Projects); err != nil {
			return fmt.Errorf("写入项目失败: %w", err)
		}
		if err := NewTimeSlotRepo(tx).ReplaceAll(ctx, doc.Slots); err != nil {
			return fmt.Errorf("写入时间段失败: %w", err)
		}
		return nil
	})
}
