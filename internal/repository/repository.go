package repository

import (
	"context"

	"slot-planner/internal/model"
)

const batchSize = 200

// DocumentRepository 持久化协作方：启动时提供完整文档，每次变更后接收完整文档。
// 存储介质由实现决定，Save 要么整体成功要么不产生任何写入。
type DocumentRepository interface {
	Load(ctx context.Context) (*model.Document, error)
	Save(ctx context.Context, doc *model.Document) error
}

// Repository 所有 Repository 的聚合入口
type Repository struct {
	Document DocumentRepository
}

// NewRepository 创建 Repository 聚合
func NewRepository(doc DocumentRepository) *Repository {
	return &Repository{Document: doc}
}

func emptyDocument() *model.Document {
	return &model.Document{
		Members:  []model.Member{},
		Slots:    []model.TimeSlot{},
		Projects: []model.Project{},
	}
}
