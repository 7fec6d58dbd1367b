package repository

import (
	"context"

	"gorm.io/gorm"

	"slot-planner/internal/model"
)

// ProjectRepository 项目目录数据访问接口
type ProjectRepository interface {
	List(ctx context.Context) ([]model.Project, error)
	ReplaceAll(ctx context.Context, projects []model.Project) error
}

type projectRepo struct {
	db *gorm.DB
}

// NewProjectRepo 创建 ProjectRepository 实例
func NewProjectRepo(db *gorm.DB) ProjectRepository {
	return &projectRepo{db: db}
}

func (r *projectRepo) List(ctx context.Context) ([]model.Project, error) {
	var projects []model.Project
	err := r.db.WithContext(ctx).Order("name ASC").Find(&projects).Error
	return projects, err
}

func (r *projectRepo) ReplaceAll(ctx context.Context, projects []model.Project) error {
	db := r.db.WithContext(ctx)
	if err := db.Where("1 = 1").Delete(&model.Project{}).Error; err != nil {
		return err
	}
	if len(projects) == 0 {
		return nil
	}
	return db.CreateInBatches(projects, batchSize).Error
}
