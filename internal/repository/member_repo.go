package repository

import (
	"context"

	"gorm.io/gorm"

	"slot-planner/internal/model"
)

// MemberRepository 成员数据访问接口
type MemberRepository interface {
	List(ctx context.Context) ([]model.Member, error)
	ReplaceAll(ctx context.Context, members []model.Member) error
}

type memberRepo struct {
	db *gorm.DB
}

// NewMemberRepo 创建 MemberRepository 实例
func NewMemberRepo(db *gorm.DB) MemberRepository {
	return &memberRepo{db: db}
}

func (r *memberRepo) List(ctx context.Context) ([]model.Member, error) {
	var members []model.Member
	err := r.db.WithContext(ctx).Order("position ASC, id ASC").Find(&members).Error
	return members, err
}

// ReplaceAll 清空后批量写入（time_slots 随外键级联删除），需在事务中调用
func (r *memberRepo) ReplaceAll(ctx context.Context, members []model.Member) error {
	db := r.db.WithContext(ctx)
	if err := db.Where("1 = 1").Delete(&model.Member{}).Error; err != nil {
		return err
	}
	if len(members) == 0 {
		return nil
	}
	return db.CreateInBatches(withPositions(members), batchSize).Error
}

// withPositions 按文档顺序编号，返回副本
func withPositions(members []model.Member) []model.Member {
	out := make([]model.Member, len(members))
	for i, m := range members {
		m.Position = i
		out[i] = m
	}
	return out
}
