package repository

import (
	"context"

	"gorm.io/gorm"

	"slot-planner/internal/model"
)

// TimeSlotRepository 时间段数据访问接口
type TimeSlotRepository interface {
	List(ctx context.Context) ([]model.TimeSlot, error)
	ReplaceAll(ctx context.Context, slots []model.TimeSlot) error
}

type timeSlotRepo struct {
	db *gorm.DB
}

// NewTimeSlotRepo 创建 TimeSlotRepository 实例
func NewTimeSlotRepo(db *gorm.DB) TimeSlotRepository {
	return &timeSlotRepo{db: db}
}

func (r *timeSlotRepo) List(ctx context.Context) ([]model.TimeSlot, error) {
	var slots []model.TimeSlot
	err := r.db.WithContext(ctx).
		Order("member_id ASC, month ASC, day ASC, start_minute ASC").
		Find(&slots).Error
	return slots, err
}

// ReplaceAll 清空后批量写入，需在事务中调用
func (r *timeSlotRepo) ReplaceAll(ctx context.Context, slots []model.TimeSlot) error {
	db := r.db.WithContext(ctx)
	if err := db.Where("1 = 1").Delete(&model.TimeSlot{}).Error; err != nil {
		return err
	}
	if len(slots) == 0 {
		return nil
	}
	return db.CreateInBatches(slots, batchSize).Error
}
