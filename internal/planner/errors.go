package planner

import (
	"errors"
	"fmt"

	"slot-planner/internal/model"
)

// ── 错误分类 ──
// 各具体错误通过 %w 包装分类哨兵，Handler 层按分类映射响应码。

var (
	ErrValidation        = errors.New("参数校验失败")
	ErrOverlap           = errors.New("时间段与已有时间段重叠")
	ErrOutsideRange      = errors.New("时间段超出可选范围")
	ErrNotFound          = errors.New("记录不存在")
	ErrMalformedDocument = errors.New("数据文档格式无效")
)

// ── 校验错误 ──

var (
	ErrProjectRequired = fmt.Errorf("%w: 项目名称不能为空", ErrValidation)
	ErrTimeRequired    = fmt.Errorf("%w: 开始和结束时间不能为空", ErrValidation)
	ErrEndBeforeStart  = fmt.Errorf("%w: 结束时间必须晚于开始时间", ErrValidation)
	ErrInvalidDay      = fmt.Errorf("%w: 星期必须为 Monday 至 Sunday", ErrValidation)
	ErrMonthRequired   = fmt.Errorf("%w: 月份不能为空", ErrValidation)
	ErrMemberRequired  = fmt.Errorf("%w: 成员不能为空", ErrValidation)
	ErrNameRequired    = fmt.Errorf("%w: 姓名不能为空", ErrValidation)
	ErrInvalidLevel    = fmt.Errorf("%w: 成员级别无效", ErrValidation)
	ErrProjectExists   = fmt.Errorf("%w: 项目已存在", ErrValidation)
	ErrProjectInUse    = fmt.Errorf("%w: 项目仍被时间段使用", ErrValidation)
)

// ── 不存在错误 ──

var (
	ErrSlotNotFound    = fmt.Errorf("%w: 时间段不存在", ErrNotFound)
	ErrMemberNotFound  = fmt.Errorf("%w: 成员不存在", ErrNotFound)
	ErrProjectNotFound = fmt.Errorf("%w: 项目不存在", ErrNotFound)
)

// ── 文档错误 ──

var (
	ErrMissingKeys    = fmt.Errorf("%w: 缺少 members 或 slots 字段", ErrMalformedDocument)
	ErrOrphanSlot     = fmt.Errorf("%w: 时间段引用了不存在的成员", ErrMalformedDocument)
	ErrDuplicateID    = fmt.Errorf("%w: 存在重复的 ID", ErrMalformedDocument)
	ErrDocumentSlot   = fmt.Errorf("%w: 时间段数据无效", ErrMalformedDocument)
	ErrDocumentMember = fmt.Errorf("%w: 成员数据无效", ErrMalformedDocument)
)

// ErrGestureState 拖拽手势在当前状态下不允许该操作
var ErrGestureState = errors.New("拖拽状态无效")

// OverlapError 候选时间段与分区内已有时间段冲突
type OverlapError struct {
	Conflict model.TimeSlot
}

func (e *OverlapError) Error() string {
	return fmt.Sprintf("%s: %s %s %s–%s",
		ErrOverlap.Error(), e.Conflict.Project, e.Conflict.Day, e.Conflict.Start, e.Conflict.End)
}

// Is 使 errors.Is(err, ErrOverlap) 成立
func (e *OverlapError) Is(target error) bool {
	return target == ErrOverlap
}
