package planner

import (
	"sort"
	"strings"

	"slot-planner/internal/model"
)

// IDGenerator 提供无冲突的唯一 ID
type IDGenerator interface {
	NewID() string
}

// IDFunc 函数适配为 IDGenerator
type IDFunc func() string

// NewID 实现 IDGenerator
func (f IDFunc) NewID() string { return f() }

// SlotInput 创建/编辑时间段的候选值
type SlotInput struct {
	MemberID string
	Project  string
	Day      string
	Month    string
	Start    model.Clock
	End      model.Clock
}

// ── Slot Store ──────────────────────────────────────────────
//
// 时间段集合的唯一属主。不变量：同一 (memberId, day, month) 分区内
// 任意两个时间段不共享任何一分钟（半开区间 [start, end)）。
// Store 本身不加锁，由调用方保证单写者。
// ─────────────────────────────────────────────────────────────

// Store 内存时间段集合
type Store struct {
	slots []model.TimeSlot
	ids   IDGenerator
}

// NewStore 以已规范化的时间段创建 Store（复制入参）
func NewStore(slots []model.TimeSlot, ids IDGenerator) *Store {
	own := make([]model.TimeSlot, len(slots))
	copy(own, slots)
	return &Store{slots: own, ids: ids}
}

// Clone 深拷贝，供 "修改副本 → 持久化 → 替换" 流程使用
func (s *Store) Clone() *Store {
	return NewStore(s.slots, s.ids)
}

// Slots 返回全部时间段副本（原始顺序）
func (s *Store) Slots() []model.TimeSlot {
	out := make([]model.TimeSlot, len(s.slots))
	copy(out, s.slots)
	return out
}

// Len 时间段总数
func (s *Store) Len() int { return len(s.slots) }

// Get 按 ID 查询
func (s *Store) Get(id string) (model.TimeSlot, bool) {
	if i := s.indexOf(id); i >= 0 {
		return s.slots[i], true
	}
	return model.TimeSlot{}, false
}

// ListSlots 按成员过滤，day/month 为空表示不限。
// 结果按星期标签字典序、再按开始时间排序（与列表展示一致，非日历顺序）。
func (s *Store) ListSlots(memberID, day, month string) []model.TimeSlot {
	var out []model.TimeSlot
	for _, slot := range s.slots {
		if slot.MemberID != memberID {
			continue
		}
		if day != "" && slot.Day != day {
			continue
		}
		if month != "" && slot.Month != month {
			continue
		}
		out = append(out, slot)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Day != out[j].Day {
			return out[i].Day < out[j].Day
		}
		return out[i].Start < out[j].Start
	})
	return out
}

// Overlaps 检查分区内是否存在与 [start, end) 相交的时间段（排除 excludeID）。
// 仅接触边界（end == otherStart）不算重叠。返回第一个冲突的时间段。
func (s *Store) Overlaps(memberID, day, month string, start, end model.Clock, excludeID string) (model.TimeSlot, bool) {
	for _, other := range s.slots {
		if other.ID == excludeID && excludeID != "" {
			continue
		}
		if !other.SamePartition(memberID, day, month) {
			continue
		}
		if max(start, other.Start) < min(end, other.End) {
			return other, true
		}
	}
	return model.TimeSlot{}, false
}

// ValidateSlot 校验候选值本身（不涉及其他时间段）
func ValidateSlot(in *SlotInput) error {
	in.Project = strings.TrimSpace(in.Project)
	if in.MemberID == "" {
		return ErrMemberRequired
	}
	if in.Project == "" {
		return ErrProjectRequired
	}
	if !IsWeekday(in.Day) {
		return ErrInvalidDay
	}
	if in.Month == "" {
		return ErrMonthRequired
	}
	if in.End <= in.Start {
		return ErrEndBeforeStart
	}
	return nil
}

// Upsert 校验后写入。excludeID 非空时编辑该时间段（成员归属不变），否则新建。
// 失败时不做任何修改。
func (s *Store) Upsert(in SlotInput, excludeID string) (model.TimeSlot, error) {
	idx := -1
	if excludeID != "" {
		idx = s.indexOf(excludeID)
		if idx < 0 {
			return model.TimeSlot{}, ErrSlotNotFound
		}
		in.MemberID = s.slots[idx].MemberID
	}

	if err := ValidateSlot(&in); err != nil {
		return model.TimeSlot{}, err
	}
	if conflict, ok := s.Overlaps(in.MemberID, in.Day, in.Month, in.Start, in.End, excludeID); ok {
		return model.TimeSlot{}, &OverlapError{Conflict: conflict}
	}

	if idx >= 0 {
		slot := &s.slots[idx]
		slot.Project = in.Project
		slot.Day = in.Day
		slot.Start = in.Start
		slot.End = in.End
		slot.Month = in.Month
		return *slot, nil
	}

	slot := model.TimeSlot{
		ID:       s.ids.NewID(),
		MemberID: in.MemberID,
		Project:  in.Project,
		Day:      in.Day,
		Start:    in.Start,
		End:      in.End,
		Month:    in.Month,
	}
	s.slots = append(s.slots, slot)
	return slot, nil
}

// Delete 删除时间段；ID 不存在时为空操作，返回是否删除
func (s *Store) Delete(id string) bool {
	i := s.indexOf(id)
	if i < 0 {
		return false
	}
	s.slots = append(s.slots[:i], s.slots[i+1:]...)
	return true
}

// DeleteForMember 级联删除成员的全部时间段，返回删除数量
func (s *Store) DeleteForMember(memberID string) int {
	kept := s.slots[:0]
	removed := 0
	for _, slot := range s.slots {
		if slot.MemberID == memberID {
			removed++
			continue
		}
		kept = append(kept, slot)
	}
	s.slots = kept
	return removed
}

func (s *Store) indexOf(id string) int {
	for i := range s.slots {
		if s.slots[i].ID == id {
			return i
		}
	}
	return -1
}
