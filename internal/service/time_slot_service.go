package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"slot-planner/internal/dto"
	"slot-planner/internal/model"
	"slot-planner/internal/planner"
)

// ────────────────────── CreateSlot ──────────────────────

func (s *plannerService) CreateSlot(ctx context.Context, req *dto.CreateSlotRequest) (*dto.SlotResponse, error) {
	return s.createSlot(ctx, req, nil)
}

// createSlot 在写锁内完成成员检查、可选的子区间检查与写入
func (s *plannerService) createSlot(ctx context.Context, req *dto.CreateSlotRequest, within func(start, end model.Clock) error) (*dto.SlotResponse, error) {
	start, end, err := parseRange(req.Start, req.End)
	if err != nil {
		return nil, err
	}
	if within != nil {
		if err := within(start, end); err != nil {
			return nil, err
		}
	}

	month := req.Month
	if month == "" {
		month = s.currentMonth()
	}

	var created model.TimeSlot
	err = s.mutate(ctx, "create_slot", func(next *state) (bool, error) {
		if next.memberIndex(req.MemberID) < 0 {
			return false, planner.ErrMemberNotFound
		}
		slot, err := next.store.Upsert(planner.SlotInput{
			MemberID: req.MemberID,
			Project:  req.Project,
			Day:      req.Day,
			Month:    month,
			Start:    start,
			End:      end,
		}, "")
		if err != nil {
			return false, err
		}
		next.registerProject(slot.Project, s.ids)
		created = slot
		return true, nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("时间段已创建",
		zap.String("slot_id", created.ID),
		zap.String("member_id", created.MemberID),
		zap.String("day", created.Day),
	)
	resp := toSlotResponse(&created)
	return &resp, nil
}

// ────────────────────── UpdateSlot ──────────────────────

func (s *plannerService) UpdateSlot(ctx context.Context, id string, req *dto.UpdateSlotRequest) (*dto.SlotResponse, error) {
	start, end, err := parseRange(req.Start, req.End)
	if err != nil {
		return nil, err
	}

	var updated model.TimeSlot
	err = s.mutate(ctx, "update_slot", func(next *state) (bool, error) {
		existing, ok := next.store.Get(id)
		if !ok {
			return false, planner.ErrSlotNotFound
		}
		month := req.Month
		if month == "" {
			month = existing.Month
		}
		slot, err := next.store.Upsert(planner.SlotInput{
			MemberID: existing.MemberID,
			Project:  req.Project,
			Day:      req.Day,
			Month:    month,
			Start:    start,
			End:      end,
		}, id)
		if err != nil {
			return false, err
		}
		next.registerProject(slot.Project, s.ids)
		updated = slot
		return true, nil
	})
	if err != nil {
		return nil, err
	}

	resp := toSlotResponse(&updated)
	return &resp, nil
}

// ────────────────────── DeleteSlot ──────────────────────

// DeleteSlot ID 不存在时为空操作
func (s *plannerService) DeleteSlot(ctx context.Context, id string) (*dto.DeleteResponse, error) {
	deleted := false
	err := s.mutate(ctx, "delete_slot", func(next *state) (bool, error) {
		deleted = next.store.Delete(id)
		return deleted, nil
	})
	if err != nil {
		return nil, err
	}
	return &dto.DeleteResponse{Deleted: deleted}, nil
}

// ────────────────────── 查询 ──────────────────────

func (s *plannerService) GetSlot(_ context.Context, id string) (*dto.SlotResponse, error) {
	var resp dto.SlotResponse
	err := s.read(func(st *state) error {
		slot, ok := st.store.Get(id)
		if !ok {
			return planner.ErrSlotNotFound
		}
		resp = toSlotResponse(&slot)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

func (s *plannerService) ListSlots(_ context.Context, memberID string, req *dto.SlotListRequest) ([]dto.SlotResponse, error) {
	var result []dto.SlotResponse
	err := s.read(func(st *state) error {
		if st.memberIndex(memberID) < 0 {
			return planner.ErrMemberNotFound
		}
		result = toSlotResponses(st.store.ListSlots(memberID, req.Day, req.Month))
		return nil
	})
	return result, err
}

// ────────────────────── 空闲区间 / 周视图 ──────────────────────

func (s *plannerService) Gaps(_ context.Context, memberID, day, month string) ([]dto.GapResponse, error) {
	if !planner.IsWeekday(day) {
		return nil, planner.ErrInvalidDay
	}
	if month == "" {
		return nil, planner.ErrMonthRequired
	}

	var result []dto.GapResponse
	err := s.read(func(st *state) error {
		if st.memberIndex(memberID) < 0 {
			return planner.ErrMemberNotFound
		}
		result = toGapResponses(st.store.Gaps(memberID, day, month))
		return nil
	})
	return result, err
}

func (s *plannerService) WeekView(_ context.Context, memberID, month string) (*dto.WeekViewResponse, error) {
	if month == "" {
		return nil, planner.ErrMonthRequired
	}

	resp := &dto.WeekViewResponse{MemberID: memberID, Month: month, Chart: chartResponse()}
	err := s.read(func(st *state) error {
		if st.memberIndex(memberID) < 0 {
			return planner.ErrMemberNotFound
		}
		for _, dv := range st.store.WeekView(memberID, month) {
			resp.Days = append(resp.Days, dto.DayViewResponse{
				Day:           dv.Day,
				Slots:         toSlotResponses(dv.Slots),
				Gaps:          toGapResponses(dv.Gaps),
				BookedMinutes: dv.BookedMinutes,
				FreeMinutes:   dv.FreeMinutes,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

func chartResponse() dto.ChartResponse {
	marks := planner.TimelineMarks()
	labels := make([]string, 0, len(marks))
	for _, m := range marks {
		labels = append(labels, model.Clock(m).String())
	}
	return dto.ChartResponse{
		Start:       model.Clock(planner.ChartStart).String(),
		End:         model.Clock(planner.ChartEnd).String(),
		PxPerMinute: planner.PxPerMinute,
		Height:      planner.ChartHeight,
		Marks:       labels,
	}
}

// ────────────────────── 拖拽 ──────────────────────

// ProposeFromDrag 将一次拖拽转换为候选区间，不修改任何数据。
// 给出空闲区间时，该区间必须仍是 (member, day, month) 分区内的空闲时间，候选区间必须落在其中。
func (s *plannerService) ProposeFromDrag(_ context.Context, req *dto.DragProposalRequest) (*dto.DragProposalResponse, error) {
	if !planner.IsWeekday(req.Day) {
		return nil, planner.ErrInvalidDay
	}
	gap, err := parseGap(req.GapStart, req.GapEnd)
	if err != nil {
		return nil, err
	}
	month := req.Month
	if month == "" {
		month = s.currentMonth()
	}

	if err := s.read(func(st *state) error {
		if st.memberIndex(req.MemberID) < 0 {
			return planner.ErrMemberNotFound
		}
		if gap != nil && !isFree(st.store.Gaps(req.MemberID, req.Day, month), *gap) {
			return fmt.Errorf("%w: %s 已不是空闲区间", planner.ErrOutsideRange, gap.Label())
		}
		return nil
	}); err != nil {
		return nil, err
	}

	p, ok := planner.ProposeInterval(req.StartPx, req.EndPx)
	if !ok {
		return &dto.DragProposalResponse{Accepted: false}, nil
	}
	if gap != nil {
		if err := p.Within(gap.Start, gap.End); err != nil {
			return nil, err
		}
	}
	return &dto.DragProposalResponse{
		Accepted: true,
		Start:    p.Start.String(),
		End:      p.End.String(),
	}, nil
}

// CommitProposal 确认候选区间：先检查空闲区间范围，再走普通创建流程
func (s *plannerService) CommitProposal(ctx context.Context, req *dto.CommitProposalRequest) (*dto.SlotResponse, error) {
	within, err := gapConstraint(req.GapStart, req.GapEnd)
	if err != nil {
		return nil, err
	}
	return s.createSlot(ctx, &req.CreateSlotRequest, within)
}

// ── 辅助函数 ──

func parseRange(startText, endText string) (model.Clock, model.Clock, error) {
	if startText == "" || endText == "" {
		return 0, 0, planner.ErrTimeRequired
	}
	start, err := planner.ParseClock(startText)
	if err != nil {
		return 0, 0, err
	}
	end, err := planner.ParseClock(endText)
	if err != nil {
		return 0, 0, err
	}
	return start, end, nil
}

// parseGap 两端都为空时返回 nil（不限制）；只给一端视为校验错误
func parseGap(gapStart, gapEnd string) (*planner.Gap, error) {
	if gapStart == "" && gapEnd == "" {
		return nil, nil
	}
	gs, ge, err := parseRange(gapStart, gapEnd)
	if err != nil {
		return nil, fmt.Errorf("空闲区间参数无效: %w", err)
	}
	return &planner.Gap{Start: gs, End: ge}, nil
}

func gapConstraint(gapStart, gapEnd string) (func(start, end model.Clock) error, error) {
	gap, err := parseGap(gapStart, gapEnd)
	if err != nil || gap == nil {
		return nil, err
	}
	return func(start, end model.Clock) error {
		return planner.Proposal{Start: start, End: end}.Within(gap.Start, gap.End)
	}, nil
}

// isFree gap 是否完整落在某个已计算的空闲区间内
func isFree(gaps []planner.Gap, gap planner.Gap) bool {
	for _, g := range gaps {
		if g.Start <= gap.Start && gap.End <= g.End {
			return true
		}
	}
	return false
}
