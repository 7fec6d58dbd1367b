package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"slot-planner/internal/dto"
	"slot-planner/internal/model"
	"slot-planner/internal/planner"
)

// ── 成员管理 ──

func normalizeMember(name, role, level string) (model.Member, error) {
	m := model.Member{
		Name:  strings.TrimSpace(name),
		Role:  strings.TrimSpace(role),
		Level: strings.TrimSpace(level),
	}
	if m.Name == "" {
		return m, planner.ErrNameRequired
	}
	if m.Level == "" {
		m.Level = model.LevelUnspecified
	}
	if !model.IsValidLevel(m.Level) {
		return m, planner.ErrInvalidLevel
	}
	return m, nil
}

func (s *plannerService) CreateMember(ctx context.Context, req *dto.CreateMemberRequest) (*dto.MemberResponse, error) {
	member, err := normalizeMember(req.Name, req.Role, req.Level)
	if err != nil {
		return nil, err
	}
	member.ID = s.ids.NewID()

	if err := s.mutate(ctx, "create_member", func(next *state) (bool, error) {
		next.members = append(next.members, member)
		return true, nil
	}); err != nil {
		return nil, err
	}

	s.logger.Info("成员已创建", zap.String("member_id", member.ID))
	return &dto.MemberResponse{ID: member.ID, Name: member.Name, Role: member.Role, Level: member.Level}, nil
}

func (s *plannerService) UpdateMember(ctx context.Context, id string, req *dto.UpdateMemberRequest) (*dto.MemberResponse, error) {
	patch, err := normalizeMember(req.Name, req.Role, req.Level)
	if err != nil {
		return nil, err
	}

	var resp *dto.MemberResponse
	err = s.mutate(ctx, "update_member", func(next *state) (bool, error) {
		i := next.memberIndex(id)
		if i < 0 {
			return false, planner.ErrMemberNotFound
		}
		m := &next.members[i]
		m.Name, m.Role, m.Level = patch.Name, patch.Role, patch.Level
		resp = toMemberResponse(next, m)
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// DeleteMember 先级联删除该成员的全部时间段再删除成员；成员不存在时为空操作
func (s *plannerService) DeleteMember(ctx context.Context, id string) (*dto.DeleteMemberResponse, error) {
	resp := &dto.DeleteMemberResponse{}
	err := s.mutate(ctx, "delete_member", func(next *state) (bool, error) {
		i := next.memberIndex(id)
		if i < 0 {
			return false, nil
		}
		resp.RemovedSlots = next.store.DeleteForMember(id)
		next.members = append(next.members[:i], next.members[i+1:]...)
		resp.Deleted = true
		return true, nil
	})
	if err != nil {
		return nil, err
	}

	if resp.Deleted {
		s.logger.Info("成员已删除",
			zap.String("member_id", id),
			zap.Int("removed_slots", resp.RemovedSlots),
		)
	}
	return resp, nil
}

func (s *plannerService) GetMember(_ context.Context, id string) (*dto.MemberResponse, error) {
	var resp *dto.MemberResponse
	err := s.read(func(st *state) error {
		i := st.memberIndex(id)
		if i < 0 {
			return planner.ErrMemberNotFound
		}
		resp = toMemberResponse(st, &st.members[i])
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// ListMembers 按创建顺序返回
func (s *plannerService) ListMembers(_ context.Context) ([]dto.MemberResponse, error) {
	var result []dto.MemberResponse
	err := s.read(func(st *state) error {
		result = make([]dto.MemberResponse, 0, len(st.members))
		for i := range st.members {
			result = append(result, *toMemberResponse(st, &st.members[i]))
		}
		return nil
	})
	return result, err
}

func toMemberResponse(st *state, m *model.Member) *dto.MemberResponse {
	return &dto.MemberResponse{
		ID:        m.ID,
		Name:      m.Name,
		Role:      m.Role,
		Level:     m.Level,
		SlotCount: len(st.store.ListSlots(m.ID, "", "")),
	}
}
