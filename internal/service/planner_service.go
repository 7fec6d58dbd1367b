package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"slot-planner/internal/dto"
	"slot-planner/internal/model"
	"slot-planner/internal/planner"
	"slot-planner/internal/repository"
)

// ── 规划模块业务错误 ──

var (
	ErrPersistence = errors.New("数据保存失败")
	ErrNotReady    = errors.New("规划服务尚未初始化")
)

// PlannerService 排期门面：成员、项目、时间段、空闲区间、拖拽与文档导入导出
type PlannerService interface {
	Init(ctx context.Context) error
	Close(ctx context.Context) error

	// 时间段
	CreateSlot(ctx context.Context, req *dto.CreateSlotRequest) (*dto.SlotResponse, error)
	UpdateSlot(ctx context.Context, id string, req *dto.UpdateSlotRequest) (*dto.SlotResponse, error)
	DeleteSlot(ctx context.Context, id string) (*dto.DeleteResponse, error)
	GetSlot(ctx context.Context, id string) (*dto.SlotResponse, error)
	ListSlots(ctx context.Context, memberID string, req *dto.SlotListRequest) ([]dto.SlotResponse, error)

	// 空闲区间 / 周视图
	Gaps(ctx context.Context, memberID, day, month string) ([]dto.GapResponse, error)
	WeekView(ctx context.Context, memberID, month string) (*dto.WeekViewResponse, error)

	// 拖拽
	ProposeFromDrag(ctx context.Context, req *dto.DragProposalRequest) (*dto.DragProposalResponse, error)
	CommitProposal(ctx context.Context, req *dto.CommitProposalRequest) (*dto.SlotResponse, error)

	// 成员
	CreateMember(ctx context.Context, req *dto.CreateMemberRequest) (*dto.MemberResponse, error)
	UpdateMember(ctx context.Context, id string, req *dto.UpdateMemberRequest) (*dto.MemberResponse, error)
	DeleteMember(ctx context.Context, id string) (*dto.DeleteMemberResponse, error)
	GetMember(ctx context.Context, id string) (*dto.MemberResponse, error)
	ListMembers(ctx context.Context) ([]dto.MemberResponse, error)

	// 项目目录
	ListProjects(ctx context.Context) ([]dto.ProjectResponse, error)
	CreateProject(ctx context.Context, req *dto.CreateProjectRequest) (*dto.ProjectResponse, error)
	DeleteProject(ctx context.Context, id string) error

	// 文档
	ExportDocument(ctx context.Context) (*model.Document, error)
	ImportDocument(ctx context.Context, raw []byte) (*dto.ImportResponse, error)
}

// UUIDGenerator 基于 google/uuid 的 ID 生成器
var UUIDGenerator = planner.IDFunc(func() string { return uuid.New().String() })

// state 一份完整的内存文档；变更总是在副本上进行
type state struct {
	store    *planner.Store
	members  []model.Member
	projects []model.Project
}

func newState(doc *model.Document, ids planner.IDGenerator) *state {
	doc = doc.Clone()
	return &state{
		store:    planner.NewStore(doc.Slots, ids),
		members:  doc.Members,
		projects: doc.Projects,
	}
}

func (st *state) clone() *state {
	members := make([]model.Member, len(st.members))
	copy(members, st.members)
	projects := make([]model.Project, len(st.projects))
	copy(projects, st.projects)
	return &state{store: st.store.Clone(), members: members, projects: projects}
}

func (st *state) document() *model.Document {
	return &model.Document{
		Members:  st.members,
		Slots:    st.store.Slots(),
		Projects: st.projects,
	}
}

func (st *state) memberIndex(id string) int {
	for i := range st.members {
		if st.members[i].ID == id {
			return i
		}
	}
	return -1
}

// registerProject 项目名不在目录中时自动登记
func (st *state) registerProject(name string, ids planner.IDGenerator) {
	for _, p := range st.projects {
		if p.Name == name {
			return
		}
	}
	st.projects = append(st.projects, model.Project{ID: ids.NewID(), Name: name})
}

type plannerService struct {
	mu     sync.RWMutex
	cur    *state
	repo   *repository.Repository
	ids    planner.IDGenerator
	now    func() time.Time
	logger *zap.Logger
}

// NewPlannerService 创建排期门面；调用 Init 后方可使用
func NewPlannerService(repo *repository.Repository, ids planner.IDGenerator, now func() time.Time, logger *zap.Logger) PlannerService {
	if ids == nil {
		ids = UUIDGenerator
	}
	if now == nil {
		now = time.Now
	}
	return &plannerService{repo: repo, ids: ids, now: now, logger: logger}
}

// ────────────────────── 生命周期 ──────────────────────

// Init 从持久化层加载文档并规范化（补月份、补级别、登记项目）
func (s *plannerService) Init(ctx context.Context) error {
	doc, err := s.repo.Document.Load(ctx)
	if err != nil {
		s.logger.Error("加载文档失败", zap.Error(err))
		return fmt.Errorf("加载文档失败: %w", err)
	}

	planner.NormalizeDocument(doc, s.currentMonth(), s.ids)
	if err := planner.ValidateDocument(doc); err != nil {
		s.logger.Error("已存储的文档不满足约束", zap.Error(err))
		return err
	}

	s.mu.Lock()
	s.cur = newState(doc, s.ids)
	s.mu.Unlock()

	s.logger.Info("规划数据已加载",
		zap.Int("members", len(doc.Members)),
		zap.Int("slots", len(doc.Slots)),
		zap.Int("projects", len(doc.Projects)),
	)
	return nil
}

// Close 关闭前保存最终文档
func (s *plannerService) Close(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cur == nil {
		return nil
	}
	if err := s.repo.Document.Save(ctx, s.cur.document()); err != nil {
		s.logger.Error("关闭时保存文档失败", zap.Error(err))
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	s.cur = nil
	return nil
}

// ────────────────────── 内部辅助 ──────────────────────

func (s *plannerService) currentMonth() string {
	return planner.MonthBucket(s.now())
}

// read 在读锁下访问当前状态
func (s *plannerService) read(fn func(st *state) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.cur == nil {
		return ErrNotReady
	}
	return fn(s.cur)
}

// mutate 单写者：在副本上执行 fn，持久化成功后才替换当前状态。
// fn 返回 changed=false 时不做持久化（如删除不存在的记录）。
func (s *plannerService) mutate(ctx context.Context, op string, fn func(next *state) (bool, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cur == nil {
		return ErrNotReady
	}

	next := s.cur.clone()
	changed, err := fn(next)
	if err != nil {
		return err
	}
	if !changed {
		return nil
	}

	if err := s.repo.Document.Save(ctx, next.document()); err != nil {
		s.logger.Error("持久化失败", zap.String("op", op), zap.Error(err))
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	s.cur = next
	return nil
}

func toSlotResponse(slot *model.TimeSlot) dto.SlotResponse {
	return dto.SlotResponse{
		ID:       slot.ID,
		MemberID: slot.MemberID,
		Project:  slot.Project,
		Day:      slot.Day,
		Start:    slot.Start.String(),
		End:      slot.End.String(),
		Month:    slot.Month,
		Minutes:  int(slot.End - slot.Start),
		Color:    planner.ColorForKey(slot.Project + slot.Day),
	}
}

func toSlotResponses(slots []model.TimeSlot) []dto.SlotResponse {
	result := make([]dto.SlotResponse, 0, len(slots))
	for i := range slots {
		result = append(result, toSlotResponse(&slots[i]))
	}
	return result
}

func toGapResponses(gaps []planner.Gap) []dto.GapResponse {
	result := make([]dto.GapResponse, 0, len(gaps))
	for _, g := range gaps {
		result = append(result, dto.GapResponse{
			Start:   g.Start.String(),
			End:     g.End.String(),
			Minutes: g.Minutes(),
			Label:   g.Label(),
		})
	}
	return result
}
