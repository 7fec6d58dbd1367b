package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"slot-planner/internal/dto"
	"slot-planner/internal/model"
	"slot-planner/internal/planner"
	"slot-planner/internal/repository"
)

func createReq(member, project, day, start, end string) *dto.CreateSlotRequest {
	return &dto.CreateSlotRequest{
		MemberID: member,
		Project:  project,
		Day:      day,
		Start:    start,
		End:      end,
		Month:    testMonth,
	}
}

// ── Init / Close ──

func TestPlannerService_Init_Normalizes(t *testing.T) {
	doc := alphaDocument()
	doc.Members[1].Level = ""
	doc.Slots = []model.TimeSlot{
		{ID: "s1", MemberID: "alpha", Project: "Apollo", Day: "Monday", Start: 540, End: 600},
	}
	svc, _ := setupTestPlannerService(doc)
	ctx := context.Background()

	slot, err := svc.GetSlot(ctx, "s1")
	if err != nil {
		t.Fatalf("GetSlot 应成功: %v", err)
	}
	if slot.Month != testMonth {
		t.Errorf("缺失 month 应补为当前月份 %s，实际 %q", testMonth, slot.Month)
	}

	beta, _ := svc.GetMember(ctx, "beta")
	if beta.Level != model.LevelUnspecified {
		t.Errorf("缺失 level 应补为 Unspecified，实际 %q", beta.Level)
	}

	projects, _ := svc.ListProjects(ctx)
	if len(projects) != 1 || projects[0].Name != "Apollo" || projects[0].SlotCount != 1 {
		t.Errorf("使用中的项目应自动登记，实际 %+v", projects)
	}
}

func TestPlannerService_Init_LoadError(t *testing.T) {
	docRepo := newMockDocumentRepo(nil)
	docRepo.loadErr = errors.New("connection refused")
	svc := NewPlannerService(repository.NewRepository(docRepo), seqIDs(), fixedNow, zap.NewNop())

	if err := svc.Init(context.Background()); err == nil {
		t.Fatal("加载失败时 Init 应返回错误")
	}
	if _, err := svc.ListMembers(context.Background()); !errors.Is(err, ErrNotReady) {
		t.Errorf("未初始化时期望 ErrNotReady，实际: %v", err)
	}
}

func TestPlannerService_Init_RejectsOverlappingStore(t *testing.T) {
	doc := alphaDocument()
	doc.Slots = []model.TimeSlot{
		{ID: "s1", MemberID: "alpha", Project: "A", Day: "Monday", Start: 540, End: 600, Month: testMonth},
		{ID: "s2", MemberID: "alpha", Project: "B", Day: "Monday", Start: 570, End: 630, Month: testMonth},
	}
	svc := NewPlannerService(repository.NewRepository(newMockDocumentRepo(doc)), seqIDs(), fixedNow, zap.NewNop())

	if err := svc.Init(context.Background()); !errors.Is(err, planner.ErrMalformedDocument) {
		t.Errorf("重叠的存储数据期望 ErrMalformedDocument，实际: %v", err)
	}
}

func TestPlannerService_Close_Flushes(t *testing.T) {
	svc, docRepo := setupTestPlannerService(alphaDocument())

	if err := svc.Close(context.Background()); err != nil {
		t.Fatalf("Close 应成功: %v", err)
	}
	if docRepo.saves != 1 {
		t.Errorf("Close 应保存一次，实际 %d", docRepo.saves)
	}
	if _, err := svc.ListMembers(context.Background()); !errors.Is(err, ErrNotReady) {
		t.Errorf("Close 后期望 ErrNotReady，实际: %v", err)
	}
}

// ── CreateSlot ──

func TestPlannerService_CreateSlot_Success(t *testing.T) {
	svc, docRepo := setupTestPlannerService(alphaDocument())
	ctx := context.Background()

	slot, err := svc.CreateSlot(ctx, createReq("alpha", " Apollo ", "Monday", "09:00", "10:00"))
	if err != nil {
		t.Fatalf("CreateSlot 应成功: %v", err)
	}
	if slot.Project != "Apollo" {
		t.Errorf("项目名应去除空白，实际 %q", slot.Project)
	}
	if slot.Minutes != 60 {
		t.Errorf("期望时长 60，实际 %d", slot.Minutes)
	}
	if slot.Color != planner.ColorForKey("ApolloMonday") {
		t.Errorf("颜色应由 project+day 生成，实际 %s", slot.Color)
	}
	if docRepo.saves != 1 || len(docRepo.doc.Slots) != 1 {
		t.Errorf("创建后应持久化完整文档，saves=%d slots=%d", docRepo.saves, len(docRepo.doc.Slots))
	}
	if len(docRepo.doc.Projects) != 1 {
		t.Errorf("新项目应登记到目录，实际 %d", len(docRepo.doc.Projects))
	}
}

func TestPlannerService_CreateSlot_DefaultMonth(t *testing.T) {
	svc, _ := setupTestPlannerService(alphaDocument())

	req := createReq("alpha", "Apollo", "Monday", "09:00", "10:00")
	req.Month = ""
	slot, err := svc.CreateSlot(context.Background(), req)
	if err != nil {
		t.Fatalf("CreateSlot 应成功: %v", err)
	}
	if slot.Month != testMonth {
		t.Errorf("期望默认月份 %s，实际 %s", testMonth, slot.Month)
	}
}

func TestPlannerService_CreateSlot_Errors(t *testing.T) {
	svc, _ := setupTestPlannerService(alphaDocument())
	ctx := context.Background()
	if _, err := svc.CreateSlot(ctx, createReq("alpha", "Apollo", "Monday", "09:00", "10:00")); err != nil {
		t.Fatalf("准备数据失败: %v", err)
	}

	tests := []struct {
		name string
		req  *dto.CreateSlotRequest
		kind error
	}{
		{"空项目", createReq("alpha", "  ", "Monday", "10:00", "11:00"), planner.ErrValidation},
		{"缺少时间", createReq("alpha", "Apollo", "Monday", "", "11:00"), planner.ErrValidation},
		{"时间格式错误", createReq("alpha", "Apollo", "Monday", "9am", "11:00"), planner.ErrValidation},
		{"结束不晚于开始", createReq("alpha", "Apollo", "Monday", "11:00", "11:00"), planner.ErrValidation},
		{"非法星期", createReq("alpha", "Apollo", "Funday", "10:00", "11:00"), planner.ErrValidation},
		{"重叠", createReq("alpha", "Hermes", "Monday", "09:30", "10:30"), planner.ErrOverlap},
		{"成员不存在", createReq("ghost", "Apollo", "Monday", "10:00", "11:00"), planner.ErrNotFound},
	}

	for _, tt := range tests {
		_, err := svc.CreateSlot(ctx, tt.req)
		if !errors.Is(err, tt.kind) {
			t.Errorf("%s: 期望 %v，实际 %v", tt.name, tt.kind, err)
		}
	}

	slots, _ := svc.ListSlots(ctx, "alpha", &dto.SlotListRequest{})
	if len(slots) != 1 {
		t.Errorf("失败的创建不应修改数据，实际 %d 个时间段", len(slots))
	}
}

func TestPlannerService_CreateSlot_TouchingAndOtherPartition(t *testing.T) {
	svc, _ := setupTestPlannerService(alphaDocument())
	ctx := context.Background()

	mustCreate := func(req *dto.CreateSlotRequest) {
		t.Helper()
		if _, err := svc.CreateSlot(ctx, req); err != nil {
			t.Fatalf("CreateSlot(%+v) 应成功: %v", req, err)
		}
	}
	mustCreate(createReq("alpha", "Apollo", "Monday", "09:00", "10:00"))
	// 首尾相接不算重叠
	mustCreate(createReq("alpha", "Apollo", "Monday", "10:00", "11:00"))
	// 其他成员、其他天、其他月份各自独立
	mustCreate(createReq("beta", "Apollo", "Monday", "09:00", "10:00"))
	mustCreate(createReq("alpha", "Apollo", "Tuesday", "09:00", "10:00"))
	other := createReq("alpha", "Apollo", "Monday", "09:00", "10:00")
	other.Month = "2024-06"
	mustCreate(other)
}

func TestPlannerService_CreateSlot_PersistenceFailure(t *testing.T) {
	svc, docRepo := setupTestPlannerService(alphaDocument())
	ctx := context.Background()
	docRepo.failSave = true

	_, err := svc.CreateSlot(ctx, createReq("alpha", "Apollo", "Monday", "09:00", "10:00"))
	if !errors.Is(err, ErrPersistence) {
		t.Fatalf("期望 ErrPersistence，实际: %v", err)
	}

	slots, _ := svc.ListSlots(ctx, "alpha", &dto.SlotListRequest{})
	if len(slots) != 0 {
		t.Errorf("持久化失败时内存数据应保持不变，实际 %d 个时间段", len(slots))
	}
	projects, _ := svc.ListProjects(ctx)
	if len(projects) != 0 {
		t.Errorf("持久化失败时项目目录应保持不变，实际 %d", len(projects))
	}
}

// ── UpdateSlot ──

func TestPlannerService_UpdateSlot(t *testing.T) {
	svc, _ := setupTestPlannerService(alphaDocument())
	ctx := context.Background()
	a, _ := svc.CreateSlot(ctx, createReq("alpha", "Apollo", "Monday", "09:00", "10:00"))
	_, _ = svc.CreateSlot(ctx, createReq("alpha", "Hermes", "Monday", "10:00", "11:00"))

	// 与自身旧区间重叠不算冲突
	updated, err := svc.UpdateSlot(ctx, a.ID, &dto.UpdateSlotRequest{
		Project: "Apollo", Day: "Monday", Start: "09:30", End: "10:00",
	})
	if err != nil {
		t.Fatalf("UpdateSlot 应成功: %v", err)
	}
	if updated.Start != "09:30" || updated.Month != testMonth || updated.MemberID != "alpha" {
		t.Errorf("编辑结果不符: %+v", updated)
	}

	_, err = svc.UpdateSlot(ctx, a.ID, &dto.UpdateSlotRequest{
		Project: "Apollo", Day: "Monday", Start: "09:30", End: "10:30",
	})
	if !errors.Is(err, planner.ErrOverlap) {
		t.Errorf("与其他时间段重叠期望 ErrOverlap，实际: %v", err)
	}
	var oe *planner.OverlapError
	if !errors.As(err, &oe) || oe.Conflict.Project != "Hermes" {
		t.Errorf("OverlapError 应携带冲突时间段，实际: %v", err)
	}

	_, err = svc.UpdateSlot(ctx, "missing", &dto.UpdateSlotRequest{
		Project: "Apollo", Day: "Monday", Start: "12:00", End: "13:00",
	})
	if !errors.Is(err, planner.ErrNotFound) {
		t.Errorf("编辑不存在的时间段期望 ErrNotFound，实际: %v", err)
	}
}

// ── DeleteSlot ──

func TestPlannerService_DeleteSlot(t *testing.T) {
	svc, docRepo := setupTestPlannerService(alphaDocument())
	ctx := context.Background()
	a, _ := svc.CreateSlot(ctx, createReq("alpha", "Apollo", "Monday", "09:00", "10:00"))
	saves := docRepo.saves

	res, err := svc.DeleteSlot(ctx, "missing")
	if err != nil || res.Deleted {
		t.Errorf("删除不存在的时间段应为空操作，实际 res=%+v err=%v", res, err)
	}
	if docRepo.saves != saves {
		t.Error("空操作不应触发持久化")
	}

	res, err = svc.DeleteSlot(ctx, a.ID)
	if err != nil || !res.Deleted {
		t.Fatalf("DeleteSlot 应成功: res=%+v err=%v", res, err)
	}
	if _, err := svc.GetSlot(ctx, a.ID); !errors.Is(err, planner.ErrNotFound) {
		t.Errorf("删除后期望 ErrNotFound，实际: %v", err)
	}
}

// ── Gaps / WeekView ──

func TestPlannerService_Gaps(t *testing.T) {
	svc, _ := setupTestPlannerService(alphaDocument())
	ctx := context.Background()
	_, _ = svc.CreateSlot(ctx, createReq("alpha", "Apollo", "Monday", "10:00", "11:00"))
	_, _ = svc.CreateSlot(ctx, createReq("alpha", "Hermes", "Monday", "13:00", "14:30"))

	gaps, err := svc.Gaps(ctx, "alpha", "Monday", testMonth)
	if err != nil {
		t.Fatalf("Gaps 应成功: %v", err)
	}
	want := []string{"09:00 – 10:00", "11:00 – 13:00", "14:30 – 18:15"}
	if len(gaps) != len(want) {
		t.Fatalf("期望 %d 个空闲区间，实际 %+v", len(want), gaps)
	}
	for i, g := range gaps {
		if g.Label != want[i] {
			t.Errorf("gaps[%d]: 期望 %s，实际 %s", i, want[i], g.Label)
		}
	}

	if _, err := svc.Gaps(ctx, "alpha", "Monday", ""); !errors.Is(err, planner.ErrValidation) {
		t.Errorf("缺少月份期望 ErrValidation，实际: %v", err)
	}
	if _, err := svc.Gaps(ctx, "alpha", "Someday", testMonth); !errors.Is(err, planner.ErrValidation) {
		t.Errorf("非法星期期望 ErrValidation，实际: %v", err)
	}

	// 其他月份不受影响
	other, _ := svc.Gaps(ctx, "alpha", "Monday", "2024-06")
	if len(other) != 1 || other[0].Minutes != planner.ChartRange {
		t.Errorf("其他月份应为整段空闲，实际 %+v", other)
	}
}

func TestPlannerService_WeekView(t *testing.T) {
	svc, _ := setupTestPlannerService(alphaDocument())
	ctx := context.Background()
	_, _ = svc.CreateSlot(ctx, createReq("alpha", "Apollo", "Wednesday", "09:00", "12:00"))

	week, err := svc.WeekView(ctx, "alpha", testMonth)
	if err != nil {
		t.Fatalf("WeekView 应成功: %v", err)
	}
	if len(week.Days) != 7 || week.Days[0].Day != "Monday" || week.Days[6].Day != "Sunday" {
		t.Fatalf("周视图应按 Monday→Sunday 排列，实际 %+v", week.Days)
	}
	wed := week.Days[2]
	if wed.BookedMinutes != 180 || wed.FreeMinutes != planner.ChartRange-180 {
		t.Errorf("Wednesday 统计不符: booked=%d free=%d", wed.BookedMinutes, wed.FreeMinutes)
	}
	if week.Chart.Start != "09:00" || week.Chart.End != "18:15" {
		t.Errorf("图表窗口不符: %+v", week.Chart)
	}
	if week.Chart.Marks[len(week.Chart.Marks)-1] != "18:15" {
		t.Errorf("时间轴末尾应为 18:15，实际 %v", week.Chart.Marks)
	}
}

// ── Drag ──

func TestPlannerService_ProposeFromDrag(t *testing.T) {
	svc, _ := setupTestPlannerService(alphaDocument())
	ctx := context.Background()

	res, err := svc.ProposeFromDrag(ctx, &dto.DragProposalRequest{
		MemberID: "alpha", Day: "Monday", Month: testMonth, StartPx: 120, EndPx: 60,
	})
	if err != nil {
		t.Fatalf("ProposeFromDrag 应成功: %v", err)
	}
	if !res.Accepted || res.Start != "10:00" || res.End != "11:00" {
		t.Errorf("期望 10:00–11:00，实际 %+v", res)
	}

	res, _ = svc.ProposeFromDrag(ctx, &dto.DragProposalRequest{
		MemberID: "alpha", Day: "Monday", Month: testMonth, StartPx: 60, EndPx: 63,
	})
	if res.Accepted {
		t.Error("低于最小拖拽阈值不应产生候选区间")
	}

	_, err = svc.ProposeFromDrag(ctx, &dto.DragProposalRequest{
		MemberID: "alpha", Day: "Monday", Month: testMonth, StartPx: 0, EndPx: 120,
		GapStart: "09:30", GapEnd: "12:00",
	})
	if !errors.Is(err, planner.ErrOutsideRange) {
		t.Errorf("超出空闲区间期望 ErrOutsideRange，实际: %v", err)
	}
}

func TestPlannerService_ProposeFromDrag_ClampedThreshold(t *testing.T) {
	svc, _ := setupTestPlannerService(alphaDocument())
	ctx := context.Background()

	tests := []struct {
		name       string
		start, end float64
		accepted   bool
		wantStart  string
		wantEnd    string
	}{
		{"起点在列上方，夹取后仅 3 分钟", -100, 3, false, "", ""},
		{"整段在列下方", 800, 700, false, "", ""},
		{"起点在列上方，夹取后 60 分钟", -100, 60, true, "09:00", "10:00"},
		{"终点在列下方", 500, 9999, true, "17:20", "18:15"},
	}

	for _, tt := range tests {
		res, err := svc.ProposeFromDrag(ctx, &dto.DragProposalRequest{
			MemberID: "alpha", Day: "Monday", Month: testMonth, StartPx: tt.start, EndPx: tt.end,
		})
		if err != nil {
			t.Fatalf("%s: ProposeFromDrag 应成功: %v", tt.name, err)
		}
		if res.Accepted != tt.accepted || res.Start != tt.wantStart || res.End != tt.wantEnd {
			t.Errorf("%s: 期望 accepted=%v %s–%s，实际 %+v", tt.name, tt.accepted, tt.wantStart, tt.wantEnd, res)
		}
	}
}

func TestPlannerService_ProposeFromDrag_StaleGap(t *testing.T) {
	svc, _ := setupTestPlannerService(alphaDocument())
	ctx := context.Background()

	if _, err := svc.CreateSlot(ctx, createReq("alpha", "Apollo", "Monday", "10:00", "11:00")); err != nil {
		t.Fatalf("CreateSlot 应成功: %v", err)
	}

	// 09:00–12:00 在当月已被 10:00–11:00 占用
	_, err := svc.ProposeFromDrag(ctx, &dto.DragProposalRequest{
		MemberID: "alpha", Day: "Monday", StartPx: 0, EndPx: 30,
		GapStart: "09:00", GapEnd: "12:00",
	})
	if !errors.Is(err, planner.ErrOutsideRange) {
		t.Errorf("已失效的空闲区间期望 ErrOutsideRange，实际: %v", err)
	}

	// 其他月份分区不受影响
	res, err := svc.ProposeFromDrag(ctx, &dto.DragProposalRequest{
		MemberID: "alpha", Day: "Monday", Month: "2024-06", StartPx: 0, EndPx: 30,
		GapStart: "09:00", GapEnd: "12:00",
	})
	if err != nil || !res.Accepted {
		t.Errorf("其他月份应产生候选区间，实际 %+v, %v", res, err)
	}
}

func TestPlannerService_CommitProposal(t *testing.T) {
	svc, _ := setupTestPlannerService(alphaDocument())
	ctx := context.Background()

	req := &dto.CommitProposalRequest{
		CreateSlotRequest: *createReq("alpha", "Apollo", "Monday", "09:30", "10:30"),
		GapStart:          "09:00",
		GapEnd:            "12:00",
	}
	if _, err := svc.CommitProposal(ctx, req); err != nil {
		t.Fatalf("CommitProposal 应成功: %v", err)
	}

	out := &dto.CommitProposalRequest{
		CreateSlotRequest: *createReq("alpha", "Apollo", "Monday", "11:30", "12:30"),
		GapStart:          "10:30",
		GapEnd:            "12:00",
	}
	_, err := svc.CommitProposal(ctx, out)
	if !errors.Is(err, planner.ErrOutsideRange) {
		t.Errorf("超出空闲区间期望 ErrOutsideRange，实际: %v", err)
	}

	slots, _ := svc.ListSlots(ctx, "alpha", &dto.SlotListRequest{})
	if len(slots) != 1 {
		t.Errorf("RangeError 不应写入数据，实际 %d 个时间段", len(slots))
	}
}
