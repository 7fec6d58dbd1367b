package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"slot-planner/internal/dto"
	"slot-planner/internal/model"
	"slot-planner/internal/planner"
)

func TestPlannerService_ImportDocument(t *testing.T) {
	svc, docRepo := setupTestPlannerService(alphaDocument())
	ctx := context.Background()

	raw := []byte(`{
		"members": [{"id": "m1", "name": "Omega"}],
		"slots": [
			{"id": "s1", "memberId": "m1", "project": "Atlas", "day": "Monday", "start": "09:00", "end": "10:00"},
			{"id": "s2", "memberId": "m1", "project": "Atlas", "day": "Friday", "start": "14:00", "end": "15:00", "month": "2024-04"}
		]
	}`)
	res, err := svc.ImportDocument(ctx, raw)
	if err != nil {
		t.Fatalf("ImportDocument 应成功: %v", err)
	}
	if res.Members != 1 || res.Slots != 2 || res.Projects != 1 {
		t.Errorf("导入统计不符: %+v", res)
	}

	m, err := svc.GetMember(ctx, "m1")
	if err != nil || m.Level != model.LevelUnspecified {
		t.Errorf("成员级别应补为 Unspecified，实际 m=%+v err=%v", m, err)
	}
	s1, _ := svc.GetSlot(ctx, "s1")
	if s1.Month != testMonth {
		t.Errorf("缺失 month 应补为 %s，实际 %s", testMonth, s1.Month)
	}
	s2, _ := svc.GetSlot(ctx, "s2")
	if s2.Month != "2024-04" {
		t.Errorf("已有 month 应保留，实际 %s", s2.Month)
	}
	if _, err := svc.GetMember(ctx, "alpha"); !errors.Is(err, planner.ErrNotFound) {
		t.Error("导入应整体替换旧数据")
	}
	if len(docRepo.doc.Members) != 1 {
		t.Errorf("导入结果应持久化，实际 %d 个成员", len(docRepo.doc.Members))
	}
}

func TestPlannerService_ImportDocument_Rejects(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"无效 JSON", `{"members": [`},
		{"缺少 slots", `{"members": []}`},
		{"缺少 members", `{"slots": []}`},
		{"slots 为 null", `{"members": [], "slots": null}`},
		{"孤儿时间段", `{"members": [], "slots": [{"id": "s1", "memberId": "x", "project": "P", "day": "Monday", "start": "09:00", "end": "10:00"}]}`},
		{"时间格式错误", `{"members": [{"id": "m1", "name": "A"}], "slots": [{"id": "s1", "memberId": "m1", "project": "P", "day": "Monday", "start": "9am", "end": "10:00"}]}`},
		{"重叠", `{"members": [{"id": "m1", "name": "A"}], "slots": [
			{"id": "s1", "memberId": "m1", "project": "P", "day": "Monday", "start": "09:00", "end": "10:00"},
			{"id": "s2", "memberId": "m1", "project": "Q", "day": "Monday", "start": "09:30", "end": "10:30"}]}`},
	}

	for _, tt := range tests {
		svc, docRepo := setupTestPlannerService(alphaDocument())
		ctx := context.Background()
		_, _ = svc.CreateSlot(ctx, createReq("alpha", "Apollo", "Monday", "09:00", "10:00"))
		saves := docRepo.saves

		_, err := svc.ImportDocument(ctx, []byte(tt.raw))
		if !errors.Is(err, planner.ErrMalformedDocument) {
			t.Errorf("%s: 期望 ErrMalformedDocument，实际 %v", tt.name, err)
		}
		if docRepo.saves != saves {
			t.Errorf("%s: 被拒绝的导入不应持久化", tt.name)
		}
		slots, err := svc.ListSlots(ctx, "alpha", &dto.SlotListRequest{})
		if err != nil || len(slots) != 1 {
			t.Errorf("%s: 被拒绝的导入应保留原数据，实际 %d 个时间段 err=%v", tt.name, len(slots), err)
		}
	}
}

func TestPlannerService_ExportDocument_RoundTrip(t *testing.T) {
	svc, _ := setupTestPlannerService(alphaDocument())
	ctx := context.Background()
	_, _ = svc.CreateSlot(ctx, createReq("alpha", "Apollo", "Monday", "09:00", "10:00"))

	doc, err := svc.ExportDocument(ctx)
	if err != nil {
		t.Fatalf("ExportDocument 应成功: %v", err)
	}
	raw, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("序列化失败: %v", err)
	}

	other, _ := setupTestPlannerService(nil)
	res, err := other.ImportDocument(ctx, raw)
	if err != nil {
		t.Fatalf("导出的文档应可重新导入: %v", err)
	}
	if res.Members != 2 || res.Slots != 1 || res.Projects != 1 {
		t.Errorf("往返统计不符: %+v", res)
	}
}
