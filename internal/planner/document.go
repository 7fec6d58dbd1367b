package planner

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"slot-planner/internal/model"
	"slot-planner/pkg/timeutil"
)

// MonthBucket 当前月份桶，格式 YYYY-MM
func MonthBucket(now time.Time) string {
	return now.Format("2006-01")
}

// DecodeDocument 解析导入的文档。
// 缺少 members 或 slots 字段（或为 null）时整体拒绝，不做部分导入。
func DecodeDocument(raw []byte) (*model.Document, error) {
	var keys map[string]json.RawMessage
	if err := json.Unmarshal(raw, &keys); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedDocument, err)
	}
	for _, k := range []string{"members", "slots"} {
		v, ok := keys[k]
		if !ok || string(v) == "null" {
			return nil, ErrMissingKeys
		}
	}

	var doc model.Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		if errors.Is(err, timeutil.ErrInvalidClock) {
			return nil, fmt.Errorf("%w: %v", ErrDocumentSlot, err)
		}
		return nil, fmt.Errorf("%w: %v", ErrMalformedDocument, err)
	}
	return &doc, nil
}

// NormalizeDocument 加载/导入后的规范化：
// 缺失 month 的时间段补为 month，缺失 level 的成员补为 Unspecified，
// 时间段使用但目录中不存在的项目名自动登记。
func NormalizeDocument(doc *model.Document, month string, ids IDGenerator) {
	if doc.Members == nil {
		doc.Members = []model.Member{}
	}
	if doc.Slots == nil {
		doc.Slots = []model.TimeSlot{}
	}
	if doc.Projects == nil {
		doc.Projects = []model.Project{}
	}

	for i := range doc.Members {
		m := &doc.Members[i]
		m.Name = strings.TrimSpace(m.Name)
		m.Role = strings.TrimSpace(m.Role)
		if m.Level == "" {
			m.Level = model.LevelUnspecified
		}
	}

	known := make(map[string]bool, len(doc.Projects))
	for _, p := range doc.Projects {
		known[p.Name] = true
	}
	for i := range doc.Slots {
		s := &doc.Slots[i]
		s.Project = strings.TrimSpace(s.Project)
		if s.Month == "" {
			s.Month = month
		}
		if s.Project != "" && !known[s.Project] {
			known[s.Project] = true
			doc.Projects = append(doc.Projects, model.Project{ID: ids.NewID(), Name: s.Project})
		}
	}
}

// ValidateDocument 校验规范化后的文档满足核心不变量：
// 成员与时间段字段合法、ID 唯一、无孤儿时间段、分区内无重叠。
func ValidateDocument(doc *model.Document) error {
	members := make(map[string]bool, len(doc.Members))
	for _, m := range doc.Members {
		if m.ID == "" || m.Name == "" || !model.IsValidLevel(m.Level) {
			return fmt.Errorf("%w: %q", ErrDocumentMember, m.ID)
		}
		if members[m.ID] {
			return fmt.Errorf("%w: %q", ErrDuplicateID, m.ID)
		}
		members[m.ID] = true
	}

	check := NewStore(nil, IDFunc(func() string { return "" }))
	seen := make(map[string]bool, len(doc.Slots))
	for _, s := range doc.Slots {
		if s.ID == "" {
			return ErrDocumentSlot
		}
		if seen[s.ID] {
			return fmt.Errorf("%w: %q", ErrDuplicateID, s.ID)
		}
		seen[s.ID] = true
		if !members[s.MemberID] {
			return fmt.Errorf("%w: %q", ErrOrphanSlot, s.ID)
		}

		in := SlotInput{MemberID: s.MemberID, Project: s.Project, Day: s.Day, Month: s.Month, Start: s.Start, End: s.End}
		if err := ValidateSlot(&in); err != nil {
			return fmt.Errorf("%w: %q: %v", ErrDocumentSlot, s.ID, err)
		}
		if conflict, ok := check.Overlaps(s.MemberID, s.Day, s.Month, s.Start, s.End, ""); ok {
			return fmt.Errorf("%w: %q 与 %q 重叠", ErrDocumentSlot, s.ID, conflict.ID)
		}
		check.slots = append(check.slots, s)
	}
	return nil
}
