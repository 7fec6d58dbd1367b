package service

import (
	"context"

	"go.uber.org/zap"

	"slot-planner/internal/dto"
	"slot-planner/internal/model"
	"slot-planner/internal/planner"
)

// ── 文档导入导出 ──

// ExportDocument 返回当前完整文档的副本
func (s *plannerService) ExportDocument(_ context.Context) (*model.Document, error) {
	var doc *model.Document
	err := s.read(func(st *state) error {
		doc = st.document().Clone()
		return nil
	})
	return doc, err
}

// ImportDocument 整体替换当前数据。
// 文档缺少 members/slots、JSON 无效或违反约束时整体拒绝，当前数据保持不变。
func (s *plannerService) ImportDocument(ctx context.Context, raw []byte) (*dto.ImportResponse, error) {
	doc, err := planner.DecodeDocument(raw)
	if err != nil {
		s.logger.Warn("导入文档被拒绝", zap.Error(err))
		return nil, err
	}
	planner.NormalizeDocument(doc, s.currentMonth(), s.ids)
	if err := planner.ValidateDocument(doc); err != nil {
		s.logger.Warn("导入文档校验失败", zap.Error(err))
		return nil, err
	}

	err = s.mutate(ctx, "import_document", func(next *state) (bool, error) {
		*next = *newState(doc, s.ids)
		return true, nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("文档已导入",
		zap.Int("members", len(doc.Members)),
		zap.Int("slots", len(doc.Slots)),
		zap.Int("projects", len(doc.Projects)),
	)
	return &dto.ImportResponse{
		Members:  len(doc.Members),
		Slots:    len(doc.Slots),
		Projects: len(doc.Projects),
	}, nil
}
