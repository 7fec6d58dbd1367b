package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// ── 导出模块业务错误 ──

var (
	ErrExportGenerateFail = errors.New("生成 Excel 文件失败")
)

// ExportService 导出业务接口
//
// 周视图导出为 Excel (.xlsx)：每行一个时间段或空闲区间，按 Monday→Sunday 排列，
// 末尾附每日已排/空闲分钟统计。以 bytes.Buffer 返回，由 Handler 设置响应头。
type ExportService interface {
	ExportWeekXLSX(ctx context.Context, memberID, month string) (*bytes.Buffer, string, error)
}

type exportService struct {
	planner PlannerService
	logger  *zap.Logger
}

// NewExportService 创建 ExportService 实例
func NewExportService(planner PlannerService, logger *zap.Logger) ExportService {
	return &exportService{planner: planner, logger: logger}
}

const weekSheet = "周视图"

func (s *exportService) ExportWeekXLSX(ctx context.Context, memberID, month string) (*bytes.Buffer, string, error) {
	member, err := s.planner.GetMember(ctx, memberID)
	if err != nil {
		return nil, "", err
	}
	week, err := s.planner.WeekView(ctx, memberID, month)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	idx, _ := f.NewSheet(weekSheet)
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	f.SetColWidth(weekSheet, "A", "A", 12)
	f.SetColWidth(weekSheet, "B", "B", 8)
	f.SetColWidth(weekSheet, "C", "C", 24)
	f.SetColWidth(weekSheet, "D", "D", 18)
	f.SetColWidth(weekSheet, "E", "E", 10)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	freeStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Italic: true, Color: "#808080"},
	})

	// 标题行
	f.SetCellValue(weekSheet, "A1", fmt.Sprintf("%s（%s）— %s", member.Name, member.Level, month))
	f.MergeCell(weekSheet, "A1", "E1")
	f.SetCellStyle(weekSheet, "A1", "E1", headerStyle)

	// 表头
	row := 2
	for i, title := range []string{"星期", "类型", "项目", "时间", "分钟"} {
		col, _ := excelize.ColumnNumberToName(i + 1)
		f.SetCellValue(weekSheet, cell(col, row), title)
	}
	f.SetCellStyle(weekSheet, cell("A", row), cell("E", row), headerStyle)

	// 数据行：同一天内时间段与空闲区间按开始时间交替
	row = 3
	for _, day := range week.Days {
		si, gi := 0, 0
		for si < len(day.Slots) || gi < len(day.Gaps) {
			f.SetCellValue(weekSheet, cell("A", row), day.Day)
			if gi >= len(day.Gaps) || (si < len(day.Slots) && day.Slots[si].Start <= day.Gaps[gi].Start) {
				slot := day.Slots[si]
				f.SetCellValue(weekSheet, cell("B", row), "已排")
				f.SetCellValue(weekSheet, cell("C", row), slot.Project)
				f.SetCellValue(weekSheet, cell("D", row), fmt.Sprintf("%s – %s", slot.Start, slot.End))
				f.SetCellValue(weekSheet, cell("E", row), slot.Minutes)
				si++
			} else {
				gap := day.Gaps[gi]
				f.SetCellValue(weekSheet, cell("B", row), "空闲")
				f.SetCellValue(weekSheet, cell("D", row), gap.Label)
				f.SetCellValue(weekSheet, cell("E", row), gap.Minutes)
				f.SetCellStyle(weekSheet, cell("A", row), cell("E", row), freeStyle)
				gi++
			}
			row++
		}
	}

	// 汇总
	row++
	f.SetCellValue(weekSheet, cell("A", row), "星期")
	f.SetCellValue(weekSheet, cell("B", row), "已排")
	f.SetCellValue(weekSheet, cell("C", row), "空闲")
	f.SetCellStyle(weekSheet, cell("A", row), cell("C", row), headerStyle)
	for _, day := range week.Days {
		row++
		f.SetCellValue(weekSheet, cell("A", row), day.Day)
		f.SetCellValue(weekSheet, cell("B", row), day.BookedMinutes)
		f.SetCellValue(weekSheet, cell("C", row), day.FreeMinutes)
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("写入 Excel 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("week_%s_%s.xlsx", member.Name, month)
	return buf, filename, nil
}

// ── 辅助函数 ──

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}
