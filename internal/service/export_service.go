package service

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"omr_backend/internal/config"
	"omr_backend/internal/model"
	"omr_backend/internal/util"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
)

// ExportService 把一次作答生成可下载的 Excel 报表。
// 核心只提供数据，这里纯粹是表现层的排版。
type ExportService struct {
	AttemptService *AttemptService
	ChapterService *ChapterService
	Cfg            *config.Config
}

func NewExportService(attemptService *AttemptService, chapterService *ChapterService, cfg *config.Config) *ExportService {
	return &ExportService{
		AttemptService: attemptService,
		ChapterService: chapterService,
		Cfg:            cfg,
	}
}

// ExportAttempt 生成 xlsx 报表文件并返回其路径
func (s *ExportService) ExportAttempt(attemptID uint) (string, error) {
	attempt, err := s.AttemptService.GetAttempt(attemptID)
	if err != nil {
		return "", err
	}
	chapter, err := s.ChapterService.GetChapter(attempt.ChapterID)
	if err != nil {
		return "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"6366F1"}},
	})
	if err != nil {
		return "", err
	}

	if err := s.writeSummarySheet(f, headerStyle, attempt, chapter); err != nil {
		return "", err
	}
	if err := s.writeComparisonSheet(f, headerStyle, attempt, chapter); err != nil {
		return "", err
	}
	if err := s.writeStatisticsSheet(f, headerStyle, attempt); err != nil {
		return "", err
	}

	name := fmt.Sprintf("result_%s_%s_%s.xlsx",
		sanitizeFilename(attempt.StudentName),
		time.Now().Format(util.FileDateFormat),
		uuid.New().String()[:8],
	)
	path := filepath.Join(s.Cfg.Export.Dir, name)
	if err := f.SaveAs(path); err != nil {
		return "", err
	}
	return path, nil
}

func (s *ExportService) writeSummarySheet(f *excelize.File, headerStyle int, attempt *model.Attempt, chapter *model.Chapter) error {
	const sheet = "Summary"
	f.SetSheetName("Sheet1", sheet)

	f.SetCellValue(sheet, "A1", "Field")
	f.SetCellValue(sheet, "B1", "Value")
	f.SetCellStyle(sheet, "A1", "B1", headerStyle)

	percentage := attempt.Percentage()
	rows := [][2]interface{}{
		{"Student Name", attempt.StudentName},
		{"Chapter Name", chapter.ChapterName},
		{"Date & Time", attempt.SubmittedAt.Format(util.TimeFormat)},
		{"Score", attempt.Score},
		{"Total Questions", attempt.TotalQuestions},
		{"Percentage", fmt.Sprintf("%.2f%%", percentage)},
		{"Grade", GradeFor(percentage)},
		{"Attempt Number", attempt.AttemptNumber},
		{"Time Taken (s)", attempt.TimeTaken},
	}
	for i, row := range rows {
		f.SetCellValue(sheet, fmt.Sprintf("A%d", i+2), row[0])
		f.SetCellValue(sheet, fmt.Sprintf("B%d", i+2), row[1])
	}
	f.SetColWidth(sheet, "A", "B", 24)
	return nil
}

func (s *ExportService) writeComparisonSheet(f *excelize.File, headerStyle int, attempt *model.Attempt, chapter *model.Chapter) error {
	const sheet = "Comparison"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	headers := []string{"Question", "Correct Answer", "Your Answer", "Result"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}
	f.SetCellStyle(sheet, "A1", "D1", headerStyle)

	for i, correct := range chapter.CorrectAnswers {
		submitted := ""
		if i < len(attempt.SubmittedAnswers) {
			submitted = attempt.SubmittedAnswers[i]
		}
		result := "✗"
		if submitted == correct {
			result = "✓"
		}
		row := i + 2
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), i+1)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), correct)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), submitted)
		f.SetCellValue(sheet, fmt.Sprintf("D%d", row), result)
	}
	return nil
}

func (s *ExportService) writeStatisticsSheet(f *excelize.File, headerStyle int, attempt *model.Attempt) error {
	const sheet = "Statistics"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	f.SetCellValue(sheet, "A1", "Metric")
	f.SetCellValue(sheet, "B1", "Value")
	f.SetCellStyle(sheet, "A1", "B1", headerStyle)

	correct := attempt.Score
	incorrect := float64(attempt.TotalQuestions) - attempt.Score
	rows := [][2]interface{}{
		{"Correct Answers", correct},
		{"Incorrect Answers", incorrect},
		{"Accuracy", fmt.Sprintf("%.2f%%", attempt.Percentage())},
	}
	for i, row := range rows {
		f.SetCellValue(sheet, fmt.Sprintf("A%d", i+2), row[0])
		f.SetCellValue(sheet, fmt.Sprintf("B%d", i+2), row[1])
	}
	f.SetColWidth(sheet, "A", "B", 24)
	return nil
}

func sanitizeFilename(name string) string {
	replacer := strings.NewReplacer(" ", "_", "/", "_", "\\", "_", "..", "_")
	return replacer.Replace(name)
}
