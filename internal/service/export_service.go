package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/signintech/gopdf"
	"github.com/xuri/excelize/v2"

	"github.com/onthi-app/onthi-backend/internal/config"
)

// ExportService renders exams as printable PDF papers and XLSX sheets.
type ExportService struct {
	cfg         *config.Config
	examService *ExamService
	log         zerolog.Logger
}

// NewExportService creates a new ExportService.
func NewExportService(cfg *config.Config, examService *ExamService, log zerolog.Logger) *ExportService {
	return &ExportService{
		cfg:         cfg,
		examService: examService,
		log:         log.With().Str("component", "export_service").Logger(),
	}
}

var answerLabels = []string{"A", "B", "C", "D", "E", "F", "G", "H"}

func answerLabel(i int) string {
	if i < len(answerLabels) {
		return answerLabels[i]
	}
	return fmt.Sprintf("%d", i+1)
}

// ExportPDF renders an exam as a printable paper. The font must cover
// Vietnamese glyphs; DejaVu Sans ships with the deployment image.
func (s *ExportService) ExportPDF(ctx context.Context, examID uuid.UUID) ([]byte, error) {
	exam, err := s.examService.GetByID(ctx, examID)
	if err != nil {
		return nil, err
	}

	pdf := gopdf.GoPdf{}
	pdf.Start(gopdf.Config{PageSize: *gopdf.PageSizeA4})
	pdf.AddPage()

	if err := pdf.AddTTFFont("body", s.cfg.PDFFontPath); err != nil {
		return nil, fmt.Errorf("load pdf font: %w", err)
	}

	const (
		marginLeft = 40.0
		pageWidth  = 515.0 // A4 width minus margins
		bottomY    = 790.0
	)

	writeLine := func(size float64, text string) error {
		if err := pdf.SetFont("body", "", size); err != nil {
			return err
		}
		if pdf.GetY() > bottomY {
			pdf.AddPage()
			pdf.SetY(40)
		}
		pdf.SetX(marginLeft)
		if err := pdf.MultiCell(&gopdf.Rect{W: pageWidth, H: size + 4}, text); err != nil {
			return err
		}
		pdf.Br(4)
		return nil
	}

	pdf.SetY(40)
	if err := writeLine(18, exam.Title); err != nil {
		return nil, err
	}
	if err := writeLine(11, fmt.Sprintf("Thời gian làm bài: %d phút · Số câu hỏi: %d", exam.Duration, exam.QuestionCount)); err != nil {
		return nil, err
	}
	if exam.Description != "" {
		if err := writeLine(11, exam.Description); err != nil {
			return nil, err
		}
	}
	pdf.Br(10)

	for i, q := range exam.Questions {
		if err := writeLine(12, fmt.Sprintf("Câu %d: %s", i+1, q.Content)); err != nil {
			return nil, err
		}
		for j, opt := range q.Options {
			if err := writeLine(11, fmt.Sprintf("    %s. %s", answerLabel(j), opt)); err != nil {
				return nil, err
			}
		}
		pdf.Br(6)
	}

	out := pdf.GetBytesPdf()
	s.log.Info().Str("exam_id", examID.String()).Int("bytes", len(out)).Msg("PDF exported")
	return out, nil
}

// ExportXLSX renders an exam as a spreadsheet with one question per row and
// the answer key in its own column.
func (s *ExportService) ExportXLSX(ctx context.Context, examID uuid.UUID) ([]byte, error) {
	exam, err := s.examService.GetByID(ctx, examID)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Sheet1"
	headers := []string{"#", "Nội dung câu hỏi", "Đáp án", "Đáp án đúng", "Giải thích"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}

	for i, q := range exam.Questions {
		row := i + 2

		options := ""
		for j, opt := range q.Options {
			if j > 0 {
				options += "\n"
			}
			options += fmt.Sprintf("%s. %s", answerLabel(j), opt)
		}

		correct := ""
		for j, idx := range q.CorrectAnswers {
			if j > 0 {
				correct += ", "
			}
			correct += answerLabel(idx)
		}

		values := []interface{}{i + 1, q.Content, options, correct, q.Explanation}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			f.SetCellValue(sheet, cell, v)
		}
	}

	f.SetColWidth(sheet, "B", "B", 60)
	f.SetColWidth(sheet, "C", "C", 50)
	f.SetColWidth(sheet, "E", "E", 40)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write xlsx: %w", err)
	}

	s.log.Info().Str("exam_id", examID.String()).Int("bytes", buf.Len()).Msg("XLSX exported")
	return buf.Bytes(), nil
}
