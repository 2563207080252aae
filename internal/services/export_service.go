package services

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/SAP-F-2025/readiness-assessment/internal/engine"
	"github.com/SAP-F-2025/readiness-assessment/internal/models"
	"github.com/xuri/excelize/v2"
)

const catalogSheetName = "Vragen"

type exportService struct {
	catalog *engine.Catalog
	logger  *ServiceLogger
}

func NewExportService(catalog *engine.Catalog, logger *slog.Logger) ExportService {
	if catalog == nil {
		catalog = engine.DefaultCatalog()
	}
	return &exportService{
		catalog: catalog,
		logger:  NewServiceLogger(logger, "assessment", "export"),
	}
}

// ExportCatalogToExcel writes every catalog question as one row of a single sheet.
func (s *exportService) ExportCatalogToExcel(ctx context.Context) (data []byte, err error) {
	op := s.logger.WithOperation(ctx, "export_catalog")
	defer func() { op.LogResult("catalog", "xlsx", err) }()

	f := excelize.NewFile()
	defer f.Close()

	if err = f.SetSheetName("Sheet1", catalogSheetName); err != nil {
		return nil, fmt.Errorf("failed to create Excel sheet: %w", err)
	}

	headers := []string{"Nr", "Vraag", "Type", "Quick-quiz veld", "Opties"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err = f.SetCellValue(catalogSheetName, cell, header); err != nil {
			return nil, fmt.Errorf("failed to write header: %w", err)
		}
	}

	for rowIndex, question := range s.catalog.Questions() {
		for colIndex, value := range questionToRow(question) {
			cell, _ := excelize.CoordinatesToCellName(colIndex+1, rowIndex+2)
			if err = f.SetCellValue(catalogSheetName, cell, value); err != nil {
				return nil, fmt.Errorf("failed to write question %d: %w", question.Ordinal, err)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write Excel file: %w", err)
	}
	return buf.Bytes(), nil
}

func questionToRow(q models.QuestionDefinition) []string {
	field := ""
	if q.CanonicalField != nil {
		field = string(*q.CanonicalField)
	}

	options := make([]string, 0, len(q.Options))
	for _, option := range q.Options {
		options = append(options, option.Value+" = "+option.Label)
	}

	return []string{
		strconv.Itoa(q.Ordinal),
		q.Prompt,
		string(q.InputKind),
		field,
		strings.Join(options, "; "),
	}
}
