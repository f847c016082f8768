package httpapi

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"amr-data/internal/domain"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

const resistanceSheetName = "Resistance Data"

// ObservationImportHeader import template columns. Facility ID and Notes
// may be left blank.
var ObservationImportHeader = []string{
	"Bacteria ID",
	"Antibiotic ID",
	"Region ID",
	"Facility ID",
	"Sample Date",
	"Total Samples",
	"Resistant Samples",
	"Notes",
}

// ObservationExportHeader export columns (import columns plus the
// store-assigned fields).
var ObservationExportHeader = []string{
	"ID",
	"Bacteria ID",
	"Antibiotic ID",
	"Region ID",
	"Facility ID",
	"Sample Date",
	"Total Samples",
	"Resistant Samples",
	"Notes",
	"Uploaded At",
}

// DownloadTemplate serves an empty import workbook.
func (h *ObservationHandler) DownloadTemplate(w http.ResponseWriter, r *http.Request) {
	data, err := generateObservationWorkbook(ObservationImportHeader, nil)
	if err != nil {
		h.logger.Error("generate import template failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to generate template")
		return
	}
	serveWorkbook(w, "resistance-data-template.xlsx", data)
}

// Export serves the filtered observation set as a workbook.
func (h *ObservationHandler) Export(w http.ResponseWriter, r *http.Request) {
	filter, err := parseFilters(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	observations, err := h.observations.List(r.Context(), filter)
	if err != nil {
		h.logger.Error("export resistance data failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to export resistance data")
		return
	}

	rows := make([][]any, 0, len(observations))
	for _, o := range observations {
		var facility any
		if o.FacilityID != nil {
			facility = *o.FacilityID
		}
		rows = append(rows, []any{
			o.ID, o.BacteriaID, o.AntibioticID, o.RegionID, facility,
			o.SampleDate.Format("2006-01-02"),
			o.TotalSamples, o.ResistantSamples, o.Notes,
			o.UploadedAt.Format(time.RFC3339),
		})
	}

	data, err := generateObservationWorkbook(ObservationExportHeader, rows)
	if err != nil {
		h.logger.Error("generate export workbook failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to export resistance data")
		return
	}
	serveWorkbook(w, "resistance-data.xlsx", data)
}

// Import parses an uploaded workbook and stores the rows as one
// all-or-nothing batch.
func (h *ObservationHandler) Import(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxObservationBody); err != nil {
		writeError(w, http.StatusBadRequest, "Expected multipart form upload")
		return
	}
	file, _, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Missing file field")
		return
	}
	defer file.Close()

	records, err := parseObservationWorkbook(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	batchID, stored, err := h.observations.BulkCreate(r.Context(), records)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidObservation) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.logger.Error("import resistance data failed",
			zap.Error(err), zap.String("batch_id", batchID))
		writeError(w, http.StatusInternalServerError, "Failed to import resistance data")
		return
	}
	writeJSON(w, http.StatusCreated, bulkResponse{BatchID: batchID, Records: stored})
}

func serveWorkbook(w http.ResponseWriter, filename string, data []byte) {
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	_, _ = w.Write(data)
}

func generateObservationWorkbook(headers []string, rows [][]any) ([]byte, error) {
	f := excelize.NewFile()
	// WriteTo needs the file open, so no deferred Close here

	index, err := f.NewSheet(resistanceSheetName)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E6F3FF"}, Pattern: 1},
	})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(resistanceSheetName, cell, header)
		f.SetCellStyle(resistanceSheetName, cell, cell, headerStyle)
	}

	for rowIdx, row := range rows {
		for colIdx, value := range row {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			f.SetCellValue(resistanceSheetName, cell, value)
		}
	}

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	f.Close()
	return buf.Bytes(), nil
}

// parseObservationWorkbook reads rows from the first sheet, expecting
// the import template layout. Blank rows are skipped; the column order
// must match ObservationImportHeader.
func parseObservationWorkbook(r io.Reader) ([]domain.NewObservation, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("workbook has no data rows")
	}

	records := make([]domain.NewObservation, 0, len(rows)-1)
	for i, row := range rows[1:] {
		if isBlankRow(row) {
			continue
		}
		record, err := parseObservationRow(row)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		records = append(records, record)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("workbook has no data rows")
	}
	return records, nil
}

func parseObservationRow(row []string) (domain.NewObservation, error) {
	cell := func(i int) string {
		if i < len(row) {
			return strings.TrimSpace(row[i])
		}
		return ""
	}

	var record domain.NewObservation
	var err error

	if record.BacteriaID, err = strconv.Atoi(cell(0)); err != nil {
		return record, fmt.Errorf("bad Bacteria ID %q", cell(0))
	}
	if record.AntibioticID, err = strconv.Atoi(cell(1)); err != nil {
		return record, fmt.Errorf("bad Antibiotic ID %q", cell(1))
	}
	if record.RegionID, err = strconv.Atoi(cell(2)); err != nil {
		return record, fmt.Errorf("bad Region ID %q", cell(2))
	}
	if s := cell(3); s != "" {
		facilityID, err := strconv.Atoi(s)
		if err != nil {
			return record, fmt.Errorf("bad Facility ID %q", s)
		}
		record.FacilityID = &facilityID
	}
	if record.SampleDate, err = time.Parse("2006-01-02", cell(4)); err != nil {
		return record, fmt.Errorf("bad Sample Date %q (want YYYY-MM-DD)", cell(4))
	}
	if record.TotalSamples, err = strconv.Atoi(cell(5)); err != nil {
		return record, fmt.Errorf("bad Total Samples %q", cell(5))
	}
	if record.ResistantSamples, err = strconv.Atoi(cell(6)); err != nil {
		return record, fmt.Errorf("bad Resistant Samples %q", cell(6))
	}
	record.Notes = cell(7)

	return record, nil
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
