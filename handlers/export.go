package handlers

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
	"p9e.in/mtmaterial/config"
	"p9e.in/mtmaterial/models"
)

const dateTimeFormat = "02.01.2006 15:04"

// Export streams the requested export as semicolon-delimited CSV (UTF-8 with
// BOM, for German Excel) or XLSX. One row per line item; the report and
// object types emit one row per aggregate instead.
func Export(w http.ResponseWriter, r *http.Request) {
	params := models.ParseListParams(r)
	exportType := r.URL.Query().Get("type")
	format := r.URL.Query().Get("format")
	if format == "" {
		format = "csv"
	}
	if format != "csv" && format != "xlsx" {
		writeError(w, http.StatusBadRequest, "unknown format: "+format)
		return
	}

	var (
		header   []string
		rows     [][]string
		basename string
	)

	switch exportType {
	case "submissions", "team", "object", "report":
		var submissions []models.Submission
		err := params.ApplySubmissionFilters(config.DB).
			Preload("Items.Material").
			Order("created_at desc").
			Find(&submissions).Error
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}

		switch exportType {
		case "submissions":
			header, rows = buildSubmissionRows(submissions)
			basename = "meldungen"
		case "team":
			header, rows = buildTeamRows(submissions)
			basename = "teams"
		case "object":
			header, rows = buildObjectRows(submissions)
			basename = "objekte"
		case "report":
			header, rows = buildReportRows(submissions)
			basename = "bericht"
		}

	case "orders":
		var orders []models.PurchaseOrder
		err := params.ApplyOrderFilters(config.DB).
			Preload("Items.Material").
			Order("created_at desc").
			Find(&orders).Error
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		header, rows = buildOrderRows(orders)
		basename = "bestellungen"

	default:
		writeError(w, http.StatusBadRequest, "unknown export type: "+exportType)
		return
	}

	filename := fmt.Sprintf("%s_%s.%s", basename, time.Now().Format("2006-01-02"), format)
	if format == "xlsx" {
		writeXLSX(w, filename, header, rows)
		return
	}
	writeCSV(w, filename, header, rows)
}

func buildSubmissionRows(subs []models.Submission) ([]string, [][]string) {
	header := []string{"Datum", "MT Team", "DEHP Nummer", "Vorname", "Nachname", "Material", "Menge", "Einzelpreis", "Kosten", "Kommentar"}
	var rows [][]string
	for _, sub := range subs {
		comment := ""
		if sub.Comment != nil {
			comment = *sub.Comment
		}
		for _, item := range sub.Items {
			rows = append(rows, []string{
				sub.CreatedAt.Format(dateTimeFormat),
				sub.MtTeamNorm,
				sub.DehpNumber,
				sub.FirstName,
				sub.LastName,
				item.Material.Name,
				strconv.Itoa(item.Qty),
				formatAmount(item.UnitPrice.StringFixed(2)),
				formatAmount(item.Cost().StringFixed(2)),
				comment,
			})
		}
	}
	return header, rows
}

func buildTeamRows(subs []models.Submission) ([]string, [][]string) {
	header := []string{"MT Team", "DEHP Nummer", "Datum", "Material", "Menge", "Kosten", "Vorname", "Nachname"}
	var rows [][]string
	for _, sub := range subs {
		for _, item := range sub.Items {
			rows = append(rows, []string{
				sub.MtTeamNorm,
				sub.DehpNumber,
				sub.CreatedAt.Format(dateTimeFormat),
				item.Material.Name,
				strconv.Itoa(item.Qty),
				formatAmount(item.Cost().StringFixed(2)),
				sub.FirstName,
				sub.LastName,
			})
		}
	}
	return header, rows
}

// buildObjectRows emits the object pivot: one row per DEHP number, one column
// per material that occurs anywhere in the filtered set, plus totals.
func buildObjectRows(subs []models.Submission) ([]string, [][]string) {
	pivots := models.BuildObjectPivots(subs)
	materialNames := materialColumnNames(subs)

	header := append([]string{"DEHP Nummer"}, materialNames...)
	header = append(header, "Gesamt", "Gesamtkosten")

	var rows [][]string
	for _, pivot := range pivots {
		qtyByName := make(map[string]int, len(pivot.Materials))
		for _, row := range pivot.Materials {
			qtyByName[row.Name] = row.Qty
		}
		row := []string{pivot.DehpNumber}
		for _, name := range materialNames {
			row = append(row, strconv.Itoa(qtyByName[name]))
		}
		row = append(row, strconv.Itoa(pivot.TotalQty), formatAmount(pivot.TotalCost.StringFixed(2)))
		rows = append(rows, row)
	}
	return header, rows
}

func buildReportRows(subs []models.Submission) ([]string, [][]string) {
	header := []string{"Material", "Gesamtmenge", "Gesamtkosten"}
	totals := models.MaterialTotals(subs)

	var rows [][]string
	for _, row := range totals {
		rows = append(rows, []string{
			row.Name,
			strconv.Itoa(row.Qty),
			formatAmount(row.Cost.StringFixed(2)),
		})
	}
	return header, rows
}

func buildOrderRows(orders []models.PurchaseOrder) ([]string, [][]string) {
	header := []string{"Datum", "Bestellnummer", "MT Team", "Mitarbeiter", "Material", "Menge", "Einzelpreis", "Kosten", "Status", "Priorität", "Lieferant"}
	var rows [][]string
	for _, order := range orders {
		supplier := ""
		if order.Supplier != nil {
			supplier = *order.Supplier
		}
		for _, item := range order.Items {
			rows = append(rows, []string{
				order.CreatedAt.Format(dateTimeFormat),
				strconv.Itoa(order.OrderNumber),
				order.MtTeamNorm,
				order.WorkerName,
				item.Material.Name,
				strconv.Itoa(item.Qty),
				formatAmount(item.UnitPrice.StringFixed(2)),
				formatAmount(item.Cost().StringFixed(2)),
				string(order.Status),
				string(order.Priority),
				supplier,
			})
		}
	}
	return header, rows
}

// materialColumnNames collects every material name in the set, sorted the
// same way the pivots sort.
func materialColumnNames(subs []models.Submission) []string {
	totals := models.MaterialTotals(subs)
	names := make([]string, 0, len(totals))
	for _, row := range totals {
		names = append(names, row.Name)
	}
	return names
}

// formatAmount turns a fixed-point amount into German decimal notation.
func formatAmount(s string) string {
	return strings.Replace(s, ".", ",", 1)
}

func writeCSV(w http.ResponseWriter, filename string, header []string, rows [][]string) {
	var buf bytes.Buffer
	buf.WriteString("\uFEFF") // BOM so Excel detects UTF-8

	cw := csv.NewWriter(&buf)
	cw.Comma = ';'
	cw.Write(header)
	cw.WriteAll(rows)
	cw.Flush()
	if err := cw.Error(); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to generate CSV file")
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

func writeXLSX(w http.ResponseWriter, filename string, header []string, rows [][]string) {
	f := excelize.NewFile()
	sheetName := "Export"

	index, err := f.NewSheet(sheetName)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to generate Excel file")
		return
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	for col, title := range header {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		f.SetCellValue(sheetName, cell, title)
	}
	for i, row := range rows {
		for col, value := range row {
			cell, _ := excelize.CoordinatesToCellName(col+1, i+2)
			f.SetCellValue(sheetName, cell, value)
		}
	}

	buffer, err := f.WriteToBuffer()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to write Excel file")
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	w.Header().Set("Content-Length", strconv.Itoa(buffer.Len()))
	w.WriteHeader(http.StatusOK)
	w.Write(buffer.Bytes())
}
