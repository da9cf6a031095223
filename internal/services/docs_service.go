package services

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"bustracker/internal/domain"
	"bustracker/internal/domain/models"
	"bustracker/internal/repositories"
	"bustracker/internal/utils"

	"github.com/phpdave11/gofpdf"
)

// DocsService renders the printable route sheet a driver carries on the bus.
type DocsService struct {
	Repo      repositories.BusInfoRepository
	RequestID string
	Loader    func(ctx context.Context, userID domain.ID) (models.RouteSheet, error)
	Now       func() time.Time
}

// GenerateRouteSheet returns the PDF bytes and a download filename.
func (s DocsService) GenerateRouteSheet(ctx context.Context, userID domain.ID) ([]byte, string, error) {
	if userID <= 0 {
		return nil, "", domain.ValidationError{Msg: msgUserIDRequired}
	}

	sheet, err := s.load(ctx, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, "", domain.NotFoundError{Resource: "bus info", Msg: "Bus information not found for this driver."}
	}
	if err != nil {
		utils.LogError(s.RequestID, "docs", "route_sheet", fmt.Sprintf("user_id=%d", userID), err)
		return nil, "", domain.InternalError{Msg: msgDatabaseError, Err: err}
	}

	now := time.Now()
	if s.Now != nil {
		now = s.Now()
	}
	utils.LogEvent(s.RequestID, "docs", "route_sheet", fmt.Sprintf("user_id=%d bus_id=%d riders=%d", userID, sheet.BusID, len(sheet.Riders)))
	return buildRouteSheetPDF(sheet, now)
}

func (s DocsService) load(ctx context.Context, userID domain.ID) (models.RouteSheet, error) {
	if s.Loader != nil {
		return s.Loader(ctx, userID)
	}
	return s.Repo.RouteSheet(ctx, userID)
}

func buildRouteSheetPDF(d models.RouteSheet, now time.Time) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Route Sheet", false)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "ROUTE SHEET")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	lines := []string{
		fmt.Sprintf("Bus       : %s", safe(d.BusNumber, "-")),
		fmt.Sprintf("Capacity  : %d", d.Capacity),
		fmt.Sprintf("Driver    : %s", safe(d.DriverName, "-")),
		fmt.Sprintf("Route     : %s", safe(d.RouteName, "-")),
		fmt.Sprintf("Printed   : %s", now.Format("2006-01-02 15:04")),
	}
	for _, s := range lines {
		pdf.Cell(0, 7, s)
		pdf.Ln(7)
	}

	if strings.TrimSpace(d.RouteDetails) != "" {
		pdf.Ln(3)
		pdf.SetFont("Helvetica", "B", 12)
		pdf.Cell(0, 7, "Stops / details:")
		pdf.Ln(7)
		pdf.SetFont("Helvetica", "", 11)
		pdf.MultiCell(0, 6, d.RouteDetails, "", "", false)
	}

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, fmt.Sprintf("Riders (%d)", len(d.Riders)))
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(15, 7, "#", "1", 0, "C", false, 0, "")
	pdf.CellFormat(95, 7, "Name", "1", 0, "L", false, 0, "")
	pdf.CellFormat(70, 7, "Contact", "1", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 11)
	if len(d.Riders) == 0 {
		pdf.CellFormat(180, 7, "No students assigned to this bus.", "1", 1, "C", false, 0, "")
	}
	for i, r := range d.Riders {
		pdf.CellFormat(15, 7, fmt.Sprintf("%d", i+1), "1", 0, "C", false, 0, "")
		pdf.CellFormat(95, 7, safe(r.Name, "-"), "1", 0, "L", false, 0, "")
		pdf.CellFormat(70, 7, safe(r.ContactInfo, "-"), "1", 1, "L", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("ROUTE_SHEET_%s_%s.pdf", safeFilenamePart(d.BusNumber), now.Format("20060102"))
	return buf.Bytes(), filename, nil
}

func safe(v, fallback string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return fallback
	}
	return v
}

func safeFilenamePart(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "NA"
	}
	replacer := strings.NewReplacer(" ", "_", "/", "_", "\\", "_", ":", "_", "*", "_", "?", "_", "\"", "_", "<", "_", ">", "_", "|", "_")
	s = replacer.Replace(s)
	if r := []rune(s); len(r) > 40 {
		s = string(r[:40])
	}
	return s
}
