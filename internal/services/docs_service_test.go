package services

import (
	"bytes"
	"context"
	"database/sql"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"bustracker/internal/domain"
	"bustracker/internal/domain/models"
)

func TestDocsServiceRouteSheet(t *testing.T) {
	loader := func(ctx context.Context, userID domain.ID) (models.RouteSheet, error) {
		return models.RouteSheet{
			BusID:        3,
			BusNumber:    "TS-09-1234",
			Capacity:     40,
			DriverName:   "Ravi",
			RouteName:    "Route 7",
			RouteDetails: "North loop: Gate 1, Library, Hostel",
			Riders: []models.Rider{
				{StudentID: 1, Name: "Asha", ContactInfo: "555-0101"},
				{StudentID: 2, Name: "Bala"},
			},
		}, nil
	}
	fixed := time.Date(2026, 10, 19, 7, 30, 0, 0, time.UTC)
	svc := DocsService{Loader: loader, Now: func() time.Time { return fixed }}

	pdf, filename, err := svc.GenerateRouteSheet(context.Background(), 20)
	if err != nil {
		t.Fatalf("GenerateRouteSheet returned error: %v", err)
	}
	if !bytes.HasPrefix(pdf, []byte("%PDF")) {
		t.Fatalf("output is not a PDF")
	}
	if filename != "ROUTE_SHEET_TS-09-1234_20261019.pdf" {
		t.Fatalf("unexpected filename %q", filename)
	}
}

func TestDocsServiceRouteSheetErrors(t *testing.T) {
	svc := DocsService{Loader: func(ctx context.Context, userID domain.ID) (models.RouteSheet, error) {
		return models.RouteSheet{}, sql.ErrNoRows
	}}

	if _, _, err := svc.GenerateRouteSheet(context.Background(), 0); !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	_, _, err := svc.GenerateRouteSheet(context.Background(), 9)
	if !domain.IsNotFound(err) || !strings.Contains(err.Error(), "driver") {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestSafeFilenamePartKeepsRunesWhole(t *testing.T) {
	long := strings.Repeat("バス", 30)
	got := safeFilenamePart(long)
	if !utf8.ValidString(got) {
		t.Fatalf("truncated name is not valid UTF-8: %q", got)
	}
	if n := utf8.RuneCountInString(got); n != 40 {
		t.Fatalf("got %d runes, want 40", n)
	}
	if got := safeFilenamePart(" TS 09/12 "); got != "TS_09_12" {
		t.Fatalf("unexpected filename part %q", got)
	}
}
