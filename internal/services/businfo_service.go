package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"bustracker/internal/domain"
	"bustracker/internal/domain/models"
	"bustracker/internal/location"
	"bustracker/internal/repositories"
	"bustracker/internal/utils"
)

// BusInfoService builds the student and driver dashboard views.
type BusInfoService struct {
	Repo      repositories.BusInfoRepository
	Locations *location.Simulator
	RequestID string
}

// StudentBusInfo returns the student's bus, driver and route decorated with a simulated position.
func (s BusInfoService) StudentBusInfo(ctx context.Context, studentID domain.ID) (models.StudentBusInfo, error) {
	info, err := s.Repo.StudentBusInfo(ctx, studentID)
	if errors.Is(err, sql.ErrNoRows) {
		return models.StudentBusInfo{}, domain.NotFoundError{Resource: "bus info", Msg: "Bus information not found for this student."}
	}
	if err != nil {
		utils.LogError(s.RequestID, "businfo", "student", fmt.Sprintf("student_id=%d", studentID), err)
		return models.StudentBusInfo{}, domain.InternalError{Msg: msgDatabaseError, Err: err}
	}

	if s.Locations == nil {
		return models.StudentBusInfo{}, domain.InternalError{Msg: "Location simulator unavailable."}
	}
	info.Location = s.Locations.Next()
	return info, nil
}

func (s BusInfoService) DriverBusInfo(ctx context.Context, userID domain.ID) (models.DriverBusInfo, error) {
	if userID <= 0 {
		return models.DriverBusInfo{}, domain.ValidationError{Msg: msgUserIDRequired}
	}

	info, err := s.Repo.DriverBusInfo(ctx, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return models.DriverBusInfo{}, domain.NotFoundError{Resource: "bus info", Msg: "Bus information not found for this driver."}
	}
	if err != nil {
		utils.LogError(s.RequestID, "businfo", "driver", fmt.Sprintf("user_id=%d", userID), err)
		return models.DriverBusInfo{}, domain.InternalError{Msg: msgDatabaseError, Err: err}
	}
	return info, nil
}
