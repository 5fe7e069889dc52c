package activity

import (
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"electricity-billing-backend/internal/models"
	"electricity-billing-backend/internal/repository"
)

// Service records and lists the system activity log shown on the admin
// dashboard, plus each officer's personal activity feed.
type Service struct {
	activities        *repository.ActivityRepository
	officerActivities *repository.OfficerActivityRepository
	logger            *zap.Logger
}

func NewService(
	activities *repository.ActivityRepository,
	officerActivities *repository.OfficerActivityRepository,
	logger *zap.Logger,
) *Service {
	return &Service{
		activities:        activities,
		officerActivities: officerActivities,
		logger:            logger,
	}
}

// Record stores one activity entry. Failures are logged, never propagated:
// activity logging must not break the action being logged.
func (s *Service) Record(event, user, status, ipAddress string) {
	entry := &models.SystemActivity{
		ID:        uuid.New(),
		Event:     event,
		User:      user,
		Status:    status,
		IPAddress: normalizeIP(ipAddress),
		Timestamp: time.Now(),
	}
	if err := s.activities.Create(entry); err != nil {
		s.logger.Warn("failed to record system activity", zap.String("event", event), zap.Error(err))
	}
}

// List returns all activities, newest first.
func (s *Service) List() ([]models.SystemActivity, error) {
	return s.activities.ListNewestFirst()
}

// RecordOfficer adds an entry to the officer's own feed, best effort like
// Record.
func (s *Service) RecordOfficer(officerID uuid.UUID, activityText string) {
	entry := &models.OfficerActivity{
		ID:        uuid.New(),
		OfficerID: officerID,
		Activity:  activityText,
	}
	if err := s.officerActivities.Create(entry); err != nil {
		s.logger.Warn("failed to record officer activity", zap.String("activity", activityText), zap.Error(err))
	}
}

// OfficerActivities returns the officer's feed, newest first.
func (s *Service) OfficerActivities(officerID uuid.UUID) ([]models.OfficerActivity, error) {
	return s.officerActivities.ListForOfficer(officerID)
}

// SearchOfficerActivities filters the officer's feed by activity text.
func (s *Service) SearchOfficerActivities(officerID uuid.UUID, term string) ([]models.OfficerActivity, error) {
	return s.officerActivities.SearchForOfficer(officerID, term)
}

func normalizeIP(ip string) string {
	if ip == "::1" {
		return "localhost"
	}
	return ip
}
