package attendance

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"paydesk/models"
)

var (
	ErrNoOffices        = errors.New("organization has no office locations configured")
	ErrOutsideGeofence  = errors.New("location is outside all office geofences")
	ErrAlreadyCheckedIn = errors.New("an active attendance session already exists")
	ErrNoActiveSession  = errors.New("no active attendance session")
)

const earthRadiusMeters = 6371000.0

type Service struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewService(db *gorm.DB, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{db: db, log: log}
}

// DistanceMeters is the haversine great-circle distance between two
// coordinates.
func DistanceMeters(lat1, lng1, lat2, lng2 float64) float64 {
	rad := math.Pi / 180
	dLat := (lat2 - lat1) * rad
	dLng := (lng2 - lng1) * rad
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*rad)*math.Cos(lat2*rad)*math.Sin(dLng/2)*math.Sin(dLng/2)
	return 2 * earthRadiusMeters * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}

// CheckIn opens an attendance session when the coordinates fall inside one
// of the organization's office geofences. An employee can hold at most one
// open session at a time.
func (s *Service) CheckIn(ctx context.Context, orgID, employeeID string, lat, lng float64) (*models.Attendance, error) {
	var open models.Attendance
	err := s.db.WithContext(ctx).
		Where("organization_id = ? AND employee_id = ? AND check_out_time IS NULL", orgID, employeeID).
		First(&open).Error
	if err == nil {
		return nil, ErrAlreadyCheckedIn
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	var offices []models.OfficeLocation
	if err := s.db.WithContext(ctx).Where("organization_id = ?", orgID).Find(&offices).Error; err != nil {
		return nil, err
	}
	if len(offices) == 0 {
		return nil, ErrNoOffices
	}

	office, ok := nearestContaining(offices, lat, lng)
	if !ok {
		return nil, ErrOutsideGeofence
	}

	now := time.Now()
	session := models.Attendance{
		ID:             uuid.New().String(),
		OrganizationID: orgID,
		EmployeeID:     employeeID,
		LocationID:     office.ID,
		CheckInTime:    now,
		CheckInLat:     lat,
		CheckInLng:     lng,
		Status:         "open",
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.db.WithContext(ctx).Create(&session).Error; err != nil {
		return nil, err
	}
	s.log.Info("attendance check-in",
		zap.String("employee_id", employeeID),
		zap.String("location_id", office.ID))
	return &session, nil
}

// CheckOut closes the employee's open session and records worked minutes.
// The check-out position is recorded but not geofence-checked, so leaving
// the site does not strand an open session.
func (s *Service) CheckOut(ctx context.Context, orgID, employeeID string, lat, lng float64) (*models.Attendance, error) {
	var session models.Attendance
	err := s.db.WithContext(ctx).
		Where("organization_id = ? AND employee_id = ? AND check_out_time IS NULL", orgID, employeeID).
		First(&session).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNoActiveSession
	}
	if err != nil {
		return nil, err
	}

	now := time.Now()
	session.CheckOutTime = &now
	session.CheckOutLat = &lat
	session.CheckOutLng = &lng
	session.WorkedMinutes = now.Sub(session.CheckInTime).Minutes()
	session.Status = "closed"
	session.UpdatedAt = now

	if err := s.db.WithContext(ctx).Save(&session).Error; err != nil {
		return nil, err
	}
	return &session, nil
}

func nearestContaining(offices []models.OfficeLocation, lat, lng float64) (models.OfficeLocation, bool) {
	var best models.OfficeLocation
	bestDistance := math.Inf(1)
	found := false
	for _, office := range offices {
		d := DistanceMeters(lat, lng, office.Latitude, office.Longitude)
		if d <= office.RadiusMeters && d < bestDistance {
			best = office
			bestDistance = d
			found = true
		}
	}
	return best, found
}
