package attendance

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"paydesk/models"
)

// Office at the center of Bangalore, 100m radius.
const (
	officeLat = 12.9716
	officeLng = 77.5946
)

func setupService(t *testing.T) (*gorm.DB, *Service) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "attendance_test.db")), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.OfficeLocation{}, &models.Attendance{}))
	return db, NewService(db, nil)
}

func createOffice(t *testing.T, db *gorm.DB, orgID string, radius float64) *models.OfficeLocation {
	t.Helper()
	office := &models.OfficeLocation{
		ID:             uuid.New().String(),
		OrganizationID: orgID,
		Name:           "HQ",
		Latitude:       officeLat,
		Longitude:      officeLng,
		RadiusMeters:   radius,
	}
	require.NoError(t, db.Create(office).Error)
	return office
}

func TestDistanceMeters(t *testing.T) {
	t.Run("Zero Distance", func(t *testing.T) {
		assert.Equal(t, 0.0, DistanceMeters(officeLat, officeLng, officeLat, officeLng))
	})

	t.Run("One Degree Of Latitude", func(t *testing.T) {
		// one degree of latitude is ~111.2 km
		d := DistanceMeters(0, 0, 1, 0)
		assert.InDelta(t, 111195, d, 100)
	})

	t.Run("Symmetric", func(t *testing.T) {
		a := DistanceMeters(officeLat, officeLng, 12.98, 77.60)
		b := DistanceMeters(12.98, 77.60, officeLat, officeLng)
		assert.InDelta(t, a, b, 1e-9)
	})
}

func TestCheckIn(t *testing.T) {
	ctx := context.Background()

	t.Run("Inside Geofence", func(t *testing.T) {
		db, svc := setupService(t)
		office := createOffice(t, db, "org-1", 100)

		session, err := svc.CheckIn(ctx, "org-1", "emp-1", officeLat, officeLng)
		require.NoError(t, err)
		assert.Equal(t, office.ID, session.LocationID)
		assert.Equal(t, "open", session.Status)
		assert.Nil(t, session.CheckOutTime)
	})

	t.Run("Outside Geofence", func(t *testing.T) {
		db, svc := setupService(t)
		createOffice(t, db, "org-1", 100)

		// ~1.1km north of the office
		_, err := svc.CheckIn(ctx, "org-1", "emp-1", officeLat+0.01, officeLng)
		assert.ErrorIs(t, err, ErrOutsideGeofence)
	})

	t.Run("No Offices Configured", func(t *testing.T) {
		_, svc := setupService(t)
		_, err := svc.CheckIn(ctx, "org-1", "emp-1", officeLat, officeLng)
		assert.ErrorIs(t, err, ErrNoOffices)
	})

	t.Run("Second Check-In Rejected While Session Open", func(t *testing.T) {
		db, svc := setupService(t)
		createOffice(t, db, "org-1", 100)

		_, err := svc.CheckIn(ctx, "org-1", "emp-1", officeLat, officeLng)
		require.NoError(t, err)

		_, err = svc.CheckIn(ctx, "org-1", "emp-1", officeLat, officeLng)
		assert.ErrorIs(t, err, ErrAlreadyCheckedIn)
	})

	t.Run("Check-In Allowed Again After Check-Out", func(t *testing.T) {
		db, svc := setupService(t)
		createOffice(t, db, "org-1", 100)

		_, err := svc.CheckIn(ctx, "org-1", "emp-1", officeLat, officeLng)
		require.NoError(t, err)
		_, err = svc.CheckOut(ctx, "org-1", "emp-1", officeLat, officeLng)
		require.NoError(t, err)

		_, err = svc.CheckIn(ctx, "org-1", "emp-1", officeLat, officeLng)
		assert.NoError(t, err)
	})
}

func TestCheckOut(t *testing.T) {
	ctx := context.Background()

	t.Run("Closes Open Session", func(t *testing.T) {
		db, svc := setupService(t)
		createOffice(t, db, "org-1", 100)

		opened, err := svc.CheckIn(ctx, "org-1", "emp-1", officeLat, officeLng)
		require.NoError(t, err)

		closed, err := svc.CheckOut(ctx, "org-1", "emp-1", officeLat, officeLng)
		require.NoError(t, err)
		assert.Equal(t, opened.ID, closed.ID)
		assert.Equal(t, "closed", closed.Status)
		require.NotNil(t, closed.CheckOutTime)
		assert.False(t, closed.CheckOutTime.Before(opened.CheckInTime))
		assert.GreaterOrEqual(t, closed.WorkedMinutes, 0.0)
	})

	t.Run("No Open Session", func(t *testing.T) {
		db, svc := setupService(t)
		createOffice(t, db, "org-1", 100)

		_, err := svc.CheckOut(ctx, "org-1", "emp-1", officeLat, officeLng)
		assert.ErrorIs(t, err, ErrNoActiveSession)
	})

	t.Run("Sessions Are Scoped Per Employee", func(t *testing.T) {
		db, svc := setupService(t)
		createOffice(t, db, "org-1", 100)

		_, err := svc.CheckIn(ctx, "org-1", "emp-1", officeLat, officeLng)
		require.NoError(t, err)

		_, err = svc.CheckOut(ctx, "org-1", "emp-2", officeLat, officeLng)
		assert.ErrorIs(t, err, ErrNoActiveSession)
	})
}

func TestNearestContaining(t *testing.T) {
	near := models.OfficeLocation{ID: "near", Latitude: officeLat, Longitude: officeLng, RadiusMeters: 500}
	far := models.OfficeLocation{ID: "far", Latitude: officeLat + 0.003, Longitude: officeLng, RadiusMeters: 500}

	office, ok := nearestContaining([]models.OfficeLocation{far, near}, officeLat, officeLng)
	require.True(t, ok)
	assert.Equal(t, "near", office.ID)
}
