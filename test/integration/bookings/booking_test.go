package bookings_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	appterrors "blinktech/internal/appointments/errors"
	"blinktech/internal/appointments/repository"
	mongoMigration "blinktech/internal/migrations/mongo"
	"blinktech/pkg/client"
	"blinktech/pkg/config"
	"blinktech/pkg/logger"
	"blinktech/pkg/model"
	"blinktech/test/integration/testutil"
)

func bookingTestConfig(helper *testutil.MongoHelper) *config.Config {
	return &config.Config{
		MongoDatabaseName: helper.DBName,
		Client:            &client.Client{Mongo: helper.Client},
		ReadTimeout:       5 * time.Second,
		WriteTimeout:      5 * time.Second,
		Log:               logger.New(logger.Config{Level: "error", Format: logger.JSON, Service: "test"}),
	}
}

func TestCreateBooking_ConcurrentDuplicates(t *testing.T) {
	helper := testutil.NewMongoHelper(t, "", "")
	defer helper.Close(t)
	helper.CleanDatabase(t)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// The unique (appointment_date, service, email) index comes from the
	// migration, so run it first.
	if err := mongoMigration.RunMigration(ctx, helper.Client, helper.DBName); err != nil {
		t.Fatalf("RunMigration failed: %v", err)
	}

	repo := repository.NewMongoBookingRepository(bookingTestConfig(helper))

	const racers = 8
	results := make([]error, racers)
	var wg sync.WaitGroup
	wg.Add(racers)
	for i := 0; i < racers; i++ {
		go func(i int) {
			defer wg.Done()
			results[i] = repo.Create(ctx, &model.Booking{
				AppointmentDate: "2026-09-15",
				Service:         "haircut",
				Email:           "client@example.com",
				Slot:            "10:00",
			})
		}(i)
	}
	wg.Wait()

	var succeeded int
	for i, err := range results {
		switch {
		case err == nil:
			succeeded++
		case errors.Is(err, appterrors.ErrDuplicateBooking):
			// the losing racers
		default:
			t.Errorf("racer %d returned unexpected error: %v", i, err)
		}
	}
	if succeeded != 1 {
		t.Errorf("%d inserts succeeded, want exactly 1", succeeded)
	}

	if count := helper.CountDocuments(t, "Bookings"); count != 1 {
		t.Errorf("Bookings holds %d documents, want 1", count)
	}
}

func TestCreateBooking_SequentialDuplicate(t *testing.T) {
	helper := testutil.NewMongoHelper(t, "", "")
	defer helper.Close(t)
	helper.CleanDatabase(t)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := mongoMigration.RunMigration(ctx, helper.Client, helper.DBName); err != nil {
		t.Fatalf("RunMigration failed: %v", err)
	}

	repo := repository.NewMongoBookingRepository(bookingTestConfig(helper))

	booking := func() *model.Booking {
		return &model.Booking{
			AppointmentDate: "2026-09-16",
			Service:         "massage",
			Email:           "client@example.com",
			Slot:            "14:00",
		}
	}

	if err := repo.Create(ctx, booking()); err != nil {
		t.Fatalf("first Create failed: %v", err)
	}

	err := repo.Create(ctx, booking())
	if !errors.Is(err, appterrors.ErrDuplicateBooking) {
		t.Fatalf("second Create returned %v, want ErrDuplicateBooking", err)
	}

	if count := helper.CountDocuments(t, "Bookings"); count != 1 {
		t.Errorf("Bookings holds %d documents, want 1", count)
	}
}
