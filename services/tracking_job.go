package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/tuonghuynh11/HealthAppAPI/models"

	"github.com/go-co-op/gocron/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// TrackingJob seeds today's zero-valued calorie trackings for every verified user.
type TrackingJob struct {
	db  *gorm.DB
	loc *time.Location
	now func() time.Time
}

func NewTrackingJob(db *gorm.DB, loc *time.Location) *TrackingJob {
	if loc == nil {
		loc = time.Local
	}
	return &TrackingJob{db: db, loc: loc, now: time.Now}
}

// Run inserts the stubs in one transaction. Existing (user, date, type) rows are left alone.
func (j *TrackingJob) Run(ctx context.Context) (int64, error) {
	date := j.now().In(j.loc).Format(time.DateOnly)
	var inserted int64
	err := j.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var ids []uint
		err := tx.Model(&models.User{}).
			Where("role = ? AND verify = ? AND status <> ?", models.RoleUser, models.Verified, models.UserStatusBan).
			Order("id").Pluck("id", &ids).Error
		if err != nil {
			return err
		}
		if len(ids) == 0 {
			return nil
		}
		rows := make([]models.HealthTracking, 0, len(ids)*2)
		for _, id := range ids {
			rows = append(rows,
				models.HealthTracking{UserID: id, Date: date, Type: models.TrackingBurned},
				models.HealthTracking{UserID: id, Date: date, Type: models.TrackingConsumed},
			)
		}
		res := tx.Clauses(clause.OnConflict{DoNothing: true}).CreateInBatches(&rows, 200)
		inserted = res.RowsAffected
		return res.Error
	})
	if err != nil {
		return 0, fmt.Errorf("seed health trackings: %w", err)
	}
	return inserted, nil
}

// Schedule registers the job on s with a cron expression.
func (j *TrackingJob) Schedule(s gocron.Scheduler, spec string) (gocron.Job, error) {
	return s.NewJob(
		gocron.CronJob(spec, false),
		gocron.NewTask(func() {
			n, err := j.Run(context.Background())
			if err != nil {
				log.Printf("tracking job: %v", err)
				return
			}
			log.Printf("tracking job: %d trackings created", n)
		}),
		gocron.WithName("health-tracking-seed"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
}
