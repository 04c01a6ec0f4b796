package services

import (
	"context"
	"fmt"
	"log"

	"github.com/tuonghuynh11/HealthAppAPI/models"
	"github.com/tuonghuynh11/HealthAppAPI/utils"

	"gorm.io/gorm"
)

const (
	msgReportNotFound     = "report not found"
	msgSomeReportsMissing = "some reports not found"
)

type ReportService struct {
	db       *gorm.DB
	notifier NotificationSender
}

func NewReportService(db *gorm.DB, notifier NotificationSender) *ReportService {
	return &ReportService{db: db, notifier: notifier}
}

type ReportRequest struct {
	Title       string   `json:"title" binding:"required,max=200"`
	Description string   `json:"description" binding:"required"`
	Images      []string `json:"images" binding:"omitempty,dive,url"`
}

type UpdateReportStatusRequest struct {
	ReportIDs []uint `json:"report_ids" binding:"required,min=1"`
	Status    string `json:"status" binding:"required,oneof=Read Unread Responded"`
}

// ReportDetail carries the reporter's public profile.
type ReportDetail struct {
	models.Report
	From *models.UserSummary `json:"from"`
}

var reportList = listSpec{
	searchColumn: "title",
	sortable:     columns("title", "status", "created_at"),
	defaultSort:  "created_at",
	defaultDesc:  true,
}

func (s *ReportService) Search(q SearchQuery) (*Page[models.Report], error) {
	db := applySearch(s.db.Model(&models.Report{}), reportList.searchColumn, q.Search)
	db = applyEnum(db, "status", q.Status)
	return paginate[models.Report](db, reportList, q)
}

func (s *ReportService) GetByID(id uint) (*ReportDetail, error) {
	r, err := first[models.Report](s.db, id, msgReportNotFound, "User")
	if err != nil {
		return nil, err
	}
	out := &ReportDetail{Report: *r}
	if r.User != nil {
		sum := r.User.Summary()
		out.From = &sum
	}
	return out, nil
}

func (s *ReportService) Add(req ReportRequest, c utils.Caller) (*models.Report, error) {
	r := &models.Report{
		UserID:      c.ID,
		Title:       req.Title,
		Description: req.Description,
		Images:      req.Images,
		Status:      models.FeedbackUnread,
	}
	if r.Images == nil {
		r.Images = []string{}
	}
	if err := s.db.Create(r).Error; err != nil {
		return nil, fmt.Errorf("create report: %w", err)
	}
	return r, nil
}

// UpdateStatus changes every listed report or none. Reporters are told when
// their report is answered.
func (s *ReportService) UpdateStatus(ctx context.Context, req UpdateReportStatusRequest) ([]models.Report, error) {
	ids := uniqueIDs(req.ReportIDs)
	var reports []models.Report
	if err := s.db.Where("id IN ?", ids).Find(&reports).Error; err != nil {
		return nil, err
	}
	if len(reports) != len(ids) {
		return nil, utils.NotFound(msgSomeReportsMissing)
	}
	if err := s.db.Model(&models.Report{}).Where("id IN ?", ids).Update("status", req.Status).Error; err != nil {
		return nil, err
	}
	for i := range reports {
		prev := reports[i].Status
		reports[i].Status = req.Status
		if req.Status != models.FeedbackResponded || prev == models.FeedbackResponded || s.notifier == nil {
			continue
		}
		msg := fmt.Sprintf("Your report %q has been responded to.", reports[i].Title)
		if err := s.notifier.Notify(ctx, reports[i].UserID, models.NotifyAdmin, "Report responded", msg); err != nil {
			log.Printf("notify report %d: %v", reports[i].ID, err)
		}
	}
	return reports, nil
}

func (s *ReportService) Delete(id uint) error {
	if _, err := first[models.Report](s.db, id, msgReportNotFound); err != nil {
		return err
	}
	return s.db.Delete(&models.Report{}, id).Error
}
