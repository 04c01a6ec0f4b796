package services

import (
	"fmt"

	"github.com/tuonghuynh11/HealthAppAPI/models"
	"github.com/tuonghuynh11/HealthAppAPI/utils"

	"gorm.io/gorm"
)

const msgSomeContactsMissing = "some contacts not found"

type ContactService struct{ db *gorm.DB }

func NewContactService(db *gorm.DB) *ContactService { return &ContactService{db: db} }

type ContactRequest struct {
	Subject string `json:"subject" binding:"required,max=200"`
	Message string `json:"message" binding:"required"`
}

type UpdateContactStatusRequest struct {
	ContactIDs []uint `json:"contact_ids" binding:"required,min=1"`
	Status     string `json:"status" binding:"required,oneof=Read Unread Responded"`
}

var contactList = listSpec{
	searchColumn: "subject",
	sortable:     columns("subject", "status", "created_at"),
	defaultSort:  "created_at",
	defaultDesc:  true,
}

func (s *ContactService) Search(q SearchQuery) (*Page[models.Contact], error) {
	db := applySearch(s.db.Model(&models.Contact{}), contactList.searchColumn, q.Search)
	db = applyEnum(db, "status", q.Status)
	return paginate[models.Contact](db, contactList, q)
}

func (s *ContactService) Add(req ContactRequest, c utils.Caller) (*models.Contact, error) {
	ct := &models.Contact{UserID: c.ID, Subject: req.Subject, Message: req.Message, Status: models.FeedbackUnread}
	if err := s.db.Create(ct).Error; err != nil {
		return nil, fmt.Errorf("create contact: %w", err)
	}
	return ct, nil
}

func (s *ContactService) UpdateStatus(req UpdateContactStatusRequest) (int64, error) {
	ids := uniqueIDs(req.ContactIDs)
	n, err := countWhere(s.db, &models.Contact{}, "id IN ?", ids)
	if err != nil {
		return 0, err
	}
	if n != int64(len(ids)) {
		return 0, utils.NotFound(msgSomeContactsMissing)
	}
	res := s.db.Model(&models.Contact{}).Where("id IN ?", ids).Update("status", req.Status)
	return res.RowsAffected, res.Error
}
