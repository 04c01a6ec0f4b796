package controllers

import (
	"github.com/tuonghuynh11/HealthAppAPI/services"

	"github.com/gin-gonic/gin"
)

// FeedbackController serves reports and contacts.
type FeedbackController struct {
	Reports  *services.ReportService
	Contacts *services.ContactService
}

func NewFeedbackController(reports *services.ReportService, contacts *services.ContactService) *FeedbackController {
	return &FeedbackController{Reports: reports, Contacts: contacts}
}

func (fc *FeedbackController) SearchReports(c *gin.Context) {
	var q services.SearchQuery
	if !bindQuery(c, &q) {
		return
	}
	page, err := fc.Reports.Search(q)
	if err != nil {
		c.Error(err)
		return
	}
	paged(c, "Get reports success", "reports", page)
}

func (fc *FeedbackController) GetReport(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		c.Error(err)
		return
	}
	r, err := fc.Reports.GetByID(id)
	if err != nil {
		c.Error(err)
		return
	}
	ok(c, "Get report success", r)
}

func (fc *FeedbackController) AddReport(c *gin.Context) {
	var req services.ReportRequest
	if !bindJSON(c, &req) {
		return
	}
	r, err := fc.Reports.Add(req, caller(c))
	if err != nil {
		c.Error(err)
		return
	}
	created(c, "Add report success", r)
}

func (fc *FeedbackController) UpdateReportStatus(c *gin.Context) {
	var req services.UpdateReportStatusRequest
	if !bindJSON(c, &req) {
		return
	}
	out, err := fc.Reports.UpdateStatus(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}
	ok(c, "Update report status success", out)
}

func (fc *FeedbackController) DeleteReport(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		c.Error(err)
		return
	}
	if err := fc.Reports.Delete(id); err != nil {
		c.Error(err)
		return
	}
	ok(c, "Delete report success", nil)
}

func (fc *FeedbackController) SearchContacts(c *gin.Context) {
	var q services.SearchQuery
	if !bindQuery(c, &q) {
		return
	}
	page, err := fc.Contacts.Search(q)
	if err != nil {
		c.Error(err)
		return
	}
	paged(c, "Get contacts success", "contacts", page)
}

func (fc *FeedbackController) AddContact(c *gin.Context) {
	var req services.ContactRequest
	if !bindJSON(c, &req) {
		return
	}
	ct, err := fc.Contacts.Add(req, caller(c))
	if err != nil {
		c.Error(err)
		return
	}
	created(c, "Send contact success", ct)
}

func (fc *FeedbackController) UpdateContactStatus(c *gin.Context) {
	var req services.UpdateContactStatusRequest
	if !bindJSON(c, &req) {
		return
	}
	n, err := fc.Contacts.UpdateStatus(req)
	if err != nil {
		c.Error(err)
		return
	}
	ok(c, "Update contact status success", gin.H{"updated": n})
}
