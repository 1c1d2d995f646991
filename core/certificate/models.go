package certificate

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/pulseportal/pulse/core"
)

// Certificate statuses
const (
	StatusGenerated  = "generated"
	StatusDownloaded = "downloaded"
)

// Certificate records a participation certificate issued to a student for an
// event. Student name, roll number and event name are denormalized at issue
// time so the rendered artifact never changes after the fact.
type Certificate struct {
	ID          string    `json:"id" db:"id"`
	StudentID   string    `json:"studentId" db:"student_id"`
	EventID     string    `json:"eventId" db:"event_id"`
	StudentName string    `json:"studentName" db:"student_name"`
	RollNumber  string    `json:"rollNumber,omitempty" db:"roll_number"`
	EventName   string    `json:"eventName" db:"event_name"`
	IssueDate   string    `json:"issueDate" db:"issue_date"` // YYYY-MM-DD
	DownloadURL string    `json:"downloadUrl" db:"download_url"`
	Status      string    `json:"status" db:"status"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"` // UTC
}

// Template is certificate-template metadata. Template choice has no effect
// on the rendered certificate; only the usage counter moves.
type Template struct {
	ID          string    `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Description string    `json:"description" db:"description"`
	Category    string    `json:"category" db:"category"`
	Usage       int       `json:"usage" db:"usage_count"`
	IsActive    bool      `json:"isActive" db:"is_active"`
	CreatedBy   string    `json:"createdBy" db:"created_by"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"` // UTC
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"` // UTC
}

// IssueCertificate is the body of an issuance request. Empty StudentName,
// RollNumber and IssueDate default to the caller's profile / today.
type IssueCertificate struct {
	AccessKey   string `json:"accessKey" validate:"required,accesskey"`
	StudentName string `json:"studentName"`
	RollNumber  string `json:"rollNumber"`
	IssueDate   string `json:"issueDate"`
	TemplateID  string `json:"templateId"`
}

func (ic *IssueCertificate) Validate(validate *validator.Validate) error {
	ic.AccessKey = core.CleanString(ic.AccessKey)
	ic.StudentName = core.CleanString(ic.StudentName)
	ic.RollNumber = core.CleanString(ic.RollNumber)
	ic.IssueDate = core.CleanString(ic.IssueDate)
	return validate.Struct(ic)
}

// NewTemplate contains information needed to create a new Template.
type NewTemplate struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
	Category    string `json:"category" validate:"required"`
	IsActive    *bool  `json:"isActive"`
}

func (nt *NewTemplate) Validate(validate *validator.Validate) error {
	nt.Name = core.CleanString(nt.Name)
	nt.Category = core.CleanString(nt.Category, true /* lower */)
	return validate.Struct(nt)
}
