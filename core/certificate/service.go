package certificate

import (
	"context"
	"fmt"
	"net/mail"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/pulseportal/pulse/core"
	"github.com/pulseportal/pulse/core/event"
	"github.com/pulseportal/pulse/core/user"
)

var (
	// errors; texts are part of the API contract
	ErrInvalidAccessKey = errors.New("Invalid access key")
	ErrAlreadyIssued    = errors.New("Certificate already generated for this event")
	ErrTemplateNotFound = errors.New("template not found")
)

type (
	Repository interface {
		// CreateCertificate inserts the certificate and bumps the student's
		// certificate and point counters in one atomic step; returns
		// ErrAlreadyIssued when a certificate for (student, event) exists.
		CreateCertificate(ctx context.Context, cert Certificate) (Certificate, error)
		QueryAllCertificates(ctx context.Context) ([]Certificate, error)
		QueryStudentCertificates(ctx context.Context, studentID string) ([]Certificate, error)

		CreateTemplate(ctx context.Context, tpl Template) (Template, error)
		QueryAllTemplates(ctx context.Context) ([]Template, error)
		IncrementTemplateUsage(ctx context.Context, id string) error
	}

	// EventResolver resolves an access key to its event.
	EventResolver interface {
		GetByAccessKey(ctx context.Context, key string) (event.Event, error)
	}

	Service struct {
		repo    Repository
		events  EventResolver
		mailSvc core.EmailService
		conf    *core.Config
	}
)

func NewService(repo Repository, events EventResolver, mailSvc core.EmailService, conf *core.Config) *Service {
	return &Service{
		repo:    repo,
		events:  events,
		mailSvc: mailSvc,
		conf:    conf,
	}
}

// Issue resolves the access key and issues a certificate to the caller.
// Demo users get a synthesized certificate that is never persisted.
func (svc *Service) Issue(ctx context.Context, usr user.User, in IssueCertificate) (Certificate, error) {
	evt, err := svc.events.GetByAccessKey(ctx, in.AccessKey)
	if err != nil {
		if errors.Cause(err) == event.ErrNotFound {
			return Certificate{}, core.NewValidationError(ErrInvalidAccessKey)
		}
		return Certificate{}, errors.Wrap(err, "resolving access key")
	}

	now := time.Now().UTC()
	cert := Certificate{
		ID:          uuid.New().String(),
		StudentID:   usr.ID,
		EventID:     evt.ID,
		StudentName: in.StudentName,
		RollNumber:  in.RollNumber,
		EventName:   evt.Title,
		IssueDate:   in.IssueDate,
		DownloadURL: fmt.Sprintf("#certificate-%d", now.UnixNano()/int64(time.Millisecond)),
		Status:      StatusGenerated,
		CreatedAt:   now,
	}
	if cert.StudentName == "" {
		cert.StudentName = usr.Name
	}
	if cert.RollNumber == "" {
		cert.RollNumber = usr.RollNumber
	}
	if cert.IssueDate == "" {
		cert.IssueDate = now.Format("2006-01-02")
	}

	if !user.IsDemoID(usr.ID) {
		if cert, err = svc.repo.CreateCertificate(ctx, cert); err != nil {
			return Certificate{}, err
		}
		if in.TemplateID != "" {
			// usage tracking is best-effort; a missing template does not
			// invalidate an issued certificate
			_ = svc.repo.IncrementTemplateUsage(ctx, in.TemplateID)
		}
	}

	svc.sendIssuedEmail(usr, cert)
	return cert, nil
}

// QueryAll lists every issued certificate, newest first.
func (svc *Service) QueryAll(ctx context.Context) ([]Certificate, error) {
	return svc.repo.QueryAllCertificates(ctx)
}

// QueryForStudent lists the student's own certificates, newest first.
func (svc *Service) QueryForStudent(ctx context.Context, studentID string) ([]Certificate, error) {
	return svc.repo.QueryStudentCertificates(ctx, studentID)
}

// CreateTemplate registers new certificate-template metadata.
func (svc *Service) CreateTemplate(ctx context.Context, creatorID string, nt NewTemplate) (Template, error) {
	now := time.Now().UTC()
	isActive := true
	if nt.IsActive != nil {
		isActive = *nt.IsActive
	}
	tpl := Template{
		ID:          uuid.New().String(),
		Name:        nt.Name,
		Description: nt.Description,
		Category:    nt.Category,
		IsActive:    isActive,
		CreatedBy:   creatorID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	return svc.repo.CreateTemplate(ctx, tpl)
}

// QueryAllTemplates lists templates, newest first.
func (svc *Service) QueryAllTemplates(ctx context.Context) ([]Template, error) {
	return svc.repo.QueryAllTemplates(ctx)
}

func (svc *Service) sendIssuedEmail(usr user.User, cert Certificate) {
	if svc.mailSvc == nil {
		return
	}
	body := fmt.Sprintf(
		"Hi %s,\n\nYour certificate of participation for %q has been generated. "+
			"You can view and download it from your dashboard:\n%s\n\nCertificate ID: %s",
		cert.StudentName, cert.EventName, svc.conf.FrontendBaseURL, cert.ID,
	)
	svc.mailSvc.SendMessages(&core.EmailMessage{
		To:      []mail.Address{{Name: usr.Name, Address: usr.Email}},
		Subject: "Your certificate for " + cert.EventName,
		Body:    body,
	})
}
