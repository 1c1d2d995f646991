package pgdb

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/pulseportal/pulse/core/certificate"
)

type certificateRepository struct {
	db *sqlx.DB
}

var _ certificate.Repository = (*certificateRepository)(nil)

func NewCertificateRepository(db *sqlx.DB) *certificateRepository {
	return &certificateRepository{db: db}
}

// CreateCertificate inserts the certificate and bumps the student's counters
// in the same transaction. The unique constraint on (student_id, event_id)
// rejects duplicates regardless of interleaving.
func (repo *certificateRepository) CreateCertificate(ctx context.Context, cert certificate.Certificate) (certificate.Certificate, error) {
	tx, err := repo.db.BeginTxx(ctx, nil)
	if err != nil {
		return certificate.Certificate{}, errors.Wrap(err, "beginning tx")
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.NamedExecContext(ctx, `
INSERT INTO certificates (id, student_id, event_id, student_name, roll_number, event_name,
                          issue_date, download_url, status, created_at)
VALUES (:id, :student_id, :event_id, :student_name, :roll_number, :event_name,
        :issue_date, :download_url, :status, :created_at)`, cert)
	if err != nil {
		if isUniqueViolation(err) {
			return certificate.Certificate{}, certificate.ErrAlreadyIssued
		}
		return certificate.Certificate{}, errors.Wrap(err, "inserting certificate")
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE users SET certificates_earned = certificates_earned + 1,
		        total_points = total_points + 100, updated_at = $2
		 WHERE id = $1`,
		cert.StudentID, time.Now().UTC())
	if err != nil {
		return certificate.Certificate{}, errors.Wrap(err, "updating user stats")
	}

	if err = tx.Commit(); err != nil {
		return certificate.Certificate{}, errors.Wrap(err, "committing certificate")
	}
	return cert, nil
}

func (repo *certificateRepository) QueryAllCertificates(ctx context.Context) ([]certificate.Certificate, error) {
	const query = `SELECT * FROM certificates ORDER BY created_at DESC`

	var certs []certificate.Certificate
	if err := repo.db.SelectContext(ctx, &certs, query); err != nil {
		return nil, errors.Wrap(err, "querying certificates")
	}
	return certs, nil
}

func (repo *certificateRepository) QueryStudentCertificates(ctx context.Context, studentID string) ([]certificate.Certificate, error) {
	const query = `SELECT * FROM certificates WHERE student_id = $1 ORDER BY created_at DESC`

	var certs []certificate.Certificate
	if err := repo.db.SelectContext(ctx, &certs, query, studentID); err != nil {
		return nil, errors.Wrap(err, "querying student certificates")
	}
	return certs, nil
}

func (repo *certificateRepository) CreateTemplate(ctx context.Context, tpl certificate.Template) (certificate.Template, error) {
	const query = `
INSERT INTO certificate_templates (id, name, description, category, usage_count, is_active,
                                   created_by, created_at, updated_at)
VALUES (:id, :name, :description, :category, :usage_count, :is_active,
        :created_by, :created_at, :updated_at)`

	if _, err := repo.db.NamedExecContext(ctx, query, tpl); err != nil {
		return certificate.Template{}, errors.Wrap(err, "inserting template")
	}
	return tpl, nil
}

func (repo *certificateRepository) QueryAllTemplates(ctx context.Context) ([]certificate.Template, error) {
	const query = `SELECT * FROM certificate_templates ORDER BY created_at DESC`

	var tpls []certificate.Template
	if err := repo.db.SelectContext(ctx, &tpls, query); err != nil {
		return nil, errors.Wrap(err, "querying templates")
	}
	return tpls, nil
}

func (repo *certificateRepository) IncrementTemplateUsage(ctx context.Context, id string) error {
	const query = `
UPDATE certificate_templates SET usage_count = usage_count + 1, updated_at = $2 WHERE id = $1`

	res, err := repo.db.ExecContext(ctx, query, id, time.Now().UTC())
	if err != nil {
		return errors.Wrap(err, "incrementing template usage")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return certificate.ErrTemplateNotFound
	}
	return nil
}
