package inmemdb

import (
	"context"

	"github.com/pulseportal/pulse/core/certificate"
)

type certificateRepository struct {
	db *DB
}

var _ certificate.Repository = (*certificateRepository)(nil)

func NewCertificateRepository(db *DB) certificate.Repository {
	return &certificateRepository{db: db}
}

// CreateCertificate inserts the certificate and bumps the student's counters
// under the single store lock.
func (repo *certificateRepository) CreateCertificate(ctx context.Context, cert certificate.Certificate) (certificate.Certificate, error) {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	for _, existing := range repo.db.certificates {
		if existing.StudentID == cert.StudentID && existing.EventID == cert.EventID {
			return certificate.Certificate{}, certificate.ErrAlreadyIssued
		}
	}

	if usr, ok := repo.db.users[cert.StudentID]; ok {
		usr.CertificatesEarned++
		usr.TotalPoints += 100
		usr.UpdatedAt = nowUTC()
	}

	repo.db.certificates[cert.ID] = &cert
	return cert, nil
}

func (repo *certificateRepository) QueryAllCertificates(ctx context.Context) ([]certificate.Certificate, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	certs := make([]certificate.Certificate, 0, len(repo.db.certificates))
	for _, cert := range repo.db.certificates {
		certs = append(certs, *cert)
	}
	sortCertificatesNewestFirst(certs)
	return certs, nil
}

func (repo *certificateRepository) QueryStudentCertificates(ctx context.Context, studentID string) ([]certificate.Certificate, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	var certs []certificate.Certificate
	for _, cert := range repo.db.certificates {
		if cert.StudentID == studentID {
			certs = append(certs, *cert)
		}
	}
	sortCertificatesNewestFirst(certs)
	return certs, nil
}

func (repo *certificateRepository) CreateTemplate(ctx context.Context, tpl certificate.Template) (certificate.Template, error) {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	repo.db.templates[tpl.ID] = &tpl
	return tpl, nil
}

func (repo *certificateRepository) QueryAllTemplates(ctx context.Context) ([]certificate.Template, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	tpls := make([]certificate.Template, 0, len(repo.db.templates))
	for _, tpl := range repo.db.templates {
		tpls = append(tpls, *tpl)
	}
	sortTemplatesNewestFirst(tpls)
	return tpls, nil
}

func (repo *certificateRepository) IncrementTemplateUsage(ctx context.Context, id string) error {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	tpl, ok := repo.db.templates[id]
	if !ok {
		return certificate.ErrTemplateNotFound
	}
	tpl.Usage++
	tpl.UpdatedAt = nowUTC()
	return nil
}
