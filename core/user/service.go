package user

import (
	"context"
	"fmt"
	"net/mail"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/pulseportal/pulse/core"
)

var (
	// errors
	ErrNotFound    = errors.New("user not found")
	ErrEmailExists = errors.New("User already exists")
)

type (
	Repository interface {
		CreateUser(ctx context.Context, usr User) (User, error)
		QueryAllUsers(ctx context.Context) ([]User, error)
		GetUserByID(ctx context.Context, id string) (User, error)
		GetUserByEmail(ctx context.Context, email string) (User, error)
		UpdateUserProfile(ctx context.Context, id, name, rollNumber string) (User, error)
		SetUserPassword(ctx context.Context, id string, hash []byte) error
	}

	Service struct {
		repo    Repository
		mailSvc core.EmailService
		conf    *core.Config
	}
)

func NewService(repo Repository, mailSvc core.EmailService, conf *core.Config) *Service {
	return &Service{
		repo:    repo,
		mailSvc: mailSvc,
		conf:    conf,
	}
}

// CheckEmailUniqueness returns a ValidationError when the email is taken.
func (svc *Service) CheckEmailUniqueness(email string) error {
	_, err := svc.repo.GetUserByEmail(context.Background(), email)
	if err == nil {
		return core.NewValidationError(ErrEmailExists, core.FieldError{Field: "email", Error: ErrEmailExists.Error()})
	}
	if errors.Cause(err) == ErrNotFound {
		return nil
	}
	return errors.Wrap(err, "checking email uniqueness")
}

// Create signs a new student account up and sends the welcome email.
func (svc *Service) Create(ctx context.Context, nu NewUser) (User, error) {
	now := time.Now().UTC()
	usr := User{
		ID:         uuid.New().String(),
		Name:       nu.Name,
		Email:      nu.Email,
		Role:       RoleStudent,
		RollNumber: nu.RollNumber,
		JoinDate:   now.Format("2006-01-02"),
		Rank:       1,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := usr.SetPassword(nu.Password); err != nil {
		return User{}, errors.Wrap(err, "hashing password")
	}

	usr, err := svc.repo.CreateUser(ctx, usr)
	if err != nil {
		return User{}, err
	}
	svc.sendWelcomeEmail(usr)
	return usr, nil
}

func (svc *Service) QueryAll(ctx context.Context) ([]User, error) {
	return svc.repo.QueryAllUsers(ctx)
}

func (svc *Service) GetByID(ctx context.Context, id string) (User, error) {
	if usr, ok := DemoProfile(id); ok {
		return usr, nil
	}
	return svc.repo.GetUserByID(ctx, id)
}

func (svc *Service) GetByEmail(ctx context.Context, email string) (User, error) {
	return svc.repo.GetUserByEmail(ctx, core.CleanString(email, true /* lower */))
}

// UpdateProfile changes the caller's own name and/or roll number and returns
// the fresh profile. Empty fields are left untouched.
func (svc *Service) UpdateProfile(ctx context.Context, id string, up UpdateProfile) (User, error) {
	if usr, ok := DemoProfile(id); ok {
		// demo users are never persisted; echo the merged profile back
		if up.Name != "" {
			usr.Name = up.Name
		}
		if up.RollNumber != "" {
			usr.RollNumber = up.RollNumber
		}
		return usr, nil
	}
	return svc.repo.UpdateUserProfile(ctx, id, up.Name, up.RollNumber)
}

// SetPassword resets a user's password; used by the admin CLI.
func (svc *Service) SetPassword(ctx context.Context, email, pwd string) error {
	usr, err := svc.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	if err := usr.SetPassword(pwd); err != nil {
		return errors.Wrap(err, "hashing password")
	}
	return svc.repo.SetUserPassword(ctx, usr.ID, usr.PasswordHash)
}

func (svc *Service) sendWelcomeEmail(usr User) {
	if svc.mailSvc == nil {
		return
	}
	body := fmt.Sprintf(
		"Hi %s,\n\nYour %s account is ready. Browse upcoming events and register "+
			"from your student dashboard:\n%s\n\nSee you there!",
		usr.Name, svc.conf.AppName, svc.conf.FrontendBaseURL,
	)
	svc.mailSvc.SendMessages(&core.EmailMessage{
		To:      []mail.Address{{Name: usr.Name, Address: usr.Email}},
		Subject: "Welcome to " + svc.conf.AppName,
		Body:    body,
	})
}
