package user

import (
	"time"

	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"

	"github.com/pulseportal/pulse/core"
)

// Roles
const (
	RoleAdmin   = "admin"
	RoleStudent = "student"
)

var AllRoles = []string{RoleAdmin, RoleStudent}

type User struct {
	ID                 string    `json:"id" db:"id"`
	Name               string    `json:"name" db:"name"`
	Email              string    `json:"email" db:"email"`
	Role               string    `json:"role" db:"role"`
	RollNumber         string    `json:"rollNumber,omitempty" db:"roll_number"`
	JoinDate           string    `json:"joinDate" db:"join_date"` // YYYY-MM-DD
	CertificatesEarned int       `json:"certificatesEarned" db:"certificates_earned"`
	EventsAttended     int       `json:"eventsAttended" db:"events_attended"`
	TotalPoints        int       `json:"totalPoints" db:"total_points"`
	Rank               int       `json:"rank" db:"rank"`
	PasswordHash       []byte    `json:"-" db:"password_hash"`
	CreatedAt          time.Time `json:"created_at" db:"created_at"` // UTC
	UpdatedAt          time.Time `json:"updated_at" db:"updated_at"` // UTC
}

func (u *User) SetPassword(pwd string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(pwd), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = hash
	return nil
}

func (u *User) CheckPassword(pwd string) error {
	return bcrypt.CompareHashAndPassword(u.PasswordHash, []byte(pwd))
}

func (u *User) IsAdmin() bool   { return u.Role == RoleAdmin }
func (u *User) IsStudent() bool { return u.Role == RoleStudent }

// NewUser contains information needed to sign a new student up.
type NewUser struct {
	Name       string `json:"name" validate:"required"`
	Email      string `json:"email" validate:"required,email"`
	RollNumber string `json:"rollNumber" validate:"omitempty,alphanum_"`
	Password   string `json:"password" validate:"required,min=6"`
}

func (nu *NewUser) Validate(validate *validator.Validate, svc *Service) error {
	nu.Name = core.CleanString(nu.Name)
	nu.Email = core.CleanString(nu.Email, true /* lower */)
	nu.RollNumber = core.CleanString(nu.RollNumber)

	if err := validate.Struct(nu); err != nil {
		return err
	}
	return svc.CheckEmailUniqueness(nu.Email)
}

// UpdateProfile defines what a user may change on their own profile.
type UpdateProfile struct {
	Name       string `json:"name" validate:"omitempty"`
	RollNumber string `json:"rollNumber" validate:"omitempty,alphanum_"`
}

func (up *UpdateProfile) Validate(validate *validator.Validate) error {
	up.Name = core.CleanString(up.Name)
	up.RollNumber = core.CleanString(up.RollNumber)
	return validate.Struct(up)
}
