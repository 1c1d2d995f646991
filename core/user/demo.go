package user

// The two demo accounts are resolved before any store lookup, exactly as the
// portal always has. Their profiles are literal fixtures; nothing about them
// is persisted.

const (
	DemoAdminID   = "1"
	DemoStudentID = "2"

	DemoAdminEmail   = "admin@pulse.com"
	DemoStudentEmail = "student@pulse.com"

	demoAdminPassword   = "admin123"
	demoStudentPassword = "student123"
)

var (
	DemoAdmin = User{
		ID:       DemoAdminID,
		Name:     "Admin User",
		Email:    DemoAdminEmail,
		Role:     RoleAdmin,
		JoinDate: "2024-01-01",
		Rank:     1,
	}

	DemoStudent = User{
		ID:                 DemoStudentID,
		Name:               "Demo Student",
		Email:              DemoStudentEmail,
		Role:               RoleStudent,
		RollNumber:         "ECE2024001",
		JoinDate:           "2024-01-15",
		CertificatesEarned: 5,
		EventsAttended:     8,
		TotalPoints:        450,
		Rank:               12,
	}
)

// DemoAccount matches credentials against the hardcoded demo logins.
func DemoAccount(email, password string) (User, bool) {
	switch {
	case email == DemoAdminEmail && password == demoAdminPassword:
		return DemoAdmin, true
	case email == DemoStudentEmail && password == demoStudentPassword:
		return DemoStudent, true
	}
	return User{}, false
}

// DemoProfile returns the demo account fixture for one of the demo user IDs.
func DemoProfile(id string) (User, bool) {
	switch id {
	case DemoAdminID:
		return DemoAdmin, true
	case DemoStudentID:
		return DemoStudent, true
	}
	return User{}, false
}

// IsDemoID reports whether the ID belongs to one of the demo accounts.
// Demo users never touch the backing store.
func IsDemoID(id string) bool {
	return id == DemoAdminID || id == DemoStudentID
}
