package tests

import (
	"bytes"
	"context"
	"encoding/json"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"

	echoapi "github.com/pulseportal/pulse/apps/api/echo"
	"github.com/pulseportal/pulse/core"
	"github.com/pulseportal/pulse/core/certificate"
	"github.com/pulseportal/pulse/core/event"
	"github.com/pulseportal/pulse/core/user"
	emailsvc "github.com/pulseportal/pulse/services/email"
	logsvc "github.com/pulseportal/pulse/services/logger"
	inmemdb "github.com/pulseportal/pulse/storage/database/inmem"
)

var (
	conf *core.Config

	usrRepo  user.Repository
	evtRepo  event.Repository
	certRepo certificate.Repository

	usrSvc  *user.Service
	evtSvc  *event.Service
	certSvc *certificate.Service

	errMissingToken = httpErr{Error: "missing or malformed jwt"}
	errForbidden    = httpErr{Error: "permission denied"}
)

// setup wires a fresh server against a seeded in-memory store.
func setup(t *testing.T) echoapi.Server {
	t.Helper()

	conf = core.NewTestConfig()

	db, err := inmemdb.Open()
	if err != nil {
		t.Fatalf("setup() failed: %v", err)
	}
	usrRepo = inmemdb.NewUserRepository(db)
	evtRepo = inmemdb.NewEventRepository(db)
	certRepo = inmemdb.NewCertificateRepository(db)

	mailSvc := emailsvc.NewDummyService()
	usrSvc = user.NewService(usrRepo, mailSvc, conf)
	evtSvc = event.NewService(evtRepo)
	certSvc = certificate.NewService(certRepo, evtSvc, mailSvc, conf)

	validate, translator := newValidator(t)

	return echoapi.NewServer(
		echoapi.ServerDeps{
			Conf:           conf,
			Logger:         logsvc.NewStdLogger(log.New(os.Stdout, "TEST : ", log.LstdFlags)),
			DisableReqLogs: true,
			UserSvc:        usrSvc,
			EventSvc:       evtSvc,
			CertSvc:        certSvc,
			Validate:       validate,
			Translator:     translator,
		},
	)
}

func newRequestContext() context.Context { return context.Background() }

// createUser persists a real (non-demo) user through the service.
func createUser(t *testing.T, name, email, rollNumber, pwd string) user.User {
	t.Helper()
	usr, err := usrSvc.Create(context.Background(), user.NewUser{
		Name:       name,
		Email:      email,
		RollNumber: rollNumber,
		Password:   pwd,
	})
	if err != nil {
		t.Fatalf("createUser() failed: %v", err)
	}
	return usr
}

func createEvent(t *testing.T, title string, maxParticipants int) event.Event {
	t.Helper()
	evt, err := evtSvc.Create(context.Background(), user.DemoAdminID, event.NewEvent{
		Title:           title,
		Date:            "2024-03-01",
		Time:            "10:00 AM",
		Location:        "Lab 2",
		MaxParticipants: maxParticipants,
		Category:        "workshop",
	})
	if err != nil {
		t.Fatalf("createEvent() failed: %v", err)
	}
	return evt
}

type httpErr struct {
	Error string `json:"error"`
}

type httpTest struct {
	name     string
	method   string
	path     string
	body     []byte
	token    string
	wantCode int
	wantData []byte
	extra    interface{}
}

func newAuthRequest(method, path, token string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	var body bytes.Buffer
	if len(data) > 0 {
		body.Write(data[0])
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	return req, rec
}

func newRequest(method, path string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	return newAuthRequest(method, path, "", data...)
}

func getToken(t *testing.T, usr user.User) string {
	t.Helper()
	token, err := echoapi.GenerateToken(conf, echoapi.GetUserClaims(conf, usr))
	if err != nil {
		t.Fatalf("getToken() failed: %v", err)
	}
	return token
}

func marchallObj(t *testing.T, obj interface{}) []byte {
	t.Helper()
	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marchallObj() failed: %v", err)
	}
	return data
}

func marchallList(t *testing.T, objs ...interface{}) []byte {
	t.Helper()
	data, err := json.Marshal(objs)
	if err != nil {
		t.Fatalf("marchallList() failed: %v", err)
	}
	return data
}

func jsonBytesEqual(t *testing.T, b1, b2 []byte) (bool, error) {
	var j1, j2 interface{}
	if err := json.Unmarshal(b1, &j1); err != nil {
		return false, err
	}
	if err := json.Unmarshal(b2, &j2); err != nil {
		return false, err
	}
	if reflect.DeepEqual(j1, j2) {
		return true, nil
	}
	if j1 == nil || j2 == nil {
		return false, nil
	}
	return assert.ElementsMatch(t, j1, j2), nil
}

func checkCodeAndData(t *testing.T, tt httpTest, rec *httptest.ResponseRecorder) {
	t.Helper()
	if rec.Code != tt.wantCode {
		t.Errorf("failed! code = %v; wantCode %v", rec.Code, tt.wantCode)
	}
	ok, err := jsonBytesEqual(t, rec.Body.Bytes(), tt.wantData)
	if err != nil {
		t.Errorf("jsonBytesEqual() failed to compare; err %v", err)
	}
	if !ok {
		t.Errorf("failed! data = %v; wantData %v", rec.Body.String(), string(tt.wantData))
	}
}
