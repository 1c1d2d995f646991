package tests

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pulseportal/pulse/core/certificate"
	"github.com/pulseportal/pulse/core/user"
)

func Test_certificateApi_issue(t *testing.T) {
	server := setup(t)

	realUser := createUser(t, "Real Student", "real@college.edu", "CSE2024042", "s3cret")
	realToken := getToken(t, realUser)

	body := func(accessKey string) []byte {
		return marchallObj(t, map[string]string{"accessKey": accessKey})
	}

	t.Run("issue with defaults from profile", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodPost, "/api/certificates", realToken, body("PULSE2024QUIZ"))
		server.ServeHTTP(rec, req)
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

		var cert certificate.Certificate
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &cert))
		assert.Equal(t, realUser.ID, cert.StudentID)
		assert.Equal(t, "3", cert.EventID)
		assert.Equal(t, "Real Student", cert.StudentName)
		assert.Equal(t, "CSE2024042", cert.RollNumber)
		assert.Equal(t, "Technical Quiz Competition", cert.EventName)
		assert.Equal(t, certificate.StatusGenerated, cert.Status)
		assert.True(t, strings.HasPrefix(cert.DownloadURL, "#certificate-"), cert.DownloadURL)

		usr, err := usrSvc.GetByID(newRequestContext(), realUser.ID)
		require.NoError(t, err)
		assert.Equal(t, 1, usr.CertificatesEarned)
		assert.Equal(t, 100, usr.TotalPoints)
	})

	t.Run("duplicate issuance rejected", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodPost, "/api/certificates", realToken, body("PULSE2024QUIZ"))
		server.ServeHTTP(rec, req)
		checkCodeAndData(t, httpTest{
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, httpErr{Error: "Certificate already generated for this event"}),
		}, rec)

		usr, err := usrSvc.GetByID(newRequestContext(), realUser.ID)
		require.NoError(t, err)
		assert.Equal(t, 1, usr.CertificatesEarned) // unchanged
	})

	t.Run("unknown access key", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodPost, "/api/certificates", realToken, body("PULSE999"))
		server.ServeHTTP(rec, req)
		checkCodeAndData(t, httpTest{
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, httpErr{Error: "Invalid access key"}),
		}, rec)

		certs, err := certSvc.QueryForStudent(newRequestContext(), realUser.ID)
		require.NoError(t, err)
		assert.Len(t, certs, 1) // still only the quiz certificate
	})

	t.Run("malformed access key", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodPost, "/api/certificates", realToken, body("nope"))
		server.ServeHTTP(rec, req)
		checkCodeAndData(t, httpTest{
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"accessKey": "must be a valid event access key"}),
		}, rec)
	})

	t.Run("template usage bumped when named", func(t *testing.T) {
		other := createUser(t, "Other Student", "other@college.edu", "", "s3cret")
		issueBody := marchallObj(t, map[string]string{"accessKey": "PULSE2024WEB", "templateId": "1"})
		req, rec := newAuthRequest(http.MethodPost, "/api/certificates", getToken(t, other), issueBody)
		server.ServeHTTP(rec, req)
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

		tpls, err := certSvc.QueryAllTemplates(newRequestContext())
		require.NoError(t, err)
		for _, tpl := range tpls {
			if tpl.ID == "1" {
				assert.Equal(t, 157, tpl.Usage)
			}
		}
	})

	t.Run("demo user certificate is not persisted", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodPost, "/api/certificates", getToken(t, user.DemoStudent), body("PULSE2024AI"))
		server.ServeHTTP(rec, req)
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

		var cert certificate.Certificate
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &cert))
		assert.Equal(t, "Demo Student", cert.StudentName)

		certs, err := certSvc.QueryForStudent(newRequestContext(), user.DemoStudentID)
		require.NoError(t, err)
		for _, c := range certs {
			assert.NotEqual(t, cert.ID, c.ID)
		}
	})
}

func Test_certificateApi_query(t *testing.T) {
	server := setup(t)

	realUser := createUser(t, "Real Student", "real@college.edu", "CSE2024042", "s3cret")

	_, err := certSvc.Issue(newRequestContext(), realUser, certificate.IssueCertificate{AccessKey: "PULSE2024WEB"})
	require.NoError(t, err)

	t.Run("student sees own only", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, "/api/certificates", getToken(t, realUser))
		server.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		var certs []certificate.Certificate
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &certs))
		require.Len(t, certs, 1)
		assert.Equal(t, realUser.ID, certs[0].StudentID)
	})

	t.Run("admin sees all", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, "/api/certificates", getToken(t, user.DemoAdmin))
		server.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		var certs []certificate.Certificate
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &certs))
		assert.Len(t, certs, 2) // the seeded one + the new one
	})

	t.Run("auth required", func(t *testing.T) {
		req, rec := newRequest(http.MethodGet, "/api/certificates")
		server.ServeHTTP(rec, req)
		checkCodeAndData(t, httpTest{wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken)}, rec)
	})
}

func Test_certificateApi_render(t *testing.T) {
	server := setup(t)

	t.Run("renders the requested fields", func(t *testing.T) {
		v := make(url.Values)
		v.Set("studentName", "Jane")
		v.Set("eventName", "Test")
		v.Set("eventDate", "2024-01-30")
		v.Set("certificateId", "ID1")

		req, rec := newRequest(http.MethodGet, "/api/certificate/generate?"+v.Encode())
		server.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "image/svg+xml", rec.Header().Get("Content-Type"))

		svg := rec.Body.String()
		assert.Contains(t, svg, "Jane")
		assert.Contains(t, svg, "Test")
		assert.Contains(t, svg, "ID1")
		assert.Contains(t, svg, "January 30, 2024")
	})

	t.Run("sample defaults", func(t *testing.T) {
		req, rec := newRequest(http.MethodGet, "/api/certificate/generate")
		server.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)

		svg := rec.Body.String()
		assert.Contains(t, svg, "Sample Student")
		assert.Contains(t, svg, "Sample Event")
		assert.Contains(t, svg, "SAMPLE-ID")
	})
}

func Test_certificateApi_templates(t *testing.T) {
	server := setup(t)

	adminToken := getToken(t, user.DemoAdmin)
	studentToken := getToken(t, user.DemoStudent)

	t.Run("list is public", func(t *testing.T) {
		req, rec := newRequest(http.MethodGet, "/api/certificate-templates")
		server.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		var tpls []certificate.Template
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &tpls))
		require.Len(t, tpls, 2)
		assert.Equal(t, "Workshop Certificate", tpls[0].Name)
		assert.Equal(t, 156, tpls[0].Usage)
	})

	t.Run("create requires admin", func(t *testing.T) {
		body := marchallObj(t, map[string]string{"name": "Symposium Speaker", "category": "symposium"})
		req, rec := newAuthRequest(http.MethodPost, "/api/certificate-templates", studentToken, body)
		server.ServeHTTP(rec, req)
		checkCodeAndData(t, httpTest{wantCode: http.StatusForbidden, wantData: marchallObj(t, errForbidden)}, rec)
	})

	t.Run("create ok", func(t *testing.T) {
		body := marchallObj(t, map[string]string{"name": "Symposium Speaker", "category": "symposium"})
		req, rec := newAuthRequest(http.MethodPost, "/api/certificate-templates", adminToken, body)
		server.ServeHTTP(rec, req)
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

		var tpl certificate.Template
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &tpl))
		assert.Equal(t, "Symposium Speaker", tpl.Name)
		assert.Zero(t, tpl.Usage)
		assert.True(t, tpl.IsActive)
		assert.Equal(t, user.DemoAdminID, tpl.CreatedBy)
	})

	t.Run("missing fields", func(t *testing.T) {
		body := marchallObj(t, map[string]string{"description": "no name"})
		req, rec := newAuthRequest(http.MethodPost, "/api/certificate-templates", adminToken, body)
		server.ServeHTTP(rec, req)
		checkCodeAndData(t, httpTest{
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"name": "this field is required", "category": "this field is required"}),
		}, rec)
	})
}
