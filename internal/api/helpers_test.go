package api_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/stockline/stockline/internal/middleware"
	"github.com/stockline/stockline/internal/models"
)

const testTenantID = "T1"

var (
	staffSession = models.Session{UserID: "u1", TenantID: testTenantID, Role: models.RoleStaff, DisplayName: "Ada"}
	adminSession = models.Session{UserID: "root", TenantID: "HQ", Role: models.RoleSuperAdmin}
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	l.SetLevel(logrus.ErrorLevel)

	return l
}

// newTestRouter creates a gin engine with the given session pre-authenticated.
func newTestRouter(sess models.Session) *gin.Engine {
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(middleware.SessionKey, sess)
		c.Set("tenant_id", sess.TenantID)
		c.Set("user_id", sess.UserID)
		c.Next()
	})

	return r
}

// doRequest performs an HTTP request against the test router and returns the recorder.
func doRequest(r http.Handler, method, path, body string, headers ...string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, http.NoBody)
	}

	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	return w
}
