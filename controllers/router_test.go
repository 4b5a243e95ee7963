package controllers_test

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"cityfix-be/controllers"
	"cityfix-be/middlewares"
	"cityfix-be/routes"
	authUtils "cityfix-be/utils"
)

const testSecret = "test-secret"

// testEnv wires the real routes and middlewares over in-memory stores.
type testEnv struct {
	users    *fakeUserStore
	issues   *fakeIssueStore
	payments *fakePaymentStore
	gateway  *fakeGateway
	router   *gin.Engine
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	env := &testEnv{
		users:    newFakeUserStore(),
		issues:   newFakeIssueStore(),
		payments: newFakePaymentStore(),
		gateway:  &fakeGateway{},
	}

	logger := zap.NewNop()

	authCtrl := controllers.NewAuthController(testSecret)
	userCtrl := controllers.NewUserController(env.users, logger)
	issueCtrl := controllers.NewIssueController(env.issues, logger)
	paymentCtrl := controllers.NewPaymentController(env.payments, env.users, env.issues, env.gateway, logger)
	statsCtrl := controllers.NewStatsController(env.users, env.issues, env.payments, logger)

	auth := middlewares.AuthMiddleware(testSecret)
	staff := middlewares.RequireStaff(env.users)
	admin := middlewares.RequireAdmin(env.users)
	rateLimit := middlewares.IssueRateLimiter(nil, 0)

	r := gin.New()
	routes.UserRoutes(r, auth, admin, authCtrl, userCtrl)
	routes.IssueRoutes(r, auth, staff, admin, rateLimit, issueCtrl)
	routes.PaymentRoutes(r, auth, admin, paymentCtrl, statsCtrl)

	env.router = r
	return env
}

func tokenFor(t *testing.T, email string) string {
	t.Helper()
	token, err := authUtils.GenerateToken(map[string]interface{}{"email": email}, testSecret)
	if err != nil {
		t.Fatalf("generating token: %v", err)
	}
	return token
}

func (env *testEnv) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshaling body: %v", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decoding response %q: %v", rec.Body.String(), err)
	}
	return body
}

func requireDecodeList(t *testing.T, raw []byte, out interface{}) {
	t.Helper()
	if err := json.Unmarshal(raw, out); err != nil {
		t.Fatalf("decoding list response %q: %v", string(raw), err)
	}
}

func assertStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rec.Code != want {
		t.Fatalf("status = %d, want %d (body %s)", rec.Code, want, rec.Body.String())
	}
}
