package router

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"

	"github.com/oksasatya/vendor-vault/internal/application"
	"github.com/oksasatya/vendor-vault/internal/domain/entity"
	"github.com/oksasatya/vendor-vault/internal/infrastructure/memory"
	"github.com/oksasatya/vendor-vault/internal/infrastructure/metrics"
	"github.com/oksasatya/vendor-vault/internal/interface/middleware"
	"github.com/oksasatya/vendor-vault/pkg/helpers"
	"github.com/oksasatya/vendor-vault/pkg/validation"
)

type envelope struct {
	Status  int             `json:"status"`
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   map[string]any  `json:"error"`
}

type RouterSuite struct {
	suite.Suite
	engine *gin.Engine
	admin  string
}

func TestRouterSuite(t *testing.T) {
	suite.Run(t, new(RouterSuite))
}

func (s *RouterSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	validation.Init()
	logger := helpers.NewDiscardLogger()

	types, err := entity.NewRecordTypes("test01", "test02", "test03")
	s.Require().NoError(err)

	reg := prometheus.NewRegistry()
	accounts := application.NewAccountService(memory.NewAccountStore(), nil, nil, logger, bcrypt.MinCost)
	records := application.NewRecordService(memory.NewRecordStore(), types, logger)
	jwt := helpers.NewJWTManager("access", "refresh", time.Minute, time.Hour)

	d := Deps{
		Controller: application.NewAccessController(accounts, records, metrics.New(reg)),
		Auth:       application.NewAuthService(accounts, jwt, memory.NewSessionStore(), time.Hour, logger),
		Cookies:    helpers.NewCookie("", false),
		Logger:     logger,
		Metrics:    promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
	}

	_, err = accounts.CreateAccount(context.Background(), application.NewAccountInput{
		Email:    "admin@x.com",
		Password: "admin123!",
		Roles:    []string{"admin"},
	})
	s.Require().NoError(err)

	s.engine = gin.New()
	s.engine.Use(middleware.RequestIDMiddleware())
	r := NewRegistry(s.engine)
	InitModules(r, d)
	r.RegisterAll()

	s.admin = s.login("admin@x.com", "admin123!")
}

func (s *RouterSuite) do(method, path, token string, body any) (*httptest.ResponseRecorder, envelope) {
	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		s.Require().NoError(json.NewEncoder(&buf).Encode(b))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)

	var env envelope
	if strings.HasPrefix(w.Header().Get("Content-Type"), "application/json") {
		s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &env))
	}
	return w, env
}

func (s *RouterSuite) login(email, password string) string {
	w, env := s.do(http.MethodPost, "/api/login", "", map[string]string{"email": email, "password": password})
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	var data struct {
		AccessToken string `json:"access_token"`
	}
	s.Require().NoError(json.Unmarshal(env.Data, &data))
	return data.AccessToken
}

func (s *RouterSuite) createVendor(email string) string {
	w, env := s.do(http.MethodPost, "/api/admin/users", s.admin, map[string]any{
		"email": email, "password": "vendor123!", "roles": []string{"vendor"}, "name": "Vera",
	})
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	var a struct {
		ID string `json:"id"`
	}
	s.Require().NoError(json.Unmarshal(env.Data, &a))
	return a.ID
}

func (s *RouterSuite) TestVendorLifecycle() {
	s.createVendor("v@x.com")
	vendor := s.login("v@x.com", "vendor123!")

	w, env := s.do(http.MethodPost, "/api/vendor/upload", vendor, map[string]any{"type": "test01", "data": map[string]string{"passport": "A123"}})
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	var rec struct {
		ID   string            `json:"id"`
		Data map[string]string `json:"data"`
	}
	s.Require().NoError(json.Unmarshal(env.Data, &rec))
	s.Equal("A123", rec.Data["passport"])

	w, _ = s.do(http.MethodPost, "/api/vendor/upload", vendor, map[string]any{"type": "test01", "data": map[string]string{"k": "v"}})
	s.Equal(http.StatusConflict, w.Code)

	w, env = s.do(http.MethodGet, "/api/vendor", vendor, nil)
	s.Require().Equal(http.StatusOK, w.Code)
	var profile struct {
		Records []map[string]any `json:"records"`
	}
	s.Require().NoError(json.Unmarshal(env.Data, &profile))
	s.Require().Len(profile.Records, 1)
	s.NotContains(profile.Records[0], "data", "summaries omit data by default")

	w, _ = s.do(http.MethodGet, "/api/vendor/"+rec.ID, vendor, nil)
	s.Equal(http.StatusOK, w.Code)

	w, _ = s.do(http.MethodDelete, "/api/vendor/"+rec.ID, vendor, nil)
	s.Equal(http.StatusOK, w.Code)
	w, _ = s.do(http.MethodDelete, "/api/vendor/"+rec.ID, vendor, nil)
	s.Equal(http.StatusNotFound, w.Code)
}

func (s *RouterSuite) TestUploadAcceptsLongFormFieldNames() {
	s.createVendor("v@x.com")
	vendor := s.login("v@x.com", "vendor123!")

	w, env := s.do(http.MethodPost, "/api/vendor/upload", vendor, map[string]any{"recordType": "test03", "dataObject": map[string]string{"k": "v"}})
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	var rec struct {
		Type string `json:"type"`
	}
	s.Require().NoError(json.Unmarshal(env.Data, &rec))
	s.Equal("test03", rec.Type)
}

func (s *RouterSuite) TestForeignRecordIsNotFound() {
	s.createVendor("a@x.com")
	s.createVendor("b@x.com")
	a := s.login("a@x.com", "vendor123!")
	b := s.login("b@x.com", "vendor123!")

	w, env := s.do(http.MethodPost, "/api/vendor/upload", a, map[string]any{"type": "test02", "data": map[string]string{"k": "v"}})
	s.Require().Equal(http.StatusCreated, w.Code)
	var rec struct {
		ID string `json:"id"`
	}
	s.Require().NoError(json.Unmarshal(env.Data, &rec))

	w, _ = s.do(http.MethodGet, "/api/vendor/"+rec.ID, b, nil)
	s.Equal(http.StatusNotFound, w.Code)
	w, _ = s.do(http.MethodDelete, "/api/vendor/"+rec.ID, b, nil)
	s.Equal(http.StatusNotFound, w.Code)
	w, _ = s.do(http.MethodGet, "/api/vendor/"+rec.ID, a, nil)
	s.Equal(http.StatusOK, w.Code, "owner still sees it")
}

func (s *RouterSuite) TestStatusMapping() {
	s.createVendor("v@x.com")
	vendor := s.login("v@x.com", "vendor123!")

	tests := []struct {
		name   string
		method string
		path   string
		token  string
		body   any
		status int
		kind   string
	}{
		{"no token", http.MethodGet, "/api/vendor", "", nil, http.StatusUnauthorized, ""},
		{"bad token", http.MethodGet, "/api/me", "garbage", nil, http.StatusUnauthorized, ""},
		{"admin on vendor route", http.MethodGet, "/api/vendor", s.admin, nil, http.StatusForbidden, "forbidden"},
		{"vendor on admin route", http.MethodGet, "/api/admin/users/search?q=vera", vendor, nil, http.StatusForbidden, "forbidden"},
		{"forbidden before payload", http.MethodPost, "/api/vendor/upload", s.admin, "{not json", http.StatusForbidden, "forbidden"},
		{"malformed record id", http.MethodGet, "/api/vendor/123", vendor, nil, http.StatusBadRequest, "validation"},
		{"unknown record type", http.MethodPost, "/api/vendor/upload", vendor, map[string]any{"type": "test99", "data": map[string]string{"k": "v"}}, http.StatusBadRequest, "validation"},
		{"role escalation", http.MethodPut, "/api/vendor", vendor, map[string]any{"roles": []string{"admin"}}, http.StatusBadRequest, "validation"},
		{"bad data flag", http.MethodGet, "/api/vendor?data=maybe", vendor, nil, http.StatusBadRequest, "validation"},
		{"duplicate email", http.MethodPost, "/api/admin/users", s.admin, map[string]any{"email": "V@X.com", "password": "vendor123!", "roles": []string{"vendor"}}, http.StatusConflict, "conflict"},
		{"empty search", http.MethodGet, "/api/admin/users/search", s.admin, nil, http.StatusBadRequest, "validation"},
		{"non-integer search size", http.MethodGet, "/api/admin/users/search?q=vera&size=abc", s.admin, nil, http.StatusBadRequest, "validation"},
		{"bad search size from vendor", http.MethodGet, "/api/admin/users/search?q=vera&size=abc", vendor, nil, http.StatusForbidden, "forbidden"},
		{"null roles in update", http.MethodPut, "/api/vendor", vendor, `{"roles":null}`, http.StatusBadRequest, "validation"},
		{"null groupId in update", http.MethodPut, "/api/vendor", vendor, `{"groupId":null,"name":"x"}`, http.StatusBadRequest, "validation"},
		{"urn record id", http.MethodGet, "/api/vendor/urn:uuid:6ba7b810-9dad-11d1-80b4-00c04fd430c8", vendor, nil, http.StatusBadRequest, "validation"},
		{"multibyte password over 72 bytes", http.MethodPost, "/api/admin/users", s.admin, map[string]any{"email": "long@x.com", "password": strings.Repeat("é", 40) + "1!", "roles": []string{"vendor"}}, http.StatusBadRequest, "validation"},
	}
	for _, tt := range tests {
		s.Run(tt.name, func() {
			w, env := s.do(tt.method, tt.path, tt.token, tt.body)
			s.Equal(tt.status, w.Code, w.Body.String())
			s.False(env.Success)
			if tt.kind != "" {
				s.Equal(tt.kind, env.Error["kind"])
			}
		})
	}
}

func (s *RouterSuite) TestMeWorksForEveryRole() {
	w, env := s.do(http.MethodGet, "/api/me", s.admin, nil)
	s.Require().Equal(http.StatusOK, w.Code)
	var me map[string]any
	s.Require().NoError(json.Unmarshal(env.Data, &me))
	s.Equal("admin@x.com", me["email"])
	s.NotContains(me, "password")
}

func (s *RouterSuite) TestUpdateProfile() {
	s.createVendor("v@x.com")
	vendor := s.login("v@x.com", "vendor123!")

	w, _ := s.do(http.MethodPut, "/api/vendor", vendor, map[string]any{"name": "Vera Two", "password": "another456$"})
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	w, _ = s.do(http.MethodPost, "/api/login", "", map[string]string{"email": "v@x.com", "password": "vendor123!"})
	s.Equal(http.StatusUnauthorized, w.Code, "old password no longer works")
	s.login("v@x.com", "another456$")
}

func (s *RouterSuite) TestLogoutRevokesToken() {
	w, _ := s.do(http.MethodPost, "/api/logout", s.admin, nil)
	s.Require().Equal(http.StatusOK, w.Code)

	w, _ = s.do(http.MethodGet, "/api/me", s.admin, nil)
	s.Equal(http.StatusUnauthorized, w.Code)
}

func (s *RouterSuite) TestMetricsEndpoint() {
	s.do(http.MethodGet, "/api/vendor", s.admin, nil)

	w, _ := s.do(http.MethodGet, "/metrics", "", nil)
	s.Require().Equal(http.StatusOK, w.Code)
	s.Contains(w.Body.String(), `vault_authorization_decisions_total{allowed="false",operation="vendor_reads_own_profile"} 1`)
}

func TestMetricsRouteOptional(t *testing.T) {
	gin.SetMode(gin.TestMode)
	logger := helpers.NewDiscardLogger()
	types, err := entity.NewRecordTypes("test01")
	require.NoError(t, err)
	accounts := application.NewAccountService(memory.NewAccountStore(), nil, nil, logger, bcrypt.MinCost)
	d := Deps{
		Controller: application.NewAccessController(accounts, application.NewRecordService(memory.NewRecordStore(), types, logger), nil),
		Auth:       application.NewAuthService(accounts, helpers.NewJWTManager("a", "b", time.Minute, time.Hour), nil, time.Hour, logger),
		Cookies:    helpers.NewCookie("", false),
		Logger:     logger,
	}
	e := gin.New()
	r := NewRegistry(e)
	InitModules(r, d)
	r.RegisterAll()

	w := httptest.NewRecorder()
	e.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusNotFound, w.Code)
}
