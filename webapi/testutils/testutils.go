// Package testutils provides the shared suite used by the handler tests: a
// real Fiber app backed by an isolated in-memory sqlite database.
package testutils

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/pocketfin/pocketfin/infra"
	infrarepository "github.com/pocketfin/pocketfin/infra/repository"
	"github.com/pocketfin/pocketfin/pkg/app"
	"github.com/pocketfin/pocketfin/pkg/config"
	"github.com/pocketfin/pocketfin/pkg/domain"
	"github.com/pocketfin/pocketfin/pkg/middleware"
	"github.com/pocketfin/pocketfin/webapi"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

// StubCompleter records the last completion call and returns a canned
// answer.
type StubCompleter struct {
	Answer        string
	Err           error
	SystemContext string
	Question      string
	Calls         int
}

// Complete satisfies the chat completer contract.
func (s *StubCompleter) Complete(
	_ context.Context,
	systemContext, question string,
) (string, error) {
	s.Calls++
	s.SystemContext = systemContext
	s.Question = question
	if s.Err != nil {
		return "", s.Err
	}
	if s.Answer == "" {
		return "respuesta de prueba", nil
	}
	return s.Answer, nil
}

// AppSuite boots the whole application against a fresh in-memory database
// per test.
type AppSuite struct {
	suite.Suite

	DB        *gorm.DB
	App       *app.App
	Fiber     *fiber.App
	Completer *StubCompleter
	Cfg       *config.App
}

// SetupTest opens an isolated shared-cache in-memory database, migrates the
// schema, and assembles the application.
func (s *AppSuite) SetupTest() {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := infra.NewDBConnection(&config.DB{Url: dsn}, "test")
	s.Require().NoError(err)
	s.Require().NoError(infra.AutoMigrate(db))
	s.DB = db

	s.Cfg = &config.App{
		Env: "test",
		Server: &config.Server{
			Host:        "localhost",
			Port:        3000,
			FrontendURL: "http://localhost:5173",
		},
		Log: &config.Log{},
		DB:  &config.DB{Url: dsn},
		Jwt: &config.Jwt{
			Secret: "test-secret",
			Expiry: time.Hour,
		},
		RateLimit: &config.RateLimit{MaxRequests: 10000, Window: time.Minute},
		AI:        &config.AI{},
	}

	s.Completer = &StubCompleter{}
	s.App = app.New(&app.Deps{
		Uow:       infrarepository.NewUoW(db),
		Completer: s.Completer,
		Logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}, s.Cfg)
	s.Fiber = webapi.SetupApp(s.App)
}

// TearDownTest closes the database pool.
func (s *AppSuite) TearDownTest() {
	if s.DB != nil {
		s.Require().NoError(infra.CloseDB(s.DB))
	}
}

// Request performs an in-process HTTP request against the app.
func (s *AppSuite) Request(
	method, path string,
	body any,
	cookies ...*http.Cookie,
) *http.Response {
	s.T().Helper()
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		s.Require().NoError(err)
		reader = bytes.NewReader(payload)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}
	resp, err := s.Fiber.Test(req, -1)
	s.Require().NoError(err)
	return resp
}

// DecodeBody unmarshals a response body into a generic map.
func (s *AppSuite) DecodeBody(resp *http.Response) map[string]any {
	s.T().Helper()
	defer resp.Body.Close() //nolint:errcheck
	var out map[string]any
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&out))
	return out
}

// Data returns the "data" object of a success envelope.
func (s *AppSuite) Data(resp *http.Response) map[string]any {
	s.T().Helper()
	body := s.DecodeBody(resp)
	data, _ := body["data"].(map[string]any)
	return data
}

// DataList returns the "data" array of a success envelope.
func (s *AppSuite) DataList(resp *http.Response) []any {
	s.T().Helper()
	body := s.DecodeBody(resp)
	list, _ := body["data"].([]any)
	return list
}

// Signup registers a user and returns its id.
func (s *AppSuite) Signup(email, password string) uint {
	s.T().Helper()
	resp := s.Request(fiber.MethodPost, "/api/auth/signup", fiber.Map{
		"email":    email,
		"password": password,
	})
	s.Require().Equal(fiber.StatusCreated, resp.StatusCode)
	data := s.Data(resp)
	return uint(data["id"].(float64))
}

// Login authenticates and returns the user auth cookie.
func (s *AppSuite) Login(email, password string) *http.Cookie {
	s.T().Helper()
	resp := s.Request(fiber.MethodPost, "/api/auth/login", fiber.Map{
		"email":    email,
		"password": password,
	})
	s.Require().Equal(fiber.StatusOK, resp.StatusCode)
	cookie := findCookie(resp, middleware.UserCookie)
	s.Require().NotNil(cookie, "login must set the auth cookie")
	return cookie
}

// SignupAndLogin registers a user and returns its auth cookie.
func (s *AppSuite) SignupAndLogin(email, password string) *http.Cookie {
	s.T().Helper()
	s.Signup(email, password)
	return s.Login(email, password)
}

// GrantRole elevates a user directly through the service layer, bypassing
// the HTTP surface.
func (s *AppSuite) GrantRole(email, password string, role domain.Role) {
	s.T().Helper()
	_, err := s.App.AdminService.GrantRole(
		context.Background(), email, password, "", role)
	s.Require().NoError(err)
}

// AdminLogin authenticates against the admin realm and returns the admin
// cookie.
func (s *AppSuite) AdminLogin(email, password string) *http.Cookie {
	s.T().Helper()
	resp := s.Request(fiber.MethodPost, "/api/auth/admin/login", fiber.Map{
		"email":    email,
		"password": password,
	})
	s.Require().Equal(fiber.StatusOK, resp.StatusCode)
	cookie := findCookie(resp, middleware.AdminCookie)
	s.Require().NotNil(cookie, "admin login must set the admin cookie")
	return cookie
}

func findCookie(resp *http.Response, name string) *http.Cookie {
	for _, cookie := range resp.Cookies() {
		if cookie.Name == name && cookie.Value != "" {
			return cookie
		}
	}
	return nil
}
