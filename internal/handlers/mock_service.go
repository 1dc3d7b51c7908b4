package handlers

import (
	"context"
	"html/template"
	"net/http"

	"inkpost/internal/models"
	"inkpost/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockAuth struct {
	signUpUser   models.User
	signUpErr    error
	loginSession service.Session
	loginErr     error
	parseID      int
	parseErr     error
	revokeErr    error

	signUpCalls        int
	lastSignUpUsername string
	lastSignUpPassword string
	lastLoginUsername  string
	lastLoginPassword  string
	lastParseToken     string
	revoked            []string
}

func (m *mockAuth) SignUp(_ context.Context, username, password string) (models.User, error) {
	m.signUpCalls++
	m.lastSignUpUsername = username
	m.lastSignUpPassword = password
	return m.signUpUser, m.signUpErr
}

func (m *mockAuth) Login(_ context.Context, username, password string) (service.Session, error) {
	m.lastLoginUsername = username
	m.lastLoginPassword = password
	return m.loginSession, m.loginErr
}

func (m *mockAuth) ParseToken(_ context.Context, token string) (int, error) {
	m.lastParseToken = token
	return m.parseID, m.parseErr
}

func (m *mockAuth) Revoke(_ context.Context, token string) error {
	m.revoked = append(m.revoked, token)
	return m.revokeErr
}

func (m *mockAuth) EnsureAdmin(context.Context, string, string) (bool, error) {
	return false, nil
}

type mockPosts struct {
	page      service.PostPage
	pageErr   error
	lastPage  int
	post      models.Post
	getErr    error
	list      []models.Post
	listErr   error
	created   models.Post
	createErr error
	updateErr error
	deleteErr error

	lastSearch  string
	lastInput   service.PostInput
	lastID      string
	createCalls int
	updateCalls int
	deleteCalls int
	allCalls    int
}

func (m *mockPosts) Page(_ context.Context, page int) (service.PostPage, error) {
	m.lastPage = page
	return m.page, m.pageErr
}

func (m *mockPosts) Get(_ context.Context, id string) (models.Post, error) {
	m.lastID = id
	return m.post, m.getErr
}

func (m *mockPosts) Search(_ context.Context, term string) ([]models.Post, error) {
	m.lastSearch = term
	return m.list, m.listErr
}

func (m *mockPosts) All(context.Context) ([]models.Post, error) {
	m.allCalls++
	return m.list, m.listErr
}

func (m *mockPosts) Create(_ context.Context, in service.PostInput) (models.Post, error) {
	m.createCalls++
	m.lastInput = in
	return m.created, m.createErr
}

func (m *mockPosts) Update(_ context.Context, id string, in service.PostInput) (models.Post, error) {
	m.updateCalls++
	m.lastID = id
	m.lastInput = in
	return m.post, m.updateErr
}

func (m *mockPosts) Delete(_ context.Context, id string) error {
	m.deleteCalls++
	m.lastID = id
	return m.deleteErr
}

type mockRenderer struct {
	err error
}

func (m mockRenderer) Render(body string) (template.HTML, error) {
	return template.HTML("<p>" + template.HTMLEscapeString(body) + "</p>"), m.err
}

// ---- Shared Test Helpers ----

func newTestServices(auth *mockAuth, posts *mockPosts) *service.Service {
	if auth == nil {
		auth = &mockAuth{}
	}
	if posts == nil {
		posts = &mockPosts{}
	}
	return &service.Service{Authorization: auth, Posts: posts, Renderer: mockRenderer{}}
}

func newTestRouter(s *service.Service) http.Handler {
	gin.SetMode(gin.TestMode)
	h := NewHandler(s, nil, Options{SiteTitle: "Test Blog", SiteDescription: "testing"})
	return h.Routes()
}

func withSession(req *http.Request, token string) *http.Request {
	if token != "" {
		req.AddCookie(&http.Cookie{Name: tokenCookie, Value: token})
	}
	return req
}
