package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"commune/internal/config"
	"commune/internal/models"
	"commune/internal/repository"
	"commune/internal/service"
	"commune/internal/session"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupTestServer builds a Server over an in-memory sqlite database with
// routes registered on a bare Fiber app. Prometheus middleware is left
// out so repeated setups do not re-register collectors.
func setupTestServer(t *testing.T) (*Server, *fiber.App) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(
		&models.Member{},
		&models.Friendship{},
		&models.Post{},
		&models.Like{},
		&models.Comment{},
	); err != nil {
		t.Fatalf("migrate sqlite: %v", err)
	}

	cfg := &config.Config{
		SessionSecret: "test-session-secret",
		Env:           "test",
	}

	memberRepo := repository.NewMemberRepository(db)
	postRepo := repository.NewPostRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	relationRepo := repository.NewRelationRepository(db)
	codec := session.NewCodec(cfg.SessionSecret)

	s := &Server{
		config:       cfg,
		db:           db,
		codec:        codec,
		resolver:     session.NewResolver(codec, memberRepo),
		memberRepo:   memberRepo,
		postRepo:     postRepo,
		commentRepo:  commentRepo,
		relationRepo: relationRepo,
	}
	s.memberService = service.NewMemberService(memberRepo)
	s.postService = service.NewPostService(postRepo)
	s.commentService = service.NewCommentService(commentRepo, postRepo)
	s.relationService = service.NewRelationService(relationRepo, memberRepo, postRepo)

	app := fiber.New()
	s.SetupRoutes(app)

	return s, app
}

var testPasswordHash = func() string {
	hash, err := bcrypt.GenerateFromPassword([]byte("correcthorse"), bcrypt.MinCost)
	if err != nil {
		panic(err)
	}
	return string(hash)
}()

func createMember(t *testing.T, s *Server, email string) *models.Member {
	t.Helper()
	m := &models.Member{
		Email:     email,
		Password:  testPasswordHash,
		FirstName: "Test",
		LastName:  "Member",
	}
	require.NoError(t, s.db.Create(m).Error)
	return m
}

func sessionCookie(t *testing.T, s *Server, memberID uint) *http.Cookie {
	t.Helper()
	token, err := s.codec.Mint(memberID)
	require.NoError(t, err)
	return &http.Cookie{Name: session.CookieName, Value: token}
}

// doRequest performs a JSON request against the test app, optionally
// authenticated with a session cookie.
func doRequest(t *testing.T, app *fiber.App, method, path string, body any, cookie *http.Cookie) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer func() { _ = resp.Body.Close() }()
	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func decodeList(t *testing.T, resp *http.Response) []map[string]any {
	t.Helper()
	defer func() { _ = resp.Body.Close() }()
	var out []map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}
