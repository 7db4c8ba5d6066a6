package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	gorilla "github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eduportfolio/eduportfolio-be/internal/auth"
	"github.com/eduportfolio/eduportfolio-be/internal/database"
	"github.com/eduportfolio/eduportfolio-be/internal/models"
	"github.com/eduportfolio/eduportfolio-be/internal/services"
	"github.com/eduportfolio/eduportfolio-be/internal/websocket"
)

// envelope mirrors the API response shape for decoding in tests.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

// newTestServer wires the full router against an in-memory database with a
// seeded admin account.
func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	db, err := database.New(":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() { db.Close() })

	hub := websocket.NewHub()
	go hub.Run()

	categoryService := services.NewCategoryService(db)
	moduleService := services.NewModuleService(db)
	projectService := services.NewProjectService(db)
	profileService := services.NewProfileService(db)
	userService := services.NewUserService(db)
	statsService := services.NewStatsService(db)
	eventService := services.NewEventService(db, hub)

	require.NoError(t, userService.SeedAdmin("admin", "secret123"))

	tokens := auth.NewTokenManager("test-secret", time.Hour)
	router := NewRouter(tokens, []string{"*"},
		categoryService, moduleService, projectService,
		profileService, userService, statsService, eventService, hub)

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	return server
}

// doJSON issues a request and decodes the envelope.
func doJSON(t *testing.T, method, url, token string, body interface{}) (int, envelope) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, url, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var env envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return resp.StatusCode, env
}

func login(t *testing.T, baseURL string) string {
	t.Helper()

	status, env := doJSON(t, http.MethodPost, baseURL+"/api/auth/login", "",
		map[string]string{"username": "admin", "password": "secret123"})
	require.Equal(t, http.StatusOK, status)

	var data struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	require.NotEmpty(t, data.Token)
	return data.Token
}

func TestLogin(t *testing.T) {
	server := newTestServer(t)

	t.Run("valid credentials return a token", func(t *testing.T) {
		login(t, server.URL)
	})

	t.Run("wrong password is rejected", func(t *testing.T) {
		status, env := doJSON(t, http.MethodPost, server.URL+"/api/auth/login", "",
			map[string]string{"username": "admin", "password": "wrong"})
		assert.Equal(t, http.StatusUnauthorized, status)
		assert.False(t, env.Success)
		assert.Equal(t, "invalid username or password", env.Message)
	})
}

func TestAuthRequiredOnWrites(t *testing.T) {
	server := newTestServer(t)

	t.Run("missing token", func(t *testing.T) {
		status, env := doJSON(t, http.MethodPost, server.URL+"/api/categories", "",
			models.Category{Name: "Math"})
		assert.Equal(t, http.StatusUnauthorized, status)
		assert.False(t, env.Success)
	})

	t.Run("garbage token", func(t *testing.T) {
		status, _ := doJSON(t, http.MethodPost, server.URL+"/api/categories", "not-a-jwt",
			models.Category{Name: "Math"})
		assert.Equal(t, http.StatusForbidden, status)
	})

	t.Run("token signed with another secret", func(t *testing.T) {
		other := auth.NewTokenManager("other-secret", time.Hour)
		forged, err := other.Generate(models.User{ID: "x", Username: "admin"})
		require.NoError(t, err)

		status, _ := doJSON(t, http.MethodPost, server.URL+"/api/categories", forged,
			models.Category{Name: "Math"})
		assert.Equal(t, http.StatusForbidden, status)
	})
}

func TestCategoryLifecycle(t *testing.T) {
	server := newTestServer(t)
	token := login(t, server.URL)

	status, env := doJSON(t, http.MethodPost, server.URL+"/api/categories", token,
		models.Category{Name: "Mathematics"})
	require.Equal(t, http.StatusCreated, status)

	var created models.Category
	require.NoError(t, json.Unmarshal(env.Data, &created))
	assert.Equal(t, "Mathematics", created.Name)

	t.Run("duplicate name", func(t *testing.T) {
		status, env := doJSON(t, http.MethodPost, server.URL+"/api/categories", token,
			models.Category{Name: "Mathematics"})
		assert.Equal(t, http.StatusBadRequest, status)
		assert.Contains(t, env.Message, "unique")
	})

	t.Run("public list", func(t *testing.T) {
		status, env := doJSON(t, http.MethodGet, server.URL+"/api/categories", "", nil)
		require.Equal(t, http.StatusOK, status)

		var categories []models.Category
		require.NoError(t, json.Unmarshal(env.Data, &categories))
		require.Len(t, categories, 1)
	})

	t.Run("delete", func(t *testing.T) {
		status, env := doJSON(t, http.MethodDelete,
			fmt.Sprintf("%s/api/categories/%s", server.URL, created.ID), token, nil)
		require.Equal(t, http.StatusOK, status)
		assert.Equal(t, "category deleted", env.Message)

		status, _ = doJSON(t, http.MethodGet,
			fmt.Sprintf("%s/api/categories/%s", server.URL, created.ID), token, nil)
		assert.Equal(t, http.StatusNotFound, status)
	})
}

func TestModuleEndpoints(t *testing.T) {
	server := newTestServer(t)
	token := login(t, server.URL)

	status, env := doJSON(t, http.MethodPost, server.URL+"/api/categories", token,
		models.Category{Name: "Math"})
	require.Equal(t, http.StatusCreated, status)
	var math models.Category
	require.NoError(t, json.Unmarshal(env.Data, &math))

	status, env = doJSON(t, http.MethodPost, server.URL+"/api/modules", token, models.Module{
		Name:        "Linear Algebra",
		Type:        "university",
		CategoryIDs: []string{math.ID},
		Assessments: []models.Assessment{{Name: "Exam", Grade: "1.0"}},
	})
	require.Equal(t, http.StatusCreated, status)

	var created models.Module
	require.NoError(t, json.Unmarshal(env.Data, &created))
	require.Len(t, created.Categories, 1)
	assert.Equal(t, "Math", created.Categories[0].Name)

	t.Run("invalid type", func(t *testing.T) {
		status, _ := doJSON(t, http.MethodPost, server.URL+"/api/modules", token,
			models.Module{Name: "X", Type: "evening-class"})
		assert.Equal(t, http.StatusBadRequest, status)
	})

	t.Run("anonymous list has populated categories", func(t *testing.T) {
		status, env := doJSON(t, http.MethodGet, server.URL+"/api/modules", "", nil)
		require.Equal(t, http.StatusOK, status)

		var modules []models.Module
		require.NoError(t, json.Unmarshal(env.Data, &modules))
		require.Len(t, modules, 1)
		require.Len(t, modules[0].Categories, 1)
		assert.Equal(t, "Math", modules[0].Categories[0].Name)
	})

	t.Run("update replaces the document", func(t *testing.T) {
		status, env := doJSON(t, http.MethodPut,
			fmt.Sprintf("%s/api/modules/%s", server.URL, created.ID), token,
			models.Module{Name: "Linear Algebra II", Type: "university", Status: "published"})
		require.Equal(t, http.StatusOK, status)

		var updated models.Module
		require.NoError(t, json.Unmarshal(env.Data, &updated))
		assert.Equal(t, "Linear Algebra II", updated.Name)
		assert.Empty(t, updated.Assessments)
		assert.Empty(t, updated.Categories)
	})

	t.Run("get unknown id", func(t *testing.T) {
		status, _ := doJSON(t, http.MethodGet, server.URL+"/api/modules/missing", token, nil)
		assert.Equal(t, http.StatusNotFound, status)
	})
}

func TestProjectEndpoints(t *testing.T) {
	server := newTestServer(t)
	token := login(t, server.URL)

	t.Run("create with github url", func(t *testing.T) {
		status, env := doJSON(t, http.MethodPost, server.URL+"/api/projects", token,
			models.Project{Title: "Chat Server", GithubURL: "https://github.com/example/chat"})
		require.Equal(t, http.StatusCreated, status)

		var created models.Project
		require.NoError(t, json.Unmarshal(env.Data, &created))
		assert.NotEmpty(t, created.Date)
	})

	t.Run("non-github url is rejected", func(t *testing.T) {
		status, env := doJSON(t, http.MethodPost, server.URL+"/api/projects", token,
			models.Project{Title: "Elsewhere", GithubURL: "https://gitlab.com/example/x"})
		assert.Equal(t, http.StatusBadRequest, status)
		assert.Contains(t, env.Message, "github.com")
	})
}

func TestProfileEndpoints(t *testing.T) {
	server := newTestServer(t)
	token := login(t, server.URL)

	t.Run("first update creates the singleton", func(t *testing.T) {
		status, _ := doJSON(t, http.MethodPut, server.URL+"/api/profile", token, models.Profile{
			Name:     "Ada Lovelace",
			Bio:      "Mathematician and first programmer.",
			IsPublic: false,
		})
		assert.Equal(t, http.StatusCreated, status)
	})

	t.Run("second update replaces it", func(t *testing.T) {
		status, _ := doJSON(t, http.MethodPut, server.URL+"/api/profile", token, models.Profile{
			Name:     "Ada Lovelace",
			Bio:      "Mathematician, writer, analytical engines.",
			IsPublic: false,
		})
		assert.Equal(t, http.StatusOK, status)
	})

	t.Run("validation failure", func(t *testing.T) {
		status, _ := doJSON(t, http.MethodPut, server.URL+"/api/profile", token,
			models.Profile{Name: "", Bio: "short"})
		assert.Equal(t, http.StatusBadRequest, status)
	})

	t.Run("anonymous caller gets the placeholder for a private profile", func(t *testing.T) {
		status, env := doJSON(t, http.MethodGet, server.URL+"/api/profile", "", nil)
		require.Equal(t, http.StatusOK, status)

		var profile models.Profile
		require.NoError(t, json.Unmarshal(env.Data, &profile))
		assert.Equal(t, "N/A", profile.Name)
	})

	t.Run("authenticated caller gets the stored document", func(t *testing.T) {
		status, env := doJSON(t, http.MethodGet, server.URL+"/api/profile", token, nil)
		require.Equal(t, http.StatusOK, status)

		var profile models.Profile
		require.NoError(t, json.Unmarshal(env.Data, &profile))
		assert.Equal(t, "Ada Lovelace", profile.Name)
	})
}

func TestStatsEndpoint(t *testing.T) {
	server := newTestServer(t)
	token := login(t, server.URL)

	status, _ := doJSON(t, http.MethodPost, server.URL+"/api/modules", token,
		models.Module{Name: "Databases", Type: "university", Status: "published"})
	require.Equal(t, http.StatusCreated, status)

	status, env := doJSON(t, http.MethodGet, server.URL+"/api/stats", "", nil)
	require.Equal(t, http.StatusOK, status)

	var stats models.Stats
	require.NoError(t, json.Unmarshal(env.Data, &stats))
	assert.Equal(t, 1, stats.Modules)
	assert.Equal(t, 1, stats.Published)
}

func TestEventsEndpoint(t *testing.T) {
	server := newTestServer(t)
	token := login(t, server.URL)

	status, _ := doJSON(t, http.MethodPost, server.URL+"/api/categories", token,
		models.Category{Name: "Math"})
	require.Equal(t, http.StatusCreated, status)

	t.Run("requires auth", func(t *testing.T) {
		status, _ := doJSON(t, http.MethodGet, server.URL+"/api/events", "", nil)
		assert.Equal(t, http.StatusUnauthorized, status)
	})

	t.Run("returns recent activity", func(t *testing.T) {
		status, env := doJSON(t, http.MethodGet, server.URL+"/api/events", token, nil)
		require.Equal(t, http.StatusOK, status)

		var events []models.Event
		require.NoError(t, json.Unmarshal(env.Data, &events))
		require.NotEmpty(t, events)
		assert.Equal(t, "category.create", events[0].Type)
	})
}

func TestWebSocketFeed(t *testing.T) {
	server := newTestServer(t)
	token := login(t, server.URL)

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http") + "/api/ws?token=" + token

	conn, resp, err := gorilla.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer resp.Body.Close()
	defer conn.Close()

	// Give the hub a moment to register the client before mutating.
	time.Sleep(100 * time.Millisecond)

	status, _ := doJSON(t, http.MethodPost, server.URL+"/api/categories", token,
		models.Category{Name: "Live"})
	require.Equal(t, http.StatusCreated, status)

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, payload, err := conn.ReadMessage()
	require.NoError(t, err)

	var message struct {
		Action  string       `json:"action"`
		Payload models.Event `json:"payload"`
	}
	require.NoError(t, json.Unmarshal(payload, &message))
	assert.Equal(t, "event", message.Action)
	assert.Equal(t, "category.create", message.Payload.Type)

	t.Run("rejects a missing token before upgrading", func(t *testing.T) {
		_, resp, err := gorilla.DefaultDialer.Dial("ws"+strings.TrimPrefix(server.URL, "http")+"/api/ws", nil)
		require.Error(t, err)
		require.NotNil(t, resp)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}
