package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/htw-hub/questboard-api/internal/constants"
	"github.com/htw-hub/questboard-api/internal/dto"
	"github.com/htw-hub/questboard-api/internal/models"
	"github.com/htw-hub/questboard-api/internal/services"
	"github.com/stretchr/testify/require"
)

func orgTestContext(method, url string, body []byte, userID string) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, url, bytes.NewReader(body))
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c, _ := gin.CreateTestContext(w)
	c.Request = req
	if userID != "" {
		c.Set(constants.ContextKeyUserID, userID)
	}

	return c, w
}

func createTestOrganizer(t *testing.T, env testEnv) *models.User {
	t.Helper()

	user, err := env.deps.AuthService.Login(context.Background(), services.LoginInput{
		Role:  models.RoleOrganizer,
		Email: "sarah@htw.com",
	})
	require.NoError(t, err)
	return user
}

func TestOrganizationHandler_CreateOrganization(t *testing.T) {
	env := setupTestEnv(t)
	user := createTestOrganizer(t, env)
	handler := NewOrganizationHandler(env.deps.OrganizationService)

	body, err := json.Marshal(map[string]interface{}{
		"name":            "Honolulu Tech Week 2025",
		"location":        "Honolulu, HI",
		"size":            "medium",
		"eventsOrganized": 3,
	})
	require.NoError(t, err)

	c, w := orgTestContext(http.MethodPost, "/api/organizations", body, user.ID)
	handler.CreateOrganization(c)

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var response dto.OrganizationDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.NotEmpty(t, response.ID)
	require.Equal(t, "Honolulu Tech Week 2025", response.Name)
	require.Equal(t, models.SizeMedium, response.Size)
	require.Equal(t, "bronze", response.SponsorLevel)
	require.Equal(t, user.ID, response.CreatedBy)
	require.Equal(t, 3, response.EventsOrganized)
}

func TestOrganizationHandler_CreateOrganizationDefaults(t *testing.T) {
	env := setupTestEnv(t)
	user := createTestOrganizer(t, env)
	handler := NewOrganizationHandler(env.deps.OrganizationService)

	c, w := orgTestContext(http.MethodPost, "/api/organizations", []byte(`{"name":"Aloha Devs"}`), user.ID)
	handler.CreateOrganization(c)

	require.Equal(t, http.StatusCreated, w.Code)

	var response dto.OrganizationDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, models.SizeSmall, response.Size)
	require.Equal(t, "bronze", response.SponsorLevel)
}

func TestOrganizationHandler_CreateOrganizationInvalid(t *testing.T) {
	env := setupTestEnv(t)
	user := createTestOrganizer(t, env)
	handler := NewOrganizationHandler(env.deps.OrganizationService)

	tests := []struct {
		name string
		body string
	}{
		{name: "missing name", body: `{}`},
		{name: "blank name", body: `{"name":"   "}`},
		{name: "unknown size", body: `{"name":"Aloha Devs","size":"huge"}`},
		{name: "negative events", body: `{"name":"Aloha Devs","eventsOrganized":-1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := orgTestContext(http.MethodPost, "/api/organizations", []byte(tt.body), user.ID)
			handler.CreateOrganization(c)
			require.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestOrganizationHandler_CreateOrganizationUnauthenticated(t *testing.T) {
	env := setupTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/organizations", map[string]string{"name": "Aloha Devs"}, nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestOrganizationHandler_ListOrganizations(t *testing.T) {
	env := setupTestEnv(t)
	cookies, _ := env.login(t, models.RoleOrganizer, "sarah@htw.com")

	w := env.do(t, http.MethodGet, "/api/organizations", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `[]`, w.Body.String())

	for _, name := range []string{"Honolulu Tech Week 2025", "Aloha Devs"} {
		w = env.do(t, http.MethodPost, "/api/organizations", map[string]string{"name": name}, cookies)
		require.Equal(t, http.StatusCreated, w.Code)
	}

	w = env.do(t, http.MethodGet, "/api/organizations", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var orgs []dto.OrganizationDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &orgs))
	require.Len(t, orgs, 2)
	require.ElementsMatch(t, []string{"Honolulu Tech Week 2025", "Aloha Devs"}, []string{orgs[0].Name, orgs[1].Name})
}
