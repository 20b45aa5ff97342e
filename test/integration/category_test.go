package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/koyomi-app/koyomi/internal/core/domain"
)

func listCategories(t *testing.T, app *TestApp, token string) []domain.Category {
	t.Helper()

	req, err := http.NewRequest("GET", app.Server.URL+"/api/categories", nil)
	require.NoError(t, err)
	req.AddCookie(&http.Cookie{Name: "access_token", Value: token})

	resp, err := app.Client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var categories []domain.Category
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&categories))
	return categories
}

func TestCategoryFlow(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	ownerID, token := app.createUserAndToken(t)

	// A fresh owner sees the built-in defaults.
	categories := listCategories(t, app, token)
	require.Len(t, categories, 3)
	for _, c := range categories {
		assert.True(t, c.BuiltIn)
		assert.Equal(t, ownerID, c.OwnerID)
	}

	// Storing one replaces the defaults in the listing.
	body, _ := json.Marshal(map[string]string{"label": "club", "color": "#a855f7"})
	req, err := http.NewRequest("POST", app.Server.URL+"/api/categories", bytes.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	req.AddCookie(&http.Cookie{Name: "access_token", Value: token})

	resp, err := app.Client.Do(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created domain.Category
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	resp.Body.Close()
	assert.Equal(t, "club", created.Label)

	categories = listCategories(t, app, token)
	require.Len(t, categories, 1)
	assert.Equal(t, created.ID, categories[0].ID)
	assert.False(t, categories[0].BuiltIn)

	// Another owner cannot delete it.
	_, otherToken := app.createUserAndToken(t)
	req, err = http.NewRequest("DELETE",
		fmt.Sprintf("%s/api/categories/%s", app.Server.URL, created.ID), nil)
	require.NoError(t, err)
	req.AddCookie(&http.Cookie{Name: "access_token", Value: otherToken})
	resp, err = app.Client.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusNotFound, resp.StatusCode)

	// The owner can; the defaults come back afterwards.
	req, err = http.NewRequest("DELETE",
		fmt.Sprintf("%s/api/categories/%s", app.Server.URL, created.ID), nil)
	require.NoError(t, err)
	req.AddCookie(&http.Cookie{Name: "access_token", Value: token})
	resp, err = app.Client.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	categories = listCategories(t, app, token)
	require.Len(t, categories, 3)
}

func TestUsersMe(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	userID, token := app.createUserAndToken(t)

	req, err := http.NewRequest("GET", app.Server.URL+"/api/users/me", nil)
	require.NoError(t, err)
	req.AddCookie(&http.Cookie{Name: "access_token", Value: token})

	resp, err := app.Client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var user domain.User
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&user))
	assert.Equal(t, userID, user.ID)
}
