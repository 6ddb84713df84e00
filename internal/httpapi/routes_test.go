package httpapi

import (
	"encoding/json"
	"net/http"
	"sort"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"userService/internal/docs"
)

func TestGinPath(t *testing.T) {
	assert.Equal(t, "/users", ginPath("/users"))
	assert.Equal(t, "/users/:id", ginPath("/users/{id}"))
	assert.Equal(t, "/a/:x/b/:y", ginPath("/a/{x}/b/{y}"))
}

// The published document must describe exactly the routes the router serves.
func TestAPIDocumentMatchesRouter(t *testing.T) {
	r := newTestRouter(t)

	w := do(t, r, http.MethodGet, docs.SpecPath, "")
	require.Equal(t, http.StatusOK, w.Code)
	var doc docs.Document
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &doc))
	assert.Equal(t, "2.0", doc.Swagger)

	var documented []string
	for _, e := range doc.Endpoints() {
		method, path, _ := strings.Cut(e, " ")
		documented = append(documented, method+" "+ginPath(path))
	}
	sort.Strings(documented)

	docRoutes := map[string]bool{"GET " + docs.SpecPath: true, "GET " + docs.UIPath: true}
	var served []string
	for _, ri := range r.Routes() {
		key := ri.Method + " " + ri.Path
		if !docRoutes[key] {
			served = append(served, key)
		}
	}
	sort.Strings(served)

	assert.Equal(t, served, documented)
	assert.Equal(t, []string{
		"DELETE /users", "DELETE /users/:id", "GET /healthz", "GET /users",
		"GET /users/:id", "POST /users", "PUT /users/:id",
	}, served)
}

func TestAPIDocumentDescribesUserOperations(t *testing.T) {
	h := NewUserHandler(nil, zerolog.Nop())
	doc := docs.Build(docs.Info{Title: "x", Version: Version}, definitions(), opsOf(h.Routes()))

	get := doc.Paths["/users/{id}"]["get"]
	require.NotNil(t, get)
	require.Len(t, get.Parameters, 1)
	assert.Equal(t, docs.Parameter{Name: "id", In: "path", Type: "integer", Required: true, Description: "The user ID"}, get.Parameters[0])
	assert.Contains(t, get.Responses, "200")
	assert.Contains(t, get.Responses, "404")

	post := doc.Paths["/users"]["post"]
	require.NotNil(t, post)
	require.Len(t, post.Parameters, 1)
	assert.Equal(t, []string{"id", "name", "age"}, post.Parameters[0].Schema.Required)
	assert.Contains(t, post.Responses, "201")
	assert.Contains(t, post.Responses, "409")

	put := doc.Paths["/users/{id}"]["put"]
	require.NotNil(t, put)
	require.Len(t, put.Parameters, 2)
	assert.Equal(t, []string{"name", "age"}, put.Parameters[1].Schema.Required)

	user := doc.Definitions["User"]
	require.NotNil(t, user)
	assert.Equal(t, "integer", user.Properties["id"].Type)
	assert.Equal(t, "string", user.Properties["name"].Type)
	assert.Equal(t, "integer", user.Properties["age"].Type)
}

func TestAPIBrowserPage(t *testing.T) {
	w := do(t, newTestRouter(t), http.MethodGet, docs.UIPath, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "swagger-ui")
}
