package docs

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleOps() []Operation {
	item := &Schema{Type: "object", Properties: map[string]*Schema{"id": {Type: "integer"}}}
	return []Operation{
		{
			Method: http.MethodGet, Path: "/items", OperationID: "listItems",
			Responses: []Response{{Status: 200, Description: "all items", Schema: ArrayOf(Ref("Item"))}},
		},
		{
			Method: http.MethodPost, Path: "/items", OperationID: "createItem",
			Body:      item,
			Responses: []Response{{Status: 201, Description: "created"}, {Status: 400, Description: "bad"}},
		},
		{
			Method: http.MethodDelete, Path: "/items/{id}", OperationID: "deleteItem",
			Parameters: []Parameter{{Name: "id", In: "path", Type: "integer", Required: true}},
			Responses:  []Response{{Status: 200, Description: "deleted"}},
		},
	}
}

func TestBuild_GroupsOperationsByPath(t *testing.T) {
	doc := Build(Info{Title: "t", Version: "1"}, map[string]*Schema{"Item": {Type: "object"}}, sampleOps())

	assert.Equal(t, "2.0", doc.Swagger)
	assert.Equal(t, []string{"DELETE /items/{id}", "GET /items", "POST /items"}, doc.Endpoints())

	post := doc.Paths["/items"]["post"]
	require.NotNil(t, post)
	require.Len(t, post.Parameters, 1)
	assert.Equal(t, "body", post.Parameters[0].In)
	assert.True(t, post.Parameters[0].Required)
	assert.Contains(t, post.Responses, "201")
	assert.Contains(t, post.Responses, "400")

	get := doc.Paths["/items"]["get"]
	assert.Equal(t, "#/definitions/Item", get.Responses["200"].Schema.Items.Ref)
}

func TestRegister_ServesSpecAndUI(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	Register(r, Build(Info{Title: "Items API", Version: "1"}, nil, sampleOps()))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, SpecPath, nil))
	require.Equal(t, http.StatusOK, w.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "2.0", body["swagger"])
	paths := body["paths"].(map[string]any)
	assert.Contains(t, paths, "/items/{id}")

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, UIPath, nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, w.Body.String(), "<title>Items API</title>")
	assert.Contains(t, w.Body.String(), SpecPath)
}
