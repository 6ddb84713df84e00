package httpapi

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"userService/internal/docs"
)

// Route binds one (method, path) pair to its handler and its documentation.
type Route struct {
	docs.Operation
	Handler gin.HandlerFunc
}

var (
	idParam = docs.Parameter{Name: "id", In: "path", Type: "integer", Required: true, Description: "The user ID"}

	notFound   = docs.Response{Status: http.StatusNotFound, Description: "User not found", Schema: docs.Ref("Error")}
	badRequest = docs.Response{Status: http.StatusBadRequest, Description: "Invalid request", Schema: docs.Ref("Error")}
	serverErr  = docs.Response{Status: http.StatusInternalServerError, Description: "Unexpected server error", Schema: docs.Ref("Error")}
)

// definitions are the named schemas the route table refers to.
func definitions() map[string]*docs.Schema {
	return map[string]*docs.Schema{
		"User": {
			Type: "object",
			Properties: map[string]*docs.Schema{
				"id":   {Type: "integer"},
				"name": {Type: "string"},
				"age":  {Type: "integer"},
			},
		},
		"Message": {
			Type:       "object",
			Properties: map[string]*docs.Schema{"message": {Type: "string"}},
		},
		"Error": {
			Type:       "object",
			Properties: map[string]*docs.Schema{"error": {Type: "string"}},
		},
	}
}

// Routes is the ordered route table. The router and the API document are
// both built from it.
func (h *UserHandler) Routes() []Route {
	return []Route{
		{
			Operation: docs.Operation{
				Method: http.MethodGet, Path: "/users", OperationID: "listUsers", Summary: "List all users", Tags: []string{"users"},
				Responses: []docs.Response{
					{Status: http.StatusOK, Description: "A list of users", Schema: docs.ArrayOf(docs.Ref("User"))},
					serverErr,
				},
			},
			Handler: h.List,
		},
		{
			Operation: docs.Operation{
				Method: http.MethodGet, Path: "/users/{id}", OperationID: "getUser", Summary: "Get a user by id", Tags: []string{"users"},
				Parameters: []docs.Parameter{idParam},
				Responses: []docs.Response{
					{Status: http.StatusOK, Description: "A user object", Schema: docs.Ref("User")},
					badRequest, notFound, serverErr,
				},
			},
			Handler: h.Get,
		},
		{
			Operation: docs.Operation{
				Method: http.MethodPost, Path: "/users", OperationID: "createUser", Summary: "Create a user", Tags: []string{"users"},
				Body: &docs.Schema{
					Type: "object",
					Properties: map[string]*docs.Schema{
						"id":   {Type: "integer"},
						"name": {Type: "string"},
						"age":  {Type: "integer"},
					},
					Required: []string{"id", "name", "age"},
				},
				Responses: []docs.Response{
					{Status: http.StatusCreated, Description: "User created", Schema: docs.Ref("User")},
					badRequest,
					{Status: http.StatusConflict, Description: "A user with this id already exists", Schema: docs.Ref("Error")},
					serverErr,
				},
			},
			Handler: h.Create,
		},
		{
			Operation: docs.Operation{
				Method: http.MethodPut, Path: "/users/{id}", OperationID: "updateUser", Summary: "Update a user's name and age", Tags: []string{"users"},
				Parameters: []docs.Parameter{idParam},
				Body: &docs.Schema{
					Type: "object",
					Properties: map[string]*docs.Schema{
						"name": {Type: "string"},
						"age":  {Type: "integer"},
					},
					Required: []string{"name", "age"},
				},
				Responses: []docs.Response{
					{Status: http.StatusOK, Description: "User updated", Schema: docs.Ref("User")},
					badRequest, notFound, serverErr,
				},
			},
			Handler: h.Update,
		},
		{
			Operation: docs.Operation{
				Method: http.MethodDelete, Path: "/users/{id}", OperationID: "deleteUser", Summary: "Delete a user", Tags: []string{"users"},
				Parameters: []docs.Parameter{idParam},
				Responses: []docs.Response{
					{Status: http.StatusOK, Description: "User deleted", Schema: docs.Ref("Message")},
					badRequest, notFound, serverErr,
				},
			},
			Handler: h.Delete,
		},
		{
			Operation: docs.Operation{
				Method: http.MethodDelete, Path: "/users", OperationID: "deleteAllUsers", Summary: "Delete every user", Tags: []string{"users"},
				Responses: []docs.Response{
					{Status: http.StatusOK, Description: "All users deleted", Schema: docs.Ref("Message")},
					serverErr,
				},
			},
			Handler: h.DeleteAll,
		},
		{
			Operation: docs.Operation{
				Method: http.MethodGet, Path: "/healthz", OperationID: "health", Summary: "Database reachability probe", Tags: []string{"health"},
				Responses: []docs.Response{
					{Status: http.StatusOK, Description: "Service healthy"},
					{Status: http.StatusServiceUnavailable, Description: "Database unreachable", Schema: docs.Ref("Error")},
				},
			},
			Handler: h.Health,
		},
	}
}

func opsOf(routes []Route) []docs.Operation {
	ops := make([]docs.Operation, 0, len(routes))
	for _, rt := range routes {
		ops = append(ops, rt.Operation)
	}
	return ops
}

// ginPath turns "/users/{id}" into "/users/:id".
func ginPath(template string) string {
	parts := strings.Split(template, "/")
	for i, p := range parts {
		if strings.HasPrefix(p, "{") && strings.HasSuffix(p, "}") {
			parts[i] = ":" + p[1:len(p)-1]
		}
	}
	return strings.Join(parts, "/")
}
