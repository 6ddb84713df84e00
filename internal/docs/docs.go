// Package docs renders route metadata into a Swagger 2.0 document and serves
// it together with a Swagger UI page. It never takes part in request handling
// for the routes it describes.
package docs

import (
	"html/template"
	"net/http"
	"sort"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	// SpecPath serves the JSON document.
	SpecPath = "/apispec_1.json"
	// UIPath serves the interactive browser.
	UIPath = "/apidocs/"
)

// Info describes the API as a whole.
type Info struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Version     string `json:"version"`
}

// Schema is the subset of JSON Schema that Swagger 2.0 accepts.
type Schema struct {
	Ref        string             `json:"$ref,omitempty"`
	Type       string             `json:"type,omitempty"`
	Properties map[string]*Schema `json:"properties,omitempty"`
	Required   []string           `json:"required,omitempty"`
	Items      *Schema            `json:"items,omitempty"`
}

// Ref points at a named entry of Document.Definitions.
func Ref(name string) *Schema {
	return &Schema{Ref: "#/definitions/" + name}
}

// ArrayOf wraps item in an array schema.
func ArrayOf(item *Schema) *Schema {
	return &Schema{Type: "array", Items: item}
}

// Parameter is a path or query parameter. Request bodies go in Operation.Body.
type Parameter struct {
	Name        string  `json:"name"`
	In          string  `json:"in"`
	Type        string  `json:"type,omitempty"`
	Required    bool    `json:"required"`
	Description string  `json:"description,omitempty"`
	Schema      *Schema `json:"schema,omitempty"`
}

// Response documents one status code of an operation.
type Response struct {
	Status      int
	Description string
	Schema      *Schema
}

// Operation is the documentation half of a route table entry.
// Path uses {name} templates.
type Operation struct {
	Method      string
	Path        string
	OperationID string
	Summary     string
	Tags        []string
	Parameters  []Parameter
	Body        *Schema
	Responses   []Response
}

// Document is the rendered Swagger 2.0 specification.
type Document struct {
	Swagger     string                                 `json:"swagger"`
	Info        Info                                   `json:"info"`
	Consumes    []string                               `json:"consumes"`
	Produces    []string                               `json:"produces"`
	Paths       map[string]map[string]*operationObject `json:"paths"`
	Definitions map[string]*Schema                     `json:"definitions,omitempty"`
}

type responseObject struct {
	Description string  `json:"description"`
	Schema      *Schema `json:"schema,omitempty"`
}

type operationObject struct {
	OperationID string                     `json:"operationId,omitempty"`
	Summary     string                     `json:"summary,omitempty"`
	Tags        []string                   `json:"tags,omitempty"`
	Parameters  []Parameter                `json:"parameters,omitempty"`
	Responses   map[string]*responseObject `json:"responses"`
}

// Build renders ops into a document. definitions may be nil.
func Build(info Info, definitions map[string]*Schema, ops []Operation) *Document {
	doc := &Document{
		Swagger:     "2.0",
		Info:        info,
		Consumes:    []string{"application/json"},
		Produces:    []string{"application/json"},
		Paths:       map[string]map[string]*operationObject{},
		Definitions: definitions,
	}
	for _, op := range ops {
		item, ok := doc.Paths[op.Path]
		if !ok {
			item = map[string]*operationObject{}
			doc.Paths[op.Path] = item
		}
		o := &operationObject{
			OperationID: op.OperationID,
			Summary:     op.Summary,
			Tags:        op.Tags,
			Parameters:  append([]Parameter(nil), op.Parameters...),
			Responses:   make(map[string]*responseObject, len(op.Responses)),
		}
		if op.Body != nil {
			o.Parameters = append(o.Parameters, Parameter{Name: "body", In: "body", Required: true, Schema: op.Body})
		}
		for _, r := range op.Responses {
			o.Responses[strconv.Itoa(r.Status)] = &responseObject{Description: r.Description, Schema: r.Schema}
		}
		item[strings.ToLower(op.Method)] = o
	}
	return doc
}

// Endpoints lists "METHOD path" pairs present in the document, sorted.
func (d *Document) Endpoints() []string {
	var out []string
	for path, item := range d.Paths {
		for method := range item {
			out = append(out, strings.ToUpper(method)+" "+path)
		}
	}
	sort.Strings(out)
	return out
}

// Register mounts the JSON document and the UI page on r.
func Register(r gin.IRoutes, doc *Document) {
	r.GET(SpecPath, func(c *gin.Context) {
		c.JSON(http.StatusOK, doc)
	})
	r.GET(UIPath, func(c *gin.Context) {
		c.Header("Content-Type", "text/html; charset=utf-8")
		c.Status(http.StatusOK)
		_ = uiTemplate.Execute(c.Writer, struct {
			Title   string
			SpecURL string
		}{doc.Info.Title, SpecPath})
	})
}

var uiTemplate = template.Must(template.New("ui").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <title>{{.Title}}</title>
  <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css">
</head>
<body>
  <div id="swagger-ui"></div>
  <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
  <script>
    window.onload = function () {
      window.ui = SwaggerUIBundle({ url: "{{.SpecURL}}", dom_id: "#swagger-ui" });
    };
  </script>
</body>
</html>
`))
