package httpapi

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// bindBody decodes the JSON body into dst and answers 400 on failure.
// The body must hold exactly one JSON value; trailing data is rejected.
func bindBody(c *gin.Context, dst any) bool {
	raw, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return false
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": msgEmptyBody})
		return false
	}
	if !json.Valid(raw) {
		c.JSON(http.StatusBadRequest, gin.H{"error": msgMalformed})
		return false
	}
	if err := binding.JSON.BindBody(raw, dst); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": describeBindError(err)})
		return false
	}
	return true
}

const (
	msgEmptyBody = "invalid request body: empty body"
	msgMalformed = "invalid request body: malformed JSON"
)

func describeBindError(err error) string {
	var (
		verrs  validator.ValidationErrors
		typErr *json.UnmarshalTypeError
		synErr *json.SyntaxError
	)
	switch {
	case errors.As(err, &verrs):
		missing := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			missing = append(missing, fe.Field())
		}
		if len(missing) == 1 {
			return "missing required field: " + missing[0]
		}
		return "missing required fields: " + strings.Join(missing, ", ")
	case errors.Is(err, io.EOF):
		return msgEmptyBody
	case errors.As(err, &typErr):
		if typErr.Field == "" {
			return "invalid request body: expected a JSON object"
		}
		return fmt.Sprintf("invalid request body: field %s must be %s", typErr.Field, jsonKind(typErr.Type.Kind().String()))
	case errors.As(err, &synErr):
		return fmt.Sprintf("invalid request body: malformed JSON at offset %d", synErr.Offset)
	default:
		return "invalid request body: " + err.Error()
	}
}

// jsonKind names a Go kind the way a JSON client thinks of it.
func jsonKind(kind string) string {
	switch {
	case strings.HasPrefix(kind, "int"), strings.HasPrefix(kind, "uint"):
		return "an integer"
	case kind == "string":
		return "a string"
	default:
		return kind
	}
}
