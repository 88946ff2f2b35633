package response

import (
	"bytes"
	"fmt"
	"net/http"
	"sync"

	"github.com/goccy/go-json"
	"github.com/labstack/echo/v4"
)

// Buffer pool for JSON encoding
var bufferPool = sync.Pool{
	New: func() any {
		return &bytes.Buffer{}
	},
}

func getBuffer() *bytes.Buffer {
	buf := bufferPool.Get().(*bytes.Buffer)
	buf.Reset()
	return buf
}

// putBuffer returns buf to the pool unless it grew past 64KB
func putBuffer(buf *bytes.Buffer) {
	const maxBufferSize = 64 * 1024
	if buf.Cap() < maxBufferSize {
		bufferPool.Put(buf)
	}
}

// fastJSON encodes obj with goccy/go-json into a pooled buffer and writes it
func fastJSON(c echo.Context, code int, obj any) error {
	buf := getBuffer()
	defer putBuffer(buf)

	if err := json.NewEncoder(buf).Encode(obj); err != nil {
		return err
	}

	c.Response().Header().Set(echo.HeaderContentType, echo.MIMEApplicationJSONCharsetUTF8)
	c.Response().WriteHeader(code)
	_, err := c.Response().Write(buf.Bytes())
	return err
}

// MessageBody is the {"message": ...} shape every status reply uses
type MessageBody struct {
	Message string `json:"message"`
}

// JSON writes data as-is. A nil document is written as null.
func JSON(c echo.Context, code int, data any) error {
	return fastJSON(c, code, data)
}

// OK writes data with 200
func OK(c echo.Context, data any) error {
	return fastJSON(c, http.StatusOK, data)
}

// Message writes {"message": msg}
func Message(c echo.Context, code int, msg string) error {
	return fastJSON(c, code, MessageBody{Message: msg})
}

// JSONSerializer plugs goccy/go-json into echo's binder and c.JSON
type JSONSerializer struct{}

// Serialize encodes i for c.JSON
func (JSONSerializer) Serialize(c echo.Context, i any, indent string) error {
	enc := json.NewEncoder(c.Response())
	if indent != "" {
		enc.SetIndent("", indent)
	}
	return enc.Encode(i)
}

// Deserialize decodes the request body into i
func (JSONSerializer) Deserialize(c echo.Context, i any) error {
	err := json.NewDecoder(c.Request().Body).Decode(i)
	if ute, ok := err.(*json.UnmarshalTypeError); ok {
		return echo.NewHTTPError(http.StatusBadRequest,
			fmt.Sprintf("Unmarshal type error: expected=%v, got=%v, field=%v, offset=%v", ute.Type, ute.Value, ute.Field, ute.Offset)).SetInternal(err)
	} else if se, ok := err.(*json.SyntaxError); ok {
		return echo.NewHTTPError(http.StatusBadRequest,
			fmt.Sprintf("Syntax error: offset=%v, error=%v", se.Offset, se.Error())).SetInternal(err)
	}
	return err
}
