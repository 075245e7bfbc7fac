package sharepoint

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/goccy/go-json"
)

// ResponseError is a non-2xx answer from SharePoint with whatever detail the
// OData error payload carried.
type ResponseError struct {
	StatusCode int
	Status     string
	Code       string
	Message    string
}

func (e *ResponseError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "sharepoint responded %s", e.Status)
	if e.Code != "" {
		fmt.Fprintf(&b, " (%s)", e.Code)
	}
	if e.Message != "" {
		fmt.Fprintf(&b, ": %s", e.Message)
	}
	return b.String()
}

// odataMessage accepts both {"value": "..."} and a bare string.
type odataMessage struct {
	Value string
}

func (m *odataMessage) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		m.Value = s
		return nil
	}
	var obj struct {
		Value string `json:"value"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	m.Value = obj.Value
	return nil
}

type odataError struct {
	Code    string       `json:"code"`
	Message odataMessage `json:"message"`
}

// verbose and nometadata responses use different envelope names.
type odataErrorEnvelope struct {
	Verbose *odataError `json:"odata.error"`
	Plain   *odataError `json:"error"`
}

func newResponseError(resp *http.Response, body []byte) *ResponseError {
	e := &ResponseError{StatusCode: resp.StatusCode, Status: resp.Status}

	var env odataErrorEnvelope
	if err := json.Unmarshal(body, &env); err == nil {
		detail := env.Verbose
		if detail == nil {
			detail = env.Plain
		}
		if detail != nil {
			e.Code = detail.Code
			e.Message = detail.Message.Value
			return e
		}
	}

	e.Message = strings.TrimSpace(string(body))
	return e
}
