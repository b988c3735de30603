package response_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/Tiliavir/campus-timetable/internal/response"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func serve(t *testing.T, h gin.HandlerFunc, reqID string) (*httptest.ResponseRecorder, response.Response) {
	t.Helper()
	r := gin.New()
	r.Use(response.RequestIDMiddleware())
	r.GET("/", h)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if reqID != "" {
		req.Header.Set("X-Request-ID", reqID)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var body response.Response
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decoding %s: %v", w.Body.String(), err)
	}
	return w, body
}

func TestRequestIDReused(t *testing.T) {
	w, body := serve(t, func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"ok": true})
	}, "req-42")

	if got := w.Header().Get("X-Request-ID"); got != "req-42" {
		t.Errorf("X-Request-ID = %q, want req-42", got)
	}
	if body.Metadata.RequestID != "req-42" {
		t.Errorf("metadata request_id = %q", body.Metadata.RequestID)
	}
	if body.Error != nil {
		t.Errorf("success carried error %+v", body.Error)
	}
}

func TestRequestIDGenerated(t *testing.T) {
	w, body := serve(t, func(c *gin.Context) {
		response.Success(c, http.StatusOK, nil)
	}, "")
	if w.Header().Get("X-Request-ID") == "" || body.Metadata.RequestID != w.Header().Get("X-Request-ID") {
		t.Errorf("generated id header %q, metadata %q", w.Header().Get("X-Request-ID"), body.Metadata.RequestID)
	}
}

func TestFailWithFields(t *testing.T) {
	w, body := serve(t, func(c *gin.Context) {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, map[string]string{"room": "教室为必填字段"})
	}, "")

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d", w.Code)
	}
	if body.Error == nil || body.Error.Code != response.ErrValidation {
		t.Fatalf("error = %+v", body.Error)
	}
	if body.Error.Message != response.GetMessage(response.ErrValidation) {
		t.Errorf("message = %q", body.Error.Message)
	}
	if body.Error.Fields["room"] != "教室为必填字段" {
		t.Errorf("fields = %v", body.Error.Fields)
	}
}

func TestGetMessageUnknown(t *testing.T) {
	if got := response.GetMessage("NOPE"); got != "发生未知错误。" {
		t.Errorf("GetMessage(unknown) = %q", got)
	}
}
