package enterprise

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func postAction(t *testing.T, body string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.POST("/api/enterprise", ManageOrganization)

	req := httptest.NewRequest(http.MethodPost, "/api/enterprise", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestManageOrganizationRejectsUnknownAction(t *testing.T) {
	w := postAction(t, `{"action":"explode"}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("unknown action: got status %d, want %d", w.Code, http.StatusBadRequest)
	}
}

func TestManageOrganizationRejectsMissingAction(t *testing.T) {
	w := postAction(t, `{}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("missing action: got status %d, want %d", w.Code, http.StatusBadRequest)
	}
}

func TestManageOrganizationActionNames(t *testing.T) {
	// accept_invitation is deliberately absent: joining happens on
	// /api/enterprise/join, which sits outside the enterprise tier guard.
	want := []string{
		"create_organization",
		"invite_member",
		"remove_member",
		"update_role",
		"create_learning_path",
		"update_sso",
	}
	for _, action := range want {
		if !orgActions[action] {
			t.Errorf("action %q missing from the dispatcher", action)
		}
	}
	if len(orgActions) != len(want) {
		t.Errorf("dispatcher has %d actions, want %d", len(orgActions), len(want))
	}
	if orgActions["accept_invitation"] {
		t.Error("accept_invitation must go through /api/enterprise/join only")
	}
}
