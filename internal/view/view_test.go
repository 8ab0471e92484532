package view

import (
	"testing"

	"github.com/stemsi/orgportal-backend/internal/model"
)

func TestResolve(t *testing.T) {
	student := &Session{Role: model.RoleStudent}
	coordinator := &Session{Role: model.RoleCoordinator}
	officer := &Session{Role: model.RoleOfficer}

	tests := []struct {
		name string
		tag  Tag
		sess *Session
		want Panel
	}{
		// Unguarded views resolve regardless of session.
		{"home logged out", TagHome, nil, PanelHome},
		{"home as officer", TagHome, officer, PanelHome},
		{"programs logged out", TagPrograms, nil, PanelPrograms},
		{"login logged out", TagLogin, nil, PanelLogin},
		{"login as student", TagLogin, student, PanelLogin},

		// Student view.
		{"student view as student", TagStudent, student, PanelStudent},
		{"student view as coordinator", TagStudent, coordinator, PanelLogin},
		{"student view logged out", TagStudent, nil, PanelLogin},

		// Coordinator view admits officers too.
		{"coordinator view as coordinator", TagCoordinator, coordinator, PanelCoordinator},
		{"coordinator view as officer", TagCoordinator, officer, PanelCoordinator},
		{"coordinator view as student", TagCoordinator, student, PanelLogin},
		{"coordinator view logged out", TagCoordinator, nil, PanelLogin},

		// Officer view admits officers only.
		{"officer view as officer", TagOfficer, officer, PanelOfficer},
		{"officer view as coordinator", TagOfficer, coordinator, PanelLogin},
		{"officer view as student", TagOfficer, student, PanelLogin},
		{"officer view logged out", TagOfficer, nil, PanelLogin},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Resolve(tt.tag, tt.sess); got != tt.want {
				t.Errorf("Resolve(%q, %v) = %q, want %q", tt.tag, tt.sess, got, tt.want)
			}
		})
	}
}

func TestParseTag(t *testing.T) {
	for _, raw := range []string{"home", "programs", "login", "student", "coordinator", "officer"} {
		if _, ok := ParseTag(raw); !ok {
			t.Errorf("ParseTag(%q) not ok, want ok", raw)
		}
	}
	for _, raw := range []string{"", "admin", "dashboard", "Home"} {
		if _, ok := ParseTag(raw); ok {
			t.Errorf("ParseTag(%q) ok, want not ok", raw)
		}
	}
}
