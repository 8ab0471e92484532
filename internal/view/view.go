// Package view maps a requested view tag plus the current session to exactly
// one renderable panel. Resolve is a pure function; the client re-evaluates
// it on every navigation.
package view

import (
	"github.com/stemsi/orgportal-backend/internal/model"
)

// Tag is the closed set of top-level views the client can request.
type Tag string

const (
	TagHome        Tag = "home"
	TagPrograms    Tag = "programs"
	TagLogin       Tag = "login"
	TagStudent     Tag = "student"
	TagCoordinator Tag = "coordinator"
	TagOfficer     Tag = "officer"
)

// Panel is the closed set of renderable panels.
type Panel string

const (
	PanelHome        Panel = "home"
	PanelPrograms    Panel = "programs"
	PanelLogin       Panel = "login"
	PanelStudent     Panel = "student"
	PanelCoordinator Panel = "coordinator"
	PanelOfficer     Panel = "officer"
)

// Session is the authenticated state Resolve consults. Nil means logged out.
type Session struct {
	Role model.Role
}

// allowedRoles maps each protected view to the roles that may open it.
// The coordinator view also admits officers.
var allowedRoles = map[Tag][]model.Role{
	TagStudent:     {model.RoleStudent},
	TagCoordinator: {model.RoleCoordinator, model.RoleOfficer},
	TagOfficer:     {model.RoleOfficer},
}

// ParseTag validates a raw tag string.
func ParseTag(raw string) (Tag, bool) {
	switch Tag(raw) {
	case TagHome, TagPrograms, TagLogin, TagStudent, TagCoordinator, TagOfficer:
		return Tag(raw), true
	}
	return "", false
}

// Resolve returns the single panel to render for the given tag and session.
// Unguarded tags resolve directly; protected tags resolve to their panel only
// when the session's role is in the view's allowed set, and to the login
// panel otherwise.
func Resolve(tag Tag, sess *Session) Panel {
	switch tag {
	case TagHome:
		return PanelHome
	case TagPrograms:
		return PanelPrograms
	case TagLogin:
		return PanelLogin
	}

	roles, ok := allowedRoles[tag]
	if !ok {
		return PanelLogin
	}
	if sess == nil {
		return PanelLogin
	}
	for _, r := range roles {
		if sess.Role == r {
			return Panel(tag)
		}
	}
	return PanelLogin
}
