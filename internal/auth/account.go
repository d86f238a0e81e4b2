// Package auth models the identity collaborator. Authentication itself is
// external: a trusted gateway fronting this service resolves the session and
// forwards the user id and capability grants as headers. This package only
// turns those values into a model.Account.
package auth

import (
	"strings"

	"legalapi/internal/model"
)

type account struct {
	id   string
	caps map[string]struct{}
}

var _ model.Account = (*account)(nil)

func (a *account) ID() string { return a.id }

func (a *account) IsAuthenticated() bool { return a.id != "" }

func (a *account) HasCapability(name string) bool {
	_, ok := a.caps[name]
	return ok
}

// Anonymous is the account of an unauthenticated caller. It holds no
// capabilities.
func Anonymous() model.Account {
	return &account{}
}

// FromHeaders builds an account from the trusted gateway headers: the user id
// and a comma-separated capability list. An empty user id yields an anonymous
// account regardless of capabilities.
func FromHeaders(userID, capabilities string) model.Account {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return Anonymous()
	}

	caps := make(map[string]struct{})
	for _, c := range strings.Split(capabilities, ",") {
		if c = strings.TrimSpace(c); c != "" {
			caps[c] = struct{}{}
		}
	}
	return &account{id: userID, caps: caps}
}

// IsAdmin reports whether the account may perform administrative operations.
func IsAdmin(a model.Account) bool {
	return a != nil && a.HasCapability(model.AdminPermission)
}
