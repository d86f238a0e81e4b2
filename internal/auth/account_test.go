package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"legalapi/internal/model"
)

func TestFromHeaders(t *testing.T) {
	tests := []struct {
		name          string
		userID        string
		capabilities  string
		authenticated bool
		hasCap        string
		lacksCap      string
	}{
		{
			name:          "authenticated with capabilities",
			userID:        "alice",
			capabilities:  "legal re-accept tos, administer entity legal",
			authenticated: true,
			hasCap:        "legal re-accept tos",
			lacksCap:      "legal re-accept privacy",
		},
		{
			name:          "empty user id is anonymous",
			userID:        "",
			capabilities:  "administer entity legal",
			authenticated: false,
			lacksCap:      "administer entity legal",
		},
		{
			name:          "whitespace user id is anonymous",
			userID:        "   ",
			authenticated: false,
		},
		{
			name:          "no capabilities",
			userID:        "bob",
			authenticated: true,
			lacksCap:      "legal re-accept tos",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := FromHeaders(tt.userID, tt.capabilities)

			assert.Equal(t, tt.authenticated, a.IsAuthenticated())
			if tt.hasCap != "" {
				assert.True(t, a.HasCapability(tt.hasCap))
			}
			if tt.lacksCap != "" {
				assert.False(t, a.HasCapability(tt.lacksCap))
			}
		})
	}
}

func TestIsAdmin(t *testing.T) {
	admin := FromHeaders("root", model.AdminPermission)
	user := FromHeaders("alice", "legal re-accept tos")

	assert.True(t, IsAdmin(admin))
	assert.False(t, IsAdmin(user))
	assert.False(t, IsAdmin(Anonymous()))
	assert.False(t, IsAdmin(nil))
}

func TestAnonymous(t *testing.T) {
	a := Anonymous()

	assert.Empty(t, a.ID())
	assert.False(t, a.IsAuthenticated())
	assert.False(t, a.HasCapability("anything"))
}
