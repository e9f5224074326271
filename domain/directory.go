package domain

import (
	"chat-sim/errors"
	"fmt"
	"strings"

	"github.com/samber/lo"
)

// Directory resolves display names and the counterpart identity answering
// on behalf of "the other side" of a conversation.
type Directory struct {
	identities   []Identity
	counterparts map[Role]Role
	fallback     Role
}

// DefaultDirectory is the two-identity directory: a user and a staff member
// answering each other.
func DefaultDirectory() Directory {
	return Directory{
		identities: []Identity{
			{ID: "1", Name: "John Doe", Role: RoleUser},
			{ID: "2", Name: "Sarah Chen", Role: RoleStaff},
		},
		counterparts: map[Role]Role{RoleUser: RoleStaff, RoleStaff: RoleUser},
		fallback:     RoleStaff,
	}
}

// NewDirectory checks that every counterpart role, and the fallback used for
// unknown roles, is backed by at least one identity.
func NewDirectory(identities []Identity, counterparts map[Role]Role, fallback Role) (Directory, error) {
	if len(identities) == 0 {
		return Directory{}, fmt.Errorf("%w: no identities", errors.ErrInvalidDirectory)
	}
	roles := lo.Map(identities, func(i Identity, _ int) Role { return i.Role })
	for from, to := range counterparts {
		if !lo.Contains(roles, to) {
			return Directory{}, fmt.Errorf("%w: counterpart %q of %q has no identity", errors.ErrInvalidDirectory, to, from)
		}
	}
	if !lo.Contains(roles, fallback) {
		return Directory{}, fmt.Errorf("%w: fallback role %q has no identity", errors.ErrInvalidDirectory, fallback)
	}
	return Directory{identities: identities, counterparts: counterparts, fallback: fallback}, nil
}

// ParseDirectory reads "id:name:role" entries separated by commas.
// Roles answer each other in order of first appearance, the last one
// answering the first. Unknown roles are answered by the counterpart of
// the first role.
func ParseDirectory(raw string) (Directory, error) {
	var identities []Identity
	for _, entry := range strings.Split(raw, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		parts := strings.Split(entry, ":")
		if len(parts) != 3 || parts[0] == "" || parts[2] == "" {
			return Directory{}, fmt.Errorf("%w: malformed entry %q", errors.ErrInvalidDirectory, entry)
		}
		identities = append(identities, Identity{
			ID:   strings.TrimSpace(parts[0]),
			Name: strings.TrimSpace(parts[1]),
			Role: Role(strings.TrimSpace(parts[2])),
		})
	}
	if len(identities) == 0 {
		return Directory{}, fmt.Errorf("%w: no identities", errors.ErrInvalidDirectory)
	}

	roles := lo.Uniq(lo.Map(identities, func(i Identity, _ int) Role { return i.Role }))
	counterparts := make(map[Role]Role, len(roles))
	for i, role := range roles {
		counterparts[role] = roles[(i+1)%len(roles)]
	}
	return NewDirectory(identities, counterparts, counterparts[roles[0]])
}

// Name returns the display name of a known id, "User {id}" otherwise.
func (d Directory) Name(id string) string {
	if identity, ok := lo.Find(d.identities, func(i Identity) bool { return i.ID == id }); ok {
		return identity.Name
	}
	return fmt.Sprintf("User %s", id)
}

// Counterpart returns the identity answering a participant of the given role.
func (d Directory) Counterpart(role Role) Identity {
	target, ok := d.counterparts[role]
	if !ok {
		target = d.fallback
	}
	identity, _ := lo.Find(d.identities, func(i Identity) bool { return i.Role == target })
	return identity
}

func (d Directory) Identities() []Identity {
	return append([]Identity(nil), d.identities...)
}
