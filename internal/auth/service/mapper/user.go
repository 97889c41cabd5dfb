package mapper

import (
	authdomain "github.com/chatter-app/chatter/backend/internal/auth/domain"
	"github.com/chatter-app/chatter/backend/internal/domain"
)

// ToPublicProfile projects a stored user onto its public-safe shape.
// The stored display name is re-validated through the bounded
// constructor and dropped if it no longer fits.
func ToPublicProfile(user authdomain.User) authdomain.PublicUserProfile {
	var displayName *string
	if user.DisplayName != nil {
		if validated, err := domain.NewDisplayName(*user.DisplayName); err == nil {
			value := validated.String()
			displayName = &value
		}
	}

	return authdomain.PublicUserProfile{
		ID:           user.ID,
		DisplayName:  displayName,
		Handle:       user.Handle,
		ProfileImage: nil,
		CreatedAt:    user.CreatedAt,
		AmFollowing:  false,
	}
}
