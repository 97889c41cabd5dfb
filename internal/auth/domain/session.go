package domain

import "time"

// Session is issued at registration and login. The identifier is
// allocated by storage and never client-supplied; the session is
// implicitly invalid once the expiry passes.
type Session struct {
	ID          string
	UserID      string
	Fingerprint []byte
	CreatedAt   time.Time
	ExpiresAt   time.Time
}

// EmptyFingerprint is the reserved device/client-binding payload.
// Nothing populates it yet.
func EmptyFingerprint() []byte {
	return []byte("{}")
}

func (s Session) ExpiredAt(now time.Time) bool {
	return now.After(s.ExpiresAt)
}
