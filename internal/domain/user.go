package domain

const (
	HandleMaxChars      = 30
	DisplayNameMaxChars = 30
)

// Handle is the unique public username used for account lookup. It can
// only be obtained through NewHandle, so a value exceeding the limit
// never exists.
type Handle struct {
	value string
}

func NewHandle(raw string) (Handle, error) {
	if err := checkMaxChars("Username", raw, HandleMaxChars); err != nil {
		return Handle{}, err
	}
	return Handle{value: raw}, nil
}

func (h Handle) String() string {
	return h.value
}

// DisplayName is the optional name shown instead of the handle.
type DisplayName struct {
	value string
}

func NewDisplayName(raw string) (DisplayName, error) {
	if err := checkMaxChars("Display name", raw, DisplayNameMaxChars); err != nil {
		return DisplayName{}, err
	}
	return DisplayName{value: raw}, nil
}

func (d DisplayName) String() string {
	return d.value
}
