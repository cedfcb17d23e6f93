package notify

// Permission is the user's decision about desktop notifications.
type Permission string

const (
	PermissionDefault Permission = "default"
	PermissionGranted Permission = "granted"
	PermissionDenied  Permission = "denied"
)

// Valid reports whether permission is a known state.
func (permission Permission) Valid() bool {
	switch permission {
	case PermissionDefault, PermissionGranted, PermissionDenied:
		return true
	default:
		return false
	}
}
