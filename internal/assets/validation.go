package assets

import "fmt"

// maxNameLen bounds style and template names; they end up in file names.
const maxNameLen = 64

// checkName rejects asset names that could not be a plain file stem:
// empty names, anything outside [a-z0-9_-], and names starting with a dash.
// kind ("style" or "template") only feeds the error message.
func checkName(kind, name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty %s name", ErrInvalidAssetName, kind)
	}
	if len(name) > maxNameLen {
		return fmt.Errorf("%w: %s name longer than %d bytes", ErrInvalidAssetName, kind, maxNameLen)
	}
	if name[0] == '-' {
		return fmt.Errorf("%w: %s %q starts with a dash", ErrInvalidAssetName, kind, name)
	}
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '_':
		default:
			return fmt.Errorf("%w: %s %q contains %q", ErrInvalidAssetName, kind, name, r)
		}
	}
	return nil
}
