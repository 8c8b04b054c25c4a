package opengl

import (
	"fmt"
	"strings"
)

// VersionInfo is the parsed GL_VERSION of a context.
type VersionInfo struct {
	Major int
	Minor int
	ES    bool
}

// ParseVersion reads the version out of a GL_VERSION string. Desktop
// strings start with "<major>.<minor>", ES ones carry an
// "OpenGL ES[-profile] " prefix before the number.
func ParseVersion(version string) (VersionInfo, error) {
	v := VersionInfo{}
	s := version
	if strings.HasPrefix(s, "OpenGL ES") {
		v.ES = true
		s = strings.TrimPrefix(s, "OpenGL ES")
		s = strings.TrimPrefix(s, "-CM")
		s = strings.TrimPrefix(s, "-CL")
		s = strings.TrimSpace(s)
	}
	if _, err := fmt.Sscanf(s, "%d.%d", &v.Major, &v.Minor); err != nil {
		return v, fmt.Errorf("func ParseVersion - unparseable GL_VERSION '%s': %w", version, err)
	}
	return v, nil
}

// AtLeast reports whether the context reaches the given desktop
// version, or ES major version when the context is ES.
func (v VersionInfo) AtLeast(major, minor int) bool {
	return v.Major > major || (v.Major == major && v.Minor >= minor)
}
