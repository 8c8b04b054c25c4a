package opengl

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseVersion(t *testing.T) {
	tests := []struct {
		in    string
		major int
		minor int
		es    bool
	}{
		{"4.6.0 NVIDIA 535.86.05", 4, 6, false},
		{"3.2.0", 3, 2, false},
		{"4.6 (Core Profile) Mesa 23.1.4", 4, 6, false},
		{"OpenGL ES 3.2 Mesa 23.1.4", 3, 2, true},
		{"OpenGL ES-CM 1.1", 1, 1, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			v, err := ParseVersion(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.major, v.Major)
			assert.Equal(t, tt.minor, v.Minor)
			assert.Equal(t, tt.es, v.ES)
		})
	}

	_, err := ParseVersion("garbage")
	assert.Error(t, err)
}

func TestVersionAtLeast(t *testing.T) {
	v := VersionInfo{Major: 4, Minor: 2}
	assert.True(t, v.AtLeast(4, 2))
	assert.True(t, v.AtLeast(3, 3))
	assert.False(t, v.AtLeast(4, 3))
	assert.False(t, v.AtLeast(5, 0))
}

func TestErrorString(t *testing.T) {
	assert.Equal(t, "GL_NO_ERROR", ErrorString(NoError))
	assert.Equal(t, "GL_INVALID_ENUM", ErrorString(InvalidEnum))
	assert.Equal(t, "GL_OUT_OF_MEMORY", ErrorString(OutOfMemory))
	assert.Equal(t, "Unknown GLError", ErrorString(0xFFFF))
}

// stringsAPI serves just enough of API for ExtensionSet.
type stringsAPI struct {
	API
	major int32
	exts  []string
}

func (s *stringsAPI) GetIntegerv(pname uint32) int32 {
	switch pname {
	case MajorVersion:
		return s.major
	case NumExtensions:
		return int32(len(s.exts))
	}
	return 0
}

func (s *stringsAPI) GetStringi(name, index uint32) string {
	return s.exts[index]
}

func (s *stringsAPI) GetString(name uint32) string {
	return strings.Join(s.exts, " ")
}

func (s *stringsAPI) GetError() uint32 { return NoError }

func TestExtensionSetIndexed(t *testing.T) {
	api := &stringsAPI{major: 4, exts: []string{"GL_EXT_memory_object", "GL_EXT_semaphore"}}
	set := ExtensionSet(api)
	assert.True(t, set["GL_EXT_memory_object"])
	assert.True(t, set["GL_EXT_semaphore"])
	assert.False(t, set["GL_EXT_memory_object_fd"])
}

func TestExtensionSetLegacy(t *testing.T) {
	api := &stringsAPI{major: 2, exts: []string{"GL_EXT_memory_object", "GL_EXT_semaphore"}}
	set := ExtensionSet(api)
	assert.True(t, set["GL_EXT_memory_object"])
	assert.True(t, set["GL_EXT_semaphore"])
	assert.Len(t, set, 2)
}
