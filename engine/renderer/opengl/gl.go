package opengl

import "strings"

// Core and EXT_memory_object tokens used by the external texture path.
const (
	NoError                     uint32 = 0
	InvalidEnum                 uint32 = 0x0500
	InvalidValue                uint32 = 0x0501
	InvalidOperation            uint32 = 0x0502
	OutOfMemory                 uint32 = 0x0505
	InvalidFramebufferOperation uint32 = 0x0506

	Vendor     uint32 = 0x1F00
	Version    uint32 = 0x1F02
	Extensions uint32 = 0x1F03

	MajorVersion  uint32 = 0x821B
	MinorVersion  uint32 = 0x821C
	NumExtensions uint32 = 0x821D

	Texture2D uint32 = 0x0DE1
	RGBA8     uint32 = 0x8058

	// GL_EXT_memory_object
	TextureTilingEXT          uint32 = 0x9580
	DedicatedMemoryObjectEXT  uint32 = 0x9581
	NumTilingTypesEXT         uint32 = 0x9582
	TilingTypesEXT            uint32 = 0x9583
	OptimalTilingEXT          uint32 = 0x9584
	LinearTilingEXT           uint32 = 0x9585
	NumDeviceUUIDsEXT         uint32 = 0x9596
	DeviceUUIDEXT             uint32 = 0x9597
	DriverUUIDEXT             uint32 = 0x9598
	// GL_EXT_memory_object_fd
	HandleTypeOpaqueFdEXT uint32 = 0x9586
)

// UUIDSize is GL_UUID_SIZE_EXT.
const UUIDSize = 16

// API is the slice of the GL surface the external texture subsystem
// touches. The cgo-backed Functions table implements it against a live
// context; tests substitute their own.
type API interface {
	// SupportsMemoryObject reports whether the EXT_memory_object(_fd)
	// entry points resolved on this context.
	SupportsMemoryObject() bool

	GetError() uint32
	GetString(name uint32) string
	GetStringi(name, index uint32) string
	GetIntegerv(pname uint32) int32
	GetUnsignedBytei(target, index uint32, buf []byte)
	GetInternalformativ(target, internalformat, pname uint32, params []int32)

	CreateMemoryObjects(n int32) []uint32
	DeleteMemoryObjects(ids []uint32)
	ImportMemoryFd(memory uint32, size uint64, handleType uint32, fd int32)

	GenTextures(n int32) []uint32
	DeleteTextures(ids []uint32)
	BindTexture(target, texture uint32)
	TexParameteri(target, pname uint32, param int32)
	TexStorageMem2D(target uint32, levels int32, internalformat uint32, width, height int32, memory uint32, offset uint64)
}

// ErrorString translates a glGetError value for logging.
func ErrorString(err uint32) string {
	switch err {
	case NoError:
		return "GL_NO_ERROR"
	case InvalidEnum:
		return "GL_INVALID_ENUM"
	case InvalidValue:
		return "GL_INVALID_VALUE"
	case InvalidOperation:
		return "GL_INVALID_OPERATION"
	case OutOfMemory:
		return "GL_OUT_OF_MEMORY"
	case InvalidFramebufferOperation:
		return "GL_INVALID_FRAMEBUFFER_OPERATION"
	default:
		return "Unknown GLError"
	}
}

// ExtensionSet enumerates the extension strings of the current
// context. Contexts at 3.0 or later report them indexed, older ones as
// one space-separated string.
func ExtensionSet(api API) map[string]bool {
	out := map[string]bool{}
	if major := api.GetIntegerv(MajorVersion); major >= 3 {
		n := api.GetIntegerv(NumExtensions)
		for i := int32(0); i < n; i++ {
			out[api.GetStringi(Extensions, uint32(i))] = true
		}
		return out
	}
	// Legacy path, glGetIntegerv(GL_MAJOR_VERSION) itself errors below
	// 3.0 so clear the flag before moving on.
	api.GetError()
	for _, ext := range strings.Fields(api.GetString(Extensions)) {
		out[ext] = true
	}
	return out
}
