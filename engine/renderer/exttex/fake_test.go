package exttex

import (
	"fmt"
	"strings"

	"github.com/glowpaper/glowpaper/engine/renderer/opengl"
)

// fakeAPI is a scriptable stand-in for a GL context. Error codes are
// queued explicitly, object ids are handed out sequentially and every
// mutating call is recorded for assertions.
type fakeAPI struct {
	major      int32
	version    string
	vendor     string
	extensions []string

	numUUIDs int32
	uuid     [opengl.UUIDSize]byte
	tilings  []int32

	// extension string advertised but entry points unresolved
	missingProcs bool

	// errors queued for glGetError, popped one per call
	errQueue []uint32
	// error pushed when ImportMemoryFd / TexStorageMem2D run
	importErr  uint32
	storageErr uint32

	nextID       uint32
	liveMemObjs  map[uint32]bool
	liveTextures map[uint32]bool
	importedFDs  []int32
	tilingParams []int32
	bound        uint32
	calls        []string
}

func newFakeAPI(version string, major int32, vendor string) *fakeAPI {
	return &fakeAPI{
		major:   major,
		version: version,
		vendor:  vendor,
		extensions: []string{
			"GL_EXT_memory_object", "GL_EXT_memory_object_fd", "GL_EXT_semaphore",
		},
		numUUIDs:     1,
		uuid:         [opengl.UUIDSize]byte{0xde, 0xad, 0xbe, 0xef},
		tilings:      []int32{int32(opengl.OptimalTilingEXT), int32(opengl.LinearTilingEXT)},
		liveMemObjs:  map[uint32]bool{},
		liveTextures: map[uint32]bool{},
	}
}

func (f *fakeAPI) record(format string, args ...interface{}) {
	f.calls = append(f.calls, fmt.Sprintf(format, args...))
}

func (f *fakeAPI) SupportsMemoryObject() bool {
	return !f.missingProcs
}

func (f *fakeAPI) GetError() uint32 {
	if len(f.errQueue) == 0 {
		return opengl.NoError
	}
	err := f.errQueue[0]
	f.errQueue = f.errQueue[1:]
	return err
}

func (f *fakeAPI) GetString(name uint32) string {
	switch name {
	case opengl.Version:
		return f.version
	case opengl.Vendor:
		return f.vendor
	case opengl.Extensions:
		return strings.Join(f.extensions, " ")
	}
	return ""
}

func (f *fakeAPI) GetStringi(name, index uint32) string {
	if name == opengl.Extensions && int(index) < len(f.extensions) {
		return f.extensions[index]
	}
	return ""
}

func (f *fakeAPI) GetIntegerv(pname uint32) int32 {
	switch pname {
	case opengl.MajorVersion:
		return f.major
	case opengl.NumExtensions:
		return int32(len(f.extensions))
	case opengl.NumDeviceUUIDsEXT:
		return f.numUUIDs
	}
	return 0
}

func (f *fakeAPI) GetUnsignedBytei(target, index uint32, buf []byte) {
	if target == opengl.DeviceUUIDEXT {
		copy(buf, f.uuid[:])
	}
}

func (f *fakeAPI) GetInternalformativ(target, internalformat, pname uint32, params []int32) {
	switch pname {
	case opengl.NumTilingTypesEXT:
		params[0] = int32(len(f.tilings))
	case opengl.TilingTypesEXT:
		copy(params, f.tilings)
	}
}

func (f *fakeAPI) CreateMemoryObjects(n int32) []uint32 {
	ids := make([]uint32, n)
	for i := range ids {
		f.nextID++
		ids[i] = f.nextID
		f.liveMemObjs[f.nextID] = true
	}
	f.record("CreateMemoryObjects(%d)", n)
	return ids
}

func (f *fakeAPI) DeleteMemoryObjects(ids []uint32) {
	for _, id := range ids {
		delete(f.liveMemObjs, id)
	}
	f.record("DeleteMemoryObjects(%v)", ids)
}

func (f *fakeAPI) ImportMemoryFd(memory uint32, size uint64, handleType uint32, fd int32) {
	f.importedFDs = append(f.importedFDs, fd)
	if f.importErr != 0 {
		f.errQueue = append(f.errQueue, f.importErr)
	}
	f.record("ImportMemoryFd(%d, %d, %d)", memory, size, fd)
}

func (f *fakeAPI) GenTextures(n int32) []uint32 {
	ids := make([]uint32, n)
	for i := range ids {
		f.nextID++
		ids[i] = f.nextID
		f.liveTextures[f.nextID] = true
	}
	f.record("GenTextures(%d)", n)
	return ids
}

func (f *fakeAPI) DeleteTextures(ids []uint32) {
	for _, id := range ids {
		delete(f.liveTextures, id)
	}
	f.record("DeleteTextures(%v)", ids)
}

func (f *fakeAPI) BindTexture(target, texture uint32) {
	f.bound = texture
}

func (f *fakeAPI) TexParameteri(target, pname uint32, param int32) {
	if pname == opengl.TextureTilingEXT {
		f.tilingParams = append(f.tilingParams, param)
	}
	f.record("TexParameteri(%d, %d)", pname, param)
}

func (f *fakeAPI) TexStorageMem2D(target uint32, levels int32, internalformat uint32, width, height int32, memory uint32, offset uint64) {
	if f.storageErr != 0 {
		f.errQueue = append(f.errQueue, f.storageErr)
	}
	f.record("TexStorageMem2D(%dx%d, mem=%d)", width, height, memory)
}

// fakeHost simulates the windowing layer: LoadFunctions resolves
// against whichever fake context is "current".
type fakeHost struct {
	primary *fakeAPI
	shared  *fakeAPI

	active *fakeAPI

	loadCalls   int
	createCalls int
	createErr   error
	bindErr     error
}

func newFakeHost(primary *fakeAPI) *fakeHost {
	return &fakeHost{primary: primary, active: primary}
}

func (h *fakeHost) LoadFunctions() (opengl.API, error) {
	h.loadCalls++
	return h.active, nil
}

func (h *fakeHost) CreateSharedContext(major, minor int) (SharedContext, error) {
	h.createCalls++
	if h.createErr != nil {
		return nil, h.createErr
	}
	return &fakeShared{host: h}, nil
}

type fakeShared struct {
	host      *fakeHost
	boundNow  bool
	binds     int
	destroyed bool
}

func (s *fakeShared) Bind() (func(), error) {
	if s.host.bindErr != nil {
		return nil, s.host.bindErr
	}
	s.binds++
	s.boundNow = true
	prev := s.host.active
	s.host.active = s.host.shared
	return func() {
		s.boundNow = false
		s.host.active = prev
	}, nil
}

func (s *fakeShared) Destroy() {
	s.destroyed = true
}
