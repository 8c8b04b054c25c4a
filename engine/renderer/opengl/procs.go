package opengl

/*
#include <stdint.h>

typedef unsigned int GLenum;
typedef unsigned int GLuint;
typedef int GLint;
typedef int GLsizei;
typedef unsigned char GLubyte;
typedef unsigned long long GLuint64;

static GLenum gp_glGetError(uintptr_t fp) {
	return ((GLenum (*)(void))fp)();
}
static const GLubyte *gp_glGetString(uintptr_t fp, GLenum name) {
	return ((const GLubyte *(*)(GLenum))fp)(name);
}
static const GLubyte *gp_glGetStringi(uintptr_t fp, GLenum name, GLuint index) {
	return ((const GLubyte *(*)(GLenum, GLuint))fp)(name, index);
}
static void gp_glGetIntegerv(uintptr_t fp, GLenum pname, GLint *data) {
	((void (*)(GLenum, GLint *))fp)(pname, data);
}
static void gp_glGetUnsignedBytei_vEXT(uintptr_t fp, GLenum target, GLuint index, GLubyte *data) {
	((void (*)(GLenum, GLuint, GLubyte *))fp)(target, index, data);
}
static void gp_glGetInternalformativ(uintptr_t fp, GLenum target, GLenum internalformat, GLenum pname, GLsizei count, GLint *params) {
	((void (*)(GLenum, GLenum, GLenum, GLsizei, GLint *))fp)(target, internalformat, pname, count, params);
}
static void gp_glCreateMemoryObjectsEXT(uintptr_t fp, GLsizei n, GLuint *memoryObjects) {
	((void (*)(GLsizei, GLuint *))fp)(n, memoryObjects);
}
static void gp_glDeleteMemoryObjectsEXT(uintptr_t fp, GLsizei n, const GLuint *memoryObjects) {
	((void (*)(GLsizei, const GLuint *))fp)(n, memoryObjects);
}
static void gp_glImportMemoryFdEXT(uintptr_t fp, GLuint memory, GLuint64 size, GLenum handleType, GLint fd) {
	((void (*)(GLuint, GLuint64, GLenum, GLint))fp)(memory, size, handleType, fd);
}
static void gp_glGenTextures(uintptr_t fp, GLsizei n, GLuint *textures) {
	((void (*)(GLsizei, GLuint *))fp)(n, textures);
}
static void gp_glDeleteTextures(uintptr_t fp, GLsizei n, const GLuint *textures) {
	((void (*)(GLsizei, const GLuint *))fp)(n, textures);
}
static void gp_glBindTexture(uintptr_t fp, GLenum target, GLuint texture) {
	((void (*)(GLenum, GLuint))fp)(target, texture);
}
static void gp_glTexParameteri(uintptr_t fp, GLenum target, GLenum pname, GLint param) {
	((void (*)(GLenum, GLenum, GLint))fp)(target, pname, param);
}
static void gp_glTexStorageMem2DEXT(uintptr_t fp, GLenum target, GLsizei levels, GLenum internalFormat, GLsizei width, GLsizei height, GLuint memory, GLuint64 offset) {
	((void (*)(GLenum, GLsizei, GLenum, GLsizei, GLsizei, GLuint, GLuint64))fp)(target, levels, internalFormat, width, height, memory, offset);
}
*/
import "C"

import (
	"fmt"
	"unsafe"
)

// ProcResolver looks up a GL entry point by name against the context
// current on the calling thread. glfw.GetProcAddress satisfies it.
type ProcResolver func(name string) unsafe.Pointer

// Functions is the resolved entry-point table, the counterpart of a
// glad loader. Entry points are context-dependent: a table loaded
// against one context must not be used with another current.
type Functions struct {
	getError             uintptr
	getString            uintptr
	getStringi           uintptr
	getIntegerv          uintptr
	getUnsignedByteiVEXT uintptr
	getInternalformativ  uintptr
	createMemoryObjects  uintptr
	deleteMemoryObjects  uintptr
	importMemoryFd       uintptr
	genTextures          uintptr
	deleteTextures       uintptr
	bindTexture          uintptr
	texParameteri        uintptr
	texStorageMem2D      uintptr
}

// LoadFunctions resolves the table against the current context. Core
// entry points are mandatory; EXT_memory_object ones may be absent and
// are reported by SupportsMemoryObject.
func LoadFunctions(resolver ProcResolver) (*Functions, error) {
	lookup := func(name string) uintptr {
		return uintptr(resolver(name))
	}
	f := &Functions{
		getError:             lookup("glGetError"),
		getString:            lookup("glGetString"),
		getStringi:           lookup("glGetStringi"),
		getIntegerv:          lookup("glGetIntegerv"),
		getUnsignedByteiVEXT: lookup("glGetUnsignedBytei_vEXT"),
		getInternalformativ:  lookup("glGetInternalformativ"),
		createMemoryObjects:  lookup("glCreateMemoryObjectsEXT"),
		deleteMemoryObjects:  lookup("glDeleteMemoryObjectsEXT"),
		importMemoryFd:       lookup("glImportMemoryFdEXT"),
		genTextures:          lookup("glGenTextures"),
		deleteTextures:       lookup("glDeleteTextures"),
		bindTexture:          lookup("glBindTexture"),
		texParameteri:        lookup("glTexParameteri"),
		texStorageMem2D:      lookup("glTexStorageMem2DEXT"),
	}
	for name, fp := range map[string]uintptr{
		"glGetError":       f.getError,
		"glGetString":      f.getString,
		"glGetIntegerv":    f.getIntegerv,
		"glGenTextures":    f.genTextures,
		"glDeleteTextures": f.deleteTextures,
		"glBindTexture":    f.bindTexture,
		"glTexParameteri":  f.texParameteri,
	} {
		if fp == 0 {
			return nil, fmt.Errorf("func LoadFunctions - failed to resolve %s", name)
		}
	}
	return f, nil
}

// SupportsMemoryObject reports whether every EXT_memory_object(_fd)
// entry point resolved.
func (f *Functions) SupportsMemoryObject() bool {
	return f.createMemoryObjects != 0 && f.deleteMemoryObjects != 0 &&
		f.importMemoryFd != 0 && f.texStorageMem2D != 0 &&
		f.getUnsignedByteiVEXT != 0
}

func (f *Functions) GetError() uint32 {
	return uint32(C.gp_glGetError(C.uintptr_t(f.getError)))
}

func (f *Functions) GetString(name uint32) string {
	s := C.gp_glGetString(C.uintptr_t(f.getString), C.GLenum(name))
	if s == nil {
		return ""
	}
	return C.GoString((*C.char)(unsafe.Pointer(s)))
}

func (f *Functions) GetStringi(name, index uint32) string {
	if f.getStringi == 0 {
		return ""
	}
	s := C.gp_glGetStringi(C.uintptr_t(f.getStringi), C.GLenum(name), C.GLuint(index))
	if s == nil {
		return ""
	}
	return C.GoString((*C.char)(unsafe.Pointer(s)))
}

func (f *Functions) GetIntegerv(pname uint32) int32 {
	var v C.GLint
	C.gp_glGetIntegerv(C.uintptr_t(f.getIntegerv), C.GLenum(pname), &v)
	return int32(v)
}

func (f *Functions) GetUnsignedBytei(target, index uint32, buf []byte) {
	if len(buf) == 0 {
		return
	}
	C.gp_glGetUnsignedBytei_vEXT(C.uintptr_t(f.getUnsignedByteiVEXT),
		C.GLenum(target), C.GLuint(index), (*C.GLubyte)(unsafe.Pointer(&buf[0])))
}

func (f *Functions) GetInternalformativ(target, internalformat, pname uint32, params []int32) {
	if len(params) == 0 {
		return
	}
	C.gp_glGetInternalformativ(C.uintptr_t(f.getInternalformativ),
		C.GLenum(target), C.GLenum(internalformat), C.GLenum(pname),
		C.GLsizei(len(params)), (*C.GLint)(unsafe.Pointer(&params[0])))
}

func (f *Functions) CreateMemoryObjects(n int32) []uint32 {
	ids := make([]uint32, n)
	C.gp_glCreateMemoryObjectsEXT(C.uintptr_t(f.createMemoryObjects),
		C.GLsizei(n), (*C.GLuint)(unsafe.Pointer(&ids[0])))
	return ids
}

func (f *Functions) DeleteMemoryObjects(ids []uint32) {
	if len(ids) == 0 {
		return
	}
	C.gp_glDeleteMemoryObjectsEXT(C.uintptr_t(f.deleteMemoryObjects),
		C.GLsizei(len(ids)), (*C.GLuint)(unsafe.Pointer(&ids[0])))
}

func (f *Functions) ImportMemoryFd(memory uint32, size uint64, handleType uint32, fd int32) {
	C.gp_glImportMemoryFdEXT(C.uintptr_t(f.importMemoryFd),
		C.GLuint(memory), C.GLuint64(size), C.GLenum(handleType), C.GLint(fd))
}

func (f *Functions) GenTextures(n int32) []uint32 {
	ids := make([]uint32, n)
	C.gp_glGenTextures(C.uintptr_t(f.genTextures),
		C.GLsizei(n), (*C.GLuint)(unsafe.Pointer(&ids[0])))
	return ids
}

func (f *Functions) DeleteTextures(ids []uint32) {
	if len(ids) == 0 {
		return
	}
	C.gp_glDeleteTextures(C.uintptr_t(f.deleteTextures),
		C.GLsizei(len(ids)), (*C.GLuint)(unsafe.Pointer(&ids[0])))
}

func (f *Functions) BindTexture(target, texture uint32) {
	C.gp_glBindTexture(C.uintptr_t(f.bindTexture), C.GLenum(target), C.GLuint(texture))
}

func (f *Functions) TexParameteri(target, pname uint32, param int32) {
	C.gp_glTexParameteri(C.uintptr_t(f.texParameteri),
		C.GLenum(target), C.GLenum(pname), C.GLint(param))
}

func (f *Functions) TexStorageMem2D(target uint32, levels int32, internalformat uint32, width, height int32, memory uint32, offset uint64) {
	C.gp_glTexStorageMem2DEXT(C.uintptr_t(f.texStorageMem2D),
		C.GLenum(target), C.GLsizei(levels), C.GLenum(internalformat),
		C.GLsizei(width), C.GLsizei(height), C.GLuint(memory), C.GLuint64(offset))
}
