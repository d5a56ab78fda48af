package main

/*
#include <stdint.h>
#include <stdlib.h>
*/
import "C"

import (
	"log/slog"
	"unsafe"

	"github.com/Lymia/PrincessEdit/native"
	"github.com/Lymia/PrincessEdit/native/internal/hostabi"
)

func hostString(p *C.uint16_t, n C.int32_t) hostabi.String {
	return hostabi.StringFromPtr((*uint16)(unsafe.Pointer(p)), int32(n))
}

func hostBytes(p *C.uint8_t, n C.int32_t) []byte {
	return hostabi.BytesFromPtr((*byte)(unsafe.Pointer(p)), int32(n))
}

// cBuffer copies b into memory allocated with malloc. The host frees it
// with princess_buffer_free.
func cBuffer(b []byte, outLen *C.int32_t) unsafe.Pointer {
	if b == nil {
		if outLen != nil {
			*outLen = 0
		}
		return nil
	}
	if outLen != nil {
		*outLen = C.int32_t(len(b))
	}
	return C.CBytes(b)
}

//export princess_set_exception_handler
func princess_set_exception_handler(fn unsafe.Pointer) C.int32_t {
	if err := thrower.SetHandler(uintptr(fn)); err != nil {
		native.Logger().Error("set exception handler", slog.String("error", err.Error()))
		return -1
	}
	return 0
}

//export princess_buffer_free
func princess_buffer_free(p unsafe.Pointer) {
	C.free(p)
}

// princess_live_handles stores the number of live font database and font
// query handles, for leak checks in the host.
//
//export princess_live_handles
func princess_live_handles(databases, queries *C.int32_t) {
	d, q := bridge().Live()
	if databases != nil {
		*databases = C.int32_t(d)
	}
	if queries != nil {
		*queries = C.int32_t(q)
	}
}

//export princess_font_database_new
func princess_font_database_new() C.int32_t {
	return C.int32_t(bridge().FontDatabaseNew())
}

//export princess_font_database_delete
func princess_font_database_delete(h C.int32_t) {
	bridge().FontDatabaseDelete(int32(h))
}

//export princess_font_database_add_font_data
func princess_font_database_add_font_data(h C.int32_t, data *C.uint8_t, n C.int32_t) {
	bridge().FontDatabaseAddFontData(int32(h), hostBytes(data, n))
}

//export princess_font_database_add_font_path
func princess_font_database_add_font_path(h C.int32_t, path *C.uint16_t, n C.int32_t) {
	bridge().FontDatabaseAddFontPath(int32(h), hostString(path, n))
}

//export princess_font_database_load_system_fonts
func princess_font_database_load_system_fonts(h C.int32_t) {
	bridge().FontDatabaseLoadSystemFonts(int32(h))
}

//export princess_font_database_set_default
func princess_font_database_set_default(h, genericID C.int32_t, name *C.uint16_t, n C.int32_t) {
	bridge().FontDatabaseSetDefault(int32(h), int32(genericID), hostString(name, n))
}

// princess_font_database_match returns a malloc'd UTF-8 string or NULL.
//
//export princess_font_database_match
func princess_font_database_match(db, query C.int32_t, sample *C.uint16_t, n C.int32_t) *C.char {
	family := bridge().FontDatabaseMatch(int32(db), int32(query), hostString(sample, n))
	if family == "" {
		return nil
	}
	return C.CString(family)
}

//export princess_font_query_new
func princess_font_query_new() C.int32_t {
	return C.int32_t(bridge().FontQueryNew())
}

//export princess_font_query_delete
func princess_font_query_delete(h C.int32_t) {
	bridge().FontQueryDelete(int32(h))
}

//export princess_font_query_add_family
func princess_font_query_add_family(h C.int32_t, name *C.uint16_t, n C.int32_t) {
	bridge().FontQueryAddFamily(int32(h), hostString(name, n))
}

//export princess_font_query_add_generic_family
func princess_font_query_add_generic_family(h, genericID C.int32_t) {
	bridge().FontQueryAddGenericFamily(int32(h), int32(genericID))
}

//export princess_font_query_set_weight
func princess_font_query_set_weight(h, weight C.int32_t) {
	bridge().FontQuerySetWeight(int32(h), int32(weight))
}

//export princess_font_query_set_stretch
func princess_font_query_set_stretch(h, stretchID C.int32_t) {
	bridge().FontQuerySetStretch(int32(h), int32(stretchID))
}

//export princess_font_query_set_style
func princess_font_query_set_style(h, styleID C.int32_t) {
	bridge().FontQuerySetStyle(int32(h), int32(styleID))
}

// princess_render returns a malloc'd PNG and stores its length in outLen,
// or returns NULL. A NULL resDir disables relative image references.
//
//export princess_render
func princess_render(svg *C.uint16_t, svgLen C.int32_t, resDir *C.uint16_t, resDirLen C.int32_t,
	db, w, h C.int32_t, outLen *C.int32_t) unsafe.Pointer {
	png := bridge().Render(hostString(svg, svgLen), hostString(resDir, resDirLen), int32(db), int32(w), int32(h))
	return cBuffer(png, outLen)
}
