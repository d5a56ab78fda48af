// Package native is the Go side of the PrincessEdit native layer.
//
// A Bridge owns the handle tables for font databases and font queries and
// the SVG renderer. Each of its methods corresponds to one operation of
// the host application and takes host-shaped arguments: int32 handles,
// UTF-16 strings and byte slices. Failures never cross the boundary as Go
// errors or panics. They are delivered to the host as one exception and
// the method returns a sentinel (-1, nil or "").
//
// The C entry points in cmd/princessnative create a single Bridge for the
// lifetime of the process and forward every exported function to it.
//
//	b := native.New(config.Default(), thrower)
//	db := b.FontDatabaseNew()
//	b.FontDatabaseAddFontPath(db, hostabi.EncodeString("/usr/share/fonts"))
//	png := b.Render(hostabi.EncodeString(doc), nil, db, 640, 480)
//
// By default nothing is logged. Call SetLogger to enable logging.
package native
