// Package handle provides a generic handle table: a concurrent free-list
// allocator that gives out stable small integers for shared values.
//
// Handles are the identifiers a foreign host keeps instead of pointers.
// The table owns one reference to each value; every Resolve hands out
// another one. Releasing a handle detaches only the table's reference, so
// callers still holding a value can keep using it until they drop it.
//
//	dbs := handle.New[fonts.Database]("font database")
//	h, err := dbs.Allocate(fonts.NewDatabase())
//	db, err := dbs.Resolve(h)
//	err = dbs.Release(h)
//
// Freed handles are reused in LIFO order: the most recently released index
// is handed out by the next Allocate.
package handle
