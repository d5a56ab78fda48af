// Package hostabi holds the pieces that sit directly on the boundary with
// the managed host: host string decoding, delivery of exceptions through a
// host callback, and the guards that turn errors and panics into a single
// exception plus a sentinel return value.
package hostabi
