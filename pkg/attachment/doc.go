// Package attachment validates files and turns them into typed message
// parts for outbound mail.
//
// A part carries the file's bytes fully in memory together with a content
// type inferred from the file extension and a coarse kind (text, image,
// audio, or binary) that decides how the part is encoded on the wire.
// Unknown extensions fall back to application/octet-stream. Text parts are
// decoded as UTF-8 with invalid sequences replaced.
//
// Build never modifies or locks the source file, and every failure mode
// is a sentinel error so callers can distinguish a missing file from an
// oversized one.
package attachment
