// Package compress provides the four record-payload compression kinds a
// HIPO record's index+user-header+event-data blob may be stored under:
// None, LZ4, LZ4Best, and GZIP.
//
// Codec selection is driven by format.CompressionKind, which is also the
// value stored in a record's header. Use CreateCodec for a freshly
// constructed codec or GetCodec for a shared, stateless instance of one of
// the four builtin kinds.
package compress
