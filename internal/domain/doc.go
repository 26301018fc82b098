// Package domain defines the core types for manual IPv4 annotation.
//
// # Records
//
// Record is the fixed-shape annotation for one address: location, ASN
// ownership, coordinates, network type, risk, native flag, sharing bucket,
// reverse DNS and country flag. Field names are persisted verbatim.
//
// A record is always built by NewRecord: placeholders from DefaultRecord,
// then the caller's Partial, then the derived fields. ipNumber and ipnum
// are recomputed from the address on every write. riskLevel and riskColor
// follow the risk tier table only when a score was supplied.
//
// # Enumerations
//
// IPType, NativeIP and SharedUsers are closed sets. Values that do not
// match exactly are ignored and the field keeps its placeholder.
//
// # Collection
//
// Annotations keeps entries keyed by address in insertion order so that
// saved documents list addresses the way they were entered. An Entry is
// the stored form of a record: an ordered field list. Entries loaded from
// a file keep the file's fields and values as written, so a load followed
// by a save does not rewrite records that were never edited.
package domain
