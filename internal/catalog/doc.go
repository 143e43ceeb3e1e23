// Package catalog defines the show, band, venue and review records exchanged
// with the show service, the write payloads, and their validation rules.
//
// Field names and JSON tags follow the service's snake_case payloads so a
// record decoded from the wire, loaded from the seed set, or read back from
// the local store all share one shape. Timestamps stay strings on the struct
// and are parsed on demand with ParseTimestamp, which accepts RFC3339 and the
// naive isoformat the service emits.
package catalog
