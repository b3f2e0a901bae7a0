// Package core defines the shared types of the hlog dispatch core.
//
// It provides the Level type with its runtime-extensible bidirectional
// name table, the Record type that snapshots a single log event, the
// Filter predicate with a func adapter, and the process-wide error side
// channel used by everything on the dispatch path.
//
// Records are immutable once built: the factory stamps name, level,
// message template, positional arguments, call site, timestamp, and
// process/goroutine identity, then filters and handlers only read. The
// message template is kept raw; positional arguments are applied lazily
// by whichever formatter ends up rendering the record, so a record that
// every handler rejects never pays for string interpolation.
//
// The Extra map carries open-ended attributes merged in at construction
// time. Keys that collide with the record's own attribute names are
// rejected as configuration errors when the record is built, not
// discovered later by a formatter.
package core
