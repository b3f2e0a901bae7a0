// Package logger implements the hierarchical dispatch core: named logger
// nodes, the manager that owns them, and the context-binding adapter.
//
// Loggers form a tree keyed by dot-separated names; "a.b.c" is a child of
// "a.b", which may exist only as a placeholder until someone asks for it.
// A node with level NOTSET inherits its effective level from the nearest
// ancestor that has one set. The gating check run on every call site is
// two atomic reads plus a cached lookup, so high-volume disabled call
// sites cost close to nothing.
//
// Dispatch walks from the emitting node toward the root, offering the
// record to each node's handlers until a node with propagation disabled
// is reached. A walk that invokes no handler at all falls back to the
// manager's last-resort handler.
//
// The manager serializes all structural mutation - node creation,
// placeholder splicing, level and disable changes - behind one lock, and
// wipes every node's gating cache whenever any level, the disabled flag,
// or the global disable threshold changes: a cached answer depends on the
// whole ancestor chain, so anything narrower would be unsound.
//
// Nothing in this package ever lets a logging failure reach the log call
// site; sink and filter failures go to the core error side channel.
package logger
