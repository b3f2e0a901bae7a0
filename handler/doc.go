// Package handler provides the sink-facing side of the dispatch core.
//
// A Handler gates records by its own level threshold, runs its own filter
// chain, and emits under an exclusive per-handler lock, so one handler's
// slow sink never blocks unrelated handlers or loggers. Base implements
// all of that once; concrete handlers supply only a Sink with their emit
// (and optionally flush/close) callbacks. FuncHandler turns a bare
// function into a handler the same way.
//
// Built-in sinks: WriterHandler for any io.Writer, FileHandler for a
// rotating file (lumberjack), and MultiHandler for fanning one attachment
// point out to several children. ZapHandler and ZerologHandler bridge
// records into existing zap and zerolog backends, and SlogHandler runs
// the other direction, exposing any Handler as a log/slog backend.
//
// Every Base registers itself in a weak shutdown registry. Shutdown
// flushes and closes whatever is still alive, in reverse registration
// order; handlers dropped by their owners are collected normally and
// silently skipped. Sink failures never propagate to log call sites:
// they go to the core error side channel.
package handler
