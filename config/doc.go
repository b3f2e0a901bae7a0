// Package config is the convenience configuration surface layered on top
// of the dispatch core. Apply performs the classic one-shot setup: attach
// a default handler and formatter to the root logger, but only when the
// root has none yet, so an application and its libraries can all call it
// without stacking duplicate output.
//
// The core itself never depends on this package; everything here goes
// through the public node and handler attachment operations.
package config
