package core

import (
	"fmt"
	"reflect"
	"strings"
	"sync"
)

// Filter is a predicate over a Record. Loggers and handlers apply their
// filter chains with identical semantics: every filter must accept the
// record for it to pass.
type Filter interface {
	// Filter reports whether the record should be processed
	Filter(r *Record) bool
}

// FilterFunc adapts a bare function to the Filter interface
type FilterFunc func(r *Record) bool

// Filter calls f
func (f FilterFunc) Filter(r *Record) bool {
	return f(r)
}

// NameFilter accepts records logged on the named logger or any of its
// descendants. A NameFilter for "a.b" accepts "a.b" and "a.b.c" but
// rejects "a.bc". The empty name accepts everything.
type NameFilter struct {
	name string
}

// NewNameFilter creates a NameFilter for the given logger name
func NewNameFilter(name string) *NameFilter {
	return &NameFilter{name: name}
}

// Filter reports whether the record's logger name is the filter's name or
// is nested below it.
func (f *NameFilter) Filter(r *Record) bool {
	if f.name == "" {
		return true
	}
	if !strings.HasPrefix(r.Name, f.name) {
		return false
	}
	return len(r.Name) == len(f.name) || r.Name[len(f.name)] == '.'
}

// Filterer manages an ordered filter chain. It is embedded by both loggers
// and handlers so the two sides share one set of semantics.
type Filterer struct {
	mu      sync.RWMutex
	filters []Filter
}

// AddFilter appends a filter to the chain
func (f *Filterer) AddFilter(filter Filter) {
	f.mu.Lock()
	f.filters = append(f.filters, filter)
	f.mu.Unlock()
}

// RemoveFilter removes a previously added filter. Filters whose dynamic
// type is not comparable (such as FilterFunc) cannot be matched and are
// left in place.
func (f *Filterer) RemoveFilter(filter Filter) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if filter == nil || !reflect.TypeOf(filter).Comparable() {
		return
	}
	for i, existing := range f.filters {
		if existing != nil && reflect.TypeOf(existing).Comparable() && existing == filter {
			f.filters = append(f.filters[:i:i], f.filters[i+1:]...)
			return
		}
	}
}

// Accept runs the chain in order; the record passes only if every filter
// accepts it. A panicking filter counts as a rejection scoped to this
// owner: the failure is reported through the error side channel and the
// dispatch of unrelated owners is unaffected.
func (f *Filterer) Accept(r *Record) bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	for _, filter := range f.filters {
		if !runFilter(filter, r) {
			return false
		}
	}
	return true
}

func runFilter(filter Filter, r *Record) (ok bool) {
	defer func() {
		if p := recover(); p != nil {
			ReportError(fmt.Errorf("filter panicked: %v", p), r)
			ok = false
		}
	}()
	return filter.Filter(r)
}
