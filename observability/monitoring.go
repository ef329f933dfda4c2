// Package observability aggregates the realtime core's counters for
// periodic reporting. Counters are atomic; no lock sits on the hot
// broadcast path.
package observability

import (
	"runtime"
	"sync/atomic"
)

// Stats is a point-in-time snapshot of the core's gauges.
type Stats struct {
	ActiveSessions    int64  `json:"active_sessions"`
	SessionsAdmitted  uint64 `json:"sessions_admitted"`
	EventsBroadcast   uint64 `json:"events_broadcast"`
	MessagesPersisted uint64 `json:"messages_persisted"`
	EventsDropped     uint64 `json:"events_dropped"`
	AllocMemMb        uint64 `json:"alloc_mem_mb"`
	NumGC             uint32 `json:"num_gc"`
}

type Monitor struct {
	activeSessions    atomic.Int64
	sessionsAdmitted  atomic.Uint64
	eventsBroadcast   atomic.Uint64
	messagesPersisted atomic.Uint64
	eventsDropped     atomic.Uint64
}

func NewMonitor() *Monitor {
	return &Monitor{}
}

func (m *Monitor) SessionOpened() {
	m.activeSessions.Add(1)
	m.sessionsAdmitted.Add(1)
}

func (m *Monitor) SessionClosed() {
	m.activeSessions.Add(-1)
}

func (m *Monitor) EventBroadcast() {
	m.eventsBroadcast.Add(1)
}

func (m *Monitor) MessagePersisted() {
	m.messagesPersisted.Add(1)
}

func (m *Monitor) EventDropped() {
	m.eventsDropped.Add(1)
}

func (m *Monitor) Snapshot() Stats {
	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)
	return Stats{
		ActiveSessions:    m.activeSessions.Load(),
		SessionsAdmitted:  m.sessionsAdmitted.Load(),
		EventsBroadcast:   m.eventsBroadcast.Load(),
		MessagesPersisted: m.messagesPersisted.Load(),
		EventsDropped:     m.eventsDropped.Load(),
		AllocMemMb:        mem.Alloc / 1024 / 1024,
		NumGC:             mem.NumGC,
	}
}
