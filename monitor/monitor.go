// Package monitor exposes a running lsu.Comp over HTTP: queue occupancy,
// CSR counters, and basic host statistics, the way a long-running
// simulation's operator dashboard would.
package monitor

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/shirou/gopsutil/cpu"
	"github.com/shirou/gopsutil/mem"

	"github.com/weontaekna/AOS-boom/lsu"
)

// Server serves the dashboard for a single lsu.Comp.
type Server struct {
	comp   *lsu.Comp
	router *mux.Router
}

// New creates a Server wired to comp.
func New(comp *lsu.Comp) *Server {
	s := &Server{comp: comp, router: mux.NewRouter()}

	s.router.HandleFunc("/queues", s.handleQueues).Methods(http.MethodGet)
	s.router.HandleFunc("/counters", s.handleCounters).Methods(http.MethodGet)
	s.router.HandleFunc("/host", s.handleHost).Methods(http.MethodGet)

	return s
}

// Handler returns the dashboard's HTTP handler, suitable for
// http.ListenAndServe.
func (s *Server) Handler() http.Handler {
	return s.router
}

type queueStatus struct {
	Name string `json:"name"`
	Len  int    `json:"len"`
	Head int    `json:"head"`
	Tail int    `json:"tail"`
	Full bool   `json:"full"`
}

func (s *Server) handleQueues(w http.ResponseWriter, _ *http.Request) {
	signals := s.comp.Signals()

	statuses := []queueStatus{
		{Name: "ldq", Len: s.comp.Ldq.Len(), Head: s.comp.Ldq.Head(), Tail: s.comp.Ldq.Tail(), Full: signals.LdqFull},
		{Name: "stq", Len: s.comp.Stq.Len(), Head: s.comp.Stq.Head(), Tail: s.comp.Stq.Tail(), Full: signals.StqFull},
		{Name: "mcq", Len: s.comp.Mcq.Len(), Tail: s.comp.Mcq.Len(), Full: signals.McqFull},
		{Name: "bdq", Len: s.comp.Bdq.Len(), Tail: s.comp.Bdq.Len(), Full: signals.BdqFull},
	}

	writeJSON(w, statuses)
}

func (s *Server) handleCounters(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, s.comp.CSR().Counters())
}

type hostStatus struct {
	CPUPercent []float64 `json:"cpu_percent"`
	MemUsedPct float64   `json:"mem_used_pct"`
}

func (s *Server) handleHost(w http.ResponseWriter, _ *http.Request) {
	status := hostStatus{}

	if pct, err := cpu.Percent(0, false); err == nil {
		status.CPUPercent = pct
	}

	if vm, err := mem.VirtualMemory(); err == nil {
		status.MemUsedPct = vm.UsedPercent
	}

	writeJSON(w, status)
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
