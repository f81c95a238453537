// Package service exposes the kernel computation engine over HTTP.
// Clients post JSON graph collections and get kernel matrices back.
package service

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"gonum.org/v1/gonum/mat"

	"github.com/kpaschen/graphkernels/lib/kernels"
	"github.com/kpaschen/graphkernels/lib/settings"
)

var (
	receivedGraphs = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "graphkernels_received_graphs_total",
			Help: "Total number of graphs received in kernel requests.",
		},
	)
	kernelRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "graphkernels_kernel_requests_total",
			Help: "Total number of kernel computation requests by operation.",
		},
		[]string{"operation"},
	)
	fittedGraphs = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "graphkernels_fitted_graphs",
			Help: "Number of graph summaries cached by the last fit.",
		},
	)
	kernelDurationHist = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "graphkernels_kernel_duration_milliseconds_histogram",
			Help:    "Duration of kernel matrix computation calls.",
			Buckets: prometheus.DefBuckets,
		},
	)
)

func init() {
	prometheus.MustRegister(receivedGraphs)
	prometheus.MustRegister(kernelRequests)
	prometheus.MustRegister(fittedGraphs)
	prometheus.MustRegister(kernelDurationHist)
}

// A GraphPayload is the wire form of one input graph. Node identifiers
// and labels are strings on the wire. A payload with neither node
// labels nor edges is the empty element and is skipped with a warning,
// shifting the indices of the matrix rows after it.
type GraphPayload struct {
	NodeLabels map[string]string `json:"nodeLabels"`
	Edges      [][2]string       `json:"edges,omitempty"`
	EdgeLabels map[string]string `json:"edgeLabels,omitempty"`
}

type CollectionRequest struct {
	Graphs []GraphPayload `json:"graphs"`
}

type MatrixResponse struct {
	Rows    int         `json:"rows"`
	Columns int         `json:"columns"`
	Values  [][]float64 `json:"values"`
}

// ElementsFromPayloads converts wire graphs into collection elements.
// Validation is left to the parser so that malformed payloads get the
// same errors as malformed in-process input.
func ElementsFromPayloads(payloads []GraphPayload) []kernels.Element {
	elements := make([]kernels.Element, 0, len(payloads))
	for _, p := range payloads {
		if len(p.NodeLabels) == 0 && len(p.Edges) == 0 {
			elements = append(elements, kernels.Element{})
			continue
		}
		nodeLabels := make(map[kernels.Node]kernels.Label, len(p.NodeLabels))
		for node, label := range p.NodeLabels {
			nodeLabels[node] = label
		}
		elements = append(elements, kernels.FromRaw(p.Edges, nodeLabels))
	}
	return elements
}

// A KernelServer wraps one engine instance. The engine itself assumes
// a single logical caller, so the server serializes requests with a
// mutex.
type KernelServer struct {
	mu     sync.Mutex
	engine *kernels.Engine
}

func NewKernelServer(op kernels.PairwiseOperation, config settings.KernelSettings) *KernelServer {
	return &KernelServer{
		engine: kernels.NewEngine(op, config),
	}
}

// Router returns the HTTP routes of the server. The prometheus metrics
// endpoint is left to the caller, matching how the binary serves it on
// a separate address.
func (s *KernelServer) Router() *mux.Router {
	router := mux.NewRouter().StrictSlash(true)
	router.HandleFunc("/api/v1/fit", s.HandleFit).Methods("POST")
	router.HandleFunc("/api/v1/transform", s.HandleTransform).Methods("POST")
	router.HandleFunc("/api/v1/fitTransform", s.HandleFitTransform).Methods("POST")
	return router
}

func decodeCollection(w http.ResponseWriter, r *http.Request) ([]kernels.Element, bool) {
	var req CollectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("failed to decode kernel request: %v\n", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return nil, false
	}
	receivedGraphs.Add(float64(len(req.Graphs)))
	return ElementsFromPayloads(req.Graphs), true
}

// statusForError distinguishes caller errors from engine defects.
func statusForError(err error) int {
	switch err.(type) {
	case kernels.InvalidInputError, kernels.EmptyInputError,
		kernels.DegenerateGraphError:
		return http.StatusBadRequest
	case kernels.NotFittedError:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func matrixRows(k *mat.Dense) [][]float64 {
	rows, cols := k.Dims()
	values := make([][]float64, rows)
	for i := 0; i < rows; i++ {
		row := make([]float64, cols)
		copy(row, k.RawRowView(i))
		values[i] = row
	}
	return values
}

func writeMatrix(w http.ResponseWriter, values [][]float64) {
	resp := MatrixResponse{Rows: len(values), Values: values}
	if len(values) > 0 {
		resp.Columns = len(values[0])
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(&resp); err != nil {
		log.Printf("failed to encode matrix response: %v\n", err)
	}
}

func (s *KernelServer) HandleFit(w http.ResponseWriter, r *http.Request) {
	kernelRequests.WithLabelValues("fit").Inc()
	elements, ok := decodeCollection(w, r)
	if !ok {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	start := time.Now()
	if err := s.engine.Fit(elements); err != nil {
		http.Error(w, err.Error(), statusForError(err))
		return
	}
	kernelDurationHist.Observe(float64(time.Since(start).Milliseconds()))
	fittedGraphs.Set(float64(s.engine.FittedCount()))
	w.WriteHeader(http.StatusOK)
}

func (s *KernelServer) HandleTransform(w http.ResponseWriter, r *http.Request) {
	kernelRequests.WithLabelValues("transform").Inc()
	elements, ok := decodeCollection(w, r)
	if !ok {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	start := time.Now()
	k, err := s.engine.Transform(elements)
	if err != nil {
		http.Error(w, err.Error(), statusForError(err))
		return
	}
	kernelDurationHist.Observe(float64(time.Since(start).Milliseconds()))
	writeMatrix(w, matrixRows(k))
}

func (s *KernelServer) HandleFitTransform(w http.ResponseWriter, r *http.Request) {
	kernelRequests.WithLabelValues("fitTransform").Inc()
	elements, ok := decodeCollection(w, r)
	if !ok {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	start := time.Now()
	k, err := s.engine.FitTransform(elements)
	if err != nil {
		http.Error(w, err.Error(), statusForError(err))
		return
	}
	kernelDurationHist.Observe(float64(time.Since(start).Milliseconds()))
	writeMatrix(w, matrixRows(k))
}
