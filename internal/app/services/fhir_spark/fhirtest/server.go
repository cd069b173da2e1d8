// Package fhirtest provides an in-memory clinical data repository for tests.
// It understands just enough of the FHIR REST API for the upsert engine:
// identifier search, read, create and update.
package fhirtest

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"

	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/pkg/constvars"
	"github.com/NHSDigital/IOPS-trust-integration-engine-sub001/internal/pkg/fhir_dto"
)

type Call struct {
	Method       string
	ResourceType string
	ID           string
	Query        string
	Body         []byte
}

type failure struct {
	method string
	status int
	times  int
}

type Server struct {
	*httptest.Server

	mu        sync.Mutex
	resources map[string]map[string]json.RawMessage
	order     map[string][]string
	calls     []Call
	failures  []*failure
	nextID    int
}

func NewServer() *Server {
	s := &Server{
		resources: make(map[string]map[string]json.RawMessage),
		order:     make(map[string][]string),
	}

	r := chi.NewRouter()
	r.Get("/{resourceType}", s.search)
	r.Post("/{resourceType}", s.create)
	r.Get("/{resourceType}/{id}", s.read)
	r.Put("/{resourceType}/{id}", s.update)

	s.Server = httptest.NewServer(r)
	return s
}

// FailNext makes the next times calls with method answer status.
func (s *Server) FailNext(method string, status, times int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures = append(s.failures, &failure{method: method, status: status, times: times})
}

// Seed stores resource as if it had been created earlier and returns its id.
func (s *Server) Seed(resource interface{}) string {
	raw, err := json.Marshal(resource)
	if err != nil {
		panic(err)
	}
	header, err := fhir_dto.ProbeResource(raw)
	if err != nil {
		panic(err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	_, id := s.store(header.ResourceType, header.ID, raw)
	return id
}

// Resources returns the stored resources of resourceType in creation order.
func (s *Server) Resources(resourceType string) []json.RawMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []json.RawMessage
	for _, id := range s.order[resourceType] {
		out = append(out, s.resources[resourceType][id])
	}
	return out
}

// Decode unmarshals the stored resources of resourceType into out, a pointer
// to a slice.
func (s *Server) Decode(resourceType string, out interface{}) error {
	raw, err := json.Marshal(s.Resources(resourceType))
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, out)
}

func (s *Server) Calls() []Call {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Call{}, s.calls...)
}

// CountCalls counts recorded calls with method on resourceType.
func (s *Server) CountCalls(method, resourceType string) int {
	count := 0
	for _, call := range s.Calls() {
		if call.Method == method && call.ResourceType == resourceType {
			count++
		}
	}
	return count
}

func (s *Server) record(r *http.Request) ([]byte, *failure) {
	body, _ := io.ReadAll(r.Body)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, Call{
		Method:       r.Method,
		ResourceType: chi.URLParam(r, "resourceType"),
		ID:           chi.URLParam(r, "id"),
		Query:        r.URL.RawQuery,
		Body:         body,
	})
	for _, f := range s.failures {
		if f.times > 0 && f.method == r.Method {
			f.times--
			return body, f
		}
	}
	return body, nil
}

func (s *Server) search(w http.ResponseWriter, r *http.Request) {
	if _, failed := s.record(r); failed != nil {
		writeOutcome(w, failed.status, "injected failure")
		return
	}
	resourceType := chi.URLParam(r, "resourceType")
	token := r.URL.Query().Get(constvars.FhirSearchParamIdentifier)
	system, value, _ := strings.Cut(token, "|")

	bundle := fhir_dto.NewBundle(constvars.FhirBundleTypeSearchSet)
	for _, raw := range s.Resources(resourceType) {
		var resource fhir_dto.DomainResource
		if err := json.Unmarshal(raw, &resource); err != nil {
			continue
		}
		for _, identifier := range resource.Identifier {
			if identifier.System == system && identifier.Value == value {
				bundle.Entry = append(bundle.Entry, fhir_dto.Entry{Resource: raw})
				break
			}
		}
	}
	total := len(bundle.Entry)
	bundle.Total = &total
	writeJSON(w, http.StatusOK, bundle)
}

func (s *Server) read(w http.ResponseWriter, r *http.Request) {
	if _, failed := s.record(r); failed != nil {
		writeOutcome(w, failed.status, "injected failure")
		return
	}
	resourceType := chi.URLParam(r, "resourceType")
	id := chi.URLParam(r, "id")

	s.mu.Lock()
	raw, ok := s.resources[resourceType][id]
	s.mu.Unlock()
	if !ok {
		writeOutcome(w, http.StatusNotFound, fmt.Sprintf("%s/%s is not known", resourceType, id))
		return
	}
	writeRaw(w, http.StatusOK, raw)
}

func (s *Server) create(w http.ResponseWriter, r *http.Request) {
	body, failed := s.record(r)
	if failed != nil {
		writeOutcome(w, failed.status, "injected failure")
		return
	}
	resourceType := chi.URLParam(r, "resourceType")

	s.mu.Lock()
	stored, id := s.store(resourceType, "", body)
	s.mu.Unlock()
	if stored == nil {
		writeOutcome(w, http.StatusBadRequest, "resource is not valid JSON")
		return
	}
	w.Header().Set(constvars.HeaderLocation, resourceType+"/"+id)
	writeRaw(w, http.StatusCreated, stored)
}

func (s *Server) update(w http.ResponseWriter, r *http.Request) {
	body, failed := s.record(r)
	if failed != nil {
		writeOutcome(w, failed.status, "injected failure")
		return
	}
	resourceType := chi.URLParam(r, "resourceType")
	id := chi.URLParam(r, "id")

	s.mu.Lock()
	stored, _ := s.store(resourceType, id, body)
	s.mu.Unlock()
	if stored == nil {
		writeOutcome(w, http.StatusBadRequest, "resource is not valid JSON")
		return
	}
	writeRaw(w, http.StatusOK, stored)
}

// store saves raw under id, assigning a new id when id is empty. Callers hold mu.
func (s *Server) store(resourceType, id string, raw []byte) (json.RawMessage, string) {
	var document map[string]json.RawMessage
	if err := json.Unmarshal(raw, &document); err != nil {
		return nil, ""
	}
	if id == "" {
		s.nextID++
		id = fmt.Sprintf("%s-%d", strings.ToLower(resourceType), s.nextID)
	}
	document["id"], _ = json.Marshal(id)
	stored, err := json.Marshal(document)
	if err != nil {
		return nil, ""
	}

	if s.resources[resourceType] == nil {
		s.resources[resourceType] = make(map[string]json.RawMessage)
	}
	if _, exists := s.resources[resourceType][id]; !exists {
		s.order[resourceType] = append(s.order[resourceType], id)
	}
	s.resources[resourceType][id] = stored
	return stored, id
}

// Types lists the resource types stored so far.
func (s *Server) Types() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	var types []string
	for resourceType := range s.resources {
		types = append(types, resourceType)
	}
	sort.Strings(types)
	return types
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	raw, _ := json.Marshal(v)
	writeRaw(w, status, raw)
}

func writeRaw(w http.ResponseWriter, status int, raw []byte) {
	w.Header().Set(constvars.HeaderContentType, constvars.MIMEApplicationFHIRJSON)
	w.WriteHeader(status)
	_, _ = w.Write(raw)
}

func writeOutcome(w http.ResponseWriter, status int, diagnostics string) {
	outcome := fhir_dto.NewOperationOutcome()
	outcome.AddIssue(fhir_dto.OperationOutcomeIssue{
		Severity:    constvars.FhirIssueSeverityError,
		Code:        constvars.FhirIssueCodeProcessing,
		Diagnostics: diagnostics,
	})
	writeJSON(w, status, outcome)
}
