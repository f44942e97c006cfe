// Package apitest provides an in-process fake of the Titan Store remote
// API for tests: the profile endpoint, the product-register endpoint,
// per-endpoint hit counters, and failure injection.
package apitest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/titanstore/storefront/pkg/api"
)

// Server is a fake remote API. Construct with NewServer and Close when done.
type Server struct {
	*httptest.Server

	mu          sync.Mutex
	users       map[string]api.User
	validTokens map[string]struct{}
	products    []api.Product
	profileHits int
	createHits  int
	forceStatus int
	delay       time.Duration
}

// NewServer starts a fake API with no users and no valid tokens.
func NewServer() *Server {
	s := &Server{
		users:       make(map[string]api.User),
		validTokens: make(map[string]struct{}),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/users/profile/", s.handleProfile)
	mux.HandleFunc("/products/register", s.handleRegister)
	s.Server = httptest.NewServer(mux)
	return s
}

// AddUser registers a profile retrievable by its ID.
func (s *Server) AddUser(u api.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[u.ID] = u
}

// AddToken marks a bearer token as valid for authenticated writes.
func (s *Server) AddToken(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.validTokens[token] = struct{}{}
}

// ForceStatus makes every endpoint answer with the given status until
// reset with 0.
func (s *Server) ForceStatus(code int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.forceStatus = code
}

// SetDelay makes every endpoint sleep before answering, to hold requests
// in flight during a test.
func (s *Server) SetDelay(d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.delay = d
}

// ProfileHits returns how many profile fetches the server has answered.
func (s *Server) ProfileHits() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.profileHits
}

// CreateHits returns how many create requests the server has received.
func (s *Server) CreateHits() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.createHits
}

// Products returns the products created so far, in creation order.
func (s *Server) Products() []api.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]api.Product, len(s.products))
	copy(out, s.products)
	return out
}

// intercept applies the configured delay and forced status. It reports
// whether the request was already answered.
func (s *Server) intercept(w http.ResponseWriter) bool {
	s.mu.Lock()
	delay := s.delay
	forced := s.forceStatus
	s.mu.Unlock()

	if delay > 0 {
		time.Sleep(delay)
	}
	if forced != 0 {
		http.Error(w, "forced failure", forced)
		return true
	}
	return false
}

func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	s.profileHits++
	s.mu.Unlock()

	if s.intercept(w) {
		return
	}

	userID := strings.TrimPrefix(r.URL.Path, "/users/profile/")
	s.mu.Lock()
	user, ok := s.users[userID]
	s.mu.Unlock()
	if !ok {
		http.Error(w, "user not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(user)
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	s.createHits++
	s.mu.Unlock()

	if s.intercept(w) {
		return
	}

	token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
	s.mu.Lock()
	_, authorized := s.validTokens[token]
	s.mu.Unlock()
	if token == "" || !authorized {
		http.Error(w, "invalid token", http.StatusUnauthorized)
		return
	}

	var input api.ProductInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "bad request body", http.StatusBadRequest)
		return
	}

	product := api.Product{
		ID:          uuid.NewString(),
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
		Category:    input.Category,
		ImageURLs:   input.ImageURLs,
	}

	s.mu.Lock()
	s.products = append(s.products, product)
	s.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(product)
}
