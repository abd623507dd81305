// Package api exposes the storefront and admin surfaces over
// HTTP/JSON. Handlers translate engine rejections into 409 responses
// with machine-readable codes; the engine itself never errors.
package api

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"github.com/rs/zerolog"

	"storefront/internal/events"
	"storefront/internal/store"
)

// Server wires the store and the optional event publisher into HTTP
// handlers. A nil publisher disables event publishing.
type Server struct {
	store  *store.Store
	events events.Publisher
	log    zerolog.Logger
}

func New(st *store.Store, ev events.Publisher, logger zerolog.Logger) *Server {
	return &Server{store: st, events: ev, log: logger}
}

// Handler builds the full route table wrapped in CORS and request
// logging. Carts are addressed by the X-Cart-Token header, minted on
// first use and echoed back on every response.
func (s *Server) Handler(allowedOrigins []string) http.Handler {
	r := mux.NewRouter()
	r.Use(s.logRequests)

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/health", s.health).Methods(http.MethodGet)

	api.HandleFunc("/products", s.listProducts).Methods(http.MethodGet)
	api.HandleFunc("/products/{id}", s.getProduct).Methods(http.MethodGet)
	api.HandleFunc("/coupons", s.listCoupons).Methods(http.MethodGet)

	api.HandleFunc("/cart", s.getCart).Methods(http.MethodGet)
	api.HandleFunc("/cart/items", s.addItem).Methods(http.MethodPost)
	api.HandleFunc("/cart/items/{productID}", s.setQuantity).Methods(http.MethodPut)
	api.HandleFunc("/cart/items/{productID}", s.removeItem).Methods(http.MethodDelete)
	api.HandleFunc("/cart/coupon", s.selectCoupon).Methods(http.MethodPost)
	api.HandleFunc("/cart/coupon", s.clearCoupon).Methods(http.MethodDelete)
	api.HandleFunc("/checkout", s.checkout).Methods(http.MethodPost)

	admin := api.PathPrefix("/admin").Subrouter()
	admin.HandleFunc("/products", s.listProducts).Methods(http.MethodGet)
	admin.HandleFunc("/products", s.createProduct).Methods(http.MethodPost)
	admin.HandleFunc("/products/{id}", s.updateProduct).Methods(http.MethodPut)
	admin.HandleFunc("/products/{id}", s.deleteProduct).Methods(http.MethodDelete)
	admin.HandleFunc("/coupons", s.createCoupon).Methods(http.MethodPost)
	admin.HandleFunc("/coupons/{code}", s.deleteCoupon).Methods(http.MethodDelete)

	c := cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowedHeaders: []string{"Content-Type", "X-Cart-Token"},
		ExposedHeaders: []string{"X-Cart-Token"},
	})
	return c.Handler(r)
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
