package http

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/tair/shop-tracker/internal/feed"
	"github.com/tair/shop-tracker/internal/ledger"
	"github.com/tair/shop-tracker/internal/order/domain"
	"github.com/tair/shop-tracker/internal/order/usecase/command"
	"github.com/tair/shop-tracker/internal/order/usecase/query"
	"github.com/tair/shop-tracker/internal/stats"
	"github.com/tair/shop-tracker/kafka"
	"github.com/tair/shop-tracker/pkg/auth"
	"github.com/tair/shop-tracker/pkg/cache"
	"github.com/tair/shop-tracker/pkg/logger"
)

// OrderHandler handles HTTP requests for orders using CQRS handlers. After
// every successful mutation it invalidates the read cache, publishes a
// lifecycle event to Kafka and pushes a fresh snapshot to the order feed.
type OrderHandler struct {
	// Command handlers
	createHandler *command.CreateOrderHandler
	updateHandler *command.UpdateOrderHandler
	deleteHandler *command.DeleteOrderHandler
	toggleHandler *command.ToggleStatusHandler

	// Query handlers
	listHandler  *query.ListOrdersHandler
	statsHandler *query.GetStatsHandler
	chartHandler *query.GetChartHandler

	repo domain.OrderRepository

	// Optional collaborators, nil disables the concern
	cache     *cache.Cache
	publisher *kafka.Publisher
	hub       *feed.Hub

	requestCounter *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
	requestSummary *prometheus.SummaryVec
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(
	createHandler *command.CreateOrderHandler,
	updateHandler *command.UpdateOrderHandler,
	deleteHandler *command.DeleteOrderHandler,
	toggleHandler *command.ToggleStatusHandler,
	listHandler *query.ListOrdersHandler,
	statsHandler *query.GetStatsHandler,
	chartHandler *query.GetChartHandler,
	repo domain.OrderRepository,
) *OrderHandler {
	requestCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "order_service_requests_total",
			Help: "Total number of requests to the order endpoints",
		},
		[]string{"method", "endpoint", "status"},
	)

	requestLatency := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "order_service_request_duration_seconds",
			Help:    "Duration of order endpoint requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	// Summary metric for percentile calculation (p50, p90, p95, p99)
	requestSummary := prometheus.NewSummaryVec(
		prometheus.SummaryOpts{
			Name: "order_service_request_duration_summary",
			Help: "Summary of request durations with percentiles (client-side quantiles)",
			Objectives: map[float64]float64{
				0.5:  0.05,
				0.9:  0.01,
				0.95: 0.01,
				0.99: 0.001,
			},
			MaxAge: 10 * time.Minute,
		},
		[]string{"method", "endpoint"},
	)

	prometheus.MustRegister(requestCounter)
	prometheus.MustRegister(requestLatency)
	prometheus.MustRegister(requestSummary)

	return &OrderHandler{
		createHandler:  createHandler,
		updateHandler:  updateHandler,
		deleteHandler:  deleteHandler,
		toggleHandler:  toggleHandler,
		listHandler:    listHandler,
		statsHandler:   statsHandler,
		chartHandler:   chartHandler,
		repo:           repo,
		requestCounter: requestCounter,
		requestLatency: requestLatency,
		requestSummary: requestSummary,
	}
}

// WithCache attaches the Redis read cache
func (h *OrderHandler) WithCache(c *cache.Cache) *OrderHandler {
	h.cache = c
	return h
}

// WithPublisher attaches the Kafka event publisher
func (h *OrderHandler) WithPublisher(p *kafka.Publisher) *OrderHandler {
	h.publisher = p
	return h
}

// WithFeed attaches the order snapshot feed
func (h *OrderHandler) WithFeed(hub *feed.Hub) *OrderHandler {
	h.hub = hub
	return h
}

type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func (h *OrderHandler) metricsMiddleware(endpoint string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()
		h.requestCounter.WithLabelValues(r.Method, endpoint, strconv.Itoa(rw.statusCode)).Inc()
		h.requestLatency.WithLabelValues(r.Method, endpoint).Observe(duration)
		h.requestSummary.WithLabelValues(r.Method, endpoint).Observe(duration)
	}
}

func (h *OrderHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/orders", h.metricsMiddleware("/api/orders", auth.Middleware(h.ListOrders))).Methods("GET")
	router.HandleFunc("/api/orders/stats", h.metricsMiddleware("/api/orders/stats", auth.Middleware(h.GetStats))).Methods("GET")
	router.HandleFunc("/api/orders/chart", h.metricsMiddleware("/api/orders/chart", auth.Middleware(h.GetChart))).Methods("GET")
	router.HandleFunc("/api/orders", h.metricsMiddleware("/api/orders", auth.Middleware(h.CreateOrder))).Methods("POST")
	router.HandleFunc("/api/orders/{id}", h.metricsMiddleware("/api/orders/{id}", auth.Middleware(h.UpdateOrder))).Methods("PUT")
	router.HandleFunc("/api/orders/{id}", h.metricsMiddleware("/api/orders/{id}", auth.Middleware(h.DeleteOrder))).Methods("DELETE")
	router.HandleFunc("/api/orders/{id}/status", h.metricsMiddleware("/api/orders/{id}/status", auth.Middleware(h.ToggleStatus))).Methods("PATCH")
}

// RegisterHealthCheck exposes the database-backed health endpoint
func (h *OrderHandler) RegisterHealthCheck(router *mux.Router, db *sql.DB) {
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		if err := db.Ping(); err != nil {
			respondJSON(w, http.StatusServiceUnavailable, Response{Success: false, Error: "database unreachable"})
			return
		}
		respondJSON(w, http.StatusOK, Response{Success: true, Message: "ok"})
	}).Methods("GET")
}

// afterMutation fans a successful order write out to the cache, the event
// bus and the snapshot feed
func (h *OrderHandler) afterMutation(ctx context.Context, ownerID uint, eventType string, order *domain.Order) {
	if h.cache != nil {
		h.cache.Invalidate(ctx, ownerID)
	}

	if h.publisher != nil {
		event := kafka.OrderEvent{OwnerID: ownerID}
		if order != nil {
			event.OrderID = order.ID
			event.Status = order.Status
			event.TotalRevenue = order.TotalRevenue
			event.OrderDate = order.Date
		}
		if err := h.publisher.PublishOrderEvent(ctx, eventType, event); err != nil {
			logger.Logger.Error().Err(err).Str("event_type", eventType).Msg("Failed to publish order event")
		}
	}

	if h.hub != nil {
		orders, err := h.repo.FindAll(ownerID)
		if err != nil {
			logger.Logger.Error().Err(err).Uint("owner_id", ownerID).Msg("Failed to load snapshot for feed")
			return
		}
		h.hub.Publish(ownerID, orders)
	}
}

type createOrderRequest struct {
	Cart   map[uint]int `json:"cart"`
	Date   string       `json:"date"`
	Status string       `json:"status"`
}

// CreateOrder handles POST /api/orders
func (h *OrderHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := auth.OwnerIDFromContext(r.Context())
	if !ok {
		respondJSON(w, http.StatusUnauthorized, Response{Success: false, Error: "Unauthorized"})
		return
	}

	var req createOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid request body"})
		return
	}

	date, err := parseDate(req.Date)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid date"})
		return
	}

	order, err := h.createHandler.Handle(command.CreateOrderCommand{
		OwnerID: ownerID,
		Cart:    req.Cart,
		Date:    date,
		Status:  req.Status,
	})
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to create order")
		respondJSON(w, statusForError(err), Response{Success: false, Error: err.Error()})
		return
	}

	h.afterMutation(r.Context(), ownerID, kafka.EventTypeOrderCreated, order)

	respondJSON(w, http.StatusCreated, Response{
		Success: true,
		Message: "Order created successfully",
		Data:    order,
	})
}

// ListOrders handles GET /api/orders
func (h *OrderHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := auth.OwnerIDFromContext(r.Context())
	if !ok {
		respondJSON(w, http.StatusUnauthorized, Response{Success: false, Error: "Unauthorized"})
		return
	}

	orders, err := h.listHandler.Handle(query.ListOrdersQuery{OwnerID: ownerID})
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to list orders")
		respondJSON(w, http.StatusInternalServerError, Response{Success: false, Error: "Failed to list orders"})
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data: map[string]interface{}{
			"orders": orders,
			"total":  len(orders),
		},
	})
}

type updateOrderRequest struct {
	Items  []domain.OrderItem `json:"items"`
	Date   string             `json:"date"`
	Status string             `json:"status"`
}

// UpdateOrder handles PUT /api/orders/{id}
func (h *OrderHandler) UpdateOrder(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := auth.OwnerIDFromContext(r.Context())
	if !ok {
		respondJSON(w, http.StatusUnauthorized, Response{Success: false, Error: "Unauthorized"})
		return
	}

	id, err := parseID(r)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid order ID"})
		return
	}

	var req updateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid request body"})
		return
	}

	date, err := parseDate(req.Date)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid date"})
		return
	}

	order, err := h.updateHandler.Handle(command.UpdateOrderCommand{
		OwnerID: ownerID,
		OrderID: id,
		Items:   req.Items,
		Date:    date,
		Status:  req.Status,
	})
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to update order")
		respondJSON(w, statusForError(err), Response{Success: false, Error: err.Error()})
		return
	}

	h.afterMutation(r.Context(), ownerID, kafka.EventTypeOrderUpdated, order)

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Order updated successfully",
		Data:    order,
	})
}

// DeleteOrder handles DELETE /api/orders/{id}
func (h *OrderHandler) DeleteOrder(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := auth.OwnerIDFromContext(r.Context())
	if !ok {
		respondJSON(w, http.StatusUnauthorized, Response{Success: false, Error: "Unauthorized"})
		return
	}

	id, err := parseID(r)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid order ID"})
		return
	}

	if err := h.deleteHandler.Handle(command.DeleteOrderCommand{OwnerID: ownerID, OrderID: id}); err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to delete order")
		respondJSON(w, statusForError(err), Response{Success: false, Error: err.Error()})
		return
	}

	h.afterMutation(r.Context(), ownerID, kafka.EventTypeOrderDeleted, &domain.Order{ID: id})

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Order deleted successfully",
	})
}

// ToggleStatus handles PATCH /api/orders/{id}/status
func (h *OrderHandler) ToggleStatus(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := auth.OwnerIDFromContext(r.Context())
	if !ok {
		respondJSON(w, http.StatusUnauthorized, Response{Success: false, Error: "Unauthorized"})
		return
	}

	id, err := parseID(r)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid order ID"})
		return
	}

	status, err := h.toggleHandler.Handle(command.ToggleStatusCommand{OwnerID: ownerID, OrderID: id})
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to toggle order status")
		respondJSON(w, statusForError(err), Response{Success: false, Error: err.Error()})
		return
	}

	h.afterMutation(r.Context(), ownerID, kafka.EventTypeOrderStatusChanged, &domain.Order{ID: id, Status: status})

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Order status updated",
		Data:    map[string]interface{}{"status": status},
	})
}

// GetStats handles GET /api/orders/stats
func (h *OrderHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := auth.OwnerIDFromContext(r.Context())
	if !ok {
		respondJSON(w, http.StatusUnauthorized, Response{Success: false, Error: "Unauthorized"})
		return
	}

	rng, custom, err := parseRangeQuery(r)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: err.Error()})
		return
	}

	cacheKey := "stats:" + r.URL.RawQuery
	if payload, hit := h.cache.Get(r.Context(), ownerID, cacheKey); hit {
		w.Header().Set("X-Cache", "HIT")
		w.Header().Set("Content-Type", "application/json")
		w.Write(payload)
		return
	}

	summary, err := h.statsHandler.Handle(query.GetStatsQuery{OwnerID: ownerID, Range: rng, Custom: custom})
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to compute stats")
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: err.Error()})
		return
	}

	h.respondCached(w, r, ownerID, cacheKey, Response{Success: true, Data: summary})
}

// GetChart handles GET /api/orders/chart
func (h *OrderHandler) GetChart(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := auth.OwnerIDFromContext(r.Context())
	if !ok {
		respondJSON(w, http.StatusUnauthorized, Response{Success: false, Error: "Unauthorized"})
		return
	}

	rng, custom, err := parseRangeQuery(r)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: err.Error()})
		return
	}

	cacheKey := "chart:" + r.URL.RawQuery
	if payload, hit := h.cache.Get(r.Context(), ownerID, cacheKey); hit {
		w.Header().Set("X-Cache", "HIT")
		w.Header().Set("Content-Type", "application/json")
		w.Write(payload)
		return
	}

	series, err := h.chartHandler.Handle(query.GetChartQuery{OwnerID: ownerID, Range: rng, Custom: custom})
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to compute chart series")
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: err.Error()})
		return
	}

	h.respondCached(w, r, ownerID, cacheKey, Response{Success: true, Data: series})
}

// respondCached writes the response and stores it for subsequent reads
func (h *OrderHandler) respondCached(w http.ResponseWriter, r *http.Request, ownerID uint, cacheKey string, payload Response) {
	body, err := json.Marshal(payload)
	if err != nil {
		respondJSON(w, http.StatusInternalServerError, Response{Success: false, Error: "Failed to encode response"})
		return
	}

	h.cache.Set(r.Context(), ownerID, cacheKey, body)

	w.Header().Set("X-Cache", "MISS")
	w.Header().Set("Content-Type", "application/json")
	w.Write(body)
}

// statusForError maps domain error kinds to HTTP status codes
func statusForError(err error) int {
	var syncErr *ledger.StockSyncError
	if errors.As(err, &syncErr) {
		return http.StatusInternalServerError
	}

	var notFound *ledger.ProductNotFoundError
	if errors.Is(err, domain.ErrOrderNotFound) || errors.As(err, &notFound) {
		return http.StatusNotFound
	}

	var insufficient *ledger.InsufficientStockError
	if errors.As(err, &insufficient) {
		return http.StatusConflict
	}

	return http.StatusBadRequest
}

func parseID(r *http.Request) (uint, error) {
	vars := mux.Vars(r)
	id, err := strconv.ParseUint(vars["id"], 10, 32)
	return uint(id), err
}

// parseDate normalizes the date representations the dashboard sends:
// RFC3339, datetime-local and plain calendar dates. Empty means "not set".
func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02T15:04", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errors.New("unrecognized date format")
}

func parseRangeQuery(r *http.Request) (stats.Range, *stats.CustomRange, error) {
	rng := stats.Range(r.URL.Query().Get("range"))
	if rng == "" {
		rng = stats.RangeDaily
	}
	if !stats.ValidRange(rng) {
		return "", nil, errors.New("invalid range")
	}

	if rng != stats.RangeCustom {
		return rng, nil, nil
	}

	start, err := parseDate(r.URL.Query().Get("start"))
	if err != nil || start.IsZero() {
		return "", nil, errors.New("custom range requires a valid start date")
	}
	end, err := parseDate(r.URL.Query().Get("end"))
	if err != nil || end.IsZero() {
		return "", nil, errors.New("custom range requires a valid end date")
	}
	if end.Before(start) {
		return "", nil, errors.New("end date must not precede start date")
	}

	return rng, &stats.CustomRange{Start: start, End: end}, nil
}

func respondJSON(w http.ResponseWriter, status int, payload Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}
