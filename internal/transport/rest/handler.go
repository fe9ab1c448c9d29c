// Package rest provides HTTP handlers for the storefront commerce operations.
package rest

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/abgdnv/storefront/internal/commerce"
	"github.com/abgdnv/storefront/internal/domain"
	serrors "github.com/abgdnv/storefront/internal/errors"
	"github.com/abgdnv/storefront/pkg/web"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

type Handler struct {
	api      commerce.API
	public   PublicConfig
	validate *validator.Validate
	logger   *slog.Logger
}

// NewHandler creates a new Handler serving api.
func NewHandler(api commerce.API, public PublicConfig, logger *slog.Logger) *Handler {
	return &Handler{
		api:      api,
		public:   public,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		logger:   logger.With("component", "rest"),
	}
}

// RegisterRoutes registers the HTTP routes of the storefront.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/products", func(r chi.Router) {
			r.Get("/", h.GetProducts)
			r.Get("/{id}", h.GetProductByID)
		})
		r.Route("/collections", func(r chi.Router) {
			r.Get("/", h.GetCollections)
			r.Get("/{id}", h.GetCollectionByID)
		})
		r.Post("/customers", h.CreateCustomer)
		r.Route("/orders", func(r chi.Router) {
			r.Post("/", h.CreateOrder)
			r.Get("/{id}", h.GetOrderByID)
		})
		r.Get("/config/public", h.GetPublicConfig)
	})

	r.Get("/healthz", h.HealthCheck)
}

// GetProducts lists products, filtered by collectionId and ids and sorted by sort and order.
func (h *Handler) GetProducts(w http.ResponseWriter, r *http.Request) {
	sort, ok := web.ParseEnum(w, r, h.logger, "sort", string(commerce.SortByPrice), string(commerce.SortByName))
	if !ok {
		return
	}
	order, ok := web.ParseEnum(w, r, h.logger, "order", string(commerce.OrderAsc), string(commerce.OrderDesc))
	if !ok {
		return
	}
	query := commerce.ProductQuery{
		CollectionID: r.URL.Query().Get("collectionId"),
		IDs:          web.ParseList(r, "ids"),
		Sort:         commerce.SortKey(sort),
		Order:        commerce.SortOrder(order),
	}
	h.logger.DebugContext(r.Context(), "Received request to list products", "query", query)

	res, err := h.api.GetProducts(r.Context(), query)
	respond(w, r, h.logger, res, err, http.StatusOK)
}

// GetProductByID retrieves a product by its ID.
func (h *Handler) GetProductByID(w http.ResponseWriter, r *http.Request) {
	id, ok := web.PathID(w, r, h.logger)
	if !ok {
		return
	}
	res, err := h.api.GetProductByID(r.Context(), id)
	respond(w, r, h.logger, res, err, http.StatusOK)
}

func (h *Handler) GetCollections(w http.ResponseWriter, r *http.Request) {
	res, err := h.api.GetCollections(r.Context())
	respond(w, r, h.logger, res, err, http.StatusOK)
}

// GetCollectionByID retrieves a collection by its ID, with an empty product list.
func (h *Handler) GetCollectionByID(w http.ResponseWriter, r *http.Request) {
	id, ok := web.PathID(w, r, h.logger)
	if !ok {
		return
	}
	res, err := h.api.GetCollectionByID(r.Context(), id)
	respond(w, r, h.logger, res, err, http.StatusOK)
}

// CreateCustomer handles the creation of a customer record.
func (h *Handler) CreateCustomer(w http.ResponseWriter, r *http.Request) {
	var req customerRequest
	present, ok := h.decodeAndValidate(w, r, &req)
	if !ok {
		return
	}
	// an absent body reaches the client, which rejects it
	var body *domain.CustomerInput
	if present {
		body = req.toInput()
	}
	res, err := h.api.CreateCustomer(r.Context(), body)
	respond(w, r, h.logger, res, err, http.StatusCreated)
}

// CreateOrder handles the creation of a new order.
func (h *Handler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req orderRequest
	present, ok := h.decodeAndValidate(w, r, &req)
	if !ok {
		return
	}
	var body *domain.OrderInput
	if present {
		body = req.toInput()
	}
	res, err := h.api.CreateOrder(r.Context(), body)
	if err == nil && res.OK() {
		h.logger.InfoContext(r.Context(), "Order created successfully", "ID", res.Data.ID, "Number", res.Data.Number)
	}
	respond(w, r, h.logger, res, err, http.StatusCreated)
}

// GetOrderByID retrieves an order by its ID. It asks the client to return
// not-found as an error; respond maps both channels the same way.
func (h *Handler) GetOrderByID(w http.ResponseWriter, r *http.Request) {
	id, ok := web.PathID(w, r, h.logger)
	if !ok {
		return
	}
	res, err := h.api.GetOrderByID(r.Context(), id, commerce.WithThrowOnError())
	respond(w, r, h.logger, res, err, http.StatusOK)
}

// GetPublicConfig returns the site settings and the client visible environment.
func (h *Handler) GetPublicConfig(w http.ResponseWriter, _ *http.Request) {
	web.RespondJSON(w, h.logger, http.StatusOK, h.public)
}

// HealthCheck is a simple health check endpoint.
func (h *Handler) HealthCheck(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}

// decodeAndValidate decodes the body into dst and validates it.
// present is false when the request has no body at all.
func (h *Handler) decodeAndValidate(w http.ResponseWriter, r *http.Request, dst any) (present bool, ok bool) {
	if err := web.DecodeJSON(w, r, dst); err != nil {
		if errors.Is(err, web.ErrEmptyBody) {
			return false, true
		}
		h.logger.WarnContext(r.Context(), "Error decoding request body", "error", err)
		web.RespondError(w, h.logger, http.StatusBadRequest, "Invalid request body")
		return false, false
	}

	if err := h.validate.Struct(dst); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			errorResponse := make(map[string]string)
			for _, fieldErr := range validationErrors {
				errorResponse[fieldErr.Namespace()] = "failed on rule: " + fieldErr.Tag()
			}
			h.logger.WarnContext(r.Context(), "Validation errors occurred", "errors", errorResponse)
			web.RespondJSON(w, h.logger, http.StatusBadRequest, map[string]any{"validation_errors": errorResponse})
			return true, false
		}
		h.logger.ErrorContext(r.Context(), "Error validating request body", "error", err)
		web.RespondError(w, h.logger, http.StatusBadRequest, "Invalid request body")
		return true, false
	}
	return true, true
}

// respond writes either channel of a commerce call: a returned error or an error inside the Result.
func respond[T any](w http.ResponseWriter, r *http.Request, logger *slog.Logger, res *commerce.Result[T], err error, okStatus int) {
	var apiErr *commerce.APIError
	switch {
	case errors.As(err, &apiErr):
		writeAPIError(w, logger, apiErr)
	case errors.Is(err, serrors.ErrMissingBody), errors.Is(err, serrors.ErrVariantNotFound):
		logger.WarnContext(r.Context(), "Rejected request", "error", err)
		web.RespondError(w, logger, http.StatusBadRequest, err.Error())
	case err != nil:
		logger.ErrorContext(r.Context(), "Commerce call failed", "error", err)
		web.RespondError(w, logger, http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
	case res == nil:
		logger.ErrorContext(r.Context(), "Commerce call returned neither data nor error")
		web.RespondError(w, logger, http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
	case res.Error != nil:
		writeAPIError(w, logger, res.Error)
	default:
		web.RespondJSON(w, logger, okStatus, res.Data)
	}
}

func writeAPIError(w http.ResponseWriter, logger *slog.Logger, apiErr *commerce.APIError) {
	status := http.StatusBadRequest
	if errors.Is(apiErr, commerce.ErrNotFound) {
		status = http.StatusNotFound
	}
	web.RespondJSON(w, logger, status, apiErr)
}
