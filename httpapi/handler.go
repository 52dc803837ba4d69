// Package httpapi exposes the REST surface consumed by the public site
// and the admin panel. Handlers decode, validate, call the store, and
// translate results to status codes: field errors become 400, the
// store's absent sentinel becomes 404, everything else 500.
package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"restaurant-backend/auth"
	"restaurant-backend/models"
	"restaurant-backend/notify"
	"restaurant-backend/store"
	"restaurant-backend/validate"
)

// Handler bundles the HTTP endpoints over one store.
type Handler struct {
	store    store.Store
	tokens   *auth.Tokens
	throttle *auth.Throttle
	notifier notify.Notifier
	log      *logrus.Logger
}

// New wires a handler. notifier may be a nil *notify.Telegram.
func New(st store.Store, tokens *auth.Tokens, notifier notify.Notifier, log *logrus.Logger) *Handler {
	if log == nil {
		log = logrus.New()
	}
	return &Handler{
		store:    st,
		tokens:   tokens,
		throttle: auth.NewThrottle(),
		notifier: notifier,
		log:      log,
	}
}

// Router builds the full route table under /api.
func (h *Handler) Router() http.Handler {
	r := mux.NewRouter()
	api := r.PathPrefix("/api").Subrouter()

	// Public surface.
	api.HandleFunc("/health", h.health).Methods(http.MethodGet)
	api.HandleFunc("/menu-items", h.listMenuItems).Methods(http.MethodGet)
	api.HandleFunc("/reservations", h.createReservation).Methods(http.MethodPost)
	api.HandleFunc("/contacts", h.createContact).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", h.login).Methods(http.MethodPost)

	// Admin surface, behind a bearer token.
	admin := api.NewRoute().Subrouter()
	admin.Use(h.requireAdmin)
	admin.HandleFunc("/menu-items", h.createMenuItem).Methods(http.MethodPost)
	admin.HandleFunc("/menu-items/{id:[0-9]+}", h.updateMenuItem).Methods(http.MethodPut)
	admin.HandleFunc("/menu-items/{id:[0-9]+}", h.deleteMenuItem).Methods(http.MethodDelete)
	admin.HandleFunc("/reservations", h.listReservations).Methods(http.MethodGet)
	admin.HandleFunc("/reservations/{id:[0-9]+}/status", h.setReservationStatus).Methods(http.MethodPut)
	admin.HandleFunc("/contacts", h.listContacts).Methods(http.MethodGet)

	return corsMiddleware(h.logMiddleware(r))
}

func (h *Handler) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

// --- Menu --------------------------------------------------------------------

func (h *Handler) listMenuItems(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")

	var err error
	var items interface{}
	// "all" and an unset filter mean the whole catalog; the store only
	// ever sees a concrete category.
	if category == "" || category == "all" {
		items, err = h.store.ListMenuItems(r.Context())
	} else {
		items, err = h.store.ListMenuItemsByCategory(r.Context(), category)
	}
	if err != nil {
		h.internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

type menuItemPayload struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Price       string `json:"price"` // major-unit string, e.g. "24.00"
	Image       string `json:"image"`
	Available   *bool  `json:"available"`
}

func (h *Handler) createMenuItem(w http.ResponseWriter, r *http.Request) {
	var payload menuItemPayload
	if err := decodeJSON(r.Body, &payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	cents, err := validate.ToCents(payload.Price)
	if err != nil {
		writeValidationError(w, err)
		return
	}
	if fe := validate.MenuItemInput(payload.Name, payload.Category, cents); fe != nil {
		writeValidationError(w, fe)
		return
	}

	available := true
	if payload.Available != nil {
		available = *payload.Available
	}
	item, err := h.store.CreateMenuItem(r.Context(), store.MenuItemInput{
		Name:        payload.Name,
		Description: payload.Description,
		Category:    payload.Category,
		Price:       cents,
		Image:       payload.Image,
		Available:   available,
	})
	if err != nil {
		h.internalError(w, r, err)
		return
	}
	h.log.WithField("id", item.ID).WithField("category", item.Category).Info("menu item created")
	writeJSON(w, http.StatusCreated, item)
}

// menuItemPatchPayload carries only the fields a PUT may change. Any
// id/createdAt keys in the body are silently ignored, not merged.
type menuItemPatchPayload struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Category    *string `json:"category"`
	Price       *string `json:"price"`
	Image       *string `json:"image"`
	Available   *bool   `json:"available"`
}

func (h *Handler) updateMenuItem(w http.ResponseWriter, r *http.Request) {
	id := pathID(r)

	var payload menuItemPatchPayload
	if err := decodeJSON(r.Body, &payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	patch := store.MenuItemPatch{
		Name:        payload.Name,
		Description: payload.Description,
		Image:       payload.Image,
		Available:   payload.Available,
	}
	if payload.Price != nil {
		cents, err := validate.ToCents(*payload.Price)
		if err != nil {
			writeValidationError(w, err)
			return
		}
		patch.Price = &cents
	}
	if payload.Category != nil {
		if !models.ValidCategory(*payload.Category) {
			writeValidationError(w, &validate.FieldError{Field: "category", Reason: "unknown category: " + *payload.Category})
			return
		}
		patch.Category = payload.Category
	}
	if payload.Name != nil && strings.TrimSpace(*payload.Name) == "" {
		writeValidationError(w, &validate.FieldError{Field: "name", Reason: "name is required"})
		return
	}

	item, err := h.store.UpdateMenuItem(r.Context(), id, patch)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "menu item not found")
		return
	}
	if err != nil {
		h.internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (h *Handler) deleteMenuItem(w http.ResponseWriter, r *http.Request) {
	id := pathID(r)

	item, err := h.store.DeleteMenuItem(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "menu item not found")
		return
	}
	if err != nil {
		h.internalError(w, r, err)
		return
	}
	h.log.WithField("id", id).Info("menu item deleted")
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message":     "Menu item deleted successfully",
		"deletedItem": item,
	})
}

// --- Reservations ------------------------------------------------------------

type reservationPayload struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Date     string `json:"date"`
	Time     string `json:"time"`
	Guests   int    `json:"guests"`
	Comments string `json:"comments"`
	// A client-supplied status is ignored: reservations always start
	// pending.
}

func (h *Handler) createReservation(w http.ResponseWriter, r *http.Request) {
	var payload reservationPayload
	if err := decodeJSON(r.Body, &payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if fe := validate.ReservationInput(payload.Name, payload.Email, payload.Phone, payload.Date, payload.Time, payload.Guests); fe != nil {
		writeValidationError(w, fe)
		return
	}

	res, err := h.store.CreateReservation(r.Context(), store.ReservationInput{
		Name:     payload.Name,
		Email:    payload.Email,
		Phone:    payload.Phone,
		Date:     payload.Date,
		Time:     payload.Time,
		Guests:   payload.Guests,
		Comments: payload.Comments,
	})
	if err != nil {
		h.internalError(w, r, err)
		return
	}
	h.log.WithField("id", res.ID).WithField("date", res.Date).Info("reservation created")
	if h.notifier != nil {
		go h.notifier.ReservationCreated(res)
	}
	writeJSON(w, http.StatusCreated, res)
}

func (h *Handler) listReservations(w http.ResponseWriter, r *http.Request) {
	rs, err := h.store.ListReservations(r.Context())
	if err != nil {
		h.internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rs)
}

func (h *Handler) setReservationStatus(w http.ResponseWriter, r *http.Request) {
	id := pathID(r)

	var payload struct {
		Status string `json:"status"`
	}
	if err := decodeJSON(r.Body, &payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	res, err := h.store.SetReservationStatus(r.Context(), id, payload.Status)
	switch {
	case errors.Is(err, store.ErrInvalidStatus):
		writeValidationError(w, &validate.FieldError{Field: "status", Reason: "status must be pending, confirmed or cancelled"})
	case errors.Is(err, store.ErrNotFound):
		writeError(w, http.StatusNotFound, "reservation not found")
	case err != nil:
		h.internalError(w, r, err)
	default:
		h.log.WithField("id", id).WithField("status", res.Status).Info("reservation status updated")
		writeJSON(w, http.StatusOK, res)
	}
}

// --- Contacts ----------------------------------------------------------------

type contactPayload struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

func (h *Handler) createContact(w http.ResponseWriter, r *http.Request) {
	var payload contactPayload
	if err := decodeJSON(r.Body, &payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if fe := validate.ContactInput(payload.Name, payload.Email, payload.Subject, payload.Message); fe != nil {
		writeValidationError(w, fe)
		return
	}

	c, err := h.store.CreateContact(r.Context(), store.ContactInput{
		Name:    payload.Name,
		Email:   payload.Email,
		Subject: payload.Subject,
		Message: payload.Message,
	})
	if err != nil {
		h.internalError(w, r, err)
		return
	}
	h.log.WithField("id", c.ID).Info("contact message received")
	if h.notifier != nil {
		go h.notifier.ContactCreated(c)
	}
	writeJSON(w, http.StatusCreated, c)
}

func (h *Handler) listContacts(w http.ResponseWriter, r *http.Request) {
	cs, err := h.store.ListContacts(r.Context())
	if err != nil {
		h.internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, cs)
}

// --- Auth --------------------------------------------------------------------

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := decodeJSON(r.Body, &payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if wait := h.throttle.WaitSeconds(payload.Username); wait > 0 {
		writeError(w, http.StatusTooManyRequests, "too many failed attempts, try again in "+strconv.Itoa(wait)+"s")
		return
	}

	user, err := h.store.GetAdminByUsername(r.Context(), payload.Username)
	if errors.Is(err, store.ErrNotFound) || (err == nil && !auth.VerifyPassword(payload.Password, user.PasswordHash)) {
		h.throttle.RecordFailure(payload.Username)
		h.log.WithField("username", payload.Username).Warn("failed admin login")
		writeError(w, http.StatusBadRequest, "invalid username or password")
		return
	}
	if err != nil {
		h.internalError(w, r, err)
		return
	}

	token, err := h.tokens.Issue(user.ID, user.Username)
	if err != nil {
		h.internalError(w, r, err)
		return
	}
	h.throttle.RecordSuccess(payload.Username)
	h.log.WithField("username", user.Username).Info("admin logged in")
	writeJSON(w, http.StatusOK, map[string]string{"token": token})
}

// --- helpers -----------------------------------------------------------------

func pathID(r *http.Request) int64 {
	// The route pattern guarantees digits only.
	id, _ := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	return id
}

func decodeJSON(body io.ReadCloser, dst interface{}) error {
	defer body.Close()
	// Lenient on unknown fields: clients may send id, createdAt or
	// status; those are ignored rather than rejected.
	return json.NewDecoder(body).Decode(dst)
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func writeValidationError(w http.ResponseWriter, err error) {
	var fe *validate.FieldError
	if errors.As(err, &fe) {
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"error":  "validation failed",
			"field":  fe.Field,
			"reason": fe.Reason,
		})
		return
	}
	writeError(w, http.StatusBadRequest, err.Error())
}

func (h *Handler) internalError(w http.ResponseWriter, r *http.Request, err error) {
	// The client gets a sanitized message; the detail stays in the log.
	h.log.WithField("path", r.URL.Path).WithField("method", r.Method).WithError(err).Error("request failed")
	writeError(w, http.StatusInternalServerError, "internal server error")
}
