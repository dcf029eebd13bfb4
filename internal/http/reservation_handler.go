package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/example/workspace-reservations/internal/application"
	"github.com/example/workspace-reservations/internal/persistence"
)

type reservationService interface {
	CreateReservation(ctx context.Context, input application.ReservationInput) (persistence.Reservation, error)
	UpdateReservation(ctx context.Context, id int64, patch application.ReservationPatch) (persistence.Reservation, error)
	GetReservation(ctx context.Context, id int64) (persistence.Reservation, error)
	ListReservations(ctx context.Context, params application.PageParams) (application.ReservationPage, error)
	MyReservations(ctx context.Context, email string, params application.PageParams) (application.ReservationPage, error)
	DeleteReservation(ctx context.Context, id int64) error
}

type ReservationHandler struct {
	service   reservationService
	responder responder
}

func NewReservationHandler(service reservationService, logger *slog.Logger) *ReservationHandler {
	return &ReservationHandler{service: service, responder: newResponder(logger)}
}

func (h *ReservationHandler) Create(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var req reservationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	reservation, err := h.service.CreateReservation(r.Context(), application.ReservationInput{
		PersonID:  req.PersonID,
		SpaceID:   req.SpaceID,
		Date:      req.ReservationDate,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
	})
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusCreated, apiResponse{
		Success: true,
		Data:    toReservationDTO(reservation),
		Message: "Reservation created successfully",
	})
}

func (h *ReservationHandler) Update(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	id, ok := ResourceIDFromContext(r.Context())
	if !ok {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidReservationID)
		return
	}

	var req reservationPatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	reservation, err := h.service.UpdateReservation(r.Context(), id, application.ReservationPatch{
		PersonID:  req.PersonID,
		SpaceID:   req.SpaceID,
		Date:      req.ReservationDate,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
	})
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, apiResponse{
		Success: true,
		Data:    toReservationDTO(reservation),
		Message: "Reservation updated successfully",
	})
}

func (h *ReservationHandler) Get(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	id, ok := ResourceIDFromContext(r.Context())
	if !ok {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidReservationID)
		return
	}

	reservation, err := h.service.GetReservation(r.Context(), id)
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, apiResponse{Success: true, Data: toReservationDTO(reservation)})
}

func (h *ReservationHandler) List(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	params, err := parsePageParams(r.URL.Query())
	if err != nil {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, err)
		return
	}

	page, err := h.service.ListReservations(r.Context(), params)
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, toPaginatedResponse(page))
}

// My lists the reservations owned by the caller resolved from the verified
// identity token.
func (h *ReservationHandler) My(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	identity, ok := IdentityFromContext(r.Context())
	if !ok || identity.Email == "" {
		h.responder.writeError(r.Context(), w, http.StatusUnauthorized, errMissingToken)
		return
	}

	params, err := parsePageParams(r.URL.Query())
	if err != nil {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, err)
		return
	}

	page, err := h.service.MyReservations(r.Context(), identity.Email, params)
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, toPaginatedResponse(page))
}

func (h *ReservationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	id, ok := ResourceIDFromContext(r.Context())
	if !ok {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidReservationID)
		return
	}

	if err := h.service.DeleteReservation(r.Context(), id); err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, apiResponse{Success: true, Message: "Reservation deleted successfully"})
}

// parsePageParams reads page and pageSize from the query string. Absent
// values default to page 1 and size 10; explicit out-of-range values are
// rejected.
func parsePageParams(query url.Values) (application.PageParams, error) {
	params := application.PageParams{Page: 1, PageSize: 10}

	if raw := query.Get("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil || page < 1 {
			return application.PageParams{}, errInvalidPage
		}
		params.Page = page
	}
	if raw := query.Get("pageSize"); raw != "" {
		size, err := strconv.Atoi(raw)
		if err != nil || size < 1 || size > 100 {
			return application.PageParams{}, errInvalidPageSize
		}
		params.PageSize = size
	}

	return params, nil
}

type reservationRequest struct {
	PersonID        int64  `json:"personId"`
	SpaceID         int64  `json:"spaceId"`
	ReservationDate string `json:"reservationDate"`
	StartTime       string `json:"startTime"`
	EndTime         string `json:"endTime"`
}

type reservationPatchRequest struct {
	PersonID        *int64  `json:"personId"`
	SpaceID         *int64  `json:"spaceId"`
	ReservationDate *string `json:"reservationDate"`
	StartTime       *string `json:"startTime"`
	EndTime         *string `json:"endTime"`
}

type reservationDTO struct {
	ID              int64      `json:"id"`
	PersonID        int64      `json:"personId"`
	SpaceID         int64      `json:"spaceId"`
	ReservationDate string     `json:"reservationDate"`
	StartTime       string     `json:"startTime"`
	EndTime         string     `json:"endTime"`
	CreatedAt       string     `json:"createdAt"`
	UpdatedAt       string     `json:"updatedAt"`
	Person          *personDTO `json:"person,omitempty"`
	Space           *spaceDTO  `json:"space,omitempty"`
}

func toReservationDTO(reservation persistence.Reservation) reservationDTO {
	dto := reservationDTO{
		ID:              reservation.ID,
		PersonID:        reservation.PersonID,
		SpaceID:         reservation.SpaceID,
		ReservationDate: reservation.Date,
		StartTime:       reservation.StartTime,
		EndTime:         reservation.EndTime,
		CreatedAt:       reservation.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:       reservation.UpdatedAt.UTC().Format(time.RFC3339),
	}
	if reservation.Person != nil {
		person := toPersonDTO(*reservation.Person)
		dto.Person = &person
	}
	if reservation.Space != nil {
		space := toSpaceDTO(*reservation.Space)
		dto.Space = &space
	}
	return dto
}

func toReservationDTOs(reservations []persistence.Reservation) []reservationDTO {
	out := make([]reservationDTO, 0, len(reservations))
	for _, reservation := range reservations {
		out = append(out, toReservationDTO(reservation))
	}
	return out
}

func toPaginatedResponse(page application.ReservationPage) paginatedResponse {
	return paginatedResponse{
		Success: true,
		Data:    toReservationDTOs(page.Reservations),
		Pagination: paginationDTO{
			Page:       page.Pagination.Page,
			PageSize:   page.Pagination.PageSize,
			Total:      page.Pagination.Total,
			TotalPages: page.Pagination.TotalPages,
		},
	}
}
