package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/example/workspace-reservations/internal/application"
	"github.com/example/workspace-reservations/internal/persistence"
)

type spaceService interface {
	CreateSpace(ctx context.Context, input application.SpaceInput) (persistence.Space, error)
	UpdateSpace(ctx context.Context, id int64, patch application.SpacePatch) (persistence.Space, error)
	GetSpace(ctx context.Context, id int64) (persistence.Space, error)
	ListSpaces(ctx context.Context) ([]persistence.Space, error)
	DeleteSpace(ctx context.Context, id int64) error
}

type SpaceHandler struct {
	service   spaceService
	responder responder
}

func NewSpaceHandler(service spaceService, logger *slog.Logger) *SpaceHandler {
	return &SpaceHandler{service: service, responder: newResponder(logger)}
}

func (h *SpaceHandler) Create(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var req spaceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	space, err := h.service.CreateSpace(r.Context(), application.SpaceInput{
		Name:        req.Name,
		Location:    req.Location,
		Capacity:    req.Capacity,
		Description: req.Description,
	})
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusCreated, apiResponse{
		Success: true,
		Data:    toSpaceDTO(space),
		Message: "Space created successfully",
	})
}

func (h *SpaceHandler) Update(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	id, ok := ResourceIDFromContext(r.Context())
	if !ok {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidSpaceID)
		return
	}

	var req spacePatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	space, err := h.service.UpdateSpace(r.Context(), id, application.SpacePatch{
		Name:        req.Name,
		Location:    req.Location,
		Capacity:    req.Capacity,
		Description: req.Description,
	})
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, apiResponse{
		Success: true,
		Data:    toSpaceDTO(space),
		Message: "Space updated successfully",
	})
}

func (h *SpaceHandler) Get(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	id, ok := ResourceIDFromContext(r.Context())
	if !ok {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidSpaceID)
		return
	}

	space, err := h.service.GetSpace(r.Context(), id)
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, apiResponse{Success: true, Data: toSpaceDTO(space)})
}

func (h *SpaceHandler) List(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	spaces, err := h.service.ListSpaces(r.Context())
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, apiResponse{Success: true, Data: toSpaceDTOs(spaces)})
}

func (h *SpaceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	id, ok := ResourceIDFromContext(r.Context())
	if !ok {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidSpaceID)
		return
	}

	if err := h.service.DeleteSpace(r.Context(), id); err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, apiResponse{Success: true, Message: "Space deleted successfully"})
}

type spaceRequest struct {
	Name        string  `json:"name"`
	Location    string  `json:"location"`
	Capacity    int     `json:"capacity"`
	Description *string `json:"description"`
}

type spacePatchRequest struct {
	Name        *string `json:"name"`
	Location    *string `json:"location"`
	Capacity    *int    `json:"capacity"`
	Description *string `json:"description"`
}

type spaceDTO struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Location    string  `json:"location"`
	Capacity    int     `json:"capacity"`
	Description *string `json:"description"`
	CreatedAt   string  `json:"createdAt"`
	UpdatedAt   string  `json:"updatedAt"`
}

func toSpaceDTO(space persistence.Space) spaceDTO {
	return spaceDTO{
		ID:          space.ID,
		Name:        space.Name,
		Location:    space.Location,
		Capacity:    space.Capacity,
		Description: space.Description,
		CreatedAt:   space.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:   space.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func toSpaceDTOs(spaces []persistence.Space) []spaceDTO {
	out := make([]spaceDTO, 0, len(spaces))
	for _, space := range spaces {
		out = append(out, toSpaceDTO(space))
	}
	return out
}
