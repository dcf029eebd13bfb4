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

type personService interface {
	CreatePerson(ctx context.Context, input application.PersonInput) (persistence.Person, error)
	UpdatePerson(ctx context.Context, id int64, patch application.PersonPatch) (persistence.Person, error)
	GetPerson(ctx context.Context, id int64) (persistence.Person, error)
	GetPersonByEmail(ctx context.Context, email string) (persistence.Person, error)
	ListPersons(ctx context.Context) ([]persistence.Person, error)
	DeletePerson(ctx context.Context, id int64) error
}

type PersonHandler struct {
	service   personService
	responder responder
}

func NewPersonHandler(service personService, logger *slog.Logger) *PersonHandler {
	return &PersonHandler{service: service, responder: newResponder(logger)}
}

func (h *PersonHandler) Create(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var req personRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	person, err := h.service.CreatePerson(r.Context(), application.PersonInput{Email: req.Email, Role: req.Role})
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusCreated, apiResponse{
		Success: true,
		Data:    toPersonDTO(person),
		Message: "Person created successfully",
	})
}

func (h *PersonHandler) Update(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	id, ok := ResourceIDFromContext(r.Context())
	if !ok {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidPersonID)
		return
	}

	var req personPatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	person, err := h.service.UpdatePerson(r.Context(), id, application.PersonPatch{Email: req.Email, Role: req.Role})
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, apiResponse{
		Success: true,
		Data:    toPersonDTO(person),
		Message: "Person updated successfully",
	})
}

func (h *PersonHandler) Get(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	id, ok := ResourceIDFromContext(r.Context())
	if !ok {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidPersonID)
		return
	}

	person, err := h.service.GetPerson(r.Context(), id)
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, apiResponse{Success: true, Data: toPersonDTO(person)})
}

// Search resolves a person by the email query parameter.
func (h *PersonHandler) Search(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	person, err := h.service.GetPersonByEmail(r.Context(), r.URL.Query().Get("email"))
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, apiResponse{Success: true, Data: toPersonDTO(person)})
}

func (h *PersonHandler) List(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	persons, err := h.service.ListPersons(r.Context())
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, apiResponse{Success: true, Data: toPersonDTOs(persons)})
}

func (h *PersonHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	id, ok := ResourceIDFromContext(r.Context())
	if !ok {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidPersonID)
		return
	}

	if err := h.service.DeletePerson(r.Context(), id); err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, apiResponse{Success: true, Message: "Person deleted successfully"})
}

type personRequest struct {
	Email string `json:"email"`
	Role  string `json:"role"`
}

type personPatchRequest struct {
	Email *string `json:"email"`
	Role  *string `json:"role"`
}

type personDTO struct {
	ID        int64  `json:"id"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

func toPersonDTO(person persistence.Person) personDTO {
	return personDTO{
		ID:        person.ID,
		Email:     person.Email,
		Role:      person.Role,
		CreatedAt: person.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt: person.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func toPersonDTOs(persons []persistence.Person) []personDTO {
	out := make([]personDTO, 0, len(persons))
	for _, person := range persons {
		out = append(out, toPersonDTO(person))
	}
	return out
}
