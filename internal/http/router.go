package http

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"
)

type RouterConfig struct {
	Persons      *PersonHandler
	Spaces       *SpaceHandler
	Reservations *ReservationHandler

	// Identity wraps routes that need the caller resolved from an
	// identity token, on top of the global middleware chain.
	Identity   func(http.Handler) http.Handler
	Middleware []func(http.Handler) http.Handler
}

func NewRouter(cfg RouterConfig) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/api/health", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			methodNotAllowed(w, http.MethodGet)
			return
		}
		newResponder(nil).writeJSON(r.Context(), w, http.StatusOK, apiResponse{
			Success: true,
			Message: "API is running",
			Data:    map[string]string{"timestamp": time.Now().UTC().Format(time.RFC3339)},
		})
	})

	if cfg.Persons != nil {
		mux.HandleFunc("/api/persons", func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodGet:
				cfg.Persons.List(w, r)
			case http.MethodPost:
				cfg.Persons.Create(w, r)
			default:
				methodNotAllowed(w, http.MethodGet, http.MethodPost)
			}
		})
		mux.HandleFunc("/api/persons/search", func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet {
				methodNotAllowed(w, http.MethodGet)
				return
			}
			cfg.Persons.Search(w, r)
		})
		mux.HandleFunc("/api/persons/", func(w http.ResponseWriter, r *http.Request) {
			r, ok := requestWithID(w, r, "/api/persons/")
			if !ok {
				return
			}
			switch r.Method {
			case http.MethodGet:
				cfg.Persons.Get(w, r)
			case http.MethodPut:
				cfg.Persons.Update(w, r)
			case http.MethodDelete:
				cfg.Persons.Delete(w, r)
			default:
				methodNotAllowed(w, http.MethodGet, http.MethodPut, http.MethodDelete)
			}
		})
	}

	if cfg.Spaces != nil {
		mux.HandleFunc("/api/spaces", func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodGet:
				cfg.Spaces.List(w, r)
			case http.MethodPost:
				cfg.Spaces.Create(w, r)
			default:
				methodNotAllowed(w, http.MethodGet, http.MethodPost)
			}
		})
		mux.HandleFunc("/api/spaces/", func(w http.ResponseWriter, r *http.Request) {
			r, ok := requestWithID(w, r, "/api/spaces/")
			if !ok {
				return
			}
			switch r.Method {
			case http.MethodGet:
				cfg.Spaces.Get(w, r)
			case http.MethodPut:
				cfg.Spaces.Update(w, r)
			case http.MethodDelete:
				cfg.Spaces.Delete(w, r)
			default:
				methodNotAllowed(w, http.MethodGet, http.MethodPut, http.MethodDelete)
			}
		})
	}

	if cfg.Reservations != nil {
		mux.HandleFunc("/api/reservations", func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodGet:
				cfg.Reservations.List(w, r)
			case http.MethodPost:
				cfg.Reservations.Create(w, r)
			default:
				methodNotAllowed(w, http.MethodGet, http.MethodPost)
			}
		})

		my := http.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet {
				methodNotAllowed(w, http.MethodGet)
				return
			}
			cfg.Reservations.My(w, r)
		}))
		if cfg.Identity != nil {
			my = cfg.Identity(my)
		}
		mux.Handle("/api/reservations/my", my)

		mux.HandleFunc("/api/reservations/", func(w http.ResponseWriter, r *http.Request) {
			r, ok := requestWithID(w, r, "/api/reservations/")
			if !ok {
				return
			}
			switch r.Method {
			case http.MethodGet:
				cfg.Reservations.Get(w, r)
			case http.MethodPut:
				cfg.Reservations.Update(w, r)
			case http.MethodDelete:
				cfg.Reservations.Delete(w, r)
			default:
				methodNotAllowed(w, http.MethodGet, http.MethodPut, http.MethodDelete)
			}
		})
	}

	var handler http.Handler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h, pattern := mux.Handler(r)
		if pattern == "" {
			routeNotFound(w, r)
			return
		}
		h.ServeHTTP(w, r)
	})
	for i := len(cfg.Middleware) - 1; i >= 0; i-- {
		if cfg.Middleware[i] != nil {
			handler = cfg.Middleware[i](handler)
		}
	}

	return handler
}

// requestWithID resolves the trailing numeric path segment and attaches it
// to the request context. A non-numeric segment leaves the context
// untouched so the handler can report the resource-specific message.
func requestWithID(w http.ResponseWriter, r *http.Request, prefix string) (*http.Request, bool) {
	raw := strings.TrimPrefix(r.URL.Path, prefix)
	if raw == "" || strings.Contains(raw, "/") {
		routeNotFound(w, r)
		return nil, false
	}

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return r, true
	}
	return r.WithContext(ContextWithResourceID(r.Context(), id)), true
}

func methodNotAllowed(w http.ResponseWriter, allowed ...string) {
	if len(allowed) > 0 {
		w.Header().Set("Allow", strings.Join(allowed, ", "))
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusMethodNotAllowed)
	fmt.Fprintf(w, `{"success":false,"error":%q}`+"\n", http.StatusText(http.StatusMethodNotAllowed))
}

func routeNotFound(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusNotFound)
	fmt.Fprintf(w, `{"success":false,"error":%q}`+"\n", fmt.Sprintf("Route %s %s not found", r.Method, r.URL.Path))
}
