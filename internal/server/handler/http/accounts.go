// Package http provides HTTP handlers exposing the account store to local
// UI collaborators.
package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/atinyakov/accountkeeper/internal/models"
)

// AccountService defines the store operations required by AccountsHandler.
type AccountService interface {
	// Accounts returns the in-memory collection, persistable or not.
	Accounts() []models.Account
	// Get returns the account with the given id.
	Get(id string) (models.Account, bool)
	// Snapshot returns the persistable subset of the collection.
	Snapshot() []models.Account
	// IsPersistable reports whether an account would be stored durably.
	IsPersistable(models.Account) bool
	// AddEmpty appends a blank account and returns its id.
	AddEmpty(ctx context.Context) (string, error)
	// Upsert replaces or appends an account by id.
	Upsert(ctx context.Context, acc models.Account) error
	// Remove deletes an account by id; unknown ids are ignored.
	Remove(ctx context.Context, id string) error
}

// AccountsHandler handles HTTP requests for the account collection.
type AccountsHandler struct {
	Store AccountService
}

// AccountView is an account annotated with its persistability, so a UI can
// flag records that will not survive a restart.
type AccountView struct {
	models.Account
	Persistable bool `json:"persistable"`
}

func (h *AccountsHandler) view(acc models.Account) AccountView {
	if acc.Labels == nil {
		acc.Labels = []models.Label{}
	}
	return AccountView{Account: acc, Persistable: h.Store.IsPersistable(acc)}
}

// List handles GET /api/accounts.
func (h *AccountsHandler) List(w http.ResponseWriter, r *http.Request) {
	accounts := h.Store.Accounts()
	out := make([]AccountView, 0, len(accounts))
	for _, acc := range accounts {
		out = append(out, h.view(acc))
	}
	writeJSON(w, http.StatusOK, out)
}

// Snapshot handles GET /api/accounts/snapshot.
func (h *AccountsHandler) Snapshot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Store.Snapshot())
}

// Get handles GET /api/accounts/{id}.
func (h *AccountsHandler) Get(w http.ResponseWriter, r *http.Request) {
	acc, ok := h.Store.Get(chi.URLParam(r, "id"))
	if !ok {
		http.Error(w, "account not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, h.view(acc))
}

// Create handles POST /api/accounts by appending a blank account.
func (h *AccountsHandler) Create(w http.ResponseWriter, r *http.Request) {
	id, err := h.Store.AddEmpty(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"id": id})
}

// Upsert handles PUT /api/accounts/{id}. The body is a full account; its id
// may be omitted but must otherwise match the path.
func (h *AccountsHandler) Upsert(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var acc models.Account
	if err := json.NewDecoder(r.Body).Decode(&acc); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}
	if acc.ID != "" && acc.ID != id {
		http.Error(w, "id mismatch", http.StatusBadRequest)
		return
	}
	acc.ID = id

	if err := h.Store.Upsert(r.Context(), acc); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, h.view(acc))
}

// Delete handles DELETE /api/accounts/{id}.
func (h *AccountsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.Store.Remove(r.Context(), chi.URLParam(r, "id")); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Validate handles POST /api/accounts/validate, previewing whether the
// posted account would be persisted.
func (h *AccountsHandler) Validate(w http.ResponseWriter, r *http.Request) {
	var acc models.Account
	if err := json.NewDecoder(r.Body).Decode(&acc); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"persistable": h.Store.IsPersistable(acc)})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
