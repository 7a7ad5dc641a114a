package handler

import (
	"log/slog"
	"net/http"

	"wellread/internal/domain/services"
	"wellread/internal/httputil"
)

// ClubHandler handles club HTTP requests
type ClubHandler struct {
	clubService services.ClubService
	logger      *slog.Logger
}

// NewClubHandler creates a new club handler
func NewClubHandler(clubService services.ClubService, logger *slog.Logger) *ClubHandler {
	return &ClubHandler{
		clubService: clubService,
		logger:      logger,
	}
}

// CreateClub creates a new club with the caller as admin
// POST /api/clubs
func (h *ClubHandler) CreateClub(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req services.CreateClubRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	req.UserID = userID

	club, err := h.clubService.CreateClub(r.Context(), &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, club)
}

// ListClubs retrieves the caller's clubs
// GET /api/clubs?active_only=true
func (h *ClubHandler) ListClubs(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	activeOnly := httputil.QueryBool(r, "active_only", true)

	clubs, err := h.clubService.ListClubs(r.Context(), userID, activeOnly)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, clubs)
}

// GetClub retrieves a club the caller is a member of
// GET /api/clubs/{id}
func (h *ClubHandler) GetClub(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	club, err := h.clubService.GetClub(r.Context(), id, userID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, club)
}

// UpdateClub updates club metadata; admin only
// PATCH /api/clubs/{id}
func (h *ClubHandler) UpdateClub(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req services.UpdateClubRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	club, err := h.clubService.UpdateClub(r.Context(), id, userID, &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, club)
}

// DeleteClub deletes a club; admin only
// DELETE /api/clubs/{id}
func (h *ClubHandler) DeleteClub(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.clubService.DeleteClub(r.Context(), id, userID); err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// JoinClub adds the caller to a club
// POST /api/clubs/{id}/join
func (h *ClubHandler) JoinClub(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	club, err := h.clubService.JoinClub(r.Context(), id, userID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, club)
}

// LeaveClub removes the caller from a club
// POST /api/clubs/{id}/leave
func (h *ClubHandler) LeaveClub(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.clubService.LeaveClub(r.Context(), id, userID); err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListBooks retrieves the club's reading list
// GET /api/clubs/{id}/books
func (h *ClubHandler) ListBooks(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	books, err := h.clubService.ListBooks(r.Context(), id, userID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, books)
}

// AddBook puts a book on the club's reading list
// POST /api/clubs/{id}/books/{bookID}
func (h *ClubHandler) AddBook(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	bookID, ok := pathID(w, r, "bookID")
	if !ok {
		return
	}

	if err := h.clubService.AddBook(r.Context(), id, bookID, userID); err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// RemoveBook takes a book off the club's reading list; admin only
// DELETE /api/clubs/{id}/books/{bookID}
func (h *ClubHandler) RemoveBook(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	bookID, ok := pathID(w, r, "bookID")
	if !ok {
		return
	}

	if err := h.clubService.RemoveBook(r.Context(), id, bookID, userID); err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
