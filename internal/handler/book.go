package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"wellread/internal/domain/services"
	"wellread/internal/httputil"
)

// BookHandler handles book catalog and shelf HTTP requests
type BookHandler struct {
	bookService services.BookService
	logger      *slog.Logger
}

// NewBookHandler creates a new book handler
func NewBookHandler(bookService services.BookService, logger *slog.Logger) *BookHandler {
	return &BookHandler{
		bookService: bookService,
		logger:      logger,
	}
}

// Search queries the Google Books API
// GET /api/books/search?q=...
func (h *BookHandler) Search(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireUserID(w, r); !ok {
		return
	}

	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" {
		httputil.RespondError(w, http.StatusBadRequest, "q query parameter is required")
		return
	}

	volumes, err := h.bookService.Search(r.Context(), query)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, volumes)
}

// GetBook retrieves a book by ID
// GET /api/books/{id}
func (h *BookHandler) GetBook(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireUserID(w, r); !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	book, err := h.bookService.GetBook(r.Context(), id)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, book)
}

// AddToShelf adds a Google Books volume to the caller's shelf
// POST /api/users/me/books
func (h *BookHandler) AddToShelf(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req services.AddBookRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	req.UserID = userID

	book, err := h.bookService.AddToShelf(r.Context(), &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, book)
}

// RemoveFromShelf removes a book from the caller's shelf
// DELETE /api/users/me/books/{id}
func (h *BookHandler) RemoveFromShelf(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.bookService.RemoveFromShelf(r.Context(), userID, id); err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
