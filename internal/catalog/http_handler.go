package catalog

import (
	"net/http"
	"strings"

	"bookcatalog/internal/book"
	"bookcatalog/internal/httpx"
)

type HTTPHandler struct {
	svc *Service
}

func NewHTTPHandler(svc *Service) *HTTPHandler {
	return &HTTPHandler{svc: svc}
}

type createBookReq struct {
	Title       string   `json:"title" validate:"required,notblank"`
	Authors     []string `json:"authors" validate:"required,min=1,dive,notblank"`
	Publisher   string   `json:"publisher" validate:"required,notblank"`
	Description *string  `json:"description,omitempty"`
}

type credentialsReq struct {
	Username string `json:"username" validate:"required,notblank,max=64"`
	Password string `json:"password" validate:"required,max=72"`
}

type statusResp struct {
	Status string     `json:"status"`
	Book   *book.Book `json:"book,omitempty"`
}

type tokenResp struct {
	Token string `json:"token"`
}

// Routes registers every catalog endpoint on mux.
func (h *HTTPHandler) Routes(mux *http.ServeMux) {
	mux.HandleFunc("GET /books", h.ListBooks)
	mux.HandleFunc("POST /books", h.CreateBook)
	mux.HandleFunc("GET /books/{id}", h.ReadBook)
	mux.HandleFunc("PUT /books/{id}", h.UpdateBook)
	mux.HandleFunc("DELETE /books/{id}", h.DeleteBook)
	mux.HandleFunc("GET /me/books", h.ListMyBooks)
	mux.HandleFunc("POST /users/register", h.Register)
	mux.HandleFunc("POST /users/login", h.Login)
}

func credential(r *http.Request) string {
	return r.Header.Get("Authorization")
}

func decodeBody(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := httpx.DecodeJSON(r, v); err != nil {
		if httpx.IsBodyTooLarge(err) {
			httpx.JSONError(r, w, http.StatusRequestEntityTooLarge, httpx.CodeTooLarge, "Request body too large", nil)
			return false
		}
		httpx.JSONError(r, w, http.StatusBadRequest, httpx.CodeBadRequest, "Invalid request body", nil)
		return false
	}
	if details := httpx.ValidateStruct(v); len(details) > 0 {
		httpx.JSONError(r, w, http.StatusBadRequest, httpx.CodeValidation, "Invalid input", details)
		return false
	}
	return true
}

// ListBooks handles GET /books
// @Summary List all books
// @Tags books
// @Produce json
// @Success 200 {object} httpx.SuccessResponse{data=Listing}
// @Failure 500 {object} httpx.ErrorResponse
// @Router /books [get]
func (h *HTTPHandler) ListBooks(w http.ResponseWriter, r *http.Request) {
	listing, err := h.svc.ListBooks(r.Context())
	if err != nil {
		httpx.WriteError(r, w, err)
		return
	}
	httpx.JSONSuccess(r, w, listing, nil)
}

// ListMyBooks handles GET /me/books
// @Summary List the caller's books
// @Tags books
// @Produce json
// @Security Bearer
// @Success 200 {object} httpx.SuccessResponse{data=Listing}
// @Failure 401 {object} httpx.ErrorResponse
// @Failure 500 {object} httpx.ErrorResponse
// @Router /me/books [get]
func (h *HTTPHandler) ListMyBooks(w http.ResponseWriter, r *http.Request) {
	listing, err := h.svc.ListMyBooks(r.Context(), credential(r))
	if err != nil {
		httpx.WriteError(r, w, err)
		return
	}
	httpx.JSONSuccess(r, w, listing, nil)
}

// CreateBook handles POST /books
// @Summary Create a book owned by the caller
// @Tags books
// @Accept json
// @Produce json
// @Security Bearer
// @Param request body createBookReq true "Book"
// @Success 201 {object} httpx.SuccessResponse{data=book.Book}
// @Failure 400 {object} httpx.ErrorResponse
// @Failure 401 {object} httpx.ErrorResponse
// @Failure 500 {object} httpx.ErrorResponse
// @Router /books [post]
func (h *HTTPHandler) CreateBook(w http.ResponseWriter, r *http.Request) {
	var req createBookReq
	if !decodeBody(w, r, &req) {
		return
	}

	in := book.Input{
		Title:       strings.TrimSpace(req.Title),
		Authors:     req.Authors,
		Publisher:   strings.TrimSpace(req.Publisher),
		Description: req.Description,
	}
	b, err := h.svc.CreateBook(r.Context(), credential(r), in)
	if err != nil {
		httpx.WriteError(r, w, err)
		return
	}
	httpx.JSONSuccessCreated(r, w, b)
}

// ReadBook handles GET /books/{id}
// @Summary Get a book by id
// @Tags books
// @Produce json
// @Param id path string true "Book id"
// @Success 200 {object} httpx.SuccessResponse{data=book.Book}
// @Failure 404 {object} httpx.ErrorResponse
// @Router /books/{id} [get]
func (h *HTTPHandler) ReadBook(w http.ResponseWriter, r *http.Request) {
	b, err := h.svc.ReadBook(r.Context(), r.PathValue("id"))
	if err != nil {
		httpx.WriteError(r, w, err)
		return
	}
	httpx.JSONSuccess(r, w, b, nil)
}

// UpdateBook handles PUT /books/{id}
// @Summary Update fields of a book the caller owns
// @Description Only title, authors, publisher and description are applied; other keys are ignored.
// @Tags books
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path string true "Book id"
// @Param request body book.Patch true "Fields to change"
// @Success 200 {object} httpx.SuccessResponse{data=statusResp}
// @Failure 400 {object} httpx.ErrorResponse
// @Failure 401 {object} httpx.ErrorResponse
// @Failure 403 {object} httpx.ErrorResponse
// @Failure 404 {object} httpx.ErrorResponse
// @Failure 500 {object} httpx.ErrorResponse
// @Router /books/{id} [put]
func (h *HTTPHandler) UpdateBook(w http.ResponseWriter, r *http.Request) {
	var p book.Patch
	if !decodeBody(w, r, &p) {
		return
	}

	b, err := h.svc.UpdateBook(r.Context(), credential(r), r.PathValue("id"), p)
	if err != nil {
		httpx.WriteError(r, w, err)
		return
	}
	httpx.JSONSuccess(r, w, statusResp{Status: "success", Book: &b}, nil)
}

// DeleteBook handles DELETE /books/{id}
// @Summary Delete a book the caller owns
// @Tags books
// @Produce json
// @Security Bearer
// @Param id path string true "Book id"
// @Success 200 {object} httpx.SuccessResponse{data=statusResp}
// @Failure 401 {object} httpx.ErrorResponse
// @Failure 403 {object} httpx.ErrorResponse
// @Failure 404 {object} httpx.ErrorResponse
// @Failure 500 {object} httpx.ErrorResponse
// @Router /books/{id} [delete]
func (h *HTTPHandler) DeleteBook(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteBook(r.Context(), credential(r), r.PathValue("id")); err != nil {
		httpx.WriteError(r, w, err)
		return
	}
	httpx.JSONSuccess(r, w, statusResp{Status: "success"}, nil)
}

// Register handles POST /users/register
// @Summary Register a new user
// @Tags users
// @Accept json
// @Produce json
// @Param request body credentialsReq true "Registration request"
// @Success 201 {object} httpx.SuccessResponse{data=statusResp}
// @Failure 400 {object} httpx.ErrorResponse
// @Failure 500 {object} httpx.ErrorResponse
// @Router /users/register [post]
func (h *HTTPHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req credentialsReq
	if !decodeBody(w, r, &req) {
		return
	}
	if err := h.svc.Register(r.Context(), strings.TrimSpace(req.Username), req.Password); err != nil {
		httpx.WriteError(r, w, err)
		return
	}
	httpx.JSONSuccessCreated(r, w, statusResp{Status: "success"})
}

// Login handles POST /users/login
// @Summary Exchange credentials for a token
// @Tags users
// @Accept json
// @Produce json
// @Param request body credentialsReq true "Login request"
// @Success 200 {object} httpx.SuccessResponse{data=tokenResp}
// @Failure 400 {object} httpx.ErrorResponse
// @Failure 500 {object} httpx.ErrorResponse
// @Router /users/login [post]
func (h *HTTPHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req credentialsReq
	if !decodeBody(w, r, &req) {
		return
	}
	token, err := h.svc.Login(r.Context(), strings.TrimSpace(req.Username), req.Password)
	if err != nil {
		httpx.WriteError(r, w, err)
		return
	}
	httpx.JSONSuccess(r, w, tokenResp{Token: token}, nil)
}
