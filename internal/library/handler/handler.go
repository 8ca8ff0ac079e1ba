package handler

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gogotex/library-service/internal/library"
	"github.com/gogotex/library-service/internal/library/service"
	"github.com/gogotex/library-service/pkg/logger"
	"github.com/gogotex/library-service/pkg/metrics"
)

const basePath = "/library"

type createRequest struct {
	Author      string `json:"author"`
	Description string `json:"description"`
}

// listResponse always carries total and a non-nil data slice.
type listResponse struct {
	Message string           `json:"message"`
	Total   int              `json:"total"`
	Data    []*library.Entry `json:"data"`
}

// createResponse names the entry "user", the key existing clients read.
type createResponse struct {
	Message string         `json:"message"`
	User    *library.Entry `json:"user"`
}

type dataResponse struct {
	Message string         `json:"message"`
	Data    *library.Entry `json:"data"`
}

type Handler struct {
	svc service.Service
}

func New(svc service.Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterLibraryRoutes wires the five entry routes onto r.
func RegisterLibraryRoutes(r gin.IRouter, svc service.Service) {
	h := New(svc)
	r.POST(basePath, h.Create)
	r.GET(basePath, h.List)
	r.GET(basePath+"/:id", h.Get)
	r.PUT(basePath+"/:id", h.Update)
	r.DELETE(basePath+"/:id", h.Delete)
}

func (h *Handler) Create(c *gin.Context) {
	var req createRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		h.fail(c, "create", library.ErrMalformed, "")
		return
	}
	e, err := h.svc.Create(c.Request.Context(), req.Author, req.Description)
	if err != nil {
		h.fail(c, "create", err, "failed to create entry")
		return
	}
	logger.Debugf("created library entry %s", e.ID.Hex())
	h.respond(c, "create", http.StatusCreated, createResponse{Message: "entry created", User: e})
}

func (h *Handler) List(c *gin.Context) {
	list, err := h.svc.List(c.Request.Context())
	if err != nil {
		h.fail(c, "list", err, "failed to list entries")
		return
	}
	if list == nil {
		list = []*library.Entry{}
	}
	msg := "entries retrieved"
	if len(list) == 0 {
		msg = "library is empty"
	}
	h.respond(c, "list", http.StatusOK, listResponse{Message: msg, Total: len(list), Data: list})
}

func (h *Handler) Get(c *gin.Context) {
	e, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, "get", err, "failed to fetch entry")
		return
	}
	h.respond(c, "get", http.StatusOK, e)
}

func (h *Handler) Update(c *gin.Context) {
	if _, err := library.ParseID(c.Param("id")); err != nil {
		h.fail(c, "update", err, "")
		return
	}
	var p library.Patch
	if err := c.ShouldBindJSON(&p); err != nil && !errors.Is(err, io.EOF) {
		h.fail(c, "update", library.ErrMalformed, "")
		return
	}
	e, err := h.svc.Update(c.Request.Context(), c.Param("id"), p)
	if err != nil {
		h.fail(c, "update", err, "failed to update entry")
		return
	}
	h.respond(c, "update", http.StatusOK, dataResponse{Message: "entry updated", Data: e})
}

func (h *Handler) Delete(c *gin.Context) {
	e, err := h.svc.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, "delete", err, "failed to delete entry")
		return
	}
	h.respond(c, "delete", http.StatusOK, dataResponse{Message: "entry deleted", Data: e})
}

func (h *Handler) respond(c *gin.Context, op string, status int, body interface{}) {
	metrics.EntryOperations.WithLabelValues(op, strconv.Itoa(status)).Inc()
	c.JSON(status, body)
}

// fail maps library error kinds onto status codes. Server errors include the
// underlying error text.
func (h *Handler) fail(c *gin.Context, op string, err error, serverMsg string) {
	status, body := errorResponse(err, serverMsg)
	if status >= http.StatusInternalServerError {
		logger.Errorf("library %s failed: %v", op, err)
	}
	h.respond(c, op, status, body)
}

func errorResponse(err error, serverMsg string) (int, gin.H) {
	switch {
	case errors.Is(err, library.ErrValidation):
		return http.StatusBadRequest, gin.H{"message": library.ErrValidation.Error()}
	case errors.Is(err, library.ErrMalformed):
		return http.StatusBadRequest, gin.H{"message": library.ErrMalformed.Error()}
	case errors.Is(err, library.ErrInvalidID):
		return http.StatusBadRequest, gin.H{"message": library.ErrInvalidID.Error()}
	case errors.Is(err, library.ErrConflict):
		return http.StatusBadRequest, gin.H{"message": "an entry with these values already exists"}
	case errors.Is(err, library.ErrNotFound):
		return http.StatusNotFound, gin.H{"message": "no entry found for this id"}
	}
	if serverMsg == "" {
		serverMsg = "internal error"
	}
	return http.StatusInternalServerError, gin.H{"message": serverMsg, "error": err.Error()}
}
