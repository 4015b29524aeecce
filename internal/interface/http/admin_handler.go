package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/vendor-vault/internal/application"
	"github.com/oksasatya/vendor-vault/internal/interface/middleware"
	"github.com/oksasatya/vendor-vault/pkg/response"
)

type AdminHandler struct {
	Ctrl   *application.AccessController
	Logger *logrus.Logger
}

func NewAdminHandler(ctrl *application.AccessController, logger *logrus.Logger) *AdminHandler {
	return &AdminHandler{Ctrl: ctrl, Logger: logger}
}

func (h *AdminHandler) CreateAccount(c *gin.Context) {
	a, err := h.Ctrl.AdminCreatesAccount(c.Request.Context(), middleware.PrincipalFrom(c), application.JSONPayload(c.Request.Body))
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusCreated, toAccountView(a), "account created", nil)
}

// SearchAccounts runs a full-text search over the account index.
// Query: q (required), size (default 10, max 50).
func (h *AdminHandler) SearchAccounts(c *gin.Context) {
	size := parseSize(c.Query("size"))
	hits, err := h.Ctrl.AdminSearchesAccounts(c.Request.Context(), middleware.PrincipalFrom(c), c.Query("q"), size)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, hits, "accounts", map[string]any{"count": len(hits)})
}

// parseSize maps a missing size to 0 (default) and anything that is not a
// positive integer to -1, which the service reports as Validation once the
// caller has been authorized.
func parseSize(raw string) int {
	if raw == "" {
		return 0
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return -1
	}
	return n
}
