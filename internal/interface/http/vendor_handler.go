package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/vendor-vault/internal/application"
	"github.com/oksasatya/vendor-vault/internal/interface/middleware"
	"github.com/oksasatya/vendor-vault/pkg/apperror"
	"github.com/oksasatya/vendor-vault/pkg/response"
)

type VendorHandler struct {
	Ctrl   *application.AccessController
	Logger *logrus.Logger
}

func NewVendorHandler(ctrl *application.AccessController, logger *logrus.Logger) *VendorHandler {
	return &VendorHandler{Ctrl: ctrl, Logger: logger}
}

// Me returns the caller's own account for any role.
func (h *VendorHandler) Me(c *gin.Context) {
	a, err := h.Ctrl.SelfReadsProfile(c.Request.Context(), middleware.PrincipalFrom(c))
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, toAccountView(a), "profile", nil)
}

// Profile returns the vendor's account with its records. ?data=true includes
// record data; otherwise records are summaries.
func (h *VendorHandler) Profile(c *gin.Context) {
	ctx := c.Request.Context()
	p := middleware.PrincipalFrom(c)
	a, err := h.Ctrl.VendorReadsOwnProfile(ctx, p)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	includeData := false
	if raw := c.Query("data"); raw != "" {
		includeData, err = strconv.ParseBool(raw)
		if err != nil {
			writeError(c, h.Logger, apperror.Invalid("invalid query", map[string]string{"data": "must be a boolean"}))
			return
		}
	}
	records, err := h.Ctrl.VendorListsRecords(ctx, p, includeData)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"account": toAccountView(a),
		"records": toRecordViews(records),
	}, "profile", map[string]any{"count": len(records)})
}

func (h *VendorHandler) UpdateProfile(c *gin.Context) {
	a, err := h.Ctrl.VendorUpdatesOwnProfile(c.Request.Context(), middleware.PrincipalFrom(c), application.JSONPayload(c.Request.Body))
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, toAccountView(a), "profile updated", nil)
}

func (h *VendorHandler) Upload(c *gin.Context) {
	r, err := h.Ctrl.VendorUploadsRecord(c.Request.Context(), middleware.PrincipalFrom(c), application.JSONPayload(c.Request.Body))
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusCreated, toRecordView(r), "record created", nil)
}

func (h *VendorHandler) GetRecord(c *gin.Context) {
	r, err := h.Ctrl.VendorReadsRecord(c.Request.Context(), middleware.PrincipalFrom(c), c.Param("id"))
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, toRecordView(r), "record", nil)
}

func (h *VendorHandler) DeleteRecord(c *gin.Context) {
	ack, err := h.Ctrl.VendorDeletesRecord(c.Request.Context(), middleware.PrincipalFrom(c), c.Param("id"))
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, acknowledgementView{Acknowledged: ack.Acknowledged, DeletedCount: ack.DeletedCount}, "record deleted", nil)
}
