// Package userprefixdelivery manages the HTTP delivery layer of staff
// prefix mappings.
package userprefixdelivery

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/infinity-otc/balancebot/internal/domain"
	"github.com/infinity-otc/balancebot/pkg/errorspkg"
	"github.com/infinity-otc/balancebot/pkg/web"
)

// Service provides the registry operations the delivery layer needs.
//
//go:generate mockgen -source http.go -destination http_mock.go -package userprefixdelivery
type Service interface {
	SetPrefix(ctx context.Context, userID int64, prefix, username string) (domain.UserPrefix, error)
	ListPrefixes(ctx context.Context) ([]domain.UserPrefix, error)
}

// Handler facilitates user prefix delivery layer logic.
type Handler struct {
	service Service
}

// NewHandler returns a user prefix handler.
func NewHandler(s Service) Handler {
	return Handler{service: s}
}

type data struct {
	UserPrefix domain.UserPrefix `json:"user_prefix"`
}

type response struct {
	Data data `json:"data,omitempty"`
}

type createRequest struct {
	UserID   int64  `json:"user_id" binding:"required"`
	Prefix   string `json:"prefix" binding:"required,alphanum"`
	Username string `json:"username"`
}

// Create handles an http request to map a user to a prefix.
func (h *Handler) Create(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(gctx)

	var req createRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		var (
			ve     validator.ValidationErrors
			errMsg string
		)

		if errors.As(err, &ve) {
			field := ve[0]
			errMsg = field.Field() + web.GetErrorMsg(field)
		}

		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Response{Error: errMsg})

		return
	}

	mapped, err := h.service.SetPrefix(ctx, req.UserID, req.Prefix, req.Username)
	if err != nil {
		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))
		return
	}

	gctx.JSON(http.StatusOK, response{Data: data{mapped}})
}

type listData struct {
	UserPrefixes []domain.UserPrefix `json:"user_prefixes"`
}

type listResponse struct {
	Data listData `json:"data,omitempty"`
}

// List handles an http request to list all prefix mappings.
func (h *Handler) List(gctx *gin.Context) {
	ctx := gctx.Request.Context()

	prefixes, err := h.service.ListPrefixes(ctx)
	if err != nil {
		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))
		return
	}

	gctx.JSON(http.StatusOK, listResponse{Data: listData{prefixes}})
}
