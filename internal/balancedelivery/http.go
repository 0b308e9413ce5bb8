// Package balancedelivery manages the HTTP delivery layer of the
// per-chat balance ledgers.
package balancedelivery

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/infinity-otc/balancebot/internal/domain"
	"github.com/infinity-otc/balancebot/pkg/web"
)

// Service provides the ledger operations the delivery layer needs.
//
//go:generate mockgen -source http.go -destination http_mock.go -package balancedelivery
type Service interface {
	Load(ctx context.Context, chatID int64, text string) (domain.Ledger, error)
	Snapshot(chatID int64) (string, error)
	Accounts(chatID int64, currency string) ([]domain.Account, error)
}

// Handler facilitates balance delivery layer logic.
type Handler struct {
	service Service
}

// NewHandler returns a balance handler.
func NewHandler(s Service) Handler {
	return Handler{service: s}
}

type chatURI struct {
	ChatID int64 `uri:"id" binding:"required"`
}

type snapshotData struct {
	Snapshot string `json:"snapshot"`
}

type snapshotResponse struct {
	Data snapshotData `json:"data,omitempty"`
}

// Get handles an http request for the chat's formatted balance.
func (h *Handler) Get(gctx *gin.Context) {
	l := zerolog.Ctx(gctx)

	var uri chatURI
	if err := gctx.ShouldBindUri(&uri); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Error(err))

		return
	}

	text, err := h.service.Snapshot(uri.ChatID)
	if err != nil {
		if err == domain.ErrBalanceNotLoaded {
			gctx.JSON(http.StatusNotFound, web.Error(err))
			return
		}

		gctx.JSON(http.StatusInternalServerError, web.Error(err))

		return
	}

	gctx.JSON(http.StatusOK, snapshotResponse{Data: snapshotData{text}})
}

type loadRequest struct {
	Text string `json:"text" binding:"required"`
}

type loadData struct {
	MMKAccounts  int `json:"mmk_accounts"`
	USDTAccounts int `json:"usdt_accounts"`
	THBAccounts  int `json:"thb_accounts"`
}

type loadResponse struct {
	Data loadData `json:"data,omitempty"`
}

// Load handles an http request to load a balance snapshot.
func (h *Handler) Load(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(gctx)

	var uri chatURI
	if err := gctx.ShouldBindUri(&uri); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Error(err))

		return
	}

	var req loadRequest
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

	ledger, err := h.service.Load(ctx, uri.ChatID, req.Text)
	if err != nil {
		gctx.JSON(http.StatusBadRequest, web.Error(err))
		return
	}

	res := loadResponse{
		Data: loadData{
			MMKAccounts:  len(ledger.MMK),
			USDTAccounts: len(ledger.USDT),
			THBAccounts:  len(ledger.THB),
		},
	}

	gctx.JSON(http.StatusOK, res)
}

type listAccountsRequest struct {
	Currency string `form:"currency" binding:"required,currency"`
}

type accountsData struct {
	Accounts []domain.Account `json:"accounts"`
}

type accountsResponse struct {
	Data accountsData `json:"data,omitempty"`
}

// ListAccounts handles an http request to list the chat's accounts for
// a currency.
func (h *Handler) ListAccounts(gctx *gin.Context) {
	l := zerolog.Ctx(gctx)

	var uri chatURI
	if err := gctx.ShouldBindUri(&uri); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Error(err))

		return
	}

	var req listAccountsRequest
	if err := gctx.ShouldBindQuery(&req); err != nil {
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

	accounts, err := h.service.Accounts(uri.ChatID, req.Currency)
	if err != nil {
		if err == domain.ErrBalanceNotLoaded {
			gctx.JSON(http.StatusNotFound, web.Error(err))
			return
		}

		gctx.JSON(http.StatusInternalServerError, web.Error(err))

		return
	}

	gctx.JSON(http.StatusOK, accountsResponse{Data: accountsData{accounts}})
}
