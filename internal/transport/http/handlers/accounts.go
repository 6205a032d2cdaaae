package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/baechuer/account-gateway/internal/application/account"
	"github.com/baechuer/account-gateway/internal/domain"
	"github.com/baechuer/account-gateway/internal/logger"
	"github.com/baechuer/account-gateway/internal/transport/http/dto"
	"github.com/baechuer/account-gateway/internal/transport/http/response"
	"github.com/baechuer/account-gateway/internal/transport/http/validate"
)

type AccountsHandler struct {
	svc *account.Service
}

func NewAccountsHandler(svc *account.Service) *AccountsHandler {
	return &AccountsHandler{svc: svc}
}

func (h *AccountsHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.List(r.Context())
	if err != nil {
		response.Err(w, r, err)
		return
	}
	response.JSON(w, http.StatusOK, items)
}

func (h *AccountsHandler) Count(w http.ResponseWriter, r *http.Request) {
	n, err := h.svc.Count(r.Context(), account.ParamsFromQuery(r.URL.Query()))
	if err != nil {
		response.Err(w, r, err)
		return
	}
	response.JSON(w, http.StatusOK, dto.CountResp{Count: n})
}

func (h *AccountsHandler) Search(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.Search(r.Context(), account.ParamsFromQuery(r.URL.Query()))
	if err != nil {
		response.Err(w, r, err)
		return
	}
	response.JSON(w, http.StatusOK, items)
}

// Get answers null, not 404, for an id with no record.
func (h *AccountsHandler) Get(w http.ResponseWriter, r *http.Request) {
	a, err := h.svc.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.Err(w, r, err)
		return
	}
	response.JSON(w, http.StatusOK, a)
}

func (h *AccountsHandler) Insert(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeAccount(w, r)
	if !ok {
		return
	}
	a, err := h.svc.Create(r.Context(), req.Input())
	if err != nil {
		response.Err(w, r, err)
		return
	}
	response.JSON(w, http.StatusOK, a)
}

func (h *AccountsHandler) Update(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeAccount(w, r)
	if !ok {
		return
	}
	a, err := h.svc.Update(r.Context(), req.ID, req.Input())
	if err != nil {
		response.Err(w, r, err)
		return
	}
	response.JSON(w, http.StatusOK, a)
}

func (h *AccountsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeAccount(w, r)
	if !ok {
		return
	}
	a, err := h.svc.Delete(r.Context(), req.ID)
	if err != nil {
		response.Err(w, r, err)
		return
	}
	response.JSON(w, http.StatusOK, a)
}

// decodeAccount reads a JSON or urlencoded body. It writes the 400 or 413
// itself.
func decodeAccount(w http.ResponseWriter, r *http.Request) (dto.AccountReq, bool) {
	var req dto.AccountReq

	if validate.IsForm(r) {
		if err := r.ParseForm(); err != nil {
			bodyError(w, r, err, "form decode failed")
			return req, false
		}
		return dto.AccountReqFromForm(r.PostForm), true
	}

	if err := validate.DecodeJSON(r, &req); err != nil {
		bodyError(w, r, err, "json decode failed")
		return req, false
	}
	return req, true
}

func bodyError(w http.ResponseWriter, r *http.Request, err error, msg string) {
	logger.WithCtx(r.Context()).Debug().Err(err).Msg(msg)

	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		response.Err(w, r, domain.ErrBodyTooLarge())
		return
	}
	response.Err(w, r, domain.ErrInvalidBody())
}
