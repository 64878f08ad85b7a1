package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/clausehq/comply/internal/comply/service"
	"github.com/clausehq/comply/pkg/complysdk"
	"github.com/clausehq/comply/pkg/httpx"
	"github.com/clausehq/comply/pkg/slogx"
)

type LoginHandler struct {
	AuthService *service.AuthService
}

// ServeHTTP godoc
//
//	@Summary		Login Endpoint
//	@Description	Exchange an email and password for a session token
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		complysdk.LoginRequest	true	"Credentials"
//	@Success		200		{object}	complysdk.LoginResponse	"token, member"
//	@Failure		400		{object}	complysdk.ErrorResponse	"error"
//	@Failure		401		{object}	complysdk.ErrorResponse	"error"
//	@Failure		500		{object}	complysdk.ErrorResponse	"error"
//	@Router			/v1/auth/login [post].
func (h *LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req complysdk.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	member, token, err := h.AuthService.Login(ctx, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			writeError(w, http.StatusUnauthorized, "invalid email or password")
			return
		}
		log.Error("login failed", "err", err)
		writeError(w, http.StatusInternalServerError, "login failed")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, complysdk.LoginResponse{
		Token:  token,
		Member: toSDKMember(member),
	})
}
