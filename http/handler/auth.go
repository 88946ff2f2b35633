package handler

import (
	"net/http"

	"github.com/benedict-erwin/manufacture-online/http/middleware"
	"github.com/benedict-erwin/manufacture-online/internal/constants"
	"github.com/benedict-erwin/manufacture-online/internal/entities/user"
	"github.com/benedict-erwin/manufacture-online/internal/store"
	"github.com/benedict-erwin/manufacture-online/pkg/auth"
	"github.com/benedict-erwin/manufacture-online/pkg/logger"
	"github.com/benedict-erwin/manufacture-online/pkg/response"
	"github.com/labstack/echo/v4"
)

// TokenResponse is the /auth reply
type TokenResponse struct {
	AccessToken string `json:"accessToken"`
}

// Root answers the plain-text greeting
func (h *Handler) Root(c echo.Context) error {
	return c.String(http.StatusOK, constants.MsgGreeting)
}

// Auth signs the posted JSON object into an access token. Nothing is
// checked against stored users.
func (h *Handler) Auth(c echo.Context) error {
	var body map[string]any
	if err := bindBody(c, &body); err != nil {
		return err
	}

	token, err := h.tokens.Issue(body)
	if err != nil {
		return err
	}
	return response.OK(c, TokenResponse{AccessToken: token})
}

// Verify confirms the token belongs to the email in the query string
func (h *Handler) Verify(c echo.Context) error {
	claim := middleware.GetClaim(c)
	if err := auth.CheckOwnership(claim, c.QueryParam("email")); err != nil {
		logger.WithScope("Verify").Warn().
			Str("request-id", constants.GetRequestID(c)).
			Msg("Token email does not match query email")
		return response.Message(c, http.StatusForbidden, constants.MsgForbidden)
	}
	return response.Message(c, http.StatusOK, constants.MsgValidUser)
}

// Signup stores the posted user document as-is
func (h *Handler) Signup(c echo.Context) error {
	var body store.Document
	if err := bindBody(c, &body); err != nil {
		return err
	}

	if _, err := h.store.InsertOne(c.Request().Context(), user.Collection, body); err != nil {
		return err
	}
	return response.Message(c, http.StatusOK, constants.MsgUserCreated)
}

// VerifyAdmin returns the user matching the query mapping, or null. With an
// admin role configured the claim must carry it.
func (h *Handler) VerifyAdmin(c echo.Context) error {
	if err := auth.RequireRole(middleware.GetClaim(c), h.adminRole); err != nil {
		return response.Message(c, http.StatusForbidden, constants.MsgForbidden)
	}

	doc, err := h.store.FindOne(c.Request().Context(), user.Collection, store.QueryFilter(c.QueryParams()))
	if err != nil {
		return err
	}
	return response.OK(c, doc)
}
