package handler

import (
	"net/http"

	model "auction-marketplace/internal/models"
	profile "auction-marketplace/internal/profileService"
	"auction-marketplace/services/auction/helpers"
	"auction-marketplace/utils"

	"github.com/gin-gonic/gin"
)

type ProfileHandler struct {
	service ProfileServiceInterface
}

func NewProfileHandler(service ProfileServiceInterface) *ProfileHandler {
	return &ProfileHandler{service: service}
}

// LoginHandler handles POST /login
func (h *ProfileHandler) LoginHandler(c *gin.Context) {
	var req helpers.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "LoginHandler", err)
		return
	}

	session, err := h.service.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		helpers.RespondError(c, "LoginHandler", err, map[string]any{"email": req.Email})
		return
	}

	utils.JSONResponse(c, http.StatusOK, session, "login successful")
	helpers.LogSuccess("LoginHandler", "login successful", map[string]any{"user_id": session.UserID, "role": session.Role})
}

// AddUserHandler handles POST /add-user
func (h *ProfileHandler) AddUserHandler(c *gin.Context) {
	actor, ok := helpers.CurrentActor(c, "AddUserHandler")
	if !ok {
		return
	}

	var req profile.NewUserInput
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "AddUserHandler", err)
		return
	}

	created, err := h.service.AddUser(c.Request.Context(), actor, req)
	if err != nil {
		helpers.RespondError(c, "AddUserHandler", err, map[string]any{"email": req.Email})
		return
	}

	utils.JSONResponse(c, http.StatusCreated, helpers.AddUserResponse{UserID: created.ID}, "user created successfully")
	helpers.LogSuccess("AddUserHandler", "user created successfully", map[string]any{
		"user_id": created.ID,
		"role":    created.Role,
		"admin":   actor.Email,
	})
}

// ListProfilesHandler handles GET /profiles
func (h *ProfileHandler) ListProfilesHandler(c *gin.Context) {
	actor, ok := helpers.CurrentActor(c, "ListProfilesHandler")
	if !ok {
		return
	}

	profiles, err := h.service.ListProfiles(c.Request.Context(), actor)
	if err != nil {
		helpers.RespondError(c, "ListProfilesHandler", err, nil)
		return
	}
	if profiles == nil {
		profiles = []model.ProfileSummary{}
	}

	utils.JSONResponse(c, http.StatusOK, helpers.ProfilesResponse{Profiles: profiles}, "profiles retrieved successfully")
	helpers.LogSuccess("ListProfilesHandler", "profiles retrieved successfully", map[string]any{"count": len(profiles)})
}

// DeleteProfileHandler handles DELETE /profiles/:id
func (h *ProfileHandler) DeleteProfileHandler(c *gin.Context) {
	actor, ok := helpers.CurrentActor(c, "DeleteProfileHandler")
	if !ok {
		return
	}

	id := c.Param("id")
	if err := h.service.DeleteProfile(c.Request.Context(), actor, id); err != nil {
		helpers.RespondError(c, "DeleteProfileHandler", err, map[string]any{"user_id": id})
		return
	}

	utils.JSONResponse(c, http.StatusOK, nil, "user and related data deleted successfully")
	helpers.LogSuccess("DeleteProfileHandler", "user deleted", map[string]any{"user_id": id, "admin": actor.Email})
}
