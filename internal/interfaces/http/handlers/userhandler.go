package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"remory/internal/application/auth/usecases"
	"remory/internal/interfaces/http/middleware"
	"remory/internal/shared/logger"
	"remory/internal/shared/utils"
)

type UserHandler struct {
	getProfile     *usecases.GetProfileUseCase
	changePassword *usecases.ChangePasswordUseCase
	withdraw       *usecases.WithdrawUseCase
	changeRole     *usecases.ChangeRoleUseCase
	logger         logger.Interface
}

func NewUserHandler(
	getProfile *usecases.GetProfileUseCase,
	changePassword *usecases.ChangePasswordUseCase,
	withdraw *usecases.WithdrawUseCase,
	changeRole *usecases.ChangeRoleUseCase,
	logger logger.Interface,
) *UserHandler {
	return &UserHandler{
		getProfile:     getProfile,
		changePassword: changePassword,
		withdraw:       withdraw,
		changeRole:     changeRole,
		logger:         logger,
	}
}

// Me handles GET /api/users/me
func (h *UserHandler) Me(c *gin.Context) {
	result, err := h.getProfile.Execute(c.Request.Context(), c.GetString(middleware.ContextSubjectID))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", result)
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required"`
}

// ChangePassword handles PUT /api/users/me/password
func (h *UserHandler) ChangePassword(c *gin.Context) {
	var req changePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	err := h.changePassword.Execute(c.Request.Context(), usecases.ChangePasswordCommand{
		SubjectID: c.GetString(middleware.ContextSubjectID),
		OldSecret: req.CurrentPassword,
		NewSecret: req.NewPassword,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "Password changed", nil)
}

// Withdraw handles DELETE /api/users/me
func (h *UserHandler) Withdraw(c *gin.Context) {
	err := h.withdraw.Execute(c.Request.Context(), usecases.WithdrawCommand{
		SubjectID: c.GetString(middleware.ContextSubjectID),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.NoContentResponse(c)
}

type changeRoleRequest struct {
	Role string `json:"role" binding:"required"`
}

// ChangeRole handles PUT /api/admin/users/:subjectID/role
func (h *UserHandler) ChangeRole(c *gin.Context) {
	var req changeRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	err := h.changeRole.Execute(c.Request.Context(), usecases.ChangeRoleCommand{
		SubjectID: c.Param("subjectID"),
		Role:      req.Role,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "Role changed", nil)
}
