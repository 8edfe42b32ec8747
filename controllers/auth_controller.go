package controllers

import (
	"backend/configs"
	"backend/pkg/resp"
	"backend/services"
	"backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type AuthController struct {
	svc *services.AuthService
	cfg *configs.Config
}

func NewAuthController(db *gorm.DB, cfg *configs.Config) *AuthController {
	return &AuthController{svc: services.NewAuthService(db), cfg: cfg}
}

type registerReq struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Name     string `json:"name"`
}

type loginReq struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// POST /auth/register
func (ac *AuthController) Register(c *gin.Context) {
	var req registerReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	u, err := ac.svc.Register(req.Email, req.Password, req.Name)
	if err != nil {
		writeErr(c, err)
		return
	}
	resp.Created(c, gin.H{"id": u.ID, "email": u.Email})
}

// POST /auth/login
func (ac *AuthController) Login(c *gin.Context) {
	var req loginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	u, err := ac.svc.Login(req.Email, req.Password)
	if err != nil {
		// login ผิด -> 401 เสมอ ไม่บอกว่า email หรือ password ที่ผิด
		resp.Unauthorized(c, "invalid credentials")
		return
	}

	token, err := utils.GenerateToken(u.ID, u.Role, ac.cfg.JWTSecret, ac.cfg.JWTTTL)
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, gin.H{"token": token, "role": u.Role})
}

// GET /auth/me (ต้อง login)
func (ac *AuthController) Me(c *gin.Context) {
	id := utils.CurrentUserID(c)
	if id == 0 {
		resp.Unauthorized(c, "not logged in")
		return
	}

	u, err := ac.svc.Me(id)
	if err != nil {
		writeErr(c, err)
		return
	}
	resp.OK(c, gin.H{
		"id":    u.ID,
		"email": u.Email,
		"name":  u.Name,
		"role":  utils.CurrentRole(c),
	})
}
