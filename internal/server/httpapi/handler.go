package httpapi

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/authgate/internal/common"
	"github.com/gin-gonic/gin"
)

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type avatarClaimRequest struct {
	Key string `json:"key"`
}

type errorItem struct {
	Msg   string `json:"msg"`
	Param string `json:"param,omitempty"`
}

type errorList struct {
	Errors []errorItem `json:"errors"`
}

func singleError(msg string) errorList {
	return errorList{Errors: []errorItem{{Msg: msg}}}
}

// writeDomainError translates a service error into the wire contract:
// validation and credential errors become a 400 with the structured list,
// everything else is logged and surfaced as an opaque 500.
func (s *Server) writeDomainError(c *gin.Context, err error) {
	var verr *common.ValidationError
	switch {
	case errors.As(err, &verr):
		items := make([]errorItem, 0, len(verr.Violations))
		for _, v := range verr.Violations {
			items = append(items, errorItem{Msg: v.Message, Param: v.Field})
		}
		c.JSON(http.StatusBadRequest, errorList{Errors: items})
	case errors.Is(err, common.ErrorAlreadyExists), errors.Is(err, common.ErrInvalidCredentials):
		c.JSON(http.StatusBadRequest, singleError(err.Error()))
	default:
		s.logger.Error(c.Request.Context(), err.Error())
		c.String(http.StatusInternalServerError, "Server error")
	}
}

func (s *Server) handleRegister(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, singleError("Invalid request body"))
		return
	}

	token, err := s.auth.Register(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		s.writeDomainError(c, err)
		return
	}

	s.logger.Info(c.Request.Context(), "Registered", "email", req.Email)
	c.JSON(http.StatusOK, gin.H{"token": token})
}

func (s *Server) handleLogin(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, singleError("Invalid request body"))
		return
	}

	token, err := s.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		s.writeDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}

func (s *Server) handleIdentify(c *gin.Context) {
	user, err := s.auth.Identify(c.Request.Context(), authedUserID(c))
	if err != nil {
		// A token referencing a missing record is a server-side anomaly
		// here; integrators matching common.ErrorNotFound may map it to
		// 404 instead.
		s.logger.Error(c.Request.Context(), err.Error())
		c.String(http.StatusInternalServerError, "Server Error")
		return
	}

	c.JSON(http.StatusOK, user)
}

func (s *Server) handleAvatarUploadURL(c *gin.Context) {
	key, url, err := s.avatars.NewUploadURL(c.Request.Context(), authedUserID(c))
	if err != nil {
		s.logger.Error(c.Request.Context(), err.Error())
		c.String(http.StatusInternalServerError, "Server error")
		return
	}

	c.JSON(http.StatusOK, gin.H{"key": key, "upload_url": url})
}

func (s *Server) handleAvatarClaim(c *gin.Context) {
	var req avatarClaimRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, singleError("Invalid request body"))
		return
	}

	if err := s.avatars.Claim(c.Request.Context(), authedUserID(c), req.Key); err != nil {
		if errors.Is(err, common.ErrInvalidStorageKey) {
			c.JSON(http.StatusBadRequest, singleError("Invalid storage key"))
			return
		}
		s.logger.Error(c.Request.Context(), err.Error())
		c.String(http.StatusInternalServerError, "Server error")
		return
	}

	c.Status(http.StatusNoContent)
}

func (s *Server) handleAvatarDownloadURL(c *gin.Context) {
	url, err := s.avatars.DownloadURL(c.Request.Context(), authedUserID(c))
	if err != nil {
		s.logger.Error(c.Request.Context(), err.Error())
		c.String(http.StatusInternalServerError, "Server error")
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": url})
}
