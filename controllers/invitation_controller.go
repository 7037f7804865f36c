// File: /controllers/invitation_controller.go
package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"gatherly-api/models"
	"gatherly-api/services"
	"gatherly-api/utils"
)

type InvitationController struct {
	invitations *services.InvitationService
}

func NewInvitationController(invitations *services.InvitationService) *InvitationController {
	return &InvitationController{invitations: invitations}
}

type CreateInvitationRequest struct {
	EventID   string `json:"event_id" binding:"required"`
	InviteeID string `json:"invitee_id" binding:"required"`
	Content   string `json:"content"`
}

func (ic *InvitationController) CreateInvitation(c *gin.Context) {
	invitorID := c.GetString("user_id")

	var req CreateInvitationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	invitation, err := ic.invitations.CreateInvitation(invitorID, req.EventID, req.InviteeID, req.Content)
	if err != nil {
		utils.SendServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, invitation)
}

func (ic *InvitationController) GetInvitation(c *gin.Context) {
	userID := c.GetString("user_id")
	invitationID := c.Param("id")

	invitation, err := ic.invitations.GetInvitationByID(userID, invitationID)
	if err != nil {
		utils.SendServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, invitation)
}

func (ic *InvitationController) DeleteInvitation(c *gin.Context) {
	userID := c.GetString("user_id")
	invitationID := c.Param("id")

	invitation, err := ic.invitations.DeleteInvitation(userID, invitationID)
	if err != nil {
		utils.SendServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, invitation)
}

func (ic *InvitationController) GetInvitations(c *gin.Context) {
	userID := c.GetString("user_id")

	invitations, err := ic.invitations.ListInvitations(userID)
	if err != nil {
		utils.SendServiceError(c, err)
		return
	}

	for i := range invitations {
		invitations[i].Invitor.Password = ""
		invitations[i].Invitee.Password = ""
		invitations[i].Event.Organizer.Password = ""
	}

	c.JSON(http.StatusOK, gin.H{"invitations": invitations})
}

type CreateRSVPRequest struct {
	InvitationID string `json:"invitation_id" binding:"required"`
	Response     string `json:"response" binding:"required"`
}

func (ic *InvitationController) CreateRSVP(c *gin.Context) {
	userID := c.GetString("user_id")

	var req CreateRSVPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rsvp, err := ic.invitations.CreateRSVP(userID, req.InvitationID, models.RSVPResponse(req.Response))
	if err != nil {
		utils.SendServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, rsvp)
}

func (ic *InvitationController) GetRSVP(c *gin.Context) {
	userID := c.GetString("user_id")
	rsvpID := c.Param("id")

	rsvp, err := ic.invitations.GetRSVPByID(userID, rsvpID)
	if err != nil {
		utils.SendServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, rsvp)
}

func (ic *InvitationController) DeleteRSVP(c *gin.Context) {
	userID := c.GetString("user_id")
	rsvpID := c.Param("id")

	rsvp, err := ic.invitations.DeleteRSVP(userID, rsvpID)
	if err != nil {
		utils.SendServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, rsvp)
}
