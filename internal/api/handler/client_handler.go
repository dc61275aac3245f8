package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/martijn/clientbook/internal/api/dto"
	"github.com/martijn/clientbook/internal/core/domain"
	"github.com/martijn/clientbook/internal/core/repository"
)

type ClientHandler struct {
	clientRepo repository.ClientRepository
}

func NewClientHandler(clientRepo repository.ClientRepository) *ClientHandler {
	return &ClientHandler{
		clientRepo: clientRepo,
	}
}

// CreateClient handles POST /clients
func (h *ClientHandler) CreateClient(c *gin.Context) {
	var req dto.CreateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	id, err := h.clientRepo.Create(c.Request.Context(), req.Name, req.Address, req.PhoneNumber)
	if err != nil {
		respondRepositoryError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ClientResponse{
		ID:          id,
		Name:        req.Name,
		Address:     req.Address,
		PhoneNumber: req.PhoneNumber,
	})
}

// GetClient handles GET /clients/:id
func (h *ClientHandler) GetClient(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	client, err := h.clientRepo.GetByID(c.Request.Context(), id)
	if err != nil {
		respondRepositoryError(c, err)
		return
	}
	if client == nil {
		respondError(c, http.StatusNotFound, fmt.Sprintf("Client not found: %d", id))
		return
	}

	c.JSON(http.StatusOK, toClientResponse(client))
}

// ListClients handles GET /clients
func (h *ClientHandler) ListClients(c *gin.Context) {
	clients, err := h.clientRepo.ListAll(c.Request.Context())
	if err != nil {
		respondRepositoryError(c, err)
		return
	}

	c.JSON(http.StatusOK, toClientListResponse(clients))
}

// SearchClients handles GET /clients/search?q=<attribute>
func (h *ClientHandler) SearchClients(c *gin.Context) {
	attribute := c.Query("q")
	if attribute == "" {
		respondError(c, http.StatusBadRequest, "query parameter q is required")
		return
	}

	clients, err := h.clientRepo.Search(c.Request.Context(), attribute)
	if err != nil {
		respondRepositoryError(c, err)
		return
	}

	c.JSON(http.StatusOK, toClientListResponse(clients))
}

// UpdateClient handles PATCH /clients/:id
func (h *ClientHandler) UpdateClient(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req dto.UpdateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	changes, err := domain.ParseChanges(req)
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	updated, err := h.clientRepo.Update(c.Request.Context(), id, changes)
	if err != nil {
		respondRepositoryError(c, err)
		return
	}
	if !updated {
		respondError(c, http.StatusNotFound, fmt.Sprintf("Client not found: %d", id))
		return
	}

	client, err := h.clientRepo.GetByID(c.Request.Context(), id)
	if err != nil {
		respondRepositoryError(c, err)
		return
	}
	if client == nil {
		// Deleted between the update and the read.
		respondError(c, http.StatusNotFound, fmt.Sprintf("Client not found: %d", id))
		return
	}

	c.JSON(http.StatusOK, toClientResponse(client))
}

// DeleteClient handles DELETE /clients/:id
func (h *ClientHandler) DeleteClient(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	deleted, err := h.clientRepo.Delete(c.Request.Context(), id)
	if err != nil {
		respondRepositoryError(c, err)
		return
	}
	if !deleted {
		respondError(c, http.StatusNotFound, fmt.Sprintf("Client not found: %d", id))
		return
	}

	c.Status(http.StatusNoContent)
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, http.StatusBadRequest, fmt.Sprintf("Invalid client id: %s", c.Param("id")))
		return 0, false
	}
	return id, true
}

func toClientResponse(client *domain.Client) dto.ClientResponse {
	return dto.ClientResponse{
		ID:          client.ID,
		Name:        client.Name,
		Address:     client.Address,
		PhoneNumber: client.PhoneNumber,
	}
}

func toClientListResponse(clients []*domain.Client) dto.ClientListResponse {
	response := dto.ClientListResponse{
		Items: make([]dto.ClientResponse, len(clients)),
		Total: len(clients),
	}
	for i, client := range clients {
		response.Items[i] = toClientResponse(client)
	}
	return response
}
