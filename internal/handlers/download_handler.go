package handlers

import (
	"errors"
	"fmt"
	"log"

	"quorumhub/internal/api"
	"quorumhub/internal/repositories"
	"quorumhub/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// DownloadHandler handles HTTP requests for download entries.
type DownloadHandler struct {
	service  *services.DownloadService
	validate *validator.Validate
}

// NewDownloadHandler creates a new DownloadHandler.
func NewDownloadHandler(service *services.DownloadService) *DownloadHandler {
	return &DownloadHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the download routes from the contract. The
// list is public; every mutation goes through the session guard.
func (h *DownloadHandler) RegisterRoutes(router fiber.Router, guard fiber.Handler) {
	router.Add(api.Contract.Downloads.List.Method, api.Contract.Downloads.List.Path, h.HandleList)
	router.Add(api.Contract.Downloads.Create.Method, api.Contract.Downloads.Create.Path, guard, h.HandleCreate)
	router.Add(api.Contract.Downloads.Update.Method, api.Contract.Downloads.Update.Path, guard, h.HandleUpdate)
	router.Add(api.Contract.Downloads.Delete.Method, api.Contract.Downloads.Delete.Path, guard, h.HandleDelete)
}

// HandleList retrieves all download entries.
func (h *DownloadHandler) HandleList(c *fiber.Ctx) error {
	downloads, err := h.service.GetAllDownloads()
	if err != nil {
		log.Printf("Error getting all downloads: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve downloads",
		})
	}
	return c.Status(api.Contract.Downloads.List.Success).JSON(downloads)
}

// HandleCreate creates a new download entry.
func (h *DownloadHandler) HandleCreate(c *fiber.Ctx) error {
	var input api.CreateDownloadInput
	if err := c.BodyParser(&input); err != nil {
		log.Printf("Error parsing download create body: %v", err)
		return badRequestBody(c)
	}
	if err := h.validate.Struct(input); err != nil {
		return validationResponse(c, err)
	}

	download, err := h.service.CreateDownload(input)
	if err != nil {
		log.Printf("Error creating download: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not create download",
		})
	}
	return c.Status(api.Contract.Downloads.Create.Success).JSON(download)
}

// HandleUpdate merges the supplied fields onto an existing entry.
func (h *DownloadHandler) HandleUpdate(c *fiber.Ctx) error {
	id := c.Params("id")
	var input api.UpdateDownloadInput
	if err := c.BodyParser(&input); err != nil {
		log.Printf("Error parsing download update body: %v", err)
		return badRequestBody(c)
	}
	if err := h.validate.Struct(input); err != nil {
		return validationResponse(c, err)
	}

	download, err := h.service.UpdateDownload(id, input)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": fmt.Sprintf("Download with ID %s not found", id),
			})
		}
		log.Printf("Error updating download %s: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not update download",
		})
	}
	return c.Status(api.Contract.Downloads.Update.Success).JSON(download)
}

// HandleDelete removes an entry; deleting an absent ID still returns
// 204.
func (h *DownloadHandler) HandleDelete(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := h.service.DeleteDownload(id); err != nil {
		log.Printf("Error deleting download %s: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not delete download",
		})
	}
	return c.SendStatus(api.Contract.Downloads.Delete.Success)
}
