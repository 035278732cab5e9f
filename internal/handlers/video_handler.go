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

// VideoHandler handles HTTP requests for showcase videos.
type VideoHandler struct {
	service  *services.VideoService
	validate *validator.Validate
}

// NewVideoHandler creates a new VideoHandler.
func NewVideoHandler(service *services.VideoService) *VideoHandler {
	return &VideoHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the video routes from the contract.
func (h *VideoHandler) RegisterRoutes(router fiber.Router, guard fiber.Handler) {
	router.Add(api.Contract.Videos.List.Method, api.Contract.Videos.List.Path, h.HandleList)
	router.Add(api.Contract.Videos.Create.Method, api.Contract.Videos.Create.Path, guard, h.HandleCreate)
	router.Add(api.Contract.Videos.Update.Method, api.Contract.Videos.Update.Path, guard, h.HandleUpdate)
	router.Add(api.Contract.Videos.Delete.Method, api.Contract.Videos.Delete.Path, guard, h.HandleDelete)
}

// HandleList retrieves all videos.
func (h *VideoHandler) HandleList(c *fiber.Ctx) error {
	videos, err := h.service.GetAllVideos()
	if err != nil {
		log.Printf("Error getting all videos: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve videos",
		})
	}
	return c.Status(api.Contract.Videos.List.Success).JSON(videos)
}

// HandleCreate creates a new video.
func (h *VideoHandler) HandleCreate(c *fiber.Ctx) error {
	var input api.CreateVideoInput
	if err := c.BodyParser(&input); err != nil {
		log.Printf("Error parsing video create body: %v", err)
		return badRequestBody(c)
	}
	if err := h.validate.Struct(input); err != nil {
		return validationResponse(c, err)
	}

	video, err := h.service.CreateVideo(input)
	if err != nil {
		log.Printf("Error creating video: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not create video",
		})
	}
	return c.Status(api.Contract.Videos.Create.Success).JSON(video)
}

// HandleUpdate merges the supplied fields onto an existing video.
func (h *VideoHandler) HandleUpdate(c *fiber.Ctx) error {
	id := c.Params("id")
	var input api.UpdateVideoInput
	if err := c.BodyParser(&input); err != nil {
		log.Printf("Error parsing video update body: %v", err)
		return badRequestBody(c)
	}
	if err := h.validate.Struct(input); err != nil {
		return validationResponse(c, err)
	}

	video, err := h.service.UpdateVideo(id, input)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": fmt.Sprintf("Video with ID %s not found", id),
			})
		}
		log.Printf("Error updating video %s: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not update video",
		})
	}
	return c.Status(api.Contract.Videos.Update.Success).JSON(video)
}

// HandleDelete removes a video; deleting an absent ID still returns
// 204.
func (h *VideoHandler) HandleDelete(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := h.service.DeleteVideo(id); err != nil {
		log.Printf("Error deleting video %s: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not delete video",
		})
	}
	return c.SendStatus(api.Contract.Videos.Delete.Success)
}
