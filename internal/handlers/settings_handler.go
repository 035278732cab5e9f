package handlers

import (
	"log"

	"quorumhub/internal/api"
	"quorumhub/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// SettingsHandler handles HTTP requests for the singleton settings
// record.
type SettingsHandler struct {
	service  *services.SettingsService
	validate *validator.Validate
}

// NewSettingsHandler creates a new SettingsHandler.
func NewSettingsHandler(service *services.SettingsService) *SettingsHandler {
	return &SettingsHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the settings routes from the contract.
func (h *SettingsHandler) RegisterRoutes(router fiber.Router, guard fiber.Handler) {
	router.Add(api.Contract.Settings.Get.Method, api.Contract.Settings.Get.Path, h.HandleGet)
	router.Add(api.Contract.Settings.Update.Method, api.Contract.Settings.Update.Path, guard, h.HandleUpdate)
}

// HandleGet returns the settings record, creating it with defaults on
// first access.
func (h *SettingsHandler) HandleGet(c *fiber.Ctx) error {
	settings, err := h.service.GetSettings()
	if err != nil {
		log.Printf("Error getting settings: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve settings",
		})
	}
	return c.Status(api.Contract.Settings.Get.Success).JSON(settings)
}

// HandleUpdate applies a partial update to the settings record.
func (h *SettingsHandler) HandleUpdate(c *fiber.Ctx) error {
	var input api.UpdateSettingsInput
	if err := c.BodyParser(&input); err != nil {
		log.Printf("Error parsing settings update body: %v", err)
		return badRequestBody(c)
	}
	if err := h.validate.Struct(input); err != nil {
		return validationResponse(c, err)
	}

	settings, err := h.service.UpdateSettings(input)
	if err != nil {
		log.Printf("Error updating settings: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not update settings",
		})
	}
	return c.Status(api.Contract.Settings.Update.Success).JSON(settings)
}
