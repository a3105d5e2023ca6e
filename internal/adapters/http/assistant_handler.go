package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/studybuddy/core/internal/application/services"
	"github.com/studybuddy/core/internal/infrastructure/logger"
	"github.com/studybuddy/core/internal/ports"
)

// AssistantHandler handles chat with the study assistant
type AssistantHandler struct {
	assistantService *services.AssistantService
	logger           *logger.Logger
}

// NewAssistantHandler creates a new assistant handler
func NewAssistantHandler(assistantService *services.AssistantService, logger *logger.Logger) *AssistantHandler {
	return &AssistantHandler{
		assistantService: assistantService,
		logger:           logger,
	}
}

// Chat godoc
// @Summary Chat with the assistant
// @Description Send a message. Notes from folder_ids are attached as context. Without conversation_id a new conversation is started.
// @Tags assistant
// @Accept json
// @Produce json
// @Param request body ports.ChatRequest true "Message"
// @Success 200 {object} ports.ChatResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /assistant/chat [post]
func (h *AssistantHandler) Chat(c echo.Context) error {
	var req ports.ChatRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	resp, err := h.assistantService.Chat(c.Request().Context(), req)
	if err != nil {
		h.logger.Errorw("Assistant chat failed", "error", err, "conversation_id", req.ConversationID)
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, resp)
}

// ChatImage godoc
// @Summary Ask the assistant about an image
// @Description Send one image with a question to a gemini vision model. The exchange is not stored.
// @Tags assistant
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Image"
// @Param message formData string true "Question about the image"
// @Param model formData string false "Model name"
// @Success 200 {object} ports.ImageChatResponse
// @Failure 400 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /assistant/chat/image [post]
func (h *AssistantHandler) ChatImage(c echo.Context) error {
	files, err := readUploads(c, "file")
	if err != nil {
		return err
	}
	if len(files) != 1 {
		return echo.NewHTTPError(http.StatusBadRequest, "Upload exactly one image")
	}

	resp, err := h.assistantService.ChatImage(c.Request().Context(), c.FormValue("message"), c.FormValue("model"), files[0])
	if err != nil {
		h.logger.Errorw("Image chat failed", "error", err, "filename", files[0].Filename)
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *AssistantHandler) GetConversation(c echo.Context) error {
	conv, err := h.assistantService.GetConversation(c.Request().Context(), c.Param("id"))
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, conv)
}
