package user

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
)

// requestIDKey is where the requestid middleware stores the request id.
const requestIDKey = "requestid"

type Handler struct {
	service *Service
	log     zerolog.Logger
}

func NewHandler(service *Service, log zerolog.Logger) *Handler {
	return &Handler{service: service, log: log}
}

func (h *Handler) RegisterRoutes(router fiber.Router) {
	router.Post("/users/add", h.createUser)
	router.Put("/users/update/:id", h.updateUser)
	router.Delete("/users/delete/:id", h.deleteUser)
	router.Get("/users", h.getUsers)
	router.Get("/users/:id", h.getUser)
}

func (h *Handler) createUser(c *fiber.Ctx) error {
	log := h.requestLogger(c)

	payload, err := parseInput(c)
	if err != nil {
		log.Warn().Err(err).Msg("invalid create body")
		return errorJSON(c, fiber.StatusBadRequest, "Invalid request body.")
	}

	id, err := h.service.Create(c.UserContext(), payload)
	if err != nil {
		if errors.Is(err, ErrValidation) {
			return errorJSON(c, fiber.StatusBadRequest, "All fields are required.")
		}
		log.Error().Err(err).Msg("Error inserting user")
		return errorJSON(c, fiber.StatusInternalServerError, "Failed to add user.")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "User added successfully.",
		"userId":  id,
	})
}

func (h *Handler) updateUser(c *fiber.Ctx) error {
	log := h.requestLogger(c)

	userID, err := parseID(c)
	if err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid user id.")
	}

	payload, err := parseInput(c)
	if err != nil {
		log.Warn().Err(err).Int64("id", userID).Msg("invalid update body")
		return errorJSON(c, fiber.StatusBadRequest, "Invalid request body.")
	}

	affected, err := h.service.Update(c.UserContext(), userID, payload)
	if err != nil {
		if errors.Is(err, ErrValidation) {
			return errorJSON(c, fiber.StatusBadRequest, "All fields are required.")
		}
		log.Error().Err(err).Int64("id", userID).Msg("Error updating user")
		return errorJSON(c, fiber.StatusInternalServerError, "Failed to update user.")
	}
	if affected == 0 {
		log.Warn().Int64("id", userID).Msg("update matched no rows")
	}

	return c.JSON(fiber.Map{"message": "User updated successfully."})
}

func (h *Handler) deleteUser(c *fiber.Ctx) error {
	log := h.requestLogger(c)

	userID, err := parseID(c)
	if err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid user id.")
	}

	affected, err := h.service.Delete(c.UserContext(), userID)
	if err != nil {
		log.Error().Err(err).Int64("id", userID).Msg("Error deleting user")
		return errorJSON(c, fiber.StatusInternalServerError, "Failed to delete user.")
	}
	if affected == 0 {
		log.Warn().Int64("id", userID).Msg("delete matched no rows")
	}

	return c.JSON(fiber.Map{"message": "User deleted successfully."})
}

func (h *Handler) getUsers(c *fiber.Ctx) error {
	users, err := h.service.List(c.UserContext())
	if err != nil {
		h.requestLogger(c).Error().Err(err).Msg("Error fetching users")
		return errorJSON(c, fiber.StatusInternalServerError, "Failed to fetch users.")
	}

	return c.JSON(users)
}

func (h *Handler) getUser(c *fiber.Ctx) error {
	userID, err := parseID(c)
	if err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid user id.")
	}

	user, err := h.service.GetByID(c.UserContext(), userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return errorJSON(c, fiber.StatusNotFound, "User not found.")
		}
		h.requestLogger(c).Error().Err(err).Int64("id", userID).Msg("Error fetching user")
		return errorJSON(c, fiber.StatusInternalServerError, "Failed to fetch user.")
	}

	return c.JSON(user)
}

// parseInput decodes a JSON or urlencoded body. An empty body or an
// unsupported content type yields a zero Input so the presence check
// reports it.
func parseInput(c *fiber.Ctx) (Input, error) {
	var payload Input
	if len(c.Body()) == 0 {
		return payload, nil
	}
	if err := c.BodyParser(&payload); err != nil {
		if errors.Is(err, fiber.ErrUnprocessableEntity) {
			return Input{}, nil
		}
		return Input{}, err
	}
	return payload, nil
}

func parseID(c *fiber.Ctx) (int64, error) {
	return strconv.ParseInt(c.Params("id"), 10, 64)
}

func errorJSON(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"error": message})
}

func (h *Handler) requestLogger(c *fiber.Ctx) *zerolog.Logger {
	ctx := h.log.With().Str("method", c.Method()).Str("path", c.Path())
	if rid, ok := c.Locals(requestIDKey).(string); ok && rid != "" {
		ctx = ctx.Str("request_id", rid)
	}
	log := ctx.Logger()
	return &log
}
