package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Shifts-api/internal/application/dto"
	"github.com/jhoicas/Shifts-api/internal/application/shift"
)

// ShiftHandler serves /api/shifts.
type ShiftHandler struct {
	uc *shift.UseCase
}

// NewShiftHandler builds the shift handler.
func NewShiftHandler(uc *shift.UseCase) *ShiftHandler {
	return &ShiftHandler{uc: uc}
}

// Create godoc
// @Summary      Assign a shift to an employee
// @Description  4 to 12 hours; must not overlap the employee's other shifts that day. Admin only.
// @Tags         shifts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      dto.CreateShiftRequest  true  "userId, date, startTime, endTime"
// @Success      201   {object}  dto.CreateShiftResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/shifts [post]
func (h *ShiftHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateShiftRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.CreateShift(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.CreateShiftResponse{Message: "Shift created", Shift: *out})
}

// List godoc
// @Summary      List shifts
// @Description  Admins see every shift, employees only their own.
// @Tags         shifts
// @Produce      json
// @Security     BearerAuth
// @Param        date  query     string  false  "YYYY-MM-DD"
// @Success      200   {object}  dto.ShiftListResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/shifts [get]
func (h *ShiftHandler) List(c *fiber.Ctx) error {
	list, err := h.uc.ListShifts(c.UserContext(), GetClaims(c), c.Query("date"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ShiftListResponse{Shifts: list})
}

// Delete godoc
// @Summary      Delete a shift
// @Description  Only the shift's owner or an admin.
// @Tags         shifts
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Shift ID"
// @Success      200  {object}  dto.MessageResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/shifts/{id} [delete]
func (h *ShiftHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.DeleteShift(c.UserContext(), GetClaims(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "Shift deleted"})
}

// Roster godoc
// @Summary      Download the visible shifts as a PDF roster
// @Tags         shifts
// @Produce      application/pdf
// @Security     BearerAuth
// @Param        date  query     string  false  "YYYY-MM-DD"
// @Success      200   {file}    binary
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/shifts/roster.pdf [get]
func (h *ShiftHandler) Roster(c *fiber.Ctx) error {
	doc, name, err := h.uc.ExportRoster(c.UserContext(), GetClaims(c), c.Query("date"))
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, name))
	return c.Send(doc)
}
