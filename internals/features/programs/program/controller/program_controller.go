package controller

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"programpro_backend/internals/features/programs/ordering"
	"programpro_backend/internals/features/programs/program/dto"
	"programpro_backend/internals/features/programs/program/service"
	helper "programpro_backend/internals/helpers"
	helperAuth "programpro_backend/internals/helpers/auth"
)

type ProgramController struct {
	DB *gorm.DB
}

func NewProgramController(db *gorm.DB) *ProgramController {
	return &ProgramController{DB: db}
}

// caller returns the user id and church of an authenticated request.
func caller(c *fiber.Ctx) (userID, churchID int64, err error) {
	if userID, err = helperAuth.GetUserID(c); err != nil {
		return 0, 0, err
	}
	if churchID, err = helperAuth.GetChurchID(c); err != nil {
		return 0, 0, err
	}
	return userID, churchID, nil
}

// bulkError keeps the per-item reasons when every child of a batch failed.
func bulkError(c *fiber.Ctx, err error) error {
	if errors.Is(err, ordering.ErrBatchFailed) {
		return helper.JsonErrorDetails(c, fiber.StatusUnprocessableEntity, "No item of the batch could be saved", err.Error())
	}
	return helper.FromServiceError(c, err)
}

// GET /api/programs?church_id=&is_active=&page=&per_page=
func (pc *ProgramController) List(c *fiber.Ctx) error {
	var q dto.ProgramListQuery

	if raw := strings.TrimSpace(c.Query("church_id")); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Invalid church_id")
		}
		q.ChurchID = &id
	}
	if raw := strings.TrimSpace(c.Query("is_active")); raw != "" {
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Invalid is_active")
		}
		q.IsActive = &b
	}
	p := helper.ResolvePaging(c, 20, 100)
	q.Offset, q.Limit = p.Offset, p.Limit

	rows, total, err := service.ListPrograms(c.UserContext(), pc.DB, q)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	pg := helper.BuildPaginationFromPage(total, p.Page, p.PerPage)
	return helper.JsonList(c, "ok", rows, &pg)
}

// GET /api/programs/:id
func (pc *ProgramController) Get(c *fiber.Ctx) error {
	id, err := helperAuth.ParseIDParam(c, "id")
	if err != nil {
		return err
	}
	detail, err := service.GetProgram(c.UserContext(), pc.DB, id)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonOK(c, "ok", detail)
}

// POST /api/programs
func (pc *ProgramController) Create(c *fiber.Ctx) error {
	userID, churchID, err := caller(c)
	if err != nil {
		return err
	}
	var req dto.CreateProgramRequest
	if err := helper.BindAndValidate(c, &req); err != nil {
		return helper.FromServiceError(c, err)
	}
	p, err := service.CreateProgram(c.UserContext(), pc.DB, churchID, userID, req)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonCreated(c, "Program created", p)
}

// PUT /api/programs/:id
func (pc *ProgramController) Update(c *fiber.Ctx) error {
	_, churchID, err := caller(c)
	if err != nil {
		return err
	}
	id, err := helperAuth.ParseIDParam(c, "id")
	if err != nil {
		return err
	}
	var req dto.UpdateProgramRequest
	if err := helper.BindAndValidate(c, &req); err != nil {
		return helper.FromServiceError(c, err)
	}
	p, err := service.UpdateProgram(c.UserContext(), pc.DB, churchID, id, req)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonUpdated(c, "Program updated", p)
}

// DELETE /api/programs/:id
func (pc *ProgramController) Delete(c *fiber.Ctx) error {
	_, churchID, err := caller(c)
	if err != nil {
		return err
	}
	id, err := helperAuth.ParseIDParam(c, "id")
	if err != nil {
		return err
	}
	if err := service.DeleteProgram(c.UserContext(), pc.DB, churchID, id); err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonDeleted(c, "Program deleted successfully", fiber.Map{"id": id})
}

// POST /api/programs/bulk-import
func (pc *ProgramController) BulkImport(c *fiber.Ctx) error {
	userID, churchID, err := caller(c)
	if err != nil {
		return err
	}
	var req dto.BulkProgramRequest
	if err := helper.BindAndValidate(c, &req); err != nil {
		return helper.FromServiceError(c, err)
	}
	res, err := service.BulkImport(c.UserContext(), pc.DB, churchID, userID, req)
	if err != nil {
		return bulkError(c, err)
	}
	return helper.JsonCreated(c, "Program imported", res)
}

// PUT /api/programs/:id/full
func (pc *ProgramController) ReplaceFull(c *fiber.Ctx) error {
	_, churchID, err := caller(c)
	if err != nil {
		return err
	}
	id, err := helperAuth.ParseIDParam(c, "id")
	if err != nil {
		return err
	}
	var req dto.BulkProgramRequest
	if err := helper.BindAndValidate(c, &req); err != nil {
		return helper.FromServiceError(c, err)
	}
	res, err := service.ReplaceProgram(c.UserContext(), pc.DB, churchID, id, req)
	if err != nil {
		return bulkError(c, err)
	}
	return helper.JsonUpdated(c, "Program saved", res)
}
