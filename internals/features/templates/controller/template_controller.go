package controller

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"programpro_backend/internals/features/templates/dto"
	"programpro_backend/internals/features/templates/service"
	helper "programpro_backend/internals/helpers"
	helperAuth "programpro_backend/internals/helpers/auth"
)

type TemplateController struct {
	DB *gorm.DB
}

func NewTemplateController(db *gorm.DB) *TemplateController {
	return &TemplateController{DB: db}
}

// GET /api/templates
func (tc *TemplateController) List(c *fiber.Ctx) error {
	churchID, err := helperAuth.GetChurchID(c)
	if err != nil {
		// a user without a church simply has no templates
		return helper.JsonList(c, "ok", []any{}, nil)
	}
	rows, err := service.List(c.UserContext(), tc.DB, churchID)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonList(c, "ok", rows, nil)
}

// GET /api/templates/:id
func (tc *TemplateController) Get(c *fiber.Ctx) error {
	churchID, err := helperAuth.GetChurchID(c)
	if err != nil {
		return err
	}
	id, err := helperAuth.ParseIDParam(c, "id")
	if err != nil {
		return err
	}
	t, err := service.Get(c.UserContext(), tc.DB, churchID, id)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonOK(c, "ok", t)
}

// POST /api/templates
func (tc *TemplateController) Create(c *fiber.Ctx) error {
	churchID, err := helperAuth.GetChurchID(c)
	if err != nil {
		return err
	}
	var req dto.CreateTemplateRequest
	if err := helper.BindAndValidate(c, &req); err != nil {
		return helper.FromServiceError(c, err)
	}
	t, err := service.Create(c.UserContext(), tc.DB, churchID, req)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonCreated(c, "Template created", t)
}

// PUT /api/templates/:id
func (tc *TemplateController) Update(c *fiber.Ctx) error {
	churchID, err := helperAuth.GetChurchID(c)
	if err != nil {
		return err
	}
	id, err := helperAuth.ParseIDParam(c, "id")
	if err != nil {
		return err
	}
	var req dto.UpdateTemplateRequest
	if err := helper.BindAndValidate(c, &req); err != nil {
		return helper.FromServiceError(c, err)
	}
	t, err := service.Update(c.UserContext(), tc.DB, churchID, id, req)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonUpdated(c, "Template updated", t)
}

// DELETE /api/templates/:id
func (tc *TemplateController) Delete(c *fiber.Ctx) error {
	churchID, err := helperAuth.GetChurchID(c)
	if err != nil {
		return err
	}
	id, err := helperAuth.ParseIDParam(c, "id")
	if err != nil {
		return err
	}
	if err := service.Delete(c.UserContext(), tc.DB, churchID, id); err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonDeleted(c, "Template deleted successfully", fiber.Map{"id": id})
}

// POST /api/templates/from-program/:program_id
func (tc *TemplateController) FromProgram(c *fiber.Ctx) error {
	churchID, err := helperAuth.GetChurchID(c)
	if err != nil {
		return err
	}
	programID, err := helperAuth.ParseIDParam(c, "program_id")
	if err != nil {
		return err
	}
	var req dto.FromProgramRequest
	if err := helper.BindAndValidate(c, &req); err != nil {
		return helper.FromServiceError(c, err)
	}
	t, err := service.FromProgram(c.UserContext(), tc.DB, churchID, programID, req.Name)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonCreated(c, "Template created from program", t)
}

// POST /api/templates/:id/apply
func (tc *TemplateController) Apply(c *fiber.Ctx) error {
	userID, err := helperAuth.GetUserID(c)
	if err != nil {
		return err
	}
	churchID, err := helperAuth.GetChurchID(c)
	if err != nil {
		return err
	}
	id, err := helperAuth.ParseIDParam(c, "id")
	if err != nil {
		return err
	}
	var req dto.ApplyTemplateRequest
	if len(c.Body()) > 0 {
		if err := helper.BindAndValidate(c, &req); err != nil {
			return helper.FromServiceError(c, err)
		}
	}
	res, err := service.Apply(c.UserContext(), tc.DB, churchID, userID, id, req)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonCreated(c, "Program created from template", res)
}
