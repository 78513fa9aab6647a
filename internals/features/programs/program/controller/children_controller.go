package controller

import (
	"bytes"

	"github.com/gofiber/fiber/v2"

	"programpro_backend/internals/features/programs/ordering"
	"programpro_backend/internals/features/programs/program/dto"
	"programpro_backend/internals/features/programs/program/service"
	helper "programpro_backend/internals/helpers"
	helperAuth "programpro_backend/internals/helpers/auth"
)

// ChildrenController serves one ordered collection of a program. R is the
// request body for create and patch.
type ChildrenController[T any, R interface{ Draft() ordering.Draft }] struct {
	Svc   *service.Children[T]
	Param string // child id route param
	Noun  string // for messages: "Schedule item", "Special guest"
}

func (cc *ChildrenController[T, R]) ids(c *fiber.Ctx, withChild bool) (programID, childID int64, err error) {
	if programID, err = helperAuth.ParseIDParam(c, "id"); err != nil {
		return 0, 0, err
	}
	if withChild {
		if childID, err = helperAuth.ParseIDParam(c, cc.Param); err != nil {
			return 0, 0, err
		}
	}
	return programID, childID, nil
}

// GET /api/programs/:id/<collection>
func (cc *ChildrenController[T, R]) List(c *fiber.Ctx) error {
	programID, _, err := cc.ids(c, false)
	if err != nil {
		return err
	}
	rows, err := cc.Svc.List(c.UserContext(), programID)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonList(c, "ok", rows, nil)
}

// POST /api/programs/:id/<collection>
func (cc *ChildrenController[T, R]) Create(c *fiber.Ctx) error {
	_, churchID, err := caller(c)
	if err != nil {
		return err
	}
	programID, _, err := cc.ids(c, false)
	if err != nil {
		return err
	}
	var req R
	if err := helper.BindAndValidate(c, &req); err != nil {
		return helper.FromServiceError(c, err)
	}
	row, err := cc.Svc.Create(c.UserContext(), churchID, programID, req.Draft())
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonCreated(c, cc.Noun+" created", row)
}

// PATCH /api/programs/:id/<collection>/:child
func (cc *ChildrenController[T, R]) Update(c *fiber.Ctx) error {
	_, churchID, err := caller(c)
	if err != nil {
		return err
	}
	programID, childID, err := cc.ids(c, true)
	if err != nil {
		return err
	}
	var req R
	if err := helper.BindAndValidate(c, &req); err != nil {
		return helper.FromServiceError(c, err)
	}
	row, err := cc.Svc.Update(c.UserContext(), churchID, programID, childID, req.Draft())
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonUpdated(c, cc.Noun+" updated", row)
}

// DELETE /api/programs/:id/<collection>/:child
func (cc *ChildrenController[T, R]) Delete(c *fiber.Ctx) error {
	_, churchID, err := caller(c)
	if err != nil {
		return err
	}
	programID, childID, err := cc.ids(c, true)
	if err != nil {
		return err
	}
	if err := cc.Svc.Delete(c.UserContext(), churchID, programID, childID); err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonDeleted(c, cc.Noun+" deleted", fiber.Map{"id": childID})
}

// PUT /api/programs/:id/<collection>/reorder
// Body: {"items":[{"id":1,"position":0},...]} or the bare array.
func (cc *ChildrenController[T, R]) Reorder(c *fiber.Ctx) error {
	_, churchID, err := caller(c)
	if err != nil {
		return err
	}
	programID, _, err := cc.ids(c, false)
	if err != nil {
		return err
	}

	var req dto.ReorderRequest
	body := bytes.TrimSpace(c.Body())
	if len(body) > 0 && body[0] == '[' {
		err = c.App().Config().JSONDecoder(body, &req.Items)
	} else {
		err = c.BodyParser(&req)
	}
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if req.Items == nil {
		return helper.JsonValidationError(c, map[string][]string{"items": {"is required"}})
	}

	report, rows, err := cc.Svc.Reorder(c.UserContext(), churchID, programID, req.Moves())
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonUpdated(c, cc.Noun+" order saved", dto.ReorderResponse[T]{Items: rows, Report: report})
}
