package controller

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"programpro_backend/internals/features/church/dto"
	"programpro_backend/internals/features/church/model"
	helper "programpro_backend/internals/helpers"
	helperAuth "programpro_backend/internals/helpers/auth"
	"programpro_backend/internals/helpers/schema"
)

type ChurchController struct {
	DB *gorm.DB
}

func NewChurchController(db *gorm.DB) *ChurchController {
	return &ChurchController{DB: db}
}

// readColumns: the church columns this database actually has.
func readColumns(ctx context.Context, db *gorm.DB) []string {
	cols := schema.Probe(ctx, db, model.ChurchesTable.Name, model.ChurchesTable.Minimal...)
	out := make([]string, 0, len(model.ChurchColumns))
	for _, c := range model.ChurchColumns {
		if cols.Has(c) {
			out = append(out, c)
		}
	}
	return out
}

// FindChurch loads a church by id; id 0 means the first church.
func FindChurch(ctx context.Context, db *gorm.DB, id int64) (*model.ChurchModel, error) {
	q := db.WithContext(ctx).Model(&model.ChurchModel{}).Select(readColumns(ctx, db))
	if id > 0 {
		q = q.Where("id = ?", id)
	}
	var m model.ChurchModel
	if err := q.Order("id ASC").Take(&m).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

// GET /api/church/info?church_id=
func (cc *ChurchController) GetInfo(c *fiber.Ctx) error {
	var id int64
	if raw := strings.TrimSpace(c.Query("church_id")); raw != "" {
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || n < 0 {
			return helper.JsonError(c, fiber.StatusBadRequest, "Invalid church_id")
		}
		id = n
	}

	church, err := FindChurch(c.UserContext(), cc.DB, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		p := model.Placeholder()
		return helper.JsonOK(c, "OK", p)
	}
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonOK(c, "OK", church)
}

// GET /api/church/settings
func (cc *ChurchController) GetSettings(c *fiber.Ctx) error {
	churchID, err := helperAuth.GetChurchID(c)
	if err != nil {
		return err
	}
	church, err := FindChurch(c.UserContext(), cc.DB, churchID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return helper.JsonError(c, fiber.StatusNotFound, "Church not found")
	}
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonOK(c, "OK", church)
}

// PUT /api/church/settings
func (cc *ChurchController) UpdateSettings(c *fiber.Ctx) error {
	churchID, err := helperAuth.GetChurchID(c)
	if err != nil {
		return err
	}
	var req dto.UpdateChurchRequest
	if err := helper.BindAndValidate(c, &req); err != nil {
		return helper.FromServiceError(c, err)
	}

	ctx := c.UserContext()
	var church *model.ChurchModel
	err = cc.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		n, err := schema.Update(ctx, tx, model.ChurchesTable, schema.Where{"id": churchID}, req.Values())
		if err != nil {
			return err
		}
		if n == 0 {
			return helper.ErrNotFound
		}
		church, err = FindChurch(ctx, tx, churchID)
		return err
	})
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonUpdated(c, "Church settings updated", church)
}
