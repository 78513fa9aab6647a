package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bytedance/sonic"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"programpro_backend/internals/features/programs/ordering"
	programDTO "programpro_backend/internals/features/programs/program/dto"
	programService "programpro_backend/internals/features/programs/program/service"
	"programpro_backend/internals/features/templates/dto"
	"programpro_backend/internals/features/templates/model"
	helper "programpro_backend/internals/helpers"
	"programpro_backend/internals/helpers/schema"
)

var emptyContent = datatypes.JSON(`{}`)

// find loads a template and checks it belongs to churchID.
func find(ctx context.Context, db *gorm.DB, churchID, id int64) (*model.ProgramTemplateModel, error) {
	var t model.ProgramTemplateModel
	if err := db.WithContext(ctx).Take(&t, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, helper.ErrNotFound
		}
		return nil, err
	}
	if t.ChurchID == nil || *t.ChurchID != churchID {
		return nil, helper.ErrForbidden
	}
	return &t, nil
}

func validContent(c datatypes.JSON) error {
	if !sonic.Valid(c) {
		return &schema.FieldError{Table: "program_templates", Field: "content", Reason: "must be valid JSON", Err: schema.ErrInvalid}
	}
	return nil
}

func List(ctx context.Context, db *gorm.DB, churchID int64) ([]model.ProgramTemplateModel, error) {
	out := make([]model.ProgramTemplateModel, 0)
	err := db.WithContext(ctx).
		Where("church_id = ?", churchID).
		Order("created_at DESC").
		Order("id DESC").
		Find(&out).Error
	return out, err
}

func Get(ctx context.Context, db *gorm.DB, churchID, id int64) (*model.ProgramTemplateModel, error) {
	return find(ctx, db, churchID, id)
}

func Create(ctx context.Context, db *gorm.DB, churchID int64, req dto.CreateTemplateRequest) (*model.ProgramTemplateModel, error) {
	content := emptyContent
	if dto.HasContent(req.Content) {
		if err := validContent(req.Content); err != nil {
			return nil, err
		}
		content = req.Content
	}
	t := model.ProgramTemplateModel{ChurchID: &churchID, Name: strings.TrimSpace(req.Name), Content: content}
	if err := db.WithContext(ctx).Create(&t).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

func Update(ctx context.Context, db *gorm.DB, churchID, id int64, req dto.UpdateTemplateRequest) (*model.ProgramTemplateModel, error) {
	var out *model.ProgramTemplateModel
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		t, err := find(ctx, tx, churchID, id)
		if err != nil {
			return err
		}
		updates := map[string]any{}
		if req.Name != nil && strings.TrimSpace(*req.Name) != "" {
			updates["name"] = strings.TrimSpace(*req.Name)
		}
		if dto.HasContent(req.Content) {
			if err := validContent(req.Content); err != nil {
				return err
			}
			updates["content"] = req.Content
		}
		if len(updates) > 0 {
			if err := tx.Model(t).Updates(updates).Error; err != nil {
				return err
			}
		}
		out, err = find(ctx, tx, churchID, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func Delete(ctx context.Context, db *gorm.DB, churchID, id int64) error {
	t, err := find(ctx, db, churchID, id)
	if err != nil {
		return err
	}
	return db.WithContext(ctx).Delete(t).Error
}

// FromProgram snapshots a program of the caller's church: title, theme and
// both collections in order. Dates and ids are not kept.
func FromProgram(ctx context.Context, db *gorm.DB, churchID, programID int64, name string) (*model.ProgramTemplateModel, error) {
	if err := programService.Authorize(ctx, db, programID, churchID); err != nil {
		return nil, err
	}
	detail, err := programService.GetProgram(ctx, db, programID)
	if err != nil {
		return nil, err
	}

	title := detail.Title
	snap := programDTO.BulkProgramRequest{
		Title:         &title,
		Theme:         detail.Theme,
		ScheduleItems: make([]programDTO.ScheduleItemRequest, 0, len(detail.ScheduleItems)),
		SpecialGuests: make([]programDTO.SpecialGuestRequest, 0, len(detail.SpecialGuests)),
	}
	for _, it := range detail.ScheduleItems {
		it := it
		snap.ScheduleItems = append(snap.ScheduleItems, programDTO.ScheduleItemRequest{
			Title:           &it.Title,
			Description:     it.Description,
			StartTime:       it.StartTime,
			DurationMinutes: it.DurationMinutes,
			OrderIndex:      it.OrderIndex,
			Type:            it.Type,
		})
	}
	for _, g := range detail.SpecialGuests {
		g := g
		snap.SpecialGuests = append(snap.SpecialGuests, programDTO.SpecialGuestRequest{
			Name:         &g.Name,
			Role:         g.Role,
			Description:  g.Description,
			Bio:          g.Bio,
			PhotoURL:     g.PhotoURL,
			DisplayOrder: g.DisplayOrder,
		})
	}

	raw, err := sonic.Marshal(snap)
	if err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}
	return Create(ctx, db, churchID, dto.CreateTemplateRequest{Name: name, Content: raw})
}

// Apply creates a new program in the caller's church from a template.
func Apply(ctx context.Context, db *gorm.DB, churchID, userID, id int64, req dto.ApplyTemplateRequest) (*ordering.BulkResult, error) {
	t, err := find(ctx, db, churchID, id)
	if err != nil {
		return nil, err
	}

	var body programDTO.BulkProgramRequest
	if dto.HasContent(t.Content) {
		if err := sonic.Unmarshal(t.Content, &body); err != nil {
			return nil, &schema.FieldError{Table: "program_templates", Field: "content", Reason: "is not a program snapshot", Err: schema.ErrInvalid}
		}
	}
	if req.Title != nil && strings.TrimSpace(*req.Title) != "" {
		body.Title = req.Title
	} else if body.Title == nil || strings.TrimSpace(*body.Title) == "" {
		body.Title = &t.Name
	}
	if req.Date != nil {
		body.Date = req.Date
	}
	return programService.BulkImport(ctx, db, churchID, userID, body)
}
