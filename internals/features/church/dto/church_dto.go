package dto

import "gorm.io/datatypes"

// UpdateChurchRequest: every field optional; absent fields are left alone.
type UpdateChurchRequest struct {
	Name        *string        `json:"name" validate:"omitempty,min=1,max=255"`
	Address     *string        `json:"address"`
	ShortName   *string        `json:"short_name" validate:"omitempty,max=255"`
	Description *string        `json:"description"`
	ThemeConfig datatypes.JSON `json:"theme_config"`
}

func (r UpdateChurchRequest) Values() map[string]any {
	v := map[string]any{
		"name":        r.Name,
		"address":     r.Address,
		"short_name":  r.ShortName,
		"description": r.Description,
	}
	if len(r.ThemeConfig) > 0 && string(r.ThemeConfig) != "null" {
		v["theme_config"] = r.ThemeConfig
	}
	return v
}
