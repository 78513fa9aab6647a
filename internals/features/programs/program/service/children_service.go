package service

import (
	"context"

	"gorm.io/gorm"

	"programpro_backend/internals/features/programs/ordering"
)

// Children wraps one ordered collection with the ownership checks.
type Children[T any] struct {
	DB   *gorm.DB
	Kind ordering.Kind[T]
}

func NewChildren[T any](db *gorm.DB, k ordering.Kind[T]) *Children[T] {
	return &Children[T]{DB: db, Kind: k}
}

func (s *Children[T]) exists(ctx context.Context, programID int64) error {
	var n int64
	if err := s.DB.WithContext(ctx).Table("programs").Where("id = ?", programID).Count(&n).Error; err != nil {
		return err
	}
	if n == 0 {
		return ordering.ErrNotFound
	}
	return nil
}

func (s *Children[T]) List(ctx context.Context, programID int64) ([]T, error) {
	if err := s.exists(ctx, programID); err != nil {
		return nil, err
	}
	return ordering.List(ctx, s.DB, programID, s.Kind)
}

func (s *Children[T]) Create(ctx context.Context, churchID, programID int64, d ordering.Draft) (*T, error) {
	if err := Authorize(ctx, s.DB, programID, churchID); err != nil {
		return nil, err
	}
	return ordering.Create(ctx, s.DB, programID, s.Kind, d)
}

func (s *Children[T]) Update(ctx context.Context, churchID, programID, id int64, d ordering.Draft) (*T, error) {
	if err := Authorize(ctx, s.DB, programID, churchID); err != nil {
		return nil, err
	}
	return ordering.Update(ctx, s.DB, programID, s.Kind, id, d)
}

func (s *Children[T]) Delete(ctx context.Context, churchID, programID, id int64) error {
	if err := Authorize(ctx, s.DB, programID, churchID); err != nil {
		return err
	}
	return ordering.Delete(ctx, s.DB, programID, s.Kind, id)
}

func (s *Children[T]) Reorder(ctx context.Context, churchID, programID int64, moves []ordering.Move) (ordering.BatchReport, []T, error) {
	if err := Authorize(ctx, s.DB, programID, churchID); err != nil {
		return ordering.BatchReport{}, nil, err
	}
	return ordering.Reorder(ctx, s.DB, programID, s.Kind, moves)
}
