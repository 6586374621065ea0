package service

import (
	"context"
	"errors"
	"log"

	"github.com/google/uuid"
	errorvalues "github.com/lefi/digital-brain/internal/error_values"
	"github.com/lefi/digital-brain/internal/repository"
	"github.com/lefi/digital-brain/pkg/entity"
)

type CategoriesService struct {
	repo repository.CategoriesRepositoryI
}

func NewCategoriesService(categoriesRepo repository.CategoriesRepositoryI) *CategoriesService {
	if categoriesRepo == nil {
		log.Fatal("provided nil categoriesRepo")
	}
	return &CategoriesService{
		repo: categoriesRepo,
	}
}

func (cs *CategoriesService) CreateCategory(ctx context.Context, req *CreateCategoryRequest) (*entity.Category, error) {
	if err := validateStruct(*req); err != nil {
		return nil, err
	}
	category, err := cs.repo.Create(ctx, &entity.Category{
		Name:  req.Name,
		Color: req.Color,
	})
	if err != nil {
		if errors.Is(err, errorvalues.ErrCategoryExists) {
			return nil, err
		}
		return nil, errors.New("categories repository error: " + err.Error())
	}
	return category, nil
}

func (cs *CategoriesService) ListCategories(ctx context.Context) ([]*entity.Category, error) {
	categories, err := cs.repo.List(ctx)
	if err != nil {
		return nil, errors.New("categories repository error: " + err.Error())
	}
	return categories, nil
}

func (cs *CategoriesService) UpdateCategory(ctx context.Context, id uuid.UUID, req *CreateCategoryRequest) (*entity.Category, error) {
	if err := validateStruct(*req); err != nil {
		return nil, err
	}
	category := &entity.Category{
		ID:    id,
		Name:  req.Name,
		Color: req.Color,
	}
	err := cs.repo.Update(ctx, category)
	if err != nil {
		if errors.Is(err, errorvalues.ErrCategoryNotFound) {
			return nil, err
		}
		return nil, errors.New("categories repository error: " + err.Error())
	}
	return category, nil
}

func (cs *CategoriesService) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	err := cs.repo.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, errorvalues.ErrCategoryNotFound) {
			return err
		}
		return errors.New("categories repository error: " + err.Error())
	}
	return nil
}
