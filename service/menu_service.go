package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"strings"

	"dinein/model"
	"dinein/repository"
	"dinein/storage"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type CategoryInput struct {
	RestaurantID uint   `json:"restaurant_id" form:"restaurant_id"`
	Name         string `json:"name" form:"name" binding:"required,max=255"`
	Description  string `json:"description" form:"description"`
	Status       string `json:"status" form:"status" binding:"omitempty,category_status"`
}

type ItemInput struct {
	MenuCategoryID uint            `json:"menu_category_id" form:"menu_category_id" binding:"required"`
	Name           string          `json:"name" form:"name" binding:"required,max=255"`
	Slug           string          `json:"slug" form:"slug"`
	Description    string          `json:"description" form:"description"`
	Price          decimal.Decimal `json:"price" form:"price"`
	SalePrice      decimal.Decimal `json:"sale_price" form:"sale_price"`
	Status         string          `json:"status" form:"status" binding:"omitempty,oneof=Available Unavailable"`
}

// ImportResult reports how many sheet rows became menu items and which rows
// (1-based, as shown in a spreadsheet) were skipped.
type ImportResult struct {
	Created     int   `json:"created"`
	SkippedRows []int `json:"skipped_rows"`
}

type MenuService struct {
	db          *gorm.DB
	menu        *repository.MenuRepository
	restaurants *repository.RestaurantRepository
	images      storage.ImageStore
	log         *zap.SugaredLogger
}

func NewMenuService(db *gorm.DB, images storage.ImageStore, log *zap.SugaredLogger) *MenuService {
	return &MenuService{
		db:          db,
		menu:        repository.NewMenuRepository(db),
		restaurants: repository.NewRestaurantRepository(db),
		images:      images,
		log:         log,
	}
}

// ListCategories returns enabled categories, or all non deleted ones when
// includeDisabled is set.
func (s *MenuService) ListCategories(ctx context.Context, includeDisabled bool) ([]model.MenuCategory, error) {
	return s.menu.ListCategories(ctx, includeDisabled)
}

func (s *MenuService) CategoriesWithItems(ctx context.Context, restaurantID uint) ([]model.MenuCategory, error) {
	if _, err := s.restaurants.Get(ctx, restaurantID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRestaurantNotFound
		}
		return nil, err
	}
	return s.menu.CategoriesWithItems(ctx, restaurantID)
}

// GetCategory finds a category by id whatever its status.
func (s *MenuService) GetCategory(ctx context.Context, id uint) (*model.MenuCategory, error) {
	c, err := s.menu.FindCategory(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrCategoryNotFound
	}
	return c, err
}

func (s *MenuService) CreateCategory(ctx context.Context, actor Actor, in CategoryInput) (*model.MenuCategory, error) {
	if err := s.authorize(ctx, actor, in.RestaurantID); err != nil {
		return nil, err
	}

	c := &model.MenuCategory{
		RestaurantID: in.RestaurantID,
		Name:         in.Name,
		Description:  in.Description,
		Status:       model.CategoryEnabled,
	}
	if in.Status != "" {
		c.Status = model.CategoryStatus(in.Status)
	}
	if err := s.menu.CreateCategory(ctx, c); err != nil {
		return nil, fmt.Errorf("insert category: %w", err)
	}
	return c, nil
}

func (s *MenuService) UpdateCategory(ctx context.Context, actor Actor, id uint, in CategoryInput) (*model.MenuCategory, error) {
	c, err := s.managedCategory(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	c.Name = in.Name
	if in.Description != "" {
		c.Description = in.Description
	}
	if in.Status != "" {
		status := model.CategoryStatus(in.Status)
		if !status.Valid() {
			return nil, ErrInvalidStatus
		}
		c.Status = status
	}
	if err := s.menu.SaveCategory(ctx, c); err != nil {
		return nil, fmt.Errorf("update category: %w", err)
	}
	return c, nil
}

// DeleteCategory marks the category Deleted. The row and its items stay.
func (s *MenuService) DeleteCategory(ctx context.Context, actor Actor, id uint) error {
	c, err := s.managedCategory(ctx, actor, id)
	if err != nil {
		return err
	}
	c.Status = model.CategoryDeleted
	if err := s.menu.SaveCategory(ctx, c); err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	return nil
}

func (s *MenuService) ListItems(ctx context.Context, categoryID uint) ([]model.MenuItem, error) {
	if _, err := s.GetCategory(ctx, categoryID); err != nil {
		return nil, err
	}
	return s.menu.ListItems(ctx, categoryID)
}

func (s *MenuService) GetItem(ctx context.Context, id uint) (*model.MenuItem, error) {
	it, err := s.menu.FindItem(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrItemNotFound
	}
	return it, err
}

func (s *MenuService) CreateItem(ctx context.Context, actor Actor, in ItemInput, image *multipart.FileHeader) (*model.MenuItem, error) {
	if _, err := s.managedCategory(ctx, actor, in.MenuCategoryID); err != nil {
		return nil, err
	}
	if !in.Price.IsPositive() {
		return nil, ErrInvalidAmount
	}

	slug, err := s.itemSlug(ctx, in.Slug, in.Name, 0)
	if err != nil {
		return nil, err
	}

	it := &model.MenuItem{
		MenuCategoryID: in.MenuCategoryID,
		Name:           in.Name,
		Slug:           slug,
		Description:    in.Description,
		Price:          in.Price,
		SalePrice:      salePrice(in.Price, in.SalePrice),
		Status:         model.ItemAvailable,
	}
	if in.Status != "" {
		it.Status = model.ItemStatus(in.Status)
	}

	if image != nil {
		if it.Image, err = s.images.Save("menu_items", image); err != nil {
			return nil, err
		}
	}
	if err := s.menu.CreateItem(ctx, it); err != nil {
		_ = s.images.Remove(it.Image)
		return nil, fmt.Errorf("insert item: %w", err)
	}
	return it, nil
}

func (s *MenuService) UpdateItem(ctx context.Context, actor Actor, id uint, in ItemInput, image *multipart.FileHeader) (*model.MenuItem, error) {
	it, err := s.GetItem(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := s.managedCategory(ctx, actor, it.MenuCategoryID); err != nil {
		return nil, err
	}
	if in.MenuCategoryID != 0 && in.MenuCategoryID != it.MenuCategoryID {
		if _, err := s.managedCategory(ctx, actor, in.MenuCategoryID); err != nil {
			return nil, err
		}
		it.MenuCategoryID = in.MenuCategoryID
	}

	if in.Slug != "" && in.Slug != it.Slug {
		if it.Slug, err = s.itemSlug(ctx, in.Slug, in.Name, it.ID); err != nil {
			return nil, err
		}
	}
	it.Name = in.Name
	if in.Description != "" {
		it.Description = in.Description
	}
	if in.Price.IsPositive() {
		it.Price = in.Price
	}
	if !in.SalePrice.IsZero() {
		it.SalePrice = in.SalePrice
	}
	if in.Status != "" {
		it.Status = model.ItemStatus(in.Status)
	}

	old := it.Image
	if image != nil {
		if it.Image, err = s.images.Save("menu_items", image); err != nil {
			return nil, err
		}
	}
	if err := s.menu.SaveItem(ctx, it); err != nil {
		if image != nil {
			_ = s.images.Remove(it.Image)
		}
		return nil, fmt.Errorf("update item: %w", err)
	}
	if image != nil {
		if err := s.images.Remove(old); err != nil {
			s.log.Warnw("remove previous image failed", "path", old, "error", err)
		}
	}
	return it, nil
}

func (s *MenuService) DeleteItem(ctx context.Context, actor Actor, id uint) error {
	it, err := s.GetItem(ctx, id)
	if err != nil {
		return err
	}
	if _, err := s.managedCategory(ctx, actor, it.MenuCategoryID); err != nil {
		return err
	}
	if err := s.menu.DeleteItem(ctx, id); err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	if err := s.images.Remove(it.Image); err != nil {
		s.log.Warnw("remove item image failed", "path", it.Image, "error", err)
	}
	return nil
}

// ImportItems reads Sheet1 of an xlsx workbook (columns: name, price,
// sale price, description, status; first row is a header) into the
// category. Rows without a name or with an invalid price are skipped.
func (s *MenuService) ImportItems(ctx context.Context, actor Actor, categoryID uint, r io.Reader) (*ImportResult, error) {
	if _, err := s.managedCategory(ctx, actor, categoryID); err != nil {
		return nil, err
	}

	xl, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSheet, err)
	}
	defer xl.Close()

	rows, err := xl.GetRows("Sheet1")
	if err != nil || len(rows) < 2 {
		return nil, ErrInvalidSheet
	}

	result := &ImportResult{SkippedRows: []int{}}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		menu := s.menu.WithTx(tx)
		exists := func(ctx context.Context, slug string) (bool, error) {
			return menu.SlugExists(ctx, slug, 0)
		}

		var items []model.MenuItem
		seen := map[string]bool{}
		for i, row := range rows[1:] {
			line := i + 2
			item, ok := parseItemRow(row)
			if !ok {
				s.log.Debugw("skipping menu import row", "row", line, "values", row)
				result.SkippedRows = append(result.SkippedRows, line)
				continue
			}

			base := slugify(item.Name)
			slug, err := uniqueSlug(ctx, base, func(ctx context.Context, slug string) (bool, error) {
				if seen[slug] {
					return true, nil
				}
				return exists(ctx, slug)
			})
			if err != nil {
				return err
			}
			seen[slug] = true

			item.MenuCategoryID = categoryID
			item.Slug = slug
			items = append(items, item)
		}

		if len(items) == 0 {
			return nil
		}
		if err := menu.CreateItems(ctx, items); err != nil {
			return fmt.Errorf("insert items: %w", err)
		}
		result.Created = len(items)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func parseItemRow(row []string) (model.MenuItem, bool) {
	if len(row) < 2 {
		return model.MenuItem{}, false
	}
	name := strings.TrimSpace(row[0])
	if name == "" {
		return model.MenuItem{}, false
	}
	price, err := decimal.NewFromString(strings.TrimSpace(row[1]))
	if err != nil || !price.IsPositive() {
		return model.MenuItem{}, false
	}

	item := model.MenuItem{Name: name, Price: price, SalePrice: price, Status: model.ItemAvailable}
	if len(row) > 2 && strings.TrimSpace(row[2]) != "" {
		sale, err := decimal.NewFromString(strings.TrimSpace(row[2]))
		if err != nil || sale.IsNegative() {
			return model.MenuItem{}, false
		}
		item.SalePrice = sale
	}
	if len(row) > 3 {
		item.Description = strings.TrimSpace(row[3])
	}
	if len(row) > 4 && row[4] != "" {
		status := model.ItemStatus(strings.TrimSpace(row[4]))
		if !status.Valid() {
			return model.MenuItem{}, false
		}
		item.Status = status
	}
	return item, true
}

func salePrice(price, sale decimal.Decimal) decimal.Decimal {
	if sale.IsZero() {
		return price
	}
	return sale
}

// managedCategory loads the category and checks the actor owns its restaurant.
func (s *MenuService) managedCategory(ctx context.Context, actor Actor, id uint) (*model.MenuCategory, error) {
	c, err := s.GetCategory(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.authorize(ctx, actor, c.RestaurantID); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *MenuService) authorize(ctx context.Context, actor Actor, restaurantID uint) error {
	r, err := s.restaurants.Get(ctx, restaurantID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRestaurantNotFound
		}
		return err
	}
	if !actor.CanManage(r.UserID) {
		return ErrForbidden
	}
	return nil
}

// itemSlug rejects a taken explicit slug and derives a free one otherwise.
func (s *MenuService) itemSlug(ctx context.Context, explicit, name string, selfID uint) (string, error) {
	exists := func(ctx context.Context, slug string) (bool, error) {
		return s.menu.SlugExists(ctx, slug, selfID)
	}
	if explicit != "" {
		slug := slugify(explicit)
		taken, err := exists(ctx, slug)
		if err != nil {
			return "", err
		}
		if taken {
			return "", ErrSlugTaken
		}
		return slug, nil
	}
	return uniqueSlug(ctx, slugify(name), exists)
}
