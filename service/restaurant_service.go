package service

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"strings"

	"dinein/model"
	"dinein/repository"
	"dinein/storage"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type RestaurantInput struct {
	Slug        string          `json:"slug"`
	Title       string          `json:"title"`
	Name        string          `json:"name" binding:"required,max=255"`
	Summary     string          `json:"summary"`
	Description string          `json:"description"`
	Status      string          `json:"status" binding:"omitempty,oneof=Active Inactive"`
	Locations   []LocationInput `json:"locations" binding:"dive"`
}

type LocationInput struct {
	ID             uint     `json:"id"`
	Address        string   `json:"address"`
	CountryID      *uint    `json:"country_id"`
	GovernorateID  *uint    `json:"governorate_id"`
	CityID         *uint    `json:"city_id"`
	State          string   `json:"state"`
	Zip            string   `json:"zip"`
	Latitude       *float64 `json:"latitude" binding:"omitempty,latitude"`
	Longitude      *float64 `json:"longitude" binding:"omitempty,longitude"`
	OpeningTime    string   `json:"opening_time"`
	ClosedTime     string   `json:"closed_time"`
	ClosedDays     []string `json:"closed_days"`
	NumberOfTables int      `json:"number_of_tables" binding:"gte=0"`
	PhoneNumber    string   `json:"phone_number"`
	MobileNumber   string   `json:"mobile_number"`
	HotLine        string   `json:"hot_line"`
	Status         string   `json:"status" binding:"omitempty,oneof=Opened Closed"`
}

type TableInput struct {
	Number   string `json:"number" binding:"required"`
	Capacity int    `json:"capacity" binding:"required,gt=0"`
	Status   string `json:"status" binding:"omitempty,oneof=Available Unavailable"`
}

// MediaKind selects which restaurant image column an upload replaces.
type MediaKind string

const (
	MediaLogo  MediaKind = "logo"
	MediaCover MediaKind = "cover"
)

type RestaurantService struct {
	db          *gorm.DB
	restaurants *repository.RestaurantRepository
	locations   *repository.LocationRepository
	images      storage.ImageStore
	log         *zap.SugaredLogger
}

func NewRestaurantService(db *gorm.DB, images storage.ImageStore, log *zap.SugaredLogger) *RestaurantService {
	return &RestaurantService{
		db:          db,
		restaurants: repository.NewRestaurantRepository(db),
		locations:   repository.NewLocationRepository(db),
		images:      images,
		log:         log,
	}
}

func (s *RestaurantService) List(ctx context.Context) ([]model.Restaurant, error) {
	return s.restaurants.List(ctx)
}

func (s *RestaurantService) ListByUser(ctx context.Context, userID uint) ([]model.Restaurant, error) {
	return s.restaurants.ListByUser(ctx, userID)
}

func (s *RestaurantService) Get(ctx context.Context, id uint) (*model.Restaurant, error) {
	r, err := s.restaurants.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrRestaurantNotFound
	}
	return r, err
}

// owned loads the restaurant and checks the actor may manage it.
func (s *RestaurantService) owned(ctx context.Context, actor Actor, id uint) (*model.Restaurant, error) {
	r, err := s.restaurants.Get(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRestaurantNotFound
		}
		return nil, err
	}
	if !actor.CanManage(r.UserID) {
		return nil, ErrForbidden
	}
	return r, nil
}

// Create stores the restaurant and its locations in one transaction.
func (s *RestaurantService) Create(ctx context.Context, actor Actor, in RestaurantInput) (*model.Restaurant, error) {
	slug, err := s.resolveSlug(ctx, in.Slug, in.Name, 0)
	if err != nil {
		return nil, err
	}

	rest := &model.Restaurant{
		UserID:      actor.UserID,
		Slug:        slug,
		Title:       in.Title,
		Name:        in.Name,
		Summary:     in.Summary,
		Description: in.Description,
		Status:      model.RestaurantActive,
	}
	if in.Status != "" {
		rest.Status = model.RestaurantStatus(in.Status)
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.restaurants.WithTx(tx).Create(ctx, rest); err != nil {
			return fmt.Errorf("insert restaurant: %w", err)
		}
		for _, li := range in.Locations {
			loc := model.RestaurantLocation{RestaurantID: rest.ID, Status: model.LocationOpened}
			applyLocation(&loc, li)
			if err := s.locations.WithTx(tx).Create(ctx, &loc); err != nil {
				return fmt.Errorf("insert location: %w", err)
			}
			rest.Locations = append(rest.Locations, loc)
		}
		return nil
	})
	if err != nil {
		s.log.Errorw("create restaurant failed", "user_id", actor.UserID, "error", err)
		return nil, err
	}
	return rest, nil
}

// Update changes the restaurant fields. Locations carrying an id that belongs
// to the restaurant are updated; everything else in the list is ignored.
func (s *RestaurantService) Update(ctx context.Context, actor Actor, id uint, in RestaurantInput) (*model.Restaurant, error) {
	rest, err := s.owned(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	if in.Slug != "" && in.Slug != rest.Slug {
		slug, err := s.resolveSlug(ctx, in.Slug, in.Name, rest.ID)
		if err != nil {
			return nil, err
		}
		rest.Slug = slug
	}
	rest.Name = in.Name
	if in.Title != "" {
		rest.Title = in.Title
	}
	if in.Summary != "" {
		rest.Summary = in.Summary
	}
	if in.Description != "" {
		rest.Description = in.Description
	}
	if in.Status != "" {
		rest.Status = model.RestaurantStatus(in.Status)
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.restaurants.WithTx(tx).Save(ctx, rest); err != nil {
			return fmt.Errorf("update restaurant: %w", err)
		}
		locs := s.locations.WithTx(tx)
		for _, li := range in.Locations {
			if li.ID == 0 {
				continue
			}
			loc, err := locs.FindForRestaurant(ctx, rest.ID, li.ID)
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			if err != nil {
				return err
			}
			applyLocation(loc, li)
			if err := locs.Save(ctx, loc); err != nil {
				return fmt.Errorf("update location %d: %w", li.ID, err)
			}
		}
		return nil
	})
	if err != nil {
		s.log.Errorw("update restaurant failed", "restaurant_id", id, "error", err)
		return nil, err
	}
	return s.Get(ctx, rest.ID)
}

// UpdateLocations mutates exactly the locations listed in the payload. Any
// id that does not belong to the restaurant aborts the whole update.
func (s *RestaurantService) UpdateLocations(ctx context.Context, actor Actor, restaurantID uint, in []LocationInput) ([]model.RestaurantLocation, error) {
	if _, err := s.owned(ctx, actor, restaurantID); err != nil {
		return nil, err
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		locs := s.locations.WithTx(tx)
		for _, li := range in {
			loc, err := locs.FindForRestaurant(ctx, restaurantID, li.ID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("%w: %d", ErrLocationNotFound, li.ID)
				}
				return err
			}
			applyLocation(loc, li)
			if err := locs.Save(ctx, loc); err != nil {
				return fmt.Errorf("update location %d: %w", li.ID, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.locations.ListByRestaurant(ctx, restaurantID)
}

func (s *RestaurantService) Delete(ctx context.Context, actor Actor, id uint) error {
	if _, err := s.owned(ctx, actor, id); err != nil {
		return err
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.locations.WithTx(tx).DeleteByRestaurant(ctx, id); err != nil {
			return fmt.Errorf("delete locations: %w", err)
		}
		if err := s.restaurants.WithTx(tx).Delete(ctx, id); err != nil {
			return fmt.Errorf("delete restaurant: %w", err)
		}
		return nil
	})
}

// SetMedia replaces the logo or cover and returns the stored relative path.
func (s *RestaurantService) SetMedia(ctx context.Context, actor Actor, id uint, kind MediaKind, file *multipart.FileHeader) (string, error) {
	rest, err := s.owned(ctx, actor, id)
	if err != nil {
		return "", err
	}

	var old string
	switch kind {
	case MediaLogo:
		old = rest.Logo
	case MediaCover:
		old = rest.Cover
	default:
		return "", fmt.Errorf("unknown media kind %q", kind)
	}

	rel, err := s.images.Save("restaurants", file)
	if err != nil {
		return "", err
	}
	if err := s.restaurants.UpdateColumn(ctx, id, string(kind), rel); err != nil {
		_ = s.images.Remove(rel)
		return "", fmt.Errorf("update %s: %w", kind, err)
	}
	if err := s.images.Remove(old); err != nil {
		s.log.Warnw("remove previous image failed", "path", old, "error", err)
	}
	return rel, nil
}

func (s *RestaurantService) AddImage(ctx context.Context, actor Actor, id uint, file *multipart.FileHeader) (*model.RestaurantImage, error) {
	if _, err := s.owned(ctx, actor, id); err != nil {
		return nil, err
	}
	rel, err := s.images.Save("restaurants/gallery", file)
	if err != nil {
		return nil, err
	}
	img := &model.RestaurantImage{RestaurantID: id, Image: rel}
	if err := s.restaurants.AddImage(ctx, img); err != nil {
		_ = s.images.Remove(rel)
		return nil, fmt.Errorf("insert image: %w", err)
	}
	return img, nil
}

func (s *RestaurantService) CreateTable(ctx context.Context, actor Actor, locationID uint, in TableInput) (*model.Table, error) {
	loc, err := s.locations.FindByID(ctx, locationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLocationNotFound
		}
		return nil, err
	}
	if _, err := s.owned(ctx, actor, loc.RestaurantID); err != nil {
		return nil, err
	}

	t := &model.Table{
		RestaurantLocationID: loc.ID,
		Number:               in.Number,
		Capacity:             in.Capacity,
		Status:               model.TableAvailable,
	}
	if in.Status != "" {
		t.Status = model.TableStatus(in.Status)
	}
	if err := s.locations.CreateTable(ctx, t); err != nil {
		return nil, fmt.Errorf("insert table: %w", err)
	}
	return t, nil
}

func (s *RestaurantService) ListTables(ctx context.Context, locationID uint) ([]model.Table, error) {
	if _, err := s.locations.FindByID(ctx, locationID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLocationNotFound
		}
		return nil, err
	}
	return s.locations.ListTables(ctx, locationID)
}

func (s *RestaurantService) resolveSlug(ctx context.Context, explicit, name string, selfID uint) (string, error) {
	exists := func(ctx context.Context, slug string) (bool, error) {
		return s.restaurants.SlugExists(ctx, slug, selfID)
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

// applyLocation copies the non-zero fields of in onto loc.
func applyLocation(loc *model.RestaurantLocation, in LocationInput) {
	if in.Address != "" {
		loc.Address = in.Address
	}
	if in.CountryID != nil {
		loc.CountryID = in.CountryID
	}
	if in.GovernorateID != nil {
		loc.GovernorateID = in.GovernorateID
	}
	if in.CityID != nil {
		loc.CityID = in.CityID
	}
	if in.State != "" {
		loc.State = in.State
	}
	if in.Zip != "" {
		loc.Zip = in.Zip
	}
	if in.Latitude != nil {
		loc.Latitude = in.Latitude
	}
	if in.Longitude != nil {
		loc.Longitude = in.Longitude
	}
	if in.OpeningTime != "" {
		loc.OpeningTime = in.OpeningTime
	}
	if in.ClosedTime != "" {
		loc.ClosedTime = in.ClosedTime
	}
	if in.ClosedDays != nil {
		loc.ClosedDays = strings.Join(in.ClosedDays, ",")
	}
	if in.NumberOfTables > 0 {
		loc.NumberOfTables = in.NumberOfTables
	}
	if in.PhoneNumber != "" {
		loc.PhoneNumber = in.PhoneNumber
	}
	if in.MobileNumber != "" {
		loc.MobileNumber = in.MobileNumber
	}
	if in.HotLine != "" {
		loc.HotLine = in.HotLine
	}
	if in.Status != "" {
		loc.Status = model.LocationStatus(in.Status)
	}
}
