package services

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"hotel-admin/failure"
	"hotel-admin/models"
)

// RoomTypeDefaults carries optional price and capacity values. Nil fields are left alone.
type RoomTypeDefaults struct {
	PricePerNight    *decimal.Decimal
	CapacityAdults   *int
	CapacityChildren *int
}

func (d RoomTypeDefaults) validate() error {
	if d.PricePerNight != nil && d.PricePerNight.IsNegative() {
		return ErrNegativeValue
	}
	if d.CapacityAdults != nil && *d.CapacityAdults < 0 {
		return ErrNegativeValue
	}
	if d.CapacityChildren != nil && *d.CapacityChildren < 0 {
		return ErrNegativeValue
	}
	return nil
}

func (d RoomTypeDefaults) updates() map[string]interface{} {
	out := map[string]interface{}{}
	if d.PricePerNight != nil {
		out["price_per_night"] = *d.PricePerNight
	}
	if d.CapacityAdults != nil {
		out["capacity_adults"] = *d.CapacityAdults
	}
	if d.CapacityChildren != nil {
		out["capacity_children"] = *d.CapacityChildren
	}
	return out
}

func (d RoomTypeDefaults) apply(rt *models.RoomType) {
	if d.PricePerNight != nil {
		rt.PricePerNight = *d.PricePerNight
	}
	if d.CapacityAdults != nil {
		rt.CapacityAdults = uint(*d.CapacityAdults)
	}
	if d.CapacityChildren != nil {
		rt.CapacityChildren = uint(*d.CapacityChildren)
	}
}

type RoomTypeService struct {
	DB *gorm.DB
}

func NewRoomTypeService(db *gorm.DB) *RoomTypeService {
	return &RoomTypeService{DB: db}
}

func (s *RoomTypeService) GetAll(ctx context.Context) ([]models.RoomType, error) {
	var types []models.RoomType
	if err := s.DB.WithContext(ctx).Order("type_name").Find(&types).Error; err != nil {
		return nil, failure.InternalError("Failed to fetch room types", err)
	}
	return types, nil
}

func (s *RoomTypeService) GetByID(ctx context.Context, id uint) (*models.RoomType, error) {
	var rt models.RoomType
	if err := s.DB.WithContext(ctx).First(&rt, id).Error; err != nil {
		if isNotFound(err) {
			return nil, ErrRoomTypeNotFound
		}
		return nil, failure.InternalError("Failed to fetch room type", err)
	}
	return &rt, nil
}

func (s *RoomTypeService) Create(ctx context.Context, name string, defaults RoomTypeDefaults) (*models.RoomType, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrMissingRoomType
	}
	if err := defaults.validate(); err != nil {
		return nil, err
	}

	rt := models.RoomType{TypeName: name}
	defaults.apply(&rt)
	if err := s.DB.WithContext(ctx).Create(&rt).Error; err != nil {
		if isDuplicateKeyError(err) {
			return nil, ErrDuplicateRoomType
		}
		return nil, failure.InternalError("Failed to create room type", err)
	}
	return &rt, nil
}

// Delete refuses while any room still references the type.
func (s *RoomTypeService) Delete(ctx context.Context, id uint) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var rooms int64
		if err := tx.Model(&models.Room{}).Where("room_type_id = ?", id).Count(&rooms).Error; err != nil {
			return failure.InternalError("Failed to delete room type", err)
		}
		if rooms > 0 {
			return ErrRoomTypeInUse
		}

		res := tx.Delete(&models.RoomType{}, id)
		if res.Error != nil {
			return failure.InternalError("Failed to delete room type", res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrRoomTypeNotFound
		}
		return nil
	})
}

// findOrCreate looks a type up by name inside tx, creating it when missing. When
// overwrite is set, non-nil defaults are written to an existing type as well.
func (s *RoomTypeService) findOrCreate(tx *gorm.DB, name string, defaults RoomTypeDefaults, overwrite bool) (*models.RoomType, error) {
	if err := defaults.validate(); err != nil {
		return nil, err
	}

	var rt models.RoomType
	err := tx.Where("type_name = ?", name).First(&rt).Error
	switch {
	case err == nil:
		if updates := defaults.updates(); overwrite && len(updates) > 0 {
			if err := tx.Model(&rt).Updates(updates).Error; err != nil {
				return nil, failure.InternalError("Failed to update room type", err)
			}
			defaults.apply(&rt)
		}
		return &rt, nil
	case isNotFound(err):
		rt = models.RoomType{TypeName: name}
		defaults.apply(&rt)
		if err := tx.Create(&rt).Error; err != nil {
			return nil, failure.InternalError("Failed to create room type", err)
		}
		return &rt, nil
	default:
		return nil, failure.InternalError("Failed to look up room type", err)
	}
}
