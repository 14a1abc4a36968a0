package services

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"hotel-admin/failure"
	"hotel-admin/models"
)

type RoomFilter struct {
	Search   string
	RoomType string
	Status   string
}

// RoomRow is a room joined with its type.
type RoomRow struct {
	RoomID           uint            `json:"room_id"`
	RoomNumber       string          `json:"room_number"`
	Status           string          `json:"status"`
	RoomTypeID       uint            `json:"room_type_id"`
	TypeName         string          `json:"type_name"`
	CapacityAdults   uint            `json:"capacity_adults"`
	CapacityChildren uint            `json:"capacity_children"`
	PricePerNight    decimal.Decimal `json:"price_per_night"`
}

type AddRoomInput struct {
	RoomNumber string
	RoomType   string
	RoomTypeID uint
	Status     string
	Defaults   RoomTypeDefaults
}

type UpdateRoomInput struct {
	RoomID     uint
	RoomNumber *string
	RoomTypeID *uint
	TypeName   string
	Status     *string
	Defaults   RoomTypeDefaults
}

type DeleteRoomsResult struct {
	Deleted int      `json:"deleted"`
	Skipped []string `json:"skipped"`
}

type RoomService struct {
	DB    *gorm.DB
	Types *RoomTypeService
}

func NewRoomService(db *gorm.DB, types *RoomTypeService) *RoomService {
	return &RoomService{DB: db, Types: types}
}

func normalizeRoomStatus(raw string) (string, error) {
	status := strings.ToLower(strings.TrimSpace(raw))
	if status == "" {
		return models.RoomStatusAvailable, nil
	}
	for _, s := range models.RoomStatuses {
		if s == status {
			return s, nil
		}
	}
	return "", ErrInvalidRoomStatus
}

func isFilterSet(v string) bool {
	v = strings.TrimSpace(v)
	return v != "" && !strings.EqualFold(v, "all")
}

func (s *RoomService) List(ctx context.Context, f RoomFilter) ([]RoomRow, error) {
	q := s.DB.WithContext(ctx).
		Table("rooms AS r").
		Select(`r.room_id, r.room_number, r.status, r.room_type_id, rt.type_name,
			rt.capacity_adults, rt.capacity_children, rt.price_per_night`).
		Joins("JOIN room_types rt ON rt.room_type_id = r.room_type_id")

	if search := strings.TrimSpace(f.Search); search != "" {
		like := "%" + strings.ToLower(search) + "%"
		q = q.Where("(LOWER(r.room_number) LIKE ? OR LOWER(rt.type_name) LIKE ?)", like, like)
	}
	if isFilterSet(f.RoomType) {
		q = q.Where("rt.type_name = ?", strings.TrimSpace(f.RoomType))
	}
	if isFilterSet(f.Status) {
		q = q.Where("LOWER(r.status) = ?", strings.ToLower(strings.TrimSpace(f.Status)))
	}

	rows := []RoomRow{}
	if err := q.Order("r.room_number").Scan(&rows).Error; err != nil {
		return nil, failure.InternalError("Failed to fetch rooms", err)
	}
	return rows, nil
}

// Grouped maps each room type name to its room numbers in order. Types without rooms map
// to an empty list.
func (s *RoomService) Grouped(ctx context.Context) (map[string][]string, error) {
	var rows []struct {
		TypeName   string
		RoomNumber *string
	}
	err := s.DB.WithContext(ctx).
		Table("room_types AS rt").
		Select("rt.type_name, r.room_number").
		Joins("LEFT JOIN rooms r ON r.room_type_id = rt.room_type_id").
		Order("rt.type_name, r.room_number").
		Scan(&rows).Error
	if err != nil {
		return nil, failure.InternalError("Failed to fetch grouped rooms", err)
	}

	grouped := make(map[string][]string)
	for _, row := range rows {
		if _, ok := grouped[row.TypeName]; !ok {
			grouped[row.TypeName] = []string{}
		}
		if row.RoomNumber != nil && *row.RoomNumber != "" {
			grouped[row.TypeName] = append(grouped[row.TypeName], *row.RoomNumber)
		}
	}
	return grouped, nil
}

// Add creates a room. A type given by name is created when missing, and its defaults are
// refreshed from the input when it exists.
func (s *RoomService) Add(ctx context.Context, in AddRoomInput) (*models.Room, error) {
	number := strings.TrimSpace(in.RoomNumber)
	if number == "" {
		return nil, ErrMissingRoomNumber
	}
	typeName := strings.TrimSpace(in.RoomType)
	if typeName == "" && in.RoomTypeID == 0 {
		return nil, ErrMissingRoomType
	}
	status, err := normalizeRoomStatus(in.Status)
	if err != nil {
		return nil, err
	}

	var room models.Room
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		typeID := in.RoomTypeID
		if typeName != "" {
			rt, err := s.Types.findOrCreate(tx, typeName, in.Defaults, true)
			if err != nil {
				return err
			}
			typeID = rt.ID
		} else if err := tx.First(&models.RoomType{}, typeID).Error; err != nil {
			if isNotFound(err) {
				return ErrRoomTypeNotFound
			}
			return failure.InternalError("Failed to look up room type", err)
		}

		var dup int64
		if err := tx.Model(&models.Room{}).Where("room_number = ?", number).Count(&dup).Error; err != nil {
			return failure.InternalError("Failed to add room", err)
		}
		if dup > 0 {
			return ErrDuplicateRoom
		}

		room = models.Room{RoomNumber: number, RoomTypeID: typeID, Status: status}
		if err := tx.Create(&room).Error; err != nil {
			if isDuplicateKeyError(err) {
				return ErrDuplicateRoom
			}
			return failure.InternalError("Failed to add room", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &room, nil
}

func (s *RoomService) Update(ctx context.Context, in UpdateRoomInput) error {
	if in.RoomID == 0 {
		return failure.BadRequestFromString("Room ID is required")
	}
	if err := in.Defaults.validate(); err != nil {
		return err
	}

	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var room models.Room
		if err := tx.First(&room, in.RoomID).Error; err != nil {
			if isNotFound(err) {
				return ErrRoomNotFound
			}
			return failure.InternalError("Failed to update room", err)
		}

		typeID := room.RoomTypeID
		if in.RoomTypeID != nil && *in.RoomTypeID != 0 && *in.RoomTypeID != typeID {
			if err := tx.First(&models.RoomType{}, *in.RoomTypeID).Error; err != nil {
				if isNotFound(err) {
					return ErrRoomTypeNotFound
				}
				return failure.InternalError("Failed to look up room type", err)
			}
			typeID = *in.RoomTypeID
		}
		if name := strings.TrimSpace(in.TypeName); name != "" {
			rt, err := s.Types.findOrCreate(tx, name, in.Defaults, false)
			if err != nil {
				return err
			}
			typeID = rt.ID
		}

		updates := map[string]interface{}{"room_type_id": typeID}
		if in.RoomNumber != nil {
			number := strings.TrimSpace(*in.RoomNumber)
			if number == "" {
				return ErrMissingRoomNumber
			}
			var dup int64
			if err := tx.Model(&models.Room{}).Where("room_number = ? AND room_id <> ?", number, room.ID).Count(&dup).Error; err != nil {
				return failure.InternalError("Failed to update room", err)
			}
			if dup > 0 {
				return ErrDuplicateRoom
			}
			updates["room_number"] = number
		}
		if in.Status != nil {
			status, err := normalizeRoomStatus(*in.Status)
			if err != nil {
				return err
			}
			updates["status"] = status
		}

		if err := tx.Model(&room).Updates(updates).Error; err != nil {
			if isDuplicateKeyError(err) {
				return ErrDuplicateRoom
			}
			return failure.InternalError("Failed to update room", err)
		}

		if typeUpdates := in.Defaults.updates(); len(typeUpdates) > 0 {
			if err := tx.Model(&models.RoomType{}).Where("room_type_id = ?", typeID).Updates(typeUpdates).Error; err != nil {
				return failure.InternalError("Failed to update room type", err)
			}
		}
		return nil
	})
}

// Delete removes the given rooms, skipping any room that still has a Confirmed or
// Checked-in booking.
func (s *RoomService) Delete(ctx context.Context, ids []uint) (*DeleteRoomsResult, error) {
	if len(ids) == 0 {
		return nil, failure.BadRequestFromString("No room IDs provided")
	}

	result := &DeleteRoomsResult{Skipped: []string{}}
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, id := range ids {
			var room models.Room
			if err := tx.First(&room, id).Error; err != nil {
				if isNotFound(err) {
					continue
				}
				return failure.InternalError("Failed to delete rooms", err)
			}

			var active int64
			err := tx.Model(&models.Booking{}).
				Where("room_number = ?", room.RoomNumber).
				Where("LOWER(status) IN ?", []string{"confirmed", "checked-in"}).
				Count(&active).Error
			if err != nil {
				return failure.InternalError("Failed to delete rooms", err)
			}
			if active > 0 {
				result.Skipped = append(result.Skipped, room.RoomNumber)
				continue
			}

			if err := tx.Delete(&room).Error; err != nil {
				return failure.InternalError("Failed to delete rooms", err)
			}
			result.Deleted++
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// CheckByNumber returns the room with the given number.
func (s *RoomService) CheckByNumber(ctx context.Context, number string) (*models.Room, error) {
	var room models.Room
	db := s.DB.WithContext(ctx)
	if err := db.Where("room_number = ?", strings.TrimSpace(number)).First(&room).Error; err != nil {
		if isNotFound(err) {
			return nil, ErrRoomNotFound
		}
		return nil, failure.InternalError("Failed to check room", err)
	}
	if err := roomTypeOf(db, &room); err != nil && !isNotFound(err) {
		return nil, failure.InternalError("Failed to check room", err)
	}
	return &room, nil
}
