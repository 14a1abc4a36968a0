package services

import (
	"gorm.io/gorm"

	"hotel-admin/models"
)

// attachBookingRefs fills Booking.User and Booking.RoomType by id. Missing rows leave the
// field nil.
func attachBookingRefs(db *gorm.DB, bookings []models.Booking) error {
	if len(bookings) == 0 {
		return nil
	}

	userIDs := make([]uint, 0, len(bookings))
	typeIDs := make([]uint, 0, len(bookings))
	for _, b := range bookings {
		if b.UserID != nil {
			userIDs = append(userIDs, *b.UserID)
		}
		if b.RoomTypeID != 0 {
			typeIDs = append(typeIDs, b.RoomTypeID)
		}
	}

	users := make(map[uint]models.User, len(userIDs))
	if len(userIDs) > 0 {
		var rows []models.User
		if err := db.Where("user_id IN ?", userIDs).Find(&rows).Error; err != nil {
			return err
		}
		for _, u := range rows {
			users[u.ID] = u
		}
	}

	types := make(map[uint]models.RoomType, len(typeIDs))
	if len(typeIDs) > 0 {
		var rows []models.RoomType
		if err := db.Where("room_type_id IN ?", typeIDs).Find(&rows).Error; err != nil {
			return err
		}
		for _, rt := range rows {
			types[rt.ID] = rt
		}
	}

	for i := range bookings {
		if id := bookings[i].UserID; id != nil {
			if u, ok := users[*id]; ok {
				bookings[i].User = &u
			}
		}
		if rt, ok := types[bookings[i].RoomTypeID]; ok {
			bookings[i].RoomType = &rt
		}
	}
	return nil
}

// roomTypeOf loads the room type a room points at.
func roomTypeOf(db *gorm.DB, room *models.Room) error {
	var rt models.RoomType
	if err := db.First(&rt, room.RoomTypeID).Error; err != nil {
		return err
	}
	room.RoomType = &rt
	return nil
}
