// services/booking_service.go
package services

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"lumarise-backend/apperrors"
	"lumarise-backend/logger"
	"lumarise-backend/models"
)

// BookingService holds booking actions beyond plain CRUD.
type BookingService struct {
	DB  *gorm.DB
	log *logger.Logger
}

func NewBookingService(db *gorm.DB, logg *logger.Logger) *BookingService {
	if logg == nil {
		logg = logger.Nop()
	}
	return &BookingService{DB: db, log: logg}
}

// Confirm marks a booking as confirmed, e.g. after the guest confirmed over
// WhatsApp.
func (s *BookingService) Confirm(ctx context.Context, id uint) (*models.Booking, error) {
	var booking models.Booking
	if err := s.DB.WithContext(ctx).First(&booking, id).Error; err != nil {
		if isNotFound(err) {
			return nil, apperrors.New(apperrors.CodeNotFound, "Booking not found")
		}
		return nil, fmt.Errorf("load booking %d: %w", id, err)
	}

	booking.Status = models.BookingStatusConfirmed
	if err := s.DB.WithContext(ctx).Omit("Room").Save(&booking).Error; err != nil {
		return nil, fmt.Errorf("confirm booking %d: %w", id, err)
	}

	s.log.Info(s.log.WithField(ctx, "booking_id", booking.ID), "booking.confirmed")
	return &booking, nil
}
