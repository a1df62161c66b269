package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	bookingdomain "github.com/waggytails/walk-scheduler/internal/domain/booking"
	domain "github.com/waggytails/walk-scheduler/internal/domain/slot"
	"github.com/waggytails/walk-scheduler/internal/httperr"
	"github.com/waggytails/walk-scheduler/internal/models"
)

type SlotGormRepository struct {
	db *gorm.DB
}

func NewSlotGormRepository(db *gorm.DB) *SlotGormRepository {
	return &SlotGormRepository{db: db}
}

func (r *SlotGormRepository) CreateSlot(
	ctx context.Context,
	s *models.Slot,
) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(s).Error
}

func (r *SlotGormRepository) GetSlotForWalker(
	ctx context.Context,
	slotID uint,
	walkerID uint,
) (*models.Slot, error) {

	var s models.Slot
	if err := r.db.WithContext(ctx).
		Where("id = ? AND walker_id = ?", slotID, walkerID).
		First(&s).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness("slot_not_found")
		}
		return nil, err
	}
	return &s, nil
}

func (r *SlotGormRepository) SaveSlot(
	ctx context.Context,
	s *models.Slot,
) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(s).Error
}

func (r *SlotGormRepository) ListByWalker(
	ctx context.Context,
	walkerID uint,
) ([]models.Slot, error) {

	var slots []models.Slot
	if err := r.db.WithContext(ctx).
		Where("walker_id = ?", walkerID).
		Order("start_time ASC").
		Find(&slots).Error; err != nil {
		return nil, err
	}
	return slots, nil
}

// --------------------------------------------------
// Booking lookups feeding slot rules
// --------------------------------------------------

func (r *SlotGormRepository) CountActiveBookings(
	ctx context.Context,
	slotID uint,
) (int64, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where("slot_id = ? AND status <> ?", slotID, string(bookingdomain.StatusCancelled)).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *SlotGormRepository) CountConfirmedBookings(
	ctx context.Context,
	slotID uint,
) (int64, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where("slot_id = ? AND status = ?", slotID, string(bookingdomain.StatusConfirmed)).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *SlotGormRepository) BookedCapacity(
	ctx context.Context,
	slotID uint,
) (int, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Joins("JOIN booking_dogs bd ON bd.booking_id = bookings.id").
		Where("bookings.slot_id = ? AND bookings.status <> ?", slotID, string(bookingdomain.StatusCancelled)).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return int(count), nil
}

// DeleteSlotCascade re-checks the confirmed-booking rule under lock before
// touching anything, so a confirmation racing with the delete wins. Only
// pending bookings are cancelled; finished ones are terminal history and
// survive the slot.
func (r *SlotGormRepository) DeleteSlotCascade(
	ctx context.Context,
	s *models.Slot,
	now time.Time,
) ([]models.Booking, error) {

	var cancelled []models.Booking

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		var active []models.Booking
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("slot_id = ? AND status <> ?", s.ID, string(bookingdomain.StatusCancelled)).
			Find(&active).Error; err != nil {
			return err
		}

		for i := range active {
			if active[i].Status == string(bookingdomain.StatusConfirmed) {
				return httperr.ErrBusiness("slot_has_confirmed_booking")
			}
		}

		for i := range active {
			if active[i].Status != string(bookingdomain.StatusPending) {
				continue
			}
			active[i].Status = string(bookingdomain.StatusCancelled)
			active[i].CancelledAt = &now
			if err := tx.Omit(clause.Associations).Save(&active[i]).Error; err != nil {
				return err
			}
			cancelled = append(cancelled, active[i])
		}

		return tx.Delete(&models.Slot{}, s.ID).Error
	})
	if err != nil {
		return nil, err
	}
	return cancelled, nil
}

func (r *SlotGormRepository) SetExternalEventID(
	ctx context.Context,
	slotID uint,
	eventID string,
) error {
	return r.db.WithContext(ctx).
		Model(&models.Slot{}).
		Where("id = ?", slotID).
		Update("external_event_id", eventID).Error
}

// Compile-time check
var _ domain.Repository = (*SlotGormRepository)(nil)
