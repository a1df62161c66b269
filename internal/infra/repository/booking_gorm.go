package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/waggytails/walk-scheduler/internal/domain/booking"
	"github.com/waggytails/walk-scheduler/internal/httperr"
	"github.com/waggytails/walk-scheduler/internal/models"
)

type BookingGormRepository struct {
	db *gorm.DB
}

func NewBookingGormRepository(db *gorm.DB) *BookingGormRepository {
	return &BookingGormRepository{db: db}
}

// --------------------------------------------------
// Slot
// --------------------------------------------------

func (r *BookingGormRepository) GetSlot(
	ctx context.Context,
	slotID uint,
) (*models.Slot, error) {

	var s models.Slot
	if err := r.db.WithContext(ctx).First(&s, slotID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness("slot_not_found")
		}
		return nil, err
	}
	return &s, nil
}

// --------------------------------------------------
// Dogs
// --------------------------------------------------

func (r *BookingGormRepository) CountOwnedDogs(
	ctx context.Context,
	ownerID uint,
	dogIDs []uint,
) (int64, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Dog{}).
		Where("owner_id = ? AND id IN ?", ownerID, dogIDs).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// --------------------------------------------------
// Booking (create / admission)
// --------------------------------------------------

// CreateBooking admits and persists in one transaction. The slot row is
// locked first so two racing creates on the same slot serialize; the
// partial unique index on bookings(slot_id) backstops anything the lock
// misses, and its violation maps to slot_already_booked.
func (r *BookingGormRepository) CreateBooking(
	ctx context.Context,
	b *models.Booking,
	dogIDs []uint,
	intent *models.PaymentIntent,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		var s models.Slot
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&s, b.SlotID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return httperr.ErrBusiness("slot_not_found")
			}
			return err
		}

		// Re-checked against the locked row, not the caller's earlier read;
		// a concurrent capacity edit cannot slip an oversized booking in.
		if len(dogIDs) > s.MaxCapacity {
			return httperr.ErrBusiness("capacity_exceeded")
		}

		var active []models.Booking
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("slot_id = ? AND status <> ?", b.SlotID, string(domain.StatusCancelled)).
			Find(&active).Error; err != nil {
			return err
		}
		if len(active) > 0 {
			return httperr.ErrBusiness("slot_already_booked")
		}

		if err := tx.Omit(clause.Associations).Create(b).Error; err != nil {
			return mapUniqueViolation(err)
		}

		var dogs []models.Dog
		if err := tx.Where("id IN ?", dogIDs).Find(&dogs).Error; err != nil {
			return err
		}
		if err := tx.Model(b).Association("Dogs").Append(&dogs); err != nil {
			return err
		}
		b.Dogs = dogs

		intent.BookingID = b.ID
		if err := tx.Create(intent).Error; err != nil {
			return err
		}
		b.PaymentIntent = intent

		return nil
	})
}

func mapUniqueViolation(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return httperr.ErrBusiness("slot_already_booked")
	}
	return err
}

// --------------------------------------------------
// Booking (state change)
// --------------------------------------------------

func (r *BookingGormRepository) GetBooking(
	ctx context.Context,
	bookingID uint,
) (*models.Booking, error) {

	var b models.Booking
	if err := r.db.WithContext(ctx).
		Preload("Slot").
		Preload("Dogs").
		Preload("PaymentIntent").
		First(&b, bookingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness("booking_not_found")
		}
		return nil, err
	}
	return &b, nil
}

func (r *BookingGormRepository) WithBookingLock(
	ctx context.Context,
	bookingID uint,
	fn func(*models.Booking) error,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		var b models.Booking
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&b, bookingID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return httperr.ErrBusiness("booking_not_found")
			}
			return err
		}

		if err := fn(&b); err != nil {
			return err
		}

		return tx.Omit(clause.Associations).Save(&b).Error
	})
}

func (r *BookingGormRepository) ListByOwner(
	ctx context.Context,
	ownerID uint,
) ([]models.Booking, error) {

	var bookings []models.Booking
	if err := r.db.WithContext(ctx).
		Preload("Slot").
		Preload("Slot.Walker").
		Preload("Dogs").
		Preload("PaymentIntent").
		Where("owner_id = ?", ownerID).
		Order("walk_start_time ASC").
		Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *BookingGormRepository) ListByWalker(
	ctx context.Context,
	walkerID uint,
) ([]models.Booking, error) {

	var bookings []models.Booking
	if err := r.db.WithContext(ctx).
		Preload("Slot").
		Preload("Owner").
		Preload("Dogs").
		Joins("JOIN slots ON slots.id = bookings.slot_id").
		Where("slots.walker_id = ?", walkerID).
		Order("bookings.walk_start_time ASC").
		Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *BookingGormRepository) ListActiveOnSlot(
	ctx context.Context,
	slotID uint,
) ([]models.Booking, error) {

	var bookings []models.Booking
	if err := r.db.WithContext(ctx).
		Preload("Dogs").
		Where("slot_id = ? AND status <> ?", slotID, string(domain.StatusCancelled)).
		Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}

// --------------------------------------------------
// Availability
// --------------------------------------------------

func (r *BookingGormRepository) BookedCapacity(
	ctx context.Context,
	slotID uint,
) (int, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Joins("JOIN booking_dogs bd ON bd.booking_id = bookings.id").
		Where("bookings.slot_id = ? AND bookings.status <> ?", slotID, string(domain.StatusCancelled)).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return int(count), nil
}

const bookedDogsExpr = `(
    SELECT COUNT(bd.dog_id)
    FROM booking_dogs bd
    JOIN bookings b ON b.id = bd.booking_id
    WHERE b.slot_id = slots.id AND b.status <> 'cancelled'
)`

func (r *BookingGormRepository) ListOpenSlots(
	ctx context.Context,
	f domain.AvailabilityFilter,
	now time.Time,
) ([]domain.OpenSlot, error) {

	q := r.db.WithContext(ctx).
		Model(&models.Slot{}).
		Select("slots.*").
		Joins("JOIN users ON users.id = slots.walker_id").
		Where("slots.start_time > ?", now).
		Where("slots.start_time >= ? AND slots.start_time <= ?", f.From, f.To).
		Where(bookedDogsExpr + " < slots.max_capacity")

	if f.Location != "" {
		pattern := "%" + strings.ToLower(f.Location) + "%"
		q = q.Where("LOWER(slots.location) LIKE ? OR LOWER(users.location) LIKE ?", pattern, pattern)
	}
	if f.MaxPrice != nil {
		q = q.Where("slots.price <= ?", *f.MaxPrice)
	}
	if f.WalkType != "" {
		q = q.Where("slots.walk_type = ?", f.WalkType)
	}

	var slots []models.Slot
	if err := q.Order("slots.start_time ASC").Find(&slots).Error; err != nil {
		return nil, err
	}
	if len(slots) == 0 {
		return []domain.OpenSlot{}, nil
	}

	ids := make([]uint, 0, len(slots))
	for _, s := range slots {
		ids = append(ids, s.ID)
	}

	type slotCount struct {
		SlotID uint
		Dogs   int
	}
	var counts []slotCount
	if err := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Select("bookings.slot_id AS slot_id, COUNT(bd.dog_id) AS dogs").
		Joins("JOIN booking_dogs bd ON bd.booking_id = bookings.id").
		Where("bookings.slot_id IN ? AND bookings.status <> ?", ids, string(domain.StatusCancelled)).
		Group("bookings.slot_id").
		Scan(&counts).Error; err != nil {
		return nil, err
	}

	byID := make(map[uint]int, len(counts))
	for _, c := range counts {
		byID[c.SlotID] = c.Dogs
	}

	out := make([]domain.OpenSlot, 0, len(slots))
	for _, s := range slots {
		out = append(out, domain.OpenSlot{Slot: s, BookedDogs: byID[s.ID]})
	}
	return out, nil
}

// --------------------------------------------------
// Review
// --------------------------------------------------

func (r *BookingGormRepository) HasReview(
	ctx context.Context,
	bookingID uint,
) (bool, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Review{}).
		Where("booking_id = ?", bookingID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *BookingGormRepository) CreateReview(
	ctx context.Context,
	review *models.Review,
) error {

	if err := r.db.WithContext(ctx).Create(review).Error; err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return httperr.ErrBusiness("duplicate_review")
		}
		return err
	}
	return nil
}

// Compile-time check
var _ domain.Repository = (*BookingGormRepository)(nil)
