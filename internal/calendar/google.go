package calendar

import (
	"context"
	"fmt"
	"os"
	"time"

	gcal "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	domain "github.com/waggytails/walk-scheduler/internal/domain/booking"
	"github.com/waggytails/walk-scheduler/internal/models"
)

// Google Calendar color ids.
const (
	colorGreen  = "10" // confirmed
	colorYellow = "5"  // pending
	colorRed    = "11" // nothing active
)

type GoogleAdapter struct {
	svc        *gcal.Service
	calendarID string
}

func NewGoogleAdapter(ctx context.Context, credentialsFile, calendarID string) (*GoogleAdapter, error) {
	creds, err := os.ReadFile(credentialsFile)
	if err != nil {
		return nil, fmt.Errorf("read google credentials: %w", err)
	}

	svc, err := gcal.NewService(ctx, option.WithCredentialsJSON(creds))
	if err != nil {
		return nil, fmt.Errorf("build calendar service: %w", err)
	}

	return &GoogleAdapter{svc: svc, calendarID: calendarID}, nil
}

func (a *GoogleAdapter) CreateEvent(ctx context.Context, slot *models.Slot) (string, error) {
	created, err := a.svc.Events.
		Insert(a.calendarID, a.eventFor(slot, nil)).
		Context(ctx).Do()
	if err != nil {
		return "", err
	}
	return created.Id, nil
}

func (a *GoogleAdapter) UpdateEvent(ctx context.Context, eventID string, slot *models.Slot) error {
	_, err := a.svc.Events.
		Update(a.calendarID, eventID, a.eventFor(slot, nil)).
		Context(ctx).Do()
	return err
}

func (a *GoogleAdapter) DeleteEvent(ctx context.Context, eventID string) error {
	return a.svc.Events.Delete(a.calendarID, eventID).Context(ctx).Do()
}

func (a *GoogleAdapter) UpsertWithBookings(
	ctx context.Context,
	eventID string,
	slot *models.Slot,
	bookings []models.Booking,
) (string, error) {

	ev := a.eventFor(slot, bookings)

	if eventID == "" {
		created, err := a.svc.Events.Insert(a.calendarID, ev).Context(ctx).Do()
		if err != nil {
			return "", err
		}
		return created.Id, nil
	}

	if _, err := a.svc.Events.Update(a.calendarID, eventID, ev).Context(ctx).Do(); err != nil {
		return "", err
	}
	return eventID, nil
}

func (a *GoogleAdapter) eventFor(slot *models.Slot, bookings []models.Booking) *gcal.Event {
	summary := fmt.Sprintf("%s walk", slot.WalkType)
	color := colorRed

	dogs := 0
	pending, confirmed := 0, 0
	for i := range bookings {
		switch domain.Status(bookings[i].Status) {
		case domain.StatusCancelled:
			continue
		case domain.StatusPending:
			pending++
		case domain.StatusConfirmed, domain.StatusFinished:
			confirmed++
		}
		dogs += len(bookings[i].Dogs)
	}

	switch {
	case confirmed > 0:
		color = colorGreen
	case pending > 0:
		color = colorYellow
	}
	if pending+confirmed > 0 {
		summary = fmt.Sprintf("%s walk (%d/%d dogs)", slot.WalkType, dogs, slot.MaxCapacity)
	}

	return &gcal.Event{
		Summary:  summary,
		Location: slot.Location,
		ColorId:  color,
		Start: &gcal.EventDateTime{
			DateTime: slot.StartTime.UTC().Format(time.RFC3339),
			TimeZone: "UTC",
		},
		End: &gcal.EventDateTime{
			DateTime: slot.EndTime().UTC().Format(time.RFC3339),
			TimeZone: "UTC",
		},
	}
}

var _ Adapter = (*GoogleAdapter)(nil)
