package service

import (
	"context"
	"errors"
	"strings"

	"github.com/Moha2000-dev/Flight-Management-Company/internal/model"
	"github.com/Moha2000-dev/Flight-Management-Company/internal/repository"
)

// Bags heavier than this are rejected outright at check-in.
const maxBagWeightG = 100_000

// TicketService covers the agent desk operations on individual tickets:
// check-in and baggage registration.
type TicketService struct {
	tickets *repository.TicketRepo
}

func NewTicketService(tickets *repository.TicketRepo) *TicketService {
	return &TicketService{tickets: tickets}
}

// CheckIn marks the ticket checked in. Checking in twice is a no-op.
func (s *TicketService) CheckIn(ctx context.Context, ticketID uint64) error {
	if ticketID == 0 {
		return errInvalid("ticket id is required")
	}
	if err := s.tickets.CheckIn(ctx, ticketID); err != nil {
		if errors.Is(err, repository.ErrTicketNotFound) {
			return errNotFound("ticket not found")
		}
		return err
	}
	return nil
}

// AddBaggage records one bag against a ticket. Weight is in grams.
func (s *TicketService) AddBaggage(ctx context.Context, ticketID uint64, weightG int64, tagNumber string) (model.Baggage, error) {
	if ticketID == 0 {
		return model.Baggage{}, errInvalid("ticket id is required")
	}
	if weightG <= 0 {
		return model.Baggage{}, errInvalid("weight_g must be positive")
	}
	if weightG > maxBagWeightG {
		return model.Baggage{}, errInvalid("weight_g exceeds the %d g limit", maxBagWeightG)
	}
	tagNumber = strings.ToUpper(strings.TrimSpace(tagNumber))
	if tagNumber == "" {
		return model.Baggage{}, errInvalid("tag_number is required")
	}
	bg := model.Baggage{TicketID: ticketID, WeightG: weightG, TagNumber: tagNumber}
	if err := s.tickets.AddBaggage(ctx, &bg); err != nil {
		if errors.Is(err, repository.ErrTicketNotFound) {
			return model.Baggage{}, errNotFound("ticket not found")
		}
		return model.Baggage{}, err
	}
	return bg, nil
}
