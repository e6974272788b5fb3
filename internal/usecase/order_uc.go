package usecase

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/steve958/plant-shop/internal/cart"
	"github.com/steve958/plant-shop/internal/domain"
)

type OrderUC struct {
	Orders   domain.OrderRepo
	Notifier domain.OrderNotifier
}

// CustomerDetails is the checkout snapshot of the buyer's profile.
type CustomerDetails struct {
	Email       string
	Name        string
	Surname     string
	Street      string
	Number      string
	Place       string
	PostalCode  string
	PhoneNumber string
}

// Submit turns the cart into a persisted order and notifies the shop owner
// by email. The caller clears the client cart only after Submit succeeds.
func (uc *OrderUC) Submit(ctx context.Context, c *cart.Cart, cust CustomerDetails, userID *uuid.UUID) (*domain.Order, error) {
	if c == nil || c.IsEmpty() {
		return nil, errors.New("empty cart")
	}
	if cust.Email == "" {
		return nil, errors.New("missing customer email")
	}

	o := &domain.Order{
		ID:          uuid.New(),
		Status:      domain.OrderStatusSubmitted,
		Email:       cust.Email,
		Name:        cust.Name,
		Surname:     cust.Surname,
		Street:      cust.Street,
		Number:      cust.Number,
		Place:       cust.Place,
		PostalCode:  cust.PostalCode,
		PhoneNumber: cust.PhoneNumber,
		UserID:      userID,
	}
	for _, it := range c.Items() {
		o.Items = append(o.Items, domain.OrderItem{
			ID:        uuid.New(),
			OrderID:   o.ID,
			ProductID: it.ProductID,
			Name:      it.Name,
			Image:     it.Image,
			Quantity:  it.Quantity,
			UnitPrice: it.Price,
		})
	}
	o.Subtotal, _ = c.Subtotal().Float64()
	o.DeliveryFee, _ = cart.DeliveryFee.Float64()
	o.Total, _ = c.Total().Float64()

	if err := uc.Orders.Save(ctx, o); err != nil {
		return nil, err
	}

	if uc.Notifier != nil {
		if err := uc.Notifier.NotifyOrder(ctx, o); err != nil {
			log.Error().Err(err).Str("order", o.ID.String()).Msg("order notification failed")
		} else {
			o.Status = domain.OrderStatusNotified
			o.Notified = true
			if err := uc.Orders.Save(ctx, o); err != nil {
				log.Error().Err(err).Str("order", o.ID.String()).Msg("mark notified")
			}
		}
	}
	return o, nil
}

func (uc *OrderUC) List(ctx context.Context) ([]domain.Order, error) {
	return uc.Orders.List(ctx)
}
