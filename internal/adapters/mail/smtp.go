// Package mail sends the order notification the shop owner receives after a
// successful checkout.
package mail

import (
	"bytes"
	"context"
	"fmt"
	"net/smtp"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/steve958/plant-shop/internal/cart"
	"github.com/steve958/plant-shop/internal/config"
	"github.com/steve958/plant-shop/internal/domain"
)

type Notifier struct {
	cfg config.SMTPConfig
}

func NewNotifier(cfg config.SMTPConfig) *Notifier { return &Notifier{cfg: cfg} }

func (n *Notifier) NotifyOrder(_ context.Context, o *domain.Order) error {
	if !n.cfg.Configured() {
		log.Warn().Msg("SMTP not configured, skipping order email")
		return nil
	}
	to := n.cfg.OrderTo
	if to == "" {
		to = n.cfg.User
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "Subject: Nova porudžbina #%s\r\n", o.ID.String())
	fmt.Fprintf(&buf, "From: %s\r\n", n.cfg.User)
	fmt.Fprintf(&buf, "To: %s\r\n", to)
	buf.WriteString("MIME-Version: 1.0\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n")

	fmt.Fprintf(&buf, "Porudžbina: %s\n", o.ID)
	fmt.Fprintf(&buf, "Ime: %s %s\nEmail: %s\nTelefon: %s\n", o.Name, o.Surname, o.Email, o.PhoneNumber)
	fmt.Fprintf(&buf, "Adresa: %s %s, %s %s\n", o.Street, o.Number, o.PostalCode, o.Place)
	buf.WriteString("Proizvodi:\n")
	for _, it := range o.Items {
		fmt.Fprintf(&buf, "- %s x%d %s\n", it.Name, it.Quantity, cart.FormatPrice(it.UnitPrice))
	}
	fmt.Fprintf(&buf, "Ukupna cena: %s\n", cart.FormatPrice(o.Subtotal))
	fmt.Fprintf(&buf, "Troškovi dostave: %s\n", cart.FormatRSD(decimal.NewFromFloat(o.DeliveryFee)))
	fmt.Fprintf(&buf, "Ukupno za plaćanje: %s\n", cart.FormatPrice(o.Total))

	addr := n.cfg.Host + ":" + n.cfg.Port
	auth := smtp.PlainAuth("", n.cfg.User, n.cfg.Password, n.cfg.Host)
	if err := smtp.SendMail(addr, auth, n.cfg.User, []string{to}, buf.Bytes()); err != nil {
		log.Error().Err(err).Msg("order email send")
		return err
	}
	return nil
}
