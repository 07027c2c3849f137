package customers

import (
	"context"
	"fmt"
	"strings"

	"github.com/angelmondragon/storefront-backend/pkg/db/models"
)

// Contact is the customer block submitted at checkout.
type Contact struct {
	Name    string
	Email   string
	Phone   string
	Address string
	City    *string
}

// RecordOrder upserts the customer by phone and folds one order of totalCents
// into their lifetime counters. Callers run it inside the checkout transaction.
// A first order that races another for the same phone falls through to the
// update path once the competing row is visible.
func (r *Repository) RecordOrder(ctx context.Context, contact Contact, totalCents int64) (*models.Customer, error) {
	existing, err := r.FindByPhone(ctx, contact.Phone)
	if err != nil {
		return nil, err
	}

	if existing == nil {
		customer := &models.Customer{
			Phone:           NormalizePhone(contact.Phone),
			TotalOrders:     1,
			TotalSpentCents: totalCents,
			Tags:            []string{TagNew},
		}
		applyContact(customer, contact)
		created, err := r.CreateIfAbsent(ctx, customer)
		if err != nil {
			return nil, err
		}
		if created {
			return customer, nil
		}
		existing, err = r.FindByPhone(ctx, contact.Phone)
		if err != nil {
			return nil, err
		}
		if existing == nil {
			return nil, fmt.Errorf("customer %s vanished after conflicting insert", customer.Phone)
		}
	}

	existing.TotalOrders++
	existing.TotalSpentCents += totalCents
	existing.Tags = LoyaltyTags(existing.TotalOrders, existing.TotalSpentCents)
	applyContact(existing, contact)
	if err := r.Save(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

func applyContact(customer *models.Customer, contact Contact) {
	customer.Name = strings.TrimSpace(contact.Name)
	customer.Email = strings.ToLower(strings.TrimSpace(contact.Email))
	customer.Address = strings.TrimSpace(contact.Address)
	if contact.City != nil {
		if city := strings.TrimSpace(*contact.City); city != "" {
			customer.City = &city
		}
	}
}
