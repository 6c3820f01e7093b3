package services

import (
	"math/rand/v2"
	"time"
)

const (
	minDeliveryDays = 1
	maxDeliveryDays = 30
)

// DeliveryService proposes an expected delivery date for the checkout form.
type DeliveryService interface {
	SuggestDate() time.Time
}

type deliveryService struct {
	now  func() time.Time
	intN func(n int) int
}

func NewDeliveryService() DeliveryService {
	return newDeliveryService(time.Now, rand.IntN)
}

func newDeliveryService(now func() time.Time, intN func(n int) int) *deliveryService {
	return &deliveryService{now: now, intN: intN}
}

// SuggestDate picks a calendar day between one and thirty days from today,
// uniformly at random, truncated to midnight UTC.
func (ds *deliveryService) SuggestDate() time.Time {
	days := minDeliveryDays + ds.intN(maxDeliveryDays-minDeliveryDays+1)
	y, m, d := ds.now().UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC).AddDate(0, 0, days)
}
