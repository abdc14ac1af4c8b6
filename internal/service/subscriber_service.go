package service

import (
	"errors"
	"net/mail"
	"strings"
	"time"

	"github.com/ngektech/patangenotes.in/internal/db"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrInvalidEmail = errors.New("email address is not valid")

// SubscriberService owns the newsletter ledger.
type SubscriberService struct {
	db *gorm.DB
}

// NewSubscriberService creates a SubscriberService instance.
func NewSubscriberService(gdb *gorm.DB) *SubscriberService {
	return &SubscriberService{db: gdb}
}

// Subscribe records a newsletter signup. The address is normalized before
// the uniqueness check, so re-subscribing with a different casing is a
// no-op success rather than a duplicate or an error. The insert rides on
// the unique index, which holds even when two signups for the same address
// race each other.
func (s *SubscriberService) Subscribe(email string) (*db.Subscriber, bool, error) {
	normalized, err := normalizeEmail(email)
	if err != nil {
		return nil, false, err
	}

	subscriber := db.Subscriber{
		Email:        normalized,
		SubscribedAt: time.Now().UTC(),
	}

	res := s.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&subscriber)
	if res.Error != nil {
		return nil, false, res.Error
	}

	created := res.RowsAffected > 0
	if !created {
		if err := s.db.Where("email = ?", normalized).First(&subscriber).Error; err != nil {
			return nil, false, err
		}
	}
	return &subscriber, created, nil
}

// ListAll returns every subscriber, oldest signup first.
func (s *SubscriberService) ListAll() ([]db.Subscriber, error) {
	subscribers := []db.Subscriber{}
	if err := s.db.Order("subscribed_at asc, id asc").Find(&subscribers).Error; err != nil {
		return nil, err
	}
	return subscribers, nil
}

// Count returns the number of subscribers.
func (s *SubscriberService) Count() (int64, error) {
	var count int64
	if err := s.db.Model(&db.Subscriber{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func normalizeEmail(email string) (string, error) {
	normalized := strings.ToLower(strings.TrimSpace(email))
	if normalized == "" || strings.ContainsAny(normalized, " \t") {
		return "", ErrInvalidEmail
	}

	addr, err := mail.ParseAddress(normalized)
	if err != nil || addr.Address != normalized {
		return "", ErrInvalidEmail
	}

	at := strings.LastIndex(normalized, "@")
	if at <= 0 || !strings.Contains(normalized[at+1:], ".") {
		return "", ErrInvalidEmail
	}

	return normalized, nil
}
