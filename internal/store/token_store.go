package store

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/feruzlabs/laravel-taskMaster/internal/model"
)

// TokenStore persists bearer tokens.
type TokenStore struct {
	db *gorm.DB
}

func NewTokenStore(db *gorm.DB) *TokenStore {
	return &TokenStore{db: db}
}

func (s *TokenStore) Create(ctx context.Context, userID uint, token string) error {
	row := model.Token{Token: token, UserID: userID}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return fmt.Errorf("create token: %w", err)
	}
	return nil
}

// UserByToken resolves a presented bearer token to its owning user.
func (s *TokenStore) UserByToken(ctx context.Context, token string) (*model.User, error) {
	var row model.Token
	db := s.db.WithContext(ctx)
	if err := db.Where("token = ?", token).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find token: %w", err)
	}
	var user model.User
	if err := db.First(&user, row.UserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find token user: %w", err)
	}
	return &user, nil
}

// Delete revokes exactly the presented token. Deleting a token that is
// already gone is not an error; other tokens of the same user are untouched.
func (s *TokenStore) Delete(ctx context.Context, token string) error {
	if err := s.db.WithContext(ctx).Where("token = ?", token).
		Delete(&model.Token{}).Error; err != nil {
		return fmt.Errorf("delete token: %w", err)
	}
	return nil
}
