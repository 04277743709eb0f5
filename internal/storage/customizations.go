package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/BenLaurenson/PiggyBack-sub005/internal/common"
	"github.com/BenLaurenson/PiggyBack-sub005/internal/model"
)

// SaveMethodologyCustomization persists a customization. Callers validate
// before saving; an invalid customization must never reach this point.
func (s *SQLiteStorage) SaveMethodologyCustomization(ctx context.Context, methodologyName string, c *model.MethodologyCustomization) error {
	if c == nil {
		return fmt.Errorf("customization cannot be nil")
	}
	if c.PartnershipID == "" {
		return fmt.Errorf("customization partnership ID cannot be empty")
	}

	customCategories, err := json.Marshal(c.CustomCategories)
	if err != nil {
		return fmt.Errorf("failed to encode custom categories: %w", err)
	}
	hidden, err := json.Marshal(c.HiddenSubcategories)
	if err != nil {
		return fmt.Errorf("failed to encode hidden subcategories: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO methodology_customizations
			(methodology_name, partnership_id, user_id, custom_categories, hidden_subcategories)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(methodology_name, partnership_id, user_id) DO UPDATE SET
			custom_categories = excluded.custom_categories,
			hidden_subcategories = excluded.hidden_subcategories,
			updated_at = CURRENT_TIMESTAMP`,
		methodologyName, c.PartnershipID, c.UserID, string(customCategories), string(hidden))
	if err != nil {
		return fmt.Errorf("failed to save customization: %w", err)
	}
	return nil
}

// GetMethodologyCustomization returns the operative customization for a
// partnership and user. A user-specific row wins over the partnership-wide
// one; absence of both is not an error, just a nil result.
func (s *SQLiteStorage) GetMethodologyCustomization(ctx context.Context, methodologyName, partnershipID, userID string) (*model.MethodologyCustomization, error) {
	if userID != "" {
		c, err := s.getCustomizationRow(ctx, methodologyName, partnershipID, userID)
		if err != nil && !errors.Is(err, common.ErrNotFound) {
			return nil, err
		}
		if c != nil {
			return c, nil
		}
	}

	c, err := s.getCustomizationRow(ctx, methodologyName, partnershipID, "")
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return c, nil
}

// DeleteMethodologyCustomization resets a customization back to the preset.
func (s *SQLiteStorage) DeleteMethodologyCustomization(ctx context.Context, methodologyName, partnershipID, userID string) error {
	_, err := s.db.ExecContext(ctx, `
		DELETE FROM methodology_customizations
		WHERE methodology_name = ? AND partnership_id = ? AND user_id = ?`,
		methodologyName, partnershipID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete customization: %w", err)
	}
	return nil
}

func (s *SQLiteStorage) getCustomizationRow(ctx context.Context, methodologyName, partnershipID, userID string) (*model.MethodologyCustomization, error) {
	var customCategories, hidden string
	err := s.db.QueryRowContext(ctx, `
		SELECT custom_categories, hidden_subcategories
		FROM methodology_customizations
		WHERE methodology_name = ? AND partnership_id = ? AND user_id = ?`,
		methodologyName, partnershipID, userID).Scan(&customCategories, &hidden)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query customization: %w", err)
	}

	c := &model.MethodologyCustomization{PartnershipID: partnershipID, UserID: userID}
	if err := json.Unmarshal([]byte(customCategories), &c.CustomCategories); err != nil {
		return nil, fmt.Errorf("failed to decode custom categories: %w", err)
	}
	if err := json.Unmarshal([]byte(hidden), &c.HiddenSubcategories); err != nil {
		return nil, fmt.Errorf("failed to decode hidden subcategories: %w", err)
	}
	return c, nil
}
