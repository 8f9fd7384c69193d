// Package alert holds user-defined price alerts: the persistent store, the
// evaluator that flips them to triggered, and the notifier that surfaces them.
package alert

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

var (
	ErrMissingSymbol    = errors.New("symbol is required")
	ErrInvalidCondition = errors.New("condition must be \"above\" or \"below\"")
	ErrInvalidPrice     = errors.New("price must be a finite number")
)

// Condition is the direction of the threshold crossing.
type Condition string

const (
	ConditionAbove Condition = "above"
	ConditionBelow Condition = "below"
)

// ParseCondition accepts "above" or "below" in any case.
func ParseCondition(s string) (Condition, error) {
	switch Condition(strings.ToLower(strings.TrimSpace(s))) {
	case ConditionAbove:
		return ConditionAbove, nil
	case ConditionBelow:
		return ConditionBelow, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidCondition, s)
	}
}

// Met reports whether current crosses threshold. Both directions are
// inclusive: an exact match triggers.
func (c Condition) Met(current, threshold float64) bool {
	switch c {
	case ConditionAbove:
		return current >= threshold
	case ConditionBelow:
		return current <= threshold
	default:
		return false
	}
}

type Status string

const (
	StatusActive    Status = "active"
	StatusTriggered Status = "triggered"
)

// Alert is persisted as-is; the JSON layout is the storage format.
type Alert struct {
	ID        int64     `json:"id"`
	Symbol    string    `json:"symbol"`
	Condition Condition `json:"condition"`
	Price     float64   `json:"price"`
	Note      string    `json:"note"`
	Status    Status    `json:"status"`
}

// New builds an active alert, rejecting an empty symbol or a non-finite price.
func New(id int64, symbol string, condition Condition, price float64, note string) (Alert, error) {
	symbol = strings.TrimSpace(symbol)
	if symbol == "" {
		return Alert{}, ErrMissingSymbol
	}
	if condition != ConditionAbove && condition != ConditionBelow {
		return Alert{}, fmt.Errorf("%w: %q", ErrInvalidCondition, condition)
	}
	if math.IsNaN(price) || math.IsInf(price, 0) {
		return Alert{}, ErrInvalidPrice
	}

	return Alert{
		ID:        id,
		Symbol:    symbol,
		Condition: condition,
		Price:     price,
		Note:      note,
		Status:    StatusActive,
	}, nil
}

func (a Alert) IsActive() bool {
	return a.Status == StatusActive
}

// Quote is the part of a watchlist entry the evaluator looks at.
type Quote struct {
	Symbol string  `json:"symbol"`
	Price  float64 `json:"price"`
}
