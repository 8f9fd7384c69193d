package alert

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func activeAlert(id int64, symbol string, cond Condition, price float64) Alert {
	return Alert{ID: id, Symbol: symbol, Condition: cond, Price: price, Status: StatusActive}
}

// go test -v --run TestEvaluateBoundaries
func TestEvaluateBoundaries(t *testing.T) {
	tests := []struct {
		name      string
		condition Condition
		current   float64
		want      bool
	}{
		{name: "above at exact threshold", condition: ConditionAbove, current: 100, want: true},
		{name: "above just over", condition: ConditionAbove, current: 100.01, want: true},
		{name: "above just under", condition: ConditionAbove, current: 99.99, want: false},
		{name: "below at exact threshold", condition: ConditionBelow, current: 100, want: true},
		{name: "below just under", condition: ConditionBelow, current: 99.99, want: true},
		{name: "below just over", condition: ConditionBelow, current: 100.01, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			alerts := []Alert{activeAlert(1, "BTC", tt.condition, 100)}
			res := Evaluate([]Quote{{Symbol: "BTC", Price: tt.current}}, alerts)

			if tt.want {
				require.Len(t, res.Triggered, 1)
				assert.Equal(t, StatusTriggered, res.Alerts[0].Status)
			} else {
				assert.Empty(t, res.Triggered)
				assert.Equal(t, StatusActive, res.Alerts[0].Status)
			}
		})
	}
}

// go test -v --run TestEvaluateSymbolIsolation
func TestEvaluateSymbolIsolation(t *testing.T) {
	alerts := []Alert{activeAlert(1, "BTC", ConditionBelow, 1_000_000)}

	res := Evaluate([]Quote{{Symbol: "ETH", Price: 1}}, alerts)

	assert.Empty(t, res.Triggered)
	assert.Equal(t, StatusActive, res.Alerts[0].Status)
}

// go test -v --run TestEvaluateNoRetrigger
func TestEvaluateNoRetrigger(t *testing.T) {
	snapshot := []Quote{{Symbol: "BTC", Price: 200}}
	alerts := []Alert{activeAlert(1, "BTC", ConditionAbove, 100)}

	first := Evaluate(snapshot, alerts)
	require.Len(t, first.Triggered, 1)

	// same snapshot, then a price that would satisfy the other direction too
	second := Evaluate(snapshot, first.Alerts)
	assert.Empty(t, second.Triggered)
	third := Evaluate([]Quote{{Symbol: "BTC", Price: 50}}, second.Alerts)
	assert.Empty(t, third.Triggered)
	assert.Equal(t, StatusTriggered, third.Alerts[0].Status)
}

// go test -v --run TestEvaluateLeavesInputUntouched
func TestEvaluateLeavesInputUntouched(t *testing.T) {
	alerts := []Alert{
		activeAlert(1, "BTC", ConditionAbove, 100),
		activeAlert(2, "ETH", ConditionBelow, 10),
		{ID: 3, Symbol: "BTC", Condition: ConditionAbove, Price: 1, Status: StatusTriggered, Note: "done"},
	}

	res := Evaluate([]Quote{{Symbol: "BTC", Price: 150}, {Symbol: "ETH", Price: 20}}, alerts)

	assert.Equal(t, StatusActive, alerts[0].Status)
	require.Len(t, res.Triggered, 1)
	assert.Equal(t, int64(1), res.Triggered[0].ID)
	assert.Equal(t, []Status{StatusTriggered, StatusActive, StatusTriggered},
		[]Status{res.Alerts[0].Status, res.Alerts[1].Status, res.Alerts[2].Status})
	assert.Equal(t, "done", res.Alerts[2].Note)
}

// go test -v --run TestEvaluateEmptySnapshot
func TestEvaluateEmptySnapshot(t *testing.T) {
	alerts := []Alert{activeAlert(1, "BTC", ConditionAbove, 0)}

	res := Evaluate(nil, alerts)

	assert.Empty(t, res.Triggered)
	assert.Equal(t, alerts, res.Alerts)
}

// go test -v --run TestNewAlertValidation
func TestNewAlertValidation(t *testing.T) {
	a, err := New(7, " BTC ", ConditionAbove, 50000, "breakout")
	require.NoError(t, err)
	assert.Equal(t, Alert{ID: 7, Symbol: "BTC", Condition: ConditionAbove, Price: 50000, Note: "breakout", Status: StatusActive}, a)

	_, err = New(1, "", ConditionAbove, 1, "")
	assert.ErrorIs(t, err, ErrMissingSymbol)

	_, err = New(1, "BTC", Condition("sideways"), 1, "")
	assert.ErrorIs(t, err, ErrInvalidCondition)

	_, err = New(1, "BTC", ConditionBelow, math.NaN(), "")
	assert.ErrorIs(t, err, ErrInvalidPrice)

	_, err = New(1, "BTC", ConditionBelow, math.Inf(1), "")
	assert.ErrorIs(t, err, ErrInvalidPrice)
}

// go test -v --run TestParseCondition
func TestParseCondition(t *testing.T) {
	c, err := ParseCondition("Above")
	require.NoError(t, err)
	assert.Equal(t, ConditionAbove, c)

	c, err = ParseCondition(" below ")
	require.NoError(t, err)
	assert.Equal(t, ConditionBelow, c)

	_, err = ParseCondition("crosses")
	assert.ErrorIs(t, err, ErrInvalidCondition)
}
