package rewards

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

type Network string

const (
	NetworkTRC20 Network = "TRC20"
	NetworkBEP20 Network = "BEP20"
)

var (
	MinDeposit    = decimal.NewFromInt(1)
	MaxDeposit    = decimal.NewFromInt(10)
	MinWithdrawal = decimal.NewFromInt(1)
	MaxWithdrawal = decimal.NewFromInt(25)
	// MinSpinDeposit is the deposit needed before the wheel can be spun.
	MinSpinDeposit = decimal.NewFromInt(1)
)

var (
	ErrAmountOutOfRange    = errors.New("amount out of range")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrUnknownNetwork      = errors.New("unknown network")
	ErrEmptyAddress        = errors.New("wallet address is empty")
)

func Networks() []Network {
	return []Network{NetworkTRC20, NetworkBEP20}
}

func ParseNetwork(s string) (Network, error) {
	n := Network(strings.ToUpper(strings.TrimSpace(s)))
	for _, known := range Networks() {
		if n == known {
			return n, nil
		}
	}
	return "", ErrUnknownNetwork
}

func inRange(v, lo, hi decimal.Decimal) bool {
	return v.GreaterThanOrEqual(lo) && v.LessThanOrEqual(hi)
}

func ValidateDeposit(amount decimal.Decimal) error {
	if !inRange(amount, MinDeposit, MaxDeposit) {
		return ErrAmountOutOfRange
	}
	return nil
}

func ValidateWithdrawal(amount, balance decimal.Decimal, address string, network Network) error {
	if !inRange(amount, MinWithdrawal, MaxWithdrawal) {
		return ErrAmountOutOfRange
	}
	if balance.LessThan(amount) {
		return ErrInsufficientBalance
	}
	if strings.TrimSpace(address) == "" {
		return ErrEmptyAddress
	}
	if _, err := ParseNetwork(string(network)); err != nil {
		return err
	}
	return nil
}

// MaxWithdrawable is the amount the MAX helper fills in.
func MaxWithdrawable(balance decimal.Decimal) decimal.Decimal {
	if balance.IsNegative() {
		return decimal.Zero
	}
	return decimal.Min(balance, MaxWithdrawal)
}
