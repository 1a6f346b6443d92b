package domain_test

import (
	"testing"

	"github.com/rkinstitute/institute_mgmt_app/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestRemainingAfter(t *testing.T) {
	tests := []struct {
		name  string
		total string
		paid  string
		want  string
	}{
		{name: "partial payment", total: "12000", paid: "5000", want: "7000"},
		{name: "full payment", total: "12000", paid: "12000", want: "0"},
		{name: "fractional amounts stay exact", total: "999.95", paid: "333.33", want: "666.62"},
		{name: "overpayment floors at zero", total: "1000", paid: "1500", want: "0"},
		{name: "zero paid", total: "500", paid: "0", want: "500"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			total := decimal.RequireFromString(tt.total)
			paid := decimal.RequireFromString(tt.paid)
			got := domain.RemainingAfter(total, paid)
			assert.True(t, got.Equal(decimal.RequireFromString(tt.want)), "got %s", got)
			assert.False(t, got.IsNegative())
		})
	}
}

func TestNetSalaryOf(t *testing.T) {
	basic := decimal.RequireFromString("30000")
	allowances := decimal.RequireFromString("4500.50")
	deductions := decimal.RequireFromString("1200")

	net := domain.NetSalaryOf(basic, allowances, deductions)
	assert.True(t, net.Equal(decimal.RequireFromString("33300.50")), "got %s", net)
}

func TestPaymentTransaction_Lifecycle(t *testing.T) {
	created := domain.PaymentTransaction{Status: domain.TransactionCreated}
	assert.False(t, created.IsCaptured())
	assert.False(t, created.IsTerminal())

	captured := domain.PaymentTransaction{Status: domain.TransactionCaptured}
	assert.True(t, captured.IsCaptured())
	assert.True(t, captured.IsTerminal())

	failed := domain.PaymentTransaction{Status: domain.TransactionFailed}
	assert.False(t, failed.IsCaptured())
	assert.True(t, failed.IsTerminal())
}
