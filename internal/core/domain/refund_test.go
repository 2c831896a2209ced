package domain_test

import (
	"testing"

	"github.com/ScaffRent/rental_logistics_app/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestCoerceRefundStatus(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  domain.RefundStatus
	}{
		{name: "draft passes through", input: "Draft", want: domain.RefundStatusDraft},
		{name: "pending approval passes through", input: "Pending Approval", want: domain.RefundStatusPendingApproval},
		{name: "approved is not creatable", input: "Approved", want: domain.RefundStatusDraft},
		{name: "rejected is not creatable", input: "Rejected", want: domain.RefundStatusDraft},
		{name: "empty defaults to draft", input: "", want: domain.RefundStatusDraft},
		{name: "garbage defaults to draft", input: "banana", want: domain.RefundStatusDraft},
		{name: "case sensitive", input: "draft", want: domain.RefundStatusDraft},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, domain.CoerceRefundStatus(tt.input))
		})
	}
}

func TestCoerceInvoiceType(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  domain.InvoiceType
	}{
		{name: "deposit passes through", input: "deposit", want: domain.InvoiceTypeDeposit},
		{name: "monthly rental passes through", input: "monthlyRental", want: domain.InvoiceTypeMonthlyRental},
		{name: "additional charge passes through", input: "additionalCharge", want: domain.InvoiceTypeAdditionalCharge},
		{name: "empty defaults to deposit", input: "", want: domain.InvoiceTypeDeposit},
		{name: "unknown defaults to deposit", input: "yearlyRental", want: domain.InvoiceTypeDeposit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, domain.CoerceInvoiceType(tt.input))
		})
	}
}

func TestUser_HasAnyRole(t *testing.T) {
	user := domain.User{Roles: []string{domain.RoleSales, domain.RoleOperations}}

	assert.True(t, user.HasAnyRole(domain.RoleSales))
	assert.True(t, user.HasAnyRole(domain.RoleFinance, domain.RoleOperations))
	assert.False(t, user.HasAnyRole(domain.RoleFinance, domain.RoleAdmin))
	assert.False(t, user.HasAnyRole())

	empty := domain.User{}
	assert.False(t, empty.HasAnyRole(domain.RoleSales))
}
