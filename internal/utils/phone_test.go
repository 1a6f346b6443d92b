package utils_test

import (
	"testing"

	"github.com/rkinstitute/institute_mgmt_app/internal/utils"
	"github.com/stretchr/testify/assert"
)

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		name  string
		phone string
		want  string
	}{
		{name: "bare ten digits", phone: "9876543210", want: "+919876543210"},
		{name: "leading trunk zero", phone: "09876543210", want: "+919876543210"},
		{name: "already international", phone: "+919876543210", want: "+919876543210"},
		{name: "double zero prefix", phone: "00919876543210", want: "+919876543210"},
		{name: "spaces and dashes", phone: "98765 432-10", want: "+919876543210"},
		{name: "other country code kept", phone: "+4479460000", want: "+4479460000"},
		{name: "empty", phone: "  ", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, utils.NormalizePhone(tt.phone, "+91"))
		})
	}
}
