package utils_test

import (
	"testing"

	"github.com/rkinstitute/institute_mgmt_app/internal/utils"
	"github.com/stretchr/testify/assert"
)

func TestVerifyWebhookSignature(t *testing.T) {
	secret := "whsec_test_secret"
	body := []byte(`{"event":"payment.captured","payload":{"payment":{"entity":{"id":"pay_1","order_id":"order_1"}}}}`)

	sig := utils.ComputeWebhookSignature(body, secret)
	assert.True(t, utils.VerifyWebhookSignature(body, sig, secret))
}

func TestVerifyWebhookSignature_SingleByteMutation(t *testing.T) {
	secret := "whsec_test_secret"
	body := []byte(`{"event":"payment.captured","payload":{"payment":{"entity":{"id":"pay_1","order_id":"order_1"}}}}`)
	sig := utils.ComputeWebhookSignature(body, secret)

	// Any single mutated byte in the body must fail verification.
	for i := 0; i < len(body); i += 7 {
		mutated := make([]byte, len(body))
		copy(mutated, body)
		mutated[i] ^= 0x01
		assert.False(t, utils.VerifyWebhookSignature(mutated, sig, secret), "mutation at byte %d accepted", i)
	}
}

func TestVerifyWebhookSignature_Rejections(t *testing.T) {
	body := []byte(`{}`)
	sig := utils.ComputeWebhookSignature(body, "right-secret")

	assert.False(t, utils.VerifyWebhookSignature(body, "", "right-secret"), "empty signature")
	assert.False(t, utils.VerifyWebhookSignature(body, sig, ""), "empty secret")
	assert.False(t, utils.VerifyWebhookSignature(body, sig, "wrong-secret"), "wrong secret")
	assert.False(t, utils.VerifyWebhookSignature(body, sig+"00", "right-secret"), "longer signature")
}
