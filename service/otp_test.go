package service_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wordingo/backend/apperr"
	"github.com/wordingo/backend/service"
)

func Test_OTPStore_IssueAndVerify(t *testing.T) {
	store := service.NewOTPStore(30*time.Minute, nil)

	code, echo, err := store.Issue("9876543210", "Asha", "asha@example.com")
	require.NoError(t, err)
	assert.Equal(t, service.FixedOTP, code)
	assert.True(t, echo, "fixed code should be echoed when no mailer is configured")

	name, email, err := store.Verify("9876543210", code)
	require.NoError(t, err)
	assert.Equal(t, "Asha", name)
	assert.Equal(t, "asha@example.com", email)
}

func Test_OTPStore_CodeIsConsumedOnVerify(t *testing.T) {
	store := service.NewOTPStore(30*time.Minute, nil)

	code, _, err := store.Issue("9876543210", "", "")
	require.NoError(t, err)
	_, _, err = store.Verify("9876543210", code)
	require.NoError(t, err)

	_, _, err = store.Verify("9876543210", code)
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func Test_OTPStore_WrongCodeRejected(t *testing.T) {
	store := service.NewOTPStore(30*time.Minute, nil)

	_, _, err := store.Issue("9876543210", "", "")
	require.NoError(t, err)

	_, _, err = store.Verify("9876543210", "000000")
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	// The wrong attempt does not consume the entry.
	_, _, err = store.Verify("9876543210", service.FixedOTP)
	assert.NoError(t, err)
}

func Test_OTPStore_ExpiredCodeRejected(t *testing.T) {
	store := service.NewOTPStore(-time.Minute, nil)

	code, _, err := store.Issue("9876543210", "", "")
	require.NoError(t, err)

	_, _, err = store.Verify("9876543210", code)
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func Test_OTPStore_UnknownPhoneRejected(t *testing.T) {
	store := service.NewOTPStore(30*time.Minute, nil)

	_, _, err := store.Verify("0000000000", service.FixedOTP)
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}
