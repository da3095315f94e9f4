package licensing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLicense_StatusAt(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

	t.Run("active license reports days remaining", func(t *testing.T) {
		l := License{Status: LicenseActive, ExpiryDate: now.AddDate(0, 0, 45)}
		s := l.StatusAt(now)
		assert.True(t, s.IsActive)
		require.NotNil(t, s.DaysRemaining)
		assert.Equal(t, 45, *s.DaysRemaining)
		assert.False(t, s.NeedsExpiryWarning())
	})

	t.Run("close to expiry needs a warning", func(t *testing.T) {
		l := License{Status: LicenseActive, ExpiryDate: now.AddDate(0, 0, 10)}
		assert.True(t, l.StatusAt(now).NeedsExpiryWarning())
	})

	t.Run("past expiry is inactive with zero days", func(t *testing.T) {
		l := License{Status: LicenseActive, ExpiryDate: now.AddDate(0, 0, -3)}
		s := l.StatusAt(now)
		assert.False(t, s.IsActive)
		assert.Equal(t, 0, *s.DaysRemaining)
		assert.False(t, s.NeedsExpiryWarning())
	})

	t.Run("suspended license is inactive", func(t *testing.T) {
		l := License{Status: LicenseSuspended, ExpiryDate: now.AddDate(1, 0, 0)}
		assert.False(t, l.StatusAt(now).IsActive)
	})
}

func TestLicense_Renew(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	t.Run("extends from current expiry when still valid", func(t *testing.T) {
		l := License{Status: LicenseActive, ExpiryDate: now.AddDate(0, 2, 0)}
		l.Renew(12, now)
		assert.Equal(t, now.AddDate(0, 14, 0), l.ExpiryDate)
	})

	t.Run("extends from now when expired", func(t *testing.T) {
		l := License{Status: LicenseExpired, ExpiryDate: now.AddDate(0, -1, 0)}
		l.Renew(12, now)
		assert.Equal(t, now.AddDate(1, 0, 0), l.ExpiryDate)
		assert.Equal(t, LicenseActive, l.Status)
	})
}

func TestValidateOTP(t *testing.T) {
	assert.NoError(t, ValidateOTP("123456"))
	assert.Error(t, ValidateOTP("12345"))
	assert.Error(t, ValidateOTP("12a456"))
	assert.Error(t, ValidateOTP(""))
}
