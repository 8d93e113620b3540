package token

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-for-unit-tests"

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func newTestService(t *testing.T) (*Service, *fakeClock) {
	t.Helper()

	clock := &fakeClock{now: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)}
	svc, err := New(testSecret, WithClock(clock.Now))
	require.NoError(t, err)

	return svc, clock
}

func TestNew_MissingSecret(t *testing.T) {
	svc, err := New("")
	assert.Nil(t, svc)
	assert.ErrorIs(t, err, ErrMissingSecret)
}

func TestIssueVerify_RoundTrip(t *testing.T) {
	svc, _ := newTestService(t)

	cases := []struct {
		id   string
		name string
	}{
		{"+15551234567", "Alice"},
		{"+447700900123", "Bob Smith"},
		{"+15550000000", ""},
		{"+819012345678", "ユーザー"},
	}

	for _, tc := range cases {
		t.Run(tc.id, func(t *testing.T) {
			signed, err := svc.Issue(tc.id, tc.name)
			require.NoError(t, err)

			identity, err := svc.Verify(signed)
			require.NoError(t, err)
			assert.Equal(t, Identity{SubjectID: tc.id, DisplayName: tc.name}, identity)
		})
	}

	t.Run("empty subject", func(t *testing.T) {
		signed, err := svc.Issue("", "Alice")
		assert.ErrorIs(t, err, ErrEmptySubject)
		assert.Empty(t, signed)
	})
}

func TestVerify_Expiry(t *testing.T) {
	svc, clock := newTestService(t)

	signed, err := svc.Issue("+15551234567", "Alice")
	require.NoError(t, err)

	issuedAt := clock.now

	clock.now = issuedAt.Add(29 * 24 * time.Hour)
	_, err = svc.Verify(signed)
	assert.NoError(t, err, "token should still be valid after 29 days")

	clock.now = issuedAt.Add(31 * 24 * time.Hour)
	_, err = svc.Verify(signed)
	assert.ErrorIs(t, err, ErrInvalidToken, "token should be expired after 31 days")
}

func TestIssue_ExpiresThirtyDaysAfterIssuance(t *testing.T) {
	svc, clock := newTestService(t)

	signed, err := svc.Issue("+15551234567", "Alice")
	require.NoError(t, err)

	claims := &Claims{}
	_, _, err = jwt.NewParser().ParseUnverified(signed, claims)
	require.NoError(t, err)

	assert.Equal(t, clock.now.Unix(), claims.IssuedAt.Unix())
	assert.Equal(t, clock.now.Add(Lifetime).Unix(), claims.ExpiresAt.Unix())
}

func TestVerify_AnyByteFlipIsRejected(t *testing.T) {
	svc, _ := newTestService(t)

	signed, err := svc.Issue("+15551234567", "Alice")
	require.NoError(t, err)

	for i := 0; i < len(signed); i++ {
		tampered := []byte(signed)
		if tampered[i] == 'A' {
			tampered[i] = 'B'
		} else {
			tampered[i] = 'A'
		}

		identity, err := svc.Verify(string(tampered))
		if !errors.Is(err, ErrInvalidToken) {
			t.Fatalf("byte %d flipped: expected ErrInvalidToken, got identity=%+v err=%v", i, identity, err)
		}
	}
}

func TestVerify_RejectsForeignSecret(t *testing.T) {
	svc, _ := newTestService(t)
	other, err := New("another-secret")
	require.NoError(t, err)

	signed, err := other.Issue("+15551234567", "Alice")
	require.NoError(t, err)

	_, err = svc.Verify(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_RejectsUnsignedAndMalformed(t *testing.T) {
	svc, clock := newTestService(t)

	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(clock.now.Add(time.Hour)),
		},
		UserID: "+15551234567",
	}
	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	for _, raw := range []string{"", "not-a-token", "a.b.c", unsigned} {
		_, err := svc.Verify(raw)
		assert.ErrorIs(t, err, ErrInvalidToken, "input %q", raw)
	}
}

func TestVerify_RejectsTokenWithoutExpiry(t *testing.T) {
	svc, _ := newTestService(t)

	claims := Claims{UserID: "+15551234567", Username: "Alice"}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = svc.Verify(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
