package cookie_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/storefront/pkg/cookie"
)

const (
	secretA = "0123456789abcdef0123456789abcdef"
	secretB = "fedcba9876543210fedcba9876543210"
)

// roundTrip copies cookies written by rec into a fresh request.
func roundTrip(rec *httptest.ResponseRecorder) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range rec.Result().Cookies() {
		req.AddCookie(c)
	}
	return req
}

func TestNew(t *testing.T) {
	t.Parallel()

	_, err := cookie.New(nil)
	assert.ErrorIs(t, err, cookie.ErrNoSecret)

	_, err = cookie.New([]string{"short"})
	assert.ErrorIs(t, err, cookie.ErrSecretTooShort)

	_, err = cookie.NewFromConfig(cookie.Config{Secrets: " " + secretA + " , " + secretB})
	assert.NoError(t, err)
}

func TestManager_Plain(t *testing.T) {
	t.Parallel()

	m, err := cookie.New([]string{secretA}, cookie.WithSecure(true))
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	require.NoError(t, m.Set(rec, "sid", "abc"))

	c := rec.Result().Cookies()[0]
	assert.True(t, c.Secure)
	assert.True(t, c.HttpOnly)
	assert.Equal(t, http.SameSiteLaxMode, c.SameSite)

	v, err := m.Get(roundTrip(rec), "sid")
	require.NoError(t, err)
	assert.Equal(t, "abc", v)

	_, err = m.Get(httptest.NewRequest(http.MethodGet, "/", nil), "sid")
	assert.ErrorIs(t, err, cookie.ErrCookieNotFound)

	assert.ErrorIs(t, m.Set(httptest.NewRecorder(), "big", strings.Repeat("x", 5000)), cookie.ErrValueTooLarge)
}

func TestManager_Signed(t *testing.T) {
	t.Parallel()

	m, err := cookie.New([]string{secretA})
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	require.NoError(t, m.SetSigned(rec, "sid", "session-1"))

	v, err := m.GetSigned(roundTrip(rec), "sid")
	require.NoError(t, err)
	assert.Equal(t, "session-1", v)

	tampered := httptest.NewRequest(http.MethodGet, "/", nil)
	tampered.AddCookie(&http.Cookie{Name: "sid", Value: rec.Result().Cookies()[0].Value + "x"})
	_, err = m.GetSigned(tampered, "sid")
	assert.ErrorIs(t, err, cookie.ErrInvalidSignature)
}

func TestManager_EncryptedRotation(t *testing.T) {
	t.Parallel()

	oldM, err := cookie.New([]string{secretA})
	require.NoError(t, err)
	newM, err := cookie.New([]string{secretB, secretA})
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	require.NoError(t, oldM.SetEncrypted(rec, "cart", "secret-cart"))

	v, err := newM.GetEncrypted(roundTrip(rec), "cart")
	require.NoError(t, err)
	assert.Equal(t, "secret-cart", v)

	other, err := cookie.New([]string{secretB})
	require.NoError(t, err)
	_, err = other.GetEncrypted(roundTrip(rec), "cart")
	assert.ErrorIs(t, err, cookie.ErrDecryptionFailed)
}

func TestManager_JSON(t *testing.T) {
	t.Parallel()

	type cart struct {
		Items map[string]int `json:"items"`
	}

	m, err := cookie.New([]string{secretA})
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	require.NoError(t, m.SetJSON(rec, "cart", cart{Items: map[string]int{"p1": 2}}))

	var got cart
	require.NoError(t, m.GetJSON(roundTrip(rec), "cart", &got))
	assert.Equal(t, 2, got.Items["p1"])
}

func TestManager_Delete(t *testing.T) {
	t.Parallel()

	m, err := cookie.New([]string{secretA})
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	m.Delete(rec, "cart")

	c := rec.Result().Cookies()[0]
	assert.Equal(t, "cart", c.Name)
	assert.Equal(t, -1, c.MaxAge)
}
