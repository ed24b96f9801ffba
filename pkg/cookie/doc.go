// Package cookie reads and writes plain, signed and encrypted cookies.
//
// Signed values are HMAC-SHA256 authenticated; encrypted values use
// AES-256-GCM. Several secrets may be configured for rotation: the first
// one signs and encrypts, all of them are tried when reading.
//
//	m, err := cookie.NewFromConfig(cfg)
//	_ = m.SetJSON(w, "cart", cart, cookie.WithMaxAge(7*24*3600))
//	err = m.GetJSON(r, "cart", &cart)
package cookie
