/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package main

import (
	"context"
	"crypto/rand"
	"regexp"
)

const (
	codeLength   = 8
	codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
)

var codePattern = regexp.MustCompile(`^[A-Za-z0-9]{8}$`)

// randomCode generates a crypto-random alphanumeric code, rejection
// sampling to keep the distribution uniform.
func randomCode(n int) string {
	const max = byte(255 - (256 % len(codeAlphabet)))

	out := make([]byte, 0, n)
	buf := make([]byte, n*2)

	for len(out) < n {
		if _, err := rand.Read(buf); err != nil {
			panic("crypto/rand failure: " + err.Error())
		}

		for _, b := range buf {
			if b <= max {
				out = append(out, codeAlphabet[int(b)%len(codeAlphabet)])
				if len(out) == n {
					return string(out)
				}
			}
		}
	}

	return string(out)
}

// NewCode returns a code matching neither an open session nor a stored
// transcript. Retries on collision without bound; 62^8 possible codes
// keep a sustained loop out of reach unless the space is exhausted.
func (r *Registry) NewCode(ctx context.Context) string {
	for {
		code := randomCode(codeLength)

		r.mu.Lock()
		_, open := r.sessions[code]
		r.mu.Unlock()

		if open {
			continue
		}

		exists, err := r.store.Exists(ctx, code)
		if err != nil {
			logf(r.cfg, "ERROR: Code uniqueness check failed: %v", err)
		}

		if !exists {
			return code
		}
	}
}
