// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// Principal is the verified identity attached to a request by the
// authentication gate.
//
// It lives only as long as the request that produced it. The optional
// verification cache stores a JSON copy in the external cache, keyed by an
// HMAC of the credential and never outliving the token itself.
type Principal struct {
	// ID is the identity service's stable user identifier.
	ID string `json:"id"`

	// Email is the user's primary email address, if the identity has one.
	Email string `json:"email,omitempty"`

	// Role is the authorization role assigned by the identity service
	// (e.g. "authenticated").
	Role string `json:"role,omitempty"`

	// Audience is the audience the credential was issued for.
	Audience string `json:"aud,omitempty"`

	// Claims holds everything else the identity service returned together
	// with selected claims read from the token itself.
	Claims map[string]any `json:"claims,omitempty"`
}

// ExpiresAt returns the credential expiry recorded in Claims under "exp".
// The boolean is false when no expiry is known.
func (p Principal) ExpiresAt() (time.Time, bool) {
	switch exp := p.Claims["exp"].(type) {
	case float64:
		return time.Unix(int64(exp), 0), true
	case int64:
		return time.Unix(exp, 0), true
	case int:
		return time.Unix(int64(exp), 0), true
	default:
		return time.Time{}, false
	}
}
