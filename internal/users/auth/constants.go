// Copyright (c) 2026 Minimart. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

// # Domain Constants

const (
	// DefaultUserGroup is assigned to accounts without an explicit group.
	DefaultUserGroup = "user"

	// MaxCredentialLength caps username and password input at the boundary.
	MaxCredentialLength = 200
)
