// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package cmdctx connects the project session to cobra commands.
package cmdctx

import (
	"errors"

	"github.com/dacolabs/autofuzz/internal/session"
	"github.com/spf13/cobra"
)

// FromCommand extracts the session Context from a cobra.Command's context.
// Returns nil if no Context is stored.
func FromCommand(cmd *cobra.Command) *session.Context {
	return session.From(cmd.Context())
}

// RequireFromCommand extracts the session Context from a cobra.Command's
// context, returning an error if not found.
func RequireFromCommand(cmd *cobra.Command) (*session.Context, error) {
	ctx := FromCommand(cmd)
	if ctx == nil {
		return nil, errors.New("project context not loaded")
	}
	return ctx, nil
}

// PreRunLoad is a PreRunE function that loads the project context and stores
// it in the command's context.
func PreRunLoad(cmd *cobra.Command, _ []string) error {
	ctx, err := session.Load(cmd.Context())
	if err != nil {
		return err
	}
	cmd.SetContext(ctx)
	return nil
}

// PreRunLoadOptional loads the project context when an autofuzz.yaml exists
// and leaves the command untouched otherwise.
func PreRunLoadOptional(cmd *cobra.Command, args []string) error {
	err := PreRunLoad(cmd, args)
	if errors.Is(err, session.ErrNotInitialized) {
		return nil
	}
	return err
}
