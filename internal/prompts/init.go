// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package prompts

import (
	"github.com/charmbracelet/huh"
)

// RunInitForm runs the interactive form for the init command.
// It fills the provided pointers with user input. The target fields are only
// asked for when addTarget is chosen.
func RunInitForm(seed, target, schema, count *string, addTarget *bool) error {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Random seed").
				Description("Runs with the same seed generate the same values.").
				Placeholder("autofuzz").
				Value(seed),
			huh.NewConfirm().
				Title("Add a target now?").
				Value(addTarget),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Target name").
				Prompt(": ").
				Inline(true).
				Placeholder("users").
				Validate(IdentifierValidator(map[string]struct{}{})).
				Value(target),
			huh.NewInput().
				Title("Schema file").
				Prompt(": ").
				Inline(true).
				Placeholder("schemas/user.yaml").
				Validate(requiredValidator("schema file")).
				Value(schema),
			huh.NewInput().
				Title("Values per run").
				Prompt(": ").
				Inline(true).
				Placeholder("10").
				Validate(countValidator).
				Value(count),
		).WithHideFunc(func() bool { return !*addTarget }),
	).WithTheme(Theme()).Run()
}
