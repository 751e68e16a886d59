// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package prompts

import (
	"github.com/charmbracelet/huh"
	"github.com/dacolabs/autofuzz/internal/config"
)

// RunTargetAddForm runs the interactive form for adding a target.
// It fills the provided pointers with user input.
func RunTargetAddForm(name, schema, count *string, strict *bool, existing map[string]config.Target) error {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Target name").
				Prompt(": ").
				Inline(true).
				Value(name).
				Validate(IdentifierValidator(existing)),
			huh.NewInput().
				Title("Schema file").
				Prompt(": ").
				Inline(true).
				Placeholder("schemas/user.yaml").
				Value(schema).
				Validate(requiredValidator("schema file")),
			huh.NewInput().
				Title("Values per run").
				Prompt(": ").
				Inline(true).
				Placeholder("10").
				Value(count).
				Validate(countValidator),
		),
		huh.NewGroup(
			huh.NewSelect[bool]().
				Title("Validation").
				Options(
					huh.NewOption("Kinds only", false),
					huh.NewOption("Strict (enforce every keyword)", true),
				).
				Value(strict),
		),
	).WithTheme(Theme()).Run()
}
