// Package validatefn performs structural validation of a built Command
// tree's metadata — environment variable names, symbol characters, and
// command/alias identifiers — using github.com/go-playground/validator/v10
// struct tags, the way the teacher's internal/validation package binds
// the same library to its own parsed fields. Choice-membership
// validation (spec §4.4) stays in match/, since that needs argv context
// this package never sees.
package validatefn

import (
	"fmt"
	"regexp"

	"github.com/go-playground/validator/v10"

	"github.com/arganaut/arganaut/model"
)

var (
	identifierPattern  = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
	commandNamePattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_.:-]*$`)
)

func newValidator() *validator.Validate {
	v := validator.New()

	_ = v.RegisterValidation("shell_identifier", func(fl validator.FieldLevel) bool {
		return identifierPattern.MatchString(fl.Field().String())
	})

	_ = v.RegisterValidation("command_name", func(fl validator.FieldLevel) bool {
		return commandNamePattern.MatchString(fl.Field().String())
	})

	return v
}

type envName struct {
	Name string `validate:"required,shell_identifier"`
}

type symbolChar struct {
	Char string `validate:"required,len=1"`
}

type identifier struct {
	Name string `validate:"required,command_name"`
}

// Validate walks cmd's whole tree and reports the first structurally
// invalid identifier it finds.
func Validate(cmd *model.Command) error {
	return validateNode(newValidator(), cmd)
}

func validateNode(v *validator.Validate, cmd *model.Command) error {
	if cmd.Name != "" {
		if err := v.Struct(identifier{Name: cmd.Name}); err != nil {
			return fmt.Errorf("command name %q: %w", cmd.Name, err)
		}
	}

	for _, alias := range cmd.Aliases {
		if err := v.Struct(identifier{Name: alias}); err != nil {
			return fmt.Errorf("alias %q: %w", alias, err)
		}
	}

	for _, e := range cmd.EnvParams {
		if e.Inherit {
			continue
		}

		if err := v.Struct(envName{Name: e.Name}); err != nil {
			return fmt.Errorf("env %q: %w", e.Name, err)
		}
	}

	for ch := range cmd.Symbols {
		if err := v.Struct(symbolChar{Char: string(ch)}); err != nil {
			return fmt.Errorf("symbol %q: %w", string(ch), err)
		}
	}

	for _, sub := range cmd.Subcommands {
		if err := validateNode(v, sub); err != nil {
			return err
		}
	}

	return nil
}
