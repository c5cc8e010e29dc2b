package commands

import (
	"errors"

	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrRegisterPartnerCommandIsNotConstructed = errors.New(
	"RegisterPartnerCommand must be created via NewRegisterPartnerCommand constructor",
)

// RegisterPartnerCommand enrolls a new delivery partner. Fresh partners
// start available with no known location.
type RegisterPartnerCommand struct {
	name  string
	guard guard.ConstructorGuard
}

// NewRegisterPartnerCommand validates the inputs and builds the command.
func NewRegisterPartnerCommand(name string) (RegisterPartnerCommand, error) {
	if name == "" {
		return RegisterPartnerCommand{}, errs.NewValueIsRequiredError("name")
	}

	return RegisterPartnerCommand{
		name:  name,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Name returns the partner's display name.
func (c *RegisterPartnerCommand) Name() string {
	return c.name
}

// Validate checks that the command was created through the constructor.
func (c *RegisterPartnerCommand) Validate() error {
	return c.guard.Validate(ErrRegisterPartnerCommandIsNotConstructed)
}
