package commands

import (
	"errors"

	"dispatch/internal/pkg/guard"
)

var ErrAutoAssignOrderCommandIsNotConstructed = errors.New(
	"AutoAssignOrderCommand must be created via NewAutoAssignOrderCommand constructor",
)

// AutoAssignOrderCommand requests assignment of the oldest waiting order to
// the closest courier in range. Carries no parameters; the handler selects
// both sides itself.
type AutoAssignOrderCommand struct {
	guard guard.ConstructorGuard
}

// NewAutoAssignOrderCommand creates a command for automatic order assignment.
func NewAutoAssignOrderCommand() AutoAssignOrderCommand {
	return AutoAssignOrderCommand{guard: guard.NewConstructorGuard()}
}

// Validate ensures the command was created through the constructor.
func (c AutoAssignOrderCommand) Validate() error {
	return c.guard.Validate(ErrAutoAssignOrderCommandIsNotConstructed)
}
