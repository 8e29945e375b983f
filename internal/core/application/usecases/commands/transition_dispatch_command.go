package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/dispatch"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrTransitionDispatchCommandIsNotConstructed = errors.New(
	"TransitionDispatchCommand must be created via NewTransitionDispatchCommand constructor",
)

// TransitionDispatchCommand moves a dispatch note to another status.
type TransitionDispatchCommand struct { //nolint:recvcheck //using for validation
	noteID kernel.UUID
	target dispatch.Status

	guard guard.ConstructorGuard
}

func NewTransitionDispatchCommand(noteID kernel.UUID, target dispatch.Status) (TransitionDispatchCommand, error) {
	cmd := TransitionDispatchCommand{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		cmd.setNoteID(noteID),
		cmd.setTarget(target),
	); err != nil {
		return TransitionDispatchCommand{}, err
	}

	return cmd, nil
}

func (c TransitionDispatchCommand) Validate() error {
	return c.guard.Validate(ErrTransitionDispatchCommandIsNotConstructed)
}

func (c TransitionDispatchCommand) NoteID() kernel.UUID {
	return c.noteID
}

func (c TransitionDispatchCommand) Target() dispatch.Status {
	return c.target
}

func (c *TransitionDispatchCommand) setNoteID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.noteID = id
	return nil
}

func (c *TransitionDispatchCommand) setTarget(target dispatch.Status) error {
	if err := target.Validate(); err != nil {
		return err
	}
	c.target = target
	return nil
}
