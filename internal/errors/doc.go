// Package errors provides the coded error type shared by the encounter API layers.
//
// Errors carry a Code, a user-facing Message, an optional Cause and free-form Meta.
// The HTTP layer turns the Code into a status with Code.HTTPStatus.
//
// # Basic Usage
//
//	err := errors.NotFound("Enemy not found").WithMeta("enemy_id", id)
//	err := errors.Unprocessablef("damage must not be negative: %d", damage)
//
// Wrapping keeps the code of the wrapped error:
//
//	if err := store.Save(ctx, input); err != nil {
//	    return errors.Wrap(err, "failed to save weapons")
//	}
//
// Errors that do not come from this package are treated as CodeInternal.
//
// # Validation
//
//	vb := errors.NewValidationBuilder()
//	errors.ValidateRequired("name", weapon.Name, vb)
//	errors.ValidateMin("damage", weapon.Damage, 0, vb)
//	if err := vb.BuildUnprocessable(); err != nil {
//	    return err
//	}
//
// # Layer Guidelines
//
// Repository layer:
//   - Return Internal for storage failures, wrapped with the document name
//   - Never report a corrupt document, fall back to the defaults instead
//
// Orchestrator layer:
//   - Return NotFound for unknown identifiers on update
//   - Return Unprocessable for records that fail the domain model
//
// Handler layer:
//   - Reject malformed bodies with Unprocessable before calling an orchestrator
//   - Render {"detail": message} with Code.HTTPStatus
package errors
