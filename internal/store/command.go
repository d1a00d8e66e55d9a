package store

// CommandKind names an operation routed through Store.Dispatch.
type CommandKind string

const (
	CommandLoad       CommandKind = "load"
	CommandCreate     CommandKind = "create"
	CommandUpdate     CommandKind = "update"
	CommandDelete     CommandKind = "delete"
	CommandClearError CommandKind = "clear_error"
)

// Command is a request against an entity store. ID is used by update and
// delete; Fields by create and update.
type Command[F any] struct {
	Kind   CommandKind
	ID     string
	Fields F
}

// Load builds a load command.
func Load[F any]() Command[F] { return Command[F]{Kind: CommandLoad} }

// Create builds a create command.
func Create[F any](fields F) Command[F] { return Command[F]{Kind: CommandCreate, Fields: fields} }

// Update builds an update command.
func Update[F any](id string, fields F) Command[F] {
	return Command[F]{Kind: CommandUpdate, ID: id, Fields: fields}
}

// Delete builds a delete command.
func Delete[F any](id string) Command[F] { return Command[F]{Kind: CommandDelete, ID: id} }

// ClearError builds a clear-error command.
func ClearError[F any]() Command[F] { return Command[F]{Kind: CommandClearError} }
