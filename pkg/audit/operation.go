package audit

//go:generate go run github.com/dmarkham/enumer -type Operation -trimprefix Operation -transform lower -json -output operation.gen.go

// Operation is the kind of mutation recorded by a ChangeEvent
type Operation int

const (
	OperationCreate Operation = iota
	OperationUpdate
	OperationDelete
	OperationToggle
)

// pastTense is used in human readable messages
func (o Operation) pastTense() string {
	switch o {
	case OperationCreate:
		return "created"
	case OperationUpdate:
		return "updated"
	case OperationDelete:
		return "deleted"
	case OperationToggle:
		return "toggled"
	default:
		return o.String()
	}
}
