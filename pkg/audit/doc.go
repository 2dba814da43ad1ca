// Package audit provides audit logging for permctl operations.
//
// Every mutation made through the administration API is recorded as a
// ChangeEvent, and every read of the export API as an ExportEvent. Lines
// are written in RFC5424 syslog format to stdout:
//
//	<PRI>1 TIMESTAMP HOSTNAME permctl PROCID MSGID [SD] MSG
//
// API keys never appear in full; only their last four characters are kept.
//
// # Usage
//
//	audit.Log(audit.ChangeEvent{
//	    Operation: audit.OperationCreate,
//	    Entity:    audit.EntityProject,
//	    EntityID:  project.ID,
//	    Name:      project.Name,
//	    ClientIP:  r.RemoteAddr,
//	    Success:   true,
//	})
//
// When AUDIT_DATABASE_URL is set, events are also stored in the
// audit_messages table, indexed by entity kind and owning project.
// PERMCTL_AUDIT_ENABLED=false disables auditing.
package audit
