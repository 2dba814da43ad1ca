package audit

import (
	"fmt"
	"strconv"
)

// Entity kinds that ChangeEvent records
const (
	EntityProject         = "project"
	EntityPermission      = "permission"
	EntityGroup           = "group"
	EntityGroupPermission = "group-permission"
)

// ChangeEvent records a mutation made through the administration API
type ChangeEvent struct {
	Operation    Operation
	Entity       string
	EntityID     int64
	ProjectID    int64  // owning project, when the handler knows it
	Name         string // project/group name or permission key, when known
	Actor        string // token subject when the admin gate is on
	ClientIP     string
	Success      bool
	ErrorMessage string
}

func (e ChangeEvent) MessageID() string {
	return e.Entity
}

func (e ChangeEvent) subject() string {
	subject := e.Entity
	if e.Name != "" {
		subject += " " + strconv.Quote(e.Name)
	}
	if e.EntityID != 0 {
		subject += fmt.Sprintf(" (id %d)", e.EntityID)
	}
	return subject
}

func (e ChangeEvent) Message() string {
	if e.Success {
		return fmt.Sprintf("%s %s", e.subject(), e.Operation.pastTense())
	}
	msg := fmt.Sprintf("failed to %s %s", e.Operation, e.subject())
	if e.ErrorMessage != "" {
		msg += ": " + e.ErrorMessage
	}
	return msg
}

func (e ChangeEvent) Severity() Severity {
	if e.Success {
		return SeverityNotice
	}
	return SeverityWarning
}

func (e ChangeEvent) Facility() int {
	return FacilityAuthPriv
}

func (e ChangeEvent) StructuredData() map[string]map[string]string {
	sd := map[string]map[string]string{
		SDIDSubject: {
			"entity": e.Entity,
		},
		SDIDClient: {
			"ip": e.ClientIP,
		},
		SDIDAction: {
			"operation": e.Operation.String(),
			"result":    result(e.Success),
		},
	}
	if e.EntityID != 0 {
		sd[SDIDSubject]["id"] = strconv.FormatInt(e.EntityID, 10)
	}
	if e.Name != "" {
		sd[SDIDSubject]["name"] = e.Name
	}
	if e.ProjectID != 0 && e.Entity != EntityProject {
		sd[SDIDSubject]["project"] = strconv.FormatInt(e.ProjectID, 10)
	}
	if e.Actor != "" {
		sd[SDIDAuth] = map[string]string{"user": e.Actor}
	}
	return sd
}

// project returns the owning project id; a project is its own owner
func (e ChangeEvent) project() int64 {
	if e.Entity == EntityProject {
		return e.EntityID
	}
	return e.ProjectID
}

func result(success bool) string {
	if success {
		return "success"
	}
	return "failure"
}
