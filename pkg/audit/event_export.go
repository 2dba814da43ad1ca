package audit

import "fmt"

// ExportEvent records a read of the export API
type ExportEvent struct {
	APIKey    string // empty for a full export
	ClientIP  string
	ProjectID int64
	Found     bool
}

// MaskAPIKey keeps only the last four characters of a key
func MaskAPIKey(key string) string {
	if len(key) <= 4 {
		return "****"
	}
	return "****" + key[len(key)-4:]
}

func (e ExportEvent) MessageID() string {
	return "export"
}

func (e ExportEvent) Message() string {
	if e.APIKey == "" {
		return "exported all projects"
	}
	if e.Found {
		return fmt.Sprintf("exported project %d with api key %s", e.ProjectID, MaskAPIKey(e.APIKey))
	}
	return fmt.Sprintf("no project for api key %s", MaskAPIKey(e.APIKey))
}

func (e ExportEvent) Severity() Severity {
	if e.APIKey == "" || e.Found {
		return SeverityInfo
	}
	return SeverityWarning
}

func (e ExportEvent) Facility() int {
	return FacilityAuth
}

func (e ExportEvent) StructuredData() map[string]map[string]string {
	sd := map[string]map[string]string{
		SDIDClient: {
			"ip": e.ClientIP,
		},
		SDIDAction: {
			"operation": "export",
			"result":    result(e.APIKey == "" || e.Found),
		},
	}
	if e.APIKey != "" {
		sd[SDIDExport] = map[string]string{"api_key": MaskAPIKey(e.APIKey)}
		if e.Found {
			sd[SDIDExport]["project"] = fmt.Sprintf("%d", e.ProjectID)
		}
	}
	return sd
}
