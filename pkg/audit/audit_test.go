package audit

import (
	"bytes"
	"encoding/json"
	"regexp"
	"strings"
	"testing"
)

func TestLoggerFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger()
	logger.SetWriter(&buf)

	event := ChangeEvent{
		Operation: OperationCreate,
		Entity:    EntityPermission,
		EntityID:  12,
		Name:      "invoice.read",
		ClientIP:  "192.168.1.1",
		Success:   true,
	}

	logger.Log(event)

	output := buf.String()

	// <PRI>1 TIMESTAMP HOST APP PID MSGID SD MSG; PRI = 10*8 + 5
	header := regexp.MustCompile(`^<85>1 \d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}\.\d{3}Z \S+ permctl \d+ permission \[`)
	if !header.MatchString(output) {
		t.Errorf("unexpected header in %q", output)
	}
	if !strings.Contains(output, `[client@32473 ip="192.168.1.1"]`) {
		t.Errorf("Expected client IP in output, got %q", output)
	}
	if !strings.HasSuffix(output, "permission \"invoice.read\" (id 12) created\n") {
		t.Errorf("Expected message at end of line, got %q", output)
	}
}

func TestFormatStructuredData(t *testing.T) {
	sd := map[string]map[string]string{
		SDIDSubject: {"name": "Admins", "entity": "group"},
		SDIDAction:  {"operation": "create"},
	}

	got := formatStructuredData(sd)
	want := `[action@32473 operation="create"][subject@32473 entity="group" name="Admins"]`
	if got != want {
		t.Errorf("formatStructuredData() = %q, want %q", got, want)
	}

	if formatStructuredData(nil) != "" {
		t.Error("formatStructuredData(nil) should be empty")
	}
}

func TestEscapeSDValue(t *testing.T) {
	got := escapeSDValue(`a "quoted" \ value]`)
	want := `"a \"quoted\" \\ value\]"`
	if got != want {
		t.Errorf("escapeSDValue() = %q, want %q", got, want)
	}
}

func TestChangeEvent(t *testing.T) {
	tests := []struct {
		name      string
		event     ChangeEvent
		wantMsg   string
		wantSev   Severity
		wantMsgID string
	}{
		{
			name: "project created",
			event: ChangeEvent{
				Operation: OperationCreate,
				Entity:    EntityProject,
				EntityID:  1,
				Name:      "Billing",
				Success:   true,
			},
			wantMsg:   `project "Billing" (id 1) created`,
			wantSev:   SeverityNotice,
			wantMsgID: "project",
		},
		{
			name: "toggle failed",
			event: ChangeEvent{
				Operation:    OperationToggle,
				Entity:       EntityGroupPermission,
				Success:      false,
				ErrorMessage: "violates foreign key constraint",
			},
			wantMsg:   "failed to toggle group-permission: violates foreign key constraint",
			wantSev:   SeverityWarning,
			wantMsgID: "group-permission",
		},
		{
			name: "permission deleted",
			event: ChangeEvent{
				Operation: OperationDelete,
				Entity:    EntityPermission,
				EntityID:  4,
				Success:   true,
			},
			wantMsg:   "permission (id 4) deleted",
			wantSev:   SeverityNotice,
			wantMsgID: "permission",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.event.Message() != tt.wantMsg {
				t.Errorf("Message() = %q, want %q", tt.event.Message(), tt.wantMsg)
			}
			if tt.event.Severity() != tt.wantSev {
				t.Errorf("Severity() = %v, want %v", tt.event.Severity(), tt.wantSev)
			}
			if tt.event.Facility() != FacilityAuthPriv {
				t.Errorf("Facility() = %v, want FacilityAuthPriv", tt.event.Facility())
			}
			if tt.event.MessageID() != tt.wantMsgID {
				t.Errorf("MessageID() = %v, want %v", tt.event.MessageID(), tt.wantMsgID)
			}
		})
	}
}

func TestChangeEventStructuredData(t *testing.T) {
	sd := ChangeEvent{
		Operation: OperationUpdate,
		Entity:    EntityPermission,
		EntityID:  3,
		Name:      "invoice.write",
		Actor:     "alice",
		ClientIP:  "10.0.0.1",
		Success:   true,
	}.StructuredData()

	if sd[SDIDSubject]["id"] != "3" || sd[SDIDSubject]["name"] != "invoice.write" {
		t.Errorf("unexpected subject data %v", sd[SDIDSubject])
	}
	if sd[SDIDAction]["operation"] != "update" || sd[SDIDAction]["result"] != "success" {
		t.Errorf("unexpected action data %v", sd[SDIDAction])
	}
	if sd[SDIDAuth]["user"] != "alice" {
		t.Errorf("unexpected auth data %v", sd[SDIDAuth])
	}
	if _, ok := sd[SDIDSubject]["project"]; ok {
		t.Errorf("project should be omitted when unknown, got %v", sd[SDIDSubject])
	}
}

func TestChangeEventStructuredDataProject(t *testing.T) {
	sd := ChangeEvent{Operation: OperationCreate, Entity: EntityGroup, EntityID: 2, ProjectID: 5, Success: true}.StructuredData()
	if sd[SDIDSubject]["project"] != "5" {
		t.Errorf("expected project 5, got %v", sd[SDIDSubject])
	}

	sd = ChangeEvent{Operation: OperationDelete, Entity: EntityProject, EntityID: 5, Success: true}.StructuredData()
	if _, ok := sd[SDIDSubject]["project"]; ok {
		t.Errorf("a project event names itself by id only, got %v", sd[SDIDSubject])
	}
}

func TestExportEventNeverLogsFullKey(t *testing.T) {
	key := "5f1e2d3c-aaaa-bbbb-cccc-0123456789ab"

	var buf bytes.Buffer
	logger := NewLogger()
	logger.SetWriter(&buf)

	logger.Log(ExportEvent{APIKey: key, ClientIP: "10.0.0.1", ProjectID: 9, Found: true})
	logger.Log(ExportEvent{APIKey: key, ClientIP: "10.0.0.1"})

	output := buf.String()
	if strings.Contains(output, key) {
		t.Fatalf("full API key leaked into audit output: %q", output)
	}
	if !strings.Contains(output, "****89ab") {
		t.Errorf("expected masked key in output, got %q", output)
	}
	if !strings.Contains(output, "exported project 9") {
		t.Errorf("expected success message, got %q", output)
	}
}

func TestExportEventSeverity(t *testing.T) {
	if (ExportEvent{}).Severity() != SeverityInfo {
		t.Error("full export should be info")
	}
	if (ExportEvent{APIKey: "k", Found: true}).Severity() != SeverityInfo {
		t.Error("found export should be info")
	}
	if (ExportEvent{APIKey: "k"}).Severity() != SeverityWarning {
		t.Error("unknown key should be warning")
	}
}

func TestMaskAPIKey(t *testing.T) {
	if got := MaskAPIKey("abc"); got != "****" {
		t.Errorf("MaskAPIKey(short) = %q", got)
	}
	if got := MaskAPIKey("abcdefgh"); got != "****efgh" {
		t.Errorf("MaskAPIKey() = %q", got)
	}
}

func TestOperationEnum(t *testing.T) {
	op, err := OperationString("TOGGLE")
	if err != nil || op != OperationToggle {
		t.Fatalf("OperationString() = %v, %v", op, err)
	}

	data, err := json.Marshal(OperationDelete)
	if err != nil || string(data) != `"delete"` {
		t.Errorf("MarshalJSON() = %s, %v", data, err)
	}

	if _, err := OperationString("rename"); err == nil {
		t.Error("expected error for unknown operation")
	}
	if Operation(42).IsAOperation() {
		t.Error("42 is not an operation")
	}
}

func TestSetEnabled(t *testing.T) {
	IsEnabled()
	defer SetEnabled(true)

	SetEnabled(false)
	if IsEnabled() {
		t.Error("IsEnabled() should be false after SetEnabled(false)")
	}
}
