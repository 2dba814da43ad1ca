package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"github.com/cucumber/godog"
)

// StepsContext holds state shared between step definitions
type StepsContext struct {
	tc           *TestContext
	response     *http.Response
	responseBody []byte

	projects    map[string]project
	permissions map[string]int64
	groups      map[string]int64
}

type project struct {
	ID     int64  `json:"id"`
	APIKey string `json:"apiKey"`
}

func NewStepsContext(tc *TestContext) *StepsContext {
	return &StepsContext{
		tc:          tc,
		projects:    make(map[string]project),
		permissions: make(map[string]int64),
		groups:      make(map[string]int64),
	}
}

// RegisterSteps registers all step definitions
func (s *StepsContext) RegisterSteps(sc *godog.ScenarioContext) {
	sc.Before(func(ctx context.Context, _ *godog.Scenario) (context.Context, error) {
		return ctx, s.tc.Reset()
	})

	sc.Step(`^a permissions server is running$`, s.aPermissionsServerIsRunning)

	// Admin API
	sc.Step(`^I create a project named "([^"]*)"$`, s.iCreateAProjectNamed)
	sc.Step(`^I create a permission "([^"]*)" in project "([^"]*)"$`, s.iCreateAPermissionInProject)
	sc.Step(`^I create a group "([^"]*)" in project "([^"]*)"$`, s.iCreateAGroupInProject)
	sc.Step(`^I (enable|disable) "([^"]*)" for group "([^"]*)"$`, s.iTogglePermissionForGroup)
	sc.Step(`^I rename permission "([^"]*)" to "([^"]*)"$`, s.iRenamePermission)
	sc.Step(`^I delete the permission "([^"]*)"$`, s.iDeleteThePermission)
	sc.Step(`^I delete the group "([^"]*)"$`, s.iDeleteTheGroup)
	sc.Step(`^I delete the project "([^"]*)"$`, s.iDeleteTheProject)
	sc.Step(`^I send a (GET|POST|PUT|DELETE) request to "([^"]*)"$`, s.iSendARequestTo)
	sc.Step(`^I send a (GET|POST|PUT|DELETE) request to "([^"]*)" with body:$`, s.iSendARequestWithBody)

	// Export API
	sc.Step(`^I export project "([^"]*)" by API key$`, s.iExportProjectByAPIKey)
	sc.Step(`^I export with API key "([^"]*)"$`, s.iExportWithAPIKey)
	sc.Step(`^I export all projects$`, s.iExportAllProjects)

	// Response steps
	sc.Step(`^the response status should be (\d+)$`, s.theResponseStatusShouldBe)
	sc.Step(`^the response error should be "([^"]*)"$`, s.theResponseErrorShouldBe)
	sc.Step(`^the response should equal JSON:$`, s.theResponseShouldEqualJSON)
	sc.Step(`^group "([^"]*)" in the export should have permissions "([^"]*)"$`, s.groupInExportShouldHavePermissions)
	sc.Step(`^the export should list (\d+) projects?$`, s.theExportShouldListProjects)
	sc.Step(`^the project listing should not contain permission "([^"]*)"$`, s.theListingShouldNotContainPermission)

	// Database assertions
	sc.Step(`^projects "([^"]*)" and "([^"]*)" should have different API keys$`, s.projectsShouldHaveDifferentAPIKeys)
	sc.Step(`^exactly one link should exist for group "([^"]*)" and permission "([^"]*)" with enabled (true|false)$`, s.exactlyOneLinkShouldExist)
	sc.Step(`^no rows should remain for project "([^"]*)"$`, s.noRowsShouldRemainForProject)
}

func (s *StepsContext) aPermissionsServerIsRunning() error {
	// Started by TestContext
	return nil
}

// do sends a request and keeps the response for later steps
func (s *StepsContext) do(method, path string, body interface{}) error {
	var reader io.Reader
	if body != nil {
		switch b := body.(type) {
		case string:
			reader = strings.NewReader(b)
		default:
			data, err := json.Marshal(b)
			if err != nil {
				return err
			}
			reader = bytes.NewReader(data)
		}
	}

	req, err := http.NewRequest(method, s.tc.ServerURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	s.response, err = s.tc.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	s.responseBody, err = io.ReadAll(s.response.Body)
	_ = s.response.Body.Close()
	return err
}

// expectOK fails the step unless the last request returned 200
func (s *StepsContext) expectOK() error {
	if s.response.StatusCode != http.StatusOK {
		return fmt.Errorf("expected status 200, got %d: %s", s.response.StatusCode, s.responseBody)
	}
	return nil
}

func (s *StepsContext) decode(v interface{}) error {
	if err := json.Unmarshal(s.responseBody, v); err != nil {
		return fmt.Errorf("failed to decode response %q: %w", s.responseBody, err)
	}
	return nil
}

// Admin API

func (s *StepsContext) iCreateAProjectNamed(name string) error {
	if err := s.do(http.MethodPost, "/projects", map[string]string{"name": name}); err != nil {
		return err
	}
	if err := s.expectOK(); err != nil {
		return err
	}
	var p project
	if err := s.decode(&p); err != nil {
		return err
	}
	s.projects[name] = p
	return nil
}

func (s *StepsContext) projectID(name string) (int64, error) {
	p, ok := s.projects[name]
	if !ok {
		return 0, fmt.Errorf("project %q was not created in this scenario", name)
	}
	return p.ID, nil
}

func (s *StepsContext) iCreateAPermissionInProject(key, projectName string) error {
	projectID, err := s.projectID(projectName)
	if err != nil {
		return err
	}
	body := map[string]interface{}{"projectId": projectID, "key": key}
	if err := s.do(http.MethodPost, "/permissions", body); err != nil {
		return err
	}
	if err := s.expectOK(); err != nil {
		return err
	}
	var created struct {
		ID int64 `json:"id"`
	}
	if err := s.decode(&created); err != nil {
		return err
	}
	s.permissions[key] = created.ID
	return nil
}

func (s *StepsContext) iCreateAGroupInProject(name, projectName string) error {
	projectID, err := s.projectID(projectName)
	if err != nil {
		return err
	}
	path := fmt.Sprintf("/projects/%d/groups", projectID)
	if err := s.do(http.MethodPost, path, map[string]string{"name": name}); err != nil {
		return err
	}
	if err := s.expectOK(); err != nil {
		return err
	}
	var created struct {
		ID int64 `json:"id"`
	}
	if err := s.decode(&created); err != nil {
		return err
	}
	s.groups[name] = created.ID
	return nil
}

func (s *StepsContext) iTogglePermissionForGroup(action, key, group string) error {
	body := map[string]interface{}{
		"permissionId": s.permissions[key],
		"enabled":      action == "enable",
	}
	if err := s.do(http.MethodPost, fmt.Sprintf("/groups/%d/permissions", s.groups[group]), body); err != nil {
		return err
	}
	return s.expectOK()
}

func (s *StepsContext) iRenamePermission(from, to string) error {
	id := s.permissions[from]
	if err := s.do(http.MethodPut, fmt.Sprintf("/permissions/%d", id), map[string]string{"key": to}); err != nil {
		return err
	}
	if err := s.expectOK(); err != nil {
		return err
	}
	s.permissions[to] = id
	return nil
}

func (s *StepsContext) iDeleteThePermission(key string) error {
	if err := s.do(http.MethodDelete, fmt.Sprintf("/permissions/%d", s.permissions[key]), nil); err != nil {
		return err
	}
	return s.expectOK()
}

func (s *StepsContext) iDeleteTheGroup(name string) error {
	if err := s.do(http.MethodDelete, fmt.Sprintf("/groups/%d", s.groups[name]), nil); err != nil {
		return err
	}
	return s.expectOK()
}

func (s *StepsContext) iDeleteTheProject(name string) error {
	id, err := s.projectID(name)
	if err != nil {
		return err
	}
	if err := s.do(http.MethodDelete, fmt.Sprintf("/projects/%d", id), nil); err != nil {
		return err
	}
	return s.expectOK()
}

func (s *StepsContext) iSendARequestTo(method, path string) error {
	return s.do(method, path, nil)
}

func (s *StepsContext) iSendARequestWithBody(method, path string, body *godog.DocString) error {
	return s.do(method, path, body.Content)
}

// Export API

func (s *StepsContext) iExportProjectByAPIKey(name string) error {
	p, ok := s.projects[name]
	if !ok {
		return fmt.Errorf("project %q was not created in this scenario", name)
	}
	return s.iExportWithAPIKey(p.APIKey)
}

func (s *StepsContext) iExportWithAPIKey(apiKey string) error {
	return s.do(http.MethodGet, "/export/project/"+url.PathEscape(apiKey), nil)
}

func (s *StepsContext) iExportAllProjects() error {
	return s.do(http.MethodGet, "/export/all", nil)
}

// Response steps

func (s *StepsContext) theResponseStatusShouldBe(status int) error {
	if s.response.StatusCode != status {
		return fmt.Errorf("expected status %d, got %d: %s", status, s.response.StatusCode, s.responseBody)
	}
	return nil
}

func (s *StepsContext) theResponseErrorShouldBe(message string) error {
	var body struct {
		Error string `json:"error"`
	}
	if err := s.decode(&body); err != nil {
		return err
	}
	if body.Error != message {
		return fmt.Errorf("expected error %q, got %q", message, body.Error)
	}
	return nil
}

// theResponseShouldEqualJSON compares the response with the expected
// document. {{apiKey:Name}} is replaced with the named project's key.
func (s *StepsContext) theResponseShouldEqualJSON(expected *godog.DocString) error {
	content := expected.Content
	for name, p := range s.projects {
		content = strings.ReplaceAll(content, "{{apiKey:"+name+"}}", p.APIKey)
	}

	var want, got interface{}
	if err := json.Unmarshal([]byte(content), &want); err != nil {
		return fmt.Errorf("invalid expected JSON: %w", err)
	}
	if err := s.decode(&got); err != nil {
		return err
	}
	if !reflect.DeepEqual(want, got) {
		return fmt.Errorf("response mismatch\nexpected: %s\n     got: %s", content, s.responseBody)
	}
	return nil
}

type exportedProject struct {
	Name             string `json:"name"`
	PermissionGroups []struct {
		Name        string `json:"name"`
		Permissions []struct {
			Key string `json:"key"`
		} `json:"permissions"`
	} `json:"permissionGroups"`
}

func (s *StepsContext) groupInExportShouldHavePermissions(group, keys string) error {
	var p exportedProject
	if err := s.decode(&p); err != nil {
		return err
	}

	want := []string{}
	if keys != "" {
		want = strings.Split(keys, ",")
	}
	sort.Strings(want)

	for _, g := range p.PermissionGroups {
		if g.Name != group {
			continue
		}
		got := []string{}
		for _, perm := range g.Permissions {
			got = append(got, perm.Key)
		}
		sort.Strings(got)
		if !reflect.DeepEqual(want, got) {
			return fmt.Errorf("group %q: expected permissions %v, got %v", group, want, got)
		}
		return nil
	}
	return fmt.Errorf("group %q not in export: %s", group, s.responseBody)
}

func (s *StepsContext) theExportShouldListProjects(n int) error {
	var projects []exportedProject
	if err := s.decode(&projects); err != nil {
		return err
	}
	if len(projects) != n {
		return fmt.Errorf("expected %d projects, got %d", n, len(projects))
	}
	return nil
}

func (s *StepsContext) theListingShouldNotContainPermission(key string) error {
	if err := s.do(http.MethodGet, "/projects", nil); err != nil {
		return err
	}
	var projects []struct {
		Permissions []struct {
			Key string `json:"key"`
		} `json:"permissions"`
	}
	if err := s.decode(&projects); err != nil {
		return err
	}
	for _, p := range projects {
		for _, perm := range p.Permissions {
			if perm.Key == key {
				return fmt.Errorf("permission %q is still listed", key)
			}
		}
	}
	return nil
}

// Database assertions

func (s *StepsContext) projectsShouldHaveDifferentAPIKeys(a, b string) error {
	ka, kb := s.projects[a].APIKey, s.projects[b].APIKey
	if ka == "" || kb == "" {
		return fmt.Errorf("missing API key for %q or %q", a, b)
	}
	if ka == kb {
		return fmt.Errorf("projects %q and %q share API key %s", a, b, ka)
	}
	return nil
}

func (s *StepsContext) exactlyOneLinkShouldExist(group, key, enabled string) error {
	var rows []struct {
		Enabled bool
	}
	err := s.tc.DB.Raw(
		`SELECT enabled FROM group_permissions WHERE group_id = ? AND permission_id = ?`,
		s.groups[group], s.permissions[key],
	).Scan(&rows).Error
	if err != nil {
		return err
	}
	if len(rows) != 1 {
		return fmt.Errorf("expected 1 link row, found %d", len(rows))
	}
	want, _ := strconv.ParseBool(enabled)
	if rows[0].Enabled != want {
		return fmt.Errorf("expected enabled=%t, got %t", want, rows[0].Enabled)
	}
	return nil
}

func (s *StepsContext) noRowsShouldRemainForProject(name string) error {
	id, err := s.projectID(name)
	if err != nil {
		return err
	}

	checks := map[string]string{
		"projects":          `SELECT count(*) FROM projects WHERE id = ?`,
		"permissions":       `SELECT count(*) FROM permissions WHERE project_id = ?`,
		"permission_groups": `SELECT count(*) FROM permission_groups WHERE project_id = ?`,
		"group_permissions": `SELECT count(*) FROM group_permissions gp
			LEFT JOIN permissions p ON p.id = gp.permission_id
			LEFT JOIN permission_groups g ON g.id = gp.group_id
			WHERE p.project_id = ? OR g.project_id = ? OR p.id IS NULL OR g.id IS NULL`,
	}
	for table, query := range checks {
		args := []interface{}{id}
		if table == "group_permissions" {
			args = append(args, id)
		}
		var count int64
		if err := s.tc.DB.Raw(query, args...).Scan(&count).Error; err != nil {
			return err
		}
		if count != 0 {
			return fmt.Errorf("%d rows remain in %s for project %q", count, table, name)
		}
	}
	return nil
}
