package complysdk

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
)

// Session is an authenticated client bound to one member and organisation.
type Session struct {
	client *Client
	token  string
	member Member
}

// Token returns the raw session token.
func (s *Session) Token() string { return s.token }

// Member returns the identity the session was created with.
func (s *Session) Member() Member { return s.member }

// ============================================================================
// Invitations
// ============================================================================

// SendInvitation invites an email address to the session's organisation.
// Admin only.
func (s *Session) SendInvitation(ctx context.Context, email string) (SendInvitationResponse, error) {
	var out SendInvitationResponse
	err := s.client.do(ctx, http.MethodPost, "/v1/invitations", s.token, SendInvitationRequest{Email: email}, &out)
	return out, err
}

// ListInvitations lists the organisation's invitations, newest first. Admin
// only.
func (s *Session) ListInvitations(ctx context.Context) ([]Invitation, error) {
	var out []Invitation
	err := s.client.do(ctx, http.MethodGet, "/v1/invitations", s.token, nil, &out)
	return out, err
}

// ============================================================================
// Organisation
// ============================================================================

func (s *Session) GetOrganisation(ctx context.Context) (Organisation, error) {
	var out Organisation
	err := s.client.do(ctx, http.MethodGet, "/v1/organisation", s.token, nil, &out)
	return out, err
}

// UpdateOrganisation replaces the organisation settings. Admin only.
func (s *Session) UpdateOrganisation(ctx context.Context, req UpdateOrganisationRequest) error {
	return s.client.do(ctx, http.MethodPut, "/v1/organisation", s.token, req, nil)
}

// ============================================================================
// Members
// ============================================================================

func (s *Session) ListMembers(ctx context.Context) ([]Member, error) {
	var out []Member
	err := s.client.do(ctx, http.MethodGet, "/v1/members", s.token, nil, &out)
	return out, err
}

// Me returns the caller's own member record.
func (s *Session) Me(ctx context.Context) (Member, error) {
	var out Member
	err := s.client.do(ctx, http.MethodGet, "/v1/members/me", s.token, nil, &out)
	return out, err
}

// ChangeMemberRole promotes or demotes a member. Admin only.
func (s *Session) ChangeMemberRole(ctx context.Context, memberID, role string) error {
	return s.client.do(ctx, http.MethodPut, "/v1/members/"+url.PathEscape(memberID)+"/role", s.token, ChangeRoleRequest{Role: role}, nil)
}

// UpdateProfile updates the caller's own display fields.
func (s *Session) UpdateProfile(ctx context.Context, req UpdateProfileRequest) error {
	return s.client.do(ctx, http.MethodPut, "/v1/members/me", s.token, req, nil)
}

// RemoveMember deletes a member from the organisation. Admin only.
func (s *Session) RemoveMember(ctx context.Context, memberID string) error {
	return s.client.do(ctx, http.MethodDelete, "/v1/members/"+url.PathEscape(memberID), s.token, nil, nil)
}

// ============================================================================
// Standards
// ============================================================================

func (s *Session) ListStandards(ctx context.Context) ([]Standard, error) {
	var out []Standard
	err := s.client.do(ctx, http.MethodGet, "/v1/standards", s.token, nil, &out)
	return out, err
}

func (s *Session) CreateStandard(ctx context.Context, req StandardRequest) (Standard, error) {
	var out Standard
	err := s.client.do(ctx, http.MethodPost, "/v1/standards", s.token, req, &out)
	return out, err
}

func (s *Session) UpdateStandard(ctx context.Context, id string, req StandardRequest) error {
	return s.client.do(ctx, http.MethodPut, "/v1/standards/"+url.PathEscape(id), s.token, req, nil)
}

func (s *Session) DeleteStandard(ctx context.Context, id string) error {
	return s.client.do(ctx, http.MethodDelete, "/v1/standards/"+url.PathEscape(id), s.token, nil, nil)
}

// ============================================================================
// Compliance records
// ============================================================================

func (s *Session) ListRecords(ctx context.Context) ([]Record, error) {
	var out []Record
	err := s.client.do(ctx, http.MethodGet, "/v1/records", s.token, nil, &out)
	return out, err
}

func (s *Session) GetRecord(ctx context.Context, id string) (Record, error) {
	var out Record
	err := s.client.do(ctx, http.MethodGet, "/v1/records/"+url.PathEscape(id), s.token, nil, &out)
	return out, err
}

func (s *Session) CreateRecord(ctx context.Context, req RecordRequest) (Record, error) {
	var out Record
	err := s.client.do(ctx, http.MethodPost, "/v1/records", s.token, req, &out)
	return out, err
}

func (s *Session) UpdateRecord(ctx context.Context, id string, req RecordRequest) error {
	return s.client.do(ctx, http.MethodPut, "/v1/records/"+url.PathEscape(id), s.token, req, nil)
}

func (s *Session) DeleteRecord(ctx context.Context, id string) error {
	return s.client.do(ctx, http.MethodDelete, "/v1/records/"+url.PathEscape(id), s.token, nil, nil)
}

// UploadEvidence attaches an evidence file to a record as multipart
// form data under the "file" field.
func (s *Session) UploadEvidence(ctx context.Context, recordID, fileName string, body io.Reader) error {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", fileName)
	if err != nil {
		return err
	}
	if _, err := io.Copy(part, body); err != nil {
		return err
	}
	if err := mw.Close(); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		s.client.BaseURL+"/v1/records/"+url.PathEscape(recordID)+"/evidence", &buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+s.token)

	resp, err := s.client.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var apiErr ErrorResponse
		_ = json.NewDecoder(resp.Body).Decode(&apiErr)
		msg := apiErr.Error
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return &APIError{StatusCode: resp.StatusCode, Message: msg}
	}
	return nil
}

// DownloadEvidence streams a record's evidence file. The caller must close
// the reader. The second return is the original file name.
func (s *Session) DownloadEvidence(ctx context.Context, recordID string) (io.ReadCloser, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		s.client.BaseURL+"/v1/records/"+url.PathEscape(recordID)+"/evidence", nil)
	if err != nil {
		return nil, "", err
	}
	req.Header.Set("Authorization", "Bearer "+s.token)

	resp, err := s.client.HTTPClient.Do(req)
	if err != nil {
		return nil, "", err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer resp.Body.Close()
		var apiErr ErrorResponse
		_ = json.NewDecoder(resp.Body).Decode(&apiErr)
		msg := apiErr.Error
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return nil, "", &APIError{StatusCode: resp.StatusCode, Message: msg}
	}

	name := ""
	if cd := resp.Header.Get("Content-Disposition"); cd != "" {
		if _, params, err := mime.ParseMediaType(cd); err == nil {
			name = params["filename"]
		}
	}
	return resp.Body, name, nil
}

// ============================================================================
// Notifications
// ============================================================================

func (s *Session) ListNotifications(ctx context.Context, limit int) ([]Notification, error) {
	path := "/v1/notifications"
	if limit > 0 {
		path += "?limit=" + strconv.Itoa(limit)
	}
	var out []Notification
	err := s.client.do(ctx, http.MethodGet, path, s.token, nil, &out)
	return out, err
}

func (s *Session) MarkNotificationRead(ctx context.Context, id string) error {
	return s.client.do(ctx, http.MethodPut, "/v1/notifications/"+url.PathEscape(id)+"/read", s.token, nil, nil)
}
