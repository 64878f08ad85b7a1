package complysdk

// ErrorResponse is the uniform error payload returned by every endpoint on
// failure.
type ErrorResponse struct {
	// Error is a human-readable description of what went wrong.
	Error string `json:"error"`
}

// ============================================================================
// Auth
// ============================================================================

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	// Token is the bearer session token for subsequent requests.
	Token  string `json:"token"`
	Member Member `json:"member"`
}

// Member is a person inside an organisation as returned by the API. Role is
// the stable enum value; RoleLabel is its display form and may change
// without the role itself changing.
type Member struct {
	ID             string `json:"id"`
	OrganisationID string `json:"organisationId"`
	Email          string `json:"email"`
	FullName       string `json:"fullName,omitempty"`
	PhoneNumber    string `json:"phoneNumber,omitempty"`
	Role           string `json:"role"`
	RoleLabel      string `json:"roleLabel"`
	CreatedAt      string `json:"createdAt"`
}

// ============================================================================
// Bootstrap
// ============================================================================

type BootstrapRequest struct {
	BootstrapToken   string `json:"bootstrapToken"`
	OrganisationName string `json:"organisationName"`
	AdminEmail       string `json:"adminEmail"`
	AdminFullName    string `json:"adminFullName,omitempty"`
	AdminPassword    string `json:"adminPassword"`
}

type BootstrapResponse struct {
	OrganisationID string `json:"organisationId"`
	AdminMemberID  string `json:"adminMemberId"`
}

// ============================================================================
// Invitations
// ============================================================================

type SendInvitationRequest struct {
	Email string `json:"email"`
}

type SendInvitationResponse struct {
	Success bool `json:"success"`
	// InvitationURL is the acceptance link to deliver to the invitee. The
	// server never sends it anywhere itself.
	InvitationURL string `json:"invitationUrl"`
	Message       string `json:"message"`
}

// ValidateInvitationResponse describes a still-redeemable invitation. The
// endpoint never says why a token was refused.
type ValidateInvitationResponse struct {
	Valid            bool   `json:"valid"`
	Email            string `json:"email"`
	OrganisationName string `json:"organisationName"`
	ExpiresAt        string `json:"expiresAt"`
}

type AcceptInvitationRequest struct {
	Token           string `json:"token"`
	FullName        string `json:"fullName,omitempty"`
	PhoneNumber     string `json:"phoneNumber,omitempty"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

// AcceptInvitationResponse logs the new member straight in.
type AcceptInvitationResponse struct {
	Token  string `json:"token"`
	Member Member `json:"member"`
}

// Invitation is an invitation row as listed for admins. Status is derived at
// read time: pending, accepted or expired.
type Invitation struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	InvitedBy string `json:"invitedBy"`
	Status    string `json:"status"`
	ExpiresAt string `json:"expiresAt"`
	CreatedAt string `json:"createdAt"`
}

// ============================================================================
// Organisation
// ============================================================================

type Organisation struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	ContactEmail  string `json:"contactEmail,omitempty"`
	ContactNumber string `json:"contactNumber,omitempty"`
	BrandingColor string `json:"brandingColor,omitempty"`
	RTOID         string `json:"rtoId,omitempty"`
}

type UpdateOrganisationRequest struct {
	Name          string `json:"name"`
	ContactEmail  string `json:"contactEmail,omitempty"`
	ContactNumber string `json:"contactNumber,omitempty"`
	BrandingColor string `json:"brandingColor,omitempty"`
	RTOID         string `json:"rtoId,omitempty"`
}

// ============================================================================
// Members
// ============================================================================

type ChangeRoleRequest struct {
	Role string `json:"role"`
}

type UpdateProfileRequest struct {
	FullName    string `json:"fullName"`
	PhoneNumber string `json:"phoneNumber,omitempty"`
}

// ============================================================================
// Standards
// ============================================================================

type Standard struct {
	ID          string `json:"id"`
	Clause      string `json:"clause"`
	Description string `json:"description,omitempty"`
	CreatedAt   string `json:"createdAt"`
}

type StandardRequest struct {
	Clause      string `json:"clause"`
	Description string `json:"description,omitempty"`
}

// ============================================================================
// Compliance records
// ============================================================================

type Record struct {
	ID                string `json:"id"`
	ComplianceItem    string `json:"complianceItem"`
	StandardClause    string `json:"standardClause"`
	ResponsiblePerson string `json:"responsiblePerson,omitempty"`
	ComplianceStatus  string `json:"complianceStatus"`
	ReviewStatus      string `json:"reviewStatus,omitempty"`
	NextReviewDate    string `json:"nextReviewDate,omitempty"`
	Notes             string `json:"notes,omitempty"`
	FileName          string `json:"fileName,omitempty"`
	HasEvidence       bool   `json:"hasEvidence"`
	CreatedAt         string `json:"createdAt"`
	UpdatedAt         string `json:"updatedAt"`
}

type RecordRequest struct {
	ComplianceItem    string `json:"complianceItem"`
	StandardClause    string `json:"standardClause"`
	ResponsiblePerson string `json:"responsiblePerson,omitempty"`
	ComplianceStatus  string `json:"complianceStatus"`
	ReviewStatus      string `json:"reviewStatus,omitempty"`
	NextReviewDate    string `json:"nextReviewDate,omitempty"`
	Notes             string `json:"notes,omitempty"`
}

// ============================================================================
// Notifications
// ============================================================================

type Notification struct {
	ID        string `json:"id"`
	Type      string `json:"type"`
	Action    string `json:"action"`
	Title     string `json:"title"`
	Message   string `json:"message"`
	RecordID  string `json:"recordId,omitempty"`
	IsRead    bool   `json:"isRead"`
	CreatedAt string `json:"createdAt"`
}

// ============================================================================
// Health
// ============================================================================

type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
	Uptime  string `json:"uptime,omitempty"`
}
