package comply_test

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"os/exec"
	"testing"
	"time"

	"github.com/clausehq/comply/pkg/complysdk"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

/*
 * Common constants and helper functions for end-to-end tests: container
 * setup, bootstrap and session helpers.
 */

const (
	testImageName = "comply-test:latest"

	bootstrapToken   = "test-bootstrap-token-12345"
	organisationName = "Acme Training"
	adminEmail       = "admin@acme.example"
	adminFullName    = "Ada Admin"
	adminPassword    = "Admin123!"
)

// TestMain builds the Docker image once before all tests and removes it
// afterwards.
func TestMain(m *testing.M) {
	fmt.Fprintf(os.Stdout, "Building comply Docker image...")
	if err := buildDockerImage(); err != nil {
		fmt.Fprintf(os.Stderr, "\nFailed to build Docker image: %v\n", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stdout, " done\n")

	exitCode := m.Run()

	fmt.Fprintf(os.Stdout, "Cleaning up comply Docker image...")
	cleanupDockerImage()
	fmt.Fprintf(os.Stdout, " done\n")

	os.Exit(exitCode)
}

func buildDockerImage() error {
	ctx := context.Background()
	cmd := exec.CommandContext(ctx, "docker", "build",
		"-t", testImageName,
		"-f", "../../../cmd/complyd/Dockerfile",
		"../../../")
	cmd.Dir = "."
	cmd.Stdout = os.Stdout
	cmd.Stderr = nil
	return cmd.Run()
}

func cleanupDockerImage() {
	cmd := exec.Command("docker", "rmi", "-f", testImageName)
	_ = cmd.Run() // image might not exist
}

// setupComplyContainer starts the service in a container and returns its
// base URL. Rate limits are raised well above what the tests generate.
func setupComplyContainer(t *testing.T) (string, func()) {
	t.Helper()
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        testImageName,
		ExposedPorts: []string{"8080/tcp"},
		Env: map[string]string{
			"COMPLY_SESSION_SECRET":       "e2e-session-secret-not-for-production",
			"COMPLY_BOOTSTRAP_TOKEN":      bootstrapToken,
			"COMPLY_DATABASE_FILE":        "/tmp/comply.db",
			"COMPLY_EVIDENCE_DIR":         "/tmp/evidence",
			"COMPLY_APP_ORIGIN":           "http://app.local",
			"ENV":                         "test",
			"LOG_LEVEL":                   "info",
			"LOG_FORMAT":                  "json",
			"RATELIMIT_STRICT_REQUESTS":   "1000",
			"RATELIMIT_STRICT_WINDOW_SEC": "60",
			"RATELIMIT_STRICT_BURST":      "1000",
			"RATELIMIT_MODERATE_REQUESTS": "1000",
			"RATELIMIT_MODERATE_BURST":    "1000",
		},
		WaitingFor: wait.ForHTTP("/livez").
			WithPort("8080/tcp").
			WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)

	mappedPort, err := container.MappedPort(ctx, "8080")
	require.NoError(t, err)
	host, err := container.Host(ctx)
	require.NoError(t, err)

	baseURL := fmt.Sprintf("http://%s:%s", host, mappedPort.Port())

	cleanup := func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	}
	return baseURL, cleanup
}

// bootstrapAndLogin bootstraps the deployment and returns an admin session.
func bootstrapAndLogin(t *testing.T, client *complysdk.Client) *complysdk.Session {
	t.Helper()
	ctx := t.Context()

	_, err := client.Bootstrap(ctx, complysdk.BootstrapRequest{
		BootstrapToken:   bootstrapToken,
		OrganisationName: organisationName,
		AdminEmail:       adminEmail,
		AdminFullName:    adminFullName,
		AdminPassword:    adminPassword,
	})
	require.NoError(t, err)

	session, err := client.Login(ctx, adminEmail, adminPassword)
	require.NoError(t, err)
	return session
}

// invitationToken extracts the raw token from an acceptance URL.
func invitationToken(t *testing.T, invitationURL string) string {
	t.Helper()

	u, err := url.Parse(invitationURL)
	require.NoError(t, err)
	token := u.Query().Get("token")
	require.NotEmpty(t, token)
	return token
}
